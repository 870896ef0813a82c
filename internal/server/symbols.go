package server

import (
	"strings"

	"github.com/sflorezs1/IJack-nand2tetris/outline"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func documentSymbolHandler(store *DocumentStore) protocol.TextDocumentDocumentSymbolFunc {
	return func(context *glsp.Context, params *protocol.DocumentSymbolParams) (any, error) {
		doc := store.Get(params.TextDocument.URI)
		if doc == nil || doc.Outline == nil {
			return nil, nil
		}

		class := doc.Outline
		root := protocol.DocumentSymbol{
			Name:           class.Name,
			Kind:           protocol.SymbolKindClass,
			Range:          classRange(class),
			SelectionRange: posToRange(class.Line, class.Column),
		}

		var children []protocol.DocumentSymbol
		for _, f := range class.Fields {
			children = append(children, varSymbol(f, protocol.SymbolKindField))
		}
		for _, s := range class.Statics {
			children = append(children, varSymbol(s, protocol.SymbolKindVariable))
		}
		for _, sub := range class.Subroutines {
			children = append(children, subroutineSymbol(sub))
		}

		if len(children) > 0 {
			root.Children = children
		}

		return []protocol.DocumentSymbol{root}, nil
	}
}

func varSymbol(v outline.VarDecl, kind protocol.SymbolKind) protocol.DocumentSymbol {
	return protocol.DocumentSymbol{
		Name:           v.Name,
		Detail:         &v.Type,
		Kind:           kind,
		Range:          posToRange(v.Line, v.Column),
		SelectionRange: posToRange(v.Line, v.Column),
	}
}

func subroutineSymbol(s outline.SubroutineDecl) protocol.DocumentSymbol {
	kind := protocol.SymbolKindFunction
	if s.Kind == "method" {
		kind = protocol.SymbolKindMethod
	} else if s.Kind == "init" {
		kind = protocol.SymbolKindConstructor
	}
	detail := subroutineSignature(s)
	return protocol.DocumentSymbol{
		Name:           s.Name,
		Detail:         &detail,
		Kind:           kind,
		Range:          posToRange(s.Line, s.Column),
		SelectionRange: posToRange(s.Line, s.Column),
	}
}

func subroutineSignature(s outline.SubroutineDecl) string {
	var params []string
	for _, p := range s.Params {
		params = append(params, p.Type+" "+p.Name)
	}
	return "(" + strings.Join(params, ", ") + ") -> " + s.ReturnType
}

// classRange estimates the full range of the class by scanning the
// last-declared line among its members, since the outline does not
// store an end position.
func classRange(c *outline.ClassOutline) protocol.Range {
	endLine := c.Line
	for _, f := range c.Fields {
		if f.Line > endLine {
			endLine = f.Line
		}
	}
	for _, s := range c.Statics {
		if s.Line > endLine {
			endLine = s.Line
		}
	}
	for _, sub := range c.Subroutines {
		if sub.Line > endLine {
			endLine = sub.Line
		}
	}

	start := protocol.Position{}
	if c.Line > 0 {
		start.Line = uint32(c.Line - 1)
	}
	return protocol.Range{Start: start, End: protocol.Position{Line: uint32(endLine), Character: 0}}
}
