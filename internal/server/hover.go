package server

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func hoverHandler(store *DocumentStore) protocol.TextDocumentHoverFunc {
	return func(context *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
		doc := store.Get(params.TextDocument.URI)
		if doc == nil || doc.Outline == nil {
			return nil, nil
		}

		line := int(params.Position.Line) + 1 // LSP 0-based -> outline 1-based

		if v, ok := doc.Outline.SymbolAt(line); ok {
			return markdownHover(fmt.Sprintf("%s %s", v.Type, v.Name)), nil
		}

		for _, sub := range doc.Outline.Subroutines {
			if sub.Line == line {
				return markdownHover(fmt.Sprintf("%s %s%s", sub.Kind, sub.Name, subroutineSignature(sub))), nil
			}
		}

		return nil, nil
	}
}

func markdownHover(body string) *protocol.Hover {
	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: fmt.Sprintf("```ijk\n%s\n```", body),
		},
	}
}
