// Package outline holds the declaration-only byproduct the compiler
// records while it compiles a class: field/static declarations and
// subroutine signatures with their source positions. It carries no
// statements or expressions — it exists so IDE tooling has something to
// query without re-lexing the whole file (SPEC_FULL.md §1.6).
package outline

// Pos holds source position information, matching the embedding idiom
// the teacher uses for its AST nodes.
type Pos struct {
	Line   int
	Column int
}

// VarDecl is one field or static declaration.
type VarDecl struct {
	Pos
	Name string
	Type string
}

// Param is one subroutine parameter, in declared order.
type Param struct {
	Name string
	Type string
}

// SubroutineDecl is one subroutine signature.
type SubroutineDecl struct {
	Pos
	Name       string
	Kind       string // "init", "method", or "fun"
	Params     []Param
	ReturnType string
}

// ClassOutline is the full declaration inventory for one compiled
// class.
type ClassOutline struct {
	Pos
	Name        string
	Statics     []VarDecl
	Fields      []VarDecl
	Subroutines []SubroutineDecl
}

// New creates an empty outline for a class declared at line/column.
func New(name string, line, column int) *ClassOutline {
	return &ClassOutline{Pos: Pos{Line: line, Column: column}, Name: name}
}

// AddStatic records a static declaration.
func (o *ClassOutline) AddStatic(name, typ string, line, column int) {
	o.Statics = append(o.Statics, VarDecl{Pos: Pos{Line: line, Column: column}, Name: name, Type: typ})
}

// AddField records a field declaration.
func (o *ClassOutline) AddField(name, typ string, line, column int) {
	o.Fields = append(o.Fields, VarDecl{Pos: Pos{Line: line, Column: column}, Name: name, Type: typ})
}

// AddSubroutine records a subroutine signature.
func (o *ClassOutline) AddSubroutine(decl SubroutineDecl) {
	o.Subroutines = append(o.Subroutines, decl)
}

// FindSubroutine returns the subroutine declared with the given name,
// if any.
func (o *ClassOutline) FindSubroutine(name string) (SubroutineDecl, bool) {
	for _, s := range o.Subroutines {
		if s.Name == name {
			return s, true
		}
	}
	return SubroutineDecl{}, false
}

// SymbolAt returns the field or static declaration covering the given
// 1-based line, if any name on that line matches. Used by hover to
// report a declaration's type without a full AST walk.
func (o *ClassOutline) SymbolAt(line int) (VarDecl, bool) {
	for _, v := range o.Fields {
		if v.Line == line {
			return v, true
		}
	}
	for _, v := range o.Statics {
		if v.Line == line {
			return v, true
		}
	}
	return VarDecl{}, false
}
