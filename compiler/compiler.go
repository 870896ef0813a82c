// Package compiler is the fused recursive-descent parser and code
// generator for Ijk (spec.md §4.5). It recognizes one class declaration
// per call to Compile and emits VM instructions as it goes; no parse
// tree is kept past a single class/subroutine/statement/expression/term
// — only the symbol scopes and the outline byproduct survive.
package compiler

import (
	"fmt"
	"io"
	"strings"

	"github.com/sflorezs1/IJack-nand2tetris/codegen"
	"github.com/sflorezs1/IJack-nand2tetris/lexer"
	"github.com/sflorezs1/IJack-nand2tetris/outline"
	"github.com/sflorezs1/IJack-nand2tetris/symbols"
	"github.com/sflorezs1/IJack-nand2tetris/token"
)

// binaryOpActions maps a single-character binary operator symbol to the
// VM instruction (or call) it compiles to (spec.md §4.5).
var binaryOpActions = map[string]string{
	"+": "add",
	"-": "sub",
	"*": "call Math.multiply 2",
	"/": "call Math.divide 2",
	"&": "and",
	"|": "or",
	"<": "lt",
	">": "gt",
	"=": "eq",
}

// Parser holds the state of one compilation pass: a two-token lookahead
// over the lexer, the class/subroutine scopes currently in view, the VM
// writer, the outline being built, and the per-file label counter.
type Parser struct {
	lex     *lexer.Lexer
	current token.Token
	peek    token.Token

	class *symbols.ClassScope
	out   *outline.ClassOutline
	vm    *codegen.Writer

	labelCount int
}

// Compile recognizes one Ijk class in src, emitting VM instructions to
// w, and returns the declaration outline recorded along the way.
func Compile(src string, w io.Writer) (*outline.ClassOutline, error) {
	p := &Parser{lex: lexer.New(src), vm: codegen.New(w)}
	if err := p.advance(); err != nil {
		return nil, err
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return p.compileClass()
}

func (p *Parser) advance() error {
	p.current = p.peek
	tok, err := p.lex.NextToken()
	if err != nil {
		return err
	}
	p.peek = tok
	return nil
}

// consume returns the current token and advances past it, mirroring
// the "take whatever's there" idiom the original engine uses
// throughout (original_source/ijkcompilationengine.py).
func (p *Parser) consume() (token.Token, error) {
	tok := p.current
	if err := p.advance(); err != nil {
		return token.Token{}, err
	}
	return tok, nil
}

func (p *Parser) expect(tt token.Type) (token.Token, error) {
	if p.current.Type != tt {
		return token.Token{}, p.errorf("expected %s, got %s (%q)", tt, p.current.Type, p.current.Literal)
	}
	return p.consume()
}

func (p *Parser) expectSymbol(lit string) (token.Token, error) {
	if p.current.Type != token.SYMBOL || p.current.Literal != lit {
		return token.Token{}, p.errorf("expected %q, got %s (%q)", lit, p.current.Type, p.current.Literal)
	}
	return p.consume()
}

func (p *Parser) expectKeyword(lit string) (token.Token, error) {
	if p.current.Type != token.KEYWORD || p.current.Literal != lit {
		return token.Token{}, p.errorf("expected keyword %q, got %s (%q)", lit, p.current.Type, p.current.Literal)
	}
	return p.consume()
}

func (p *Parser) atSymbol(lit string) bool {
	return p.current.Type == token.SYMBOL && p.current.Literal == lit
}

func (p *Parser) atKeyword(lit string) bool {
	return p.current.Type == token.KEYWORD && p.current.Literal == lit
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...), Line: p.current.Line, Column: p.current.Column}
}

func (p *Parser) newLabel() string {
	l := fmt.Sprintf("L%d", p.labelCount)
	p.labelCount++
	return l
}

func (p *Parser) compileClass() (*outline.ClassOutline, error) {
	if _, err := p.expectKeyword("class"); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENTIFIER)
	if err != nil {
		return nil, err
	}

	p.class = symbols.NewClassScope(nameTok.Literal)
	p.out = outline.New(nameTok.Literal, nameTok.Line, nameTok.Column)

	if _, err := p.expect(token.COLON); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.NEWLINE); err != nil {
		return nil, err
	}
	if _, err := p.expect(token.INDENT); err != nil {
		return nil, err
	}

	if err := p.compileClassVars(); err != nil {
		return nil, err
	}
	if err := p.compileClassSubroutines(); err != nil {
		return nil, err
	}

	if _, err := p.expect(token.DEDENT); err != nil {
		return nil, err
	}

	return p.out, nil
}

func (p *Parser) compileClassVars() error {
	for p.atKeyword("static") || p.atKeyword("field") {
		isStatic := p.current.Literal == "static"
		if err := p.advance(); err != nil {
			return err
		}

		varType := p.current.Literal
		if err := p.advance(); err != nil {
			return err
		}

		for {
			nameTok := p.current
			if err := p.advance(); err != nil {
				return err
			}

			var regErr error
			if isStatic {
				regErr = p.class.AddStatic(nameTok.Literal, varType)
				if regErr == nil {
					p.out.AddStatic(nameTok.Literal, varType, nameTok.Line, nameTok.Column)
				}
			} else {
				regErr = p.class.AddField(nameTok.Literal, varType)
				if regErr == nil {
					p.out.AddField(nameTok.Literal, varType, nameTok.Line, nameTok.Column)
				}
			}
			if regErr != nil {
				return &ParseError{Msg: regErr.Error(), Line: nameTok.Line, Column: nameTok.Column}
			}

			isComma := p.atSymbol(",")
			if err := p.advance(); err != nil {
				return err
			}
			if !isComma {
				break
			}
		}
	}
	return nil
}

func (p *Parser) compileClassSubroutines() error {
	for p.atKeyword("init") || p.atKeyword("fun") || p.atKeyword("method") {
		kind := p.current.Literal
		if err := p.advance(); err != nil {
			return err
		}

		nameTok := p.current
		if err := p.advance(); err != nil {
			return err
		}

		sub := symbols.NewSubroutineScope(nameTok.Literal, kind, "", p.class)

		if _, err := p.expectSymbol("("); err != nil {
			return err
		}
		params, err := p.compileParameterList(sub)
		if err != nil {
			return err
		}
		if _, err := p.expectSymbol(")"); err != nil {
			return err
		}
		if _, err := p.expect(token.ARROW); err != nil {
			return err
		}

		returnTok := p.current
		if err := p.advance(); err != nil {
			return err
		}
		sub.ReturnType = returnTok.Literal

		if err := p.compileSubroutineBody(sub); err != nil {
			return err
		}

		p.out.AddSubroutine(outline.SubroutineDecl{
			Pos:        outline.Pos{Line: nameTok.Line, Column: nameTok.Column},
			Name:       nameTok.Literal,
			Kind:       kind,
			Params:     params,
			ReturnType: sub.ReturnType,
		})
	}
	return nil
}

func (p *Parser) compileParameterList(sub *symbols.SubroutineScope) ([]outline.Param, error) {
	var params []outline.Param
	for p.current.Type == token.KEYWORD || p.current.Type == token.IDENTIFIER {
		typeTok := p.current
		if err := p.advance(); err != nil {
			return nil, err
		}
		nameTok := p.current
		if err := p.advance(); err != nil {
			return nil, err
		}

		if err := sub.AddArg(nameTok.Literal, typeTok.Literal); err != nil {
			return nil, &ParseError{Msg: err.Error(), Line: nameTok.Line, Column: nameTok.Column}
		}
		params = append(params, outline.Param{Name: nameTok.Literal, Type: typeTok.Literal})

		if p.atSymbol(",") {
			if err := p.advance(); err != nil {
				return nil, err
			}
			continue
		}
		break
	}
	return params, nil
}

func (p *Parser) compileSubroutineBody(sub *symbols.SubroutineScope) error {
	if _, err := p.expect(token.COLON); err != nil {
		return err
	}
	if _, err := p.expect(token.NEWLINE); err != nil {
		return err
	}
	if _, err := p.expect(token.INDENT); err != nil {
		return err
	}

	if err := p.compileSubroutineVars(sub); err != nil {
		return err
	}

	p.vm.WriteFunction(p.class.Name, sub.Name, sub.VarCount())

	switch sub.SubroutineKind {
	case "init":
		p.vm.WriteInt(p.class.FieldCount())
		p.vm.WriteCall("Memory", "alloc", 1)
		p.vm.WritePop("pointer", 0)
	case "method":
		p.vm.WritePush("argument", 0)
		p.vm.WritePop("pointer", 0)
	}

	if err := p.compileStatements(sub); err != nil {
		return err
	}

	if _, err := p.expect(token.DEDENT); err != nil {
		return err
	}
	return nil
}

func (p *Parser) compileSubroutineVars(sub *symbols.SubroutineScope) error {
	for p.atKeyword("var") {
		if err := p.advance(); err != nil {
			return err
		}

		varType := p.current.Literal
		if err := p.advance(); err != nil {
			return err
		}

		nameTok := p.current
		if err := p.advance(); err != nil {
			return err
		}
		if err := sub.AddVar(nameTok.Literal, varType); err != nil {
			return &ParseError{Msg: err.Error(), Line: nameTok.Line, Column: nameTok.Column}
		}

		for {
			isComma := p.atSymbol(",")
			if err := p.advance(); err != nil {
				return err
			}
			if !isComma {
				break
			}

			nameTok = p.current
			if err := p.advance(); err != nil {
				return err
			}
			if err := sub.AddVar(nameTok.Literal, varType); err != nil {
				return &ParseError{Msg: err.Error(), Line: nameTok.Line, Column: nameTok.Column}
			}
		}
	}
	return nil
}

func (p *Parser) compileStatements(sub *symbols.SubroutineScope) error {
	for {
		switch {
		case p.atKeyword("if"):
			if err := p.compileIf(sub); err != nil {
				return err
			}
		case p.atKeyword("while"):
			if err := p.compileWhile(sub); err != nil {
				return err
			}
		case p.atKeyword("let"):
			if err := p.compileLet(sub); err != nil {
				return err
			}
		case p.atKeyword("do"):
			if err := p.compileDo(sub); err != nil {
				return err
			}
		case p.atKeyword("return"):
			if err := p.compileReturn(sub); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (p *Parser) compileIf(sub *symbols.SubroutineScope) error {
	if err := p.advance(); err != nil { // if
		return err
	}
	if _, err := p.expectSymbol("("); err != nil {
		return err
	}
	if err := p.compileExpression(sub); err != nil {
		return err
	}
	if _, err := p.expectSymbol(")"); err != nil {
		return err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return err
	}
	if _, err := p.expect(token.NEWLINE); err != nil {
		return err
	}
	if _, err := p.expect(token.INDENT); err != nil {
		return err
	}

	falseLabel := p.newLabel()
	endLabel := p.newLabel()
	p.vm.WriteIf(falseLabel)

	if err := p.compileStatements(sub); err != nil {
		return err
	}

	p.vm.WriteGoto(endLabel)
	p.vm.WriteLabel(falseLabel)

	if _, err := p.expect(token.DEDENT); err != nil {
		return err
	}

	if p.atKeyword("else") {
		if err := p.advance(); err != nil {
			return err
		}
		if _, err := p.expect(token.COLON); err != nil {
			return err
		}
		if _, err := p.expect(token.NEWLINE); err != nil {
			return err
		}
		if _, err := p.expect(token.INDENT); err != nil {
			return err
		}

		if err := p.compileStatements(sub); err != nil {
			return err
		}

		if _, err := p.expect(token.DEDENT); err != nil {
			return err
		}
	}

	p.vm.WriteLabel(endLabel)
	return nil
}

func (p *Parser) compileWhile(sub *symbols.SubroutineScope) error {
	if err := p.advance(); err != nil { // while
		return err
	}
	if _, err := p.expectSymbol("("); err != nil {
		return err
	}

	whileLabel := p.newLabel()
	falseLabel := p.newLabel()
	p.vm.WriteLabel(whileLabel)

	if err := p.compileExpression(sub); err != nil {
		return err
	}

	if _, err := p.expectSymbol(")"); err != nil {
		return err
	}
	if _, err := p.expect(token.COLON); err != nil {
		return err
	}
	if _, err := p.expect(token.NEWLINE); err != nil {
		return err
	}
	if _, err := p.expect(token.INDENT); err != nil {
		return err
	}

	p.vm.WriteIf(falseLabel)

	if err := p.compileStatements(sub); err != nil {
		return err
	}

	p.vm.WriteGoto(whileLabel)
	p.vm.WriteLabel(falseLabel)

	if _, err := p.expect(token.DEDENT); err != nil {
		return err
	}
	return nil
}

func (p *Parser) compileLet(sub *symbols.SubroutineScope) error {
	if err := p.advance(); err != nil { // let
		return err
	}
	nameTok := p.current
	if err := p.advance(); err != nil {
		return err
	}
	sym, ok := sub.Resolve(nameTok.Literal)
	if !ok {
		return &ParseError{Msg: fmt.Sprintf("undefined identifier %q", nameTok.Literal), Line: nameTok.Line, Column: nameTok.Column}
	}

	if p.atSymbol("[") {
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.compileExpression(sub); err != nil {
			return err
		}
		if _, err := p.expectSymbol("]"); err != nil {
			return err
		}
		if _, err := p.expectSymbol("="); err != nil {
			return err
		}

		p.vm.WritePushSymbol(sym)
		p.vm.Write("add")

		if err := p.compileExpression(sub); err != nil {
			return err
		}
		p.vm.WritePop("temp", 0)
		p.vm.WritePop("pointer", 1)
		p.vm.WritePush("temp", 0)
		p.vm.WritePop("that", 0)
	} else {
		if _, err := p.expectSymbol("="); err != nil {
			return err
		}
		if err := p.compileExpression(sub); err != nil {
			return err
		}
		p.vm.WritePopSymbol(sym)
	}

	if _, err := p.expect(token.NEWLINE); err != nil {
		return err
	}
	return nil
}

func (p *Parser) compileDo(sub *symbols.SubroutineScope) error {
	if err := p.advance(); err != nil { // do
		return err
	}
	if err := p.compileTerm(sub); err != nil {
		return err
	}
	p.vm.WritePop("temp", 0)
	if _, err := p.expect(token.NEWLINE); err != nil {
		return err
	}
	return nil
}

func (p *Parser) compileReturn(sub *symbols.SubroutineScope) error {
	if err := p.advance(); err != nil { // return
		return err
	}
	if p.current.Type != token.NEWLINE {
		if err := p.compileExpression(sub); err != nil {
			return err
		}
	} else {
		p.vm.WriteInt(0)
	}
	p.vm.WriteReturn()
	if _, err := p.expect(token.NEWLINE); err != nil {
		return err
	}
	return nil
}

func (p *Parser) compileExpressionList(sub *symbols.SubroutineScope) (int, error) {
	count := 0
	for !p.atSymbol(")") {
		if p.atSymbol(",") {
			if err := p.advance(); err != nil {
				return 0, err
			}
		}
		count++
		if err := p.compileExpression(sub); err != nil {
			return 0, err
		}
	}
	return count, nil
}

func (p *Parser) compileExpression(sub *symbols.SubroutineScope) error {
	if err := p.compileTerm(sub); err != nil {
		return err
	}
	for p.current.Type == token.SYMBOL && len(p.current.Literal) == 1 && strings.Contains("+-*/&|<>=", p.current.Literal) {
		op := p.current.Literal
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.compileTerm(sub); err != nil {
			return err
		}
		p.vm.Write(binaryOpActions[op])
	}
	return nil
}

func (p *Parser) compileTerm(sub *symbols.SubroutineScope) error {
	tok := p.current
	if err := p.advance(); err != nil {
		return err
	}

	switch {
	case tok.Type == token.SYMBOL && (tok.Literal == "-" || tok.Literal == "!"):
		if err := p.compileTerm(sub); err != nil {
			return err
		}
		if tok.Literal == "-" {
			p.vm.Write("neg")
		} else {
			p.vm.Write("not")
		}

	case tok.Type == token.SYMBOL && tok.Literal == "(":
		if err := p.compileExpression(sub); err != nil {
			return err
		}
		if _, err := p.expectSymbol(")"); err != nil {
			return err
		}

	case tok.Type == token.INTEGER_CONSTANT:
		p.vm.WriteInt(tok.IntValue)

	case tok.Type == token.STRING_CONSTANT:
		p.vm.WriteString(tok.Literal)

	case tok.Type == token.KEYWORD:
		if tok.Literal == "self" {
			p.vm.WritePush("pointer", 0)
		} else {
			p.vm.WriteInt(0)
			if tok.Literal == "true" {
				p.vm.Write("not")
			}
		}

	case tok.Type == token.IDENTIFIER:
		return p.compileIdentifierTerm(sub, tok)

	default:
		return &ParseError{Msg: fmt.Sprintf("unexpected token %s in expression", tok.Type), Line: tok.Line, Column: tok.Column}
	}
	return nil
}

// compileIdentifierTerm handles the three shapes an identifier term can
// take: an array read, a call (implicit self, qualified-object, or
// qualified-static), or a bare variable read (spec.md §4.5).
func (p *Parser) compileIdentifierTerm(sub *symbols.SubroutineScope, idTok token.Token) error {
	idName := idTok.Literal
	variable, hasVar := sub.Resolve(idName)

	if p.atSymbol("[") {
		if !hasVar {
			return &ParseError{Msg: fmt.Sprintf("undefined identifier %q", idName), Line: idTok.Line, Column: idTok.Column}
		}
		if err := p.advance(); err != nil {
			return err
		}
		if err := p.compileExpression(sub); err != nil {
			return err
		}
		if _, err := p.expectSymbol("]"); err != nil {
			return err
		}

		p.vm.WritePushSymbol(variable)
		p.vm.Write("add")
		p.vm.WritePop("pointer", 1)
		p.vm.WritePush("that", 0)
		return nil
	}

	funName := idName
	funClass := p.class.Name
	defaultCall := true
	args := 0

	if p.atSymbol(".") {
		if err := p.advance(); err != nil {
			return err
		}
		defaultCall = false

		nameTok := p.current
		if err := p.advance(); err != nil {
			return err
		}
		funName = nameTok.Literal

		if hasVar {
			funClass = variable.Type
			args = 1
			p.vm.WritePushSymbol(variable)
		} else {
			funClass = idName
		}
	}

	if p.atSymbol("(") {
		if defaultCall {
			args = 1
			p.vm.WritePush("pointer", 0)
		}
		if err := p.advance(); err != nil {
			return err
		}
		n, err := p.compileExpressionList(sub)
		if err != nil {
			return err
		}
		args += n
		p.vm.WriteCall(funClass, funName, args)
		if _, err := p.expectSymbol(")"); err != nil {
			return err
		}
		return nil
	}

	if hasVar {
		p.vm.WritePushSymbol(variable)
		return nil
	}

	return &ParseError{Msg: fmt.Sprintf("undefined identifier %q", idName), Line: idTok.Line, Column: idTok.Column}
}
