// This file is part of RaychelScript - https://github.com/Weckyy702/RaychelScript-sub000
//
// Copyright 2016 Denis Bernard <db047h@gmail.com>
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package parser turns a RaychelScript token stream into an ast.Program by
// recursive descent, with an explicit operator-precedence scan for
// arithmetic (see parseArithExpr in expr.go). Semantic checks (lvalue-ness,
// value-type agreement, scope validity for return) run inline as each node
// is built, per spec §4.1, so a malformed script fails fast with a tagged
// Code instead of building a tree an assembler would have to re-validate.
package parser

import (
	"github.com/Weckyy702/RaychelScript-sub000/lang/ast"
	"github.com/Weckyy702/RaychelScript-sub000/lang/lexer"
	"github.com/Weckyy702/RaychelScript-sub000/lang/token"
)

// Parser holds the token stream and the function table accumulated so far.
type Parser struct {
	toks []token.Token
	pos  int

	funcArity map[string]int
}

// Parse lexes and parses src into a Program.
func Parse(src string) (*ast.Program, error) {
	toks := lexer.Tokenize(src)
	if len(toks) == 1 && toks[0].Kind == token.EOF {
		return nil, newError(ErrNoInput, toks[0].Pos, "empty source")
	}
	p := &Parser{toks: toks, funcArity: map[string]int{}}
	return p.parseProgram()
}

func (p *Parser) cur() token.Token { return p.toks[p.pos] }

func (p *Parser) atEOF() bool { return p.cur().Kind == token.EOF }

func (p *Parser) skipBlankLines() {
	for p.cur().Kind == token.Newline {
		p.pos++
	}
}

// readLine returns the tokens up to (not including) the next Newline or
// EOF, and advances past the Newline if one terminated the line.
func (p *Parser) readLine() []token.Token {
	start := p.pos
	for p.cur().Kind != token.Newline && p.cur().Kind != token.EOF {
		p.pos++
	}
	line := p.toks[start:p.pos]
	if p.cur().Kind == token.Newline {
		p.pos++
	}
	return line
}

func (p *Parser) parseProgram() (*ast.Program, error) {
	p.skipBlankLines()
	if err := p.expectHeader("config"); err != nil {
		return nil, err
	}

	cfg := ast.ConfigBlock{Extra: map[string][]string{}}
	sawInput, sawOutput := false, false
	for {
		p.skipBlankLines()
		if p.isHeaderLine("body") {
			break
		}
		if p.atEOF() {
			return nil, newError(ErrInvalidConfig, p.cur().Pos, "missing [[body]] header")
		}
		line := p.readLine()
		if len(line) == 0 {
			continue
		}
		switch line[0].Kind {
		case token.KwInput:
			if sawInput {
				return nil, newError(ErrInvalidConfig, line[0].Pos, "duplicate input line")
			}
			sawInput = true
			ids, err := parseIdentList(line[1:])
			if err != nil || len(ids) == 0 {
				return nil, newError(ErrInvalidConfig, line[0].Pos, "empty or malformed input list")
			}
			cfg.Inputs = ids
		case token.KwOutput:
			if sawOutput {
				return nil, newError(ErrInvalidConfig, line[0].Pos, "duplicate output line")
			}
			sawOutput = true
			ids, err := parseIdentList(line[1:])
			if err != nil || len(ids) == 0 {
				return nil, newError(ErrInvalidConfig, line[0].Pos, "empty or malformed output list")
			}
			cfg.Outputs = ids
		case token.Ident:
			vals := parseValueList(line[1:])
			cfg.Extra[line[0].Literal] = vals
		default:
			return nil, newError(ErrInvalidConfig, line[0].Pos, "unexpected token in config block")
		}
	}
	if !sawInput || !sawOutput {
		return nil, newError(ErrInvalidConfig, p.cur().Pos, "config block must declare input and output")
	}

	if err := p.expectHeader("body"); err != nil {
		return nil, err
	}

	prog := &ast.Program{Config: cfg}
	body, _, err := p.parseBodyLines(false, nil)
	if err != nil {
		return nil, err
	}
	for _, n := range body {
		if fn, ok := n.(*ast.FunctionDef); ok {
			if _, dup := p.funcArity[fn.Name]; dup {
				return nil, newError(ErrDuplicateFunction, fn.Pos(), "function %q already defined", fn.Name)
			}
			p.funcArity[fn.Name] = len(fn.Params)
			prog.Functions = append(prog.Functions, fn)
			continue
		}
		prog.Body = append(prog.Body, n)
	}

	if err := checkCallArity(prog, p.funcArity); err != nil {
		return nil, err
	}
	return prog, nil
}

// expectHeader consumes a line of the form '[[' ident ']]' and checks that
// ident equals want.
func (p *Parser) expectHeader(want string) error {
	pos := p.cur().Pos
	if !p.isHeaderLine(want) {
		if p.isAnyHeaderLine() {
			return newError(ErrMismatchedHeaderFooterType, pos, "expected [[%s]] header", want)
		}
		return newError(ErrInvalidConfig, pos, "expected [[%s]] header", want)
	}
	p.readLine()
	return nil
}

func (p *Parser) isHeaderLine(want string) bool {
	line := p.peekLine()
	return len(line) == 5 &&
		line[0].Kind == token.LBracket && line[1].Kind == token.LBracket &&
		line[2].Kind == token.Ident && line[2].Literal == want &&
		line[3].Kind == token.RBracket && line[4].Kind == token.RBracket
}

func (p *Parser) isAnyHeaderLine() bool {
	line := p.peekLine()
	return len(line) == 5 && line[0].Kind == token.LBracket && line[1].Kind == token.LBracket
}

// peekLine returns the tokens of the current line without consuming them.
func (p *Parser) peekLine() []token.Token {
	i := p.pos
	for p.toks[i].Kind != token.Newline && p.toks[i].Kind != token.EOF {
		i++
	}
	return p.toks[p.pos:i]
}

func parseIdentList(toks []token.Token) ([]string, error) {
	var ids []string
	expectIdent := true
	for _, t := range toks {
		if expectIdent {
			if t.Kind != token.Ident {
				return nil, newError(ErrInvalidConfig, t.Pos, "expected identifier")
			}
			ids = append(ids, t.Literal)
			expectIdent = false
		} else {
			if t.Kind != token.Comma {
				return nil, newError(ErrInvalidConfig, t.Pos, "expected ','")
			}
			expectIdent = true
		}
	}
	if expectIdent && len(ids) > 0 {
		return nil, newError(ErrInvalidConfig, toks[len(toks)-1].Pos, "trailing ','")
	}
	return ids, nil
}

// parseValueList reads a free-form config line's comma-separated values as
// raw literal text; these aren't type-checked (they're host configuration,
// not script values).
func parseValueList(toks []token.Token) []string {
	var vals []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			vals = append(vals, string(cur))
			cur = nil
		}
	}
	for _, t := range toks {
		if t.Kind == token.Comma {
			flush()
			continue
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, []rune(t.Literal)...)
	}
	flush()
	return vals
}

// parseBodyLines parses lines until it hits a line starting with one of
// stop, or EOF. It returns the parsed nodes and which stop keyword (if any)
// terminated it; reaching EOF without finding a requested stop is a caller
// error (mismatched construct).
func (p *Parser) parseBodyLines(inFunction bool, stop []token.Kind) ([]ast.Node, token.Kind, error) {
	var nodes []ast.Node
	for {
		p.skipBlankLines()
		if p.atEOF() {
			return nodes, token.EOF, nil
		}
		line := p.peekLine()
		if len(line) > 0 {
			for _, s := range stop {
				if line[0].Kind == s {
					p.readLine()
					return nodes, s, nil
				}
			}
		}
		n, err := p.parseBodyLine(inFunction)
		if err != nil {
			return nil, token.Illegal, err
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
}

func (p *Parser) parseBodyLine(inFunction bool) (ast.Node, error) {
	line := p.peekLine()
	if len(line) == 0 {
		p.readLine()
		return nil, nil
	}
	switch line[0].Kind {
	case token.KwIf:
		return p.parseConditional(inFunction)
	case token.KwWhile:
		return p.parseLoop(inFunction)
	case token.KwFn:
		if inFunction {
			return nil, newError(ErrInvalidFunctionDefinition, line[0].Pos, "nested function definitions are not allowed")
		}
		return p.parseFunctionDef()
	case token.KwReturn:
		if !inFunction {
			return nil, newError(ErrReturnInInvalidScope, line[0].Pos, "return outside of a function body")
		}
		return p.parseReturn()
	default:
		line = p.readLine()
		return parseExprTokens(line)
	}
}

func (p *Parser) parseConditional(inFunction bool) (ast.Node, error) {
	line := p.readLine()
	pos := line[0].Pos
	cond, err := parseExprTokens(line[1:])
	if err != nil {
		return nil, err
	}
	if cond.ValueType() != ast.TypeBoolean {
		return nil, newError(ErrConditionalConditionNotBooleanType, pos, "if condition must be boolean")
	}
	then, stop, err := p.parseBodyLines(inFunction, []token.Kind{token.KwElse, token.KwEndif})
	if err != nil {
		return nil, err
	}
	if stop == token.EOF {
		return nil, newError(ErrMismatchedConditional, pos, "missing endif")
	}
	var els []ast.Node
	if stop == token.KwElse {
		els, stop, err = p.parseBodyLines(inFunction, []token.Kind{token.KwEndif})
		if err != nil {
			return nil, err
		}
		if stop == token.EOF {
			return nil, newError(ErrMismatchedElse, pos, "missing endif after else")
		}
	}
	return ast.NewConditional(pos, cond, then, els), nil
}

func (p *Parser) parseLoop(inFunction bool) (ast.Node, error) {
	line := p.readLine()
	pos := line[0].Pos
	cond, err := parseExprTokens(line[1:])
	if err != nil {
		return nil, err
	}
	if cond.ValueType() != ast.TypeBoolean {
		return nil, newError(ErrConditionalConditionNotBooleanType, pos, "while condition must be boolean")
	}
	body, stop, err := p.parseBodyLines(inFunction, []token.Kind{token.KwEndwhile})
	if err != nil {
		return nil, err
	}
	if stop == token.EOF {
		return nil, newError(ErrMismatchedLoop, pos, "missing endwhile")
	}
	return ast.NewLoop(pos, cond, body), nil
}

func (p *Parser) parseFunctionDef() (ast.Node, error) {
	line := p.readLine()
	pos := line[0].Pos
	if len(line) < 4 || line[1].Kind != token.Ident || line[2].Kind != token.LParen {
		return nil, newError(ErrInvalidFunctionDefinition, pos, "malformed function header")
	}
	name := line[1].Literal
	// find matching RParen
	depth := 0
	end := -1
	for i := 2; i < len(line); i++ {
		switch line[i].Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				end = i
			}
		}
		if end >= 0 {
			break
		}
	}
	if end < 0 || end != len(line)-1 {
		return nil, newError(ErrInvalidFunctionDefinition, pos, "malformed function parameter list")
	}
	params, err := parseParamList(line[3:end])
	if err != nil {
		return nil, err
	}
	body, stop, err := p.parseBodyLines(true, []token.Kind{token.KwEndfn})
	if err != nil {
		return nil, err
	}
	if stop == token.EOF {
		return nil, newError(ErrMismatchedEndfn, pos, "missing endfn")
	}
	if !bodyEndsInReturn(body) {
		return nil, newError(ErrMissingReturn, pos, "function %q does not return on every path", name)
	}
	return ast.NewFunctionDef(pos, name, params, body), nil
}

func parseParamList(toks []token.Token) ([]string, error) {
	if len(toks) == 0 {
		return nil, nil
	}
	ids, err := parseIdentList(toks)
	if err != nil {
		return nil, newError(ErrInvalidFunctionDefinition, toks[0].Pos, "malformed parameter list")
	}
	return ids, nil
}

func (p *Parser) parseReturn() (ast.Node, error) {
	line := p.readLine()
	pos := line[0].Pos
	val, err := parseExprTokens(line[1:])
	if err != nil {
		return nil, err
	}
	if val.ValueType() != ast.TypeNumber {
		return nil, newError(ErrAssignRHSNotNumberType, pos, "return expression must be number-typed")
	}
	return ast.NewFunctionReturn(pos, val), nil
}

// bodyEndsInReturn reports whether body provably returns on every control
// path: its last statement is a FunctionReturn, or a Conditional whose then
// and else branches both recursively return.
func bodyEndsInReturn(body []ast.Node) bool {
	if len(body) == 0 {
		return false
	}
	switch n := body[len(body)-1].(type) {
	case *ast.FunctionReturn:
		return true
	case *ast.Conditional:
		return len(n.Else) > 0 && bodyEndsInReturn(n.Then) && bodyEndsInReturn(n.Else)
	default:
		return false
	}
}

// checkCallArity walks the whole program (body, function bodies, nested
// constructs) and verifies every FunctionCall's argument count against the
// matching top-level function definition. Calls to unknown names are left
// for the assembler's unresolved_identifier check.
func checkCallArity(prog *ast.Program, arity map[string]int) error {
	var walk func(ast.Node) error
	walkAll := func(nodes []ast.Node) error {
		for _, n := range nodes {
			if err := walk(n); err != nil {
				return err
			}
		}
		return nil
	}
	walk = func(n ast.Node) error {
		switch v := n.(type) {
		case *ast.Assignment:
			return firstErr(walk(v.LHS), walk(v.RHS))
		case *ast.Update:
			return firstErr(walk(v.LHS), walk(v.RHS))
		case *ast.Arithmetic:
			return firstErr(walk(v.LHS), walk(v.RHS))
		case *ast.Relational:
			return firstErr(walk(v.LHS), walk(v.RHS))
		case *ast.Unary:
			return walk(v.Operand)
		case *ast.Conditional:
			if err := walk(v.Condition); err != nil {
				return err
			}
			return firstErr(walkAll(v.Then), walkAll(v.Else))
		case *ast.Loop:
			if err := walk(v.Condition); err != nil {
				return err
			}
			return walkAll(v.Body)
		case *ast.FunctionReturn:
			return walk(v.Value)
		case *ast.FunctionCall:
			if want, ok := arity[v.Callee]; ok && want != len(v.Args) {
				return newError(ErrInvalidFunctionDefinition, v.Pos(), "call to %q: got %d arguments, want %d", v.Callee, len(v.Args), want)
			}
			return walkAll(v.Args)
		}
		return nil
	}
	if err := walkAll(prog.Body); err != nil {
		return err
	}
	for _, fn := range prog.Functions {
		if err := walkAll(fn.Body); err != nil {
			return err
		}
	}
	return nil
}

func firstErr(errs ...error) error {
	for _, e := range errs {
		if e != nil {
			return e
		}
	}
	return nil
}
