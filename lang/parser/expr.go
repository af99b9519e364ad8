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

package parser

import (
	"strconv"

	"github.com/Weckyy702/RaychelScript-sub000/lang/ast"
	"github.com/Weckyy702/RaychelScript-sub000/lang/token"
)

// parseExprTokens is the entry point for one line's worth of tokens: a
// body-line, or a condition expression. It recognizes the statement-shaped
// forms (compound-assign, assignment, relational) before falling back to
// parseArithExpr for plain arithmetic/unary/leaf expressions.
func parseExprTokens(toks []token.Token) (ast.Node, error) {
	if len(toks) == 0 {
		return nil, newError(ErrInvalidConstruct, token.Position{}, "empty expression")
	}

	if n, ok, err := tryParseUpdate(toks); ok || err != nil {
		return n, err
	}
	if n, ok, err := tryParseAssignment(toks); ok || err != nil {
		return n, err
	}
	if n, ok, err := tryParseRelational(toks); ok || err != nil {
		return n, err
	}
	if len(toks) == 1 {
		switch toks[0].Kind {
		case token.KwTrue:
			return ast.NewRelational(toks[0].Pos, ast.NewNumericConstant(toks[0].Pos, 0), ast.NewNumericConstant(toks[0].Pos, 0), ast.Eq), nil
		case token.KwFalse:
			return ast.NewRelational(toks[0].Pos, ast.NewNumericConstant(toks[0].Pos, 0), ast.NewNumericConstant(toks[0].Pos, 1), ast.Eq), nil
		}
	}
	return parseArithExpr(toks)
}

// tryParseUpdate recognizes '<ident> <arith-op> = <expr>'.
func tryParseUpdate(toks []token.Token) (ast.Node, bool, error) {
	if len(toks) < 4 || toks[0].Kind != token.Ident {
		return nil, false, nil
	}
	op, ok := arithOpKind(toks[1].Kind)
	if !ok || toks[2].Kind != token.Assign {
		return nil, false, nil
	}
	rhs, err := parseArithExpr(toks[3:])
	if err != nil {
		return nil, true, err
	}
	if rhs.ValueType() != ast.TypeNumber {
		return nil, true, newError(ErrAssignRHSNotNumberType, toks[3].Pos, "compound-assign RHS must be number-typed")
	}
	lhs := ast.NewVariableRef(toks[0].Pos, toks[0].Literal)
	return ast.NewUpdate(toks[0].Pos, lhs, rhs, op), true, nil
}

// tryParseAssignment recognizes '<lvalue> = <expr>' with the rightmost
// top-level '=' as the split point.
func tryParseAssignment(toks []token.Token) (ast.Node, bool, error) {
	ds := depthsOf(toks)
	idx := -1
	for i := len(toks) - 1; i >= 0; i-- {
		if toks[i].Kind == token.Assign && ds[i] == 0 {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, false, nil
	}
	lhsToks, rhsToks := toks[:idx], toks[idx+1:]
	lhs, err := parseLvalue(lhsToks)
	if err != nil {
		return nil, true, err
	}
	rhs, isRel, err := tryParseRelational(rhsToks)
	if err == nil && !isRel {
		rhs, err = parseArithExpr(rhsToks)
	}
	if err != nil {
		return nil, true, err
	}
	if rhs.ValueType() != ast.TypeNumber {
		return nil, true, newError(ErrAssignRHSNotNumberType, toks[idx].Pos, "assignment RHS must be number-typed")
	}
	return ast.NewAssignment(toks[idx].Pos, lhs, rhs), true, nil
}

func parseLvalue(toks []token.Token) (ast.Node, error) {
	if len(toks) == 0 {
		return nil, newError(ErrAssignToNonValueRef, token.Position{}, "missing assignment target")
	}
	if (toks[0].Kind == token.KwLet || toks[0].Kind == token.KwVar) && len(toks) == 2 && toks[1].Kind == token.Ident {
		return ast.NewVariableDecl(toks[0].Pos, toks[1].Literal, toks[0].Kind == token.KwLet), nil
	}
	if len(toks) == 1 && toks[0].Kind == token.Ident {
		return ast.NewVariableRef(toks[0].Pos, toks[0].Literal), nil
	}
	n, err := parseArithExpr(toks)
	if err != nil {
		return nil, err
	}
	if !n.IsLvalue() {
		return nil, newError(ErrAssignToNonValueRef, toks[0].Pos, "assignment target is not an lvalue")
	}
	return n, nil
}

// tryParseRelational recognizes a single top-level '=='/'!='/'<'/'>'.
func tryParseRelational(toks []token.Token) (ast.Node, bool, error) {
	ds := depthsOf(toks)
	idx := -1
	for i, t := range toks {
		if ds[i] != 0 {
			continue
		}
		switch t.Kind {
		case token.Eq, token.Neq, token.Lt, token.Gt:
			if idx >= 0 {
				return nil, true, newError(ErrInvalidConstruct, t.Pos, "relational operators are not chainable")
			}
			idx = i
		}
	}
	if idx < 0 {
		return nil, false, nil
	}
	lhs, err := parseArithExpr(toks[:idx])
	if err != nil {
		return nil, true, err
	}
	if lhs.ValueType() != ast.TypeNumber {
		return nil, true, newError(ErrRelationalOpLHSNotNumberType, toks[idx].Pos, "relational LHS must be number-typed")
	}
	rhs, err := parseArithExpr(toks[idx+1:])
	if err != nil {
		return nil, true, err
	}
	if rhs.ValueType() != ast.TypeNumber {
		return nil, true, newError(ErrRelationalOpRHSNotNumberType, toks[idx].Pos, "relational RHS must be number-typed")
	}
	return ast.NewRelational(toks[idx].Pos, lhs, rhs, relOpKind(toks[idx].Kind)), true, nil
}

func arithOpKind(k token.Kind) (ast.ArithOp, bool) {
	switch k {
	case token.Plus:
		return ast.Add, true
	case token.Minus:
		return ast.Sub, true
	case token.Star:
		return ast.Mul, true
	case token.Slash:
		return ast.Div, true
	case token.Caret:
		return ast.Pow, true
	}
	return 0, false
}

func relOpKind(k token.Kind) ast.RelOp {
	switch k {
	case token.Eq:
		return ast.Eq
	case token.Neq:
		return ast.Neq
	case token.Lt:
		return ast.Lt
	default:
		return ast.Gt
	}
}

// depthsOf returns, for each token, its paren/magnitude-bar nesting depth:
// 0 means "not inside any (...) or |...|", so it's a candidate split point
// for a top-level operator scan.
func depthsOf(toks []token.Token) []int {
	ds := make([]int, len(toks))
	depth := 0
	inPipe := false
	for i, t := range toks {
		d := depth
		if inPipe {
			d++
		}
		ds[i] = d
		switch t.Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
		case token.Pipe:
			inPipe = !inPipe
		}
	}
	return ds
}

// parseArithExpr implements the "rightmost lowest-precedence operator
// outside parentheses" rule: +/- (lowest) are searched rightmost-first,
// then */, then ^ is searched leftmost (to get right-associativity, since
// repeatedly splitting at the rightmost ^ would instead yield
// left-associative grouping).
func parseArithExpr(toks []token.Token) (ast.Node, error) {
	if len(toks) == 0 {
		return nil, newError(ErrInvalidConstruct, token.Position{}, "empty expression")
	}
	ds := depthsOf(toks)

	if idx, ok := findBinary(toks, ds, rightmost, token.Plus, token.Minus); ok {
		return buildArith(toks, idx, ds)
	}
	if idx, ok := findBinary(toks, ds, rightmost, token.Star, token.Slash); ok {
		return buildArith(toks, idx, ds)
	}
	if idx, ok := findBinary(toks, ds, leftmost, token.Caret); ok {
		return buildArith(toks, idx, ds)
	}
	return parseUnaryOrLeaf(toks)
}

func buildArith(toks []token.Token, idx int, ds []int) (ast.Node, error) {
	lhs, err := parseArithExpr(toks[:idx])
	if err != nil {
		return nil, err
	}
	if lhs.ValueType() != ast.TypeNumber {
		return nil, newError(ErrArithOpNotNumberType, toks[idx].Pos, "arithmetic LHS must be number-typed")
	}
	rhs, err := parseArithExpr(toks[idx+1:])
	if err != nil {
		return nil, err
	}
	if rhs.ValueType() != ast.TypeNumber {
		return nil, newError(ErrArithOpNotNumberType, toks[idx].Pos, "arithmetic RHS must be number-typed")
	}
	op, _ := arithOpKind(toks[idx].Kind)
	return ast.NewArithmetic(toks[idx].Pos, lhs, rhs, op), nil
}

type scanDir int

const (
	rightmost scanDir = iota
	leftmost
)

func findBinary(toks []token.Token, ds []int, dir scanDir, kinds ...token.Kind) (int, bool) {
	match := func(i int) bool {
		if ds[i] != 0 {
			return false
		}
		for _, k := range kinds {
			if toks[i].Kind == k {
				return isBinaryContext(toks, i)
			}
		}
		return false
	}
	if dir == rightmost {
		for i := len(toks) - 1; i >= 0; i-- {
			if match(i) {
				return i, true
			}
		}
		return 0, false
	}
	for i := 0; i < len(toks); i++ {
		if match(i) {
			return i, true
		}
	}
	return 0, false
}

// isBinaryContext distinguishes a binary + or - from a unary leading sign:
// it's binary only if preceded by something that can end a value.
func isBinaryContext(toks []token.Token, i int) bool {
	if i == 0 {
		return false
	}
	switch toks[i-1].Kind {
	case token.Number, token.Ident, token.RParen, token.Pipe, token.Bang, token.KwTrue, token.KwFalse:
		return true
	}
	return false
}

// parseUnaryOrLeaf handles everything with no top-level binary operator:
// postfix factorial, leading unary +/-, surrounding |...| magnitude,
// parenthesized sub-expressions, function calls, declarations, and the
// number/identifier leaves.
func parseUnaryOrLeaf(toks []token.Token) (ast.Node, error) {
	if len(toks) == 0 {
		return nil, newError(ErrInvalidConstruct, token.Position{}, "empty expression")
	}

	if toks[len(toks)-1].Kind == token.Bang {
		operand, err := parseUnaryOrLeaf(toks[:len(toks)-1])
		if err != nil {
			return nil, err
		}
		if operand.ValueType() != ast.TypeNumber {
			return nil, newError(ErrUnaryOpOperandNotNumberType, toks[len(toks)-1].Pos, "factorial operand must be number-typed")
		}
		return ast.NewUnary(toks[len(toks)-1].Pos, operand, ast.UnaryFactorial), nil
	}

	if toks[0].Kind == token.Pipe && toks[len(toks)-1].Kind == token.Pipe && len(toks) > 1 {
		inner := toks[1 : len(toks)-1]
		operand, err := parseArithExpr(inner)
		if err != nil {
			return nil, err
		}
		if operand.ValueType() != ast.TypeNumber {
			return nil, newError(ErrUnaryOpOperandNotNumberType, toks[0].Pos, "magnitude operand must be number-typed")
		}
		return ast.NewUnary(toks[0].Pos, operand, ast.UnaryMagnitude), nil
	}

	if toks[0].Kind == token.Plus || toks[0].Kind == token.Minus {
		operand, err := parseUnaryOrLeaf(toks[1:])
		if err != nil {
			return nil, err
		}
		if operand.ValueType() != ast.TypeNumber {
			return nil, newError(ErrUnaryOpOperandNotNumberType, toks[0].Pos, "unary operand must be number-typed")
		}
		op := ast.UnaryPlus
		if toks[0].Kind == token.Minus {
			op = ast.UnaryMinus
		}
		return ast.NewUnary(toks[0].Pos, operand, op), nil
	}

	if toks[0].Kind == token.LParen && toks[len(toks)-1].Kind == token.RParen && matchingParen(toks) {
		return parseArithExpr(toks[1 : len(toks)-1])
	}

	if toks[0].Kind == token.Ident && len(toks) >= 3 && toks[1].Kind == token.LParen && toks[len(toks)-1].Kind == token.RParen && matchingParenFrom(toks, 1) {
		return parseCall(toks)
	}

	if (toks[0].Kind == token.KwLet || toks[0].Kind == token.KwVar) && len(toks) == 2 && toks[1].Kind == token.Ident {
		return ast.NewVariableDecl(toks[0].Pos, toks[1].Literal, toks[0].Kind == token.KwLet), nil
	}

	if len(toks) == 1 {
		switch toks[0].Kind {
		case token.Number:
			v, err := strconv.ParseFloat(toks[0].Literal, 64)
			if err != nil {
				return nil, newError(ErrInvalidNumericConstant, toks[0].Pos, "invalid numeric constant %q", toks[0].Literal)
			}
			return ast.NewNumericConstant(toks[0].Pos, v), nil
		case token.Ident:
			return ast.NewVariableRef(toks[0].Pos, toks[0].Literal), nil
		}
	}

	return nil, newError(ErrInvalidConstruct, toks[0].Pos, "invalid expression")
}

func matchingParen(toks []token.Token) bool { return matchingParenFrom(toks, 0) }

// matchingParenFrom reports whether the LParen at toks[open] is closed
// exactly by the final token of toks (i.e. the whole remaining span is one
// parenthesized group), not by some earlier RParen.
func matchingParenFrom(toks []token.Token, open int) bool {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].Kind {
		case token.LParen:
			depth++
		case token.RParen:
			depth--
			if depth == 0 {
				return i == len(toks)-1
			}
		}
	}
	return false
}

func parseCall(toks []token.Token) (ast.Node, error) {
	name := toks[0]
	inner := toks[2 : len(toks)-1]
	args, err := splitArgs(inner)
	if err != nil {
		return nil, err
	}
	var nodes []ast.Node
	for _, a := range args {
		n, err := parseArithExpr(a)
		if err != nil {
			return nil, err
		}
		if n.ValueType() != ast.TypeNumber {
			return nil, newError(ErrCallArgNotNumberType, name.Pos, "call argument must be number-typed")
		}
		nodes = append(nodes, n)
	}
	return ast.NewFunctionCall(name.Pos, name.Literal, nodes), nil
}

// splitArgs splits a parenthesized argument list on top-level commas.
func splitArgs(toks []token.Token) ([][]token.Token, error) {
	if len(toks) == 0 {
		return nil, nil
	}
	ds := depthsOf(toks)
	var args [][]token.Token
	start := 0
	for i, t := range toks {
		if t.Kind == token.Comma && ds[i] == 0 {
			args = append(args, toks[start:i])
			start = i + 1
		}
	}
	args = append(args, toks[start:])
	for _, a := range args {
		if len(a) == 0 {
			return nil, newError(ErrInvalidConstruct, toks[0].Pos, "empty call argument")
		}
	}
	return args, nil
}
