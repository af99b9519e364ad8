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

// Package ast defines RaychelScript's abstract syntax tree: a closed set of
// node kinds, each carrying fixed value_type / is_lvalue / has_side_effect
// attributes as methods rather than stored flags (see spec §9's note on
// replacing type-erased payloads with a proper sum type).
package ast

import "github.com/Weckyy702/RaychelScript-sub000/lang/token"

// ValueType is what an expression node produces when evaluated.
type ValueType int

const (
	TypeNone ValueType = iota
	TypeBoolean
	TypeNumber
	TypeVariableRef
)

func (v ValueType) String() string {
	switch v {
	case TypeNone:
		return "none"
	case TypeBoolean:
		return "boolean"
	case TypeNumber:
		return "number"
	case TypeVariableRef:
		return "variable_ref"
	}
	return "unknown"
}

// Node is any element of the tree. ValueType, IsLvalue and HasSideEffect are
// fixed per concrete kind, per the table in spec §3.
type Node interface {
	Pos() token.Position
	ValueType() ValueType
	IsLvalue() bool
	HasSideEffect() bool
}

// ArithOp is the operator of an Arithmetic node.
type ArithOp int

const (
	Add ArithOp = iota
	Sub
	Mul
	Div
	Pow
)

// RelOp is the operator of a Relational node.
type RelOp int

const (
	Eq RelOp = iota
	Neq
	Lt
	Gt
)

// UnaryOp is the operator of a Unary node.
type UnaryOp int

const (
	UnaryPlus UnaryOp = iota
	UnaryMinus
	UnaryFactorial
	UnaryMagnitude
)

type base struct {
	P token.Position
}

func (b base) Pos() token.Position { return b.P }

// Assignment: lhs = rhs. value_type none, not an lvalue, has a side effect.
type Assignment struct {
	base
	LHS, RHS Node
}

func (*Assignment) ValueType() ValueType { return TypeNone }
func (*Assignment) IsLvalue() bool       { return false }
func (*Assignment) HasSideEffect() bool  { return true }

// Arithmetic: lhs op rhs, op in {+,-,*,/,^}. value_type number.
type Arithmetic struct {
	base
	LHS, RHS Node
	Op       ArithOp
}

func (*Arithmetic) ValueType() ValueType { return TypeNumber }
func (*Arithmetic) IsLvalue() bool       { return false }
func (*Arithmetic) HasSideEffect() bool  { return false }

// Update is a compound assignment: lhs op= rhs. Has a side effect.
type Update struct {
	base
	LHS, RHS Node
	Op       ArithOp
}

func (*Update) ValueType() ValueType { return TypeNone }
func (*Update) IsLvalue() bool       { return false }
func (*Update) HasSideEffect() bool  { return true }

// VariableDecl introduces a name (let/var). It is itself an lvalue and has a
// side effect (it allocates storage).
type VariableDecl struct {
	base
	Name    string
	IsConst bool
}

func (*VariableDecl) ValueType() ValueType { return TypeVariableRef }
func (*VariableDecl) IsLvalue() bool       { return true }
func (*VariableDecl) HasSideEffect() bool  { return true }

// VariableRef reads a previously declared name.
type VariableRef struct {
	base
	Name string
}

func (*VariableRef) ValueType() ValueType { return TypeNumber }
func (*VariableRef) IsLvalue() bool       { return true }
func (*VariableRef) HasSideEffect() bool  { return false }

// NumericConstant is a literal double.
type NumericConstant struct {
	base
	Value float64
}

func (*NumericConstant) ValueType() ValueType { return TypeNumber }
func (*NumericConstant) IsLvalue() bool       { return false }
func (*NumericConstant) HasSideEffect() bool  { return false }

// Unary is a prefix/postfix/surrounding unary operator over one operand.
type Unary struct {
	base
	Operand Node
	Op      UnaryOp
}

func (*Unary) ValueType() ValueType { return TypeNumber }
func (*Unary) IsLvalue() bool       { return false }
func (*Unary) HasSideEffect() bool  { return false }

// Conditional is if/else/endif.
type Conditional struct {
	base
	Condition  Node
	Then, Else []Node
}

func (*Conditional) ValueType() ValueType { return TypeNone }
func (*Conditional) IsLvalue() bool       { return false }
func (*Conditional) HasSideEffect() bool  { return true }

// Relational is a comparison producing a boolean.
type Relational struct {
	base
	LHS, RHS Node
	Op       RelOp
}

func (*Relational) ValueType() ValueType { return TypeBoolean }
func (*Relational) IsLvalue() bool       { return false }
func (*Relational) HasSideEffect() bool  { return false }

// Loop is while/endwhile.
type Loop struct {
	base
	Condition Node
	Body      []Node
}

func (*Loop) ValueType() ValueType { return TypeNone }
func (*Loop) IsLvalue() bool       { return false }
func (*Loop) HasSideEffect() bool  { return true }

// InlinePush marks entry into a scope produced by inlining a literal-true
// conditional (see optimizer.OptimizeConditionalsLight). It carries no
// payload.
type InlinePush struct{ base }

func (*InlinePush) ValueType() ValueType { return TypeNone }
func (*InlinePush) IsLvalue() bool       { return false }
func (*InlinePush) HasSideEffect() bool  { return true }

// InlinePop marks exit from such a scope.
type InlinePop struct{ base }

func (*InlinePop) ValueType() ValueType { return TypeNone }
func (*InlinePop) IsLvalue() bool       { return false }
func (*InlinePop) HasSideEffect() bool  { return true }

// FunctionCall invokes a top-level function definition by name.
type FunctionCall struct {
	base
	Callee string
	Args   []Node
}

func (*FunctionCall) ValueType() ValueType { return TypeNumber }
func (*FunctionCall) IsLvalue() bool       { return false }
func (*FunctionCall) HasSideEffect() bool  { return true }

// FunctionReturn is a return statement, legal only inside a function body.
type FunctionReturn struct {
	base
	Value Node
}

func (*FunctionReturn) ValueType() ValueType { return TypeNone }
func (*FunctionReturn) IsLvalue() bool       { return false }
func (*FunctionReturn) HasSideEffect() bool  { return true }

// FunctionDef is a top-level fn declaration. The parser returns it from
// body-line parsing like any other Node, and parseProgram then moves every
// top-level one out of Program.Body into Program.Functions. Supplemented
// from original_source's function-table handling, which the distilled spec
// describes only through the grammar's fn/endfn production.
type FunctionDef struct {
	base
	Name   string
	Params []string
	Body   []Node
}

func (f *FunctionDef) Pos() token.Position { return f.base.Pos() }

func (*FunctionDef) ValueType() ValueType { return TypeNone }
func (*FunctionDef) IsLvalue() bool       { return false }
func (*FunctionDef) HasSideEffect() bool  { return true }

// NewAssignment, NewArithmetic, ... constructors attach a Position to each
// node; callers (the parser) never construct node values directly so the
// base field can stay unexported.

func NewAssignment(pos token.Position, lhs, rhs Node) *Assignment {
	return &Assignment{base{pos}, lhs, rhs}
}

func NewArithmetic(pos token.Position, lhs, rhs Node, op ArithOp) *Arithmetic {
	return &Arithmetic{base{pos}, lhs, rhs, op}
}

func NewUpdate(pos token.Position, lhs, rhs Node, op ArithOp) *Update {
	return &Update{base{pos}, lhs, rhs, op}
}

func NewVariableDecl(pos token.Position, name string, isConst bool) *VariableDecl {
	return &VariableDecl{base{pos}, name, isConst}
}

func NewVariableRef(pos token.Position, name string) *VariableRef {
	return &VariableRef{base{pos}, name}
}

func NewNumericConstant(pos token.Position, v float64) *NumericConstant {
	return &NumericConstant{base{pos}, v}
}

func NewUnary(pos token.Position, operand Node, op UnaryOp) *Unary {
	return &Unary{base{pos}, operand, op}
}

func NewConditional(pos token.Position, cond Node, then, els []Node) *Conditional {
	return &Conditional{base{pos}, cond, then, els}
}

func NewRelational(pos token.Position, lhs, rhs Node, op RelOp) *Relational {
	return &Relational{base{pos}, lhs, rhs, op}
}

func NewLoop(pos token.Position, cond Node, body []Node) *Loop {
	return &Loop{base{pos}, cond, body}
}

func NewInlinePush(pos token.Position) *InlinePush { return &InlinePush{base{pos}} }
func NewInlinePop(pos token.Position) *InlinePop   { return &InlinePop{base{pos}} }

func NewFunctionCall(pos token.Position, callee string, args []Node) *FunctionCall {
	return &FunctionCall{base{pos}, callee, args}
}

func NewFunctionReturn(pos token.Position, v Node) *FunctionReturn {
	return &FunctionReturn{base{pos}, v}
}

func NewFunctionDef(pos token.Position, name string, params []string, body []Node) *FunctionDef {
	return &FunctionDef{base{pos}, name, params, body}
}
