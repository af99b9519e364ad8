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

package asm

import (
	"github.com/Weckyy702/RaychelScript-sub000/lang/ast"
	"github.com/Weckyy702/RaychelScript-sub000/lang/token"
	"github.com/Weckyy702/RaychelScript-sub000/vm"
)

func (f *frame) lowerBody(body []ast.Node) error {
	for _, n := range body {
		if err := f.lowerStmt(n); err != nil {
			return err
		}
	}
	return nil
}

func (f *frame) lowerStmt(n ast.Node) error {
	f.resetIntermediates()
	switch v := n.(type) {
	case *ast.Assignment:
		return f.lowerAssignment(v)
	case *ast.Update:
		return f.lowerUpdate(v)
	case *ast.VariableDecl:
		_, err := f.declare(v.Name, v.Pos())
		return err
	case *ast.Conditional:
		return f.lowerConditional(v)
	case *ast.Loop:
		return f.lowerLoop(v)
	case *ast.InlinePush:
		f.pushScope()
		return nil
	case *ast.InlinePop:
		return f.popScope(v.Pos())
	case *ast.FunctionReturn:
		return f.lowerReturn(v)
	case *ast.Relational:
		return f.lowerCondition(v)
	case *ast.Arithmetic, *ast.Unary, *ast.FunctionCall, *ast.NumericConstant, *ast.VariableRef:
		// A bare expression statement. All but a call reach here only at
		// optimization level none (RemoveIfNoSideEffects drops them from
		// light upward); a call has a side effect and is kept at every
		// level. It's still lowered, to surface an unresolved_identifier the same way
		// a kept statement would; the computed value itself is discarded.
		_, err := f.lowerExpr(n)
		return err
	default:
		return newError(ErrNotImplemented, n.Pos(), "cannot lower %T as a statement", n)
	}
}

func (f *frame) lowerAssignment(v *ast.Assignment) error {
	val, err := f.lowerExpr(v.RHS)
	if err != nil {
		return err
	}
	dst, err := f.lowerLValue(v.LHS)
	if err != nil {
		return err
	}
	if val != dst {
		f.emit(vm.OpMov, uint8(val), uint8(dst))
	}
	return nil
}

func (f *frame) lowerLValue(n ast.Node) (vm.MemoryIndex, error) {
	switch v := n.(type) {
	case *ast.VariableDecl:
		return f.declare(v.Name, v.Pos())
	case *ast.VariableRef:
		return f.resolve(v.Name, v.Pos())
	}
	return 0, newError(ErrNotImplemented, n.Pos(), "unsupported assignment target %T", n)
}

func (f *frame) lowerUpdate(v *ast.Update) error {
	ref, ok := v.LHS.(*ast.VariableRef)
	if !ok {
		return newError(ErrNotImplemented, v.Pos(), "compound-assign target must be a plain identifier, got %T", v.LHS)
	}
	dst, err := f.resolve(ref.Name, ref.Pos())
	if err != nil {
		return err
	}
	val, err := f.lowerExpr(v.RHS)
	if err != nil {
		return err
	}
	op, err := updateOpcode(v.Op, v.Pos())
	if err != nil {
		return err
	}
	f.emit(op, uint8(dst), uint8(val))
	return nil
}

// lowerExpr lowers n to a value-producing location: an immediate slot, a
// named/scratch cell, or the accumulator (vm.AIndex) for anything computed
// by an opcode that writes its result there.
func (f *frame) lowerExpr(n ast.Node) (vm.MemoryIndex, error) {
	switch v := n.(type) {
	case *ast.NumericConstant:
		return f.a.immediate(v.Value), nil
	case *ast.VariableRef:
		return f.resolve(v.Name, v.Pos())
	case *ast.Arithmetic:
		op, err := arithOpcode(v.Op, v.Pos())
		if err != nil {
			return 0, err
		}
		return f.lowerBinary(op, v.LHS, v.RHS)
	case *ast.Unary:
		return f.lowerUnary(v)
	case *ast.FunctionCall:
		return f.lowerCall(v)
	}
	return 0, newError(ErrUnknownArithmeticExpression, n.Pos(), "cannot lower %T as a value", n)
}

// lowerBinary evaluates lhs, spills it out of the accumulator if it landed
// there (otherwise evaluating rhs could clobber it before the op reads it),
// evaluates rhs, then emits op. Every arithmetic/relational opcode writes
// its result to the accumulator, so the caller always gets vm.AIndex back.
func (f *frame) lowerBinary(op vm.OpCode, lhsNode, rhsNode ast.Node) (vm.MemoryIndex, error) {
	lhs, err := f.lowerExpr(lhsNode)
	if err != nil {
		return 0, err
	}
	if lhs == vm.AIndex {
		lhs = f.spill(lhs)
	}
	rhs, err := f.lowerExpr(rhsNode)
	if err != nil {
		return 0, err
	}
	f.emit(op, uint8(lhs), uint8(rhs))
	return vm.AIndex, nil
}

func (f *frame) spill(v vm.MemoryIndex) vm.MemoryIndex {
	dst := f.scratch()
	f.emit(vm.OpMov, uint8(v), uint8(dst))
	return dst
}

func (f *frame) lowerUnary(v *ast.Unary) (vm.MemoryIndex, error) {
	switch v.Op {
	case ast.UnaryPlus:
		return f.lowerExpr(v.Operand)
	case ast.UnaryMinus:
		operand, err := f.lowerExpr(v.Operand)
		if err != nil {
			return 0, err
		}
		f.emit(vm.OpSub, uint8(f.a.immediate(0)), uint8(operand))
		return vm.AIndex, nil
	case ast.UnaryFactorial:
		operand, err := f.lowerExpr(v.Operand)
		if err != nil {
			return 0, err
		}
		f.emit(vm.OpFac, uint8(operand), 0)
		return vm.AIndex, nil
	case ast.UnaryMagnitude:
		operand, err := f.lowerExpr(v.Operand)
		if err != nil {
			return 0, err
		}
		f.emit(vm.OpMag, uint8(operand), 0)
		return vm.AIndex, nil
	}
	return 0, newError(ErrUnknownArithmeticExpression, v.Pos(), "unsupported unary operator %v", v.Op)
}

// lowerCall marshals each argument into the callee frame's parameter slots
// (slot i+1, mirroring how assembleFunction pre-allocates params at 1..n
// and leaves 0 for the accumulator) and jumps to its frame. put reads its
// source operand immediately, so there's no need to spill an argument that
// happens to still be sitting in the accumulator before evaluating the
// next one.
func (f *frame) lowerCall(v *ast.FunctionCall) (vm.MemoryIndex, error) {
	frameID, ok := f.a.frameOf[v.Callee]
	if !ok {
		return 0, newError(ErrUnresolvedIdentifier, v.Pos(), "call to undefined function %q", v.Callee)
	}
	for i, arg := range v.Args {
		val, err := f.lowerExpr(arg)
		if err != nil {
			return 0, err
		}
		f.emit(vm.OpPut, uint8(val), uint8(i+1))
	}
	f.emit(vm.OpJsr, uint8(frameID), 0)
	return vm.AIndex, nil
}

func (f *frame) lowerReturn(v *ast.FunctionReturn) error {
	val, err := f.lowerExpr(v.Value)
	if err != nil {
		return err
	}
	if val != vm.AIndex {
		f.emit(vm.OpMov, uint8(val), uint8(vm.AIndex))
	}
	f.emit(vm.OpRet, 0, 0)
	return nil
}

// lowerCondition emits the comparison that backs a Relational: it sets the
// VM's flag register rather than producing a memory-resident value, so it
// has no return value of its own (only Conditional, Loop, and a bare
// expression statement ever reach it).
func (f *frame) lowerCondition(v *ast.Relational) error {
	lhs, err := f.lowerExpr(v.LHS)
	if err != nil {
		return err
	}
	if lhs == vm.AIndex {
		lhs = f.spill(lhs)
	}
	rhs, err := f.lowerExpr(v.RHS)
	if err != nil {
		return err
	}
	op, err := relOpcode(v.Op, v.Pos())
	if err != nil {
		return err
	}
	f.emit(op, uint8(lhs), uint8(rhs))
	return nil
}

func (f *frame) lowerConditional(v *ast.Conditional) error {
	cond, ok := v.Condition.(*ast.Relational)
	if !ok {
		return newError(ErrUnknownArithmeticExpression, v.Pos(), "conditional condition must be relational, got %T", v.Condition)
	}
	if err := f.lowerCondition(cond); err != nil {
		return err
	}
	jpz := f.emitPlaceholder(vm.OpJpz)

	f.pushScope()
	if err := f.lowerBody(v.Then); err != nil {
		return err
	}
	if err := f.popScope(v.Pos()); err != nil {
		return err
	}

	if len(v.Else) == 0 {
		f.patch(jpz, uint8(len(f.instrs)))
		return nil
	}

	jmp := f.emitPlaceholder(vm.OpJmp)
	f.patch(jpz, uint8(len(f.instrs)))

	f.pushScope()
	if err := f.lowerBody(v.Else); err != nil {
		return err
	}
	if err := f.popScope(v.Pos()); err != nil {
		return err
	}
	f.patch(jmp, uint8(len(f.instrs)))
	return nil
}

func (f *frame) lowerLoop(v *ast.Loop) error {
	cond, ok := v.Condition.(*ast.Relational)
	if !ok {
		return newError(ErrUnknownArithmeticExpression, v.Pos(), "loop condition must be relational, got %T", v.Condition)
	}
	start := len(f.instrs)
	if err := f.lowerCondition(cond); err != nil {
		return err
	}
	jpz := f.emitPlaceholder(vm.OpJpz)

	f.pushScope()
	if err := f.lowerBody(v.Body); err != nil {
		return err
	}
	if err := f.popScope(v.Pos()); err != nil {
		return err
	}

	f.emit(vm.OpJmp, uint8(start), 0)
	f.patch(jpz, uint8(len(f.instrs)))
	return nil
}

func arithOpcode(op ast.ArithOp, pos token.Position) (vm.OpCode, error) {
	switch op {
	case ast.Add:
		return vm.OpAdd, nil
	case ast.Sub:
		return vm.OpSub, nil
	case ast.Mul:
		return vm.OpMul, nil
	case ast.Div:
		return vm.OpDiv, nil
	case ast.Pow:
		return vm.OpPow, nil
	}
	return 0, newError(ErrUnknownArithmeticExpression, pos, "unsupported arithmetic operator %v", op)
}

func updateOpcode(op ast.ArithOp, pos token.Position) (vm.OpCode, error) {
	switch op {
	case ast.Add:
		return vm.OpInc, nil
	case ast.Sub:
		return vm.OpDec, nil
	case ast.Mul:
		return vm.OpMas, nil
	case ast.Div:
		return vm.OpDas, nil
	case ast.Pow:
		return vm.OpPas, nil
	}
	return 0, newError(ErrUnknownArithmeticExpression, pos, "unsupported compound-assign operator %v", op)
}

func relOpcode(op ast.RelOp, pos token.Position) (vm.OpCode, error) {
	switch op {
	case ast.Eq:
		return vm.OpCeq, nil
	case ast.Neq:
		return vm.OpCne, nil
	case ast.Lt:
		return vm.OpClt, nil
	case ast.Gt:
		return vm.OpCgt, nil
	}
	return 0, newError(ErrUnknownArithmeticExpression, pos, "unsupported relational operator %v", op)
}
