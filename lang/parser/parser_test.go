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
	"testing"

	"github.com/Weckyy702/RaychelScript-sub000/lang/ast"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	prog, err := Parse(src)
	if err != nil {
		t.Fatalf("Parse(%q): %+v", src, err)
	}
	return prog
}

func TestArithmeticScenario(t *testing.T) {
	prog := mustParse(t, "[[config]]\ninput a, b\noutput c\n[[body]]\nc = a * (b + 2) ^ 2\n")
	if len(prog.Config.Inputs) != 2 || len(prog.Config.Outputs) != 1 {
		t.Fatalf("bad config: %+v", prog.Config)
	}
	if len(prog.Body) != 1 {
		t.Fatalf("expected 1 body node, got %d", len(prog.Body))
	}
	assign, ok := prog.Body[0].(*ast.Assignment)
	if !ok {
		t.Fatalf("expected Assignment, got %T", prog.Body[0])
	}
	arith, ok := assign.RHS.(*ast.Arithmetic)
	if !ok || arith.Op != ast.Mul {
		t.Fatalf("expected top-level Mul, got %#v", assign.RHS)
	}
}

func TestConditionalScenario(t *testing.T) {
	prog := mustParse(t, "[[config]]\ninput x\noutput y\n[[body]]\nif x > 0\ny = 1\nelse\ny = -1\nendif\n")
	cond, ok := prog.Body[0].(*ast.Conditional)
	if !ok {
		t.Fatalf("expected Conditional, got %T", prog.Body[0])
	}
	if len(cond.Then) != 1 || len(cond.Else) != 1 {
		t.Fatalf("expected one statement per branch, got then=%d else=%d", len(cond.Then), len(cond.Else))
	}
}

func TestLoopScenario(t *testing.T) {
	prog := mustParse(t, "[[config]]\ninput n\noutput s\n[[body]]\nvar i = 0\ns = 0\nwhile i < n\ns += i\ni += 1\nendwhile\n")
	if _, ok := prog.Body[2].(*ast.Loop); !ok {
		t.Fatalf("expected Loop as third statement, got %T", prog.Body[2])
	}
}

func TestFunctionScenario(t *testing.T) {
	prog := mustParse(t, "[[config]]\ninput a\noutput b\n[[body]]\nfn square(x)\nreturn x*x\nendfn\nb = square(a) + square(a+1)\n")
	if len(prog.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(prog.Functions))
	}
	if prog.Functions[0].Name != "square" || len(prog.Functions[0].Params) != 1 {
		t.Fatalf("bad function def: %+v", prog.Functions[0])
	}
	if len(prog.Body) != 1 {
		t.Fatalf("expected function hoisted out of body, got %d body nodes", len(prog.Body))
	}
}

func TestFunctionCallArityMismatch(t *testing.T) {
	_, err := Parse("[[config]]\ninput a\noutput b\n[[body]]\nfn square(x)\nreturn x*x\nendfn\nb = square(a, a)\n")
	if err == nil {
		t.Fatal("expected arity mismatch error")
	}
}

func TestMissingReturnIsError(t *testing.T) {
	_, err := Parse("[[config]]\ninput a\noutput b\n[[body]]\nfn f(x)\nb = x\nendfn\nb = f(a)\n")
	if err == nil {
		t.Fatal("expected missing_return error")
	}
}

func TestReturnOutsideFunctionIsError(t *testing.T) {
	_, err := Parse("[[config]]\ninput a\noutput b\n[[body]]\nreturn a\n")
	perr, ok := err.(*Error)
	if !ok || perr.Code != ErrReturnInInvalidScope {
		t.Fatalf("expected return_in_invalid_scope, got %v", err)
	}
}

func TestAssignmentRHSMustBeNumber(t *testing.T) {
	_, err := Parse("[[config]]\ninput a\noutput b\n[[body]]\nb = a > 0\n")
	perr, ok := err.(*Error)
	if !ok || perr.Code != ErrAssignRHSNotNumberType {
		t.Fatalf("expected assign_rhs_not_number_type, got %v", err)
	}
}

func TestConditionMustBeBoolean(t *testing.T) {
	_, err := Parse("[[config]]\ninput a\noutput b\n[[body]]\nif a\nb = 1\nendif\n")
	perr, ok := err.(*Error)
	if !ok || perr.Code != ErrConditionalConditionNotBooleanType {
		t.Fatalf("expected conditional_construct_condition_not_boolean_type, got %v", err)
	}
}

func TestMissingEndifIsMismatchedConditional(t *testing.T) {
	_, err := Parse("[[config]]\ninput a\noutput b\n[[body]]\nif a > 0\nb = 1\n")
	perr, ok := err.(*Error)
	if !ok || perr.Code != ErrMismatchedConditional {
		t.Fatalf("expected mismatched_conditional, got %v", err)
	}
}

func TestDuplicateFunctionIsError(t *testing.T) {
	_, err := Parse("[[config]]\ninput a\noutput b\n[[body]]\nfn f(x)\nreturn x\nendfn\nfn f(x)\nreturn x\nendfn\nb = f(a)\n")
	perr, ok := err.(*Error)
	if !ok || perr.Code != ErrDuplicateFunction {
		t.Fatalf("expected duplicate_function, got %v", err)
	}
}

func TestEmptyInputListIsInvalidConfig(t *testing.T) {
	_, err := Parse("[[config]]\ninput\noutput b\n[[body]]\nb = 1\n")
	perr, ok := err.(*Error)
	if !ok || perr.Code != ErrInvalidConfig {
		t.Fatalf("expected invalid_config, got %v", err)
	}
}

func TestRightAssociativePower(t *testing.T) {
	prog := mustParse(t, "[[config]]\ninput a\noutput b\n[[body]]\nb = a^a^a\n")
	assign := prog.Body[0].(*ast.Assignment)
	top := assign.RHS.(*ast.Arithmetic)
	if top.Op != ast.Pow {
		t.Fatalf("expected Pow at root, got %v", top.Op)
	}
	// right-associative: root's RHS must itself be a^a (not its LHS)
	if _, ok := top.RHS.(*ast.Arithmetic); !ok {
		t.Fatalf("expected right-associative grouping, RHS was %T", top.RHS)
	}
	if _, ok := top.LHS.(*ast.VariableRef); !ok {
		t.Fatalf("expected a leaf on the left for right-assoc power, got %T", top.LHS)
	}
}

func TestLeftAssociativeSubtraction(t *testing.T) {
	prog := mustParse(t, "[[config]]\ninput a\noutput b\n[[body]]\nb = a-a-a\n")
	assign := prog.Body[0].(*ast.Assignment)
	top := assign.RHS.(*ast.Arithmetic)
	if top.Op != ast.Sub {
		t.Fatalf("expected Sub at root, got %v", top.Op)
	}
	if _, ok := top.LHS.(*ast.Arithmetic); !ok {
		t.Fatalf("expected left-associative grouping, LHS was %T", top.LHS)
	}
}

func TestUnaryMinusVsBinaryMinus(t *testing.T) {
	prog := mustParse(t, "[[config]]\ninput a\noutput b\n[[body]]\nb = -a+a\n")
	assign := prog.Body[0].(*ast.Assignment)
	top := assign.RHS.(*ast.Arithmetic)
	if top.Op != ast.Add {
		t.Fatalf("expected Add at root, got %v", top.Op)
	}
	if _, ok := top.LHS.(*ast.Unary); !ok {
		t.Fatalf("expected unary minus on the left, got %T", top.LHS)
	}
}

func TestFactorialAndMagnitude(t *testing.T) {
	prog := mustParse(t, "[[config]]\ninput n\noutput f\n[[body]]\nf = n!\n")
	assign := prog.Body[0].(*ast.Assignment)
	u, ok := assign.RHS.(*ast.Unary)
	if !ok || u.Op != ast.UnaryFactorial {
		t.Fatalf("expected UnaryFactorial, got %#v", assign.RHS)
	}

	prog2 := mustParse(t, "[[config]]\ninput n\noutput f\n[[body]]\nf = |n|\n")
	assign2 := prog2.Body[0].(*ast.Assignment)
	u2, ok := assign2.RHS.(*ast.Unary)
	if !ok || u2.Op != ast.UnaryMagnitude {
		t.Fatalf("expected UnaryMagnitude, got %#v", assign2.RHS)
	}
}
