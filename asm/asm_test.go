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
	"strings"
	"testing"

	"github.com/Weckyy702/RaychelScript-sub000/lang/ast"
	"github.com/Weckyy702/RaychelScript-sub000/lang/parser"
	"github.com/Weckyy702/RaychelScript-sub000/lang/token"
	"github.com/Weckyy702/RaychelScript-sub000/vm"
)

func run(t *testing.T, src string, inputs []float64, numOut int) []float64 {
	t.Helper()
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p, err := Assemble(prog)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	inst, err := vm.New(p)
	if err != nil {
		t.Fatalf("vm.New: %v", err)
	}
	out := make([]float64, numOut)
	if err := inst.Run(inputs, out); err != nil {
		t.Fatalf("run: %v", err)
	}
	return out
}

func TestAssembleSimpleAssignment(t *testing.T) {
	out := run(t, "[[config]]\ninput a\noutput b\n[[body]]\nb = a\n", []float64{3}, 1)
	if out[0] != 3 {
		t.Fatalf("got %v, want 3", out[0])
	}
}

func TestAssembleNestedArithmeticSpills(t *testing.T) {
	out := run(t, "[[config]]\ninput a, b\noutput c\n[[body]]\nc = (a+b) * (a-b)\n", []float64{5, 2}, 1)
	want := (5.0 + 2.0) * (5.0 - 2.0)
	if out[0] != want {
		t.Fatalf("got %v, want %v", out[0], want)
	}
}

func TestAssembleConditionalBothBranches(t *testing.T) {
	const src = "[[config]]\ninput x\noutput y\n[[body]]\nif x > 0\ny = 1\nelse\ny = -1\nendif\n"
	if out := run(t, src, []float64{5}, 1); out[0] != 1 {
		t.Fatalf("got %v, want 1", out[0])
	}
	if out := run(t, src, []float64{-5}, 1); out[0] != -1 {
		t.Fatalf("got %v, want -1", out[0])
	}
}

func TestAssembleLoop(t *testing.T) {
	out := run(t, "[[config]]\ninput n\noutput s\n[[body]]\nvar i = 0\ns = 0\nwhile i < n\ns += i\ni += 1\nendwhile\n", []float64{4}, 1)
	if out[0] != 0+1+2+3 {
		t.Fatalf("got %v, want 6", out[0])
	}
}

func TestAssembleFunctionCall(t *testing.T) {
	out := run(t, "[[config]]\ninput a\noutput b\n[[body]]\nfn square(x)\nreturn x*x\nendfn\nb = square(a) + square(a+1)\n", []float64{3}, 1)
	want := 3.0*3.0 + 4.0*4.0
	if out[0] != want {
		t.Fatalf("got %v, want %v", out[0], want)
	}
}

func TestAssembleUnaryFactorialAndMagnitude(t *testing.T) {
	if out := run(t, "[[config]]\ninput n\noutput f\n[[body]]\nf = n!\n", []float64{4}, 1); out[0] != 24 {
		t.Fatalf("got %v, want 24", out[0])
	}
	if out := run(t, "[[config]]\ninput n\noutput m\n[[body]]\nm = |n|\n", []float64{-7}, 1); out[0] != 7 {
		t.Fatalf("got %v, want 7", out[0])
	}
}

func TestAssembleUnaryMinus(t *testing.T) {
	out := run(t, "[[config]]\ninput a\noutput b\n[[body]]\nb = -a+a\n", []float64{9}, 1)
	if out[0] != 0 {
		t.Fatalf("got %v, want 0", out[0])
	}
}

func TestDuplicateNameIsError(t *testing.T) {
	prog, err := parser.Parse("[[config]]\ninput a\noutput b\n[[body]]\nvar a = 1\nb = a\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	_, err = Assemble(prog)
	aerr, ok := err.(*Error)
	if !ok || aerr.Code != ErrDuplicateName {
		t.Fatalf("expected duplicate_name, got %v", err)
	}
}

func TestUnresolvedIdentifierIsError(t *testing.T) {
	prog := &ast.Program{
		Config: ast.ConfigBlock{Inputs: []string{"a"}, Outputs: []string{"b"}},
		Body: []ast.Node{
			ast.NewAssignment(token.Position{}, ast.NewVariableRef(token.Position{}, "b"), ast.NewVariableRef(token.Position{}, "ghost")),
		},
	}
	_, err := Assemble(prog)
	aerr, ok := err.(*Error)
	if !ok || aerr.Code != ErrUnresolvedIdentifier {
		t.Fatalf("expected unresolved_identifier, got %v", err)
	}
}

func TestInvalidScopePopIsError(t *testing.T) {
	prog := &ast.Program{
		Config: ast.ConfigBlock{Inputs: []string{"a"}, Outputs: []string{"b"}},
		Body: []ast.Node{
			ast.NewInlinePop(token.Position{}),
			ast.NewAssignment(token.Position{}, ast.NewVariableRef(token.Position{}, "b"), ast.NewVariableRef(token.Position{}, "a")),
		},
	}
	_, err := Assemble(prog)
	aerr, ok := err.(*Error)
	if !ok || aerr.Code != ErrInvalidScopePop {
		t.Fatalf("expected invalid_scope_pop, got %v", err)
	}
}

func TestMoveChainFusionCollapsesToSingleMov(t *testing.T) {
	prog, err := parser.Parse("[[config]]\ninput a\noutput b\n[[body]]\nvar c = a\nb = c\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p, err := Assemble(prog)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	main := p.Frames[0].Instructions
	movs := 0
	for _, instr := range main {
		if instr.Op == vm.OpMov {
			movs++
		}
	}
	if movs != 1 {
		t.Fatalf("expected the mov a,c; mov c,b chain to fuse into a single mov, got %d movs: %v", movs, main)
	}
}

func TestScopeReclaimsMemoryIndices(t *testing.T) {
	const src = "[[config]]\ninput x\noutput y\n[[body]]\n" +
		"if x > 0\nvar t = x\ny = t\nelse\ny = 0\nendif\n" +
		"if x > 0\nvar t = x\ny = t\nelse\ny = 0\nendif\n"
	prog, err := parser.Parse(src)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p, err := Assemble(prog)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	if p.Frames[0].FrameSize > 4 {
		t.Fatalf("expected the second block's local t to reuse the first block's cell, got frame size %d", p.Frames[0].FrameSize)
	}
	if out := run(t, src, []float64{5}, 1); out[0] != 5 {
		t.Fatalf("got %v, want 5", out[0])
	}
}

func TestDisassembleIncludesFrameHeaders(t *testing.T) {
	prog, err := parser.Parse("[[config]]\ninput a\noutput b\n[[body]]\nfn id(x)\nreturn x\nendfn\nb = id(a)\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	p, err := Assemble(prog)
	if err != nil {
		t.Fatalf("assemble: %v", err)
	}
	text := Disassemble(p)
	if !strings.Contains(text, "main:") || !strings.Contains(text, "fn_1:") {
		t.Fatalf("expected main and fn_1 labels, got:\n%s", text)
	}
}
