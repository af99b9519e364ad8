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

package vm

import (
	"testing"

	"github.com/pkg/errors"
)

// single-frame program with numIn inputs and numOut outputs, running ins
// against a flat immediate pool.
func setup(t *testing.T, imm []float64, ins []Instruction, numIn, numOut int) *Instance {
	t.Helper()
	prog := Program{
		NumInputs:  numIn,
		NumOutputs: numOut,
		Immediates: imm,
		Frames:     []FrameDescriptor{{FrameSize: 8, Instructions: ins}},
	}
	i, err := New(prog)
	if err != nil {
		t.Fatalf("%+v", errors.Wrap(err, "setup"))
	}
	return i
}

func check(t *testing.T, i *Instance, inputs []float64, want []float64) {
	t.Helper()
	out := make([]float64, len(want))
	if err := i.Run(inputs, out); err != nil {
		t.Fatalf("%+v", errors.Wrap(err, "run"))
	}
	for k := range want {
		if out[k] != want[k] {
			t.Errorf("output %d: got %v, want %v", k, out[k], want[k])
		}
	}
}

func checkErr(t *testing.T, i *Instance, inputs []float64, numOut int, wantCode Code) {
	t.Helper()
	out := make([]float64, numOut)
	err := i.Run(inputs, out)
	if err == nil {
		t.Fatalf("expected error %s, got nil", wantCode)
	}
	vmErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *vm.Error, got %T: %v", err, err)
	}
	if vmErr.Code != wantCode {
		t.Errorf("got code %s, want %s", vmErr.Code, wantCode)
	}
}

// out = in1 + 1
func TestAddImmediate(t *testing.T) {
	i := setup(t, []float64{1}, []Instruction{
		{Op: OpAdd, A: 1, B: uint8(Immediate(0))},
		{Op: OpMov, A: uint8(AIndex), B: 2},
		{Op: OpHlt},
	}, 1, 1)
	check(t, i, []float64{41}, []float64{42})
}

func TestSubMulDiv(t *testing.T) {
	i := setup(t, []float64{2, 10}, []Instruction{
		{Op: OpSub, A: 1, B: uint8(Immediate(0))}, // A = in1 - 2
		{Op: OpMov, A: uint8(AIndex), B: 2},
		{Op: OpMul, A: 2, B: uint8(Immediate(1))}, // A = (in1-2) * 10
		{Op: OpMov, A: uint8(AIndex), B: 2},
		{Op: OpDiv, A: 2, B: uint8(Immediate(0))}, // A = ((in1-2)*10) / 2
		{Op: OpMov, A: uint8(AIndex), B: 2},
		{Op: OpHlt},
	}, 1, 1)
	check(t, i, []float64{5}, []float64{15})
}

func TestDivideByZero(t *testing.T) {
	i := setup(t, []float64{0}, []Instruction{
		{Op: OpDiv, A: 1, B: uint8(Immediate(0))},
		{Op: OpHlt},
	}, 1, 1)
	checkErr(t, i, []float64{10}, 1, ErrDivideByZero)
}

func TestMagFac(t *testing.T) {
	i := setup(t, nil, []Instruction{
		{Op: OpMag, A: 1},
		{Op: OpMov, A: uint8(AIndex), B: 2},
		{Op: OpFac, A: 2},
		{Op: OpMov, A: uint8(AIndex), B: 2},
		{Op: OpHlt},
	}, 1, 1)
	check(t, i, []float64{-4}, []float64{24})
}

func TestFactorialOfNegativeIntegerIsInvalidOperand(t *testing.T) {
	i := setup(t, nil, []Instruction{
		{Op: OpFac, A: 1},
		{Op: OpMov, A: uint8(AIndex), B: 2},
		{Op: OpHlt},
	}, 1, 1)
	checkErr(t, i, []float64{-2}, 1, ErrInvalidOperand)
}

func TestCompoundAssign(t *testing.T) {
	// out starts at in1, then inc/dec/mas/pas/das are applied in turn.
	i := setup(t, []float64{2}, []Instruction{
		{Op: OpMov, A: 1, B: 2},
		{Op: OpInc, A: 2, B: uint8(Immediate(0))}, // +2
		{Op: OpDec, A: 2, B: uint8(Immediate(0))}, // -2
		{Op: OpMas, A: 2, B: uint8(Immediate(0))}, // *2
		{Op: OpPas, A: 2, B: uint8(Immediate(0))}, // ^2
		{Op: OpDas, A: 2, B: uint8(Immediate(0))}, // /2
		{Op: OpMov, A: 2, B: 3},
		{Op: OpHlt},
	}, 1, 1)
	// in1=5: (((5+2-2)*2)^2)/2 = (10^2)/2 = 50
	check(t, i, []float64{5}, []float64{50})
}

func TestConditionalJump(t *testing.T) {
	// if in1 < 0 (via clt against immediate 0) output 1 else output 0
	i := setup(t, []float64{0, 1}, []Instruction{
		{Op: OpClt, A: 1, B: uint8(Immediate(0))},
		{Op: OpJpz, A: 5},
		{Op: OpMov, A: uint8(Immediate(1)), B: 2},
		{Op: OpJmp, A: 6},
		{Op: OpMov, A: uint8(Immediate(0)), B: 2}, // ip 4 (unreachable in this layout, see ip 5 below)
		{Op: OpMov, A: uint8(Immediate(0)), B: 2}, // ip 5: jpz target
		{Op: OpHlt},
	}, 1, 1)
	check(t, i, []float64{-1}, []float64{1})
	check(t, i, []float64{1}, []float64{0})
}

func TestCallAndReturn(t *testing.T) {
	// main: put in1 -> slot1 of frame1; jsr frame1; mov A->out; hlt
	// frame1 (double): mul slot1 by immediate 2; ret
	main := FrameDescriptor{FrameSize: 3, Instructions: []Instruction{
		{Op: OpPut, A: 1, B: 1},
		{Op: OpJsr, A: 1},
		{Op: OpMov, A: uint8(AIndex), B: 2},
		{Op: OpHlt},
	}}
	callee := FrameDescriptor{FrameSize: 2, Instructions: []Instruction{
		{Op: OpMul, A: 1, B: uint8(Immediate(0))},
		{Op: OpRet},
	}}
	prog := Program{
		NumInputs:  1,
		NumOutputs: 1,
		Immediates: []float64{2},
		Frames:     []FrameDescriptor{main, callee},
	}
	i, err := New(prog)
	if err != nil {
		t.Fatalf("%+v", err)
	}
	check(t, i, []float64{21}, []float64{42})
}

func TestStackOverflow(t *testing.T) {
	callee := FrameDescriptor{FrameSize: 2, Instructions: []Instruction{
		{Op: OpJsr, A: 0},
		{Op: OpRet},
	}}
	main := FrameDescriptor{FrameSize: 2, Instructions: []Instruction{
		{Op: OpJsr, A: 0},
		{Op: OpHlt},
	}}
	prog := Program{Frames: []FrameDescriptor{main, callee}}
	i, err := New(prog, MaxCallDepth(4))
	if err != nil {
		t.Fatalf("%+v", err)
	}
	checkErr(t, i, nil, 0, ErrStackOverflow)
}

func TestValidateRejectsBadJumpTarget(t *testing.T) {
	prog := Program{Frames: []FrameDescriptor{{FrameSize: 1, Instructions: []Instruction{
		{Op: OpJmp, A: 99},
		{Op: OpHlt},
	}}}}
	if _, err := New(prog); err == nil {
		t.Fatal("expected validation error for out-of-range jump target")
	}
}

func TestValidateRejectsMissingHlt(t *testing.T) {
	prog := Program{Frames: []FrameDescriptor{{FrameSize: 1, Instructions: []Instruction{
		{Op: OpMov, A: uint8(Immediate(0)), B: 0},
	}}}}
	if _, err := New(prog); err == nil {
		t.Fatal("expected validation error for main frame not ending in hlt")
	}
}

func TestMismatchedInputs(t *testing.T) {
	i := setup(t, nil, []Instruction{{Op: OpHlt}}, 2, 0)
	checkErr(t, i, []float64{1}, 0, ErrMismatchedInputs)
}
