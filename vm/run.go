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

import "math"

// Run executes the program against inputs, writing results to outputs and
// returning any fatal error. inputs and outputs must have exactly
// NumInputs/NumOutputs elements; a mismatch is reported without executing a
// single instruction. On success outputs holds the output identifiers' final
// values in declaration order and Run returns nil; no partial output is
// ever written on a failing run.
func (i *Instance) Run(inputs, outputs []float64) error {
	if len(inputs) != i.prog.NumInputs {
		return newError(ErrMismatchedInputs, 0, "got %d inputs, want %d", len(inputs), i.prog.NumInputs)
	}
	if len(outputs) != i.prog.NumOutputs {
		return newError(ErrMismatchedOutputs, 0, "got %d outputs, want %d", len(outputs), i.prog.NumOutputs)
	}

	main := i.prog.Frames[0]
	for k := 0; k < main.FrameSize; k++ {
		i.mem[k] = 0
	}
	for k, v := range inputs {
		i.mem[1+k] = v
	}

	i.calls = i.calls[:0]
	i.base = 0
	i.frameIdx = 0
	i.ip = 0
	i.flag = false
	i.halted = false
	i.err = nil
	i.insCount = 0

	i.dispatch()

	if i.err != nil {
		return i.err
	}
	for k := range outputs {
		outputs[k] = i.mem[1+i.prog.NumInputs+k]
	}
	return nil
}

func (i *Instance) dispatch() {
	for !i.halted {
		frame := i.currentFrame()
		if i.ip >= len(frame.Instructions) {
			i.fail(ErrInvalidOperand, "instruction pointer %d out of range for frame %d", i.ip, i.frameIdx)
			return
		}
		instr := frame.Instructions[i.ip]
		i.step(instr)
		i.insCount++
	}
}

func (i *Instance) step(instr Instruction) {
	switch instr.Op {
	case OpMov:
		*i.cell(MemoryIndex(instr.B)) = i.value(MemoryIndex(instr.A))
		i.ip++
	case OpAdd:
		i.mem[i.base] = i.value(MemoryIndex(instr.A)) + i.value(MemoryIndex(instr.B))
		i.ip++
	case OpSub:
		i.mem[i.base] = i.value(MemoryIndex(instr.A)) - i.value(MemoryIndex(instr.B))
		i.ip++
	case OpMul:
		i.mem[i.base] = i.value(MemoryIndex(instr.A)) * i.value(MemoryIndex(instr.B))
		i.ip++
	case OpDiv:
		b := i.value(MemoryIndex(instr.B))
		if b == 0 {
			i.fail(ErrDivideByZero, "division by zero")
			return
		}
		i.mem[i.base] = i.value(MemoryIndex(instr.A)) / b
		i.ip++
	case OpMag:
		i.mem[i.base] = math.Abs(i.value(MemoryIndex(instr.A)))
		i.ip++
	case OpFac:
		v, err := factorial(i.value(MemoryIndex(instr.A)))
		if err != nil {
			i.fail(err.Code, "%s", err.Msg)
			return
		}
		i.mem[i.base] = v
		i.ip++
	case OpPow:
		i.mem[i.base] = math.Pow(i.value(MemoryIndex(instr.A)), i.value(MemoryIndex(instr.B)))
		if math.IsNaN(i.mem[i.base]) || math.IsInf(i.mem[i.base], 0) {
			i.fail(ErrFPException, "pow overflowed")
			return
		}
		i.ip++
	case OpInc:
		*i.cell(MemoryIndex(instr.A)) += i.value(MemoryIndex(instr.B))
		i.ip++
	case OpDec:
		*i.cell(MemoryIndex(instr.A)) -= i.value(MemoryIndex(instr.B))
		i.ip++
	case OpMas:
		*i.cell(MemoryIndex(instr.A)) *= i.value(MemoryIndex(instr.B))
		i.ip++
	case OpDas:
		b := i.value(MemoryIndex(instr.B))
		if b == 0 {
			i.fail(ErrDivideByZero, "division by zero")
			return
		}
		*i.cell(MemoryIndex(instr.A)) /= b
		i.ip++
	case OpPas:
		cell := i.cell(MemoryIndex(instr.A))
		*cell = math.Pow(*cell, i.value(MemoryIndex(instr.B)))
		i.ip++
	case OpClt:
		i.flag = i.value(MemoryIndex(instr.A)) < i.value(MemoryIndex(instr.B))
		i.ip++
	case OpCgt:
		i.flag = i.value(MemoryIndex(instr.A)) > i.value(MemoryIndex(instr.B))
		i.ip++
	case OpCeq:
		i.flag = i.value(MemoryIndex(instr.A)) == i.value(MemoryIndex(instr.B))
		i.ip++
	case OpCne:
		i.flag = i.value(MemoryIndex(instr.A)) != i.value(MemoryIndex(instr.B))
		i.ip++
	case OpJpz:
		if !i.flag {
			i.ip = int(instr.A)
		} else {
			i.ip++
		}
	case OpJmp:
		i.ip = int(instr.A)
	case OpHlt:
		i.halted = true
	case OpJsr:
		i.callFrame(int(instr.A))
	case OpRet:
		i.returnFrame()
	case OpPut:
		i.args[instr.B] = i.value(MemoryIndex(instr.A))
		i.ip++
	default:
		i.fail(ErrUnknownOpcode, "opcode %d", instr.Op)
	}
}

func (i *Instance) callFrame(frameIdx int) {
	if len(i.calls) >= i.maxDepth {
		i.fail(ErrStackOverflow, "call depth exceeds %d", i.maxDepth)
		return
	}
	callerSize := i.currentFrame().FrameSize
	newBase := i.base + callerSize
	newDesc := i.prog.Frames[frameIdx]
	if newBase+newDesc.FrameSize > len(i.mem) {
		i.fail(ErrMemoryOverflow, "memory arena exhausted calling frame %d", frameIdx)
		return
	}
	i.calls = append(i.calls, callRecord{
		returnIP:        i.ip + 1,
		callerFrameIdx:  i.frameIdx,
		callerFrameSize: callerSize,
	})
	for k := 0; k < newDesc.FrameSize; k++ {
		i.mem[newBase+k] = i.args[k]
		i.args[k] = 0
	}
	i.base = newBase
	i.frameIdx = frameIdx
	i.ip = 0
}

func (i *Instance) returnFrame() {
	if len(i.calls) == 0 {
		i.fail(ErrStackUnderflow, "return with no active call")
		return
	}
	top := i.calls[len(i.calls)-1]
	i.calls = i.calls[:len(i.calls)-1]
	result := i.mem[i.base]
	newBase := i.base - top.callerFrameSize
	i.mem[newBase] = result
	i.base = newBase
	i.frameIdx = top.callerFrameIdx
	i.ip = top.returnIP
}

// factorial computes Gamma(v+1), the generalization of v! used by the fac
// opcode. A negative-integer operand is a domain error reported directly as
// invalid_operand (spec §8 scenario 4); any other non-finite result (e.g.
// overflow for large v) is reported as fp_exception.
func factorial(v float64) (float64, *Error) {
	if v < 0 && v == math.Trunc(v) {
		return 0, newError(ErrInvalidOperand, 0, "factorial of negative integer %v", v)
	}
	r := math.Gamma(v + 1)
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return 0, newError(ErrFPException, 0, "factorial of %v overflowed", v)
	}
	return r, nil
}
