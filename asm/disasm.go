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
	"fmt"
	"strings"

	"github.com/Weckyy702/RaychelScript-sub000/vm"
)

// Disassemble renders prog as human-readable RASM text: one labeled block
// per frame, one instruction per line, with immediate operands shown as
// their float value rather than their pool index.
func Disassemble(prog vm.Program) string {
	var b strings.Builder
	fmt.Fprintf(&b, "; %d input(s), %d output(s), %d immediate(s)\n", prog.NumInputs, prog.NumOutputs, len(prog.Immediates))
	for fi, frm := range prog.Frames {
		name := "main"
		if fi != 0 {
			name = fmt.Sprintf("fn_%d", fi)
		}
		fmt.Fprintf(&b, "%s: ; frame size %d\n", name, frm.FrameSize)
		for ip, instr := range frm.Instructions {
			fmt.Fprintf(&b, "  %4d  %s\n", ip, formatInstruction(prog, instr))
		}
	}
	return b.String()
}

func formatInstruction(prog vm.Program, instr vm.Instruction) string {
	switch instr.Op {
	case vm.OpHlt, vm.OpRet:
		return instr.Op.String()
	case vm.OpJmp, vm.OpJpz, vm.OpJsr:
		return fmt.Sprintf("%s %d", instr.Op, instr.A)
	case vm.OpPut:
		return fmt.Sprintf("put %s, arg%d", operand(prog, instr.A), instr.B)
	case vm.OpMag, vm.OpFac:
		return fmt.Sprintf("%s %s", instr.Op, operand(prog, instr.A))
	default:
		return fmt.Sprintf("%s %s, %s", instr.Op, operand(prog, instr.A), operand(prog, instr.B))
	}
}

func operand(prog vm.Program, raw uint8) string {
	m := vm.MemoryIndex(raw)
	if m.IsImmediate() {
		idx := m.Index()
		if int(idx) < len(prog.Immediates) {
			return fmt.Sprintf("#%g", prog.Immediates[idx])
		}
		return fmt.Sprintf("#?%d", idx)
	}
	if m == vm.AIndex {
		return "A"
	}
	return fmt.Sprintf("m%d", m.Index())
}
