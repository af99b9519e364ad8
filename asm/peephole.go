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

import "github.com/Weckyy702/RaychelScript-sub000/vm"

// peephole runs two textual cleanups over f's emitted instructions,
// alternating until neither finds anything left to do: dropping self-moves
// (mov x, x, which fusing a chain mov x, y; mov y, x leaves behind; the
// lowering itself never emits one) and fusing two-hop move chains (mov a, y;
// mov y, b, produced by a value passing through a scratch cell on its way
// to its final destination) into a single mov. Each step strictly shrinks
// the instruction count, so the alternation always terminates.
func peephole(f *frame) {
	for removeSelfMoves(f) || fuseMoveChains(f) {
	}
}

// removeSelfMoves deletes every mov x, x and renumbers jump targets to
// account for the removed instructions.
func removeSelfMoves(f *frame) bool {
	n := len(f.instrs)
	keep := make([]bool, n)
	// newIndexBefore[i] is how many kept instructions precede old position
	// i; it's simultaneously the new index a kept instruction at i lands
	// at, and the new index a jump-to-i target should be rewritten to when
	// i itself was removed (control simply falls through to whatever kept
	// instruction follows).
	newIndexBefore := make([]int, n+1)
	count := 0
	changed := false
	for i, instr := range f.instrs {
		keep[i] = !(instr.Op == vm.OpMov && instr.A == instr.B)
		if !keep[i] {
			changed = true
		}
		newIndexBefore[i] = count
		if keep[i] {
			count++
		}
	}
	newIndexBefore[n] = count
	if !changed {
		return false
	}

	out := make([]vm.Instruction, 0, count)
	for i, instr := range f.instrs {
		if !keep[i] {
			continue
		}
		if instr.Op == vm.OpJpz || instr.Op == vm.OpJmp {
			instr.A = uint8(newIndexBefore[instr.A])
		}
		out = append(out, instr)
	}
	f.instrs = out
	return true
}

// fuseMoveChains finds the first adjacent pair mov a, y; mov y, b whose
// discarded cell y is both dead (read or written nowhere else in the
// frame) and not the target of any jump (which would otherwise let control
// resume in the middle of the pair), and replaces it with a single
// mov a, b. It fuses at most one pair per call; the caller loops until
// none are left.
func fuseMoveChains(f *frame) bool {
	instrs := f.instrs
	for i := 0; i+1 < len(instrs); i++ {
		first, second := instrs[i], instrs[i+1]
		if first.Op != vm.OpMov || second.Op != vm.OpMov || second.A != first.B {
			continue
		}
		y := first.B
		if memIndexUsed(instrs, i, i+1, y) || jumpTargetsInto(instrs, i+1) {
			continue
		}

		out := make([]vm.Instruction, 0, len(instrs)-1)
		out = append(out, instrs[:i]...)
		out = append(out, vm.Instruction{Op: vm.OpMov, A: first.A, B: second.B})
		out = append(out, instrs[i+2:]...)
		for idx := range out {
			if op := out[idx].Op; (op == vm.OpJmp || op == vm.OpJpz) && int(out[idx].A) > i+1 {
				out[idx].A--
			}
		}
		f.instrs = out
		return true
	}
	return false
}

// memOperands reports which of op's raw operand fields address this
// frame's memory, as opposed to a jump target, frame id, or argument slot
// (OpPut's B is an argument-marshaling slot, not a memory cell).
func memOperands(op vm.OpCode) (a, b bool) {
	switch op {
	case vm.OpMov, vm.OpAdd, vm.OpSub, vm.OpMul, vm.OpDiv, vm.OpPow,
		vm.OpInc, vm.OpDec, vm.OpMas, vm.OpDas, vm.OpPas,
		vm.OpClt, vm.OpCgt, vm.OpCeq, vm.OpCne:
		return true, true
	case vm.OpMag, vm.OpFac, vm.OpPut:
		return true, false
	default: // OpJpz, OpJmp, OpHlt, OpJsr, OpRet
		return false, false
	}
}

// memIndexUsed reports whether y appears as a memory operand anywhere in
// instrs other than at skip1/skip2, in either direction from those two
// positions — safe (if occasionally overcautious) since a use before the
// candidate pair is irrelevant to whether removing the pair's write is
// safe, but cheap to check uniformly rather than track liveness precisely.
func memIndexUsed(instrs []vm.Instruction, skip1, skip2 int, y uint8) bool {
	for idx, instr := range instrs {
		if idx == skip1 || idx == skip2 {
			continue
		}
		aMem, bMem := memOperands(instr.Op)
		if (aMem && instr.A == y) || (bMem && instr.B == y) {
			return true
		}
	}
	return false
}

func jumpTargetsInto(instrs []vm.Instruction, target int) bool {
	for _, instr := range instrs {
		if (instr.Op == vm.OpJmp || instr.Op == vm.OpJpz) && int(instr.A) == target {
			return true
		}
	}
	return false
}
