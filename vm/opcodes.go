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

// OpCode identifies a RASM instruction.
type OpCode uint8

// RASM opcodes.
const (
	OpMov OpCode = iota
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMag
	OpFac
	OpPow
	OpInc
	OpDec
	OpMas
	OpDas
	OpPas
	OpClt
	OpCgt
	OpCeq
	OpCne
	OpJpz
	OpJmp
	OpHlt
	OpJsr
	OpRet
	OpPut

	numOpCodes
)

var mnemonics = [...]string{
	OpMov: "mov",
	OpAdd: "add",
	OpSub: "sub",
	OpMul: "mul",
	OpDiv: "div",
	OpMag: "mag",
	OpFac: "fac",
	OpPow: "pow",
	OpInc: "inc",
	OpDec: "dec",
	OpMas: "mas",
	OpDas: "das",
	OpPas: "pas",
	OpClt: "clt",
	OpCgt: "cgt",
	OpCeq: "ceq",
	OpCne: "cne",
	OpJpz: "jpz",
	OpJmp: "jmp",
	OpHlt: "hlt",
	OpJsr: "jsr",
	OpRet: "ret",
	OpPut: "put",
}

// String returns the assembly mnemonic for op, or "???" if op is not a valid
// opcode.
func (op OpCode) String() string {
	if op >= numOpCodes {
		return "???"
	}
	return mnemonics[op]
}

// hasTwoOperands reports whether op reads both A and B as memory operands
// (as opposed to a jump target, frame id, or no operand at all).
func (op OpCode) hasTwoOperands() bool {
	switch op {
	case OpMov, OpAdd, OpSub, OpMul, OpDiv, OpPow,
		OpInc, OpDec, OpMas, OpDas, OpPas,
		OpClt, OpCgt, OpCeq, OpCne:
		return true
	}
	return false
}

// hasOneOperand reports whether op reads only A as a memory operand.
func (op OpCode) hasOneOperand() bool {
	switch op {
	case OpMag, OpFac:
		return true
	}
	return false
}

// isJump reports whether op carries an absolute, within-frame instruction
// index in A.
func (op OpCode) isJump() bool {
	return op == OpJpz || op == OpJmp
}
