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

// MemoryIndex addresses either a cell in the current call frame (a "direct"
// index) or a slot in the program's immediate-value pool (an "immediate"
// index). The top bit of the byte selects which; the low 7 bits are the
// position within whichever table that is, so a frame may hold at most 127
// named/intermediate cells (plus the reserved A register at 0) and a
// program may hold at most 128 distinct immediate values. This is the
// implementation's resolution of the tagged-index encoding spec.md leaves
// as an open question for the binary format.
type MemoryIndex uint8

const immediateBit MemoryIndex = 0x80

// Direct builds a MemoryIndex into the current frame.
func Direct(v uint8) MemoryIndex { return MemoryIndex(v) &^ immediateBit }

// Immediate builds a MemoryIndex into the immediate-value pool.
func Immediate(v uint8) MemoryIndex { return MemoryIndex(v) | immediateBit }

// IsImmediate reports whether m addresses the immediate pool rather than the
// current frame.
func (m MemoryIndex) IsImmediate() bool { return m&immediateBit != 0 }

// Index returns the position within whichever table m addresses.
func (m MemoryIndex) Index() uint8 { return uint8(m &^ immediateBit) }

// AIndex is the reserved accumulator: memory index 0 of the current frame.
const AIndex = MemoryIndex(0)

// maxFrameSize is the largest number of direct-addressable cells a single
// frame may hold, and therefore also the size of the scratch buffer used to
// marshal call arguments (see OpPut).
const maxFrameSize = 128


// Instruction is one RASM instruction: an opcode and two raw byte operands.
// How A and B are interpreted (as MemoryIndex values, an absolute
// within-frame instruction index, a call-frame id, or simply unused) depends
// on Op; see the operand predicates in opcodes.go and the VM dispatch loop.
type Instruction struct {
	Op   OpCode
	A, B uint8
}

// FrameDescriptor describes one call frame: how many cells it needs and the
// instructions that run in it. The program's main body is call frame 0.
type FrameDescriptor struct {
	FrameSize    int
	Instructions []Instruction
}

// Program is an assembled RASM program, ready to run on a VM Instance or to
// be serialized to RSBF.
type Program struct {
	NumInputs  int
	NumOutputs int
	Immediates []float64
	Frames     []FrameDescriptor
}
