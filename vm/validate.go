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

import "github.com/pkg/errors"

// Validate checks the structural invariants a Program must hold before it
// can be run: every jump target is within its frame's instruction list, the
// main frame ends in hlt, and every memory/immediate operand is in bounds
// for its frame. It is called by New so that a bad Program is rejected
// before a single instruction executes (spec invariant 4).
func Validate(p Program) error {
	if len(p.Frames) == 0 {
		return errors.Wrap(newError(ErrInvalidProgram, 0, "program has no frames"), "validate")
	}
	main := p.Frames[0]
	if len(main.Instructions) == 0 || main.Instructions[len(main.Instructions)-1].Op != OpHlt {
		return errors.Wrap(newError(ErrInvalidProgram, len(main.Instructions)-1, "main frame does not end in hlt"), "validate")
	}
	for fi, f := range p.Frames {
		for ip, instr := range f.Instructions {
			if err := validateInstruction(p, f, fi, ip, instr); err != nil {
				return err
			}
		}
	}
	return nil
}

func validateInstruction(p Program, f FrameDescriptor, frameIdx, ip int, instr Instruction) error {
	op := instr.Op
	if op >= numOpCodes {
		return errors.Wrap(newError(ErrUnknownOpcode, ip, "frame %d: opcode %d", frameIdx, instr.Op), "validate")
	}
	switch {
	case op.hasTwoOperands():
		if err := validateOperand(p, f, ip, MemoryIndex(instr.A)); err != nil {
			return err
		}
		if err := validateOperand(p, f, ip, MemoryIndex(instr.B)); err != nil {
			return err
		}
	case op.hasOneOperand():
		if err := validateOperand(p, f, ip, MemoryIndex(instr.A)); err != nil {
			return err
		}
	case op.isJump():
		if int(instr.A) >= len(f.Instructions) {
			return errors.Wrap(newError(ErrInvalidProgram, ip, "jump target %d out of range", instr.A), "validate")
		}
	case op == OpJsr:
		if int(instr.A) >= len(p.Frames) {
			return errors.Wrap(newError(ErrInvalidProgram, ip, "call to undefined frame %d", instr.A), "validate")
		}
	case op == OpPut:
		if err := validateOperand(p, f, ip, MemoryIndex(instr.A)); err != nil {
			return err
		}
		if MemoryIndex(instr.B).IsImmediate() || instr.B >= maxFrameSize {
			return errors.Wrap(newError(ErrInvalidProgram, ip, "put argument slot %d out of range", instr.B), "validate")
		}
	}
	return nil
}

func validateOperand(p Program, f FrameDescriptor, ip int, m MemoryIndex) error {
	if m.IsImmediate() {
		if int(m.Index()) >= len(p.Immediates) {
			return errors.Wrap(newError(ErrInvalidProgram, ip, "immediate index %d out of range", m.Index()), "validate")
		}
		return nil
	}
	if int(m.Index()) >= f.FrameSize {
		return errors.Wrap(newError(ErrInvalidProgram, ip, "direct index %d out of range for frame size %d", m.Index(), f.FrameSize), "validate")
	}
	return nil
}
