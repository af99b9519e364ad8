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
	"github.com/Weckyy702/RaychelScript-sub000/lang/token"
	"github.com/Weckyy702/RaychelScript-sub000/vm"
)

// frame is the assembling context for one call frame (the main body, or one
// top-level function). Memory index 0 is the reserved accumulator.
//
// Two independent bump-up counters share the rest of the index space:
// nextFree hands out one cell per named variable and rewinds to the
// enclosing scope's watermark as soon as that scope exits (spec invariant
// 5: a name's index is only valid for the lifetime of the scope that
// introduced it, and is reused afterward). scratchNext hands out
// spill/intermediate cells and is rewound to the current nextFree at the
// start of every statement (spec §4.3: the intermediate pool is reset
// between statements), since a spill cell is read back by the binary or
// compare instruction that requested it before the statement ends and never
// needs to survive longer than that. maxUsed is
// the high-water mark either counter has ever reached and becomes the
// frame's cell count.
type frame struct {
	a *assembler

	names  map[string]vm.MemoryIndex
	scopes []scope

	nextFree    uint8
	scratchNext uint8
	maxUsed     uint8

	instrs []vm.Instruction
}

// scope is one open pushScope/popScope pair: the names declared since it
// opened (rolled back from visibility on pop) and the nextFree watermark
// at the point it opened (restored on pop, reclaiming those names' cells).
type scope struct {
	names     []string
	watermark uint8
}

func newFrame(a *assembler) *frame {
	return &frame{a: a, names: map[string]vm.MemoryIndex{}, nextFree: 1, scratchNext: 1, maxUsed: 1}
}

// bump hands out the cell at *base, advances it, and folds the new value
// into maxUsed.
func (f *frame) bump(base *uint8) vm.MemoryIndex {
	idx := vm.Direct(*base)
	*base++
	if *base > f.maxUsed {
		f.maxUsed = *base
	}
	return idx
}

// declare binds name to a freshly allocated cell. It fails with
// duplicate_name if name is currently visible, whether from an enclosing
// scope or the same one.
func (f *frame) declare(name string, pos token.Position) (vm.MemoryIndex, error) {
	if _, exists := f.names[name]; exists {
		return 0, newError(ErrDuplicateName, pos, "%q is already declared", name)
	}
	idx := f.bump(&f.nextFree)
	f.names[name] = idx
	if n := len(f.scopes); n > 0 {
		f.scopes[n-1].names = append(f.scopes[n-1].names, name)
	}
	return idx, nil
}

// resolve looks up a previously declared name.
func (f *frame) resolve(name string, pos token.Position) (vm.MemoryIndex, error) {
	idx, ok := f.names[name]
	if !ok {
		return 0, newError(ErrUnresolvedIdentifier, pos, "%q is not declared", name)
	}
	return idx, nil
}

// scratch allocates an anonymous cell for spilling an intermediate value
// out of the accumulator. It draws from a pool rewound at the start of
// every statement by resetIntermediates, so the cell it returns is never
// live past the statement that requested it.
func (f *frame) scratch() vm.MemoryIndex {
	return f.bump(&f.scratchNext)
}

// resetIntermediates reclaims every scratch cell handed out so far by
// rewinding scratchNext to the current top of the named-variable range.
// Called before lowering each statement (see lowerStmt).
func (f *frame) resetIntermediates() {
	f.scratchNext = f.nextFree
}

func (f *frame) pushScope() {
	f.scopes = append(f.scopes, scope{watermark: f.nextFree})
}

// popScope drops every name declared since the matching pushScope from
// visibility and reclaims their cells by rewinding nextFree to the scope's
// watermark. It fails with invalid_scope_pop if the scope stack is already
// empty (spec invariant 5: a pop must always match an open push).
func (f *frame) popScope(pos token.Position) error {
	if len(f.scopes) == 0 {
		return newError(ErrInvalidScopePop, pos, "scope pop with no matching push")
	}
	top := f.scopes[len(f.scopes)-1]
	for _, name := range top.names {
		delete(f.names, name)
	}
	f.nextFree = top.watermark
	f.scopes = f.scopes[:len(f.scopes)-1]
	return nil
}

func (f *frame) emit(op vm.OpCode, a, b uint8) {
	f.instrs = append(f.instrs, vm.Instruction{Op: op, A: a, B: b})
}

// emitPlaceholder emits a jump-shaped instruction with a target of 0 and
// returns its index so the caller can patch it once the real target is
// known.
func (f *frame) emitPlaceholder(op vm.OpCode) int {
	idx := len(f.instrs)
	f.instrs = append(f.instrs, vm.Instruction{Op: op})
	return idx
}

func (f *frame) patch(idx int, target uint8) {
	f.instrs[idx].A = target
}
