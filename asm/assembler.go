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
	"github.com/Weckyy702/RaychelScript-sub000/lang/ast"
	"github.com/Weckyy702/RaychelScript-sub000/lang/token"
	"github.com/Weckyy702/RaychelScript-sub000/vm"
)

// assembler is the state shared across every frame being built: the
// program-wide immediate pool and the function-name-to-frame-id table.
type assembler struct {
	frameOf map[string]int

	immediates []float64
	immIndex   map[float64]uint8
}

// immediate returns the pool slot for v, reusing an existing one if the
// same constant already appears elsewhere in the program.
func (a *assembler) immediate(v float64) vm.MemoryIndex {
	if a.immIndex == nil {
		a.immIndex = map[float64]uint8{}
	}
	if idx, ok := a.immIndex[v]; ok {
		return vm.Immediate(idx)
	}
	idx := uint8(len(a.immediates))
	a.immediates = append(a.immediates, v)
	a.immIndex[v] = idx
	return vm.Immediate(idx)
}

// Assemble lowers prog to a vm.Program. Frame 0 is always the main body,
// with its inputs pre-allocated at cells 1..len(Inputs) and its outputs
// immediately after, matching vm.Run's assumption about where to write
// inputs and read outputs back out. Each top-level function gets frame
// index i+1 in declaration order, with its parameters pre-allocated at
// 1..len(Params) to match the put-then-jsr call convention lowerCall uses.
func Assemble(prog *ast.Program) (vm.Program, error) {
	a := &assembler{frameOf: map[string]int{}}
	for idx, fn := range prog.Functions {
		a.frameOf[fn.Name] = idx + 1
	}

	frames := make([]vm.FrameDescriptor, len(prog.Functions)+1)

	main, err := a.assembleMain(prog)
	if err != nil {
		return vm.Program{}, err
	}
	frames[0] = main

	for idx, fn := range prog.Functions {
		fd, err := a.assembleFunction(fn)
		if err != nil {
			return vm.Program{}, err
		}
		frames[idx+1] = fd
	}

	return vm.Program{
		NumInputs:  len(prog.Config.Inputs),
		NumOutputs: len(prog.Config.Outputs),
		Immediates: a.immediates,
		Frames:     frames,
	}, nil
}

func (a *assembler) assembleMain(prog *ast.Program) (vm.FrameDescriptor, error) {
	f := newFrame(a)
	for _, name := range prog.Config.Inputs {
		if _, err := f.declare(name, token.Position{}); err != nil {
			return vm.FrameDescriptor{}, err
		}
	}
	for _, name := range prog.Config.Outputs {
		if _, err := f.declare(name, token.Position{}); err != nil {
			return vm.FrameDescriptor{}, err
		}
	}
	if err := f.lowerBody(prog.Body); err != nil {
		return vm.FrameDescriptor{}, err
	}
	f.emit(vm.OpHlt, 0, 0)
	peephole(f)
	return vm.FrameDescriptor{FrameSize: int(f.maxUsed), Instructions: f.instrs}, nil
}

func (a *assembler) assembleFunction(fn *ast.FunctionDef) (vm.FrameDescriptor, error) {
	f := newFrame(a)
	for _, p := range fn.Params {
		if _, err := f.declare(p, fn.Pos()); err != nil {
			return vm.FrameDescriptor{}, err
		}
	}
	if err := f.lowerBody(fn.Body); err != nil {
		return vm.FrameDescriptor{}, err
	}
	peephole(f)
	return vm.FrameDescriptor{FrameSize: int(f.maxUsed), Instructions: f.instrs}, nil
}
