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

const (
	defaultMaxDepth = 64
)

// callRecord is what jsr pushes and ret pops: where to resume and how much
// to shrink the stack pointer by to get back to the caller's frame.
type callRecord struct {
	returnIP        int
	callerFrameIdx  int
	callerFrameSize int
}

// Option configures an Instance at construction time.
type Option func(*Instance)

// MemorySize sets the size of the flat memory arena backing all call
// frames. It must be large enough to hold every frame on the deepest call
// chain the program can reach; the default is maxFrameSize cells for each
// of the MaxCallDepth frames (defaultMaxDepth unless MaxCallDepth is given).
func MemorySize(cells int) Option {
	return func(i *Instance) { i.mem = make([]float64, cells) }
}

// MaxCallDepth sets the maximum number of nested function calls before the
// VM reports a stack_overflow error.
func MaxCallDepth(depth int) Option {
	return func(i *Instance) { i.maxDepth = depth }
}

// Instance is one RASM virtual machine. It executes a single Program against
// its own memory arena and call-frame stack.
type Instance struct {
	prog     Program
	mem      []float64
	args     [maxFrameSize]float64
	calls    []callRecord
	maxDepth int

	base     int // offset in mem of the currently executing frame
	frameIdx int // index into prog.Frames of the currently executing frame
	ip       int
	flag     bool // boolean comparison flag
	halted   bool
	err      error
	insCount int64
}

// New creates an Instance ready to run prog. It validates prog's structural
// invariants up front (spec invariant 4) and returns an error without
// allocating any runtime state if they don't hold.
func New(prog Program, opts ...Option) (*Instance, error) {
	if err := Validate(prog); err != nil {
		return nil, err
	}
	i := &Instance{prog: prog, maxDepth: defaultMaxDepth}
	for _, opt := range opts {
		opt(i)
	}
	if i.mem == nil {
		i.mem = make([]float64, maxFrameSize*i.maxDepth)
	}
	i.calls = make([]callRecord, 0, i.maxDepth)
	return i, nil
}

// InstructionCount returns the number of instructions executed by the most
// recent call to Run.
func (i *Instance) InstructionCount() int64 { return i.insCount }

// Err returns the error that halted the most recent Run, or nil if the last
// run completed with hlt.
func (i *Instance) Err() error { return i.err }

func (i *Instance) currentFrame() FrameDescriptor { return i.prog.Frames[i.frameIdx] }

func (i *Instance) fail(code Code, format string, args ...interface{}) {
	i.err = newError(code, i.ip, format, args...)
	i.halted = true
}

// value reads the operand m: from the immediate pool if tagged immediate,
// otherwise from the currently executing frame.
func (i *Instance) value(m MemoryIndex) float64 {
	if m.IsImmediate() {
		return i.prog.Immediates[m.Index()]
	}
	return i.mem[i.base+int(m.Index())]
}

// cell returns a pointer to the addressed memory cell for write access. It
// must only be called with a direct (non-immediate) index; the assembler
// never emits an immediate index as a write destination.
func (i *Instance) cell(m MemoryIndex) *float64 {
	return &i.mem[i.base+int(m.Index())]
}
