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

// Package vm implements the RASM bytecode virtual machine.
//
// A Program is a flat, read-only description of a compiled RaychelScript
// script: an immediate-value pool and an ordered list of call-frame
// descriptors, each holding its own instruction list. An Instance executes
// one Program against its own memory arena and call-frame stack; nothing in
// an Instance is shared with any other Instance, so two Instances may run
// concurrently on separate goroutines as long as they don't share a memory
// arena.
//
// Memory index 0 of whichever frame is currently executing is always the
// "A register" - the implicit destination of every arithmetic opcode. Inputs
// occupy the memory cells immediately following it, in declaration order,
// followed by outputs; any cells after that are available to the compiler
// for local variables and spill slots.
//
// All runtime values are IEEE-754 doubles. Booleans live only in the VM's
// comparison flag, never in memory.
package vm
