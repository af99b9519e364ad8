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

// Package asm lowers a RaychelScript ast.Program to a vm.Program (RASM
// bytecode): one call frame for the main body plus one per top-level
// function, memory indices allocated per spec §4.3's assembling-context
// rules, and a peephole pass that removes self-moves and fuses move chains.
//
// Assemble is the package's entry point and Disassemble renders its output
// as RASM text; everything else (the assembling context, per-kind lowering,
// the peephole pass) is implementation detail of Assemble.
package asm
