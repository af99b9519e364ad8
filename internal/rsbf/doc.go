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

// Package rsbf reads and writes the RSBF binary encoding of an assembled
// RaychelScript program: a magic word, a version, the input/output
// identifier vectors (kept alongside the vm.Program so a loaded .rsbf file
// still knows its variables' names), the immediate-value pool, and the
// per-frame instruction streams.
//
// Every length-prefixed vector except the instruction stream repeats its
// element count as a trailing word after the elements, so a truncated or
// corrupted file is caught as soon as it's read back instead of silently
// producing a short program.
package rsbf
