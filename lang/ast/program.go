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

package ast

// ConfigBlock is the parsed '[[config]]' header: the ordered input and
// output identifier lists, plus any free-form "name value, value, ..." lines
// that aren't input/output declarations.
type ConfigBlock struct {
	Inputs  []string
	Outputs []string
	Extra   map[string][]string
}

// Program is a whole parsed (or optimized) script: its config header, its
// top-level body statements, and any top-level function definitions.
type Program struct {
	Config    ConfigBlock
	Body      []Node
	Functions []*FunctionDef
}
