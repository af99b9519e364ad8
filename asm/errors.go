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
	"fmt"

	"github.com/Weckyy702/RaychelScript-sub000/lang/token"
)

// Code is the assembler's error taxonomy (spec §7): the checks the parser
// defers because they need the assembling context's name table rather than
// purely syntactic or type information.
type Code int

const (
	ErrDuplicateName Code = iota
	ErrUnresolvedIdentifier
	ErrUnknownArithmeticExpression
	ErrInvalidScopePop
	ErrNotImplemented
)

var codeText = map[Code]string{
	ErrDuplicateName:               "duplicate_name",
	ErrUnresolvedIdentifier:        "unresolved_identifier",
	ErrUnknownArithmeticExpression: "unknown_arithmetic_expression",
	ErrInvalidScopePop:             "invalid_scope_pop",
	ErrNotImplemented:              "not_implemented",
}

func (c Code) String() string {
	if s, ok := codeText[c]; ok {
		return s
	}
	return "unknown"
}

// Error is an assembler-tier failure.
type Error struct {
	Code Code
	Pos  token.Position
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("asm: %s at %s: %s", e.Code, e.Pos, e.Msg)
}

func newError(code Code, pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Code: code, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
