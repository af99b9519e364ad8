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

import "fmt"

// Code identifies a kind of VM-stage failure. Codes from other pipeline
// stages are never mapped onto this set; they propagate as the cause of a
// wrapped error instead.
type Code int

// VM error codes (spec §7).
const (
	ErrMismatchedInputs Code = iota
	ErrMismatchedOutputs
	ErrUnknownOpcode
	ErrDivideByZero
	ErrInvalidOperand
	ErrStackOverflow
	ErrStackUnderflow
	ErrMemoryOverflow
	ErrFPException
	ErrInvalidProgram
)

var codeText = map[Code]string{
	ErrMismatchedInputs:  "mismatched_inputs",
	ErrMismatchedOutputs: "mismatched_outputs",
	ErrUnknownOpcode:     "unknown_opcode",
	ErrDivideByZero:      "divide_by_zero",
	ErrInvalidOperand:    "invalid_operand",
	ErrStackOverflow:     "stack_overflow",
	ErrStackUnderflow:    "stack_underflow",
	ErrMemoryOverflow:    "memory_overflow",
	ErrFPException:       "fp_exception",
	ErrInvalidProgram:    "invalid_program",
}

func (c Code) String() string {
	if s, ok := codeText[c]; ok {
		return s
	}
	return "unknown_error"
}

// Error is a fatal VM failure. One raised during execution sets the
// Instance's halt flag, ending that Run; a mismatched input or output count
// is reported before any instruction executes.
type Error struct {
	Code Code
	IP   int
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("vm: %s at ip=%d", e.Code, e.IP)
	}
	return fmt.Sprintf("vm: %s at ip=%d: %s", e.Code, e.IP, e.Msg)
}

func newError(code Code, ip int, format string, args ...interface{}) *Error {
	return &Error{Code: code, IP: ip, Msg: fmt.Sprintf(format, args...)}
}
