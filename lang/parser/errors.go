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

package parser

import (
	"fmt"

	"github.com/Weckyy702/RaychelScript-sub000/lang/token"
)

// Code is the parser error taxonomy (spec §7). Names for the semantic
// checks (assign_to_non_value_ref and friends) follow the original C++
// implementation's ParserErrorCode enum.
type Code int

const (
	ErrNoInput Code = iota
	ErrInvalidConfig
	ErrInvalidConstruct
	ErrInvalidDeclaration
	ErrInvalidNumericConstant
	ErrMismatchedConditional
	ErrMismatchedElse
	ErrMismatchedLoop
	ErrMismatchedHeaderFooterType
	ErrMismatchedEndfn
	ErrDuplicateFunction
	ErrInvalidFunctionDefinition
	ErrReturnInInvalidScope
	ErrMissingReturn
	ErrAssignToNonValueRef
	ErrAssignRHSNotNumberType
	ErrArithOpNotNumberType
	ErrOpAssignLHSNotIdentifier
	ErrUnaryOpOperandNotNumberType
	ErrConditionalConditionNotBooleanType
	ErrRelationalOpLHSNotNumberType
	ErrRelationalOpRHSNotNumberType
	ErrCallArgNotNumberType
)

var codeText = map[Code]string{
	ErrNoInput:                            "no_input",
	ErrInvalidConfig:                      "invalid_config",
	ErrInvalidConstruct:                   "invalid_construct",
	ErrInvalidDeclaration:                 "invalid_declaration",
	ErrInvalidNumericConstant:             "invalid_numeric_constant",
	ErrMismatchedConditional:              "mismatched_conditional",
	ErrMismatchedElse:                     "mismatched_else",
	ErrMismatchedLoop:                     "mismatched_loop",
	ErrMismatchedHeaderFooterType:         "mismatched_header_footer_type",
	ErrMismatchedEndfn:                    "mismatched_endfn",
	ErrDuplicateFunction:                  "duplicate_function",
	ErrInvalidFunctionDefinition:          "invalid_function_definition",
	ErrReturnInInvalidScope:               "return_in_invalid_scope",
	ErrMissingReturn:                      "missing_return",
	ErrAssignToNonValueRef:                "assign_to_non_value_ref",
	ErrAssignRHSNotNumberType:             "assign_rhs_not_number_type",
	ErrArithOpNotNumberType:               "arith_op_not_number_type",
	ErrOpAssignLHSNotIdentifier:           "op_assign_lhs_not_identifier",
	ErrUnaryOpOperandNotNumberType:        "unary_op_rhs_not_number_type",
	ErrConditionalConditionNotBooleanType: "conditional_construct_condition_not_boolean_type",
	ErrRelationalOpLHSNotNumberType:       "relational_op_lhs_not_number_type",
	ErrRelationalOpRHSNotNumberType:       "relational_op_rhs_not_number_type",
	ErrCallArgNotNumberType:               "call_arg_not_number_type",
}

func (c Code) String() string {
	if s, ok := codeText[c]; ok {
		return s
	}
	return "unknown"
}

// Error is a parser-tier failure: a taxonomy code, the position it was
// raised at, and a human-readable reason.
type Error struct {
	Code Code
	Pos  token.Position
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("parser: %s at %s: %s", e.Code, e.Pos, e.Msg)
}

func newError(code Code, pos token.Position, format string, args ...interface{}) *Error {
	return &Error{Code: code, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}
