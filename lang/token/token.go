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

// Package token defines the token kinds produced by the lexer and consumed
// by the parser.
package token

import "fmt"

// Kind identifies what a Token is.
type Kind int

const (
	Illegal Kind = iota
	EOF
	Newline

	Number
	Ident

	LParen
	RParen
	LBracket
	RBracket
	LCurly
	RCurly
	Comma

	// keywords
	KwInput
	KwOutput
	KwLet
	KwVar
	KwIf
	KwElse
	KwEndif
	KwWhile
	KwEndwhile
	KwFn
	KwEndfn
	KwReturn
	KwTrue
	KwFalse

	// operators
	Plus
	Minus
	Star
	Slash
	Percent
	Caret
	Assign
	Lt
	Gt
	Bang
	Amp
	Pipe
	Eq
	Neq
)

var names = map[Kind]string{
	Illegal:    "illegal",
	EOF:        "eof",
	Newline:    "newline",
	Number:     "number",
	Ident:      "identifier",
	LParen:     "(",
	RParen:     ")",
	LBracket:   "[",
	RBracket:   "]",
	LCurly:     "{",
	RCurly:     "}",
	Comma:      ",",
	KwInput:    "input",
	KwOutput:   "output",
	KwLet:      "let",
	KwVar:      "var",
	KwIf:       "if",
	KwElse:     "else",
	KwEndif:    "endif",
	KwWhile:    "while",
	KwEndwhile: "endwhile",
	KwFn:       "fn",
	KwEndfn:    "endfn",
	KwReturn:   "return",
	KwTrue:     "true",
	KwFalse:    "false",
	Plus:       "+",
	Minus:      "-",
	Star:       "*",
	Slash:      "/",
	Percent:    "%",
	Caret:      "^",
	Assign:     "=",
	Lt:         "<",
	Gt:         ">",
	Bang:       "!",
	Amp:        "&",
	Pipe:       "|",
	Eq:         "==",
	Neq:        "!=",
}

func (k Kind) String() string {
	if s, ok := names[k]; ok {
		return s
	}
	return "unknown"
}

// keywords maps a lexeme to its reserved keyword Kind. Identifiers that
// don't appear here are plain Ident tokens.
var keywords = map[string]Kind{
	"input":    KwInput,
	"output":   KwOutput,
	"let":      KwLet,
	"var":      KwVar,
	"if":       KwIf,
	"else":     KwElse,
	"endif":    KwEndif,
	"while":    KwWhile,
	"endwhile": KwEndwhile,
	"fn":       KwFn,
	"endfn":    KwEndfn,
	"return":   KwReturn,
	"true":     KwTrue,
	"false":    KwFalse,
}

// Lookup returns the keyword Kind for ident, or (Ident, false) if ident is
// not reserved.
func Lookup(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// Position is a 1-based line/column source location.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string { return fmt.Sprintf("%d:%d", p.Line, p.Column) }

// Token is one lexical unit: its kind, source position, and (for Number and
// Ident) the literal text that produced it.
type Token struct {
	Kind    Kind
	Pos     Position
	Literal string
}

func (t Token) String() string {
	if t.Literal != "" {
		return fmt.Sprintf("%s(%q)@%s", t.Kind, t.Literal, t.Pos)
	}
	return fmt.Sprintf("%s@%s", t.Kind, t.Pos)
}
