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

// Package lexer turns RaychelScript source text into a stream of tokens. It
// is a straightforward state machine over ASCII: single-character runes are
// classified directly, numbers and identifiers are scanned by accumulating
// runs of accepted characters, and '#' starts a line comment.
package lexer

import (
	"strings"

	"github.com/Weckyy702/RaychelScript-sub000/lang/token"
)

// Lexer holds scanning state over one source buffer.
type Lexer struct {
	src          []rune
	position     int
	readPosition int
	ch           rune
	line, col    int
}

// New creates a Lexer over input.
func New(input string) *Lexer {
	l := &Lexer{src: []rune(input), line: 1, col: 0}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.ch == '\n' {
		l.line++
		l.col = 0
	}
	if l.readPosition >= len(l.src) {
		l.ch = 0
	} else {
		l.ch = l.src[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.col++
}

func (l *Lexer) peekChar() rune {
	if l.readPosition >= len(l.src) {
		return 0
	}
	return l.src[l.readPosition]
}

// NextToken scans and returns the next token, skipping whitespace (other
// than newlines, which are significant) and '#' comments.
func (l *Lexer) NextToken() token.Token {
	l.skipSpaceAndComments()

	pos := token.Position{Line: l.line, Column: l.col}

	switch l.ch {
	case 0:
		return l.tok(pos, token.EOF, "")
	case '\n':
		t := l.tok(pos, token.Newline, "")
		l.readChar()
		return t
	case '(':
		return l.simple(pos, token.LParen)
	case ')':
		return l.simple(pos, token.RParen)
	case '[':
		return l.simple(pos, token.LBracket)
	case ']':
		return l.simple(pos, token.RBracket)
	case '{':
		return l.simple(pos, token.LCurly)
	case '}':
		return l.simple(pos, token.RCurly)
	case ',':
		return l.simple(pos, token.Comma)
	case '+':
		return l.simple(pos, token.Plus)
	case '-':
		return l.simple(pos, token.Minus)
	case '*':
		return l.simple(pos, token.Star)
	case '/':
		return l.simple(pos, token.Slash)
	case '%':
		return l.simple(pos, token.Percent)
	case '^':
		return l.simple(pos, token.Caret)
	case '&':
		return l.simple(pos, token.Amp)
	case '|':
		return l.simple(pos, token.Pipe)
	case '=':
		if l.peekChar() == '=' {
			l.readChar()
			return l.simple(pos, token.Eq)
		}
		return l.simple(pos, token.Assign)
	case '!':
		if l.peekChar() == '=' {
			l.readChar()
			return l.simple(pos, token.Neq)
		}
		return l.simple(pos, token.Bang)
	case '<':
		return l.simple(pos, token.Lt)
	case '>':
		return l.simple(pos, token.Gt)
	}

	if isDigit(l.ch) {
		return l.readNumber(pos)
	}
	if isIdentStart(l.ch) {
		return l.readIdentifier(pos)
	}

	t := l.tok(pos, token.Illegal, string(l.ch))
	l.readChar()
	return t
}

func (l *Lexer) tok(pos token.Position, kind token.Kind, lit string) token.Token {
	return token.Token{Kind: kind, Pos: pos, Literal: lit}
}

func (l *Lexer) simple(pos token.Position, kind token.Kind) token.Token {
	t := l.tok(pos, kind, "")
	l.readChar()
	return t
}

func (l *Lexer) skipSpaceAndComments() {
	for {
		switch {
		case l.ch == ' ' || l.ch == '\t' || l.ch == '\r':
			l.readChar()
		case l.ch == '#':
			for l.ch != '\n' && l.ch != 0 {
				l.readChar()
			}
		default:
			return
		}
	}
}

func (l *Lexer) readNumber(pos token.Position) token.Token {
	var b strings.Builder
	for isDigit(l.ch) {
		b.WriteRune(l.ch)
		l.readChar()
	}
	if l.ch == '.' && isDigit(l.peekChar()) {
		b.WriteRune(l.ch)
		l.readChar()
		for isDigit(l.ch) {
			b.WriteRune(l.ch)
			l.readChar()
		}
	}
	return l.tok(pos, token.Number, b.String())
}

func (l *Lexer) readIdentifier(pos token.Position) token.Token {
	var b strings.Builder
	for isIdentPart(l.ch) {
		b.WriteRune(l.ch)
		l.readChar()
	}
	lit := b.String()
	if kw, ok := token.Lookup(lit); ok {
		return l.tok(pos, kw, lit)
	}
	return l.tok(pos, token.Ident, lit)
}

func isDigit(ch rune) bool { return ch >= '0' && ch <= '9' }

func isIdentStart(ch rune) bool {
	return ch == '_' || (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z')
}

func isIdentPart(ch rune) bool { return isIdentStart(ch) || isDigit(ch) }

// Tokenize scans all of input and returns the full token list, terminated by
// an EOF token. It is a convenience wrapper around repeated NextToken calls
// for callers (the parser, tests) that want the whole stream at once.
func Tokenize(input string) []token.Token {
	l := New(input)
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			return toks
		}
	}
}
