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

package lexer

import (
	"testing"

	"github.com/Weckyy702/RaychelScript-sub000/lang/token"
)

func kinds(toks []token.Token) []token.Kind {
	k := make([]token.Kind, len(toks))
	for i, t := range toks {
		k[i] = t.Kind
	}
	return k
}

func TestTokenizeConfigHeader(t *testing.T) {
	toks := Tokenize("[[config]]\ninput a, b\noutput c\n[[body]]\nc = a + b\n")
	want := []token.Kind{
		token.LBracket, token.LBracket, token.Ident, token.RBracket, token.RBracket, token.Newline,
		token.KwInput, token.Ident, token.Comma, token.Ident, token.Newline,
		token.KwOutput, token.Ident, token.Newline,
		token.LBracket, token.LBracket, token.Ident, token.RBracket, token.RBracket, token.Newline,
		token.Ident, token.Assign, token.Ident, token.Plus, token.Ident, token.Newline,
		token.EOF,
	}
	got := kinds(toks)
	if len(got) != len(want) {
		t.Fatalf("got %d tokens, want %d: %v", len(got), len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestNumberLiterals(t *testing.T) {
	for _, c := range []struct {
		src  string
		want string
	}{
		{"42", "42"},
		{"3.14", "3.14"},
		{"0.5", "0.5"},
	} {
		toks := Tokenize(c.src)
		if toks[0].Kind != token.Number || toks[0].Literal != c.want {
			t.Errorf("Tokenize(%q) = %v, want Number(%q)", c.src, toks[0], c.want)
		}
	}
}

func TestCommentsAreSkipped(t *testing.T) {
	toks := Tokenize("a # this is a comment\n+ b")
	got := kinds(toks)
	want := []token.Kind{token.Ident, token.Newline, token.Plus, token.Ident, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestKeywordsAndOperators(t *testing.T) {
	toks := Tokenize("if x > 0 endif while i < n endwhile fn f() endfn return x! |y| a!=b a==b")
	got := kinds(toks)
	want := []token.Kind{
		token.KwIf, token.Ident, token.Gt, token.Number, token.KwEndif,
		token.KwWhile, token.Ident, token.Lt, token.Ident, token.KwEndwhile,
		token.KwFn, token.Ident, token.LParen, token.RParen, token.KwEndfn,
		token.KwReturn, token.Ident, token.Bang,
		token.Pipe, token.Ident, token.Pipe,
		token.Ident, token.Neq, token.Ident,
		token.Ident, token.Eq, token.Ident,
		token.EOF,
	}
	if len(got) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(got), got, len(want), want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("token %d: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestIllegalCharacter(t *testing.T) {
	toks := Tokenize("a $ b")
	if toks[1].Kind != token.Illegal {
		t.Errorf("expected Illegal token, got %s", toks[1].Kind)
	}
}
