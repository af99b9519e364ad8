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

package optimizer

import (
	"testing"

	"github.com/Weckyy702/RaychelScript-sub000/lang/parser"
)

func TestRemoveIfNoSideEffectsDropsBareArithmetic(t *testing.T) {
	prog, err := parser.Parse("[[config]]\ninput a\noutput b\n[[body]]\na + 1\nb = a\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := Optimize(prog, LevelLight)
	if len(out.Body) != 1 {
		t.Fatalf("expected the side-effect-free statement to be dropped, got %d nodes", len(out.Body))
	}
}

func TestLiteralTrueConditionalInlines(t *testing.T) {
	prog, err := parser.Parse("[[config]]\ninput a\noutput b\n[[body]]\nif 1==1\nb = a\nendif\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := Optimize(prog, LevelLight)
	if len(out.Body) != 3 {
		t.Fatalf("expected InlinePush, body, InlinePop (3 nodes), got %d", len(out.Body))
	}
}

func TestLiteralFalseConditionalIsRemoved(t *testing.T) {
	prog, err := parser.Parse("[[config]]\ninput a\noutput b\n[[body]]\nif 1==2\nb = a\nendif\nb = a\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := Optimize(prog, LevelLight)
	if len(out.Body) != 1 {
		t.Fatalf("expected only the trailing assignment to survive, got %d nodes", len(out.Body))
	}
}

func TestPipelineIsIdempotent(t *testing.T) {
	prog, err := parser.Parse("[[config]]\ninput a\noutput b\n[[body]]\nif 1==1\nb = a\nendif\na + 1\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	once := Optimize(prog, LevelLight)
	twice := Optimize(once, LevelLight)
	if len(once.Body) != len(twice.Body) {
		t.Fatalf("pipeline not idempotent: %d nodes then %d nodes", len(once.Body), len(twice.Body))
	}
}

func TestRemoveExpressionsWithoutOutputDependencyKeepsOutput(t *testing.T) {
	prog, err := parser.Parse("[[config]]\ninput a\noutput b\n[[body]]\nvar dead = a + 1\nb = a\n")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	out := Optimize(prog, LevelHard)
	if len(out.Body) != 1 {
		t.Fatalf("expected dead declaration removed and output assignment kept, got %d nodes", len(out.Body))
	}
}
