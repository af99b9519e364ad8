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

import "github.com/Weckyy702/RaychelScript-sub000/lang/ast"

// RemoveIfNoSideEffects drops any statement whose HasSideEffect is false,
// recursing into conditional and loop bodies.
func RemoveIfNoSideEffects(body []ast.Node) []ast.Node {
	out := make([]ast.Node, 0, len(body))
	for _, n := range body {
		switch v := n.(type) {
		case *ast.Conditional:
			nv := *v
			nv.Then = RemoveIfNoSideEffects(v.Then)
			nv.Else = RemoveIfNoSideEffects(v.Else)
			out = append(out, &nv)
			continue
		case *ast.Loop:
			nv := *v
			nv.Body = RemoveIfNoSideEffects(v.Body)
			out = append(out, &nv)
			continue
		}
		if n.HasSideEffect() {
			out = append(out, n)
		}
	}
	return out
}

// OptimizeConditionalsLight folds conditionals on a literal-boolean
// condition: a literal-true conditional is replaced by InlinePush, its
// then-body, and InlinePop (preserving the scope boundary the body's
// declarations expect), a literal-false one is replaced the same way by its
// else-body (or removed when that is empty), and a non-literal conditional
// whose then and else bodies are both empty is removed.
func OptimizeConditionalsLight(body []ast.Node) []ast.Node {
	out := make([]ast.Node, 0, len(body))
	for _, n := range body {
		cond, ok := n.(*ast.Conditional)
		if !ok {
			if loop, ok := n.(*ast.Loop); ok {
				nv := *loop
				nv.Body = OptimizeConditionalsLight(loop.Body)
				out = append(out, &nv)
				continue
			}
			out = append(out, n)
			continue
		}

		then := OptimizeConditionalsLight(cond.Then)
		els := OptimizeConditionalsLight(cond.Else)

		if v, isLit := literalBool(cond.Condition); isLit {
			if !v {
				if len(els) > 0 {
					out = append(out, ast.NewInlinePush(cond.Pos()))
					out = append(out, els...)
					out = append(out, ast.NewInlinePop(cond.Pos()))
				}
				continue
			}
			if len(then) == 0 {
				continue
			}
			out = append(out, ast.NewInlinePush(cond.Pos()))
			out = append(out, then...)
			out = append(out, ast.NewInlinePop(cond.Pos()))
			continue
		}

		if len(then) == 0 && len(els) == 0 {
			continue
		}
		nv := *cond
		nv.Then, nv.Else = then, els
		out = append(out, &nv)
	}
	return out
}

// literalBool reports whether cond is a Relational between two
// NumericConstant operands, and if so its statically-known truth value.
func literalBool(cond ast.Node) (value, ok bool) {
	rel, isRel := cond.(*ast.Relational)
	if !isRel {
		return false, false
	}
	lhs, lok := rel.LHS.(*ast.NumericConstant)
	rhs, rok := rel.RHS.(*ast.NumericConstant)
	if !lok || !rok {
		return false, false
	}
	switch rel.Op {
	case ast.Eq:
		return lhs.Value == rhs.Value, true
	case ast.Neq:
		return lhs.Value != rhs.Value, true
	case ast.Lt:
		return lhs.Value < rhs.Value, true
	case ast.Gt:
		return lhs.Value > rhs.Value, true
	}
	return false, false
}

// RemoveExpressionsWithoutOutputDependency deletes every top-level
// Assignment whose target name is neither in outputs nor read anywhere in
// body (by any statement, earlier or later, at any nesting depth). An
// Update counts as a read of its own target, so Updates are never removed,
// and statements nested inside a conditional or loop are never removed.
// Grounded on original_source/Optimizer/include/modules/
// RemoveExpressionIfNoOutputDependency.h; this version computes a single
// read set for the whole body instead of tracking liveness per statement.
func RemoveExpressionsWithoutOutputDependency(body []ast.Node, outputs []string) []ast.Node {
	live := map[string]bool{}
	for _, name := range outputs {
		live[name] = true
	}
	// Every name read anywhere in the body, at any nesting depth, counts as
	// live; where in the body the read happens is not tracked.
	for _, n := range body {
		collectReads(n, live)
	}

	out := make([]ast.Node, len(body))
	copy(out, body)
	for i := len(out) - 1; i >= 0; i-- {
		name, assigns := assignedName(out[i])
		if !assigns {
			continue
		}
		if !live[name] {
			out[i] = nil
			continue
		}
	}
	result := make([]ast.Node, 0, len(out))
	for _, n := range out {
		if n != nil {
			result = append(result, n)
		}
	}
	return result
}

func assignedName(n ast.Node) (string, bool) {
	switch v := n.(type) {
	case *ast.Assignment:
		return lvalueName(v.LHS)
	case *ast.Update:
		return lvalueName(v.LHS)
	}
	return "", false
}

func lvalueName(n ast.Node) (string, bool) {
	switch v := n.(type) {
	case *ast.VariableRef:
		return v.Name, true
	case *ast.VariableDecl:
		return v.Name, true
	}
	return "", false
}

func collectReads(n ast.Node, live map[string]bool) {
	switch v := n.(type) {
	case *ast.Assignment:
		collectReads(v.RHS, live)
	case *ast.Update:
		collectReads(v.LHS, live)
		collectReads(v.RHS, live)
	case *ast.Arithmetic:
		collectReads(v.LHS, live)
		collectReads(v.RHS, live)
	case *ast.Relational:
		collectReads(v.LHS, live)
		collectReads(v.RHS, live)
	case *ast.Unary:
		collectReads(v.Operand, live)
	case *ast.VariableRef:
		live[v.Name] = true
	case *ast.FunctionCall:
		for _, a := range v.Args {
			collectReads(a, live)
		}
	case *ast.FunctionReturn:
		collectReads(v.Value, live)
	case *ast.Conditional:
		collectReads(v.Condition, live)
		for _, s := range v.Then {
			collectReads(s, live)
		}
		for _, s := range v.Else {
			collectReads(s, live)
		}
	case *ast.Loop:
		collectReads(v.Condition, live)
		for _, s := range v.Body {
			collectReads(s, live)
		}
	}
}
