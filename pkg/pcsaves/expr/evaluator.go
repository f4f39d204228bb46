package expr

import "regexp"

// EvaluateAST reports whether the wanted-save expression node is satisfied
// by saves as a whole, mirroring original_source/lib/parser.py's
// evaluate_ast: PIECES and REGEX literals match if any save in the list
// matches; NOT negates that whole-list existence check; AVOID instead asks,
// per individual save, whether that save alone fails the child expression,
// succeeding if at least one save does. AND/OR combine two whole-list
// booleans with short-circuiting, matching the original's evaluation order.
func EvaluateAST(node Node, saves []string) (bool, error) {
	switch n := node.(type) {
	case *PiecesNode:
		want := byteCounts(n.Value)
		for _, save := range saves {
			if containsCounts(byteCounts(save), want) {
				return true, nil
			}
		}
		return false, nil

	case *RegexNode:
		re, err := regexp.Compile(n.Pattern)
		if err != nil {
			return false, &SyntaxError{Expr: n.Pattern, Msg: "invalid regular expression: " + err.Error()}
		}
		for _, save := range saves {
			if re.MatchString(save) {
				return true, nil
			}
		}
		return false, nil

	case *UnaryNode:
		switch n.Op {
		case OpNot:
			ok, err := EvaluateAST(n.Child, saves)
			if err != nil {
				return false, err
			}
			return !ok, nil
		case OpAvoid:
			for _, save := range saves {
				ok, err := EvaluateAST(n.Child, []string{save})
				if err != nil {
					return false, err
				}
				if !ok {
					return true, nil
				}
			}
			return false, nil
		default:
			return false, &SyntaxError{Msg: "unknown unary operator " + string(n.Op)}
		}

	case *BinaryNode:
		left, err := EvaluateAST(n.Left, saves)
		if err != nil {
			return false, err
		}
		switch n.Op {
		case OpAnd:
			if !left {
				return false, nil
			}
		case OpOr:
			if left {
				return true, nil
			}
		default:
			return false, &SyntaxError{Msg: "unknown binary operator " + string(n.Op)}
		}
		return EvaluateAST(n.Right, saves)

	default:
		return false, &SyntaxError{Msg: "unknown AST node type"}
	}
}

// EvaluateASTAll returns the indices into saves that individually satisfy
// node when evaluated alone - the per-save breakdown the filter engine
// needs, built directly on EvaluateAST so that nested
// NOT/AVOID operators always see the same singleton-list semantics they
// would under a direct AVOID evaluation.
func EvaluateASTAll(node Node, saves []string) ([]int, error) {
	var out []int
	for i, save := range saves {
		ok, err := EvaluateAST(node, []string{save})
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, i)
		}
	}
	return out, nil
}

// byteCounts and containsCounts give PIECES literals order-independent
// multiset-subset matching (a save satisfies a wanted-piece literal if it
// contains at least those pieces) without depending on the pcsaves
// package's Counter type, since pcsaves imports expr and a reverse import
// would cycle.
func byteCounts(s string) map[byte]int {
	counts := make(map[byte]int, len(s))
	for i := 0; i < len(s); i++ {
		counts[s[i]]++
	}
	return counts
}

func containsCounts(have, want map[byte]int) bool {
	for k, n := range want {
		if have[k] < n {
			return false
		}
	}
	return true
}
