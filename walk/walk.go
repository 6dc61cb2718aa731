// Package walk traverses value definition syntax trees depth-first,
// threading caller-owned state through enter and leave callbacks.
// Documentation tooling uses it to collect the constituent types and
// properties a grammar refers to.
package walk

import (
	"bennypowers.dev/vds/ast"
)

// Options carries the visitor callbacks for one traversal. Both default to
// no-ops. Enter runs before a node's children, Leave after; returning an
// error from either stops the walk.
type Options[T any] struct {
	Enter func(node ast.Node, ctx *T) error
	Leave func(node ast.Node, ctx *T) error
}

// Walk visits node and every node beneath it, passing ctx to each callback.
// Group terms and Multiplier terms are descended into; a Type's range
// options are not. Parse-time markers (Combinator, Spaces) and free-standing
// Ranges are contract violations reported as ast.UnknownNodeError.
func Walk[T any](node ast.Node, opts Options[T], ctx *T) error {
	if opts.Enter != nil {
		if err := opts.Enter(node, ctx); err != nil {
			return err
		}
	}

	switch n := node.(type) {
	case *ast.Group:
		for _, term := range n.Terms {
			if err := Walk(term, opts, ctx); err != nil {
				return err
			}
		}
	case *ast.Multiplier:
		if err := Walk(n.Term, opts, ctx); err != nil {
			return err
		}
	case *ast.Token, *ast.Property, *ast.Type, *ast.Function, *ast.Keyword,
		*ast.Comma, *ast.String, *ast.AtKeyword:
	default:
		return &ast.UnknownNodeError{Node: node}
	}

	if opts.Leave != nil {
		return opts.Leave(node, ctx)
	}
	return nil
}
