// Package generate serializes a value definition syntax tree back to its
// canonical textual form.
package generate

import (
	"errors"
	"fmt"
	"strings"

	"bennypowers.dev/vds/ast"
)

// ErrExpectedRangeNode indicates a Range in a position the generator cannot
// render: as a free-standing node, or a Type whose Opts is not a Range.
var ErrExpectedRangeNode = errors.New("expected range node")

// DecorateFunc post-processes a node's rendered text. It runs exactly once
// per node, after that node's children have already been rendered and
// decorated, so wrappers nest proportionally to tree depth. It must not
// mutate the tree.
type DecorateFunc func(text string, node ast.Node) string

// Options control rendering.
type Options struct {
	// Compact joins terms with unpadded combinator glyphs and brackets.
	Compact bool
	// ForceBraces brackets every group, explicit or not.
	ForceBraces bool
	// Decorate wraps each node's rendered text; nil leaves it unchanged.
	Decorate DecorateFunc
}

// Generate renders node with default options: spaced combinators, brackets
// only on explicit groups.
func Generate(node ast.Node) (string, error) {
	return GenerateWithOptions(node, Options{})
}

// GenerateWithOptions renders node under the given options.
func GenerateWithOptions(node ast.Node, opts Options) (string, error) {
	if opts.Decorate == nil {
		opts.Decorate = func(text string, _ ast.Node) string { return text }
	}
	return render(node, opts)
}

func render(node ast.Node, opts Options) (string, error) {
	var out string
	switch n := node.(type) {
	case *ast.Multiplier:
		term, err := render(n.Term, opts)
		if err != nil {
			return "", err
		}
		out = term + opts.Decorate(multiplierSuffix(n.Min, n.Max, n.Comma), node)
	case *ast.Token:
		out = string(n.Value)
	case *ast.Property:
		out = "<'" + n.Name + "'>"
	case *ast.Type:
		if n.Opts != nil {
			rangeText, err := rangeOpts(n.Opts)
			if err != nil {
				return "", err
			}
			out = "<" + n.Name + opts.Decorate(rangeText, n.Opts) + ">"
		} else {
			out = "<" + n.Name + ">"
		}
	case *ast.Function:
		out = n.Name + "("
	case *ast.Keyword:
		out = n.Name
	case *ast.Comma:
		out = ","
	case *ast.String:
		out = n.Value
	case *ast.AtKeyword:
		out = "@" + n.Name
	case *ast.Group:
		seq, err := renderGroup(n, opts)
		if err != nil {
			return "", err
		}
		out = seq
		if n.DisallowEmpty {
			out += "!"
		}
	case *ast.Range:
		return "", ErrExpectedRangeNode
	default:
		return "", &ast.UnknownNodeError{Node: node}
	}
	return opts.Decorate(out, node), nil
}

// renderGroup joins the group's terms with its combinator and brackets the
// result when the group is explicit or braces are forced. The opening
// bracket drops its padding space before a leading comma.
func renderGroup(g *ast.Group, opts Options) (string, error) {
	parts := make([]string, 0, len(g.Terms))
	for _, term := range g.Terms {
		text, err := render(term, opts)
		if err != nil {
			return "", err
		}
		parts = append(parts, text)
	}
	result := strings.Join(parts, g.Combinator.Separator(opts.Compact))

	if !g.Explicit && !opts.ForceBraces {
		return result, nil
	}
	open, shut := "[ ", " ]"
	if opts.Compact {
		open, shut = "[", "]"
	} else if strings.HasPrefix(result, ",") {
		open = "["
	}
	return open + result + shut, nil
}

// multiplierSuffix renders the canonical multiplier form: ranges matching a
// shorthand collapse to it, the rest keep range notation with a `#` prefix
// for the comma-separated variants.
func multiplierSuffix(min, max uint32, comma bool) string {
	switch {
	case min == 0 && max == 0 && comma:
		return "#?"
	case min == 0 && max == 0:
		return "*"
	case min == 0 && max == 1:
		return "?"
	case min == 1 && max == 0 && comma:
		return "#"
	case min == 1 && max == 0:
		return "+"
	case min == 1 && max == 1:
		return ""
	}

	prefix := ""
	if comma {
		prefix = "#"
	}
	switch {
	case min == max:
		return fmt.Sprintf("%s{%d}", prefix, min)
	case max == 0:
		return fmt.Sprintf("%s{%d,}", prefix, min)
	}
	return fmt.Sprintf("%s{%d,%d}", prefix, min, max)
}

// rangeOpts renders a Type's range annotation. A bound's unit is kept only
// when that bound is finite.
func rangeOpts(node ast.Node) (string, error) {
	r, ok := node.(*ast.Range)
	if !ok {
		return "", ErrExpectedRangeNode
	}
	minUnit, maxUnit := "", ""
	if r.Min.IsFinite() {
		minUnit = r.MinUnit
	}
	if r.Max.IsFinite() {
		maxUnit = r.MaxUnit
	}
	return fmt.Sprintf(" [%s%s,%s%s]", r.Min, minUnit, r.Max, maxUnit), nil
}
