// Package ast defines the syntax tree for the CSS value definition syntax:
// the formal grammar notation CSS specifications use to describe property
// values, e.g. `<color> | <integer>#{1,4}`.
package ast

// CombinatorKind identifies how sibling terms in a Group are joined.
// Declaration order is precedence order: Space binds tightest, VerticalLine
// loosest. Tighter kinds form inner groups when the parser regroups a flat
// term list.
type CombinatorKind int

const (
	// Space is juxtaposition: every term, in the given order.
	Space CombinatorKind = iota
	// DoubleAmpersand is `&&`: every term, in any order.
	DoubleAmpersand
	// DoubleVerticalLine is `||`: one or more of the terms, in any order.
	DoubleVerticalLine
	// VerticalLine is `|`: exactly one of the terms.
	VerticalLine
)

// String returns the combinator's token text. Space renders as a single
// space.
func (k CombinatorKind) String() string {
	switch k {
	case DoubleAmpersand:
		return "&&"
	case DoubleVerticalLine:
		return "||"
	case VerticalLine:
		return "|"
	}
	return " "
}

// Separator returns the text that joins group terms when rendering: padded
// with spaces by default, bare glyphs in compact mode.
func (k CombinatorKind) Separator(compact bool) string {
	if k == Space || compact {
		return k.String()
	}
	return " " + k.String() + " "
}

// Node is a node in a value definition syntax tree. The set of
// implementations is closed: Multiplier, Token, Property, Range, Type,
// Function, Keyword, Combinator, Comma, String, Spaces, AtKeyword and Group.
//
// Combinator and Spaces only exist while the parser collects a flat term
// list; a finished parse never contains them, and the generator and walker
// report them as contract violations.
type Node interface {
	node()
}

// Multiplier repeats its term between Min and Max times, where Max 0 means
// unbounded. Comma marks the comma-separated forms `#`, `#?` and `#{m,n}`.
// The stacked `+#` form from css-values-4 is two nested Multipliers: the
// comma form outside, the `+` inside.
type Multiplier struct {
	Comma    bool
	Min, Max uint32
	Term     Node
}

// Token is a literal punctuation character not otherwise classified, such
// as the `)` that closes a Function.
type Token struct {
	Value rune
}

// Property references another property's grammar, written <'name'>.
type Property struct {
	Name string
}

// Range restricts a Type to [Min,Max]. It only ever appears as a Type's
// Opts. Units apply per bound and are empty when absent; the parser does
// not require Min <= Max.
type Range struct {
	Min, Max         ExtendedInt
	MinUnit, MaxUnit string
}

// Type references a basic or functional type: <name>, <name()> or
// <name [min,max]>. Opts is nil or a *Range.
type Type struct {
	Name string
	Opts Node
}

// Function is a function-opening token `name(`. Arguments follow as
// ordinary sibling terms, closed by a `)` Token.
type Function struct {
	Name string
}

// Keyword is a bare identifier.
type Keyword struct {
	Name string
}

// Combinator is a parse-time marker for an operator read between two terms.
type Combinator struct {
	Value CombinatorKind
}

// Comma is the literal `,` separator. It is a term, not a combinator.
type Comma struct{}

// String is a quoted literal; Value keeps the quotes, e.g. `'+'`.
type String struct {
	Value string
}

// Spaces is a parse-time whitespace run.
type Spaces struct {
	Value string
}

// AtKeyword is `@name`.
type AtKeyword struct {
	Name string
}

// Group is an ordered sequence of terms joined by a single combinator.
// Explicit marks groups written with literal `[ ]` brackets; DisallowEmpty
// marks a trailing `!`.
type Group struct {
	Terms         []Node
	Combinator    CombinatorKind
	DisallowEmpty bool
	Explicit      bool
}

func (*Multiplier) node() {}
func (*Token) node()      {}
func (*Property) node()   {}
func (*Range) node()      {}
func (*Type) node()       {}
func (*Function) node()   {}
func (*Keyword) node()    {}
func (*Combinator) node() {}
func (*Comma) node()      {}
func (*String) node()     {}
func (*Spaces) node()     {}
func (*AtKeyword) node()  {}
func (*Group) node()      {}
