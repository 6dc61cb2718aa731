// Package parser reads the CSS value definition syntax into an ast tree.
// Entry points are Parse and ParseWithOptions; everything else implements
// the recursive descent over a Tokenizer cursor.
package parser

import (
	"slices"
	"strconv"

	"bennypowers.dev/vds/ast"
	"bennypowers.dev/vds/internal/collections"
	"bennypowers.dev/vds/internal/log"
)

// Options control how the parser treats recoverable semantic conditions:
// mismatched units on a range's bounds, or a digit run ending the input.
// Structural errors are always fatal.
type Options struct {
	// Strict promotes warnings to hard parse errors.
	Strict bool
	// OnWarning receives warnings when Strict is false. Defaults to the
	// module logger.
	OnWarning func(*Warning)
}

// Parse reads a value definition and returns its syntax tree. The whole
// input must be consumed; trailing text is an error. A top-level definition
// that reduces to one bracketed group is returned as that group directly,
// anything else is wrapped in an implicit Group.
func Parse(source string) (ast.Node, error) {
	return ParseWithOptions(source, Options{})
}

// ParseWithOptions is Parse with an explicit warning policy.
func ParseWithOptions(source string, opts Options) (ast.Node, error) {
	t := NewTokenizer(source)
	t.strict = opts.Strict
	t.onWarning = opts.OnWarning
	if t.onWarning == nil && !opts.Strict {
		t.onWarning = func(w *Warning) { log.Warn("%s", w) }
	}

	group, err := readImplicitGroup(t)
	if err != nil {
		return nil, err
	}
	if t.Pos != t.Len() {
		return nil, &SyntaxError{Pos: t.Pos, Err: ErrUnexpectedInput}
	}
	if len(group.Terms) == 0 {
		return nil, ErrEmptyInput
	}
	if len(group.Terms) == 1 {
		if g, ok := group.Terms[0].(*ast.Group); ok {
			return g, nil
		}
	}
	return group, nil
}

func isNameChar(r rune) bool {
	return r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || isDigit(r) || r == '-'
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func scanSpaces(t *Tokenizer) string {
	return t.SubstringTo(t.FindWSEnd(t.Pos))
}

// scanWord reads a run of name characters. canBeLast allows the run to end
// the input; otherwise a terminating character must follow it.
func scanWord(t *Tokenizer, canBeLast bool) (string, error) {
	end := t.Pos
	for end < t.Len() && isNameChar(t.At(end)) {
		end++
	}
	if end == t.Len() && !canBeLast {
		return "", &SyntaxError{Pos: t.Pos, Err: ErrExpectedKeyword}
	}
	return t.SubstringTo(end), nil
}

// scanNumber reads a digit run. A run that reaches the end of input leaves
// no terminating character for the surrounding construct, which is reported
// as a warning before the digits are returned.
func scanNumber(t *Tokenizer) (string, error) {
	end := t.Pos
	for end < t.Len() && isDigit(t.At(end)) {
		end++
	}
	if end == t.Len() {
		if err := t.warn(ErrExpectedNumber, ""); err != nil {
			return "", err
		}
	}
	return t.SubstringTo(end), nil
}

// scanString reads a quoted literal, keeping both apostrophes in the value.
func scanString(t *Tokenizer) (string, error) {
	start := t.Pos
	for end := t.Pos + 1; end < t.Len(); end++ {
		if t.At(end) == '\'' {
			return t.SubstringTo(end + 1), nil
		}
	}
	t.Pos = t.Len()
	return "", &SyntaxError{Pos: start, Err: ErrUnterminatedString}
}

// readMultiplierRange parses `{m}`, `{m,}` or `{m,n}` after a term. Digits
// only; embedded whitespace is not tolerated.
func readMultiplierRange(t *Tokenizer) (min, max uint32, err error) {
	if err := t.Eat('{'); err != nil {
		return 0, 0, err
	}

	digits, err := scanNumber(t)
	if err != nil {
		return 0, 0, err
	}
	n, perr := strconv.ParseUint(digits, 10, 32)
	if perr != nil {
		return 0, 0, &SyntaxError{Pos: t.Pos, Err: ErrExpectedNumber}
	}
	min = uint32(n)

	max = min
	if t.Current() == ',' {
		t.Pos++
		if t.Current() != '}' {
			digits, err := scanNumber(t)
			if err != nil {
				return 0, 0, err
			}
			n, perr := strconv.ParseUint(digits, 10, 32)
			if perr != nil {
				return 0, 0, &SyntaxError{Pos: t.Pos, Err: ErrExpectedNumber}
			}
			max = uint32(n)
		} else {
			max = 0
		}
	}

	if err := t.Eat('}'); err != nil {
		return 0, 0, err
	}
	return min, max, nil
}

// multiplier is a just-read marker that has not wrapped its term yet.
type multiplier struct {
	comma    bool
	min, max uint32
}

// readMultiplier reads a multiplier marker at the cursor, or nil when the
// next character does not start one. `#` alone is one-or-more
// comma-separated, `#?` zero-or-more comma-separated, `#{m,n}` a
// comma-separated range.
func readMultiplier(t *Tokenizer) (*multiplier, error) {
	switch t.Current() {
	case '*':
		t.Pos++
		return &multiplier{min: 0, max: 0}, nil
	case '+':
		t.Pos++
		return &multiplier{min: 1, max: 0}, nil
	case '?':
		t.Pos++
		return &multiplier{min: 0, max: 1}, nil
	case '#':
		t.Pos++
		m := &multiplier{comma: true, min: 1, max: 0}
		switch t.Current() {
		case '{':
			min, max, err := readMultiplierRange(t)
			if err != nil {
				return nil, err
			}
			m.min, m.max = min, max
		case '?':
			t.Pos++
			m.min, m.max = 0, 0
		}
		return m, nil
	case '{':
		min, max, err := readMultiplierRange(t)
		if err != nil {
			return nil, err
		}
		return &multiplier{min: min, max: max}, nil
	}
	return nil, nil
}

// maybeMultiplied wraps node in a Multiplier when one follows it. The `+#`
// stacking from css-values-4 becomes two nested Multipliers, the comma form
// wrapping the `+`; the two-character lookback detects it.
func maybeMultiplied(t *Tokenizer, node ast.Node) (ast.Node, error) {
	m, err := readMultiplier(t)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return node, nil
	}
	wrapped := &ast.Multiplier{Comma: m.comma, Min: m.min, Max: m.max, Term: node}
	if t.Current() == '#' && t.At(t.Pos-1) == '+' {
		return maybeMultiplied(t, wrapped)
	}
	return wrapped, nil
}

// readToken consumes the current rune as a literal Token, or returns nil at
// the end of input.
func readToken(t *Tokenizer) ast.Node {
	r := t.Next()
	if r == eof {
		return nil
	}
	return &ast.Token{Value: r}
}

// readProperty parses <'name'>.
func readProperty(t *Tokenizer) (ast.Node, error) {
	if err := t.Eat('<'); err != nil {
		return nil, err
	}
	if err := t.Eat('\''); err != nil {
		return nil, err
	}
	name, err := scanWord(t, false)
	if err != nil {
		return nil, err
	}
	if err := t.Eat('\''); err != nil {
		return nil, err
	}
	if err := t.Eat('>'); err != nil {
		return nil, err
	}
	return maybeMultiplied(t, &ast.Property{Name: name})
}

// readTypeRange parses the bracketed range notation that can follow a type
// name: [min,max], each bound a signed integer or ∞, optionally
// unit-suffixed. Bounds with different units parse, but are reported.
func readTypeRange(t *Tokenizer) (ast.Node, error) {
	if err := t.Eat('['); err != nil {
		return nil, err
	}

	sign := int32(1)
	if t.Current() == '-' {
		t.Next()
		sign = -1
	}

	var min ast.ExtendedInt
	var minUnit string
	if sign == -1 && t.Current() == '∞' {
		t.Next()
		min = ast.NegativeInfinity
	} else {
		digits, err := scanNumber(t)
		if err != nil {
			return nil, err
		}
		if n, perr := strconv.ParseInt(digits, 10, 32); perr == nil {
			min = ast.Finite(int32(n) * sign)
		} else {
			min = ast.NegativeInfinity
		}
		if isNameChar(t.Current()) {
			if minUnit, err = scanWord(t, false); err != nil {
				return nil, err
			}
		}
	}

	scanSpaces(t)
	if err := t.Eat(','); err != nil {
		return nil, err
	}
	scanSpaces(t)

	var max ast.ExtendedInt
	var maxUnit string
	if t.Current() == '∞' {
		t.Next()
		max = ast.Infinity
	} else {
		sign := int32(1)
		if t.Current() == '-' {
			t.Next()
			sign = -1
		}
		digits, err := scanNumber(t)
		if err != nil {
			return nil, err
		}
		if n, perr := strconv.ParseInt(digits, 10, 32); perr == nil {
			max = ast.Finite(int32(n) * sign)
		} else {
			max = ast.Infinity
		}
		if isNameChar(t.Current()) {
			if maxUnit, err = scanWord(t, false); err != nil {
				return nil, err
			}
		}
	}

	if minUnit != "" && maxUnit != "" && minUnit != maxUnit {
		if err := t.warn(ErrMismatchedUnits, minUnit+" vs "+maxUnit); err != nil {
			return nil, err
		}
	}

	if err := t.Eat(']'); err != nil {
		return nil, err
	}

	return &ast.Range{Min: min, Max: max, MinUnit: minUnit, MaxUnit: maxUnit}, nil
}

// readType parses <name>, <name()> or <name [range]>.
func readType(t *Tokenizer) (ast.Node, error) {
	if err := t.Eat('<'); err != nil {
		return nil, err
	}
	name, err := scanWord(t, false)
	if err != nil {
		return nil, err
	}

	if t.Current() == '(' && t.Ahead() == ')' {
		t.Pos += 2
		name += "()"
	}

	var opts ast.Node
	if t.At(t.FindWSEnd(t.Pos)) == '[' {
		scanSpaces(t)
		if opts, err = readTypeRange(t); err != nil {
			return nil, err
		}
	}

	if err := t.Eat('>'); err != nil {
		return nil, err
	}
	return maybeMultiplied(t, &ast.Type{Name: name, Opts: opts})
}

// readKeywordOrFunction scans an identifier; one followed directly by `(`
// becomes a Function, whose closing `)` is read later as a literal Token.
func readKeywordOrFunction(t *Tokenizer) (ast.Node, error) {
	name, err := scanWord(t, true)
	if err != nil {
		return nil, err
	}

	if t.Current() == '(' {
		t.Pos++
		if t.Pos >= t.Len() {
			return nil, &SyntaxError{Pos: t.Pos, Err: ErrExpectedFunction}
		}
		return &ast.Function{Name: name}, nil
	}

	return maybeMultiplied(t, &ast.Keyword{Name: name})
}

// readTerm dispatches on the current character to the specific reader. It
// returns nil for anything that ends the caller's sequence: end of input, a
// group-closing `]`, or a multiplier marker not following a term.
func readTerm(t *Tokenizer) (ast.Node, error) {
	r := t.Current()
	if isNameChar(r) {
		return readKeywordOrFunction(t)
	}

	switch r {
	case ']':
		return nil, nil
	case '[':
		group, err := readGroup(t)
		if err != nil {
			return nil, err
		}
		return maybeMultiplied(t, group)
	case '<':
		if t.Ahead() == '\'' {
			return readProperty(t)
		}
		return readType(t)
	case '|':
		t.Pos++
		kind := ast.VerticalLine
		if t.Current() == '|' {
			t.Pos++
			kind = ast.DoubleVerticalLine
		}
		return &ast.Combinator{Value: kind}, nil
	case '&':
		t.Pos++
		if err := t.Eat('&'); err != nil {
			return nil, err
		}
		return &ast.Combinator{Value: ast.DoubleAmpersand}, nil
	case ',':
		t.Pos++
		return &ast.Comma{}, nil
	case '\'':
		value, err := scanString(t)
		if err != nil {
			return nil, err
		}
		return maybeMultiplied(t, &ast.String{Value: value})
	case ' ', '\t', '\n', '\r', '\f':
		return &ast.Spaces{Value: scanSpaces(t)}, nil
	case '@':
		if isNameChar(t.Ahead()) {
			t.Pos++
			name, err := scanWord(t, true)
			if err != nil {
				return nil, err
			}
			return &ast.AtKeyword{Name: name}, nil
		}
		return readToken(t), nil
	case '*', '+', '?', '#', '!':
		// only valid directly after a term, via maybeMultiplied
		return nil, nil
	case '{':
		if !isDigit(t.Ahead()) {
			return readToken(t), nil
		}
		return nil, nil
	}

	return readToken(t), nil
}

// readImplicitGroup collects a flat run of terms and combinator markers up
// to the end of the enclosing group, inserts the implicit Space combinator
// between adjacent terms, and folds the run by combinator precedence.
func readImplicitGroup(t *Tokenizer) (*ast.Group, error) {
	prevPos := t.Pos
	kinds := collections.Set[ast.CombinatorKind]{}
	var terms []ast.Node

	for {
		token, err := readTerm(t)
		if err != nil {
			return nil, err
		}
		if token == nil {
			break
		}

		switch token := token.(type) {
		case *ast.Spaces:
			continue
		case *ast.Combinator:
			if len(terms) == 0 {
				return nil, &SyntaxError{Pos: prevPos, Err: ErrUnexpectedCombinator}
			}
			if _, ok := terms[len(terms)-1].(*ast.Combinator); ok {
				return nil, &SyntaxError{Pos: prevPos, Err: ErrUnexpectedCombinator}
			}
			kinds.Add(token.Value)
		default:
			if len(terms) > 0 {
				if _, ok := terms[len(terms)-1].(*ast.Combinator); !ok {
					kinds.Add(ast.Space)
					terms = append(terms, &ast.Combinator{Value: ast.Space})
				}
			}
		}
		terms = append(terms, token)
		prevPos = t.Pos
	}

	if len(terms) > 0 {
		if _, ok := terms[len(terms)-1].(*ast.Combinator); ok {
			return nil, &SyntaxError{Pos: prevPos, Err: ErrUnexpectedCombinator}
		}
	}

	grouped, combinator := regroupTerms(terms, kinds)
	return &ast.Group{Terms: grouped, Combinator: combinator}, nil
}

// regroupTerms folds a flat term/marker list by combinator precedence:
// tighter-binding kinds collapse their runs into implicit inner Groups, the
// markers are discarded, and the loosest kind present (Space when none)
// becomes the combinator of the remaining top-level list.
func regroupTerms(terms []ast.Node, kinds collections.Set[ast.CombinatorKind]) ([]ast.Node, ast.CombinatorKind) {
	order := kinds.Sorted()
	combinator := ast.Space
	if len(order) > 0 {
		combinator = order[len(order)-1]
	}

	for idx, kind := range order {
		last := idx == len(order)-1
		i := 0
		subgroupStart := -1

		for i < len(terms) {
			if marker, ok := terms[i].(*ast.Combinator); ok {
				if marker.Value == kind {
					if subgroupStart < 0 && i > 0 {
						subgroupStart = i - 1
					}
					terms = slices.Delete(terms, i, i+1)
					continue
				}
				if subgroupStart >= 0 && i-subgroupStart > 1 {
					terms = foldRun(terms, subgroupStart, i, kind)
					i = subgroupStart + 1
				}
				subgroupStart = -1
			}
			i++
		}

		if subgroupStart >= 0 && !last {
			terms = foldRun(terms, subgroupStart, len(terms), kind)
		}
	}

	return terms, combinator
}

// foldRun replaces terms[start:end] with one implicit Group joined by kind.
func foldRun(terms []ast.Node, start, end int, kind ast.CombinatorKind) []ast.Node {
	group := &ast.Group{Terms: slices.Clone(terms[start:end]), Combinator: kind}
	terms = slices.Delete(terms, start+1, end)
	terms[start] = group
	return terms
}

// readGroup parses an explicit bracketed group and its optional trailing
// `!`.
func readGroup(t *Tokenizer) (ast.Node, error) {
	if err := t.Eat('['); err != nil {
		return nil, err
	}
	group, err := readImplicitGroup(t)
	if err != nil {
		return nil, err
	}
	if err := t.Eat(']'); err != nil {
		return nil, err
	}

	group.Explicit = true

	if t.Current() == '!' {
		t.Pos++
		group.DisallowEmpty = true
	}

	return group, nil
}
