package parser

import (
	"bennypowers.dev/vds/internal/log"
)

// eof is the sentinel rune returned for any out-of-bounds read.
const eof rune = 0

// Tokenizer is a position-tracking cursor over the source runes. It knows
// nothing about the grammar; the parser drives it. Pos is the cursor and
// may be moved freely by the caller.
type Tokenizer struct {
	runes []rune
	Pos   int

	strict    bool
	onWarning func(*Warning)
}

// NewTokenizer returns a cursor over source positioned at its start.
func NewTokenizer(source string) *Tokenizer {
	return &Tokenizer{runes: []rune(source)}
}

// Len returns the number of runes in the source.
func (t *Tokenizer) Len() int {
	return len(t.runes)
}

// Next returns the rune at the cursor and advances past it, or eof at the
// end of input.
func (t *Tokenizer) Next() rune {
	if t.Pos < len(t.runes) {
		r := t.runes[t.Pos]
		t.Pos++
		return r
	}
	return eof
}

// At returns the rune at pos without moving the cursor. Out-of-bounds
// positions, including negative ones, read as eof.
func (t *Tokenizer) At(pos int) rune {
	if pos >= 0 && pos < len(t.runes) {
		return t.runes[pos]
	}
	return eof
}

// Current returns the rune at the cursor without advancing.
func (t *Tokenizer) Current() rune {
	return t.At(t.Pos)
}

// Ahead returns the rune just past the cursor without advancing.
func (t *Tokenizer) Ahead() rune {
	return t.At(t.Pos + 1)
}

// FindWSEnd returns the index of the first non-whitespace rune at or after
// pos, or the end of input. Whitespace is space, tab, CR, LF and FF.
func (t *Tokenizer) FindWSEnd(pos int) int {
	for ; pos < len(t.runes); pos++ {
		if !isWhitespace(t.runes[pos]) {
			return pos
		}
	}
	return len(t.runes)
}

// SubstringTo returns the text from the cursor to end and moves the cursor
// there.
func (t *Tokenizer) SubstringTo(end int) string {
	s := string(t.runes[t.Pos:end])
	t.Pos = end
	return s
}

// Eat consumes the expected rune or fails with the position and the rune
// actually found.
func (t *Tokenizer) Eat(expected rune) error {
	if t.Current() != expected {
		return &ExpectedCharError{Expected: expected, Actual: t.Current(), Pos: t.Pos}
	}
	t.Pos++
	return nil
}

// warn reports a semantically invalid but structurally recoverable
// condition at the cursor. In strict mode the warning becomes the hard
// error returned to the caller; otherwise it goes to the configured sink
// and parsing continues.
func (t *Tokenizer) warn(sentinel error, detail string) error {
	w := &Warning{Pos: t.Pos, Err: sentinel, Detail: detail}
	if t.strict {
		return w
	}
	if t.onWarning != nil {
		t.onWarning(w)
		return nil
	}
	log.Warn("%s", w)
	return nil
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
