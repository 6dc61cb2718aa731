package parser_test

import (
	"testing"

	"bennypowers.dev/vds/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenizerNext(t *testing.T) {
	tok := parser.NewTokenizer("ab")
	assert.Equal(t, 'a', tok.Next())
	assert.Equal(t, 'b', tok.Next())
	assert.Equal(t, rune(0), tok.Next(), "past the end Next reads the sentinel")
	assert.Equal(t, 2, tok.Pos, "the cursor does not move past the end")
}

func TestTokenizerAt(t *testing.T) {
	tok := parser.NewTokenizer("abc")
	assert.Equal(t, 'a', tok.At(0))
	assert.Equal(t, 'c', tok.At(2))
	assert.Equal(t, rune(0), tok.At(3))
	assert.Equal(t, rune(0), tok.At(-1), "negative positions read the sentinel")
	assert.Equal(t, 0, tok.Pos, "At does not move the cursor")
}

func TestTokenizerCurrentAndAhead(t *testing.T) {
	tok := parser.NewTokenizer("xy")
	assert.Equal(t, 'x', tok.Current())
	assert.Equal(t, 'y', tok.Ahead())
	tok.Pos = 1
	assert.Equal(t, 'y', tok.Current())
	assert.Equal(t, rune(0), tok.Ahead())
}

func TestTokenizerFindWSEnd(t *testing.T) {
	tok := parser.NewTokenizer("a \t\r\n\fb")
	assert.Equal(t, 0, tok.FindWSEnd(0), "non-whitespace position is its own end")
	assert.Equal(t, 6, tok.FindWSEnd(1), "skips every whitespace kind")
	assert.Equal(t, 3, parser.NewTokenizer("a  ").FindWSEnd(1), "runs to the end of input")
}

func TestTokenizerSubstringTo(t *testing.T) {
	tok := parser.NewTokenizer("hello world")
	assert.Equal(t, "hello", tok.SubstringTo(5))
	assert.Equal(t, 5, tok.Pos)
	assert.Equal(t, " world", tok.SubstringTo(tok.Len()))
	assert.Equal(t, tok.Len(), tok.Pos)
}

func TestTokenizerEat(t *testing.T) {
	t.Run("matching rune advances", func(t *testing.T) {
		tok := parser.NewTokenizer("<a>")
		require.NoError(t, tok.Eat('<'))
		assert.Equal(t, 1, tok.Pos)
	})

	t.Run("mismatch reports both runes and the position", func(t *testing.T) {
		tok := parser.NewTokenizer("<a>")
		tok.Pos = 1
		err := tok.Eat('>')
		require.Error(t, err)
		assert.ErrorIs(t, err, parser.ErrExpectedChar)

		var expErr *parser.ExpectedCharError
		require.ErrorAs(t, err, &expErr)
		assert.Equal(t, '>', expErr.Expected)
		assert.Equal(t, 'a', expErr.Actual)
		assert.Equal(t, 1, expErr.Pos)
		assert.Equal(t, 1, tok.Pos, "a failed Eat does not advance")
	})

	t.Run("end of input", func(t *testing.T) {
		tok := parser.NewTokenizer("")
		err := tok.Eat(']')
		require.Error(t, err)
		assert.ErrorIs(t, err, parser.ErrExpectedChar)
		assert.Contains(t, err.Error(), "end of input")
	})
}
