package ast

import (
	"cmp"
	"strconv"
)

// ExtendedInt is an integer extended with positive and negative infinity,
// used for the open-ended bounds of a Range. The zero value is Finite(0).
// ExtendedInt is comparable; Compare gives the total order
// -∞ < any finite value < +∞.
type ExtendedInt struct {
	value int32
	inf   int8
}

// Infinity and NegativeInfinity are the non-finite bounds, written ∞ and
// -∞ in range notation.
var (
	Infinity         = ExtendedInt{inf: 1}
	NegativeInfinity = ExtendedInt{inf: -1}
)

// Finite returns the extended integer holding v.
func Finite(v int32) ExtendedInt {
	return ExtendedInt{value: v}
}

// IsFinite reports whether e is a finite integer.
func (e ExtendedInt) IsFinite() bool {
	return e.inf == 0
}

// Int returns the finite value; ok is false for either infinity.
func (e ExtendedInt) Int() (v int32, ok bool) {
	return e.value, e.inf == 0
}

// Compare orders e against o, returning -1, 0 or 1.
func (e ExtendedInt) Compare(o ExtendedInt) int {
	if e.inf != o.inf {
		return cmp.Compare(e.inf, o.inf)
	}
	if e.inf != 0 {
		return 0
	}
	return cmp.Compare(e.value, o.value)
}

// String renders the bound as it appears in range notation.
func (e ExtendedInt) String() string {
	switch {
	case e.inf > 0:
		return "∞"
	case e.inf < 0:
		return "-∞"
	}
	return strconv.FormatInt(int64(e.value), 10)
}
