package ast

import (
	"errors"
	"fmt"
)

// ErrUnknownNode indicates a node that a consumer of finished trees cannot
// handle: a parse-time marker (Combinator, Spaces) or a node outside the
// closed set.
var ErrUnknownNode = errors.New("unknown node type")

// UnknownNodeError reports which node violated the contract. It is an error
// rather than a panic so a caller processing many grammars can fail one and
// continue.
type UnknownNodeError struct {
	Node Node
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown node type %T", e.Node)
}

func (e *UnknownNodeError) Unwrap() error {
	return ErrUnknownNode
}
