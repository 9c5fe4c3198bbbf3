// Package vec: sentinel error set, matched with errors.Is.
package vec

import "errors"

var (
	// ErrShapeMismatch indicates two array participants of one broadcast
	// have different lengths.
	ErrShapeMismatch = errors.New("vec: array lengths differ")

	// ErrEmptyArray indicates an array participant has length zero, which
	// has no meaningful broadcast shape.
	ErrEmptyArray = errors.New("vec: empty array")
)
