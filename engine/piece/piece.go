// Package piece provides the seven falling-block shapes and their rotation.
package piece

import (
	"errors"
	"fmt"
	"math/rand"

	"termtris/types"
)

// ErrUnknownType is returned for a piece tag outside the catalog.
var ErrUnknownType = errors.New("unknown piece type")

// Type is a one-letter piece tag.
type Type byte

const (
	T Type = 'T'
	J Type = 'J'
	L Type = 'L'
	O Type = 'O'
	S Type = 'S'
	Z Type = 'Z'
	I Type = 'I'
)

// Types lists the catalog in colour order: Types[i] has colour id i+1.
var Types = []Type{T, J, L, O, S, Z, I}

// Canonical spawn orientations. Cells are 1 where the piece is filled.
var catalog = map[Type]types.Matrix{
	T: {
		{0, 0, 0},
		{1, 1, 1},
		{0, 1, 0},
	},
	J: {
		{0, 0, 0},
		{1, 1, 1},
		{0, 0, 1},
	},
	L: {
		{0, 0, 0},
		{1, 1, 1},
		{1, 0, 0},
	},
	O: {
		{1, 1},
		{1, 1},
	},
	S: {
		{0, 0, 0},
		{0, 1, 1},
		{1, 1, 0},
	},
	Z: {
		{0, 0, 0},
		{1, 1, 0},
		{0, 1, 1},
	},
	I: {
		{0, 0, 0, 0},
		{1, 1, 1, 1},
		{0, 0, 0, 0},
		{0, 0, 0, 0},
	},
}

func (t Type) String() string {
	return string(t)
}

// Valid reports whether t is one of the seven catalog tags.
func (t Type) Valid() bool {
	_, ok := catalog[t]
	return ok
}

// Color returns the colour id of t (1..types.NumColors), or 0 for an unknown tag.
func (t Type) Color() int {
	for i, c := range Types {
		if c == t {
			return i + 1
		}
	}
	return 0
}

// ParseType converts a one-letter tag such as "T" to a Type.
func ParseType(s string) (Type, error) {
	if len(s) != 1 || !Type(s[0]).Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return Type(s[0]), nil
}

// New returns a fresh copy of the canonical shape for t.
func New(t Type) (types.Matrix, error) {
	m, ok := catalog[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, string(t))
	}
	return m.Clone(), nil
}

// Random picks a tag uniformly from the catalog.
func Random(r *rand.Rand) Type {
	return Types[r.Intn(len(Types))]
}
