// The lattice package defines sites and unit moves on the d-dimensional
// hypercubic lattice Z^d.
package lattice

import (
	"errors"
	"strconv"
	"strings"
)

// Site is a point of Z^d. The same type is used for unit moves.
type Site []int

// Origin() returns the origin of Z^d.
func Origin(dim int) Site {
	if dim < 1 {
		return nil
	}
	return make(Site, dim)
}

/*
Moves() returns the 2d unit vectors of the hypercubic lattice in the order

	+e_1, ..., +e_d, -e_1, ..., -e_d

so that Moves(d)[i+d] is the reverse of Moves(d)[i]. It returns nil if dim < 1.
*/
func Moves(dim int) []Site {
	if dim < 1 {
		return nil
	}

	moves := make([]Site, 2*dim)
	for i := 0; i < dim; i++ {
		plus := make(Site, dim)
		minus := make(Site, dim)
		plus[i] = 1
		minus[i] = -1

		moves[i] = plus
		moves[i+dim] = minus
	}

	return moves
}

// Reverse() returns the index of the move opposite to moves[i] in a move set
// built by Moves().
func Reverse(i, dim int) int {
	return (i + dim) % (2 * dim)
}

// Validate() returns ErrInvalidDimension if dim is not a positive integer.
func Validate(dim int) error {
	if dim < 1 {
		return ErrInvalidDimension
	}
	return nil
}

// Add() returns s + move as a new Site.
func (s Site) Add(move Site) Site {
	out := make(Site, len(s))
	for i := range s {
		out[i] = s[i] + move[i]
	}
	return out
}

// Neg() returns -s as a new Site.
func (s Site) Neg() Site {
	out := make(Site, len(s))
	for i, x := range s {
		out[i] = -x
	}
	return out
}

// Equal() returns whether s and other are the same site.
func (s Site) Equal(other Site) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone() returns a copy of s.
func (s Site) Clone() Site {
	if s == nil {
		return nil
	}
	out := make(Site, len(s))
	copy(out, s)
	return out
}

// IsZero() returns whether every coordinate of s is zero.
func (s Site) IsZero() bool {
	for _, x := range s {
		if x != 0 {
			return false
		}
	}
	return true
}

// SquaredNorm() returns the squared euclidean distance of s from the origin.
func (s Site) SquaredNorm() int {
	norm := 0
	for _, x := range s {
		norm += x * x
	}
	return norm
}

// Key() returns a canonical string for s, e.g. "1,-2,0". Two sites have the
// same key if and only if they are equal.
func (s Site) Key() string {
	var b strings.Builder
	for i, x := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		b.WriteString(strconv.Itoa(x))
	}
	return b.String()
}

// ParseKey() parses a string produced by Key() back into a Site.
func ParseKey(key string) (Site, error) {
	if len(key) == 0 {
		return nil, ErrEmptyKey
	}

	fields := strings.Split(key, ",")
	site := make(Site, len(fields))
	for i, f := range fields {
		x, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		site[i] = x
	}
	return site, nil
}

//---------------------------------ERROR-CODES---------------------------------

var ErrInvalidDimension = errors.New("the lattice dimension should be a positive integer")
var ErrEmptyKey = errors.New("empty site key")
