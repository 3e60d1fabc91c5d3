package lattice

import (
	"errors"
	"reflect"
	"testing"
)

func TestMoves(t *testing.T) {

	for dim := 1; dim <= 6; dim++ {
		moves := Moves(dim)

		if len(moves) != 2*dim {
			t.Fatalf("Moves(%d): expected %d moves, got %d", dim, 2*dim, len(moves))
		}

		seen := make(map[string]bool, len(moves))
		for i, move := range moves {
			if len(move) != dim {
				t.Errorf("Moves(%d): expected moves of length %d, got %v", dim, dim, move)
			}

			if move.SquaredNorm() != 1 {
				t.Errorf("Moves(%d): expected a unit vector, got %v", dim, move)
			}

			if seen[move.Key()] {
				t.Errorf("Moves(%d): duplicate move %v", dim, move)
			}
			seen[move.Key()] = true

			// closed under negation, and the reverse sits at the expected index
			reverse := moves[Reverse(i, dim)]
			if !reverse.Equal(move.Neg()) {
				t.Errorf("Moves(%d): expected reverse of %v to be %v, got %v", dim, move, move.Neg(), reverse)
			}
		}
	}
}

func TestMovesInvalidDimension(t *testing.T) {
	for _, dim := range []int{0, -1, -10} {
		if moves := Moves(dim); moves != nil {
			t.Errorf("Moves(%d): expected nil, got %v", dim, moves)
		}

		if err := Validate(dim); !errors.Is(err, ErrInvalidDimension) {
			t.Errorf("Validate(%d): expected %v, got %v", dim, ErrInvalidDimension, err)
		}
	}
}

func TestSiteOperations(t *testing.T) {

	s := Site{1, -2, 3}

	if got := s.Add(Site{0, 1, -3}); !reflect.DeepEqual(got, Site{1, -1, 0}) {
		t.Errorf("Add(): expected %v, got %v", Site{1, -1, 0}, got)
	}

	if got := s.Neg(); !reflect.DeepEqual(got, Site{-1, 2, -3}) {
		t.Errorf("Neg(): expected %v, got %v", Site{-1, 2, -3}, got)
	}

	if got := s.SquaredNorm(); got != 14 {
		t.Errorf("SquaredNorm(): expected 14, got %v", got)
	}

	clone := s.Clone()
	clone[0] = 100
	if s[0] != 1 {
		t.Errorf("Clone(): modifying the clone changed the original %v", s)
	}

	if !Origin(4).IsZero() || len(Origin(4)) != 4 {
		t.Errorf("Origin(): expected the zero vector of length 4, got %v", Origin(4))
	}

	if s.Equal(Site{1, -2}) {
		t.Errorf("Equal(): sites of different dimension should not be equal")
	}
}

func TestKey(t *testing.T) {

	testCases := []struct {
		name        string
		key         string
		expected    Site
		expectedErr bool
	}{
		{
			name:     "one dimension",
			key:      "-7",
			expected: Site{-7},
		},
		{
			name:     "three dimensions",
			key:      "1,-2,0",
			expected: Site{1, -2, 0},
		},
		{
			name:        "empty key",
			key:         "",
			expectedErr: true,
		},
		{
			name:        "invalid coordinate",
			key:         "1,a",
			expectedErr: true,
		},
	}

	for _, test := range testCases {
		t.Run(test.name, func(t *testing.T) {

			site, err := ParseKey(test.key)
			if (err != nil) != test.expectedErr {
				t.Fatalf("ParseKey(): expected error %v, got %v", test.expectedErr, err)
			}

			if !reflect.DeepEqual(site, test.expected) {
				t.Errorf("ParseKey(): expected %v, got %v", test.expected, site)
			}

			if err == nil && site.Key() != test.key {
				t.Errorf("Key(): expected %v, got %v", test.key, site.Key())
			}
		})
	}
}
