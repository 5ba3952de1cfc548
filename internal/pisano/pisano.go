// Package pisano computes Pisano periods: the Fibonacci sequence
// reduced modulo m, which repeats with a finite period for every m.
package pisano

import (
	"errors"
	"fmt"
)

// ErrInvalidModulus is returned when a modulus below 1 is requested.
var ErrInvalidModulus = errors.New("modulus must be >= 1")

// Sequence returns one full Pisano period for the given modulus: the
// Fibonacci sequence reduced mod m, starting from the seed pair (0, 1)
// and stopping just before that pair recurs. The result always has
// length pi(m), the Pisano period, which is finite and at most 6m.
func Sequence(m int) ([]int, error) {
	if m < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidModulus, m)
	}
	if m == 1 {
		// Every residue is 0 mod 1; the period is 1.
		return []int{0}, nil
	}

	seq := make([]int, 0, 8)
	a, b := 0, 1
	for {
		seq = append(seq, a)
		a, b = b, (a+b)%m
		if a == 0 && b == 1 {
			return seq, nil
		}
	}
}

// Period returns pi(m), the length of the Pisano period for m.
func Period(m int) (int, error) {
	seq, err := Sequence(m)
	if err != nil {
		return 0, err
	}
	return len(seq), nil
}
