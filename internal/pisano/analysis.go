package pisano

import "fmt"

// Info bundles one period of a modulus with the derived figures the
// renderer and the exporters share: section count, mirror flag and the
// title/subtitle strings shown on screen and written into artifacts.
type Info struct {
	Modulus  int
	Seq      []int
	Period   int
	Sections int
	Mirrored bool
}

// Sections counts the zero hits in one period. Zeros are equally
// spaced within a Pisano period, so the period splits into Sections
// runs of equal length.
func Sections(seq []int) int {
	z := 0
	for _, v := range seq {
		if v == 0 {
			z++
		}
	}
	return z
}

// Mirrored reports whether the second half of the period mirrors the
// first, detected by the triple (1, m-1, 0) occurring anywhere in the
// cyclic sequence.
func Mirrored(seq []int, m int) bool {
	if m < 2 || len(seq) < 3 {
		return false
	}
	n := len(seq)
	for i := 0; i < n; i++ {
		if seq[i] == 1 && seq[(i+1)%n] == m-1 && seq[(i+2)%n] == 0 {
			return true
		}
	}
	return false
}

// Summary computes the sequence for m along with all derived figures.
func Summary(m int) (Info, error) {
	seq, err := Sequence(m)
	if err != nil {
		return Info{}, err
	}
	return Info{
		Modulus:  m,
		Seq:      seq,
		Period:   len(seq),
		Sections: Sections(seq),
		Mirrored: Mirrored(seq, m),
	}, nil
}

// Title is the chart headline, e.g. "Pisano 13".
func (i Info) Title() string {
	return fmt.Sprintf("Pisano %d", i.Modulus)
}

// Subtitle describes the period structure, e.g.
// "Fibonacci 1-60 mod 10 (4*15 notes with mirrored 2nd half)".
func (i Info) Subtitle() string {
	sectionLen := i.Period
	if i.Sections > 0 {
		sectionLen = i.Period / i.Sections
	}
	s := fmt.Sprintf("Fibonacci 1-%d mod %d (%d*%d", i.Period, i.Modulus, i.Sections, sectionLen)
	if i.Mirrored {
		return s + " notes with mirrored 2nd half)"
	}
	return s + " notes)"
}

// Max returns the largest value in the period, at least 1 so callers
// can divide by it when scaling bar heights.
func (i Info) Max() int {
	max := 1
	for _, v := range i.Seq {
		if v > max {
			max = v
		}
	}
	return max
}
