// Package viz renders a Pisano period as a block-character bar chart
// for the terminal front ends.
package viz

import "strings"

// blocks maps eighths 1..8 to partial block characters; a bar's top
// cell uses the fraction, everything below is a full block.
var blocks = [8]rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

// Bars renders one bar per sequence element, height proportional to
// value over the given number of text rows. Zero values are marked
// with a section tick on the baseline. Bars are one cell wide with a
// single cell of spacing while the chart fits in width.
func Bars(seq []int, width, height int) string {
	if len(seq) == 0 || height < 1 {
		return ""
	}

	max := 1
	for _, v := range seq {
		if v > max {
			max = v
		}
	}

	spacing := 1
	if len(seq)*2-1 > width {
		spacing = 0
	}

	// Height per bar in eighths of a row.
	sub := make([]int, len(seq))
	for i, v := range seq {
		sub[i] = v * height * 8 / max
		if v > 0 && sub[i] == 0 {
			sub[i] = 1
		}
	}

	var b strings.Builder
	for row := 0; row < height; row++ {
		// Eighths already covered by the rows below this one.
		below := (height - 1 - row) * 8
		for i, s := range sub {
			rem := s - below
			switch {
			case rem >= 8:
				b.WriteRune('█')
			case rem >= 1:
				b.WriteRune(blocks[rem-1])
			case row == height-1 && seq[i] == 0:
				b.WriteRune('▁') // section boundary tick
			default:
				b.WriteRune(' ')
			}
			if spacing > 0 && i < len(sub)-1 {
				b.WriteRune(' ')
			}
		}
		if row < height-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}
