package pisano

import (
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

// Spectrum returns the power spectrum of one period: squared FFT
// magnitudes for the positive frequency bins, DC excluded. A Pisano
// period is exactly periodic, so the dominant bins correspond to the
// section structure of the sequence.
func Spectrum(seq []int) []float64 {
	if len(seq) < 2 {
		return nil
	}

	data := make([]float64, len(seq))
	mean := 0.0
	for i, v := range seq {
		data[i] = float64(v)
		mean += data[i]
	}
	mean /= float64(len(data))
	for i := range data {
		data[i] -= mean
	}

	spectrum := fft.FFTReal(data)

	power := make([]float64, len(spectrum)/2)
	for k := 1; k <= len(power); k++ {
		mag := cmplx.Abs(spectrum[k])
		power[k-1] = mag * mag
	}
	return power
}
