// Package analysis measures how faithfully a decoded recording matches the original and
// summarises its EEG spectrum.
package analysis

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

var (
	// ErrEmpty indicates an empty signal.
	ErrEmpty = errors.New("analysis: empty signal")
	// ErrLengthMismatch indicates original and decoded signals of different lengths.
	ErrLengthMismatch = errors.New("analysis: signal length mismatch")
	// ErrSampleRate indicates a non-positive or non-finite sample rate.
	ErrSampleRate = errors.New("analysis: sample rate must be positive")
)

// Quality describes the reconstruction error of a decoded signal.
type Quality struct {
	MSE       float64
	RMSE      float64
	MaxAbsErr float64
	// PRD is the percent root-mean-square difference, the usual EEG/ECG compression figure.
	PRD float64
	// SNR in dB; +Inf for a perfect reconstruction.
	SNR float64
	// Bias is the mean of original - decoded.
	Bias float64
	// Correlation is Pearson's r between the signals; NaN if either is constant.
	Correlation float64
}

// Compare computes reconstruction quality of decoded against original.
func Compare(original, decoded []float32) (Quality, error) {
	if len(original) == 0 {
		return Quality{}, ErrEmpty
	}
	if len(original) != len(decoded) {
		return Quality{}, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(original), len(decoded))
	}

	orig := toFloat64(original)
	dec := toFloat64(decoded)
	diff := make([]float64, len(orig))
	floats.SubTo(diff, orig, dec)

	n := float64(len(orig))
	sqErr := floats.Dot(diff, diff)
	energy := floats.Dot(orig, orig)

	q := Quality{
		MSE:         sqErr / n,
		RMSE:        math.Sqrt(sqErr / n),
		MaxAbsErr:   math.Max(floats.Max(diff), -floats.Min(diff)),
		Bias:        stat.Mean(diff, nil),
		Correlation: stat.Correlation(orig, dec, nil),
	}
	switch {
	case sqErr == 0:
		q.SNR = math.Inf(1)
	default:
		q.SNR = 10 * math.Log10(energy/sqErr)
	}
	if energy > 0 {
		q.PRD = 100 * math.Sqrt(sqErr/energy)
	} else if sqErr > 0 {
		q.PRD = math.Inf(1)
	}
	return q, nil
}

func toFloat64(in []float32) []float64 {
	out := make([]float64, len(in))
	for i, v := range in {
		out[i] = float64(v)
	}
	return out
}
