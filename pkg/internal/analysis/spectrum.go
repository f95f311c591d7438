package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Band is a frequency range [Low, High) in Hz.
type Band struct {
	Name string
	Low  float64
	High float64
}

// EEGBands are the clinical bands reported by PowerSpectrum. Sigma covers sleep spindles.
var EEGBands = []Band{
	{Name: "delta", Low: 0.5, High: 4},
	{Name: "theta", Low: 4, High: 8},
	{Name: "alpha", Low: 8, High: 12},
	{Name: "sigma", Low: 12, High: 16},
	{Name: "beta", Low: 16, High: 30},
}

// Spectrum is the one-sided power spectrum of a signal with its mean removed.
type Spectrum struct {
	SampleRate float64
	// Resolution is the width of one bin in Hz.
	Resolution float64
	// Power holds bins 0 through len/2-1; bin i is centred on i*Resolution Hz.
	Power             []float64
	TotalPower        float64
	DominantFrequency float64
	BandPower         map[string]float64
	// RelativeBandPower is BandPower divided by TotalPower.
	RelativeBandPower map[string]float64
}

// PowerSpectrum computes the spectrum of samples taken at sampleRate Hz. The mean is removed
// first so the DC bin does not swamp the EEG bands.
func PowerSpectrum(samples []float32, sampleRate float64) (Spectrum, error) {
	if len(samples) < 2 {
		return Spectrum{}, ErrEmpty
	}
	if !(sampleRate > 0) || math.IsInf(sampleRate, 0) {
		return Spectrum{}, fmt.Errorf("%w: %v", ErrSampleRate, sampleRate)
	}

	x := toFloat64(samples)
	floats.AddConst(-stat.Mean(x, nil), x)

	coeffs := fft.FFTReal(x)
	n := len(x)
	s := Spectrum{
		SampleRate:        sampleRate,
		Resolution:        sampleRate / float64(n),
		Power:             make([]float64, n/2),
		BandPower:         make(map[string]float64, len(EEGBands)),
		RelativeBandPower: make(map[string]float64, len(EEGBands)),
	}

	maxPower, dominant := 0.0, 0
	for i := range s.Power {
		mag := cmplx.Abs(coeffs[i])
		p := mag * mag / float64(n)
		s.Power[i] = p
		if i > 0 && p > maxPower {
			maxPower, dominant = p, i
		}
	}
	s.TotalPower = floats.Sum(s.Power)
	s.DominantFrequency = float64(dominant) * s.Resolution

	for _, band := range EEGBands {
		s.BandPower[band.Name] = s.powerIn(band)
		if s.TotalPower > 0 {
			s.RelativeBandPower[band.Name] = s.BandPower[band.Name] / s.TotalPower
		}
	}
	return s, nil
}

func (s Spectrum) powerIn(b Band) float64 {
	total := 0.0
	for i, p := range s.Power {
		f := float64(i) * s.Resolution
		if f >= b.Low && f < b.High {
			total += p
		}
	}
	return total
}
