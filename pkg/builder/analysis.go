package builder

import "github.com/joeydtaylor/eegcodec/pkg/internal/analysis"

type Quality = analysis.Quality

type Spectrum = analysis.Spectrum

type Band = analysis.Band

// EEGBands are the clinical bands reported by AnalyzeSpectrum.
var EEGBands = analysis.EEGBands

// CompareSignals measures reconstruction error between an original and a decoded signal.
func CompareSignals(original, decoded []float32) (Quality, error) {
	return analysis.Compare(original, decoded)
}

// AnalyzeSpectrum computes the power spectrum and band powers of samples taken at sampleRate Hz.
func AnalyzeSpectrum(samples []float32, sampleRate float64) (Spectrum, error) {
	return analysis.PowerSpectrum(samples, sampleRate)
}
