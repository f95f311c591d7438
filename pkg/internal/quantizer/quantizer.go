// Package quantizer maps frame coefficients onto unsigned integer codes of a fixed bit width and
// back.
//
// T is the reciprocal of the quantization step, (Q+1)/(Vmax-Vmin). Encoding multiplies by T and
// decoding multiplies by Step = 1/T. Both sides must derive the pair from the same Vmin, Vmax and
// bit width through NewConstants; any other route risks a one-code drift.
package quantizer

import (
	"errors"
	"math"
)

const (
	MinQBits = 1
	MaxQBits = 31
)

var (
	// ErrInvalidQBits indicates a bit width outside [MinQBits, MaxQBits].
	ErrInvalidQBits = errors.New("quantizer: q_bits must be in [1, 31]")
	// ErrDegenerateRange indicates Vmax <= Vmin, which leaves T undefined.
	ErrDegenerateRange = errors.New("quantizer: degenerate range (vmax <= vmin)")
	// ErrNonFinite indicates a NaN or infinite range bound.
	ErrNonFinite = errors.New("quantizer: non-finite range bound")
)

// Constants holds everything derived from one frame's range and bit width.
type Constants struct {
	Vmin     float32
	Vmax     float32
	Q        int32   // Largest code, 2^qbits - 1.
	T        float64 // Codes per unit, (Q+1)/(Vmax-Vmin).
	Step     float64 // Units per code, 1/T.
	ZeroCode int32   // Code that 0.0 quantizes to.
}

// NewConstants derives the quantizer constants for [vmin, vmax] at qbits bits per code.
func NewConstants(vmin, vmax float32, qbits uint8) (Constants, error) {
	if qbits < MinQBits || qbits > MaxQBits {
		return Constants{}, ErrInvalidQBits
	}
	if !finite(vmin) || !finite(vmax) {
		return Constants{}, ErrNonFinite
	}
	if !(vmax > vmin) {
		return Constants{}, ErrDegenerateRange
	}

	q := int32(uint32(1)<<qbits - 1)
	t := float64(int64(q)+1) / (float64(vmax) - float64(vmin))
	c := Constants{
		Vmin: vmin,
		Vmax: vmax,
		Q:    q,
		T:    t,
		Step: 1 / t,
	}
	c.ZeroCode = EncodeToUint(0, vmin, t, q)
	return c, nil
}

// EncodeToUint quantizes value: (value - vmin) * t, clamped to [0, q] and truncated.
func EncodeToUint(value, vmin float32, t float64, q int32) int32 {
	u := (float64(value) - float64(vmin)) * t
	if u <= 0 {
		return 0
	}
	if u >= float64(q) {
		return q
	}
	return int32(u)
}

// DecodeFromUint maps a code back to the lower edge of its quantization bin: code*step + vmin.
func DecodeFromUint(code int32, vmin float32, step float64) float32 {
	return float32(float64(code)*step + float64(vmin))
}

// FindMinMax returns the smallest and largest element of values in one pass. values must not be
// empty; NaN elements give unspecified results.
func FindMinMax(values []float32) (float32, float32) {
	lo, hi := values[0], values[0]
	for _, v := range values[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Encode quantizes value with c.
func (c Constants) Encode(value float32) int32 {
	return EncodeToUint(value, c.Vmin, c.T, c.Q)
}

// Decode dequantizes code with c.
func (c Constants) Decode(code int32) float32 {
	return DecodeFromUint(code, c.Vmin, c.Step)
}

// Bias applies the zero-bias remap so that stored code 0 is free for discarded coefficients.
// Codes below ZeroCode move up by one, ZeroCode itself (the bin holding 0.0) becomes 0, and codes
// above ZeroCode are unchanged. The mapping is a bijection on [0, Q].
func (c Constants) Bias(raw int32) int32 {
	switch {
	case raw < c.ZeroCode:
		return raw + 1
	case raw == c.ZeroCode:
		return 0
	default:
		return raw
	}
}

// Unbias inverts Bias. Stored 0 is read back as ZeroCode.
func (c Constants) Unbias(stored int32) int32 {
	switch {
	case stored == 0:
		return c.ZeroCode
	case stored <= c.ZeroCode:
		return stored - 1
	default:
		return stored
	}
}

func finite(v float32) bool {
	return !math.IsNaN(float64(v)) && !math.IsInf(float64(v), 0)
}
