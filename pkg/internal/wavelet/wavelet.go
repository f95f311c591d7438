// Package wavelet provides in-place, allocation-free wavelet transforms for frame coefficients.
//
// Every transform keeps the interleaved (in-place lifting) layout: after level l, the
// approximation coefficients sit at multiples of 2^l and the detail coefficients between them.
// The frame codec does not care where a coefficient lives, only that Inverse undoes Forward.
package wavelet

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joeydtaylor/eegcodec/pkg/internal/types"
)

const (
	NameHaar  = "haar"
	NameCDF97 = "cdf97"
	NameNone  = "none"
)

var (
	// ErrInvalidLevel indicates a negative level or one the frame length cannot support.
	ErrInvalidLevel = errors.New("wavelet: invalid decomposition level")
	// ErrUnknownWavelet indicates a name New does not recognise.
	ErrUnknownWavelet = errors.New("wavelet: unknown wavelet")
)

// New returns the transform registered under name. Names are case-insensitive; "bior4.4" is an
// alias for the CDF 9/7 transform and an empty name selects the identity transform.
func New(name string) (types.WaveletTransform, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case NameHaar, "db1":
		return Haar{}, nil
	case NameCDF97, "bior4.4":
		return CDF97{}, nil
	case NameNone, "":
		return Identity{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownWavelet, name)
	}
}

// checkLevel verifies that n samples can be split level times into even halves.
func checkLevel(n, level int) error {
	if level < 0 || level > 30 {
		return fmt.Errorf("%w: %d", ErrInvalidLevel, level)
	}
	if level == 0 {
		return nil
	}
	if n == 0 || n%(1<<level) != 0 {
		return fmt.Errorf("%w: length %d is not a multiple of 2^%d", ErrInvalidLevel, n, level)
	}
	return nil
}

// Identity leaves the frame untouched. It is used when frames are already in the wavelet domain.
type Identity struct{}

func (Identity) Name() string { return NameNone }

func (Identity) Forward(data []float32, level int) error { return checkLevel(len(data), level) }

func (Identity) Inverse(data []float32, level int) error { return checkLevel(len(data), level) }
