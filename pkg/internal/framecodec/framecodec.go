// Package framecodec compresses single EEG frames into byte-stuffed buffers and back.
//
// Encoding finds the frame's range, keeps the KeepNumCoeff largest-magnitude coefficients,
// quantizes them to QBits-bit codes with the zero-bias remap, packs every code (discarded ones as
// 0) after the f32 range bounds and byte-stuffs the result. Decoding runs the same chain in
// reverse. A Codec holds no per-frame state; all buffers come from the caller's Scratch.
//
// The Vmin and Vmax written at the start of each frame body are the zero-anchored bounds
// min(min(coeffs), 0) and max(max(coeffs), 0), not the raw extremes. A frame whose coefficients
// all share one sign therefore quantizes with step (Vmax-Vmin)/(Q+1) over the widened range.
// Decoders must rebuild the quantizer from the transmitted pair as is.
package framecodec

import (
	"sync"

	"github.com/joeydtaylor/eegcodec/pkg/internal/cobs"
	"github.com/joeydtaylor/eegcodec/pkg/internal/types"
	"github.com/joeydtaylor/eegcodec/pkg/internal/utils"
)

// Codec is the frame encoder/decoder. Configure it with options at construction; after that it
// is safe for concurrent use as long as each call gets its own Scratch.
type Codec struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	// transform overrides the wavelet named in the params when set.
	transform types.WaveletTransform
	stuffer   types.ByteStuffer
	meter     types.Meter

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewCodec constructs a Codec that stuffs with COBS/RLE0 and resolves the wavelet transform from
// each call's params unless an option overrides either.
func NewCodec(options ...types.Option[*Codec]) *Codec {
	c := &Codec{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "FRAME_CODEC",
		},
		stuffer: cobs.NewStuffer(),
		loggers: make([]types.Logger, 0),
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	return c
}
