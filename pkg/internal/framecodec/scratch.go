package framecodec

import "github.com/joeydtaylor/eegcodec/pkg/internal/quantizer"

// DefaultMaxFrameSize is the largest frame the device firmware buffers.
const DefaultMaxFrameSize = 1024

// MaxFrameSize is the largest frame_size ValidateParams accepts. It bounds the scratch a decoder
// allocates for params read from an untrusted header.
const MaxFrameSize = 1 << 16

// frameRangeBytes is the size of the Vmin/Vmax prefix of every frame body.
const frameRangeBytes = 8

// Scratch holds every mutable buffer one compress or decompress call needs. A Scratch must not be
// shared by concurrent calls; give each goroutine its own.
type Scratch struct {
	maxFrameSize int
	magnitudes   []float32 // selection workspace, reordered by the selector
	coeffs       []float32 // decoded coefficients staged before they reach the caller
	body         []byte    // unstuffed frame body
}

// NewScratch allocates buffers for frames of up to maxFrameSize coefficients at any supported
// bit width. A non-positive size selects DefaultMaxFrameSize.
func NewScratch(maxFrameSize int) *Scratch {
	if maxFrameSize <= 0 {
		maxFrameSize = DefaultMaxFrameSize
	}
	return &Scratch{
		maxFrameSize: maxFrameSize,
		magnitudes:   make([]float32, maxFrameSize),
		coeffs:       make([]float32, maxFrameSize),
		body:         make([]byte, BodyLen(maxFrameSize, quantizer.MaxQBits)),
	}
}

// Capacity reports the largest frame_size the scratch can serve.
func (s *Scratch) Capacity() int { return s.maxFrameSize }

// BodyLen is the unstuffed size of a frame: the two f32 range bounds followed by frameSize codes
// of qbits bits each, rounded up to a whole byte.
func BodyLen(frameSize int, qbits uint8) int {
	return frameRangeBytes + (frameSize*int(qbits)+7)/8
}
