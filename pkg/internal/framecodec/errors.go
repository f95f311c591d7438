package framecodec

import (
	"errors"

	"github.com/joeydtaylor/eegcodec/pkg/internal/quantizer"
)

// Parameter errors.
var (
	ErrInvalidQBits     = quantizer.ErrInvalidQBits
	ErrInvalidKeepCount = errors.New("framecodec: keep_num_coeff must be in [1, frame_size]")
	ErrInvalidFrameSize = errors.New("framecodec: frame length does not match frame_size")
	ErrScratchTooSmall  = errors.New("framecodec: frame_size exceeds scratch capacity")

	// ErrFrameSizeTooLarge indicates a frame_size above MaxFrameSize.
	ErrFrameSizeTooLarge = errors.New("framecodec: frame_size exceeds the supported maximum")
)

// Range errors raised while computing the quantizer for a frame.
var (
	ErrDegenerateRange = quantizer.ErrDegenerateRange
	ErrNonFinite       = quantizer.ErrNonFinite
)

// Decode-side errors.
var (
	// ErrTruncated indicates input that ends before every field or code has been read.
	ErrTruncated = errors.New("framecodec: truncated input")
	// ErrBodyLength indicates an unstuffed frame longer than frame_size and q_bits allow.
	ErrBodyLength = errors.New("framecodec: frame body longer than expected")
)
