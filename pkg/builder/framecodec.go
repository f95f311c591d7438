package builder

import (
	"github.com/joeydtaylor/eegcodec/pkg/internal/cobs"
	"github.com/joeydtaylor/eegcodec/pkg/internal/framecodec"
	"github.com/joeydtaylor/eegcodec/pkg/internal/types"
	"github.com/joeydtaylor/eegcodec/pkg/internal/wavelet"
)

type CompressionParams = types.CompressionParams

type FrameCodec = framecodec.Codec

type Scratch = framecodec.Scratch

type WaveletTransform = types.WaveletTransform

type ByteStuffer = types.ByteStuffer

// MaxFrameSize is the largest frame_size accepted anywhere in the codec.
const MaxFrameSize = framecodec.MaxFrameSize

// Wavelet names understood by NewWavelet and the codec.
const (
	WaveletHaar  = wavelet.NameHaar
	WaveletCDF97 = wavelet.NameCDF97
	WaveletNone  = wavelet.NameNone
)

// Errors surfaced by the frame codec. Use errors.Is against these.
var (
	ErrInvalidQBits      = framecodec.ErrInvalidQBits
	ErrInvalidKeepCount  = framecodec.ErrInvalidKeepCount
	ErrInvalidFrameSize  = framecodec.ErrInvalidFrameSize
	ErrScratchTooSmall   = framecodec.ErrScratchTooSmall
	ErrFrameSizeTooLarge = framecodec.ErrFrameSizeTooLarge
	ErrDegenerateRange   = framecodec.ErrDegenerateRange
	ErrNonFinite         = framecodec.ErrNonFinite
	ErrTruncated         = framecodec.ErrTruncated
	ErrBodyLength        = framecodec.ErrBodyLength
	ErrInvalidLevel      = wavelet.ErrInvalidLevel
	ErrUnknownWavelet    = wavelet.ErrUnknownWavelet
	ErrShortBuffer       = cobs.ErrShortBuffer
)

// NewFrameCodec creates a frame codec. It is safe for concurrent use provided every goroutine
// passes its own Scratch.
func NewFrameCodec(options ...types.Option[*framecodec.Codec]) *framecodec.Codec {
	return framecodec.NewCodec(options...)
}

// NewScratch allocates per-call buffers for frames of up to maxFrameSize coefficients.
func NewScratch(maxFrameSize int) *framecodec.Scratch {
	return framecodec.NewScratch(maxFrameSize)
}

func FrameCodecWithLogger(loggers ...types.Logger) types.Option[*framecodec.Codec] {
	return framecodec.WithLogger(loggers...)
}

func FrameCodecWithMeter(m types.Meter) types.Option[*framecodec.Codec] {
	return framecodec.WithMeter(m)
}

// FrameCodecWithTransform pins the transform instead of resolving it from each call's params.
func FrameCodecWithTransform(t types.WaveletTransform) types.Option[*framecodec.Codec] {
	return framecodec.WithTransform(t)
}

func FrameCodecWithStuffer(s types.ByteStuffer) types.Option[*framecodec.Codec] {
	return framecodec.WithStuffer(s)
}

func FrameCodecWithComponentMetadata(name string, id string) types.Option[*framecodec.Codec] {
	return framecodec.WithComponentMetadata(name, id)
}

// DefaultCompressionParams returns the device defaults.
func DefaultCompressionParams() CompressionParams {
	return types.DefaultCompressionParams()
}

// MarshalHeader serializes params into a new frame header.
func MarshalHeader(params CompressionParams) []byte {
	return framecodec.MarshalHeader(params)
}

// UnmarshalHeader parses a frame header, returning the params and the bytes consumed.
func UnmarshalHeader(b []byte) (CompressionParams, int, error) {
	return framecodec.UnmarshalHeader(b)
}

func ValidateParams(params CompressionParams) error {
	return framecodec.ValidateParams(params)
}

// NewWavelet returns the transform registered under name.
func NewWavelet(name string) (types.WaveletTransform, error) {
	return wavelet.New(name)
}
