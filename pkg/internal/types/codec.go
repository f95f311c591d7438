package types

// WaveletTransform is a reversible, in-place transform applied to a frame before compression and
// after decompression. Forward followed by Inverse must reproduce the input up to floating-point
// rounding.
type WaveletTransform interface {
	Name() string
	Forward(data []float32, level int) error
	Inverse(data []float32, level int) error
}

// ByteStuffer is a reversible framing transform. Encode output never contains the frame delimiter
// (0x00). Both directions write into dst and report the number of bytes produced; a dst that is
// too small is an error, never a silent truncation.
type ByteStuffer interface {
	Encode(dst, src []byte) (int, error)
	Decode(dst, src []byte) (int, error)
	// MaxEncodedLen is the worst-case Encode output size for n input bytes.
	MaxEncodedLen(n int) int
}
