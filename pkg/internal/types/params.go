package types

// MaxWaveletNameLen is the longest wavelet name the frame header can carry.
const MaxWaveletNameLen = 255

// CompressionParams describes the format of every frame in a recording. It is produced by the
// caller and treated as read-only by the header and frame codecs for the duration of one call.
type CompressionParams struct {
	Version      uint8  // Format tag, round-tripped verbatim.
	FrameSize    uint32 // Coefficients per frame.
	KeepNumCoeff uint32 // Coefficients retained (non-zeroed) per frame.
	QBits        uint8  // Bits per quantized coefficient, 1..31.
	WaveletName  string // Transform name; metadata only for the codec math.
	WaveletLevel uint8  // Decomposition depth handed to the transform.
}

// DefaultCompressionParams mirrors the settings used on the device: 1024-sample frames, one in
// eight coefficients kept, 12-bit codes over a 5-level Haar decomposition.
func DefaultCompressionParams() CompressionParams {
	return CompressionParams{
		Version:      1,
		FrameSize:    1024,
		KeepNumCoeff: 128,
		QBits:        12,
		WaveletName:  "haar",
		WaveletLevel: 5,
	}
}
