package types

const (
	MetricFramesEncoded   = "frames_encoded_total_count"
	MetricFramesDecoded   = "frames_decoded_total_count"
	MetricEncodeErrors    = "frame_encode_error_count"
	MetricDecodeErrors    = "frame_decode_error_count"
	MetricRawBytes        = "frame_raw_bytes_total"
	MetricEncodedBytes    = "frame_encoded_bytes_total"
	MetricZeroFrames      = "frame_all_zero_count"
	MetricCompressionRate = "compression_ratio"
	MetricCpuPercentage   = "current_cpu_percentage"
	MetricRamPercentage   = "current_ram_percentage"
)

// CodecStats is a point-in-time copy of the counters a Meter tracks.
type CodecStats struct {
	FramesEncoded uint64
	FramesDecoded uint64
	EncodeErrors  uint64
	DecodeErrors  uint64
	RawBytes      uint64 // Uncompressed float32 bytes handed to the encoder.
	EncodedBytes  uint64 // Stuffed bytes produced by the encoder.
	ZeroFrames    uint64 // Frames whose coefficients were all exactly zero.
	// CompressionRatio is RawBytes / EncodedBytes, zero until a frame is encoded.
	CompressionRatio float64
}

// HostLoad captures the machine load observed while encoding, used to size batch jobs that
// re-encode recorded sessions.
type HostLoad struct {
	CPUPercent float64
	RAMPercent float64
}

// Meter records codec activity. Implementations must be safe for concurrent use because one
// codec may be shared by goroutines that each hold their own scratch buffers.
type Meter interface {
	IncrementCount(metric string)
	AddCount(metric string, n uint64)
	GetCount(metric string) uint64
	Snapshot() CodecStats
	HostLoad() (HostLoad, error)
	Reset()
}
