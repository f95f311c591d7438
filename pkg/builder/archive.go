package builder

import "github.com/joeydtaylor/eegcodec/pkg/internal/archive"

type ArchiveAlgorithm = archive.Algorithm

const (
	ArchiveNone    = archive.AlgorithmNone
	ArchiveDeflate = archive.AlgorithmDeflate
	ArchiveSnappy  = archive.AlgorithmSnappy
	ArchiveZstd    = archive.AlgorithmZstd
	ArchiveBrotli  = archive.AlgorithmBrotli
	ArchiveLZ4     = archive.AlgorithmLZ4
)

var (
	ErrArchiveCorrupt     = archive.ErrCorrupt
	ErrArchiveBadMagic    = archive.ErrBadMagic
	ErrArchiveTooLarge    = archive.ErrTooLarge
	ErrUnknownAlgorithm   = archive.ErrUnknownAlgorithm
	ErrUnsupportedArchive = archive.ErrUnsupportedVersion
)

// PackArchive bundles stuffed frames and their params into one session archive.
func PackArchive(params CompressionParams, frames [][]byte, alg ArchiveAlgorithm) ([]byte, error) {
	return archive.Pack(params, frames, alg)
}

// UnpackArchive reverses PackArchive. Returned frames alias the decompressed body.
func UnpackArchive(data []byte) (CompressionParams, [][]byte, error) {
	return archive.Unpack(data)
}

// ParseArchiveAlgorithm maps a name such as "zstd" or "gzip" to an algorithm.
func ParseArchiveAlgorithm(name string) (ArchiveAlgorithm, error) {
	return archive.ParseAlgorithm(name)
}
