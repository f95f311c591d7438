// Package archive packs the stuffed frames of one recording session, together with the
// compression parameters needed to decode them, into a single buffer for upload. The body can be
// run through a general-purpose compressor on top of the frame codec.
//
// Layout:
//
//	"EEGS" | u8 container version | u8 algorithm | u32 body length | compressed body
//
// where the uncompressed body is the frame header followed by a u32 frame count and each frame as
// u32 length | stuffed bytes. All integers are little-endian.
package archive

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// ContainerVersion is written into every archive and is the only version Unpack accepts.
	ContainerVersion = 1

	magic     = "EEGS"
	prefixLen = len(magic) + 1 + 1 + 4

	// MaxBodyLen caps the declared uncompressed size Unpack is willing to inflate.
	MaxBodyLen = 1 << 30
)

var (
	ErrBadMagic           = errors.New("archive: not an EEG session archive")
	ErrUnsupportedVersion = errors.New("archive: unsupported container version")
	ErrUnknownAlgorithm   = errors.New("archive: unknown compression algorithm")
	ErrCorrupt            = errors.New("archive: corrupt archive")
	ErrTooLarge           = errors.New("archive: body too large")
)

// Algorithm selects the secondary compressor applied to the archive body.
type Algorithm uint8

const (
	AlgorithmNone Algorithm = iota
	AlgorithmDeflate
	AlgorithmSnappy
	AlgorithmZstd
	AlgorithmBrotli
	AlgorithmLZ4
)

var algorithmNames = [...]string{
	AlgorithmNone:    "none",
	AlgorithmDeflate: "deflate",
	AlgorithmSnappy:  "snappy",
	AlgorithmZstd:    "zstd",
	AlgorithmBrotli:  "brotli",
	AlgorithmLZ4:     "lz4",
}

// Algorithms lists every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmNone, AlgorithmDeflate, AlgorithmSnappy, AlgorithmZstd, AlgorithmBrotli, AlgorithmLZ4}
}

func (a Algorithm) String() string {
	if a.valid() {
		return algorithmNames[a]
	}
	return fmt.Sprintf("Algorithm(%d)", uint8(a))
}

func (a Algorithm) valid() bool {
	return int(a) < len(algorithmNames)
}

// ParseAlgorithm maps a name such as "zstd" to its Algorithm. "gzip" is accepted for deflate and
// an empty name selects none.
func ParseAlgorithm(name string) (Algorithm, error) {
	switch n := strings.ToLower(strings.TrimSpace(name)); n {
	case "":
		return AlgorithmNone, nil
	case "gzip":
		return AlgorithmDeflate, nil
	default:
		for i, candidate := range algorithmNames {
			if candidate == n {
				return Algorithm(i), nil
			}
		}
	}
	return AlgorithmNone, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
}
