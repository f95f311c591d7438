package archive

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/joeydtaylor/eegcodec/pkg/internal/framecodec"
	"github.com/joeydtaylor/eegcodec/pkg/internal/types"
)

// Pack builds an archive from params and the stuffed frames produced with them.
func Pack(params types.CompressionParams, frames [][]byte, alg Algorithm) ([]byte, error) {
	if !alg.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, alg)
	}
	if err := framecodec.ValidateParams(params); err != nil {
		return nil, fmt.Errorf("archive: %w", err)
	}
	if uint64(len(frames)) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: %d frames", ErrTooLarge, len(frames))
	}

	size := framecodec.HeaderLen(params) + 4
	for i, f := range frames {
		if uint64(len(f)) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: frame %d is %d bytes", ErrTooLarge, i, len(f))
		}
		size += 4 + len(f)
	}
	if size > MaxBodyLen {
		return nil, fmt.Errorf("%w: %d bytes", ErrTooLarge, size)
	}

	body := make([]byte, 0, size)
	body = framecodec.AppendHeader(body, params)
	body = binary.LittleEndian.AppendUint32(body, uint32(len(frames)))
	for _, f := range frames {
		body = binary.LittleEndian.AppendUint32(body, uint32(len(f)))
		body = append(body, f...)
	}

	compressed, err := compressData(body, alg)
	if err != nil {
		return nil, fmt.Errorf("archive: %s compression: %w", alg, err)
	}

	out := make([]byte, 0, prefixLen+len(compressed))
	out = append(out, magic...)
	out = append(out, ContainerVersion, byte(alg))
	out = binary.LittleEndian.AppendUint32(out, uint32(len(body)))
	out = append(out, compressed...)
	return out, nil
}

// Unpack reverses Pack. The returned frames share one freshly allocated backing buffer.
func Unpack(data []byte) (types.CompressionParams, [][]byte, error) {
	var params types.CompressionParams

	if len(data) < prefixLen || string(data[:len(magic)]) != magic {
		return params, nil, ErrBadMagic
	}
	if v := data[len(magic)]; v != ContainerVersion {
		return params, nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, v)
	}
	alg := Algorithm(data[len(magic)+1])
	if !alg.valid() {
		return params, nil, fmt.Errorf("%w: %d", ErrUnknownAlgorithm, alg)
	}
	bodyLen := binary.LittleEndian.Uint32(data[len(magic)+2:])
	if bodyLen > MaxBodyLen {
		return params, nil, fmt.Errorf("%w: declared %d bytes", ErrTooLarge, bodyLen)
	}

	body, err := decompressData(data[prefixLen:], alg, int(bodyLen))
	if err != nil {
		return params, nil, fmt.Errorf("%w: %s body: %w", ErrCorrupt, alg, err)
	}

	params, off, err := framecodec.UnmarshalHeader(body)
	if err != nil {
		return types.CompressionParams{}, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	if err := framecodec.ValidateParams(params); err != nil {
		return types.CompressionParams{}, nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	rest := body[off:]
	if len(rest) < 4 {
		return types.CompressionParams{}, nil, fmt.Errorf("%w: missing frame count", ErrCorrupt)
	}
	count := binary.LittleEndian.Uint32(rest)
	rest = rest[4:]
	if uint64(count)*4 > uint64(len(rest)) {
		return types.CompressionParams{}, nil, fmt.Errorf("%w: %d frames cannot fit in %d bytes", ErrCorrupt, count, len(rest))
	}

	frames := make([][]byte, count)
	for i := range frames {
		if len(rest) < 4 {
			return types.CompressionParams{}, nil, fmt.Errorf("%w: frame %d length missing", ErrCorrupt, i)
		}
		n := binary.LittleEndian.Uint32(rest)
		rest = rest[4:]
		if uint64(n) > uint64(len(rest)) {
			return types.CompressionParams{}, nil, fmt.Errorf("%w: frame %d needs %d bytes, have %d", ErrCorrupt, i, n, len(rest))
		}
		frames[i] = rest[:n:n]
		rest = rest[n:]
	}
	if len(rest) != 0 {
		return types.CompressionParams{}, nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(rest))
	}
	return params, frames, nil
}
