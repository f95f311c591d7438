package framecodec

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/joeydtaylor/eegcodec/pkg/internal/types"
)

// HeaderLen is the serialized size of params, after name truncation.
func HeaderLen(params types.CompressionParams) int {
	return 1 + 4 + 4 + 1 + 1 + nameLen(params.WaveletName) + 1
}

// AppendHeader appends the little-endian header encoding of params to dst:
//
//	u8 version | u32 frame_size | u32 keep_num_coeff | u8 q_bits | u8 name_len | name | u8 level
//
// Names longer than types.MaxWaveletNameLen bytes are truncated.
func AppendHeader(dst []byte, params types.CompressionParams) []byte {
	n := nameLen(params.WaveletName)
	dst = append(dst, params.Version)
	dst = binary.LittleEndian.AppendUint32(dst, params.FrameSize)
	dst = binary.LittleEndian.AppendUint32(dst, params.KeepNumCoeff)
	dst = append(dst, params.QBits, byte(n))
	dst = append(dst, params.WaveletName[:n]...)
	dst = append(dst, params.WaveletLevel)
	return dst
}

// MarshalHeader returns the header encoding of params.
func MarshalHeader(params types.CompressionParams) []byte {
	return AppendHeader(make([]byte, 0, HeaderLen(params)), params)
}

// UnmarshalHeader decodes a header from the front of b and reports how many bytes it used.
//
// On a short buffer it stops at the first field that does not fit and returns the fields decoded
// so far together with an error wrapping ErrTruncated and io.ErrUnexpectedEOF. Such a result is
// invalid as a whole; the later fields are simply zero.
func UnmarshalHeader(b []byte) (types.CompressionParams, int, error) {
	var p types.CompressionParams
	off := 0

	need := func(n int, field string) error {
		if len(b)-off < n {
			return fmt.Errorf("%w: header field %s needs %d bytes, have %d: %w", ErrTruncated, field, n, len(b)-off, io.ErrUnexpectedEOF)
		}
		return nil
	}

	if err := need(1, "version"); err != nil {
		return p, off, err
	}
	p.Version = b[off]
	off++

	if err := need(4, "frame_size"); err != nil {
		return p, off, err
	}
	p.FrameSize = binary.LittleEndian.Uint32(b[off:])
	off += 4

	if err := need(4, "keep_num_coeff"); err != nil {
		return p, off, err
	}
	p.KeepNumCoeff = binary.LittleEndian.Uint32(b[off:])
	off += 4

	if err := need(1, "q_bits"); err != nil {
		return p, off, err
	}
	p.QBits = b[off]
	off++

	if err := need(1, "name_len"); err != nil {
		return p, off, err
	}
	n := int(b[off])
	off++

	if err := need(n, "wavelet_name"); err != nil {
		return p, off, err
	}
	p.WaveletName = string(b[off : off+n])
	off += n

	if err := need(1, "wavelet_level"); err != nil {
		return p, off, err
	}
	p.WaveletLevel = b[off]
	off++

	return p, off, nil
}

// ValidateParams checks the invariants every frame of a recording relies on.
func ValidateParams(params types.CompressionParams) error {
	if params.QBits < 1 || params.QBits > 31 {
		return fmt.Errorf("%w: got %d", ErrInvalidQBits, params.QBits)
	}
	if params.FrameSize > MaxFrameSize {
		return fmt.Errorf("%w: frame_size %d, maximum %d", ErrFrameSizeTooLarge, params.FrameSize, MaxFrameSize)
	}
	if params.KeepNumCoeff < 1 || params.KeepNumCoeff > params.FrameSize {
		return fmt.Errorf("%w: keep %d, frame_size %d", ErrInvalidKeepCount, params.KeepNumCoeff, params.FrameSize)
	}
	return nil
}

func nameLen(name string) int {
	if len(name) > types.MaxWaveletNameLen {
		return types.MaxWaveletNameLen
	}
	return len(name)
}
