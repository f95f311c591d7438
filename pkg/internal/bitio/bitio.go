// Package bitio packs and unpacks fixed-width fields over a caller-owned byte slice.
//
// Bits are written into bytes in increasing addresses, least-significant bit first within each
// byte, so a 32-bit field written at a byte-aligned cursor lands as a little-endian uint32.
package bitio

import (
	"errors"
	"math"
)

// MaxFieldBits is the widest field a single WriteBits/ReadBits call accepts.
const MaxFieldBits = 32

var (
	// ErrShortBuffer is returned when a write would run past the end of the buffer.
	ErrShortBuffer = errors.New("bitio: write past end of buffer")
	// ErrOutOfRange is returned when a read would run past the end of the buffer.
	ErrOutOfRange = errors.New("bitio: read past end of buffer")
	// ErrFieldWidth is returned for a field width of 0 or more than MaxFieldBits.
	ErrFieldWidth = errors.New("bitio: invalid field width")
)

// Writer appends bit fields to buf. The zero value is not usable; call NewWriter.
type Writer struct {
	buf []byte
	pos uint64 // bit cursor
}

// NewWriter returns a Writer over buf. buf is cleared so fields can be OR'ed in.
func NewWriter(buf []byte) *Writer {
	clear(buf)
	return &Writer{buf: buf}
}

// WriteBits stores the low n bits of v at the cursor and advances it. On error nothing is written.
func (w *Writer) WriteBits(v uint32, n uint8) error {
	if n == 0 || n > MaxFieldBits {
		return ErrFieldWidth
	}
	if w.pos+uint64(n) > uint64(len(w.buf))*8 {
		return ErrShortBuffer
	}
	if n < 32 {
		v &= 1<<n - 1
	}
	for n > 0 {
		idx := w.pos >> 3
		off := uint8(w.pos & 7)
		chunk := 8 - off
		if chunk > n {
			chunk = n
		}
		w.buf[idx] |= byte((v & (1<<chunk - 1)) << off)
		v >>= chunk
		n -= chunk
		w.pos += uint64(chunk)
	}
	return nil
}

// WriteFloat32 stores f as 32 raw IEEE-754 bits.
func (w *Writer) WriteFloat32(f float32) error {
	return w.WriteBits(math.Float32bits(f), 32)
}

// BitLen reports how many bits have been written.
func (w *Writer) BitLen() uint64 { return w.pos }

// Len reports how many bytes the written bits occupy, rounding the last partial byte up.
func (w *Writer) Len() int { return int((w.pos + 7) >> 3) }

// Bytes returns the written prefix of the buffer.
func (w *Writer) Bytes() []byte { return w.buf[:w.Len()] }

// Reader extracts bit fields written by Writer.
type Reader struct {
	buf []byte
	pos uint64
}

// NewReader returns a Reader positioned at the first bit of buf.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

// ReadBits returns the next n bits and advances the cursor. On error the cursor does not move.
func (r *Reader) ReadBits(n uint8) (uint32, error) {
	if n == 0 || n > MaxFieldBits {
		return 0, ErrFieldWidth
	}
	if r.pos+uint64(n) > uint64(len(r.buf))*8 {
		return 0, ErrOutOfRange
	}
	var v uint32
	var shift uint8
	for n > 0 {
		idx := r.pos >> 3
		off := uint8(r.pos & 7)
		chunk := 8 - off
		if chunk > n {
			chunk = n
		}
		bits := uint32(r.buf[idx]>>off) & (1<<chunk - 1)
		v |= bits << shift
		shift += chunk
		n -= chunk
		r.pos += uint64(chunk)
	}
	return v, nil
}

// ReadFloat32 reads 32 raw IEEE-754 bits.
func (r *Reader) ReadFloat32() (float32, error) {
	bits, err := r.ReadBits(32)
	if err != nil {
		return 0, err
	}
	return math.Float32frombits(bits), nil
}

// Remaining reports how many unread bits are left.
func (r *Reader) Remaining() uint64 { return uint64(len(r.buf))*8 - r.pos }
