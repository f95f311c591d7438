// Package cobs implements Consistent Overhead Byte Stuffing extended with zero-run compression.
//
// Encoded output never contains 0x00, so a single zero byte can delimit frames on the serial link.
// The stream is a sequence of tokens, each starting with a code byte:
//
//	0x01..0xCF  code-1 literal non-zero bytes follow, then an implicit 0x00
//	0xD0        207 literal non-zero bytes follow, no implicit 0x00
//	0xD1..0xFF  a run of code-0xCF zero bytes (2..48), no literals
//
// The encoder always finishes with a literal token whose implicit zero the decoder drops.
package cobs

import "errors"

const (
	// Delimiter is the byte that never appears in encoded output.
	Delimiter = 0x00

	maxGroupCode = 0xCF
	fullLiteral  = 0xD0
	maxLiterals  = fullLiteral - 1
	runBase      = 0xCF
	minRun       = 2
	maxRun       = 0xFF - runBase
)

var (
	// ErrShortBuffer is returned when dst cannot hold the output.
	ErrShortBuffer = errors.New("cobs: destination buffer too small")
	// ErrTruncated is returned when encoded input ends inside a token or lacks its final token.
	ErrTruncated = errors.New("cobs: truncated input")
	// ErrZeroByte is returned when encoded input contains the delimiter.
	ErrZeroByte = errors.New("cobs: unexpected zero byte in encoded input")
)

// Stuffer adapts the package functions to types.ByteStuffer.
type Stuffer struct{}

// NewStuffer returns a Stuffer.
func NewStuffer() *Stuffer { return &Stuffer{} }

func (*Stuffer) Encode(dst, src []byte) (int, error) { return Encode(dst, src) }
func (*Stuffer) Decode(dst, src []byte) (int, error) { return Decode(dst, src) }
func (*Stuffer) MaxEncodedLen(n int) int              { return MaxEncodedLen(n) }

// MaxEncodedLen is the largest Encode output for n input bytes.
func MaxEncodedLen(n int) int {
	return n + n/maxLiterals + 1
}

// Encode stuffs src into dst and returns the number of bytes written.
func Encode(dst, src []byte) (int, error) {
	out, i := 0, 0
	for {
		start := i
		for i < len(src) && src[i] != 0 && i-start < maxLiterals {
			i++
		}
		lit := i - start

		if lit == maxLiterals {
			if out+1+lit > len(dst) {
				return 0, ErrShortBuffer
			}
			dst[out] = fullLiteral
			copy(dst[out+1:], src[start:i])
			out += 1 + lit
			continue
		}

		if i < len(src) && lit == 0 {
			run := 0
			for i+run < len(src) && src[i+run] == 0 && run < maxRun {
				run++
			}
			if run >= minRun {
				if out+1 > len(dst) {
					return 0, ErrShortBuffer
				}
				dst[out] = byte(runBase + run)
				out++
				i += run
				continue
			}
		}

		if out+1+lit > len(dst) {
			return 0, ErrShortBuffer
		}
		dst[out] = byte(lit + 1)
		copy(dst[out+1:], src[start:i])
		out += 1 + lit

		if i == len(src) {
			return out, nil
		}
		i++ // the zero this token stands for
	}
}

// Decode reverses Encode. dst receives the original bytes; the number written is returned.
func Decode(dst, src []byte) (int, error) {
	out, i := 0, 0
	pendingZero := false
	emitZeros := func(n int) error {
		if out+n > len(dst) {
			return ErrShortBuffer
		}
		clear(dst[out : out+n])
		out += n
		return nil
	}

	for i < len(src) {
		code := int(src[i])
		i++
		if code == Delimiter {
			return 0, ErrZeroByte
		}
		if pendingZero {
			if err := emitZeros(1); err != nil {
				return 0, err
			}
			pendingZero = false
		}

		switch {
		case code <= maxGroupCode || code == fullLiteral:
			n := code - 1
			if code == fullLiteral {
				n = maxLiterals
			}
			if i+n > len(src) {
				return 0, ErrTruncated
			}
			if out+n > len(dst) {
				return 0, ErrShortBuffer
			}
			for _, b := range src[i : i+n] {
				if b == Delimiter {
					return 0, ErrZeroByte
				}
			}
			copy(dst[out:], src[i:i+n])
			out += n
			i += n
			pendingZero = code != fullLiteral
		default:
			if err := emitZeros(code - runBase); err != nil {
				return 0, err
			}
		}

		if i == len(src) && !pendingZero {
			// A stream must end with a literal group; its zero is the one dropped.
			return 0, ErrTruncated
		}
	}
	if !pendingZero {
		return 0, ErrTruncated
	}
	return out, nil
}
