package builder

import (
	"errors"
	"fmt"

	"github.com/joeydtaylor/eegcodec/pkg/internal/framecodec"
)

// ErrSessionLength is returned when a signal is empty or not a whole number of frames.
var ErrSessionLength = errors.New("session: signal length is not a positive multiple of frame_size")

// EncodeSession splits signal into frame_size frames and compresses each one. The signal itself
// is not modified. Each returned frame is an independent, exactly sized slice.
func EncodeSession(codec *framecodec.Codec, params CompressionParams, signal []float32) ([][]byte, error) {
	if err := framecodec.ValidateParams(params); err != nil {
		return nil, err
	}
	frameSize := int(params.FrameSize)
	if frameSize == 0 || len(signal) == 0 || len(signal)%frameSize != 0 {
		return nil, fmt.Errorf("%w: %d samples, frame_size %d", ErrSessionLength, len(signal), frameSize)
	}

	scratch := framecodec.NewScratch(frameSize)
	work := make([]float32, frameSize)
	dst := make([]byte, codec.MaxEncodedLen(params))
	frames := make([][]byte, 0, len(signal)/frameSize)

	for off := 0; off < len(signal); off += frameSize {
		copy(work, signal[off:off+frameSize])
		n, err := codec.Compress(work, params, scratch, dst)
		if err != nil {
			return nil, fmt.Errorf("frame %d: %w", off/frameSize, err)
		}
		frames = append(frames, append([]byte(nil), dst[:n]...))
	}
	return frames, nil
}

// DecodeSession decompresses frames in order and concatenates the samples. params usually come
// from an untrusted archive header, so they are validated before any buffer is sized from them.
func DecodeSession(codec *framecodec.Codec, params CompressionParams, frames [][]byte) ([]float32, error) {
	if err := framecodec.ValidateParams(params); err != nil {
		return nil, err
	}
	if len(frames) == 0 {
		return []float32{}, nil
	}
	frameSize := int(params.FrameSize)

	scratch := framecodec.NewScratch(frameSize)
	signal := make([]float32, len(frames)*frameSize)
	for i, frame := range frames {
		if err := codec.Decompress(frame, params, scratch, signal[i*frameSize:(i+1)*frameSize]); err != nil {
			return nil, fmt.Errorf("frame %d: %w", i, err)
		}
	}
	return signal, nil
}
