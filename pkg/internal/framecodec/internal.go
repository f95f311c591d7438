package framecodec

import (
	"fmt"

	"github.com/joeydtaylor/eegcodec/pkg/internal/bitio"
	"github.com/joeydtaylor/eegcodec/pkg/internal/quantizer"
	"github.com/joeydtaylor/eegcodec/pkg/internal/selector"
	"github.com/joeydtaylor/eegcodec/pkg/internal/types"
	"github.com/joeydtaylor/eegcodec/pkg/internal/wavelet"
	"github.com/joeydtaylor/eegcodec/pkg/logschema"
)

func (c *Codec) checkCall(params types.CompressionParams, frameLen int, scratch *Scratch) error {
	if err := ValidateParams(params); err != nil {
		return err
	}
	if frameLen != int(params.FrameSize) {
		return fmt.Errorf("%w: got %d coefficients, frame_size %d", ErrInvalidFrameSize, frameLen, params.FrameSize)
	}
	if scratch == nil || int(params.FrameSize) > scratch.Capacity() {
		capacity := 0
		if scratch != nil {
			capacity = scratch.Capacity()
		}
		return fmt.Errorf("%w: frame_size %d, capacity %d", ErrScratchTooSmall, params.FrameSize, capacity)
	}
	return nil
}

func (c *Codec) resolveTransform(params types.CompressionParams) (types.WaveletTransform, error) {
	if c.transform != nil {
		return c.transform, nil
	}
	return wavelet.New(params.WaveletName)
}

// encodeFrame builds the frame body in scratch and stuffs it into dst. The range is widened to
// include 0 so that the zero bin always contains the value discarded coefficients decode to; the
// only frame whose range is still empty after that is the all-zero frame, which encodes every
// coefficient as the sentinel.
func (c *Codec) encodeFrame(coeffs []float32, params types.CompressionParams, scratch *Scratch, dst []byte) (int, bool, error) {
	n := int(params.FrameSize)
	qbits := params.QBits

	vmin, vmax := quantizer.FindMinMax(coeffs)
	vmin, vmax = min(vmin, 0), max(vmax, 0)

	w := bitio.NewWriter(scratch.body[:BodyLen(n, qbits)])
	if err := w.WriteFloat32(vmin); err != nil {
		return 0, false, err
	}
	if err := w.WriteFloat32(vmax); err != nil {
		return 0, false, err
	}

	allZero := vmin == 0 && vmax == 0
	if allZero {
		for range coeffs {
			if err := w.WriteBits(0, qbits); err != nil {
				return 0, false, err
			}
		}
	} else {
		consts, err := quantizer.NewConstants(vmin, vmax, qbits)
		if err != nil {
			return 0, false, fmt.Errorf("frame range [%v, %v]: %w", vmin, vmax, err)
		}

		mags := scratch.magnitudes[:n]
		for i, v := range coeffs {
			m := abs32(v)
			if m != m {
				return 0, false, fmt.Errorf("%w: coefficient %d is NaN", ErrNonFinite, i)
			}
			mags[i] = m
		}

		keep := int(params.KeepNumCoeff)
		kval := selector.SelectKthDescending(mags, keep-1)

		// Everything left of keep-1 is >= kval; the ones equal to it are the ties still allowed
		// through, handed out in original coefficient order.
		ties := 0
		for _, m := range mags[:keep] {
			if m == kval {
				ties++
			}
		}

		for _, v := range coeffs {
			var code int32
			m := abs32(v)
			if m > kval || (m == kval && ties > 0) {
				if m == kval {
					ties--
				}
				code = consts.Bias(consts.Encode(v))
			}
			if err := w.WriteBits(uint32(code), qbits); err != nil {
				return 0, false, err
			}
		}
	}

	written, err := c.stuffer.Encode(dst, w.Bytes())
	if err != nil {
		return 0, false, fmt.Errorf("byte stuffing: %w", err)
	}
	return written, allZero, nil
}

// decodeFrame unstuffs src and dequantizes it into scratch, returning the staged coefficients.
func (c *Codec) decodeFrame(src []byte, params types.CompressionParams, scratch *Scratch) ([]float32, error) {
	n := int(params.FrameSize)
	qbits := params.QBits
	bodyLen := BodyLen(n, qbits)

	m, err := c.stuffer.Decode(scratch.body, src)
	if err != nil {
		return nil, fmt.Errorf("byte unstuffing: %w", err)
	}
	if m < bodyLen {
		return nil, fmt.Errorf("%w: frame body has %d bytes, need %d", ErrTruncated, m, bodyLen)
	}
	if m > bodyLen {
		return nil, fmt.Errorf("%w: frame body has %d bytes, need %d", ErrBodyLength, m, bodyLen)
	}

	r := bitio.NewReader(scratch.body[:m])
	vmin, err := r.ReadFloat32()
	if err != nil {
		return nil, fmt.Errorf("%w: vmin: %w", ErrTruncated, err)
	}
	vmax, err := r.ReadFloat32()
	if err != nil {
		return nil, fmt.Errorf("%w: vmax: %w", ErrTruncated, err)
	}

	stage := scratch.coeffs[:n]
	if vmin == 0 && vmax == 0 {
		for i := range stage {
			code, err := r.ReadBits(qbits)
			if err != nil {
				return nil, fmt.Errorf("%w: code %d: %w", ErrTruncated, i, err)
			}
			if code != 0 {
				return nil, fmt.Errorf("%w: code %d is %d in an all-zero frame", ErrDegenerateRange, i, code)
			}
			stage[i] = 0
		}
		return stage, nil
	}

	consts, err := quantizer.NewConstants(vmin, vmax, qbits)
	if err != nil {
		return nil, fmt.Errorf("frame range [%v, %v]: %w", vmin, vmax, err)
	}
	for i := range stage {
		code, err := r.ReadBits(qbits)
		if err != nil {
			return nil, fmt.Errorf("%w: code %d: %w", ErrTruncated, i, err)
		}
		if code == 0 {
			stage[i] = 0
			continue
		}
		stage[i] = consts.Decode(consts.Unbias(int32(code)))
	}
	return stage, nil
}

func (c *Codec) recordEncoded(frameLen, encoded int, allZero bool) {
	if c.meter == nil {
		return
	}
	c.meter.IncrementCount(types.MetricFramesEncoded)
	c.meter.AddCount(types.MetricRawBytes, uint64(4*frameLen))
	c.meter.AddCount(types.MetricEncodedBytes, uint64(encoded))
	if allZero {
		c.meter.IncrementCount(types.MetricZeroFrames)
	}
}

func (c *Codec) recordDecoded() {
	if c.meter != nil {
		c.meter.IncrementCount(types.MetricFramesDecoded)
	}
}

func (c *Codec) recordFailure(metric string, event string, err error) {
	if c.meter != nil {
		c.meter.IncrementCount(metric)
	}
	c.NotifyLoggers(types.ErrorLevel, "frame codec failure",
		logschema.FieldComponent, c.GetComponentMetadata(),
		logschema.FieldEvent, event,
		logschema.FieldResult, "FAILURE",
		logschema.FieldError, err,
	)
}

// logEnabled reports whether any connected logger accepts level.
func (c *Codec) logEnabled(level types.LogLevel) bool {
	c.loggersLock.Lock()
	defer c.loggersLock.Unlock()
	for _, logger := range c.loggers {
		if logger != nil && logger.GetLevel() <= level {
			return true
		}
	}
	return false
}

// NotifyLoggers forwards a structured message to every connected logger.
func (c *Codec) NotifyLoggers(level types.LogLevel, msg string, keysAndValues ...interface{}) {
	c.loggersLock.Lock()
	loggers := c.loggers
	c.loggersLock.Unlock()

	for _, logger := range loggers {
		if logger == nil || logger.GetLevel() > level {
			continue
		}
		switch level {
		case types.DebugLevel:
			logger.Debug(msg, keysAndValues...)
		case types.InfoLevel:
			logger.Info(msg, keysAndValues...)
		case types.WarnLevel:
			logger.Warn(msg, keysAndValues...)
		case types.ErrorLevel:
			logger.Error(msg, keysAndValues...)
		case types.DPanicLevel:
			logger.DPanic(msg, keysAndValues...)
		case types.PanicLevel:
			logger.Panic(msg, keysAndValues...)
		case types.FatalLevel:
			logger.Fatal(msg, keysAndValues...)
		}
	}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
