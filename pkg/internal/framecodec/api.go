package framecodec

import (
	"fmt"

	"github.com/joeydtaylor/eegcodec/pkg/internal/types"
	"github.com/joeydtaylor/eegcodec/pkg/logschema"
)

// CompressCoefficients encodes one frame of wavelet-domain coefficients into dst and returns the
// number of stuffed bytes written. coeffs is only read. A dst smaller than the stuffed frame
// fails with the stuffer's capacity error; MaxEncodedLen gives a size that always fits.
func (c *Codec) CompressCoefficients(coeffs []float32, params types.CompressionParams, scratch *Scratch, dst []byte) (int, error) {
	const event = "CompressCoefficients"
	if err := c.checkCall(params, len(coeffs), scratch); err != nil {
		c.recordFailure(types.MetricEncodeErrors, event, err)
		return 0, err
	}
	return c.compressChecked(event, coeffs, params, scratch, dst)
}

// compressChecked encodes coefficients that already passed checkCall, reporting under event.
func (c *Codec) compressChecked(event string, coeffs []float32, params types.CompressionParams, scratch *Scratch, dst []byte) (int, error) {
	n, allZero, err := c.encodeFrame(coeffs, params, scratch, dst)
	if err != nil {
		c.recordFailure(types.MetricEncodeErrors, event, err)
		return 0, err
	}

	c.recordEncoded(len(coeffs), n, allZero)
	if !c.logEnabled(types.DebugLevel) {
		return n, nil
	}
	c.NotifyLoggers(types.DebugLevel, "frame compressed",
		logschema.FieldComponent, c.GetComponentMetadata(),
		logschema.FieldEvent, event,
		logschema.FieldResult, "SUCCESS",
		logschema.FieldFrameSize, params.FrameSize,
		logschema.FieldKeepNumCoeff, params.KeepNumCoeff,
		logschema.FieldEncodedBytes, n,
	)
	return n, nil
}

// DecompressCoefficients decodes a stuffed frame into out, which must hold exactly FrameSize
// coefficients. On any error out is left untouched.
func (c *Codec) DecompressCoefficients(src []byte, params types.CompressionParams, scratch *Scratch, out []float32) error {
	if err := c.checkCall(params, len(out), scratch); err != nil {
		c.recordFailure(types.MetricDecodeErrors, "DecompressCoefficients", err)
		return err
	}

	stage, err := c.decodeFrame(src, params, scratch)
	if err != nil {
		c.recordFailure(types.MetricDecodeErrors, "DecompressCoefficients", err)
		return err
	}

	copy(out, stage)
	c.recordDecoded()
	return nil
}

// Compress runs the forward wavelet transform over samples in place, destroying the time-domain
// values, and then encodes the coefficients like CompressCoefficients. Failures and successes are
// reported under the "Compress" event.
func (c *Codec) Compress(samples []float32, params types.CompressionParams, scratch *Scratch, dst []byte) (int, error) {
	if err := c.checkCall(params, len(samples), scratch); err != nil {
		c.recordFailure(types.MetricEncodeErrors, "Compress", err)
		return 0, err
	}

	transform, err := c.resolveTransform(params)
	if err == nil {
		err = transform.Forward(samples, int(params.WaveletLevel))
	}
	if err != nil {
		err = fmt.Errorf("forward transform: %w", err)
		c.recordFailure(types.MetricEncodeErrors, "Compress", err)
		return 0, err
	}

	return c.compressChecked("Compress", samples, params, scratch, dst)
}

// Decompress decodes a stuffed frame and runs the inverse wavelet transform, leaving time-domain
// samples in out. On any error out is left untouched.
func (c *Codec) Decompress(src []byte, params types.CompressionParams, scratch *Scratch, out []float32) error {
	if err := c.checkCall(params, len(out), scratch); err != nil {
		c.recordFailure(types.MetricDecodeErrors, "Decompress", err)
		return err
	}

	transform, err := c.resolveTransform(params)
	if err != nil {
		err = fmt.Errorf("inverse transform: %w", err)
		c.recordFailure(types.MetricDecodeErrors, "Decompress", err)
		return err
	}

	stage, err := c.decodeFrame(src, params, scratch)
	if err == nil {
		if terr := transform.Inverse(stage, int(params.WaveletLevel)); terr != nil {
			err = fmt.Errorf("inverse transform: %w", terr)
		}
	}
	if err != nil {
		c.recordFailure(types.MetricDecodeErrors, "Decompress", err)
		return err
	}

	copy(out, stage)
	c.recordDecoded()
	return nil
}
