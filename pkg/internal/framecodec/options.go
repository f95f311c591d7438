package framecodec

import "github.com/joeydtaylor/eegcodec/pkg/internal/types"

// WithLogger connects one or more loggers to the codec.
func WithLogger(logger ...types.Logger) types.Option[*Codec] {
	return func(c *Codec) {
		c.ConnectLogger(logger...)
	}
}

// WithMeter records frame counts and byte totals in m.
func WithMeter(m types.Meter) types.Option[*Codec] {
	return func(c *Codec) {
		c.ConnectMeter(m)
	}
}

// WithTransform pins the wavelet transform instead of resolving it from each call's params.
func WithTransform(t types.WaveletTransform) types.Option[*Codec] {
	return func(c *Codec) {
		c.SetTransform(t)
	}
}

// WithStuffer replaces the default COBS/RLE0 byte stuffer.
func WithStuffer(s types.ByteStuffer) types.Option[*Codec] {
	return func(c *Codec) {
		c.SetStuffer(s)
	}
}

// WithComponentMetadata sets the name and id reported in log lines.
func WithComponentMetadata(name string, id string) types.Option[*Codec] {
	return func(c *Codec) {
		c.SetComponentMetadata(name, id)
	}
}
