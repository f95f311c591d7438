package meter

import (
	"time"

	"github.com/joeydtaylor/eegcodec/pkg/internal/types"
)

// WithLogger connects loggers to the meter.
func WithLogger(loggers ...types.Logger) types.Option[*CodecMeter] {
	return func(m *CodecMeter) {
		m.ConnectLogger(loggers...)
	}
}

// WithComponentMetadata sets the component metadata for the meter.
func WithComponentMetadata(name string, id string) types.Option[*CodecMeter] {
	return func(m *CodecMeter) {
		m.SetComponentMetadata(name, id)
	}
}

// WithSampleInterval sets the CPU sampling window used by HostLoad.
func WithSampleInterval(d time.Duration) types.Option[*CodecMeter] {
	return func(m *CodecMeter) {
		m.SetSampleInterval(d)
	}
}
