package builder

import (
	"time"

	"github.com/joeydtaylor/eegcodec/pkg/internal/meter"
	"github.com/joeydtaylor/eegcodec/pkg/internal/types"
)

// MetricName is a type alias for metric names used in the Meter.
type MetricName string

type Meter = meter.CodecMeter

type CodecStats = types.CodecStats

type HostLoad = types.HostLoad

const (
	MetricFramesEncoded   MetricName = MetricName(types.MetricFramesEncoded)
	MetricFramesDecoded   MetricName = MetricName(types.MetricFramesDecoded)
	MetricEncodeErrors    MetricName = MetricName(types.MetricEncodeErrors)
	MetricDecodeErrors    MetricName = MetricName(types.MetricDecodeErrors)
	MetricRawBytes        MetricName = MetricName(types.MetricRawBytes)
	MetricEncodedBytes    MetricName = MetricName(types.MetricEncodedBytes)
	MetricZeroFrames      MetricName = MetricName(types.MetricZeroFrames)
	MetricCompressionRate MetricName = MetricName(types.MetricCompressionRate)
	MetricCpuPercentage   MetricName = MetricName(types.MetricCpuPercentage)
	MetricRamPercentage   MetricName = MetricName(types.MetricRamPercentage)
)

// NewMeter creates a codec meter.
func NewMeter(options ...types.Option[*meter.CodecMeter]) *meter.CodecMeter {
	return meter.NewCodecMeter(options...)
}

func MeterWithLogger(loggers ...types.Logger) types.Option[*meter.CodecMeter] {
	return meter.WithLogger(loggers...)
}

func MeterWithComponentMetadata(name string, id string) types.Option[*meter.CodecMeter] {
	return meter.WithComponentMetadata(name, id)
}

// MeterWithSampleInterval sets the CPU sampling window used by HostLoad.
func MeterWithSampleInterval(d time.Duration) types.Option[*meter.CodecMeter] {
	return meter.WithSampleInterval(d)
}
