// Package meter counts frame codec activity and samples host load for batch re-encoding jobs.
package meter

import (
	"sync"
	"sync/atomic"
	"time"

	"github.com/joeydtaylor/eegcodec/pkg/internal/types"
	"github.com/joeydtaylor/eegcodec/pkg/internal/utils"
)

const defaultSampleInterval = 200 * time.Millisecond

// counterNames is the fixed set of counters a CodecMeter tracks. The counts map is built from it
// once and never written again, so lookups need no lock.
var counterNames = []string{
	types.MetricFramesEncoded,
	types.MetricFramesDecoded,
	types.MetricEncodeErrors,
	types.MetricDecodeErrors,
	types.MetricRawBytes,
	types.MetricEncodedBytes,
	types.MetricZeroFrames,
}

var displayNames = map[string]string{
	types.MetricFramesEncoded:   "Frames Encoded",
	types.MetricFramesDecoded:   "Frames Decoded",
	types.MetricEncodeErrors:    "Encode Errors",
	types.MetricDecodeErrors:    "Decode Errors",
	types.MetricRawBytes:        "Raw Bytes",
	types.MetricEncodedBytes:    "Encoded Bytes",
	types.MetricZeroFrames:      "All-Zero Frames",
	types.MetricCompressionRate: "Compression Ratio",
	types.MetricCpuPercentage:   "CPU Percentage",
	types.MetricRamPercentage:   "RAM Percentage",
}

// CodecMeter implements types.Meter with lock-free counters.
type CodecMeter struct {
	componentMetadata types.ComponentMetadata
	metadataLock      sync.Mutex

	counts    map[string]*atomic.Uint64
	startTime time.Time

	sampleInterval time.Duration
	lastCPU        atomic.Uint64 // math.Float64bits
	peakCPU        atomic.Uint64
	lastRAM        atomic.Uint64
	peakRAM        atomic.Uint64

	loggers     []types.Logger
	loggersLock sync.Mutex
}

// NewCodecMeter creates a meter with every counter at zero.
func NewCodecMeter(options ...types.Option[*CodecMeter]) *CodecMeter {
	m := &CodecMeter{
		componentMetadata: types.ComponentMetadata{
			ID:   utils.GenerateUniqueHash(),
			Type: "METER",
		},
		counts:         make(map[string]*atomic.Uint64, len(counterNames)),
		startTime:      time.Now(),
		sampleInterval: defaultSampleInterval,
		loggers:        make([]types.Logger, 0),
	}
	for _, name := range counterNames {
		m.counts[name] = new(atomic.Uint64)
	}

	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(m)
	}
	return m
}

// DisplayName returns the label PrintSummary uses for metric.
func DisplayName(metric string) string {
	if name, ok := displayNames[metric]; ok {
		return name
	}
	return metric
}

var _ types.Meter = (*CodecMeter)(nil)
