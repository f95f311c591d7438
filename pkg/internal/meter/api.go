package meter

import (
	"fmt"
	"math"
	"sync/atomic"

	"github.com/joeydtaylor/eegcodec/pkg/internal/types"
	"github.com/joeydtaylor/eegcodec/pkg/logschema"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// IncrementCount adds one to metric. Unknown metrics are ignored.
func (m *CodecMeter) IncrementCount(metric string) {
	m.AddCount(metric, 1)
}

// AddCount adds n to metric. Unknown metrics are ignored.
func (m *CodecMeter) AddCount(metric string, n uint64) {
	if counter, ok := m.counts[metric]; ok {
		counter.Add(n)
	}
}

// GetCount returns the current value of metric, or 0 for an unknown metric.
func (m *CodecMeter) GetCount(metric string) uint64 {
	if counter, ok := m.counts[metric]; ok {
		return counter.Load()
	}
	return 0
}

// Snapshot copies every counter. Counters are read one at a time, so a snapshot taken while
// frames are in flight may mix values from neighbouring frames.
func (m *CodecMeter) Snapshot() types.CodecStats {
	s := types.CodecStats{
		FramesEncoded: m.GetCount(types.MetricFramesEncoded),
		FramesDecoded: m.GetCount(types.MetricFramesDecoded),
		EncodeErrors:  m.GetCount(types.MetricEncodeErrors),
		DecodeErrors:  m.GetCount(types.MetricDecodeErrors),
		RawBytes:      m.GetCount(types.MetricRawBytes),
		EncodedBytes:  m.GetCount(types.MetricEncodedBytes),
		ZeroFrames:    m.GetCount(types.MetricZeroFrames),
	}
	if s.EncodedBytes > 0 {
		s.CompressionRatio = float64(s.RawBytes) / float64(s.EncodedBytes)
	}
	return s
}

// HostLoad samples CPU usage over the meter's sample interval and the current RAM usage. The
// latest and peak values are kept for PrintSummary.
func (m *CodecMeter) HostLoad() (types.HostLoad, error) {
	cpuPercentages, err := cpu.Percent(m.sampleInterval, false)
	if err != nil {
		return types.HostLoad{}, fmt.Errorf("meter: cpu percent: %w", err)
	}
	memStats, err := mem.VirtualMemory()
	if err != nil {
		return types.HostLoad{}, fmt.Errorf("meter: virtual memory: %w", err)
	}

	var load types.HostLoad
	if len(cpuPercentages) > 0 {
		load.CPUPercent = cpuPercentages[0]
	}
	load.RAMPercent = memStats.UsedPercent

	storeWithPeak(&m.lastCPU, &m.peakCPU, load.CPUPercent)
	storeWithPeak(&m.lastRAM, &m.peakRAM, load.RAMPercent)

	m.NotifyLoggers(types.DebugLevel, "host load sampled",
		logschema.FieldComponent, m.GetComponentMetadata(),
		logschema.FieldEvent, "HostLoad",
		types.MetricCpuPercentage, load.CPUPercent,
		types.MetricRamPercentage, load.RAMPercent,
	)
	return load, nil
}

// Reset zeroes every counter and the recorded host load.
func (m *CodecMeter) Reset() {
	for _, counter := range m.counts {
		counter.Store(0)
	}
	m.lastCPU.Store(0)
	m.peakCPU.Store(0)
	m.lastRAM.Store(0)
	m.peakRAM.Store(0)
}

func storeWithPeak(last, peak *atomic.Uint64, v float64) {
	bits := math.Float64bits(v)
	last.Store(bits)
	for {
		old := peak.Load()
		if math.Float64frombits(old) >= v {
			return
		}
		if peak.CompareAndSwap(old, bits) {
			return
		}
	}
}
