package meter

import (
	"math"
	"time"

	"github.com/joeydtaylor/eegcodec/pkg/internal/types"
)

// GetComponentMetadata returns the meter metadata.
func (m *CodecMeter) GetComponentMetadata() types.ComponentMetadata {
	m.metadataLock.Lock()
	defer m.metadataLock.Unlock()
	return m.componentMetadata
}

// SetComponentMetadata sets the meter name and, when non-empty, its id.
func (m *CodecMeter) SetComponentMetadata(name string, id string) {
	m.metadataLock.Lock()
	defer m.metadataLock.Unlock()
	m.componentMetadata.Name = name
	if id != "" {
		m.componentMetadata.ID = id
	}
}

// SetSampleInterval sets the CPU sampling window used by HostLoad. Non-positive values are ignored.
func (m *CodecMeter) SetSampleInterval(d time.Duration) {
	if d <= 0 {
		return
	}
	m.sampleInterval = d
}

// GetStartTime returns when the meter was created.
func (m *CodecMeter) GetStartTime() time.Time {
	return m.startTime
}

// LastHostLoad returns the most recent HostLoad sample, zero before the first one.
func (m *CodecMeter) LastHostLoad() types.HostLoad {
	return types.HostLoad{
		CPUPercent: math.Float64frombits(m.lastCPU.Load()),
		RAMPercent: math.Float64frombits(m.lastRAM.Load()),
	}
}

// PeakHostLoad returns the highest CPU and RAM percentages seen since creation or Reset.
func (m *CodecMeter) PeakHostLoad() types.HostLoad {
	return types.HostLoad{
		CPUPercent: math.Float64frombits(m.peakCPU.Load()),
		RAMPercent: math.Float64frombits(m.peakRAM.Load()),
	}
}
