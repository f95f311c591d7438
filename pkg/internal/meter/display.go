package meter

import (
	"fmt"
	"io"
	"time"

	"github.com/joeydtaylor/eegcodec/pkg/internal/types"
)

// PrintSummary writes a human-readable report of the counters and host load to w.
func (m *CodecMeter) PrintSummary(w io.Writer) error {
	s := m.Snapshot()
	last, peak := m.LastHostLoad(), m.PeakHostLoad()
	elapsed := time.Since(m.startTime).Round(time.Millisecond)

	lines := []string{
		fmt.Sprintf("Start Time: %v, Elapsed Time: %s", m.startTime.Format("01-02-2006 15:04:05"), elapsed),
		fmt.Sprintf("Last Recorded %s: %.2f%%, Peak: %.2f%%, Last Recorded %s: %.2f%%, Peak: %.2f%%",
			DisplayName(types.MetricCpuPercentage), last.CPUPercent, peak.CPUPercent,
			DisplayName(types.MetricRamPercentage), last.RAMPercent, peak.RAMPercent),
		fmt.Sprintf("%s: %d, %s: %d, %s: %d",
			DisplayName(types.MetricFramesEncoded), s.FramesEncoded,
			DisplayName(types.MetricEncodeErrors), s.EncodeErrors,
			DisplayName(types.MetricZeroFrames), s.ZeroFrames),
		fmt.Sprintf("%s: %d, %s: %d",
			DisplayName(types.MetricFramesDecoded), s.FramesDecoded,
			DisplayName(types.MetricDecodeErrors), s.DecodeErrors),
		fmt.Sprintf("%s: %d, %s: %d, %s: %.2f",
			DisplayName(types.MetricRawBytes), s.RawBytes,
			DisplayName(types.MetricEncodedBytes), s.EncodedBytes,
			DisplayName(types.MetricCompressionRate), s.CompressionRatio),
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}
