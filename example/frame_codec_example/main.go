package main

import (
	"fmt"
	"math"
	"math/rand"
	"os"
	"sync"
	"time"

	"github.com/joeydtaylor/eegcodec/pkg/builder"
)

const sampleRate = 256.0

// generateEEG builds a synthetic recording: an alpha rhythm, a slower theta component, a spindle
// burst every few seconds and a little sensor noise.
func generateEEG(rng *rand.Rand, n int, alphaHz float64) []float32 {
	out := make([]float32, n)
	for i := range out {
		t := float64(i) / sampleRate
		v := 30*math.Sin(2*math.Pi*alphaHz*t) + 12*math.Sin(2*math.Pi*6*t+0.4)
		if math.Mod(t, 4) < 0.75 {
			v += 15 * math.Sin(2*math.Pi*13*t)
		}
		v += rng.NormFloat64() * 2
		out[i] = float32(v)
	}
	return out
}

type channelResult struct {
	Channel int
	Frames  [][]byte
	Decoded []float32
	Quality builder.Quality
	Err     error
}

func main() {
	logger := builder.NewLogger(
		builder.LoggerWithLevel(builder.EnvOr("EEGCODEC_LOG_LEVEL", "info")),
		builder.LoggerWithFields(map[string]interface{}{"device": "demo-headband"}),
	)
	defer logger.Flush()

	params, err := builder.ParamsFromEnv("EEGCODEC")
	if err != nil {
		logger.Error("Invalid compression params", "error", err)
		os.Exit(1)
	}

	meter := builder.NewMeter(
		builder.MeterWithLogger(logger),
		builder.MeterWithComponentMetadata("demo-meter", "meter-1"),
		builder.MeterWithSampleInterval(100*time.Millisecond),
	)
	codec := builder.NewFrameCodec(
		builder.FrameCodecWithLogger(logger),
		builder.FrameCodecWithMeter(meter),
		builder.FrameCodecWithComponentMetadata("demo-codec", "codec-1"),
	)

	channels := builder.EnvIntOr("EEGCODEC_CHANNELS", 4)
	if channels <= 0 {
		channels = 1
	}
	frames := builder.EnvIntOr("EEGCODEC_FRAMES", 8)
	if frames <= 0 {
		frames = 1
	}
	samples := frames * int(params.FrameSize)

	results := make([]channelResult, channels)
	var wg sync.WaitGroup
	for ch := 0; ch < channels; ch++ {
		wg.Add(1)
		go func(ch int) {
			defer wg.Done()
			rng := rand.New(rand.NewSource(int64(ch) + 1))
			signal := generateEEG(rng, samples, 9+float64(ch))

			res := channelResult{Channel: ch}
			res.Frames, res.Err = builder.EncodeSession(codec, params, signal)
			if res.Err == nil {
				res.Decoded, res.Err = builder.DecodeSession(codec, params, res.Frames)
			}
			if res.Err == nil {
				res.Quality, res.Err = builder.CompareSignals(signal, res.Decoded)
			}
			results[ch] = res
		}(ch)
	}
	wg.Wait()

	alg, err := builder.ParseArchiveAlgorithm(builder.EnvOr("EEGCODEC_ARCHIVE", "zstd"))
	if err != nil {
		logger.Error("Invalid archive algorithm", "error", err)
		os.Exit(1)
	}

	for _, res := range results {
		if res.Err != nil {
			logger.Error("Channel failed", "channel", res.Channel, "error", res.Err)
			continue
		}

		packed, err := builder.PackArchive(params, res.Frames, alg)
		if err != nil {
			logger.Error("Archive failed", "channel", res.Channel, "error", err)
			continue
		}
		spectrum, err := builder.AnalyzeSpectrum(res.Decoded, sampleRate)
		if err != nil {
			logger.Error("Spectrum failed", "channel", res.Channel, "error", err)
			continue
		}

		fmt.Printf("Channel %d\n", res.Channel)
		fmt.Printf("  Frames: %d, archive (%s): %d bytes for %d samples\n", len(res.Frames), alg, len(packed), len(res.Decoded))
		fmt.Printf("  RMSE: %.4f  PRD: %.2f%%  SNR: %.2f dB  r: %.4f\n", res.Quality.RMSE, res.Quality.PRD, res.Quality.SNR, res.Quality.Correlation)
		fmt.Printf("  Dominant Frequency: %.2f Hz\n", spectrum.DominantFrequency)
		for _, band := range builder.EEGBands {
			fmt.Printf("    %-6s %6.2f%%\n", band.Name, 100*spectrum.RelativeBandPower[band.Name])
		}
	}

	if _, err := meter.HostLoad(); err != nil {
		logger.Warn("Host load unavailable", "error", err)
	}
	if err := meter.PrintSummary(os.Stdout); err != nil {
		logger.Error("Summary failed", "error", err)
	}
}
