package main

import (
	"fmt"
	"math"

	"github.com/joeydtaylor/eegcodec/pkg/builder"
)

func main() {
	logger := builder.NewLogger(builder.LoggerWithDevelopment(true), builder.LoggerWithLevel("debug"))
	defer logger.Flush()

	// Add a file sink
	fileSinkConfig := builder.SinkConfig{
		Type: string(builder.FileSink),
		Config: map[string]interface{}{
			"path": "logs/codec.log",
		},
	}
	if err := logger.AddSink("fileSink", fileSinkConfig); err != nil {
		fmt.Printf("Failed to add file sink: %v\n", err)
		return
	}

	codec := builder.NewFrameCodec(builder.FrameCodecWithLogger(logger))
	params := builder.DefaultCompressionParams()
	scratch := builder.NewScratch(int(params.FrameSize))
	dst := make([]byte, codec.MaxEncodedLen(params))

	frame := make([]float32, params.FrameSize)
	for i := range frame {
		frame[i] = float32(25 * math.Sin(2*math.Pi*10*float64(i)/256))
	}

	n, err := codec.Compress(frame, params, scratch, dst)
	if err != nil {
		fmt.Printf("Compress failed: %v\n", err)
		return
	}

	// A truncated frame is logged at error level on every sink.
	out := make([]float32, params.FrameSize)
	if err := codec.Decompress(dst[:n/2], params, scratch, out); err != nil {
		fmt.Printf("Decompress of truncated frame failed as expected: %v\n", err)
	}

	sinks, _ := logger.ListSinks()
	fmt.Printf("Encoded %d samples into %d bytes; sinks: %v\n", len(frame), n, sinks)
}
