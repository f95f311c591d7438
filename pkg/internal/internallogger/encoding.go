package internallogger

import (
	"sort"
	"time"

	"github.com/joeydtaylor/eegcodec/pkg/internal/types"
	"github.com/joeydtaylor/eegcodec/pkg/logschema"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func standardEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:        logschema.FieldTimestamp,
		LevelKey:       logschema.FieldLevel,
		NameKey:        logschema.FieldLogger,
		CallerKey:      logschema.FieldCaller,
		MessageKey:     logschema.FieldMessage,
		StacktraceKey:  logschema.FieldStack,
		LineEnding:     zapcore.DefaultLineEnding,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     encodeTimeUTC,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

func encodeTimeUTC(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
	enc.AppendString(t.UTC().Format(time.RFC3339Nano))
}

// fieldsFromMap converts static fields in key order so every line carries them identically.
func fieldsFromMap(fields map[string]interface{}) []zap.Field {
	keys := make([]string, 0, len(fields))
	for key := range fields {
		if key != "" {
			keys = append(keys, key)
		}
	}
	if len(keys) == 0 {
		return nil
	}
	sort.Strings(keys)

	out := make([]zap.Field, 0, len(keys))
	for _, key := range keys {
		out = append(out, zap.Any(key, fields[key]))
	}
	return out
}

// fieldFor renders codec types as flat objects so log processors can index them.
func fieldFor(key string, value interface{}) zap.Field {
	switch v := value.(type) {
	case types.ComponentMetadata:
		return zap.Any(key, componentToLogMap(v))
	case *types.ComponentMetadata:
		if v == nil {
			return zap.Any(key, nil)
		}
		return zap.Any(key, componentToLogMap(*v))
	case types.CompressionParams:
		return zap.Any(key, paramsToLogMap(v))
	case types.CodecStats:
		return zap.Any(key, statsToLogMap(v))
	case types.HostLoad:
		return zap.Any(key, map[string]float64{"cpu_percent": v.CPUPercent, "ram_percent": v.RAMPercent})
	case error:
		return zap.NamedError(key, v)
	}
	return zap.Any(key, value)
}

func componentToLogMap(meta types.ComponentMetadata) map[string]string {
	return map[string]string{
		"id":   meta.ID,
		"type": meta.Type,
		"name": meta.Name,
	}
}

func paramsToLogMap(p types.CompressionParams) map[string]interface{} {
	return map[string]interface{}{
		"version":        p.Version,
		"frame_size":     p.FrameSize,
		"keep_num_coeff": p.KeepNumCoeff,
		"q_bits":         p.QBits,
		"wavelet":        p.WaveletName,
		"wavelet_level":  p.WaveletLevel,
	}
}

func statsToLogMap(s types.CodecStats) map[string]interface{} {
	return map[string]interface{}{
		types.MetricFramesEncoded:   s.FramesEncoded,
		types.MetricFramesDecoded:   s.FramesDecoded,
		types.MetricEncodeErrors:    s.EncodeErrors,
		types.MetricDecodeErrors:    s.DecodeErrors,
		types.MetricRawBytes:        s.RawBytes,
		types.MetricEncodedBytes:    s.EncodedBytes,
		types.MetricZeroFrames:      s.ZeroFrames,
		types.MetricCompressionRate: s.CompressionRatio,
	}
}
