package internallogger

import (
	"strings"

	"github.com/joeydtaylor/eegcodec/pkg/internal/types"
	"go.uber.org/zap/zapcore"
)

var levelPairs = []struct {
	level types.LogLevel
	zap   zapcore.Level
}{
	{types.DebugLevel, zapcore.DebugLevel},
	{types.InfoLevel, zapcore.InfoLevel},
	{types.WarnLevel, zapcore.WarnLevel},
	{types.ErrorLevel, zapcore.ErrorLevel},
	{types.DPanicLevel, zapcore.DPanicLevel},
	{types.PanicLevel, zapcore.PanicLevel},
	{types.FatalLevel, zapcore.FatalLevel},
}

// parseLogLevel accepts zap's level names in any case, plus "warning". Anything else is info.
func parseLogLevel(levelStr string) types.LogLevel {
	name := strings.ToLower(strings.TrimSpace(levelStr))
	if name == "warning" {
		name = "warn"
	}
	for _, p := range levelPairs {
		if p.zap.String() == name {
			return p.level
		}
	}
	return types.InfoLevel
}

// ConvertLevel converts a types.LogLevel to a zap level.
func ConvertLevel(level types.LogLevel) zapcore.Level {
	for _, p := range levelPairs {
		if p.level == level {
			return p.zap
		}
	}
	return zapcore.InfoLevel
}

func convertZapLevel(level zapcore.Level) types.LogLevel {
	for _, p := range levelPairs {
		if p.zap == level {
			return p.level
		}
	}
	return types.InfoLevel
}
