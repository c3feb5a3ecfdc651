package logging

import (
	"os"
	"time"

	"go.uber.org/zap/zapcore"
)

// JSON field names used in structured output.
const (
	fieldTimestamp = "timestamp"
	fieldLevel     = "level"
	fieldCaller    = "caller"
	fieldMessage   = "message"
	fieldStack     = "stacktrace"
)

// encoderConfig returns the JSON encoder configuration shared by the file
// core and the production console core.
func encoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		TimeKey:       fieldTimestamp,
		LevelKey:      fieldLevel,
		CallerKey:     fieldCaller,
		MessageKey:    fieldMessage,
		StacktraceKey: fieldStack,
		LineEnding:    zapcore.DefaultLineEnding,

		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		EncodeDuration: zapcore.MillisDurationEncoder,
		EncodeCaller:   zapcore.ShortCallerEncoder,
	}
}

// consoleEncoderConfig returns a colored, compact configuration for
// development console output.
func consoleEncoderConfig() zapcore.EncoderConfig {
	cfg := encoderConfig()
	cfg.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncodeTime = func(t time.Time, enc zapcore.PrimitiveArrayEncoder) {
		enc.AppendString(t.Format("15:04:05.000"))
	}
	cfg.EncodeDuration = zapcore.StringDurationEncoder
	return cfg
}

func stdout() zapcore.WriteSyncer {
	return zapcore.AddSync(os.Stdout)
}
