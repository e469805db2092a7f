package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the console logger shared by every layer. An empty file
// keeps output on stdout only.
func NewLogger(level string, file string) *zap.Logger {
	atomicLevel := zap.NewAtomicLevelAt(zap.DebugLevel)
	if level != "" {
		if parsed, err := zapcore.ParseLevel(level); err == nil {
			atomicLevel = zap.NewAtomicLevelAt(parsed)
		}
	}

	outputs := []string{"stdout"}
	if file != "" {
		outputs = append(outputs, file)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	cfg := zap.Config{
		Encoding:         "console",
		Level:            atomicLevel,
		OutputPaths:      outputs,
		ErrorOutputPaths: []string{"stderr"},
		EncoderConfig:    encoderConfig,
	}

	l, err := cfg.Build()
	if err != nil {
		panic(err)
	}

	return l
}
