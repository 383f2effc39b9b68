package utils

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

const defaultLogName = "property-booking"

// InitLogger writes to stdout and to a size-rotated file under path. Debug
// switches to a console encoder at debug level.
func InitLogger(path, name string, debug bool) (*zap.Logger, error) {
	if name == "" {
		name = defaultLogName
	}
	if path != "" {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, err
		}
	}

	level := zap.NewAtomicLevelAt(zap.InfoLevel)
	if debug {
		level.SetLevel(zap.DebugLevel)
	}

	encoder := newEncoder(debug)
	core := zapcore.NewTee(
		zapcore.NewCore(encoder, rotatingFile(filepath.Join(path, name+".log")), level),
		zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), level),
	)

	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zap.ErrorLevel),
		zap.Fields(zap.String("app", name)),
	), nil
}

func newEncoder(debug bool) zapcore.Encoder {
	cfg := zap.NewProductionEncoderConfig()
	if debug {
		cfg = zap.NewDevelopmentEncoderConfig()
	}
	cfg.TimeKey = "timestamp"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.EncodeCaller = zapcore.ShortCallerEncoder

	if debug {
		return zapcore.NewConsoleEncoder(cfg)
	}
	return zapcore.NewJSONEncoder(cfg)
}

func rotatingFile(filename string) zapcore.WriteSyncer {
	return zapcore.AddSync(&lumberjack.Logger{
		Filename:   filename,
		MaxSize:    10, // MB
		MaxBackups: 7,
		MaxAge:     28, // days
		Compress:   true,
	})
}
