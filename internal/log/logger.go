package log

import (
	"os"
	"strings"

	"arwikicats/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger JSON 輸出；warn 以下寫 stdout，warn 以上寫 stderr
func NewLogger(conf *config.Configuration) (*zap.Logger, error) {
	return newLogger(conf, zapcore.AddSync(os.Stdout), zapcore.AddSync(os.Stderr)), nil
}

func newLogger(conf *config.Configuration, stdoutWriter, stderrWriter zapcore.WriteSyncer) *zap.Logger {
	lvl, err := zapcore.ParseLevel(strings.ToLower(conf.Log.Level))
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	atomic := zap.NewAtomicLevelAt(lvl)

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.MessageKey = "message"
	encCfg.LevelKey = "level"
	encCfg.TimeKey = "ts"
	encCfg.CallerKey = "caller"
	encCfg.EncodeLevel = zapcore.LowercaseLevelEncoder
	encCfg.EncodeCaller = zapcore.ShortCallerEncoder
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	encoder := zapcore.NewJSONEncoder(encCfg)

	stdoutLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return atomic.Enabled(l) && l < zapcore.WarnLevel
	})
	stderrLevel := zap.LevelEnablerFunc(func(l zapcore.Level) bool {
		return atomic.Enabled(l) && l >= zapcore.WarnLevel
	})

	core := zapcore.NewTee(
		zapcore.NewCore(encoder, stdoutWriter, stdoutLevel),
		zapcore.NewCore(encoder, stderrWriter, stderrLevel),
	)

	logger := zap.New(core, zap.AddCaller(), zap.AddStacktrace(zap.ErrorLevel)).
		With(zap.String("service", conf.App.Name), zap.String("version", conf.App.Version))
	logger.Info("zap logger ready", zap.String("level", lvl.String()))
	return logger
}
