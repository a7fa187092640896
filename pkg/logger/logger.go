package logger

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// 全局日志记录器实例
var L *zap.Logger

// `level`可以是"debug"、"info"、"warn"、"error"。
// `isProduction`决定输出JSON格式(生产)还是控制台格式(开发)。
func InitLogger(level string, isProduction bool) error {
	var zapLevel zapcore.Level
	if err := zapLevel.UnmarshalText([]byte(level)); err != nil {
		zapLevel = zapcore.InfoLevel // 解析失败时默认Info级别
		fmt.Fprintf(os.Stderr, "Warning: Invalid log level '%s', using default 'info'. Error: %v\n", level, err)
	}

	var err error
	if isProduction {
		config := zap.NewProductionConfig()
		config.Level = zap.NewAtomicLevelAt(zapLevel)
		L, err = config.Build(zap.AddCallerSkip(1))
	} else {
		config := zap.NewDevelopmentConfig()
		config.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder // 彩色级别输出
		config.Level = zap.NewAtomicLevelAt(zapLevel)
		L, err = config.Build(zap.AddCallerSkip(1))
	}

	if err != nil {
		return fmt.Errorf("failed to initialize zap logger: %w", err)
	}

	L.Info("Zap logger initialized", zap.String("level", zapLevel.String()), zap.Bool("productionMode", isProduction))
	return nil
}

// Sync刷新缓冲的日志条目，应在程序退出前调用。
func Sync() {
	if L != nil {
		_ = L.Sync()
	}
}
