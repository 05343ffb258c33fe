package logger

import (
	"log/slog"
	"os"
)

// InitLogger 初始化全局日志记录器
// 创建 JSON 格式的日志处理器,输出到 stdout，级别由LOG_LEVEL控制
func InitLogger() {
	level := slog.LevelDebug
	switch os.Getenv("LOG_LEVEL") {
	case "info":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: level,
	})
	logger := slog.New(handler)
	slog.SetDefault(logger)
}
