package logger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"serenity/config"
)

// Logger 全局日志记录器，未初始化时输出到标准错误
var Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// logFile 当前打开的日志文件
var logFile *os.File

// ParseLevel 将配置中的日志级别转换为slog级别，未知值按info处理
func ParseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// NewHandler 根据格式创建slog处理器
func NewHandler(w io.Writer, format string, level slog.Level) slog.Handler {
	opts := &slog.HandlerOptions{Level: level}
	if strings.ToLower(format) == "json" {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}

// Init 使用配置文件初始化日志系统
func Init(cfg *config.Config) error {
	output := strings.ToLower(cfg.Log.Output)
	filePath := cfg.Log.FilePath

	// 设置输出目标
	var writer io.Writer = os.Stdout
	if (output == "file" || output == "both") && filePath != "" {
		// 创建日志目录
		if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
			return err
		}
		file, err := os.OpenFile(filePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
		if err != nil {
			return err
		}
		logFile = file
		writer = file
		if output == "both" {
			writer = io.MultiWriter(os.Stdout, file)
		}
	}

	// 设置默认logger和全局Logger变量
	Logger = slog.New(NewHandler(writer, cfg.Log.Format, ParseLevel(cfg.Log.Level)))
	slog.SetDefault(Logger)
	return nil
}

// Close 关闭日志文件
func Close() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	return err
}

// With 返回带有固定字段的子记录器
func With(args ...any) *slog.Logger {
	return Logger.With(args...)
}

// Debug 记录调试级别的日志
func Debug(msg string, args ...any) {
	Logger.Debug(msg, args...)
}

// Info 记录信息级别的日志
func Info(msg string, args ...any) {
	Logger.Info(msg, args...)
}

// Warn 记录警告级别的日志
func Warn(msg string, args ...any) {
	Logger.Warn(msg, args...)
}

// Error 记录错误级别的日志
func Error(msg string, args ...any) {
	Logger.Error(msg, args...)
}
