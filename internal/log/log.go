package log

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	initOnce sync.Once
	panicDir atomic.Value
)

// Setup 把默认 slog 记录器设置为写入 logFile 的 JSON 处理器，文件按大小轮转。
// 只有第一次调用生效。
func Setup(logFile string, debug bool) {
	initOnce.Do(func() {
		logRotator := &lumberjack.Logger{
			Filename:   logFile,
			MaxSize:    10, // MB
			MaxBackups: 0,
			MaxAge:     30, // 天
			Compress:   false,
		}

		level := slog.LevelInfo
		if debug {
			level = slog.LevelDebug
		}

		logger := slog.NewJSONHandler(logRotator, &slog.HandlerOptions{
			Level:     level,
			AddSource: true,
		})

		slog.SetDefault(slog.New(logger))
		panicDir.Store(filepath.Dir(logFile))
	})
}

// RecoverPanic 在 defer 中使用：捕获 panic，记录日志并把堆栈写入日志目录下的文件。
func RecoverPanic(name string, cleanup func()) {
	r := recover()
	if r == nil {
		return
	}
	slog.Error("捕获到 panic", "name", name, "panic", r)

	dir, _ := panicDir.Load().(string)
	timestamp := time.Now().Format("20060102-150405")
	filename := filepath.Join(dir, fmt.Sprintf("origami-panic-%s-%s.log", name, timestamp))

	if file, err := os.Create(filename); err == nil {
		fmt.Fprintf(file, "Panic in %s: %v\n\n", name, r)
		fmt.Fprintf(file, "Time: %s\n\n", time.Now().Format(time.RFC3339))
		fmt.Fprintf(file, "Stack Trace:\n%s\n", debug.Stack())
		file.Close()
	}
	if cleanup != nil {
		cleanup()
	}
}
