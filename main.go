package main

import (
	"log/slog"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/SandeepBatta/OrigamiAI/internal/cmd"
	"github.com/SandeepBatta/OrigamiAI/internal/log"
)

func main() {
	defer log.RecoverPanic("main", func() {
		slog.Error("应用程序因致命错误终止")
	})

	if os.Getenv("ORIGAMI_PROFILE") != "" {
		go func() {
			slog.Info("在 localhost:6060 上提供 pprof 服务")
			if httpErr := http.ListenAndServe("localhost:6060", nil); httpErr != nil {
				slog.Error("启动 pprof 失败", "error", httpErr)
			}
		}()
	}

	cmd.Execute()
}
