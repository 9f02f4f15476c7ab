package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/SandeepBatta/OrigamiAI/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "启动 HTTP 接口",
	Long: `启动 HTTP 接口。调用方通过 X-User-ID 请求头标识用户，
可以用 X-Timezone 指定会话按日期分组时的时区。`,
	Example: `
# 使用配置中的地址
origami serve

# 监听所有网卡
origami serve --addr 0.0.0.0:8080
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		debug, _ := cmd.Flags().GetBool("debug")

		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer cancel()

		a, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer a.Shutdown()

		if !debug {
			gin.SetMode(gin.ReleaseMode)
		}
		if addr == "" {
			addr = a.Config().Server.Address
		}
		if !a.Config().IsConfigured() {
			slog.Warn("未配置提供方，提交接口将返回 503")
		}
		return server.New(a).Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "监听地址，默认使用配置中的 server.address")
}
