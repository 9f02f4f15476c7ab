package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/SandeepBatta/OrigamiAI/internal/app"
	"github.com/SandeepBatta/OrigamiAI/internal/config"
	"github.com/SandeepBatta/OrigamiAI/internal/db"
	"github.com/SandeepBatta/OrigamiAI/internal/projects"
	"github.com/SandeepBatta/OrigamiAI/internal/version"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.PersistentFlags().StringP("cwd", "c", "", "当前工作目录")
	rootCmd.PersistentFlags().StringP("data-dir", "D", "", "自定义 origami 数据目录")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "调试")
	rootCmd.PersistentFlags().StringP("user", "u", "", "用户标识，默认使用配置中的 default_user 或当前系统用户")
	rootCmd.PersistentFlags().String("tz", "", "按日期分组会话时使用的 IANA 时区")

	rootCmd.AddCommand(
		chatCmd,
		sessionsCmd,
		historyCmd,
		statsCmd,
		usersCmd,
		exportCmd,
		serveCmd,
		configCmd,
		dirsCmd,
		logsCmd,
		schemaCmd,
		updateCmd,
		projectsCmd,
	)
}

var rootCmd = &cobra.Command{
	Use:   "origami",
	Short: "带会话历史和使用统计的 AI 对话助手",
	Long:  "Origami 把多轮 AI 对话（文本和生成的图片）按会话记录在本地账本中，并提供使用统计",
	Example: `
# 开始一个新会话
origami chat

# 单次提问
origami chat "用一句话介绍折纸"

# 列出会话
origami sessions

# 查看统计
origami stats --json

# 启动 HTTP 接口
origami serve
  `,
	SilenceUsage: true,
}

var heartbit = lipgloss.NewStyle().Foreground(charmtone.Dolly).SetString(`
        ▄▀▄
      ▄▀   ▀▄
    ▄▀  ▄▀▄  ▀▄
  ▄▀  ▄▀   ▀▄  ▀▄
  ▀▄▄▀▄▄▄▄▄▄▄▀▄▄▀
`)

// copied from cobra:
const defaultVersionTemplate = `{{with .DisplayName}}{{printf "%s " .}}{{end}}{{printf "version %s" .Version}}
`

func Execute() {
	// cobra 不支持自定义版本输出函数，所以把彩色图案渲染进版本模板。
	if term.IsTerminal(os.Stdout.Fd()) {
		var b bytes.Buffer
		w := colorprofile.NewWriter(os.Stdout, os.Environ())
		w.Forward = &b
		_, _ = w.WriteString(heartbit.String())
		rootCmd.SetVersionTemplate(b.String() + "\n" + defaultVersionTemplate)
	}
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(version.Version),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		os.Exit(1)
	}
}

// loadConfig 解析工作目录并加载配置，同时初始化日志
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	debug, _ := cmd.Flags().GetBool("debug")
	dataDir, _ := cmd.Flags().GetString("data-dir")

	cwd, err := ResolveCwd(cmd)
	if err != nil {
		return nil, err
	}
	return config.Init(cwd, dataDir, debug)
}

// setupApp 加载配置、打开账本数据库并构建应用实例
func setupApp(cmd *cobra.Command) (*app.App, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := createDotOrigamiDir(cfg.Options.DataDirectory); err != nil {
		return nil, err
	}

	if err := projects.Register(cfg.WorkingDir(), cfg.Options.DataDirectory); err != nil {
		slog.Warn("记录项目目录失败", "error", err)
	}

	ctx := cmd.Context()
	conn, err := db.Connect(ctx, cfg.Options.DataDirectory)
	if err != nil {
		return nil, err
	}

	appInstance, err := app.New(ctx, conn, cfg)
	if err != nil {
		slog.Error("创建应用实例失败", "error", err)
		conn.Close()
		return nil, err
	}
	return appInstance, nil
}

// resolveUser 依次使用 --user、配置中的 default_user 和当前系统用户名
func resolveUser(cmd *cobra.Command, cfg *config.Config) (string, error) {
	if u, _ := cmd.Flags().GetString("user"); u != "" {
		return u, nil
	}
	if cfg.Options.DefaultUser != "" {
		return cfg.Options.DefaultUser, nil
	}
	current, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("无法确定用户，请使用 --user: %w", err)
	}
	return current.Username, nil
}

// resolveLocation 优先使用 --tz，否则使用配置的时区
func resolveLocation(cmd *cobra.Command, cfg *config.Config) (*time.Location, error) {
	tz, _ := cmd.Flags().GetString("tz")
	if tz == "" {
		return cfg.Location(), nil
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("无效的时区 %q: %w", tz, err)
	}
	return loc, nil
}

func MaybePrependStdin(prompt string) (string, error) {
	if term.IsTerminal(os.Stdin.Fd()) {
		return prompt, nil
	}
	fi, err := os.Stdin.Stat()
	if err != nil {
		return prompt, err
	}
	// 只读取管道（|）或重定向的常规文件（<）
	if fi.Mode()&os.ModeNamedPipe == 0 && !fi.Mode().IsRegular() {
		return prompt, nil
	}
	bts, err := io.ReadAll(os.Stdin)
	if err != nil {
		return prompt, err
	}
	if prompt == "" {
		return string(bts), nil
	}
	return string(bts) + "\n\n" + prompt, nil
}

func ResolveCwd(cmd *cobra.Command) (string, error) {
	cwd, _ := cmd.Flags().GetString("cwd")
	if cwd != "" {
		if err := os.Chdir(cwd); err != nil {
			return "", fmt.Errorf("failed to change directory: %v", err)
		}
		return cwd, nil
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %v", err)
	}
	return cwd, nil
}

func createDotOrigamiDir(dir string) error {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create data directory: %q %w", dir, err)
	}

	gitIgnorePath := filepath.Join(dir, ".gitignore")
	if _, err := os.Stat(gitIgnorePath); os.IsNotExist(err) {
		if err := os.WriteFile(gitIgnorePath, []byte("*\n"), 0o644); err != nil {
			return fmt.Errorf("failed to create .gitignore file: %q %w", gitIgnorePath, err)
		}
	}
	return nil
}
