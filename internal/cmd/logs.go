package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"time"

	"charm.land/log/v2"
	"github.com/SandeepBatta/OrigamiAI/internal/config"
	"github.com/charmbracelet/colorprofile"
	"github.com/charmbracelet/x/term"
	"github.com/nxadm/tail"
	"github.com/spf13/cobra"
)

const defaultTailLines = 1000

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "查看 origami 日志",
	Long:  `查看 origami 写入数据目录的结构化日志，用于排查提供方调用和存储错误。`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cwd, _ := cmd.Flags().GetString("cwd")
		dataDir, _ := cmd.Flags().GetString("data-dir")
		follow, _ := cmd.Flags().GetBool("follow")
		tailLines, _ := cmd.Flags().GetInt("tail")

		log.SetLevel(log.DebugLevel)
		log.SetOutput(os.Stdout)
		if !term.IsTerminal(os.Stdout.Fd()) {
			log.SetColorProfile(colorprofile.NoTTY)
		}

		cfg, err := config.Load(cwd, dataDir, false)
		if err != nil {
			return fmt.Errorf("加载配置失败: %v", err)
		}
		logsFile := filepath.Join(cfg.Options.DataDirectory, "logs", "origami.log")
		if _, err := os.Stat(logsFile); os.IsNotExist(err) {
			log.Warn("还没有日志", "path", logsFile)
			return nil
		}

		lines, err := lastLines(logsFile, tailLines)
		if err != nil {
			return err
		}
		for _, line := range lines {
			printLogLine(line)
		}
		if len(lines) == tailLines {
			fmt.Fprintf(os.Stderr, "\n显示最后 %d 行。完整日志位于: %s\n", tailLines, logsFile)
		}
		if !follow {
			return nil
		}
		fmt.Fprintf(os.Stderr, "正在跟踪新的日志条目...\n\n")
		return followLogs(cmd.Context(), logsFile)
	},
}

func init() {
	logsCmd.Flags().BoolP("follow", "f", false, "跟踪日志输出")
	logsCmd.Flags().IntP("tail", "t", defaultTailLines, "只显示最后 N 行")
}

// lastLines 读取文件并只保留最后 n 行。
func lastLines(path string, n int) ([]string, error) {
	t, err := tail.TailFile(path, tail.Config{
		Follow: false,
		ReOpen: false,
		Logger: tail.DiscardingLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("无法读取日志文件: %v", err)
	}
	defer t.Stop()

	var lines []string
	for line := range t.Lines {
		if line.Err != nil {
			continue
		}
		lines = append(lines, line.Text)
		if len(lines) > n {
			lines = lines[len(lines)-n:]
		}
	}
	return lines, nil
}

// followLogs 从文件末尾开始打印新写入的行，直到 ctx 结束。
func followLogs(ctx context.Context, path string) error {
	t, err := tail.TailFile(path, tail.Config{
		Follow:   true,
		ReOpen:   true,
		Logger:   tail.DiscardingLogger,
		Location: &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd},
	})
	if err != nil {
		return fmt.Errorf("无法追踪日志文件: %v", err)
	}
	defer t.Stop()

	for {
		select {
		case line := <-t.Lines:
			if line == nil || line.Err != nil {
				continue
			}
			printLogLine(line.Text)
		case <-ctx.Done():
			return nil
		}
	}
}

// printLogLine 把 slog 的 JSON 行重新渲染为彩色输出，无法解析的行被跳过。
func printLogLine(lineText string) {
	var data map[string]any
	if err := json.Unmarshal([]byte(lineText), &data); err != nil {
		return
	}
	msg := data["msg"]
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var fields []any
	for _, k := range keys {
		switch k {
		case "msg", "level", "time":
		case "source":
			source, ok := data[k].(map[string]any)
			if !ok {
				continue
			}
			line, _ := source["line"].(float64)
			fields = append(fields, "source", fmt.Sprintf("%s:%d", source["file"], int(line)))
		default:
			fields = append(fields, k, data[k])
		}
	}

	stamp, _ := data["time"].(string)
	log.SetTimeFunction(func(time.Time) time.Time {
		t, err := time.Parse(time.RFC3339, stamp)
		if err != nil {
			return time.Now()
		}
		return t
	})
	switch data["level"] {
	case "DEBUG":
		log.Debug(msg, fields...)
	case "WARN":
		log.Warn(msg, fields...)
	case "ERROR":
		log.Error(msg, fields...)
	default:
		log.Info(msg, fields...)
	}
}
