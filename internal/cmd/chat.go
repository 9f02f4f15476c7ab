package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/log/v2"
	"github.com/SandeepBatta/OrigamiAI/internal/ansiext"
	"github.com/SandeepBatta/OrigamiAI/internal/app"
	"github.com/SandeepBatta/OrigamiAI/internal/continuity"
	"github.com/SandeepBatta/OrigamiAI/internal/ledger"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/spf13/cobra"
)

var chatCmd = &cobra.Command{
	Use:   "chat [prompt...]",
	Short: "在会话中对话",
	Long: `向 AI 发送提示词。给出提示词时只提交一次并退出，否则进入交互模式，
每行输入作为一次提交，输入 /new 开始新会话，输入 /exit 退出。
提示词也可以从标准输入管道传入。`,
	Example: `
# 新会话中单次提问
origami chat "给我讲个笑话"

# 继续已有会话
origami chat -s 4f1c2a... "再讲一个"

# 附带图片
origami chat --attach photo.jpg "这张图里是什么？"

# 显示日志
origami chat --verbose
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		verbose, _ := cmd.Flags().GetBool("verbose")
		sessionID, _ := cmd.Flags().GetString("session")
		attachPaths, _ := cmd.Flags().GetStringSlice("attach")
		asJSON, _ := cmd.Flags().GetBool("json")

		// 在 SIGINT 信号时取消。
		ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer cancel()

		a, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer a.Shutdown()

		if !a.Config().IsConfigured() {
			return fmt.Errorf("未配置提供方 - 请设置 OPENAI_API_KEY 或运行 'origami config set provider.api_key <key>'")
		}
		if verbose {
			slog.SetDefault(slog.New(log.New(os.Stderr)))
		}

		userID, err := resolveUser(cmd, a.Config())
		if err != nil {
			return err
		}
		if sessionID == "" {
			sessionID = a.NewSession(userID)
		}

		attachments, err := readAttachments(attachPaths)
		if err != nil {
			return err
		}

		prompt, err := MaybePrependStdin(strings.Join(args, " "))
		if err != nil {
			slog.Error("从标准输入读取失败", "error", err)
			return err
		}

		out := cmd.OutOrStdout()
		if strings.TrimSpace(prompt) != "" || len(attachments) > 0 {
			ex, err := a.Submit(ctx, app.Submission{
				UserID:      userID,
				SessionID:   sessionID,
				Prompt:      prompt,
				Attachments: attachments,
			})
			if err != nil {
				return err
			}
			return printExchange(out, ex, asJSON)
		}
		return repl(ctx, a, cmd.InOrStdin(), out, userID, sessionID)
	},
}

func init() {
	chatCmd.Flags().StringP("session", "s", "", "继续的会话 ID，默认新建会话")
	chatCmd.Flags().StringSlice("attach", nil, "随提示词上传的图片文件")
	chatCmd.Flags().BoolP("verbose", "v", false, "显示日志")
	chatCmd.Flags().Bool("json", false, "以 JSON 输出写入的记录")
}

var (
	promptStyle  = lipgloss.NewStyle().Foreground(charmtone.Guac).Bold(true)
	sessionStyle = lipgloss.NewStyle().Foreground(charmtone.Squid)
	errorStyle   = lipgloss.NewStyle().Foreground(charmtone.Coral)
)

// repl 逐行读取提示词。提供方失败时不写入记录，可以直接重新输入。
func repl(ctx context.Context, a *app.App, in io.Reader, out io.Writer, userID, sessionID string) error {
	lipgloss.Fprintln(out, sessionStyle.Render("会话 "+sessionID))
	scanner := bufio.NewScanner(in)
	for {
		lipgloss.Fprint(out, promptStyle.Render("> "))
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		case "/new":
			sessionID = a.NewSession(userID)
			lipgloss.Fprintln(out, sessionStyle.Render("会话 "+sessionID))
			continue
		}

		ex, err := a.Submit(ctx, app.Submission{UserID: userID, SessionID: sessionID, Prompt: line})
		if ctx.Err() != nil {
			return nil
		}
		if err != nil {
			lipgloss.Fprintln(out, errorStyle.Render(err.Error()))
			continue
		}
		if err := printExchange(out, ex, false); err != nil {
			return err
		}
	}
}

func printExchange(w io.Writer, ex app.Exchange, asJSON bool) error {
	if asJSON {
		return writeJSON(w, ex)
	}
	turn := ex.Assistant
	if turn.Kind == ledger.Image {
		_, err := fmt.Fprintf(w, "[图片] %s\n%s\n", ansiext.Sanitize(turn.Content), ansiext.Escape(turn.URL))
		return err
	}
	_, err := fmt.Fprintln(w, renderText(turn.Content))
	return err
}

func readAttachments(paths []string) ([]continuity.Attachment, error) {
	attachments := make([]continuity.Attachment, 0, len(paths))
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("读取附件 %s 失败: %w", p, err)
		}
		attachments = append(attachments, continuity.Attachment{Data: data})
	}
	return attachments, nil
}
