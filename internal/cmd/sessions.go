package cmd

import (
	"encoding/json"
	"io"
	"os"
	"strconv"
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/SandeepBatta/OrigamiAI/internal/ansiext"
	"github.com/SandeepBatta/OrigamiAI/internal/session"
	"github.com/SandeepBatta/OrigamiAI/internal/stringext"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/charmbracelet/x/term"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "列出会话",
	Long:  `列出当前用户的会话。默认按开始日期分为 Today、Last 7 days 和 Older 三组，--detailed 时按最近活动排序并显示记录数。`,
	Example: `
# 按日期分组列出
origami sessions

# 带记录数，按最近活动排序
origami sessions --detailed

# 以东京时间分组
origami sessions --tz Asia/Tokyo --json
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		detailed, _ := cmd.Flags().GetBool("detailed")
		asJSON, _ := cmd.Flags().GetBool("json")

		a, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer a.Shutdown()

		userID, err := resolveUser(cmd, a.Config())
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		if detailed {
			sessions, err := a.Sessions.ListDetailed(ctx, userID)
			if err != nil {
				return err
			}
			if asJSON {
				return writeJSON(out, sessions)
			}
			return printDetailedSessions(out, sessions)
		}

		loc, err := resolveLocation(cmd, a.Config())
		if err != nil {
			return err
		}
		summaries, err := a.Sessions.List(ctx, userID)
		if err != nil {
			return err
		}
		groups := session.GroupByDate(summaries, time.Now(), loc)
		if asJSON {
			return writeJSON(out, groups)
		}
		return printSessionGroups(out, groups)
	},
}

func init() {
	sessionsCmd.Flags().Bool("detailed", false, "显示记录数并按最近活动排序")
	sessionsCmd.Flags().Bool("json", false, "以 JSON 输出")
}

var groupStyle = lipgloss.NewStyle().Foreground(charmtone.Charple).Bold(true)

func printSessionGroups(w io.Writer, groups []session.Group) error {
	if len(groups) == 0 {
		_, err := io.WriteString(w, "还没有会话\n")
		return err
	}
	for _, g := range groups {
		t := newTable("会话", "开始", "摘要")
		for _, s := range g.Sessions {
			t.Row(s.ID, humanize.Time(s.FirstAt), snippet(s.Snippet))
		}
		lipgloss.Fprintln(w, groupStyle.Render(g.Bucket.String()))
		lipgloss.Fprintln(w, t)
	}
	return nil
}

func printDetailedSessions(w io.Writer, sessions []session.DetailedSummary) error {
	if len(sessions) == 0 {
		_, err := io.WriteString(w, "还没有会话\n")
		return err
	}
	t := newTable("会话", "记录数", "最近活动", "摘要")
	for _, s := range sessions {
		t.Row(s.ID, strconv.FormatInt(s.TurnCount, 10), humanize.Time(s.LastAt), snippet(s.Snippet))
	}
	lipgloss.Fprintln(w, t)
	return nil
}

// newTable 在终端中使用圆角边框，否则输出无边框的纯文本列。
func newTable(headers ...string) *table.Table {
	t := table.New().Headers(headers...)
	if !term.IsTerminal(os.Stdout.Fd()) {
		return t.Border(lipgloss.HiddenBorder())
	}
	return t.
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(charmtone.Squid)).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return lipgloss.NewStyle().Bold(true).Padding(0, 1)
			}
			return lipgloss.NewStyle().Padding(0, 1)
		})
}

// snippet 把摘要压成一行再显示
func snippet(s string) string {
	return ansiext.Escape(stringext.SingleLine(s))
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
