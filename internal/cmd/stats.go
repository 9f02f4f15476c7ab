package cmd

import (
	"fmt"
	"io"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/SandeepBatta/OrigamiAI/internal/analytics"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "显示使用统计信息",
	Long:  "生成并显示当前用户的使用统计，包括消息和会话总数、每日活动、消息类型分布、按小时分布和会话长度",
	Example: `
# 终端表格
origami stats

# 完整报告
origami stats --json
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
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
		report, err := a.Analytics.Report(cmd.Context(), userID)
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), report)
		}
		printReport(cmd.OutOrStdout(), report)
		return nil
	},
}

func init() {
	statsCmd.Flags().Bool("json", false, "以 JSON 输出完整报告")
}

func printReport(w io.Writer, r analytics.Report) {
	totals := newTable("指标", "值").
		Row("消息", humanize.Comma(r.Totals.Messages)).
		Row("会话", humanize.Comma(r.Totals.Sessions)).
		Row("生成图片", humanize.Comma(r.Totals.Images)).
		Row("最近活动", r.Totals.LastActivity.String()).
		Row("活跃天数", strconv.Itoa(r.Engagement.ActiveDays)).
		Row("平均每会话记录数", fmt.Sprintf("%.1f", r.Engagement.AvgTurnsPerSession)).
		Row("平均会话时长（分钟）", fmt.Sprintf("%.1f", r.Engagement.AvgSessionMinutes)).
		Row("平均每日记录数", fmt.Sprintf("%.1f", r.Engagement.AvgDailyTurns))
	lipgloss.Fprintln(w, groupStyle.Render("总览"))
	lipgloss.Fprintln(w, totals)

	if len(r.MessageTypes) > 0 {
		types := newTable("类型", "数量")
		for _, tc := range r.MessageTypes {
			types.Row(tc.Label, humanize.Comma(tc.Count))
		}
		lipgloss.Fprintln(w, groupStyle.Render("消息类型"))
		lipgloss.Fprintln(w, types)
	}

	if len(r.ActivityOverTime) > 0 {
		days := newTable("日期", "记录数")
		for _, d := range r.ActivityOverTime {
			days.Row(d.Day, humanize.Comma(d.Count))
		}
		lipgloss.Fprintln(w, groupStyle.Render("每日活动"))
		lipgloss.Fprintln(w, days)
	}

	hours := newTable("小时", "用户", "AI")
	for _, h := range r.Hourly {
		if h.User == 0 && h.AI == 0 {
			continue
		}
		hours.Row(fmt.Sprintf("%02d:00", h.Hour), humanize.Comma(h.User), humanize.Comma(h.AI))
	}
	lipgloss.Fprintln(w, groupStyle.Render("按小时分布（UTC）"))
	lipgloss.Fprintln(w, hours)
}
