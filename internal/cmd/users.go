package cmd

import (
	"errors"

	"charm.land/lipgloss/v2"
	"github.com/SandeepBatta/OrigamiAI/internal/ansiext"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var errNotAdmin = errors.New("只有管理员可以列出用户，请把用户加入 options.admin_users")

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "列出所有用户的活动（仅管理员）",
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
		if !a.Config().IsAdmin(userID) {
			return errNotAdmin
		}

		users, err := a.Analytics.Users(cmd.Context())
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), users)
		}
		t := newTable("用户", "消息", "会话", "最近活动")
		for _, u := range users {
			t.Row(ansiext.Escape(u.UserID), humanize.Comma(u.MessageCount), humanize.Comma(u.SessionCount), humanize.Time(u.LastActivity))
		}
		lipgloss.Fprintln(cmd.OutOrStdout(), t)
		return nil
	},
}

func init() {
	usersCmd.Flags().Bool("json", false, "以 JSON 输出")
}
