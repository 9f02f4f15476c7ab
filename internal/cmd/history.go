package cmd

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"
	"github.com/SandeepBatta/OrigamiAI/internal/ansiext"
	"github.com/SandeepBatta/OrigamiAI/internal/ledger"
	"github.com/SandeepBatta/OrigamiAI/internal/stringext"
	"github.com/charmbracelet/x/exp/charmtone"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history <session>",
	Short: "显示一个会话的全部记录",
	Args:  cobra.ExactArgs(1),
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
		turns, err := a.Ledger.List(cmd.Context(), userID, args[0])
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), turns)
		}
		if len(turns) == 0 {
			return fmt.Errorf("会话 %s 没有记录", args[0])
		}
		printTurns(cmd.OutOrStdout(), turns)
		return nil
	},
}

func init() {
	historyCmd.Flags().Bool("json", false, "以 JSON 输出")
}

var (
	userRoleStyle      = lipgloss.NewStyle().Foreground(charmtone.Guac).Bold(true)
	assistantRoleStyle = lipgloss.NewStyle().Foreground(charmtone.Charple).Bold(true)
	timeStyle          = lipgloss.NewStyle().Foreground(charmtone.Squid)
)

func printTurns(w io.Writer, turns []ledger.Turn) {
	for _, turn := range turns {
		style := assistantRoleStyle
		if turn.Role == ledger.User {
			style = userRoleStyle
		}
		lipgloss.Fprintln(w, style.Render(stringext.Capitalize(string(turn.Role)))+" "+timeStyle.Render(humanize.Time(turn.CreatedAt)))
		if turn.Kind == ledger.Image {
			lipgloss.Fprintln(w, "[图片] "+ansiext.Sanitize(turn.Content))
			lipgloss.Fprintln(w, ansiext.Escape(turn.URL))
		} else if turn.Role == ledger.Assistant {
			lipgloss.Fprintln(w, renderText(turn.Content))
		} else {
			lipgloss.Fprintln(w, ansiext.Sanitize(turn.Content))
		}
		lipgloss.Fprintln(w)
	}
}
