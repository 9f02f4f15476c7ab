package cmd

import (
	"charm.land/lipgloss/v2"
	"github.com/SandeepBatta/OrigamiAI/internal/home"
	"github.com/SandeepBatta/OrigamiAI/internal/projects"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "列出用过 origami 的目录",
	Long:  "列出用过 origami 的工作目录以及各自账本所在的数据目录",
	Example: `
# 表格输出
origami projects

# JSON 输出
origami projects --json
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		list, err := projects.List()
		if err != nil {
			return err
		}
		if asJSON {
			return writeJSON(cmd.OutOrStdout(), projects.ProjectList{Projects: list})
		}
		if len(list) == 0 {
			cmd.Println("还没有记录任何项目")
			return nil
		}
		t := newTable("路径", "数据目录", "最近访问")
		for _, p := range list {
			t.Row(home.Short(p.Path), home.Short(p.DataDir), humanize.Time(p.LastAccessed))
		}
		lipgloss.Fprintln(cmd.OutOrStdout(), t)
		return nil
	},
}

func init() {
	projectsCmd.Flags().Bool("json", false, "以 JSON 输出")
}
