package cmd

import (
	"github.com/SandeepBatta/OrigamiAI/internal/update"
	"github.com/SandeepBatta/OrigamiAI/internal/version"
	"github.com/spf13/cobra"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "检查是否有新版本",
	RunE: func(cmd *cobra.Command, args []string) error {
		info, err := update.Check(cmd.Context(), version.Version, update.Default)
		if err != nil {
			return err
		}
		switch {
		case info.IsDevelopment():
			cmd.Printf("当前是开发版本 %s，最新发布版本为 %s\n", info.Current, info.Latest)
		case info.Available():
			cmd.Printf("有新版本 %s（当前 %s）: %s\n", info.Latest, info.Current, info.URL)
		default:
			cmd.Printf("已是最新版本 %s\n", info.Current)
		}
		return nil
	},
}
