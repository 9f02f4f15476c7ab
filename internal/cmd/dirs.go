package cmd

import (
	"os"
	"path/filepath"

	"charm.land/lipgloss/v2"
	"github.com/SandeepBatta/OrigamiAI/internal/config"
	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"
)

var dirsCmd = &cobra.Command{
	Use:   "dirs",
	Short: "打印 origami 使用的全局目录",
	Long: `打印全局配置目录和全局数据目录。
config set 写入数据目录下的 origami.json，会话账本位于各项目的 .origami 目录。`,
	Example: `
# 打印所有目录
origami dirs

# 仅打印配置目录
origami dirs config

# 仅打印数据目录
origami dirs data
  `,
	Run: func(cmd *cobra.Command, args []string) {
		configDir := filepath.Dir(config.GlobalConfig())
		dataDir := filepath.Dir(config.GlobalConfigData())
		if term.IsTerminal(os.Stdout.Fd()) {
			t := newTable("", "路径").Row("Config", configDir).Row("Data", dataDir)
			lipgloss.Fprintln(cmd.OutOrStdout(), t)
			return
		}
		cmd.Println(configDir)
		cmd.Println(dataDir)
	},
}

var configDirCmd = &cobra.Command{
	Use:   "config",
	Short: "打印全局配置目录",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(filepath.Dir(config.GlobalConfig()))
	},
}

var dataDirCmd = &cobra.Command{
	Use:   "data",
	Short: "打印全局数据目录",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Println(filepath.Dir(config.GlobalConfigData()))
	},
}

func init() {
	dirsCmd.AddCommand(configDirCmd, dataDirCmd)
}
