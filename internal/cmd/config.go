package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "查看或修改全局配置",
}

var configSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "设置全局配置中的一个字段",
	Long:  `设置全局配置中的一个字段。值是合法 JSON 时按 JSON 写入，否则作为字符串写入。`,
	Example: `
origami config set provider.api_key '$OPENAI_API_KEY'
origami config set provider.chat_model gpt-4.1
origami config set options.admin_users '["alice"]'
  `,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		key, raw := args[0], args[1]
		var value any = raw
		if gjson.Valid(raw) {
			value = json.RawMessage(raw)
		}
		if err := cfg.SetConfigField(key, value); err != nil {
			return err
		}
		cmd.Printf("已写入 %s\n", cfg.ConfigPath())
		return nil
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset <key>",
	Short: "删除全局配置中的一个字段",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if !cfg.HasConfigField(args[0]) {
			return fmt.Errorf("配置中没有字段 %s", args[0])
		}
		return cfg.RemoveConfigField(args[0])
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "打印 config set 写入的文件",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		cmd.Println(cfg.ConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configSetCmd, configUnsetCmd, configPathCmd)
}
