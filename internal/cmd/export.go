package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "导出当前用户的全部记录",
	Example: `
# 输出到标准输出
origami export

# 以 YAML 写入文件
origami export --format yaml -o history.yaml
  `,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		format, _ := cmd.Flags().GetString("format")
		encode, err := exportEncoder(format)
		if err != nil {
			return err
		}

		a, err := setupApp(cmd)
		if err != nil {
			return err
		}
		defer a.Shutdown()

		userID, err := resolveUser(cmd, a.Config())
		if err != nil {
			return err
		}
		export, err := a.Export(cmd.Context(), userID, time.Now())
		if err != nil {
			return err
		}
		if output == "" {
			return encode(cmd.OutOrStdout(), export)
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("创建导出文件失败: %w", err)
		}
		defer f.Close()
		if err := encode(f, export); err != nil {
			return fmt.Errorf("写入导出文件失败: %w", err)
		}
		slog.Info("导出完成", "user", userID, "turns", len(export.Turns), "path", output)
		return nil
	},
}

func exportEncoder(format string) (func(io.Writer, any) error, error) {
	switch format {
	case "", "json":
		return writeJSON, nil
	case "yaml", "yml":
		return writeYAML, nil
	default:
		return nil, fmt.Errorf("不支持的导出格式 %q，可选 json 或 yaml", format)
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func init() {
	exportCmd.Flags().StringP("output", "o", "", "输出文件，默认写到标准输出")
	exportCmd.Flags().StringP("format", "f", "json", "导出格式：json 或 yaml")
}
