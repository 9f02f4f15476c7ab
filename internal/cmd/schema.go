package cmd

import (
	"github.com/SandeepBatta/OrigamiAI/internal/config"
	"github.com/invopop/jsonschema"
	"github.com/spf13/cobra"
)

var schemaCmd = &cobra.Command{
	Use:    "schema",
	Short:  "生成 origami.json 的 JSON schema",
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		reflector := &jsonschema.Reflector{RequiredFromJSONSchemaTags: true}
		schema := reflector.Reflect(&config.Config{})
		schema.Title = "origami 配置"
		return writeJSON(cmd.OutOrStdout(), schema)
	},
}
