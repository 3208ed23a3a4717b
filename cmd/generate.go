package cmd

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/cmmoran/creatorgen/pkg/action/generate"
)

func init() {
	rootCmd.AddCommand(NewGenerateCommand())
}

func NewGenerateCommand() *cobra.Command {
	// generateCmd represents the creatorgen generate command
	var generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "generate factories",
		Long:  "Generate a factory for every class marked with the creator attribute and write the changed units",
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(c)
			if err != nil {
				return err
			}
			res, err := generate.Generate(c.Context(), opts)
			if err != nil {
				return err
			}
			for _, f := range res.Written {
				slog.Debug("wrote", "file", f)
			}
			return nil
		},
	}
	addOptionFlags(generateCmd)
	return generateCmd
}
