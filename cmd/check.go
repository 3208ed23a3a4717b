package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cmmoran/creatorgen/pkg/action/check"
)

func init() {
	rootCmd.AddCommand(NewCheckCommand())
}

func NewCheckCommand() *cobra.Command {
	// checkCmd represents the creatorgen check command
	var checkCmd = &cobra.Command{
		Use:   "check",
		Short: "verify generated units are current",
		Long:  "Regenerate every unit in memory and fail with a diff when the output directory differs",
		RunE: func(c *cobra.Command, args []string) error {
			opts, err := loadOptions(c)
			if err != nil {
				return err
			}
			diff, err := check.Check(c.Context(), opts)
			if diff != "" {
				fmt.Fprint(c.OutOrStdout(), diff)
			}
			return err
		},
	}
	addOptionFlags(checkCmd)
	return checkCmd
}
