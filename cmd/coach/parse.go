package main

import (
	"fmt"
	"winugly/internal/feedback"

	"github.com/spf13/cobra"
)

func newParseCmd(opts *options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "parse",
		Short: "Render a saved model reply without calling Gemini",
		Long: `Extracts the four report sections from a saved reply and prints the report.
Useful for checking how a reply will be rendered.

Example:
  coach parse --file reply.md --html report.html`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}

			reply, err := readStrategy(cmd.InOrStdin(), nil, file)
			if err != nil {
				return fmt.Errorf("no reply to parse: %w", err)
			}

			report, err := feedback.Extract(reply)
			if err != nil {
				return fmt.Errorf("could not parse response: %w", err)
			}

			return printReport(cmd.OutOrStdout(), opts, cfg, report)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the reply from a file (default stdin)")
	return cmd
}
