package main

import (
	"fmt"
	"os"
	"winugly/internal/config"
	"winugly/internal/logging"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type options struct {
	configPath string
	verbose    bool
	style      string
	htmlPath   string
	plain      bool

	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:   "coach",
		Short: "Win Ugly strategy coach",
		Long: `coach sends your competition strategy to Gemini and prints a Win Ugly
coaching report: an overall diagnosis, the ugly points worth keeping, the
nice points to drop and a list of missions.

Set GEMINI_API_KEY before running analyze.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logCfg := config.LogConfig{Level: "warn", Development: true}
			if opts.verbose {
				logCfg.Level = "debug"
			}
			logger, err := logging.New(logCfg)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			opts.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if opts.logger != nil {
				_ = opts.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to a YAML config file (default $WINUGLY_CONFIG)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVar(&opts.style, "style", "", "report language, ko or en (default from config)")
	root.PersistentFlags().StringVar(&opts.htmlPath, "html", "", "also write the report as a standalone HTML file")
	root.PersistentFlags().BoolVar(&opts.plain, "plain", false, "print markdown without terminal styling")

	root.AddCommand(newAnalyzeCmd(opts), newParseCmd(opts), newPromptCmd(opts))
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
