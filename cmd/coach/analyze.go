package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
	"winugly/internal/config"
	"winugly/internal/prompt"
	"winugly/internal/service"

	"github.com/spf13/cobra"
)

func newAnalyzeCmd(opts *options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "analyze [strategy]",
		Short: "Analyse a strategy with Gemini",
		Long: `Analyses one strategy and prints the coaching report.

The strategy is read from the argument, from --file or from stdin.

Example:
  coach analyze "I will not make a single mistake and cheer my teammates on"
  coach analyze --file plan.txt --html report.html`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				if errors.Is(err, config.ErrMissingAPIKey) {
					fmt.Fprintln(cmd.ErrOrStderr(), config.SetupMessage)
				}
				return err
			}

			strategy, err := readStrategy(cmd.InOrStdin(), args, file)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			generator, err := service.NewGeminiGenerator(ctx, cfg.AI, opts.logger)
			if err != nil {
				return err
			}
			coach := service.NewCoachService(generator, prompt.NewBuilder(prompt.ParseLocale(cfg.AI.Locale)), nil, nil, cfg.UI.MaxInputChars, opts.logger)

			stopSpinner := spinner(cmd.ErrOrStderr(), "analysing")
			sub, err := coach.Analyze(ctx, "", strategy)
			stopSpinner()
			if err != nil {
				return describe(err)
			}

			return printReport(cmd.OutOrStdout(), opts, cfg, sub.Report)
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the strategy from a file")
	return cmd
}

func newPromptCmd(opts *options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "prompt [strategy]",
		Short: "Print the prompt that analyze would send",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			strategy, err := readStrategy(cmd.InOrStdin(), args, file)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), prompt.NewBuilder(prompt.ParseLocale(cfg.AI.Locale)).Build(strategy))
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "read the strategy from a file")
	return cmd
}

func loadConfig(opts *options) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}
	if opts.style != "" {
		cfg.AI.Locale = opts.style
	}
	return cfg, nil
}

// readStrategy takes the argument, then the file, then stdin
func readStrategy(stdin io.Reader, args []string, file string) (string, error) {
	var text string
	switch {
	case len(args) == 1:
		text = args[0]
	case file != "":
		data, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("failed to read strategy: %w", err)
		}
		text = string(data)
	default:
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read stdin: %w", err)
		}
		text = string(data)
	}
	if strings.TrimSpace(text) == "" {
		return "", service.ErrEmptyStrategy
	}
	return text, nil
}

func describe(err error) error {
	var svcErr *service.ServiceError
	switch {
	case errors.Is(err, service.ErrEmptyStrategy):
		return errors.New("please enter a strategy")
	case errors.Is(err, service.ErrUnparseable):
		return fmt.Errorf("could not parse response: %w", err)
	case errors.As(err, &svcErr) && svcErr.Timeout:
		return fmt.Errorf("the model did not answer in time, try again: %w", err)
	case errors.As(err, &svcErr):
		return fmt.Errorf("the model request failed, try again: %w", err)
	default:
		return err
	}
}

func spinner(w io.Writer, label string) func() {
	done := make(chan struct{})
	stopped := make(chan struct{})
	go func() {
		defer close(stopped)
		ticker := time.NewTicker(100 * time.Millisecond)
		defer ticker.Stop()
		frames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
		for i := 0; ; i++ {
			select {
			case <-done:
				fmt.Fprint(w, "\r\033[K")
				return
			case <-ticker.C:
				fmt.Fprintf(w, "\r%s %s...", frames[i%len(frames)], label)
			}
		}
	}()
	return func() {
		close(done)
		<-stopped
	}
}
