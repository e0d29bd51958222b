package main

import (
	"context"
	"fmt"
	"io"
	"iter"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	logpkg "github.com/kailas-cloud/pensum/internal/logger"
)

var askStream bool

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Answer one question and exit",
	Example: `  pensum ask "what is the code of Calculus I"
  pensum ask --stream list the courses of the second semester`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAsk,
}

func init() {
	askCmd.Flags().BoolVar(&askStream, "stream", false, "print the answer as it is generated")
}

// answerer is what ask needs from the engine.
type answerer interface {
	Answer(ctx context.Context, question string) (string, error)
	AnswerStream(ctx context.Context, question string) iter.Seq2[string, error]
}

func runAsk(cmd *cobra.Command, args []string) error {
	cfg, env, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	level := cfg.Logging.Level
	if level == "" || level == "debug" || level == "info" {
		level = "warn"
	}
	logger, err := logpkg.NewLogger(env, level)
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	a, err := newApp(cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return ask(ctx, a.engine, cmd.OutOrStdout(), strings.Join(args, " "), askStream)
}

func ask(ctx context.Context, engine answerer, out io.Writer, question string, stream bool) error {
	if !stream {
		answer, err := engine.Answer(ctx, question)
		if err != nil {
			return fmt.Errorf("answer: %w", err)
		}
		_, err = fmt.Fprintln(out, answer)
		return err //nolint:wrapcheck // terminal write
	}

	for frag, err := range engine.AnswerStream(ctx, question) {
		if err != nil {
			fmt.Fprintln(out)
			return fmt.Errorf("answer stream: %w", err)
		}
		if _, err := io.WriteString(out, frag); err != nil {
			return err //nolint:wrapcheck // terminal write
		}
	}
	_, err := fmt.Fprintln(out)
	return err //nolint:wrapcheck // terminal write
}
