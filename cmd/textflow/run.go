package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"textflow/config"
	"textflow/fetch"
	"textflow/oracle"
	"textflow/oracle/middleware"
	"textflow/oracle/openai"
	"textflow/pipeline"
)

var runCmd = &cobra.Command{
	Use:   "run [text]",
	Short: "Run the analysis pipeline on a text, file, or URL",
	Long: `Run executes the pipeline on input text and prints the result as JSON.

The input is taken from the first positional argument, or from --file, or
fetched and converted to Markdown from --url. With no input flags and no
argument, the text is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPipeline,
}

func init() {
	runCmd.Flags().String("file", "", "Read the input text from a file")
	runCmd.Flags().String("url", "", "Fetch the input text from a web page")
	runCmd.Flags().Bool("verbose", false, "Enable debug logging, including oracle prompts and responses")

	rootCmd.AddCommand(runCmd)
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	verbose, _ := cmd.Flags().GetBool("verbose") //nolint:errcheck
	logger := newLogger(verbose)

	text, err := resolveInput(cmd, args)
	if err != nil {
		return err
	}

	analysisPipeline, err := pipeline.New(newCompleter(cfg, logger, verbose), pipelineOptions(cfg, logger)...)
	if err != nil {
		return err
	}

	result, err := analysisPipeline.Run(cmd.Context(), text)
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(encoded))
	return nil
}

// newLogger builds the CLI's structured logger; verbose enables debug level.
func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// newCompleter assembles the oracle: the OpenAI-compatible provider wrapped
// with logging, per-request timeout, and (when configured) retries.
func newCompleter(cfg *config.Config, logger *slog.Logger, verbose bool) oracle.Completer {
	provider := openai.New()
	if cfg.BaseURL != "" {
		provider.WithBaseURL(cfg.BaseURL)
	}

	logLevel := middleware.LogLevelStandard
	if verbose {
		logLevel = middleware.LogLevelVerbose
	}

	middlewares := []oracle.Middleware{
		middleware.NewLogging(logger, logLevel),
	}
	if cfg.RequestTimeout > 0 {
		middlewares = append(middlewares, middleware.NewTimeout(time.Duration(cfg.RequestTimeout)))
	}
	if cfg.MaxRetries > 0 {
		middlewares = append(middlewares, middleware.NewRetry(middleware.RetryConfig{MaxRetries: cfg.MaxRetries}))
	}

	return oracle.Apply(provider, middlewares...)
}

// pipelineOptions maps the configuration onto pipeline options.
func pipelineOptions(cfg *config.Config, logger *slog.Logger) []pipeline.Option {
	opts := []pipeline.Option{
		pipeline.WithModel(cfg.Model),
		pipeline.WithTemperature(cfg.Temperature),
		pipeline.WithMaxTokens(cfg.MaxTokens),
		pipeline.WithLogger(logger),
	}

	if cfg.Sentiment {
		opts = append(opts, pipeline.WithSentiment())
	}
	if cfg.StructuredEntities {
		opts = append(opts, pipeline.WithStructuredEntities())
	}

	return opts
}

// resolveInput picks the input text from the argument, --file, --url, or stdin.
func resolveInput(cmd *cobra.Command, args []string) (string, error) {
	file, _ := cmd.Flags().GetString("file") //nolint:errcheck
	url, _ := cmd.Flags().GetString("url")   //nolint:errcheck

	switch {
	case url != "":
		return fetch.Markdown(cmd.Context(), url)

	case file != "":
		raw, err := os.ReadFile(file)
		if err != nil {
			return "", fmt.Errorf("reading input file: %w", err)
		}
		return string(raw), nil

	case len(args) == 1:
		return args[0], nil

	default:
		raw, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(raw), nil
	}
}
