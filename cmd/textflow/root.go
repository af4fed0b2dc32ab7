package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"textflow/config"
)

var rootCmd = &cobra.Command{
	Use:   "textflow",
	Short: "Textflow runs a multi-step text analysis pipeline over an LLM",
	Long: `Textflow chains classification, entity extraction, summarization, and
optional sentiment analysis into a validated task graph and runs it against
an OpenAI-compatible completion API.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML configuration file")
	rootCmd.PersistentFlags().Bool("sentiment", false, "Append the sentiment step to the pipeline")
}

// loadConfig resolves the run configuration from the --config flag, falling
// back to defaults, and applies flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config") //nolint:errcheck

	var cfg *config.Config
	if path == "" {
		defaults := config.Default()
		cfg = &defaults
	} else {
		loaded, err := config.Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if sentiment, _ := cmd.Flags().GetBool("sentiment"); sentiment { //nolint:errcheck
		cfg.Sentiment = true
	}

	return cfg, nil
}
