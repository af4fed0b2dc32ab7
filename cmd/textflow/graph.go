package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"textflow/oracle"
	"textflow/pipeline"
)

var graphCmd = &cobra.Command{
	Use:   "graph",
	Short: "Print the pipeline graph as Mermaid flowchart text",
	RunE:  printGraph,
}

func init() {
	rootCmd.AddCommand(graphCmd)
}

func printGraph(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	// Rendering never invokes the oracle; a stub completer satisfies New.
	stub := oracle.CompleterFunc(func(context.Context, oracle.Request) (*oracle.Response, error) {
		return nil, errors.New("graph rendering does not execute nodes")
	})

	opts := []pipeline.Option{}
	if cfg.Sentiment {
		opts = append(opts, pipeline.WithSentiment())
	}

	analysisPipeline, err := pipeline.New(stub, opts...)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), analysisPipeline.Graph().Mermaid())
	return nil
}
