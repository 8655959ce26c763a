package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/mindloop/neuron/internal/mcp"
)

func newMCPServerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp-server",
		Short: "Run neuron as an MCP server over stdio",
		Long: `Run neuron as an MCP (Model Context Protocol) server over stdio.

The server exposes three tools:
  neuron_converse   send an utterance, get the reply and optional trace
  neuron_stats      brain and session statistics
  neuron_validate   structural validation of the loaded graph

Example client registration (Claude Code):
  claude mcp add neuron -- neuron mcp-server`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			ctx := context.Background()
			server, err := mcp.NewServer(ctx, &mcp.Config{
				Name:        "neuron",
				Version:     version,
				GraphPath:   cfg.Paths.Graph,
				LexiconPath: cfg.Paths.Lexicon,
				DBPath:      cfg.Memory.DBPath,
				Seed:        cfg.Generation.Seed,
			})
			if err != nil {
				return err
			}

			return server.Run(ctx)
		},
	}
}
