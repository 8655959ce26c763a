package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
)

func newStatsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print brain statistics",
		Long: `Print brain statistics: node and edge counts, nodes per category,
and lexicon size.

Examples:
  neuron stats
  neuron stats --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")

			g, lex, err := loadBrain(cfg)
			if err != nil {
				return err
			}

			counts := make(map[string]int)
			for _, n := range g.Nodes() {
				counts[string(n.Category)]++
			}

			if jsonOut {
				out := map[string]any{
					"nodes":         g.NodeCount(),
					"edges":         g.EdgeCount(),
					"nodes_by_kind": counts,
					"lexicon":       lex.Summary(),
				}
				return json.NewEncoder(os.Stdout).Encode(out)
			}

			fmt.Printf("graph: %s\n", g.Summary())
			keys := make([]string, 0, len(counts))
			for k := range counts {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				fmt.Printf("  %s: %d\n", k, counts[k])
			}
			fmt.Printf("lexicon: %s\n", lex.Summary())
			return nil
		},
	}
}
