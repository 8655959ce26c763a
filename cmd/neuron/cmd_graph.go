package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mindloop/neuron/internal/visualization"
)

func newGraphCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Render the brain graph for visualization",
		Long: `Render the brain graph in DOT (Graphviz) or JSON format.

Examples:
  neuron graph                          # DOT to stdout
  neuron graph --format json
  neuron graph --output brain.dot
  neuron graph | dot -Tsvg -o brain.svg`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			output, _ := cmd.Flags().GetString("output")

			g, _, err := loadBrain(cfg)
			if err != nil {
				return err
			}

			var rendered []byte
			switch visualization.Format(format) {
			case visualization.FormatDOT:
				rendered = []byte(visualization.RenderDOT(g))
			case visualization.FormatJSON:
				rendered, err = json.MarshalIndent(visualization.RenderJSON(g), "", "  ")
				if err != nil {
					return fmt.Errorf("marshal graph: %w", err)
				}
				rendered = append(rendered, '\n')
			default:
				return fmt.Errorf("invalid format: %s (must be dot or json)", format)
			}

			if output != "" {
				if err := os.WriteFile(output, rendered, 0644); err != nil {
					return fmt.Errorf("write %s: %w", output, err)
				}
				fmt.Printf("wrote %s\n", output)
				return nil
			}

			os.Stdout.Write(rendered)
			return nil
		},
	}

	cmd.Flags().String("format", "dot", "Output format: dot or json")
	cmd.Flags().String("output", "", "Write to file instead of stdout")

	return cmd
}
