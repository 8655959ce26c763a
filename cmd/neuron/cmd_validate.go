package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the brain files for structural problems",
		Long: `Validate the brain files for structural problems.

This command checks for:
  - Malformed node, edge and lexicon records
  - Duplicate node ids and invalid categories
  - Edges referencing unknown nodes
  - Graphs with no goal nodes

Examples:
  neuron validate
  neuron validate --graph data/graph.brain --lexicon data/lexicon.brain`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")

			var problems []string
			if _, _, err := loadBrain(cfg); err != nil {
				problems = splitProblems(err)
			}

			if jsonOut {
				out := map[string]any{
					"valid":    len(problems) == 0,
					"problems": problems,
				}
				if err := json.NewEncoder(os.Stdout).Encode(out); err != nil {
					return err
				}
			} else if len(problems) == 0 {
				fmt.Println("brain files are valid")
			} else {
				fmt.Printf("%d problem(s) found:\n", len(problems))
				for _, p := range problems {
					fmt.Printf("  - %s\n", p)
				}
			}

			if len(problems) > 0 {
				return errors.New("validation failed")
			}
			return nil
		},
	}
}

// splitProblems flattens a loader error into its per-line diagnostics.
func splitProblems(err error) []string {
	var problems []string
	for _, line := range strings.Split(err.Error(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			problems = append(problems, line)
		}
	}
	return problems
}
