package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

func newSayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "say <text>",
		Short: "Send one utterance to the brain and print the reply",
		Long: `Send one utterance to the brain and print the reply.

Examples:
  neuron say "hello"
  neuron say "tell me about robots" --trace
  neuron say "hello" --json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			jsonOut, _ := cmd.Flags().GetBool("json")
			showTrace, _ := cmd.Flags().GetBool("trace")

			ctx := context.Background()
			session, cleanup, err := buildSession(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			input := strings.Join(args, " ")
			result, err := session.ProcessTurn(ctx, input)
			if err != nil {
				return fmt.Errorf("process turn: %w", err)
			}

			if jsonOut {
				out := map[string]any{
					"response": result.Response,
					"goal":     result.Goal,
					"turn":     result.Turn,
				}
				if showTrace {
					out["trace"] = result.Trace.Full()
				}
				return json.NewEncoder(os.Stdout).Encode(out)
			}

			fmt.Println(result.Response)
			if showTrace {
				fmt.Println(result.Trace.Full())
			}
			return nil
		},
	}

	cmd.Flags().Bool("trace", false, "Print the full thought trace")

	return cmd
}
