package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "0.1.0-dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "neuron",
		Short: "Neuron - a transparent conversational brain",
		Long: `neuron runs a small conversational agent built from an explicit
activation-spreading graph instead of a statistical language model.

Every reply can be traced edge by edge: which concepts the input lit
up, how activation flowed, which goal won, and why each word was
chosen.`,
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("json", false, "Output as JSON (for tool consumption)")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default ~/.neuron/config.yaml)")
	rootCmd.PersistentFlags().String("graph", "", "Graph .brain file (overrides config)")
	rootCmd.PersistentFlags().String("lexicon", "", "Lexicon .brain file (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: info, debug, or trace (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(
		newVersionCmd(),
		newChatCmd(),
		newSayCmd(),
		newValidateCmd(),
		newStatsCmd(),
		newGraphCmd(),
		newMCPServerCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			jsonOut, _ := cmd.Flags().GetBool("json")
			if jsonOut {
				json.NewEncoder(os.Stdout).Encode(map[string]string{"version": version})
			} else {
				fmt.Printf("neuron version %s\n", version)
			}
		},
	}
}
