package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mindloop/neuron/internal/engine"
)

func newChatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive conversation with the brain",
		Long: `Start an interactive conversation with the brain.

Special commands inside the session:
  exit, quit   leave the conversation
  debug        toggle the full thought trace
  showbrain    print brain and session statistics
  profile      print current modulator levels
  seed N       re-seed the generator for reproducible replies`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			noTrace, _ := cmd.Flags().GetBool("no-trace")

			ctx := context.Background()
			session, cleanup, err := buildSession(ctx, cfg)
			if err != nil {
				return err
			}
			defer cleanup()

			return runChatLoop(ctx, session, os.Stdin, os.Stdout, !noTrace)
		},
	}

	cmd.Flags().Bool("no-trace", false, "Suppress the per-turn thought trace")

	return cmd
}

// runChatLoop drives the REPL. It is split from the command so tests can
// feed scripted input.
func runChatLoop(ctx context.Context, session *engine.Session, in io.Reader, out io.Writer, showTrace bool) error {
	g := session.Graph()
	fmt.Fprintf(out, "neuron ready: %s\n", g.Summary())
	fmt.Fprintln(out, "type 'exit' to leave, 'debug' to toggle the full trace")

	debug := false
	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\nyou> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}

		switch {
		case input == "exit" || input == "quit":
			fmt.Fprintln(out, "goodbye")
			return nil

		case input == "debug":
			debug = !debug
			fmt.Fprintf(out, "debug trace %s\n", onOff(debug))
			continue

		case input == "showbrain":
			printBrainStats(ctx, out, session)
			continue

		case input == "profile":
			printModulators(out, session)
			continue

		case strings.HasPrefix(input, "seed "):
			n, err := strconv.ParseInt(strings.TrimSpace(strings.TrimPrefix(input, "seed ")), 10, 64)
			if err != nil {
				fmt.Fprintf(out, "bad seed: %v\n", err)
				continue
			}
			session.SetSeed(n)
			fmt.Fprintf(out, "generator re-seeded with %d\n", n)
			continue
		}

		result, err := session.ProcessTurn(ctx, input)
		if err != nil {
			return fmt.Errorf("process turn: %w", err)
		}

		fmt.Fprintf(out, "neuron> %s\n", result.Response)
		if showTrace {
			if debug {
				fmt.Fprintln(out, result.Trace.Full())
			} else {
				fmt.Fprintln(out, result.Trace.Compact())
			}
		}
	}
	return scanner.Err()
}

func printBrainStats(ctx context.Context, out io.Writer, session *engine.Session) {
	g := session.Graph()
	fmt.Fprintf(out, "graph: %s\n", g.Summary())

	counts := make(map[string]int)
	for _, n := range g.Nodes() {
		counts[string(n.Category)]++
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "  %s: %d\n", k, counts[k])
	}

	fmt.Fprintf(out, "turns: %d\n", session.Memory().TurnCount())
	if eps, err := session.Memory().EpisodeCount(ctx); err == nil {
		fmt.Fprintf(out, "episodes: %d\n", eps)
	}
	fmt.Fprintf(out, "short-term window: %d exchanges\n", len(session.Memory().ShortTerm()))
}

func printModulators(out io.Writer, session *engine.Session) {
	mods := session.Modulators()
	keys := make([]string, 0, len(mods))
	for k := range mods {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(out, "%s: %.2f\n", k, mods[k])
	}
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
