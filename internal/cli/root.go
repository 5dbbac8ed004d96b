// Package cli wires flags, config, and terminal detection into the reveal
// engine: full-screen TUI on a terminal, single-line animation with --plain,
// and the final text verbatim when stdout is not a terminal.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/texteffects/scramble/internal/config"
)

const sampleText = "The quick brown fox jumps over the lazy dog"

// Execute runs the CLI and returns the process exit code.
func Execute(version, commit, date string) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	root := newRootCmd(cfg, version, commit, date)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func newRootCmd(cfg *config.Config, version, commit, date string) *cobra.Command {
	opts := defaultOptions(cfg)

	cmd := &cobra.Command{
		Use:   "scramble [text...]",
		Short: "Reveal text through a scramble animation",
		Long: "scramble animates text by resolving it out of random glyphs.\n" +
			"With no text it animates a sample sentence; with --watch it\n" +
			"re-animates whenever the watched file changes.",
		Args:          cobra.ArbitraryArgs,
		Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := resolveText(args, opts.watch)
			if err != nil {
				return err
			}
			rcfg, err := buildRevealConfig(opts, text)
			if err != nil {
				return err
			}

			// Pipes get the final text; animation frames would corrupt them.
			if !term.IsTerminal(os.Stdout.Fd()) {
				fmt.Fprintln(cmd.OutOrStdout(), text)
				return nil
			}
			if opts.plain {
				return runPlain(cmd, rcfg, opts)
			}
			return runTUI(cfg, rcfg, opts)
		},
	}
	registerFlags(cmd, &opts)

	return cmd
}

// resolveText picks the initial animation text: arguments win, then the
// watched file's contents, then the sample sentence.
func resolveText(args []string, watchPath string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	if watchPath != "" {
		data, err := os.ReadFile(watchPath)
		if err != nil {
			return "", fmt.Errorf("read %s: %w", watchPath, err)
		}
		return strings.TrimRight(string(data), "\n"), nil
	}
	return sampleText, nil
}
