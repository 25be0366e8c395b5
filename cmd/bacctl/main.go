package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/yanqian/cocktail-bac/internal/domain/bac"
	"github.com/yanqian/cocktail-bac/internal/infra/summarystore"
	"github.com/yanqian/cocktail-bac/pkg/logger"
)

const (
	outputJSON = "json"
	outputText = "text"
)

// cli holds state shared by every subcommand of one root command.
type cli struct {
	logLevel string
	output   string
	logger   *slog.Logger
	svc      bac.Service
}

func newRootCmd() *cobra.Command {
	state := &cli{}
	root := &cobra.Command{
		Use:   "bacctl",
		Short: "Estimate blood alcohol concentration for a cocktail",
		Long: `Offline BAC calculator using the Widmark formula.

Ingredients are passed as --ingredient name:volumeMl:abv (or volumeMl:abv)
or loaded from a YAML/JSON recipe file with --file.

Examples:
  bacctl summary --ingredient Gin:45:0.4 --ingredient Tonic:120:0 --sex female --weight 60
  bacctl project --bac 0.08 --hours 2
  bacctl risk --bac 0.05`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			state.output = normalizeOutput(state.output)
			switch state.output {
			case outputJSON, outputText:
			default:
				return fmt.Errorf("unsupported output format %q", state.output)
			}
			state.logger = logger.NewWithWriter(cmd.ErrOrStderr(), state.logLevel).With("component", "bacctl")
			state.svc = bac.NewService(bac.Config{}, summarystore.NewMemoryStore(), nil, nil, state.logger)
			return nil
		},
	}

	pf := root.PersistentFlags()
	pf.StringVar(&state.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.StringVarP(&state.output, "output", "o", outputText, "output format (text, json)")

	root.AddCommand(
		newAlcoholCmd(state),
		newEstimateCmd(state),
		newProjectCmd(state),
		newRiskCmd(state),
		newSoberCmd(state),
		newSummaryCmd(state),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func normalizeOutput(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}
