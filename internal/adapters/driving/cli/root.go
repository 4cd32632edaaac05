// Package cli provides the saturate command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ase-lab/saturate/internal/core/domain"
	"github.com/ase-lab/saturate/internal/core/ports/driven"
	"github.com/ase-lab/saturate/internal/core/ports/driving"
	"github.com/ase-lab/saturate/internal/logger"
)

// version is set at build time with -ldflags.
var version = "dev"

// pingTimeout bounds the provider check run by --ping.
const pingTimeout = 15 * time.Second

// RunConfig holds the dependencies of the analysis command.
type RunConfig struct {
	// Settings returns the settings service backed by the config in dir.
	Settings func(dir string) (driving.SettingsService, error)

	// Build assembles a batch for resolved settings. The returned closer
	// releases the session store.
	Build func(ctx context.Context, settings domain.Settings, progress driven.ProgressReporter) (driving.BatchRunner, io.Closer, error)

	// Ping checks that the agent provider is reachable.
	Ping func(ctx context.Context, settings domain.AgentSettings) error
}

// runConfig holds the current command configuration.
var runConfig *RunConfig

// SetRunConfig sets the dependencies for the analysis command.
func SetRunConfig(config *RunConfig) {
	runConfig = config
}

// options holds flag values for one command instance.
type options struct {
	configDir     string
	inputDir      string
	selectionRate float64
	seed          uint64
	maxLength     int
	sessionID     string
	resultsPath   string
	verbose       bool
	ping          bool
}

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "saturate",
		Short: "Run a saturation analysis over earthquake documents",
		Long: `Saturate reads the PDF and PNG documents in the input folder, samples a
share of them, splits each into paragraph fragments and submits the fragments
in order to a qualitative analyst agent sharing one persistent session.

Each analysed document is appended to the results file. Re-running with the
same session id continues the conversation where the last run stopped.`,
		Version:       version,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalysis(cmd, opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.configDir, "config-dir", ".", "Directory holding config.toml and prompts/")
	flags.StringVarP(&opts.inputDir, "input-dir", "i", "",
		"Folder scanned for "+strings.Join(domain.SupportedExtensions(), " and ")+" documents")
	flags.Float64Var(&opts.selectionRate, "selection-rate", 0, "Probability in [0,1] that a document is analysed")
	flags.Uint64Var(&opts.seed, "seed", 0, "Seed for the selection draw (0 picks one at random)")
	flags.IntVar(&opts.maxLength, "max-length", 0, "Maximum fragment length in characters")
	flags.StringVar(&opts.sessionID, "session-id", "", "Persistent session to continue")
	flags.StringVarP(&opts.resultsPath, "results", "o", "", "Append-only results file")
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Print diagnostics and the run summary")
	flags.BoolVar(&opts.ping, "ping", false, "Check the agent provider before analysing")

	return cmd
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func runAnalysis(cmd *cobra.Command, opts *options) error {
	if runConfig == nil {
		return errors.New("analysis not configured")
	}
	if opts.verbose {
		logger.SetVerbose(true)
	}

	settingsService, err := runConfig.Settings(opts.configDir)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	applyFlags(cmd, opts, settings)
	if err := settings.Validate(); err != nil {
		return err
	}

	ctx := cmd.Context()

	if opts.ping && runConfig.Ping != nil {
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		err := runConfig.Ping(pingCtx, settings.Agent)
		cancel()
		if err != nil {
			return fmt.Errorf("provider check failed: %w", err)
		}
		cmd.Printf("Connected to %s.\n", settings.Agent.Provider.Description())
	}

	runner, closer, err := runConfig.Build(ctx, *settings, NewProgress(cmd.ErrOrStderr()))
	if err != nil {
		return err
	}
	defer func() {
		if err := closer.Close(); err != nil {
			logger.Warn("Failed to close session store: %v", err)
		}
	}()

	report, err := runner.Run(ctx)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	styles := DefaultStyles()
	if report.Empty() {
		cmd.Println(styles.Warning.Render(fmt.Sprintf("No files found in '%s'.", settings.Batch.InputDir)))
		return nil
	}

	cmd.Println(styles.Success.Render(
		fmt.Sprintf("Analysis complete. Results saved to '%s'.", settings.Batch.ResultsPath)))
	if logger.IsVerbose() {
		printReport(cmd, styles, report)
	}
	return nil
}

// applyFlags overrides settings with explicitly set flags.
func applyFlags(cmd *cobra.Command, opts *options, settings *domain.Settings) {
	flags := cmd.Flags()
	if flags.Changed("input-dir") {
		settings.Batch.InputDir = opts.inputDir
	}
	if flags.Changed("selection-rate") {
		settings.Batch.SelectionRate = opts.selectionRate
	}
	if flags.Changed("seed") {
		settings.Batch.Seed = opts.seed
	}
	if flags.Changed("max-length") {
		settings.Chunk.MaxLength = opts.maxLength
	}
	if flags.Changed("session-id") {
		settings.Session.ID = opts.sessionID
	}
	if flags.Changed("results") {
		settings.Batch.ResultsPath = opts.resultsPath
	}
}

func printReport(cmd *cobra.Command, styles *Styles, report *domain.BatchReport) {
	cmd.Println()
	cmd.Println(styles.Title.Render("Run " + report.RunID))
	rows := []struct {
		label string
		value int
	}{
		{"Discovered", report.Discovered},
		{"Selected", report.Selected},
		{"Skipped by selection", report.SkippedBySelection()},
		{"Skipped empty", report.SkippedEmpty},
		{"Analysed", report.Analysed},
		{"Fragments", report.Fragments},
		{"Failed fragments", report.FailedFragments},
	}
	for _, row := range rows {
		cmd.Printf("  %s %d\n", styles.Label.Render(fmt.Sprintf("%-21s", row.label+":")), row.value)
	}
}
