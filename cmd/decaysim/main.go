package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/san-kum/decaysim/internal/config"
)

var (
	dataDir       string
	configFile    string
	preset        string
	seed          int64
	maxIterations int
	tolerance     float64
	basis         string
	massTolerance float64
	theme         string
	verbose       bool
	metricsFile   string

	// particle flags for decay, ensemble and copy-demo
	px, py, pz float64
	anti       bool
	borrowed   float64

	runs    int
	workers int
	bins    int
	noSave  bool
	quiet   bool

	sweepIterations []int
	sweepTolerances []float64

	jsonOut string
	dbPath  string
	svgOut  string
)

var (
	logger *zap.Logger
	cfg    *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "decaysim",
		Short: "particle decay catalogue simulator",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = loadConfig(cmd)
			if err != nil {
				return err
			}
			resolveSeed(cfg, time.Now)
			logger, err = newLogger(cfg.Output.LogLevel)
			return err
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if logger != nil {
				_ = logger.Sync()
			}
		},
		RunE: runTUI,
	}

	globalFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "seed the catalogue, decay flagged particles and save the run",
		Args:  cobra.NoArgs,
		RunE:  runCatalogue,
	}
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	runCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the summary")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	typesCmd := &cobra.Command{
		Use:   "types",
		Short: "list particle species",
		Args:  cobra.NoArgs,
		RunE:  listTypes,
	}

	decayCmd := &cobra.Command{
		Use:   "decay [species]",
		Short: "decay a single particle",
		Args:  cobra.ExactArgs(1),
		RunE:  decayOne,
	}
	particleFlags(decayCmd)

	copyCmd := &cobra.Command{
		Use:   "copy-demo [species]",
		Short: "show deep and shallow copies of a decayed particle",
		Args:  cobra.MaximumNArgs(1),
		RunE:  copyDemo,
	}
	particleFlags(copyCmd)

	ensembleCmd := &cobra.Command{
		Use:   "ensemble [species]",
		Short: "decay many copies of one particle in parallel",
		Args:  cobra.ExactArgs(1),
		RunE:  runEnsemble,
	}
	particleFlags(ensembleCmd)
	ensembleCmd.Flags().IntVar(&runs, "runs", 1000, "number of decays")
	ensembleCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	ensembleCmd.Flags().IntVar(&bins, "bins", 20, "spectrum bins")

	sweepCmd := &cobra.Command{
		Use:   "sweep [species]",
		Short: "grid search redistribution settings by convergence rate",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	particleFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&runs, "runs", 200, "decays per grid point")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "parallel workers (0 = GOMAXPROCS)")
	sweepCmd.Flags().IntSliceVar(&sweepIterations, "iterations", []int{1000, 100000, 1000000}, "iteration caps to try")
	sweepCmd.Flags().Float64SliceVar(&sweepTolerances, "tolerances", []float64{1e-2, 1e-3}, "tolerances to try")

	spectrumCmd := &cobra.Command{
		Use:   "spectrum [run_id]",
		Short: "final-state energy spectrum of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  spectrumRun,
	}
	spectrumCmd.Flags().IntVar(&bins, "bins", 20, "spectrum bins")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&jsonOut, "out", "o", "", "output file (default <run_id>.json)")

	exportSQLiteCmd := &cobra.Command{
		Use:   "export-sqlite [run_id]",
		Short: "export run data to a SQLite database",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSQLite,
	}
	exportSQLiteCmd.Flags().StringVarP(&dbPath, "out", "o", "runs.db", "database file")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "export the decay trees of a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVarP(&svgOut, "out", "o", "", "output file (default <run_id>.svg)")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "browse the catalogue interactively",
		Args:  cobra.NoArgs,
		RunE:  runTUI,
	}

	rootCmd.AddCommand(runCmd, listCmd, showCmd, typesCmd, decayCmd, copyCmd, ensembleCmd, sweepCmd, spectrumCmd,
		exportJSONCmd, exportSQLiteCmd, exportSVGCmd, presetsCmd, tuiCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func globalFlags(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", config.DefaultDataDir, "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	pf.IntVar(&maxIterations, "max-iterations", config.DefaultMaxIterations, "redistribution iteration cap")
	pf.Float64Var(&tolerance, "tolerance", config.DefaultTolerance, "relative redistribution tolerance")
	pf.StringVar(&basis, "basis", "target", "tolerance basis: target or assigned")
	pf.Float64Var(&massTolerance, "mass-tolerance", config.DefaultMassTolerance, "invariant mass tolerance")
	pf.StringVar(&theme, "theme", config.DefaultTheme, "color theme")
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&metricsFile, "metrics", "", "write prometheus metrics to this file on exit")
}

func particleFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&px, "px", 0, "momentum x (MeV)")
	cmd.Flags().Float64Var(&py, "py", 0, "momentum y (MeV)")
	cmd.Flags().Float64Var(&pz, "pz", 0, "momentum z (MeV)")
	cmd.Flags().BoolVar(&anti, "anti", false, "antiparticle")
	cmd.Flags().Float64Var(&borrowed, "borrowed", 0, "borrowed energy for virtual bosons (MeV)")
}

// loadConfig layers preset, config file, DECAYSIM_* environment and
// explicitly set flags, in that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	c := config.DefaultConfig()
	if preset != "" {
		c = config.GetPreset(preset)
		if c == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if len(loaded.Particles) == 0 {
			loaded.Particles = c.Particles
		}
		c = loaded
	}
	if err := c.ApplyEnv(); err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("seed") {
		c.Engine.Seed = seed
	}
	if flags.Changed("max-iterations") {
		c.Engine.MaxIterations = maxIterations
	}
	if flags.Changed("tolerance") {
		c.Engine.Tolerance = tolerance
	}
	if flags.Changed("basis") {
		c.Engine.ToleranceBasis = basis
	}
	if flags.Changed("mass-tolerance") {
		c.Engine.MassTolerance = massTolerance
	}
	if flags.Changed("theme") {
		c.Output.Theme = theme
	}
	if flags.Changed("data") || c.Output.DataDir == "" {
		c.Output.DataDir = dataDir
	}
	if verbose {
		c.Output.LogLevel = "debug"
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// resolveSeed replaces a time-based seed with the concrete value so the
// run that gets saved can be reproduced with --seed.
func resolveSeed(c *config.Config, now func() time.Time) {
	if c.Engine.Seed == 0 {
		c.Engine.Seed = now().UnixNano()
	}
}

func newLogger(level string) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc.Level = zap.NewAtomicLevelAt(lvl)
	l, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return l, nil
}
