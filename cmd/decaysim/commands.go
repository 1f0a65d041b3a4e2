package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/decaysim/internal/analysis"
	"github.com/san-kum/decaysim/internal/catalogue"
	"github.com/san-kum/decaysim/internal/config"
	"github.com/san-kum/decaysim/internal/ensemble"
	"github.com/san-kum/decaysim/internal/export"
	"github.com/san-kum/decaysim/internal/metrics"
	"github.com/san-kum/decaysim/internal/optim"
	"github.com/san-kum/decaysim/internal/particle"
	"github.com/san-kum/decaysim/internal/storage"
	"github.com/san-kum/decaysim/internal/taxonomy"
	"github.com/san-kum/decaysim/internal/tui"
	"github.com/san-kum/decaysim/internal/viz"
)

func decayerOptions(rec *metrics.Recorder) []particle.Option {
	return []particle.Option{
		particle.WithMaxIterations(cfg.Engine.MaxIterations),
		particle.WithTolerance(cfg.Engine.Tolerance, cfg.Basis()),
		particle.WithMassTolerance(cfg.Engine.MassTolerance),
		particle.WithLogger(logger),
		particle.WithRecorder(rec),
	}
}

func newDecayer(rec *metrics.Recorder) *particle.Decayer {
	return particle.NewDecayer(append(decayerOptions(rec), particle.WithSeed(cfg.Engine.Seed))...)
}

func writeMetrics(rec *metrics.Recorder) error {
	if metricsFile == "" {
		return nil
	}
	if err := rec.WriteTextfile(metricsFile); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	logger.Info("metrics written", zap.String("path", metricsFile))
	return nil
}

func rosterName() string {
	switch {
	case preset != "":
		return preset
	case configFile != "":
		return "custom"
	}
	return "demo"
}

func roster() []config.ParticleSpec {
	if len(cfg.Particles) > 0 {
		return cfg.Particles
	}
	return catalogue.DefaultSeed()
}

func seedCatalogue(rec *metrics.Recorder) (*catalogue.Catalogue, catalogue.SeedResult) {
	cat := catalogue.New(catalogue.WithLogger(logger))
	return cat, cat.Seed(newDecayer(rec), roster())
}

func runCatalogue(cmd *cobra.Command, args []string) error {
	rec := metrics.NewRecorder()
	start := time.Now()
	cat, res := seedCatalogue(rec)
	elapsed := time.Since(start)
	r := viz.NewRenderer(cfg.Output.Theme)

	if !quiet {
		cat.Each(func(e catalogue.Entry) {
			fmt.Print(r.RenderTree(e.Particle))
		})
		fmt.Println()
	}
	for _, err := range res.Rejected {
		fmt.Printf("rejected: %v\n", err)
	}
	fmt.Println(r.RenderSummary(cat.Summary()))

	meta := storage.RunMetadata{
		Preset:         rosterName(),
		Seed:           cfg.Engine.Seed,
		MaxIterations:  cfg.Engine.MaxIterations,
		Tolerance:      cfg.Engine.Tolerance,
		ToleranceBasis: cfg.Basis().String(),
		Rejected:       len(res.Rejected),
		Channels:       analysis.ChannelFrequencies(res.Reports),
	}
	for _, rep := range res.Reports {
		rep.Each(func(s *particle.Report) {
			if s.Stable {
				return
			}
			meta.Decays++
			if !s.Redistribution.Converged {
				meta.Unconverged++
			}
			meta.Violations += len(s.Violations)
		})
	}
	fmt.Printf("decays: %d  unconverged: %d  violations: %d  (%v)\n", meta.Decays, meta.Unconverged, meta.Violations, elapsed)

	if !noSave {
		st := storage.New(cfg.Output.DataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(meta, cat)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s\n", runID)
	}
	return writeMetrics(rec)
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(cfg.Output.DataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tSEED\tROOTS\tDESC\tDECAYS\tUNCONV\tVIOL")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Seed,
			run.Roots,
			run.Descendants,
			run.Decays,
			run.Unconverged,
			run.Violations,
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, []storage.Row, error) {
	st := storage.New(cfg.Output.DataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	rows, err := st.LoadParticles(runID)
	if err != nil {
		return nil, nil, err
	}
	return meta, rows, nil
}

func showRun(cmd *cobra.Command, args []string) error {
	meta, rows, err := loadRun(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("time: %s\n", meta.Timestamp.Format(time.RFC3339))
	fmt.Printf("seed: %d  max iterations: %d  tolerance: %g (%s)\n", meta.Seed, meta.MaxIterations, meta.Tolerance, meta.ToleranceBasis)
	fmt.Printf("roots: %d  descendants: %d  rejected: %d\n", meta.Roots, meta.Descendants, meta.Rejected)
	fmt.Printf("root invariant mass: %.4f  descendant invariant mass: %.4f\n\n", meta.RootMass, meta.DescendantMass)

	for _, row := range rows {
		line := fmt.Sprintf("%s%s", strings.Repeat("  ", row.Depth), row.Type)
		if row.Channel != "" {
			line += " [" + row.Channel + "]"
		}
		fmt.Printf("%-48s E=%.3f p=(%.3f, %.3f, %.3f) q=%s\n", line, row.E, row.Px, row.Py, row.Pz, row.Charge)
	}

	if len(meta.Channels) > 0 {
		fmt.Println()
		fmt.Print(viz.NewRenderer(cfg.Output.Theme).RenderChannels(meta.Channels, meta.Decays))
	}
	return nil
}

func listTypes(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SPECIES\tFAMILY\tMASS (MeV)\tCHARGE\tSPIN\tDECAYS")
	for _, s := range taxonomy.All() {
		info := taxonomy.Info(s)
		decays := "no"
		if taxonomy.Unstable(s) {
			decays = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%.3f\t%s\t%.1f\t%s\n", info.Name, info.Family, info.Mass, info.Charge, info.Spin, decays)
	}
	return w.Flush()
}

func particleSpec(species string) config.ParticleSpec {
	typ := species
	if anti && !strings.HasPrefix(strings.ToLower(species), "anti") {
		typ = "Anti" + species
	}
	return config.ParticleSpec{Type: typ, Px: px, Py: py, Pz: pz, Borrowed: borrowed}
}

func decayOne(cmd *cobra.Command, args []string) error {
	p, err := catalogue.Build(particleSpec(args[0]))
	if err != nil {
		return err
	}
	rec := metrics.NewRecorder()
	rep := newDecayer(rec).Decay(p)

	r := viz.NewRenderer(cfg.Output.Theme)
	fmt.Print(r.RenderTree(p))
	fmt.Println()
	fmt.Print(r.RenderReport(rep))
	return writeMetrics(rec)
}

func copyDemo(cmd *cobra.Command, args []string) error {
	species := "ZBoson"
	if len(args) > 0 {
		species = args[0]
	}
	p, err := catalogue.Build(particleSpec(species))
	if err != nil {
		return err
	}
	d := newDecayer(metrics.NewRecorder())
	d.Decay(p)
	r := viz.NewRenderer(cfg.Output.Theme)

	deep := p.Clone(true)
	fmt.Println("original:")
	fmt.Print(r.RenderTree(p))
	fmt.Println("deep copy:")
	fmt.Print(r.RenderTree(deep))

	if !deep.Stable() {
		d.Redecay(deep)
		fmt.Println("deep copy after re-decay:")
		fmt.Print(r.RenderTree(deep))
		fmt.Println("original is unchanged:")
		fmt.Print(r.RenderTree(p))
	}
	fmt.Println("copy without products:")
	fmt.Println(r.Line(p.Clone(false)))
	return nil
}

func runEnsemble(cmd *cobra.Command, args []string) error {
	rec := metrics.NewRecorder()
	start := time.Now()
	res, err := ensemble.Run(cmd.Context(), ensemble.Params{
		Spec:      particleSpec(args[0]),
		Runs:      runs,
		SeedStart: cfg.Engine.Seed,
		Workers:   workers,
		Options:   decayerOptions(rec),
	})
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	r := viz.NewRenderer(cfg.Output.Theme)
	fmt.Printf("%d decays of %s in %v\n\n", res.Runs, args[0], elapsed)
	fmt.Print(r.RenderChannels(res.Primary, res.Runs))
	fmt.Printf("\nconverged %s %.1f%%\n", r.ProgressBar(res.ConvergenceRate(), 20), res.ConvergenceRate()*100)
	fmt.Printf("conservation violations: %d\n\n", res.Violations)
	fmt.Println(r.RenderSpectrum(analysis.EnergySpectrum(res.LeafEnergies, bins), "final-state energy (MeV)"))
	return writeMetrics(rec)
}

func runSweep(cmd *cobra.Command, args []string) error {
	g := optim.NewGridSearch(sweepIterations, sweepTolerances, cfg.Basis())
	points, best, err := g.Search(cmd.Context(), ensemble.Params{
		Spec:      particleSpec(args[0]),
		Runs:      runs,
		SeedStart: cfg.Engine.Seed,
		Workers:   workers,
		Options:   []particle.Option{particle.WithLogger(logger), particle.WithMassTolerance(cfg.Engine.MassTolerance)},
	})
	if err != nil {
		return err
	}

	r := viz.NewRenderer(cfg.Output.Theme)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MAX ITER\tTOLERANCE\tCONVERGED\t\tVIOLATIONS")
	for _, p := range points {
		fmt.Fprintf(w, "%d\t%g\t%.1f%%\t%s\t%d\n", p.MaxIterations, p.Tolerance, p.Rate*100, r.ProgressBar(p.Rate, 20), p.Violations)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\nbest: max_iterations=%d tolerance=%g (%.1f%% converged)\n", best.MaxIterations, best.Tolerance, best.Rate*100)
	return nil
}

func spectrumRun(cmd *cobra.Command, args []string) error {
	meta, rows, err := loadRun(args[0])
	if err != nil {
		return err
	}
	leaves := storage.Leaves(rows)
	energies := make([]float64, len(leaves))
	for i, l := range leaves {
		energies[i] = l.E
	}

	fmt.Printf("run: %s  final-state particles: %d\n\n", meta.ID, len(leaves))
	fmt.Println(viz.NewRenderer(cfg.Output.Theme).RenderSpectrum(analysis.EnergySpectrum(energies, bins), "final-state energy (MeV)"))
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, rows, err := loadRun(args[0])
	if err != nil {
		return err
	}
	path := jsonOut
	if path == "" {
		path = meta.ID + ".json"
	}
	if err := storage.ExportJSON(path, meta, rows); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func exportSQLite(cmd *cobra.Command, args []string) error {
	meta, rows, err := loadRun(args[0])
	if err != nil {
		return err
	}
	if err := storage.ExportSQLite(cmd.Context(), dbPath, meta, rows); err != nil {
		return err
	}
	fmt.Printf("exported %d particles to %s\n", len(rows), dbPath)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	meta, rows, err := loadRun(args[0])
	if err != nil {
		return err
	}
	path := svgOut
	if path == "" {
		path = meta.ID + ".svg"
	}
	svg := export.RowsToSVG(rows, viz.GetTheme(cfg.Output.Theme))
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tPARTICLES\tDECAYED")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		decayed := 0
		for _, s := range p.Particles {
			if s.Decay {
				decayed++
			}
		}
		fmt.Fprintf(w, "%s\t%d\t%d\n", name, len(p.Particles), decayed)
	}
	return w.Flush()
}

func runTUI(cmd *cobra.Command, args []string) error {
	// the tui owns the screen; route logs away from it
	logger = zap.NewNop()
	rec := metrics.NewRecorder()
	cat, _ := seedCatalogue(rec)
	return tui.Run(cat, newDecayer(rec), cfg.Output.Theme)
}
