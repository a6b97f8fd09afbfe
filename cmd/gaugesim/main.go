package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/gaugesim/internal/analysis"
	"github.com/san-kum/gaugesim/internal/automation"
	"github.com/san-kum/gaugesim/internal/config"
	"github.com/san-kum/gaugesim/internal/experiment"
	"github.com/san-kum/gaugesim/internal/export"
	"github.com/san-kum/gaugesim/internal/optim"
	"github.com/san-kum/gaugesim/internal/sim"
	"github.com/san-kum/gaugesim/internal/storage"
	"github.com/san-kum/gaugesim/internal/telemetry"
	"github.com/san-kum/gaugesim/internal/viz"
)

var (
	dataDir     string
	logLevel    string
	metricsAddr string

	configFile string
	steps      int
	solver     string
	seed       int64
	workers    int
	noSave     bool
	profileOut string
	profileAx  int

	metricNames    []string
	analyzeMetrics []string
	benchSteps     int
	phaseAxes      string
	outPath        string
	sweepParams    []string
	sweepMetric    string

	logger *slog.Logger
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "gaugesim",
		Short:        "classical Yang-Mills lattice simulations with colored point charges",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var level slog.Level
			if err := level.UnmarshalText([]byte(logLevel)); err != nil {
				return fmt.Errorf("invalid log level %q: %w", logLevel, err)
			}
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
			slog.SetDefault(logger)
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gaugesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&metricsAddr, "metrics-addr", "", "serve prometheus metrics on this address while running")

	runCmd := &cobra.Command{
		Use:   "run [preset]",
		Short: "run a simulation from a preset or a config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&profileOut, "profile", "", "write the final field energy profile to this image")
	runCmd.Flags().IntVar(&profileAx, "profile-axis", 0, "axis of the energy profile")

	liveCmd := &cobra.Command{
		Use:   "live [preset]",
		Short: "run a simulation with the terminal live view",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addRunFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot stored metric series in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringSliceVar(&metricNames, "metric", nil, "metrics to plot (default all)")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "summary statistics and spectrum of a stored metric",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().StringSliceVar(&analyzeMetrics, "metric", []string{"total_energy"}, "metrics to analyze")
	analyzeCmd.Flags().StringVar(&phaseAxes, "phase", "", "draw a phase portrait of two metrics, e.g. electric_energy,magnetic_energy")

	exportPNGCmd := &cobra.Command{
		Use:   "export-png [run_id]",
		Short: "render stored metric series to an image",
		Args:  cobra.ExactArgs(1),
		RunE:  exportPNG,
	}
	exportPNGCmd.Flags().StringSliceVar(&metricNames, "metric", nil, "metrics to draw (default all)")
	exportPNGCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default <run_id>.png)")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "print a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in presets",
		RunE:  listPresets,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [preset]",
		Short: "measure step throughput of both field solvers",
		Args:  cobra.MaximumNArgs(1),
		RunE:  bench,
	}
	benchCmd.Flags().IntVar(&benchSteps, "steps", 20, "steps per measurement")
	benchCmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = all CPUs)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run a batch of simulations described in a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep [preset]",
		Short: "grid search over configuration parameters",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	sweepCmd.Flags().StringArrayVar(&sweepParams, "param", nil, "parameter and values, e.g. dt=0.25,0.5 (repeatable)")
	sweepCmd.Flags().StringVar(&sweepMetric, "metric", "energy_drift", "metric to minimize")
	sweepCmd.Flags().IntVar(&steps, "steps", 0, "steps per point (default from config)")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, analyzeCmd, exportPNGCmd, exportJSONCmd, presetsCmd, benchCmd, scenarioCmd, sweepCmd)

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().IntVar(&steps, "steps", 0, "number of steps (default from config)")
	cmd.Flags().StringVar(&solver, "solver", "", "field solver (leapfrog, yangmills)")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for generated charges (default from config)")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker goroutines (0 = all CPUs)")
	cmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
}

// loadConfig resolves the configuration from --config or a preset name and
// applies command line overrides.
func loadConfig(args []string) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case configFile != "":
		c, err := config.Load(configFile)
		if err != nil {
			return nil, err
		}
		cfg = c
	case len(args) == 1:
		cfg = config.GetPreset(args[0])
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset %q (available: %s)", args[0], strings.Join(config.ListPresets(), ", "))
		}
	default:
		cfg = config.GetPreset("sheet")
	}

	if steps > 0 {
		cfg.Steps = steps
	}
	if solver != "" {
		cfg.Solver = solver
	}
	if seed != 0 {
		cfg.Seed = seed
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	return cfg, cfg.Validate()
}

// buildExperiment wires logging and, when requested, the metrics endpoint.
// The returned stop function shuts the endpoint down.
func buildExperiment(ctx context.Context, cfg *config.Config) (*experiment.Experiment, func(), error) {
	opts := []experiment.Option{experiment.WithLogger(logger.With("run", cfg.Name))}

	stop := func() {}
	if metricsAddr != "" {
		obs := telemetry.New(cfg.Name)
		opts = append(opts, experiment.WithObserver(obs))

		serveCtx, cancel := context.WithCancel(ctx)
		done := make(chan struct{})
		go func() {
			defer close(done)
			if err := telemetry.Serve(serveCtx, metricsAddr, obs.Handler(), logger); err != nil {
				logger.Error("metrics endpoint failed", "addr", metricsAddr, "error", err)
			}
		}()
		stop = func() {
			cancel()
			<-done
		}
	}

	e, err := experiment.New(cfg, opts...)
	if err != nil {
		stop()
		return nil, nil, err
	}
	return e, stop, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	e, stop, err := buildExperiment(ctx, cfg)
	if err != nil {
		return err
	}
	defer stop()

	result, runErr := e.Run(ctx, cfg.Steps)
	if result == nil {
		return runErr
	}
	if runErr != nil {
		logger.Warn("run stopped early", "error", runErr)
	}

	printResult(cfg, result)

	if profileOut != "" {
		profile, err := analysis.EnergyProfile(e.Simulation(), profileAx)
		if err != nil {
			return err
		}
		p, err := export.ProfilePlot(profile, e.Simulation().Spacing(), fmt.Sprintf("%s: field energy at t=%.2f", cfg.Name, result.Time))
		if err != nil {
			return err
		}
		if err := export.SavePNG(p, profileOut, 0, 0); err != nil {
			return err
		}
		fmt.Printf("profile: %s\n", profileOut)
	}

	if err := save(cfg, result); err != nil {
		return err
	}
	// A canceled run is still stored; only divergence is reported as failure.
	if errors.Is(runErr, sim.ErrCanceled) {
		return nil
	}
	return runErr
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// The live view owns the terminal, so logs are dropped below warnings.
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	e, stop, err := buildExperiment(ctx, cfg)
	if err != nil {
		return err
	}
	defer stop()

	if err := e.Setup(); err != nil {
		return err
	}

	start := time.Now()
	final, err := tea.NewProgram(viz.NewModel(e, cfg.Name, cfg.Steps), tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}

	result := e.Result(time.Since(start))
	printResult(cfg, result)
	if err := save(cfg, result); err != nil {
		return err
	}
	if m, ok := final.(viz.Model); ok {
		return m.Err()
	}
	return nil
}

func save(cfg *config.Config, result *experiment.Result) error {
	if noSave {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg, result)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun saved: %s\n", runID)
	return nil
}

func printResult(cfg *config.Config, result *experiment.Result) {
	fmt.Printf("%s: %d steps to t=%.2f in %v\n", cfg.Name, result.Steps, result.Time, result.Elapsed.Round(time.Millisecond))
	fmt.Printf("particles: %d (removed %d)\n\n", result.Particles, result.Removed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tFINAL")
	for _, name := range result.Series.Names {
		fmt.Fprintf(w, "%s\t%.6g\n", name, result.Metrics[name])
	}
	w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSOLVER\tCELLS\tCOLORS\tSTEPS\tPARTICLES\tREMOVED")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%v\t%d\t%d\t%d\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Solver,
			run.Cells,
			run.Colors,
			run.Steps,
			run.Particles,
			run.Removed,
		)
	}
	return w.Flush()
}

func loadRun(runID string) (*storage.RunMetadata, *experiment.Series, error) {
	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return nil, nil, err
	}
	if series.Len() == 0 {
		return nil, nil, fmt.Errorf("run %s has no samples", runID)
	}
	return meta, series, nil
}

func selectedMetrics(series *experiment.Series) ([]string, error) {
	if len(metricNames) == 0 {
		return series.Names, nil
	}
	for _, name := range metricNames {
		if series.Column(name) == nil {
			return nil, fmt.Errorf("unknown metric %q (recorded: %s)", name, strings.Join(series.Names, ", "))
		}
	}
	return metricNames, nil
}

func plotRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	names, err := selectedMetrics(series)
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", series.Len())
	for _, name := range names {
		graph := asciigraph.Plot(series.Column(name),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(name+" vs step"),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	metricNames = analyzeMetrics
	names, err := selectedMetrics(series)
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n\n", meta.ID)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tMEAN\tSTD\tMIN\tMAX\tDRIFT\tDOMINANT FREQ")
	for _, name := range names {
		col := series.Column(name)
		s := analysis.Summarize(col)
		freq, _ := analysis.DominantFrequency(col, meta.Dt)
		fmt.Fprintf(w, "%s\t%.6g\t%.3g\t%.6g\t%.6g\t%.3g\t%.4g\n", name, s.Mean, s.Std, s.Min, s.Max, s.Drift, freq)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(names) == 1 {
		ps := analysis.PowerSpectrum(series.Column(names[0]))
		if len(ps) > 2 {
			fmt.Println()
			fmt.Println(asciigraph.Plot(ps[1:],
				asciigraph.Height(12),
				asciigraph.Width(80),
				asciigraph.Caption("power spectrum of "+names[0]),
			))
		}
	}

	if phaseAxes != "" {
		axes := strings.Split(phaseAxes, ",")
		if len(axes) != 2 {
			return fmt.Errorf("--phase needs two metrics separated by a comma, got %q", phaseAxes)
		}
		x, y := series.Column(axes[0]), series.Column(axes[1])
		if x == nil || y == nil {
			return fmt.Errorf("unknown metric in %q", phaseAxes)
		}
		portrait, err := analysis.NewPhasePortrait(axes[0], x, axes[1], y)
		if err != nil {
			return err
		}
		fmt.Println()
		fmt.Print(portrait.Render(70, 20))
	}
	return nil
}

func exportPNG(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	names, err := selectedMetrics(series)
	if err != nil {
		return err
	}

	p, err := export.SeriesPlot(series, meta.ID, names...)
	if err != nil {
		return err
	}
	path := outPath
	if path == "" {
		path = meta.ID + ".png"
	}
	if err := export.SavePNG(p, path, 0, 0); err != nil {
		return err
	}
	fmt.Printf("exported to %s\n", path)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, series, err := loadRun(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, series)
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tCELLS\tCOLORS\tSOLVER\tSTEPS\tSHEETS\tPARTICLES\tPULSES")
	for _, name := range config.ListPresets() {
		p := config.Presets[name]
		fmt.Fprintf(w, "%s\t%v\t%d\t%s\t%d\t%d\t%d\t%d\n",
			name, p.Grid.Cells, p.Grid.Colors, p.Solver, p.Steps,
			len(p.Sheets), len(p.Particles), len(p.Pulses))
	}
	return w.Flush()
}

func bench(cmd *cobra.Command, args []string) error {
	name := "collision"
	if len(args) == 1 {
		name = args[0]
	}
	base := config.GetPreset(name)
	if base == nil {
		return fmt.Errorf("unknown preset %q", name)
	}

	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	fmt.Printf("benchmarking %s, %d steps\n\n", name, benchSteps)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SOLVER\tCELLS\tSETUP\tSTEPS/SEC\tCELL UPDATES/SEC")

	for _, s := range experiment.NewRegistry().ListSolvers() {
		cfg := *base
		cfg.Solver = s
		cfg.Workers = workers

		start := time.Now()
		e, err := experiment.New(&cfg, experiment.WithLogger(logger))
		if err != nil {
			return err
		}
		if err := e.Setup(); err != nil {
			return err
		}
		setup := time.Since(start)

		result, err := e.Run(cmd.Context(), benchSteps)
		if err != nil {
			return err
		}
		cells := e.Simulation().Grid.TotalCells()
		rate := float64(result.Steps) / result.Elapsed.Seconds()
		fmt.Fprintf(w, "%s\t%d\t%v\t%.1f\t%.3g\n", s, cells, setup.Round(time.Millisecond), rate, rate*float64(cells))
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	var st *storage.Store
	if !noSave {
		st = storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	outcomes, err := automation.RunScenario(ctx, sc, st, logger)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tRUN\tSTEPS\tTOTAL ENERGY\tGAUSS VIOLATION")
	for _, o := range outcomes {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.6g\t%.3g\n", o.Name, o.RunID, o.Result.Steps,
			o.Result.Metrics["total_energy"], o.Result.Metrics["gauss_violation"])
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

// parseSweepParam splits "name=v1,v2,..." into the name and its values.
func parseSweepParam(s string) (string, []float64, error) {
	name, list, ok := strings.Cut(s, "=")
	if !ok || name == "" || list == "" {
		return "", nil, fmt.Errorf("invalid --param %q, want name=v1,v2", s)
	}
	var values []float64
	for _, f := range strings.Split(list, ",") {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return "", nil, fmt.Errorf("--param %s: %w", name, err)
		}
		values = append(values, v)
	}
	return name, values, nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(args)
	if err != nil {
		return err
	}
	if len(sweepParams) == 0 {
		return fmt.Errorf("no --param given (available: %s)", strings.Join(optim.ParameterNames(), ", "))
	}

	names := make([]string, 0, len(sweepParams))
	ranges := make([][]float64, 0, len(sweepParams))
	for _, p := range sweepParams {
		name, values, err := parseSweepParam(p)
		if err != nil {
			return err
		}
		names = append(names, name)
		ranges = append(ranges, values)
	}
	gs, err := optim.NewGridSearch(names, ranges)
	if err != nil {
		return err
	}

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	best, evals, err := gs.Search(ctx, cfg, cfg.Steps, sweepMetric)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\t%s\n", strings.ToUpper(strings.Join(names, "\t")), strings.ToUpper(sweepMetric))
	for _, e := range evals {
		cols := make([]string, len(names))
		for i, n := range names {
			cols[i] = strconv.FormatFloat(e.Params[n], 'g', -1, 64)
		}
		val := fmt.Sprintf("%.6g", e.Value)
		if e.Err != nil {
			val = "error: " + e.Err.Error()
		}
		fmt.Fprintf(w, "%s\t%s\n", strings.Join(cols, "\t"), val)
	}
	if ferr := w.Flush(); ferr != nil {
		return ferr
	}
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(best.Params))
	for k := range best.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = fmt.Sprintf("%s=%g", k, best.Params[k])
	}
	fmt.Printf("\nbest: %s (%s = %.6g)\n", strings.Join(parts, " "), sweepMetric, best.Value)
	return nil
}
