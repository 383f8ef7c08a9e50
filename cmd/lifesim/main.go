package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/lifesim/internal/config"
	"github.com/san-kum/lifesim/internal/export"
	"github.com/san-kum/lifesim/internal/life"
	"github.com/san-kum/lifesim/internal/metrics"
	"github.com/san-kum/lifesim/internal/sim"
	"github.com/san-kum/lifesim/internal/storage"
	"github.com/san-kum/lifesim/internal/tui"
)

var (
	dataDir    string
	configFile string
	profile    string
	logLevel   string
	logFile    string

	rows       int
	cols       int
	intervalMs int
	density    float64
	seed       int64
	preset     string
	theme      string

	generations int
	numRuns     int
	plot        bool
	watch       bool
	frameRate   int
	stopStable  bool
	svgPath     string
)

// main registers the lifesim commands and runs the interactive board when no
// subcommand is given. It exits with status 1 if the command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:          "lifesim",
		Short:        "conway's game of life in the terminal",
		SilenceUsage: true,
		RunE:         runPlay,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".lifesim", "data directory for recorded runs")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&profile, "profile", "", "named config profile")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "write logs to this file")
	addGridFlags(rootCmd)
	rootCmd.Flags().StringVar(&theme, "theme", "", "colour theme")

	playCmd := &cobra.Command{
		Use:   "play",
		Short: "interactive board (click and drag to paint)",
		RunE:  runPlay,
	}
	addGridFlags(playCmd)
	playCmd.Flags().StringVar(&theme, "theme", "", "colour theme ("+strings.Join(tui.ThemeNames(), ", ")+")")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "advance a board headlessly and record population statistics",
		RunE:  runHeadless,
	}
	addGridFlags(runCmd)
	runCmd.Flags().IntVar(&generations, "generations", 500, "number of generations")
	runCmd.Flags().IntVar(&numRuns, "runs", 1, "number of random runs evaluated concurrently")
	runCmd.Flags().BoolVar(&plot, "plot", false, "plot the population series")
	runCmd.Flags().BoolVar(&watch, "watch", false, "print each generation (single run only)")
	runCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate for --watch")
	runCmd.Flags().BoolVar(&stopStable, "stop-stable", false, "stop once the board stops changing")
	runCmd.Flags().StringVar(&svgPath, "svg", "", "write the final board of the first run as SVG")

	listCmd := &cobra.Command{
		Use:   "runs",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the population series of a recorded run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "also write the chart as SVG")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list patterns, config profiles and themes",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println("patterns:")
			for _, name := range life.PresetNames() {
				fmt.Printf("  %s\n", name)
			}
			fmt.Println("profiles:")
			for _, name := range config.ListProfiles() {
				p := config.Profiles[name]
				fmt.Printf("  %-8s %dx%d %dms\n", name, p.Rows, p.Cols, p.IntervalMs)
			}
			fmt.Println("themes:")
			for _, name := range tui.ThemeNames() {
				fmt.Printf("  %s\n", name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(playCmd, runCmd, listCmd, plotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addGridFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&rows, "rows", config.DefaultRows, "grid rows")
	cmd.Flags().IntVar(&cols, "cols", config.DefaultCols, "grid columns")
	cmd.Flags().IntVar(&intervalMs, "interval", sim.DefaultIntervalMs, "tick interval in milliseconds")
	cmd.Flags().Float64Var(&density, "density", life.DefaultDensity, "live-cell probability for random boards")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time based)")
	cmd.Flags().StringVar(&preset, "preset", "", "start from a named pattern")
}

// loadConfig layers profile, config file and explicitly set flags, in that
// order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if profile != "" {
		cfg = config.GetProfile(profile)
		if cfg == nil {
			return nil, fmt.Errorf("unknown profile: %s (available: %v)", profile, config.ListProfiles())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("rows") {
		cfg.Rows = rows
	}
	if flags.Changed("cols") {
		cfg.Cols = cols
	}
	if flags.Changed("interval") {
		cfg.IntervalMs = intervalMs
	}
	if flags.Changed("density") {
		cfg.Density = density
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("preset") {
		cfg.Preset = preset
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return cfg, cfg.Validate()
}

// setupLogging installs the default slog logger. The interactive board owns
// the terminal, so it only logs when a file is configured.
func setupLogging(cfg *config.Config, interactive bool) (func(), error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Log.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Log.Level, err)
	}

	var w io.Writer = os.Stderr
	closer := func() {}
	switch {
	case cfg.Log.File != "":
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	case interactive:
		w = io.Discard
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
	return closer, nil
}

func initialGrid(cfg *config.Config) (*life.Grid, string, error) {
	if cfg.Preset != "" {
		g, err := life.Seed(cfg.Preset, cfg.Rows, cfg.Cols)
		return g, cfg.Preset, err
	}
	return life.New(cfg.Rows, cfg.Cols), "empty", nil
}

func runPlay(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg, true)
	if err != nil {
		return err
	}
	defer closeLog()

	g, source, err := initialGrid(cfg)
	if err != nil {
		return err
	}

	ctrl := sim.New(g, sim.Options{
		IntervalMs: cfg.IntervalMs,
		RNG:        life.NewRNG(cfg.Seed),
	})
	slog.Info("starting board", "rows", cfg.Rows, "cols", cfg.Cols, "source", source, "interval_ms", cfg.IntervalMs)

	return tui.Run(ctrl, tui.Options{
		Theme:   cfg.Theme,
		Density: cfg.Density,
		History: cfg.History,
	})
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	closeLog, err := setupLogging(cfg, false)
	if err != nil {
		return err
	}
	defer closeLog()

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	runCfg := sim.RunConfig{Generations: generations, StopWhenStable: stopStable}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	type labelled struct {
		source string
		seed   int64
		result *sim.Result
	}
	var results []labelled

	start := time.Now()
	switch {
	case numRuns > 1:
		if cfg.Preset != "" {
			return fmt.Errorf("--runs only applies to random boards")
		}
		ens := &sim.Ensemble{Rows: cfg.Rows, Cols: cfg.Cols, Density: cfg.Density, SeedStart: cfg.Seed, NumRuns: numRuns}
		rs, err := ens.Run(ctx, runCfg)
		if err != nil {
			return err
		}
		for i, r := range rs {
			results = append(results, labelled{"random", cfg.Seed + int64(i), r})
		}
	default:
		g, source, err := initialGrid(cfg)
		if err != nil {
			return err
		}
		if cfg.Preset == "" {
			g, source = life.Randomize(g, cfg.Density, life.NewRNG(cfg.Seed)), "random"
		}

		var observers []sim.Observer
		if watch {
			live := tui.NewLiveRenderer(os.Stdout, source, frameRate)
			live.Start()
			defer live.Stop()
			observers = append(observers, live)
		}
		r, err := sim.Run(ctx, g, runCfg, observers...)
		if err != nil {
			return err
		}
		results = append(results, labelled{source, cfg.Seed, r})
	}
	elapsed := time.Since(start)

	slog.Info("runs completed", "count", len(results), "elapsed", elapsed)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "RUN ID\tSOURCE\tGENS\tSTART\tFINAL\tPEAK\tMEAN\tSTDDEV")
	for _, lr := range results {
		stats := metrics.Summarize(lr.result.Populations)
		runID, err := st.Save(storage.RunMetadata{
			Source:      lr.source,
			Rows:        cfg.Rows,
			Cols:        cfg.Cols,
			Seed:        lr.seed,
			Density:     cfg.Density,
			Generations: lr.result.Generations,
			Stable:      lr.result.Stable,
			Stats:       stats,
		}, lr.result.Populations)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%.1f\t%.1f\n",
			runID, lr.source, lr.result.Generations,
			stats.Initial, stats.Final, stats.Peak, stats.Mean, stats.StdDev)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Printf("\ncompleted in %v\n", elapsed)

	if svgPath != "" {
		first := results[0].result.Final
		if err := writeFile(svgPath, export.GridToSVG(first, 8, string(tui.GetTheme(cfg.Theme).Alive))); err != nil {
			return err
		}
		fmt.Printf("saved %s\n", svgPath)
	}

	if plot {
		for _, lr := range results {
			fmt.Println()
			fmt.Println(asciigraph.Plot(metrics.Floats(lr.result.Populations),
				asciigraph.Height(10),
				asciigraph.Width(80),
				asciigraph.Caption(fmt.Sprintf("population (%s, seed %d)", lr.source, lr.seed)),
			))
		}
	}
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSOURCE\tTIME\tSIZE\tGENS\tFINAL\tSTABLE")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%d\t%d\t%d\t%v\n",
			run.ID,
			run.Source,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Rows, run.Cols,
			run.Generations,
			run.Stats.Final,
			run.Stable,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	samples, err := st.LoadSamples(runID)
	if err != nil {
		return err
	}
	if len(samples) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("source: %s (%dx%d, seed %d)\n", meta.Source, meta.Rows, meta.Cols, meta.Seed)
	fmt.Printf("generations: %d\n\n", meta.Generations)

	data := make([]float64, len(samples))
	for i, s := range samples {
		data[i] = float64(s.Population)
	}
	fmt.Println(asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("population vs generation"),
	))

	if svgPath != "" {
		pops := make([]int, len(samples))
		for i, s := range samples {
			pops[i] = s.Population
		}
		if err := writeFile(svgPath, export.PopulationToSVG(pops, 800, 300, "#ffcc00")); err != nil {
			return err
		}
		fmt.Printf("\nsaved %s\n", svgPath)
	}
	return nil
}

func writeFile(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}
