package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/san-kum/harmograph/internal/analysis"
	"github.com/san-kum/harmograph/internal/automation"
	"github.com/san-kum/harmograph/internal/buffer"
	"github.com/san-kum/harmograph/internal/config"
	"github.com/san-kum/harmograph/internal/engine"
	"github.com/san-kum/harmograph/internal/export"
	"github.com/san-kum/harmograph/internal/gui"
	"github.com/san-kum/harmograph/internal/storage"
	"github.com/san-kum/harmograph/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logFile    string
	// view overrides
	scale     int
	speed     int
	trails    bool
	mono      bool
	tableBits int
	fps       int
	theme     string
	backend   string
	// output
	outDir      string
	renderOut   string
	renderCount int
	exportScale int
	svgSize     int
	configOut   string
	// window
	zoom      int
	maxFrames int
	// bench and sweep
	benchFrames int
	sweepFrames int
	save        bool
	// sweep
	sweepField string
	sweepMin   int
	sweepMax   int
	sweepSteps int
	workers    int
	// runs
	column string
	// analyze
	family int
	axisY  bool
	atTime int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "harmograph",
		Short: "fixed-point harmonograph renderer",
		RunE: func(cmd *cobra.Command, args []string) error {
			if preset == "" && configFile == "" {
				return runMenu(cmd)
			}
			return runTUI(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".harmograph", "data directory for saved runs")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().IntVar(&scale, "scale", config.DefaultScale, "initial scale")
	rootCmd.PersistentFlags().IntVar(&speed, "speed", config.DefaultSpeed, "initial speed")
	rootCmd.PersistentFlags().BoolVar(&trails, "trails", false, "start with trails on")
	rootCmd.PersistentFlags().BoolVar(&mono, "mono", false, "draw every sample in white")
	rootCmd.PersistentFlags().IntVar(&tableBits, "table-bits", config.DefaultTableBits, "log2 of the trig table size")
	rootCmd.PersistentFlags().IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	rootCmd.PersistentFlags().StringVar(&outDir, "out-dir", ".", "directory for screenshots and recordings")
	rootCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "terminal theme")
	rootCmd.Flags().StringVar(&logFile, "log", "", "write logs to this file while the terminal UI runs")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		RunE:  runTUI,
	}
	tuiCmd.Flags().StringVar(&theme, "theme", config.DefaultTheme, "terminal theme")
	tuiCmd.Flags().StringVar(&logFile, "log", "", "write logs to this file while the terminal UI runs")

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run in a desktop window",
		RunE:  runWindow,
	}
	windowCmd.Flags().StringVar(&backend, "backend", config.DefaultBackend, "window backend (raylib|ebiten|headless)")
	windowCmd.Flags().IntVar(&zoom, "zoom", 3, "window scale")
	windowCmd.Flags().IntVar(&maxFrames, "frames", 0, "stop the headless backend after this many frames")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames without a display and write an image",
		RunE:  runRender,
	}
	renderCmd.Flags().StringVarP(&renderOut, "out", "o", "harmograph.png", "output file (.png, .bmp, .gif, .svg)")
	renderCmd.Flags().IntVar(&renderCount, "frames", 1, "frames to render")
	renderCmd.Flags().IntVar(&exportScale, "export-scale", 2, "pixel scale for raster output")
	renderCmd.Flags().IntVar(&svgSize, "svg-size", 512, "svg canvas size")

	scriptCmd := &cobra.Command{
		Use:   "script [file]",
		Short: "drive the renderer from a yaml input script",
		Args:  cobra.ExactArgs(1),
		RunE:  runScript,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "render one frame per value of a config field",
		RunE:  runSweep,
	}
	sweepCmd.Flags().StringVar(&sweepField, "field", "scale", "field to vary ("+strings.Join(automation.SweepFields, ", ")+")")
	sweepCmd.Flags().IntVar(&sweepMin, "min", 8, "first value")
	sweepCmd.Flags().IntVar(&sweepMax, "max", 96, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 12, "number of values")
	sweepCmd.Flags().IntVar(&sweepFrames, "frames", 1, "frames per value")
	sweepCmd.Flags().IntVar(&workers, "workers", 0, "values rendered at once (0: one per CPU)")
	sweepCmd.Flags().BoolVar(&save, "save", false, "save the results to the data directory")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure generation and paint cost per frame",
		RunE:  runBench,
	}
	benchCmd.Flags().IntVar(&benchFrames, "frames", 600, "frames to measure")
	benchCmd.Flags().BoolVar(&save, "save", false, "save the results to the data directory")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved bench and sweep runs",
		RunE:  listRuns,
	}
	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a column of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&column, "column", "", "column to plot (default: second column)")
	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run as json",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return storage.New(dataDir).Export(os.Stdout, args[0])
		},
	}
	runsCmd.AddCommand(plotCmd, exportJSONCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tCURVES\tSTEP\tITER\tSCALE\tSPEED\tTRAILS")
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%v\n", name,
					p.Curve.Curves, p.Curve.Step, p.Curve.Iterations, p.View.Scale, p.View.Speed, p.View.Trails)
			}
			return w.Flush()
		},
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration as yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if configOut != "" {
				return config.Save(configOut, cfg)
			}
			data, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = os.Stdout.Write(data)
			return err
		},
	}
	configCmd.Flags().StringVarP(&configOut, "out", "o", "", "write to this file instead of stdout")

	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "spectrum and radial spread of one frame's samples",
		RunE:  analyzeFrame,
	}
	analyzeCmd.Flags().IntVar(&family, "family", 0, "curve family to analyse")
	analyzeCmd.Flags().BoolVar(&axisY, "y", false, "analyse the y coordinate instead of x")
	analyzeCmd.Flags().IntVar(&atTime, "time", 0, "animation time (table index)")

	rootCmd.AddCommand(tuiCmd, windowCmd, renderCmd, scriptCmd, sweepCmd, benchCmd, analyzeCmd, runsCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig layers defaults, preset, config file and explicitly set flags,
// in that order, then validates the result.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
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
	if flags.Changed("scale") {
		cfg.View.Scale = scale
	}
	if flags.Changed("speed") {
		cfg.View.Speed = speed
	}
	if flags.Changed("trails") {
		cfg.View.Trails = trails
	}
	if flags.Changed("mono") && mono {
		cfg.View.ColourMode = "mono"
	}
	if flags.Changed("table-bits") {
		cfg.TableBits = tableBits
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("backend") {
		cfg.Backend = backend
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func logTables(e *engine.Engine) {
	w, h := e.Size()
	p := e.Generator().Params()
	log.Printf("tables ready: %dx%d, %d curves x %d iterations, clip area %d",
		w, h, p.Families(), p.Iterations, e.Renderer().Mask().Area())
}

// checkTerminal refuses to start the alt screen when stdout is not a
// terminal or is too small for the side panel.
func checkTerminal() error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return fmt.Errorf("stdout is not a terminal; use render or bench instead")
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return err
	}
	if cols < 60 || rows < 16 {
		return fmt.Errorf("terminal is %dx%d; need at least 60x16", cols, rows)
	}
	return nil
}

func redirectLog() (func(), error) {
	if logFile == "" {
		log.SetOutput(io.Discard)
		return func() {}, nil
	}
	f, err := tea.LogToFile(logFile, "harmograph")
	if err != nil {
		return nil, err
	}
	return func() { f.Close() }, nil
}

func vizOptions(cfg *config.Config, title string) viz.Options {
	return viz.Options{
		FPS:         cfg.FPS,
		Theme:       cfg.Theme,
		Title:       title,
		OutDir:      outDir,
		ExportScale: 2,
	}
}

func runMenu(cmd *cobra.Command) error {
	if err := checkTerminal(); err != nil {
		return err
	}
	done, err := redirectLog()
	if err != nil {
		return err
	}
	defer done()
	t := config.DefaultTheme
	if cmd.Flags().Changed("theme") {
		t = theme
	}
	return viz.RunMenu(viz.Options{FPS: fps, Theme: t, OutDir: outDir, ExportScale: 2})
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := checkTerminal(); err != nil {
		return err
	}
	done, err := redirectLog()
	if err != nil {
		return err
	}
	defer done()

	e, err := engine.FromConfig(cfg, nil)
	if err != nil {
		return err
	}
	logTables(e)
	title := "harmograph"
	if preset != "" {
		title += " · " + preset
	}
	return viz.Run(e, vizOptions(cfg, title))
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	e, err := engine.FromConfig(cfg, buffer.Immediate{})
	if err != nil {
		return err
	}
	logTables(e)

	ctx, cancel := signalContext()
	defer cancel()
	err = gui.Run(ctx, cfg.Backend, e, gui.Options{
		Title:  "harmograph",
		Zoom:   zoom,
		FPS:    cfg.FPS,
		OutDir: outDir,
		Frames: maxFrames,
	})
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	format, err := export.FormatFor(renderOut)
	if err != nil {
		return err
	}
	if renderCount < 1 {
		renderCount = 1
	}
	e, err := engine.FromConfig(cfg, nil)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	var rec *export.Recorder
	if format == export.GIF {
		rec = export.NewRecorder(exportScale, 0)
	}
	for i := 0; i < renderCount; i++ {
		if _, err := e.Step(ctx, engine.Idle.Next(e.Frames())); err != nil {
			return err
		}
		if rec != nil {
			rec.Add(e.Front())
		}
	}

	switch format {
	case export.SVG:
		err = writeSVG(renderOut, e)
	case export.GIF:
		err = writeGIF(renderOut, rec)
	default:
		err = export.WriteFile(renderOut, e.Front(), exportScale)
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	log.Printf("wrote %s (%d frames in %v)", renderOut, renderCount, time.Since(start).Round(time.Millisecond))
	return nil
}

// writeSVG draws the sample set the next frame would paint.
func writeSVG(path string, e *engine.Engine) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	p := e.Generator().Params()
	if err := export.WriteSVG(f, e.Samples(nil), p.Iterations, e.Renderer().Colours(), svgSize); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeGIF(path string, rec *export.Recorder) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := rec.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func runScript(cmd *cobra.Command, args []string) error {
	s, err := automation.LoadScript(args[0])
	if err != nil {
		return err
	}
	cfg, err := s.Config()
	if err != nil {
		return err
	}
	e, err := engine.FromConfig(cfg, nil)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	r := &automation.Runner{Log: log.Default()}
	res, err := r.Run(ctx, e, s)
	if err != nil {
		return err
	}
	fmt.Printf("script: %s\n", s.Name)
	fmt.Printf("frames: %d\n", res.Frames)
	fmt.Printf("painted: %d  dropped: %d\n", res.Painted, res.Dropped)
	if res.Report.Frames > 0 {
		fmt.Printf("timing: %s\n", res.Report)
	}
	for _, c := range res.Captures {
		fmt.Printf("  %s\n", c)
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	sw := &automation.Sweep{Field: sweepField, Min: sweepMin, Max: sweepMax, Steps: sweepSteps, Frames: sweepFrames, Workers: workers}
	r := &automation.Runner{}
	results, err := r.RunSweep(ctx, cfg, sw)
	if err != nil {
		return err
	}

	series := &storage.Series{Columns: []string{sweepField, "lit", "painted", "dropped"}}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tLIT\tPAINTED\tDROPPED\n", strings.ToUpper(sweepField))
	lit := make([]float64, 0, len(results))
	for _, res := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%d\n", res.Value, res.Lit, res.Painted, res.Dropped)
		series.Rows = append(series.Rows, []float64{float64(res.Value), float64(res.Lit), float64(res.Painted), float64(res.Dropped)})
		lit = append(lit, float64(res.Lit))
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(lit) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(lit, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("lit pixels vs "+sweepField)))
	}

	if save {
		meta := storage.RunMetadata{Kind: "sweep", Name: sweepField, Frames: len(results) * max(sweepFrames, 1), Config: cfg}
		return saveRun(meta, series)
	}
	return nil
}

func runBench(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if benchFrames < 1 {
		return fmt.Errorf("bench: need at least one frame")
	}
	e, err := engine.FromConfig(cfg, buffer.Immediate{})
	if err != nil {
		return err
	}
	ctx, cancel := signalContext()
	defer cancel()

	series := &storage.Series{Columns: []string{"frame", "draw_ms", "painted", "dropped", "cleared"}}
	drawMs := make([]float64, 0, benchFrames)
	var total time.Duration
	var painted int
	for i := 0; i < benchFrames; i++ {
		fs, err := e.Step(ctx, engine.Idle.Next(e.Frames()))
		if err != nil {
			return err
		}
		ms := float64(fs.Draw) / float64(time.Millisecond)
		drawMs = append(drawMs, ms)
		total += fs.Draw
		painted += fs.Render.Painted
		series.Rows = append(series.Rows, []float64{float64(fs.Frame), ms,
			float64(fs.Render.Painted), float64(fs.Render.Dropped), float64(fs.Render.Cleared)})
	}

	p := e.Generator().Params()
	avg := float64(total) / float64(benchFrames) / float64(time.Millisecond)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "FRAMES\tSAMPLES\tAVG MS\tPAINTED/FRAME\tFRAMES/SEC")
	fmt.Fprintf(w, "%d\t%d\t%.3f\t%d\t%.0f\n", benchFrames, p.Samples(), avg, painted/benchFrames, float64(benchFrames)/total.Seconds())
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(asciigraph.Plot(drawMs, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("frame ms")))

	if save {
		meta := storage.RunMetadata{
			Kind:    "bench",
			Name:    benchName(),
			Frames:  benchFrames,
			Config:  cfg,
			Metrics: map[string]float64{"avg_ms": avg, "painted_per_frame": float64(painted) / float64(benchFrames)},
		}
		return saveRun(meta, series)
	}
	return nil
}

func benchName() string {
	if preset != "" {
		return preset
	}
	if configFile != "" {
		return strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}
	return "default"
}

func saveRun(meta storage.RunMetadata, series *storage.Series) error {
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(meta, series)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
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
	fmt.Fprintln(w, "ID\tKIND\tNAME\tTIME\tFRAMES")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			run.ID,
			run.Kind,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(args[0])
	if err != nil {
		return err
	}
	if len(series.Columns) < 2 || len(series.Rows) == 0 {
		return fmt.Errorf("no data to plot")
	}
	name := column
	if name == "" {
		name = series.Columns[1]
	}
	data := series.Column(name)
	if data == nil {
		return fmt.Errorf("unknown column %q (have %v)", name, series.Columns)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("kind: %s\n", meta.Kind)
	fmt.Printf("samples: %d\n\n", len(data))
	fmt.Println(asciigraph.Plot(data, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption(name)))
	for k, v := range meta.Metrics {
		fmt.Printf("  %s: %.4f\n", k, v)
	}
	return nil
}

func analyzeFrame(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	e, err := engine.FromConfig(cfg, nil)
	if err != nil {
		return err
	}
	e.SetTime(int32(atTime))

	p := e.Generator().Params()
	if family < 0 || family >= p.Families() {
		return fmt.Errorf("family %d out of range (0-%d)", family, p.Families()-1)
	}
	axis, name := analysis.AxisX, "x"
	if axisY {
		axis, name = analysis.AxisY, "y"
	}

	pts := e.Samples(nil)
	ps := analysis.Spectrum(analysis.Signal(pts, p.Iterations, family, axis))
	bin, mag := analysis.Dominant(ps)
	bands := analysis.SplitBands(ps)
	shape := analysis.Measure(pts, 16)

	fmt.Printf("time: %d\n", e.Time())
	fmt.Printf("family: %d (%s)\n\n", family, name)
	if len(ps) > 1 {
		fmt.Println(asciigraph.Plot(ps, asciigraph.Height(10), asciigraph.Width(80), asciigraph.Caption("spectrum")))
		fmt.Println()
	}
	fmt.Printf("dominant bin: %d (%.3f cycles/iteration, magnitude %.2f)\n", bin, float64(bin)/float64(p.Iterations), mag)
	fmt.Printf("bands: low %.2f  mid %.2f  high %.2f\n\n", bands.Low, bands.Mid, bands.High)

	radial := make([]float64, len(shape.Radial))
	for i, c := range shape.Radial {
		radial[i] = float64(c)
	}
	fmt.Println(asciigraph.Plot(radial, asciigraph.Height(8), asciigraph.Width(64), asciigraph.Caption("samples per ring, centre to corner")))
	fmt.Printf("\nbounds: x [%d, %d]  y [%d, %d]\n", shape.MinX, shape.MaxX, shape.MinY, shape.MaxY)
	fmt.Printf("radius: mean %.0f  max %d\n", shape.MeanRadius, shape.MaxRadius)
	return nil
}
