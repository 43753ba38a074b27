package main

import (
	"context"
	"fmt"
	"math"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/san-kum/rkshoot/internal/analysis"
	"github.com/san-kum/rkshoot/internal/config"
	"github.com/san-kum/rkshoot/internal/dynamo"
	"github.com/san-kum/rkshoot/internal/export"
	"github.com/san-kum/rkshoot/internal/integrators"
	"github.com/san-kum/rkshoot/internal/models"
	"github.com/san-kum/rkshoot/internal/shoot"
	"github.com/san-kum/rkshoot/internal/sim"
	"github.com/san-kum/rkshoot/internal/storage"
	"github.com/san-kum/rkshoot/internal/tui"
	"github.com/san-kum/rkshoot/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	verbose    bool
	configFile string
	preset     string

	step     float64
	maxIter  int
	validate bool
	xInit    float64

	index    float64
	indices  []float64
	theta    float64
	gravity  float64
	length   float64
	horizon  float64
	stopMode string

	low        float64
	high       float64
	target     float64
	iterations int
	live       bool
	interval   time.Duration

	noPlot  bool
	pngPath string
	save    bool
	outPath string

	logger *log.Logger
)

// main registers the commands and exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "rkshoot",
		Short:         "RK4 integration of Lane-Emden and driven pendulum equations with a shooting search",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			logger = newLogger(os.Stderr, level)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rkshoot", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	polytropeCmd := &cobra.Command{
		Use:   "polytrope",
		Short: "integrate the Lane-Emden equation to the surface",
		Args:  cobra.NoArgs,
		RunE:  runPolytrope,
	}
	addRunFlags(polytropeCmd)
	polytropeCmd.Flags().Float64Var(&index, "n", config.DefaultN, "polytropic index")
	polytropeCmd.Flags().Float64Var(&xInit, "x0", config.DefaultXInit, "initial x (must be > 0)")

	pendulumCmd := &cobra.Command{
		Use:   "pendulum",
		Short: "integrate the driven rod for one drive angle",
		Args:  cobra.NoArgs,
		RunE:  runPendulum,
	}
	addRunFlags(pendulumCmd)
	addPendulumFlags(pendulumCmd)
	pendulumCmd.Flags().Float64Var(&theta, "theta", config.DefaultTheta, "drive angle (rad)")

	shootCmd := &cobra.Command{
		Use:   "shoot",
		Short: "bisect the drive angle so the trajectory ends at the target x",
		Args:  cobra.NoArgs,
		RunE:  runShoot,
	}
	addRunFlags(shootCmd)
	addPendulumFlags(shootCmd)
	shootCmd.Flags().Float64Var(&low, "low", 0, "lower bound of the drive angle (rad)")
	shootCmd.Flags().Float64Var(&high, "high", math.Pi/2, "upper bound of the drive angle (rad)")
	shootCmd.Flags().Float64Var(&target, "target", config.DefaultTarget, "target final x")
	shootCmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "number of bisections")
	shootCmd.Flags().BoolVar(&live, "live", false, "show the search in a terminal UI")
	shootCmd.Flags().DurationVar(&interval, "interval", 150*time.Millisecond, "delay between bisections in live mode")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "integrate several polytropic indices concurrently",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64SliceVar(&indices, "n", []float64{0, 1, 1.5, 2, 3, 4}, "polytropic indices")
	sweepCmd.Flags().Float64Var(&step, "step", config.DefaultStep, "step size")
	sweepCmd.Flags().IntVar(&maxIter, "max-iter", 20000, "iteration cap per index")
	sweepCmd.Flags().Float64Var(&xInit, "x0", config.DefaultXInit, "initial x (must be > 0)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&pngPath, "png", "", "also write a figure to this path")
	plotCmd.Flags().Float64Var(&target, "target", config.DefaultTarget, "reference x line for pendulum figures")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a saved run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outPath, "out", "o", "", "output file (default stdout)")

	presetsCmd := &cobra.Command{
		Use:   "presets [model]",
		Short: "list available presets for a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for model: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	rootCmd.AddCommand(polytropeCmd, pendulumCmd, shootCmd, sweepCmd, listCmd, plotCmd, exportJSONCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		if logger == nil {
			logger = newLogger(os.Stderr, log.InfoLevel)
		}
		logger.Error(err.Error())
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&step, "step", config.DefaultStep, "step size h")
	cmd.Flags().IntVar(&maxIter, "max-iter", config.DefaultMaxIter, "iteration cap")
	cmd.Flags().BoolVar(&validate, "validate", false, "fail on NaN or Inf instead of recording it")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().BoolVar(&noPlot, "no-plot", false, "skip the terminal plot")
	cmd.Flags().StringVar(&pngPath, "png", "", "write a figure to this path")
	cmd.Flags().BoolVar(&save, "save", true, "save the run to the data directory")
}

func addPendulumFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&gravity, "gravity", config.DefaultGravity, "gravitational acceleration G")
	cmd.Flags().Float64Var(&length, "length", config.DefaultLength, "length scale A")
	cmd.Flags().Float64Var(&horizon, "horizon", config.DefaultHorizon, "x bound of the horizon stop policy")
	cmd.Flags().StringVar(&stopMode, "stop", config.DefaultStopPolicy, "stop policy: horizon (x > bound) or angle (phi >= pi/2)")
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func resolveConfig(cmd *cobra.Command, model string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if model == string(models.KindPendulum) {
		cfg.Model = model
		cfg.InitState = config.PendulumInit()
	}

	if preset != "" {
		p := config.GetPreset(model, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(model))
		}
		c := *p
		cfg = &c
	}

	if configFile != "" {
		loaded, err := config.LoadAs(configFile, model)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		if loaded.Model != model {
			logger.Warn("config model differs from command", "config", loaded.Model, "command", model)
			loaded.Model = model
			loaded.InitState = config.DefaultConfig().InitState
			if model == string(models.KindPendulum) {
				loaded.InitState = config.PendulumInit()
			}
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	changed := func(name string) bool {
		return flags.Lookup(name) != nil && flags.Changed(name)
	}
	if changed("step") {
		cfg.Step = step
	}
	if changed("max-iter") {
		cfg.MaxIter = maxIter
	}
	if changed("validate") {
		cfg.ValidateState = validate
	}
	if changed("x0") {
		cfg.InitState.X = xInit
	}
	if changed("n") {
		cfg.Polytrope.N = index
	}
	if changed("theta") {
		cfg.Pendulum.Theta = theta
	}
	if changed("gravity") {
		cfg.Pendulum.Gravity = gravity
	}
	if changed("length") {
		cfg.Pendulum.Length = length
	}
	if changed("horizon") {
		cfg.Pendulum.Horizon = horizon
	}
	if changed("stop") {
		cfg.Shoot.Stop = stopMode
	}
	if changed("low") {
		cfg.Shoot.Low = low
	}
	if changed("high") {
		cfg.Shoot.High = high
	}
	if changed("target") {
		cfg.Shoot.Target = target
	}
	if changed("iterations") {
		cfg.Shoot.Iterations = iterations
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func initState(cfg *config.Config) dynamo.State {
	return dynamo.State{X: cfg.InitState.X, Y: cfg.InitState.Y, Z: cfg.InitState.Z}
}

func pendulumModel(cfg *config.Config, th float64) *models.PendulumDrive {
	m := models.NewPendulumDrive(th)
	m.Gravity = cfg.Pendulum.Gravity
	m.Length = cfg.Pendulum.Length
	return m
}

func pendulumStop(cfg *config.Config) sim.StopPredicate {
	if cfg.Shoot.Stop == config.StopHorizon {
		return sim.Horizon(cfg.Pendulum.Horizon)
	}
	return sim.AngleReached(cfg.Shoot.TargetAngle)
}

func simConfig(cfg *config.Config) sim.Config {
	return sim.Config{Step: cfg.Step, MaxIter: cfg.MaxIter, ValidateState: cfg.ValidateState}
}

func integrate(m dynamo.Model, init dynamo.State, stop sim.StopPredicate, cfg *config.Config) (*sim.Result, error) {
	s := sim.New(m, integrators.NewRK4())
	s.AddObserver(&stepTracer{logger: logger, stride: max(cfg.MaxIter/50, 1)})

	p := newProgress(logger)
	result, err := s.Run(init, stop, simConfig(cfg))
	if err != nil {
		return nil, err
	}
	p.done("integrated", "points", result.Trajectory.Len(), "stopped", result.Stopped)
	if !result.Stopped {
		logger.Warn("iteration cap reached before the stop condition", "max_iter", cfg.MaxIter)
	}
	return result, nil
}

func runPolytrope(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, string(models.KindPolytrope))
	if err != nil {
		return err
	}

	n := cfg.Polytrope.N
	logger.Debug("polytrope", "n", n, "step", cfg.Step, "x0", cfg.InitState.X)

	result, err := integrate(models.NewPolytrope(n), initState(cfg), sim.SurfaceReached(), cfg)
	if err != nil {
		return err
	}
	traj := result.Trajectory

	metrics := map[string]float64{}
	fields := []viz.Field{
		viz.F("n", "%g", n),
		viz.F("points", "%d", traj.Len()),
	}
	if est, err := analysis.Surface(traj); err != nil {
		logger.Warn("no surface estimate", "err", err)
	} else {
		metrics["xi1"] = est.Xi1
		metrics["mass_param"] = est.MassParam
		fields = append(fields,
			viz.F("surface xi1", "%.5f", est.Xi1),
			viz.F("-xi1^2 theta'", "%.5f", est.MassParam),
		)
	}
	fmt.Println(viz.Summary("lane-emden", fields))

	return finish(cfg, "surface", n, traj, metrics, viz.PolytropeLabels, export.PolytropeFigure(fmt.Sprintf("n = %g", n)))
}

func runPendulum(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, string(models.KindPendulum))
	if err != nil {
		return err
	}

	th := cfg.Pendulum.Theta
	result, err := integrate(pendulumModel(cfg, th), initState(cfg), pendulumStop(cfg), cfg)
	if err != nil {
		return err
	}
	traj := result.Trajectory

	last, err := traj.Last()
	if err != nil {
		return err
	}
	fmt.Println(viz.Summary("driven rod", []viz.Field{
		viz.F("theta", "%.4f deg", viz.Degrees(th)),
		viz.F("stop", "%s", cfg.Shoot.Stop),
		viz.F("points", "%d", traj.Len()),
		viz.F("final x", "%.4f", last.X),
		viz.F("final phi", "%.4f rad", last.Y),
	}))

	metrics := map[string]float64{"final_x": last.X}
	fig := export.PendulumFigure(fmt.Sprintf("theta = %.4f degrees", viz.Degrees(th)), cfg.Shoot.Target)
	return finish(cfg, cfg.Shoot.Stop, th, traj, metrics, viz.PendulumLabels, fig)
}

func runShoot(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, string(models.KindPendulum))
	if err != nil {
		return err
	}

	shot := shoot.Shot{
		Init:    initState(cfg),
		Step:    cfg.Step,
		MaxIter: cfg.MaxIter,
		Stop:    pendulumStop(cfg),
	}
	factory := func(th float64) dynamo.Model { return pendulumModel(cfg, th) }

	search := &shoot.Search{
		Eval:       shoot.FinalX(factory, shot),
		Target:     cfg.Shoot.Target,
		Iterations: cfg.Shoot.Iterations,
		Slope:      shoot.Decreasing,
	}
	initial := shoot.Bracket{Low: cfg.Shoot.Low, High: cfg.Shoot.High}

	p := newProgress(logger)
	var b shoot.Bracket
	if live {
		b, err = tui.Run(search, initial, interval)
	} else {
		search.OnIter = func(it shoot.Iter) error {
			logger.Debug("bisection", "k", it.K, "theta", it.Theta, "final_x", it.Value, "low", it.Bracket.Low, "high", it.Bracket.High)
			return nil
		}
		b, err = search.Run(initial)
	}
	if err != nil {
		return err
	}
	p.done("search converged", "iterations", cfg.Shoot.Iterations, "width", b.Width())

	th := b.Mid()
	traj := sim.Integrate(pendulumModel(cfg, th), shot.Init, shot.Step, shot.Stop, shot.MaxIter)
	last, err := traj.Last()
	if err != nil {
		return err
	}

	fmt.Printf("Theta is between %.4f and %.4f degrees\n", viz.Degrees(b.Low), viz.Degrees(b.High))
	fmt.Println(viz.Summary("shooting search", []viz.Field{
		viz.F("bracket", "[%.4f, %.4f] deg", viz.Degrees(b.Low), viz.Degrees(b.High)),
		viz.F("theta", "%.6f deg", viz.Degrees(th)),
		viz.F("stop", "%s", cfg.Shoot.Stop),
		viz.F("target x", "%.4f", cfg.Shoot.Target),
		viz.F("final x", "%.4f", last.X),
	}))

	metrics := map[string]float64{
		"theta_low":  b.Low,
		"theta_high": b.High,
		"final_x":    last.X,
		"target":     cfg.Shoot.Target,
	}
	fig := export.PendulumFigure(fmt.Sprintf("theta = %.4f degrees", viz.Degrees(th)), cfg.Shoot.Target)
	return finish(cfg, cfg.Shoot.Stop, th, traj, metrics, viz.PendulumLabels, fig)
}

// finish plots, renders and stores a completed run.
func finish(cfg *config.Config, stop string, param float64, traj *dynamo.Trajectory, metrics map[string]float64, labels viz.Labels, fig export.Figure) error {
	if !noPlot {
		fmt.Println()
		fmt.Println(viz.PlotTrajectory(traj, labels))
	}

	if pngPath != "" {
		if err := export.SavePNG(pngPath, traj, fig); err != nil {
			return fmt.Errorf("write figure: %w", err)
		}
		logger.Info("figure written", "path", pngPath)
	}

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(storage.RunMetadata{
		Model:   cfg.Model,
		Param:   param,
		Step:    cfg.Step,
		MaxIter: cfg.MaxIter,
		Stop:    stop,
		Metrics: metrics,
	}, traj)
	if err != nil {
		return err
	}
	logger.Info("run saved", "id", runID)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	if xInit <= 0 {
		return fmt.Errorf("polytrope integration must start at x > 0, got %v: %w", xInit, dynamo.ErrSingular)
	}

	jobs := make([]sim.Job, 0, len(indices))
	for _, n := range indices {
		jobs = append(jobs, sim.Job{
			Name:  strconv.FormatFloat(n, 'g', -1, 64),
			Model: models.NewPolytrope(n),
			Init:  dynamo.State{X: xInit, Y: 1},
			Stop:  sim.SurfaceReached(),
		})
	}

	p := newProgress(logger)
	results, err := sim.NewEnsemble(integrators.NewRK4(), sim.Config{Step: step, MaxIter: maxIter}).Run(context.Background(), jobs)
	if err != nil {
		return err
	}
	p.done("sweep finished", "indices", len(jobs))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tPOINTS\tXI1\t-XI1^2 THETA'\tSTOPPED")
	for i, r := range results {
		est, err := analysis.Surface(r.Trajectory)
		if err != nil {
			fmt.Fprintf(w, "%s\t%d\t-\t-\t%v\n", jobs[i].Name, r.Trajectory.Len(), r.Stopped)
			continue
		}
		fmt.Fprintf(w, "%s\t%d\t%.5f\t%.5f\t%v\n", jobs[i].Name, r.Trajectory.Len(), est.Xi1, est.MassParam, r.Stopped)
	}
	return w.Flush()
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
	fmt.Fprintln(w, "ID\tMODEL\tTIME\tPARAM\tSTEP\tSTOP\tPOINTS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.6g\t%.4g\t%s\t%d\n",
			run.ID,
			run.Model,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Param,
			run.Step,
			run.Stop,
			run.Points,
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

	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if traj.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	labels := viz.PolytropeLabels
	fig := export.PolytropeFigure(fmt.Sprintf("n = %g", meta.Param))
	if meta.Model == string(models.KindPendulum) {
		labels = viz.PendulumLabels
		fig = export.PendulumFigure(fmt.Sprintf("theta = %.4f degrees", viz.Degrees(meta.Param)), target)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("model: %s\n", meta.Model)
	fmt.Printf("samples: %d\n\n", traj.Len())
	fmt.Println(viz.PlotOverlay(traj, labels))

	if pngPath != "" {
		if err := export.SavePNG(pngPath, traj, fig); err != nil {
			return err
		}
		logger.Info("figure written", "path", pngPath)
	}
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	traj, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	if outPath == "" {
		return export.WriteJSON(os.Stdout, meta, traj)
	}
	if err := export.ExportJSON(outPath, meta, traj); err != nil {
		return err
	}
	logger.Info("exported", "path", outPath)
	return nil
}
