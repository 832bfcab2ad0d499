package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/san-kum/wobbly/internal/analysis"
	"github.com/san-kum/wobbly/internal/config"
	"github.com/san-kum/wobbly/internal/dynamo"
	"github.com/san-kum/wobbly/internal/gui"
	"github.com/san-kum/wobbly/internal/integrators"
	"github.com/san-kum/wobbly/internal/scenario"
	"github.com/san-kum/wobbly/internal/storage"
	"github.com/san-kum/wobbly/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	integrator string
	springK    float64
	friction   float64
	slowdown   float64
	moveRange  float64
	noSave     bool
	outFile    string
	plotWidth  int
	plotHeight int
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
)

func main() {
	log.SetFlags(0)

	rootCmd := &cobra.Command{
		Use:   "wobbly",
		Short: "wobbly window deformation lab",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGUI(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", "", "data directory (default from config)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "start from a named preset")

	runCmd := &cobra.Command{
		Use:   "run [scenario|file.yaml]",
		Short: "replay a gesture scenario headlessly and store the run",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	addParamFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "print the summary without storing the run")

	scenariosCmd := &cobra.Command{
		Use:   "scenarios",
		Short: "list built-in scenarios",
		RunE:  listScenarios,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot paint volume growth of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotWidth, "width", 80, "plot width")
	plotCmd.Flags().IntVar(&plotHeight, "height", 10, "plot height")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a stored run to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	sweepCmd := &cobra.Command{
		Use:   "sweep [scenario|file.yaml]",
		Short: "replay a scenario across a range of one parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	addParamFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "spring_k", "parameter to sweep (spring_k, friction, slowdown_factor, movement_range)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", dynamo.SpringKRange.Min, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", dynamo.SpringKRange.Max, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 5, "number of values")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "drag a wobbly surface around the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return viz.RunLive(cfg)
		},
	}
	addParamFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "drag a wobbly window with the mouse",
		RunE:  runGUI,
	}
	addParamFlags(guiCmd)

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective config to a yaml file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(args[0], cfg); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}
	addParamFlags(initCmd)

	rootCmd.AddCommand(runCmd, sweepCmd, scenariosCmd, listCmd, plotCmd, exportJSONCmd, liveCmd, guiCmd, presetsCmd, initCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&integrator, "integrator", config.DefaultIntegrator,
		fmt.Sprintf("integrator (%s)", strings.Join(integrators.Names(), ", ")))
	cmd.Flags().Float64Var(&springK, "spring-k", dynamo.DefaultSpringK, "spring constant")
	cmd.Flags().Float64Var(&friction, "friction", dynamo.DefaultFriction, "friction")
	cmd.Flags().Float64Var(&slowdown, "slowdown", dynamo.DefaultSlowdownFactor, "slowdown factor")
	cmd.Flags().Float64Var(&moveRange, "range", dynamo.DefaultMovementRange, "maximum movement range")
}

// loadConfig layers defaults, preset, config file and explicit flags, in
// that order.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("%q (available: %v): %w", preset, config.ListPresets(), dynamo.ErrUnknownPreset)
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
	if flags.Lookup("integrator") != nil {
		if flags.Changed("integrator") {
			cfg.Integrator = integrator
		}
		if flags.Changed("spring-k") {
			cfg.Params.SpringK = springK
		}
		if flags.Changed("friction") {
			cfg.Params.Friction = friction
		}
		if flags.Changed("slowdown") {
			cfg.Params.SlowdownFactor = slowdown
		}
		if flags.Changed("range") {
			cfg.Params.MovementRange = moveRange
		}
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}
	return cfg, cfg.Validate()
}

func store(cmd *cobra.Command) (*storage.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return storage.New(cfg.DataDir), nil
}

func loadScenario(arg string) (*scenario.Scenario, error) {
	ext := filepath.Ext(arg)
	if ext == ".yaml" || ext == ".yml" {
		return scenario.Load(arg)
	}
	return scenario.Builtin(arg)
}

func runScenario(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := scenario.Run(ctx, sc, cfg)
	if err != nil {
		return err
	}
	if !res.Settled {
		log.Printf("wobbly: %s ended with the mesh still moving", sc.Name)
	}

	fmt.Printf("scenario: %s\n", res.Scenario)
	fmt.Printf("integrator: %s\n", res.Integrator)
	fmt.Printf("frames: %d (%dms simulated)\n", len(res.Frames), res.SimulatedMs)
	names := make([]string, 0, len(res.Metrics))
	for k := range res.Metrics {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		fmt.Printf("  %-18s %.3f\n", k, res.Metrics[k])
	}

	if noSave {
		return nil
	}
	st := storage.New(cfg.DataDir)
	runID, err := st.Save(res)
	if err != nil {
		return err
	}
	fmt.Printf("saved: %s\n", runID)
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := loadScenario(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sw := scenario.Sweep{Param: sweepParam, Min: sweepMin, Max: sweepMax, Steps: sweepSteps}
	points, err := scenario.RunSweep(ctx, sc, cfg, sw)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFRAMES\tSETTLE\tPEAK\tGROWTH\tWOBBLE\n", strings.ToUpper(sw.Param))
	for _, p := range points {
		m := p.Result.Metrics
		fmt.Fprintf(w, "%.3f\t%d\t%.0fms\t%.2f\t%.3f\t%.2fHz\n",
			p.Value,
			len(p.Result.Frames),
			m["settle_ms"],
			m["peak_displacement"],
			m["bounds_growth"],
			m["wobble_hz"],
		)
		if !p.Result.Settled {
			log.Printf("wobbly: %s=%g ended with the mesh still moving", sw.Param, p.Value)
		}
	}
	return w.Flush()
}

func listScenarios(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tSTEPS\tDESCRIPTION")
	for _, name := range scenario.BuiltinNames() {
		sc, err := scenario.Builtin(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%s\n", sc.Name, len(sc.Steps), sc.Description)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st, err := store(cmd)
	if err != nil {
		return err
	}
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSCENARIO\tTIME\tFRAMES\tSETTLE\tINTEG\tK\tFRICTION")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.0fms\t%s\t%.1f\t%.1f\n",
			run.ID,
			run.Scenario,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Metrics["settle_ms"],
			run.Integrator,
			run.Params.SpringK,
			run.Params.Friction,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st, err := store(cmd)
	if err != nil {
		return err
	}
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}
	if len(frames) < 2 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scenario: %s\n", meta.Scenario)
	fmt.Printf("frames: %d\n\n", len(frames))
	fmt.Println(viz.PlotFrames(frames, plotWidth, plotHeight, "paint volume growth (px) per frame"))
	hz := analysis.DominantFrequency(analysis.CornerTrace(frames, 3), analysis.SampleRate(frames))
	fmt.Printf("\ndominant wobble: %.2f Hz\n", hz)
	return nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st, err := store(cmd)
	if err != nil {
		return err
	}
	if outFile == "" {
		return st.ExportJSON(args[0], os.Stdout)
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := st.ExportJSON(args[0], f); err != nil {
		return err
	}
	log.Printf("wobbly: exported %s to %s", args[0], outFile)
	return nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	return gui.Run(cfg, config.ListPresets())
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tK\tFRICTION\tSLOWDOWN\tRANGE")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name).Params
		fmt.Fprintf(w, "%s\t%.1f\t%.1f\t%.1f\t%.0f\n", name, p.SpringK, p.Friction, p.SlowdownFactor, p.MovementRange)
	}
	return w.Flush()
}
