package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/neurosim/internal/analysis"
	"github.com/san-kum/neurosim/internal/clamp"
	"github.com/san-kum/neurosim/internal/config"
	"github.com/san-kum/neurosim/internal/dynamo"
	"github.com/san-kum/neurosim/internal/export"
	"github.com/san-kum/neurosim/internal/integrators"
	"github.com/san-kum/neurosim/internal/metrics"
	"github.com/san-kum/neurosim/internal/neuron"
	"github.com/san-kum/neurosim/internal/plugin"
	"github.com/san-kum/neurosim/internal/sim"
	"github.com/san-kum/neurosim/internal/storage"
	"github.com/san-kum/neurosim/internal/viz"
)

var (
	dataDir    string
	period     float64
	duration   float64
	inputLevel float64
	burst      float64
	configFile string
	preset     string
	steps      int
	dt         float64
	// dynamic clamp
	clampEnable bool
	clampTarget float64
	kp          float64
	ki          float64
	kd          float64
	// svg export
	svgVar   string
	svgWidth int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "neurosim",
		Short: "real-time membrane potential simulator",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".neurosim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run an offline host simulation",
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&period, "period", 0.001, "host tick period (s)")
	runCmd.Flags().Float64Var(&duration, "time", 10.0, "simulated duration (s)")
	runCmd.Flags().Float64Var(&inputLevel, "input", 0.0, "constant synaptic current")
	runCmd.Flags().Float64Var(&burst, "burst", 1.0, "burst duration (s)")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	runCmd.Flags().BoolVar(&clampEnable, "clamp", false, "drive the synaptic current from a dynamic clamp")
	runCmd.Flags().Float64Var(&clampTarget, "clamp-target", -1.2, "clamp target membrane potential")
	runCmd.Flags().Float64Var(&kp, "kp", 5.0, "clamp proportional gain")
	runCmd.Flags().Float64Var(&ki, "ki", 0.5, "clamp integral gain")
	runCmd.Flags().Float64Var(&kd, "kd", 0.0, "clamp derivative gain")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot run results",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "render a run as an SVG plot",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&svgVar, "var", "x", "variable to plot: x, y, z, or phase (x vs z)")
	exportSVGCmd.Flags().IntVar(&svgWidth, "width", 800, "image width in pixels")

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the membrane trace",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "live terminal view of the membrane potential",
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&period, "period", 0.001, "host tick period (s)")
	liveCmd.Flags().Float64Var(&inputLevel, "input", 0.0, "constant synaptic current")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	compareCmd := &cobra.Command{
		Use:   "compare",
		Short: "compare steppers on the membrane model",
		RunE:  compareSteppers,
	}
	compareCmd.Flags().Float64Var(&dt, "dt", 0.0015, "step size")
	compareCmd.Flags().IntVar(&steps, "steps", 10000, "number of steps")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Println(name)
			}
			return nil
		},
	}

	metaCmd := &cobra.Command{
		Use:   "meta",
		Short: "print plugin metadata documents",
		RunE:  printMeta,
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, exportCSVCmd, exportSVGCmd, analyzeCmd, liveCmd, compareCmd, presetsCmd, metaCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

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

	// CLI flags override file and preset values.
	if cmd.Flags().Changed("period") {
		cfg.PeriodSeconds = period
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("input") {
		cfg.Input = inputLevel
	}
	if cmd.Flags().Changed("burst") {
		cfg.BurstDuration = burst
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	cell := plugin.New(1)
	cell.SetConfig(cfg.ToMap())

	host := sim.NewHost(cell)
	host.AddMetric(metrics.NewSpikeCount(metrics.DefaultSpikeThreshold))
	host.AddMetric(metrics.NewBurstRate(metrics.DefaultSpikeThreshold))
	host.AddMetric(metrics.NewBounds())

	simCfg := sim.Config{
		Period:   cfg.PeriodSeconds,
		Duration: cfg.Duration,
		Input:    func(float64) float64 { return cfg.Input },
	}
	if clampEnable {
		simCfg.Source = clamp.NewPID(kp, ki, kd, clampTarget)
	}

	fmt.Println("running membrane simulation...")
	start := time.Now()

	result, err := host.Run(context.Background(), simCfg)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	negotiatedDt, subSteps := cell.Timing()
	runID, err := st.Save(storage.RunMetadata{
		Period:        cfg.PeriodSeconds,
		Duration:      cfg.Duration,
		BurstDuration: cfg.BurstDuration,
		Dt:            negotiatedDt,
		SubSteps:      subSteps,
		Params:        cell.Params(),
	}, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("ticks: %d (dt=%g, %d sub-steps/tick)\n", result.Ticks, negotiatedDt, subSteps)
	for _, e := range result.Errors {
		fmt.Printf("warning: %v\n", e)
	}
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
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
	fmt.Fprintln(w, "ID\tTIME\tDURATION\tPERIOD\tDT\tSUBSTEPS")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%.2fs\t%.4fs\t%g\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Period,
			run.Dt,
			run.SubSteps,
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

	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(states))

	captions := []string{"x (membrane potential)", "y (fast recovery)", "z (slow adaptation)"}
	for varIdx := 0; varIdx < dynamo.Dim; varIdx++ {
		data := make([]float64, len(states))
		for i := range states {
			data[i] = states[i][varIdx]
		}

		graph := asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(captions[varIdx]),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	w := csv.NewWriter(os.Stdout)
	defer w.Flush()

	if err := w.Write([]string{"time", "x", "y", "z"}); err != nil {
		return err
	}
	for i := range states {
		row := []string{strconv.FormatFloat(times[i], 'f', 6, 64)}
		for _, val := range states[i] {
			row = append(row, strconv.FormatFloat(val, 'g', 17, 64))
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	width := svgWidth
	height := width * 3 / 8

	var doc string
	switch svgVar {
	case "x", "y", "z":
		idx := map[string]int{"x": 0, "y": 1, "z": 2}[svgVar]
		values := make([]float64, len(states))
		for i := range states {
			values[i] = states[i][idx]
		}
		doc = export.TraceToSVG(times, values, width, height, "#569cd6")
	case "phase":
		doc = export.PhaseToSVG(states, 0, 2, width, height, "#569cd6")
	default:
		return fmt.Errorf("unknown variable %q (want x, y, z, or phase)", svgVar)
	}

	if doc == "" {
		return fmt.Errorf("not enough samples to render")
	}
	fmt.Println(doc)
	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}
	if len(states) < 4 {
		return fmt.Errorf("not enough samples to analyze")
	}

	trace := make([]float64, len(states))
	for i := range states {
		trace[i] = states[i][0]
	}

	sampleRate := 1.0 / meta.Period
	spectrum := analysis.PowerSpectrum(trace)
	dominant := analysis.DominantFrequency(trace, sampleRate)

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("dominant frequency: %.3f Hz\n\n", dominant)

	bins := spectrum
	if len(bins) > 80 {
		bins = bins[:80]
	}
	graph := asciigraph.Plot(bins,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("power spectrum (low bins)"),
	)
	fmt.Println(graph)

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cell := plugin.New(1)

	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cell.SetConfig(cfg.ToMap())
	}

	return viz.Run(cell, period, inputLevel)
}

func compareSteppers(cmd *cobra.Command, args []string) error {
	steppers := []struct {
		name    string
		stepper dynamo.Stepper
	}{
		{"euler", integrators.NewEuler()},
		{"rk4", integrators.NewRK4()},
		{"cash-karp", integrators.NewCashKarp()},
	}

	model := neuron.New()
	finals := make([]dynamo.State, len(steppers))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEPPER\tX\tY\tZ\tVALID")

	for i, s := range steppers {
		state := model.DefaultState()
		for j := 0; j < steps; j++ {
			state = s.stepper.Step(model, state, 0, 0, dt)
		}
		finals[i] = state
		fmt.Fprintf(w, "%s\t%+.9f\t%+.9f\t%+.9f\t%v\n", s.name, state[0], state[1], state[2], state.IsValid())
	}
	if err := w.Flush(); err != nil {
		return err
	}

	ref := finals[len(finals)-1]
	fmt.Println()
	for i, s := range steppers[:len(steppers)-1] {
		fmt.Printf("%s drift from cash-karp: %.3e\n", s.name, finals[i].Sub(ref).Norm())
	}

	return nil
}

func printMeta(cmd *cobra.Command, args []string) error {
	cell := plugin.New(0)

	docs := map[string]any{
		"meta":     cell.Meta(),
		"inputs":   cell.Inputs(),
		"outputs":  cell.Outputs(),
		"behavior": cell.BehaviorDoc(),
		"schema":   cell.Schema(),
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(docs)
}
