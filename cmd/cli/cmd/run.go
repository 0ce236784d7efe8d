package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/picogrid/ballistics-sim/pkg/logger"
	"github.com/picogrid/ballistics-sim/pkg/report"
	"github.com/picogrid/ballistics-sim/pkg/simulation"
	"github.com/picogrid/ballistics-sim/pkg/utils"

	// Import simulations to register them
	_ "github.com/picogrid/ballistics-sim/cmd/compare"
	_ "github.com/picogrid/ballistics-sim/cmd/trajectory"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation",
	Long:  `Run a simulation interactively or with specified parameters`,
	RunE:  runSimulation,
}

// configDefaults maps config keys to the simulation parameters they fill
var configDefaults = map[string]string{
	"engine.time_step":             "time_step",
	"engine.max_flight_time":       "max_flight_time",
	"engine.zero_tolerance_inches": "zero_tolerance_inches",
	"analysis.vital_zone_inches":   "vital_zone_inches",
	"analysis.sample_interval":     "sample_interval_yards",
	"run.timeout":                  "timeout",
	"run.workers":                  "workers",
}

func init() {
	runCmd.Flags().StringP("simulation", "s", "", "simulation name to run")
	runCmd.Flags().StringP("params", "p", "", "parameters file (YAML)")
	runCmd.Flags().String("output-dir", "", "directory for exported files")
	runCmd.Flags().Bool("json", false, "export the run as JSON")
	runCmd.Flags().Bool("csv", false, "export each trajectory as CSV")
	runCmd.Flags().Bool("png", false, "export a drop plot as PNG")
	runCmd.Flags().Bool("chart", true, "draw an ASCII drop chart")
	runCmd.Flags().String("share-url", "", "print a share link with this base URL")

	_ = viper.BindPFlag("output.dir", runCmd.Flags().Lookup("output-dir"))
	_ = viper.BindPFlag("output.chart", runCmd.Flags().Lookup("chart"))
	_ = viper.BindPFlag("share.url", runCmd.Flags().Lookup("share-url"))
}

func runSimulation(cmd *cobra.Command, _ []string) error {
	simName, err := selectSimulation(cmd)
	if err != nil {
		return fmt.Errorf("failed to select simulation: %w", err)
	}

	sim, err := simulation.DefaultRegistry.Get(simName)
	if err != nil {
		return fmt.Errorf("failed to get simulation: %w", err)
	}

	simConfig, err := simulation.DefaultRegistry.Config(simName)
	if err != nil {
		return fmt.Errorf("failed to load simulation configuration: %w", err)
	}

	provided, err := providedParameters(cmd, simConfig)
	if err != nil {
		return err
	}

	params, err := utils.ResolveParameters(simConfig.Parameters, provided)
	if err != nil {
		return fmt.Errorf("failed to get parameters: %w", err)
	}

	if err := sim.Configure(params); err != nil {
		return fmt.Errorf("failed to configure simulation: %w", err)
	}

	collector := report.NewCollector(reportOptions(cmd))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			logger.Warn("Received interrupt signal, stopping simulation...")
			if err := sim.Stop(); err != nil {
				logger.Errorf("Failed to stop simulation: %v", err)
			}
			cancel()
		case <-ctx.Done():
		}
	}()

	logger.LogSection(fmt.Sprintf("Starting %s", sim.Name()))
	runErr := sim.Run(ctx, collector)
	collector.Summarize()

	paths, err := collector.Export()
	if len(paths) > 0 {
		logger.LogList(fmt.Sprintf("%s Exported %d files", logger.IconFolder, len(paths)), paths)
	}
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if runErr != nil {
		return fmt.Errorf("simulation failed: %w", runErr)
	}

	logger.Success("Simulation completed successfully")
	return nil
}

// providedParameters merges config file defaults with the params file. Parameters in
// neither are prompted for.
func providedParameters(cmd *cobra.Command, simConfig *simulation.SimulationConfig) (map[string]interface{}, error) {
	provided := make(map[string]interface{})
	for key, name := range configDefaults {
		if _, declared := simConfig.Parameter(name); declared && viper.IsSet(key) {
			provided[name] = viper.Get(key)
		}
	}

	paramsFile, _ := cmd.Flags().GetString("params")
	if paramsFile == "" {
		return provided, nil
	}

	fromFile, err := utils.LoadParamsFile(paramsFile)
	if err != nil {
		return nil, err
	}
	for name, value := range fromFile {
		provided[name] = value
	}
	logger.Infof("%s Loaded %d parameters from %s", logger.IconFile, len(fromFile), paramsFile)
	return provided, nil
}

func reportOptions(cmd *cobra.Command) report.Options {
	flag := func(name string) bool {
		v, _ := cmd.Flags().GetBool(name)
		return v
	}

	width := terminalWidth() - 12
	if width < 20 {
		width = report.DefaultChartWidth
	}

	return report.Options{
		Console:    true,
		Chart:      viper.GetBool("output.chart"),
		ChartWidth: width,
		OutputDir:  viper.GetString("output.dir"),
		JSON:       flag("json"),
		CSV:        flag("csv"),
		PNG:        flag("png"),
		ShareURL:   viper.GetString("share.url"),
		Writer:     os.Stdout,
	}
}

func selectSimulation(cmd *cobra.Command) (string, error) {
	// Check if simulation is specified via flag
	simName, _ := cmd.Flags().GetString("simulation")
	if simName != "" {
		return simName, nil
	}

	simInfos, err := utils.DiscoverSimulations(simulation.DefaultRegistry)
	if err != nil {
		return "", err
	}

	if len(simInfos) == 0 {
		return "", fmt.Errorf("no simulations found")
	}

	options := make([]string, len(simInfos))
	descriptions := make(map[string]string)

	for i, info := range simInfos {
		options[i] = info.Config.Name
		descriptions[info.Config.Name] = info.Config.Description
	}

	var selected string
	prompt := &survey.Select{
		Message: "Select simulation:",
		Options: options,
		Description: func(value string, index int) string {
			return descriptions[value]
		},
	}

	if err := survey.AskOne(prompt, &selected); err != nil {
		return "", err
	}

	return selected, nil
}
