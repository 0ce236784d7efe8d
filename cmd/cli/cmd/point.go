package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picogrid/ballistics-sim/pkg/ballistics"
	"github.com/picogrid/ballistics-sim/pkg/config"
	"github.com/picogrid/ballistics-sim/pkg/logger"
)

var pointCmd = &cobra.Command{
	Use:   "point <distance-yards>",
	Short: "Solve the trajectory at a single distance",
	Long: `Solve a single trajectory point. Conditions come from the named preset,
or from the selected preset when none is given; wind and incline flags override it.`,
	Args: cobra.ExactArgs(1),
	RunE: solvePoint,
}

func init() {
	pointCmd.Flags().String("profile", ".308Win", "bullet profile from the catalog")
	pointCmd.Flags().Float64("zero", 100, "zero range in yards")
	pointCmd.Flags().Float64("sight", 1.5, "sight height in inches")
	pointCmd.Flags().String("conditions", "", "conditions preset name")
	pointCmd.Flags().Float64("wind-speed", 0, "wind speed in mph")
	pointCmd.Flags().Float64("wind-angle", 90, "direction the wind blows from, degrees (0 = headwind)")
	pointCmd.Flags().Float64("angle", 0, "shooting angle in degrees")
}

func solvePoint(cmd *cobra.Command, args []string) error {
	var distance float64
	if _, err := fmt.Sscanf(args[0], "%g", &distance); err != nil {
		return fmt.Errorf("invalid distance %q", args[0])
	}

	profileName, _ := cmd.Flags().GetString("profile")
	profile, ok := ballistics.LookupProfile(profileName)
	if !ok {
		return fmt.Errorf("unknown profile %s", profileName)
	}

	env, presetName, err := pointConditions(cmd)
	if err != nil {
		return err
	}

	zero, _ := cmd.Flags().GetFloat64("zero")
	sight, _ := cmd.Flags().GetFloat64("sight")

	req := ballistics.SimulationRequest{
		Profile:     profile,
		Environment: env,
		Sight: ballistics.SightConfig{
			SightHeightInches: sight,
			ZeroRangeYards:    zero,
		},
		MaxRangeYards:       distance,
		SampleIntervalYards: ballistics.DefaultSampleIntervalYards,
	}

	engine := ballistics.NewEngine(ballistics.Config{})
	p, err := engine.SolveAt(req, distance)
	if err != nil {
		return fmt.Errorf("%s", ballistics.Describe(err))
	}

	logger.Targetf("%s zeroed at %g yd, %s", profile.Name, zero, presetName)
	logger.LogSubSection(fmt.Sprintf("%g yd", distance))
	logger.LogKeyValues(map[string]interface{}{
		"Drop":     fmt.Sprintf("%.2f in (%.2f MOA)", p.DropInches, p.DropMOA),
		"Windage":  fmt.Sprintf("%.2f in (%.2f MOA)", p.WindageInches, p.WindageMOA),
		"Velocity": fmt.Sprintf("%.0f fps", p.VelocityFps),
		"Energy":   fmt.Sprintf("%.0f ft-lb", p.EnergyFtLbs),
		"Time":     fmt.Sprintf("%.3f s", p.TimeSeconds),
	})
	return nil
}

func pointConditions(cmd *cobra.Command) (ballistics.EnvironmentalConditions, string, error) {
	presets, err := config.LoadPresets()
	if err != nil {
		return ballistics.EnvironmentalConditions{}, "", fmt.Errorf("failed to load conditions: %w", err)
	}

	name, _ := cmd.Flags().GetString("conditions")
	if name == "" {
		name = presets.Selected
	}
	if name == "" {
		name = config.DefaultPresets().Selected
	}
	preset, ok := presets.Find(name)
	if !ok {
		return ballistics.EnvironmentalConditions{}, "", fmt.Errorf("conditions preset %s not found", name)
	}

	env := preset.Conditions
	overrides := []struct {
		flag string
		dst  *float64
	}{
		{"wind-speed", &env.WindSpeedMph},
		{"wind-angle", &env.WindAngleDeg},
		{"angle", &env.ShootingAngleDeg},
	}
	for _, o := range overrides {
		if cmd.Flags().Changed(o.flag) {
			*o.dst, _ = cmd.Flags().GetFloat64(o.flag)
		}
	}
	return env, preset.Name, nil
}
