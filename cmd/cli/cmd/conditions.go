package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"github.com/picogrid/ballistics-sim/pkg/ballistics"
	"github.com/picogrid/ballistics-sim/pkg/config"
	"github.com/picogrid/ballistics-sim/pkg/logger"
)

var conditionsCmd = &cobra.Command{
	Use:   "conditions",
	Short: "Manage shooting conditions presets",
	Long:  `Manage the named atmosphere and wind presets used by simulations`,
}

var conditionsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List conditions presets",
	RunE:  listConditions,
}

var conditionsAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a new conditions preset",
	RunE:  addConditions,
}

var conditionsRemoveCmd = &cobra.Command{
	Use:   "remove",
	Short: "Remove a conditions preset",
	RunE:  removeConditions,
}

var conditionsSelectCmd = &cobra.Command{
	Use:   "select",
	Short: "Select the default conditions preset",
	RunE:  selectConditions,
}

func init() {
	conditionsCmd.AddCommand(conditionsListCmd)
	conditionsCmd.AddCommand(conditionsAddCmd)
	conditionsCmd.AddCommand(conditionsRemoveCmd)
	conditionsCmd.AddCommand(conditionsSelectCmd)
}

func listConditions(cmd *cobra.Command, args []string) error {
	presets, err := config.LoadPresets()
	if err != nil {
		return fmt.Errorf("failed to load conditions: %w", err)
	}

	if len(presets.Presets) == 0 {
		fmt.Println("No conditions presets configured")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "NAME\tTEMP (F)\tPRESSURE (inHg)\tHUMIDITY (%)\tWIND\tANGLE\tDENSITY")
	_, _ = fmt.Fprintln(w, "----\t--------\t---------------\t------------\t----\t-----\t-------")

	for _, preset := range presets.Presets {
		c := preset.Conditions
		name := preset.Name
		if strings.EqualFold(name, presets.Selected) {
			name += " *"
		}
		density := "-"
		if ratio, err := ballistics.AirDensityRatio(c.TemperatureF, c.PressureInHg, c.HumidityPercent); err == nil {
			density = fmt.Sprintf("%.3f", ratio)
		}
		_, _ = fmt.Fprintf(w, "%s\t%g\t%g\t%g\t%g mph @ %g°\t%g°\t%s\n",
			name, c.TemperatureF, c.PressureInHg, c.HumidityPercent, c.WindSpeedMph, c.WindAngleDeg, c.ShootingAngleDeg, density)
	}

	return w.Flush()
}

func addConditions(cmd *cobra.Command, args []string) error {
	presets, err := config.LoadPresets()
	if err != nil {
		return fmt.Errorf("failed to load conditions: %w", err)
	}

	var preset config.Preset

	namePrompt := &survey.Input{
		Message: "Preset name:",
	}
	if err := survey.AskOne(namePrompt, &preset.Name, survey.WithValidator(survey.Required)); err != nil {
		return err
	}

	if _, exists := presets.Find(preset.Name); exists {
		return fmt.Errorf("preset %s already exists", preset.Name)
	}

	fields := []struct {
		message string
		def     string
		dst     *float64
	}{
		{"Temperature (°F):", "59", &preset.Conditions.TemperatureF},
		{"Pressure (inHg):", "29.92", &preset.Conditions.PressureInHg},
		{"Relative humidity (%):", "0", &preset.Conditions.HumidityPercent},
		{"Wind speed (mph):", "0", &preset.Conditions.WindSpeedMph},
		{"Wind from (degrees, 0 = headwind):", "90", &preset.Conditions.WindAngleDeg},
		{"Shooting angle (degrees):", "0", &preset.Conditions.ShootingAngleDeg},
	}
	for _, f := range fields {
		if err := askFloat(f.message, f.def, f.dst); err != nil {
			return err
		}
	}

	if err := presets.Add(preset); err != nil {
		return fmt.Errorf("%s", ballistics.Describe(err))
	}

	if err := config.SavePresets(presets); err != nil {
		return fmt.Errorf("failed to save conditions: %w", err)
	}

	logger.Successf("Preset %s added", preset.Name)
	return nil
}

func removeConditions(cmd *cobra.Command, args []string) error {
	presets, err := config.LoadPresets()
	if err != nil {
		return fmt.Errorf("failed to load conditions: %w", err)
	}

	if len(presets.Presets) == 0 {
		fmt.Println("No conditions presets to remove")
		return nil
	}

	var selected string
	prompt := &survey.Select{
		Message: "Select preset to remove:",
		Options: presets.Names(),
	}
	if err := survey.AskOne(prompt, &selected); err != nil {
		return err
	}

	var confirm bool
	confirmPrompt := &survey.Confirm{
		Message: fmt.Sprintf("Are you sure you want to remove %s?", selected),
		Default: false,
	}
	if err := survey.AskOne(confirmPrompt, &confirm); err != nil {
		return err
	}

	if !confirm {
		fmt.Println("Removal cancelled")
		return nil
	}

	if err := presets.Remove(selected); err != nil {
		return err
	}

	if err := config.SavePresets(presets); err != nil {
		return fmt.Errorf("failed to save conditions: %w", err)
	}

	logger.Successf("Preset %s removed", selected)
	return nil
}

func selectConditions(cmd *cobra.Command, args []string) error {
	presets, err := config.LoadPresets()
	if err != nil {
		return fmt.Errorf("failed to load conditions: %w", err)
	}

	if len(presets.Presets) == 0 {
		return fmt.Errorf("no conditions presets configured")
	}

	prompt := &survey.Select{
		Message: "Select default preset:",
		Options: presets.Names(),
	}
	if _, ok := presets.Find(presets.Selected); ok {
		prompt.Default = presets.Selected
	}
	if err := survey.AskOne(prompt, &presets.Selected); err != nil {
		return err
	}

	if err := config.SavePresets(presets); err != nil {
		return fmt.Errorf("failed to save conditions: %w", err)
	}

	fmt.Printf("Preset %s selected\n", presets.Selected)
	return nil
}

func askFloat(message, def string, dst *float64) error {
	var answer string
	prompt := &survey.Input{Message: message, Default: def}
	validate := func(ans interface{}) error {
		if _, err := strconv.ParseFloat(strings.TrimSpace(ans.(string)), 64); err != nil {
			return fmt.Errorf("please enter a number")
		}
		return nil
	}
	if err := survey.AskOne(prompt, &answer, survey.WithValidator(validate)); err != nil {
		return err
	}
	v, _ := strconv.ParseFloat(strings.TrimSpace(answer), 64)
	*dst = v
	return nil
}
