package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/picogrid/ballistics-sim/pkg/ballistics"
	"github.com/picogrid/ballistics-sim/pkg/logger"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the built-in bullet profiles",
	RunE:  listCatalog,
}

func listCatalog(cmd *cobra.Command, args []string) error {
	table := logger.NewTable("Name", "Class", "BC", "Weight (gr)", "Diameter (in)", "Velocity (fps)", "Energy (ft-lb)")
	for _, p := range ballistics.Catalog() {
		table.AddRow(
			p.Name,
			string(p.Class),
			fmt.Sprintf("%.3f", p.BallisticCoefficient),
			fmt.Sprintf("%g", p.MassGrains),
			fmt.Sprintf("%.3f", p.DiameterInches),
			fmt.Sprintf("%g", p.MuzzleVelocityFps),
			fmt.Sprintf("%.0f", ballistics.Energy(p.MassGrains, p.MuzzleVelocityFps)),
		)
	}

	table.Print()
	return nil
}
