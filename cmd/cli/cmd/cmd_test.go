package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/picogrid/ballistics-sim/pkg/simulation"
)

func TestRootCommands(t *testing.T) {
	want := []string{"run", "list", "catalog", "point", "conditions"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("command %s not registered", name)
		}
	}
}

func TestSimulationsRegistered(t *testing.T) {
	for _, name := range []string{"Trajectory", "Profile Comparison"} {
		if _, err := simulation.DefaultRegistry.Config(name); err != nil {
			t.Errorf("Config(%s): %v", name, err)
		}
	}
}

func TestProvidedParameters(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	path := filepath.Join(dir, "params.yaml")
	data := []byte("profile: .308Win\nvital_zone_inches: 4\n")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	viper.Set("analysis.vital_zone_inches", 2.5)
	viper.Set("run.timeout", "2s")
	viper.Set("run.workers", 8)

	c := &cobra.Command{}
	c.Flags().String("params", "", "")
	if err := c.Flags().Set("params", path); err != nil {
		t.Fatal(err)
	}

	cfg, err := simulation.DefaultRegistry.Config("Trajectory")
	if err != nil {
		t.Fatal(err)
	}

	provided, err := providedParameters(c, cfg)
	if err != nil {
		t.Fatalf("providedParameters: %v", err)
	}

	if provided["profile"] != ".308Win" {
		t.Errorf("profile = %v", provided["profile"])
	}
	if provided["vital_zone_inches"] != 4 {
		t.Errorf("params file should override config, vital_zone_inches = %v", provided["vital_zone_inches"])
	}
	if provided["timeout"] != "2s" {
		t.Errorf("timeout = %v", provided["timeout"])
	}
	if _, ok := provided["workers"]; ok {
		t.Error("workers is not a Trajectory parameter")
	}
}
