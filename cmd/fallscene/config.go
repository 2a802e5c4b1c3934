package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/fallscene/internal/config"
)

var flagConfigForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Print the configuration of the selected composition after config files
and flags are applied, as YAML.

Examples:
  fallscene config
  fallscene config -c scene-portrait --seed 3
  fallscene config init`,
	Run: runConfig,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config template to ~/.fallscene/configs/scene.yaml",
	Long: `Write a config template with every setting commented out. Settings
uncommented in the file override every composition.`,
	Run: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&flagConfigForce, "force", false, "Overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

func runConfig(cmd *cobra.Command, _ []string) {
	logger := newLogger()
	ls := mustLoadScene(cmd, logger)

	data, err := config.Marshal(ls.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if ls.ConfigPath != "" {
		fmt.Printf("# from %s\n", ls.ConfigPath)
	}
	os.Stdout.Write(data)
}

func runConfigInit(_ *cobra.Command, _ []string) {
	home, err := os.UserHomeDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: cannot get home directory: %v\n", err)
		os.Exit(1)
	}
	path := filepath.Join(home, ".fallscene", "configs", config.FileName)

	if err := writeConfigTemplate(path, flagConfigForce); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s\n", path)
}

// writeConfigTemplate writes the commented config template to path.
func writeConfigTemplate(path string, force bool) error {
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, config.OverlayTemplate(), 0o644)
}
