package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/fallscene/internal/config"
	"github.com/vovakirdan/fallscene/internal/registry"
	"github.com/vovakirdan/fallscene/internal/scene"
)

// planCache is shared by every simulator built in this process.
var planCache = scene.NewPlanCache(scene.DefaultPlanCacheSize)

// loadedScene is a composition resolved through config files and flags.
type loadedScene struct {
	Composition registry.Composition
	File        config.File
	ConfigPath  string // Config file applied, empty if none
	Sim         *scene.Simulator
}

// newLogger returns the CLI logger.
func newLogger() *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		Prefix: "fallscene",
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// applyOverrides copies explicitly set flags onto f.
func applyOverrides(cmd *cobra.Command, f *config.File) {
	flags := cmd.Flags()
	if flags.Changed("seed") {
		f.Scene.Seed = flagSeed
	}
	if flags.Changed("spawn-count") {
		f.Scene.SpawnCount = flagSpawnCount
	}
	if flags.Changed("fall-speed") {
		f.Scene.FallSpeed = flagFallSpeed
	}
	if flags.Changed("item-scale") {
		f.Scene.ItemScale = flagItemScale
	}
	if flags.Changed("background") {
		f.Scene.BackgroundColor = flagBackground
	}
	if flags.Changed("asset") {
		f.Scene.Asset.Source = flagAsset
	}
	if flags.Changed("asset-kind") {
		f.Scene.Asset.Kind = flagAssetKind
	}
	if flags.Changed("width") {
		f.Video.Width = flagWidth
	}
	if flags.Changed("height") {
		f.Video.Height = flagHeight
	}
	if flags.Changed("fps") {
		f.Video.FPS = flagFPS
	}
	if flags.Changed("frames") {
		f.Video.DurationInFrames = flagFrames
	}
}

// loadScene resolves the composition selected with --composition.
func loadScene(cmd *cobra.Command, logger *log.Logger) (*loadedScene, error) {
	return loadComposition(cmd, flagComposition, logger)
}

// loadComposition resolves a composition: defaults, then the config file,
// then flags. The result is validated before planning.
func loadComposition(cmd *cobra.Command, id string, logger *log.Logger) (*loadedScene, error) {
	if !registry.Exists(id) {
		return nil, fmt.Errorf("unknown composition %q (run 'fallscene list' to see compositions)", id)
	}
	comp, err := registry.Create(id)
	if err != nil {
		return nil, err
	}

	file, path, err := config.Load(flagConfig, comp.Defaults)
	if err != nil {
		return nil, err
	}
	if path != "" {
		logger.Debug("config loaded", "path", path)
	}

	applyOverrides(cmd, &file)
	if flagClamp {
		file.Scene = config.Normalize(file.Scene)
	}
	if err := config.Validate(file); err != nil {
		return nil, err
	}

	simCfg, err := file.Scene.Simulation()
	if err != nil {
		return nil, err
	}
	sim, err := scene.NewSimulator(simCfg, file.Video.Runtime(),
		scene.WithLogger(logger),
		scene.WithPlanCache(planCache),
	)
	if err != nil {
		return nil, err
	}

	return &loadedScene{
		Composition: comp,
		File:        file,
		ConfigPath:  path,
		Sim:         sim,
	}, nil
}

// mustLoadScene is loadScene for Run funcs: it exits on error.
func mustLoadScene(cmd *cobra.Command, logger *log.Logger) *loadedScene {
	ls, err := loadScene(cmd, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return ls
}
