package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/taleweaver/internal/config"
	"github.com/cory-johannsen/taleweaver/internal/game/dice"
	"github.com/cory-johannsen/taleweaver/internal/game/npc"
	"github.com/cory-johannsen/taleweaver/internal/game/quest"
	"github.com/cory-johannsen/taleweaver/internal/observability"
)

func newRootCmd() *cobra.Command {
	var configPath string
	root := &cobra.Command{
		Use:           "taleweaver",
		Short:         "Text adventure with dice-driven combat and paced storytelling",
		Long:          `taleweaver runs a turn-based text adventure: a d20 combat engine, a five-phase pacing arc and a pluggable narrator.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to YAML configuration file (defaults plus TALEWEAVER_* env when empty)")

	root.AddCommand(newPlayCmd(&configPath))
	root.AddCommand(newRollCmd(&configPath))
	root.AddCommand(newEnemiesCmd(&configPath))
	return root
}

// app holds the dependencies every subcommand builds from configuration.
type app struct {
	cfg      config.Config
	logger   *zap.Logger
	registry *npc.Registry
	roller   *dice.Roller
}

func newApp(configPath string, seedOverride *int64) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if seedOverride != nil {
		cfg.Dice.Source = "seeded"
		cfg.Dice.Seed = *seedOverride
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}

	registry := npc.DefaultRegistry()
	if cfg.Content.EnemiesDir != "" {
		templates, err := npc.LoadTemplates(cfg.Content.EnemiesDir)
		if err != nil {
			return nil, fmt.Errorf("loading enemy templates: %w", err)
		}
		for _, t := range templates {
			if err := registry.Register(t); err != nil {
				return nil, fmt.Errorf("registering enemy %q: %w", t.ID, err)
			}
		}
		logger.Info("enemy templates loaded",
			zap.String("dir", cfg.Content.EnemiesDir),
			zap.Int("count", len(templates)),
		)
	}

	var src dice.Source
	switch cfg.Dice.Source {
	case "seeded":
		src = dice.NewSeededSource(cfg.Dice.Seed)
	default:
		src = dice.NewCryptoSource()
	}

	return &app{
		cfg:      cfg,
		logger:   logger,
		registry: registry,
		roller:   dice.NewLoggedRoller(src, logger),
	}, nil
}

// loadQuest returns the configured quest, or the starter quest.
func (a *app) loadQuest() (*quest.Quest, error) {
	if a.cfg.Content.QuestFile == "" {
		return quest.Default(), nil
	}
	data, err := os.ReadFile(a.cfg.Content.QuestFile)
	if err != nil {
		return nil, fmt.Errorf("reading quest file: %w", err)
	}
	return quest.LoadFromBytes(data)
}
