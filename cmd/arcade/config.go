package main

import (
	"errors"
	"flag"
	"fmt"
	"slices"

	"github.com/caarlos0/env/v11"
)

// Config holds the host configuration. Environment variables set the
// defaults and flags override them.
type Config struct {
	Game      string `env:"ARCADE_GAME" envDefault:"menu"`
	Width     int    `env:"ARCADE_WIDTH" envDefault:"800"`
	Height    int    `env:"ARCADE_HEIGHT" envDefault:"600"`
	StatsPath string `env:"ARCADE_STATS_PATH"`
	Seed      uint64 `env:"ARCADE_SEED"`
	ChessMode string `env:"ARCADE_CHESS_MODE" envDefault:"ai"`
	DebugUI   bool   `env:"ARCADE_DEBUG_UI"`
}

var (
	games      = []string{"menu", "chess", "runner", "nexus"}
	chessModes = []string{"ai", "human"}
)

// ParseConfig reads environ (the process environment when nil) and then
// parses args into fs.
func ParseConfig(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: environ}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	fs.StringVar(&cfg.Game, "game", cfg.Game, "Screen to open: menu, chess, runner or nexus")
	fs.IntVar(&cfg.Width, "width", cfg.Width, "Window width")
	fs.IntVar(&cfg.Height, "height", cfg.Height, "Window height")
	fs.StringVar(&cfg.StatsPath, "stats", cfg.StatsPath, "SQLite file for records; empty keeps them in memory")
	fs.Uint64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed; 0 seeds from the clock")
	fs.StringVar(&cfg.ChessMode, "chess-mode", cfg.ChessMode, "Chess opponent: ai or human")
	fs.BoolVar(&cfg.DebugUI, "debug-ui", cfg.DebugUI, "Show the simulation stats overlay")

	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	if !slices.Contains(games, c.Game) {
		return fmt.Errorf("unknown game %q", c.Game)
	}
	if !slices.Contains(chessModes, c.ChessMode) {
		return fmt.Errorf("unknown chess mode %q", c.ChessMode)
	}
	if c.Width <= 0 || c.Height <= 0 {
		return errors.New("window size must be positive")
	}
	return nil
}
