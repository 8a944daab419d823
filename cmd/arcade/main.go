// Command arcade opens the chess, runner and nexus games in a desktop window.
package main

import (
	"errors"
	"flag"
	"log"
	"math/rand/v2"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/arcade/chess"
	debugebiten "github.com/plus3/arcade/ecs/debugui/ebiten"
	"github.com/plus3/arcade/stats"
	"github.com/plus3/arcade/stats/sqlite"
)

const title = "Sider Arcade"

func main() {
	cfg, err := ParseConfig(flag.CommandLine, os.Args[1:], nil)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	store, closeStore, err := openStore(cfg.StatsPath)
	if err != nil {
		log.Fatalf("open stats: %v", err)
	}
	defer closeStore()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Printf("arcade: seed %d", seed)

	mode := chess.VsAI
	if cfg.ChessMode == "human" {
		mode = chess.VsHuman
	}

	a := newApp(appConfig{
		Width:     float64(cfg.Width),
		Height:    float64(cfg.Height),
		Screen:    cfg.Game,
		ChessMode: mode,
		Store:     store,
		Rand:      rand.New(rand.NewPCG(seed, 0)),
		Logger:    log.Default(),
	})
	h := &host{app: a, width: cfg.Width, height: cfg.Height}

	if cfg.DebugUI {
		h.overlay = debugebiten.New(title, cfg.Width, cfg.Height, a.Scheduler)
	} else {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
		ebiten.SetWindowTitle(title)
	}

	if err := ebiten.RunGame(h); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatalf("run: %v", err)
	}
}

// openStore opens the SQLite store at path, or a memory store when path is
// empty.
func openStore(path string) (stats.Store, func(), error) {
	if path == "" {
		return stats.NewMemoryStore(), func() {}, nil
	}
	s, err := sqlite.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return s, func() {
		if err := s.Close(); err != nil {
			log.Printf("arcade: close stats: %v", err)
		}
	}, nil
}
