// Package main is the entry point for GridClash.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/joho/godotenv"

	"github.com/samdwyer/gridclash/data"
	"github.com/samdwyer/gridclash/internal/game"
	"github.com/samdwyer/gridclash/internal/gamedata"
	"github.com/samdwyer/gridclash/internal/match"
	"github.com/samdwyer/gridclash/internal/scenario"
	"github.com/samdwyer/gridclash/internal/telemetry"
)

func main() {
	var (
		scenarioPath = flag.String("scenario", "", "path to a scenario YAML file (default: embedded skirmish)")
		seed         = flag.Int64("seed", 0, "random seed (0 = time-based)")
	)
	flag.Parse()

	// Load .env for local development; env vars may also be set directly.
	if err := godotenv.Load(); err != nil {
		log.Printf("Note: .env file not loaded: %v", err)
	}

	ctx := context.Background()

	// Telemetry is best-effort; the game runs without it.
	shutdown, err := telemetry.Setup(ctx)
	if err != nil {
		log.Printf("Warning: telemetry setup failed: %v", err)
	} else {
		defer func() {
			if err := shutdown(ctx); err != nil {
				log.Printf("Error shutting down telemetry: %v", err)
			}
		}()
	}

	var scn *scenario.Scenario
	if *scenarioPath != "" {
		scn, err = scenario.Load(*scenarioPath)
	} else {
		scn, err = scenario.LoadFS(data.FS(), "scenarios/skirmish.yaml")
	}
	if err != nil {
		log.Fatalf("Failed to load scenario: %v", err)
	}

	registry := gamedata.MustLoadUnitRegistry()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	m, err := match.New(ctx, scn, registry, match.DefaultConfig(), rng)
	if err != nil {
		log.Fatalf("Failed to set up match: %v", err)
	}

	g, err := game.New(m)
	if err != nil {
		log.Fatalf("Failed to initialize game: %v", err)
	}

	if err := g.Run(ctx); err != nil {
		g.Close()
		log.Fatalf("Game error: %v", err)
	}
}
