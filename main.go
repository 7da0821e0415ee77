package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"strconv"

	"cubirds/engine"
	"cubirds/experiments"
	"cubirds/meta"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Defaults may come from a .env file or the environment
	_ = godotenv.Load()

	games := flag.Int("games", envInt("CUBIRDS_GAMES", 100), "Number of games to play")
	seed := flag.Uint64("seed", uint64(envInt("CUBIRDS_SEED", 1)), "Seed the per game seeds are drawn from")
	player1 := flag.String("p1", envString("CUBIRDS_P1", "greedy"), "Strategy of player 1: greedy, montecarlo or random")
	player2 := flag.String("p2", envString("CUBIRDS_P2", "random"), "Strategy of player 2: greedy, montecarlo or random")
	rollouts := flag.Int("rollouts", envInt("CUBIRDS_ROLLOUTS", meta.ROLLOUTS), "Playouts per candidate move for montecarlo players")
	goroutines := flag.Int("goroutines", envInt("CUBIRDS_GOROUTINES", meta.GO_ROUTINES), "Goroutines per montecarlo search")
	workers := flag.Int("workers", envInt("CUBIRDS_WORKERS", 1), "Games played at once")
	out := flag.String("out", envString("CUBIRDS_OUT", ""), "Directory for CSV records, empty to skip")
	verbose := flag.Bool("v", false, "Log every turn")
	flag.Parse()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}

	agents := [2]experiments.Agent{}
	for i, name := range []string{*player1, *player2} {
		kind, err := engine.ParseStrategy(name)
		if err != nil {
			log.Fatal().Err(err).Msgf("invalid strategy for player %d", i+1)
		}
		config := engine.DefaultConfig(kind)
		config.Rollouts = *rollouts
		config.Goroutines = *goroutines
		agents[i] = experiments.Agent{ID: i + 1, Config: config}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	matchup := experiments.Matchup{
		Agent1:  agents[0],
		Agent2:  agents[1],
		Games:   *games,
		Seed:    *seed,
		Workers: *workers,
		Record:  *out != "",
	}
	if _, err := experiments.Run(ctx, "matchup", *out, []experiments.Matchup{matchup}); err != nil {
		log.Fatal().Err(err).Msg("experiment failed")
	}
}

func envString(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func envInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		log.Warn().Err(err).Msgf("ignoring %s", key)
		return fallback
	}
	return n
}
