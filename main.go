package main

import (
	"flag"
	"os"

	"dablo/experiments"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	games := flag.Int("games", experiments.DefaultGames, "Number of games per matchup")
	parallelism := flag.Int("parallel", experiments.DefaultParallelism, "Number of concurrent games per matchup")
	verbose := flag.Bool("v", false, "Log every move")
	flag.Parse()

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := experiments.RunMatchupExperiment(*games, *parallelism); err != nil {
		log.Fatal().Err(err).Msg("matchup experiment failed")
	}
}
