package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Optional .env file for local defaults, ignored when absent.
	_ = godotenv.Load()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	if err := root().cmd().Execute(); err != nil {
		log.Fatal().Err(err).Msg("command failed")
	}
}
