package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/codememory/internal/cli"
	"github.com/robalobadob/codememory/internal/config"
)

func main() {
	_ = godotenv.Load()

	if err := cli.NewRootCommand(config.Load()).Execute(); err != nil {
		log.Error().Err(err).Msg("codememory")
		os.Exit(1)
	}
}
