package main

import (
	"os"
	"saleema/config"
	"saleema/helper"
	"saleema/shared/logger"

	"github.com/rs/zerolog/log"
)

const argLength = 2

func main() {
	cfg := config.Get()

	logger.Init(cfg)

	if len(os.Args) < argLength {
		log.Fatal().Msg("migration action is required: up, down, step-up or drop")
	}

	if err := helper.Run(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Msg("migration failed")
	}
}
