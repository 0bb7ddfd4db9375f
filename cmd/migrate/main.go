package main

import (
	"os"
	"pawstay/config"
	"pawstay/helper"
	"pawstay/shared/logger"
	"strings"

	"github.com/rs/zerolog/log"
)

const (
	argLength = 2
)

func main() {
	logger.InitLogger()

	if len(os.Args) < argLength {
		log.Fatal().Msgf("Migration action is required: %s", strings.Join(helper.Actions(), ", "))
	}

	cfg := config.Get()
	logger.SetLogLevel(cfg)

	if err := helper.Run(cfg, os.Args[1]); err != nil {
		log.Fatal().Err(err).Str("action", os.Args[1]).Msg("Migration failed")
	}
}
