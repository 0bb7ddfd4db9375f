package handler

import (
	"net/http"
	"pawstay/config"
	"pawstay/di"
	"pawstay/shared/logger"
	"sync"

	"github.com/rs/zerolog/log"
)

var (
	once    sync.Once
	handler http.HandlerFunc
)

func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()

		logger.SetLogLevel(cfg)

		server, err := di.InitializeService()
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize service")
		}

		handler = server.Adaptor()
	})

	handler(w, r)
}
