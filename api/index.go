package handler

import (
	"net/http"
	"sync"

	"github.com/rs/zerolog/log"

	"rentwheels/config"
	"rentwheels/di"
	"rentwheels/shared/logger"
)

var (
	once    sync.Once
	handler http.Handler
)

// Handler is the serverless entrypoint. The dependency graph is built on the
// first request and reused while the instance stays warm.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	once.Do(func() {
		cfg := config.Get()

		logger.InitLogger()
		logger.UseJSONOutput(cfg)
		logger.SetLogLevel(cfg)

		app, err := di.InitializeService()
		if err != nil {
			log.Error().Err(err).Msg("Failed to initialize service")

			return
		}

		handler = app.HTTP.Adaptor()
	})

	if handler == nil {
		http.Error(w, "service unavailable", http.StatusServiceUnavailable)

		return
	}

	handler.ServeHTTP(w, r)
}
