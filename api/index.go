package handler

import (
	"net/http"
	"saleema/config"
	"saleema/di"
	"saleema/shared/logger"
	"sync"
)

var (
	service http.Handler
	once    sync.Once
)

// Handler is the serverless entrypoint. It serves the HTTP surface only; the
// expiry sweeper and the Kafka consumer need the long-running cmd/app.
func Handler(w http.ResponseWriter, r *http.Request) {
	once.Do(func() {
		cfg := config.Get()

		logger.Init(cfg)

		service = di.InitializeService().Handler()
	})

	r.RequestURI = r.URL.String()

	service.ServeHTTP(w, r)
}
