package handler

import (
	"net/http"

	"atrium/config"
	"atrium/di"
	"atrium/shared/logger"
)

// Handler is the serverless entry point. It boots the full service graph per
// invocation and delegates to the chi router.
func Handler(w http.ResponseWriter, r *http.Request) {
	r.RequestURI = r.URL.String()

	cfg := config.Get()

	logger.InitLogger()
	logger.SetLogLevel(cfg)

	service := di.InitializeService()
	service.Handler().ServeHTTP(w, r)
}
