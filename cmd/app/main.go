package main

import (
	"atrium/config"
	"atrium/di"
	"atrium/shared/logger"
)

// @title Atrium Reservation API
// @version 1.0
// @description Shared-space reservation lifecycle and conflict resolution service.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
