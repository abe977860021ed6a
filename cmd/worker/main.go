package main

import (
	"os"

	"github.com/Gpober/pdsLogix-sub001/internal/app"
	"github.com/Gpober/pdsLogix-sub001/internal/shared/apperror"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// The outbox relay runs as its own process so a Kafka outage never backs up
// into API request handling.
func main() {
	_ = godotenv.Load()

	var logger *zap.Logger
	var err error
	if os.Getenv("APP_ENV") == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()

	if err := app.RunWorker(); err != nil {
		logger.Fatal("outbox relay stopped", zap.Error(err))
	}
}
