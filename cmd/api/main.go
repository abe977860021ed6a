package main

import (
	"os"
	"time"

	"github.com/Gpober/pdsLogix-sub001/internal/app"
	"github.com/Gpober/pdsLogix-sub001/internal/bootstrap"
	"github.com/Gpober/pdsLogix-sub001/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func newLogger() (*zap.Logger, error) {
	if os.Getenv("APP_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func main() {
	_ = godotenv.Load()
	logger, err := newLogger()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()
	zap.ReplaceGlobals(logger)

	apperror.Init()
	r := gin.Default()

	if err := app.BuildApp(r); err != nil {
		logger.Fatal("payroll api bootstrap failed", zap.Error(err))
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	bootstrap.StartHTTPServer(
		r,
		bootstrap.ServerConfig{
			Port:         port,
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
			// Posting spans three transactions; give in-flight approvals a
			// full drain window before the listener is torn down.
			ShutdownTimeout: 15 * time.Second,
		},
		bootstrap.NewStdoutAuditLogger(),
	)
}
