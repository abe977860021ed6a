package app

import (
	"github.com/Gpober/pdsLogix-sub001/internal/employee"
	"github.com/Gpober/pdsLogix-sub001/internal/location"
	"github.com/Gpober/pdsLogix-sub001/internal/messaging/kafka"
	"github.com/Gpober/pdsLogix-sub001/internal/payment"
	"github.com/Gpober/pdsLogix-sub001/internal/submission"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

func registerModules(
	router *gin.Engine,
	gormDB *gorm.DB,
	rdb *redis.Client,
) error {
	// --- Repositories ---
	employeeRepo := employee.NewRepository(gormDB)
	locationRepo := location.NewRepository(gormDB)
	outboxRepo := kafka.NewOutboxRepository(gormDB)
	paymentRepo := payment.NewRepository(gormDB)
	submissionRepo := submission.NewRepository(gormDB)

	// --- Services ---
	employeeService := employee.NewService(employeeRepo)
	paymentService := payment.NewService(paymentRepo)
	poster := submission.NewPoster(gormDB, submissionRepo, paymentRepo, locationRepo, outboxRepo)
	submissionService := submission.NewService(gormDB, submissionRepo, poster)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService)
	paymentHandler := payment.NewHandler(paymentService)
	submissionHandler := submission.NewHandler(submissionService)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	{
		employee.RegisterRoutes(api, employeeHandler)
		payment.RegisterRoutes(api, paymentHandler)
		submission.RegisterRoutes(api, submissionHandler, rdb)
	}

	return nil
}
