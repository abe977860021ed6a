package payment

import (
	"github.com/Gpober/pdsLogix-sub001/internal/domain"
	"github.com/Gpober/pdsLogix-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	payments := r.Group("/payments")
	payments.Use(middleware.AuthMiddleware())
	{
		payments.GET("", middleware.RequireCapability(domain.CapReadPayroll), handler.GetAll)
	}
}
