package employee

import (
	"github.com/Gpober/pdsLogix-sub001/internal/domain"
	"github.com/Gpober/pdsLogix-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

func RegisterRoutes(r *gin.RouterGroup, handler *Handler) {
	employees := r.Group("/employees")
	employees.Use(middleware.AuthMiddleware())
	{
		employees.GET("", middleware.RequireCapability(domain.CapReadPayroll), handler.GetAll)
		employees.GET("/:id", middleware.RequireCapability(domain.CapReadPayroll), handler.GetById)
		employees.POST("", middleware.RequireCapability(domain.CapManageStaff), handler.Create)
		employees.PUT("/:id", middleware.RequireCapability(domain.CapManageStaff), handler.Update)
		employees.DELETE("/:id", middleware.RequireCapability(domain.CapManageStaff), handler.Archive)
	}
}
