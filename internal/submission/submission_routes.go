package submission

import (
	"github.com/Gpober/pdsLogix-sub001/internal/domain"
	"github.com/Gpober/pdsLogix-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rdb *redis.Client,
) {
	r.GET("/periods", middleware.RateLimitByIP(20, 40), handler.GetPeriod)

	submissions := r.Group("/submissions")
	submissions.Use(middleware.AuthMiddleware())
	{
		submissions.GET("", middleware.RequireCapability(domain.CapReadPayroll), handler.GetAll)
		submissions.GET("/pending", middleware.RequireCapability(domain.CapReviewPayroll), handler.GetPendingQueue)
		submissions.GET("/:id", middleware.RequireCapability(domain.CapReadPayroll), handler.GetById)
		submissions.GET("/:id/audits", middleware.RequireCapability(domain.CapReadPayroll), handler.GetAudits)

		// Auto-save arrives in bursts even with client debouncing.
		submissions.PUT("/draft",
			middleware.RequireCapability(domain.CapSubmitPayroll),
			middleware.RateLimitByUser(rate.Limit(5), 10),
			handler.SaveDraft)

		submissions.POST("/submit",
			middleware.RequireCapability(domain.CapSubmitPayroll),
			middleware.Idempotency(rdb),
			handler.Submit)
		submissions.POST("/:id/approve",
			middleware.RequireCapability(domain.CapReviewPayroll),
			middleware.Idempotency(rdb),
			handler.Approve)
		submissions.POST("/:id/reject",
			middleware.RequireCapability(domain.CapReviewPayroll),
			middleware.Idempotency(rdb),
			handler.Reject)
	}
}
