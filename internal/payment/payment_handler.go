package payment

import (
	"net/http"

	"github.com/Gpober/pdsLogix-sub001/internal/shared/apperror"
	"github.com/Gpober/pdsLogix-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payment.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payment.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) GetAll(c *gin.Context) {
	locationID := c.GetString("location_id")
	if locationID == "" {
		locationID = c.Query("location_id")
	}

	resp, err := h.service.GetAll(c.Request.Context(), locationID, c.Query("from"), c.Query("to"))
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("payment request failed",
			zap.String("path", c.FullPath()),
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
