package submission

import (
	"net/http"

	"github.com/Gpober/pdsLogix-sub001/internal/period"
	"github.com/Gpober/pdsLogix-sub001/internal/shared/apperror"
	"github.com/Gpober/pdsLogix-sub001/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	drafts  *AutoSaver
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("submission.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("submission.handler")
	}
	return &Handler{
		service: service,
		drafts:  NewAutoSaver(service, logger...),
		logger:  l,
	}
}

func getActorID(c *gin.Context) string {
	return c.GetString("user_id")
}

func requestLocationID(c *gin.Context) string {
	if lid := c.GetString("location_id"); lid != "" {
		return lid
	}
	return c.Query("location_id")
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("submission request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

// GetPeriod derives {group, start, end} for a candidate pay date. The client
// calls this every time the pay date changes; it is pure and carries no
// caching headers for that reason.
func (h *Handler) GetPeriod(c *gin.Context) {
	p, err := period.Parse(c.Query("pay_date"))
	if err != nil || !p.Valid {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR",
			"pay_date must be YYYY-MM-DD", nil)
		return
	}

	response.Success(c, http.StatusOK, PeriodResponse{
		PayrollGroup: string(p.Group),
		PeriodStart:  p.Start.Format(period.DateLayout),
		PeriodEnd:    p.End.Format(period.DateLayout),
	}, nil)
}

// SaveDraft is the best-effort auto-save endpoint. Each request queues its
// snapshot and flushes through the AutoSaver, so bursts on the same
// (location, pay date, group) key coalesce into one in-flight save.
// Validation problems are surfaced; persistence problems are logged and
// answered with saved=false so the client's next debounce cycle retries.
func (h *Handler) SaveDraft(c *gin.Context) {
	var req SaveDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	locationID := requestLocationID(c)
	h.drafts.Queue(locationID, getActorID(c), req)
	resp, state := h.drafts.Flush(c.Request.Context(), locationID, req.PayDate, req.PayrollGroup)
	if state.LastError != nil {
		httpErr := apperror.ToHTTP(state.LastError)
		if httpErr.Status < http.StatusInternalServerError {
			h.writeServiceError(c, state.LastError)
			return
		}
		h.logger.Warn("draft auto-save failed, client will retry",
			zap.String("pay_date", req.PayDate),
			zap.Error(state.LastError),
		)
		response.Success(c, http.StatusOK, DraftResponse{Saved: false}, nil)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Submit(c.Request.Context(), requestLocationID(c), getActorID(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	resp, err := h.service.Approve(c.Request.Context(), getActorID(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Reject(c *gin.Context) {
	var req RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Reject(c.Request.Context(), getActorID(c), c.Param("id"), req.Note)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context(), requestLocationID(c), c.Query("status"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetAudits lists the reviewer action history for one submission.
func (h *Handler) GetAudits(c *gin.Context) {
	resp, err := h.service.GetAudits(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

// GetPendingQueue is the reviewer inbox.
func (h *Handler) GetPendingQueue(c *gin.Context) {
	resp, err := h.service.GetPendingQueue(c.Request.Context())
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
