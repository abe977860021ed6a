package middleware

import (
	"github.com/Gpober/pdsLogix-sub001/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// RequestIDHeader carries the correlation id end to end: the UI echoes it on
// retries of the same auto-save, and the outbox worker stamps it onto
// published events.
const RequestIDHeader = "X-Request-ID"

// RequestID trusts a caller-supplied id only when it parses as a UUID;
// anything else is replaced so log correlation keys stay well-formed.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if _, err := uuid.Parse(rid); err != nil {
			rid = uuid.New().String()
		}

		c.Set("request_id", rid)

		ctx := contextutil.WithRequestID(c.Request.Context(), rid)
		c.Request = c.Request.WithContext(ctx)

		c.Header(RequestIDHeader, rid)
		c.Next()
	}
}
