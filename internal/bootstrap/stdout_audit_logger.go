package bootstrap

import (
	"context"
	"time"

	"github.com/Gpober/pdsLogix-sub001/internal/shared/contextutil"

	"go.uber.org/zap"
)

// StdoutAuditLogger writes audit records as structured log lines. Reviewer
// actions carry their own database audit trail; this sink covers process
// lifecycle events where no database may be reachable.
type StdoutAuditLogger struct{}

func NewStdoutAuditLogger() *StdoutAuditLogger {
	return &StdoutAuditLogger{}
}

func (l *StdoutAuditLogger) Log(ctx context.Context, entry AuditLog) {
	zap.L().Named("payroll.audit").Info("audit event",
		zap.String("timestamp", time.Now().UTC().Format(time.RFC3339)),
		zap.String("action", entry.Action),
		zap.String("message", entry.Message),
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.Any("meta", entry.Meta),
	)
}
