package submission

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/Gpober/pdsLogix-sub001/internal/events"
	"github.com/Gpober/pdsLogix-sub001/internal/location"
	"github.com/Gpober/pdsLogix-sub001/internal/messaging/kafka"
	"github.com/Gpober/pdsLogix-sub001/internal/payment"
	"github.com/Gpober/pdsLogix-sub001/internal/period"
	"github.com/Gpober/pdsLogix-sub001/internal/shared/contextutil"
	submissionerrors "github.com/Gpober/pdsLogix-sub001/internal/submission/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Poster turns a PENDING submission into posted payments. The sequence spans
// multiple transactions on purpose: there is no cross-write atomicity here,
// so each phase must be safe to re-drive.
//
//	phase 1  submission + entries -> APPROVED        (one tx)
//	audit    append APPROVED record                  (best-effort)
//	phase 2  materialize Payment rows                (one tx, skipped if any exist)
//	phase 3  submission + entries -> POSTED + event  (one tx)
//
// A crash between phases leaves the submission APPROVED; re-running Post
// resumes at phase 2, where the existence check prevents duplicate ledger
// rows.
type Poster struct {
	db        *gorm.DB
	repo      Repository
	payments  payment.Repository
	locations location.Repository
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewPoster(
	db *gorm.DB,
	repo Repository,
	payments payment.Repository,
	locations location.Repository,
	outbox kafka.OutboxRepository,
	logger ...*zap.Logger,
) *Poster {
	l := zap.L().Named("submission.poster")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("submission.poster")
	}
	return &Poster{
		db:        db,
		repo:      repo,
		payments:  payments,
		locations: locations,
		outbox:    outbox,
		logger:    l,
	}
}

func (p *Poster) Post(ctx context.Context, actorID, id string) (SubmissionResponse, error) {
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SubmissionResponse{}, submissionerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return SubmissionResponse{}, submissionerrors.ErrInvalidSubmissionID
	}

	sub, err := p.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SubmissionResponse{}, submissionerrors.ErrSubmissionNotFound
		}
		return SubmissionResponse{}, err
	}

	switch sub.Status {
	case StatusPending:
		if err := p.markApproved(ctx, sub, actorUUID); err != nil {
			return SubmissionResponse{}, err
		}
		p.appendApprovalAudit(ctx, sub, actorUUID)
	case StatusApproved:
		// Re-drive after a partial failure: approval already happened, so
		// resume at payment materialization.
		p.logger.Info("re-driving posting of approved submission",
			zap.String("submission_id", id))
	case StatusPosted:
		return SubmissionResponse{}, submissionerrors.ErrAlreadyPosted
	default:
		return SubmissionResponse{}, submissionerrors.ErrNotPending
	}

	paymentCount, err := p.materializePayments(ctx, sub)
	if err != nil {
		p.logger.Error("materialize payments failed",
			zap.String("submission_id", id),
			zap.String("step", "payments"),
			zap.Error(err),
		)
		return SubmissionResponse{}, err
	}

	if err := p.markPosted(ctx, sub, actorUUID, paymentCount); err != nil {
		p.logger.Error("mark posted failed",
			zap.String("submission_id", id),
			zap.String("step", "post"),
			zap.Error(err),
		)
		return SubmissionResponse{}, err
	}

	for i := range sub.Entries {
		sub.Entries[i].Status = StatusPosted
	}

	p.logger.Info("submission posted",
		zap.String("submission_id", id),
		zap.String("processed_by", actorID),
		zap.Int("payments", paymentCount),
	)
	return mapToResponse(*sub), nil
}

// markApproved is phase 1: the submission becomes visibly APPROVED before
// any payment exists, so a crash right after leaves a resumable state
// instead of a silently lost approval. The write is conditional on the row
// still being PENDING; a reject that committed since the read wins the race
// and this approval fails its precondition instead of overwriting it.
func (p *Poster) markApproved(ctx context.Context, sub *Submission, actorUUID uuid.UUID) error {
	now := time.Now().UTC()
	sub.Status = StatusApproved
	sub.ApprovedBy = &actorUUID
	sub.ApprovedAt = &now

	return p.db.Transaction(func(tx *gorm.DB) error {
		qtx := p.repo.WithTx(tx)
		if err := qtx.UpdateIfStatus(ctx, sub, StatusPending); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return submissionerrors.ErrNotPending
			}
			return err
		}
		return qtx.UpdateEntriesStatus(ctx, sub.ID.String(), StatusApproved)
	})
}

// appendApprovalAudit is best-effort: losing the audit row is logged, never
// a reason to abort the posting.
func (p *Poster) appendApprovalAudit(ctx context.Context, sub *Submission, actorUUID uuid.UUID) {
	err := p.repo.AppendAudit(ctx, &ApprovalAudit{
		ID:           uuid.New(),
		SubmissionID: sub.ID,
		Action:       StatusApproved,
		ActorID:      actorUUID,
		PriorStatus:  StatusPending,
	})
	if err != nil {
		p.logger.Error("append approval audit failed",
			zap.String("submission_id", sub.ID.String()),
			zap.String("request_id", contextutil.GetRequestID(ctx)),
			zap.Error(err),
		)
	}
}

// materializePayments is phase 2. The existence check makes the phase
// idempotent: payments from an earlier partially-completed run are kept, not
// duplicated.
func (p *Poster) materializePayments(ctx context.Context, sub *Submission) (int, error) {
	exists, err := p.payments.ExistsForSubmission(ctx, sub.ID.String())
	if err != nil {
		return 0, err
	}
	if exists {
		p.logger.Info("payments already materialized, skipping",
			zap.String("submission_id", sub.ID.String()))
		return len(sub.Entries), nil
	}

	loc, err := p.locations.FindByID(ctx, sub.LocationID.String())
	if err != nil {
		return 0, err
	}

	// Names come from the entries' own employee ids, unscoped: archiving or
	// re-grouping an employee after submit must not blank the snapshot.
	ids := make([]uuid.UUID, 0, len(sub.Entries))
	for _, e := range sub.Entries {
		ids = append(ids, e.EmployeeID)
	}
	payees, err := p.repo.PayeesByIDs(ctx, ids)
	if err != nil {
		return 0, err
	}
	names := make(map[uuid.UUID]string, len(payees))
	for _, payee := range payees {
		names[payee.ID] = payee.FullName
	}

	rows := make([]payment.Payment, 0, len(sub.Entries))
	for _, e := range sub.Entries {
		first, last := splitName(names[e.EmployeeID])
		rows = append(rows, payment.Payment{
			ID:           uuid.New(),
			SubmissionID: sub.ID,
			EmployeeID:   e.EmployeeID,
			LocationID:   sub.LocationID,
			FirstName:    first,
			LastName:     last,
			Department:   loc.Name,
			PayDate:      sub.PayDate,
			Amount:       e.Amount,
			Hours:        e.Hours,
			Units:        e.Units,
			Count:        e.Count,
			Adjustment:   e.Adjustment,
			Source:       payment.SourcePayrollSubmission,
		})
	}

	err = p.db.Transaction(func(tx *gorm.DB) error {
		return p.payments.WithTx(tx).CreateBatch(ctx, rows)
	})
	if err != nil {
		return 0, err
	}
	return len(rows), nil
}

// markPosted is phase 3: the terminal status flip plus the outbox event, in
// one transaction so the event is only announced for a posting that stuck.
func (p *Poster) markPosted(ctx context.Context, sub *Submission, actorUUID uuid.UUID, paymentCount int) error {
	now := time.Now().UTC()
	sub.Status = StatusPosted
	sub.ProcessedBy = &actorUUID
	sub.ProcessedAt = &now

	event := events.PaymentsPostedEvent{
		EventType:    "payments_posted",
		SubmissionID: sub.ID.String(),
		LocationID:   sub.LocationID.String(),
		PayDate:      sub.PayDate.Format(period.DateLayout),
		PayrollGroup: string(sub.PayrollGroup),
		TotalAmount:  sub.TotalAmount.StringFixed(2),
		PaymentCount: paymentCount,
		OccurredAt:   now,
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return p.db.Transaction(func(tx *gorm.DB) error {
		qtx := p.repo.WithTx(tx)
		if err := qtx.UpdateIfStatus(ctx, sub, StatusApproved); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				// A concurrent re-drive posted first.
				return submissionerrors.ErrAlreadyPosted
			}
			return err
		}
		if err := qtx.UpdateEntriesStatus(ctx, sub.ID.String(), StatusPosted); err != nil {
			return err
		}
		return p.outbox.WithTx(tx).Create(ctx, kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     contextutil.GetRequestID(ctx),
			AggregateType: "submission",
			AggregateID:   sub.ID.String(),
			EventType:     event.EventType,
			Topic:         events.PaymentsPostedTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		})
	})
}

// splitName divides a stored full name into the first/last snapshot columns.
// Single-token names land in the first name with an empty last name.
func splitName(full string) (string, string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
