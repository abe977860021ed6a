package submission

import (
	"context"
	"errors"
	"time"

	"github.com/Gpober/pdsLogix-sub001/internal/compensation"
	"github.com/Gpober/pdsLogix-sub001/internal/period"
	submissionerrors "github.com/Gpober/pdsLogix-sub001/internal/submission/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	StatusDraft    = "DRAFT"
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusPosted   = "POSTED"
	StatusRejected = "REJECTED"
)

const pgUniqueViolation = "23505"

//go:generate mockgen -source=submission_service.go -destination=mock/submission_service_mock.go -package=mock
type Service interface {
	SaveDraft(ctx context.Context, locationID, actorID string, req SaveDraftRequest) (DraftResponse, error)
	Submit(ctx context.Context, locationID, actorID string, req SubmitRequest) (SubmissionResponse, error)
	Approve(ctx context.Context, actorID, id string) (SubmissionResponse, error)
	Reject(ctx context.Context, actorID, id, note string) (SubmissionResponse, error)
	GetAll(ctx context.Context, locationID, status string) ([]SubmissionResponse, error)
	GetByID(ctx context.Context, id string) (SubmissionResponse, error)
	GetPendingQueue(ctx context.Context) ([]SubmissionResponse, error)
	GetAudits(ctx context.Context, id string) ([]AuditResponse, error)
}

type service struct {
	db     *gorm.DB
	repo   Repository
	poster *Poster
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository, poster *Poster, logger ...*zap.Logger) Service {
	l := zap.L().Named("submission.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("submission.service")
	}
	return &service{db: db, repo: repo, poster: poster, logger: l}
}

// isAllowedStatusTransition is the whole lifecycle in one place. POSTED is
// terminal; REJECTED is re-editable.
func isAllowedStatusTransition(current, target string) bool {
	switch current {
	case StatusDraft:
		return target == StatusDraft || target == StatusPending
	case StatusRejected:
		return target == StatusDraft || target == StatusPending
	case StatusPending:
		return target == StatusApproved || target == StatusRejected
	case StatusApproved:
		return target == StatusPosted
	default:
		return false
	}
}

// computeEntries resolves each input against the location's active payees
// and prices it. Rows without data (zero hours, hours over the cap, units or
// count out of range) are silently excluded, never errored.
func computeEntries(payees []PayeeProfile, inputs []EntryInput) ([]Entry, decimal.Decimal, error) {
	byID := make(map[uuid.UUID]PayeeProfile, len(payees))
	for _, p := range payees {
		byID[p.ID] = p
	}

	entries := make([]Entry, 0, len(inputs))
	total := decimal.Zero

	for _, in := range inputs {
		employeeID, err := uuid.Parse(in.EmployeeID)
		if err != nil {
			return nil, decimal.Zero, submissionerrors.ErrUnknownEmployee
		}
		payee, ok := byID[employeeID]
		if !ok {
			return nil, decimal.Zero, submissionerrors.ErrUnknownEmployee
		}

		res := compensation.Calculate(payee.Profile(), compensation.Input{
			Hours:      in.Hours,
			Units:      in.Units,
			Count:      in.Count,
			Adjustment: in.Adjustment,
		})
		if !res.HasData {
			continue
		}

		entry := Entry{
			ID:         uuid.New(),
			EmployeeID: employeeID,
			Amount:     res.Amount,
			Notes:      in.Notes,
		}
		switch payee.CompensationType {
		case compensation.TypeHourly:
			hours := in.Hours
			entry.Hours = &hours
		case compensation.TypeProduction:
			units := in.Units
			entry.Units = &units
		case compensation.TypeFixed:
			count := in.Count
			if count == 0 {
				count = 1
			}
			adjustment := in.Adjustment
			entry.Count = &count
			entry.Adjustment = &adjustment
		}

		entries = append(entries, entry)
		total = total.Add(res.Amount)
	}

	return entries, total, nil
}

// resolveKey validates the actor/location ids and derives the period from
// the pay date. A payroll group supplied by the client must agree with the
// derived one; a stale client is rejected rather than silently re-keyed.
func resolveKey(locationID, actorID, payDate, group string) (uuid.UUID, uuid.UUID, period.Period, error) {
	locationUUID, err := uuid.Parse(locationID)
	if err != nil {
		return uuid.Nil, uuid.Nil, period.Period{}, submissionerrors.ErrInvalidLocationID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return uuid.Nil, uuid.Nil, period.Period{}, submissionerrors.ErrInvalidActorID
	}
	p, err := period.Parse(payDate)
	if err != nil || !p.Valid {
		return uuid.Nil, uuid.Nil, period.Period{}, submissionerrors.ErrInvalidPayDate
	}
	if group != "" && period.PayrollGroup(group) != p.Group {
		return uuid.Nil, uuid.Nil, period.Period{}, submissionerrors.ErrPayrollGroupMismatch
	}
	return locationUUID, actorUUID, p, nil
}

func (s *service) SaveDraft(ctx context.Context, locationID, actorID string, req SaveDraftRequest) (DraftResponse, error) {
	s.logger.Debug("save draft requested",
		zap.String("location_id", locationID),
		zap.String("actor_id", actorID),
		zap.String("pay_date", req.PayDate),
	)

	locationUUID, _, p, err := resolveKey(locationID, actorID, req.PayDate, req.PayrollGroup)
	if err != nil {
		s.logger.Warn("save draft validation failed", zap.Error(err))
		return DraftResponse{}, err
	}

	payees, err := s.repo.ActivePayees(ctx, locationID, p.Group)
	if err != nil {
		return DraftResponse{}, err
	}

	entries, total, err := computeEntries(payees, req.Entries)
	if err != nil {
		return DraftResponse{}, err
	}

	// Nothing with data yet: do not create (or clear) a draft.
	if len(entries) == 0 {
		return DraftResponse{Saved: false}, nil
	}

	var sub *Submission
	err = s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		sub, err = s.upsertDraft(ctx, qtx, locationUUID, p, total, len(entries))
		if err != nil {
			return err
		}

		for i := range entries {
			entries[i].SubmissionID = sub.ID
			entries[i].Status = StatusDraft
		}
		return qtx.ReplaceEntries(ctx, sub.ID.String(), entries)
	})
	if err != nil {
		s.logger.Error("save draft persist failed",
			zap.String("location_id", locationID),
			zap.String("pay_date", req.PayDate),
			zap.Error(err),
		)
		return DraftResponse{}, err
	}

	savedAt := time.Now().UTC()
	s.logger.Info("draft saved",
		zap.String("submission_id", sub.ID.String()),
		zap.Int("entries", len(entries)),
	)
	return DraftResponse{
		SubmissionID: sub.ID.String(),
		Saved:        true,
		SavedAt:      savedAt.Format(time.RFC3339),
	}, nil
}

// upsertDraft locates the active submission for the key and reuses it, or
// inserts a new DRAFT row. A concurrent first save loses the insert race on
// the partial unique index and falls back to updating the winner's row.
func (s *service) upsertDraft(
	ctx context.Context,
	qtx Repository,
	locationUUID uuid.UUID,
	p period.Period,
	total decimal.Decimal,
	count int,
) (*Submission, error) {
	existing, err := qtx.FindActiveByKey(ctx, locationUUID.String(), p.PayDate, p.Group)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if err == nil {
		if existing.Status == StatusPending {
			return nil, submissionerrors.ErrAlreadyPending
		}
		resetToDraft(existing, total, count)
		if err := qtx.Update(ctx, existing); err != nil {
			return nil, err
		}
		return existing, nil
	}

	sub := &Submission{
		ID:            uuid.New(),
		LocationID:    locationUUID,
		PayDate:       p.PayDate,
		PayrollGroup:  p.Group,
		PeriodStart:   p.Start,
		PeriodEnd:     p.End,
		Status:        StatusDraft,
		TotalAmount:   total,
		EmployeeCount: count,
	}
	if err := qtx.Create(ctx, sub); err != nil {
		if isUniqueViolation(err) {
			// Another writer created the draft first; reuse theirs.
			winner, findErr := qtx.FindActiveByKey(ctx, locationUUID.String(), p.PayDate, p.Group)
			if findErr != nil {
				return nil, err
			}
			if winner.Status == StatusPending {
				return nil, submissionerrors.ErrAlreadyPending
			}
			resetToDraft(winner, total, count)
			if updErr := qtx.Update(ctx, winner); updErr != nil {
				return nil, updErr
			}
			return winner, nil
		}
		return nil, err
	}
	return sub, nil
}

// resetToDraft forces a reused row back to DRAFT and clears any earlier
// rejection. Audit rows are untouched; the rejection stays on record there.
func resetToDraft(sub *Submission, total decimal.Decimal, count int) {
	sub.Status = StatusDraft
	sub.TotalAmount = total
	sub.EmployeeCount = count
	sub.RejectedBy = nil
	sub.RejectedAt = nil
	sub.RejectionNote = nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

func (s *service) Submit(ctx context.Context, locationID, actorID string, req SubmitRequest) (SubmissionResponse, error) {
	s.logger.Debug("submit requested",
		zap.String("location_id", locationID),
		zap.String("actor_id", actorID),
		zap.String("pay_date", req.PayDate),
	)

	locationUUID, actorUUID, p, err := resolveKey(locationID, actorID, req.PayDate, req.PayrollGroup)
	if err != nil {
		s.logger.Warn("submit validation failed", zap.Error(err))
		return SubmissionResponse{}, err
	}

	payees, err := s.repo.ActivePayees(ctx, locationID, p.Group)
	if err != nil {
		return SubmissionResponse{}, err
	}

	entries, total, err := computeEntries(payees, req.Entries)
	if err != nil {
		return SubmissionResponse{}, err
	}
	if len(entries) == 0 {
		return SubmissionResponse{}, submissionerrors.ErrNoEntriesWithData
	}

	var sub *Submission
	err = s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		sub, err = s.upsertDraft(ctx, qtx, locationUUID, p, total, len(entries))
		if err != nil {
			return err
		}

		if !isAllowedStatusTransition(sub.Status, StatusPending) {
			return submissionerrors.ErrInvalidStatusTransition
		}

		now := time.Now().UTC()
		sub.Status = StatusPending
		sub.SubmittedBy = &actorUUID
		sub.SubmittedAt = &now
		if err := qtx.Update(ctx, sub); err != nil {
			return err
		}

		for i := range entries {
			entries[i].SubmissionID = sub.ID
			entries[i].Status = StatusPending
		}
		return qtx.ReplaceEntries(ctx, sub.ID.String(), entries)
	})
	if err != nil {
		s.logger.Error("submit persist failed",
			zap.String("location_id", locationID),
			zap.String("pay_date", req.PayDate),
			zap.Error(err),
		)
		return SubmissionResponse{}, err
	}

	s.logger.Info("submission submitted",
		zap.String("submission_id", sub.ID.String()),
		zap.String("total_amount", total.StringFixed(2)),
		zap.Int("entries", len(entries)),
	)
	sub.Entries = entries
	return mapToResponse(*sub), nil
}

func (s *service) Approve(ctx context.Context, actorID, id string) (SubmissionResponse, error) {
	return s.poster.Post(ctx, actorID, id)
}

func (s *service) Reject(ctx context.Context, actorID, id, note string) (SubmissionResponse, error) {
	s.logger.Debug("reject requested",
		zap.String("submission_id", id),
		zap.String("actor_id", actorID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return SubmissionResponse{}, submissionerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(id); err != nil {
		return SubmissionResponse{}, submissionerrors.ErrInvalidSubmissionID
	}
	if note == "" {
		return SubmissionResponse{}, submissionerrors.ErrRejectionNoteRequired
	}

	var sub *Submission
	err = s.db.Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		sub, err = qtx.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return submissionerrors.ErrSubmissionNotFound
			}
			return err
		}
		if sub.Status != StatusPending {
			return submissionerrors.ErrNotPending
		}

		now := time.Now().UTC()
		priorStatus := sub.Status
		sub.Status = StatusRejected
		sub.RejectedBy = &actorUUID
		sub.RejectedAt = &now
		sub.RejectionNote = &note
		// Conditional on PENDING: an approval that committed since the read
		// above wins and this rejection fails its precondition.
		if err := qtx.UpdateIfStatus(ctx, sub, priorStatus); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return submissionerrors.ErrNotPending
			}
			return err
		}
		if err := qtx.UpdateEntriesStatus(ctx, id, StatusRejected); err != nil {
			return err
		}

		return qtx.AppendAudit(ctx, &ApprovalAudit{
			ID:           uuid.New(),
			SubmissionID: sub.ID,
			Action:       StatusRejected,
			ActorID:      actorUUID,
			PriorStatus:  priorStatus,
			Note:         &note,
		})
	})
	if err != nil {
		s.logger.Warn("reject failed",
			zap.String("submission_id", id),
			zap.Error(err),
		)
		return SubmissionResponse{}, err
	}

	s.logger.Info("submission rejected",
		zap.String("submission_id", id),
		zap.String("rejected_by", actorID),
	)
	return mapToResponse(*sub), nil
}

func (s *service) GetAll(ctx context.Context, locationID, status string) ([]SubmissionResponse, error) {
	if _, err := uuid.Parse(locationID); err != nil {
		return nil, submissionerrors.ErrInvalidLocationID
	}
	subs, err := s.repo.FindAllByLocation(ctx, locationID, status)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(subs), nil
}

func (s *service) GetByID(ctx context.Context, id string) (SubmissionResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return SubmissionResponse{}, submissionerrors.ErrInvalidSubmissionID
	}
	sub, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return SubmissionResponse{}, submissionerrors.ErrSubmissionNotFound
		}
		return SubmissionResponse{}, err
	}
	return mapToResponse(*sub), nil
}

// GetPendingQueue is the reviewer inbox across all locations.
func (s *service) GetPendingQueue(ctx context.Context) ([]SubmissionResponse, error) {
	subs, err := s.repo.FindAllByStatus(ctx, StatusPending)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(subs), nil
}

// GetAudits returns the reviewer action history, oldest first.
func (s *service) GetAudits(ctx context.Context, id string) ([]AuditResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, submissionerrors.ErrInvalidSubmissionID
	}
	audits, err := s.repo.FindAuditsBySubmission(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := make([]AuditResponse, len(audits))
	for i, a := range audits {
		resp[i] = AuditResponse{
			ID:           a.ID.String(),
			SubmissionID: a.SubmissionID.String(),
			Action:       a.Action,
			ActorID:      a.ActorID.String(),
			PriorStatus:  a.PriorStatus,
			Note:         a.Note,
			CreatedAt:    a.CreatedAt.Format(time.RFC3339),
		}
	}
	return resp, nil
}

func mapToResponse(sub Submission) SubmissionResponse {
	resp := SubmissionResponse{
		ID:            sub.ID.String(),
		LocationID:    sub.LocationID.String(),
		PayDate:       sub.PayDate.Format(period.DateLayout),
		PayrollGroup:  string(sub.PayrollGroup),
		PeriodStart:   sub.PeriodStart.Format(period.DateLayout),
		PeriodEnd:     sub.PeriodEnd.Format(period.DateLayout),
		Status:        sub.Status,
		TotalAmount:   sub.TotalAmount.StringFixed(2),
		EmployeeCount: sub.EmployeeCount,
		RejectionNote: sub.RejectionNote,
	}
	resp.SubmittedBy = uuidString(sub.SubmittedBy)
	resp.SubmittedAt = timeString(sub.SubmittedAt)
	resp.ApprovedBy = uuidString(sub.ApprovedBy)
	resp.ApprovedAt = timeString(sub.ApprovedAt)
	resp.ProcessedBy = uuidString(sub.ProcessedBy)
	resp.ProcessedAt = timeString(sub.ProcessedAt)
	resp.RejectedBy = uuidString(sub.RejectedBy)
	resp.RejectedAt = timeString(sub.RejectedAt)

	for _, e := range sub.Entries {
		resp.Entries = append(resp.Entries, mapEntryToResponse(e))
	}
	return resp
}

func mapEntryToResponse(e Entry) EntryResponse {
	resp := EntryResponse{
		ID:         e.ID.String(),
		EmployeeID: e.EmployeeID.String(),
		Count:      e.Count,
		Amount:     e.Amount.StringFixed(2),
		Notes:      e.Notes,
		Status:     e.Status,
	}
	if e.Hours != nil {
		v := e.Hours.StringFixed(2)
		resp.Hours = &v
	}
	if e.Units != nil {
		v := e.Units.StringFixed(2)
		resp.Units = &v
	}
	if e.Adjustment != nil {
		v := e.Adjustment.StringFixed(2)
		resp.Adjustment = &v
	}
	return resp
}

func mapToListResponse(subs []Submission) []SubmissionResponse {
	resp := make([]SubmissionResponse, len(subs))
	for i, sub := range subs {
		resp[i] = mapToResponse(sub)
	}
	return resp
}

func uuidString(v *uuid.UUID) *string {
	if v == nil {
		return nil
	}
	s := v.String()
	return &s
}

func timeString(v *time.Time) *string {
	if v == nil {
		return nil
	}
	s := v.Format(time.RFC3339)
	return &s
}
