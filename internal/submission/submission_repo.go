package submission

import (
	"context"
	"time"

	"github.com/Gpober/pdsLogix-sub001/internal/period"
	"github.com/Gpober/pdsLogix-sub001/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// activeStatuses are the states in which a submission still occupies its
// (location, pay date, group) key.
var activeStatuses = []string{StatusDraft, StatusPending, StatusRejected}

//go:generate mockgen -source=submission_repo.go -destination=mock/submission_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, sub *Submission) error
	Update(ctx context.Context, sub *Submission) error
	UpdateIfStatus(ctx context.Context, sub *Submission, priorStatus string) error
	FindActiveByKey(ctx context.Context, locationID string, payDate time.Time, group period.PayrollGroup) (*Submission, error)
	FindByID(ctx context.Context, id string) (*Submission, error)
	FindAllByLocation(ctx context.Context, locationID string, status string) ([]Submission, error)
	FindAllByStatus(ctx context.Context, status string) ([]Submission, error)
	ReplaceEntries(ctx context.Context, submissionID string, entries []Entry) error
	UpdateEntriesStatus(ctx context.Context, submissionID string, status string) error
	ActivePayees(ctx context.Context, locationID string, group period.PayrollGroup) ([]PayeeProfile, error)
	PayeesByIDs(ctx context.Context, ids []uuid.UUID) ([]PayeeProfile, error)
	AppendAudit(ctx context.Context, audit *ApprovalAudit) error
	FindAuditsBySubmission(ctx context.Context, submissionID string) ([]ApprovalAudit, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, sub *Submission) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *repository) Update(ctx context.Context, sub *Submission) error {
	return r.db.WithContext(ctx).Omit("Entries").Save(sub).Error
}

// UpdateIfStatus writes the submission only if its stored status still equals
// priorStatus. Zero rows affected means a concurrent reviewer action won the
// race; callers map gorm.ErrRecordNotFound to their precondition error.
func (r *repository) UpdateIfStatus(ctx context.Context, sub *Submission, priorStatus string) error {
	res := r.db.WithContext(ctx).
		Model(&Submission{}).
		Where("id = ? AND status = ?", sub.ID, priorStatus).
		Select("*").
		Omit("Entries", "CreatedAt").
		Updates(sub)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) FindActiveByKey(ctx context.Context, locationID string, payDate time.Time, group period.PayrollGroup) (*Submission, error) {
	var sub Submission
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(locationID)).
		Where("pay_date = ?", payDate).
		Where("payroll_group = ?", group).
		Where("status IN ?", activeStatuses).
		First(&sub).Error
	return &sub, err
}

func (r *repository) FindByID(ctx context.Context, id string) (*Submission, error) {
	var sub Submission
	err := r.db.WithContext(ctx).
		Preload("Entries").
		First(&sub, "id = ?", id).Error
	return &sub, err
}

func (r *repository) FindAllByLocation(ctx context.Context, locationID string, status string) ([]Submission, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(locationID)).
		Order("pay_date DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var subs []Submission
	err := q.Find(&subs).Error
	return subs, err
}

func (r *repository) FindAllByStatus(ctx context.Context, status string) ([]Submission, error) {
	var subs []Submission
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("submitted_at ASC").
		Find(&subs).Error
	return subs, err
}

// ReplaceEntries swaps the full entry set: delete then insert, never patch,
// so a cleared employee row cannot linger.
func (r *repository) ReplaceEntries(ctx context.Context, submissionID string, entries []Entry) error {
	if err := r.db.WithContext(ctx).
		Delete(&Entry{}, "submission_id = ?", submissionID).Error; err != nil {
		return err
	}
	if len(entries) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&entries).Error
}

func (r *repository) UpdateEntriesStatus(ctx context.Context, submissionID string, status string) error {
	return r.db.WithContext(ctx).
		Model(&Entry{}).
		Where("submission_id = ?", submissionID).
		Update("status", status).Error
}

func (r *repository) ActivePayees(ctx context.Context, locationID string, group period.PayrollGroup) ([]PayeeProfile, error) {
	var payees []PayeeProfile
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(locationID)).
		Where("payroll_group = ?", group).
		Find(&payees).Error
	return payees, err
}

// PayeesByIDs resolves employees for the payment snapshot regardless of
// archive state or current payroll group: an employee archived or re-grouped
// after submit must still be named on the posted rows.
func (r *repository) PayeesByIDs(ctx context.Context, ids []uuid.UUID) ([]PayeeProfile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var payees []PayeeProfile
	err := r.db.WithContext(ctx).
		Unscoped().
		Where("id IN ?", ids).
		Find(&payees).Error
	return payees, err
}

func (r *repository) AppendAudit(ctx context.Context, audit *ApprovalAudit) error {
	return r.db.WithContext(ctx).Create(audit).Error
}

func (r *repository) FindAuditsBySubmission(ctx context.Context, submissionID string) ([]ApprovalAudit, error) {
	var audits []ApprovalAudit
	err := r.db.WithContext(ctx).
		Where("submission_id = ?", submissionID).
		Order("created_at ASC").
		Find(&audits).Error
	return audits, err
}
