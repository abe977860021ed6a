package payment

import (
	"context"
	"time"

	"github.com/Gpober/pdsLogix-sub001/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=payment_repo.go -destination=mock/payment_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateBatch(ctx context.Context, payments []Payment) error
	ExistsForSubmission(ctx context.Context, submissionID string) (bool, error)
	FindByLocation(ctx context.Context, locationID string, from, to *time.Time) ([]Payment, error)
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

func (r *repository) CreateBatch(ctx context.Context, payments []Payment) error {
	if len(payments) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&payments).Error
}

func (r *repository) ExistsForSubmission(ctx context.Context, submissionID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&Payment{}).
		Where("submission_id = ?", submissionID).
		Count(&count).Error
	return count > 0, err
}

func (r *repository) FindByLocation(ctx context.Context, locationID string, from, to *time.Time) ([]Payment, error) {
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(locationID)).
		Order("pay_date DESC, last_name ASC")
	if from != nil {
		q = q.Where("pay_date >= ?", *from)
	}
	if to != nil {
		q = q.Where("pay_date <= ?", *to)
	}

	var payments []Payment
	err := q.Find(&payments).Error
	return payments, err
}
