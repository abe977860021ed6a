package employee

import (
	"context"

	"github.com/Gpober/pdsLogix-sub001/internal/period"
	"github.com/Gpober/pdsLogix-sub001/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, emp *Employee) error
	FindActiveByLocation(ctx context.Context, locationID string, group period.PayrollGroup) ([]Employee, error)
	FindByIDAndLocation(ctx context.Context, locationID string, id string) (*Employee, error)
	Update(ctx context.Context, emp *Employee) error
	Archive(ctx context.Context, locationID string, id string) error
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

func (r *repository) Create(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Create(emp).Error
}

func (r *repository) FindActiveByLocation(ctx context.Context, locationID string, group period.PayrollGroup) ([]Employee, error) {
	var emps []Employee
	q := r.db.WithContext(ctx).
		Scopes(tenant.Scope(locationID)).
		Order("full_name ASC")
	if group != "" {
		q = q.Where("payroll_group = ?", group)
	}
	err := q.Find(&emps).Error
	return emps, err
}

func (r *repository) FindByIDAndLocation(ctx context.Context, locationID string, id string) (*Employee, error) {
	var emp Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(locationID)).
		First(&emp, "id = ?", id).Error
	return &emp, err
}

func (r *repository) Update(ctx context.Context, emp *Employee) error {
	return r.db.WithContext(ctx).Save(emp).Error
}

func (r *repository) Archive(ctx context.Context, locationID string, id string) error {
	return r.db.WithContext(ctx).
		Scopes(tenant.Scope(locationID)).
		Delete(&Employee{}, "id = ?", id).Error
}
