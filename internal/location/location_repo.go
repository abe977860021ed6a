package location

import (
	"context"

	"gorm.io/gorm"
)

//go:generate mockgen -source=location_repo.go -destination=mock/location_repo_mock.go -package=mock
type Repository interface {
	FindByID(ctx context.Context, id string) (*Location, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindByID(ctx context.Context, id string) (*Location, error) {
	var loc Location
	err := r.db.WithContext(ctx).First(&loc, "id = ?", id).Error
	return &loc, err
}
