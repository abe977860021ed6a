package employee

import (
	"context"
	"errors"

	"github.com/Gpober/pdsLogix-sub001/internal/compensation"
	employeeerrors "github.com/Gpober/pdsLogix-sub001/internal/employee/errors"
	"github.com/Gpober/pdsLogix-sub001/internal/period"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_service.go -destination=mock/employee_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, locationID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, locationID string, group string) ([]EmployeeResponse, error)
	GetByID(ctx context.Context, locationID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, locationID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Archive(ctx context.Context, locationID, id string) error
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, locationID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	locationUUID, err := uuid.Parse(locationID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidLocationID
	}

	rates, err := parseRates(compensation.Type(req.CompensationType), req.HourlyRate, req.PieceRate, req.FixedPay)
	if err != nil {
		s.logger.Warn("create employee rate validation failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	emp := &Employee{
		ID:               uuid.New(),
		LocationID:       locationUUID,
		FullName:         req.FullName,
		PayrollGroup:     period.PayrollGroup(req.PayrollGroup),
		CompensationType: compensation.Type(req.CompensationType),
		HourlyRate:       rates.hourly,
		PieceRate:        rates.piece,
		FixedPay:         rates.fixed,
	}

	if err := s.repo.Create(ctx, emp); err != nil {
		s.logger.Error("create employee persist failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.logger.Info("employee created",
		zap.String("employee_id", emp.ID.String()),
		zap.String("location_id", locationID),
	)
	return mapToResponse(*emp), nil
}

func (s *service) GetAll(ctx context.Context, locationID string, group string) ([]EmployeeResponse, error) {
	if _, err := uuid.Parse(locationID); err != nil {
		return nil, employeeerrors.ErrInvalidLocationID
	}

	emps, err := s.repo.FindActiveByLocation(ctx, locationID, period.PayrollGroup(group))
	if err != nil {
		return nil, err
	}
	return mapToListResponse(emps), nil
}

func (s *service) GetByID(ctx context.Context, locationID, id string) (EmployeeResponse, error) {
	emp, err := s.repo.FindByIDAndLocation(ctx, locationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}
	return mapToResponse(*emp), nil
}

func (s *service) Update(ctx context.Context, locationID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidEmployeeID
	}

	emp, err := s.repo.FindByIDAndLocation(ctx, locationID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		return EmployeeResponse{}, err
	}

	rates, err := parseRates(compensation.Type(req.CompensationType), req.HourlyRate, req.PieceRate, req.FixedPay)
	if err != nil {
		return EmployeeResponse{}, err
	}

	emp.FullName = req.FullName
	emp.PayrollGroup = period.PayrollGroup(req.PayrollGroup)
	emp.CompensationType = compensation.Type(req.CompensationType)
	emp.HourlyRate = rates.hourly
	emp.PieceRate = rates.piece
	emp.FixedPay = rates.fixed

	if err := s.repo.Update(ctx, emp); err != nil {
		s.logger.Error("update employee persist failed",
			zap.String("employee_id", id), zap.Error(err))
		return EmployeeResponse{}, err
	}

	return mapToResponse(*emp), nil
}

func (s *service) Archive(ctx context.Context, locationID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrInvalidEmployeeID
	}
	if err := s.repo.Archive(ctx, locationID, id); err != nil {
		s.logger.Error("archive employee failed",
			zap.String("employee_id", id), zap.Error(err))
		return err
	}
	s.logger.Info("employee archived", zap.String("employee_id", id))
	return nil
}

type parsedRates struct {
	hourly decimal.Decimal
	piece  decimal.Decimal
	fixed  decimal.Decimal
}

// parseRates validates the rate string matching the compensation type.
// Rates for the other types default to zero.
func parseRates(compType compensation.Type, hourly, piece, fixed string) (parsedRates, error) {
	rates := parsedRates{
		hourly: decimal.Zero,
		piece:  decimal.Zero,
		fixed:  decimal.Zero,
	}

	parse := func(v string) (decimal.Decimal, error) {
		d, err := decimal.NewFromString(v)
		if err != nil || d.Sign() < 0 {
			return decimal.Zero, employeeerrors.ErrInvalidRate
		}
		return d, nil
	}

	var err error
	switch compType {
	case compensation.TypeHourly:
		if hourly == "" {
			return rates, employeeerrors.ErrMissingRate
		}
		rates.hourly, err = parse(hourly)
	case compensation.TypeProduction:
		if piece == "" {
			return rates, employeeerrors.ErrMissingRate
		}
		rates.piece, err = parse(piece)
	case compensation.TypeFixed:
		if fixed == "" {
			return rates, employeeerrors.ErrMissingRate
		}
		rates.fixed, err = parse(fixed)
	}
	return rates, err
}

func mapToResponse(emp Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:               emp.ID.String(),
		LocationID:       emp.LocationID.String(),
		FullName:         emp.FullName,
		PayrollGroup:     string(emp.PayrollGroup),
		CompensationType: string(emp.CompensationType),
		HourlyRate:       emp.HourlyRate.StringFixed(2),
		PieceRate:        emp.PieceRate.StringFixed(2),
		FixedPay:         emp.FixedPay.StringFixed(2),
	}
}

func mapToListResponse(emps []Employee) []EmployeeResponse {
	resp := make([]EmployeeResponse, len(emps))
	for i, emp := range emps {
		resp[i] = mapToResponse(emp)
	}
	return resp
}
