package payment

import (
	"context"
	"net/http"
	"time"

	"github.com/Gpober/pdsLogix-sub001/internal/period"
	"github.com/Gpober/pdsLogix-sub001/internal/shared/apperror"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var errInvalidDateFilter = apperror.New(
	apperror.CodeInvalidInput,
	"date filter must be YYYY-MM-DD",
	http.StatusBadRequest,
)

var errInvalidLocationID = apperror.New(
	apperror.CodeInvalidInput,
	"invalid location id",
	http.StatusBadRequest,
)

//go:generate mockgen -source=payment_service.go -destination=mock/payment_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context, locationID, from, to string) ([]PaymentResponse, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

func NewService(repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("payment.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payment.service")
	}
	return &service{repo: repo, logger: l}
}

func (s *service) GetAll(ctx context.Context, locationID, from, to string) ([]PaymentResponse, error) {
	if _, err := uuid.Parse(locationID); err != nil {
		return nil, errInvalidLocationID
	}

	fromDate, err := parseOptionalDate(from)
	if err != nil {
		return nil, err
	}
	toDate, err := parseOptionalDate(to)
	if err != nil {
		return nil, err
	}

	payments, err := s.repo.FindByLocation(ctx, locationID, fromDate, toDate)
	if err != nil {
		s.logger.Error("list payments failed",
			zap.String("location_id", locationID), zap.Error(err))
		return nil, err
	}

	return mapToListResponse(payments), nil
}

func parseOptionalDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(period.DateLayout, v)
	if err != nil {
		return nil, errInvalidDateFilter
	}
	return &t, nil
}

func mapToResponse(p Payment) PaymentResponse {
	resp := PaymentResponse{
		ID:           p.ID.String(),
		SubmissionID: p.SubmissionID.String(),
		EmployeeID:   p.EmployeeID.String(),
		LocationID:   p.LocationID.String(),
		FirstName:    p.FirstName,
		LastName:     p.LastName,
		Department:   p.Department,
		PayDate:      p.PayDate.Format(period.DateLayout),
		Amount:       p.Amount.StringFixed(2),
		Count:        p.Count,
		Source:       p.Source,
	}
	if p.Hours != nil {
		v := p.Hours.StringFixed(2)
		resp.Hours = &v
	}
	if p.Units != nil {
		v := p.Units.StringFixed(2)
		resp.Units = &v
	}
	if p.Adjustment != nil {
		v := p.Adjustment.StringFixed(2)
		resp.Adjustment = &v
	}
	return resp
}

func mapToListResponse(payments []Payment) []PaymentResponse {
	resp := make([]PaymentResponse, len(payments))
	for i, p := range payments {
		resp[i] = mapToResponse(p)
	}
	return resp
}
