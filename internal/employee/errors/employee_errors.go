package employeeerrors

import (
	"net/http"

	"github.com/Gpober/pdsLogix-sub001/internal/shared/apperror"
)

var (
	ErrInvalidLocationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid location id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidRate = apperror.New(
		apperror.CodeInvalidInput,
		"rate must be a non-negative decimal",
		http.StatusBadRequest,
	)
	ErrMissingRate = apperror.New(
		apperror.CodeInvalidInput,
		"the rate matching the compensation type is required",
		http.StatusBadRequest,
	)
)
