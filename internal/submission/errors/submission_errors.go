package submissionerrors

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
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidSubmissionID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid submission id",
		http.StatusBadRequest,
	)
	ErrInvalidPayDate = apperror.New(
		apperror.CodeInvalidInput,
		"invalid pay date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrPayrollGroupMismatch = apperror.New(
		apperror.CodeInvalidInput,
		"payroll group does not match the one derived from the pay date",
		http.StatusBadRequest,
	)
	ErrUnknownEmployee = apperror.New(
		apperror.CodeInvalidInput,
		"entry references an employee not active at this location",
		http.StatusBadRequest,
	)
	ErrNoEntriesWithData = apperror.New(
		apperror.CodeInvalidInput,
		"at least one entry with pay data is required",
		http.StatusBadRequest,
	)
	ErrRejectionNoteRequired = apperror.New(
		apperror.CodeInvalidInput,
		"a rejection note is required",
		http.StatusBadRequest,
	)
	ErrSubmissionNotFound = apperror.New(
		apperror.CodeNotFound,
		"submission not found",
		http.StatusNotFound,
	)
	ErrAlreadyPending = apperror.New(
		apperror.CodeConflict,
		"a submission for this pay date is already pending approval",
		http.StatusConflict,
	)
	ErrNotPending = apperror.New(
		apperror.CodeConflict,
		"submission is no longer pending",
		http.StatusConflict,
	)
	ErrAlreadyPosted = apperror.New(
		apperror.CodeConflict,
		"submission has already been posted",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid submission status transition",
		http.StatusConflict,
	)
)
