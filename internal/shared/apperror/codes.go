package apperror

// Stable machine-readable codes for the API envelope. Clients branch on
// these, never on messages, so renaming one is a breaking change.
const (
	// Caller mistakes: bad input, missing auth, wrong capability, absent
	// records.
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"

	// State conflicts: a duplicate pending submission for a period key, or
	// an action against a submission that already left the expected status.
	CodeConflict     = "CONFLICT"
	CodeInvalidState = "INVALID_STATE"

	// Our side.
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
