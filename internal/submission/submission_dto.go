package submission

import "github.com/shopspring/decimal"

// EntryInput is one employee row as typed on the submission screen. Only the
// measure group matching the employee's compensation type is consulted.
type EntryInput struct {
	EmployeeID string          `json:"employee_id" binding:"required,uuid"`
	Hours      decimal.Decimal `json:"hours"`
	Units      decimal.Decimal `json:"units"`
	Count      int64           `json:"count"`
	Adjustment decimal.Decimal `json:"adjustment"`
	Notes      *string         `json:"notes"`
}

type SaveDraftRequest struct {
	PayDate      string       `json:"pay_date" binding:"required"`
	PayrollGroup string       `json:"payroll_group" binding:"omitempty,oneof=A B"`
	Entries      []EntryInput `json:"entries" binding:"required,dive"`
}

type SubmitRequest struct {
	PayDate      string       `json:"pay_date" binding:"required"`
	PayrollGroup string       `json:"payroll_group" binding:"omitempty,oneof=A B"`
	Entries      []EntryInput `json:"entries" binding:"required,dive"`
}

type RejectRequest struct {
	Note string `json:"note" binding:"required"`
}

type DraftResponse struct {
	SubmissionID string `json:"submission_id,omitempty"`
	Saved        bool   `json:"saved"`
	SavedAt      string `json:"saved_at,omitempty"`
}

type EntryResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	Hours      *string `json:"hours,omitempty"`
	Units      *string `json:"units,omitempty"`
	Count      *int64  `json:"count,omitempty"`
	Adjustment *string `json:"adjustment,omitempty"`
	Amount     string  `json:"amount"`
	Notes      *string `json:"notes,omitempty"`
	Status     string  `json:"status"`
}

type SubmissionResponse struct {
	ID            string          `json:"id"`
	LocationID    string          `json:"location_id"`
	PayDate       string          `json:"pay_date"`
	PayrollGroup  string          `json:"payroll_group"`
	PeriodStart   string          `json:"period_start"`
	PeriodEnd     string          `json:"period_end"`
	Status        string          `json:"status"`
	TotalAmount   string          `json:"total_amount"`
	EmployeeCount int             `json:"employee_count"`
	SubmittedBy   *string         `json:"submitted_by,omitempty"`
	SubmittedAt   *string         `json:"submitted_at,omitempty"`
	ApprovedBy    *string         `json:"approved_by,omitempty"`
	ApprovedAt    *string         `json:"approved_at,omitempty"`
	ProcessedBy   *string         `json:"processed_by,omitempty"`
	ProcessedAt   *string         `json:"processed_at,omitempty"`
	RejectedBy    *string         `json:"rejected_by,omitempty"`
	RejectedAt    *string         `json:"rejected_at,omitempty"`
	RejectionNote *string         `json:"rejection_note,omitempty"`
	Entries       []EntryResponse `json:"entries,omitempty"`
}

type AuditResponse struct {
	ID           string  `json:"id"`
	SubmissionID string  `json:"submission_id"`
	Action       string  `json:"action"`
	ActorID      string  `json:"actor_id"`
	PriorStatus  string  `json:"prior_status"`
	Note         *string `json:"note,omitempty"`
	CreatedAt    string  `json:"created_at"`
}

type PeriodResponse struct {
	PayrollGroup string `json:"payroll_group"`
	PeriodStart  string `json:"period_start"`
	PeriodEnd    string `json:"period_end"`
}
