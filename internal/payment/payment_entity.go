package payment

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SourcePayrollSubmission tags rows materialized by the approval poster, as
// opposed to manual ledger corrections entered elsewhere.
const SourcePayrollSubmission = "payroll_submission"

// Payment is one employee's pay for one posted submission. Rows are written
// once at posting time and never updated; every display field is a
// denormalized snapshot so later employee or submission edits cannot
// retroactively change the ledger.
type Payment struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index:idx_payments_submission_employee,unique"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index:idx_payments_submission_employee,unique"`
	LocationID   uuid.UUID `gorm:"type:uuid;not null;index:idx_payments_location_date"`

	FirstName  string `gorm:"type:varchar(60);not null"`
	LastName   string `gorm:"type:varchar(60);not null"`
	Department string `gorm:"type:varchar(120);not null"`

	PayDate time.Time       `gorm:"type:date;not null;index:idx_payments_location_date"`
	Amount  decimal.Decimal `gorm:"type:numeric(12,2);not null"`

	// Compensation-specific measures; only the group matching the employee's
	// compensation type is set.
	Hours      *decimal.Decimal `gorm:"type:numeric(6,2)"`
	Units      *decimal.Decimal `gorm:"type:numeric(10,2)"`
	Count      *int64           `gorm:"type:bigint"`
	Adjustment *decimal.Decimal `gorm:"type:numeric(12,2)"`

	Source    string `gorm:"type:varchar(40);not null;default:'payroll_submission'"`
	CreatedAt time.Time
}
