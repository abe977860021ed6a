package submission

import (
	"time"

	"github.com/Gpober/pdsLogix-sub001/internal/compensation"
	"github.com/Gpober/pdsLogix-sub001/internal/period"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Submission is one location's payroll batch for one (pay date, payroll
// group). The partial unique index enforces at most one active (DRAFT,
// PENDING or REJECTED) submission per key; APPROVED and POSTED rows are
// historical and never block a new draft.
type Submission struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;index:idx_submissions_active_key,unique,where:status IN ('DRAFT','PENDING','REJECTED')"`

	PayDate      time.Time           `gorm:"type:date;not null;index:idx_submissions_active_key,unique,where:status IN ('DRAFT','PENDING','REJECTED')"`
	PayrollGroup period.PayrollGroup `gorm:"type:varchar(1);not null;index:idx_submissions_active_key,unique,where:status IN ('DRAFT','PENDING','REJECTED')"`
	PeriodStart  time.Time           `gorm:"type:date;not null"`
	PeriodEnd    time.Time           `gorm:"type:date;not null"`

	Status        string          `gorm:"type:varchar(10);not null;default:'DRAFT';index:idx_submissions_location_status"`
	TotalAmount   decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0"`
	EmployeeCount int             `gorm:"type:int;not null;default:0"`

	SubmittedBy *uuid.UUID `gorm:"type:uuid"`
	SubmittedAt *time.Time

	ApprovedBy *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt *time.Time

	ProcessedBy *uuid.UUID `gorm:"type:uuid"`
	ProcessedAt *time.Time

	RejectedBy    *uuid.UUID `gorm:"type:uuid"`
	RejectedAt    *time.Time
	RejectionNote *string `gorm:"type:text"`

	CreatedAt time.Time
	UpdatedAt time.Time

	Entries []Entry `gorm:"foreignKey:SubmissionID"`
}

// Entry is one employee's line in a submission. Entries are always replaced
// wholesale with their parent's data, never patched, so a cleared row cannot
// survive as a stale record. Only the measure group matching the employee's
// compensation type is set.
type Entry struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index:idx_entries_submission"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null"`

	Hours      *decimal.Decimal `gorm:"type:numeric(6,2)"`
	Units      *decimal.Decimal `gorm:"type:numeric(10,2)"`
	Count      *int64           `gorm:"type:bigint"`
	Adjustment *decimal.Decimal `gorm:"type:numeric(12,2)"`

	Amount decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Notes  *string         `gorm:"type:text"`

	// Status mirrors the parent submission's status at last write.
	Status string `gorm:"type:varchar(10);not null;default:'DRAFT'"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ApprovalAudit is the append-only log of reviewer actions. Rows are never
// updated or deleted; a rejected-then-approved submission keeps both rows.
type ApprovalAudit struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubmissionID uuid.UUID `gorm:"type:uuid;not null;index:idx_approval_audits_submission"`
	Action       string    `gorm:"type:varchar(10);not null"`
	ActorID      uuid.UUID `gorm:"type:uuid;not null"`
	PriorStatus  string    `gorm:"type:varchar(10);not null"`
	Note         *string   `gorm:"type:text"`
	CreatedAt    time.Time
}

// PayeeProfile is the slice of the employees table the workflow needs:
// identity plus compensation profile. Soft-deleted employees are excluded by
// the DeletedAt field.
type PayeeProfile struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey"`
	LocationID       uuid.UUID
	FullName         string
	PayrollGroup     period.PayrollGroup
	CompensationType compensation.Type
	HourlyRate       decimal.Decimal
	PieceRate        decimal.Decimal
	FixedPay         decimal.Decimal
	DeletedAt        gorm.DeletedAt
}

func (PayeeProfile) TableName() string {
	return "employees"
}

// Profile adapts the row to the calculator's input.
func (p PayeeProfile) Profile() compensation.Profile {
	return compensation.Profile{
		Type:       p.CompensationType,
		HourlyRate: p.HourlyRate,
		PieceRate:  p.PieceRate,
		FixedPay:   p.FixedPay,
	}
}
