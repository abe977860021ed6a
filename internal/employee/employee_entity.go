package employee

import (
	"time"

	"github.com/Gpober/pdsLogix-sub001/internal/compensation"
	"github.com/Gpober/pdsLogix-sub001/internal/period"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee is one payee at a field location. Rows are archived via soft
// delete, never removed, because posted payments reference them historically.
type Employee struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	LocationID uuid.UUID `gorm:"type:uuid;not null;index:idx_employees_location_group"`

	FullName     string              `gorm:"type:varchar(120);not null"`
	PayrollGroup period.PayrollGroup `gorm:"type:varchar(1);not null;default:'A';index:idx_employees_location_group"`

	CompensationType compensation.Type `gorm:"type:varchar(20);not null"`
	HourlyRate       decimal.Decimal   `gorm:"type:numeric(10,2);not null;default:0"`
	PieceRate        decimal.Decimal   `gorm:"type:numeric(10,2);not null;default:0"`
	FixedPay         decimal.Decimal   `gorm:"type:numeric(12,2);not null;default:0"`

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_employees_deleted_at"`
}

// Profile returns the compensation profile used by the calculator.
func (e Employee) Profile() compensation.Profile {
	return compensation.Profile{
		Type:       e.CompensationType,
		HourlyRate: e.HourlyRate,
		PieceRate:  e.PieceRate,
		FixedPay:   e.FixedPay,
	}
}
