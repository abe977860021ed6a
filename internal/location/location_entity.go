package location

import (
	"time"

	"github.com/google/uuid"
)

// Location is a row in the organization directory. Maintained by an external
// admin system; this service only reads it.
type Location struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrganizationID uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"type:varchar(120);not null"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
