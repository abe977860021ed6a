package tenant

import "gorm.io/gorm"

// Scope restricts a query to one field location. Every location-owned table
// carries a location_id column.
func Scope(locationID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("location_id = ?", locationID)
	}
}
