package models

import (
	"time"

	"gorm.io/gorm"
)

// WeightEntry is one dated weight sample. At most one row exists per
// (user_id, date); same-day resubmission overwrites weight and note.
type WeightEntry struct {
	gorm.Model
	UserID uint      `gorm:"not null;uniqueIndex:uidx_weight_user_date"`
	Date   time.Time `gorm:"not null;uniqueIndex:uidx_weight_user_date"` // truncated to local midnight
	Weight float64   `gorm:"not null"` // one decimal place
	Note   string
}
