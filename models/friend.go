package models

import (
	"gorm.io/gorm"
)

// Friend is a directed edge from the user who entered the code to the code's
// owner. No reciprocal row is required; friend listings match either
// direction.
type Friend struct {
	gorm.Model
	OwnerID  uint `gorm:"not null;uniqueIndex:uidx_friend_pair"`
	FriendID uint `gorm:"not null;uniqueIndex:uidx_friend_pair"`
}
