package models

import (
	"gorm.io/gorm"
)

type ActivityLevel string

const (
	ActivitySedentary  ActivityLevel = "sedentary"
	ActivityLight      ActivityLevel = "light"
	ActivityModerate   ActivityLevel = "moderate"
	ActivityActive     ActivityLevel = "active"
	ActivityVeryActive ActivityLevel = "very_active"
)

// ValidActivityLevel reports whether s is one of the accepted enum values.
func ValidActivityLevel(s string) bool {
	switch ActivityLevel(s) {
	case ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	Email          string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null"`
	DisplayName    string
	Height         float64 // inches
	Age            int
	ActivityLevel  ActivityLevel `gorm:"type:varchar(20);default:'sedentary'"`
	StartingWeight float64
	TargetWeight   float64
	// FriendCode is assigned once at registration and never changes.
	// Nullable so rows created before assignment don't collide on the
	// unique index.
	FriendCode *string `gorm:"uniqueIndex"`
	AvatarURL  string
	Onboarded  bool
	Disabled   bool
}
