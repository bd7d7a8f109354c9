package services

import (
	"context"
	"errors"
	"strings"

	"github.com/cmarkstaller/fit-buddy/apperrors"
	"github.com/cmarkstaller/fit-buddy/models"
	"github.com/cmarkstaller/fit-buddy/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	maxHeight = 120.0 // unit used by the goal form
	maxAge    = 120
)

// ProfileInput carries a partial profile update. Nil fields are left
// untouched; supplied fields overwrite stored values (remote wins over
// whatever the client had cached).
type ProfileInput struct {
	DisplayName    *string  `json:"display_name"`
	Height         *float64 `json:"height"`
	Age            *int     `json:"age"`
	ActivityLevel  *string  `json:"activity_level"`
	StartingWeight *float64 `json:"starting_weight"`
	TargetWeight   *float64 `json:"target_weight"`
	Avatar         *string  `json:"avatar"` // data URL
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type UserService struct{ db *gorm.DB }

func NewUserService(db *gorm.DB) *UserService { return &UserService{db: db} }

func (s *UserService) GetProfile(ctx context.Context, userID uint) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).
		Where("id = ? AND disabled = ?", userID, false).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.NewNotFound("user not found or disabled")
	}
	if err != nil {
		return nil, apperrors.NewPersistence("fetch profile", err)
	}
	return &user, nil
}

// UpdateProfile applies only the supplied fields, after the same
// normalization used at onboarding.
func (s *UserService) UpdateProfile(ctx context.Context, userID uint, input ProfileInput) (*models.User, error) {
	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if input.DisplayName != nil {
		user.DisplayName = strings.TrimSpace(*input.DisplayName)
	}
	if input.Height != nil {
		user.Height = clampFloat(*input.Height, 0, maxHeight)
	}
	if input.Age != nil {
		user.Age = int(clampFloat(float64(*input.Age), 0, maxAge))
	}
	if input.ActivityLevel != nil {
		if !models.ValidActivityLevel(*input.ActivityLevel) {
			return nil, apperrors.NewValidation("invalid activity level %q", *input.ActivityLevel)
		}
		user.ActivityLevel = models.ActivityLevel(*input.ActivityLevel)
	}
	if input.StartingWeight != nil {
		w, err := NormalizeWeight(*input.StartingWeight)
		if err != nil {
			return nil, err
		}
		user.StartingWeight = w
	}
	if input.TargetWeight != nil {
		w, err := NormalizeWeight(*input.TargetWeight)
		if err != nil {
			return nil, err
		}
		user.TargetWeight = w
	}
	if input.Avatar != nil && *input.Avatar != "" {
		url, err := utils.UploadAvatar(*input.Avatar, user.Email)
		if err != nil {
			return nil, apperrors.NewValidation("failed to upload avatar: %v", err)
		}
		user.AvatarURL = url
	}

	if err := s.db.WithContext(ctx).Save(user).Error; err != nil {
		return nil, apperrors.NewPersistence("save profile", err)
	}
	return user, nil
}

// friendCodeAttempts bounds the regeneration loop on code collision.
const friendCodeAttempts = 5

// AssignFriendCode gives the user their immutable friend code, regenerating
// on a uniqueness conflict. A user who already has one keeps it.
func AssignFriendCode(ctx context.Context, db *gorm.DB, user *models.User) error {
	if user.FriendCode != nil {
		return nil
	}

	var lastErr error
	for i := 0; i < friendCodeAttempts; i++ {
		code, err := utils.GenerateFriendCode()
		if err != nil {
			return apperrors.NewPersistence("generate friend code", err)
		}
		res := db.WithContext(ctx).
			Model(&models.User{}).
			Where("id = ?", user.ID).
			Update("friend_code", code)
		if res.Error == nil {
			user.FriendCode = &code
			return nil
		}
		// unique violation: roll the dice again
		lastErr = res.Error
		utils.Logger.Warn("friend_code_collision", zap.Int("attempt", i+1))
	}
	return apperrors.NewPersistence("assign friend code", lastErr)
}

// CompleteOnboarding sets the goal parameters and marks the user onboarded.
// The friend code is normally assigned at registration; this backstops rows
// where that assignment failed.
func (s *UserService) CompleteOnboarding(ctx context.Context, userID uint, input ProfileInput) (*models.User, error) {
	user, err := s.UpdateProfile(ctx, userID, input)
	if err != nil {
		return nil, err
	}

	if err := AssignFriendCode(ctx, s.db, user); err != nil {
		return nil, err
	}

	if !user.Onboarded {
		if err := s.db.WithContext(ctx).
			Model(&models.User{}).
			Where("id = ?", userID).
			Update("onboarded", true).Error; err != nil {
			return nil, apperrors.NewPersistence("complete onboarding", err)
		}
		user.Onboarded = true
	}
	return user, nil
}
