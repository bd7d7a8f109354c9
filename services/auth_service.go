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

type AuthService struct{ db *gorm.DB }

func NewAuthService(db *gorm.DB) *AuthService { return &AuthService{db: db} }

func (s *AuthService) Register(ctx context.Context, email, password, displayName string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return apperrors.NewValidation("email and password are required")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		return apperrors.NewPersistence("hash password", err)
	}

	user := models.User{
		Email:       email,
		Password:    hashed,
		DisplayName: strings.TrimSpace(displayName),
	}

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return apperrors.NewPersistence("create user", err)
	}

	if err := AssignFriendCode(ctx, s.db, &user); err != nil {
		// the onboarding flow retries; registration itself succeeded
		utils.Logger.Warn("friend_code_assignment_deferred", zap.Error(err))
	}

	go func() {
		if err := utils.SendWelcomeEmail(user.Email, user.DisplayName); err != nil {
			utils.Logger.Warn("welcome_email_failed", zap.Error(err))
		}
	}()
	return nil
}

// Authenticate checks credentials and returns a signed JWT.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.db.WithContext(ctx).
		Where("email = ? AND disabled = ?", email, false).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", apperrors.NewNotFound("user not found or disabled")
	}
	if err != nil {
		return "", apperrors.NewPersistence("fetch user", err)
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", apperrors.NewInvalidOperation("incorrect password")
	}

	token, err := utils.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", apperrors.NewPersistence("sign token", err)
	}
	return token, nil
}
