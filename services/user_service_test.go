package services

import (
	"context"
	"testing"

	"github.com/cmarkstaller/fit-buddy/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func TestUpdateProfile_PartialFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()
	user := createUser(t, db, "a@example.com", "A", "AAAAAA")

	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileInput{
		DisplayName: ptr("  Anna  "),
		Height:      ptr(67.0),
	})
	require.NoError(t, err)
	assert.Equal(t, "Anna", updated.DisplayName)
	assert.Equal(t, 67.0, updated.Height)

	// omitted fields stay put
	again, err := svc.UpdateProfile(ctx, user.ID, ProfileInput{Age: ptr(30)})
	require.NoError(t, err)
	assert.Equal(t, "Anna", again.DisplayName)
	assert.Equal(t, 67.0, again.Height)
	assert.Equal(t, 30, again.Age)
}

func TestUpdateProfile_Normalization(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()
	user := createUser(t, db, "a@example.com", "A", "AAAAAA")

	updated, err := svc.UpdateProfile(ctx, user.ID, ProfileInput{
		Height:         ptr(500.0),
		Age:            ptr(-4),
		StartingWeight: ptr(195.07),
		TargetWeight:   ptr(2000.0),
	})
	require.NoError(t, err)
	assert.Equal(t, 120.0, updated.Height, "height clamped to [0,120]")
	assert.Equal(t, 0, updated.Age, "age clamped to [0,120]")
	assert.Equal(t, 195.1, updated.StartingWeight, "starting weight rounded to one decimal")
	assert.Equal(t, 1000.0, updated.TargetWeight, "target weight clamped to [0,1000]")
}

func TestUpdateProfile_RejectsBadActivityLevel(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	user := createUser(t, db, "a@example.com", "A", "AAAAAA")

	_, err := svc.UpdateProfile(context.Background(), user.ID, ProfileInput{
		ActivityLevel: ptr("heroic"),
	})
	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
}

func TestCompleteOnboarding_AssignsImmutableCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db)
	ctx := context.Background()
	user := createUser(t, db, "a@example.com", "A", "") // no code yet

	done, err := svc.CompleteOnboarding(ctx, user.ID, ProfileInput{
		StartingWeight: ptr(195.0),
		TargetWeight:   ptr(180.0),
		ActivityLevel:  ptr("moderate"),
	})
	require.NoError(t, err)
	require.NotNil(t, done.FriendCode)
	assert.Len(t, *done.FriendCode, 6)
	assert.True(t, done.Onboarded)

	first := *done.FriendCode
	again, err := svc.CompleteOnboarding(ctx, user.ID, ProfileInput{})
	require.NoError(t, err)
	require.NotNil(t, again.FriendCode)
	assert.Equal(t, first, *again.FriendCode, "friend code is immutable once assigned")
}
