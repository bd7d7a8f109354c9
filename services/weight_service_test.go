package services

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/cmarkstaller/fit-buddy/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeWeight(t *testing.T) {
	cases := []struct {
		name string
		in   float64
		want float64
	}{
		{"rounds to one decimal", 187.46, 187.5},
		{"rounds down", 187.44, 187.4},
		{"clamps negative to zero", -5, 0},
		{"clamps above domain bound", 1500, 1000},
		{"passes plausible value", 82.3, 82.3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NormalizeWeight(tc.in)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}

	t.Run("rejects non-finite", func(t *testing.T) {
		for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
			_, err := NormalizeWeight(v)
			assert.Error(t, err)
		}
	})
}

func TestRecordWeight_UpsertSameDay(t *testing.T) {
	db := newTestDB(t)
	svc := NewWeightService(db)
	user := createUser(t, db, "a@example.com", "A", "AAAAAA")
	ctx := context.Background()

	first, err := svc.RecordWeight(ctx, user.ID, 190.0, "  morning  ")
	require.NoError(t, err)
	assert.Equal(t, 190.0, first.Weight)
	assert.Equal(t, "morning", first.Note)

	second, err := svc.RecordWeight(ctx, user.ID, 189.2, "")
	require.NoError(t, err)
	assert.Equal(t, 189.2, second.Weight)

	var rows []models.WeightEntry
	require.NoError(t, db.Where("user_id = ?", user.ID).Find(&rows).Error)
	require.Len(t, rows, 1, "same-day resubmission must not create a second row")
	assert.Equal(t, 189.2, rows[0].Weight)
	assert.Equal(t, "", rows[0].Note, "resubmission replaces the note")
	assert.Equal(t, first.CreatedAt.Unix(), rows[0].CreatedAt.Unix(), "created_at survives overwrite")
}

func TestRecordWeight_RejectsNaN(t *testing.T) {
	db := newTestDB(t)
	svc := NewWeightService(db)
	user := createUser(t, db, "a@example.com", "A", "AAAAAA")

	_, err := svc.RecordWeight(context.Background(), user.ID, math.NaN(), "")
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.WeightEntry{}).Count(&count).Error)
	assert.Zero(t, count, "rejected input must never reach the store")
}

func TestHistory_DescendingOrder(t *testing.T) {
	db := newTestDB(t)
	svc := NewWeightService(db)
	user := createUser(t, db, "a@example.com", "A", "AAAAAA")

	// seed out of order, bypassing the no-backdating ingestion path
	now := dayStartLocal(time.Now())
	for _, d := range []int{-3, 0, -10} {
		require.NoError(t, db.Create(&models.WeightEntry{
			UserID: user.ID,
			Date:   now.AddDate(0, 0, d),
			Weight: 190 + float64(d),
		}).Error)
	}

	entries, err := svc.History(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i := 1; i < len(entries); i++ {
		assert.True(t, entries[i].Date.Before(entries[i-1].Date))
	}
}
