package services

import (
	"context"
	"math"
	"strings"
	"time"

	"github.com/cmarkstaller/fit-buddy/apperrors"
	"github.com/cmarkstaller/fit-buddy/cache"
	"github.com/cmarkstaller/fit-buddy/models"
	"github.com/cmarkstaller/fit-buddy/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const maxWeight = 1000.0

// NormalizeWeight validates a submitted weight: non-finite input is
// rejected, the value is clamped to [0, maxWeight] and rounded to one
// decimal place.
func NormalizeWeight(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperrors.NewValidation("weight must be a finite number")
	}
	if v < 0 {
		v = 0
	}
	if v > maxWeight {
		v = maxWeight
	}
	return math.Round(v*10) / 10, nil
}

func dayStartLocal(t time.Time) time.Time {
	loc := time.Local
	tt := t.In(loc)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, loc)
}

type WeightService struct{ db *gorm.DB }

func NewWeightService(db *gorm.DB) *WeightService { return &WeightService{db: db} }

// RecordWeight stores today's weight for the user. A second submission on
// the same local day overwrites weight and note in place; created_at is
// preserved, so exactly one row exists per (user, date). Backdating is not
// supported.
func (s *WeightService) RecordWeight(ctx context.Context, userID uint, weight float64, note string) (*models.WeightEntry, error) {
	w, err := NormalizeWeight(weight)
	if err != nil {
		return nil, err
	}

	date := dayStartLocal(time.Now())
	entry := models.WeightEntry{
		UserID: userID,
		Date:   date,
		Weight: w,
		Note:   strings.TrimSpace(note),
	}

	// map form so zero values (weight 0, cleared note) still overwrite
	err = s.db.WithContext(ctx).
		Where("user_id = ? AND date = ?", userID, date).
		Assign(map[string]interface{}{"weight": entry.Weight, "note": entry.Note}).
		FirstOrCreate(&entry).Error
	if err != nil {
		return nil, apperrors.NewPersistence("record weight", err)
	}

	utils.WeightUpserts.Inc()
	if cerr := cache.InvalidateComparisons(); cerr != nil {
		utils.Logger.Warn("comparison_cache_invalidation_failed", zap.Error(cerr))
	}
	return &entry, nil
}

// History returns every entry for the user, newest first.
func (s *WeightService) History(ctx context.Context, userID uint) ([]models.WeightEntry, error) {
	var entries []models.WeightEntry
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&entries).Error
	if err != nil {
		return nil, apperrors.NewPersistence("list weights", err)
	}
	return entries, nil
}
