package services

import (
	"context"
	"errors"
	"time"

	"github.com/cmarkstaller/fit-buddy/apperrors"
	"github.com/cmarkstaller/fit-buddy/cache"
	"github.com/cmarkstaller/fit-buddy/models"
	"github.com/cmarkstaller/fit-buddy/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FriendService links users by friend code and answers "who are my
// friends". Edges are directed from the user who entered the code, but
// listings match either direction.
type FriendService struct{ db *gorm.DB }

func NewFriendService(db *gorm.DB) *FriendService { return &FriendService{db: db} }

// AddFriendByCode resolves a shared code and inserts the edge. Validation
// happens before any query; resubmitting an existing link is a no-op
// success. Returns the linked user.
func (s *FriendService) AddFriendByCode(ctx context.Context, ownerID uint, rawCode string) (*models.User, error) {
	code := utils.NormalizeFriendCode(rawCode)
	if len(code) != utils.FriendCodeLength {
		utils.FriendLinks.WithLabelValues("invalid").Inc()
		return nil, apperrors.NewValidation("friend code should be %d characters", utils.FriendCodeLength)
	}

	var friend models.User
	err := s.db.WithContext(ctx).
		Where("friend_code = ? AND disabled = ?", code, false).
		First(&friend).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		utils.FriendLinks.WithLabelValues("not_found").Inc()
		return nil, apperrors.NewNotFound("no user found with that code")
	}
	if err != nil {
		return nil, apperrors.NewPersistence("resolve friend code", err)
	}

	if friend.ID == ownerID {
		utils.FriendLinks.WithLabelValues("invalid").Inc()
		return nil, apperrors.NewInvalidOperation("can't add yourself")
	}

	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&models.Friend{OwnerID: ownerID, FriendID: friend.ID})
	if res.Error != nil {
		return nil, apperrors.NewPersistence("insert friend edge", res.Error)
	}

	if res.RowsAffected == 0 {
		utils.FriendLinks.WithLabelValues("duplicate").Inc()
		return &friend, nil
	}

	utils.FriendLinks.WithLabelValues("linked").Inc()
	if cerr := cache.InvalidateComparisons(); cerr != nil {
		utils.Logger.Warn("comparison_cache_invalidation_failed", zap.Error(cerr))
	}
	return &friend, nil
}

// FriendIDs returns the deduplicated ids linked to userID in either
// direction.
func (s *FriendService) FriendIDs(ctx context.Context, userID uint) ([]uint, error) {
	var edges []models.Friend
	err := s.db.WithContext(ctx).
		Where("owner_id = ? OR friend_id = ?", userID, userID).
		Find(&edges).Error
	if err != nil {
		return nil, apperrors.NewPersistence("list friend edges", err)
	}

	seen := map[uint]struct{}{}
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		other := e.FriendID
		if other == userID {
			other = e.OwnerID
		}
		if other == userID {
			continue
		}
		if _, dup := seen[other]; dup {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	return ids, nil
}

// FriendCard is the per-friend summary shown next to the comparison chart.
type FriendCard struct {
	UserID   uint    `json:"user_id"`
	Name     string  `json:"name"`
	Latest   float64 `json:"latest"`
	HasData  bool    `json:"has_data"`
	Delta30  float64 `json:"delta_30d"`
	HasDelta bool    `json:"has_delta_30d"`
}

// ListFriends returns a card per linked friend with their latest weight and
// 30-day change.
func (s *FriendService) ListFriends(ctx context.Context, userID uint) ([]FriendCard, error) {
	ids, err := s.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []FriendCard{}, nil
	}

	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&users).Error; err != nil {
		return nil, apperrors.NewPersistence("fetch friends", err)
	}
	var entries []models.WeightEntry
	if err := s.db.WithContext(ctx).Where("user_id IN ?", ids).Find(&entries).Error; err != nil {
		return nil, apperrors.NewPersistence("fetch friend weights", err)
	}

	byUser := map[uint][]models.WeightEntry{}
	for _, e := range entries {
		byUser[e.UserID] = append(byUser[e.UserID], e)
	}

	now := time.Now()
	cards := make([]FriendCard, 0, len(users))
	for _, u := range users {
		card := FriendCard{UserID: u.ID, Name: u.DisplayName}
		if latest, ok := LatestEntry(byUser[u.ID]); ok {
			card.Latest = latest.Weight
			card.HasData = true
		}
		if delta, ok := WindowedDelta(byUser[u.ID], WindowMonth, now); ok {
			card.Delta30 = delta
			card.HasDelta = true
		}
		cards = append(cards, card)
	}
	return cards, nil
}

// Comparison assembles the multi-user chart for userID: their own series
// plus one per friend, fetched only for ids the caller is allowed to see.
// The payload is cached per (user, window).
func (s *FriendService) Comparison(ctx context.Context, userID uint, w Window) ([]UserSeries, error) {
	key := cache.ComparisonKey(userID, string(w))
	var cached []UserSeries
	if err := cache.Get(key, &cached); err == nil {
		return cached, nil
	}

	ids, err := s.FriendIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	allIDs := append([]uint{userID}, ids...)

	var users []models.User
	if err := s.db.WithContext(ctx).Where("id IN ?", allIDs).Find(&users).Error; err != nil {
		return nil, apperrors.NewPersistence("fetch comparison users", err)
	}
	var entries []models.WeightEntry
	if err := s.db.WithContext(ctx).
		Where("user_id IN ?", allIDs).
		Order("date ASC").
		Find(&entries).Error; err != nil {
		return nil, apperrors.NewPersistence("fetch comparison weights", err)
	}

	byUser := map[uint][]models.WeightEntry{}
	for _, e := range entries {
		byUser[e.UserID] = append(byUser[e.UserID], e)
	}
	nameByID := map[uint]string{}
	for _, u := range users {
		nameByID[u.ID] = u.DisplayName
	}

	// stable arrival order: self, then friends in edge order
	samples := make([]UserSamples, 0, len(allIDs))
	for _, id := range allIDs {
		samples = append(samples, UserSamples{
			UserID:  id,
			Name:    nameByID[id],
			Entries: byUser[id],
		})
	}

	series := MultiUserSeries(samples, userID, w, time.Now())
	if cerr := cache.Set(key, series, 5*time.Minute); cerr != nil {
		utils.Logger.Warn("comparison_cache_write_failed", zap.Error(cerr))
	}
	return series, nil
}
