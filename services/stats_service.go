package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/cmarkstaller/fit-buddy/models"
	"github.com/cmarkstaller/fit-buddy/utils"

	"gorm.io/gorm"
)

// Window is a trailing time range used to filter entries for deltas and
// charts.
type Window string

const (
	WindowWeek  Window = "week"
	WindowMonth Window = "month"
	WindowYear  Window = "year"
	WindowAll   Window = "all"
)

// ParseWindow validates a query-string window value.
func ParseWindow(s string) (Window, error) {
	switch Window(s) {
	case WindowWeek, WindowMonth, WindowYear, WindowAll:
		return Window(s), nil
	}
	return "", fmt.Errorf("window must be one of week, month, year, all")
}

// cutoff returns the inclusive lower bound for a window ending at now.
// Month and year move by calendar units, not fixed day counts.
func cutoff(w Window, now time.Time) time.Time {
	switch w {
	case WindowWeek:
		return now.AddDate(0, 0, -7)
	case WindowMonth:
		return now.AddDate(0, -1, 0)
	case WindowYear:
		return now.AddDate(-1, 0, 0)
	default:
		return time.Time{}
	}
}

// ---------- pure aggregation layer ----------
//
// Everything below operates on already-fetched snapshots and does no I/O.
// Empty inputs and missing profiles report "no data" through ok results,
// never panics.

// LatestEntry returns the entry with the most recent date. Input order is
// not assumed; at most one entry exists per date so ties cannot occur.
func LatestEntry(entries []models.WeightEntry) (models.WeightEntry, bool) {
	if len(entries) == 0 {
		return models.WeightEntry{}, false
	}
	latest := entries[0]
	for _, e := range entries[1:] {
		if e.Date.After(latest.Date) {
			latest = e
		}
	}
	return latest, true
}

// WindowedDelta returns latest-in-window minus earliest-in-window, by
// chronological date. Positive means weight gained. With fewer than two
// in-window entries there is no change to report.
func WindowedDelta(entries []models.WeightEntry, w Window, now time.Time) (float64, bool) {
	cut := cutoff(w, now)
	var earliest, latest *models.WeightEntry
	for i := range entries {
		e := &entries[i]
		if e.Date.Before(cut) {
			continue
		}
		if earliest == nil || e.Date.Before(earliest.Date) {
			earliest = e
		}
		if latest == nil || e.Date.After(latest.Date) {
			latest = e
		}
	}
	if earliest == nil || earliest == latest {
		return 0, false
	}
	return round1(latest.Weight - earliest.Weight), true
}

// ProgressToGoal returns percent progress from starting weight toward target,
// clamped above at 100. Regression past the starting point yields a negative
// value on purpose; hiding it would misreport progress. No goal is reported
// when the profile is absent, not onboarded, or starting equals target.
func ProgressToGoal(user *models.User, latestWeight float64) (float64, bool) {
	if user == nil || !user.Onboarded {
		return 0, false
	}
	span := user.StartingWeight - user.TargetWeight
	if span == 0 {
		return 0, false
	}
	pct := (user.StartingWeight - latestWeight) / span * 100
	if pct > 100 {
		pct = 100
	}
	return round1(pct), true
}

// SeriesPoint is one charted sample.
type SeriesPoint struct {
	TS     int64   `json:"ts"` // unix milliseconds
	Weight float64 `json:"weight"`
}

// BucketSeries filters entries to the window and returns chart points in
// ascending date order. This is the one place ascending order is required;
// list endpoints elsewhere return descending.
func BucketSeries(entries []models.WeightEntry, w Window, now time.Time) []SeriesPoint {
	cut := cutoff(w, now)
	points := make([]SeriesPoint, 0, len(entries))
	for _, e := range entries {
		if e.Date.Before(cut) {
			continue
		}
		points = append(points, SeriesPoint{TS: e.Date.UnixMilli(), Weight: e.Weight})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].TS < points[j].TS })
	return points
}

// seriesPalette is assigned by arrival order; self is always index 0.
var seriesPalette = []string{
	"#4F86F7", // self
	"#F7784F",
	"#47B39C",
	"#B05FD0",
	"#E8C547",
	"#D04F6B",
	"#5FD0B0",
	"#8292F7",
}

// UserSamples is one user's snapshot handed to MultiUserSeries. Order in the
// slice determines palette order, so callers must pass a stable ordering.
type UserSamples struct {
	UserID  uint
	Name    string
	Entries []models.WeightEntry
}

// UserSeries is one labeled, colored line in the comparison chart plus the
// card values shown for friends.
type UserSeries struct {
	UserID   uint          `json:"user_id"`
	Label    string        `json:"label"`
	Color    string        `json:"color"`
	Points   []SeriesPoint `json:"points"`
	Latest   float64       `json:"latest"`
	HasData  bool          `json:"has_data"`
	Delta30  float64       `json:"delta_30d"`
	HasDelta bool          `json:"has_delta_30d"`
}

// MultiUserSeries builds the comparison dataset. The caller's own series is
// moved to the front and labeled "Me"; everyone else keeps input order, is
// labeled by display name with a numeric fallback, and gets the next palette
// color. Output is deterministic for a fixed input order.
func MultiUserSeries(users []UserSamples, selfID uint, w Window, now time.Time) []UserSeries {
	ordered := make([]UserSamples, 0, len(users))
	for _, u := range users {
		if u.UserID == selfID {
			ordered = append([]UserSamples{u}, ordered...)
		} else {
			ordered = append(ordered, u)
		}
	}

	out := make([]UserSeries, 0, len(ordered))
	for i, u := range ordered {
		label := u.Name
		if u.UserID == selfID {
			label = "Me"
		} else if label == "" {
			label = fmt.Sprintf("User %d", u.UserID)
		}

		s := UserSeries{
			UserID: u.UserID,
			Label:  label,
			Color:  seriesPalette[i%len(seriesPalette)],
			Points: BucketSeries(u.Entries, w, now),
		}
		if latest, ok := LatestEntry(u.Entries); ok {
			s.Latest = latest.Weight
			s.HasData = true
		}
		if delta, ok := WindowedDelta(u.Entries, WindowMonth, now); ok {
			s.Delta30 = delta
			s.HasDelta = true
		}
		out = append(out, s)
	}
	return out
}

func round1(v float64) float64 { return math.Round(v*10) / 10 }

// ---------- service layer ----------

type StatsService struct{ db *gorm.DB }

func NewStatsService(db *gorm.DB) *StatsService { return &StatsService{db: db} }

type WindowDelta struct {
	Delta     float64 `json:"delta"`
	HasChange bool    `json:"has_change"`
}

type StatsSummary struct {
	Latest     float64                `json:"latest"`
	LatestDate string                 `json:"latest_date,omitempty"`
	HasData    bool                   `json:"has_data"`
	Deltas     map[string]WindowDelta `json:"deltas"`
	Progress   float64                `json:"progress_pct"`
	HasGoal    bool                   `json:"has_goal"`
	BMI        float64                `json:"bmi,omitempty"`
	BMILabel   string                 `json:"bmi_label,omitempty"`
}

// Summary derives the dashboard header values from the user's full history.
func (s *StatsService) Summary(ctx context.Context, userID uint) (*StatsSummary, error) {
	user, entries, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := &StatsSummary{Deltas: map[string]WindowDelta{}}

	latest, ok := LatestEntry(entries)
	if ok {
		out.Latest = latest.Weight
		out.LatestDate = latest.Date.Format("2006-01-02")
		out.HasData = true
	}

	for _, w := range []Window{WindowWeek, WindowMonth, WindowYear, WindowAll} {
		d, has := WindowedDelta(entries, w, now)
		out.Deltas[string(w)] = WindowDelta{Delta: d, HasChange: has}
	}

	if ok {
		out.Progress, out.HasGoal = ProgressToGoal(user, latest.Weight)
		if user != nil {
			if bmi, err := utils.BMI(user.Height, latest.Weight); err == nil {
				out.BMI = round1(bmi)
				out.BMILabel = utils.BMICategory(bmi)
			}
		}
	}

	return out, nil
}

// Series returns the caller's own chart for one window.
func (s *StatsService) Series(ctx context.Context, userID uint, w Window) ([]SeriesPoint, error) {
	_, entries, err := s.snapshot(ctx, userID)
	if err != nil {
		return nil, err
	}
	return BucketSeries(entries, w, time.Now()), nil
}

func (s *StatsService) snapshot(ctx context.Context, userID uint) (*models.User, []models.WeightEntry, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, userID).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		// entries without a profile still chart; goal metrics report unset
	case err != nil:
		return nil, nil, err
	}

	var entries []models.WeightEntry
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("date DESC").
		Find(&entries).Error; err != nil {
		return nil, nil, err
	}

	if user.ID == 0 {
		return nil, entries, nil
	}
	return &user, entries, nil
}
