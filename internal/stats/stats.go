// Package stats holds the pure aggregation routines that turn raw mood
// entries into derived report data. Nothing here performs I/O; callers
// fetch the rows and pass them in, which keeps every computation unit
// testable without a database.
package stats

import (
	"math"
	"time"

	"mindcare/internal/models"
)

// Lookback windows used when filtering entries before aggregation
const (
	WeeklyWindow = 7 * 24 * time.Hour
	TrendWindow  = 30 * 24 * time.Hour

	// StreakSampleSize is how many recent entries goal streaks consider
	StreakSampleSize = 10
)

// WeeklyStats summarizes the trailing 7-day window of mood entries.
// Recomputed from raw rows on every view, never persisted.
type WeeklyStats struct {
	AverageMood  float64 `json:"averageMood"`
	TotalEntries int     `json:"totalEntries"`
	MoodTrend    float64 `json:"moodTrend"`
	StreakDays   int     `json:"streakDays"`
}

// TrendPoint is one day's averaged mood on the 30-day trend chart
type TrendPoint struct {
	Date string  `json:"date"`
	Mood float64 `json:"mood"`
}

// Weekly computes summary statistics over entries from the trailing week.
// Entries must be in ascending created_at order. An empty input yields the
// zero value, matching the degraded "no data" report.
func Weekly(entries []models.MoodEntry) WeeklyStats {
	if len(entries) == 0 {
		return WeeklyStats{}
	}

	stats := WeeklyStats{
		TotalEntries: len(entries),
		AverageMood:  meanRating(entries),
	}

	// Trend compares the mean of the later half against the earlier half,
	// split at floor(n/2). With fewer than two entries the first half is
	// empty and contributes zero.
	mid := len(entries) / 2
	firstHalf := entries[:mid]
	secondHalf := entries[mid:]
	stats.MoodTrend = meanRating(secondHalf) - meanRating(firstHalf)

	// Streak scans backward from the most recent entry and stops at the
	// first non-positive mood.
	for i := len(entries) - 1; i >= 0; i-- {
		if !entries[i].IsPositive() {
			break
		}
		stats.StreakDays++
	}

	return stats
}

// TrendSeries buckets entries by calendar day for the 30-day trend chart.
// Entries must be in ascending created_at order; days without entries
// produce no point (the series is sparse, not zero-filled). Each point's
// mood is the day's mean rating rounded to one decimal.
func TrendSeries(entries []models.MoodEntry) []TrendPoint {
	points := make([]TrendPoint, 0, len(entries))
	index := make(map[string]int)
	sums := make(map[string]int)
	counts := make(map[string]int)

	for _, entry := range entries {
		day := entry.CreatedAt.Format("Jan 02")
		if _, seen := index[day]; !seen {
			index[day] = len(points)
			points = append(points, TrendPoint{Date: day})
		}
		sums[day] += entry.MoodRating
		counts[day]++
	}

	for day, i := range index {
		mean := float64(sums[day]) / float64(counts[day])
		points[i].Mood = round1(mean)
	}

	return points
}

// PositiveStreak counts consecutive positive-mood entries starting from
// the most recent one. Entries must be ordered most-recent-first.
func PositiveStreak(entries []models.MoodEntry) int {
	streak := 0
	for _, entry := range entries {
		if !entry.IsPositive() {
			break
		}
		streak++
	}
	return streak
}

// GoalProgress recomputes a goal's current value from raw entries.
// windowEntries covers the trailing 7-day lookback; recentEntries holds up
// to StreakSampleSize entries ordered most-recent-first regardless of age.
// weekly_target goals keep their stored value (see DESIGN.md).
func GoalProgress(goal models.Goal, windowEntries, recentEntries []models.MoodEntry) float64 {
	switch goal.GoalType {
	case models.GoalTypeMoodAverage:
		if len(windowEntries) == 0 {
			return goal.CurrentValue
		}
		return meanRating(windowEntries)
	case models.GoalTypeDailyLog:
		return float64(len(windowEntries))
	case models.GoalTypeStreak:
		return float64(PositiveStreak(recentEntries))
	default:
		return goal.CurrentValue
	}
}

func meanRating(entries []models.MoodEntry) float64 {
	if len(entries) == 0 {
		return 0
	}
	sum := 0
	for _, entry := range entries {
		sum += entry.MoodRating
	}
	return float64(sum) / float64(len(entries))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
