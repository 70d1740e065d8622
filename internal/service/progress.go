package service

import (
	"math"
	"sort"
	"time"

	"github.com/drewham94/AMai-Code/internal/models"
)

// ScorePoint is one day on the progress chart
type ScorePoint struct {
	Label string    `json:"label"` // e.g. "Jan 2"
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
}

// ProgressSummary is everything the dashboard shows at once
type ProgressSummary struct {
	AverageScore      int          `json:"averageScore"`
	Streak            int          `json:"streak"`
	TotalSessions     int          `json:"totalSessions"`
	FocusMinutesToday int          `json:"focusMinutesToday"`
	Series            []ScorePoint `json:"series"`
}

// AverageScore is the rounded mean of all session scores, 0 when there
// are none
func AverageScore(sessions []models.PracticeSession) int {
	if len(sessions) == 0 {
		return 0
	}
	sum := 0
	for _, s := range sessions {
		sum += s.Score
	}
	return int(math.Round(float64(sum) / float64(len(sessions))))
}

// ScoreSeries buckets sessions by calendar day, averages same-day
// scores, and orders points chronologically by the underlying
// timestamps rather than the rendered labels
func ScoreSeries(sessions []models.PracticeSession, loc *time.Location) []ScorePoint {
	type bucket struct {
		day   time.Time
		sum   int
		count int
	}

	buckets := make(map[time.Time]*bucket)
	for _, s := range sessions {
		local := s.Date.In(loc)
		day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{day: day}
			buckets[day] = b
		}
		b.sum += s.Score
		b.count++
	}

	points := make([]ScorePoint, 0, len(buckets))
	for _, b := range buckets {
		points = append(points, ScorePoint{
			Label: b.day.Format("Jan 2"),
			Date:  b.day,
			Score: int(math.Round(float64(b.sum) / float64(b.count))),
		})
	}
	sort.Slice(points, func(i, j int) bool {
		return points[i].Date.Before(points[j].Date)
	})
	return points
}

// Streak counts consecutive practiced calendar days ending today or
// yesterday. A most recent practice older than yesterday means the
// streak is broken: 0.
func Streak(sessions []models.PracticeSession, now time.Time, loc *time.Location) int {
	if len(sessions) == 0 {
		return 0
	}

	seen := make(map[time.Time]bool)
	for _, s := range sessions {
		local := s.Date.In(loc)
		seen[time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)] = true
	}

	days := make([]time.Time, 0, len(seen))
	for day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].After(days[j]) })

	nowLocal := now.In(loc)
	today := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc)
	yesterday := today.AddDate(0, 0, -1)

	latest := days[0]
	if !latest.Equal(today) && !latest.Equal(yesterday) {
		return 0
	}

	streak := 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, -1)) {
			streak++
			continue
		}
		break
	}
	return streak
}

// FocusMinutesToday sums focus minutes recorded on the current
// calendar day
func FocusMinutesToday(sessions []models.FocusSession, now time.Time, loc *time.Location) int {
	nowLocal := now.In(loc)
	total := 0
	for _, s := range sessions {
		local := s.Date.In(loc)
		if local.Year() == nowLocal.Year() && local.YearDay() == nowLocal.YearDay() {
			total += s.Minutes
		}
	}
	return total
}

// Summarize builds the full dashboard summary
func Summarize(sessions []models.PracticeSession, focus []models.FocusSession, now time.Time, loc *time.Location) ProgressSummary {
	return ProgressSummary{
		AverageScore:      AverageScore(sessions),
		Streak:            Streak(sessions, now, loc),
		TotalSessions:     len(sessions),
		FocusMinutesToday: FocusMinutesToday(focus, now, loc),
		Series:            ScoreSeries(sessions, loc),
	}
}
