package wbs

import (
	"math"
	"time"
)

// ScheduleStats is the calendar-aware schedule health of a project. It is
// derived on every read and never persisted, since elapsed time changes
// continuously.
type ScheduleStats struct {
	TotalDays            int `json:"totalDays"`
	WorkingDays          int `json:"workingDays"`
	ElapsedWorkingDays   int `json:"elapsedWorkingDays"`
	RemainingWorkingDays int `json:"remainingWorkingDays"`
	ExpectedProgress     int `json:"expectedProgress"`
	ActualProgress       int `json:"actualProgress"`
	AchievementRate      int `json:"achievementRate"`
}

// ComputeScheduleStats derives schedule statistics for the inclusive
// project window [start, end] as of the given instant.
//
// A working day counts as elapsed only once it is fully past: elapsed
// working days cover [start, asOf), so the asOf day itself is not yet
// elapsed. Once asOf is past the end date the window is complete and
// elapsed equals the full working-day count.
//
// The achievement rate deliberately avoids the naive division: with
// nothing expected and nothing done it is 0 (neutral), and with work done
// before any was expected it is 100, not infinity.
func ComputeScheduleStats(start, end, asOf time.Time, holidays map[time.Time]struct{}, actualProgress int) ScheduleStats {
	start = truncateToDay(start)
	end = truncateToDay(end)
	asOf = truncateToDay(asOf)

	stats := ScheduleStats{
		TotalDays:      CountDays(start, end),
		WorkingDays:    CountWorkingDays(start, end, holidays),
		ActualProgress: actualProgress,
	}

	switch {
	case asOf.After(end):
		stats.ElapsedWorkingDays = stats.WorkingDays
	case asOf.After(start):
		stats.ElapsedWorkingDays = CountWorkingDays(start, asOf.AddDate(0, 0, -1), holidays)
	}
	if stats.ElapsedWorkingDays > stats.WorkingDays {
		stats.ElapsedWorkingDays = stats.WorkingDays
	}
	stats.RemainingWorkingDays = stats.WorkingDays - stats.ElapsedWorkingDays

	if stats.WorkingDays > 0 {
		stats.ExpectedProgress = roundRatio(stats.ElapsedWorkingDays, stats.WorkingDays)
	}

	switch {
	case stats.ExpectedProgress > 0:
		stats.AchievementRate = roundRatio(actualProgress, stats.ExpectedProgress)
	case actualProgress > 0:
		stats.AchievementRate = 100
	}

	return stats
}

// roundRatio returns round(num/den × 100).
func roundRatio(num, den int) int {
	return int(math.Round(float64(num) / float64(den) * 100))
}
