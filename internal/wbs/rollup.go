package wbs

import (
	"math"
	"time"

	"github.com/kkurihara/planboard/internal/domain"
)

// WeightedProgress returns the weight-normalized average progress of the
// given children, rounded to the nearest integer:
//
//	round(Σ weight_i × progress_i / Σ weight_i)
//
// Unset weights count as zero; if the weight sum is zero every child is
// treated as weight 1, which is the documented equal-split fallback.
// An empty child set yields 0.
func WeightedProgress(children []*domain.WbsNode) int {
	if len(children) == 0 {
		return 0
	}

	var weightSum float64
	for _, c := range children {
		if c.Weight != nil && *c.Weight > 0 {
			weightSum += *c.Weight
		}
	}

	var acc float64
	if weightSum == 0 {
		for _, c := range children {
			acc += float64(c.Progress)
		}
		return int(math.Round(acc / float64(len(children))))
	}

	for _, c := range children {
		if c.Weight != nil && *c.Weight > 0 {
			acc += *c.Weight * float64(c.Progress)
		}
	}
	return int(math.Round(acc / weightSum))
}

// DeriveStatus maps a progress value onto its status band: 100 is
// completed, 0 is not started, anything else is in progress. An unfinished
// node whose planned end date has already passed is delayed regardless of
// band.
func DeriveStatus(progress int, endDate *time.Time, asOf time.Time) domain.NodeStatus {
	if progress >= 100 {
		return domain.StatusCompleted
	}
	if endDate != nil && endDate.Before(truncateToDay(asOf)) {
		return domain.StatusDelayed
	}
	if progress == 0 {
		return domain.StatusNotStarted
	}
	return domain.StatusInProgress
}
