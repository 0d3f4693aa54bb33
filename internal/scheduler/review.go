package scheduler

import (
	"sort"
	"time"

	"github.com/smithrashell/CodeMaster-sub007/internal/models"
)

// Leitner skip intervals in days, indexed by boxLevel-1. Out-of-range box
// levels fall back to the default.
var skipIntervalDays = [...]float64{0, 1, 2, 4, 7, 14, 30}

const (
	defaultSkipIntervalDays = 14

	// MaxBoxLevel is the deepest Leitner box.
	MaxBoxLevel = len(skipIntervalDays)
)

// ReviewCandidate joins a catalog problem with its Leitner review state.
type ReviewCandidate struct {
	Problem models.Problem    `json:"problem"`
	Review  models.ReviewItem `json:"review"`
}

// IsDueForReview reports whether the scheduled review date has arrived.
func IsDueForReview(reviewDate, now time.Time) bool {
	return !reviewDate.After(now)
}

// IsRecentlyAttempted reports whether the last attempt falls inside the
// box-level skip interval. Relaxation halves the interval, letting problems
// back into rotation sooner.
func IsRecentlyAttempted(lastAttemptDate time.Time, boxLevel int, allowRelaxation bool, now time.Time) bool {
	interval := float64(defaultSkipIntervalDays)
	if idx := boxLevel - 1; idx >= 0 && idx < len(skipIntervalDays) {
		interval = skipIntervalDays[idx]
	}
	if allowRelaxation {
		interval /= 2
	}

	daysSince := now.Sub(lastAttemptDate).Hours() / 24
	return daysSince < interval
}

// Advance moves an item through the Leitner boxes after an attempt: success
// promotes one box up to the deepest, failure resets to the first box. The
// next review date comes from the interval table. A zero-valued item is a
// problem never reviewed before and starts from the first box.
func Advance(item models.ReviewItem, success bool, now time.Time) models.ReviewItem {
	if item.BoxLevel < 1 {
		item.BoxLevel = 1
	}
	if success {
		if item.BoxLevel < MaxBoxLevel {
			item.BoxLevel++
		}
	} else {
		item.BoxLevel = 1
	}

	interval := skipIntervalDays[item.BoxLevel-1]
	item.LastAttemptDate = now
	item.ReviewDate = now.Add(time.Duration(interval*24) * time.Hour)
	return item
}

// DailySchedule picks the day's review problems: due or not recently
// attempted, within the user's difficulty cap, ascending by scheduled
// review date, truncated to the session length.
func DailySchedule(candidates []ReviewCandidate, difficultyCap string, sessionLength int, now time.Time) []models.Problem {
	capScore := models.DifficultyScore(difficultyCap)

	eligible := make([]ReviewCandidate, 0, len(candidates))
	for _, c := range candidates {
		if models.DifficultyScore(c.Problem.Difficulty) > capScore {
			continue
		}
		due := IsDueForReview(c.Review.ReviewDate, now)
		recent := IsRecentlyAttempted(c.Review.LastAttemptDate, c.Review.BoxLevel, true, now)
		if due || !recent {
			eligible = append(eligible, c)
		}
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return eligible[i].Review.ReviewDate.Before(eligible[j].Review.ReviewDate)
	})

	if sessionLength >= 0 && len(eligible) > sessionLength {
		eligible = eligible[:sessionLength]
	}

	problems := make([]models.Problem, len(eligible))
	for i, c := range eligible {
		problems[i] = c.Problem
	}
	return problems
}
