// Package chores derives schedule state for household chores. Nothing here is
// stored: overdue/due-soon/next-due are pure functions of the chore, its
// completion log, and an explicit evaluation time.
package chores

import (
	"math"
	"time"

	"homestock/internal/models"
)

// DueSoonWindowDays is the lookahead within which a scheduled chore counts as
// due soon.
const DueSoonWindowDays = 2

// Schedule status values as reported by the API.
const (
	StatusLogOnly string = "log-only"
	StatusOverdue string = "overdue"
	StatusDueSoon string = "due-soon"
	StatusOK      string = "ok"
)

// LastCompletion returns the most recent completion of the chore, or nil if
// it was never completed.
func LastCompletion(choreID string, completions []models.ChoreCompletion) *models.ChoreCompletion {
	var last *models.ChoreCompletion
	for i := range completions {
		if completions[i].ChoreID != choreID {
			continue
		}
		if last == nil || completions[i].CompletedAt.After(last.CompletedAt) {
			last = &completions[i]
		}
	}
	return last
}

// DaysSinceLastDone returns the whole days elapsed since the chore was last
// completed, or nil if it never was.
func DaysSinceLastDone(choreID string, completions []models.ChoreCompletion, now time.Time) *int {
	last := LastCompletion(choreID, completions)
	if last == nil {
		return nil
	}
	days := int(math.Floor(now.Sub(last.CompletedAt).Hours() / 24))
	return &days
}

// NextDueDate returns when the chore is next due: the last completion (or the
// chore's creation if never completed) plus its frequency. Log-only chores
// have no due date and return nil.
func NextDueDate(chore *models.Chore, completions []models.ChoreCompletion) *time.Time {
	if !scheduled(chore) {
		return nil
	}
	base := chore.CreatedAt
	if last := LastCompletion(chore.ID, completions); last != nil {
		base = last.CompletedAt
	}
	due := base.AddDate(0, 0, *chore.FrequencyDays)
	return &due
}

// IsOverdue reports whether the chore is past its frequency window. A
// scheduled chore that was never completed is overdue by definition.
func IsOverdue(chore *models.Chore, completions []models.ChoreCompletion, now time.Time) bool {
	if !scheduled(chore) {
		return false
	}
	days := DaysSinceLastDone(chore.ID, completions, now)
	if days == nil {
		return true
	}
	return *days > *chore.FrequencyDays
}

// IsDueSoon reports whether the chore is within the lookahead window of its
// due date and not yet overdue.
func IsDueSoon(chore *models.Chore, completions []models.ChoreCompletion, now time.Time) bool {
	if !scheduled(chore) {
		return false
	}
	if IsOverdue(chore, completions, now) {
		return false
	}
	days := DaysSinceLastDone(chore.ID, completions, now)
	if days == nil {
		return false
	}
	return *days >= *chore.FrequencyDays-DueSoonWindowDays
}

// Status collapses the schedule derivations into a single state. A scheduled
// chore is in exactly one of overdue, due-soon, or ok at any evaluation time.
func Status(chore *models.Chore, completions []models.ChoreCompletion, now time.Time) string {
	switch {
	case !scheduled(chore):
		return StatusLogOnly
	case IsOverdue(chore, completions, now):
		return StatusOverdue
	case IsDueSoon(chore, completions, now):
		return StatusDueSoon
	default:
		return StatusOK
	}
}

// DueDatesInRange projects the chore's recurring due dates onto [from, to],
// e.g. a visible calendar month plus its surrounding partial weeks. The
// projection starts at the next due date and steps by the chore's frequency,
// so every occurrence in the range is returned, not just the next one.
func DueDatesInRange(chore *models.Chore, completions []models.ChoreCompletion, from, to time.Time) []time.Time {
	next := NextDueDate(chore, completions)
	if next == nil {
		return nil
	}

	var dates []time.Time
	date := *next
	for date.Before(from) {
		date = date.AddDate(0, 0, *chore.FrequencyDays)
	}
	for !date.After(to) {
		dates = append(dates, date)
		date = date.AddDate(0, 0, *chore.FrequencyDays)
	}
	return dates
}

func scheduled(chore *models.Chore) bool {
	return chore.FrequencyDays != nil && *chore.FrequencyDays > 0
}
