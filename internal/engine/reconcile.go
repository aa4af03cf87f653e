package engine

import (
	"fmt"
	"time"

	"github.com/lazypower/selfcare/internal/store"
)

// DueForCompletion returns the IDs of reminders that are still pending but
// whose scheduled time has passed. Pure decision function; both the read path
// and the background sweep apply its result through store.MarkCompleted, so
// the transition is identical regardless of which path runs first.
func DueForCompletion(reminders []store.Reminder, now time.Time) []int64 {
	var due []int64
	cutoff := now.UnixMilli()
	for _, r := range reminders {
		if !r.Completed && r.ScheduledAt < cutoff {
			due = append(due, r.ID)
		}
	}
	return due
}

// Reconcile transitions the owner's past-due pending reminders to completed.
// Returns how many reminders were due. Called synchronously before any
// reminder list is returned to a caller.
func (e *Engine) Reconcile(ownerID int64, now time.Time) (int, error) {
	pending, err := e.DB.ListPending(ownerID)
	if err != nil {
		return 0, fmt.Errorf("reconcile: %w", err)
	}
	return e.applyDue(pending, now)
}

// ReconcileAll transitions past-due pending reminders for every owner.
// Called from the background sweep.
func (e *Engine) ReconcileAll(now time.Time) (int, error) {
	pending, err := e.DB.ListPendingAll()
	if err != nil {
		return 0, fmt.Errorf("reconcile all: %w", err)
	}
	return e.applyDue(pending, now)
}

func (e *Engine) applyDue(pending []store.Reminder, now time.Time) (int, error) {
	due := DueForCompletion(pending, now)
	if len(due) == 0 {
		return 0, nil
	}
	if err := e.DB.MarkCompleted(due); err != nil {
		return 0, fmt.Errorf("mark completed: %w", err)
	}
	return len(due), nil
}
