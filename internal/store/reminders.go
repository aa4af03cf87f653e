package store

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNotFound is returned when a reminder lookup or delete matches nothing.
var ErrNotFound = errors.New("reminder not found")

// ErrValidation is returned for malformed reminder input.
var ErrValidation = errors.New("invalid reminder")

// Reminder is a scheduled self-care activity with a completion flag.
// Timestamps are unix milliseconds.
type Reminder struct {
	ID          int64
	OwnerID     int64
	Activity    string
	ScheduledAt int64
	Completed   bool
	CreatedAt   int64
}

// ScheduledTime returns the scheduled timestamp as a time.Time in local time.
func (r *Reminder) ScheduledTime() time.Time {
	return time.UnixMilli(r.ScheduledAt)
}

// CreateReminder inserts a new reminder for the given owner and returns it
// with the assigned ID. The activity must be non-empty.
func (db *DB) CreateReminder(ownerID int64, activity string, scheduledAt time.Time) (*Reminder, error) {
	activity = strings.TrimSpace(activity)
	if activity == "" {
		return nil, fmt.Errorf("%w: activity required", ErrValidation)
	}

	now := time.Now().UnixMilli()
	result, err := db.Exec(`
		INSERT INTO reminders (owner_id, activity, scheduled_at, completed, created_at)
		VALUES (?, ?, ?, 0, ?)
	`, ownerID, activity, scheduledAt.UnixMilli(), now)
	if err != nil {
		return nil, fmt.Errorf("insert reminder: %w", err)
	}

	id, _ := result.LastInsertId()
	return &Reminder{
		ID:          id,
		OwnerID:     ownerID,
		Activity:    activity,
		ScheduledAt: scheduledAt.UnixMilli(),
		CreatedAt:   now,
	}, nil
}

// ListReminders returns all reminders for the owner in creation order.
func (db *DB) ListReminders(ownerID int64) ([]Reminder, error) {
	rows, err := db.Query(`
		SELECT id, owner_id, activity, scheduled_at, completed, created_at
		FROM reminders WHERE owner_id = ? ORDER BY id ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()
	return scanReminders(rows)
}

// ListPending returns the owner's reminders that have not been completed,
// in creation order.
func (db *DB) ListPending(ownerID int64) ([]Reminder, error) {
	rows, err := db.Query(`
		SELECT id, owner_id, activity, scheduled_at, completed, created_at
		FROM reminders WHERE owner_id = ? AND completed = 0 ORDER BY id ASC
	`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list pending reminders: %w", err)
	}
	defer rows.Close()
	return scanReminders(rows)
}

// ListPendingAll returns pending reminders across every owner, in creation
// order. Used by the background sweep, which reconciles the whole table.
func (db *DB) ListPendingAll() ([]Reminder, error) {
	rows, err := db.Query(`
		SELECT id, owner_id, activity, scheduled_at, completed, created_at
		FROM reminders WHERE completed = 0 ORDER BY id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list all pending reminders: %w", err)
	}
	defer rows.Close()
	return scanReminders(rows)
}

// DeleteReminder removes a reminder by ID. Returns ErrNotFound if the owner
// has no reminder with that ID.
func (db *DB) DeleteReminder(ownerID, id int64) error {
	result, err := db.Exec(`DELETE FROM reminders WHERE owner_id = ? AND id = ?`, ownerID, id)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

// MarkCompleted flips completed to true for the given reminder IDs in a single
// transaction. Already-completed reminders are left untouched, so redundant
// application is a no-op. Completion is never reversed by any store operation.
func (db *DB) MarkCompleted(ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("begin mark completed: %w", err)
	}

	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	query := fmt.Sprintf(`
		UPDATE reminders SET completed = 1
		WHERE id IN (%s) AND completed = 0
	`, placeholders)
	if _, err := tx.Exec(query, args...); err != nil {
		tx.Rollback()
		return fmt.Errorf("mark completed: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit mark completed: %w", err)
	}
	return nil
}

func scanReminders(rows *sql.Rows) ([]Reminder, error) {
	var reminders []Reminder
	for rows.Next() {
		var r Reminder
		if err := rows.Scan(&r.ID, &r.OwnerID, &r.Activity, &r.ScheduledAt, &r.Completed, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		reminders = append(reminders, r)
	}
	return reminders, rows.Err()
}
