package store

import (
	"errors"
	"sync"
	"testing"
	"time"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestCreateReminder(t *testing.T) {
	db := testDB(t)

	when := time.Now().Add(30 * time.Minute)
	r, err := db.CreateReminder(1, "Stretch", when)
	if err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}
	if r.ID == 0 {
		t.Error("expected assigned ID")
	}
	if r.Activity != "Stretch" {
		t.Errorf("Activity = %q, want Stretch", r.Activity)
	}
	if r.Completed {
		t.Error("new reminder should not be completed")
	}
	if r.ScheduledAt != when.UnixMilli() {
		t.Errorf("ScheduledAt = %d, want %d", r.ScheduledAt, when.UnixMilli())
	}
}

func TestCreateReminderEmptyActivity(t *testing.T) {
	db := testDB(t)

	_, err := db.CreateReminder(1, "   ", time.Now())
	if !errors.Is(err, ErrValidation) {
		t.Errorf("err = %v, want ErrValidation", err)
	}
}

func TestListRemindersCreationOrder(t *testing.T) {
	db := testDB(t)

	now := time.Now()
	// Insert out of scheduled order; list order must follow creation.
	db.CreateReminder(1, "Walk", now.Add(2*time.Hour))
	db.CreateReminder(1, "Hydrate", now.Add(1*time.Hour))
	db.CreateReminder(1, "Journal", now.Add(3*time.Hour))

	reminders, err := db.ListReminders(1)
	if err != nil {
		t.Fatalf("ListReminders: %v", err)
	}
	if len(reminders) != 3 {
		t.Fatalf("got %d reminders, want 3", len(reminders))
	}
	want := []string{"Walk", "Hydrate", "Journal"}
	for i, r := range reminders {
		if r.Activity != want[i] {
			t.Errorf("reminders[%d] = %q, want %q", i, r.Activity, want[i])
		}
	}
}

func TestListRemindersOwnerScoped(t *testing.T) {
	db := testDB(t)

	db.CreateReminder(1, "Walk", time.Now())
	db.CreateReminder(2, "Run", time.Now())

	reminders, err := db.ListReminders(1)
	if err != nil {
		t.Fatalf("ListReminders: %v", err)
	}
	if len(reminders) != 1 {
		t.Fatalf("got %d reminders, want 1", len(reminders))
	}
	if reminders[0].Activity != "Walk" {
		t.Errorf("Activity = %q, want Walk", reminders[0].Activity)
	}
}

func TestListPending(t *testing.T) {
	db := testDB(t)

	r1, _ := db.CreateReminder(1, "Walk", time.Now())
	db.CreateReminder(1, "Hydrate", time.Now())

	if err := db.MarkCompleted([]int64{r1.ID}); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	pending, err := db.ListPending(1)
	if err != nil {
		t.Fatalf("ListPending: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("got %d pending, want 1", len(pending))
	}
	if pending[0].Activity != "Hydrate" {
		t.Errorf("Activity = %q, want Hydrate", pending[0].Activity)
	}
}

func TestDeleteReminder(t *testing.T) {
	db := testDB(t)

	r, _ := db.CreateReminder(1, "Walk", time.Now())

	if err := db.DeleteReminder(1, r.ID); err != nil {
		t.Fatalf("DeleteReminder: %v", err)
	}

	reminders, _ := db.ListReminders(1)
	if len(reminders) != 0 {
		t.Errorf("got %d reminders after delete, want 0", len(reminders))
	}
}

func TestDeleteReminderNotFound(t *testing.T) {
	db := testDB(t)

	if err := db.DeleteReminder(1, 999); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteReminderWrongOwner(t *testing.T) {
	db := testDB(t)

	r, _ := db.CreateReminder(1, "Walk", time.Now())

	if err := db.DeleteReminder(2, r.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestDeleteCompletedReminder(t *testing.T) {
	db := testDB(t)

	r, _ := db.CreateReminder(1, "Walk", time.Now())
	db.MarkCompleted([]int64{r.ID})

	// Deletion is allowed regardless of completion state.
	if err := db.DeleteReminder(1, r.ID); err != nil {
		t.Fatalf("DeleteReminder: %v", err)
	}
}

func TestMarkCompleted(t *testing.T) {
	db := testDB(t)

	r1, _ := db.CreateReminder(1, "Walk", time.Now())
	r2, _ := db.CreateReminder(1, "Hydrate", time.Now())

	if err := db.MarkCompleted([]int64{r1.ID, r2.ID}); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	reminders, _ := db.ListReminders(1)
	for _, r := range reminders {
		if !r.Completed {
			t.Errorf("reminder %d not completed", r.ID)
		}
	}
}

func TestMarkCompletedIdempotent(t *testing.T) {
	db := testDB(t)

	r, _ := db.CreateReminder(1, "Walk", time.Now())

	if err := db.MarkCompleted([]int64{r.ID}); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}
	if err := db.MarkCompleted([]int64{r.ID}); err != nil {
		t.Fatalf("MarkCompleted again: %v", err)
	}

	reminders, _ := db.ListReminders(1)
	if len(reminders) != 1 || !reminders[0].Completed {
		t.Errorf("reminder state changed by redundant MarkCompleted: %+v", reminders)
	}
}

func TestMarkCompletedEmptySet(t *testing.T) {
	db := testDB(t)

	if err := db.MarkCompleted(nil); err != nil {
		t.Fatalf("MarkCompleted(nil): %v", err)
	}
}

func TestOpenMemoryConcurrentQueries(t *testing.T) {
	// The request path and the background sweep query the store from
	// separate goroutines. The in-memory database must present one shared
	// schema no matter how the connection pool schedules them.
	db := testDB(t)
	db.CreateReminder(1, "Walk", time.Now())

	var wg sync.WaitGroup
	errs := make(chan error, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := db.ListPendingAll(); err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent query: %v", err)
	}
}

func TestSchemaVersion(t *testing.T) {
	db := testDB(t)

	v, err := db.SchemaVersion()
	if err != nil {
		t.Fatalf("SchemaVersion: %v", err)
	}
	if v != len(migrations) {
		t.Errorf("version = %d, want %d", v, len(migrations))
	}
}
