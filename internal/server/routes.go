package server

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lazypower/selfcare/internal/engine"
	"github.com/lazypower/selfcare/internal/store"
)

// scheduledTimeLayouts are the accepted forms for scheduled_time. The naive
// forms (no zone) come from HTML datetime inputs and are read as server-local
// time.
var scheduledTimeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

func parseScheduledTime(s string) (time.Time, error) {
	for _, layout := range scheduledTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errors.New("unparsable scheduled_time")
}

type reminderJSON struct {
	ID            int64  `json:"id"`
	Activity      string `json:"activity"`
	ScheduledTime string `json:"scheduled_time"`
	Completed     bool   `json:"completed"`
}

func toReminderJSON(r store.Reminder) reminderJSON {
	return reminderJSON{
		ID:            r.ID,
		Activity:      r.Activity,
		ScheduledTime: r.ScheduledTime().Format(time.RFC3339),
		Completed:     r.Completed,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleCreateReminder(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Activity      string `json:"activity"`
		ScheduledTime string `json:"scheduled_time"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	when, err := parseScheduledTime(req.ScheduledTime)
	if err != nil {
		writeError(w, http.StatusBadRequest, "scheduled_time must be an ISO-8601 timestamp")
		return
	}

	reminder, err := s.db.CreateReminder(defaultOwnerID, req.Activity, when)
	if err != nil {
		if errors.Is(err, store.ErrValidation) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Printf("create reminder: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to create reminder")
		return
	}

	writeJSON(w, http.StatusCreated, toReminderJSON(*reminder))
}

func (s *Server) handleListReminders(w http.ResponseWriter, r *http.Request) {
	// Reconcile before reading: no past-due reminder is ever reported as
	// pending, regardless of when the next sweep runs.
	if _, err := s.engine.Reconcile(defaultOwnerID, time.Now()); err != nil {
		log.Printf("list reminders: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load reminders")
		return
	}

	reminders, err := s.db.ListReminders(defaultOwnerID)
	if err != nil {
		log.Printf("list reminders: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to load reminders")
		return
	}

	out := make([]reminderJSON, len(reminders))
	for i, rem := range reminders {
		out[i] = toReminderJSON(rem)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDeleteReminder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "reminderID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid reminder id")
		return
	}

	if err := s.db.DeleteReminder(defaultOwnerID, id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "reminder not found")
			return
		}
		log.Printf("delete reminder %d: %v", id, err)
		writeError(w, http.StatusInternalServerError, "failed to delete reminder")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (s *Server) handleSuggestion(w http.ResponseWriter, r *http.Request) {
	suggestion, err := s.engine.Suggest(r.Context(), defaultOwnerID)
	if err != nil {
		if errors.Is(err, engine.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "suggestion service not configured")
			return
		}
		log.Printf("suggestion: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to generate suggestion")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"suggestion": suggestion})
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		writeError(w, http.StatusBadRequest, "message cannot be empty")
		return
	}

	reply, err := s.engine.Chat(r.Context(), defaultOwnerID, message)
	if err != nil {
		if errors.Is(err, engine.ErrNotConfigured) {
			writeError(w, http.StatusServiceUnavailable, "chat service not configured")
			return
		}
		log.Printf("chat: %v", err)
		writeError(w, http.StatusInternalServerError, "failed to generate reply")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"reply": reply})
}
