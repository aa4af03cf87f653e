package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lazypower/selfcare/internal/llm"
	"github.com/lazypower/selfcare/internal/store"
)

const (
	suggestionTimeout  = 10 * time.Second
	chatTimeout        = 15 * time.Second
	generationAttempts = 2
)

// Suggest returns a short self-care suggestion. With upcoming reminders the
// prompt embeds their schedule; without any, one of the stock prompts for the
// current time of day is chosen at random. The result is always usable text:
// generation failure is absorbed by the generator's fallback policy.
func (e *Engine) Suggest(ctx context.Context, ownerID int64) (string, error) {
	if e.Gen == nil {
		return "", ErrNotConfigured
	}
	now := time.Now()

	active, err := e.activeReminders(ownerID, now)
	if err != nil {
		// Prompt context is best-effort; a store error degrades to the
		// no-context prompt rather than failing the request.
		log.Printf("suggest: load reminders: %v", err)
		active = nil
	}

	var prompt string
	if len(active) == 0 {
		options := llm.GenericSuggestionPrompts(llm.TimeOfDay(now.Hour()))
		prompt = options[e.Pick(len(options))]
	} else {
		lines := make([]string, len(active))
		for i, r := range active {
			lines[i] = fmt.Sprintf("- %s scheduled for %s", r.Activity, r.ScheduledTime().Format("3:04 PM"))
		}
		prompt = llm.SuggestionPrompt(now, strings.Join(lines, "\n"))
	}

	res := e.Gen.Generate(ctx, llm.Request{
		Prompt:      prompt,
		Timeout:     suggestionTimeout,
		MaxAttempts: generationAttempts,
		Fallbacks:   llm.SuggestionFallbacks,
	})
	if res.Fallback {
		log.Printf("suggest: served fallback response")
	}
	return res.Text, nil
}

// activeReminders returns the owner's pending reminders scheduled in the
// future, the ones worth mentioning in prompt context.
func (e *Engine) activeReminders(ownerID int64, now time.Time) ([]store.Reminder, error) {
	pending, err := e.DB.ListPending(ownerID)
	if err != nil {
		return nil, err
	}
	cutoff := now.UnixMilli()
	var active []store.Reminder
	for _, r := range pending {
		if r.ScheduledAt > cutoff {
			active = append(active, r)
		}
	}
	return active, nil
}
