package engine

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/lazypower/selfcare/internal/llm"
)

// Chat returns a conversational reply to the user's message, with the
// prompt carrying the current time and any upcoming-reminder context.
// Like Suggest, it never surfaces a generation failure to the caller.
func (e *Engine) Chat(ctx context.Context, ownerID int64, message string) (string, error) {
	if e.Gen == nil {
		return "", ErrNotConfigured
	}
	now := time.Now()

	var reminderContext string
	if active, err := e.activeReminders(ownerID, now); err != nil {
		log.Printf("chat: load reminders: %v", err)
	} else if len(active) > 0 {
		lines := make([]string, len(active))
		for i, r := range active {
			lines[i] = fmt.Sprintf("- %s at %s", r.Activity, r.ScheduledTime().Format("3:04 PM"))
		}
		reminderContext = strings.Join(lines, "\n")
	}

	prompt := llm.ChatPrompt(now, message, reminderContext)

	res := e.Gen.Generate(ctx, llm.Request{
		Prompt:      prompt,
		Timeout:     chatTimeout,
		MaxAttempts: generationAttempts,
		Fallbacks:   llm.ChatFallbacks,
	})
	if res.Fallback {
		log.Printf("chat: served fallback response")
	}
	return res.Text, nil
}
