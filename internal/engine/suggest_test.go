package engine

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/lazypower/selfcare/internal/llm"
	"github.com/lazypower/selfcare/internal/store"
)

const goodReply = "Try a two-minute shoulder roll and neck stretch at your desk."

func testEngineWithGen(t *testing.T, mock *llm.MockClient) *Engine {
	t.Helper()
	db, err := store.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	gen := llm.NewGenerator(mock)
	gen.Backoff = 0
	return New(db, gen, time.Minute)
}

func TestSuggestNotConfigured(t *testing.T) {
	e := testEngine(t) // nil generator

	_, err := e.Suggest(context.Background(), 1)
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestSuggestNoRemindersUsesGenericPrompt(t *testing.T) {
	mock := &llm.MockClient{Response: &llm.Response{Content: goodReply}}
	e := testEngineWithGen(t, mock)
	e.Pick = func(n int) int { return 0 }

	got, err := e.Suggest(context.Background(), 1)
	if err != nil {
		t.Fatalf("Suggest: %v", err)
	}
	if got != goodReply {
		t.Errorf("suggestion = %q, want %q", got, goodReply)
	}

	if len(mock.Calls) != 1 {
		t.Fatalf("provider called %d times, want 1", len(mock.Calls))
	}
	options := llm.GenericSuggestionPrompts(llm.TimeOfDay(time.Now().Hour()))
	if mock.Calls[0] != options[0] {
		t.Errorf("prompt = %q, want generic prompt %q", mock.Calls[0], options[0])
	}
}

func TestSuggestWithRemindersEmbedsSchedule(t *testing.T) {
	mock := &llm.MockClient{Response: &llm.Response{Content: goodReply}}
	e := testEngineWithGen(t, mock)

	e.DB.CreateReminder(1, "Evening yoga", time.Now().Add(2*time.Hour))

	if _, err := e.Suggest(context.Background(), 1); err != nil {
		t.Fatalf("Suggest: %v", err)
	}

	prompt := mock.Calls[0]
	if !strings.Contains(prompt, "Evening yoga scheduled for") {
		t.Errorf("prompt missing reminder context: %q", prompt)
	}
	if !strings.Contains(prompt, "Doesn't conflict with their schedule") {
		t.Errorf("prompt missing schedule constraint: %q", prompt)
	}
}

func TestSuggestIgnoresPastAndCompletedReminders(t *testing.T) {
	mock := &llm.MockClient{Response: &llm.Response{Content: goodReply}}
	e := testEngineWithGen(t, mock)
	e.Pick = func(n int) int { return 1 }

	// Past-due and completed reminders are not "active" context.
	e.DB.CreateReminder(1, "Missed stretch", time.Now().Add(-time.Hour))
	done, _ := e.DB.CreateReminder(1, "Done walk", time.Now().Add(time.Hour))
	e.DB.MarkCompleted([]int64{done.ID})

	if _, err := e.Suggest(context.Background(), 1); err != nil {
		t.Fatalf("Suggest: %v", err)
	}

	options := llm.GenericSuggestionPrompts(llm.TimeOfDay(time.Now().Hour()))
	if mock.Calls[0] != options[1] {
		t.Errorf("expected generic prompt, got %q", mock.Calls[0])
	}
}

func TestSuggestFallsBackWhenProviderFails(t *testing.T) {
	mock := &llm.MockClient{Err: errors.New("deadline exceeded")}
	e := testEngineWithGen(t, mock)

	got, err := e.Suggest(context.Background(), 1)
	if err != nil {
		t.Fatalf("Suggest should never surface generation errors: %v", err)
	}

	found := false
	for _, f := range llm.SuggestionFallbacks {
		if got == f {
			found = true
		}
	}
	if !found {
		t.Errorf("suggestion %q not in fallback set", got)
	}
	if len(mock.Calls) != generationAttempts {
		t.Errorf("provider called %d times, want %d", len(mock.Calls), generationAttempts)
	}
}

func TestChatNotConfigured(t *testing.T) {
	e := testEngine(t)

	_, err := e.Chat(context.Background(), 1, "hello")
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("err = %v, want ErrNotConfigured", err)
	}
}

func TestChatEmbedsMessageAndContext(t *testing.T) {
	mock := &llm.MockClient{Response: &llm.Response{Content: goodReply}}
	e := testEngineWithGen(t, mock)

	e.DB.CreateReminder(1, "Evening yoga", time.Now().Add(2*time.Hour))

	got, err := e.Chat(context.Background(), 1, "I feel stressed today")
	if err != nil {
		t.Fatalf("Chat: %v", err)
	}
	if got != goodReply {
		t.Errorf("reply = %q, want %q", got, goodReply)
	}

	prompt := mock.Calls[0]
	if !strings.Contains(prompt, "I feel stressed today") {
		t.Errorf("prompt missing user message: %q", prompt)
	}
	if !strings.Contains(prompt, "Evening yoga at") {
		t.Errorf("prompt missing reminder context: %q", prompt)
	}
}

func TestChatFallsBackWhenProviderFails(t *testing.T) {
	mock := &llm.MockClient{Err: errors.New("service unreachable")}
	e := testEngineWithGen(t, mock)

	got, err := e.Chat(context.Background(), 1, "hello there")
	if err != nil {
		t.Fatalf("Chat should never surface generation errors: %v", err)
	}

	found := false
	for _, f := range llm.ChatFallbacks {
		if got == f {
			found = true
		}
	}
	if !found {
		t.Errorf("reply %q not in chat fallback set", got)
	}
}
