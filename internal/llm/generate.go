package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// minResponseLen is the smallest usable response, in characters. Anything at
// or under this is treated the same as a failed attempt.
const minResponseLen = 10

// SuggestionFallbacks are served when suggestion generation is exhausted.
var SuggestionFallbacks = []string{
	"Do a quick desk stretch routine focusing on your neck and shoulders.",
	"Take a short walk around your space while practicing mindful observation.",
	"Do a quick gratitude exercise: write down three things you're thankful for.",
	"Practice the 4-7-8 breathing technique for one minute.",
	"Stand up and do 10 gentle jumping jacks to boost circulation.",
}

// ChatFallbacks are served when chat generation is exhausted.
var ChatFallbacks = []string{
	"I'd love to support you better. Could you share what specific aspect of self-care you're focusing on today?",
	"Let's explore what would help you feel more balanced right now. What's on your mind?",
	"I'm here to help you create a meaningful self-care routine. What area would you like to work on first?",
	"Your well-being matters. Could you tell me more about what kind of support you're looking for?",
	"Sometimes it helps to start with small steps. What's one self-care goal you'd like to focus on?",
	"I'm interested in understanding your needs better. What brings you to seek self-care guidance today?",
}

// Request describes one bounded generation call.
type Request struct {
	Prompt      string
	Timeout     time.Duration // per-attempt bound
	MaxAttempts int
	Fallbacks   []string // served when all attempts fail
}

// Result is the outcome of a Generate call. Fallback marks responses drawn
// from the request's fallback set rather than the provider.
type Result struct {
	Text     string
	Fallback bool
}

// Generator wraps a Client with per-attempt timeouts, bounded retries, and a
// fallback policy. Generate never fails from the caller's perspective: when
// every attempt errors out, times out, or returns an unusably short response,
// it serves a random entry from the request's fallback set instead.
type Generator struct {
	client Client

	// Backoff is the pause between attempts. Tests may zero it.
	Backoff time.Duration

	// Pick selects a random index; replace to make selection deterministic.
	Pick func(n int) int
}

// NewGenerator creates a Generator over the given provider client.
func NewGenerator(client Client) *Generator {
	return &Generator{
		client:  client,
		Backoff: time.Second,
		Pick:    DefaultPick,
	}
}

// Generate runs the request against the provider. Failed attempts are logged
// with their index; exhaustion is logged once before falling back.
func (g *Generator) Generate(ctx context.Context, req Request) Result {
	attempts := req.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := g.attempt(ctx, req)
		if err == nil {
			return Result{Text: text}
		}
		log.Printf("generation attempt %d/%d failed: %v", attempt, attempts, err)
		if attempt < attempts && g.Backoff > 0 {
			time.Sleep(g.Backoff)
		}
	}

	log.Printf("generation exhausted after %d attempts, serving fallback", attempts)
	if len(req.Fallbacks) == 0 {
		return Result{Fallback: true}
	}
	return Result{Text: req.Fallbacks[g.Pick(len(req.Fallbacks))], Fallback: true}
}

func (g *Generator) attempt(ctx context.Context, req Request) (string, error) {
	if req.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, req.Timeout)
		defer cancel()
	}

	resp, err := g.client.Complete(ctx, req.Prompt)
	if err != nil {
		return "", err
	}
	if resp == nil {
		return "", errors.New("empty response")
	}

	text := strings.TrimSpace(resp.Content)
	if len(text) <= minResponseLen {
		return "", fmt.Errorf("response too short (%d chars)", len(text))
	}
	return text, nil
}
