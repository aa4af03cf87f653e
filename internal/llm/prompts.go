package llm

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

// clockFormat renders timestamps the way prompts present them, e.g. "3:04 PM".
const clockFormat = "3:04 PM"

// DefaultPick selects a uniformly random index in [0, n). All randomness in
// prompt and fallback selection routes through a pick function so tests can
// substitute a deterministic one.
func DefaultPick(n int) int {
	return rand.Intn(n)
}

// TimeOfDay buckets an hour of the day into morning, afternoon, or evening.
func TimeOfDay(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return "morning"
	case hour >= 12 && hour < 17:
		return "afternoon"
	default:
		return "evening"
	}
}

// MealContext buckets an hour of the day into the meal window it falls in.
func MealContext(hour int) string {
	switch {
	case hour >= 5 && hour < 10:
		return "breakfast"
	case hour >= 10 && hour < 12:
		return "mid-morning snack"
	case hour >= 12 && hour < 14:
		return "lunch"
	case hour >= 14 && hour < 17:
		return "afternoon snack"
	case hour >= 17 && hour < 21:
		return "dinner"
	default:
		return "light evening snack"
	}
}

// GenericSuggestionPrompts returns the stock suggestion prompts used when the
// user has no upcoming reminders to build context from.
func GenericSuggestionPrompts(timeOfDay string) []string {
	return []string{
		fmt.Sprintf("Suggest a quick self-care activity perfect for this %s that takes 5-10 minutes.", timeOfDay),
		"Recommend a simple mindfulness or wellness activity that can boost energy and mood.",
		"What's a creative way to take a short mental health break right now?",
	}
}

// SuggestionPrompt builds the schedule-aware suggestion prompt. activities is
// a newline-joined list of upcoming reminders with their times.
func SuggestionPrompt(now time.Time, activities string) string {
	return fmt.Sprintf(`Current time: %s
User's upcoming activities:
%s

Based on their schedule and the current time (%s), suggest a unique and refreshing 5-10 minute self-care activity that:
1. Doesn't conflict with their schedule
2. Helps them stay energized and focused
3. Is specific and actionable
4. Different from standard suggestions like 'take a breathing break'`,
		now.Format(clockFormat), activities, TimeOfDay(now.Hour()))
}

// ChatPrompt builds the chat reply prompt for a user message. Messages that
// mention diet or food get the nutrition template with a meal window derived
// from the current hour; everything else gets the general self-care template.
// reminderContext is a newline-joined list of upcoming reminders, or empty.
func ChatPrompt(now time.Time, message, reminderContext string) string {
	lower := strings.ToLower(message)
	isDiet := strings.Contains(lower, "diet")
	isFood := strings.Contains(lower, "food")

	if isDiet || isFood {
		return nutritionPrompt(now, message, reminderContext, isDiet)
	}
	return selfCarePrompt(now, message, reminderContext)
}

func contextBlock(reminderContext string) string {
	if reminderContext == "" {
		return ""
	}
	return fmt.Sprintf("\n\nContext: User has these upcoming self-care activities:\n%s", reminderContext)
}

func nutritionPrompt(now time.Time, message, reminderContext string, isDiet bool) string {
	meal := MealContext(now.Hour())
	topic := "food recommendations"
	if isDiet {
		topic = "a diet plan"
	}

	return fmt.Sprintf(`You are a knowledgeable nutrition advisor. The current time is %s which is typically %s time. The user is asking about %s. Provide specific, practical advice tailored to this timing.

If the query is about diet:
1. Start with appropriate %s suggestions
2. Then provide a structured meal plan for the rest of the day:
   - Include specific meal timings
   - Suggest portion sizes using common household measurements
   - Include at least 2 alternatives for each meal
   - Balance proteins, carbs, and healthy fats
   - Specify water intake recommendations

If the query is about food:
1. Focus on immediate %s recommendations:
   - 3-4 specific healthy options suitable for %s
   - Exact portion sizes using common measurements
   - Quick preparation methods
   - Nutritional benefits of each option
   - Healthy alternatives for common dietary restrictions

Response Format:
1. Personalized greeting mentioning the current meal timing
2. Specific recommendations with exact portions and timing
3. 2-3 practical preparation or planning tips
4. A reminder about mindful eating and portion control
5. Brief note about consulting healthcare providers for personalized diet plans

Important Guidelines:
- All suggestions should be practical and easy to implement
- Include both vegetarian and non-vegetarian options
- Suggest common ingredients found in most kitchens
- Include quick preparation tips for busy schedules
- Emphasize balanced nutrition and portion control
- Consider common dietary restrictions and allergies%s

User message: %s`,
		now.Format(clockFormat), meal, topic, meal, meal, meal,
		contextBlock(reminderContext), message)
}

func selfCarePrompt(now time.Time, message, reminderContext string) string {
	return fmt.Sprintf(`You are a knowledgeable and empathetic healthcare assistant focused on providing personalized, practical self-care advice. The current time is %s. Analyze the user's message carefully and respond with relevant, actionable guidance.

Core Response Guidelines:
1. Start with a brief, empathetic acknowledgment of the user's concern
2. Provide specific, practical advice that can be implemented immediately
3. Focus on holistic well-being (physical, mental, and emotional aspects)
4. Keep responses clear, concise, and directly related to the user's query

Key Health Areas & Responses:
- Sleep Issues: Sleep hygiene tips, relaxation techniques, bedtime routines
- Pain Management: Safe relief methods, posture tips, ergonomic advice
- Exercise: Simple home exercises, stretching routines, activity modifications
- Stress: Quick grounding techniques, breathing exercises, mindfulness practices
- Anxiety: Immediate coping strategies, thought reframing, calming activities
- Focus: Concentration techniques, break scheduling, environment optimization
- Mood: Mood-lifting activities, social connection tips, routine building%s

User message: %s

Response Format:
1. Brief empathetic acknowledgment (1 sentence)
2. 2-3 immediate, practical suggestions specific to their concern
3. 1-2 preventive measures or long-term strategies
4. If relevant, mention specific warning signs that require professional attention
5. End with: 'Remember: This advice is for informational purposes only. For persistent or concerning symptoms, please consult a healthcare provider.'

Important:
- Keep responses focused and relevant to the specific query
- Provide actionable steps rather than general advice
- Maintain a supportive, non-judgmental tone
- Emphasize the importance of professional medical advice when needed

Keep responses practical, specific, and focused on actionable self-care steps while maintaining appropriate medical boundaries.`,
		now.Format(clockFormat), contextBlock(reminderContext), message)
}
