// Package assistant answers chat messages about the day's nutrition with
// canned, keyword-matched replies. It only reads the profile and day it is
// handed.
package assistant

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"lg/fittrack-go-api/internal/nutrition"
	"lg/fittrack-go-api/internal/tracker"
)

// Greeting is the first message a chat shows.
const Greeting = "Hi! I'm your FitTrack AI assistant. I can help you track calories, suggest meals, or answer nutrition questions. Try asking me 'How many calories do I have left today?' or 'Suggest a high-protein snack'."

const setupPrompt = "Please complete your profile setup first to get personalized assistance."

var proteinSuggestions = []string{
	"Greek yogurt with berries (15-20g protein)",
	"Grilled chicken breast (25-30g protein)",
	"Hard-boiled eggs (6g protein each)",
	"Cottage cheese with nuts (14g protein)",
	"Protein smoothie with whey powder (20-25g protein)",
	"Lentil soup (18g protein per cup)",
	"Tuna salad (25g protein)",
}

var mealSuggestions = []string{
	"Grilled salmon with quinoa and roasted vegetables",
	"Chicken stir-fry with brown rice and mixed vegetables",
	"Lentil curry with whole grain naan",
	"Greek salad with grilled chicken and olive oil dressing",
	"Turkey and avocado wrap with whole wheat tortilla",
	"Vegetable omelet with whole grain toast",
	"Quinoa bowl with black beans, vegetables, and tahini dressing",
}

var defaultReplies = []string{
	"I can help you track your nutrition! Try asking about your remaining calories, macro breakdown, or meal suggestions.",
	"Feel free to ask me about your daily progress, nutrition goals, or meal ideas!",
	"I'm here to help with your fitness journey. Ask me about calories, macros, or healthy meal suggestions.",
	"Try asking me specific questions like 'How many calories left?' or 'Suggest a healthy dinner'.",
}

// Responder picks replies. The random source is shared, so it is locked.
type Responder struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// New returns a Responder drawing from rng; nil seeds one from the runtime.
func New(rng *rand.Rand) *Responder {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Responder{rng: rng}
}

// Reply answers message. Rules are checked in order and the first match
// wins; profile or day being nil yields the setup prompt.
func (r *Responder) Reply(message string, profile *nutrition.UserProfile, day *nutrition.DayStats) string {
	if profile == nil || day == nil {
		return setupPrompt
	}
	msg := strings.ToLower(message)
	progress := tracker.ComputeProgress(*profile, *day)

	switch {
	case strings.Contains(msg, "calories") && containsAny(msg, "left", "remaining"):
		remaining := progress.Calories.Remaining
		if remaining > 0 {
			return fmt.Sprintf("You have %d calories remaining for today! You've consumed %d out of your %d calorie target.",
				remaining, day.TotalCalories, profile.TargetCalories)
		}
		return fmt.Sprintf("You've exceeded your calorie target by %d calories today. You've consumed %d calories.",
			-remaining, day.TotalCalories)

	case strings.Contains(msg, "protein") && containsAny(msg, "suggest", "meal", "food"):
		return fmt.Sprintf("Here's a high-protein option: %s. You need %dg more protein to reach your daily target of %dg.",
			r.pick(proteinSuggestions), progress.Protein.Remaining, profile.TargetProtein)

	case strings.Contains(msg, "suggest") && strings.Contains(msg, "meal"):
		return fmt.Sprintf("How about: %s? This would be a balanced option considering your remaining calories (%d).",
			r.pick(mealSuggestions), progress.Calories.Remaining)

	case containsAny(msg, "progress", "how am i doing"):
		return fmt.Sprintf("Here's your progress today:\n• Calories: %d%% of target (%d/%d)\n• Protein: %d%% of target (%dg/%dg)\n• Meals logged: %d",
			progress.Calories.RawPercent, day.TotalCalories, profile.TargetCalories,
			progress.Protein.Percent, progress.Protein.Consumed, profile.TargetProtein,
			progress.Meals)

	case containsAny(msg, "macro", "breakdown"):
		return fmt.Sprintf("Your macro breakdown today:\n• Protein: %dg / %dg\n• Carbs: %dg / %dg\n• Fats: %dg / %dg",
			progress.Protein.Consumed, profile.TargetProtein,
			progress.Carbs.Consumed, profile.TargetCarbs,
			progress.Fats.Consumed, profile.TargetFats)
	}
	return r.pick(defaultReplies)
}

func (r *Responder) pick(options []string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return options[r.rng.IntN(len(options))]
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
