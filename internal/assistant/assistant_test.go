package assistant

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"lg/fittrack-go-api/internal/nutrition"
)

func testProfile() *nutrition.UserProfile {
	return &nutrition.UserProfile{
		Name:           "Sam",
		TargetCalories: 2000,
		TargetProtein:  150,
		TargetCarbs:    200,
		TargetFats:     67,
	}
}

func testDay(calories int) *nutrition.DayStats {
	return &nutrition.DayStats{
		TotalCalories: calories,
		TotalProtein:  80.4,
		TotalCarbs:    130,
		TotalFats:     40.6,
		Meals:         make([]nutrition.Meal, 3),
	}
}

func seeded() *Responder {
	return New(rand.New(rand.NewPCG(1, 2)))
}

func TestReply_RequiresProfileAndDay(t *testing.T) {
	r := seeded()
	require.Equal(t, setupPrompt, r.Reply("how many calories left?", nil, testDay(0)))
	require.Equal(t, setupPrompt, r.Reply("how many calories left?", testProfile(), nil))
}

func TestReply_FixedAnswers(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		calories int
		want     string
	}{
		{
			name:     "calories left",
			message:  "How many Calories do I have LEFT today?",
			calories: 1200,
			want:     "You have 800 calories remaining for today! You've consumed 1200 out of your 2000 calorie target.",
		},
		{
			name:     "calories exceeded",
			message:  "calories remaining?",
			calories: 2100,
			want:     "You've exceeded your calorie target by 100 calories today. You've consumed 2100 calories.",
		},
		{
			name:     "calories exactly on target",
			message:  "calories remaining?",
			calories: 2000,
			want:     "You've exceeded your calorie target by 0 calories today. You've consumed 2000 calories.",
		},
		{
			name:     "progress",
			message:  "How am I doing?",
			calories: 1200,
			want:     "Here's your progress today:\n• Calories: 60% of target (1200/2000)\n• Protein: 54% of target (80g/150g)\n• Meals logged: 3",
		},
		{
			name:     "progress over target is not capped",
			message:  "show my progress",
			calories: 2500,
			want:     "Here's your progress today:\n• Calories: 125% of target (2500/2000)\n• Protein: 54% of target (80g/150g)\n• Meals logged: 3",
		},
		{
			name:     "macro breakdown",
			message:  "give me my macro breakdown",
			calories: 1200,
			want:     "Your macro breakdown today:\n• Protein: 80g / 150g\n• Carbs: 130g / 200g\n• Fats: 41g / 67g",
		},
		{
			name:     "calories rule wins over meal suggestion",
			message:  "suggest a meal, how many calories left?",
			calories: 1200,
			want:     "You have 800 calories remaining for today! You've consumed 1200 out of your 2000 calorie target.",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := seeded().Reply(tt.message, testProfile(), testDay(tt.calories))
			require.Equal(t, tt.want, got)
		})
	}
}

func TestReply_ProteinSuggestion(t *testing.T) {
	got := seeded().Reply("Suggest a protein snack", testProfile(), testDay(1200))

	require.True(t, strings.HasPrefix(got, "Here's a high-protein option: "), got)
	require.True(t, strings.HasSuffix(got, ". You need 70g more protein to reach your daily target of 150g."), got)
	requireMentionsOneOf(t, got, proteinSuggestions)
}

func TestReply_MealSuggestion(t *testing.T) {
	got := seeded().Reply("can you suggest a meal", testProfile(), testDay(1200))

	require.True(t, strings.HasPrefix(got, "How about: "), got)
	require.True(t, strings.HasSuffix(got, "? This would be a balanced option considering your remaining calories (800)."), got)
	requireMentionsOneOf(t, got, mealSuggestions)
}

func TestReply_DefaultIsOneOfSet(t *testing.T) {
	r := seeded()
	for range 20 {
		got := r.Reply("hello there", testProfile(), testDay(0))
		require.Contains(t, defaultReplies, got)
	}
}

func TestReply_SameSeedSameReplies(t *testing.T) {
	a, b := seeded(), seeded()
	for range 10 {
		require.Equal(t,
			a.Reply("suggest meal", testProfile(), testDay(500)),
			b.Reply("suggest meal", testProfile(), testDay(500)))
	}
}

func TestNew_NilSource(t *testing.T) {
	got := New(nil).Reply("anything", testProfile(), testDay(0))
	require.Contains(t, defaultReplies, got)
}

func requireMentionsOneOf(t *testing.T, reply string, options []string) {
	t.Helper()
	for _, o := range options {
		if strings.Contains(reply, o) {
			return
		}
	}
	t.Fatalf("reply %q names none of the suggestions", reply)
}
