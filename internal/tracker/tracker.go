// Package tracker owns the user profile and today's meal log. Every mutation
// recomputes the day totals from the full meal list, persists the result,
// and only then replaces the in-memory copy.
package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"lg/fittrack-go-api/internal/kvstore"
	"lg/fittrack-go-api/internal/nutrition"
	"lg/fittrack-go-api/internal/observability"
)

var (
	ErrMealNotFound  = errors.New("meal not found")
	ErrDuplicateMeal = errors.New("meal id already logged today")
	ErrNotOnboarded  = errors.New("profile not set up")
)

// DefaultKeyPrefix namespaces records when no prefix is configured.
const DefaultKeyPrefix = "fittrack-"

// Tracker is safe for concurrent use.
type Tracker struct {
	mu    sync.Mutex
	store kvstore.Store
	keys  Keys
	now   func() time.Time
	loc   *time.Location

	profile       *nutrition.UserProfile
	profileLoaded bool
	day           *nutrition.DayStats
}

type Option func(*Tracker)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithLocation sets the zone whose calendar date decides "today".
func WithLocation(loc *time.Location) Option {
	return func(t *Tracker) {
		if loc != nil {
			t.loc = loc
		}
	}
}

// WithKeyPrefix overrides DefaultKeyPrefix.
func WithKeyPrefix(prefix string) Option {
	return func(t *Tracker) { t.keys.Prefix = prefix }
}

func New(store kvstore.Store, opts ...Option) *Tracker {
	t := &Tracker{
		store: store,
		keys:  Keys{Prefix: DefaultKeyPrefix},
		now:   time.Now,
		loc:   time.UTC,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Keys reports the storage keys in use.
func (t *Tracker) Keys() Keys { return t.keys }

// Now returns the tracker clock in its location.
func (t *Tracker) Now() time.Time { return t.now().In(t.loc) }

// Load reads the profile and today's log so startup surfaces storage errors.
func (t *Tracker) Load(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, err := t.loadProfile(ctx); err != nil {
		return err
	}
	_, err := t.today(ctx)
	return err
}

/* ─── Profile ─── */

// Profile returns the stored profile; ok is false before onboarding.
func (t *Tracker) Profile(ctx context.Context) (profile nutrition.UserProfile, ok bool, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	p, err := t.loadProfile(ctx)
	if err != nil || p == nil {
		return nutrition.UserProfile{}, false, err
	}
	return *p, true, nil
}

// Onboarded reports whether the onboarding flag is stored.
func (t *Tracker) Onboarded(ctx context.Context) (bool, error) {
	value, err := t.store.Get(ctx, t.keys.Onboarded())
	if errors.Is(err, kvstore.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return string(value) == "true", nil
}

// PreviewTargets builds the profile in would produce without storing it.
func (t *Tracker) PreviewTargets(in nutrition.ProfileInput) (nutrition.UserProfile, error) {
	return nutrition.BuildProfile(in)
}

// SetProfile derives targets from in, stores the profile and marks the user
// onboarded. A replaced profile keeps its ID.
func (t *Tracker) SetProfile(ctx context.Context, in nutrition.ProfileInput) (nutrition.UserProfile, error) {
	p, err := nutrition.BuildProfile(in)
	if err != nil {
		return nutrition.UserProfile{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	id, err := t.storedProfileID(ctx)
	if err != nil {
		return nutrition.UserProfile{}, err
	}
	if id != "" {
		p.ID = id
	}

	data, err := json.Marshal(p)
	if err != nil {
		return nutrition.UserProfile{}, fmt.Errorf("encode profile: %w", err)
	}
	if err := t.store.Set(ctx, t.keys.Profile(), data); err != nil {
		return nutrition.UserProfile{}, fmt.Errorf("store profile: %w", err)
	}
	if err := t.store.Set(ctx, t.keys.Onboarded(), []byte("true")); err != nil {
		return nutrition.UserProfile{}, fmt.Errorf("store onboarded flag: %w", err)
	}

	t.profile = &p
	t.profileLoaded = true
	observability.RecordProfileTargets(p.TargetCalories, p.TargetProtein, p.TargetCarbs, p.TargetFats)
	return p, nil
}

// Reset removes the profile, the onboarding flag and today's log.
func (t *Tracker) Reset(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	date := nutrition.NewDateOnly(t.Now())
	for _, key := range []string{t.keys.Profile(), t.keys.Onboarded(), t.keys.Day(date)} {
		if err := t.store.Remove(ctx, key); err != nil {
			return fmt.Errorf("reset: %w", err)
		}
	}

	t.profile = nil
	t.profileLoaded = true
	empty := NewDay(date)
	t.day = &empty
	observability.RecordProfileTargets(0, 0, 0, 0)
	observability.RecordDayTotals(0, 0, 0, 0, 0)
	return nil
}

// storedProfileID returns the ID of the stored profile record, or "" when
// there is none. Only the ID is read, so a record that no longer builds a
// valid profile can still be replaced.
func (t *Tracker) storedProfileID(ctx context.Context) (string, error) {
	if t.profileLoaded && t.profile != nil {
		return t.profile.ID, nil
	}
	data, err := t.store.Get(ctx, t.keys.Profile())
	if errors.Is(err, kvstore.ErrNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load profile: %w", err)
	}
	var stored struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &stored); err != nil {
		return "", nil
	}
	return stored.ID, nil
}

// loadProfile must be called with mu held. A stored record that cannot be
// decoded or rebuilt is logged and treated as not onboarded.
func (t *Tracker) loadProfile(ctx context.Context) (*nutrition.UserProfile, error) {
	if t.profileLoaded {
		return t.profile, nil
	}
	data, err := t.store.Get(ctx, t.keys.Profile())
	if errors.Is(err, kvstore.ErrNotFound) {
		t.profileLoaded = true
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}

	var stored nutrition.UserProfile
	if err := json.Unmarshal(data, &stored); err != nil {
		log.Printf("[loadProfile] decode stored profile: %v", err)
		t.profileLoaded = true
		return nil, nil
	}
	p, err := nutrition.Recompute(stored)
	if err != nil {
		log.Printf("[loadProfile] stored profile %s is invalid: %v", stored.ID, err)
		t.profileLoaded = true
		return nil, nil
	}
	t.profile = &p
	t.profileLoaded = true
	observability.RecordProfileTargets(p.TargetCalories, p.TargetProtein, p.TargetCarbs, p.TargetFats)
	return t.profile, nil
}

/* ─── Day log ─── */

// Today returns today's log, loading it from the store when the calendar
// date has moved on since the last call.
func (t *Tracker) Today(ctx context.Context) (nutrition.DayStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	day, err := t.today(ctx)
	if err != nil {
		return nutrition.DayStats{}, err
	}
	return copyDay(day), nil
}

// AddMeal appends meal to today's log. A meal without a date is logged
// today; one dated another day is rejected.
func (t *Tracker) AddMeal(ctx context.Context, meal nutrition.Meal) (nutrition.DayStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	day, err := t.today(ctx)
	if err != nil {
		return nutrition.DayStats{}, t.recordMutation("add", err)
	}
	if meal, err = datedToday(meal, day.Date); err != nil {
		return nutrition.DayStats{}, t.recordMutation("add", err)
	}
	if err := meal.Validate(); err != nil {
		return nutrition.DayStats{}, t.recordMutation("add", err)
	}
	next, err := addMeal(day, meal)
	if err != nil {
		return nutrition.DayStats{}, t.recordMutation("add", err)
	}
	return t.commit(ctx, "add", next)
}

// UpdateMeal replaces the meal with id. The replacement keeps id.
func (t *Tracker) UpdateMeal(ctx context.Context, id string, meal nutrition.Meal) (nutrition.DayStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	day, err := t.today(ctx)
	if err != nil {
		return nutrition.DayStats{}, t.recordMutation("update", err)
	}
	meal.ID = id
	if meal, err = datedToday(meal, day.Date); err != nil {
		return nutrition.DayStats{}, t.recordMutation("update", err)
	}
	if err := meal.Validate(); err != nil {
		return nutrition.DayStats{}, t.recordMutation("update", err)
	}
	next, err := replaceMeal(day, id, meal)
	if err != nil {
		return nutrition.DayStats{}, t.recordMutation("update", err)
	}
	return t.commit(ctx, "update", next)
}

// DeleteMeal removes the meal with id. An unknown id leaves the log as is
// and returns ErrMealNotFound.
func (t *Tracker) DeleteMeal(ctx context.Context, id string) (nutrition.DayStats, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	day, err := t.today(ctx)
	if err != nil {
		return nutrition.DayStats{}, t.recordMutation("delete", err)
	}
	next, err := removeMeal(day, id)
	if err != nil {
		return nutrition.DayStats{}, t.recordMutation("delete", err)
	}
	return t.commit(ctx, "delete", next)
}

// today must be called with mu held.
func (t *Tracker) today(ctx context.Context) (nutrition.DayStats, error) {
	date := nutrition.NewDateOnly(t.Now())
	if t.day != nil && t.day.Date.Equal(date.Time) {
		return *t.day, nil
	}

	day, err := t.loadDay(ctx, date)
	if err != nil {
		return nutrition.DayStats{}, err
	}
	t.day = &day
	observability.RecordDayTotals(day.TotalCalories, day.TotalProtein, day.TotalCarbs, day.TotalFats, len(day.Meals))
	return day, nil
}

func (t *Tracker) loadDay(ctx context.Context, date nutrition.DateOnly) (nutrition.DayStats, error) {
	data, err := t.store.Get(ctx, t.keys.Day(date))
	if errors.Is(err, kvstore.ErrNotFound) {
		return NewDay(date), nil
	}
	if err != nil {
		return nutrition.DayStats{}, fmt.Errorf("load day %s: %w", date, err)
	}

	var stored nutrition.DayStats
	if err := json.Unmarshal(data, &stored); err != nil {
		return nutrition.DayStats{}, fmt.Errorf("decode day %s: %w", date, err)
	}
	// Stored totals are not trusted; fold them again from the meals.
	return withMeals(date, stored.Meals), nil
}

// commit persists day and, once the write succeeds, makes it current.
func (t *Tracker) commit(ctx context.Context, op string, day nutrition.DayStats) (nutrition.DayStats, error) {
	data, err := json.Marshal(day)
	if err != nil {
		return nutrition.DayStats{}, t.recordMutation(op, fmt.Errorf("encode day: %w", err))
	}
	if err := t.store.Set(ctx, t.keys.Day(day.Date), data); err != nil {
		log.Printf("[commit] %s meal: store day %s: %v", op, day.Date, err)
		return nutrition.DayStats{}, t.recordMutation(op, fmt.Errorf("store day %s: %w", day.Date, err))
	}

	t.day = &day
	observability.RecordMealMutation(op, "ok")
	observability.RecordDayTotals(day.TotalCalories, day.TotalProtein, day.TotalCarbs, day.TotalFats, len(day.Meals))
	return copyDay(day), nil
}

func (t *Tracker) recordMutation(op string, err error) error {
	outcome := "error"
	switch {
	case errors.Is(err, ErrMealNotFound):
		outcome = "not_found"
	case errors.Is(err, ErrDuplicateMeal), errors.Is(err, nutrition.ErrInvalidInput):
		outcome = "invalid"
	}
	observability.RecordMealMutation(op, outcome)
	return err
}

func datedToday(meal nutrition.Meal, date nutrition.DateOnly) (nutrition.Meal, error) {
	if meal.Date.IsZero() {
		meal.Date = date
		return meal, nil
	}
	if !meal.Date.Equal(date.Time) {
		return meal, fmt.Errorf("%w: meal dated %s cannot be logged on %s", nutrition.ErrInvalidInput, meal.Date, date)
	}
	return meal, nil
}

// copyDay detaches the meal slice from the tracker's copy.
func copyDay(day nutrition.DayStats) nutrition.DayStats {
	day.Meals = append([]nutrition.Meal{}, day.Meals...)
	return day
}
