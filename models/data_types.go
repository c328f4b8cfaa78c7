package models

import (
	"encoding/json"
	"fmt"
)

// DataCategory defines the semantic category of a synchronized record.
// The value determines which typed payload the record carries and which
// remote table the record belongs to.
type DataCategory string

const (
	// CategoryProfile represents the user profile: identity, physical
	// attributes, and fitness goals.
	CategoryProfile DataCategory = "profile"

	// CategoryPreferences represents application preferences such as
	// units, notification settings, and meal planning flags.
	CategoryPreferences DataCategory = "preferences"

	// CategoryMeasurements represents body measurement entries
	// (weight, body fat, circumferences) recorded over time.
	CategoryMeasurements DataCategory = "measurements"

	// CategoryWorkouts represents completed workout sessions
	// including exercises, sets, and duration.
	CategoryWorkouts DataCategory = "workouts"

	// CategoryNutrition represents nutrition log entries
	// (meals, foods, and macro totals) recorded per day.
	CategoryNutrition DataCategory = "nutrition"

	// CategoryProgress represents derived progress entries such as
	// streaks, achievements, and milestone snapshots.
	CategoryProgress DataCategory = "progress"
)

// AllDataCategories lists every known category in a stable order.
// The order matters for full synchronization cycles: profile and
// preferences are synchronized before the high-volume collections.
var AllDataCategories = []DataCategory{
	CategoryProfile,
	CategoryPreferences,
	CategoryMeasurements,
	CategoryWorkouts,
	CategoryNutrition,
	CategoryProgress,
}

// String returns the category name as stored in databases and logs.
func (c DataCategory) String() string {
	return string(c)
}

// Valid reports whether the category is one of the known values.
func (c DataCategory) Valid() bool {
	switch c {
	case CategoryProfile, CategoryPreferences, CategoryMeasurements,
		CategoryWorkouts, CategoryNutrition, CategoryProgress:
		return true
	}
	return false
}

// RemoteTable returns the name of the remote database table
// that stores records of this category.
func (c DataCategory) RemoteTable() string {
	switch c {
	case CategoryProfile:
		return "user_profiles"
	case CategoryPreferences:
		return "user_preferences"
	case CategoryMeasurements:
		return "body_measurements"
	case CategoryWorkouts:
		return "workout_sessions"
	case CategoryNutrition:
		return "nutrition_logs"
	case CategoryProgress:
		return "progress_entries"
	}
	return ""
}

// Singleton reports whether the category holds exactly one record per user
// (profile, preferences) as opposed to an append-mostly collection.
func (c DataCategory) Singleton() bool {
	return c == CategoryProfile || c == CategoryPreferences
}

// ParseDataCategory converts s into a DataCategory.
// Returns an error for unknown values.
func ParseDataCategory(s string) (DataCategory, error) {
	c := DataCategory(s)
	if !c.Valid() {
		return "", fmt.Errorf("unknown data category %q", s)
	}
	return c, nil
}

// ProfileData is the typed payload for CategoryProfile records.
type ProfileData struct {
	// DisplayName is the name shown in the application UI.
	DisplayName string `json:"display_name"`

	// Email is the account email address the profile belongs to.
	Email string `json:"email"`

	// Age in full years. Zero means not provided.
	Age int `json:"age,omitempty"`

	// HeightCm is the user height in centimeters.
	HeightCm float64 `json:"height_cm,omitempty"`

	// WeightKg is the latest known body weight in kilograms.
	WeightKg float64 `json:"weight_kg,omitempty"`

	// Goal is the primary fitness goal (e.g. "lose_weight", "gain_muscle").
	Goal string `json:"goal,omitempty"`

	// ActivityLevel describes habitual activity ("sedentary" .. "athlete").
	ActivityLevel string `json:"activity_level,omitempty"`

	// OnboardingComplete marks that the user finished initial setup.
	OnboardingComplete bool `json:"onboarding_complete"`
}

// PreferencesData is the typed payload for CategoryPreferences records.
type PreferencesData struct {
	// Units selects the measurement system: "metric" or "imperial".
	Units string `json:"units"`

	// NotificationsEnabled toggles workout and meal reminders.
	NotificationsEnabled bool `json:"notifications_enabled"`

	// MealsEnabled lists which daily meals the user tracks
	// (e.g. breakfast, lunch, dinner, snacks).
	MealsEnabled []string `json:"meals_enabled,omitempty"`

	// Theme is the UI theme identifier.
	Theme string `json:"theme,omitempty"`

	// Language is the BCP 47 language tag for localized content.
	Language string `json:"language,omitempty"`
}

// MeasurementsData is the typed payload for CategoryMeasurements records.
// One record represents a single measurement session.
type MeasurementsData struct {
	// MeasuredAt is the moment the measurements were taken.
	MeasuredAt int64 `json:"measured_at"`

	// WeightKg is body weight in kilograms.
	WeightKg float64 `json:"weight_kg,omitempty"`

	// BodyFatPct is body fat percentage (0..100).
	BodyFatPct float64 `json:"body_fat_pct,omitempty"`

	// WaistCm and ChestCm are circumference measurements in centimeters.
	WaistCm float64 `json:"waist_cm,omitempty"`
	ChestCm float64 `json:"chest_cm,omitempty"`

	// Notes is an optional free-form annotation.
	Notes string `json:"notes,omitempty"`
}

// WorkoutData is the typed payload for CategoryWorkouts records.
// One record represents a single completed workout session.
type WorkoutData struct {
	// Name is the workout display name (e.g. "Upper Body A").
	Name string `json:"name"`

	// StartedAt and DurationSec define when and how long the session ran.
	StartedAt   int64 `json:"started_at"`
	DurationSec int   `json:"duration_sec"`

	// Exercises lists the performed exercises in order.
	Exercises []Exercise `json:"exercises,omitempty"`

	// CaloriesBurned is the estimated energy expenditure in kcal.
	CaloriesBurned float64 `json:"calories_burned,omitempty"`
}

// Exercise is one exercise entry inside a workout session.
type Exercise struct {
	// Name identifies the exercise.
	Name string `json:"name"`

	// Sets lists the performed sets.
	Sets []ExerciseSet `json:"sets,omitempty"`
}

// ExerciseSet is a single set of an exercise.
type ExerciseSet struct {
	// Reps is the repetition count.
	Reps int `json:"reps"`

	// WeightKg is the load used, zero for bodyweight work.
	WeightKg float64 `json:"weight_kg,omitempty"`

	// DurationSec is used for timed sets instead of repetitions.
	DurationSec int `json:"duration_sec,omitempty"`
}

// NutritionData is the typed payload for CategoryNutrition records.
// One record represents a single logged meal entry.
type NutritionData struct {
	// LoggedAt is the moment the meal was logged.
	LoggedAt int64 `json:"logged_at"`

	// Meal names the meal slot (breakfast, lunch, dinner, snack).
	Meal string `json:"meal"`

	// FoodName is the display name of the logged food.
	FoodName string `json:"food_name"`

	// Calories and the macro fields describe the nutritional content.
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein,omitempty"`
	Carbs    float64 `json:"carbs,omitempty"`
	Fat      float64 `json:"fat,omitempty"`

	// ServingSize is a human-readable portion description.
	ServingSize string `json:"serving_size,omitempty"`
}

// ProgressData is the typed payload for CategoryProgress records.
type ProgressData struct {
	// RecordedAt is the moment the progress entry was produced.
	RecordedAt int64 `json:"recorded_at"`

	// Kind classifies the entry (e.g. "streak", "achievement", "milestone").
	Kind string `json:"kind"`

	// Title is the display title of the entry.
	Title string `json:"title"`

	// Value is an optional numeric value (streak length, total volume).
	Value float64 `json:"value,omitempty"`

	// Details carries optional structured extras for the entry.
	Details map[string]any `json:"details,omitempty"`
}

// DecodePayload deserializes raw JSON into the typed payload struct
// matching the category. Returns an error for unknown categories or
// malformed payloads so that corrupt records never propagate typeless.
func DecodePayload(category DataCategory, raw []byte) (any, error) {
	var (
		payload any
		err     error
	)

	switch category {
	case CategoryProfile:
		v := ProfileData{}
		err = json.Unmarshal(raw, &v)
		payload = v
	case CategoryPreferences:
		v := PreferencesData{}
		err = json.Unmarshal(raw, &v)
		payload = v
	case CategoryMeasurements:
		v := MeasurementsData{}
		err = json.Unmarshal(raw, &v)
		payload = v
	case CategoryWorkouts:
		v := WorkoutData{}
		err = json.Unmarshal(raw, &v)
		payload = v
	case CategoryNutrition:
		v := NutritionData{}
		err = json.Unmarshal(raw, &v)
		payload = v
	case CategoryProgress:
		v := ProgressData{}
		err = json.Unmarshal(raw, &v)
		payload = v
	default:
		return nil, fmt.Errorf("unknown data category %q", category)
	}

	if err != nil {
		return nil, fmt.Errorf("decode %s payload: %w", category, err)
	}
	return payload, nil
}
