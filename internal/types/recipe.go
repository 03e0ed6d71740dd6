package types

import (
	"errors"
	"strings"
	"time"
)

// Difficulty levels a recipe can carry.
const (
	DifficultyEasy   = "easy"
	DifficultyMedium = "medium"
	DifficultyHard   = "hard"
)

// RecipeIngredient is a single entry in a recipe's ingredient list. Amounts
// may be fractional; position in the owning slice is display order.
type RecipeIngredient struct {
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
	Notes  string  `json:"notes,omitempty"`
}

// Recipe represents a recipe in the system. Generated recipes are ephemeral
// (no UserID) until saved to a user's library.
type Recipe struct {
	ID           string             `json:"id"`
	Title        string             `json:"title"`
	Description  string             `json:"description,omitempty"`
	Ingredients  []RecipeIngredient `json:"ingredients"`
	Instructions []string           `json:"instructions"`
	PrepTime     int                `json:"prep_time"`
	CookTime     int                `json:"cook_time"`
	Servings     int                `json:"servings"`
	Difficulty   string             `json:"difficulty"`
	Cuisine      string             `json:"cuisine,omitempty"`
	DietaryTags  []string           `json:"dietary_tags"`
	ImageURL     string             `json:"image_url,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	UserID       string             `json:"user_id,omitempty"`
}

// ErrNoIngredients is returned when a generation request carries no usable
// ingredient entries.
var ErrNoIngredients = errors.New("at least one ingredient is required")

// GenerationRequest describes what the user has on hand and the constraints
// the generated recipe should respect.
type GenerationRequest struct {
	Ingredients        []string `json:"ingredients" binding:"required"`
	DietaryConstraints []string `json:"dietary_constraints"`
	CuisinePreference  string   `json:"cuisine_preference"`
	Servings           int      `json:"servings"`
	MaxCookTime        int      `json:"max_cook_time"`
}

// Defaults applied when the caller leaves Servings or MaxCookTime unset.
const (
	DefaultServings    = 4
	DefaultMaxCookTime = 60
)

// Normalize trims and drops blank ingredient entries and fills defaulted
// fields. It returns ErrNoIngredients if nothing usable remains; the
// generator must never be invoked with an invalid request.
func (r *GenerationRequest) Normalize() error {
	cleaned := make([]string, 0, len(r.Ingredients))
	for _, ing := range r.Ingredients {
		if s := strings.TrimSpace(ing); s != "" {
			cleaned = append(cleaned, s)
		}
	}
	if len(cleaned) == 0 {
		return ErrNoIngredients
	}
	r.Ingredients = cleaned

	if r.Servings <= 0 {
		r.Servings = DefaultServings
	}
	if r.MaxCookTime <= 0 {
		r.MaxCookTime = DefaultMaxCookTime
	}
	return nil
}
