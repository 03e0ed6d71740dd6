package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/platewise/backend/internal/types"
)

// IngredientList is a custom type for storing an ordered ingredient list as
// JSONB.
type IngredientList []types.RecipeIngredient

// Value implements the driver.Valuer interface
func (l IngredientList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *IngredientList) Scan(value interface{}) error {
	if value == nil {
		*l = IngredientList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// StringList is a custom type for storing an ordered string list as JSONB.
type StringList []string

// Value implements the driver.Valuer interface
func (l StringList) Value() (driver.Value, error) {
	if len(l) == 0 {
		return "[]", nil
	}
	return json.Marshal(l)
}

// Scan implements the sql.Scanner interface
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, l)
}

// SavedRecipe is the storage record for a recipe persisted to a user's
// library. Persisted ids are assigned by the store on insert; the ephemeral
// id prefix of a generated recipe is not carried over.
type SavedRecipe struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title        string         `gorm:"size:255;not null" json:"title"`
	Description  string         `gorm:"type:text" json:"description"`
	Ingredients  IngredientList `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions StringList     `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	PrepTime     int            `gorm:"not null" json:"prep_time"`
	CookTime     int            `gorm:"not null" json:"cook_time"`
	Servings     int            `gorm:"not null" json:"servings"`
	Difficulty   string         `gorm:"size:20;not null" json:"difficulty"`
	Cuisine      string         `gorm:"size:100" json:"cuisine"`
	DietaryTags  StringList     `gorm:"type:jsonb;not null;default:'[]'" json:"dietary_tags"`
	ImageURL     string         `gorm:"size:512" json:"image_url"`
}

// BeforeCreate assigns an id when the dialect has no server-side default
// (sqlite in tests).
func (r *SavedRecipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ToRecord converts an application recipe into its storage shape for the
// given owner. The record never reuses the ephemeral generation id.
func ToRecord(recipe *types.Recipe, userID uuid.UUID) *SavedRecipe {
	return &SavedRecipe{
		UserID:       userID,
		Title:        recipe.Title,
		Description:  recipe.Description,
		Ingredients:  IngredientList(recipe.Ingredients),
		Instructions: StringList(recipe.Instructions),
		PrepTime:     recipe.PrepTime,
		CookTime:     recipe.CookTime,
		Servings:     recipe.Servings,
		Difficulty:   recipe.Difficulty,
		Cuisine:      recipe.Cuisine,
		DietaryTags:  StringList(recipe.DietaryTags),
		ImageURL:     recipe.ImageURL,
	}
}

// ToRecipe converts a storage record back into the application shape.
func (r *SavedRecipe) ToRecipe() *types.Recipe {
	return &types.Recipe{
		ID:           r.ID.String(),
		Title:        r.Title,
		Description:  r.Description,
		Ingredients:  []types.RecipeIngredient(r.Ingredients),
		Instructions: []string(r.Instructions),
		PrepTime:     r.PrepTime,
		CookTime:     r.CookTime,
		Servings:     r.Servings,
		Difficulty:   r.Difficulty,
		Cuisine:      r.Cuisine,
		DietaryTags:  []string(r.DietaryTags),
		ImageURL:     r.ImageURL,
		CreatedAt:    r.CreatedAt,
		UpdatedAt:    r.UpdatedAt,
		UserID:       r.UserID.String(),
	}
}
