package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/platewise/backend/config"
	"github.com/platewise/backend/internal/models"
	"github.com/platewise/backend/internal/types"
)

// RecipeService handles library operations against the record store,
// including the near-duplicate check performed before insert.
type RecipeService struct {
	db     *gorm.DB
	dedup  config.DedupConfig
	logger *zap.Logger
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, dedup config.DedupConfig, logger *zap.Logger) *RecipeService {
	return &RecipeService{
		db:     db,
		dedup:  dedup,
		logger: logger,
	}
}

// SaveRecipe persists a generated recipe to the user's library after the
// duplicate check. The store assigns the persisted id; the ephemeral
// generation id is not reused.
func (s *RecipeService) SaveRecipe(ctx context.Context, recipe *types.Recipe, userID uuid.UUID) (*types.Recipe, error) {
	dup, err := s.IsDuplicate(ctx, recipe, userID)
	if err != nil {
		return nil, err
	}
	if dup {
		return nil, ErrDuplicateRecipe
	}

	record := models.ToRecord(recipe, userID)
	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}
	return record.ToRecipe(), nil
}

// ListRecipes returns the user's library, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID) ([]*types.Recipe, error) {
	var records []models.SavedRecipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toRecipes(records), nil
}

// GetRecipe retrieves a saved recipe by id.
func (s *RecipeService) GetRecipe(ctx context.Context, id uuid.UUID) (*types.Recipe, error) {
	var record models.SavedRecipe
	if err := s.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return record.ToRecipe(), nil
}

// SearchRecipes matches the user's library by title or description,
// newest first.
func (s *RecipeService) SearchRecipes(ctx context.Context, userID uuid.UUID, query string) ([]*types.Recipe, error) {
	like := "%" + strings.ToLower(query) + "%"
	var records []models.SavedRecipe
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", like, like).
		Order("created_at DESC").
		Find(&records).Error
	if err != nil {
		return nil, err
	}
	return toRecipes(records), nil
}

// UpdateRecipe applies a field-level patch to a recipe the user owns.
func (s *RecipeService) UpdateRecipe(ctx context.Context, id, userID uuid.UUID, patch *types.UpdateRecipeRequest) (*types.Recipe, error) {
	var record models.SavedRecipe
	err := s.db.WithContext(ctx).
		First(&record, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	updates := map[string]interface{}{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Description != nil {
		updates["description"] = *patch.Description
	}
	if patch.Ingredients != nil {
		updates["ingredients"] = models.IngredientList(*patch.Ingredients)
	}
	if patch.Instructions != nil {
		updates["instructions"] = models.StringList(*patch.Instructions)
	}
	if patch.PrepTime != nil {
		updates["prep_time"] = *patch.PrepTime
	}
	if patch.CookTime != nil {
		updates["cook_time"] = *patch.CookTime
	}
	if patch.Servings != nil {
		updates["servings"] = *patch.Servings
	}
	if patch.Difficulty != nil {
		updates["difficulty"] = *patch.Difficulty
	}
	if patch.Cuisine != nil {
		updates["cuisine"] = *patch.Cuisine
	}
	if patch.DietaryTags != nil {
		updates["dietary_tags"] = models.StringList(*patch.DietaryTags)
	}

	if len(updates) > 0 {
		if err := s.db.WithContext(ctx).Model(&record).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	return s.GetRecipe(ctx, id)
}

// DeleteRecipe removes a recipe the user owns.
func (s *RecipeService) DeleteRecipe(ctx context.Context, id, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.SavedRecipe{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsDuplicate reports whether the user's library already holds this recipe:
// first an exact title match, then an ingredient-set similarity scan over
// the most recent saves. The two queries are not transactional; two
// concurrent saves of the same recipe can both pass (known limitation).
func (s *RecipeService) IsDuplicate(ctx context.Context, recipe *types.Recipe, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.SavedRecipe{}).
		Where("user_id = ? AND title = ?", userID, recipe.Title).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return true, nil
	}

	var recent []models.SavedRecipe
	err = s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(s.dedup.RecentLimit).
		Find(&recent).Error
	if err != nil {
		return false, err
	}

	candidate := normalizedNameSet(recipe.Ingredients)
	for _, existing := range recent {
		similarity := ingredientSimilarity(candidate, normalizedNameSet(existing.Ingredients))
		if similarity >= s.dedup.SimilarityThreshold {
			s.logger.Debug("near-duplicate recipe detected",
				zap.String("existing_title", existing.Title),
				zap.Float64("similarity", similarity))
			return true, nil
		}
	}

	return false, nil
}

var punctuationRe = regexp.MustCompile(`[^\w\s]`)

// normalizedNameSet lower-cases, trims and strips punctuation from each
// ingredient name, deduplicating the result.
func normalizedNameSet(ingredients []types.RecipeIngredient) map[string]struct{} {
	set := make(map[string]struct{}, len(ingredients))
	for _, ing := range ingredients {
		name := punctuationRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(ing.Name)), "")
		if name != "" {
			set[name] = struct{}{}
		}
	}
	return set
}

// ingredientSimilarity is |intersection| / max(|a|, |b|); 0 when either set
// is empty.
func ingredientSimilarity(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}

	common := 0
	for name := range a {
		if _, ok := b[name]; ok {
			common++
		}
	}

	max := len(a)
	if len(b) > max {
		max = len(b)
	}
	return float64(common) / float64(max)
}

func toRecipes(records []models.SavedRecipe) []*types.Recipe {
	recipes := make([]*types.Recipe, len(records))
	for i := range records {
		recipes[i] = records[i].ToRecipe()
	}
	return recipes
}
