package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/platewise/backend/internal/types"
)

// draftTTL bounds how long an unsaved generated recipe stays retrievable.
const draftTTL = 24 * time.Hour

// DraftService caches generated recipes in Redis so a later save-to-library
// call can persist one by id without regenerating it.
type DraftService struct {
	redis *redis.Client
}

// NewDraftService creates a new DraftService instance
func NewDraftService(client *redis.Client) *DraftService {
	return &DraftService{redis: client}
}

func draftKey(id string) string {
	return fmt.Sprintf("recipe:draft:%s", id)
}

// SaveDraft stores a generated recipe under its ephemeral id.
func (s *DraftService) SaveDraft(ctx context.Context, recipe *types.Recipe) error {
	data, err := json.Marshal(recipe)
	if err != nil {
		return fmt.Errorf("failed to marshal draft: %w", err)
	}

	if err := s.redis.Set(ctx, draftKey(recipe.ID), data, draftTTL).Err(); err != nil {
		return fmt.Errorf("failed to save draft to Redis: %w", err)
	}

	return nil
}

// GetDraft retrieves a cached generated recipe by its ephemeral id.
func (s *DraftService) GetDraft(ctx context.Context, id string) (*types.Recipe, error) {
	data, err := s.redis.Get(ctx, draftKey(id)).Bytes()
	if err != nil {
		return nil, fmt.Errorf("failed to get draft from Redis: %w", err)
	}

	var recipe types.Recipe
	if err := json.Unmarshal(data, &recipe); err != nil {
		return nil, fmt.Errorf("failed to unmarshal draft: %w", err)
	}

	return &recipe, nil
}

// DeleteDraft removes a cached draft, typically after it has been saved.
func (s *DraftService) DeleteDraft(ctx context.Context, id string) error {
	if err := s.redis.Del(ctx, draftKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete draft from Redis: %w", err)
	}
	return nil
}
