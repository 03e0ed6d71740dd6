package service

import (
	"context"
	"math/rand"
	"sync"

	"go.uber.org/zap"

	"github.com/platewise/backend/internal/types"
)

// TextGenerator is the boundary to the external text-generation model.
type TextGenerator interface {
	// Configured reports whether a model credential is present.
	Configured() bool
	// GenerateText returns the raw model output for a prompt, or an error
	// for any transport failure, non-success status or empty output.
	GenerateText(ctx context.Context, prompt string) (string, error)
}

// lockedRand makes a rand.Rand safe for concurrent generation calls.
type lockedRand struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.r.Intn(n)
}

// NewLockedRand wraps a rand.Rand for concurrent use.
func NewLockedRand(r *rand.Rand) Rand {
	return &lockedRand{r: r}
}

// RecipeGenerator turns a generation request into a fully populated recipe.
// It attempts model-backed generation and falls back to the template catalog
// on any failure; the caller always gets a recipe.
type RecipeGenerator struct {
	model  TextGenerator
	rng    Rand
	logger *zap.Logger
}

// NewRecipeGenerator creates a new RecipeGenerator instance. A nil model is
// treated as unconfigured.
func NewRecipeGenerator(model TextGenerator, rng Rand, logger *zap.Logger) *RecipeGenerator {
	return &RecipeGenerator{
		model:  model,
		rng:    rng,
		logger: logger,
	}
}

// Generate produces a recipe for a normalized request. The model path is
// tried at most once; missing credentials, call failures and empty output
// all fall through to template generation. An image is always attached.
func (g *RecipeGenerator) Generate(ctx context.Context, req *types.GenerationRequest) *types.Recipe {
	recipe := g.tryModel(ctx, req)
	if recipe == nil {
		recipe = GenerateFromTemplate(req)
	}

	recipe.ImageURL = SelectImage(recipe.Title, g.rng)
	return recipe
}

// tryModel runs the model-backed path, returning nil when the fallback
// should be used instead.
func (g *RecipeGenerator) tryModel(ctx context.Context, req *types.GenerationRequest) *types.Recipe {
	if g.model == nil || !g.model.Configured() {
		g.logger.Info("no model credential configured, using template fallback")
		return nil
	}

	prompt := BuildPrompt(req)
	text, err := g.model.GenerateText(ctx, prompt)
	if err != nil {
		g.logger.Warn("model generation failed, using template fallback", zap.Error(err))
		return nil
	}

	return ParseModelResponse(text, req, g.rng)
}
