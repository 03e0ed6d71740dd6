package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platewise/backend/internal/types"
)

func normalized(req *types.GenerationRequest) *types.GenerationRequest {
	if err := req.Normalize(); err != nil {
		panic(err)
	}
	return req
}

func TestSelectTemplate(t *testing.T) {
	tests := []struct {
		name        string
		ingredients []string
		wantTitle   string
	}{
		{"pasta keyword", []string{"tomato", "pasta"}, "Quick Pasta Delight"},
		{"keyword inside a longer name", []string{"penne pasta"}, "Quick Pasta Delight"},
		{"rice keyword", []string{"rice", "broccoli"}, "Quick Stir-Fry"},
		{"soup keyword", []string{"potato", "celery"}, "Hearty Vegetable Soup"},
		{"no keyword falls back to salad", []string{"halloumi", "figs"}, "Fresh Garden Salad"},
		{"earlier template wins over later", []string{"potato", "noodle"}, "Quick Pasta Delight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tpl := selectTemplate(tt.ingredients)
			assert.Equal(t, tt.wantTitle, tpl.Title)
		})
	}
}

func TestGenerateFromTemplate_Scaling(t *testing.T) {
	req := normalized(&types.GenerationRequest{
		Ingredients: []string{"pasta"},
		Servings:    8,
	})

	recipe := GenerateFromTemplate(req)

	require.Equal(t, "Quick Pasta Delight", recipe.Title)
	assert.Equal(t, 8, recipe.Servings)

	// Base template serves 4, so every amount doubles.
	require.Len(t, recipe.Ingredients, 5)
	assert.InDelta(t, 2.0, recipe.Ingredients[0].Amount, 1e-9)  // pasta 1 lb
	assert.InDelta(t, 4.0, recipe.Ingredients[1].Amount, 1e-9)  // olive oil 2 tbsp
	assert.InDelta(t, 6.0, recipe.Ingredients[2].Amount, 1e-9)  // garlic 3 cloves
	assert.InDelta(t, 1.0, recipe.Ingredients[4].Amount, 1e-9)  // black pepper 0.5 tsp

	// Instructions and step count are untouched by scaling.
	assert.Equal(t, recipeTemplates[0].Instructions, recipe.Instructions)
}

func TestGenerateFromTemplate_ScalingRoundsToTenth(t *testing.T) {
	// Stir-fry serves 2; scaling to 3 gives 1.5x, so ginger 1 tbsp -> 1.5
	// and vegetables 3 cups -> 4.5.
	req := normalized(&types.GenerationRequest{
		Ingredients: []string{"rice"},
		Servings:    3,
	})

	recipe := GenerateFromTemplate(req)

	require.Equal(t, "Quick Stir-Fry", recipe.Title)
	assert.InDelta(t, 4.5, recipe.Ingredients[0].Amount, 1e-9)
	assert.InDelta(t, 1.5, recipe.Ingredients[3].Amount, 1e-9)
}

func TestGenerateFromTemplate_CookTimeClamp(t *testing.T) {
	tests := []struct {
		name        string
		maxCookTime int
		want        int
	}{
		{"within budget stays as authored", 60, 30},
		{"over budget drops ten below the cap", 28, 18},
		{"clamp never goes below the floor", 20, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := normalized(&types.GenerationRequest{
				Ingredients: []string{"potato"},
				MaxCookTime: tt.maxCookTime,
			})

			recipe := GenerateFromTemplate(req)

			require.Equal(t, "Hearty Vegetable Soup", recipe.Title)
			assert.Equal(t, tt.want, recipe.CookTime)
		})
	}
}

func TestGenerateFromTemplate_Substitution(t *testing.T) {
	req := normalized(&types.GenerationRequest{
		Ingredients: []string{"penne pasta", "smoked garlic"},
	})

	recipe := GenerateFromTemplate(req)

	names := make([]string, len(recipe.Ingredients))
	for i, ing := range recipe.Ingredients {
		names[i] = ing.Name
	}
	assert.Contains(t, names, "penne pasta")
	assert.Contains(t, names, "smoked garlic")
	assert.Contains(t, names, "olive oil") // no match keeps the template name
}

func TestGenerateFromTemplate_CuisineOverride(t *testing.T) {
	req := normalized(&types.GenerationRequest{
		Ingredients:       []string{"pasta"},
		CuisinePreference: "mexican",
	})

	recipe := GenerateFromTemplate(req)
	assert.Equal(t, "mexican", recipe.Cuisine)

	req = normalized(&types.GenerationRequest{Ingredients: []string{"pasta"}})
	recipe = GenerateFromTemplate(req)
	assert.Equal(t, "italian", recipe.Cuisine)
}

func TestGenerateFromTemplate_Metadata(t *testing.T) {
	req := normalized(&types.GenerationRequest{Ingredients: []string{"kale"}})

	recipe := GenerateFromTemplate(req)

	assert.True(t, strings.HasPrefix(recipe.ID, "template-"))
	assert.NotEmpty(t, recipe.Description)
	assert.NotEmpty(t, recipe.Instructions)
	assert.Equal(t, types.DifficultyEasy, recipe.Difficulty)
	assert.False(t, recipe.CreatedAt.IsZero())

	// Two calls never share an ephemeral id.
	other := GenerateFromTemplate(req)
	assert.NotEqual(t, recipe.ID, other.ID)
}

func TestGenerateFromTemplate_DoesNotMutateCatalog(t *testing.T) {
	req := normalized(&types.GenerationRequest{
		Ingredients: []string{"penne pasta"},
		Servings:    8,
	})

	_ = GenerateFromTemplate(req)

	assert.Equal(t, "pasta", recipeTemplates[0].Ingredients[0].Name)
	assert.InDelta(t, 1.0, recipeTemplates[0].Ingredients[0].Amount, 1e-9)
}
