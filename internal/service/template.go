package service

import (
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/backend/internal/types"
)

// minClampedCookTime is the floor applied when a template's cook time is
// reduced to fit the request's budget.
const minClampedCookTime = 15

// recipeTemplate is a hand-authored complete recipe used when model-backed
// generation is unavailable or fails.
type recipeTemplate struct {
	Title        string
	Description  string
	Keywords     []string
	Ingredients  []types.RecipeIngredient
	Instructions []string
	PrepTime     int
	CookTime     int
	Servings     int
	Difficulty   string
	Cuisine      string
	DietaryTags  []string
}

// recipeTemplates is the fallback catalog. Order matters: the first template
// with a keyword present in the request's ingredient list is selected, and
// the last entry is the generic default.
var recipeTemplates = []recipeTemplate{
	{
		Title:       "Quick Pasta Delight",
		Description: "A simple and delicious pasta dish using your available ingredients.",
		Keywords:    []string{"pasta", "noodle", "spaghetti"},
		Ingredients: []types.RecipeIngredient{
			{Name: "pasta", Amount: 1, Unit: "lb"},
			{Name: "olive oil", Amount: 2, Unit: "tbsp"},
			{Name: "garlic", Amount: 3, Unit: "cloves"},
			{Name: "salt", Amount: 1, Unit: "tsp"},
			{Name: "black pepper", Amount: 0.5, Unit: "tsp"},
		},
		Instructions: []string{
			"Bring a large pot of salted water to boil",
			"Cook pasta according to package instructions",
			"Heat olive oil in a large skillet over medium heat",
			"Add minced garlic and cook until fragrant",
			"Drain pasta and toss with garlic oil",
			"Season with salt and pepper to taste",
		},
		PrepTime:    5,
		CookTime:    15,
		Servings:    4,
		Difficulty:  types.DifficultyEasy,
		Cuisine:     "italian",
		DietaryTags: []string{"vegetarian"},
	},
	{
		Title:       "Quick Stir-Fry",
		Description: "A fast and healthy stir-fry using your ingredients.",
		Keywords:    []string{"rice", "tofu", "soy"},
		Ingredients: []types.RecipeIngredient{
			{Name: "vegetables", Amount: 3, Unit: "cups"},
			{Name: "soy sauce", Amount: 2, Unit: "tbsp"},
			{Name: "garlic", Amount: 2, Unit: "cloves"},
			{Name: "ginger", Amount: 1, Unit: "tbsp"},
			{Name: "oil", Amount: 1, Unit: "tbsp"},
		},
		Instructions: []string{
			"Heat oil in a wok or large skillet over high heat",
			"Add minced garlic and ginger, stir for 30 seconds",
			"Add vegetables and stir-fry for 3-5 minutes",
			"Add soy sauce and continue cooking for 1 minute",
			"Serve hot with rice or noodles",
		},
		PrepTime:    10,
		CookTime:    10,
		Servings:    2,
		Difficulty:  types.DifficultyEasy,
		Cuisine:     "asian",
		DietaryTags: []string{"vegetarian", "vegan"},
	},
	{
		Title:       "Hearty Vegetable Soup",
		Description: "A warming soup built around whatever is in your pantry.",
		Keywords:    []string{"potato", "lentil", "bean", "carrot"},
		Ingredients: []types.RecipeIngredient{
			{Name: "vegetable broth", Amount: 6, Unit: "cups"},
			{Name: "potatoes", Amount: 2, Unit: "medium"},
			{Name: "carrots", Amount: 2, Unit: "medium"},
			{Name: "onion", Amount: 1, Unit: "medium"},
			{Name: "olive oil", Amount: 1, Unit: "tbsp"},
		},
		Instructions: []string{
			"Heat olive oil in a large pot over medium heat",
			"Add chopped onion and cook until translucent",
			"Add diced potatoes and carrots, stir for 2 minutes",
			"Pour in broth and bring to a boil",
			"Simmer until vegetables are tender",
			"Season and serve hot",
		},
		PrepTime:    15,
		CookTime:    30,
		Servings:    4,
		Difficulty:  types.DifficultyEasy,
		Cuisine:     "international",
		DietaryTags: []string{"vegetarian", "vegan", "gluten-free"},
	},
	{
		Title:       "Fresh Garden Salad",
		Description: "A refreshing salad using your fresh ingredients.",
		Keywords:    nil, // generic default
		Ingredients: []types.RecipeIngredient{
			{Name: "mixed greens", Amount: 4, Unit: "cups"},
			{Name: "tomatoes", Amount: 2, Unit: "medium"},
			{Name: "cucumber", Amount: 1, Unit: "medium"},
			{Name: "olive oil", Amount: 2, Unit: "tbsp"},
			{Name: "lemon juice", Amount: 1, Unit: "tbsp"},
		},
		Instructions: []string{
			"Wash and prepare all vegetables",
			"Chop tomatoes and cucumber into bite-sized pieces",
			"Combine all ingredients in a large bowl",
			"Drizzle with olive oil and lemon juice",
			"Toss gently and serve immediately",
		},
		PrepTime:    15,
		CookTime:    0,
		Servings:    4,
		Difficulty:  types.DifficultyEasy,
		Cuisine:     "mediterranean",
		DietaryTags: []string{"vegetarian", "vegan", "gluten-free"},
	},
}

// GenerateFromTemplate builds a recipe deterministically from the template
// catalog. The template is chosen by keyword match against the request's
// ingredients, then customized: amounts scaled to the requested servings,
// template ingredient names swapped for matching request ingredients, and
// cook time clamped to the request's budget.
func GenerateFromTemplate(req *types.GenerationRequest) *types.Recipe {
	tpl := selectTemplate(req.Ingredients)

	scale := float64(req.Servings) / float64(tpl.Servings)
	ingredients := make([]types.RecipeIngredient, len(tpl.Ingredients))
	for i, ing := range tpl.Ingredients {
		ing.Name = substituteName(ing.Name, req.Ingredients)
		ing.Amount = roundToTenth(ing.Amount * scale)
		ingredients[i] = ing
	}

	cookTime := tpl.CookTime
	if cookTime > req.MaxCookTime {
		cookTime = req.MaxCookTime - 10
		if cookTime < minClampedCookTime {
			cookTime = minClampedCookTime
		}
	}

	cuisine := tpl.Cuisine
	if req.CuisinePreference != "" {
		cuisine = req.CuisinePreference
	}

	instructions := make([]string, len(tpl.Instructions))
	copy(instructions, tpl.Instructions)
	tags := make([]string, len(tpl.DietaryTags))
	copy(tags, tpl.DietaryTags)

	now := time.Now()
	return &types.Recipe{
		ID:           templateIDPrefix + uuid.New().String(),
		Title:        tpl.Title,
		Description:  tpl.Description,
		Ingredients:  ingredients,
		Instructions: instructions,
		PrepTime:     tpl.PrepTime,
		CookTime:     cookTime,
		Servings:     req.Servings,
		Difficulty:   tpl.Difficulty,
		Cuisine:      cuisine,
		DietaryTags:  tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func selectTemplate(requestIngredients []string) *recipeTemplate {
	for i := range recipeTemplates {
		tpl := &recipeTemplates[i]
		for _, kw := range tpl.Keywords {
			for _, ing := range requestIngredients {
				if strings.Contains(strings.ToLower(ing), kw) {
					return tpl
				}
			}
		}
	}
	return &recipeTemplates[len(recipeTemplates)-1]
}

// substituteName swaps a template ingredient for a request-supplied one when
// either name contains the other; otherwise the template default stays.
func substituteName(templateName string, requestIngredients []string) string {
	tplLower := strings.ToLower(templateName)
	for _, ing := range requestIngredients {
		ingLower := strings.ToLower(ing)
		if strings.Contains(ingLower, tplLower) || strings.Contains(tplLower, ingLower) {
			return ing
		}
	}
	return templateName
}

func roundToTenth(v float64) float64 {
	return math.Round(v*10) / 10
}
