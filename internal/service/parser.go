package service

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/platewise/backend/internal/types"
)

// Rand is the injected randomness source used for template choice, image
// fallback and synthesized ingredient values, so generation is reproducible
// in tests.
type Rand interface {
	Intn(n int) int
}

// parseSection tracks which list the classifier is currently appending to.
type parseSection int

const (
	sectionNone parseSection = iota
	sectionIngredients
	sectionInstructions
)

// Ephemeral id prefixes record which path produced a generated recipe.
const (
	modelIDPrefix    = "ai-"
	templateIDPrefix = "template-"
)

var (
	ingredientLineRe  = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s+(\w+)\s+(.+)$`)
	instructionLineRe = regexp.MustCompile(`^\d+\.\s*`)
	firstIntRe        = regexp.MustCompile(`(\d+)`)
	difficultyRe      = regexp.MustCompile(`(?i)(easy|medium|hard)`)
	bracketListRe     = regexp.MustCompile(`\[(.*?)\]`)
)

// Defaults substituted when a field cannot be extracted from model output.
const (
	defaultPrepTime = 15
	defaultCookTime = 30
)

// genericInstructions is substituted when no numbered steps were captured.
var genericInstructions = []string{
	"Prepare all ingredients",
	"Follow cooking instructions",
	"Season to taste",
	"Serve hot and enjoy!",
}

// synthesizedUnits are the units used for ingredients synthesized from the
// request when the model output contained no parseable ingredient lines.
var synthesizedUnits = []string{"cup", "tbsp", "tsp", "piece"}

// ParseModelResponse converts raw model text into a fully populated recipe.
// It never fails: every field falls back to a default, and empty ingredient
// or instruction lists are synthesized from the original request.
//
// The text is scanned line by line. Header lines set scalar fields from the
// remainder of the line; the "Ingredients:" and "Instructions:" headers
// switch the current section, inside which bullet and numbered lines are
// matched and non-matching lines dropped.
func ParseModelResponse(text string, req *types.GenerationRequest, rng Rand) *types.Recipe {
	title := "AI Generated Recipe"
	description := "A delicious recipe created just for you!"
	var ingredients []types.RecipeIngredient
	var instructions []string
	prepTime := defaultPrepTime
	cookTime := defaultCookTime
	difficulty := types.DifficultyMedium
	cuisine := "international"
	dietaryTags := []string{}

	section := sectionNone

	for _, raw := range strings.Split(text, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)

		switch {
		case strings.Contains(lower, "title:"):
			if v := afterColon(line); v != "" {
				title = v
			}
		case strings.Contains(lower, "description:"):
			if v := afterColon(line); v != "" {
				description = v
			}
		case strings.Contains(lower, "ingredients:"):
			section = sectionIngredients
		case strings.Contains(lower, "instructions:"):
			section = sectionInstructions
		case strings.Contains(lower, "prep time:"):
			prepTime = firstInt(line, defaultPrepTime)
		case strings.Contains(lower, "cook time:"):
			cookTime = firstInt(line, defaultCookTime)
		case strings.Contains(lower, "difficulty:"):
			if m := difficultyRe.FindString(line); m != "" {
				difficulty = strings.ToLower(m)
			}
		case strings.Contains(lower, "cuisine:"):
			if v := afterColon(line); v != "" {
				cuisine = v
			}
		case strings.Contains(lower, "dietary tags:"):
			if m := bracketListRe.FindStringSubmatch(line); m != nil {
				dietaryTags = splitTags(m[1])
			}
		case section == sectionIngredients && strings.HasPrefix(line, "-"):
			// Bullet lines look like "- 2 cups rice"; anything else is dropped.
			if ing, ok := parseIngredientLine(strings.TrimSpace(line[1:])); ok {
				ingredients = append(ingredients, ing)
			}
		case section == sectionInstructions && instructionLineRe.MatchString(line):
			if step := strings.TrimSpace(instructionLineRe.ReplaceAllString(line, "")); step != "" {
				instructions = append(instructions, step)
			}
		}
	}

	// Fallback-within-fallback: a recipe must never leave here with empty
	// lists, no matter how malformed the model output was.
	if len(ingredients) == 0 {
		ingredients = synthesizeIngredients(req.Ingredients, rng)
	}
	if len(instructions) == 0 {
		instructions = append(instructions, genericInstructions...)
	}

	now := time.Now()
	return &types.Recipe{
		ID:           modelIDPrefix + uuid.New().String(),
		Title:        title,
		Description:  description,
		Ingredients:  ingredients,
		Instructions: instructions,
		PrepTime:     prepTime,
		CookTime:     cookTime,
		Servings:     req.Servings,
		Difficulty:   difficulty,
		Cuisine:      cuisine,
		DietaryTags:  dietaryTags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func afterColon(line string) string {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func firstInt(line string, fallback int) int {
	m := firstIntRe.FindString(line)
	if m == "" {
		return fallback
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return fallback
	}
	return n
}

func splitTags(list string) []string {
	var tags []string
	for _, t := range strings.Split(list, ",") {
		if tag := strings.TrimSpace(t); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}

func parseIngredientLine(text string) (types.RecipeIngredient, bool) {
	m := ingredientLineRe.FindStringSubmatch(text)
	if m == nil {
		return types.RecipeIngredient{}, false
	}
	amount, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return types.RecipeIngredient{}, false
	}
	return types.RecipeIngredient{
		Name:   strings.TrimSpace(m[3]),
		Amount: amount,
		Unit:   m[2],
	}, true
}

func synthesizeIngredients(names []string, rng Rand) []types.RecipeIngredient {
	ingredients := make([]types.RecipeIngredient, 0, len(names))
	for _, name := range names {
		ingredients = append(ingredients, types.RecipeIngredient{
			Name:   name,
			Amount: float64(rng.Intn(3) + 1),
			Unit:   synthesizedUnits[rng.Intn(len(synthesizedUnits))],
		})
	}
	return ingredients
}
