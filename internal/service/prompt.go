package service

import (
	"fmt"
	"strings"

	"github.com/platewise/backend/internal/types"
)

// BuildPrompt converts a generation request into the instruction sent to the
// text model. The section labels and their order are a contract: the
// response parser matches them case-insensitively, so changing a label here
// requires a matching change in parser.go.
func BuildPrompt(req *types.GenerationRequest) string {
	ingredients := strings.Join(req.Ingredients, ", ")

	constraints := "none"
	if len(req.DietaryConstraints) > 0 {
		constraints = strings.Join(req.DietaryConstraints, ", ")
	}

	cuisine := req.CuisinePreference
	if cuisine == "" {
		cuisine = "any"
	}

	return fmt.Sprintf(`You are a professional chef and recipe creator. Create a delicious, practical recipe using the following ingredients: %s.

Requirements:
- Dietary constraints: %s
- Cuisine preference: %s
- Servings: %d people
- Maximum cook time: %d minutes
- Use only the provided ingredients plus common pantry staples (salt, pepper, oil, etc.)

Please create a recipe in this exact format:

Title: [Creative recipe name]
Description: [Brief, appetizing description]
Ingredients:
- [amount] [unit] [ingredient name]
- [amount] [unit] [ingredient name]
- [continue for all ingredients]

Instructions:
1. [First step]
2. [Second step]
3. [Continue with numbered steps]

Prep time: [X] minutes
Cook time: [Y] minutes
Difficulty: [easy/medium/hard]
Cuisine: [cuisine type]
Dietary tags: [tag1, tag2, tag3]

Make sure the recipe is practical, delicious, and uses the provided ingredients creatively.`,
		ingredients, constraints, cuisine, req.Servings, req.MaxCookTime)
}
