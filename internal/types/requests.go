package types

// RegisterRequest is the request body for account registration.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Username string `json:"username"`
}

// LoginRequest is the request body for email/password sign-in.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// AuthResponse carries a session token back to the client.
type AuthResponse struct {
	Token string `json:"token"`
}

// SaveRecipeRequest saves a previously generated recipe to the caller's
// library, either by draft id or by inlining the full recipe.
type SaveRecipeRequest struct {
	DraftID string  `json:"draft_id"`
	Recipe  *Recipe `json:"recipe"`
}

// UpdateRecipeRequest is a field-level patch: only non-nil fields are
// applied to the stored recipe.
type UpdateRecipeRequest struct {
	Title        *string             `json:"title"`
	Description  *string             `json:"description"`
	Ingredients  *[]RecipeIngredient `json:"ingredients"`
	Instructions *[]string           `json:"instructions"`
	PrepTime     *int                `json:"prep_time"`
	CookTime     *int                `json:"cook_time"`
	Servings     *int                `json:"servings"`
	Difficulty   *string             `json:"difficulty"`
	Cuisine      *string             `json:"cuisine"`
	DietaryTags  *[]string           `json:"dietary_tags"`
}
