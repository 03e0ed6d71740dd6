package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/platewise/backend/internal/middleware"
	"github.com/platewise/backend/internal/service"
	"github.com/platewise/backend/internal/types"
)

// RecipeHandler exposes recipe generation and library endpoints.
type RecipeHandler struct {
	generator     *service.RecipeGenerator
	recipeService *service.RecipeService
	draftService  *service.DraftService
	authService   *service.AuthService
	logger        *zap.Logger
}

// NewRecipeHandler creates a new RecipeHandler instance
func NewRecipeHandler(
	generator *service.RecipeGenerator,
	recipeService *service.RecipeService,
	draftService *service.DraftService,
	authService *service.AuthService,
	logger *zap.Logger,
) *RecipeHandler {
	return &RecipeHandler{
		generator:     generator,
		recipeService: recipeService,
		draftService:  draftService,
		authService:   authService,
		logger:        logger,
	}
}

// RegisterRoutes registers the recipe endpoints. All of them require a
// signed-in user.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes", middleware.AuthMiddleware(h.authService))
	{
		recipes.POST("/generate", h.GenerateRecipe)
		recipes.POST("", h.SaveRecipe)
		recipes.GET("", h.ListRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

// GenerateRecipe handles POST /recipes/generate. Generation always resolves
// to a recipe: model failures fall back to templates inside the generator.
func (h *RecipeHandler) GenerateRecipe(c *gin.Context) {
	var req types.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := req.Normalize(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := h.generator.Generate(c.Request.Context(), &req)

	// A failed draft write only costs the save-by-draft-id shortcut.
	if err := h.draftService.SaveDraft(c.Request.Context(), recipe); err != nil {
		h.logger.Warn("failed to cache recipe draft", zap.Error(err))
	}

	c.JSON(http.StatusOK, recipe)
}

// SaveRecipe handles POST /recipes, persisting a generated recipe by draft
// id or from the request body.
func (h *RecipeHandler) SaveRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.SaveRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe := req.Recipe
	if recipe == nil {
		if req.DraftID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "draft_id or recipe is required"})
			return
		}
		draft, err := h.draftService.GetDraft(c.Request.Context(), req.DraftID)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "draft not found or expired"})
			return
		}
		recipe = draft
	}

	saved, err := h.recipeService.SaveRecipe(c.Request.Context(), recipe, userID)
	if err != nil {
		if errors.Is(err, service.ErrDuplicateRecipe) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("failed to save recipe", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save recipe"})
		return
	}

	if req.DraftID != "" {
		if err := h.draftService.DeleteDraft(c.Request.Context(), req.DraftID); err != nil {
			h.logger.Warn("failed to delete saved draft", zap.Error(err))
		}
	}

	c.JSON(http.StatusCreated, saved)
}

// ListRecipes handles GET /recipes, with optional ?q= search.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var (
		recipes []*types.Recipe
		err     error
	)
	if query := c.Query("q"); query != "" {
		recipes, err = h.recipeService.SearchRecipes(c.Request.Context(), userID, query)
	} else {
		recipes, err = h.recipeService.ListRecipes(c.Request.Context(), userID)
	}
	if err != nil {
		h.logger.Error("failed to fetch recipes", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe handles GET /recipes/:id
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		h.logger.Error("failed to fetch recipe", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// UpdateRecipe handles PUT /recipes/:id
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	var patch types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), id, userID, &patch)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		h.logger.Error("failed to update recipe", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

// DeleteRecipe handles DELETE /recipes/:id
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid recipe id"})
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), id, userID); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		h.logger.Error("failed to delete recipe", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "recipe deleted", "id": id.String()})
}

// currentUserID pulls the authenticated user id set by the auth middleware.
// It writes a 401 response and returns false when absent.
func currentUserID(c *gin.Context) (uuid.UUID, bool) {
	val, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrNotAuthenticated.Error()})
		return uuid.Nil, false
	}
	userID, ok := val.(uuid.UUID)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": service.ErrNotAuthenticated.Error()})
		return uuid.Nil, false
	}
	return userID, true
}
