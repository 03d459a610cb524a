package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	apperrors "github.com/vladimiradmaev/recipe-planner/internal/errors"
	"github.com/vladimiradmaev/recipe-planner/internal/services"
)

type createRecipeRequest struct {
	Title            string                  `json:"title"`
	Description      string                  `json:"description"`
	Steps            []string                `json:"steps"`
	Images           []string                `json:"images"`
	Ingredients      []domain.IngredientItem `json:"ingredients"`
	Servings         int                     `json:"servings"`
	TotalTimeMinutes *int                    `json:"totalTimeMinutes"`
	Nutrition        *domain.Nutrition       `json:"nutrition"`
	DietTags         []string                `json:"dietTags"`
}

func (r createRecipeRequest) toDomain() domain.Recipe {
	return domain.Recipe{
		Title:            r.Title,
		Description:      r.Description,
		Steps:            r.Steps,
		Images:           r.Images,
		Ingredients:      r.Ingredients,
		Servings:         r.Servings,
		TotalTimeMinutes: r.TotalTimeMinutes,
		Nutrition:        r.Nutrition,
		DietTags:         r.DietTags,
	}
}

func (h *Handler) listRecipes(c *gin.Context) {
	offset, err := queryInt(c, "offset", 0)
	if err != nil {
		respondError(c, err)
		return
	}
	limit, err := queryInt(c, "limit", services.DefaultPageSize)
	if err != nil {
		respondError(c, err)
		return
	}

	recipes, err := h.svc.Recipes.ListApproved(c.Request.Context(), offset, limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *Handler) createRecipe(c *gin.Context) {
	var req createRecipeRequest
	if !bindJSON(c, &req) {
		return
	}

	recipe, err := h.svc.Recipes.Create(c.Request.Context(), userID(c), req.toDomain())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *Handler) getRecipe(c *gin.Context) {
	recipe, err := h.svc.Recipes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *Handler) scaledRecipe(c *gin.Context) {
	if c.Query("servings") == "" {
		respondError(c, apperrors.NewValidationError("servings is required"))
		return
	}
	servings, err := queryInt(c, "servings", 0)
	if err != nil {
		respondError(c, err)
		return
	}

	recipe, err := h.svc.Recipes.Scaled(c.Request.Context(), c.Param("id"), servings)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *Handler) recipeCost(c *gin.Context) {
	ctx := c.Request.Context()
	recipe, err := h.svc.Recipes.Get(ctx, c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	estimate, err := h.svc.Prices.EstimateRecipeCost(ctx, recipe)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, estimate)
}

func (h *Handler) logCooked(c *gin.Context) {
	entry, err := h.svc.Recipes.LogCooked(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, entry)
}

func (h *Handler) recommendations(c *gin.Context) {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		respondError(c, err)
		return
	}

	recipes, err := h.svc.Recommendations.Recommend(c.Request.Context(), userID(c), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *Handler) cheapest(c *gin.Context) {
	ingredient := c.Query("ingredient")
	unit := c.Query("unit")

	quote, found, err := h.svc.Prices.Cheapest(c.Request.Context(), ingredient, unit)
	if err != nil {
		respondError(c, err)
		return
	}
	if !found {
		respondError(c, apperrors.NewNotFoundError("product").WithContext("ingredient", ingredient).WithContext("unit", unit))
		return
	}
	c.JSON(http.StatusOK, quote)
}
