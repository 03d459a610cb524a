package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	apperrors "github.com/vladimiradmaev/recipe-planner/internal/errors"
	"github.com/vladimiradmaev/recipe-planner/internal/services"
	"github.com/vladimiradmaev/recipe-planner/internal/utils"
)

type plannedMealRequest struct {
	Date     string `json:"date"`
	Slot     string `json:"slot"`
	RecipeID string `json:"recipeId"`
	Servings *int   `json:"servings"`
}

type replacePlanRequest struct {
	Meals []plannedMealRequest `json:"meals"`
}

type plannedMealResponse struct {
	ID       string          `json:"id"`
	Date     string          `json:"date"`
	Slot     domain.MealSlot `json:"slot"`
	RecipeID string          `json:"recipeId"`
	Servings *int            `json:"servings,omitempty"`
}

type planResponse struct {
	Start string                `json:"start"`
	End   string                `json:"end"`
	Meals []plannedMealResponse `json:"meals"`
}

func newPlanResponse(r domain.DateRange, meals []domain.PlannedMeal) planResponse {
	out := planResponse{
		Start: utils.FormatDate(r.Start),
		End:   utils.FormatDate(r.End),
		Meals: make([]plannedMealResponse, 0, len(meals)),
	}
	for _, m := range meals {
		out.Meals = append(out.Meals, plannedMealResponse{
			ID:       m.ID,
			Date:     utils.FormatDate(m.Date),
			Slot:     m.Slot,
			RecipeID: m.RecipeID,
			Servings: m.Servings,
		})
	}
	return out
}

func (req replacePlanRequest) toDomain() ([]domain.PlannedMeal, error) {
	meals := make([]domain.PlannedMeal, 0, len(req.Meals))
	for i, m := range req.Meals {
		d, err := utils.ParseDate(m.Date)
		if err != nil {
			return nil, apperrors.NewValidationError(fmt.Sprintf("entry %d date must be a YYYY-MM-DD date", i)).
				WithContext("date", m.Date)
		}
		meals = append(meals, domain.PlannedMeal{
			Date:     d,
			Slot:     domain.MealSlot(m.Slot),
			RecipeID: m.RecipeID,
			Servings: m.Servings,
		})
	}
	return meals, nil
}

func weekStartQuery(c *gin.Context) (time.Time, error) {
	raw := c.Query("start")
	start, err := utils.ParseDate(raw)
	if err != nil {
		return time.Time{}, apperrors.NewValidationError("start must be a YYYY-MM-DD date").WithContext("start", raw)
	}
	return start, nil
}

func (h *Handler) listPlan(c *gin.Context) {
	r, err := services.ParseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, err)
		return
	}

	meals, err := h.svc.Planner.ListRange(c.Request.Context(), userID(c), r)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPlanResponse(r, meals))
}

func (h *Handler) replacePlan(c *gin.Context) {
	r, err := services.ParseDateRange(c.Query("start"), c.Query("end"))
	if err != nil {
		respondError(c, err)
		return
	}
	var req replacePlanRequest
	if !bindJSON(c, &req) {
		return
	}
	entries, err := req.toDomain()
	if err != nil {
		respondError(c, err)
		return
	}

	meals, err := h.svc.Planner.ReplaceRange(c.Request.Context(), userID(c), r, entries)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPlanResponse(r, meals))
}

func (h *Handler) listWeek(c *gin.Context) {
	start, err := weekStartQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	meals, err := h.svc.Planner.ListWeek(c.Request.Context(), userID(c), start)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPlanResponse(domain.WeekRange(start), meals))
}

func (h *Handler) replaceWeek(c *gin.Context) {
	start, err := weekStartQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var req replacePlanRequest
	if !bindJSON(c, &req) {
		return
	}
	entries, err := req.toDomain()
	if err != nil {
		respondError(c, err)
		return
	}

	meals, err := h.svc.Planner.ReplaceWeek(c.Request.Context(), userID(c), start, entries)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, newPlanResponse(domain.WeekRange(start), meals))
}
