package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type rateRequest struct {
	Score int `json:"score"`
}

type commentRequest struct {
	Body string `json:"body"`
}

type preferencesRequest struct {
	DietTags    []string `json:"dietTags"`
	BudgetCents *int64   `json:"budgetCents"`
}

func (h *Handler) addFavorite(c *gin.Context) {
	if err := h.svc.Social.AddFavorite(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	noContent(c)
}

func (h *Handler) removeFavorite(c *gin.Context) {
	if err := h.svc.Social.RemoveFavorite(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	noContent(c)
}

func (h *Handler) listFavorites(c *gin.Context) {
	recipes, err := h.svc.Social.ListFavorites(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

func (h *Handler) rate(c *gin.Context) {
	var req rateRequest
	if !bindJSON(c, &req) {
		return
	}

	rating, err := h.svc.Social.Rate(c.Request.Context(), userID(c), c.Param("id"), req.Score)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

func (h *Handler) rating(c *gin.Context) {
	rating, err := h.svc.Social.Rating(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, rating)
}

func (h *Handler) addComment(c *gin.Context) {
	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}

	comment, err := h.svc.Social.AddComment(c.Request.Context(), userID(c), c.Param("id"), req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

func (h *Handler) listComments(c *gin.Context) {
	limit, err := queryInt(c, "limit", 0)
	if err != nil {
		respondError(c, err)
		return
	}

	comments, err := h.svc.Social.ListComments(c.Request.Context(), c.Param("id"), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *Handler) getPreferences(c *gin.Context) {
	prefs, err := h.svc.Preferences.Get(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *Handler) updatePreferences(c *gin.Context) {
	var req preferencesRequest
	if !bindJSON(c, &req) {
		return
	}

	prefs, err := h.svc.Preferences.Update(c.Request.Context(), userID(c), req.DietTags, req.BudgetCents)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prefs)
}

func (h *Handler) billing(c *gin.Context) {
	user, err := h.svc.Users.Get(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) upgrade(c *gin.Context) {
	user, err := h.svc.Users.Upgrade(c.Request.Context(), userID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
