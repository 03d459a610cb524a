package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vladimiradmaev/recipe-planner/internal/interfaces"
)

// Handler serves the HTTP API on top of the service layer
type Handler struct {
	svc interfaces.Services
}

// NewRouter builds the gin engine with every route registered
func NewRouter(svc interfaces.Services, jwtSecret string) *gin.Engine {
	h := &Handler{svc: svc}

	route := gin.New()
	route.Use(gin.Recovery(), RequestID(), RequestLog())

	route.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := route.Group("/api", Auth([]byte(jwtSecret), svc.Users))
	{
		api.GET("/recipes", h.listRecipes)
		api.POST("/recipes", h.createRecipe)
		api.GET("/recipes/:id", h.getRecipe)
		api.GET("/recipes/:id/scaled", h.scaledRecipe)
		api.GET("/recipes/:id/cost", h.recipeCost)
		api.POST("/recipes/:id/cooked", h.logCooked)

		api.PUT("/recipes/:id/favorite", h.addFavorite)
		api.DELETE("/recipes/:id/favorite", h.removeFavorite)
		api.GET("/favorites", h.listFavorites)
		api.PUT("/recipes/:id/rating", h.rate)
		api.GET("/recipes/:id/rating", h.rating)
		api.POST("/recipes/:id/comments", h.addComment)
		api.GET("/recipes/:id/comments", h.listComments)

		api.GET("/preferences", h.getPreferences)
		api.PUT("/preferences", h.updatePreferences)
		api.GET("/recommendations", h.recommendations)
		api.GET("/prices/cheapest", h.cheapest)

		api.GET("/plans", h.listPlan)
		api.PUT("/plans", h.replacePlan)
		api.GET("/plans/week", h.listWeek)
		api.PUT("/plans/week", h.replaceWeek)

		api.GET("/billing", h.billing)
		api.POST("/billing/upgrade", h.upgrade)
	}

	return route
}
