package services

import (
	"math"

	"github.com/vladimiradmaev/recipe-planner/internal/domain"
)

// ScaleIngredients rescales quantities from originalServings to newServings,
// rounding to two decimals. Non-positive serving counts return items unchanged,
// and equal counts return an identical copy.
func ScaleIngredients(items []domain.IngredientItem, originalServings, newServings int) []domain.IngredientItem {
	if originalServings <= 0 || newServings <= 0 {
		return items
	}

	out := make([]domain.IngredientItem, len(items))
	copy(out, items)
	if originalServings == newServings {
		return out
	}

	factor := float64(newServings) / float64(originalServings)
	for i := range out {
		out[i].Quantity = roundTo2(out[i].Quantity * factor)
	}
	return out
}

func roundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
