package services

import (
	"context"
	"math"
	"strings"

	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	apperrors "github.com/vladimiradmaev/recipe-planner/internal/errors"
	"github.com/vladimiradmaev/recipe-planner/internal/logger"
)

// PriceQuote is the cheapest product found for an ingredient
type PriceQuote struct {
	Product          domain.Product `json:"product"`
	PricePerBaseUnit float64        `json:"pricePerBaseUnit"`
	BaseUnit         string         `json:"baseUnit"`
}

// CostLine is the priced share of one ingredient
type CostLine struct {
	Ingredient string         `json:"ingredient"`
	Cents      float64        `json:"cents"`
	Product    domain.Product `json:"product"`
}

// CostEstimate prices a recipe from the cheapest known products
type CostEstimate struct {
	RecipeID   string     `json:"recipeId"`
	TotalCents int64      `json:"totalCents"`
	Lines      []CostLine `json:"lines"`
	Unpriced   []string   `json:"unpriced"`
}

// BaseUnit names the unit prices are normalised to for a dimension
func BaseUnit(d Dimension) string {
	switch d {
	case DimensionMass:
		return "g"
	case DimensionVolume:
		return "ml"
	default:
		return "pcs"
	}
}

type PriceService struct {
	products domain.ProductRepository
}

func NewPriceService(products domain.ProductRepository) *PriceService {
	return &PriceService{products: products}
}

// Cheapest finds the product with the lowest normalised price for ingredient.
// No match is reported as found=false with a nil error.
func (s *PriceService) Cheapest(ctx context.Context, ingredient, unit string) (PriceQuote, bool, error) {
	ingredient = strings.TrimSpace(ingredient)
	if ingredient == "" {
		return PriceQuote{}, false, apperrors.NewValidationError("ingredient is required")
	}
	info, ok := LookupUnit(unit)
	if !ok {
		return PriceQuote{}, false, apperrors.NewValidationError("unknown unit").WithContext("unit", unit)
	}

	products, err := s.products.SearchProducts(ctx, ingredient)
	if err != nil {
		return PriceQuote{}, false, storeError(err, "product search").WithContext("ingredient", ingredient)
	}

	best, perBase, found := CheapestProduct(products, unit)
	if !found {
		return PriceQuote{}, false, nil
	}
	return PriceQuote{Product: best, PricePerBaseUnit: perBase, BaseUnit: BaseUnit(info.Dimension)}, true, nil
}

// EstimateRecipeCost sums the cheapest price of every ingredient, rounded to whole cents.
// Ingredients with an unknown unit or no matching product are listed in Unpriced.
func (s *PriceService) EstimateRecipeCost(ctx context.Context, recipe domain.Recipe) (CostEstimate, error) {
	est := CostEstimate{RecipeID: recipe.ID, Lines: []CostLine{}, Unpriced: []string{}}
	searched := make(map[string][]domain.Product)

	var total float64
	for _, item := range recipe.Ingredients {
		base, ok := ToBaseQuantity(item.Quantity, item.Unit)
		if !ok {
			est.Unpriced = append(est.Unpriced, item.Name)
			continue
		}

		key := strings.ToLower(strings.TrimSpace(item.Name))
		products, cached := searched[key]
		if !cached {
			var err error
			products, err = s.products.SearchProducts(ctx, key)
			if err != nil {
				return CostEstimate{}, storeError(err, "product search").WithContext("ingredient", item.Name)
			}
			searched[key] = products
		}

		best, perBase, found := CheapestProduct(products, item.Unit)
		if !found {
			est.Unpriced = append(est.Unpriced, item.Name)
			continue
		}
		cents := perBase * base
		total += cents
		est.Lines = append(est.Lines, CostLine{Ingredient: item.Name, Cents: roundTo2(cents), Product: best})
	}

	est.TotalCents = int64(math.Round(total))
	return est, nil
}

// ImportStoreProducts replaces the whole catalogue of store with products
func (s *PriceService) ImportStoreProducts(ctx context.Context, store string, products []domain.Product) (int, error) {
	store = strings.TrimSpace(store)
	if store == "" {
		return 0, apperrors.NewValidationError("store is required")
	}

	// Names are unique per store; a later row for the same name wins
	valid := make([]domain.Product, 0, len(products))
	index := make(map[string]int, len(products))
	for _, p := range products {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" || p.PriceCents < 0 {
			continue
		}
		if i, dup := index[p.Name]; dup {
			valid[i] = p
			continue
		}
		index[p.Name] = len(valid)
		valid = append(valid, p)
	}

	if err := s.products.ReplaceStoreProducts(ctx, store, valid); err != nil {
		return 0, storeError(err, "catalogue import").WithContext("store", store)
	}
	logger.FromContext(ctx).Info("Store catalogue replaced", "store", store, "products", len(valid), "skipped", len(products)-len(valid))
	return len(valid), nil
}
