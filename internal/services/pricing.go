package services

import (
	"math"
	"strings"

	"github.com/vladimiradmaev/recipe-planner/internal/domain"
)

// Dimension groups units that can be converted into one another
type Dimension string

const (
	DimensionMass   Dimension = "mass"
	DimensionVolume Dimension = "volume"
	DimensionCount  Dimension = "count"
)

// UnitInfo describes how a unit maps onto its base unit (g, ml or pcs)
type UnitInfo struct {
	Dimension Dimension
	Factor    float64
}

// unitTable is the full set of recognised units. Mass and volume never convert into each other.
var unitTable = map[string]UnitInfo{
	"g":     {DimensionMass, 1},
	"kg":    {DimensionMass, 1000},
	"mg":    {DimensionMass, 0.001},
	"ml":    {DimensionVolume, 1},
	"cl":    {DimensionVolume, 10},
	"dl":    {DimensionVolume, 100},
	"l":     {DimensionVolume, 1000},
	"pcs":   {DimensionCount, 1},
	"pc":    {DimensionCount, 1},
	"piece": {DimensionCount, 1},
}

// LookupUnit returns the conversion info for unit, ignoring case and surrounding space
func LookupUnit(unit string) (UnitInfo, bool) {
	info, ok := unitTable[strings.ToLower(strings.TrimSpace(unit))]
	return info, ok
}

// Compatible reports whether quantities in a and b can be compared
func Compatible(a, b string) bool {
	ia, okA := LookupUnit(a)
	ib, okB := LookupUnit(b)
	return okA && okB && ia.Dimension == ib.Dimension
}

// ToBaseQuantity converts value in unit into base units
func ToBaseQuantity(value float64, unit string) (float64, bool) {
	info, ok := LookupUnit(unit)
	if !ok {
		return 0, false
	}
	return value * info.Factor, true
}

// PricePerBaseUnit is the product price in cents per gram, millilitre or piece.
// Products with a missing, zero, negative or non-finite size are rejected.
func PricePerBaseUnit(p domain.Product) (float64, bool) {
	if p.SizeValue <= 0 || math.IsNaN(p.SizeValue) || math.IsInf(p.SizeValue, 0) {
		return 0, false
	}
	size, ok := ToBaseQuantity(p.SizeValue, p.SizeUnit)
	if !ok || size <= 0 {
		return 0, false
	}
	return float64(p.PriceCents) / size, true
}

// CheapestProduct picks the product with the lowest per-base-unit price among those
// compatible with targetUnit. Ties fall back to lower absolute price, then store,
// name and id so the result depends only on the input set.
func CheapestProduct(products []domain.Product, targetUnit string) (domain.Product, float64, bool) {
	target, ok := LookupUnit(targetUnit)
	if !ok {
		return domain.Product{}, 0, false
	}

	var (
		best      domain.Product
		bestPrice float64
		found     bool
	)
	for _, p := range products {
		info, ok := LookupUnit(p.SizeUnit)
		if !ok || info.Dimension != target.Dimension {
			continue
		}
		perBase, ok := PricePerBaseUnit(p)
		if !ok {
			continue
		}
		if !found || cheaper(p, perBase, best, bestPrice) {
			best, bestPrice, found = p, perBase, true
		}
	}
	return best, bestPrice, found
}

func cheaper(p domain.Product, perBase float64, best domain.Product, bestPerBase float64) bool {
	if perBase != bestPerBase {
		return perBase < bestPerBase
	}
	if p.PriceCents != best.PriceCents {
		return p.PriceCents < best.PriceCents
	}
	if p.Store != best.Store {
		return p.Store < best.Store
	}
	if p.Name != best.Name {
		return p.Name < best.Name
	}
	return p.ID < best.ID
}
