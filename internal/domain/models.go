package domain

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/vladimiradmaev/recipe-planner/internal/utils"
)

// ErrUnknownRecipe is returned by stores when a write references a recipe id that does not exist
var ErrUnknownRecipe = errors.New("unknown recipe")

// ErrInvalidDateRange is returned when a range starts after it ends
var ErrInvalidDateRange = errors.New("start date is after end date")

// Plan is the billing tier of a user
type Plan string

const (
	PlanFree    Plan = "free"
	PlanPremium Plan = "premium"
)

// User is an account known to the platform. The id is the JWT subject or tg-<telegram id>.
type User struct {
	ID        string    `json:"id"`
	Plan      Plan      `json:"plan"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) IsPremium() bool {
	return u.Plan == PlanPremium
}

// IngredientItem is one line of a recipe's ingredient list
type IngredientItem struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

// Nutrition facts per serving
type Nutrition struct {
	Calories     float64 `json:"calories"`
	ProteinGrams float64 `json:"proteinGrams"`
	FatGrams     float64 `json:"fatGrams"`
	CarbsGrams   float64 `json:"carbsGrams"`
}

// Recipe represents a recipe in the catalogue
type Recipe struct {
	ID                string           `json:"id"`
	Title             string           `json:"title"`
	Description       string           `json:"description"`
	Steps             []string         `json:"steps"`
	Images            []string         `json:"images"`
	Ingredients       []IngredientItem `json:"ingredients"`
	Servings          int              `json:"servings"`
	TotalTimeMinutes  *int             `json:"totalTimeMinutes,omitempty"`
	Nutrition         *Nutrition       `json:"nutrition,omitempty"`
	CostEstimateCents *int64           `json:"costEstimateCents,omitempty"`
	DietTags          []string         `json:"dietTags"`
	Approved          bool             `json:"approved"`
	AuthorID          *string          `json:"authorId,omitempty"`
	CreatedAt         time.Time        `json:"createdAt"`
	UpdatedAt         time.Time        `json:"updatedAt"`
}

// Product is a grocery item offered by a store
type Product struct {
	ID         string    `json:"id"`
	Store      string    `json:"store"`
	Name       string    `json:"name"`
	Unit       string    `json:"unit"`
	SizeValue  float64   `json:"sizeValue"`
	SizeUnit   string    `json:"sizeUnit"`
	PriceCents int64     `json:"priceCents"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// UserPreferences holds a user's diet tags and optional budget
type UserPreferences struct {
	UserID      string    `json:"userId"`
	DietTags    []string  `json:"dietTags"`
	BudgetCents *int64    `json:"budgetCents,omitempty"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// CookHistoryEntry records that a user cooked a recipe
type CookHistoryEntry struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	RecipeID string    `json:"recipeId"`
	CookedAt time.Time `json:"cookedAt"`
}

// MealSlot is the part of the day a planned meal belongs to
type MealSlot string

const (
	SlotBreakfast MealSlot = "breakfast"
	SlotLunch     MealSlot = "lunch"
	SlotDinner    MealSlot = "dinner"
	SlotSnack     MealSlot = "snack"
	SlotCustom    MealSlot = "custom"
)

func (s MealSlot) Valid() bool {
	switch s {
	case SlotBreakfast, SlotLunch, SlotDinner, SlotSnack, SlotCustom:
		return true
	}
	return false
}

// PlannedMeal assigns a recipe to a user's calendar date and slot
type PlannedMeal struct {
	ID       string    `json:"id"`
	UserID   string    `json:"userId"`
	Date     time.Time `json:"date"`
	Slot     MealSlot  `json:"slot"`
	RecipeID string    `json:"recipeId"`
	Servings *int      `json:"servings,omitempty"`
}

// DateRange is an inclusive range of UTC calendar dates
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange truncates both ends to calendar dates and rejects start > end
func NewDateRange(start, end time.Time) (DateRange, error) {
	r := DateRange{Start: utils.CalendarDate(start), End: utils.CalendarDate(end)}
	if r.Start.After(r.End) {
		return DateRange{}, ErrInvalidDateRange
	}
	return r, nil
}

// WeekRange is the 7-day range beginning at start
func WeekRange(start time.Time) DateRange {
	return DateRange{Start: utils.CalendarDate(start), End: utils.WeekEndInclusive(start)}
}

// Contains reports whether the calendar date of t falls inside the range
func (r DateRange) Contains(t time.Time) bool {
	d := utils.CalendarDate(t)
	return !d.Before(r.Start) && !d.After(r.End)
}

func (r DateRange) String() string {
	return utils.FormatDate(r.Start) + ".." + utils.FormatDate(r.End)
}

// Favorite marks a recipe as saved by a user
type Favorite struct {
	UserID    string    `json:"userId"`
	RecipeID  string    `json:"recipeId"`
	CreatedAt time.Time `json:"createdAt"`
}

// Rating is a user's 1..5 score for a recipe
type Rating struct {
	UserID    string    `json:"userId"`
	RecipeID  string    `json:"recipeId"`
	Score     int       `json:"score"`
	UpdatedAt time.Time `json:"updatedAt"`
}

const (
	MinRatingScore = 1
	MaxRatingScore = 5
)

// RatingSummary aggregates all ratings of a recipe
type RatingSummary struct {
	RecipeID string  `json:"recipeId"`
	Average  float64 `json:"average"`
	Count    int64   `json:"count"`
}

// Comment is a user's note on a recipe
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	RecipeID  string    `json:"recipeId"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

// CandidateFilter selects approved recipes for recommendation.
// Empty DietTags disables tag filtering. Results come back in random order.
type CandidateFilter struct {
	DietTags   []string
	ExcludeIDs []string
	Limit      int
}

// NormalizeDietTags lower-cases, trims and de-duplicates tags, dropping empties
func NormalizeDietTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	sort.Strings(out)
	return out
}

// SharesTag reports whether any tag appears in both lists
func SharesTag(a, b []string) bool {
	set := make(map[string]struct{}, len(a))
	for _, t := range a {
		set[t] = struct{}{}
	}
	for _, t := range b {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}
