// Package memory is an in-process domain.Store used by tests and STORAGE=memory.
package memory

import (
	"context"
	"math/rand"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	"github.com/vladimiradmaev/recipe-planner/internal/utils"
)

type favoriteKey struct {
	userID   string
	recipeID string
}

// Store keeps every table in maps guarded by one mutex
type Store struct {
	mu          sync.RWMutex
	users       map[string]domain.User
	recipes     map[string]domain.Recipe
	products    map[string]domain.Product
	preferences map[string]domain.UserPreferences
	history     []domain.CookHistoryEntry
	meals       map[string]domain.PlannedMeal
	favorites   map[favoriteKey]time.Time
	ratings     map[favoriteKey]domain.Rating
	comments    []domain.Comment

	shuffle func(n int, swap func(i, j int))
	now     func() time.Time
}

var _ domain.Store = (*Store)(nil)

// Option configures a Store
type Option func(*Store)

// WithShuffle replaces the random permutation used by ListCandidates
func WithShuffle(shuffle func(n int, swap func(i, j int))) Option {
	return func(s *Store) { s.shuffle = shuffle }
}

// WithClock replaces the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New constructs an empty in-memory store
func New(opts ...Option) *Store {
	s := &Store{
		users:       make(map[string]domain.User),
		recipes:     make(map[string]domain.Recipe),
		products:    make(map[string]domain.Product),
		preferences: make(map[string]domain.UserPreferences),
		meals:       make(map[string]domain.PlannedMeal),
		favorites:   make(map[favoriteKey]time.Time),
		ratings:     make(map[favoriteKey]domain.Rating),
		shuffle:     rand.Shuffle,
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// users

func (s *Store) EnsureUser(ctx context.Context, id string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	now := s.now()
	u := domain.User{ID: id, Plan: domain.PlanFree, CreatedAt: now, UpdatedAt: now}
	s.users[id] = u
	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (domain.User, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return u, ok, nil
}

func (s *Store) SetPlan(ctx context.Context, id string, plan domain.Plan) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	u, ok := s.users[id]
	if !ok {
		u = domain.User{ID: id, CreatedAt: now}
	}
	u.Plan = plan
	u.UpdatedAt = now
	s.users[id] = u
	return u, nil
}

// recipes

func (s *Store) CreateRecipe(ctx context.Context, recipe *domain.Recipe) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r := cloneRecipe(*recipe)
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	r.DietTags = domain.NormalizeDietTags(r.DietTags)
	now := s.now()
	r.CreatedAt, r.UpdatedAt = now, now
	s.recipes[r.ID] = r
	*recipe = cloneRecipe(r)
	return nil
}

func (s *Store) GetRecipe(ctx context.Context, id string) (domain.Recipe, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.recipes[id]
	if !ok {
		return domain.Recipe{}, false, nil
	}
	return cloneRecipe(r), true, nil
}

func (s *Store) ListApprovedRecipes(ctx context.Context, offset, limit int) ([]domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	approved := make([]domain.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		if r.Approved {
			approved = append(approved, r)
		}
	}
	sort.Slice(approved, func(i, j int) bool {
		if !approved[i].CreatedAt.Equal(approved[j].CreatedAt) {
			return approved[i].CreatedAt.After(approved[j].CreatedAt)
		}
		return approved[i].ID < approved[j].ID
	})
	return page(approved, offset, limit), nil
}

func (s *Store) ListCandidates(ctx context.Context, filter domain.CandidateFilter) ([]domain.Recipe, error) {
	s.mu.RLock()
	excluded := make(map[string]struct{}, len(filter.ExcludeIDs))
	for _, id := range filter.ExcludeIDs {
		excluded[id] = struct{}{}
	}
	out := make([]domain.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		if !r.Approved {
			continue
		}
		if _, skip := excluded[r.ID]; skip {
			continue
		}
		if len(filter.DietTags) > 0 && !domain.SharesTag(filter.DietTags, r.DietTags) {
			continue
		}
		out = append(out, cloneRecipe(r))
	}
	s.mu.RUnlock()

	// Map iteration order is not a usable permutation, so sort before shuffling
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	s.shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	if filter.Limit > 0 && len(out) > filter.Limit {
		out = out[:filter.Limit]
	}
	return out, nil
}

// products

func (s *Store) SearchProducts(ctx context.Context, nameContains string) ([]domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	needle := strings.ToLower(strings.TrimSpace(nameContains))
	out := make([]domain.Product, 0)
	for _, p := range s.products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Store != out[j].Store {
			return out[i].Store < out[j].Store
		}
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *Store) ReplaceStoreProducts(ctx context.Context, store string, products []domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, p := range s.products {
		if p.Store == store {
			delete(s.products, id)
		}
	}
	now := s.now()
	for _, p := range products {
		p.ID = uuid.NewString()
		p.Store = store
		p.UpdatedAt = now
		s.products[p.ID] = p
	}
	return nil
}

// preferences

func (s *Store) GetPreferences(ctx context.Context, userID string) (domain.UserPreferences, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.preferences[userID]
	if !ok {
		return domain.UserPreferences{}, false, nil
	}
	p.DietTags = append([]string{}, p.DietTags...)
	return p, true, nil
}

func (s *Store) UpsertPreferences(ctx context.Context, prefs domain.UserPreferences) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	prefs.DietTags = domain.NormalizeDietTags(prefs.DietTags)
	prefs.UpdatedAt = s.now()
	s.preferences[prefs.UserID] = prefs
	return nil
}

// cook history

func (s *Store) AddCookHistory(ctx context.Context, entry domain.CookHistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[entry.RecipeID]; !ok {
		return domain.ErrUnknownRecipe
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	s.history = append(s.history, entry)
	return nil
}

func (s *Store) RecentRecipeIDs(ctx context.Context, userID string, since time.Time) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, h := range s.history {
		if h.UserID != userID || h.CookedAt.Before(since) {
			continue
		}
		if _, dup := seen[h.RecipeID]; dup {
			continue
		}
		seen[h.RecipeID] = struct{}{}
		out = append(out, h.RecipeID)
	}
	return out, nil
}

// meal plans

func (s *Store) ReplaceRange(ctx context.Context, userID string, r domain.DateRange, meals []domain.PlannedMeal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// Validate everything before the first mutation so a failure leaves state untouched
	for _, m := range meals {
		if _, ok := s.recipes[m.RecipeID]; !ok {
			return domain.ErrUnknownRecipe
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	for id, m := range s.meals {
		if m.UserID == userID && r.Contains(m.Date) {
			delete(s.meals, id)
		}
	}
	for _, m := range meals {
		m.ID = uuid.NewString()
		m.UserID = userID
		m.Date = utils.CalendarDate(m.Date)
		s.meals[m.ID] = m
	}
	return nil
}

func (s *Store) ListRange(ctx context.Context, userID string, r domain.DateRange) ([]domain.PlannedMeal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PlannedMeal, 0)
	for _, m := range s.meals {
		if m.UserID == userID && r.Contains(m.Date) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		if out[i].Slot != out[j].Slot {
			return out[i].Slot < out[j].Slot
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

// favorites, ratings, comments

func (s *Store) AddFavorite(ctx context.Context, userID, recipeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[recipeID]; !ok {
		return domain.ErrUnknownRecipe
	}
	key := favoriteKey{userID, recipeID}
	if _, ok := s.favorites[key]; !ok {
		s.favorites[key] = s.now()
	}
	return nil
}

func (s *Store) RemoveFavorite(ctx context.Context, userID, recipeID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.favorites, favoriteKey{userID, recipeID})
	return nil
}

func (s *Store) ListFavorites(ctx context.Context, userID string) ([]domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	type saved struct {
		recipe domain.Recipe
		at     time.Time
	}
	var items []saved
	for key, at := range s.favorites {
		if key.userID != userID {
			continue
		}
		if r, ok := s.recipes[key.recipeID]; ok {
			items = append(items, saved{cloneRecipe(r), at})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].at.Equal(items[j].at) {
			return items[i].at.After(items[j].at)
		}
		return items[i].recipe.ID < items[j].recipe.ID
	})
	out := make([]domain.Recipe, 0, len(items))
	for _, it := range items {
		out = append(out, it.recipe)
	}
	return out, nil
}

func (s *Store) UpsertRating(ctx context.Context, rating domain.Rating) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[rating.RecipeID]; !ok {
		return domain.ErrUnknownRecipe
	}
	rating.UpdatedAt = s.now()
	s.ratings[favoriteKey{rating.UserID, rating.RecipeID}] = rating
	return nil
}

func (s *Store) GetRating(ctx context.Context, userID, recipeID string) (domain.Rating, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.ratings[favoriteKey{userID, recipeID}]
	return r, ok, nil
}

func (s *Store) RatingSummary(ctx context.Context, recipeID string) (domain.RatingSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary := domain.RatingSummary{RecipeID: recipeID}
	total := 0
	for key, r := range s.ratings {
		if key.recipeID == recipeID {
			total += r.Score
			summary.Count++
		}
	}
	if summary.Count > 0 {
		summary.Average = float64(total) / float64(summary.Count)
	}
	return summary, nil
}

func (s *Store) AddComment(ctx context.Context, comment *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[comment.RecipeID]; !ok {
		return domain.ErrUnknownRecipe
	}
	comment.ID = uuid.NewString()
	comment.CreatedAt = s.now()
	s.comments = append(s.comments, *comment)
	return nil
}

func (s *Store) ListComments(ctx context.Context, recipeID string, limit int) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Comment, 0)
	// Appended in creation order, so walk backwards for newest first
	for i := len(s.comments) - 1; i >= 0; i-- {
		if s.comments[i].RecipeID != recipeID {
			continue
		}
		out = append(out, s.comments[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}

func cloneRecipe(r domain.Recipe) domain.Recipe {
	r.Steps = append([]string{}, r.Steps...)
	r.Images = append([]string{}, r.Images...)
	r.Ingredients = append([]domain.IngredientItem{}, r.Ingredients...)
	r.DietTags = append([]string{}, r.DietTags...)
	return r
}

func page(items []domain.Recipe, offset, limit int) []domain.Recipe {
	if offset >= len(items) {
		return []domain.Recipe{}
	}
	if offset < 0 {
		offset = 0
	}
	items = items[offset:]
	if limit > 0 && len(items) > limit {
		items = items[:limit]
	}
	out := make([]domain.Recipe, 0, len(items))
	for _, r := range items {
		out = append(out, cloneRecipe(r))
	}
	return out
}
