package handlers

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/vladimiradmaev/recipe-planner/internal/bot/keyboards"
	"github.com/vladimiradmaev/recipe-planner/internal/bot/menus"
	"github.com/vladimiradmaev/recipe-planner/internal/bot/state"
	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	apperrors "github.com/vladimiradmaev/recipe-planner/internal/errors"
	"github.com/vladimiradmaev/recipe-planner/internal/logger"
	"github.com/vladimiradmaev/recipe-planner/internal/utils"
)

// DefaultRecommendations is how many recipes /recommend lists without an argument
const DefaultRecommendations = 5

const genericFailure = "Произошла ошибка. Пожалуйста, попробуйте еще раз позже."

// Responder composes replies to commands, text and button presses.
// It owns conversation state but knows nothing about sending messages.
type Responder struct {
	deps   Dependencies
	states state.StateManager
	now    func() time.Time
}

func NewResponder(deps Dependencies, states state.StateManager) *Responder {
	return &Responder{
		deps:   deps,
		states: states,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func mainMenu() Reply {
	kb := keyboards.MainMenu()
	return Reply{Text: menus.MainMenuText, Markdown: true, Keyboard: &kb}
}

func withBackButton(r Reply) Reply {
	kb := keyboards.BackToMenu()
	r.Keyboard = &kb
	return r
}

// failure turns a service error into a reply. Client errors are shown as is.
func failure(ctx context.Context, err error) Reply {
	apperrors.NewHandler(logger.FromContext(ctx)).Handle(ctx, err)
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeValidation, apperrors.ErrorTypeNotFound, apperrors.ErrorTypeEntitlement:
		return withBackButton(Reply{Text: "⚠️ " + apperrors.PublicMessage(err)})
	default:
		return withBackButton(Reply{Text: genericFailure})
	}
}

// Start resets the conversation and shows the main menu
func (r *Responder) Start(ctx context.Context, telegramID int64) (Reply, error) {
	if err := r.states.ClearUserState(ctx, telegramID); err != nil {
		return Reply{}, err
	}
	return mainMenu(), nil
}

func (r *Responder) Help() Reply {
	return Reply{Text: menus.HelpText}
}

// Recommend lists recipes; args may carry how many
func (r *Responder) Recommend(ctx context.Context, telegramID int64, args string) Reply {
	limit := DefaultRecommendations
	if args = strings.TrimSpace(args); args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n < 1 {
			return Reply{Text: "Укажите количество рецептов числом, например: /recommend 3"}
		}
		limit = n
	}

	recipes, err := r.deps.RecommendationService.Recommend(ctx, UserIDFor(telegramID), limit)
	if err != nil {
		return failure(ctx, err)
	}
	return withBackButton(Reply{Text: menus.FormatRecommendations(recipes), Markdown: true})
}

// Week shows the 7-day plan starting at args (YYYY-MM-DD) or today
func (r *Responder) Week(ctx context.Context, telegramID int64, args string) Reply {
	start := utils.CalendarDate(r.now())
	if args = strings.TrimSpace(args); args != "" {
		parsed, err := utils.ParseDate(args)
		if err != nil {
			return Reply{Text: "Укажите дату в формате ГГГГ-ММ-ДД, например: /week 2024-01-01"}
		}
		start = parsed
	}

	userID := UserIDFor(telegramID)
	meals, err := r.deps.PlannerService.ListWeek(ctx, userID, start)
	if err != nil {
		return failure(ctx, err)
	}

	titles := make(map[string]string, len(meals))
	for _, m := range meals {
		if _, seen := titles[m.RecipeID]; seen {
			continue
		}
		// a missing title falls back to the id
		recipe, err := r.deps.RecipeService.Get(ctx, m.RecipeID)
		if err != nil {
			titles[m.RecipeID] = ""
			continue
		}
		titles[m.RecipeID] = recipe.Title
	}

	return withBackButton(Reply{
		Text:     menus.FormatWeek(domain.WeekRange(start), meals, titles),
		Markdown: true,
	})
}

// Price answers "<ingredient> <unit>" right away, or asks for it when args is empty
func (r *Responder) Price(ctx context.Context, telegramID int64, args string) (Reply, error) {
	if strings.TrimSpace(args) == "" {
		if err := r.states.SetUserState(ctx, telegramID, state.WaitingForPriceQuery); err != nil {
			return Reply{}, err
		}
		return withBackButton(Reply{Text: menus.PricePrompt}), nil
	}
	return r.quote(ctx, args), nil
}

func (r *Responder) quote(ctx context.Context, query string) Reply {
	ingredient, unit, ok := ParsePriceQuery(query)
	if !ok {
		return withBackButton(Reply{Text: menus.PricePrompt})
	}

	q, found, err := r.deps.PriceService.Cheapest(ctx, ingredient, unit)
	if err != nil {
		return failure(ctx, err)
	}
	if !found {
		return withBackButton(Reply{Text: "Не нашел подходящих продуктов для «" + ingredient + "»"})
	}
	return withBackButton(Reply{Text: menus.FormatQuote(ingredient, q)})
}

// Text handles a free-form message according to the conversation state
func (r *Responder) Text(ctx context.Context, telegramID int64, text string) (Reply, error) {
	current, err := r.states.GetUserState(ctx, telegramID)
	if err != nil {
		return Reply{}, err
	}

	switch current {
	case state.WaitingForPriceQuery:
		if _, _, ok := ParsePriceQuery(text); !ok {
			return withBackButton(Reply{Text: menus.PricePrompt}), nil
		}
		if err := r.states.ClearUserState(ctx, telegramID); err != nil {
			return Reply{}, err
		}
		return r.quote(ctx, text), nil
	default:
		kb := keyboards.MainMenu()
		return Reply{Text: "Пожалуйста, используйте меню для выбора действия.", Keyboard: &kb}, nil
	}
}

// ParsePriceQuery splits "<ingredient words> <unit>"; the last word is the unit
func ParsePriceQuery(text string) (ingredient, unit string, ok bool) {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return "", "", false
	}
	return strings.Join(fields[:len(fields)-1], " "), fields[len(fields)-1], true
}
