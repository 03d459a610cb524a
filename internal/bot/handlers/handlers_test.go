package handlers

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/recipe-planner/internal/bot/keyboards"
	"github.com/vladimiradmaev/recipe-planner/internal/bot/menus"
	"github.com/vladimiradmaev/recipe-planner/internal/bot/state"
	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	"github.com/vladimiradmaev/recipe-planner/internal/interfaces"
	"github.com/vladimiradmaev/recipe-planner/internal/repository/memory"
)

// fakeSender records outgoing messages instead of calling Telegram
type fakeSender struct {
	sent      []tgbotapi.MessageConfig
	requests  []tgbotapi.Chattable
	failFirst bool
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	msg, ok := c.(tgbotapi.MessageConfig)
	if !ok {
		return tgbotapi.Message{}, errors.New("unexpected chattable")
	}
	if f.failFirst {
		f.failFirst = false
		return tgbotapi.Message{}, errors.New("Bad Request: can't parse entities")
	}
	f.sent = append(f.sent, msg)
	return tgbotapi.Message{}, nil
}

func (f *fakeSender) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	f.requests = append(f.requests, c)
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeSender) last(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	if len(f.sent) == 0 {
		t.Fatal("no message sent")
	}
	return f.sent[len(f.sent)-1]
}

type fixture struct {
	store   *memory.Store
	sender  *fakeSender
	states  *state.Manager
	handler *UpdateHandler
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.New()
	sender := &fakeSender{}
	states := state.NewManager()
	return &fixture{
		store:   store,
		sender:  sender,
		states:  states,
		handler: NewUpdateHandler(sender, DependenciesFrom(interfaces.NewServices(store)), states),
	}
}

func commandUpdate(from int64, text string) tgbotapi.Update {
	cmd, _, _ := strings.Cut(text, " ")
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			From:     &tgbotapi.User{ID: from},
			Chat:     &tgbotapi.Chat{ID: from},
			Text:     text,
			Entities: []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: len(cmd)}},
		},
	}
}

func textUpdate(from int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 2,
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: from},
			Chat: &tgbotapi.Chat{ID: from},
			Text: text,
		},
	}
}

func callbackUpdate(from int64, data string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 3,
		CallbackQuery: &tgbotapi.CallbackQuery{
			ID:      "cb-1",
			From:    &tgbotapi.User{ID: from},
			Message: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: from}},
			Data:    data,
		},
	}
}

func (f *fixture) handle(t *testing.T, u tgbotapi.Update) tgbotapi.MessageConfig {
	t.Helper()
	if err := f.handler.Handle(context.Background(), u); err != nil {
		t.Fatalf("handle update: %v", err)
	}
	return f.sender.last(t)
}

func (f *fixture) seedProducts(t *testing.T) {
	t.Helper()
	err := f.store.ReplaceStoreProducts(context.Background(), "corner", []domain.Product{
		{Name: "Flour 1kg", Unit: "kg", SizeValue: 1, SizeUnit: "kg", PriceCents: 100},
		{Name: "Flour 500g", Unit: "g", SizeValue: 500, SizeUnit: "g", PriceCents: 80},
	})
	if err != nil {
		t.Fatalf("seed products: %v", err)
	}
}

func TestStartRegistersUserAndShowsMenu(t *testing.T) {
	f := newFixture(t)
	msg := f.handle(t, commandUpdate(42, "/start"))

	if msg.Text != menus.MainMenuText || msg.ParseMode != tgbotapi.ModeMarkdown {
		t.Fatalf("unexpected menu %q (%s)", msg.Text, msg.ParseMode)
	}
	if _, ok := msg.ReplyMarkup.(tgbotapi.InlineKeyboardMarkup); !ok {
		t.Fatalf("expected inline keyboard, got %T", msg.ReplyMarkup)
	}
	if _, found, _ := f.store.GetUser(context.Background(), "tg-42"); !found {
		t.Fatal("user tg-42 should have been created")
	}
}

func TestPriceConversation(t *testing.T) {
	f := newFixture(t)
	f.seedProducts(t)
	ctx := context.Background()

	msg := f.handle(t, commandUpdate(7, "/price"))
	if msg.Text != menus.PricePrompt {
		t.Fatalf("expected prompt, got %q", msg.Text)
	}
	if s, _ := f.states.GetUserState(ctx, 7); s != state.WaitingForPriceQuery {
		t.Fatalf("state = %q", s)
	}

	msg = f.handle(t, textUpdate(7, "flour"))
	if msg.Text != menus.PricePrompt {
		t.Fatalf("incomplete query should re-prompt, got %q", msg.Text)
	}
	if s, _ := f.states.GetUserState(ctx, 7); s != state.WaitingForPriceQuery {
		t.Fatalf("state should be kept, got %q", s)
	}

	msg = f.handle(t, textUpdate(7, "flour g"))
	if !strings.Contains(msg.Text, "Flour 1kg") {
		t.Fatalf("expected the 1kg bag, got %q", msg.Text)
	}
	if s, _ := f.states.GetUserState(ctx, 7); s != state.None {
		t.Fatalf("state should be cleared, got %q", s)
	}

	msg = f.handle(t, textUpdate(7, "flour g"))
	if !strings.Contains(msg.Text, "меню") {
		t.Fatalf("without state text should point to the menu, got %q", msg.Text)
	}
}

func TestPriceInlineArguments(t *testing.T) {
	f := newFixture(t)
	f.seedProducts(t)

	msg := f.handle(t, commandUpdate(7, "/price flour kg"))
	if !strings.Contains(msg.Text, "Flour 1kg") {
		t.Fatalf("unexpected quote %q", msg.Text)
	}

	msg = f.handle(t, commandUpdate(7, "/price flour cups"))
	if !strings.HasPrefix(msg.Text, "⚠️") {
		t.Fatalf("unknown unit should be reported, got %q", msg.Text)
	}

	msg = f.handle(t, commandUpdate(7, "/price saffron g"))
	if !strings.Contains(msg.Text, "saffron") {
		t.Fatalf("missing product should be reported, got %q", msg.Text)
	}
}

func TestRecommendUsesPreferences(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for _, r := range []domain.Recipe{
		{Title: "Tofu bowl", Servings: 2, Approved: true, DietTags: []string{"vegan"}},
		{Title: "Steak", Servings: 2, Approved: true, DietTags: []string{"keto"}},
	} {
		if err := f.store.CreateRecipe(ctx, &r); err != nil {
			t.Fatalf("seed recipe: %v", err)
		}
	}
	if err := f.store.UpsertPreferences(ctx, domain.UserPreferences{UserID: "tg-9", DietTags: []string{"vegan"}}); err != nil {
		t.Fatalf("seed preferences: %v", err)
	}

	msg := f.handle(t, commandUpdate(9, "/recommend"))
	if !strings.Contains(msg.Text, "Tofu bowl") || strings.Contains(msg.Text, "Steak") {
		t.Fatalf("unexpected recommendations %q", msg.Text)
	}

	msg = f.handle(t, commandUpdate(9, "/recommend lots"))
	if !strings.Contains(msg.Text, "/recommend 3") {
		t.Fatalf("bad count should explain usage, got %q", msg.Text)
	}
}

func TestWeekShowsPlannedMeals(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	recipe := domain.Recipe{Title: "Lentil soup", Servings: 4, Approved: true}
	if err := f.store.CreateRecipe(ctx, &recipe); err != nil {
		t.Fatalf("seed recipe: %v", err)
	}
	week := domain.WeekRange(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	err := f.store.ReplaceRange(ctx, "tg-5", week, []domain.PlannedMeal{
		{Date: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC), Slot: domain.SlotLunch, RecipeID: recipe.ID},
	})
	if err != nil {
		t.Fatalf("seed plan: %v", err)
	}

	msg := f.handle(t, commandUpdate(5, "/week 2024-01-01"))
	if !strings.Contains(msg.Text, "lunch: Lentil soup") {
		t.Fatalf("unexpected week %q", msg.Text)
	}

	msg = f.handle(t, commandUpdate(5, "/week tomorrow"))
	if !strings.Contains(msg.Text, "ГГГГ-ММ-ДД") {
		t.Fatalf("bad date should explain usage, got %q", msg.Text)
	}
}

func TestCallbackAnswersAndEntersPriceState(t *testing.T) {
	f := newFixture(t)
	msg := f.handle(t, callbackUpdate(11, keyboards.ActionPrice))

	if len(f.sender.requests) != 1 {
		t.Fatalf("callback should be answered once, got %d", len(f.sender.requests))
	}
	if cb, ok := f.sender.requests[0].(tgbotapi.CallbackConfig); !ok || cb.CallbackQueryID != "cb-1" {
		t.Fatalf("unexpected callback answer %#v", f.sender.requests[0])
	}
	if msg.Text != menus.PricePrompt {
		t.Fatalf("expected prompt, got %q", msg.Text)
	}
	if s, _ := f.states.GetUserState(context.Background(), 11); s != state.WaitingForPriceQuery {
		t.Fatalf("state = %q", s)
	}

	msg = f.handle(t, callbackUpdate(11, keyboards.ActionMainMenu))
	if msg.Text != menus.MainMenuText {
		t.Fatalf("expected main menu, got %q", msg.Text)
	}
	if s, _ := f.states.GetUserState(context.Background(), 11); s != state.None {
		t.Fatalf("main menu should reset state, got %q", s)
	}
}

func TestMarkdownFailureFallsBackToPlainText(t *testing.T) {
	f := newFixture(t)
	f.sender.failFirst = true

	msg := f.handle(t, commandUpdate(1, "/start"))
	if msg.ParseMode != "" {
		t.Fatalf("retry should drop the parse mode, got %q", msg.ParseMode)
	}
}

func TestNonTextMessage(t *testing.T) {
	f := newFixture(t)
	u := textUpdate(3, "")
	u.Message.Photo = []tgbotapi.PhotoSize{{FileID: "p"}}

	msg := f.handle(t, u)
	if !strings.Contains(msg.Text, "/help") {
		t.Fatalf("unexpected reply %q", msg.Text)
	}
}

func TestParsePriceQuery(t *testing.T) {
	ingredient, unit, ok := ParsePriceQuery("  olive  oil ml ")
	if !ok || ingredient != "olive oil" || unit != "ml" {
		t.Fatalf("got %q %q %v", ingredient, unit, ok)
	}
	if _, _, ok := ParsePriceQuery("oil"); ok {
		t.Fatal("single word must not parse")
	}
}
