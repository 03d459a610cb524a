package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/recipe-planner/internal/bot/state"
	"github.com/vladimiradmaev/recipe-planner/internal/reqctx"
)

// UpdateHandler handles telegram updates and coordinates other handlers
type UpdateHandler struct {
	api             Sender
	deps            Dependencies
	callbackHandler *CallbackHandler
	commandHandler  *CommandHandler
	textHandler     *TextHandler
}

// NewUpdateHandler creates a new update handler
func NewUpdateHandler(api Sender, deps Dependencies, stateManager state.StateManager) *UpdateHandler {
	responder := NewResponder(deps, stateManager)
	return &UpdateHandler{
		api:             api,
		deps:            deps,
		callbackHandler: NewCallbackHandler(api, responder),
		commandHandler:  NewCommandHandler(api, responder),
		textHandler:     NewTextHandler(api, responder),
	}
}

// Handle processes a telegram update
func (h *UpdateHandler) Handle(ctx context.Context, update tgbotapi.Update) error {
	var from *tgbotapi.User
	switch {
	case update.CallbackQuery != nil:
		from = update.CallbackQuery.From
	case update.Message != nil:
		from = update.Message.From
	}
	if from == nil {
		return nil
	}

	// Get or create user
	user, err := h.deps.UserService.EnsureUser(ctx, UserIDFor(from.ID))
	if err != nil {
		return fmt.Errorf("failed to get/create user: %w", err)
	}

	ctx = reqctx.With(ctx, reqctx.RequestContext{
		RequestID: fmt.Sprintf("tg-update-%d", update.UpdateID),
		UserID:    user.ID,
		Locale:    from.LanguageCode,
	})

	if update.CallbackQuery != nil {
		return h.callbackHandler.Handle(ctx, update.CallbackQuery)
	}

	if update.Message.IsCommand() {
		return h.commandHandler.Handle(ctx, update.Message)
	}
	if update.Message.Text != "" {
		return h.textHandler.Handle(ctx, update.Message)
	}

	return send(h.api, update.Message.Chat.ID, Reply{Text: "Я понимаю только текстовые сообщения. Используйте /help."})
}
