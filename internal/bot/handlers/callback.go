package handlers

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/recipe-planner/internal/bot/keyboards"
	"github.com/vladimiradmaev/recipe-planner/internal/logger"
)

// CallbackHandler handles inline keyboard presses
type CallbackHandler struct {
	api       Sender
	responder *Responder
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(api Sender, responder *Responder) *CallbackHandler {
	return &CallbackHandler{
		api:       api,
		responder: responder,
	}
}

// Handle processes a callback query
func (h *CallbackHandler) Handle(ctx context.Context, query *tgbotapi.CallbackQuery) error {
	// Answer the callback query first
	callback := tgbotapi.NewCallback(query.ID, "")
	if _, err := h.api.Request(callback); err != nil {
		return fmt.Errorf("failed to answer callback query: %w", err)
	}
	if query.Message == nil {
		return nil
	}

	telegramID := query.From.ID
	var reply Reply
	switch query.Data {
	case keyboards.ActionRecommend:
		reply = h.responder.Recommend(ctx, telegramID, "")
	case keyboards.ActionWeek:
		reply = h.responder.Week(ctx, telegramID, "")
	case keyboards.ActionPrice:
		var err error
		if reply, err = h.responder.Price(ctx, telegramID, ""); err != nil {
			return err
		}
	case keyboards.ActionMainMenu:
		var err error
		if reply, err = h.responder.Start(ctx, telegramID); err != nil {
			return err
		}
	default:
		logger.FromContext(ctx).Warn("Unknown callback data", "data", query.Data)
		return nil
	}
	return send(h.api, query.Message.Chat.ID, reply)
}
