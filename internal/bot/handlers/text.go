package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TextHandler handles text messages
type TextHandler struct {
	api       Sender
	responder *Responder
}

// NewTextHandler creates a new text handler
func NewTextHandler(api Sender, responder *Responder) *TextHandler {
	return &TextHandler{
		api:       api,
		responder: responder,
	}
}

// Handle processes a text message
func (h *TextHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	reply, err := h.responder.Text(ctx, message.From.ID, message.Text)
	if err != nil {
		return err
	}
	return send(h.api, message.Chat.ID, reply)
}
