package handlers

import (
	"context"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/recipe-planner/internal/logger"
)

// CommandHandler handles bot commands
type CommandHandler struct {
	api       Sender
	responder *Responder
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(api Sender, responder *Responder) *CommandHandler {
	return &CommandHandler{
		api:       api,
		responder: responder,
	}
}

// Handle processes a command message
func (h *CommandHandler) Handle(ctx context.Context, message *tgbotapi.Message) error {
	logger.FromContext(ctx).Info("Handling command", "command", message.Command())

	telegramID := message.From.ID
	args := message.CommandArguments()

	var reply Reply
	switch message.Command() {
	case "start":
		var err error
		if reply, err = h.responder.Start(ctx, telegramID); err != nil {
			return err
		}
	case "help":
		reply = h.responder.Help()
	case "recommend":
		reply = h.responder.Recommend(ctx, telegramID, args)
	case "week":
		reply = h.responder.Week(ctx, telegramID, args)
	case "price":
		var err error
		if reply, err = h.responder.Price(ctx, telegramID, args); err != nil {
			return err
		}
	default:
		reply = Reply{Text: "Неизвестная команда. Используйте /help для просмотра доступных команд."}
	}
	return send(h.api, message.Chat.ID, reply)
}
