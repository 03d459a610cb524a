package handlers

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/vladimiradmaev/recipe-planner/internal/interfaces"
)

// Dependencies holds all service dependencies for handlers
type Dependencies struct {
	UserService           interfaces.UserServiceInterface
	RecipeService         interfaces.RecipeServiceInterface
	RecommendationService interfaces.RecommendationServiceInterface
	PlannerService        interfaces.PlannerServiceInterface
	PriceService          interfaces.PriceServiceInterface
}

// DependenciesFrom picks the services the bot talks to
func DependenciesFrom(svc interfaces.Services) Dependencies {
	return Dependencies{
		UserService:           svc.Users,
		RecipeService:         svc.Recipes,
		RecommendationService: svc.Recommendations,
		PlannerService:        svc.Planner,
		PriceService:          svc.Prices,
	}
}

// Sender is the subset of *tgbotapi.BotAPI the handlers use
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
}

// Reply is a message to send back, independent of the transport
type Reply struct {
	Text     string
	Markdown bool
	Keyboard *tgbotapi.InlineKeyboardMarkup
}

// UserIDFor maps a Telegram account to a platform user id
func UserIDFor(telegramID int64) string {
	return fmt.Sprintf("tg-%d", telegramID)
}

// send delivers reply, retrying without Markdown if Telegram rejects the markup
func send(api Sender, chatID int64, reply Reply) error {
	msg := tgbotapi.NewMessage(chatID, reply.Text)
	if reply.Keyboard != nil {
		msg.ReplyMarkup = *reply.Keyboard
	}
	if reply.Markdown {
		msg.ParseMode = tgbotapi.ModeMarkdown
	}

	_, err := api.Send(msg)
	if err != nil && reply.Markdown {
		msg.ParseMode = ""
		_, err = api.Send(msg)
	}
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}
	return nil
}
