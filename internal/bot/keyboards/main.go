package keyboards

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Callback data sent by the inline buttons
const (
	ActionRecommend = "recommend"
	ActionWeek      = "week"
	ActionPrice     = "price"
	ActionMainMenu  = "main_menu"
)

// MainMenu creates the main menu keyboard
func MainMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🍳 Что приготовить", ActionRecommend),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 План на неделю", ActionWeek),
			tgbotapi.NewInlineKeyboardButtonData("💰 Цены", ActionPrice),
		),
	)
}

// BackToMenu creates a single-button keyboard returning to the main menu
func BackToMenu() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("◀️ Главное меню", ActionMainMenu),
		),
	)
}
