package menus

import (
	"fmt"
	"strings"
	"time"

	"github.com/vladimiradmaev/recipe-planner/internal/domain"
	"github.com/vladimiradmaev/recipe-planner/internal/services"
	"github.com/vladimiradmaev/recipe-planner/internal/utils"
)

// MainMenuText greets the user above the main menu keyboard
const MainMenuText = `🍽️ *Recipe Planner* - помощник для планирования питания

Я умею:
• Подбирать рецепты под ваши предпочтения
• Показывать план питания на неделю
• Находить самые выгодные продукты

Выберите действие:`

// HelpText lists the bot commands
const HelpText = `Доступные команды:
/start - Показать главное меню
/help - Показать это сообщение
/recommend - Подобрать рецепты
/week [ГГГГ-ММ-ДД] - План питания на 7 дней
/price <продукт> <единица> - Самая выгодная цена

Пример: /price мука g`

// PricePrompt asks for an ingredient and unit
const PricePrompt = "Введите продукт и единицу измерения через пробел (например: мука g)"

var weekdays = [...]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

// FormatRecommendations renders a numbered recipe list
func FormatRecommendations(recipes []domain.Recipe) string {
	if len(recipes) == 0 {
		return "Пока нет рецептов, подходящих под ваши предпочтения 🤷"
	}

	var b strings.Builder
	b.WriteString("🍳 *Рекомендации:*\n\n")
	for i, r := range recipes {
		fmt.Fprintf(&b, "%d. %s", i+1, EscapeMarkdown(r.Title))
		if r.TotalTimeMinutes != nil {
			fmt.Fprintf(&b, " (%d мин)", *r.TotalTimeMinutes)
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatWeek renders a plan grouped by date; titles maps recipe ids to titles
func FormatWeek(r domain.DateRange, meals []domain.PlannedMeal, titles map[string]string) string {
	if len(meals) == 0 {
		return fmt.Sprintf("📅 На %s ничего не запланировано", r)
	}

	byDate := make(map[string][]domain.PlannedMeal)
	for _, m := range meals {
		key := utils.FormatDate(m.Date)
		byDate[key] = append(byDate[key], m)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📅 *План %s*\n", r)
	for d := r.Start; !d.After(r.End); d = d.AddDate(0, 0, 1) {
		key := utils.FormatDate(d)
		dayMeals := byDate[key]
		if len(dayMeals) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s %s\n", weekday(d), key)
		for _, m := range dayMeals {
			title := titles[m.RecipeID]
			if title == "" {
				title = m.RecipeID
			}
			fmt.Fprintf(&b, "  • %s: %s", m.Slot, EscapeMarkdown(title))
			if m.Servings != nil {
				fmt.Fprintf(&b, " ×%d", *m.Servings)
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}

var markdownEscaper = strings.NewReplacer("_", "\\_", "*", "\\*", "[", "\\[", "]", "\\]", "`", "\\`")

// EscapeMarkdown escapes user-provided text for Telegram's legacy Markdown mode
func EscapeMarkdown(s string) string {
	return markdownEscaper.Replace(strings.ToValidUTF8(s, ""))
}

func weekday(d time.Time) string {
	return weekdays[d.Weekday()]
}

// FormatQuote renders the cheapest product found for an ingredient
func FormatQuote(ingredient string, q services.PriceQuote) string {
	return fmt.Sprintf("💰 Дешевле всего «%s»: %s (%s), %s\n≈ %.2f ¢ за 1 %s",
		ingredient,
		q.Product.Name,
		q.Product.Store,
		FormatCents(q.Product.PriceCents),
		q.PricePerBaseUnit,
		q.BaseUnit,
	)
}

// FormatCents renders an amount of cents as a decimal price
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}
