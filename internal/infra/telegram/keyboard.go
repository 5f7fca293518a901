package telegram

import tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

// Button is one inline keyboard button: visible label plus the callback data
// it sends back.
type Button struct {
	Label string
	Data  string
}

// InlineKeyboard builds a keyboard from rows of buttons.
func InlineKeyboard(rows ...[]Button) tgbotapi.InlineKeyboardMarkup {
	built := make([][]tgbotapi.InlineKeyboardButton, 0, len(rows))
	for _, row := range rows {
		buttons := make([]tgbotapi.InlineKeyboardButton, 0, len(row))
		for _, b := range row {
			buttons = append(buttons, tgbotapi.NewInlineKeyboardButtonData(b.Label, b.Data))
		}
		built = append(built, buttons)
	}
	return tgbotapi.NewInlineKeyboardMarkup(built...)
}

// Row is a convenience for a single keyboard row.
func Row(buttons ...Button) []Button {
	return buttons
}
