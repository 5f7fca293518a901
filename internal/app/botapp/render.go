package botapp

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/ivankudzin/datebot/internal/domain/enums"
	"github.com/ivankudzin/datebot/internal/domain/model"
	tginfra "github.com/ivankudzin/datebot/internal/infra/telegram"
	"github.com/ivankudzin/datebot/internal/services/dialog"
)

const (
	helpText           = "Команды:\n/start — начать\n/menu — главное меню"
	unknownCommandText = "Не знаю такую команду. Попробуй /menu."
	noProfileText      = "Сначала создай анкету — отправь /start."
	invalidActionText  = "Эта кнопка сейчас недоступна. Вернись в меню: /menu."
	chatNotMatchedText = "Чат доступен только при взаимной симпатии."
	chatBlockedText    = "Чат с этим пользователем завершён и больше недоступен."
	internalErrorText  = "Что-то пошло не так. Попробуй ещё раз чуть позже."
)

// renderResult maps a dialog result to the reply text and keyboard. All
// user-visible wording lives here.
func renderResult(res dialog.Result) (string, *tgbotapi.InlineKeyboardMarkup) {
	switch res.Outcome {
	case dialog.OutcomeMainMenu:
		return mainMenuText(res.Unread), keyboardPtr(mainMenuKeyboard(res.Unread))

	case dialog.OutcomePromptName:
		return "Как тебя зовут?", nil
	case dialog.OutcomePromptAge:
		return "Сколько тебе лет?", nil
	case dialog.OutcomePromptGender:
		return "Укажи свой пол:", keyboardPtr(genderKeyboard())
	case dialog.OutcomePromptBio:
		return "Расскажи немного о себе:", nil
	case dialog.OutcomePromptCategories:
		return "Что ты ищешь? Можно выбрать несколько:", keyboardPtr(categoriesKeyboard())
	case dialog.OutcomeCategoryAdded:
		return "Добавлено. Выбери ещё или нажми «Готово».", keyboardPtr(categoriesKeyboard())
	case dialog.OutcomeCategoryDuplicate:
		return "Эта категория уже выбрана.", keyboardPtr(categoriesKeyboard())

	case dialog.OutcomeProfileCreated:
		text := "Анкета создана! 🎉\n\n" + profileCard(res.Profile)
		return text, keyboardPtr(mainMenuKeyboard(0))
	case dialog.OutcomeProfileUpdated:
		return "Анкета обновлена.", keyboardPtr(mainMenuKeyboard(0))
	case dialog.OutcomeOwnProfile:
		return profileCard(res.Profile), keyboardPtr(editKeyboard())

	case dialog.OutcomeChooseCategory:
		return "В какой категории смотреть анкеты?", keyboardPtr(pickCategoryKeyboard())
	case dialog.OutcomeCandidate:
		return profileCard(res.Selected), keyboardPtr(verdictKeyboard())
	case dialog.OutcomeNoCandidates:
		return "Анкеты в этой категории закончились. Выбери другую:", keyboardPtr(pickCategoryKeyboard())
	case dialog.OutcomeLiked:
		return likedText(res), likedKeyboard(res)
	case dialog.OutcomeMatched:
		return matchedText(res), likedKeyboard(res)

	case dialog.OutcomeMatches:
		return matchesText(res.Matches), keyboardPtr(matchesKeyboard(res.Matches))
	case dialog.OutcomeNotifications:
		return notificationsText(res.Notifications), keyboardPtr(backKeyboard())

	case dialog.OutcomeChatStarted:
		return chatStartedText(res.Partner, res.History), keyboardPtr(chatKeyboard())
	case dialog.OutcomeMessageSent:
		return "✉️ Отправлено.", keyboardPtr(chatKeyboard())
	case dialog.OutcomeChatEnded:
		return "Чат завершён. Этот собеседник больше не будет доступен.", keyboardPtr(mainMenuKeyboard(0))
	case dialog.OutcomeChatLost:
		return "Собеседник завершил чат. Возвращаю в меню.", keyboardPtr(mainMenuKeyboard(0))

	default:
		return mainMenuText(res.Unread), keyboardPtr(mainMenuKeyboard(res.Unread))
	}
}

func mainMenuText(unread int) string {
	if unread > 0 {
		return fmt.Sprintf("Главное меню. У тебя %d непрочитанных уведомлений 🔔", unread)
	}
	return "Главное меню."
}

func profileCard(p *model.Profile) string {
	if p == nil {
		return noProfileText
	}

	labels := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		labels = append(labels, c.Label())
	}

	gender := "—"
	switch p.Gender {
	case enums.GenderMale:
		gender = "мужской"
	case enums.GenderFemale:
		gender = "женский"
	}

	lines := []string{
		fmt.Sprintf("👤 %s, %d", p.Name, p.Age),
		"Пол: " + gender,
		"О себе: " + p.Bio,
		"Ищет: " + strings.Join(labels, ", "),
	}
	return strings.Join(lines, "\n")
}

func likedText(res dialog.Result) string {
	if res.Selected != nil {
		return "❤️ Лайк отправлен!\n\n" + profileCard(res.Selected)
	}
	return "❤️ Лайк отправлен! Анкеты в этой категории закончились."
}

// likedKeyboard matches the state the verdict left the user in: another
// candidate on screen, or back at category selection.
func likedKeyboard(res dialog.Result) *tgbotapi.InlineKeyboardMarkup {
	if res.Selected != nil {
		return keyboardPtr(verdictKeyboard())
	}
	return keyboardPtr(pickCategoryKeyboard())
}

func matchedText(res dialog.Result) string {
	text := "💕 Взаимная симпатия! Загляни в раздел «Мои пары»."
	if res.Selected != nil {
		text += "\n\n" + profileCard(res.Selected)
	}
	return text
}

func matchesText(matches []model.Profile) string {
	if len(matches) == 0 {
		return "Пока нет взаимных симпатий. Полистай анкеты!"
	}

	lines := []string{"Твои пары:"}
	for _, p := range matches {
		lines = append(lines, fmt.Sprintf("• %s, %d — @%s", p.Name, p.Age, p.Username))
	}
	return strings.Join(lines, "\n")
}

func notificationsText(items []model.Notification) string {
	if len(items) == 0 {
		return "Уведомлений пока нет."
	}

	lines := []string{"Твои уведомления:"}
	for _, n := range items {
		marker := "•"
		if !n.Read {
			marker = "🔔"
		}
		lines = append(lines, marker+" "+n.Message)
	}
	return strings.Join(lines, "\n")
}

func chatStartedText(partner *model.Profile, history []model.Message) string {
	name := "собеседником"
	var partnerID string
	if partner != nil {
		name = partner.Name
		partnerID = partner.UserID
	}

	lines := []string{fmt.Sprintf("💬 Чат с %s открыт. Пиши сообщения прямо сюда.", name)}
	if len(history) > 0 {
		lines = append(lines, "", "Последние сообщения:")
		for _, m := range history {
			who := name
			if m.FromUserID != partnerID {
				who = "Ты"
			}
			lines = append(lines, fmt.Sprintf("%s: %s", who, m.Text))
		}
	}
	return strings.Join(lines, "\n")
}

func mainMenuKeyboard(unread int) tgbotapi.InlineKeyboardMarkup {
	notifLabel := "🔔 Уведомления"
	if unread > 0 {
		notifLabel = fmt.Sprintf("🔔 Уведомления (%d)", unread)
	}
	return tginfra.InlineKeyboard(
		tginfra.Row(
			tginfra.Button{Label: "👀 Смотреть анкеты", Data: cbBrowse},
			tginfra.Button{Label: "💕 Мои пары", Data: cbMatches},
		),
		tginfra.Row(
			tginfra.Button{Label: "👤 Моя анкета", Data: cbProfile},
			tginfra.Button{Label: notifLabel, Data: cbNotifications},
		),
	)
}

func genderKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tginfra.InlineKeyboard(
		tginfra.Row(
			tginfra.Button{Label: "Мужской", Data: cbGender + ":male"},
			tginfra.Button{Label: "Женский", Data: cbGender + ":female"},
		),
	)
}

func categoriesKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tginfra.Button, 0, len(enums.Categories())+1)
	for _, c := range enums.Categories() {
		rows = append(rows, tginfra.Row(
			tginfra.Button{Label: c.Label(), Data: cbCategory + ":" + string(c)},
		))
	}
	rows = append(rows, tginfra.Row(
		tginfra.Button{Label: "✅ Готово", Data: cbCategory + ":" + cbCategoryDone},
	))
	return tginfra.InlineKeyboard(rows...)
}

func pickCategoryKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tginfra.Button, 0, len(enums.Categories())+1)
	for _, c := range enums.Categories() {
		rows = append(rows, tginfra.Row(
			tginfra.Button{Label: c.Label(), Data: cbPick + ":" + string(c)},
		))
	}
	rows = append(rows, tginfra.Row(
		tginfra.Button{Label: "⬅️ В меню", Data: cbMenu},
	))
	return tginfra.InlineKeyboard(rows...)
}

func verdictKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tginfra.InlineKeyboard(
		tginfra.Row(
			tginfra.Button{Label: "❤️", Data: cbVerdict + ":like"},
			tginfra.Button{Label: "👎", Data: cbVerdict + ":dislike"},
			tginfra.Button{Label: "⏭", Data: cbVerdict + ":skip"},
		),
		tginfra.Row(
			tginfra.Button{Label: "⬅️ В меню", Data: cbMenu},
		),
	)
}

func editKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tginfra.InlineKeyboard(
		tginfra.Row(
			tginfra.Button{Label: "Имя", Data: cbEdit + ":" + string(enums.FieldName)},
			tginfra.Button{Label: "Возраст", Data: cbEdit + ":" + string(enums.FieldAge)},
			tginfra.Button{Label: "Пол", Data: cbEdit + ":" + string(enums.FieldGender)},
		),
		tginfra.Row(
			tginfra.Button{Label: "О себе", Data: cbEdit + ":" + string(enums.FieldBio)},
			tginfra.Button{Label: "Категории", Data: cbEdit + ":" + string(enums.FieldCategories)},
		),
		tginfra.Row(
			tginfra.Button{Label: "⬅️ В меню", Data: cbMenu},
		),
	)
}

func matchesKeyboard(matches []model.Profile) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tginfra.Button, 0, len(matches)+1)
	for _, p := range matches {
		rows = append(rows, tginfra.Row(
			tginfra.Button{Label: "💬 " + p.Name, Data: cbChat + ":" + p.UserID},
		))
	}
	rows = append(rows, tginfra.Row(
		tginfra.Button{Label: "⬅️ В меню", Data: cbMenu},
	))
	return tginfra.InlineKeyboard(rows...)
}

func chatKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tginfra.InlineKeyboard(
		tginfra.Row(
			tginfra.Button{Label: "🚫 Завершить чат", Data: cbChat + ":" + cbChatEnd},
		),
	)
}

func backKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tginfra.InlineKeyboard(
		tginfra.Row(
			tginfra.Button{Label: "⬅️ В меню", Data: cbMenu},
		),
	)
}

func keyboardPtr(k tgbotapi.InlineKeyboardMarkup) *tgbotapi.InlineKeyboardMarkup {
	return &k
}
