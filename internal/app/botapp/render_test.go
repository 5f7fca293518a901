package botapp

import (
	"strings"
	"testing"

	"github.com/ivankudzin/datebot/internal/domain/enums"
	"github.com/ivankudzin/datebot/internal/domain/model"
	"github.com/ivankudzin/datebot/internal/services/dialog"
)

func TestProfileCard(t *testing.T) {
	card := profileCard(&model.Profile{
		UserID:     "u1",
		Name:       "Иван",
		Age:        27,
		Gender:     enums.GenderMale,
		Bio:        "люблю горы",
		Categories: []enums.Category{enums.CategoryLove, enums.CategoryHobby},
	})

	for _, want := range []string{"Иван, 27", "мужской", "люблю горы"} {
		if !strings.Contains(card, want) {
			t.Fatalf("card missing %q:\n%s", want, card)
		}
	}
}

func TestProfileCardNil(t *testing.T) {
	if got := profileCard(nil); got != noProfileText {
		t.Fatalf("unexpected text: %q", got)
	}
}

func TestMainMenuShowsUnread(t *testing.T) {
	text, keyboard := renderResult(dialog.Result{Outcome: dialog.OutcomeMainMenu, Unread: 3})
	if !strings.Contains(text, "3") {
		t.Fatalf("unread count missing: %q", text)
	}
	if keyboard == nil {
		t.Fatal("main menu must carry a keyboard")
	}
}

func TestCandidateUsesVerdictKeyboard(t *testing.T) {
	res := dialog.Result{
		Outcome:  dialog.OutcomeCandidate,
		Selected: &model.Profile{UserID: "u2", Name: "Маша", Age: 24},
	}
	text, keyboard := renderResult(res)
	if !strings.Contains(text, "Маша") {
		t.Fatalf("candidate card missing: %q", text)
	}
	if keyboard == nil || len(keyboard.InlineKeyboard) == 0 {
		t.Fatal("verdict keyboard missing")
	}
}

func TestLikedExhaustedFallsBackToCategories(t *testing.T) {
	text, keyboard := renderResult(dialog.Result{Outcome: dialog.OutcomeLiked})
	if !strings.Contains(text, "закончились") {
		t.Fatalf("exhaustion note missing: %q", text)
	}
	if keyboard == nil {
		t.Fatal("category keyboard missing")
	}
}

func TestNotificationsMarkUnread(t *testing.T) {
	text := notificationsText([]model.Notification{
		{Message: "первое", Read: true},
		{Message: "второе", Read: false},
	})
	if !strings.Contains(text, "• первое") || !strings.Contains(text, "🔔 второе") {
		t.Fatalf("unexpected rendering:\n%s", text)
	}
}

func TestMatchesKeyboardTargetsPartners(t *testing.T) {
	keyboard := matchesKeyboard([]model.Profile{{UserID: "u2", Name: "Маша"}})
	if len(keyboard.InlineKeyboard) != 2 {
		t.Fatalf("expected partner row plus menu row, got %d rows", len(keyboard.InlineKeyboard))
	}
	button := keyboard.InlineKeyboard[0][0]
	if button.CallbackData == nil || *button.CallbackData != "chat:u2" {
		t.Fatalf("unexpected callback data: %v", button.CallbackData)
	}
}

func TestSplitCallback(t *testing.T) {
	action, arg := splitCallback("verdict:like")
	if action != "verdict" || arg != "like" {
		t.Fatalf("split = %q, %q", action, arg)
	}
	action, arg = splitCallback("menu")
	if action != "menu" || arg != "" {
		t.Fatalf("split = %q, %q", action, arg)
	}
}
