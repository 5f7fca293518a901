package botapp

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ivankudzin/datebot/internal/domain/enums"
	"github.com/ivankudzin/datebot/internal/domain/rules"
	tginfra "github.com/ivankudzin/datebot/internal/infra/telegram"
	"github.com/ivankudzin/datebot/internal/services/chat"
	"github.com/ivankudzin/datebot/internal/services/dialog"
)

// Callback data layout. Every inline button sends one of these, optionally
// with a ":"-separated argument.
const (
	cbMenu          = "menu"
	cbProfile       = "profile"
	cbEdit          = "edit"
	cbGender        = "gender"
	cbCategory      = "cat"
	cbCategoryDone  = "done"
	cbBrowse        = "browse"
	cbPick          = "pick"
	cbVerdict       = "verdict"
	cbMatches       = "matches"
	cbChat          = "chat"
	cbChatEnd       = "end"
	cbNotifications = "notifications"
)

func (a *App) handleCommand(ctx context.Context, update tginfra.CommandUpdate) error {
	if a.bot == nil {
		return nil
	}

	userID := strconv.FormatInt(update.UserID, 10)
	log := a.updateLogger(userID, "command:"+update.Command)

	var (
		res dialog.Result
		err error
	)
	switch strings.ToLower(strings.TrimSpace(update.Command)) {
	case "start":
		res, err = a.dialogService.Start(ctx, userID, update.Username)
	case "menu":
		res, err = a.dialogService.Menu(ctx, userID)
	case "help":
		return a.bot.SendText(ctx, update.ChatID, helpText)
	default:
		return a.bot.SendText(ctx, update.ChatID, unknownCommandText)
	}
	if err != nil {
		return a.replyError(ctx, log, update.ChatID, err)
	}
	return a.reply(ctx, log, update.ChatID, res)
}

func (a *App) handleText(ctx context.Context, update tginfra.TextUpdate) error {
	if a.bot == nil {
		return nil
	}

	userID := strconv.FormatInt(update.UserID, 10)
	log := a.updateLogger(userID, "text")

	res, err := a.dialogService.SubmitText(ctx, userID, update.Text)
	if err != nil {
		return a.replyError(ctx, log, update.ChatID, err)
	}
	return a.reply(ctx, log, update.ChatID, res)
}

func (a *App) handleCallback(ctx context.Context, update tginfra.CallbackUpdate) error {
	if a.bot == nil {
		return nil
	}

	userID := strconv.FormatInt(update.UserID, 10)
	data := strings.TrimSpace(update.Data)
	log := a.updateLogger(userID, "callback:"+data)

	if err := a.bot.AnswerCallback(ctx, update.CallbackID, ""); err != nil {
		log.Warn("answer callback failed", zap.Error(err))
	}

	action, arg := splitCallback(data)

	var (
		res dialog.Result
		err error
	)
	switch action {
	case cbMenu:
		res, err = a.dialogService.Menu(ctx, userID)
	case cbProfile:
		res, err = a.dialogService.ViewOwnProfile(ctx, userID)
	case cbEdit:
		res, err = a.dialogService.EditField(ctx, userID, enums.ProfileField(arg))
	case cbGender:
		res, err = a.dialogService.ChooseGender(ctx, userID, arg)
	case cbCategory:
		if arg == cbCategoryDone {
			res, err = a.dialogService.FinishCategories(ctx, userID)
		} else {
			res, err = a.dialogService.ToggleCategory(ctx, userID, arg)
		}
	case cbBrowse:
		res, err = a.dialogService.Browse(ctx, userID)
	case cbPick:
		res, err = a.dialogService.ChooseCategory(ctx, userID, arg)
	case cbVerdict:
		switch arg {
		case "like":
			res, err = a.dialogService.Like(ctx, userID)
		case "dislike":
			res, err = a.dialogService.Dislike(ctx, userID)
		case "skip":
			res, err = a.dialogService.Skip(ctx, userID)
		default:
			err = dialog.ErrInvalidTransition
		}
	case cbMatches:
		res, err = a.dialogService.ViewMatches(ctx, userID)
	case cbChat:
		if arg == cbChatEnd {
			res, err = a.dialogService.EndChat(ctx, userID)
		} else {
			res, err = a.dialogService.StartChat(ctx, userID, arg)
		}
	case cbNotifications:
		res, err = a.dialogService.ViewNotifications(ctx, userID)
	default:
		err = dialog.ErrInvalidTransition
	}
	if err != nil {
		return a.replyError(ctx, log, update.ChatID, err)
	}
	return a.reply(ctx, log, update.ChatID, res)
}

func (a *App) reply(ctx context.Context, log *zap.Logger, chatID int64, res dialog.Result) error {
	text, keyboard := renderResult(res)
	log.Debug("dialog step",
		zap.String("state", string(res.State)),
		zap.String("outcome", string(res.Outcome)),
	)

	if keyboard == nil {
		return a.bot.SendText(ctx, chatID, text)
	}
	return a.bot.SendKeyboard(ctx, chatID, text, *keyboard)
}

// replyError translates domain errors into user messages. Only transport
// failures escape; anything domain-level ends the update with a reply.
func (a *App) replyError(ctx context.Context, log *zap.Logger, chatID int64, err error) error {
	switch {
	case rules.IsValidation(err):
		return a.bot.SendText(ctx, chatID, err.Error())
	case errors.Is(err, dialog.ErrNoProfile):
		return a.bot.SendText(ctx, chatID, noProfileText)
	case errors.Is(err, dialog.ErrInvalidTransition):
		return a.bot.SendText(ctx, chatID, invalidActionText)
	case errors.Is(err, chat.ErrNotMatched):
		return a.bot.SendText(ctx, chatID, chatNotMatchedText)
	case errors.Is(err, chat.ErrChatBlocked):
		return a.bot.SendText(ctx, chatID, chatBlockedText)
	default:
		log.Error("dialog step failed", zap.Error(err))
		return a.bot.SendText(ctx, chatID, internalErrorText)
	}
}

func (a *App) updateLogger(userID, intent string) *zap.Logger {
	return a.logger.With(
		zap.String("trace_id", uuid.NewString()),
		zap.String("user_id", userID),
		zap.String("intent", intent),
	)
}

func splitCallback(data string) (action, arg string) {
	action, arg, _ = strings.Cut(data, ":")
	return action, arg
}
