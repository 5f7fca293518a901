package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ivankudzin/datebot/internal/domain/enums"
	"github.com/ivankudzin/datebot/internal/domain/model"
	"github.com/ivankudzin/datebot/internal/domain/rules"
	"github.com/ivankudzin/datebot/internal/services/chat"
	"github.com/ivankudzin/datebot/internal/services/matching"
	"github.com/ivankudzin/datebot/internal/services/profiles"
)

var (
	ErrValidation = errors.New("validation error")
	// ErrInvalidTransition: the intent is not available from the user's
	// current dialog state. The caller re-renders the current state.
	ErrInvalidTransition = errors.New("intent not available in current state")
	// ErrNoProfile: the operation needs a registered profile.
	ErrNoProfile = errors.New("profile required")
)

type StateStore interface {
	Get(ctx context.Context, userID string) (model.SessionState, bool, error)
	Set(ctx context.Context, userID string, state model.SessionState) error
	Clear(ctx context.Context, userID string) error
}

type ProfileService interface {
	Exists(ctx context.Context, userID string) (bool, error)
	Get(ctx context.Context, userID string) (*model.Profile, error)
	Create(ctx context.Context, profile model.Profile) error
	SetName(ctx context.Context, userID, name string) error
	SetAge(ctx context.Context, userID string, age int) error
	SetGender(ctx context.Context, userID string, gender enums.Gender) error
	SetBio(ctx context.Context, userID, bio string) error
	SetCategories(ctx context.Context, userID string, categories []enums.Category) error
}

type Matchmaker interface {
	RecordLike(ctx context.Context, fromID, toID string) (matching.LikeResult, error)
	RecordDislike(ctx context.Context, fromID, toID string) error
	NextCandidate(ctx context.Context, viewerID string, category enums.Category) (*model.Profile, error)
	Matches(ctx context.Context, userID string) ([]model.Profile, error)
}

type ChatGate interface {
	CanChat(ctx context.Context, a, b string) error
	EndChat(ctx context.Context, userID, partnerID string) error
	SendMessage(ctx context.Context, fromID, toID, text string) error
	History(ctx context.Context, a, b string, limit int) ([]model.Message, error)
}

type NotificationFeed interface {
	View(ctx context.Context, userID string) ([]model.Notification, error)
	UnreadCount(ctx context.Context, userID string) (int, error)
}

// Outcome tells the transport what happened so it can pick the reply text and
// keyboard. The dialog service itself never renders.
type Outcome string

const (
	OutcomeMainMenu          Outcome = "main_menu"
	OutcomePromptName        Outcome = "prompt_name"
	OutcomePromptAge         Outcome = "prompt_age"
	OutcomePromptGender      Outcome = "prompt_gender"
	OutcomePromptBio         Outcome = "prompt_bio"
	OutcomePromptCategories  Outcome = "prompt_categories"
	OutcomeCategoryAdded     Outcome = "category_added"
	OutcomeCategoryDuplicate Outcome = "category_duplicate"
	OutcomeProfileCreated    Outcome = "profile_created"
	OutcomeProfileUpdated    Outcome = "profile_updated"
	OutcomeOwnProfile        Outcome = "own_profile"
	OutcomeChooseCategory    Outcome = "choose_category"
	OutcomeCandidate         Outcome = "candidate"
	OutcomeNoCandidates      Outcome = "no_candidates"
	OutcomeLiked             Outcome = "liked"
	OutcomeMatched           Outcome = "matched"
	OutcomeMatches           Outcome = "matches"
	OutcomeNotifications     Outcome = "notifications"
	OutcomeChatStarted       Outcome = "chat_started"
	OutcomeMessageSent       Outcome = "message_sent"
	OutcomeChatEnded         Outcome = "chat_ended"
	OutcomeChatLost          Outcome = "chat_lost"
)

// Result is the full reaction to one user action: the state the user ends up
// in plus whatever data the transport needs to render it.
type Result struct {
	State         enums.State
	Outcome       Outcome
	Unread        int
	Profile       *model.Profile
	Selected      *model.Profile
	Matches       []model.Profile
	Notifications []model.Notification
	Partner       *model.Profile
	History       []model.Message
}

type Service struct {
	states        StateStore
	profiles      ProfileService
	matchmaker    Matchmaker
	chats         ChatGate
	notifications NotificationFeed
	ageMin        int
	ageMax        int
	historyLimit  int
}

type Dependencies struct {
	States        StateStore
	Profiles      ProfileService
	Matchmaker    Matchmaker
	Chats         ChatGate
	Notifications NotificationFeed

	AgeMin       int
	AgeMax       int
	HistoryLimit int
}

const defaultHistoryLimit = 50

func NewService(deps Dependencies) *Service {
	limit := deps.HistoryLimit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return &Service{
		states:        deps.States,
		profiles:      deps.Profiles,
		matchmaker:    deps.Matchmaker,
		chats:         deps.Chats,
		notifications: deps.Notifications,
		ageMin:        deps.AgeMin,
		ageMax:        deps.AgeMax,
		historyLimit:  limit,
	}
}

// Start handles /start: returning users land in the main menu, new users
// enter the registration flow.
func (s *Service) Start(ctx context.Context, userID, username string) (Result, error) {
	if strings.TrimSpace(userID) == "" {
		return Result{}, ErrValidation
	}

	exists, err := s.profiles.Exists(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("check profile: %w", err)
	}
	if exists {
		return s.toMainMenu(ctx, userID)
	}

	next := model.SessionState{
		State:   enums.StateEnterName,
		Context: model.SessionContext{Signup: &model.SignupDraft{Username: username}},
	}
	if err := s.states.Set(ctx, userID, next); err != nil {
		return Result{}, err
	}
	return Result{State: next.State, Outcome: OutcomePromptName}, nil
}

// Menu returns to the main menu from any state, dropping whatever context the
// previous state carried.
func (s *Service) Menu(ctx context.Context, userID string) (Result, error) {
	if strings.TrimSpace(userID) == "" {
		return Result{}, ErrValidation
	}
	return s.toMainMenu(ctx, userID)
}

// SubmitText routes free-form text by the current state: registration and
// edit inputs, or a chat message when in a chat.
func (s *Service) SubmitText(ctx context.Context, userID, text string) (Result, error) {
	session, err := s.loadState(ctx, userID)
	if err != nil {
		return Result{}, err
	}

	switch session.State {
	case enums.StateEnterName:
		return s.submitName(ctx, userID, session, text)
	case enums.StateEnterAge:
		return s.submitAge(ctx, userID, session, text)
	case enums.StateEnterGender:
		return s.applyGender(ctx, userID, session, text)
	case enums.StateEnterBio:
		return s.submitBio(ctx, userID, session, text)
	case enums.StateChooseCategories:
		return s.applyCategory(ctx, userID, session, text)
	case enums.StateInChat:
		return s.submitChatMessage(ctx, userID, session, text)
	default:
		return Result{}, ErrInvalidTransition
	}
}

func (s *Service) submitName(ctx context.Context, userID string, session model.SessionState, text string) (Result, error) {
	name, err := rules.ValidateName(text)
	if err != nil {
		return Result{}, err
	}

	if session.Context.Editing != nil {
		if err := s.profiles.SetName(ctx, userID, name); err != nil {
			return Result{}, err
		}
		return s.finishEdit(ctx, userID)
	}

	draft := signupDraft(session)
	if draft == nil {
		return Result{}, ErrInvalidTransition
	}
	draft.Name = name

	next := model.SessionState{
		State:   enums.StateEnterAge,
		Context: model.SessionContext{Signup: draft},
	}
	if err := s.states.Set(ctx, userID, next); err != nil {
		return Result{}, err
	}
	return Result{State: next.State, Outcome: OutcomePromptAge}, nil
}

func (s *Service) submitAge(ctx context.Context, userID string, session model.SessionState, text string) (Result, error) {
	age, err := rules.ValidateAge(text, s.ageMin, s.ageMax)
	if err != nil {
		return Result{}, err
	}

	if session.Context.Editing != nil {
		if err := s.profiles.SetAge(ctx, userID, age); err != nil {
			return Result{}, err
		}
		return s.finishEdit(ctx, userID)
	}

	draft := signupDraft(session)
	if draft == nil {
		return Result{}, ErrInvalidTransition
	}
	draft.Age = age

	next := model.SessionState{
		State:   enums.StateEnterGender,
		Context: model.SessionContext{Signup: draft},
	}
	if err := s.states.Set(ctx, userID, next); err != nil {
		return Result{}, err
	}
	return Result{State: next.State, Outcome: OutcomePromptGender}, nil
}

func (s *Service) submitBio(ctx context.Context, userID string, session model.SessionState, text string) (Result, error) {
	bio, err := rules.ValidateBio(text)
	if err != nil {
		return Result{}, err
	}

	if session.Context.Editing != nil {
		if err := s.profiles.SetBio(ctx, userID, bio); err != nil {
			return Result{}, err
		}
		return s.finishEdit(ctx, userID)
	}

	draft := signupDraft(session)
	if draft == nil {
		return Result{}, ErrInvalidTransition
	}
	draft.Bio = bio

	next := model.SessionState{
		State:   enums.StateChooseCategories,
		Context: model.SessionContext{Signup: draft},
	}
	if err := s.states.Set(ctx, userID, next); err != nil {
		return Result{}, err
	}
	return Result{State: next.State, Outcome: OutcomePromptCategories}, nil
}

func (s *Service) submitChatMessage(ctx context.Context, userID string, session model.SessionState, text string) (Result, error) {
	partner := session.Context.Chat
	if partner == nil {
		return Result{}, ErrInvalidTransition
	}

	err := s.chats.SendMessage(ctx, userID, partner.PartnerID, text)
	if err == nil {
		return Result{State: enums.StateInChat, Outcome: OutcomeMessageSent}, nil
	}
	// The counterpart ended the chat while this user was still in it. Not
	// the user's fault, so it is a recovery, not an error.
	if errors.Is(err, chat.ErrChatBlocked) || errors.Is(err, chat.ErrNotMatched) {
		if serr := s.states.Set(ctx, userID, mainMenuState()); serr != nil {
			return Result{}, serr
		}
		return Result{State: enums.StateMainMenu, Outcome: OutcomeChatLost}, nil
	}
	return Result{}, err
}

// ChooseGender accepts the gender pick during registration or a gender edit.
// Works for both the keyboard button and typed text (routed via SubmitText).
func (s *Service) ChooseGender(ctx context.Context, userID string, raw string) (Result, error) {
	session, err := s.loadState(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if session.State != enums.StateEnterGender {
		return Result{}, ErrInvalidTransition
	}
	return s.applyGender(ctx, userID, session, raw)
}

func (s *Service) applyGender(ctx context.Context, userID string, session model.SessionState, raw string) (Result, error) {
	gender, err := rules.ValidateGender(raw)
	if err != nil {
		return Result{}, err
	}

	if session.Context.Editing != nil {
		if err := s.profiles.SetGender(ctx, userID, gender); err != nil {
			return Result{}, err
		}
		return s.finishEdit(ctx, userID)
	}

	draft := signupDraft(session)
	if draft == nil {
		return Result{}, ErrInvalidTransition
	}
	draft.Gender = gender

	next := model.SessionState{
		State:   enums.StateEnterBio,
		Context: model.SessionContext{Signup: draft},
	}
	if err := s.states.Set(ctx, userID, next); err != nil {
		return Result{}, err
	}
	return Result{State: next.State, Outcome: OutcomePromptBio}, nil
}

// ToggleCategory adds a category to the in-progress set. Picking the same
// category twice is reported but changes nothing. Works for both the keyboard
// button and typed text (routed via SubmitText).
func (s *Service) ToggleCategory(ctx context.Context, userID string, raw string) (Result, error) {
	session, err := s.loadState(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if session.State != enums.StateChooseCategories {
		return Result{}, ErrInvalidTransition
	}
	return s.applyCategory(ctx, userID, session, raw)
}

func (s *Service) applyCategory(ctx context.Context, userID string, session model.SessionState, raw string) (Result, error) {
	category, err := rules.ValidateCategory(raw)
	if err != nil {
		return Result{}, err
	}

	var chosen *[]enums.Category
	switch {
	case session.Context.Editing != nil:
		chosen = &session.Context.Editing.Categories
	case session.Context.Signup != nil:
		chosen = &session.Context.Signup.Categories
	default:
		return Result{}, ErrInvalidTransition
	}

	for _, existing := range *chosen {
		if existing == category {
			return Result{State: session.State, Outcome: OutcomeCategoryDuplicate}, nil
		}
	}
	*chosen = append(*chosen, category)

	if err := s.states.Set(ctx, userID, session); err != nil {
		return Result{}, err
	}
	return Result{State: session.State, Outcome: OutcomeCategoryAdded}, nil
}

// FinishCategories completes category selection: in registration it creates
// the profile from the accumulated draft, in editing it stores the new set.
func (s *Service) FinishCategories(ctx context.Context, userID string) (Result, error) {
	session, err := s.loadState(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if session.State != enums.StateChooseCategories {
		return Result{}, ErrInvalidTransition
	}

	if session.Context.Editing != nil {
		if len(session.Context.Editing.Categories) == 0 {
			return Result{}, rules.ValidationError{Reason: "Выбери хотя бы одну категорию"}
		}
		if err := s.profiles.SetCategories(ctx, userID, session.Context.Editing.Categories); err != nil {
			return Result{}, err
		}
		return s.finishEdit(ctx, userID)
	}

	draft := session.Context.Signup
	if draft == nil {
		return Result{}, ErrInvalidTransition
	}
	if len(draft.Categories) == 0 {
		return Result{}, rules.ValidationError{Reason: "Выбери хотя бы одну категорию"}
	}

	profile := model.Profile{
		UserID:     userID,
		Username:   draft.Username,
		Name:       draft.Name,
		Age:        draft.Age,
		Gender:     draft.Gender,
		Bio:        draft.Bio,
		Categories: draft.Categories,
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return Result{}, err
	}

	if err := s.states.Set(ctx, userID, mainMenuState()); err != nil {
		return Result{}, err
	}
	return Result{State: enums.StateMainMenu, Outcome: OutcomeProfileCreated, Profile: &profile}, nil
}

// ViewOwnProfile shows the user their own card without leaving the menu.
func (s *Service) ViewOwnProfile(ctx context.Context, userID string) (Result, error) {
	session, err := s.loadState(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if session.State != enums.StateMainMenu {
		return Result{}, ErrInvalidTransition
	}

	profile, err := s.requireProfile(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	return Result{State: enums.StateMainMenu, Outcome: OutcomeOwnProfile, Profile: profile}, nil
}

// EditField opens the single-field edit flow for one profile attribute.
func (s *Service) EditField(ctx context.Context, userID string, field enums.ProfileField) (Result, error) {
	session, err := s.loadState(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if session.State != enums.StateMainMenu {
		return Result{}, ErrInvalidTransition
	}
	if _, err := s.requireProfile(ctx, userID); err != nil {
		return Result{}, err
	}

	var next model.SessionState
	var outcome Outcome
	switch field {
	case enums.FieldName:
		next.State, outcome = enums.StateEnterName, OutcomePromptName
	case enums.FieldAge:
		next.State, outcome = enums.StateEnterAge, OutcomePromptAge
	case enums.FieldGender:
		next.State, outcome = enums.StateEnterGender, OutcomePromptGender
	case enums.FieldBio:
		next.State, outcome = enums.StateEnterBio, OutcomePromptBio
	case enums.FieldCategories:
		next.State, outcome = enums.StateChooseCategories, OutcomePromptCategories
	default:
		return Result{}, ErrValidation
	}
	next.Context = model.SessionContext{Editing: &model.EditingField{}}

	if err := s.states.Set(ctx, userID, next); err != nil {
		return Result{}, err
	}
	return Result{State: next.State, Outcome: outcome}, nil
}

// Browse opens category selection for profile viewing.
func (s *Service) Browse(ctx context.Context, userID string) (Result, error) {
	session, err := s.loadState(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if session.State != enums.StateMainMenu {
		return Result{}, ErrInvalidTransition
	}
	if _, err := s.requireProfile(ctx, userID); err != nil {
		return Result{}, err
	}

	next := model.SessionState{State: enums.StateChooseCategory}
	if err := s.states.Set(ctx, userID, next); err != nil {
		return Result{}, err
	}
	return Result{State: next.State, Outcome: OutcomeChooseCategory}, nil
}

// ChooseCategory picks the browsing category and shows the first candidate.
func (s *Service) ChooseCategory(ctx context.Context, userID string, raw string) (Result, error) {
	session, err := s.loadState(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if session.State != enums.StateChooseCategory {
		return Result{}, ErrInvalidTransition
	}

	category, err := rules.ValidateCategory(raw)
	if err != nil {
		return Result{}, err
	}
	return s.showCandidate(ctx, userID, category, "")
}

// Like records a like for the profile on screen and advances to the next
// candidate in the same category.
func (s *Service) Like(ctx context.Context, userID string) (Result, error) {
	_, viewing, err := s.loadViewing(ctx, userID)
	if err != nil {
		return Result{}, err
	}

	likeResult, err := s.matchmaker.RecordLike(ctx, userID, viewing.ProfileID)
	if err != nil && !errors.Is(err, matching.ErrVerdictConflict) {
		return Result{}, err
	}

	outcome := OutcomeLiked
	if likeResult.Matched {
		outcome = OutcomeMatched
	}
	return s.advanceAfterVerdict(ctx, userID, viewing.Category, outcome)
}

// Dislike records a dislike and advances.
func (s *Service) Dislike(ctx context.Context, userID string) (Result, error) {
	_, viewing, err := s.loadViewing(ctx, userID)
	if err != nil {
		return Result{}, err
	}

	if err := s.matchmaker.RecordDislike(ctx, userID, viewing.ProfileID); err != nil &&
		!errors.Is(err, matching.ErrVerdictConflict) {
		return Result{}, err
	}
	return s.advanceAfterVerdict(ctx, userID, viewing.Category, OutcomeCandidate)
}

// Skip advances without recording a verdict; the skipped profile may come
// back later.
func (s *Service) Skip(ctx context.Context, userID string) (Result, error) {
	_, viewing, err := s.loadViewing(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	return s.showCandidate(ctx, userID, viewing.Category, OutcomeCandidate)
}

// ViewMatches lists mutual likes. With at least one match the user moves to
// match selection; with none they stay in the menu.
func (s *Service) ViewMatches(ctx context.Context, userID string) (Result, error) {
	session, err := s.loadState(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if session.State != enums.StateMainMenu {
		return Result{}, ErrInvalidTransition
	}
	if _, err := s.requireProfile(ctx, userID); err != nil {
		return Result{}, err
	}

	matches, err := s.matchmaker.Matches(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if len(matches) == 0 {
		return Result{State: enums.StateMainMenu, Outcome: OutcomeMatches}, nil
	}

	next := model.SessionState{State: enums.StateChooseMatch}
	if err := s.states.Set(ctx, userID, next); err != nil {
		return Result{}, err
	}
	return Result{State: next.State, Outcome: OutcomeMatches, Matches: matches}, nil
}

// ViewNotifications shows the full feed and marks it read.
func (s *Service) ViewNotifications(ctx context.Context, userID string) (Result, error) {
	session, err := s.loadState(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if session.State != enums.StateMainMenu {
		return Result{}, ErrInvalidTransition
	}

	items, err := s.notifications.View(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	return Result{State: enums.StateMainMenu, Outcome: OutcomeNotifications, Notifications: items}, nil
}

// StartChat opens a chat with a matched partner from the menu or the match
// list. Chat gate denials pass through so the transport can explain them.
func (s *Service) StartChat(ctx context.Context, userID, partnerID string) (Result, error) {
	session, err := s.loadState(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if session.State != enums.StateMainMenu && session.State != enums.StateChooseMatch {
		return Result{}, ErrInvalidTransition
	}

	if err := s.chats.CanChat(ctx, userID, partnerID); err != nil {
		return Result{}, err
	}

	partner, err := s.profiles.Get(ctx, partnerID)
	if err != nil {
		return Result{}, err
	}
	history, err := s.chats.History(ctx, userID, partnerID, s.historyLimit)
	if err != nil {
		return Result{}, err
	}

	next := model.SessionState{
		State:   enums.StateInChat,
		Context: model.SessionContext{Chat: &model.ChatPartner{PartnerID: partnerID}},
	}
	if err := s.states.Set(ctx, userID, next); err != nil {
		return Result{}, err
	}
	return Result{
		State:   next.State,
		Outcome: OutcomeChatStarted,
		Partner: partner,
		History: history,
	}, nil
}

// EndChat blocks the current partner for good and returns to the menu.
func (s *Service) EndChat(ctx context.Context, userID string) (Result, error) {
	session, err := s.loadState(ctx, userID)
	if err != nil {
		return Result{}, err
	}
	if session.State != enums.StateInChat || session.Context.Chat == nil {
		return Result{}, ErrInvalidTransition
	}

	if err := s.chats.EndChat(ctx, userID, session.Context.Chat.PartnerID); err != nil {
		return Result{}, err
	}
	if err := s.states.Set(ctx, userID, mainMenuState()); err != nil {
		return Result{}, err
	}
	return Result{State: enums.StateMainMenu, Outcome: OutcomeChatEnded}, nil
}

// finishEdit closes a single-field edit: the field is already written, so the
// user just returns to the main menu.
func (s *Service) finishEdit(ctx context.Context, userID string) (Result, error) {
	if err := s.states.Set(ctx, userID, mainMenuState()); err != nil {
		return Result{}, err
	}
	return Result{State: enums.StateMainMenu, Outcome: OutcomeProfileUpdated}, nil
}

func (s *Service) loadState(ctx context.Context, userID string) (model.SessionState, error) {
	if strings.TrimSpace(userID) == "" {
		return model.SessionState{}, ErrValidation
	}

	session, found, err := s.states.Get(ctx, userID)
	if err != nil {
		return model.SessionState{}, fmt.Errorf("load session: %w", err)
	}
	if !found {
		return mainMenuState(), nil
	}
	return session, nil
}

func (s *Service) loadViewing(ctx context.Context, userID string) (model.SessionState, *model.ViewingProfile, error) {
	session, err := s.loadState(ctx, userID)
	if err != nil {
		return model.SessionState{}, nil, err
	}
	if session.State != enums.StateViewingProfile || session.Context.Viewing == nil {
		return model.SessionState{}, nil, ErrInvalidTransition
	}
	return session, session.Context.Viewing, nil
}

func (s *Service) advanceAfterVerdict(ctx context.Context, userID string, category enums.Category, outcome Outcome) (Result, error) {
	result, err := s.showCandidate(ctx, userID, category, outcome)
	if err != nil {
		return Result{}, err
	}
	// Keep the verdict feedback even when the category ran out.
	if result.Selected == nil && outcome != OutcomeCandidate {
		result.Outcome = outcome
	}
	return result, nil
}

// showCandidate draws the next random candidate. With no candidates left the
// user goes back to category selection.
func (s *Service) showCandidate(ctx context.Context, userID string, category enums.Category, outcome Outcome) (Result, error) {
	candidate, err := s.matchmaker.NextCandidate(ctx, userID, category)
	if err != nil {
		return Result{}, err
	}

	if candidate == nil {
		next := model.SessionState{State: enums.StateChooseCategory}
		if err := s.states.Set(ctx, userID, next); err != nil {
			return Result{}, err
		}
		return Result{State: next.State, Outcome: OutcomeNoCandidates}, nil
	}

	next := model.SessionState{
		State: enums.StateViewingProfile,
		Context: model.SessionContext{Viewing: &model.ViewingProfile{
			ProfileID: candidate.UserID,
			Category:  category,
		}},
	}
	if err := s.states.Set(ctx, userID, next); err != nil {
		return Result{}, err
	}

	if outcome == "" || outcome == OutcomeCandidate {
		outcome = OutcomeCandidate
	}
	return Result{State: next.State, Outcome: outcome, Selected: candidate}, nil
}

func (s *Service) toMainMenu(ctx context.Context, userID string) (Result, error) {
	if err := s.states.Set(ctx, userID, mainMenuState()); err != nil {
		return Result{}, err
	}

	unread, err := s.notifications.UnreadCount(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("count unread: %w", err)
	}
	return Result{State: enums.StateMainMenu, Outcome: OutcomeMainMenu, Unread: unread}, nil
}

func (s *Service) requireProfile(ctx context.Context, userID string) (*model.Profile, error) {
	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, profiles.ErrNotFound) {
			return nil, ErrNoProfile
		}
		return nil, err
	}
	return profile, nil
}

func signupDraft(session model.SessionState) *model.SignupDraft {
	return session.Context.Signup
}

func mainMenuState() model.SessionState {
	return model.SessionState{State: enums.StateMainMenu}
}
