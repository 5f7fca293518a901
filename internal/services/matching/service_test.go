package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/ivankudzin/datebot/internal/domain/enums"
	"github.com/ivankudzin/datebot/internal/domain/model"
	pgrepo "github.com/ivankudzin/datebot/internal/repo/postgres"
)

type stubInteractions struct {
	likeResult  pgrepo.LikeInsert
	likeErr     error
	likeCalls   int
	dislikeErr  error
	matchedIDs  []string
	matchedErr  error
	lastFrom    string
	lastTo      string
	dislikeFrom string
	dislikeTo   string
}

func (s *stubInteractions) AddLike(_ context.Context, fromID, toID string) (pgrepo.LikeInsert, error) {
	s.likeCalls++
	s.lastFrom, s.lastTo = fromID, toID
	return s.likeResult, s.likeErr
}

func (s *stubInteractions) AddDislike(_ context.Context, fromID, toID string) (bool, error) {
	s.dislikeFrom, s.dislikeTo = fromID, toID
	if s.dislikeErr != nil {
		return false, s.dislikeErr
	}
	return true, nil
}

func (s *stubInteractions) MatchedIDs(context.Context, string) ([]string, error) {
	return s.matchedIDs, s.matchedErr
}

type stubProfiles struct {
	byID      map[string]model.Profile
	candidate *model.Profile
}

func (s *stubProfiles) Get(_ context.Context, userID string) (*model.Profile, error) {
	p, ok := s.byID[userID]
	if !ok {
		return nil, pgrepo.ErrUserNotFound
	}
	return &p, nil
}

func (s *stubProfiles) RandomCandidate(context.Context, string, enums.Category) (*model.Profile, error) {
	return s.candidate, nil
}

type notifyCall struct {
	kind   string
	target string
	actor  string
}

type stubNotifier struct {
	calls []notifyCall
	err   error
}

func (s *stubNotifier) NotifyLike(_ context.Context, target, actor model.Profile) error {
	s.calls = append(s.calls, notifyCall{kind: "like", target: target.UserID, actor: actor.UserID})
	return s.err
}

func (s *stubNotifier) NotifyMatch(_ context.Context, a, b model.Profile) error {
	s.calls = append(s.calls, notifyCall{kind: "match", target: a.UserID, actor: b.UserID})
	return s.err
}

func newTestService(interactions *stubInteractions, profiles *stubProfiles, notifier *stubNotifier) *Service {
	return NewService(Dependencies{
		Interactions: interactions,
		Profiles:     profiles,
		Notifier:     notifier,
	})
}

func testProfiles(ids ...string) *stubProfiles {
	byID := make(map[string]model.Profile, len(ids))
	for _, id := range ids {
		byID[id] = model.Profile{UserID: id, Name: "user-" + id, Username: id + "_tg", Age: 25}
	}
	return &stubProfiles{byID: byID}
}

func TestRecordLikeNotifiesLikedUser(t *testing.T) {
	interactions := &stubInteractions{likeResult: pgrepo.LikeInsert{Inserted: true}}
	notifier := &stubNotifier{}
	svc := newTestService(interactions, testProfiles("a", "b"), notifier)

	res, err := svc.RecordLike(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("RecordLike: %v", err)
	}
	if res.Matched || res.Duplicate {
		t.Fatalf("unexpected result: %+v", res)
	}
	if len(notifier.calls) != 1 {
		t.Fatalf("expected 1 notification, got %d", len(notifier.calls))
	}
	call := notifier.calls[0]
	if call.kind != "like" || call.target != "b" || call.actor != "a" {
		t.Fatalf("unexpected notification: %+v", call)
	}
}

func TestRecordLikeMutualNotifiesBoth(t *testing.T) {
	interactions := &stubInteractions{likeResult: pgrepo.LikeInsert{Inserted: true, Mutual: true}}
	notifier := &stubNotifier{}
	svc := newTestService(interactions, testProfiles("a", "b"), notifier)

	res, err := svc.RecordLike(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("RecordLike: %v", err)
	}
	if !res.Matched {
		t.Fatal("expected Matched")
	}
	if len(notifier.calls) != 2 {
		t.Fatalf("expected like + match notifications, got %d", len(notifier.calls))
	}
	if notifier.calls[0].kind != "like" || notifier.calls[1].kind != "match" {
		t.Fatalf("unexpected call order: %+v", notifier.calls)
	}
}

func TestRecordLikeDuplicateIsSilent(t *testing.T) {
	interactions := &stubInteractions{likeResult: pgrepo.LikeInsert{Inserted: false, Mutual: true}}
	notifier := &stubNotifier{}
	svc := newTestService(interactions, testProfiles("a", "b"), notifier)

	res, err := svc.RecordLike(context.Background(), "a", "b")
	if err != nil {
		t.Fatalf("RecordLike: %v", err)
	}
	if !res.Duplicate {
		t.Fatal("expected Duplicate")
	}
	if !res.Matched {
		t.Fatal("repeat like should still report the standing match")
	}
	if len(notifier.calls) != 0 {
		t.Fatalf("repeat like must not notify, got %d calls", len(notifier.calls))
	}
}

func TestRecordLikeVerdictConflict(t *testing.T) {
	interactions := &stubInteractions{likeErr: pgrepo.ErrVerdictConflict}
	svc := newTestService(interactions, testProfiles("a", "b"), &stubNotifier{})

	_, err := svc.RecordLike(context.Background(), "a", "b")
	if !errors.Is(err, ErrVerdictConflict) {
		t.Fatalf("expected ErrVerdictConflict, got %v", err)
	}
}

func TestRecordLikeValidation(t *testing.T) {
	svc := newTestService(&stubInteractions{}, testProfiles(), &stubNotifier{})

	cases := []struct{ from, to string }{
		{"", "b"},
		{"a", ""},
		{"a", "a"},
	}
	for _, tc := range cases {
		if _, err := svc.RecordLike(context.Background(), tc.from, tc.to); !errors.Is(err, ErrValidation) {
			t.Fatalf("RecordLike(%q, %q): expected ErrValidation, got %v", tc.from, tc.to, err)
		}
	}
}

func TestRecordDislike(t *testing.T) {
	interactions := &stubInteractions{}
	svc := newTestService(interactions, testProfiles("a", "b"), &stubNotifier{})

	if err := svc.RecordDislike(context.Background(), "a", "b"); err != nil {
		t.Fatalf("RecordDislike: %v", err)
	}
	if interactions.dislikeFrom != "a" || interactions.dislikeTo != "b" {
		t.Fatalf("unexpected edge: %s -> %s", interactions.dislikeFrom, interactions.dislikeTo)
	}
}

func TestRecordDislikeVerdictConflict(t *testing.T) {
	interactions := &stubInteractions{dislikeErr: pgrepo.ErrVerdictConflict}
	svc := newTestService(interactions, testProfiles("a", "b"), &stubNotifier{})

	if err := svc.RecordDislike(context.Background(), "a", "b"); !errors.Is(err, ErrVerdictConflict) {
		t.Fatalf("expected ErrVerdictConflict, got %v", err)
	}
}

func TestNextCandidateNoneLeft(t *testing.T) {
	svc := newTestService(&stubInteractions{}, &stubProfiles{}, &stubNotifier{})

	profile, err := svc.NextCandidate(context.Background(), "a", enums.CategoryLove)
	if err != nil {
		t.Fatalf("NextCandidate: %v", err)
	}
	if profile != nil {
		t.Fatalf("expected nil candidate, got %+v", profile)
	}
}

func TestNextCandidateInvalidCategory(t *testing.T) {
	svc := newTestService(&stubInteractions{}, &stubProfiles{}, &stubNotifier{})

	if _, err := svc.NextCandidate(context.Background(), "a", enums.Category("unknown")); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

func TestMatchesSkipsGoneProfiles(t *testing.T) {
	interactions := &stubInteractions{matchedIDs: []string{"b", "gone", "c"}}
	svc := newTestService(interactions, testProfiles("b", "c"), &stubNotifier{})

	items, err := svc.Matches(context.Background(), "a")
	if err != nil {
		t.Fatalf("Matches: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(items))
	}
	if items[0].UserID != "b" || items[1].UserID != "c" {
		t.Fatalf("unexpected matches: %+v", items)
	}
}
