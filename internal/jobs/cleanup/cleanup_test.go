package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"
)

type stubPurger struct {
	cutoffs []time.Time
	rows    int64
	err     error
}

func (s *stubPurger) PurgeRead(_ context.Context, before time.Time) (int64, error) {
	s.cutoffs = append(s.cutoffs, before)
	return s.rows, s.err
}

func TestRunUsesRetentionCutoff(t *testing.T) {
	purger := &stubPurger{rows: 3}
	job := New(purger, 7*24*time.Hour, nil)
	fixed := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return fixed }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(purger.cutoffs) != 1 {
		t.Fatalf("expected 1 purge call, got %d", len(purger.cutoffs))
	}
	want := fixed.Add(-7 * 24 * time.Hour)
	if !purger.cutoffs[0].Equal(want) {
		t.Fatalf("cutoff = %s, want %s", purger.cutoffs[0], want)
	}
}

func TestRunDefaultsRetention(t *testing.T) {
	purger := &stubPurger{}
	job := New(purger, 0, nil)
	fixed := time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return fixed }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	want := fixed.Add(-30 * 24 * time.Hour)
	if !purger.cutoffs[0].Equal(want) {
		t.Fatalf("cutoff = %s, want %s", purger.cutoffs[0], want)
	}
}

func TestRunPropagatesError(t *testing.T) {
	purger := &stubPurger{err: errors.New("boom")}
	job := New(purger, time.Hour, nil)

	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRunWithoutPurgerIsNoop(t *testing.T) {
	job := New(nil, time.Hour, nil)

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
}
