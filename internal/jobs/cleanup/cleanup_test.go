package cleanup

import (
	"context"
	"errors"
	"testing"
	"time"
)

type sessionCleanerStub struct {
	cutoff  time.Time
	deleted int64
	err     error
}

func (s *sessionCleanerStub) DeleteEndedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.cutoff = cutoff
	return s.deleted, s.err
}

type eventCleanerStub struct {
	cutoff  time.Time
	deleted int64
	err     error
}

func (s *eventCleanerStub) DeleteAcknowledgedBefore(_ context.Context, cutoff time.Time) (int64, error) {
	s.cutoff = cutoff
	return s.deleted, s.err
}

func TestRunUsesRetentionCutoffs(t *testing.T) {
	sessions := &sessionCleanerStub{deleted: 3}
	events := &eventCleanerStub{deleted: 5}

	job := New(sessions, events, 90*24*time.Hour, 365*24*time.Hour, nil)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	wantSessionCutoff := now.Add(-90 * 24 * time.Hour)
	if !sessions.cutoff.Equal(wantSessionCutoff) {
		t.Fatalf("session cutoff = %v, want %v", sessions.cutoff, wantSessionCutoff)
	}
	wantEventCutoff := now.Add(-365 * 24 * time.Hour)
	if !events.cutoff.Equal(wantEventCutoff) {
		t.Fatalf("event cutoff = %v, want %v", events.cutoff, wantEventCutoff)
	}
}

func TestRunDefaultsRetention(t *testing.T) {
	sessions := &sessionCleanerStub{}
	job := New(sessions, nil, 0, 0, nil)
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	job.now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !sessions.cutoff.Equal(now.Add(-90 * 24 * time.Hour)) {
		t.Fatalf("expected 90 day default, got cutoff %v", sessions.cutoff)
	}
}

func TestRunPropagatesErrors(t *testing.T) {
	events := &eventCleanerStub{err: errors.New("db down")}
	job := New(&sessionCleanerStub{}, events, 0, 0, nil)

	if err := job.Run(context.Background()); err == nil {
		t.Fatalf("expected error from event cleanup")
	}
}
