package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/model"
	"github.com/sonu9716/Dating-app-sub000/internal/domain/rules"
	matchessvc "github.com/sonu9716/Dating-app-sub000/internal/services/matches"
	"github.com/sonu9716/Dating-app-sub000/internal/transport/http/dto"
)

type listMatchStoreStub struct {
	matches []model.Match
}

func (s *listMatchStoreStub) ListForUser(_ context.Context, userID int64, limit int) ([]model.Match, error) {
	var out []model.Match
	for _, match := range s.matches {
		if match.UserAID == userID || match.UserBID == userID {
			out = append(out, match)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (s *listMatchStoreStub) DeleteByUsers(_ context.Context, userID, targetID int64) (bool, error) {
	a, b := rules.CanonicalPair(userID, targetID)
	for i, match := range s.matches {
		if match.UserAID == a && match.UserBID == b {
			s.matches = append(s.matches[:i], s.matches[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func TestMatchesHandlerList(t *testing.T) {
	store := &listMatchStoreStub{matches: []model.Match{
		{ID: 1, UserAID: 1, UserBID: 5, CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)},
		{ID: 2, UserAID: 3, UserBID: 4, CreatedAt: time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)},
	}}
	handler := NewMatchesHandler(matchessvc.NewService(store))

	rec := httptest.NewRecorder()
	handler.Handle(rec, authedRequest(http.MethodGet, "/v1/matches", "", 1))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.MatchesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Items) != 1 {
		t.Fatalf("expected 1 match for user 1, got %d", len(resp.Items))
	}
	if resp.Items[0].TargetUserID != 5 {
		t.Fatalf("expected counterpart 5, got %d", resp.Items[0].TargetUserID)
	}
}

func TestMatchesHandlerUnmatch(t *testing.T) {
	store := &listMatchStoreStub{matches: []model.Match{
		{ID: 1, UserAID: 1, UserBID: 5},
	}}
	handler := NewMatchesHandler(matchessvc.NewService(store))

	rec := httptest.NewRecorder()
	handler.Unmatch(rec, authedRequest(http.MethodPost, "/v1/matches/unmatch", `{"target_id":5}`, 1))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		OK      bool `json:"ok"`
		Deleted bool `json:"deleted"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !resp.Deleted {
		t.Fatalf("expected deleted=true")
	}

	rec = httptest.NewRecorder()
	handler.Unmatch(rec, authedRequest(http.MethodPost, "/v1/matches/unmatch", `{"target_id":5}`, 1))
	if rec.Code != http.StatusOK {
		t.Fatalf("second unmatch must still be 200, got %d", rec.Code)
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Deleted {
		t.Fatalf("second unmatch must report deleted=false")
	}
}

func TestMatchesHandlerRequiresAuth(t *testing.T) {
	handler := NewMatchesHandler(matchessvc.NewService(&listMatchStoreStub{}))

	rec := httptest.NewRecorder()
	handler.Handle(rec, httptest.NewRequest(http.MethodGet, "/v1/matches", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
