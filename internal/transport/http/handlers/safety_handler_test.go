package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/enums"
	"github.com/sonu9716/Dating-app-sub000/internal/domain/model"
	pgrepo "github.com/sonu9716/Dating-app-sub000/internal/repo/postgres"
	safetysvc "github.com/sonu9716/Dating-app-sub000/internal/services/safety"
	"github.com/sonu9716/Dating-app-sub000/internal/transport/http/dto"
)

type safetySessionStoreStub struct {
	sessions map[string]model.SafetySession
}

func (s *safetySessionStoreStub) Create(_ context.Context, session model.SafetySession) (model.SafetySession, error) {
	for _, existing := range s.sessions {
		if existing.OwnerID == session.OwnerID && existing.Status == enums.SessionStatusActive {
			return model.SafetySession{}, pgrepo.ErrActiveSessionExists
		}
	}
	s.sessions[session.ID] = session
	return session, nil
}

func (s *safetySessionStoreStub) GetByID(_ context.Context, sessionID string) (model.SafetySession, error) {
	session, ok := s.sessions[sessionID]
	if !ok {
		return model.SafetySession{}, pgrepo.ErrSessionNotFound
	}
	return session, nil
}

func (s *safetySessionStoreStub) GetActiveByOwner(_ context.Context, ownerID int64) (model.SafetySession, error) {
	for _, session := range s.sessions {
		if session.OwnerID == ownerID && session.Status == enums.SessionStatusActive {
			return session, nil
		}
	}
	return model.SafetySession{}, pgrepo.ErrSessionNotFound
}

func (s *safetySessionStoreStub) UpdateLastCheckIn(_ context.Context, sessionID string, at time.Time) (model.SafetySession, error) {
	session, ok := s.sessions[sessionID]
	if !ok || session.Status != enums.SessionStatusActive {
		return model.SafetySession{}, pgrepo.ErrSessionNotActive
	}
	session.LastCheckIn = at
	s.sessions[sessionID] = session
	return session, nil
}

func (s *safetySessionStoreStub) End(_ context.Context, sessionID string, at time.Time) (model.SafetySession, error) {
	session, ok := s.sessions[sessionID]
	if !ok || session.Status != enums.SessionStatusActive {
		return model.SafetySession{}, pgrepo.ErrSessionNotActive
	}
	session.Status = enums.SessionStatusEnded
	session.EndTime = &at
	s.sessions[sessionID] = session
	return session, nil
}

func (s *safetySessionStoreStub) ActivateEmergency(_ context.Context, sessionID string, at time.Time) (model.SafetySession, error) {
	session, ok := s.sessions[sessionID]
	if !ok || session.Status != enums.SessionStatusActive {
		return model.SafetySession{}, pgrepo.ErrSessionNotActive
	}
	session.EmergencyActivated = true
	if session.EmergencyActivatedAt == nil {
		session.EmergencyActivatedAt = &at
	}
	s.sessions[sessionID] = session
	return session, nil
}

type safetyMatchStoreStub struct {
	matches map[int64]model.Match
}

func (s *safetyMatchStoreStub) GetByID(_ context.Context, matchID int64) (model.Match, error) {
	match, ok := s.matches[matchID]
	if !ok {
		return model.Match{}, pgrepo.ErrMatchNotFound
	}
	return match, nil
}

type safetyEventStoreStub struct {
	events []model.EmergencyEvent
}

func (s *safetyEventStoreStub) Create(_ context.Context, event model.EmergencyEvent) (model.EmergencyEvent, error) {
	s.events = append(s.events, event)
	return event, nil
}

func (s *safetyEventStoreStub) ListBySession(_ context.Context, sessionID string) ([]model.EmergencyEvent, error) {
	var out []model.EmergencyEvent
	for _, event := range s.events {
		if event.SessionID == sessionID {
			out = append(out, event)
		}
	}
	return out, nil
}

func (s *safetyEventStoreStub) AcknowledgeForOwner(_ context.Context, eventID string, _ int64) (model.EmergencyEvent, error) {
	for i, event := range s.events {
		if event.ID == eventID {
			s.events[i].Status = enums.EmergencyStatusAcknowledged
			return s.events[i], nil
		}
	}
	return model.EmergencyEvent{}, pgrepo.ErrEventNotFound
}

type safetyContactStoreStub struct {
	contacts []model.EmergencyContact
}

func (s *safetyContactStoreStub) ListByOwner(_ context.Context, ownerID int64) ([]model.EmergencyContact, error) {
	var out []model.EmergencyContact
	for _, contact := range s.contacts {
		if contact.OwnerID == ownerID {
			out = append(out, contact)
		}
	}
	return out, nil
}

func newSafetyRouterForTest() (chi.Router, *safetySessionStoreStub) {
	sessions := &safetySessionStoreStub{sessions: make(map[string]model.SafetySession)}
	service := safetysvc.NewService(safetysvc.Dependencies{
		SessionStore: sessions,
		MatchStore:   &safetyMatchStoreStub{matches: map[int64]model.Match{42: {ID: 42, UserAID: 1, UserBID: 2}}},
		EventStore:   &safetyEventStoreStub{},
		ContactStore: &safetyContactStoreStub{},
	}, safetysvc.Config{})

	handler := NewSafetyHandler(service)

	router := chi.NewRouter()
	router.Post("/v1/safety/sessions", handler.Start)
	router.Get("/v1/safety/sessions/active", handler.Active)
	router.Post("/v1/safety/sessions/{sessionID}/checkin", handler.CheckIn)
	router.Post("/v1/safety/sessions/{sessionID}/end", handler.End)
	router.Post("/v1/safety/sessions/{sessionID}/emergency", handler.TriggerEmergency)
	router.Get("/v1/safety/sessions/{sessionID}/events", handler.Events)
	router.Post("/v1/safety/events/{eventID}/acknowledge", handler.AcknowledgeEvent)

	return router, sessions
}

func startTestSession(t *testing.T, router chi.Router) dto.SessionResponse {
	t.Helper()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/v1/safety/sessions", `{"match_id":42,"location":"Cafe X","duration_minutes":120}`, 1))
	if rec.Code != http.StatusCreated {
		t.Fatalf("start session: %d %s", rec.Code, rec.Body.String())
	}

	var session dto.SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &session); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	return session
}

func TestSafetyHandlerStartSession(t *testing.T) {
	router, _ := newSafetyRouterForTest()

	session := startTestSession(t, router)
	if session.Status != "ACTIVE" {
		t.Fatalf("expected ACTIVE, got %s", session.Status)
	}
	if session.PlannedDurationMinutes != 120 {
		t.Fatalf("expected duration 120, got %d", session.PlannedDurationMinutes)
	}
}

func TestSafetyHandlerSecondStartConflicts(t *testing.T) {
	router, _ := newSafetyRouterForTest()
	startTestSession(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/v1/safety/sessions", `{"match_id":42,"location":"Bar Y"}`, 1))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestSafetyHandlerActive(t *testing.T) {
	router, _ := newSafetyRouterForTest()

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/v1/safety/sessions/active", "", 1))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 without session, got %d", rec.Code)
	}

	started := startTestSession(t, router)

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodGet, "/v1/safety/sessions/active", "", 1))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var active dto.SessionResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &active); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if active.ID != started.ID {
		t.Fatalf("expected session %s, got %s", started.ID, active.ID)
	}
}

func TestSafetyHandlerCheckInAfterEnd(t *testing.T) {
	router, _ := newSafetyRouterForTest()
	session := startTestSession(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/v1/safety/sessions/"+session.ID+"/end", "", 1))
	if rec.Code != http.StatusOK {
		t.Fatalf("end: %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/v1/safety/sessions/"+session.ID+"/checkin", "", 1))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for check-in on ended session, got %d", rec.Code)
	}
}

func TestSafetyHandlerTriggerEmergency(t *testing.T) {
	router, sessions := newSafetyRouterForTest()
	session := startTestSession(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/v1/safety/sessions/"+session.ID+"/emergency", `{"last_known_location":"Cafe X back exit","contact_ids":[]}`, 1))
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d %s", rec.Code, rec.Body.String())
	}

	var event dto.EmergencyEventResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &event); err != nil {
		t.Fatalf("decode event: %v", err)
	}
	if event.Status != "PENDING" {
		t.Fatalf("expected PENDING event, got %s", event.Status)
	}

	stored := sessions.sessions[session.ID]
	if !stored.EmergencyActivated {
		t.Fatalf("expected the emergency flag on the stored session")
	}
}

func TestSafetyHandlerForeignSessionRejected(t *testing.T) {
	router, _ := newSafetyRouterForTest()
	session := startTestSession(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/v1/safety/sessions/"+session.ID+"/checkin", "", 2))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for foreign session, got %d", rec.Code)
	}
}

func TestSafetyHandlerAcknowledge(t *testing.T) {
	router, _ := newSafetyRouterForTest()
	session := startTestSession(t, router)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/v1/safety/sessions/"+session.ID+"/emergency", "", 1))
	if rec.Code != http.StatusCreated {
		t.Fatalf("trigger: %d", rec.Code)
	}
	var event dto.EmergencyEventResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &event); err != nil {
		t.Fatalf("decode event: %v", err)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, authedRequest(http.MethodPost, "/v1/safety/events/"+event.ID+"/acknowledge", "", 1))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var acked dto.EmergencyEventResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &acked); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if acked.Status != "ACKNOWLEDGED" {
		t.Fatalf("expected ACKNOWLEDGED, got %s", acked.Status)
	}
}
