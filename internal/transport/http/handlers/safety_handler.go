package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/model"
	authsvc "github.com/sonu9716/Dating-app-sub000/internal/services/auth"
	safetysvc "github.com/sonu9716/Dating-app-sub000/internal/services/safety"
	"github.com/sonu9716/Dating-app-sub000/internal/transport/http/dto"
	httperrors "github.com/sonu9716/Dating-app-sub000/internal/transport/http/errors"
)

type SafetyHandler struct {
	service *safetysvc.Service
	now     func() time.Time
}

func NewSafetyHandler(service *safetysvc.Service) *SafetyHandler {
	return &SafetyHandler{service: service, now: time.Now}
}

func (h *SafetyHandler) Start(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "SAFETY_SERVICE_UNAVAILABLE", "safety service is unavailable")
		return
	}

	var req dto.StartSessionRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	session, err := h.service.Start(r.Context(), identity.UserID, req.MatchID, req.Location, req.DurationMinutes)
	if err != nil {
		switch {
		case errors.Is(err, safetysvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid session request")
		case errors.Is(err, safetysvc.ErrUnauthorized):
			writeUnauthorized(w, "UNAUTHORIZED", "match does not belong to the caller")
		case errors.Is(err, safetysvc.ErrSessionAlreadyActive):
			writeConflict(w, "SESSION_ALREADY_ACTIVE", "an active session already exists")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to start session")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, h.sessionResponse(session))
}

func (h *SafetyHandler) Active(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "SAFETY_SERVICE_UNAVAILABLE", "safety service is unavailable")
		return
	}

	session, err := h.service.Active(r.Context(), identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, safetysvc.ErrSessionNotFound):
			writeNotFound(w, "SESSION_NOT_FOUND", "no active session")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load active session")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, h.sessionResponse(session))
}

func (h *SafetyHandler) CheckIn(w http.ResponseWriter, r *http.Request) {
	h.sessionAction(w, r, h.service.CheckIn)
}

func (h *SafetyHandler) End(w http.ResponseWriter, r *http.Request) {
	h.sessionAction(w, r, h.service.End)
}

func (h *SafetyHandler) sessionAction(w http.ResponseWriter, r *http.Request, action func(ctx context.Context, sessionID string, ownerID int64) (model.SafetySession, error)) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "SAFETY_SERVICE_UNAVAILABLE", "safety service is unavailable")
		return
	}

	session, err := action(r.Context(), chi.URLParam(r, "sessionID"), identity.UserID)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, h.sessionResponse(session))
}

func (h *SafetyHandler) TriggerEmergency(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "SAFETY_SERVICE_UNAVAILABLE", "safety service is unavailable")
		return
	}

	var req dto.TriggerEmergencyRequest
	if r.ContentLength > 0 {
		if err := decodeJSON(r, &req); err != nil {
			writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
			return
		}
	}

	event, err := h.service.TriggerEmergency(r.Context(), chi.URLParam(r, "sessionID"), identity.UserID, req.LastKnownLocation, req.ContactIDs)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, eventResponse(event))
}

func (h *SafetyHandler) Events(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "SAFETY_SERVICE_UNAVAILABLE", "safety service is unavailable")
		return
	}

	events, err := h.service.Events(r.Context(), chi.URLParam(r, "sessionID"), identity.UserID)
	if err != nil {
		h.writeSessionError(w, err)
		return
	}

	items := make([]dto.EmergencyEventResponse, 0, len(events))
	for _, event := range events {
		items = append(items, eventResponse(event))
	}

	httperrors.Write(w, http.StatusOK, dto.EmergencyEventsResponse{Items: items})
}

func (h *SafetyHandler) AcknowledgeEvent(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "SAFETY_SERVICE_UNAVAILABLE", "safety service is unavailable")
		return
	}

	event, err := h.service.AcknowledgeEvent(r.Context(), chi.URLParam(r, "eventID"), identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, safetysvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid acknowledge request")
		case errors.Is(err, safetysvc.ErrEventNotFound):
			writeNotFound(w, "EVENT_NOT_FOUND", "emergency event not found")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to acknowledge event")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, eventResponse(event))
}

func (h *SafetyHandler) writeSessionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, safetysvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "invalid session request")
	case errors.Is(err, safetysvc.ErrUnauthorized):
		writeUnauthorized(w, "UNAUTHORIZED", "session does not belong to the caller")
	case errors.Is(err, safetysvc.ErrSessionNotFound):
		writeNotFound(w, "SESSION_NOT_FOUND", "session not found")
	case errors.Is(err, safetysvc.ErrSessionNotActive):
		writeConflict(w, "SESSION_NOT_ACTIVE", "session is not active")
	default:
		writeInternal(w, "INTERNAL_ERROR", "failed to process session request")
	}
}

func (h *SafetyHandler) sessionResponse(session model.SafetySession) dto.SessionResponse {
	asOf := h.now()
	if session.EndTime != nil {
		asOf = *session.EndTime
	}
	return dto.SessionResponse{
		ID:                      session.ID,
		MatchID:                 session.MatchID,
		Location:                session.Location,
		Status:                  string(session.Status),
		StartTime:               session.StartTime,
		PlannedDurationMinutes:  session.PlannedDurationMinutes,
		CheckInFrequencyMinutes: session.CheckInFrequencyMinutes,
		LastCheckIn:             session.LastCheckIn,
		ElapsedSeconds:          session.ElapsedSeconds(asOf),
		EndTime:                 session.EndTime,
		EmergencyActivated:      session.EmergencyActivated,
		EmergencyActivatedAt:    session.EmergencyActivatedAt,
	}
}

func eventResponse(event model.EmergencyEvent) dto.EmergencyEventResponse {
	return dto.EmergencyEventResponse{
		ID:                 event.ID,
		SessionID:          event.SessionID,
		TriggeredAt:        event.TriggeredAt,
		LastKnownLocation:  event.LastKnownLocation,
		Status:             string(event.Status),
		NotifiedContactIDs: event.NotifiedContactIDs,
	}
}
