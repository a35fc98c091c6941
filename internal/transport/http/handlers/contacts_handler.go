package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/model"
	authsvc "github.com/sonu9716/Dating-app-sub000/internal/services/auth"
	contactssvc "github.com/sonu9716/Dating-app-sub000/internal/services/contacts"
	"github.com/sonu9716/Dating-app-sub000/internal/transport/http/dto"
	httperrors "github.com/sonu9716/Dating-app-sub000/internal/transport/http/errors"
)

type ContactsHandler struct {
	service *contactssvc.Service
}

func NewContactsHandler(service *contactssvc.Service) *ContactsHandler {
	return &ContactsHandler{service: service}
}

func (h *ContactsHandler) Add(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "CONTACTS_SERVICE_UNAVAILABLE", "contacts service is unavailable")
		return
	}

	var req dto.AddContactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid request body")
		return
	}

	contact, err := h.service.Add(r.Context(), identity.UserID, contactssvc.AddInput{
		Name:         req.Name,
		Phone:        req.Phone,
		Relationship: req.Relationship,
		LinkedUserID: req.LinkedUserID,
	})
	if err != nil {
		switch {
		case errors.Is(err, contactssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid contact")
		case errors.Is(err, contactssvc.ErrContactLimitExceeded):
			writeConflict(w, "CONTACT_LIMIT_EXCEEDED", "emergency contact limit reached")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to save contact")
		}
		return
	}

	httperrors.Write(w, http.StatusCreated, contactResponse(contact))
}

func (h *ContactsHandler) Remove(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "CONTACTS_SERVICE_UNAVAILABLE", "contacts service is unavailable")
		return
	}

	contactID, err := strconv.ParseInt(chi.URLParam(r, "contactID"), 10, 64)
	if err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "invalid contact id")
		return
	}

	removed, err := h.service.Remove(r.Context(), identity.UserID, contactID)
	if err != nil {
		switch {
		case errors.Is(err, contactssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid contact id")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to remove contact")
		}
		return
	}

	httperrors.Write(w, http.StatusOK, struct {
		OK      bool `json:"ok"`
		Removed bool `json:"removed"`
	}{
		OK:      true,
		Removed: removed,
	})
}

func (h *ContactsHandler) List(w http.ResponseWriter, r *http.Request) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return
	}
	if h.service == nil {
		writeInternal(w, "CONTACTS_SERVICE_UNAVAILABLE", "contacts service is unavailable")
		return
	}

	contacts, err := h.service.List(r.Context(), identity.UserID)
	if err != nil {
		switch {
		case errors.Is(err, contactssvc.ErrValidation):
			writeBadRequest(w, "VALIDATION_ERROR", "invalid contacts request")
		default:
			writeInternal(w, "INTERNAL_ERROR", "failed to load contacts")
		}
		return
	}

	items := make([]dto.ContactResponse, 0, len(contacts))
	for _, contact := range contacts {
		items = append(items, contactResponse(contact))
	}

	httperrors.Write(w, http.StatusOK, dto.ContactsResponse{Items: items})
}

func contactResponse(contact model.EmergencyContact) dto.ContactResponse {
	return dto.ContactResponse{
		ID:           contact.ID,
		Name:         contact.Name,
		Phone:        contact.Phone,
		Relationship: string(contact.Relationship),
		LinkedUserID: contact.LinkedUserID,
		Verified:     contact.Verified,
		CreatedAt:    contact.CreatedAt,
	}
}
