package contacts

import (
	"context"
	"errors"
	"strings"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/enums"
	"github.com/sonu9716/Dating-app-sub000/internal/domain/model"
	"github.com/sonu9716/Dating-app-sub000/internal/pkg/validate"
	pgrepo "github.com/sonu9716/Dating-app-sub000/internal/repo/postgres"
)

var (
	ErrValidation           = errors.New("validation error")
	ErrContactLimitExceeded = errors.New("contact limit exceeded")
)

const maxNameLen = 100

type ContactStore interface {
	Upsert(ctx context.Context, contact model.EmergencyContact) (model.EmergencyContact, error)
	Delete(ctx context.Context, ownerID, contactID int64) (bool, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]model.EmergencyContact, error)
}

type Service struct {
	contacts ContactStore
}

func NewService(contacts ContactStore) *Service {
	return &Service{contacts: contacts}
}

type AddInput struct {
	Name         string
	Phone        string
	Relationship string
	LinkedUserID *int64
}

// Add registers or updates an emergency contact. The phone number is the
// identity: re-adding a phone the owner already registered updates that
// row instead of consuming a slot.
func (s *Service) Add(ctx context.Context, ownerID int64, in AddInput) (model.EmergencyContact, error) {
	if ownerID <= 0 {
		return model.EmergencyContact{}, ErrValidation
	}
	if !validate.Required(in.Name) || !validate.MaxLen(in.Name, maxNameLen) {
		return model.EmergencyContact{}, ErrValidation
	}
	if !validate.Phone(in.Phone) {
		return model.EmergencyContact{}, ErrValidation
	}
	relationship, ok := parseRelationship(in.Relationship)
	if !ok {
		return model.EmergencyContact{}, ErrValidation
	}
	if s.contacts == nil {
		return model.EmergencyContact{}, errors.New("contact store is nil")
	}

	contact, err := s.contacts.Upsert(ctx, model.EmergencyContact{
		OwnerID:      ownerID,
		Name:         strings.TrimSpace(in.Name),
		Phone:        strings.TrimSpace(in.Phone),
		Relationship: relationship,
		LinkedUserID: in.LinkedUserID,
	})
	if err != nil {
		if errors.Is(err, pgrepo.ErrContactLimitExceeded) {
			return model.EmergencyContact{}, ErrContactLimitExceeded
		}
		return model.EmergencyContact{}, err
	}

	return contact, nil
}

// Remove deletes an owned contact. Removing an unknown id is a no-op:
// removed reports whether a row actually went away.
func (s *Service) Remove(ctx context.Context, ownerID, contactID int64) (bool, error) {
	if ownerID <= 0 || contactID <= 0 {
		return false, ErrValidation
	}
	if s.contacts == nil {
		return false, errors.New("contact store is nil")
	}
	return s.contacts.Delete(ctx, ownerID, contactID)
}

func (s *Service) List(ctx context.Context, ownerID int64) ([]model.EmergencyContact, error) {
	if ownerID <= 0 {
		return nil, ErrValidation
	}
	if s.contacts == nil {
		return nil, errors.New("contact store is nil")
	}

	contacts, err := s.contacts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if contacts == nil {
		contacts = []model.EmergencyContact{}
	}
	return contacts, nil
}

func parseRelationship(raw string) (enums.ContactRelationship, bool) {
	switch enums.ContactRelationship(strings.ToLower(strings.TrimSpace(raw))) {
	case enums.ContactRelationshipFriend:
		return enums.ContactRelationshipFriend, true
	case enums.ContactRelationshipFamily:
		return enums.ContactRelationshipFamily, true
	case enums.ContactRelationshipPartner:
		return enums.ContactRelationshipPartner, true
	case enums.ContactRelationshipOther:
		return enums.ContactRelationshipOther, true
	default:
		return "", false
	}
}
