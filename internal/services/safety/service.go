package safety

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/enums"
	"github.com/sonu9716/Dating-app-sub000/internal/domain/model"
	pgrepo "github.com/sonu9716/Dating-app-sub000/internal/repo/postgres"
)

var (
	ErrValidation           = errors.New("validation error")
	ErrUnauthorized         = errors.New("unauthorized")
	ErrSessionAlreadyActive = errors.New("session already active")
	ErrSessionNotActive     = errors.New("session not active")
	ErrSessionNotFound      = errors.New("session not found")
	ErrEventNotFound        = errors.New("emergency event not found")
)

type SessionStore interface {
	Create(ctx context.Context, s model.SafetySession) (model.SafetySession, error)
	GetByID(ctx context.Context, sessionID string) (model.SafetySession, error)
	GetActiveByOwner(ctx context.Context, ownerID int64) (model.SafetySession, error)
	UpdateLastCheckIn(ctx context.Context, sessionID string, at time.Time) (model.SafetySession, error)
	End(ctx context.Context, sessionID string, at time.Time) (model.SafetySession, error)
	ActivateEmergency(ctx context.Context, sessionID string, at time.Time) (model.SafetySession, error)
}

type MatchStore interface {
	GetByID(ctx context.Context, matchID int64) (model.Match, error)
}

type EventStore interface {
	Create(ctx context.Context, event model.EmergencyEvent) (model.EmergencyEvent, error)
	ListBySession(ctx context.Context, sessionID string) ([]model.EmergencyEvent, error)
	AcknowledgeForOwner(ctx context.Context, eventID string, ownerID int64) (model.EmergencyEvent, error)
}

type ContactStore interface {
	ListByOwner(ctx context.Context, ownerID int64) ([]model.EmergencyContact, error)
}

// Notifier is the boundary to the external SMS/push collaborator. Delivery
// is out of this core's hands: failures are logged and never retried, and
// they never fail the trigger call.
type Notifier interface {
	EmergencyTriggered(ctx context.Context, event model.EmergencyEvent, contacts []model.EmergencyContact) error
}

type Config struct {
	DefaultCheckInFrequencyMinutes int
	DefaultPlannedDurationMinutes  int
	MaxPlannedDurationMinutes      int
}

type Service struct {
	sessions SessionStore
	matches  MatchStore
	events   EventStore
	contacts ContactStore
	notifier Notifier
	cfg      Config
	now      func() time.Time
	logger   *zap.Logger
}

type Dependencies struct {
	SessionStore SessionStore
	MatchStore   MatchStore
	EventStore   EventStore
	ContactStore ContactStore
	Notifier     Notifier
	Logger       *zap.Logger
}

func NewService(deps Dependencies, cfg Config) *Service {
	if cfg.DefaultCheckInFrequencyMinutes <= 0 {
		cfg.DefaultCheckInFrequencyMinutes = 15
	}
	if cfg.DefaultPlannedDurationMinutes <= 0 {
		cfg.DefaultPlannedDurationMinutes = 60
	}
	if cfg.MaxPlannedDurationMinutes <= 0 {
		cfg.MaxPlannedDurationMinutes = 12 * 60
	}

	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Service{
		sessions: deps.SessionStore,
		matches:  deps.MatchStore,
		events:   deps.EventStore,
		contacts: deps.ContactStore,
		notifier: deps.Notifier,
		cfg:      cfg,
		now:      time.Now,
		logger:   logger,
	}
}

// Start opens a new ACTIVE session for the owner. The match must belong to
// the owner, and only one ACTIVE session per owner may exist.
func (s *Service) Start(ctx context.Context, ownerID, matchID int64, location string, durationMinutes int) (model.SafetySession, error) {
	if ownerID <= 0 || matchID <= 0 || strings.TrimSpace(location) == "" {
		return model.SafetySession{}, ErrValidation
	}
	if durationMinutes <= 0 {
		durationMinutes = s.cfg.DefaultPlannedDurationMinutes
	}
	if durationMinutes > s.cfg.MaxPlannedDurationMinutes {
		return model.SafetySession{}, ErrValidation
	}
	if s.sessions == nil || s.matches == nil {
		return model.SafetySession{}, fmt.Errorf("safety dependencies are not configured")
	}

	match, err := s.matches.GetByID(ctx, matchID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrMatchNotFound) {
			return model.SafetySession{}, ErrUnauthorized
		}
		return model.SafetySession{}, err
	}
	if match.UserAID != ownerID && match.UserBID != ownerID {
		return model.SafetySession{}, ErrUnauthorized
	}

	now := s.now().UTC()
	session := model.SafetySession{
		ID:                      uuid.New().String(),
		OwnerID:                 ownerID,
		MatchID:                 matchID,
		Location:                strings.TrimSpace(location),
		StartTime:               now,
		PlannedDurationMinutes:  durationMinutes,
		CheckInFrequencyMinutes: s.cfg.DefaultCheckInFrequencyMinutes,
		Status:                  enums.SessionStatusActive,
		LastCheckIn:             now,
	}

	created, err := s.sessions.Create(ctx, session)
	if err != nil {
		if errors.Is(err, pgrepo.ErrActiveSessionExists) {
			return model.SafetySession{}, ErrSessionAlreadyActive
		}
		return model.SafetySession{}, err
	}

	return created, nil
}

// CheckIn advances last_check_in on an ACTIVE session. It never touches the
// emergency flag.
func (s *Service) CheckIn(ctx context.Context, sessionID string, ownerID int64) (model.SafetySession, error) {
	session, err := s.getOwned(ctx, sessionID, ownerID)
	if err != nil {
		return model.SafetySession{}, err
	}
	if session.Status != enums.SessionStatusActive {
		return model.SafetySession{}, ErrSessionNotActive
	}

	updated, err := s.sessions.UpdateLastCheckIn(ctx, sessionID, s.now().UTC())
	if err != nil {
		if errors.Is(err, pgrepo.ErrSessionNotActive) {
			return model.SafetySession{}, ErrSessionNotActive
		}
		return model.SafetySession{}, err
	}

	return updated, nil
}

// End transitions ACTIVE -> ENDED. Ending an already-ENDED session is a
// no-op success: the client may race its own timeout against a manual end.
func (s *Service) End(ctx context.Context, sessionID string, ownerID int64) (model.SafetySession, error) {
	session, err := s.getOwned(ctx, sessionID, ownerID)
	if err != nil {
		return model.SafetySession{}, err
	}
	if session.Status == enums.SessionStatusEnded {
		return session, nil
	}

	ended, err := s.sessions.End(ctx, sessionID, s.now().UTC())
	if err != nil {
		if errors.Is(err, pgrepo.ErrSessionNotActive) {
			// lost a race against another end; the stored row wins
			return s.getOwned(ctx, sessionID, ownerID)
		}
		return model.SafetySession{}, err
	}

	return ended, nil
}

// TriggerEmergency flips the one-way emergency flag and appends a PENDING
// event. Every call appends: repeated triggers model an escalating
// situation and are deliberately not deduplicated.
func (s *Service) TriggerEmergency(ctx context.Context, sessionID string, ownerID int64, lastKnownLocation string, contactIDs []int64) (model.EmergencyEvent, error) {
	if s.events == nil {
		return model.EmergencyEvent{}, fmt.Errorf("safety dependencies are not configured")
	}

	session, err := s.getOwned(ctx, sessionID, ownerID)
	if err != nil {
		return model.EmergencyEvent{}, err
	}
	if session.Status != enums.SessionStatusActive {
		return model.EmergencyEvent{}, ErrSessionNotActive
	}

	contacts, err := s.ownedContacts(ctx, ownerID, contactIDs)
	if err != nil {
		return model.EmergencyEvent{}, err
	}
	notifiedIDs := make([]int64, 0, len(contacts))
	for _, contact := range contacts {
		notifiedIDs = append(notifiedIDs, contact.ID)
	}

	now := s.now().UTC()
	// The emergency flag is raised before the event row is written. If the
	// event insert fails the session stays flagged with no event, which is
	// the safe side to land on; a retried trigger converges because
	// activation keeps the first timestamp and each trigger appends its
	// own event.
	if _, err := s.sessions.ActivateEmergency(ctx, sessionID, now); err != nil {
		if errors.Is(err, pgrepo.ErrSessionNotActive) {
			return model.EmergencyEvent{}, ErrSessionNotActive
		}
		return model.EmergencyEvent{}, err
	}

	location := strings.TrimSpace(lastKnownLocation)
	if location == "" {
		location = session.Location
	}

	event, err := s.events.Create(ctx, model.EmergencyEvent{
		ID:                 uuid.New().String(),
		SessionID:          sessionID,
		TriggeredAt:        now,
		LastKnownLocation:  location,
		Status:             enums.EmergencyStatusPending,
		NotifiedContactIDs: notifiedIDs,
	})
	if err != nil {
		return model.EmergencyEvent{}, err
	}

	if s.notifier != nil {
		if err := s.notifier.EmergencyTriggered(ctx, event, contacts); err != nil {
			s.logger.Warn("emergency notification handoff failed",
				zap.String("event_id", event.ID),
				zap.Error(err),
			)
		}
	}

	return event, nil
}

// Active returns the owner's current ACTIVE session.
func (s *Service) Active(ctx context.Context, ownerID int64) (model.SafetySession, error) {
	if ownerID <= 0 {
		return model.SafetySession{}, ErrValidation
	}
	if s.sessions == nil {
		return model.SafetySession{}, fmt.Errorf("session store is nil")
	}

	session, err := s.sessions.GetActiveByOwner(ctx, ownerID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrSessionNotFound) {
			return model.SafetySession{}, ErrSessionNotFound
		}
		return model.SafetySession{}, err
	}

	return session, nil
}

// Events lists the emergency events of an owned session, oldest first.
func (s *Service) Events(ctx context.Context, sessionID string, ownerID int64) ([]model.EmergencyEvent, error) {
	if s.events == nil {
		return nil, fmt.Errorf("event store is nil")
	}
	if _, err := s.getOwned(ctx, sessionID, ownerID); err != nil {
		return nil, err
	}
	return s.events.ListBySession(ctx, sessionID)
}

// AcknowledgeEvent marks a PENDING event as ACKNOWLEDGED once the owner
// confirms help is underway.
func (s *Service) AcknowledgeEvent(ctx context.Context, eventID string, ownerID int64) (model.EmergencyEvent, error) {
	if strings.TrimSpace(eventID) == "" || ownerID <= 0 {
		return model.EmergencyEvent{}, ErrValidation
	}
	if s.events == nil {
		return model.EmergencyEvent{}, fmt.Errorf("event store is nil")
	}

	event, err := s.events.AcknowledgeForOwner(ctx, eventID, ownerID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrEventNotFound) {
			return model.EmergencyEvent{}, ErrEventNotFound
		}
		return model.EmergencyEvent{}, err
	}

	return event, nil
}

func (s *Service) getOwned(ctx context.Context, sessionID string, ownerID int64) (model.SafetySession, error) {
	if strings.TrimSpace(sessionID) == "" || ownerID <= 0 {
		return model.SafetySession{}, ErrValidation
	}
	if s.sessions == nil {
		return model.SafetySession{}, fmt.Errorf("session store is nil")
	}

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrSessionNotFound) {
			return model.SafetySession{}, ErrSessionNotFound
		}
		return model.SafetySession{}, err
	}
	if session.OwnerID != ownerID {
		return model.SafetySession{}, ErrUnauthorized
	}

	return session, nil
}

// ownedContacts filters the caller-supplied ids down to contacts the owner
// actually registered, preserving registry order.
func (s *Service) ownedContacts(ctx context.Context, ownerID int64, contactIDs []int64) ([]model.EmergencyContact, error) {
	if s.contacts == nil || len(contactIDs) == 0 {
		return []model.EmergencyContact{}, nil
	}

	owned, err := s.contacts.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list owner contacts: %w", err)
	}

	requested := make(map[int64]bool, len(contactIDs))
	for _, id := range contactIDs {
		requested[id] = true
	}

	filtered := make([]model.EmergencyContact, 0, len(owned))
	for _, contact := range owned {
		if requested[contact.ID] {
			filtered = append(filtered, contact)
		}
	}
	return filtered, nil
}
