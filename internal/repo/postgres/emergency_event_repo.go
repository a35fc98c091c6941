package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/model"
)

var ErrEventNotFound = errors.New("emergency event not found")

type EmergencyEventRepo struct {
	pool *pgxpool.Pool
}

func NewEmergencyEventRepo(pool *pgxpool.Pool) *EmergencyEventRepo {
	return &EmergencyEventRepo{pool: pool}
}

func (r *EmergencyEventRepo) Create(ctx context.Context, event model.EmergencyEvent) (model.EmergencyEvent, error) {
	if strings.TrimSpace(event.ID) == "" || strings.TrimSpace(event.SessionID) == "" {
		return model.EmergencyEvent{}, fmt.Errorf("invalid emergency event payload")
	}
	if r.pool == nil {
		return model.EmergencyEvent{}, fmt.Errorf("postgres pool is nil")
	}

	contactIDs := event.NotifiedContactIDs
	if contactIDs == nil {
		contactIDs = []int64{}
	}

	var created model.EmergencyEvent
	err := r.pool.QueryRow(ctx, `
INSERT INTO emergency_events (
	id,
	session_id,
	triggered_at,
	last_known_location,
	status,
	notified_contact_ids
) VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id, session_id, triggered_at, last_known_location, status, notified_contact_ids
`, event.ID, event.SessionID, event.TriggeredAt.UTC(), event.LastKnownLocation, event.Status, contactIDs).Scan(
		&created.ID,
		&created.SessionID,
		&created.TriggeredAt,
		&created.LastKnownLocation,
		&created.Status,
		&created.NotifiedContactIDs,
	)
	if err != nil {
		return model.EmergencyEvent{}, fmt.Errorf("create emergency event: %w", err)
	}

	return created, nil
}

func (r *EmergencyEventRepo) ListBySession(ctx context.Context, sessionID string) ([]model.EmergencyEvent, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, fmt.Errorf("session id is required")
	}
	if r.pool == nil {
		return []model.EmergencyEvent{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, session_id, triggered_at, last_known_location, status, notified_contact_ids
FROM emergency_events
WHERE session_id = $1
ORDER BY triggered_at ASC
`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("list emergency events: %w", err)
	}
	defer rows.Close()

	items := make([]model.EmergencyEvent, 0, 4)
	for rows.Next() {
		var event model.EmergencyEvent
		if err := rows.Scan(
			&event.ID,
			&event.SessionID,
			&event.TriggeredAt,
			&event.LastKnownLocation,
			&event.Status,
			&event.NotifiedContactIDs,
		); err != nil {
			return nil, fmt.Errorf("scan emergency event: %w", err)
		}
		items = append(items, event)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate emergency events: %w", rows.Err())
	}

	return items, nil
}

// AcknowledgeForOwner flips PENDING -> ACKNOWLEDGED, scoped to events whose
// session belongs to the owner.
func (r *EmergencyEventRepo) AcknowledgeForOwner(ctx context.Context, eventID string, ownerID int64) (model.EmergencyEvent, error) {
	if strings.TrimSpace(eventID) == "" || ownerID <= 0 {
		return model.EmergencyEvent{}, fmt.Errorf("invalid acknowledge payload")
	}
	if r.pool == nil {
		return model.EmergencyEvent{}, fmt.Errorf("postgres pool is nil")
	}

	var event model.EmergencyEvent
	err := r.pool.QueryRow(ctx, `
UPDATE emergency_events e
SET status = 'ACKNOWLEDGED'
FROM safety_sessions s
WHERE e.id = $1 AND e.session_id = s.id AND s.owner_id = $2
RETURNING e.id, e.session_id, e.triggered_at, e.last_known_location, e.status, e.notified_contact_ids
`, eventID, ownerID).Scan(
		&event.ID,
		&event.SessionID,
		&event.TriggeredAt,
		&event.LastKnownLocation,
		&event.Status,
		&event.NotifiedContactIDs,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.EmergencyEvent{}, ErrEventNotFound
		}
		return model.EmergencyEvent{}, fmt.Errorf("acknowledge emergency event: %w", err)
	}

	return event, nil
}

func (r *EmergencyEventRepo) DeleteAcknowledgedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
DELETE FROM emergency_events
WHERE status = 'ACKNOWLEDGED' AND triggered_at < $1
`, cutoff.UTC())
	if err != nil {
		return 0, fmt.Errorf("delete acknowledged emergency events: %w", err)
	}

	return result.RowsAffected(), nil
}
