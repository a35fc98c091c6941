package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/model"
)

var (
	ErrSessionNotFound = errors.New("safety session not found")
	// ErrActiveSessionExists maps the partial unique index on
	// (owner_id) WHERE status = 'ACTIVE'.
	ErrActiveSessionExists = errors.New("owner already has an active session")
	ErrSessionNotActive    = errors.New("safety session is not active")
)

const sessionColumns = `
id, owner_id, match_id, location, start_time, planned_duration_minutes,
check_in_frequency_minutes, status, last_check_in, end_time,
emergency_activated, emergency_activated_at`

type SafetySessionRepo struct {
	pool *pgxpool.Pool
}

func NewSafetySessionRepo(pool *pgxpool.Pool) *SafetySessionRepo {
	return &SafetySessionRepo{pool: pool}
}

func (r *SafetySessionRepo) Create(ctx context.Context, s model.SafetySession) (model.SafetySession, error) {
	if strings.TrimSpace(s.ID) == "" || s.OwnerID <= 0 || s.MatchID <= 0 {
		return model.SafetySession{}, fmt.Errorf("invalid session payload")
	}
	if r.pool == nil {
		return model.SafetySession{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
INSERT INTO safety_sessions (
	id,
	owner_id,
	match_id,
	location,
	start_time,
	planned_duration_minutes,
	check_in_frequency_minutes,
	status,
	last_check_in
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING`+sessionColumns, s.ID, s.OwnerID, s.MatchID, s.Location, s.StartTime.UTC(),
		s.PlannedDurationMinutes, s.CheckInFrequencyMinutes, s.Status, s.LastCheckIn.UTC())

	created, err := scanSession(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return model.SafetySession{}, ErrActiveSessionExists
		}
		return model.SafetySession{}, fmt.Errorf("create safety session: %w", err)
	}

	return created, nil
}

func (r *SafetySessionRepo) GetByID(ctx context.Context, sessionID string) (model.SafetySession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return model.SafetySession{}, fmt.Errorf("session id is required")
	}
	if r.pool == nil {
		return model.SafetySession{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+sessionColumns+`
FROM safety_sessions
WHERE id = $1
`, sessionID)

	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SafetySession{}, ErrSessionNotFound
		}
		return model.SafetySession{}, fmt.Errorf("get safety session: %w", err)
	}

	return s, nil
}

func (r *SafetySessionRepo) GetActiveByOwner(ctx context.Context, ownerID int64) (model.SafetySession, error) {
	if ownerID <= 0 {
		return model.SafetySession{}, fmt.Errorf("invalid owner id")
	}
	if r.pool == nil {
		return model.SafetySession{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
SELECT`+sessionColumns+`
FROM safety_sessions
WHERE owner_id = $1 AND status = 'ACTIVE'
`, ownerID)

	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SafetySession{}, ErrSessionNotFound
		}
		return model.SafetySession{}, fmt.Errorf("get active safety session: %w", err)
	}

	return s, nil
}

// UpdateLastCheckIn advances last_check_in while the session is still
// ACTIVE. Sessions ended by a concurrent request surface ErrSessionNotActive.
func (r *SafetySessionRepo) UpdateLastCheckIn(ctx context.Context, sessionID string, at time.Time) (model.SafetySession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return model.SafetySession{}, fmt.Errorf("session id is required")
	}
	if r.pool == nil {
		return model.SafetySession{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
UPDATE safety_sessions
SET last_check_in = $2
WHERE id = $1 AND status = 'ACTIVE'
RETURNING`+sessionColumns, sessionID, at.UTC())

	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SafetySession{}, ErrSessionNotActive
		}
		return model.SafetySession{}, fmt.Errorf("update last check-in: %w", err)
	}

	return s, nil
}

// End transitions ACTIVE -> ENDED. Returns ErrSessionNotActive when no
// ACTIVE row matched so the caller can resolve the idempotent no-op path.
func (r *SafetySessionRepo) End(ctx context.Context, sessionID string, at time.Time) (model.SafetySession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return model.SafetySession{}, fmt.Errorf("session id is required")
	}
	if r.pool == nil {
		return model.SafetySession{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
UPDATE safety_sessions
SET status = 'ENDED', end_time = $2
WHERE id = $1 AND status = 'ACTIVE'
RETURNING`+sessionColumns, sessionID, at.UTC())

	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SafetySession{}, ErrSessionNotActive
		}
		return model.SafetySession{}, fmt.Errorf("end safety session: %w", err)
	}

	return s, nil
}

// ActivateEmergency sets the one-way emergency flag. The activation
// timestamp is written only by the first trigger (COALESCE keeps it).
func (r *SafetySessionRepo) ActivateEmergency(ctx context.Context, sessionID string, at time.Time) (model.SafetySession, error) {
	if strings.TrimSpace(sessionID) == "" {
		return model.SafetySession{}, fmt.Errorf("session id is required")
	}
	if r.pool == nil {
		return model.SafetySession{}, fmt.Errorf("postgres pool is nil")
	}

	row := r.pool.QueryRow(ctx, `
UPDATE safety_sessions
SET
	emergency_activated = TRUE,
	emergency_activated_at = COALESCE(emergency_activated_at, $2)
WHERE id = $1 AND status = 'ACTIVE'
RETURNING`+sessionColumns, sessionID, at.UTC())

	s, err := scanSession(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SafetySession{}, ErrSessionNotActive
		}
		return model.SafetySession{}, fmt.Errorf("activate emergency: %w", err)
	}

	return s, nil
}

// DeleteEndedBefore removes ENDED sessions older than the cutoff together
// with their emergency events. ACTIVE sessions are never touched.
func (r *SafetySessionRepo) DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	if r.pool == nil {
		return 0, fmt.Errorf("postgres pool is nil")
	}

	var deleted int64
	err := WithTx(ctx, r.pool, func(txCtx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(txCtx, `
DELETE FROM emergency_events
WHERE session_id IN (
	SELECT id FROM safety_sessions
	WHERE status = 'ENDED' AND end_time < $1
)
`, cutoff.UTC()); err != nil {
			return fmt.Errorf("delete events of stale sessions: %w", err)
		}

		result, err := tx.Exec(txCtx, `
DELETE FROM safety_sessions
WHERE status = 'ENDED' AND end_time < $1
`, cutoff.UTC())
		if err != nil {
			return fmt.Errorf("delete stale sessions: %w", err)
		}
		deleted = result.RowsAffected()
		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}

func scanSession(row pgx.Row) (model.SafetySession, error) {
	var s model.SafetySession
	err := row.Scan(
		&s.ID,
		&s.OwnerID,
		&s.MatchID,
		&s.Location,
		&s.StartTime,
		&s.PlannedDurationMinutes,
		&s.CheckInFrequencyMinutes,
		&s.Status,
		&s.LastCheckIn,
		&s.EndTime,
		&s.EmergencyActivated,
		&s.EmergencyActivatedAt,
	)
	if err != nil {
		return model.SafetySession{}, err
	}
	return s, nil
}
