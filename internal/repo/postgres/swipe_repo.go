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

var ErrDecisionNotFound = errors.New("swipe decision not found")

// SwipeRepo is the decision ledger: one row per ordered (actor, target)
// pair, a later decision overwrites the earlier one.
type SwipeRepo struct {
	pool *pgxpool.Pool
}

func NewSwipeRepo(pool *pgxpool.Pool) *SwipeRepo {
	return &SwipeRepo{pool: pool}
}

func (r *SwipeRepo) Upsert(ctx context.Context, actorID, targetID int64, decision string, now time.Time) (model.SwipeDecision, error) {
	if actorID <= 0 || targetID <= 0 || strings.TrimSpace(decision) == "" {
		return model.SwipeDecision{}, fmt.Errorf("invalid swipe payload")
	}
	if r.pool == nil {
		return model.SwipeDecision{}, fmt.Errorf("postgres pool is nil")
	}
	if now.IsZero() {
		now = time.Now().UTC()
	}

	var rec model.SwipeDecision
	err := r.pool.QueryRow(ctx, `
INSERT INTO swipe_decisions (
	actor_id,
	target_id,
	decision,
	created_at,
	updated_at
) VALUES ($1, $2, $3, $4, $4)
ON CONFLICT (actor_id, target_id) DO UPDATE SET
	decision = EXCLUDED.decision,
	updated_at = EXCLUDED.updated_at
RETURNING id, actor_id, target_id, decision, created_at, updated_at
`, actorID, targetID, strings.ToUpper(strings.TrimSpace(decision)), now.UTC()).Scan(
		&rec.ID,
		&rec.ActorID,
		&rec.TargetID,
		&rec.Decision,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		return model.SwipeDecision{}, fmt.Errorf("upsert swipe decision: %w", err)
	}

	return rec, nil
}

func (r *SwipeRepo) Get(ctx context.Context, actorID, targetID int64) (model.SwipeDecision, error) {
	if actorID <= 0 || targetID <= 0 {
		return model.SwipeDecision{}, fmt.Errorf("invalid swipe lookup payload")
	}
	if r.pool == nil {
		return model.SwipeDecision{}, fmt.Errorf("postgres pool is nil")
	}

	var rec model.SwipeDecision
	err := r.pool.QueryRow(ctx, `
SELECT id, actor_id, target_id, decision, created_at, updated_at
FROM swipe_decisions
WHERE actor_id = $1 AND target_id = $2
`, actorID, targetID).Scan(
		&rec.ID,
		&rec.ActorID,
		&rec.TargetID,
		&rec.Decision,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.SwipeDecision{}, ErrDecisionNotFound
		}
		return model.SwipeDecision{}, fmt.Errorf("get swipe decision: %w", err)
	}

	return rec, nil
}
