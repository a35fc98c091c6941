package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/model"
	"github.com/sonu9716/Dating-app-sub000/internal/domain/rules"
)

var ErrMatchNotFound = errors.New("match not found")

type MatchRepo struct {
	pool *pgxpool.Pool
}

func NewMatchRepo(pool *pgxpool.Pool) *MatchRepo {
	return &MatchRepo{pool: pool}
}

// Ensure creates the match row for the canonical pair if it does not exist
// yet. Under concurrent reciprocal swipes at most one row results; the loser
// of the insert race reads back the winner's id.
func (r *MatchRepo) Ensure(ctx context.Context, userID, targetID int64) (int64, bool, error) {
	if userID <= 0 || targetID <= 0 || userID == targetID {
		return 0, false, fmt.Errorf("invalid match payload")
	}
	if r.pool == nil {
		return 0, false, fmt.Errorf("postgres pool is nil")
	}

	userA, userB := rules.CanonicalPair(userID, targetID)

	var matchID int64
	err := r.pool.QueryRow(ctx, `
INSERT INTO matches (
	user_a_id,
	user_b_id,
	created_at
) VALUES ($1, $2, NOW())
ON CONFLICT (user_a_id, user_b_id) DO NOTHING
RETURNING id
`, userA, userB).Scan(&matchID)
	if err == nil {
		return matchID, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, fmt.Errorf("create match: %w", err)
	}

	err = r.pool.QueryRow(ctx, `
SELECT id
FROM matches
WHERE user_a_id = $1 AND user_b_id = $2
`, userA, userB).Scan(&matchID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, ErrMatchNotFound
		}
		return 0, false, fmt.Errorf("lookup existing match: %w", err)
	}

	return matchID, false, nil
}

func (r *MatchRepo) GetByID(ctx context.Context, matchID int64) (model.Match, error) {
	if matchID <= 0 {
		return model.Match{}, fmt.Errorf("invalid match id")
	}
	if r.pool == nil {
		return model.Match{}, fmt.Errorf("postgres pool is nil")
	}

	var m model.Match
	err := r.pool.QueryRow(ctx, `
SELECT id, user_a_id, user_b_id, created_at
FROM matches
WHERE id = $1
`, matchID).Scan(&m.ID, &m.UserAID, &m.UserBID, &m.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Match{}, ErrMatchNotFound
		}
		return model.Match{}, fmt.Errorf("get match: %w", err)
	}

	return m, nil
}

func (r *MatchRepo) ListForUser(ctx context.Context, userID int64, limit int) ([]model.Match, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("invalid user id")
	}
	if limit <= 0 {
		limit = 100
	}
	if r.pool == nil {
		return []model.Match{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, user_a_id, user_b_id, created_at
FROM matches
WHERE user_a_id = $1 OR user_b_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2
`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}
	defer rows.Close()

	items := make([]model.Match, 0, limit)
	for rows.Next() {
		var m model.Match
		if err := rows.Scan(&m.ID, &m.UserAID, &m.UserBID, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan match: %w", err)
		}
		items = append(items, m)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate matches: %w", rows.Err())
	}

	return items, nil
}

func (r *MatchRepo) DeleteByUsers(ctx context.Context, userID, targetID int64) (bool, error) {
	if userID <= 0 || targetID <= 0 {
		return false, fmt.Errorf("invalid match delete payload")
	}
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	userA, userB := rules.CanonicalPair(userID, targetID)

	result, err := r.pool.Exec(ctx, `
DELETE FROM matches
WHERE user_a_id = $1 AND user_b_id = $2
`, userA, userB)
	if err != nil {
		return false, fmt.Errorf("delete match: %w", err)
	}

	return result.RowsAffected() > 0, nil
}
