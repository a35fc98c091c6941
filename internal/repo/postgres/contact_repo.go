package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/model"
	"github.com/sonu9716/Dating-app-sub000/internal/domain/rules"
)

var ErrContactLimitExceeded = errors.New("emergency contact limit exceeded")

// Advisory lock namespace for per-owner contact writes; the second key is
// the owner id.
const contactLockScope = 0x636F6E74 // "cont"

type ContactRepo struct {
	pool *pgxpool.Pool
}

func NewContactRepo(pool *pgxpool.Pool) *ContactRepo {
	return &ContactRepo{pool: pool}
}

// Upsert inserts a new contact or, when the owner already registered the
// phone, updates that row in place without consuming capacity. Row locks
// cannot serialize concurrent first-time adds (there is nothing to lock
// yet), so the transaction takes a per-owner advisory lock before the cap
// check. The update path never touches verified: renaming a contact must
// not reset its verification.
func (r *ContactRepo) Upsert(ctx context.Context, contact model.EmergencyContact) (model.EmergencyContact, error) {
	if contact.OwnerID <= 0 || strings.TrimSpace(contact.Phone) == "" {
		return model.EmergencyContact{}, fmt.Errorf("invalid contact payload")
	}
	if r.pool == nil {
		return model.EmergencyContact{}, fmt.Errorf("postgres pool is nil")
	}

	var stored model.EmergencyContact
	err := WithTx(ctx, r.pool, func(txCtx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(txCtx, `
SELECT pg_advisory_xact_lock($1, $2)
`, contactLockScope, contact.OwnerID); err != nil {
			return fmt.Errorf("acquire owner contact lock: %w", err)
		}

		var existingID int64
		err := tx.QueryRow(txCtx, `
SELECT id
FROM emergency_contacts
WHERE owner_id = $1 AND phone = $2
`, contact.OwnerID, contact.Phone).Scan(&existingID)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return fmt.Errorf("lookup contact by phone: %w", err)
		}

		if existingID > 0 {
			return tx.QueryRow(txCtx, `
UPDATE emergency_contacts
SET name = $2, relationship = $3, linked_user_id = $4
WHERE id = $1
RETURNING id, owner_id, name, phone, relationship, linked_user_id, verified, created_at
`, existingID, contact.Name, contact.Relationship, contact.LinkedUserID).Scan(
				&stored.ID,
				&stored.OwnerID,
				&stored.Name,
				&stored.Phone,
				&stored.Relationship,
				&stored.LinkedUserID,
				&stored.Verified,
				&stored.CreatedAt,
			)
		}

		var count int
		if err := tx.QueryRow(txCtx, `
SELECT COUNT(*)
FROM emergency_contacts
WHERE owner_id = $1
`, contact.OwnerID).Scan(&count); err != nil {
			return fmt.Errorf("count contacts: %w", err)
		}
		if count >= rules.MaxEmergencyContacts {
			return ErrContactLimitExceeded
		}

		return tx.QueryRow(txCtx, `
INSERT INTO emergency_contacts (
	owner_id,
	name,
	phone,
	relationship,
	linked_user_id,
	verified,
	created_at
) VALUES ($1, $2, $3, $4, $5, $6, NOW())
RETURNING id, owner_id, name, phone, relationship, linked_user_id, verified, created_at
`, contact.OwnerID, contact.Name, contact.Phone, contact.Relationship, contact.LinkedUserID, contact.Verified).Scan(
			&stored.ID,
			&stored.OwnerID,
			&stored.Name,
			&stored.Phone,
			&stored.Relationship,
			&stored.LinkedUserID,
			&stored.Verified,
			&stored.CreatedAt,
		)
	})
	if err != nil {
		if errors.Is(err, ErrContactLimitExceeded) {
			return model.EmergencyContact{}, err
		}
		return model.EmergencyContact{}, fmt.Errorf("upsert contact: %w", err)
	}

	return stored, nil
}

func (r *ContactRepo) Delete(ctx context.Context, ownerID, contactID int64) (bool, error) {
	if ownerID <= 0 || contactID <= 0 {
		return false, fmt.Errorf("invalid contact delete payload")
	}
	if r.pool == nil {
		return false, fmt.Errorf("postgres pool is nil")
	}

	result, err := r.pool.Exec(ctx, `
DELETE FROM emergency_contacts
WHERE id = $1 AND owner_id = $2
`, contactID, ownerID)
	if err != nil {
		return false, fmt.Errorf("delete contact: %w", err)
	}

	return result.RowsAffected() > 0, nil
}

func (r *ContactRepo) ListByOwner(ctx context.Context, ownerID int64) ([]model.EmergencyContact, error) {
	if ownerID <= 0 {
		return nil, fmt.Errorf("invalid owner id")
	}
	if r.pool == nil {
		return []model.EmergencyContact{}, nil
	}

	rows, err := r.pool.Query(ctx, `
SELECT id, owner_id, name, phone, relationship, linked_user_id, verified, created_at
FROM emergency_contacts
WHERE owner_id = $1
ORDER BY created_at ASC, id ASC
`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	defer rows.Close()

	items := make([]model.EmergencyContact, 0, rules.MaxEmergencyContacts)
	for rows.Next() {
		var contact model.EmergencyContact
		if err := rows.Scan(
			&contact.ID,
			&contact.OwnerID,
			&contact.Name,
			&contact.Phone,
			&contact.Relationship,
			&contact.LinkedUserID,
			&contact.Verified,
			&contact.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan contact: %w", err)
		}
		items = append(items, contact)
	}

	if rows.Err() != nil {
		return nil, fmt.Errorf("iterate contacts: %w", rows.Err())
	}

	return items, nil
}
