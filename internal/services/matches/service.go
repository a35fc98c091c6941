package matches

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/model"
)

var ErrValidation = errors.New("validation error")

type MatchStore interface {
	ListForUser(ctx context.Context, userID int64, limit int) ([]model.Match, error)
	DeleteByUsers(ctx context.Context, userID, targetID int64) (bool, error)
}

type Service struct {
	matchStore MatchStore
}

// MatchItem is a match as seen from one side of the pair.
type MatchItem struct {
	ID           int64
	TargetUserID int64
	CreatedAt    time.Time
}

func NewService(matchStore MatchStore) *Service {
	return &Service{matchStore: matchStore}
}

func (s *Service) List(ctx context.Context, userID int64, limit int) ([]MatchItem, error) {
	if userID <= 0 {
		return nil, ErrValidation
	}
	if s.matchStore == nil {
		return nil, fmt.Errorf("match store is nil")
	}

	rows, err := s.matchStore.ListForUser(ctx, userID, limit)
	if err != nil {
		return nil, err
	}

	items := make([]MatchItem, 0, len(rows))
	for _, row := range rows {
		target := row.UserAID
		if target == userID {
			target = row.UserBID
		}
		items = append(items, MatchItem{
			ID:           row.ID,
			TargetUserID: target,
			CreatedAt:    row.CreatedAt,
		})
	}
	return items, nil
}

// Unmatch removes the match between the caller and the target. Either party
// may unmatch; removing an already-removed match reports deleted=false.
func (s *Service) Unmatch(ctx context.Context, userID, targetID int64) (bool, error) {
	if userID <= 0 || targetID <= 0 || userID == targetID {
		return false, ErrValidation
	}
	if s.matchStore == nil {
		return false, fmt.Errorf("match store is nil")
	}

	return s.matchStore.DeleteByUsers(ctx, userID, targetID)
}
