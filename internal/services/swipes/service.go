package swipes

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/enums"
	"github.com/sonu9716/Dating-app-sub000/internal/domain/model"
	"github.com/sonu9716/Dating-app-sub000/internal/domain/rules"
	pgrepo "github.com/sonu9716/Dating-app-sub000/internal/repo/postgres"
)

var (
	ErrValidation          = errors.New("validation error")
	ErrUnsupportedDecision = errors.New("unsupported decision")
)

// TooFastError reports a rate-limited positive swipe.
type TooFastError struct {
	RetryAfterSec int64
}

func (e TooFastError) Error() string {
	return fmt.Sprintf("too many swipes, retry after %ds", e.RetryAfterSec)
}

func IsTooFast(err error) (TooFastError, bool) {
	var tf TooFastError
	if errors.As(err, &tf) {
		return tf, true
	}
	return TooFastError{}, false
}

// DecisionStore is the decision ledger: idempotent upsert keyed by the
// ordered (actor, target) pair.
type DecisionStore interface {
	Upsert(ctx context.Context, actorID, targetID int64, decision string, now time.Time) (model.SwipeDecision, error)
	Get(ctx context.Context, actorID, targetID int64) (model.SwipeDecision, error)
}

// MatchStore materializes matches. Ensure must be atomic create-if-absent
// on the canonical pair so concurrent reciprocal swipes yield one row.
type MatchStore interface {
	Ensure(ctx context.Context, userID, targetID int64) (matchID int64, created bool, err error)
}

type RateLimiter interface {
	AllowSwipe(ctx context.Context, userID int64) (int64, bool, error)
}

type SwipeResult struct {
	Decision enums.SwipeDecision
	IsMatch  bool
	MatchID  int64
}

type Service struct {
	decisions   DecisionStore
	matches     MatchStore
	rateLimiter RateLimiter
	now         func() time.Time
}

type Dependencies struct {
	DecisionStore DecisionStore
	MatchStore    MatchStore
	RateLimiter   RateLimiter
}

func NewService(deps Dependencies) *Service {
	return &Service{
		decisions:   deps.DecisionStore,
		matches:     deps.MatchStore,
		rateLimiter: deps.RateLimiter,
		now:         time.Now,
	}
}

// Swipe records the actor's decision about the target and reports whether
// it completed a reciprocal match. Submitting the same decision again is a
// no-op that still reports the existing match.
func (s *Service) Swipe(ctx context.Context, actorID, targetID int64, decision string) (SwipeResult, error) {
	if actorID <= 0 || targetID <= 0 || actorID == targetID {
		return SwipeResult{}, ErrValidation
	}

	normalized, err := normalizeDecision(decision)
	if err != nil {
		return SwipeResult{}, err
	}

	if s.decisions == nil || s.matches == nil {
		return SwipeResult{}, fmt.Errorf("swipe dependencies are not configured")
	}

	if rules.Positive(normalized) && s.rateLimiter != nil {
		retryAfter, allowed, err := s.rateLimiter.AllowSwipe(ctx, actorID)
		if err != nil {
			return SwipeResult{}, fmt.Errorf("apply swipe rate limiter: %w", err)
		}
		if !allowed {
			return SwipeResult{}, TooFastError{RetryAfterSec: retryAfter}
		}
	}

	now := s.now().UTC()
	stored, err := s.decisions.Upsert(ctx, actorID, targetID, string(normalized), now)
	if err != nil {
		return SwipeResult{}, err
	}

	result := SwipeResult{Decision: stored.Decision}

	// Passes never produce matches and never look at the reverse decision.
	if !rules.Positive(normalized) {
		return result, nil
	}

	reverse, err := s.decisions.Get(ctx, targetID, actorID)
	if err != nil {
		if errors.Is(err, pgrepo.ErrDecisionNotFound) {
			return result, nil
		}
		return SwipeResult{}, err
	}
	if !rules.Reciprocal(normalized, reverse.Decision) {
		return result, nil
	}

	matchID, _, err := s.matches.Ensure(ctx, actorID, targetID)
	if err != nil {
		return SwipeResult{}, err
	}

	result.IsMatch = true
	result.MatchID = matchID
	return result, nil
}

func normalizeDecision(input string) (enums.SwipeDecision, error) {
	value := strings.ToUpper(strings.TrimSpace(input))
	value = strings.ReplaceAll(value, "_", "")
	value = strings.ReplaceAll(value, "-", "")

	switch enums.SwipeDecision(value) {
	case enums.SwipeDecisionLike, enums.SwipeDecisionPass, enums.SwipeDecisionSuperLike:
		return enums.SwipeDecision(value), nil
	default:
		return "", ErrUnsupportedDecision
	}
}
