package cleanup

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Job prunes retention-expired safety data: sessions that ENDED long ago
// together with their events, and ACKNOWLEDGED emergency events past the
// audit window. ACTIVE sessions and PENDING events are never touched.
type Job struct {
	sessions         sessionCleaner
	events           eventCleaner
	sessionRetention time.Duration
	eventRetention   time.Duration
	now              func() time.Time
	logger           *zap.Logger
}

type sessionCleaner interface {
	DeleteEndedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type eventCleaner interface {
	DeleteAcknowledgedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

func New(sessions sessionCleaner, events eventCleaner, sessionRetention, eventRetention time.Duration, logger *zap.Logger) *Job {
	if sessionRetention <= 0 {
		sessionRetention = 90 * 24 * time.Hour
	}
	if eventRetention <= 0 {
		eventRetention = 365 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Job{
		sessions:         sessions,
		events:           events,
		sessionRetention: sessionRetention,
		eventRetention:   eventRetention,
		now:              time.Now,
		logger:           logger,
	}
}

func (j *Job) Run(ctx context.Context) error {
	now := j.now()

	if j.events != nil {
		cutoff := now.Add(-j.eventRetention)
		rows, err := j.events.DeleteAcknowledgedBefore(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("cleanup acknowledged emergency events: %w", err)
		}
		if rows > 0 {
			j.logger.Info("cleanup acknowledged emergency events completed", zap.Int64("deleted", rows))
		}
	}

	if j.sessions != nil {
		cutoff := now.Add(-j.sessionRetention)
		rows, err := j.sessions.DeleteEndedBefore(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("cleanup ended safety sessions: %w", err)
		}
		if rows > 0 {
			j.logger.Info("cleanup ended safety sessions completed", zap.Int64("deleted", rows))
		}
	}

	return nil
}
