package safety

import (
	"context"

	"go.uber.org/zap"

	"github.com/sonu9716/Dating-app-sub000/internal/domain/model"
)

// LogNotifier records emergency handoffs in the log stream. It stands in
// for the external SMS/push pipeline, which runs outside this service.
type LogNotifier struct {
	logger *zap.Logger
}

func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LogNotifier{logger: logger}
}

func (n *LogNotifier) EmergencyTriggered(_ context.Context, event model.EmergencyEvent, contacts []model.EmergencyContact) error {
	phones := make([]string, 0, len(contacts))
	for _, contact := range contacts {
		phones = append(phones, contact.Phone)
	}

	n.logger.Warn("emergency triggered",
		zap.String("event_id", event.ID),
		zap.String("session_id", event.SessionID),
		zap.String("last_known_location", event.LastKnownLocation),
		zap.Strings("contact_phones", phones),
	)
	return nil
}
