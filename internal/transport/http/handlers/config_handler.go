package handlers

import (
	"net/http"

	"github.com/sonu9716/Dating-app-sub000/internal/config"
	"github.com/sonu9716/Dating-app-sub000/internal/domain/rules"
	"github.com/sonu9716/Dating-app-sub000/internal/transport/http/dto"
	httperrors "github.com/sonu9716/Dating-app-sub000/internal/transport/http/errors"
)

type ConfigHandler struct {
	cfg *config.Config
}

func NewConfigHandler(cfg *config.Config) *ConfigHandler {
	return &ConfigHandler{cfg: cfg}
}

// Handle exposes the client-facing defaults so apps do not hardcode them.
func (h *ConfigHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.cfg == nil {
		writeInternal(w, "CONFIG_UNAVAILABLE", "configuration is unavailable")
		return
	}

	httperrors.Write(w, http.StatusOK, dto.ClientConfigResponse{
		MaxEmergencyContacts:           rules.MaxEmergencyContacts,
		DefaultCheckInFrequencyMinutes: h.cfg.Safety.DefaultCheckInFrequencyMinutes,
		DefaultPlannedDurationMinutes:  h.cfg.Safety.DefaultPlannedDurationMinutes,
		MaxPlannedDurationMinutes:      h.cfg.Safety.MaxPlannedDurationMinutes,
		SwipesPerMinute:                h.cfg.Limits.SwipesPerMinute,
	})
}
