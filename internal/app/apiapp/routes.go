package apiapp

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/sonu9716/Dating-app-sub000/internal/config"
	authsvc "github.com/sonu9716/Dating-app-sub000/internal/services/auth"
	contactssvc "github.com/sonu9716/Dating-app-sub000/internal/services/contacts"
	matchessvc "github.com/sonu9716/Dating-app-sub000/internal/services/matches"
	safetysvc "github.com/sonu9716/Dating-app-sub000/internal/services/safety"
	swipesvc "github.com/sonu9716/Dating-app-sub000/internal/services/swipes"
	httperrors "github.com/sonu9716/Dating-app-sub000/internal/transport/http/errors"
	"github.com/sonu9716/Dating-app-sub000/internal/transport/http/handlers"
)

type Dependencies struct {
	SwipeService    *swipesvc.Service
	MatchService    *matchessvc.Service
	SafetyService   *safetysvc.Service
	ContactsService *contactssvc.Service
	JWTManager      *authsvc.JWTManager
	Logger          *zap.Logger
	Config          config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	swipeHandler := handlers.NewSwipeHandler(deps.SwipeService)
	matchesHandler := handlers.NewMatchesHandler(deps.MatchService)
	safetyHandler := handlers.NewSafetyHandler(deps.SafetyService)
	contactsHandler := handlers.NewContactsHandler(deps.ContactsService)
	configHandler := handlers.NewConfigHandler(&deps.Config)
	authMW := AuthMiddleware(deps.JWTManager, deps.Logger)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		httperrors.Write(w, http.StatusOK, struct {
			OK bool `json:"ok"`
		}{OK: true})
	})

	r.Route("/v1", func(r chi.Router) {
		r.Get("/config", configHandler.Handle)

		r.Group(func(r chi.Router) {
			r.Use(authMW)

			r.Post("/swipe", swipeHandler.Handle)
			r.Get("/matches", matchesHandler.Handle)
			r.Post("/matches/unmatch", matchesHandler.Unmatch)

			r.Route("/safety", func(r chi.Router) {
				r.Post("/sessions", safetyHandler.Start)
				r.Get("/sessions/active", safetyHandler.Active)
				r.Post("/sessions/{sessionID}/checkin", safetyHandler.CheckIn)
				r.Post("/sessions/{sessionID}/end", safetyHandler.End)
				r.Post("/sessions/{sessionID}/emergency", safetyHandler.TriggerEmergency)
				r.Get("/sessions/{sessionID}/events", safetyHandler.Events)
				r.Post("/events/{eventID}/acknowledge", safetyHandler.AcknowledgeEvent)

				r.Get("/contacts", contactsHandler.List)
				r.Post("/contacts", contactsHandler.Add)
				r.Delete("/contacts/{contactID}", contactsHandler.Remove)
			})
		})
	})
}
