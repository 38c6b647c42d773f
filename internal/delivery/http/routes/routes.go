package routes

import (
	"jobni/internal/delivery/http/handler"
	"jobni/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Handlers groups everything mounted under /api. Auth is the bearer
// middleware applied per route, since public and protected routes share
// prefixes.
type Handlers struct {
	Auth          fiber.Handler
	Health        *handler.HealthHandler
	Users         *handler.UserHandler
	Account       *handler.AuthHandler
	Jobs          *handler.JobsHandler
	Applications  *handler.ApplicationHandler
	SavedJobs     *handler.SavedJobHandler
	Conversations *handler.ConversationHandler
	Reports       *handler.ReportHandler
	Ratings       *handler.RatingHandler
	Notifications *handler.NotificationHandler
	WS            *ws.Handler
}

type Registry struct {
	h Handlers
}

func NewRegistry(h Handlers) *Registry {
	return &Registry{h: h}
}

func (r *Registry) Register(app *fiber.App) {
	if app == nil {
		return
	}

	api := app.Group("/api")
	r.registerHealth(api)
	r.registerAPI(api)
}

func (r *Registry) registerHealth(api fiber.Router) {
	if r.h.Health != nil {
		r.h.Health.RegisterRoutes(api)
	}
}

func (r *Registry) registerAPI(api fiber.Router) {
	auth := r.h.Auth

	if r.h.Account != nil {
		r.h.Account.RegisterRoutes(api.Group("/auth"), auth)
	}
	if r.h.Users != nil {
		r.h.Users.RegisterRoutes(api, auth)
	}
	if r.h.Jobs != nil {
		r.h.Jobs.RegisterRoutes(api, auth)
	}
	if r.h.Applications != nil {
		r.h.Applications.RegisterRoutes(api, auth)
	}
	if r.h.SavedJobs != nil {
		r.h.SavedJobs.RegisterRoutes(api, auth)
	}
	if r.h.Conversations != nil {
		r.h.Conversations.RegisterRoutes(api, auth)
	}
	if r.h.Reports != nil {
		r.h.Reports.RegisterRoutes(api, auth)
	}
	if r.h.Ratings != nil {
		r.h.Ratings.RegisterRoutes(api, auth)
	}
	if r.h.Notifications != nil {
		r.h.Notifications.RegisterRoutes(api, auth)
	}
	if r.h.WS != nil {
		api.Get("/ws/conversations/:id", r.h.WS.HandleConversationWS)
	}
}
