package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/civic-complaints/internal/api/http/handlers"
	"github.com/spec-kit/civic-complaints/internal/auth"
)

// Handlers bundles every HTTP handler for route registration.
type Handlers struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Profile        *handlers.ProfileHandler
	Municipalities *handlers.MunicipalitiesHandler
	Complaints     *handlers.ComplaintsHandler
	Feed           *handlers.FeedHandler
	Reviews        *handlers.ReviewsHandler
}

// RegisterRoutes mounts the API surface on the fiber app.
func RegisterRoutes(app *fiber.App, h Handlers, authMW *auth.AuthMiddleware) {
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/citizens/register", h.Auth.RegisterCitizen)
	authGroup.Post("/citizens/login", h.Auth.LoginCitizen)
	authGroup.Post("/officials/otp/request", h.Auth.RequestOTP)
	authGroup.Post("/officials/otp/verify", h.Auth.VerifyOTP)

	protected := app.Group("", authMW.Handle)

	profile := protected.Group("/profile", auth.RequireCitizen())
	profile.Get("", h.Profile.GetProfile)
	profile.Put("/location", h.Profile.UpdateLocation)

	municipalities := protected.Group("/municipalities", auth.RequireAny())
	municipalities.Get("/nearby", auth.RequireCitizen(), h.Profile.NearbyMunicipalities)
	municipalities.Get("/:id", h.Municipalities.Get)
	municipalities.Get("/:id/complaints", h.Complaints.ListByMunicipality)

	complaints := protected.Group("/complaints", auth.RequireAny())
	complaints.Post("", auth.RequireCitizen(), h.Complaints.Create)
	complaints.Post("/check-similar", auth.RequireCitizen(), h.Complaints.CheckSimilar)
	complaints.Get("/:id", h.Complaints.Get)
	complaints.Post("/:id/upvote", auth.RequireCitizen(), h.Complaints.Upvote)
	complaints.Post("/:id/status", auth.RequireOfficial(), h.Complaints.Transition)
	complaints.Post("/:id/comments", auth.RequireCitizen(), h.Complaints.AddComment)
	complaints.Get("/:id/comments", h.Complaints.ListComments)

	protected.Get("/feed", auth.RequireAny(), h.Feed.Feed)

	reviews := protected.Group("/reviews", auth.RequireCitizen())
	reviews.Post("", h.Reviews.Create)
	reviews.Get("/mine", h.Reviews.ListMine)
	reviews.Get("/complaints", h.Reviews.ListOwnComplaints)
}
