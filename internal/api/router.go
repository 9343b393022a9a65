package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/aaryankakkar3/DevConnect-sub000/internal/api/handler"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/api/middleware"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/domain"
	"github.com/aaryankakkar3/DevConnect-sub000/internal/core/ports"
)

// Handlers bundles the HTTP handlers wired by the composition root.
type Handlers struct {
	Auth         *handler.AuthHandler
	Project      *handler.ProjectHandler
	Bid          *handler.BidHandler
	Token        *handler.TokenHandler
	Verification *handler.VerificationHandler
	Profile      *handler.ProfileHandler
	Conversation *handler.ConversationHandler
	Webhook      *handler.WebhookHandler
	Health       *handler.HealthHandler
	HealthDeps   *handler.HealthDependenciesHandler
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(identities ports.IdentityService, h Handlers, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("devconnect"))

	auth := middleware.Auth(identities)
	verified := middleware.RequireVerification(domain.VerificationVerified)

	// --- Public routes ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/health", h.Health.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", h.HealthDeps.Readiness) // readiness – are dependencies up?
	e.POST("/auth/register", h.Auth.Register)
	e.POST("/webhooks/payments", h.Webhook.PaymentEvent)

	e.GET("/auth/session", h.Auth.Session, auth)

	// --- Authenticated API ---
	v1 := e.Group("/v1", auth)

	projects := v1.Group("/projects")
	projects.GET("", h.Project.List)
	projects.GET("/:id", h.Project.Get)
	projects.POST("", h.Project.Create, middleware.RequireRoles(domain.RoleClient), verified)
	projects.POST("/:id/close", h.Project.Close, middleware.RequireRoles(domain.RoleClient, domain.RoleAdmin))
	projects.GET("/:id/bids", h.Bid.ListByProject)
	projects.POST("/:id/bids", h.Bid.Place, middleware.RequireRoles(domain.RoleDeveloper), verified)

	bids := v1.Group("/bids")
	bids.DELETE("/:id", h.Bid.Withdraw, middleware.RequireRoles(domain.RoleDeveloper))
	bids.POST("/:id/decision", h.Bid.Decide, middleware.RequireRoles(domain.RoleClient, domain.RoleAdmin))

	tokens := v1.Group("/tokens")
	tokens.POST("/orders", h.Token.CreateOrder)
	tokens.POST("/orders/confirm", h.Token.Confirm)

	verification := v1.Group("/verification")
	verification.POST("/request", h.Verification.Request)
	verification.POST("/:user_id/decision", h.Verification.Decide, middleware.RequireRoles(domain.RoleAdmin))

	v1.GET("/profile", h.Profile.Me)
	v1.PUT("/profile", h.Profile.Update)
	v1.GET("/users/:id", h.Profile.Get)

	conversations := v1.Group("/conversations")
	conversations.POST("", h.Conversation.Start)
	conversations.GET("", h.Conversation.List)
	conversations.GET("/:id/messages", h.Conversation.Messages)
	conversations.POST("/:id/messages", h.Conversation.Send)

	return e
}
