package routes

import (
	"context"

	"edugate/internal/adapters/http/handlers"
	"edugate/internal/adapters/http/middleware"
	"edugate/internal/adapters/persistence/repositories"
	"edugate/internal/config"
	"edugate/internal/core/domain"
	"edugate/internal/core/services"
	"edugate/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/sirupsen/logrus"
)

// Container holds the wired services shared by the HTTP layer and background jobs
type Container struct {
	LoanRepo         repositories.LoanRepository
	AuthService      *services.AuthService
	LoanService      *services.LoanService
	TelemetryService *services.TelemetryService
	Notifier         *services.NotificationService
}

// NewContainer wires services from repositories and config.
// publisher and sink may be nil to disable event publishing and telemetry storage.
func NewContainer(
	userRepo repositories.UserRepository,
	loanRepo repositories.LoanRepository,
	cfg *config.Config,
	log *logrus.Logger,
	publisher services.EventPublisher,
	sink services.TelemetrySink,
) *Container {
	notifier := services.NewNotificationService(publisher, log)

	return &Container{
		LoanRepo: loanRepo,
		AuthService: services.NewAuthService(
			userRepo,
			password.NewHasher(cfg.BcryptCost),
			cfg.JWT.Secret,
			cfg.TokenTTL(),
			log,
		),
		LoanService: services.NewLoanService(
			loanRepo,
			notifier,
			log,
			services.WithPermissiveTransitions(cfg.Loan.PermissiveTransitions),
		),
		TelemetryService: services.NewTelemetryService(sink, log),
		Notifier:         notifier,
	}
}

// Setup configures all routes for the application
func Setup(app *fiber.App, c *Container, cfg *config.Config, log *logrus.Logger, dbPing func(ctx context.Context) error) {
	healthHandler := handlers.NewHealthHandler(cfg.AppMode, dbPing)
	authHandler := handlers.NewAuthHandler(c.AuthService, log)
	loanHandler := handlers.NewLoanHandler(c.LoanService, log)
	telemetryHandler := handlers.NewTelemetryHandler(c.TelemetryService)

	// Health check & root routes
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	api := app.Group("/api", middleware.NoCacheHeaders())

	authRoutes := api.Group("/auth")
	setupAuthRoutes(authRoutes, authHandler, c.AuthService)

	loanRoutes := api.Group("/loans", middleware.AuthMiddleware(c.AuthService))
	setupLoanRoutes(loanRoutes, loanHandler)

	// bearer optional: anonymous visitors fill the form before logging in
	api.Post("/telemetry", middleware.OptionalAuth(c.AuthService), telemetryHandler.Record)
}

// setupAuthRoutes configures authentication routes
func setupAuthRoutes(router fiber.Router, handler *handlers.AuthHandler, verifier middleware.TokenVerifier) {
	limiter := middleware.AuthRateLimiter()

	// Public routes
	router.Post("/signup", limiter, handler.Signup)
	router.Post("/login", limiter, handler.Login)

	// Protected routes
	router.Get("/me", middleware.AuthMiddleware(verifier), handler.Me)
}

// setupLoanRoutes configures loan application routes
func setupLoanRoutes(router fiber.Router, handler *handlers.LoanHandler) {
	studentOnly := middleware.RequireRole(domain.RoleStudent)
	distributorOnly := middleware.RequireRole(domain.RoleDistributor)

	// Student routes
	router.Post("/submit", studentOnly, handler.Submit)
	router.Get("/mine", studentOnly, handler.ListMine)

	// Distributor routes
	router.Get("/", distributorOnly, handler.List)
	router.Get("/:id", distributorOnly, handler.Get)
	router.Post("/:id/status", distributorOnly, handler.UpdateStatus)
}
