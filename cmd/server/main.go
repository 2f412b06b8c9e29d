package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"edugate/internal/adapters/cache"
	"edugate/internal/adapters/http/middleware"
	"edugate/internal/adapters/http/routes"
	"edugate/internal/adapters/messaging"
	"edugate/internal/adapters/persistence/repositories"
	"edugate/internal/config"
	"edugate/internal/core/services"
	"edugate/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	_ "edugate/docs" // Swagger docs
)

// @title EduGate Loan API
// @version 1.0
// @description Student loan intake and review API
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.email support@edugate.local

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath /
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.Fatalf("failed to load configuration: %v", err)
	}

	log := config.NewLogger(cfg)

	if err := run(cfg, log); err != nil {
		log.Fatal(err)
	}
}

// run wires the server and blocks until it stops. Deferred closes run before
// main exits, including on startup failures.
func run(cfg *config.Config, log *logrus.Logger) error {
	db, err := config.ConnectDatabase(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer config.CloseDatabase(db)

	userRepo := repositories.NewUserRepository(db)
	loanRepo := repositories.NewLoanRepository(db)

	if cfg.IsDev() {
		config.NewSeeder(userRepo, password.NewHasher(cfg.BcryptCost), cfg.Seed, log).Run(context.Background())
	}

	var publisher services.EventPublisher
	if cfg.AMQP.URL != "" {
		rabbit, err := messaging.NewRabbitPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
		if err != nil {
			log.WithError(err).Warn("rabbitmq unavailable, loan events disabled")
		} else {
			defer rabbit.Close()
			publisher = rabbit
		}
	}

	var sink services.TelemetrySink
	if cfg.Redis.Addr != "" {
		client, err := cache.NewRedisClient(context.Background(), cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.WithError(err).Warn("redis unavailable, telemetry will not be stored")
		} else {
			defer client.Close()
			sink = cache.NewStreamSink(client, cfg.Redis.TelemetryStream, cfg.Redis.TelemetryMaxLen)
		}
	}

	container := routes.NewContainer(userRepo, loanRepo, cfg, log, publisher, sink)

	cronService := services.NewCronService(loanRepo, container.Notifier, cfg.Loan.ReviewReminderCron, cfg.ReviewSLA(), log)
	if err := cronService.Start(); err != nil {
		return fmt.Errorf("failed to start cron service: %w", err)
	}
	defer cronService.Stop()

	app := fiber.New(fiber.Config{
		AppName:      "EduGate Loan API v1.0",
		ErrorHandler: middleware.CustomErrorHandler(log),
		BodyLimit:    cfg.BodyLimit(),
	})

	middleware.Setup(app, cfg)

	routes.Setup(app, container, cfg, log, func(ctx context.Context) error {
		return config.HealthCheck(ctx, db)
	})

	go gracefulShutdown(app, log)

	log.WithFields(logrus.Fields{
		"port":       cfg.Port,
		"mode":       cfg.AppMode,
		"events":     publisher != nil,
		"telemetry":  sink != nil,
		"permissive": cfg.Loan.PermissiveTransitions,
	}).Info("server starting")
	if err := app.Listen(":" + cfg.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App, log *logrus.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")
	if err := app.Shutdown(); err != nil {
		log.WithError(err).Error("error during shutdown")
	}
	log.Info("server stopped gracefully")
}
