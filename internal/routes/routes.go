package routes

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/cardauth/cardauth/internal/auth"
	"github.com/cardauth/cardauth/internal/config"
	"github.com/cardauth/cardauth/internal/engine"
	"github.com/cardauth/cardauth/internal/identity"
	"github.com/cardauth/cardauth/internal/ledger"
	"github.com/cardauth/cardauth/internal/middleware"
)

// Deps aggregates shared dependencies required to wire routes. DB and Cache
// may be nil in tests and local runs: repositories then fall back to their
// in-memory implementations and the redis middlewares are skipped.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))
	if d.Logger != nil {
		app.Use(middleware.Audit(d.Logger))
	}
	if d.Cache != nil {
		app.Use(middleware.Idempotency(d.Cache, d.Cfg.IdempotencyTTL, d.Logger))
	}

	RegisterHealthRoutes(app, d)

	var identityRepo identity.Repository
	var ledgerRepo ledger.Repository
	if d.DB != nil {
		identityRepo = identity.NewPostgresRepository(d.DB)
		ledgerRepo = ledger.NewPostgresRepository(d.DB)
	} else {
		identityRepo = identity.NewMemoryRepository()
		ledgerRepo = ledger.NewMemoryRepository()
	}

	identitySvc := identity.NewService(identityRepo)
	tokenSvc := auth.NewService(d.Cfg.JWTSecret, d.Cfg.TokenTTL)
	ledgerSvc := ledger.NewService(engine.New(engine.NewRandomCodes()), ledgerRepo)

	identityHandler := identity.NewHandler(identitySvc)
	authHandler := auth.NewHandler(identitySvc, tokenSvc)
	ledgerHandler := ledger.NewHandler(ledgerSvc)

	api := app.Group("/api/v1")
	api.Get("/ping", func(c *fiber.Ctx) error {
		reqID, _ := c.Locals("X-Request-ID").(string)
		return c.Status(http.StatusOK).JSON(fiber.Map{
			"status":     "ok",
			"request_id": reqID,
			"timestamp":  time.Now().UTC().Format(time.RFC3339Nano),
		})
	})

	// Public routes: registration and login are the only operations outside
	// the session gate.
	RegisterIdentityRoutes(api, identityHandler)
	rateLimiter := middleware.LoginRateLimit(d.Cache, 5)
	RegisterAuthRoutes(api, authHandler, rateLimiter)

	// Protected routes
	protected := api.Group("", middleware.SessionAuth(tokenSvc))
	RegisterTransactionRoutes(protected, ledgerHandler)

	return nil
}
