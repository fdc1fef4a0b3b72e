package routes

import (
	"fmt"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/h-wallet/h_wallet/internal/cache"
	"github.com/h-wallet/h_wallet/internal/config"
	"github.com/h-wallet/h_wallet/internal/middleware"
	"github.com/h-wallet/h_wallet/internal/scheme"
	"github.com/h-wallet/h_wallet/internal/user"
	"github.com/h-wallet/h_wallet/internal/wallet"
)

// Deps aggregates shared dependencies required to wire routes. DB and Cache
// may be nil in development, in which case in-memory stores are used.
type Deps struct {
	Cfg    config.Config
	DB     *pgxpool.Pool
	Cache  *redis.Client
	Logger *slog.Logger
}

// Setup configures middlewares and all application routes.
func Setup(app *fiber.App, d Deps) error {
	// Enforce DB/Redis presence outside of dev, even though main also checks.
	if !d.Cfg.IsDev() {
		if d.DB == nil {
			return fmt.Errorf("database is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
		if d.Cache == nil {
			return fmt.Errorf("redis is required when APP_ENV=%s", d.Cfg.AppEnv)
		}
	}

	app.Use(recover.New())
	app.Use(middleware.RequestID())
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} -  ${latency} ${method} ${path}\n",
		TimeFormat: "15:04:05",
		TimeZone:   "Local",
	}))

	RegisterHealthRoutes(app, d)

	// The factory must be total over the scheme enum; an unmapped scheme is
	// a deployment error surfaced here, at startup.
	validators, err := scheme.NewValidatorFactory()
	if err != nil {
		return err
	}

	var userRepo user.Repository
	if d.DB != nil {
		userRepo = user.NewPostgresRepository(d.DB)
	} else {
		userRepo = user.NewMemoryRepository()
	}
	var walletRepo wallet.Repository
	if d.DB != nil {
		walletRepo = wallet.NewPostgresRepository(d.DB)
	} else {
		walletRepo = wallet.NewMemoryRepository()
	}

	userSvc := user.NewService(d.Cfg, d.Logger, userRepo, validators)
	walletCache := cache.New(d.Cache, d.Cfg.WalletCacheTTL)
	walletSvc := wallet.NewService(d.Logger, walletRepo, validators, walletCache)

	userHandler := user.NewHandler(userSvc)
	walletHandler := wallet.NewHandler(walletSvc, userSvc)

	api := app.Group("/api/v1")

	// Public routes
	api.Post("/user/register", userHandler.Register)
	api.Post("/user/login", userHandler.Login)

	// Protected routes
	jwtmw := middleware.JWTAuth(d.Cfg.JWTSecret)
	api.Get("/user/me", jwtmw, userHandler.Me)

	wallets := api.Group("/wallet", jwtmw)
	wallets.Post("/new", walletHandler.Create)
	wallets.Get("/all", walletHandler.List)
	wallets.Get("/:id", walletHandler.Get)
	wallets.Delete("/:id", walletHandler.Delete)

	return nil
}
