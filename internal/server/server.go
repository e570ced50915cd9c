// Package server contains the HTTP handlers for the menuboard API.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	_ "menuboard/docs" // swagger docs
	"menuboard/internal/bootstrap"
	"menuboard/internal/config"
	"menuboard/internal/events"
	"menuboard/internal/featureflags"
	"menuboard/internal/middleware"
	"menuboard/internal/models"
	"menuboard/internal/qr"
	"menuboard/internal/repository"
	"menuboard/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	publisher      events.OrderPublisher
	featureFlags   *featureflags.Manager
	accountRepo    repository.AccountRepository
	profileRepo    repository.ProfileRepository
	menuRepo       repository.MenuRepository
	tableRepo      repository.TableRepository
	orderRepo      repository.OrderRepository
	accountService *service.AccountService
	profileService *service.ProfileService
	menuService    *service.MenuService
	tableService   *service.TableService
	orderService   *service.OrderService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	rt, err := bootstrap.InitRuntime(cfg, bootstrap.Options{})
	if err != nil {
		return nil, err
	}
	return NewServerWithDeps(cfg, rt.DB, rt.Redis, rt.Publisher)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// A nil publisher disables order events.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, publisher events.OrderPublisher) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if publisher == nil {
		publisher = events.NoopPublisher{}
	}

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: middleware.InitMetrics("menuboard-api"),
		publisher:      publisher,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
		accountRepo:    repository.NewAccountRepository(db),
		profileRepo:    repository.NewProfileRepository(db),
		menuRepo:       repository.NewMenuRepository(db),
		tableRepo:      repository.NewTableRepository(db),
		orderRepo:      repository.NewOrderRepository(db),
	}
	server.initServices()
	if names := server.featureFlags.Names(); len(names) > 0 {
		middleware.Logger.Info("feature flags configured", slog.Any("flags", server.featureFlags.Raw()))
	}
	return server, nil
}

func (s *Server) initServices() {
	cacheTTL := time.Duration(s.config.MenuCacheTTLSeconds) * time.Second
	s.accountService = service.NewAccountService(s.accountRepo)
	s.profileService = service.NewProfileService(s.accountRepo, s.profileRepo, s.menuRepo)
	s.menuService = service.NewMenuService(s.menuRepo, s.profileRepo, cacheTTL)
	s.tableService = service.NewTableService(s.tableRepo, s.profileRepo,
		qr.NewTableCodes(s.config.PublicBaseURL), s.config.DefaultTableCount)
	s.orderService = service.NewOrderService(s.orderRepo, s.menuRepo, s.profileRepo, s.tableRepo,
		s.publisher, s.featureFlags)
}

// checkoutLimit caps orders per diner and restaurant.
var checkoutLimit = middleware.Limit{Name: "checkout", Requests: 20, Window: time.Minute, PerRestaurant: true}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	app.Use(recover.New())
	app.Use(requestid.New())

	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}
	app.Use(middleware.ContextMiddleware())

	app.Use(helmet.New())
	app.Use(middleware.StructuredLogger())

	// CORS runs before the limiter so rejected requests still carry CORS headers.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:3000,http://127.0.0.1:3000"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return models.RespondWithError(c, fiber.StatusTooManyRequests,
				&models.AppError{Code: "RATE_LIMITED", Message: "Too many requests, please try again later."})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	app.Get("/health", s.ReadinessCheck)

	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	api := app.Group("/api")
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Menuboard Metrics Dashboard",
	}))
	api.Get("/swagger/*", swagger.HandlerDefault)

	api.Post("/register", middleware.RateLimit(s.redis, middleware.Limit{Name: "register", Requests: 5, Window: 10 * time.Minute}), s.Register)

	auth := api.Group("/auth")
	auth.Post("/login", middleware.RateLimit(s.redis, middleware.Limit{Name: "login", Requests: 10, Window: 5 * time.Minute}), s.Login)
	auth.Post("/logout", s.AuthRequired(), s.Logout)

	// Customer-facing routes
	restaurants := api.Group("/restaurants/:restaurantID", middleware.RestaurantContext())
	restaurants.Get("/menu", s.GetPublicMenu)
	restaurants.Get("/tables/:table", s.GetTable)
	restaurants.Post("/orders", middleware.RateLimit(s.redis, checkoutLimit), s.Checkout)

	if s.featureFlags.Enabled(featureflags.DebugOrders) {
		api.Get("/debug/orders", s.DebugOrders)
	}

	// Bulk table creation takes the restaurant from the body and is registered
	// before the authenticated admin group.
	api.Post("/admin/tables/create", s.CreateTables)

	admin := api.Group("/admin", s.AuthRequired())
	admin.Post("/categories", s.ReplaceCategories)

	admin.Get("/menu", s.ListMenuItems)
	admin.Post("/menu/hidden", s.SetMenuItemHidden)
	admin.Post("/menu", s.CreateMenuItem)
	admin.Put("/menu", s.UpdateMenuItem)
	admin.Delete("/menu", s.DeleteMenuItem)

	admin.Get("/profile", s.GetDashboard)
	admin.Put("/profile", s.UpdateProfile)

	admin.Get("/tables", s.ListTables)
	admin.Get("/tables/:table/qr", s.GetTableQRCode)

	admin.Get("/orders", s.ListOrders)
}

// Start starts the server
func (s *Server) Start() error {
	app := fiber.New(fiber.Config{
		AppName:   "Menuboard API",
		BodyLimit: 4 * 1024 * 1024,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if fe, ok := err.(*fiber.Error); ok {
				return models.RespondWithError(c, fe.Code, &models.AppError{Message: fe.Message})
			}
			middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", slog.String("error", err.Error()))
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	middleware.Logger.Info("server starting", slog.String("port", s.config.Port))
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			middleware.Logger.Error("error shutting down HTTP server", slog.String("error", err.Error()))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			middleware.Logger.Error("error closing event publisher", slog.String("error", err.Error()))
		}
	}

	if s.db != nil {
		if sqlDB, err := s.db.DB(); err == nil {
			if cerr := sqlDB.Close(); cerr != nil {
				middleware.Logger.Error("error closing sql DB", slog.String("error", cerr.Error()))
			}
		}
	}

	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			middleware.Logger.Error("error closing redis", slog.String("error", rerr.Error()))
		}
	}

	middleware.Logger.Info("server shutdown complete")
	return nil
}
