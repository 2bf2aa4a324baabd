package app

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	"storefront/internal/config"
	"storefront/internal/handlers"
	"storefront/internal/middleware"
	"storefront/internal/models"
	"storefront/internal/repositories"
	"storefront/internal/responses"
	"storefront/internal/services"
	"storefront/pkg/database"
	"storefront/pkg/logger"
	"storefront/pkg/metrics"
)

const healthTimeout = 2 * time.Second

// Dependencies are the long-lived clients the HTTP application is built on.
// Publisher and Limiter are optional.
type Dependencies struct {
	Config    *config.Config
	DB        *gorm.DB
	Logger    *logger.Logger
	Publisher services.OrderEventPublisher
	Limiter   middleware.RateLimiter
	// Registry receives the service metrics; nil creates a fresh registry
	// with the Go and process collectors.
	Registry *prometheus.Registry
}

// Models lists every table the service owns, for AutoMigrate.
func Models() []any {
	return []any{&models.User{}, &models.Category{}, &models.Product{}, &models.Order{}, &models.OrderItem{}}
}

// NewApp wires repositories, services and handlers into a Fiber app.
func NewApp(deps Dependencies) *fiber.App {
	log := deps.Logger
	if log == nil {
		log = logger.Nop()
	}
	reg := deps.Registry
	if reg == nil {
		reg = prometheus.NewRegistry()
		reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	}

	// Initialize Repositories
	userRepo := repositories.NewGORMUserRepository(deps.DB)
	categoryRepo := repositories.NewGORMCategoryRepository(deps.DB)
	productRepo := repositories.NewGORMProductRepository(deps.DB)
	orderRepo := repositories.NewGORMOrderRepository(deps.DB)

	// Initialize Services
	authService := services.NewAuthService(userRepo, deps.Config.JWT.Secret)
	userService := services.NewUserService(userRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo)
	orderService := services.NewOrderService(orderRepo, productRepo, userRepo, deps.Publisher, metrics.NewOrderMetrics(reg), log)

	app := fiber.New(fiber.Config{
		AppName:      deps.Config.App.ServiceName,
		ErrorHandler: responses.ErrorHandler(log),
	})

	app.Use(requestid.New())
	app.Use(middleware.Metrics(metrics.NewHTTPMetrics(reg)))
	app.Use(middleware.Logging(log))
	app.Use(recover.New())

	app.Get("/health", healthHandler(deps.DB))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	guard := func(roles ...models.Role) fiber.Handler {
		return middleware.AuthRequired(authService, log, roles...)
	}
	loginLimit := middleware.RateLimit(middleware.RateLimitPolicy{
		Name:   "login",
		Limit:  int64(deps.Config.Redis.LoginRateLimit),
		Window: deps.Config.Redis.LoginRateWindow,
	}, deps.Limiter, log)

	handlers.NewAuthHandler(authService, log).RegisterRoutes(app, loginLimit)
	handlers.NewUserHandler(userService, log).RegisterRoutes(app, guard)
	handlers.NewCategoryHandler(categoryService, log).RegisterRoutes(app, guard)
	handlers.NewProductHandler(productService, log).RegisterRoutes(app, guard)
	handlers.NewOrderHandler(orderService, log).RegisterRoutes(app, guard)

	return app
}

func healthHandler(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), healthTimeout)
		defer cancel()

		if err := database.Ping(ctx, db); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
				"error":  err.Error(),
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
