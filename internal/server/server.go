// Package server assembles the Fiber application: middleware, health and
// metrics endpoints, and every REST route.
package server

import (
	"time"

	"agrofeira/internal/handlers"
	"agrofeira/internal/metrics"
	"agrofeira/internal/middleware"
	"agrofeira/internal/repositories"
	"agrofeira/internal/services"
	"agrofeira/pkg/logger"
	"agrofeira/pkg/token"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"gorm.io/gorm"
)

// Deps are the collaborators the application is built from.
type Deps struct {
	AppName    string
	DB         *gorm.DB
	Tokens     *token.Manager
	BcryptCost int
	Log        *logger.Logger
	Metrics    *metrics.Metrics
	// RequestLog enables fiber's access log. Tests usually leave it off.
	RequestLog bool
}

// New wires repositories, services and handlers over deps.DB and returns the
// ready-to-listen app.
func New(deps Deps) *fiber.App {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}
	m := deps.Metrics
	if m == nil {
		m = metrics.New("agrofeira")
	}

	// --- Repositories ---
	producerRepo := repositories.NewGORMProducerRepository(deps.DB)
	categoryRepo := repositories.NewGORMCategoryRepository(deps.DB)
	productRepo := repositories.NewGORMProductRepository(deps.DB)

	// --- Services ---
	authService := services.NewAuthService(producerRepo, deps.Tokens, log)
	producerService := services.NewProducerService(producerRepo, deps.BcryptCost)
	categoryService := services.NewCategoryService(categoryRepo)
	productService := services.NewProductService(productRepo, categoryRepo)

	// --- Handlers ---
	validate := handlers.NewValidator()
	authHandler := handlers.NewAuthHandler(authService, validate)
	producerHandler := handlers.NewProducerHandler(producerService, validate)
	categoryHandler := handlers.NewCategoryHandler(categoryService, validate)
	productHandler := handlers.NewProductHandler(productService, validate)

	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ErrorHandler: handlers.ErrorHandler(log),
	})

	// --- Middleware ---
	// Metrics sit outside recover so panicking requests are counted as 500s.
	app.Use(m.Middleware())
	app.Use(recover.New())
	if deps.RequestLog {
		app.Use(fiberlogger.New())
	}

	// --- Health and metrics ---
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", m.Handler())

	// --- API Routes ---
	auth := middleware.AuthRequired(authService)
	authHandler.RegisterRoutes(app)
	producerHandler.RegisterRoutes(app, auth)
	categoryHandler.RegisterRoutes(app, auth)
	productHandler.RegisterRoutes(app, auth)

	return app
}
