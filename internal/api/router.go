package api

import (
	"errors"
	"time"

	"billetera-ia/docs"
	"billetera-ia/internal/api/handlers"
	"billetera-ia/pkg/auth"
	"billetera-ia/pkg/config"
	"billetera-ia/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"go.uber.org/zap"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	Movement   *handlers.MovementHandler
	Tag        *handlers.TagHandler
	Suggestion *handlers.SuggestionHandler
}

func SetupRouter(
	h Handlers,
	jwtManager *auth.JWTManager,
	cfg *config.Config,
	appLogger *zap.Logger,
) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "billetera-ia",
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var e *fiber.Error
			if errors.As(err, &e) {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))
	app.Use(logger.New())

	// importing docs registers the OpenAPI document through its init()
	_ = docs.SwaggerInfo
	app.Get("/swagger/*", swagger.HandlerDefault)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api")

	loginLimiter := rateLimit(cfg.RateLimit.LoginPerMinute, func(c *fiber.Ctx) string {
		return c.IP()
	})
	api.Post("/login", loginLimiter, h.Auth.Login)

	authGroup := api.Group("/auth")
	authGroup.Post("/register", h.Auth.Register)
	authGroup.Post("/refresh", h.Auth.RefreshToken)

	protected := api.Group("/v1", middleware.AuthMiddleware(jwtManager, appLogger))

	suggestLimiter := rateLimit(cfg.RateLimit.SuggestPerMinute, func(c *fiber.Ctx) string {
		if id, ok := c.Locals(middleware.LocalUserID).(string); ok {
			return id
		}
		return c.IP()
	})

	movements := protected.Group("/movements")
	movements.Get("", h.Movement.ListMovements)
	movements.Post("", h.Movement.CreateMovement)
	movements.Post("/suggest", suggestLimiter, h.Suggestion.SuggestMovement)
	movements.Delete("/:id", h.Movement.DeleteMovement)

	tags := protected.Group("/tags")
	tags.Get("", h.Tag.ListTags)
	tags.Post("", h.Tag.CreateTag)
	tags.Post("/suggest", suggestLimiter, h.Suggestion.SuggestTag)
	tags.Delete("/:id", h.Tag.DeleteTag)

	appLogger.Info("Routes registered",
		zap.Int("login_per_minute", cfg.RateLimit.LoginPerMinute),
		zap.Int("suggest_per_minute", cfg.RateLimit.SuggestPerMinute),
	)

	return app
}

// rateLimit allows perMinute requests per key. A non-positive value
// disables the limit.
func rateLimit(perMinute int, key func(*fiber.Ctx) string) fiber.Handler {
	if perMinute <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:          perMinute,
		Expiration:   time.Minute,
		KeyGenerator: key,
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
			})
		},
	})
}
