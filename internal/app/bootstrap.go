package app

import (
	"fmt"
	"strings"

	"jobni/internal/config"
	"jobni/internal/delivery/http/middleware"
	"jobni/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(cfg config.Config, h routes.Handlers) *fiber.App {
	f := fiber.New(fiber.Config{
		AppName: cfg.App.AppName,
	})

	registerGlobalMiddleware(f, cfg)
	routes.NewRegistry(h).Register(f)

	return f
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	c, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	app := &App{
		Fiber:     New(cfg, c.Handlers()),
		Container: c,
	}
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config) {
	if app == nil {
		return
	}

	app.Use(middleware.NewAccessLogMiddleware().Middleware())
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.App.CORSOrigins,
		AllowHeaders: []string{fiber.HeaderAuthorization, fiber.HeaderContentType, middleware.HeaderRequestID},
	}))

	errMw := middleware.NewErrorMiddleware()
	app.Use(errMw.Middleware())
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
