package app

import (
	"context"
	"time"

	"jobni/internal/config"
	"jobni/internal/database"
	dbpostgres "jobni/internal/database/postgres"
	"jobni/internal/delivery/http/handler"
	"jobni/internal/delivery/http/middleware"
	"jobni/internal/delivery/http/routes"
	"jobni/internal/domain/conversation"
	"jobni/internal/infrastructure/cache"
	"jobni/internal/infrastructure/events"
	"jobni/internal/invoice"
	"jobni/internal/observability"
	"jobni/internal/pkg/jwt"
	"jobni/internal/repository"
	"jobni/internal/usecase"
	ucapplication "jobni/internal/usecase/application"
	ucauth "jobni/internal/usecase/auth"
	ucconversation "jobni/internal/usecase/conversation"
	ucjob "jobni/internal/usecase/job"
	ucnotification "jobni/internal/usecase/notification"
	ucrating "jobni/internal/usecase/rating"
	ucreport "jobni/internal/usecase/report"
	ucsavedjob "jobni/internal/usecase/savedjob"
	ucuser "jobni/internal/usecase/user"
	"jobni/internal/ws"
)

type messageBus interface {
	PublishMessage(ctx context.Context, m conversation.Message) error
}

type Container struct {
	Config config.Config
	DB     database.DB
	Store  *repository.PostgresStore
	Redis  *cache.Redis
	Hub    *ws.Hub

	// RedisBus is nil when Redis is unavailable; push then stays local.
	RedisBus *events.RedisBus
	bus      messageBus

	Auth          *ucauth.Service
	Users         *ucuser.Service
	Jobs          *ucjob.Service
	Applications  *ucapplication.Service
	Conversations *ucconversation.Service
	Reports       *ucreport.Service
	Ratings       *ucrating.Service
	SavedJobs     *ucsavedjob.Service
	Notifications *ucnotification.Service
	Health        *usecase.Health
}

func NewContainer(cfg config.Config) (*Container, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return nil, err
	}

	return Wire(cfg, db, cache.NewRedis(ctx, cfg.Redis)), nil
}

// Wire builds every service on top of an open database and cache.
func Wire(cfg config.Config, db database.DB, rds *cache.Redis) *Container {
	if rds == nil {
		rds = cache.Disabled()
	}

	c := &Container{
		Config: cfg,
		DB:     db,
		Store:  repository.NewPostgresStore(db),
		Redis:  rds,
		Hub:    ws.NewHub(),
	}

	if rds.Available() {
		c.RedisBus = events.NewRedisBus(rds.Client(), c.Hub)
		c.bus = c.RedisBus
	} else {
		c.bus = events.NewDirectBus(c.Hub)
	}

	tokens := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	c.Auth = ucauth.NewService(c.Store.Users(), tokens)
	c.Users = ucuser.NewService(c.Store.Users())
	c.Jobs = ucjob.NewService(c.Store.Jobs(), c.Store.Users(), rds, cfg.Redis.TTL)
	c.Applications = ucapplication.NewService(c.Store, c.bus)
	c.Conversations = ucconversation.NewService(c.Store, c.bus)
	c.Reports = ucreport.NewService(c.Store, newRenderer(cfg.Invoice)).WithCurrency(cfg.Invoice.Currency)
	c.Ratings = ucrating.NewService(c.Store)
	c.SavedJobs = ucsavedjob.NewService(c.Store.SavedJobs(), c.Store.Jobs())
	c.Notifications = ucnotification.NewService(c.Store.Notifications())

	var redisPinger usecase.Pinger
	if rds.Available() {
		redisPinger = rds
	}
	c.Health = usecase.NewHealthUsecase(db, redisPinger)

	logger := observability.Component("app")
	logger.Debug().
		Bool("redis", rds.Available()).
		Str("invoice_renderer", cfg.Invoice.Renderer).
		Msg("container wired")

	return c
}

func newRenderer(cfg config.InvoiceConfig) invoice.Renderer {
	if cfg.Renderer == "pdf" {
		return invoice.NewPDFRenderer(cfg.ChromePath)
	}
	return invoice.NewHTMLRenderer()
}

// Handlers builds the HTTP surface over the container's services.
func (c *Container) Handlers() routes.Handlers {
	authMw := middleware.NewAuthMiddleware(c.Auth)

	return routes.Handlers{
		Auth:          authMw.Middleware(),
		Health:        handler.NewHealthHandler(c.Health),
		Account:       handler.NewAuthHandler(c.Auth),
		Users:         handler.NewUserHandler(c.Users),
		Jobs:          handler.NewJobsHandler(c.Jobs),
		Applications:  handler.NewApplicationHandler(c.Applications),
		SavedJobs:     handler.NewSavedJobHandler(c.SavedJobs),
		Conversations: handler.NewConversationHandler(c.Conversations, c.Config.MessagePollInterval),
		Reports:       handler.NewReportHandler(c.Reports),
		Ratings:       handler.NewRatingHandler(c.Ratings),
		Notifications: handler.NewNotificationHandler(c.Notifications),
		WS:            ws.NewHandler(c.Hub, c.Auth, c.Conversations),
	}
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.DB == nil {
		return nil
	}
	return c.DB.Close()
}
