package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/taskdeck/internal/auth"
	"github.com/dmitrymomot/taskdeck/internal/config"
	"github.com/dmitrymomot/taskdeck/internal/cookie"
	"github.com/dmitrymomot/taskdeck/internal/httpapi"
	"github.com/dmitrymomot/taskdeck/internal/logger"
	"github.com/dmitrymomot/taskdeck/internal/server"
	"github.com/dmitrymomot/taskdeck/internal/session"
	"github.com/dmitrymomot/taskdeck/internal/storage"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	logOpt := logger.WithProduction(cfg.AppName)
	if cfg.Debug {
		logOpt = logger.WithDevelopment(cfg.AppName)
	}
	log := logger.New(logOpt)

	// Mongo connect handles auto-retry and ping internally.
	db, err := storage.ConnectMongoDatabase(ctx, cfg.Mongo)
	if err != nil {
		log.Error("Failed to connect to mongo", logger.Component("storage.mongo"), logger.Error(err))
		os.Exit(1)
	}

	users, err := storage.NewMongoUserRepository(ctx, db)
	if err != nil {
		log.Error("Failed to init user repository", logger.Component("storage.users"), logger.Error(err))
		os.Exit(1)
	}
	tasks, err := storage.NewMongoTaskRepository(ctx, db)
	if err != nil {
		log.Error("Failed to init task repository", logger.Component("storage.tasks"), logger.Error(err))
		os.Exit(1)
	}
	accounts := storage.NewMongoAccountRepository(db)

	healthchecks := []func(context.Context) error{storage.MongoHealthcheck(db.Client())}

	// Sessions live in redis when REDIS_URL is set, otherwise in mongo.
	var sessionStore session.Store
	if cfg.Redis.Enabled() {
		redisClient, err := storage.ConnectRedis(ctx, cfg.Redis)
		if err != nil {
			log.Error("Failed to connect to redis", logger.Component("storage.redis"), logger.Error(err))
			os.Exit(1)
		}
		sessionStore = session.NewRedisStore(redisClient)
		healthchecks = append(healthchecks, storage.RedisHealthcheck(redisClient))
	} else {
		sessionStore, err = session.NewMongoStore(ctx, db)
		if err != nil {
			log.Error("Failed to init session store", logger.Component("session.store"), logger.Error(err))
			os.Exit(1)
		}
	}

	sessions := session.NewManager(sessionStore, cfg.Session,
		session.WithLogger(log.With("component", "session")),
	)

	cookies, err := cookie.NewFromConfig(cfg.Cookie)
	if err != nil {
		log.Error("Failed to create cookie manager", logger.Component("cookie"), logger.Error(err))
		os.Exit(1)
	}

	api := httpapi.New(
		auth.NewService(users),
		sessions,
		cookies,
		tasks,
		accounts,
		httpapi.WithLogger(log.With("component", "http")),
		httpapi.WithCORS(cfg.CORS),
		httpapi.WithHealthchecks(healthchecks...),
	)

	srv, err := server.New(cfg.Server, server.WithLogger(log.With("component", "server")))
	if err != nil {
		log.Error("Failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(srv.Run(ctx, api.Router()))
	eg.Go(sessions.Run(ctx))

	if err := eg.Wait(); err != nil {
		log.Error("Failed to run server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}
