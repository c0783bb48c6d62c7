package main

import (
	"github.com/dmitrymomot/taskdeck/internal/cookie"
	"github.com/dmitrymomot/taskdeck/internal/httpapi"
	"github.com/dmitrymomot/taskdeck/internal/server"
	"github.com/dmitrymomot/taskdeck/internal/session"
	"github.com/dmitrymomot/taskdeck/internal/storage"
)

// Config aggregates all application configuration loaded from environment
// variables.
type Config struct {
	AppName string `env:"APP_NAME" envDefault:"taskdeck"`
	Debug   bool   `env:"DEBUG" envDefault:"false"`

	Server  server.Config
	Mongo   storage.MongoConfig
	Redis   storage.RedisConfig
	Cookie  cookie.Config
	Session session.Config
	CORS    httpapi.CORSConfig
}
