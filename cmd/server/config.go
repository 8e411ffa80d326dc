package main

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/dmitrymomot/workspacebilling/pkg/deletionguard"
	"github.com/dmitrymomot/workspacebilling/pkg/httpserver"
	"github.com/dmitrymomot/workspacebilling/pkg/redis"
)

type Config struct {
	AppEnv          string    `env:"APP_ENV" envDefault:"development"`
	ServiceName     string    `env:"SERVICE_NAME" envDefault:"workspacebilling"`
	LogLevel        string    `env:"LOG_LEVEL"`
	DefaultLanguage string    `env:"DEFAULT_LANGUAGE" envDefault:"en"`
	SettlementRoute string    `env:"SETTLEMENT_ROUTE" envDefault:"/settings/subscription"`
	AccountID       uuid.UUID `env:"SESSION_ACCOUNT_ID"`
	SeedFile        string    `env:"SEED_FILE"`

	HTTP  httpserver.Config
	Redis redis.Config
}

func (c *Config) Validate() error {
	if c.SettlementRoute == "" {
		c.SettlementRoute = deletionguard.DefaultSettlementRoute
	}
	if !strings.HasPrefix(c.SettlementRoute, "/") {
		return errors.New("SETTLEMENT_ROUTE must be an absolute path")
	}
	return nil
}
