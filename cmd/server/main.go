package main

import (
	"context"
	"database/sql"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/gofiber/fiber/v2"
	"github.com/goliatone/go-accounts"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
)

// serverConfig is the process configuration. The signing secret and the
// algorithm identifier have no defaults: their absence is a startup-time
// fatal, never a per-request error.
type serverConfig struct {
	Addr        string        `env:"ADDR" envDefault:":8080"`
	DatabaseDSN string        `env:"DATABASE_DSN" envDefault:"file:accounts.db"`
	JWTSecret   string        `env:"JWT_SECRET,required"`
	JWTMethod   string        `env:"JWT_ALGORITHM,required"`
	TokenTTL    time.Duration `env:"TOKEN_TTL" envDefault:"900s"`
	ContextKey  string        `env:"AUTH_CONTEXT_KEY" envDefault:"identity"`
}

func (c serverConfig) GetSigningKey() string      { return c.JWTSecret }
func (c serverConfig) GetSigningMethod() string   { return c.JWTMethod }
func (c serverConfig) GetTokenTTL() time.Duration { return c.TokenTTL }
func (c serverConfig) GetContextKey() string      { return c.ContextKey }

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	var cfg serverConfig
	if err := env.Parse(&cfg); err != nil {
		return err
	}

	sqldb, err := sql.Open(sqliteshim.ShimName, cfg.DatabaseDSN)
	if err != nil {
		return err
	}

	db := bun.NewDB(sqldb, sqlitedialect.New())
	defer db.Close()

	ctx := context.Background()
	if err := accounts.RunMigrations(ctx, db); err != nil {
		return err
	}

	tokens, err := accounts.NewTokenService(cfg, nil)
	if err != nil {
		return err
	}

	store := accounts.NewUsersRepository(db)
	service := accounts.NewAccountService(store, tokens)
	controller := accounts.NewAuthController(service)

	app := fiber.New()

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	accounts.RegisterAuthRoutes(app, controller, tokens, cfg)

	errCh := make(chan error, 1)
	go func() {
		errCh <- app.Listen(cfg.Addr)
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		log.Printf("received %s, shutting down", sig)
		return app.Shutdown()
	}
}
