package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	requestlog "github.com/gofiber/fiber/v2/middleware/logger"

	catalog "github.com/goliatone/go-catalog"
	"github.com/goliatone/go-catalog/middleware/authware"
)

func main() {
	cfg := catalog.ConfigFromEnv()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	if err := run(cfg); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

func run(cfg *catalog.Config) error {
	logger := newLogger()

	db, err := catalog.OpenDB(cfg.DatabaseDSN)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := catalog.CreateSchema(ctx, db); err != nil {
		return err
	}

	cipher, err := catalog.NewPriceCipher(cfg.PriceCipherSecret, cfg.PriceCipherMode, logger)
	if err != nil {
		return err
	}
	if cipher.Mode() == catalog.CipherModeLegacyCBC {
		logger.Info("price cipher running in legacy-cbc mode; ciphertext is deterministic and the mode is only meant for reading pre-migration records")
	}

	tokens := catalog.NewTokenService([]byte(cfg.JWTSigningKey), cfg.JWTExpiration, cfg.JWTIssuer, logger)

	users := catalog.NewUsersRepository(db)
	products := catalog.NewProductsRepository(db)
	leads := catalog.NewLeadsRepository(db)

	auther := catalog.NewAuthenticator(users, tokens).WithLogger(logger)
	service := catalog.NewCatalog(products, cipher).WithLogger(logger)
	sheet := catalog.NewSpecSheet(cipher).WithLogger(logger)

	app := fiber.New(fiber.Config{
		AppName:      "go-catalog",
		ErrorHandler: catalog.NewErrorHandler(logger, cfg.IsProduction()),
	})

	if !cfg.IsProduction() {
		app.Use(requestlog.New())
	}

	catalog.RegisterRoutes(app, catalog.Controllers{
		Auth:     catalog.NewAuthController(auther).WithLogger(logger),
		Products: catalog.NewProductController(service).WithLogger(logger),
		PDF:      catalog.NewPDFController(products, leads, sheet).WithLogger(logger),
	}, catalog.RouteGuards{
		Protected: authware.New(authware.Config{
			Tokens: tokens,
			Users:  users,
			Logger: logger,
		}),
		Optional: authware.New(authware.Config{
			Tokens:   tokens,
			Users:    users,
			Optional: true,
			Logger:   logger,
		}),
	})

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.HTTPAddr)
		errCh <- app.Listen(cfg.HTTPAddr)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	return app.ShutdownWithTimeout(10 * time.Second)
}
