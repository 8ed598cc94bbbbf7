package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"foodorder/cmd"
	"foodorder/internal/adapters/out/postgres/cartrepo"
	"foodorder/internal/adapters/out/postgres/orderrepo"
	"foodorder/internal/adapters/out/postgres/partnerrepo"
	"foodorder/internal/adapters/out/postgres/productrepo"
	"foodorder/internal/adapters/out/postgres/taskrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// A missing .env is fine in containerized deployments; the environment
	// is already populated there.
	_ = godotenv.Load(".env")

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	if err := run(logger); err != nil {
		logger.Error("service failed", "error", err)
		os.Exit(1)
	}
}

func run(logger *slog.Logger) error {
	config, err := cmd.LoadConfig()
	if err != nil {
		return err
	}

	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&partnerrepo.PartnerDTO{},
		&taskrepo.AssignmentTaskDTO{},
		&productrepo.ProductDTO{},
		&cartrepo.CartItemDTO{},
	)
	if err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	dispatcher := cmd.NewKafkaDispatcher(config, logger)
	defer dispatcher.Close()

	root, err := cmd.NewCompositionRoot(config, gormDB, dispatcher, logger)
	if err != nil {
		return err
	}

	jobManager := root.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	e := echo.New()
	e.HideBanner = true
	// Request logging goes through slog; echo's own logger only reports
	// startup problems.
	e.Logger.SetLevel(log.ERROR)
	e.Use(middleware.Recover())
	root.CreateHTTPServer().RegisterRoutes(e)

	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start("0.0.0.0:" + config.HTTPPort)
	}()
	logger.Info("service started", "port", config.HTTPPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err = <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
	case sig := <-quit:
		logger.Info("shutting down", "signal", sig.String())

		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err = e.Shutdown(ctx); err != nil {
			return err
		}
	}

	return nil
}
