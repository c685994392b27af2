package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"park-system/internal/cli"
	"park-system/internal/config"
	"park-system/internal/database"
	"park-system/internal/repositories"
	"park-system/internal/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := newLogger(cfg)

	db, err := database.NewConnection(database.Config{
		URI:            cfg.Database.URI,
		Name:           cfg.Database.Name,
		ConnectTimeout: time.Duration(cfg.Database.ConnectTimeout) * time.Second,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	ctx := context.Background()
	defer func() {
		if err := db.Close(ctx); err != nil {
			log.WithError(err).Error("failed to close database connection")
		}
	}()

	if err := db.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Fatal("failed to ensure indexes")
	}

	userRepo := repositories.NewUserRepository(db)
	parkRepo := repositories.NewParkRepository(db)
	merchRepo := repositories.NewMerchandiseRepository(db)
	orderRepo := repositories.NewOrderRepository(db)
	ticketRepo := repositories.NewTicketRepository(db)
	cartRepo := repositories.NewCartRepository(db)
	supportRepo := repositories.NewSupportRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)

	seeder := services.NewSeedService(userRepo, parkRepo, merchRepo, log)
	if seeded, err := seeder.SeedIfEmpty(ctx); err != nil {
		log.WithError(err).Fatal("failed to seed initial data")
	} else if seeded {
		log.Info("database seeded with initial data")
	}

	app := cli.NewApp(
		os.Stdin,
		os.Stdout,
		services.NewAuthService(userRepo, auditRepo, log),
		services.NewCatalogService(parkRepo, merchRepo, auditRepo, log),
		services.NewCheckoutService(db, parkRepo, merchRepo, orderRepo, ticketRepo, cartRepo, auditRepo, log),
		services.NewBookingService(db, parkRepo, ticketRepo, orderRepo, auditRepo, log),
		services.NewSupportService(supportRepo, log),
		services.NewReportService(orderRepo, userRepo, log),
		services.NewAuditService(auditRepo),
		log,
	)

	if err := app.Run(ctx); err != nil {
		log.WithError(err).Fatal("application error")
	}
}

func newLogger(cfg *config.Config) *logrus.Logger {
	log := logrus.New()
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	if cfg.App.Env == "development" {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}
	return log
}
