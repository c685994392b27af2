package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"park-system/internal/config"
	"park-system/internal/database"
	"park-system/internal/repositories"
	"park-system/internal/services"
)

// Reseeds the database with the demo dataset. With -force, any existing
// data is dropped first.
func main() {
	force := flag.Bool("force", false, "drop the existing database before seeding")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	db, err := database.NewConnection(database.Config{
		URI:            cfg.Database.URI,
		Name:           cfg.Database.Name,
		ConnectTimeout: time.Duration(cfg.Database.ConnectTimeout) * time.Second,
	})
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	ctx := context.Background()
	defer db.Close(ctx)

	if *force {
		fmt.Printf("This will DROP database %q and reseed it. Continue? (y/n): ", cfg.Database.Name)
		reader := bufio.NewReader(os.Stdin)
		answer, _ := reader.ReadString('\n')
		if strings.TrimSpace(strings.ToLower(answer)) != "y" {
			fmt.Println("Aborted.")
			return
		}
		if err := db.Drop(ctx); err != nil {
			log.WithError(err).Fatal("failed to drop database")
		}
		log.Info("database dropped")
	}

	if err := db.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Fatal("failed to ensure indexes")
	}

	seeder := services.NewSeedService(
		repositories.NewUserRepository(db),
		repositories.NewParkRepository(db),
		repositories.NewMerchandiseRepository(db),
		log,
	)

	seeded, err := seeder.SeedIfEmpty(ctx)
	if err != nil {
		log.WithError(err).Fatal("seeding failed")
	}
	if !seeded {
		log.Warn("database not empty; rerun with -force to drop and reseed")
		return
	}
	log.Info("seeding complete")
}
