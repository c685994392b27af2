package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"park-system/internal/config"
	"park-system/internal/database"
	"park-system/internal/models"
	"park-system/internal/repositories"
	"park-system/internal/utils"
)

// Creates the admin account, or resets its password when it already
// exists. Useful when the seed data was modified or the password lost.
func main() {
	name := flag.String("name", "Super Admin", "admin display name")
	email := flag.String("email", "admin", "admin login email")
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

	if err := db.EnsureIndexes(ctx); err != nil {
		log.WithError(err).Fatal("failed to ensure indexes")
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Admin password: ")
	password, _ := reader.ReadString('\n')
	password = strings.TrimSpace(password)
	if password == "" {
		log.Fatal("password cannot be empty")
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		log.WithError(err).Fatal("failed to hash password")
	}

	users := repositories.NewUserRepository(db)

	existing, err := users.GetByEmail(ctx, *email)
	switch {
	case err == nil:
		if !existing.IsAdmin() {
			log.Fatalf("account %s exists but is not an admin", *email)
		}
		if err := users.UpdatePasswordHash(ctx, existing.UserID, hash); err != nil {
			log.WithError(err).Fatal("failed to update admin password")
		}
		log.WithField("user_id", existing.UserID).Info("admin password reset")
	case errors.Is(err, models.ErrUserNotFound):
		admin := &models.User{
			UserID:       "admin01",
			Name:         *name,
			Email:        *email,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
		}
		if err := users.Create(ctx, admin); err != nil {
			log.WithError(err).Fatal("failed to create admin")
		}
		log.WithField("user_id", admin.UserID).Info("admin account created")
	default:
		log.WithError(err).Fatal("failed to look up admin account")
	}
}
