// Command create-admin bootstraps a superuser account directly in the
// database, for first-time setup before any admin exists to promote
// others through the API.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/crypto/bcrypt"

	"reviewhub/database"
	"reviewhub/internal/api/models"
	"reviewhub/internal/api/repository"
	"reviewhub/internal/config"
)

func main() {
	username := flag.String("username", "", "admin username")
	email := flag.String("email", "", "admin email address")
	password := flag.String("password", "", "admin password (or set ADMIN_PASSWORD)")
	flag.Parse()

	if *password == "" {
		*password = os.Getenv("ADMIN_PASSWORD")
	}
	if *username == "" || *email == "" || *password == "" {
		fmt.Fprintln(os.Stderr, "usage: create-admin -username NAME -email ADDR -password SECRET")
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		logger.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	}()

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
	if err != nil {
		logger.Error("could not hash password", "error", err)
		os.Exit(1)
	}
	hash := string(hashed)

	user := &models.User{
		Username:    *username,
		Email:       *email,
		Role:        models.RoleAdmin,
		IsSuperuser: true,
		Password:    &hash,
	}

	userRepo := repository.NewUserRepository(db)
	if err := userRepo.Create(context.Background(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			logger.Error("username or email already taken", "username", *username)
		} else {
			logger.Error("could not create admin", "error", err)
		}
		os.Exit(1)
	}

	logger.Info("superuser created", "username", user.Username, "id", user.ID)
}
