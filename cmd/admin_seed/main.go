// Seeds the initial admin user from ADMIN_EMAIL / ADMIN_PASSWORD.
package main

import (
	"errors"
	"log"
	"os"

	"cardbank/internal/config"
	"cardbank/internal/models"
	"cardbank/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	if adminEmail == "" || adminPassword == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer func() {
		if repositories.DB != nil {
			if sqlDB, err := repositories.DB.DB(); err == nil {
				sqlDB.Close()
			}
		}
		if repositories.CacheService != nil {
			repositories.CacheService.Close()
		}
	}()

	users := repositories.NewUserRepository(repositories.DB)

	if _, err := users.GetByEmail(adminEmail); err == nil {
		log.Println("admin user already exists")
		return
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		log.Fatalf("failed to look up admin user: %v", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	admin := &models.User{
		Email:    adminEmail,
		Password: string(hashedPassword),
		Name:     "Administrator",
		Role:     models.RoleAdmin,
		Status:   "active",
	}
	if err := users.Create(admin); err != nil {
		log.Fatalf("failed to create admin user: %v", err)
	}

	log.Println("admin account created")
}
