package main

import (
	"context"
	"log"

	"modacart/internal/auth"
	"modacart/internal/config"
	"modacart/internal/db"
	"modacart/internal/errors"
	"modacart/internal/model"
	"modacart/internal/repository"
)

type seedUser struct {
	Name     string
	Email    string
	Password string
	Role     model.Role
}

var demoUsers = []seedUser{
	{Name: "Demo Admin", Email: "admin@example.com", Password: "admin123", Role: model.RoleAdmin},
	{Name: "Demo Manager", Email: "manager@example.com", Password: "manager123", Role: model.RoleManager},
	{Name: "Demo Editor", Email: "editor@example.com", Password: "editor123", Role: model.RoleEditor},
	{Name: "Demo Customer", Email: "customer@example.com", Password: "customer123", Role: model.RoleCustomer},
}

func main() {
	log.Println("Starting seed script...")

	cfg := config.Load()
	if cfg.IsProduction() {
		log.Fatal("refusing to seed demo users in production")
	}

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	repo := repository.NewUserRepository(gormDB)
	ctx := context.Background()

	created, skipped := 0, 0
	for _, seed := range demoUsers {
		hash, err := auth.HashPassword(seed.Password)
		if err != nil {
			log.Fatalf("Failed to hash password for %s: %v", seed.Email, err)
		}

		user := &model.User{
			Name:         seed.Name,
			Email:        seed.Email,
			PasswordHash: hash,
			Role:         seed.Role,
			IsActive:     true,
		}
		switch err := repo.Create(ctx, user); err {
		case nil:
			created++
		case errors.ErrDuplicateEmail:
			skipped++
		default:
			log.Fatalf("Failed to create %s: %v", seed.Email, err)
		}
	}

	log.Printf("Seed complete: %d created, %d already present", created, skipped)
}
