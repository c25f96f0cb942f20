package main

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Adarsh108-tech/MyTaskManager/internal/config"
	"github.com/Adarsh108-tech/MyTaskManager/internal/db"
	"github.com/Adarsh108-tech/MyTaskManager/internal/model"
	"github.com/Adarsh108-tech/MyTaskManager/internal/repository"
)

const (
	demoEmail    = "demo@mytaskmanager.local"
	demoPassword = "demo-password"
)

func main() {
	log.Println("Starting seed script...")

	// Load configuration
	cfg := config.Load()

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Fatalf("Failed to look up demo user: %v", err)
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
		if err != nil {
			log.Fatalf("Failed to hash demo password: %v", err)
		}

		user = &model.User{
			Name:         "Demo User",
			Email:        demoEmail,
			PasswordHash: string(hash),
			Hobbies:      []string{"reading", "running"},
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("Created demo user %s (password: %s)", demoEmail, demoPassword)
	} else {
		log.Printf("Demo user %s already exists, reusing", demoEmail)
	}

	today := time.Now().UTC().Format(model.DateLayout)
	existing, err := taskRepo.ListByOwnerAndDate(ctx, user.ID, today)
	if err != nil {
		log.Fatalf("Failed to list demo tasks: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("Demo user already has %d tasks for %s, nothing to do", len(existing), today)
		return
	}

	texts := []string{"wash dishes", "water the plants", "review pull requests"}
	for _, text := range texts {
		task := &model.Task{
			OwnerID: user.ID,
			Text:    text,
			Date:    today,
		}
		if err := taskRepo.Create(ctx, task); err != nil {
			log.Fatalf("Failed to create demo task %q: %v", text, err)
		}
	}
	log.Printf("Seeded %d tasks for %s", len(texts), today)
}
