// Seeds the database with a test account and a spread of sample tasks,
// including an already-overdue one, for local development.
package main

import (
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/taskhub/taskhub-backend/internal/database"
	"github.com/taskhub/taskhub-backend/internal/domain"
	"github.com/taskhub/taskhub-backend/internal/repository"
	"github.com/taskhub/taskhub-backend/internal/service"

	_ "github.com/joho/godotenv/autoload"
)

func strPtr(s string) *string { return &s }

func main() {
	dbService := database.New()
	defer dbService.Close()
	gormDB := dbService.GetDB()

	if err := gormDB.AutoMigrate(&domain.User{}, &domain.Task{}); err != nil {
		log.Fatalf("Failed to auto-migrate database: %v", err)
	}

	userRepo := repository.NewGormUserRepository(gormDB)
	taskRepo := repository.NewGormTaskRepository(gormDB)

	exists, err := userRepo.EmailExists("test@example.com")
	if err != nil {
		log.Fatalf("Failed to check for existing test user: %v", err)
	}
	if exists {
		log.Println("Test user already seeded, nothing to do.")
		return
	}

	hash, err := service.NewPasswordHasher().Hash("password")
	if err != nil {
		log.Fatalf("Failed to hash seed password: %v", err)
	}

	now := time.Now()
	user := &domain.User{
		ID:              uuid.New().String(),
		Name:            "Test User",
		Email:           "test@example.com",
		PasswordHash:    hash,
		EmailVerifiedAt: &now,
	}
	if err := userRepo.Create(user); err != nil {
		log.Fatalf("Failed to create test user: %v", err)
	}

	tomorrow := now.AddDate(0, 0, 1)
	nextWeek := now.AddDate(0, 0, 7)
	twoDaysAgo := now.AddDate(0, 0, -2)

	tasks := []domain.Task{
		{Title: "Write project proposal", Description: strPtr("First draft for the new client."), Priority: domain.PriorityMedium, DueDate: &nextWeek},
		{Title: "Book dentist appointment", Priority: domain.PriorityLow},
		{Title: "Prepare sprint demo", Priority: domain.PriorityMedium, DueDate: &tomorrow},
		{Title: "Refill prescriptions", Priority: domain.PriorityLow},
		{Title: "Plan weekend trip", Description: strPtr("Check train times and hotels."), Priority: domain.PriorityMedium},
		{Title: "Send invoices", Priority: domain.PriorityMedium, Completed: true},
		{Title: "Update dependencies", Priority: domain.PriorityLow, Completed: true},
		{Title: "Archive old emails", Priority: domain.PriorityLow, Completed: true},
		{Title: "Fix production alert", Priority: domain.PriorityHigh, DueDate: &tomorrow},
		{Title: "Renew passport", Priority: domain.PriorityHigh},
		{Title: "Overdue Task - Review quarterly reports", Priority: domain.PriorityHigh, DueDate: &twoDaysAgo},
	}

	for i := range tasks {
		tasks[i].ID = uuid.New().String()
		tasks[i].UserID = user.ID
		if err := taskRepo.Create(&tasks[i]); err != nil {
			log.Fatalf("Failed to seed task %q: %v", tasks[i].Title, err)
		}
	}

	log.Printf("Seeded test user %s with %d tasks.", user.Email, len(tasks))
}
