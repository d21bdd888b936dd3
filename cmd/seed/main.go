package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"

	"havenagent/internal/database"
	"havenagent/internal/repository"
)

// Seeds the local database with an admin account plus a demo agent so
// the onboarding flow can be exercised end to end.
func main() {
	_ = godotenv.Load()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "havenagent.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db,
		&repository.UserModel{},
		&repository.ProfileModel{},
		&repository.OnboardingModel{},
		&repository.DocumentModel{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM documents")
	db.Exec("DELETE FROM onboarding")
	db.Exec("DELETE FROM profiles")
	db.Exec("DELETE FROM email_change_codes")
	db.Exec("DELETE FROM users")

	log.Println("Creating users...")

	now := time.Now()

	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := repository.UserModel{
		Email:        "admin@havenagent.ae",
		PasswordHash: string(adminHash),
		Role:         "admin",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(&admin).Error; err != nil {
		log.Fatal("create admin:", err)
	}

	agentHash, _ := bcrypt.GenerateFromPassword([]byte("agent12345"), bcrypt.DefaultCost)
	agent := repository.UserModel{
		Email:        "agent@havenagent.ae",
		PasswordHash: string(agentHash),
		Role:         "agent",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := db.Create(&agent).Error; err != nil {
		log.Fatal("create agent:", err)
	}

	phone := "+971 50 123 4567"
	profile := repository.ProfileModel{
		UserID:    agent.ID,
		FullName:  "Demo Agent",
		Phone:     &phone,
		UpdatedAt: now,
	}
	if err := db.Create(&profile).Error; err != nil {
		log.Fatal("create profile:", err)
	}

	record := repository.OnboardingModel{
		UserID:    agent.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Create(&record).Error; err != nil {
		log.Fatal("create onboarding record:", err)
	}

	log.Printf("Seed complete: admin=%s agent=%s", admin.Email, agent.Email)
}
