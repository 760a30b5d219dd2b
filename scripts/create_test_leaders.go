package main

import (
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/clientwatch-team/clientwatch/internal/domain/entities"
	"github.com/clientwatch-team/clientwatch/internal/infrastructure/database"
	"github.com/clientwatch-team/clientwatch/pkg/config"
	pkgjwt "github.com/clientwatch-team/clientwatch/pkg/jwt"
)

func createTestLeaders() {
	log.Println("🚀 Starting test pod leader creation...")

	// Load configuration from .env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	log.Println("✅ Database connected successfully")

	// Initialize JWT manager
	jwtManager := pkgjwt.NewManager(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiry)

	// Define test pod leaders
	testLeaders := []struct {
		Email string
		Name  string
		Pod   string
	}{
		{Email: "alice@test.local", Name: "Alice", Pod: "pod-a"},
		{Email: "bob@test.local", Name: "Bob", Pod: "pod-b"},
		{Email: "charlie@test.local", Name: "Charlie", Pod: "pod-c"},
	}

	log.Println("🗑️  Cleaning up existing test pod leaders...")
	db.Where("email LIKE ?", "%@test.local").Delete(&entities.PodLeaderProfile{})

	log.Println("🔑 Creating test pod leaders and tokens...")

	for i, testLeader := range testLeaders {
		userID := uuid.New()
		leader := &entities.PodLeaderProfile{
			ID:    userID.String(),
			Email: testLeader.Email,
			Name:  testLeader.Name,
			Pod:   testLeader.Pod,
		}

		if err := db.Create(leader).Error; err != nil {
			log.Printf("❌ Failed to create pod leader %s: %v", testLeader.Email, err)
			continue
		}

		accessToken, err := jwtManager.GenerateAccessToken(userID, leader.Email, leader.Pod)
		if err != nil {
			log.Printf("❌ Failed to generate access token for %s: %v", testLeader.Email, err)
			continue
		}

		fmt.Printf("═══════════════════════════════════════════════════════\n")
		fmt.Printf("🟢 Pod leader %d: %s (%s)\n", i+1, testLeader.Name, testLeader.Pod)
		fmt.Printf("📧 Email: %s\n", testLeader.Email)
		fmt.Printf("🔐 Access Token (expiry %v):\n%s\n", cfg.JWT.AccessExpiry, accessToken)
	}

	fmt.Printf("═══════════════════════════════════════════════════════\n")
	log.Println("✅ Test pod leaders created")
}
