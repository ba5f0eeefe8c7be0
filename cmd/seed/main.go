package main

import (
	"context"
	"flag"
	"log"
	"os"

	"campus-guide-be/internal/repository/implementation"
	"campus-guide-be/pkg/database"
	"campus-guide-be/pkg/guide/catalog"

	"github.com/joho/godotenv"
)

// Seeds the sample student record for one user so a fresh database behaves
// like the in-memory mode.
func main() {
	userID := flag.String("user", "", "user id (JWT user_id claim) to seed the sample catalog for")
	flag.Parse()

	if *userID == "" {
		log.Fatal("Error: -user is required")
	}

	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	repo := implementation.NewCatalogRepository(db)
	sample := catalog.Sample()
	if err := repo.ReplaceStudentCatalog(context.Background(), *userID, sample); err != nil {
		log.Fatalf("Error: seeding failed: %v", err)
	}

	log.Printf("Seeded %d courses, %d exams and %d fee items for %s", len(sample.Courses), len(sample.Exams), len(sample.Fees), *userID)
}
