package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/zenkart/zenkart-golang/internal/database"
	"github.com/zenkart/zenkart-golang/internal/handlers"
	"github.com/zenkart/zenkart-golang/internal/routes"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	if err := godotenv.Load(); err != nil {
		log.Println("WARNING: Could not find or load .env file. Relying on system environment variables.")
	}

	// 1. --- Database Connection ---
	db, err := database.OpenDB()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// 2. --- Application Setup ---
	app := &handlers.Handlers{DB: db}

	// 3. --- Router Setup ---
	router := routes.SetupRouter(app)

	// 4. --- Start Server ---
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting Zenkart API server on port %s...", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
