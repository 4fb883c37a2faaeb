// file: main.go
package main

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"hyperion/database"
	"hyperion/routes"
	"hyperion/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment")
	}

	database.Connect()
	database.MigrateTables()
	database.InitRedis()

	// Sweep checkout rows whose provider session can no longer complete.
	scheduler := cron.New()
	if _, err := scheduler.AddFunc("@hourly", func() {
		if _, err := services.ExpireStaleCheckouts(database.DB, 24*time.Hour); err != nil {
			log.Printf("cleanup: expiring stale checkouts: %v", err)
		}
	}); err != nil {
		log.Fatalf("Failed to schedule checkout cleanup: %v", err)
	}
	scheduler.Start()

	r := routes.SetupRouter()

	addr := os.Getenv("HYPERION_LISTEN_ADDR")
	if addr == "" {
		addr = ":8080"
	}
	log.Printf("Starting server on %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to run server: %v", err)
	}
}
