package main

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"

	"OperatorsClub/src/core/config"
	"OperatorsClub/src/core/database"
	"OperatorsClub/src/core/notify"
	"OperatorsClub/src/core/router"
)

func main() {
	// Initialize the Fiber app
	app := fiber.New()

	// Middleware
	app.Use(recover.New())   // Recover middleware to handle panics
	app.Use(cors.New())      // CORS middleware for cross-origin requests
	app.Use(requestid.New()) // Middleware to generate unique request IDs

	// Setup environment variables
	config.SetupEnv()

	// Connect to the database once and hand the connection to the routes
	db, err := database.Connect()
	if err != nil {
		log.Fatalf("Error connecting to the database: %v", err)
	}
	fmt.Println("Database successfully connected!")

	// The hosted schema is managed by the platform; migrate only when asked
	if config.Config("DB_AUTO_MIGRATE") == "true" {
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Error migrating the database: %v", err)
		}
	}

	// Chat notifier for form submissions; disabled when the URL is unset
	notifier := notify.NewChatNotifier(config.Config("CHAT_WEBHOOK_URL"))

	// Set up routes
	router.InitialiseAndSetupRoutes(app, db, notifier)

	// Get port from config and start the server
	port := config.Config("APP_PORT")
	if port == "" {
		port = "8080"
	}
	log.Fatal(app.Listen(fmt.Sprintf(":%s", port)))
}
