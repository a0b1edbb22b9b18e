package main

import (
	"log"

	_ "donation_platform/docs"
	"donation_platform/internal/adapter/http/routes"
	"donation_platform/internal/infrastructure/config"

	_ "github.com/joho/godotenv/autoload"
)

// @title           Donation Service API
// @version         1.0
// @description     Donation payments, refunds and campaign ledger reconciliation.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if cfg.JWTSecret == "" {
		log.Printf("[config] JWT_SECRET is empty; every authenticated route will answer 401")
	}
	routes.Run(cfg)
}
