package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"github.com/franciscosanchezn/gin-user-directory/internal/config"
	"github.com/franciscosanchezn/gin-user-directory/internal/middleware"
	"github.com/franciscosanchezn/gin-user-directory/internal/models"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
)

func main() {
	// Parse command line flags
	name := flag.String("name", "Developer", "Display name claim")
	email := flag.String("email", "developer@example.com", "Email (preferred_username) claim")
	subject := flag.String("sub", "", "Subject claim (random UUID when empty)")
	ttl := flag.Duration("ttl", 24*time.Hour, "Token lifetime")
	flag.Parse()

	// Same secret resolution as the server
	_ = godotenv.Load()
	secret := config.GetEnvWithDefault("AUTH_TOKEN_SECRET", config.DefaultAuthTokenSecret)
	if config.GetEnvWithDefault("APP_ENV", config.EnvDevelopment) == config.EnvProduction {
		log.Fatal("Refusing to issue development tokens in production")
	}

	if *subject == "" {
		*subject = uuid.New().String()
	}

	token, err := middleware.SignIdentityToken([]byte(secret), models.Claims{
		"sub":                *subject,
		"name":               *name,
		"preferred_username": *email,
		"email":              *email,
	}, *ttl)
	if err != nil {
		log.Fatal("Failed to sign token:", err)
	}

	fmt.Printf("✓ Development identity token for '%s' (sub %s), valid for %s\n", *name, *subject, *ttl)
	fmt.Println(token)
	fmt.Println("\nUse it for the protected API routes:")
	fmt.Printf("curl -X POST http://localhost:8080/api/v1/users \\\n")
	fmt.Printf("  -H 'Authorization: Bearer %s' \\\n", token)
	fmt.Printf("  -H 'Content-Type: application/json' \\\n")
	fmt.Printf("  -d '{\"name\":\"Alice\",\"email\":\"alice@example.com\"}'\n")
}
