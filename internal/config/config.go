package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration values loaded from environment variables.
type Config struct {
	DatabaseURL     string
	JWTSecret       string
	HTTPPort        string
	TokenExpiration time.Duration

	// OpenAI completion API settings.
	OpenAIAPIKey  string
	OpenAIModel   string
	OpenAIBaseURL string // Override for non-default deployments; empty uses the public endpoint

	// Optional RFP delivery targets. Empty values disable the integration.
	SlackBotToken      string
	SlackChannelID     string
	NotionAPIKey       string
	NotionParentPageID string
}

// LoadConfig loads configuration from environment variables.
// It looks for a .env file first, then checks actual environment variables.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file (useful for development)
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: Could not load .env file. Using environment variables only.", err)
		// Don't fail if .env is not present, might be in production
	}

	port := getEnv("HTTP_PORT", "8080")
	jwtSecret := getEnv("JWT_SECRET", "default-super-secret-key") // CHANGE THIS IN PRODUCTION!
	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" {
		log.Fatal("DATABASE_URL environment variable is not set.")
	}

	tokenExpStr := getEnv("JWT_EXPIRATION_HOURS", "24")
	tokenExpHours, err := strconv.Atoi(tokenExpStr)
	if err != nil {
		log.Printf("Warning: Invalid JWT_EXPIRATION_HOURS '%s', using default 24h. Error: %v", tokenExpStr, err)
		tokenExpHours = 24
	}

	openAIKey := getEnv("OPENAI_API_KEY", "")
	if openAIKey == "" {
		log.Fatal("FATAL: OPENAI_API_KEY environment variable is not set.")
	}
	openAIModel := getEnv("OPENAI_MODEL", "gpt-4o-mini")

	cfg := &Config{
		HTTPPort:           port,
		JWTSecret:          jwtSecret,
		DatabaseURL:        dbURL,
		TokenExpiration:    time.Hour * time.Duration(tokenExpHours),
		OpenAIAPIKey:       openAIKey,
		OpenAIModel:        openAIModel,
		OpenAIBaseURL:      getEnv("OPENAI_BASE_URL", ""),
		SlackBotToken:      getEnv("SLACK_BOT_TOKEN", ""),
		SlackChannelID:     getEnv("SLACK_CHANNEL_ID", ""),
		NotionAPIKey:       getEnv("NOTION_API_KEY", ""),
		NotionParentPageID: getEnv("NOTION_PARENT_PAGE_ID", ""),
	}

	log.Printf("Loaded config: Port=%s, DB_URL=***, TokenExp=%s, Model=%s", cfg.HTTPPort, cfg.TokenExpiration, cfg.OpenAIModel)

	return cfg, nil
}

// getEnv retrieves an environment variable or returns a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
