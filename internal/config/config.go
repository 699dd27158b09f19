package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DatabaseURL string
	UploadsDir  string

	// Gemini configuration
	GeminiAPIKey string
	GeminiModel  string

	// Parsing pipeline configuration
	FieldExtraction string // "keyword" or "ai"
	SkillMatch      string // "exact" or "substring"

	// Auth
	JWTSecret string

	// Logging
	LogJSON  bool
	LogDebug bool
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: could not load .env file, using environment variables")
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	uploadsDir := os.Getenv("UPLOADS_DIR")
	if uploadsDir == "" {
		uploadsDir = "./uploads"
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-flash"
	}

	strategy := os.Getenv("FIELD_EXTRACTION")
	if strategy == "" {
		strategy = "keyword"
	}

	skillMatch := os.Getenv("SKILL_MATCH")
	if skillMatch == "" {
		skillMatch = "exact"
	}

	return &Config{
		Port:            port,
		DatabaseURL:     os.Getenv("DATABASE_URL"),
		UploadsDir:      uploadsDir,
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     model,
		FieldExtraction: strategy,
		SkillMatch:      skillMatch,
		JWTSecret:       os.Getenv("JWT_SECRET"),
		LogJSON:         os.Getenv("LOG_JSON") == "true",
		LogDebug:        os.Getenv("LOG_DEBUG") == "true",
	}
}
