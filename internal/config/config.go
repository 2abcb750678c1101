package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Qdrant    QdrantConfig
	LLM       LLMConfig
	Search    SearchConfig
	Storage   StorageConfig
	Refresher RefresherConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

type QdrantConfig struct {
	URL        string
	APIKey     string
	Collection string
}

// LLMConfig selects and configures the text-generation and embedding
// provider. Provider "openai" talks to any OpenAI-compatible endpoint
// (chat completions + embeddings); "gemini" uses the Gemini API.
type LLMConfig struct {
	Provider       string
	BaseURL        string
	APIKey         string
	ChatModel      string
	EmbeddingModel string
	EmbeddingDim   int
	GeminiAPIKey   string
}

type SearchConfig struct {
	MaxCandidates        int
	ThresholdFilterLimit int
	AnalysisConcurrency  int
	AnalysisMaxTokens    int
	AnalysisTemperature  float64
}

type StorageConfig struct {
	UploadPath  string
	MaxFileSize int64
}

type RefresherConfig struct {
	Enabled  bool
	Interval time.Duration
	Batch    int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found. Using default values.")
	}

	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3000"),
			Env:  getEnv("ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "hr_platform"),
		},
		Qdrant: QdrantConfig{
			URL:        getEnv("QDRANT_URL", "http://localhost:6333"),
			APIKey:     getEnv("QDRANT_API_KEY", ""),
			Collection: getEnv("QDRANT_COLLECTION", "candidate_profiles"),
		},
		LLM: LLMConfig{
			Provider:       getEnv("LLM_PROVIDER", "openai"),
			BaseURL:        getEnv("LLM_BASE_URL", "http://localhost:4000/v1"),
			APIKey:         getEnv("LLM_API_KEY", ""),
			ChatModel:      getEnv("LLM_CHAT_MODEL", "Qwen2.5-72B-Instruct-AWQ"),
			EmbeddingModel: getEnv("LLM_EMBEDDING_MODEL", "bge-m3"),
			EmbeddingDim:   getEnvAsInt("LLM_EMBEDDING_DIM", 1024),
			GeminiAPIKey:   getEnv("GEMINI_API_KEY", ""),
		},
		Search: SearchConfig{
			MaxCandidates:        getEnvAsInt("SEARCH_MAX_CANDIDATES", 20),
			ThresholdFilterLimit: getEnvAsInt("SEARCH_THRESHOLD_FILTER_LIMIT", 50),
			AnalysisConcurrency:  getEnvAsInt("SEARCH_ANALYSIS_CONCURRENCY", 4),
			AnalysisMaxTokens:    getEnvAsInt("SEARCH_ANALYSIS_MAX_TOKENS", 1000),
			AnalysisTemperature:  getEnvAsFloat("SEARCH_ANALYSIS_TEMPERATURE", 0.3),
		},
		Storage: StorageConfig{
			UploadPath:  getEnv("UPLOAD_PATH", "./uploads"),
			MaxFileSize: getEnvAsInt64("MAX_FILE_SIZE", 10485760),
		},
		Refresher: RefresherConfig{
			Enabled:  getEnvAsBool("REFRESHER_ENABLED", true),
			Interval: getEnvAsDuration("REFRESHER_INTERVAL", "10m"),
			Batch:    getEnvAsInt("REFRESHER_BATCH", 25),
		},
	}
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseInt(valueStr, 10, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
