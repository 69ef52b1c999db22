package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"ai-medassist-be/internal/constant"
)

// defaultChatModels backs CHAT_MODEL_CANDIDATES: a misconfigured empty list
// must never leave the orchestrator without a single candidate.
const defaultChatModels = "gemini-1.5-flash,gemini-1.5-pro"

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Triage   TriageConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	PipelineLogPath    string
	CorsAllowedOrigins string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini  string
	ProgressTopic string // OCR progress event topic
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	EmbeddingDims     int
	OllamaBaseURL     string
	OllamaModel       string
	VisionModel       string
	ChatProvider      string   // "gemini" or "ollama"
	ChatModels        []string // ordered candidates, first is preferred
	KnowledgeIndex    string   // which pgvector-backed table to query
	TessdataPrefix    string
}

type TriageConfig struct {
	EmergencyThreshold float64
	UnknownScore       float64
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	cfg := &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			PipelineLogPath:    getEnv("PIPELINE_LOG_PATH", "logs/pipeline.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini:  getEnv("GOOGLE_GEMINI_API_KEY", ""),
			ProgressTopic: getEnv("OCR_PROGRESS_TOPIC_NAME", constant.TopicOcrProgress),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "gemini"),
			EmbeddingDims:     getEnvAsInt("EMBEDDING_DIMS", 384),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "all-minilm"),
			VisionModel:       getEnv("VISION_MODEL", "gemini-1.5-flash"),
			ChatProvider:      getEnv("CHAT_PROVIDER", "gemini"),
			ChatModels:        getEnvAsList("CHAT_MODEL_CANDIDATES", defaultChatModels),
			KnowledgeIndex:    getEnv("KNOWLEDGE_INDEX", "knowledge_records"),
			TessdataPrefix:    getEnv("TESSDATA_PREFIX", ""),
		},
		Triage: TriageConfig{
			EmergencyThreshold: getEnvAsFloat("EMERGENCY_THRESHOLD", 7.0),
			UnknownScore:       getEnvAsFloat("UNKNOWN_CONDITION_SCORE", 5.0),
		},
	}

	// A comma-only CHAT_MODEL_CANDIDATES trims down to an empty list.
	if len(cfg.Ai.ChatModels) == 0 {
		log.Printf("CHAT_MODEL_CANDIDATES is empty, falling back to %s", defaultChatModels)
		cfg.Ai.ChatModels = strings.Split(defaultChatModels, ",")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key, fallback string) []string {
	raw := getEnv(key, fallback)
	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
