package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Cache      CacheConfig
	Classifier ClassifierConfig
	Search     SearchConfig
	Vision     VisionConfig
	Ai         AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

// CacheConfig carries per-namespace TTLs and entry bounds for the result cache.
type CacheConfig struct {
	Backend           string // "memory" or "redis"
	ConversationTTL   time.Duration
	KnowledgeTTL      time.Duration
	PartnerSearchTTL  time.Duration
	ConversationSize  int
	KnowledgeSize     int
	PartnerSearchSize int
}

// ClassifierConfig carries the context-validation thresholds.
type ClassifierConfig struct {
	ConfidenceThreshold float64 // below this, knowledge corroboration is required
	IrrelevantThreshold float64 // irrelevantSimilarity * weight above this rejects
	IrrelevantWeight    float64
}

type SearchConfig struct {
	KnowledgeTimeout  time.Duration
	PartnerTimeout    time.Duration
	ValidationTimeout time.Duration
	MaxKnowledge      int
	MaxPartners       int
}

type VisionConfig struct {
	Endpoint string
	APIKey   string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini", "ollama", "jina" or "lexical" (no embedding calls)
	OllamaBaseURL     string
	OllamaModel       string
	GeminiAPIKey      string
	JinaAPIKey        string
	EmbedTopic        string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:8081"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Cache: CacheConfig{
			Backend:           getEnv("CACHE_BACKEND", "memory"),
			ConversationTTL:   getEnvAsDuration("CACHE_CONVERSATION_TTL", 24*time.Hour),
			KnowledgeTTL:      getEnvAsDuration("CACHE_KNOWLEDGE_TTL", 30*time.Minute),
			PartnerSearchTTL:  getEnvAsDuration("CACHE_PARTNER_SEARCH_TTL", 10*time.Minute),
			ConversationSize:  getEnvAsInt("CACHE_CONVERSATION_SIZE", 1000),
			KnowledgeSize:     getEnvAsInt("CACHE_KNOWLEDGE_SIZE", 500),
			PartnerSearchSize: getEnvAsInt("CACHE_PARTNER_SEARCH_SIZE", 200),
		},
		Classifier: ClassifierConfig{
			ConfidenceThreshold: getEnvAsFloat("CLASSIFIER_CONFIDENCE_THRESHOLD", 30),
			IrrelevantThreshold: getEnvAsFloat("CLASSIFIER_IRRELEVANT_THRESHOLD", 0.4),
			IrrelevantWeight:    getEnvAsFloat("CLASSIFIER_IRRELEVANT_WEIGHT", 0.5),
		},
		Search: SearchConfig{
			KnowledgeTimeout:  getEnvAsDuration("SEARCH_KNOWLEDGE_TIMEOUT", 5*time.Second),
			PartnerTimeout:    getEnvAsDuration("SEARCH_PARTNER_TIMEOUT", 3*time.Second),
			ValidationTimeout: getEnvAsDuration("SEARCH_VALIDATION_TIMEOUT", 2*time.Second),
			MaxKnowledge:      getEnvAsInt("SEARCH_MAX_KNOWLEDGE", 5),
			MaxPartners:       getEnvAsInt("SEARCH_MAX_PARTNERS", 5),
		},
		Vision: VisionConfig{
			Endpoint: getEnv("VISION_API_ENDPOINT", ""),
			APIKey:   getEnv("VISION_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			GeminiAPIKey:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			JinaAPIKey:        getEnv("JINA_API_KEY", ""),
			EmbedTopic:        getEnv("EMBED_CORPUS_TOPIC_NAME", "EMBED_CORPUS_ENTRY"),
		},
	}
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

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}
