package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Storage. DB_DRIVER is "sqlite" or "mongo".
	DBDriver      string `mapstructure:"DB_DRIVER"`
	SQLitePath    string `mapstructure:"SQLITE_PATH"`
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	// Redis backs the embedding cache. An empty address disables it.
	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	RedisPassword     string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB      int           `mapstructure:"REDIS_CACHE_DB"`
	EmbeddingCacheTTL time.Duration `mapstructure:"EMBEDDING_CACHE_TTL"`

	// Model backends. LLM_PROVIDER is "gemini", "openai", "llamacpp" or "none".
	LLMProvider          string `mapstructure:"LLM_PROVIDER"`
	GeminiAPIKey         string `mapstructure:"GEMINI_API_KEY"`
	GeminiModel          string `mapstructure:"GEMINI_MODEL"`
	GeminiEmbeddingModel string `mapstructure:"GEMINI_EMBEDDING_MODEL"`
	OpenAIAPIKey         string `mapstructure:"OPENAI_API_KEY"`
	OpenAIBaseURL        string `mapstructure:"OPENAI_BASE_URL"`
	OpenAIModel          string `mapstructure:"OPENAI_MODEL"`
	OpenAIEmbeddingModel string `mapstructure:"OPENAI_EMBEDDING_MODEL"`

	LLMTimeout         time.Duration `mapstructure:"LLM_TIMEOUT"`
	LLMMaxConcurrency  int64         `mapstructure:"LLM_MAX_CONCURRENCY"`
	MaxNewTokens       int           `mapstructure:"MAX_NEW_TOKENS"`
	PromptContextChars int           `mapstructure:"PROMPT_CONTEXT_CHARS"`

	// Retrieval and intent.
	KnowledgeBasePath          string  `mapstructure:"KNOWLEDGE_BASE_PATH"`
	RAGTopK                    int     `mapstructure:"RAG_TOP_K"`
	RAGConfidenceThreshold     float64 `mapstructure:"RAG_CONFIDENCE_THRESHOLD"`
	BookingSimilarityThreshold float64 `mapstructure:"BOOKING_SIMILARITY_THRESHOLD"`

	SessionIdleTTL time.Duration `mapstructure:"SESSION_IDLE_TTL"`

	RoomNumbers           []string `mapstructure:"ROOM_NUMBERS"`
	BookingIntentKeywords []string `mapstructure:"BOOKING_INTENT_KEYWORDS"`
	ConfirmationKeywords  []string `mapstructure:"CONFIRMATION_KEYWORDS"`
	DenialKeywords        []string `mapstructure:"DENIAL_KEYWORDS"`
	PriceInquiryKeywords  []string `mapstructure:"PRICE_INQUIRY_KEYWORDS"`
	TomorrowMarkers       []string `mapstructure:"TOMORROW_MARKERS"`
	BookingIntentPhrase   string   `mapstructure:"BOOKING_INTENT_PHRASE"`
}

var AppConfig Config

func newViper() *viper.Viper {
	v := viper.New()
	// Look for a config file named "config.yaml" in the current and "config" directory.
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetDefault("APP_PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("SQLITE_PATH", "./hotel_management.db")
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "laohotel")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("EMBEDDING_CACHE_TTL", time.Hour)

	v.SetDefault("LLM_PROVIDER", "gemini")
	v.SetDefault("GEMINI_API_KEY", "")
	v.SetDefault("GEMINI_MODEL", "models/gemini-1.5-pro")
	v.SetDefault("GEMINI_EMBEDDING_MODEL", "text-embedding-004")
	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_BASE_URL", "")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_EMBEDDING_MODEL", "text-embedding-3-small")

	v.SetDefault("LLM_TIMEOUT", 180*time.Second)
	v.SetDefault("LLM_MAX_CONCURRENCY", 1)
	v.SetDefault("MAX_NEW_TOKENS", 2048)
	v.SetDefault("PROMPT_CONTEXT_CHARS", 300)

	v.SetDefault("KNOWLEDGE_BASE_PATH", "./models/knowledge_base/knowledge_base.json")
	v.SetDefault("RAG_TOP_K", 2)
	v.SetDefault("RAG_CONFIDENCE_THRESHOLD", 0.4)
	v.SetDefault("BOOKING_SIMILARITY_THRESHOLD", 0.65)

	v.SetDefault("SESSION_IDLE_TTL", 30*time.Minute)

	v.SetDefault("ROOM_NUMBERS", []string{
		"101", "102", "103", "104", "201", "202", "203", "204", "205", "206", "207",
		"301", "302", "303", "304", "305", "306", "307", "401", "402", "403", "404",
		"405", "406", "407",
	})
	v.SetDefault("BOOKING_INTENT_KEYWORDS", []string{"ຈອງ", "book", "reserve", "booking", "reservation", "ຫ້ອງວ່າງ"})
	v.SetDefault("CONFIRMATION_KEYWORDS", []string{"yes", "ok", "y", "ແມ່ນ", "ຕົກລົງ", "confirm", "ແມ່ນແລ້ວ"})
	v.SetDefault("DENIAL_KEYWORDS", []string{"no", "cancel", "ບໍ່", "ຍົກເລີກ"})
	v.SetDefault("PRICE_INQUIRY_KEYWORDS", []string{"ລາຄາ", "price", "cost", "ເທົ່າໃດ", "how much", "ຄ່າຫ້ອງ", "ຄ່າໃຊ້ຈ່າຍ"})
	v.SetDefault("TOMORROW_MARKERS", []string{"tomorrow", "ມື້ອື່ນ"})
	v.SetDefault("BOOKING_INTENT_PHRASE", "ຂ້ອຍຕ້ອງການຈອງຫ້ອງ")
	return v
}

func LoadConfig() {
	v := newViper()
	// Automatically use environment variables where available.
	v.AutomaticEnv()
	if err := v.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := v.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

// Default returns the built-in defaults without reading files or the environment.
func Default() Config {
	var cfg Config
	if err := newViper().Unmarshal(&cfg); err != nil {
		log.Fatalf("Failed to build default config: %v", err)
	}
	return cfg
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
