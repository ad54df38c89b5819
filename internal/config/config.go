package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"gearrent/internal/domain"
)

type Config struct {
	Port          string
	DBDSN         string
	LogFile       string
	AdminPassword string
	WANumber      string
	ExtraDayRate  float64

	CartStore     string // sqlite | redis
	RedisAddr     string
	RedisPassword string

	OrderStore    string // sqlite | mongo
	MongoURI      string
	MongoDatabase string

	OpenAIBaseURL string
	OpenAIAPIKey  string
	OpenAIModel   string
}

func Load() Config {
	// .env is optional; real env vars win
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		DBDSN:         getEnv("DB_DSN", "gearrent.db"), // sqlite file in project root
		LogFile:       getEnv("LOG_FILE", "./gearrent.log"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "mamas123"),
		WANumber:      getEnv("WA_NUMBER", "6281234567890"),
		ExtraDayRate:  getEnvAsFloat("EXTRA_DAY_RATE", domain.DefaultExtraDayRate),
		CartStore:     getEnv("CART_STORE", "sqlite"),
		RedisAddr:     getEnv("REDIS_ADDRESS", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		OrderStore:    getEnv("ORDER_STORE", "sqlite"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DATABASE", "gearrent"),
		OpenAIBaseURL: getEnv("OPENAI_BASE_URL", ""),
		OpenAIAPIKey:  getEnv("OPENAI_API_KEY", ""),
		OpenAIModel:   getEnv("OPENAI_MODEL", "gpt-4o-mini"),
	}
	if cfg.ExtraDayRate < 0 {
		log.Printf("[config] EXTRA_DAY_RATE=%v is negative, using %v", cfg.ExtraDayRate, domain.DefaultExtraDayRate)
		cfg.ExtraDayRate = domain.DefaultExtraDayRate
	}

	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s CART_STORE=%s ORDER_STORE=%s EXTRA_DAY_RATE=%v AI=%t",
		cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.CartStore, cfg.OrderStore, cfg.ExtraDayRate, cfg.OpenAIAPIKey != "")
	return cfg
}

// Pricing returns the resolver configured with the extra-day rate.
func (c Config) Pricing() domain.Pricing {
	return domain.Pricing{ExtraDayRate: c.ExtraDayRate}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}
