package configs

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server Server
	Remote Remote
	Store  Store
}

type Server struct {
	Port string
	Host string
	Mode string
}

type Remote struct {
	BaseURL        string
	TimeoutSeconds int
}

// Store selects the local durable store backend. "bolt" is the embedded
// default; "redis" and "mongo" point at external stores.
type Store struct {
	Backend  string
	BoltPath string
	Redis    Redis
	Mongo    Mongo
}

type Redis struct {
	Addr     string
	Password string
	DB       int
}

type Mongo struct {
	URI    string
	DBName string
}

func LoadConfig() *Config {
	// Best-effort: a missing .env file is fine in production.
	_ = godotenv.Load()

	return &Config{
		Server: Server{
			Port: getEnv("SERVER_PORT", "8090"),
			Host: getEnv("SERVER_HOST", "localhost"),
			Mode: getEnv("GIN_MODE", "debug"),
		},
		Remote: Remote{
			BaseURL:        getEnv("REMOTE_API_BASE_URL", "http://localhost:8080"),
			TimeoutSeconds: getEnvInt("REMOTE_API_TIMEOUT_SECONDS", 15),
		},
		Store: Store{
			Backend:  getEnv("STORE_BACKEND", "bolt"),
			BoltPath: getEnv("STORE_BOLT_PATH", "storefront.db"),
			Redis: Redis{
				Addr:     getEnv("STORE_REDIS_ADDR", "localhost:6379"),
				Password: getEnv("STORE_REDIS_PASSWORD", ""),
				DB:       getEnvInt("STORE_REDIS_DB", 0),
			},
			Mongo: Mongo{
				URI:    getEnv("STORE_MONGO_URI", "mongodb://localhost:27017"),
				DBName: getEnv("STORE_MONGO_DB_NAME", "storefront_cache"),
			},
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
