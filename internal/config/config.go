package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost      string
	DBUser      string
	DBPassword  string
	DBName      string
	DBPort      string
	DatabaseURL string
	DBDriver    string

	AppPort string
	AppEnv  string
	Version string

	JWTSecret    string
	JWTPublicKey string
	JWTIssuer    string
	JWTAudience  string

	DefaultShipping float64
	DefaultLeadDays int

	StorageDriver          string
	StorageDir             string
	StorageBucket          string
	PublicBaseURL          string
	SupabaseURL            string
	SupabaseServiceRoleKey string
	MaxUploadMB            int64

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	InternalSecretKey string
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		DBHost:      os.Getenv("DB_HOST"),
		DBUser:      os.Getenv("DB_USER"),
		DBPassword:  os.Getenv("DB_PASSWORD"),
		DBName:      os.Getenv("DB_NAME"),
		DBPort:      getEnv("DB_PORT", "5432"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBDriver:    getEnv("DB_DRIVER", "postgres"),

		AppPort: getEnv("APP_PORT", "8080"),
		AppEnv:  getEnv("APP_ENV", "development"),
		Version: getEnv("APP_VERSION", "1.0.0"),

		JWTSecret:    os.Getenv("JWT_SECRET"),
		JWTPublicKey: os.Getenv("JWT_PUBLIC_KEY"),
		JWTIssuer:    os.Getenv("JWT_ISSUER"),
		JWTAudience:  os.Getenv("JWT_AUDIENCE"),

		DefaultShipping: getFloat("DEFAULT_SHIPPING", 200),
		DefaultLeadDays: getInt("DEFAULT_LEAD_DAYS", 7),

		StorageDriver:          getEnv("STORAGE_DRIVER", "local"),
		StorageDir:             getEnv("STORAGE_DIR", "./uploads"),
		StorageBucket:          getEnv("STORAGE_BUCKET", "pedidos-adjuntos"),
		PublicBaseURL:          os.Getenv("PUBLIC_BASE_URL"),
		SupabaseURL:            os.Getenv("SUPABASE_URL"),
		SupabaseServiceRoleKey: os.Getenv("SUPABASE_SERVICE_ROLE_KEY"),
		MaxUploadMB:            int64(getInt("MAX_UPLOAD_MB", 10)),

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       getInt("REDIS_DB", 0),

		InternalSecretKey: os.Getenv("INTERNAL_SECRET_KEY"),
	}

	if cfg.DBHost == "" && cfg.DatabaseURL == "" {
		log.Fatal("Environment variables not loaded properly")
	}

	if cfg.PublicBaseURL == "" {
		cfg.PublicBaseURL = "http://localhost:" + cfg.AppPort
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using %d", key, v, fallback)
		return fallback
	}
	return n
}

func getFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("invalid %s=%q, using %v", key, v, fallback)
		return fallback
	}
	return f
}
