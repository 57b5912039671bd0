package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type DB struct {
	DbHOST          string
	DbPORT          string
	DbUSER          string
	DbPASSWORD      string
	DbNAME          string
	DbSSLMODE       string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Migrate         bool
}

type MinIO struct {
	Endpoint   string
	AccessKey  string
	SecretKey  string
	BucketName string
	UseSSL     bool
	Region     string
	PublicURL  string
}

type Auth struct {
	JWTSecretKey  string
	TokenDuration time.Duration
	CookieName    string
	CookieSecure  bool
	CookieDomain  string
}

type Upload struct {
	MaxUploadSize      int64
	MaxPageImages      int
	MaxItineraryImages int
}

type Log struct {
	Level  string
	Format string
}

type RateLimit struct {
	RPS   float64
	Burst int
	// TrustedProxies lists proxy IPs or CIDRs allowed to set X-Forwarded-For.
	TrustedProxies []string
}

type Config struct {
	ServerPort      int
	ShutdownTimeout time.Duration
	FrontendURL     string
	MetricsEnabled  bool
	DB              DB
	MinIO           MinIO
	Auth            Auth
	Upload          Upload
	Log             Log
	RateLimit       RateLimit
}

func getEnv(key string, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return fallback
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

func getEnvAsList(key string) []string {
	var items []string
	for _, item := range strings.Split(os.Getenv(key), ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if size, err := strconv.ParseInt(value, 10, 64); err == nil {
			return size
		}
	}
	return defaultValue
}

func LoadDB() DB {
	return DB{
		DbHOST:          getEnv("DB_HOST", "localhost"),
		DbPORT:          getEnv("DB_PORT", "5432"),
		DbUSER:          getEnv("DB_USER", "postgres"),
		DbPASSWORD:      getEnv("DB_PASSWORD", "password"),
		DbNAME:          getEnv("DB_NAME", "travelbook"),
		DbSSLMODE:       getEnv("DB_SSLMODE", "disable"),
		MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
		MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
		ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		Migrate:         getEnvBool("DB_MIGRATE", true),
	}
}

func LoadMinIO() MinIO {
	return MinIO{
		Endpoint:   getEnv("MINIO_ENDPOINT", "localhost:9000"),
		AccessKey:  getEnv("MINIO_ACCESS_KEY", "minioadmin"),
		SecretKey:  getEnv("MINIO_SECRET_KEY", "minioadmin"),
		BucketName: getEnv("MINIO_BUCKET_NAME", "travel-book"),
		UseSSL:     getEnvBool("MINIO_USE_SSL", false),
		Region:     getEnv("MINIO_REGION", "us-east-1"),
		PublicURL:  getEnv("MINIO_PUBLIC_URL", "http://localhost:9000"),
	}
}

func LoadAuth() Auth {
	return Auth{
		JWTSecretKey:  getEnv("JWT_SECRET_KEY", ""),
		TokenDuration: getEnvAsDuration("TOKEN_DURATION", 24*time.Hour),
		CookieName:    getEnv("COOKIE_NAME", "user"),
		CookieSecure:  getEnvBool("COOKIE_SECURE", false),
		CookieDomain:  getEnv("COOKIE_DOMAIN", ""),
	}
}

func LoadUpload() Upload {
	return Upload{
		MaxUploadSize:      getEnvAsInt64("MAX_UPLOAD_SIZE", 10*1024*1024),
		MaxPageImages:      getEnvAsInt("MAX_PAGE_IMAGES", 10),
		MaxItineraryImages: getEnvAsInt("MAX_ITINERARY_IMAGES", 10),
	}
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: .env file not found, using environment variables")
	}

	return &Config{
		ServerPort:      getEnvAsInt("SERVER_PORT", 8080),
		ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 15*time.Second),
		FrontendURL:     getEnv("FRONTEND_URL", "*"),
		MetricsEnabled:  getEnvBool("METRICS_ENABLED", true),
		DB:              LoadDB(),
		MinIO:           LoadMinIO(),
		Auth:            LoadAuth(),
		Upload:          LoadUpload(),
		Log: Log{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "text"),
		},
		RateLimit: RateLimit{
			RPS:            getEnvAsFloat("RATE_LIMIT_RPS", 20),
			Burst:          getEnvAsInt("RATE_LIMIT_BURST", 40),
			TrustedProxies: getEnvAsList("TRUSTED_PROXIES"),
		},
	}
}
