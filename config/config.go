package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppName  string
	Port     string
	LogLevel string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// ✅ Stats service
	StatsPort      string
	StatsDBName    string
	StatsServerURL string
	StatsTimeout   time.Duration
	ViewsCacheTTL  time.Duration

	// ✅ Redis Config
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	// ✅ Kafka Config (hits are sent over HTTP when no brokers are set)
	KafkaBrokers   []string
	KafkaHitsTopic string
	KafkaGroupID   string

	// Admin API is open when the secret is empty
	JWTAdminSecret string

	RateLimitPerMinute int64

	// Tracing is off when the exporter is empty
	TraceExporter   string
	TraceSampleRate float64
}

// Load reads environment variables and returns a Config object
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file, using environment variables")
	}

	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))
	statsTimeout, _ := strconv.Atoi(getEnv("STATS_TIMEOUT_SECONDS", "5"))
	viewsTTL, _ := strconv.Atoi(getEnv("VIEWS_CACHE_TTL_SECONDS", "30"))
	sampleRate, _ := strconv.ParseFloat(getEnv("OTEL_TRACES_SAMPLE_RATE", "1"), 64)
	rateLimit, _ := strconv.ParseInt(getEnv("RATE_LIMIT_PER_MINUTE", "600"), 10, 64)

	return &Config{
		AppName:  getEnv("APP_NAME", "ewm-main-service"),
		Port:     getEnv("PORT", "8080"),
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     getEnv("DB_NAME", "ewm"),

		StatsPort:      getEnv("STATS_PORT", "9090"),
		StatsDBName:    getEnv("STATS_DB_NAME", "ewm_stats"),
		StatsServerURL: getEnv("STATS_SERVER_URL", "http://localhost:9090"),
		StatsTimeout:   time.Duration(statsTimeout) * time.Second,
		ViewsCacheTTL:  time.Duration(viewsTTL) * time.Second,

		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisDB:       redisDB,

		KafkaBrokers:   splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaHitsTopic: getEnv("KAFKA_HITS_TOPIC", "ewm.hits"),
		KafkaGroupID:   getEnv("KAFKA_GROUP_ID", "ewm-stats-service"),

		JWTAdminSecret: os.Getenv("JWT_ADMIN_SECRET"),

		RateLimitPerMinute: rateLimit,

		TraceExporter:   os.Getenv("OTEL_TRACES_EXPORTER"),
		TraceSampleRate: sampleRate,
	}
}

// ForStats returns the settings the stats service runs with: its own port,
// database and app name, sharing everything else.
func (c *Config) ForStats() *Config {
	out := *c
	out.AppName = getEnv("STATS_APP_NAME", "ewm-stats-service")
	out.Port = c.StatsPort
	out.DBName = c.StatsDBName
	return &out
}

// DSN builds the postgres connection string for gorm
func (c *Config) DSN() string {
	return "host=" + c.DBHost +
		" user=" + c.DBUser +
		" password=" + c.DBPassword +
		" dbname=" + c.DBName +
		" port=" + c.DBPort +
		" sslmode=disable TimeZone=UTC"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
