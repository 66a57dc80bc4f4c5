package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr           string
	ServerLocation string
	ServiceDomain  string
	LogLevel       slog.Level
	DevMode        bool
	SecureCookies  bool
	PageCacheTTL   time.Duration
	Redis          RedisConfig
}

// RedisConfig configures the shared page cache. An empty URL disables Redis
// and the server falls back to a process-local cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// LoadDotEnv reads .env files into the environment without overriding
// variables that are already set. Missing files are ignored.
func LoadDotEnv(files ...string) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		_ = godotenv.Load(f)
	}
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	dev := os.Getenv("IS_DEV") == "1"
	return Server{
		Addr:           getString("LANDING_ADDR", ":8080"),
		ServerLocation: getString("SERVER_LOCATION", "N/A"),
		ServiceDomain:  os.Getenv("URL_LOCATION"),
		LogLevel:       parseLevel(os.Getenv("LOG_LEVEL")),
		DevMode:        dev,
		SecureCookies:  getBool("SECURE_COOKIES", !dev),
		PageCacheTTL:   getDuration("PAGE_CACHE_TTL", 120*time.Second),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			PoolSize:     getInt("REDIS_POOL_SIZE", 20),
			MinIdleConns: getInt("REDIS_MIN_IDLE_CONNS", 10),
			DialTimeout:  getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getDuration("REDIS_READ_TIMEOUT", time.Second),
			WriteTimeout: getDuration("REDIS_WRITE_TIMEOUT", time.Second),
		},
	}
}

func getString(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func parseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
