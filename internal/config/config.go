package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Laky-64/gologging"
	"github.com/joho/godotenv"
)

// Cache backends.
const (
	BackendSQLite = "sqlite"
	BackendMongo  = "mongo"
	BackendMemory = "memory"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port     string
	LogLevel string

	AuddEndpoint   string
	AuddAPIToken   string
	Market         string
	ReturnMeta     []string
	RequestTimeout time.Duration
	MaxUploadBytes int64

	CacheBackend string
	CacheDBPath  string
	MongoURI     string
	MongoDB      string

	RecordSeconds int
}

// Load reads configuration from .env file (if present) and environment
// variables. The log level is applied before anything is logged.
func Load() *Config {
	envErr := godotenv.Load()

	logLevel := getEnv("LOG_LEVEL", "info")
	setLevel(ParseLevel(logLevel))
	if envErr != nil {
		gologging.DebugF("[config] no .env file found, using environment variables")
	}

	return &Config{
		Port:     getEnv("PORT", "8080"),
		LogLevel: logLevel,

		AuddEndpoint:   getEnv("AUDD_ENDPOINT", "https://api.audd.io/"),
		AuddAPIToken:   getEnv("AUDD_API_TOKEN", ""),
		Market:         getEnv("AUDD_MARKET", "us"),
		ReturnMeta:     splitList(getEnv("AUDD_RETURN", "")),
		RequestTimeout: getDuration("REQUEST_TIMEOUT", 30*time.Second),
		MaxUploadBytes: int64(getInt("MAX_UPLOAD_BYTES", 10<<20)),

		CacheBackend: strings.ToLower(getEnv("CACHE_BACKEND", BackendSQLite)),
		CacheDBPath:  getEnv("CACHE_DB_PATH", "recognition.sqlite3"),
		MongoURI:     getEnv("MONGO_URI", ""),
		MongoDB:      getEnv("MONGO_DB", "MusicRecognition"),

		RecordSeconds: getInt("RECORD_SECONDS", 10),
	}
}

var setLevel = gologging.SetLevel

// ApplyLogLevel sets the global gologging level from LOG_LEVEL.
func (c *Config) ApplyLogLevel() {
	setLevel(ParseLevel(c.LogLevel))
}

// ParseLevel maps debug, info, warn and error to gologging levels. Anything
// else is info.
func ParseLevel(level string) gologging.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return gologging.DebugLevel
	case "warn", "warning":
		return gologging.WarnLevel
	case "error":
		return gologging.ErrorLevel
	default:
		return gologging.InfoLevel
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, strconv.Itoa(fallback)))
	if err != nil || v <= 0 {
		gologging.WarnF("[config] invalid %s, using %d", key, fallback)
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(getEnv(key, fallback.String()))
	if err != nil || v < 0 {
		gologging.WarnF("[config] invalid %s, using %s", key, fallback)
		return fallback
	}
	return v
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
