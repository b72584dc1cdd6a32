package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process level configuration.
type Server struct {
	Addr               string
	KnowledgeBasePath  string
	WatchKnowledgeBase bool // reload KnowledgeBasePath when the file changes
	HistoryLimit       int
	ResultCacheSize    int
	EngineParallelism  int
	LogLevel           string
	LogFormat          string
	Redis              RedisConfig
	Tracing            TracingConfig
}

// RedisConfig configures the Redis client. An empty URL disables Redis.
type RedisConfig struct {
	URL          string
	KeyPrefix    string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// TracingConfig configures OTLP span export. An empty endpoint disables it.
type TracingConfig struct {
	Endpoint    string
	Insecure    bool
	SampleRatio float64
}

// DefaultHistoryLimit bounds the number of stored diagnoses.
const DefaultHistoryLimit = 50

// DefaultResultCacheSize is the number of engine evaluations kept for reuse.
const DefaultResultCacheSize = 256

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	return Server{
		Addr:               getenv("DIROK_ADDR", ":8080"),
		KnowledgeBasePath:  os.Getenv("DIROK_KB_PATH"),
		WatchKnowledgeBase: getenvBool("DIROK_KB_WATCH", false),
		HistoryLimit:       getenvInt("DIROK_HISTORY_LIMIT", DefaultHistoryLimit),
		ResultCacheSize:    getenvInt("DIROK_RESULT_CACHE_SIZE", DefaultResultCacheSize),
		EngineParallelism:  getenvInt("DIROK_ENGINE_PARALLELISM", 1),
		LogLevel:           getenv("DIROK_LOG_LEVEL", "info"),
		LogFormat:          getenv("DIROK_LOG_FORMAT", "json"),
		Redis: RedisConfig{
			URL:          os.Getenv("REDIS_URL"),
			KeyPrefix:    getenv("REDIS_KEY_PREFIX", "dirok:"),
			PoolSize:     getenvInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: getenvInt("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  getenvDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  getenvDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: getenvDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		},
		Tracing: TracingConfig{
			Endpoint:    os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
			Insecure:    getenvBool("OTEL_EXPORTER_OTLP_INSECURE", true),
			SampleRatio: getenvFloat("DIROK_TRACE_SAMPLE_RATIO", 1),
		},
	}
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getenvInt ignores unparsable and non-positive values.
func getenvInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getenvDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getenvBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

// getenvFloat accepts values in (0,1].
func getenvFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 || v > 1 {
		return fallback
	}
	return v
}
