package configs

import (
	"fmt"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/meetzone/meetzone/internal/infrastructure/env"
)

type Config struct {
	HTTP          HTTPConfig          `koanf:"http"`
	RateLimiter   RateLimiterConfig   `koanf:"rateLimiter"`
	ScheduleStore ScheduleStoreConfig `koanf:"schedule_store"`
	Directory     DirectoryConfig     `koanf:"directory"`
	WorldClock    WorldClockConfig    `koanf:"world_clock"`
}

type HTTPConfig struct {
	Host           string        `koanf:"host"`
	Port           uint16        `koanf:"port"`
	AllowedOrigins []string      `koanf:"allowed_origins"`
	AllowedHeaders []string      `koanf:"allowed_headers"`
	ReadTimeout    time.Duration `koanf:"read_timeout"`
	WriteTimeout   time.Duration `koanf:"write_timeout"`
}

type RateLimiterConfig struct {
	MaxRatePerSecond int           `koanf:"maxRatePerSecond"`
	MaxBurst         int           `koanf:"maxBurst"`
	CacheTTL         time.Duration `koanf:"cacheTTL"`
	SourceHeaderKey  string        `koanf:"sourceHeaderKey"`
}

type ScheduleStoreConfig struct {
	Capacity   uint          `koanf:"capacity"`
	IdleExpiry time.Duration `koanf:"idle_expiry"`
}

type DirectoryConfig struct {
	CountriesURL string        `koanf:"countries_url"`
	WorldTimeURL string        `koanf:"world_time_url"`
	FetchTimeout time.Duration `koanf:"fetch_timeout"`
}

type WorldClockConfig struct {
	TickInterval time.Duration `koanf:"tick_interval"`
}

func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Load from YAML file if it exists
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			// Only return error if file was explicitly provided but failed to load
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	// Apply defaults and environment variable overrides
	applyDefaults(k)
	applyEnvOverrides(k)

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

func applyDefaults(k *koanf.Koanf) {
	// HTTP defaults
	setDefault(k, "http.host", "0.0.0.0")
	setDefault(k, "http.port", 8080)
	setDefault(k, "http.read_timeout", 10*time.Second)
	setDefault(k, "http.write_timeout", 30*time.Second)
	setDefault(k, "http.allowed_origins", []string{"*"})
	setDefault(k, "http.allowed_headers", []string{"Content-Type", "Authorization"})

	// Rate limiter defaults
	setDefault(k, "rateLimiter.maxRatePerSecond", 10)
	setDefault(k, "rateLimiter.maxBurst", 20)
	setDefault(k, "rateLimiter.cacheTTL", 5*time.Minute)
	setDefault(k, "rateLimiter.sourceHeaderKey", "X-Forwarded-For")

	// Store defaults
	setDefault(k, "schedule_store.capacity", 100)
	setDefault(k, "schedule_store.idle_expiry", time.Hour)

	// Remote directory sources
	setDefault(k, "directory.countries_url", "https://restcountries.com/v3.1")
	setDefault(k, "directory.world_time_url", "http://worldtimeapi.org/api")
	setDefault(k, "directory.fetch_timeout", 10*time.Second)

	// World clock feed
	setDefault(k, "world_clock.tick_interval", time.Second)
}

func applyEnvOverrides(k *koanf.Koanf) {
	// HTTP config from env
	if host := env.GetString("HTTP_HOST", ""); host != "" {
		k.Set("http.host", host)
	}
	if port := env.GetInt("HTTP_PORT", 0); port > 0 {
		k.Set("http.port", port)
	}
	if readTimeout := env.GetInt("HTTP_READ_TIMEOUT_SECONDS", 0); readTimeout > 0 {
		k.Set("http.read_timeout", time.Duration(readTimeout)*time.Second)
	}
	if writeTimeout := env.GetInt("HTTP_WRITE_TIMEOUT_SECONDS", 0); writeTimeout > 0 {
		k.Set("http.write_timeout", time.Duration(writeTimeout)*time.Second)
	}

	// Rate limiter config from env
	if maxRate := env.GetInt("RATE_LIMIT_MAX_RATE_PER_SECOND", 0); maxRate > 0 {
		k.Set("rateLimiter.maxRatePerSecond", maxRate)
	}
	if maxBurst := env.GetInt("RATE_LIMIT_MAX_BURST", 0); maxBurst > 0 {
		k.Set("rateLimiter.maxBurst", maxBurst)
	}
	if cacheTTL := env.GetInt("RATE_LIMIT_CACHE_TTL_MINUTES", 0); cacheTTL > 0 {
		k.Set("rateLimiter.cacheTTL", time.Duration(cacheTTL)*time.Minute)
	}
	if sourceKey := env.GetString("RATE_LIMIT_SOURCE_HEADER_KEY", ""); sourceKey != "" {
		k.Set("rateLimiter.sourceHeaderKey", sourceKey)
	}

	// Store config from env
	if capacity := env.GetInt("SCHEDULE_STORE_CAPACITY", 0); capacity > 0 {
		k.Set("schedule_store.capacity", uint(capacity))
	}
	if idleExpiry := env.GetInt("SCHEDULE_STORE_IDLE_EXPIRY_MINUTES", 0); idleExpiry > 0 {
		k.Set("schedule_store.idle_expiry", time.Duration(idleExpiry)*time.Minute)
	}

	// Directory sources from env
	if countriesURL := env.GetString("DIRECTORY_COUNTRIES_URL", ""); countriesURL != "" {
		k.Set("directory.countries_url", countriesURL)
	}
	if worldTimeURL := env.GetString("DIRECTORY_WORLD_TIME_URL", ""); worldTimeURL != "" {
		k.Set("directory.world_time_url", worldTimeURL)
	}
	if fetchTimeout := env.GetInt("DIRECTORY_FETCH_TIMEOUT_SECONDS", 0); fetchTimeout > 0 {
		k.Set("directory.fetch_timeout", time.Duration(fetchTimeout)*time.Second)
	}

	// World clock feed from env
	if tickMillis := env.GetInt("WORLD_CLOCK_TICK_MILLIS", 0); tickMillis > 0 {
		k.Set("world_clock.tick_interval", time.Duration(tickMillis)*time.Millisecond)
	}
}

// setDefault only sets the value if the key doesn't already exist
func setDefault(k *koanf.Koanf, key string, value interface{}) {
	if !k.Exists(key) {
		k.Set(key, value)
	}
}
