package utils

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Catalog   CatalogConfig
	Discovery DiscoveryConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type SessionConfig struct {
	ExpiryHours int
}

// CatalogConfig describes the external movie metadata service (OMDb).
type CatalogConfig struct {
	BaseURL   string
	APIKey    string
	Timeout   time.Duration
	RateLimit float64 // requests per second, 0 disables limiting
	RateBurst int
}

// DiscoveryConfig drives the default "no filter" movie list.
type DiscoveryConfig struct {
	Genres      []string
	MaxPage     int
	Concurrency int
}

const defaultGenres = "Romance,Comedy,Action,Horror,Animation,Sci-Fi"

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("APP_NAME", "movie-review")
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("LOG_PATH", "logs/")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("SESSION_EXPIRY_HOURS", 24)
	viper.SetDefault("OMDB_BASE_URL", "http://www.omdbapi.com/")
	viper.SetDefault("OMDB_TIMEOUT", "10s")
	viper.SetDefault("OMDB_RATE_LIMIT", 10)
	viper.SetDefault("OMDB_RATE_BURST", 10)
	viper.SetDefault("DISCOVERY_GENRES", defaultGenres)
	viper.SetDefault("DISCOVERY_MAX_PAGE", 5)
	viper.SetDefault("DISCOVERY_CONCURRENCY", 6)

	// .env is optional, plain environment variables are enough in containers
	if err := viper.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Session: SessionConfig{
			ExpiryHours: viper.GetInt("SESSION_EXPIRY_HOURS"),
		},
		Catalog: CatalogConfig{
			BaseURL:   viper.GetString("OMDB_BASE_URL"),
			APIKey:    viper.GetString("OMDB_API_KEY"),
			Timeout:   viper.GetDuration("OMDB_TIMEOUT"),
			RateLimit: viper.GetFloat64("OMDB_RATE_LIMIT"),
			RateBurst: viper.GetInt("OMDB_RATE_BURST"),
		},
		Discovery: DiscoveryConfig{
			Genres:      SplitList(viper.GetString("DISCOVERY_GENRES")),
			MaxPage:     viper.GetInt("DISCOVERY_MAX_PAGE"),
			Concurrency: viper.GetInt("DISCOVERY_CONCURRENCY"),
		},
	}

	return config, nil
}

// DefaultDiscoveryConfig returns the genre rotation used when nothing is configured.
func DefaultDiscoveryConfig() DiscoveryConfig {
	return DiscoveryConfig{
		Genres:      SplitList(defaultGenres),
		MaxPage:     5,
		Concurrency: 6,
	}
}

// SplitList splits a comma separated value, dropping blanks.
func SplitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
