package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"

	"github.com/i474232898/skitrip-forecast/internal/forecast"
)

// AppConfig holds everything one build run needs. Defaults describe the Sol
// Mountain trip; every value can be overridden through the environment.
type AppConfig struct {
	Mountain forecast.Site `validate:"required"`
	Valley   forecast.Site `validate:"required"`

	TripStart string `validate:"required,datetime=2006-01-02"`
	TripEnd   string `validate:"required,datetime=2006-01-02"`

	MetarStation string `validate:"required"`
	ECProvince   string `validate:"required"`
	ECStation    string `validate:"required"`

	// Region name keywords tried before the centroid fallback.
	AvalancheKeywords []string `validate:"min=1"`

	CacheFile  string `validate:"required"`
	OutputFile string `validate:"required"`

	HTTPTimeout  time.Duration `validate:"gt=0"`
	RateLimitRPS float64       `validate:"gt=0"`
	RateBurst    int           `validate:"gt=0"`

	// ServeAddr enables serve mode when non-empty, e.g. ":8080".
	ServeAddr       string
	RebuildInterval time.Duration `validate:"gt=0"`
}

// Load reads configuration from the environment with trip defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg := &AppConfig{
		Mountain: forecast.Site{
			Name:       getenvDefault("MOUNTAIN_NAME", "Sol Mountain (1900m)"),
			Lat:        getenvFloat("MOUNTAIN_LAT", 51.35),
			Lon:        getenvFloat("MOUNTAIN_LON", -117.95),
			ElevationM: getenvInt("MOUNTAIN_ELEV", 1900),
		},
		Valley: forecast.Site{
			Name:       getenvDefault("VALLEY_NAME", "Revelstoke (443m)"),
			Lat:        getenvFloat("VALLEY_LAT", 50.998),
			Lon:        getenvFloat("VALLEY_LON", -118.195),
			ElevationM: getenvInt("VALLEY_ELEV", 443),
		},
		TripStart:         getenvDefault("TRIP_START", "2026-03-01"),
		TripEnd:           getenvDefault("TRIP_END", "2026-03-07"),
		MetarStation:      getenvDefault("METAR_STATION", "CYRV"),
		ECProvince:        getenvDefault("EC_PROVINCE", "BC"),
		ECStation:         getenvDefault("EC_STATION", "s0000679"),
		AvalancheKeywords: []string{"monashee", "north columbia"},
		CacheFile:         getenvDefault("CACHE_FILE", "data.json"),
		OutputFile:        getenvDefault("OUTPUT_FILE", "index.html"),
		ServeAddr:         os.Getenv("SERVE_ADDR"),
		RateLimitRPS:      getenvFloat("RATE_LIMIT_RPS", 2),
		RateBurst:         getenvInt("RATE_BURST", 4),
	}

	timeout, err := time.ParseDuration(getenvDefault("HTTP_TIMEOUT", "15s"))
	if err != nil {
		return nil, fmt.Errorf("invalid HTTP_TIMEOUT: %w", err)
	}
	cfg.HTTPTimeout = timeout

	interval, err := time.ParseDuration(getenvDefault("REBUILD_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid REBUILD_INTERVAL: %w", err)
	}
	cfg.RebuildInterval = interval

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// Window builds the trip window from the configured dates.
func (c *AppConfig) Window() (forecast.TripWindow, error) {
	return forecast.NewTripWindow(c.TripStart, c.TripEnd)
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getenvFloat(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}
