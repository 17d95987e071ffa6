package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config contains all runtime settings for the document vault service.
type Config struct {
	BindAddr         string
	ShutdownTimeout  time.Duration
	MetricsNamespace string

	ProjectID           string
	RenditionsBucket    string
	FirestoreCollection string
	SignedURLTTL        time.Duration

	HashCost int
}

// Load reads environment variables and applies safe defaults. The GCP
// project and the renditions bucket have no sensible defaults and must be
// set.
func Load() (Config, error) {
	cfg := Config{
		BindAddr:            envOrDefault("APP_BIND_ADDR", ":8080"),
		MetricsNamespace:    envOrDefault("APP_METRICS_NAMESPACE", "pdfvault"),
		ProjectID:           envOrDefault("PROJECT_ID", ""),
		RenditionsBucket:    envOrDefault("RENDITIONS_BUCKET", ""),
		FirestoreCollection: envOrDefault("FIRESTORE_COLLECTION", "documents"),
	}

	if cfg.ProjectID == "" {
		return Config{}, fmt.Errorf("PROJECT_ID environment variable must be set")
	}
	if cfg.RenditionsBucket == "" {
		return Config{}, fmt.Errorf("RENDITIONS_BUCKET environment variable must be set")
	}

	var err error
	if cfg.ShutdownTimeout, err = durationEnv("APP_SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.SignedURLTTL, err = durationEnv("SIGNED_URL_TTL", 7*24*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.HashCost, err = intEnv("BCRYPT_COST", 0); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}

func intEnv(key string, fallback int) (int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok || raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}
