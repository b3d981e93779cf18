package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"querium-backend/internal/shared/telemetry"
)

// Config holds application configuration.
type Config struct {
	Port                 string
	Env                  string
	CORSAllowOrigin      []string
	MaxUploadBytes       int64
	ExtractorMode        string
	ArchiveStore         string
	LocalStoreDir        string
	AWSRegion            string
	S3Bucket             string
	S3Prefix             string
	SSEKMSKeyID          string
	LogLevel             string
	LogPretty            bool
	RateLimitRPS         float64
	RateLimitBurst       int
	UploadRateLimitRPS   float64
	UploadRateLimitBurst int
	HTTPReadTimeout      time.Duration
	HTTPWriteTimeout     time.Duration
}

var defaults = map[string]any{
	"PORT":                    "8000",
	"ENV":                     "dev",
	"CORS_ALLOW_ORIGINS":      "http://localhost:3000",
	"MAX_UPLOAD_MB":           10,
	"EXTRACTOR_MODE":          "native",
	"ARCHIVE_STORE":           "none",
	"LOCAL_STORE_DIR":         "./data",
	"AWS_REGION":              "",
	"S3_BUCKET":               "",
	"S3_PREFIX":               "uploads",
	"SSE_KMS_KEY_ID":          "",
	"LOG_LEVEL":               "info",
	"LOG_PRETTY":              false,
	"RATE_LIMIT_RPS":          0.0,
	"RATE_LIMIT_BURST":        0,
	"UPLOAD_RATE_LIMIT_RPS":   0.0,
	"UPLOAD_RATE_LIMIT_BURST": 0,
	"HTTP_READ_TIMEOUT":       "30s",
	"HTTP_WRITE_TIMEOUT":      "60s",
}

// Load reads configuration from environment variables with sensible defaults.
// A local .env file and an optional YAML file named by CONFIG_FILE are merged
// in first; real environment variables always win.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	for _, path := range []string{".env", "cmd/.env"} {
		_ = godotenv.Load(path)
	}

	v := viper.New()
	for key, val := range defaults {
		v.SetDefault(key, val)
	}
	v.AutomaticEnv()

	if path := strings.TrimSpace(v.GetString("CONFIG_FILE")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			telemetry.Warn("config.file.unreadable", map[string]any{"path": path, "err": err.Error()})
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) Config {
	maxUploadMB := v.GetInt64("MAX_UPLOAD_MB")
	if maxUploadMB <= 0 {
		maxUploadMB = 10
	}

	return Config{
		Port:                 v.GetString("PORT"),
		Env:                  normalizeEnv(v.GetString("ENV")),
		CORSAllowOrigin:      splitAndTrim(v.GetString("CORS_ALLOW_ORIGINS")),
		MaxUploadBytes:       maxUploadMB << 20,
		ExtractorMode:        normalizeExtractorMode(v.GetString("EXTRACTOR_MODE")),
		ArchiveStore:         normalizeStoreType(v.GetString("ARCHIVE_STORE")),
		LocalStoreDir:        v.GetString("LOCAL_STORE_DIR"),
		AWSRegion:            v.GetString("AWS_REGION"),
		S3Bucket:             v.GetString("S3_BUCKET"),
		S3Prefix:             v.GetString("S3_PREFIX"),
		SSEKMSKeyID:          v.GetString("SSE_KMS_KEY_ID"),
		LogLevel:             v.GetString("LOG_LEVEL"),
		LogPretty:            v.GetBool("LOG_PRETTY"),
		RateLimitRPS:         v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:       v.GetInt("RATE_LIMIT_BURST"),
		UploadRateLimitRPS:   v.GetFloat64("UPLOAD_RATE_LIMIT_RPS"),
		UploadRateLimitBurst: v.GetInt("UPLOAD_RATE_LIMIT_BURST"),
		HTTPReadTimeout:      v.GetDuration("HTTP_READ_TIMEOUT"),
		HTTPWriteTimeout:     v.GetDuration("HTTP_WRITE_TIMEOUT"),
	}
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	var out []string
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "production", "prod":
		return "production"
	case "staging":
		return "staging"
	default:
		return "dev"
	}
}

func normalizeStoreType(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "s3":
		return "s3"
	case "local":
		return "local"
	default:
		return "none"
	}
}

func normalizeExtractorMode(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "placeholder", "stub":
		return "placeholder"
	default:
		return "native"
	}
}
