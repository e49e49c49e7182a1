package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config holds application configuration.
type Config struct {
	Port            string
	Env             string
	CORSAllowOrigin []string

	AccessPassword string

	GeminiAPIKeys     []string
	GeminiModel       string
	AuthorSearchModel string
	ThinkingBudget    int

	RenderDPI      float64
	PaddingPolicy  string
	MaxUploadBytes int64
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	// Best-effort load of local env files for dev convenience.
	loadEnvFiles(".env", "cmd/.env")

	env := normalizeEnv(getEnv("ENV", "dev"))

	keys := credentialPool()
	if len(keys) == 0 && env == "production" {
		log.Printf("GEMINI_API_KEY or GEMINI_API_KEYS is required in production")
	}

	return Config{
		Port:              getEnv("PORT", "8080"),
		Env:               env,
		CORSAllowOrigin:   splitAndTrim(getEnv("CORS_ALLOW_ORIGINS", "http://localhost:5173")),
		AccessPassword:    getEnv("ACCESS_PASSWORD", "chem2025"),
		GeminiAPIKeys:     keys,
		GeminiModel:       getEnv("GEMINI_MODEL", "gemini-3-flash-preview"),
		AuthorSearchModel: getEnv("AUTHOR_SEARCH_MODEL", "gemini-2.5-flash"),
		ThinkingBudget:    getEnvInt("THINKING_BUDGET", 10240),
		RenderDPI:         getEnvFloat("RENDER_DPI", 200),
		PaddingPolicy:     normalizePaddingPolicy(getEnv("PADDING_POLICY", "caption-inclusive")),
		MaxUploadBytes:    int64(getEnvInt("MAX_UPLOAD_MB", 50)) << 20,
	}
}

// credentialPool reads the Gemini credential pool: a comma-separated
// GEMINI_API_KEYS list, or a single GEMINI_API_KEY.
func credentialPool() []string {
	if raw := os.Getenv("GEMINI_API_KEYS"); strings.TrimSpace(raw) != "" {
		return splitAndTrim(raw)
	}
	if key := strings.TrimSpace(os.Getenv("GEMINI_API_KEY")); key != "" {
		return []string{key}
	}
	return nil
}

func getEnv(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

func getEnvInt(key string, def int) int {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvFloat(key string, def float64) float64 {
	if raw := strings.TrimSpace(os.Getenv(key)); raw != "" {
		if parsed, err := strconv.ParseFloat(raw, 64); err == nil && parsed > 0 {
			return parsed
		}
	}
	return def
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
	case "local":
		return "local"
	case "development", "dev":
		return "dev"
	default:
		return "dev"
	}
}

func normalizePaddingPolicy(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "caption-recovery":
		return "caption-recovery"
	default:
		return "caption-inclusive"
	}
}
