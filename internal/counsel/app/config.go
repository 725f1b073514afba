package app

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	ProjectName string   // Optional: shown by GET / (default: Global Grad)
	APIPrefix   string   // Optional: API_V1_STR, prefix of every API route (default: /api/v1)
	CORSOrigins []string // Optional: BACKEND_CORS_ORIGINS, comma separated

	DatabaseURL string // Optional: postgres://..., sqlite://path or file:path. Empty runs without a database
	CatalogFile string // Optional: YAML catalog replacing the built-in one
	PepperFile  string // Optional: path to the password pepper (default: ./pepper)
	RedisURL    string // Optional: shares events between the API and the agent

	SecretKey      string        // Required in prod: HMAC key for session tokens
	Algorithm      string        // Optional: HS256, HS384 or HS512 (default: HS256)
	AccessTokenTTL time.Duration // Optional: ACCESS_TOKEN_EXPIRE_MINUTES (default: 30m)
	CookieSameSite string        // Optional: lax, strict or none (default: lax)
	CookieSecure   bool          // Optional: sets Secure on the session cookie

	GoogleClientID     string // Optional: enables POST /auth/google-login
	GoogleClientSecret string // Unused by ID token verification

	LiveKitURL       string
	LiveKitAPIKey    string
	LiveKitAPISecret string

	GeminiAPIKey string // Required by the agent
	GeminiModel  string

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // API server port (default: 8000)
	AgentPort           int           // Agent webhook port (default: 8081)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

// LoadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first without overriding set variables. When
// CONFIG_PATH names a YAML file of KEY: value pairs, its values fill in any
// variable the environment leaves unset.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()

	env := environment{}
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		file, err := loadConfigFile(path)
		if err != nil {
			return Config{}, err
		}
		env.file = file
	}

	cfg := Config{
		ProjectName: env.getOrDefault("PROJECT_NAME", "Global Grad"),
		APIPrefix:   strings.TrimSuffix(env.getOrDefault("API_V1_STR", "/api/v1"), "/"),
		CORSOrigins: env.getList("BACKEND_CORS_ORIGINS"),

		DatabaseURL: env.get("DATABASE_URL"),
		CatalogFile: env.get("CATALOG_FILE"),
		PepperFile:  env.getOrDefault("PEPPER_FILE", "pepper"),
		RedisURL:    env.get("REDIS_URL"),

		SecretKey:      env.get("SECRET_KEY"),
		Algorithm:      env.getOrDefault("ALGORITHM", "HS256"),
		AccessTokenTTL: time.Duration(env.getIntOrDefault("ACCESS_TOKEN_EXPIRE_MINUTES", 30)) * time.Minute,
		CookieSameSite: env.getOrDefault("COOKIE_SAMESITE", "lax"),
		CookieSecure:   env.getBoolOrDefault("COOKIE_SECURE", false),

		GoogleClientID:     env.get("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: env.get("GOOGLE_CLIENT_SECRET"),

		LiveKitURL:       env.get("LIVEKIT_URL"),
		LiveKitAPIKey:    env.get("LIVEKIT_API_KEY"),
		LiveKitAPISecret: env.get("LIVEKIT_API_SECRET"),

		GeminiAPIKey: firstNonEmpty(env.get("GEMINI_API_KEY"), env.get("GOOGLE_API_KEY")),
		GeminiModel:  env.get("GEMINI_MODEL"),

		Env:                 env.getOrDefault("ENV", "dev"),
		LogLevel:            env.getOrDefault("LOG_LEVEL", "info"),
		LogFormat:           env.getOrDefault("LOG_FORMAT", "json"),
		Port:                env.getIntOrDefault("PORT", 8000),
		AgentPort:           env.getIntOrDefault("AGENT_PORT", 8081),
		ShutdownGracePeriod: env.getDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	if cfg.Env == "prod" && cfg.SecretKey == "" {
		return Config{}, fmt.Errorf("SECRET_KEY is required when ENV=prod")
	}

	return cfg, nil
}

func loadConfigFile(path string) (map[string]string, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	out := make(map[string]string, len(raw))
	for k, v := range raw {
		switch v := v.(type) {
		case nil:
		case []any:
			parts := make([]string, 0, len(v))
			for _, p := range v {
				parts = append(parts, fmt.Sprint(p))
			}
			out[strings.ToUpper(k)] = strings.Join(parts, ",")
		default:
			out[strings.ToUpper(k)] = fmt.Sprint(v)
		}
	}
	return out, nil
}

// environment resolves keys from the process environment, then the config file.
type environment struct {
	file map[string]string
}

func (e environment) get(key string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return e.file[key]
}

func (e environment) getOrDefault(key, defaultValue string) string {
	if value := e.get(key); value != "" {
		return value
	}
	return defaultValue
}

func (e environment) getIntOrDefault(key string, defaultValue int) int {
	value := e.get(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func (e environment) getBoolOrDefault(key string, defaultValue bool) bool {
	value := e.get(key)
	if value == "" {
		return defaultValue
	}

	if boolValue, err := strconv.ParseBool(value); err == nil {
		return boolValue
	}

	return defaultValue
}

func (e environment) getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := e.get(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Plain integers are seconds
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}

// getList splits a comma separated value. A JSON-style list such as
// ["http://a","http://b"] is accepted too.
func (e environment) getList(key string) []string {
	value := strings.TrimSpace(e.get(key))
	value = strings.TrimPrefix(value, "[")
	value = strings.TrimSuffix(value, "]")

	var out []string
	for _, part := range strings.Split(value, ",") {
		part = strings.Trim(strings.TrimSpace(part), `"'`)
		if part != "" {
			out = append(out, strings.TrimSuffix(part, "/"))
		}
	}
	return out
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
