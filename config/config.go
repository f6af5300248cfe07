package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port             string
	MongoURI         string
	DBName           string
	AccessToken      string
	TokenTTL         time.Duration
	CORSOrigins      []string
	RateLimit        float64
	RateBurst        int
	MailProvider     string
	MailAPIKey       string
	EmailSender      string
	RedisAddr        string
	RedisPassword    string
	CategoryCacheTTL time.Duration
	LogLevel         string
	LogFormat        string
}

// LoadConfig reads .env (when present) and the process environment
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using process environment")
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds a Config from getenv
func FromEnv(getenv func(string) string) (Config, error) {
	cfg := Config{
		Port:          valueOr(getenv("PORT"), "5000"),
		DBName:        valueOr(getenv("DB_NAME"), "musicSpot"),
		AccessToken:   getenv("ACCESS_TOKEN"),
		CORSOrigins:   splitList(valueOr(getenv("CORS_ORIGINS"), "*")),
		MailProvider:  strings.ToLower(getenv("MAIL_PROVIDER")),
		EmailSender:   getenv("EMAIL_SENDER"),
		RedisAddr:     getenv("REDIS_ADDR"),
		RedisPassword: getenv("REDIS_PASSWORD"),
		LogLevel:      valueOr(getenv("LOG_LEVEL"), "info"),
		LogFormat:     valueOr(getenv("LOG_FORMAT"), "console"),
	}

	if cfg.AccessToken == "" {
		return Config{}, errors.New("ACCESS_TOKEN is not set")
	}

	uri, err := mongoURI(getenv)
	if err != nil {
		return Config{}, err
	}
	cfg.MongoURI = uri

	switch cfg.MailProvider {
	case "postmark":
		cfg.MailAPIKey = getenv("POSTMARK_API_TOKEN")
	case "sendgrid":
		cfg.MailAPIKey = getenv("SENDGRID_API_KEY")
	}

	if cfg.TokenTTL, err = parseDuration(getenv("TOKEN_TTL"), 0); err != nil {
		return Config{}, fmt.Errorf("TOKEN_TTL: %w", err)
	}
	if cfg.CategoryCacheTTL, err = parseDuration(getenv("CATEGORY_CACHE_TTL"), 10*time.Minute); err != nil {
		return Config{}, fmt.Errorf("CATEGORY_CACHE_TTL: %w", err)
	}

	cfg.RateLimit = 20
	if v := getenv("RATE_LIMIT"); v != "" {
		if cfg.RateLimit, err = strconv.ParseFloat(v, 64); err != nil {
			return Config{}, fmt.Errorf("RATE_LIMIT: %w", err)
		}
	}
	cfg.RateBurst = 40
	if v := getenv("RATE_BURST"); v != "" {
		if cfg.RateBurst, err = strconv.Atoi(v); err != nil {
			return Config{}, fmt.Errorf("RATE_BURST: %w", err)
		}
	}

	return cfg, nil
}

// mongoURI prefers MONGODB_URI and otherwise builds an Atlas SRV URI from DB_USER, DB_PASSWORD and DB_HOST
func mongoURI(getenv func(string) string) (string, error) {
	if uri := getenv("MONGODB_URI"); uri != "" {
		return uri, nil
	}
	user, pass, host := getenv("DB_USER"), getenv("DB_PASSWORD"), getenv("DB_HOST")
	if user == "" || pass == "" || host == "" {
		return "", errors.New("set MONGODB_URI or DB_USER, DB_PASSWORD and DB_HOST")
	}
	return fmt.Sprintf("mongodb+srv://%s:%s@%s/?retryWrites=true&w=majority",
		url.QueryEscape(user), url.QueryEscape(pass), host), nil
}

func parseDuration(v string, def time.Duration) (time.Duration, error) {
	if v == "" {
		return def, nil
	}
	return time.ParseDuration(v)
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func valueOr(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
