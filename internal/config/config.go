package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	StoreDriverMongo  = "mongo"
	StoreDriverMemory = "memory"
)

// Config holds runtime configuration shared across the application.
type Config struct {
	Addr                string
	StoreDriver         string
	MongoURI            string
	MongoDatabase       string
	SurveyCollection    string
	Timeout             time.Duration
	RequestTimeout      time.Duration
	StaticDir           string
	AllowedOrigins      []string
	ResultsDefaultLimit int
	ResultsMaxLimit     int
	ServiceName         string
	ServiceVersion      string
	ServerLog           *logrus.Logger
	MessengerEndpoint   string
	DiscordDestination  string
	SlackDestination    string
	MessengerTimeout    time.Duration
	ResultsBaseURL      string
}

// Load reads .env (when present) and environment variables and returns a fully populated Config.
func Load() Config {
	envErr := godotenv.Load()

	logger := newLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	if envErr != nil && !os.IsNotExist(envErr) {
		logger.WithError(envErr).Warn(".env の読み込みに失敗")
	}

	storeDriver := strings.ToLower(envOrDefault("STORE_DRIVER", StoreDriverMongo))
	if storeDriver != StoreDriverMongo && storeDriver != StoreDriverMemory {
		logger.Warnf("未対応の STORE_DRIVER=%q のため %s を使用します", storeDriver, StoreDriverMongo)
		storeDriver = StoreDriverMongo
	}

	defaultLimit := parsePositiveInt("RESULTS_DEFAULT_LIMIT", 100)
	maxLimit := parsePositiveInt("RESULTS_MAX_LIMIT", 1000)
	if defaultLimit > maxLimit {
		defaultLimit = maxLimit
	}

	cfg := Config{
		Addr:                listenAddr(),
		StoreDriver:         storeDriver,
		MongoURI:            envOrDefault("MONGO_URI", "mongodb://mongo:27017"),
		MongoDatabase:       envOrDefault("MONGO_DB", "simple-survey"),
		SurveyCollection:    envOrDefault("SURVEY_COLLECTION", "survey_responses"),
		Timeout:             parseDuration("MONGO_CONNECT_TIMEOUT", 10*time.Second),
		RequestTimeout:      parseDuration("REQUEST_TIMEOUT", 5*time.Second),
		StaticDir:           envOrDefault("STATIC_DIR", "static"),
		AllowedOrigins:      parseList("API_ALLOWED_ORIGINS", []string{"*"}),
		ResultsDefaultLimit: defaultLimit,
		ResultsMaxLimit:     maxLimit,
		ServiceName:         envOrDefault("SERVICE_NAME", "simple-survey-system"),
		ServiceVersion:      envOrDefault("SERVICE_VERSION", "1.0.0"),
		ServerLog:           logger,
		MessengerEndpoint:   strings.TrimSpace(os.Getenv("MESSENGER_GATEWAY_URL")),
		DiscordDestination:  strings.TrimSpace(os.Getenv("MESSENGER_DISCORD_DESTINATION")),
		SlackDestination:    strings.TrimSpace(os.Getenv("MESSENGER_SLACK_DESTINATION")),
		MessengerTimeout:    parseDuration("MESSENGER_GATEWAY_TIMEOUT", 3*time.Second),
		ResultsBaseURL:      strings.TrimSpace(os.Getenv("RESULTS_BASE_URL")),
	}

	logger.WithFields(logrus.Fields{
		"addr":        cfg.Addr,
		"storeDriver": cfg.StoreDriver,
		"database":    cfg.MongoDatabase,
		"collection":  cfg.SurveyCollection,
		"messenger":   cfg.MessengerEndpoint,
	}).Debug("loaded config")

	return cfg
}

// listenAddr prefers HTTP_ADDR, then PORT as set by Cloud Run.
func listenAddr() string {
	if addr := strings.TrimSpace(os.Getenv("HTTP_ADDR")); addr != "" {
		return addr
	}
	if port := strings.TrimSpace(os.Getenv("PORT")); port != "" {
		return ":" + port
	}
	return ":8080"
}

func newLogger(level, format string) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)

	if strings.EqualFold(strings.TrimSpace(format), "json") {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	parsed, err := logrus.ParseLevel(strings.TrimSpace(level))
	if err != nil {
		parsed = logrus.InfoLevel
	}
	logger.SetLevel(parsed)
	return logger
}

func envOrDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parsePositiveInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}

func parseList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	parts := strings.Split(raw, ",")
	values := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part != "" {
			values = append(values, part)
		}
	}

	if len(values) == 0 {
		return fallback
	}
	return values
}
