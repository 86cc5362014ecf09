package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Airtable AirtableConfig
	OpenAI   OpenAIConfig
	Calendar CalendarConfig
	Search   SearchConfig
	Redis    RedisConfig
	CORS     CORSConfig
	Log      LogConfig
}

// AirtableConfig locates the announcements table backing the record source.
type AirtableConfig struct {
	APIKey  string
	BaseID  string
	Table   string
	BaseURL string
	Timeout time.Duration
}

// OpenAIConfig configures the document analysis client.
type OpenAIConfig struct {
	APIKey           string
	Model            string
	MaxDocumentChars int
}

// CalendarConfig holds calendar delivery settings and event defaults.
type CalendarConfig struct {
	WebhookURL           string
	Timeout              time.Duration
	DefaultStartTime     string
	DefaultDurationHours float64
	ReminderDaysBefore   int
}

// SearchConfig tunes the announcement search surface.
type SearchConfig struct {
	DefaultLimit    int
	MaxLimit        int
	WeekStart       time.Weekday
	SnapshotTTL     time.Duration
	RefreshSchedule string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Airtable = AirtableConfig{
		APIKey:  v.GetString("AIRTABLE_API_KEY"),
		BaseID:  v.GetString("AIRTABLE_BASE_ID"),
		Table:   v.GetString("AIRTABLE_TABLE"),
		BaseURL: v.GetString("AIRTABLE_BASE_URL"),
		Timeout: parseDuration(v.GetString("AIRTABLE_TIMEOUT"), 15*time.Second),
	}

	cfg.OpenAI = OpenAIConfig{
		APIKey:           v.GetString("OPENAI_API_KEY"),
		Model:            v.GetString("OPENAI_MODEL"),
		MaxDocumentChars: v.GetInt("OPENAI_MAX_DOCUMENT_CHARS"),
	}

	cfg.Calendar = CalendarConfig{
		WebhookURL:           v.GetString("N8N_WEBHOOK_URL"),
		Timeout:              parseDuration(v.GetString("CALENDAR_WEBHOOK_TIMEOUT"), 30*time.Second),
		DefaultStartTime:     v.GetString("CALENDAR_DEFAULT_START_TIME"),
		DefaultDurationHours: v.GetFloat64("CALENDAR_DEFAULT_DURATION_HOURS"),
		ReminderDaysBefore:   v.GetInt("CALENDAR_REMINDER_DAYS_BEFORE"),
	}

	cfg.Search = SearchConfig{
		DefaultLimit:    v.GetInt("SEARCH_DEFAULT_LIMIT"),
		MaxLimit:        v.GetInt("SEARCH_MAX_LIMIT"),
		WeekStart:       parseWeekday(v.GetString("SEARCH_WEEK_START"), time.Monday),
		SnapshotTTL:     parseDuration(v.GetString("SEARCH_SNAPSHOT_TTL"), 5*time.Minute),
		RefreshSchedule: v.GetString("SEARCH_REFRESH_SCHEDULE"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("AIRTABLE_API_KEY", "")
	v.SetDefault("AIRTABLE_BASE_ID", "")
	v.SetDefault("AIRTABLE_TABLE", "Announcements")
	v.SetDefault("AIRTABLE_BASE_URL", "https://api.airtable.com")
	v.SetDefault("AIRTABLE_TIMEOUT", "15s")

	v.SetDefault("OPENAI_API_KEY", "")
	v.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	v.SetDefault("OPENAI_MAX_DOCUMENT_CHARS", 10000)

	v.SetDefault("N8N_WEBHOOK_URL", "")
	v.SetDefault("CALENDAR_WEBHOOK_TIMEOUT", "30s")
	v.SetDefault("CALENDAR_DEFAULT_START_TIME", "09:00")
	v.SetDefault("CALENDAR_DEFAULT_DURATION_HOURS", 1.0)
	v.SetDefault("CALENDAR_REMINDER_DAYS_BEFORE", 3)

	v.SetDefault("SEARCH_DEFAULT_LIMIT", 15)
	v.SetDefault("SEARCH_MAX_LIMIT", 50)
	v.SetDefault("SEARCH_WEEK_START", "monday")
	v.SetDefault("SEARCH_SNAPSHOT_TTL", "5m")
	v.SetDefault("SEARCH_REFRESH_SCHEDULE", "@every 15m")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func parseWeekday(raw string, fallback time.Weekday) time.Weekday {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "sunday":
		return time.Sunday
	case "monday":
		return time.Monday
	case "tuesday":
		return time.Tuesday
	case "wednesday":
		return time.Wednesday
	case "thursday":
		return time.Thursday
	case "friday":
		return time.Friday
	case "saturday":
		return time.Saturday
	default:
		return fallback
	}
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
