package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full runtime configuration, loaded from environment
// variables. Every knob has a default; only the Gemini key is mandatory
// here (mail settings are validated by the mailer before any send).
type Config struct {
	// Per-mode article caps
	MaxPerTopicMorning int
	MaxPerTopicMidday  int
	MaxPerTopicEvening int

	// Items published within this window of "now" get the breaking badge
	BreakingWindow time.Duration

	// Optional Vilnius weather line in the report
	IncludeWeather bool

	// Gemini settings
	GeminiAPIKey string
	GeminiModel  string

	// Feed settings
	TopicsConfigPath string

	// Mail settings (NEWS_* variables, same names the GitHub Actions
	// secrets use)
	Recipients   []string
	FromEmail    string
	SMTPHost     string
	SMTPPort     int
	SMTPUser     string
	SMTPPassword string

	// App settings
	Timezone       string
	RequestTimeout time.Duration
	Debug          bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		MaxPerTopicMorning: 5,
		MaxPerTopicMidday:  5,
		MaxPerTopicEvening: 5,
		BreakingWindow:     90 * time.Minute,
		IncludeWeather:     true,
		GeminiModel:        "gemini-1.5-flash",
		TopicsConfigPath:   "configs/topics.yaml",
		SMTPHost:           "smtp.gmail.com",
		SMTPPort:           587,
		Timezone:           "Europe/Vilnius",
		RequestTimeout:     30 * time.Second,
	}

	cfg.MaxPerTopicMorning = getEnvIntOrDefault("MAX_ARTICLES_PER_TOPIC_MORNING", cfg.MaxPerTopicMorning)
	cfg.MaxPerTopicMidday = getEnvIntOrDefault("MAX_ARTICLES_PER_TOPIC_MIDDAY", cfg.MaxPerTopicMidday)
	cfg.MaxPerTopicEvening = getEnvIntOrDefault("MAX_ARTICLES_PER_TOPIC_EVENING", cfg.MaxPerTopicEvening)

	if v := getEnvIntOrDefault("BREAKING_MINUTES", 90); v > 0 {
		cfg.BreakingWindow = time.Duration(v) * time.Minute
	}

	if v := strings.TrimSpace(os.Getenv("INCLUDE_WEATHER")); v != "" {
		cfg.IncludeWeather = v != "0" && !strings.EqualFold(v, "false")
	}

	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)

	cfg.TopicsConfigPath = getEnvOrDefault("TOPICS_CONFIG_PATH", cfg.TopicsConfigPath)

	cfg.Recipients = ParseRecipients(os.Getenv("NEWS_TO_EMAIL"))
	cfg.FromEmail = strings.TrimSpace(os.Getenv("NEWS_FROM_EMAIL"))
	cfg.SMTPHost = strings.TrimSpace(getEnvOrDefault("NEWS_SMTP_HOST", cfg.SMTPHost))
	cfg.SMTPPort = getEnvIntOrDefault("NEWS_SMTP_PORT", cfg.SMTPPort)
	cfg.SMTPUser = strings.TrimSpace(os.Getenv("NEWS_SMTP_USER"))
	cfg.SMTPPassword = cleanPassword(os.Getenv("NEWS_SMTP_PASS"))

	cfg.Timezone = getEnvOrDefault("TIMEZONE", cfg.Timezone)

	if v := getEnvIntOrDefault("REQUEST_TIMEOUT_SECONDS", 0); v > 0 {
		cfg.RequestTimeout = time.Duration(v) * time.Second
	}

	if os.Getenv("DEBUG") == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

// ParseRecipients splits a comma-separated address list, trimming blanks
// and removing duplicates while preserving first-seen order.
func ParseRecipients(raw string) []string {
	var out []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		addr := strings.TrimSpace(part)
		if addr == "" {
			continue
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	return out
}

// cleanPassword strips whitespace and non-breaking spaces that sneak in
// when app passwords are copied from the Google UI.
func cleanPassword(raw string) string {
	s := strings.TrimSpace(raw)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	return s
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.Timezone == "" {
		return fmt.Errorf("TIMEZONE must not be empty")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("TIMEZONE %q is not a valid IANA zone: %w", c.Timezone, err)
	}
	return nil
}

// MaxPerTopic returns the per-topic article cap for a mode name as
// produced by digest.Mode.String.
func (c *Config) MaxPerTopic(mode string) int {
	switch mode {
	case "midday":
		return c.MaxPerTopicMidday
	case "evening":
		return c.MaxPerTopicEvening
	default:
		return c.MaxPerTopicMorning
	}
}
