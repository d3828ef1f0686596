package config

import (
	"reflect"
	"testing"
	"time"
)

func TestParseRecipients(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "a@example.org", []string{"a@example.org"}},
		{"trims and skips blanks", " a@example.org , , b@example.org ", []string{"a@example.org", "b@example.org"}},
		{
			"dedup preserves first-seen order",
			"b@example.org,a@example.org,b@example.org",
			[]string{"b@example.org", "a@example.org"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseRecipients(tt.raw); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseRecipients(%q) = %v, want %v", tt.raw, got, tt.want)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.MaxPerTopicMorning != 5 || cfg.MaxPerTopicMidday != 5 || cfg.MaxPerTopicEvening != 5 {
		t.Errorf("default caps = %d/%d/%d, want 5/5/5",
			cfg.MaxPerTopicMorning, cfg.MaxPerTopicMidday, cfg.MaxPerTopicEvening)
	}
	if cfg.BreakingWindow != 90*time.Minute {
		t.Errorf("BreakingWindow = %v, want 90m", cfg.BreakingWindow)
	}
	if !cfg.IncludeWeather {
		t.Error("IncludeWeather should default to on")
	}
	if cfg.Timezone != "Europe/Vilnius" {
		t.Errorf("Timezone = %q, want Europe/Vilnius", cfg.Timezone)
	}
	if cfg.SMTPHost != "smtp.gmail.com" || cfg.SMTPPort != 587 {
		t.Errorf("SMTP defaults = %s:%d, want smtp.gmail.com:587", cfg.SMTPHost, cfg.SMTPPort)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("MAX_ARTICLES_PER_TOPIC_MIDDAY", "3")
	t.Setenv("BREAKING_MINUTES", "30")
	t.Setenv("INCLUDE_WEATHER", "0")
	t.Setenv("NEWS_TO_EMAIL", "a@example.org,b@example.org")
	t.Setenv("NEWS_SMTP_PASS", "ab cd ef")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.MaxPerTopicMidday != 3 {
		t.Errorf("MaxPerTopicMidday = %d, want 3", cfg.MaxPerTopicMidday)
	}
	if cfg.BreakingWindow != 30*time.Minute {
		t.Errorf("BreakingWindow = %v, want 30m", cfg.BreakingWindow)
	}
	if cfg.IncludeWeather {
		t.Error("INCLUDE_WEATHER=0 should disable the weather block")
	}
	if len(cfg.Recipients) != 2 {
		t.Errorf("Recipients = %v, want 2 entries", cfg.Recipients)
	}
	if cfg.SMTPPassword != "abcdef" {
		t.Errorf("SMTPPassword = %q, want whitespace stripped", cfg.SMTPPassword)
	}
}

func TestLoadRequiresGeminiKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error when GEMINI_API_KEY is missing")
	}
}

func TestLoadRejectsBadTimezone(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("TIMEZONE", "Mars/Olympus")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown timezone")
	}
}

func TestMaxPerTopic(t *testing.T) {
	cfg := &Config{MaxPerTopicMorning: 5, MaxPerTopicMidday: 3, MaxPerTopicEvening: 2}

	tests := []struct {
		mode string
		want int
	}{
		{"morning", 5},
		{"midday", 3},
		{"evening", 2},
	}
	for _, tt := range tests {
		if got := cfg.MaxPerTopic(tt.mode); got != tt.want {
			t.Errorf("MaxPerTopic(%q) = %d, want %d", tt.mode, got, tt.want)
		}
	}
}
