package mailer

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		Recipients: []string{"a@example.org", "b@example.org"},
		From:       "sender@example.org",
		Host:       "smtp.example.org",
		Port:       587,
		User:       "sender@example.org",
		Password:   "app-password",
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"no recipients", func(c *Config) { c.Recipients = nil }, "NEWS_TO_EMAIL"},
		{"missing from", func(c *Config) { c.From = "" }, "NEWS_FROM_EMAIL"},
		{"missing user", func(c *Config) { c.User = "" }, "NEWS_FROM_EMAIL"},
		{"missing password", func(c *Config) { c.Password = "" }, "NEWS_FROM_EMAIL"},
		{"from differs from user", func(c *Config) { c.From = "other@example.org" }, "must equal"},
		{"missing host", func(c *Config) { c.Host = "" }, "NEWS_SMTP_HOST"},
		{"bad port", func(c *Config) { c.Port = 0 }, "NEWS_SMTP_PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() = %v, want nil", err)
				}
				return
			}
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q should mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := validConfig()
	cfg.Recipients = nil

	if _, err := New(cfg); err == nil {
		t.Fatal("New must fail fast on invalid delivery config")
	}
}

func TestBuildMessage(t *testing.T) {
	m, err := New(validConfig())
	if err != nil {
		t.Fatal(err)
	}

	msg := string(m.buildMessage("a@example.org", "Ryto santrauka — ąčę", "plain fallback", "<html>doc</html>"))

	if !strings.Contains(msg, "To: a@example.org\r\n") {
		t.Error("message should be addressed to the single recipient")
	}
	if !strings.Contains(msg, "multipart/alternative") {
		t.Error("message should be multipart/alternative")
	}
	if !strings.Contains(msg, "plain fallback") {
		t.Error("plain-text part missing")
	}
	if !strings.Contains(msg, "<html>doc</html>") {
		t.Error("HTML part missing")
	}
	if strings.Contains(msg, "Subject: Ryto santrauka — ąčę\r\n") {
		t.Error("non-ASCII subject should be MIME-encoded")
	}
	if !strings.Contains(msg, "Subject: =?utf-8?q?") {
		t.Error("expected Q-encoded subject header")
	}
}
