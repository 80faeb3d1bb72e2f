package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.Canvas.Width != 800 || cfg.Canvas.Height != 450 {
		t.Errorf("canvas: got %dx%d, want 800x450", cfg.Canvas.Width, cfg.Canvas.Height)
	}
	if cfg.Canvas.FontSize != 32 {
		t.Errorf("font size: got %d, want 32", cfg.Canvas.FontSize)
	}
	if cfg.Theme.Background != "#F0F8FF" {
		t.Errorf("background: got %s, want #F0F8FF", cfg.Theme.Background)
	}
}

func TestGet_FileFallback(t *testing.T) {
	dir := t.TempDir()
	secret := filepath.Join(dir, "token")
	if err := os.WriteFile(secret, []byte("  s3cret\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("INFOGRAPHIC_TEST_TOKEN", "")
	t.Setenv("INFOGRAPHIC_TEST_TOKEN_FILE", secret)

	if got := Get("INFOGRAPHIC_TEST_TOKEN", "def"); got != "s3cret" {
		t.Errorf("Get with _FILE: got %q, want s3cret", got)
	}

	t.Setenv("INFOGRAPHIC_TEST_TOKEN", "direct")
	if got := Get("INFOGRAPHIC_TEST_TOKEN", "def"); got != "direct" {
		t.Errorf("Get should prefer the variable: got %q, want direct", got)
	}
}

func TestGetInt(t *testing.T) {
	t.Setenv("INFOGRAPHIC_TEST_INT", "42")
	if got := GetInt("INFOGRAPHIC_TEST_INT", 7); got != 42 {
		t.Errorf("GetInt: got %d, want 42", got)
	}

	t.Setenv("INFOGRAPHIC_TEST_INT", "forty-two")
	if got := GetInt("INFOGRAPHIC_TEST_INT", 7); got != 7 {
		t.Errorf("GetInt with bad value: got %d, want default 7", got)
	}
}

func TestGetDuration(t *testing.T) {
	tests := []struct {
		val  string
		want time.Duration
	}{
		{"15", 15 * time.Second},
		{"2m", 2 * time.Minute},
		{"soon", time.Second},
		{"", time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.val, func(t *testing.T) {
			t.Setenv("INFOGRAPHIC_TEST_DURATION", tt.val)
			if got := GetDuration("INFOGRAPHIC_TEST_DURATION", time.Second); got != tt.want {
				t.Errorf("GetDuration(%q) = %v, want %v", tt.val, got, tt.want)
			}
		})
	}
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "infographic.yaml")
	yamlDoc := `
font_dir: /opt/fonts
translator:
  mode: passthrough
canvas:
  width: 1024
  height: 512
theme:
  background: "#FFFFFF"
`
	if err := os.WriteFile(path, []byte(yamlDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("INFOGRAPHIC_CONFIG", path)
	t.Setenv("INFOGRAPHIC_CANVAS_HEIGHT", "600")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.FontDir != "/opt/fonts" {
		t.Errorf("FontDir: got %s, want /opt/fonts", cfg.FontDir)
	}
	if cfg.Translator.Mode != TranslatorPassthrough {
		t.Errorf("Translator.Mode: got %s, want passthrough", cfg.Translator.Mode)
	}
	if cfg.Canvas.Width != 1024 {
		t.Errorf("Canvas.Width: got %d, want 1024 from YAML", cfg.Canvas.Width)
	}
	if cfg.Canvas.Height != 600 {
		t.Errorf("Canvas.Height: got %d, want 600 from env", cfg.Canvas.Height)
	}
	if cfg.Canvas.FontSize != 32 {
		t.Errorf("Canvas.FontSize: got %d, want default 32", cfg.Canvas.FontSize)
	}
	if cfg.Theme.Background != "#FFFFFF" {
		t.Errorf("Theme.Background: got %s, want #FFFFFF", cfg.Theme.Background)
	}
	if cfg.Theme.Border != "#646464" {
		t.Errorf("Theme.Border: got %s, want default #646464", cfg.Theme.Border)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Setenv("INFOGRAPHIC_CONFIG", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("Load should fail when INFOGRAPHIC_CONFIG points at a missing file")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty font dir", func(c *Config) { c.FontDir = " " }, "font_dir"},
		{"unknown mode", func(c *Config) { c.Translator.Mode = "google" }, "unknown translator mode"},
		{"relative url", func(c *Config) { c.Translator.URL = "translate" }, "absolute URL"},
		{"zero timeout", func(c *Config) { c.Translator.Timeout = 0 }, "timeout"},
		{"zero width", func(c *Config) { c.Canvas.Width = 0 }, "positive dimensions"},
		{"zero font size", func(c *Config) { c.Canvas.FontSize = 0 }, "font_size"},
		{"negative border", func(c *Config) { c.Theme.BorderWidth = -1 }, "border geometry"},
		{"min above size", func(c *Config) { c.Theme.MinFontSize = 40 }, "min_font_size"},
		{"negative rate", func(c *Config) { c.RateLimit = -5 }, "rate_limit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.validate()
			if err == nil {
				t.Fatal("validate should fail")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestValidate_PassthroughIgnoresURL(t *testing.T) {
	cfg := Default()
	cfg.Translator.Mode = TranslatorPassthrough
	cfg.Translator.URL = ""
	if err := cfg.validate(); err != nil {
		t.Errorf("passthrough mode should not require a URL: %v", err)
	}
}
