// Package config loads runtime settings from defaults, an optional YAML file,
// an optional .env file and the environment, in increasing precedence.
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
	"gopkg.in/yaml.v3"
)

// Translator modes.
const (
	TranslatorIndicTrans  = "indictrans"
	TranslatorPassthrough = "passthrough"
)

// Config is the complete runtime configuration.
type Config struct {
	FontDir    string           `yaml:"font_dir"`
	OutputDir  string           `yaml:"output_dir"`
	LogLevel   string           `yaml:"log_level"`
	HTTPAddr   string           `yaml:"http_addr"`
	RateLimit  int              `yaml:"rate_limit_per_minute"`
	Tessdata   string           `yaml:"tessdata"`
	Translator TranslatorConfig `yaml:"translator"`
	Canvas     CanvasConfig     `yaml:"canvas"`
	Theme      ThemeConfig      `yaml:"theme"`
}

// TranslatorConfig selects and configures the translation backend.
type TranslatorConfig struct {
	Mode      string        `yaml:"mode"`
	URL       string        `yaml:"url"`
	Token     string        `yaml:"token"`
	Timeout   time.Duration `yaml:"timeout"`
	MaxLength int           `yaml:"max_length"`
}

// CanvasConfig holds the default render geometry.
type CanvasConfig struct {
	Width    int `yaml:"width"`
	Height   int `yaml:"height"`
	FontSize int `yaml:"font_size"`
}

// ThemeConfig holds colors as hex strings and border geometry in pixels.
type ThemeConfig struct {
	Background  string `yaml:"background"`
	Border      string `yaml:"border"`
	Text        string `yaml:"text"`
	BorderInset int    `yaml:"border_inset"`
	BorderWidth int    `yaml:"border_width"`
	Padding     int    `yaml:"padding"`
	MinFontSize int    `yaml:"min_font_size"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		FontDir:   "fonts",
		LogLevel:  "info",
		RateLimit: 30,
		Translator: TranslatorConfig{
			Mode:      TranslatorIndicTrans,
			URL:       "http://localhost:8000/translate",
			Timeout:   60 * time.Second,
			MaxLength: 128,
		},
		Canvas: CanvasConfig{
			Width:    800,
			Height:   450,
			FontSize: 32,
		},
		Theme: ThemeConfig{
			Background:  "#F0F8FF",
			Border:      "#646464",
			Text:        "#000000",
			BorderInset: 10,
			BorderWidth: 3,
			Padding:     10,
			MinFontSize: 12,
		},
	}
}

// Load builds the configuration. A missing .env file is not an error.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	if path := Get("INFOGRAPHIC_CONFIG", ""); path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, err
		}
	}
	cfg.applyEnv()

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// mergeFile overlays the YAML file at path onto c.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.FontDir = Get("INFOGRAPHIC_FONT_DIR", c.FontDir)
	c.OutputDir = Get("INFOGRAPHIC_OUTPUT_DIR", c.OutputDir)
	c.LogLevel = Get("INFOGRAPHIC_LOG_LEVEL", c.LogLevel)
	c.HTTPAddr = Get("INFOGRAPHIC_HTTP_ADDR", c.HTTPAddr)
	c.RateLimit = GetInt("INFOGRAPHIC_RATE_LIMIT", c.RateLimit)
	c.Tessdata = Get("TESSDATA_PREFIX", c.Tessdata)

	c.Translator.Mode = strings.ToLower(Get("INFOGRAPHIC_TRANSLATOR", c.Translator.Mode))
	c.Translator.URL = Get("INFOGRAPHIC_TRANSLATOR_URL", c.Translator.URL)
	c.Translator.Token = Get("INFOGRAPHIC_TRANSLATOR_TOKEN", c.Translator.Token)
	c.Translator.Timeout = GetDuration("INFOGRAPHIC_TRANSLATOR_TIMEOUT", c.Translator.Timeout)
	c.Translator.MaxLength = GetInt("INFOGRAPHIC_TRANSLATOR_MAX_LENGTH", c.Translator.MaxLength)

	c.Canvas.Width = GetInt("INFOGRAPHIC_CANVAS_WIDTH", c.Canvas.Width)
	c.Canvas.Height = GetInt("INFOGRAPHIC_CANVAS_HEIGHT", c.Canvas.Height)
	c.Canvas.FontSize = GetInt("INFOGRAPHIC_FONT_SIZE", c.Canvas.FontSize)
}

// validate checks the merged configuration.
func (c *Config) validate() error {
	var errs []error

	if strings.TrimSpace(c.FontDir) == "" {
		errs = append(errs, errors.New("font_dir must not be empty"))
	}

	switch c.Translator.Mode {
	case TranslatorPassthrough:
	case TranslatorIndicTrans:
		u, err := url.Parse(c.Translator.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Errorf("translator url %q is not an absolute URL", c.Translator.URL))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown translator mode %q", c.Translator.Mode))
	}
	if c.Translator.Timeout <= 0 {
		errs = append(errs, errors.New("translator timeout must be positive"))
	}
	if c.Translator.MaxLength <= 0 {
		errs = append(errs, errors.New("translator max_length must be positive"))
	}

	if c.Canvas.Width <= 0 || c.Canvas.Height <= 0 {
		errs = append(errs, fmt.Errorf("canvas %dx%d must have positive dimensions", c.Canvas.Width, c.Canvas.Height))
	}
	if c.Canvas.FontSize <= 0 {
		errs = append(errs, errors.New("font_size must be positive"))
	}
	if c.Theme.BorderInset < 0 || c.Theme.BorderWidth < 0 || c.Theme.Padding < 0 {
		errs = append(errs, errors.New("theme border geometry must not be negative"))
	}
	if c.Theme.MinFontSize <= 0 || c.Theme.MinFontSize > c.Canvas.FontSize {
		errs = append(errs, fmt.Errorf("min_font_size %d must be in 1..%d", c.Theme.MinFontSize, c.Canvas.FontSize))
	}
	if c.RateLimit < 0 {
		errs = append(errs, errors.New("rate_limit_per_minute must not be negative"))
	}

	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}

// Get returns the value of the environment variable key if set.
// If not set, and key+"_FILE" is set, the file at that path is read and its
// trimmed contents are returned. If neither is set, def is returned.
func Get(key, def string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	if path := os.Getenv(key + "_FILE"); path != "" {
		if data, err := os.ReadFile(path); err == nil {
			return strings.TrimSpace(string(data))
		}
	}
	return def
}

// GetInt parses Get(key, ""). If parsing fails or the variable is unset,
// def is returned.
func GetInt(key string, def int) int {
	if val := Get(key, ""); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

// GetDuration parses Get(key, "") with time.ParseDuration. A bare integer is
// read as seconds.
func GetDuration(key string, def time.Duration) time.Duration {
	val := Get(key, "")
	if val == "" {
		return def
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second
	}
	if d, err := time.ParseDuration(val); err == nil {
		return d
	}
	return def
}
