package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/mchmarny/shelfd/pkg/sidebar"
)

const (
	// DefaultPort is the HTTP port used when none is configured.
	DefaultPort = 8083

	// DefaultTitle is the instance name shown in page titles.
	DefaultTitle = "Library"

	// EnvVarLogLevel is shared with the logger package.
	EnvVarLogLevel = "LOG_LEVEL"

	envPrefix = "SHELFD_"
)

// DefaultExtensions are the file types accepted by the upload form.
var DefaultExtensions = []string{
	"azw", "azw3", "cb7", "cbr", "cbt", "cbz", "djv", "djvu", "doc", "docx",
	"epub", "fb2", "flac", "html", "kepub", "lit", "m4a", "m4b", "mobi",
	"mp3", "mp4", "odt", "ogg", "opus", "pdf", "prc", "rtf", "txt", "wav",
}

// Config holds the host configuration of a library instance.
type Config struct {
	// Title is the instance display name.
	Title string `yaml:"title" toml:"title" validate:"required"`

	HTTP      HTTPConfig      `yaml:"http" toml:"http"`
	Templates TemplatesConfig `yaml:"templates" toml:"templates"`
	Upload    UploadConfig    `yaml:"upload" toml:"upload"`
	Guest     GuestConfig     `yaml:"guest" toml:"guest"`
	Auth      AuthConfig      `yaml:"auth" toml:"auth"`
	Logging   LoggingConfig   `yaml:"logging" toml:"logging"`
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	Port int `yaml:"port" toml:"port" validate:"min=1,max=65535"`
}

// TemplatesConfig points at page templates on disk. An empty Dir uses the
// templates compiled into the binary.
type TemplatesConfig struct {
	Dir string `yaml:"dir" toml:"dir"`
}

// UploadConfig lists the accepted upload extensions.
type UploadConfig struct {
	Extensions []string `yaml:"extensions" toml:"extensions" validate:"dive,required,alphanum,lowercase"`
}

// GuestConfig holds the settings of the anonymous visitor.
type GuestConfig struct {
	// Language restricts listings for guests. Empty means all languages.
	Language string `yaml:"language" toml:"language"`

	// Sidebar lists the sections shown to guests, "all" for every section.
	Sidebar []string `yaml:"sidebar" toml:"sidebar"`
}

// AuthConfig configures login through an authenticating reverse proxy.
type AuthConfig struct {
	// ProxyHeader names the header carrying the authenticated user name.
	// Empty disables proxy login and every visitor is a guest.
	ProxyHeader string `yaml:"proxy_header" toml:"proxy_header"`

	Users []UserConfig `yaml:"users" toml:"users" validate:"dive"`
}

// UserConfig describes an account known to the proxy login.
type UserConfig struct {
	Name     string   `yaml:"name" toml:"name" validate:"required"`
	Admin    bool     `yaml:"admin" toml:"admin"`
	Language string   `yaml:"language" toml:"language"`
	Sidebar  []string `yaml:"sidebar" toml:"sidebar"`
}

// LoggingConfig holds logger settings.
type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" toml:"format" validate:"omitempty,oneof=json text"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Title: DefaultTitle,
		HTTP: HTTPConfig{
			Port: DefaultPort,
		},
		Upload: UploadConfig{
			Extensions: append([]string{}, DefaultExtensions...),
		},
		Guest: GuestConfig{
			Language: sidebar.AllLanguages,
			Sidebar:  []string{"all"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads the configuration file at path, if any, then applies
// environment overrides and validates the result. A missing file is not
// an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	if err := readFile(path, cfg); err != nil {
		return nil, err
	}

	cfg.applyEnv()
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks field constraints and sidebar section names.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if _, unknown := sidebar.ParseVisibility(c.Guest.Sidebar); len(unknown) > 0 {
		return fmt.Errorf("invalid configuration: unknown guest sidebar sections %v", unknown)
	}

	seen := make(map[string]bool, len(c.Auth.Users))
	for _, u := range c.Auth.Users {
		if seen[u.Name] {
			return fmt.Errorf("invalid configuration: duplicate user %q", u.Name)
		}
		seen[u.Name] = true

		if _, unknown := sidebar.ParseVisibility(u.Sidebar); len(unknown) > 0 {
			return fmt.Errorf("invalid configuration: unknown sidebar sections %v for user %q", unknown, u.Name)
		}
	}

	return nil
}

// GetAddress returns the HTTP listen address.
func (c *Config) GetAddress() string {
	return fmt.Sprintf(":%d", c.HTTP.Port)
}

// GuestView returns the sidebar sections shown to guests.
func (c *Config) GuestView() sidebar.Visibility {
	v, _ := sidebar.ParseVisibility(c.Guest.Sidebar)
	return v
}

// GuestUser returns the anonymous visitor.
func (c *Config) GuestUser() *sidebar.Guest {
	return &sidebar.Guest{
		Language: c.Guest.Language,
		View:     c.GuestView(),
	}
}

// Accounts returns the configured users keyed by name.
func (c *Config) Accounts() map[string]*sidebar.Account {
	accounts := make(map[string]*sidebar.Account, len(c.Auth.Users))
	for _, u := range c.Auth.Users {
		view, _ := sidebar.ParseVisibility(u.Sidebar)
		accounts[u.Name] = &sidebar.Account{
			Name:     u.Name,
			Admin:    u.Admin,
			Language: u.Language,
			View:     view,
		}
	}
	return accounts
}

func (c *Config) applyEnv() {
	c.Title = getEnvString(envPrefix+"TITLE", c.Title)
	c.HTTP.Port = getEnvInt(envPrefix+"PORT", c.HTTP.Port)
	c.Templates.Dir = getEnvString(envPrefix+"TEMPLATES_DIR", c.Templates.Dir)
	c.Upload.Extensions = getEnvList(envPrefix+"UPLOAD_EXTENSIONS", c.Upload.Extensions)
	c.Guest.Language = getEnvString(envPrefix+"GUEST_LANGUAGE", c.Guest.Language)
	c.Guest.Sidebar = getEnvList(envPrefix+"GUEST_SIDEBAR", c.Guest.Sidebar)
	c.Auth.ProxyHeader = getEnvString(envPrefix+"PROXY_HEADER", c.Auth.ProxyHeader)
	c.Logging.Level = getEnvString(EnvVarLogLevel, c.Logging.Level)
	c.Logging.Format = getEnvString(envPrefix+"LOG_FORMAT", c.Logging.Format)
}

func (c *Config) normalize() {
	c.Title = strings.TrimSpace(c.Title)
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))

	exts := make([]string, 0, len(c.Upload.Extensions))
	seen := make(map[string]bool, len(c.Upload.Extensions))
	for _, e := range c.Upload.Extensions {
		e = strings.ToLower(strings.TrimPrefix(strings.TrimSpace(e), "."))
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		exts = append(exts, e)
	}
	sort.Strings(exts)
	c.Upload.Extensions = exts
}

func readFile(path string, out *Config) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, out)
	case ".toml":
		err = toml.Unmarshal(data, out)
	default:
		return fmt.Errorf("unsupported config format %q", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return nil
}

// Helper functions for environment variables
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var list []string
	for _, v := range strings.Split(value, ",") {
		if v = strings.TrimSpace(v); v != "" {
			list = append(list, v)
		}
	}
	return list
}
