package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/robfig/cron/v3"
	"github.com/spf13/viper"

	"github.com/cesargomez89/mekkompis/internal/constants"
)

// Config holds the logbook server configuration
type Config struct {
	Port             string
	DBPath           string
	UploadDir        string
	AllowedOrigins   []string
	JWTSecret        string
	AuthPasswordHash string
	LogLevel         string
	LogFormat        string
	SweepOnStart     bool
	SweepSchedule    string
}

// TransitConfig holds the departure board configuration
type TransitConfig struct {
	Port         string
	FrontendURL  string
	ClientID     string
	ClientSecret string
	AuthURL      string
	APIBase      string
	LogLevel     string
	LogFormat    string
}

// dotEnvCandidates are checked in order; the first existing file is read.
var dotEnvCandidates = []string{".env", filepath.Join("backend", ".env")}

// Load loads configuration from environment variables and an optional .env file
func Load() *Config {
	return LoadFrom(findDotEnv())
}

// LoadFrom loads configuration using the given .env file. An empty path skips the file.
// Real environment variables always win over file values.
func LoadFrom(dotEnv string) *Config {
	v := newViper(dotEnv)
	v.SetDefault("PORT", constants.DefaultPort)
	v.SetDefault("DB_PATH", constants.DefaultDBPath)
	v.SetDefault("UPLOAD_DIR", constants.DefaultUploadDir)
	v.SetDefault("ALLOWED_ORIGINS", constants.DefaultAllowedOrigins)
	v.SetDefault("LOG_LEVEL", constants.DefaultLogLevel)
	v.SetDefault("LOG_FORMAT", constants.DefaultLogFormat)
	v.SetDefault("UPLOAD_SWEEP_ON_START", false)

	return &Config{
		Port:             v.GetString("PORT"),
		DBPath:           v.GetString("DB_PATH"),
		UploadDir:        v.GetString("UPLOAD_DIR"),
		AllowedOrigins:   splitList(v.GetString("ALLOWED_ORIGINS")),
		JWTSecret:        v.GetString("JWT_SECRET"),
		AuthPasswordHash: v.GetString("AUTH_PASSWORD_HASH"),
		LogLevel:         v.GetString("LOG_LEVEL"),
		LogFormat:        v.GetString("LOG_FORMAT"),
		SweepOnStart:     v.GetBool("UPLOAD_SWEEP_ON_START"),
		SweepSchedule:    v.GetString("UPLOAD_SWEEP_SCHEDULE"),
	}
}

// LoadTransit loads the departure board configuration
func LoadTransit() *TransitConfig {
	return LoadTransitFrom(findDotEnv())
}

// LoadTransitFrom is LoadTransit with an explicit .env file
func LoadTransitFrom(dotEnv string) *TransitConfig {
	v := newViper(dotEnv)
	v.SetDefault("PORT", constants.DefaultTransitPort)
	v.SetDefault("FRONTEND_URL", constants.DefaultAllowedOrigins)
	v.SetDefault("VASTTRAFIK_AUTH_URL", constants.DefaultTransitAuthURL)
	v.SetDefault("VASTTRAFIK_API_BASE", constants.DefaultTransitAPIBase)
	v.SetDefault("LOG_LEVEL", constants.DefaultLogLevel)
	v.SetDefault("LOG_FORMAT", constants.DefaultLogFormat)

	return &TransitConfig{
		Port:         v.GetString("PORT"),
		FrontendURL:  v.GetString("FRONTEND_URL"),
		ClientID:     v.GetString("VASTTRAFIK_CLIENT_ID"),
		ClientSecret: v.GetString("VASTTRAFIK_CLIENT_SECRET"),
		AuthURL:      v.GetString("VASTTRAFIK_AUTH_URL"),
		APIBase:      strings.TrimRight(v.GetString("VASTTRAFIK_API_BASE"), "/"),
		LogLevel:     v.GetString("LOG_LEVEL"),
		LogFormat:    v.GetString("LOG_FORMAT"),
	}
}

// AuthEnabled reports whether both auth secrets are present.
func (c *Config) AuthEnabled() bool {
	return c.JWTSecret != "" && c.AuthPasswordHash != ""
}

// AuthPartial reports whether exactly one of the auth secrets is set.
// The gate stays disabled in that case, which is usually a deployment mistake.
func (c *Config) AuthPartial() bool {
	return (c.JWTSecret == "") != (c.AuthPasswordHash == "")
}

// Validate validates the configuration and returns detailed errors
func (c *Config) Validate() error {
	var errs []string

	errs = append(errs, validatePort(c.Port)...)

	if c.DBPath == "" {
		errs = append(errs, "DB_PATH cannot be empty")
	}

	if c.UploadDir == "" {
		errs = append(errs, "UPLOAD_DIR cannot be empty")
	}

	if len(c.AllowedOrigins) == 0 {
		errs = append(errs, "ALLOWED_ORIGINS cannot be empty")
	}
	for _, origin := range c.AllowedOrigins {
		if u, err := url.Parse(origin); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("ALLOWED_ORIGINS contains an invalid origin: %s", origin))
		}
	}

	if c.AuthPasswordHash != "" && !looksLikeBcrypt(c.AuthPasswordHash) {
		errs = append(errs, "AUTH_PASSWORD_HASH must be a bcrypt hash (run hash-password)")
	}

	if c.SweepSchedule != "" {
		if _, err := cron.ParseStandard(c.SweepSchedule); err != nil {
			errs = append(errs, fmt.Sprintf("UPLOAD_SWEEP_SCHEDULE is not a valid cron spec: %s", c.SweepSchedule))
		}
	}

	errs = append(errs, validateLogging(c.LogLevel, c.LogFormat)...)

	return joinErrors(errs)
}

// Validate validates the departure board configuration
func (c *TransitConfig) Validate() error {
	var errs []string

	errs = append(errs, validatePort(c.Port)...)

	if c.ClientID == "" || c.ClientSecret == "" {
		errs = append(errs, "VASTTRAFIK_CLIENT_ID and VASTTRAFIK_CLIENT_SECRET must be set")
	}

	for key, raw := range map[string]string{"VASTTRAFIK_AUTH_URL": c.AuthURL, "VASTTRAFIK_API_BASE": c.APIBase} {
		if u, err := url.Parse(raw); err != nil || u.Scheme == "" || u.Host == "" {
			errs = append(errs, fmt.Sprintf("%s is not a valid URL: %s", key, raw))
		}
	}

	errs = append(errs, validateLogging(c.LogLevel, c.LogFormat)...)

	return joinErrors(errs)
}

func newViper(dotEnv string) *viper.Viper {
	v := viper.New()
	v.AutomaticEnv()
	if dotEnv != "" {
		v.SetConfigFile(dotEnv)
		v.SetConfigType("env")
		// A missing or unreadable .env file is not fatal; env vars and defaults still apply.
		_ = v.ReadInConfig()
	}
	return v
}

func findDotEnv() string {
	for _, candidate := range dotEnvCandidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate
		}
	}
	return ""
}

func validatePort(port string) []string {
	if port == "" {
		return []string{"PORT cannot be empty"}
	}
	p, err := strconv.Atoi(port)
	if err != nil {
		return []string{fmt.Sprintf("PORT must be a valid number, got: %s", port)}
	}
	if p < 1 || p > 65535 {
		return []string{fmt.Sprintf("PORT must be between 1 and 65535, got: %d", p)}
	}
	return nil
}

func validateLogging(level, format string) []string {
	var errs []string

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[level] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL must be one of: debug, info, warn, error, got: %s", level))
	}

	validLogFormats := map[string]bool{
		"text": true,
		"json": true,
	}
	if !validLogFormats[format] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT must be one of: text, json, got: %s", format))
	}

	return errs
}

func looksLikeBcrypt(hash string) bool {
	for _, prefix := range []string{"$2a$", "$2b$", "$2y$"} {
		if strings.HasPrefix(hash, prefix) {
			return true
		}
	}
	return false
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func joinErrors(errs []string) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.New("configuration validation failed:\n  - " + strings.Join(errs, "\n  - "))
}
