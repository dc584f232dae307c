// Rollcall - Workforce Attendance and Headcount Tracking
// Copyright 2026 Rollcall HQ
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/rollcall-hq/rollcall

// Package config loads and validates Rollcall's layered configuration:
// built-in defaults, an optional YAML file, then environment variables,
// each layer overriding the previous (Koanf v2).
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// Config is the root configuration for the Rollcall server.
type Config struct {
	Server     ServerConfig     `koanf:"server"`
	Events     EventsConfig     `koanf:"events"`
	Store      StoreConfig      `koanf:"store"`
	Recognizer RecognizerConfig `koanf:"recognizer"`
	Security   SecurityConfig   `koanf:"security"`
	Logging    LoggingConfig    `koanf:"logging"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host string `koanf:"host"`
	Port int    `koanf:"port" validate:"min=1,max=65535"`

	// ReadHeaderTimeout bounds header parsing; the overall request has no
	// write deadline because long-poll responses are held open on purpose.
	ReadHeaderTimeout time.Duration `koanf:"read_header_timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
}

// EventsConfig tunes the real-time event feeds.
type EventsConfig struct {
	// Capacity is the per-tenant ring buffer size per topic.
	Capacity int `koanf:"capacity" validate:"min=1"`

	// DefaultLimit applies when a poll request omits limit.
	DefaultLimit int `koanf:"default_limit" validate:"min=1,max=200"`

	// MaxWait caps the long-poll wait budget.
	MaxWait time.Duration `koanf:"max_wait"`
}

// StoreConfig holds the embedded record store settings.
type StoreConfig struct {
	// Path is the BadgerDB directory. Empty selects an in-memory store
	// (tests, ephemeral deployments).
	Path string `koanf:"path"`

	// GCInterval is how often the value-log GC pass runs.
	GCInterval time.Duration `koanf:"gc_interval"`
}

// RecognizerConfig holds the external face-recognition service settings.
type RecognizerConfig struct {
	Enabled bool          `koanf:"enabled"`
	URL     string        `koanf:"url" validate:"omitempty,url"`
	APIKey  string        `koanf:"api_key"`
	Timeout time.Duration `koanf:"timeout"`

	// RatePerSecond throttles outbound calls to the AI service.
	RatePerSecond float64 `koanf:"rate_per_second" validate:"min=0"`
}

// SecurityConfig holds tenant resolution and edge protection settings.
type SecurityConfig struct {
	// JWTSecret enables bearer-token tenant resolution when set; otherwise
	// the X-Company-ID header from a trusted proxy is used.
	JWTSecret string `koanf:"jwt_secret"`

	CORSOrigins []string `koanf:"cors_origins"`

	RateLimitReqs     int           `koanf:"rate_limit_requests" validate:"min=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig mirrors logging.Config for the koanf layer.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error fatal disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all sensible default values.
// These are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:              "0.0.0.0",
			Port:              8720,
			ReadHeaderTimeout: 10 * time.Second,
			ShutdownTimeout:   15 * time.Second,
		},
		Events: EventsConfig{
			Capacity:     500,
			DefaultLimit: 50,
			MaxWait:      5 * time.Minute,
		},
		Store: StoreConfig{
			Path:       "/data/rollcall",
			GCInterval: 10 * time.Minute,
		},
		Recognizer: RecognizerConfig{
			Enabled:       false,
			URL:           "",
			APIKey:        "",
			Timeout:       30 * time.Second,
			RatePerSecond: 10,
		},
		Security: SecurityConfig{
			JWTSecret:         "",
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     300,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// Validate checks structural constraints and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	if c.Recognizer.Enabled && c.Recognizer.URL == "" {
		return fmt.Errorf("recognizer.url is required when recognizer.enabled is true")
	}
	if c.Events.MaxWait > 5*time.Minute {
		return fmt.Errorf("events.max_wait must not exceed 5m, got %s", c.Events.MaxWait)
	}
	return nil
}

// Addr returns the host:port the HTTP server binds to.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
