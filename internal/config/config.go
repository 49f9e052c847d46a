// Package config loads and validates application configuration from
// environment variables and an optional YAML file. Environment
// variables take precedence; model provider credentials are handled
// separately by the llm package.
package config

import "time"

// Config holds all application configuration.
type Config struct {
	Server ServerConfig `mapstructure:"server" validate:"required"`
	Store  StoreConfig  `mapstructure:"store" validate:"required"`
	Tutor  TutorConfig  `mapstructure:"tutor" validate:"required"`
}

// ServerConfig contains the HTTP server settings.
type ServerConfig struct {
	Port         int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel     string        `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `mapstructure:"write_timeout" validate:"required"`
	// MaxUploadBytes caps multipart file uploads.
	MaxUploadBytes int64 `mapstructure:"max_upload_bytes" validate:"required,gt=0"`
}

// StoreConfig contains the request-log database settings.
type StoreConfig struct {
	// Path is the SQLite file path, or ":memory:" for ephemeral.
	Path string `mapstructure:"path" validate:"required"`
}

// TutorConfig contains generation settings for tutoring operations.
type TutorConfig struct {
	MaxTokens   int           `mapstructure:"max_tokens" validate:"required,gt=0"`
	Temperature float64       `mapstructure:"temperature" validate:"gte=0,lte=1"`
	Timeout     time.Duration `mapstructure:"timeout" validate:"required"`
}
