package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr              string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout   time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	DatabasePath      string        `mapstructure:"database_path" yaml:"database_path"`
	LogLevel          string        `mapstructure:"log_level" yaml:"log_level"`

	// Operator is the reserved identifier of the single support agent.
	Operator string `mapstructure:"operator" yaml:"operator"`
	// OperatorPasswordHash is the bcrypt hash checked by /api/login.
	OperatorPasswordHash string `mapstructure:"operator_password_hash" yaml:"operator_password_hash"`

	JWTSecret string `mapstructure:"jwt_secret" yaml:"jwt_secret"`

	// UploadPathPrefix marks stored texts as image resource locators.
	UploadPathPrefix string `mapstructure:"upload_path_prefix" yaml:"upload_path_prefix"`
	// HistoryLimit caps the operator's recent-messages listing.
	HistoryLimit int `mapstructure:"history_limit" yaml:"history_limit"`
}

// Default returns configuration with reasonable starter defaults.
func Default() Config {
	return Config{
		Addr:              ":8080",
		ReadHeaderTimeout: 5 * time.Second,
		ShutdownTimeout:   5 * time.Second,
		DatabasePath:      "chat.db",
		LogLevel:          "info",
		Operator:          "admin",
		UploadPathPrefix:  "/static/uploads/",
		HistoryLimit:      100,
	}
}
