// Package config defines the portal API configuration, loaded from
// environment variables via github.com/caarlos0/env.
package config

import "fmt"

// AppConfig is the main application configuration.
type AppConfig struct {
	// IsDev controls development mode behavior.
	IsDev bool `env:"DEV" envDefault:"false"`

	// HTTP server configuration
	HTTP HTTPConfig

	// Upload pipeline configuration
	Upload UploadConfig
}

// HTTPConfig contains HTTP server configuration.
type HTTPConfig struct {
	// Port is the TCP port the server listens on.
	Port int `env:"PORT" envDefault:"4000"`
}

// Addr is the listen address derived from the port.
func (h HTTPConfig) Addr() string {
	return fmt.Sprintf(":%d", h.Port)
}

// UploadConfig contains the upload pipeline's policy and storage paths.
type UploadConfig struct {
	// MaxFileSize is the presign size cap in bytes.
	MaxFileSize int64 `env:"MAX_FILE_SIZE" envDefault:"5242880"`

	// AllowedTypes is the presign content-type allow-list.
	AllowedTypes []string `env:"ALLOWED_TYPES" envSeparator:"," envDefault:"image/png,image/jpeg"`

	// UploadsDir is where upload bodies are stored, keyed by upload id.
	UploadsDir string `env:"UPLOADS_DIR" envDefault:"uploads"`

	// MetadataFile is the JSON ledger path.
	MetadataFile string `env:"METADATA_FILE" envDefault:"db.json"`
}

// Sanitize applies guardrails to configuration values loaded from env.
func (c *AppConfig) Sanitize() {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		c.HTTP.Port = 4000
	}
	if c.Upload.MaxFileSize <= 0 {
		c.Upload.MaxFileSize = 5242880
	}
	if len(c.Upload.AllowedTypes) == 0 {
		c.Upload.AllowedTypes = []string{"image/png", "image/jpeg"}
	}
	if c.Upload.UploadsDir == "" {
		c.Upload.UploadsDir = "uploads"
	}
	if c.Upload.MetadataFile == "" {
		c.Upload.MetadataFile = "db.json"
	}
}
