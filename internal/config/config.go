package config

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server settings
	ListenAddr string `json:"listen_addr"`
	Debug      bool   `json:"debug"`

	// Directories
	DataDirectory string `json:"data_directory"`

	// Assistant settings
	AssistantReplyDelay time.Duration `json:"assistant_reply_delay"`
}

// DefaultConfig returns configuration with sensible defaults
func DefaultConfig() *Config {
	wd, err := os.Getwd()
	if err != nil {
		wd = "."
	}

	return &Config{
		ListenAddr:          ":8080",
		Debug:               false,
		DataDirectory:       filepath.Join(wd, "data"),
		AssistantReplyDelay: 500 * time.Millisecond,
	}
}

// Load loads configuration from a .env file (if present) and environment
// variables
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: could not load .env file: %v", err)
	}

	cfg := DefaultConfig()

	if addr := os.Getenv("FINANCAS_LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if debug := os.Getenv("FINANCAS_DEBUG"); debug == "true" || debug == "1" {
		cfg.Debug = true
	}
	if dataDir := os.Getenv("FINANCAS_DATA_DIR"); dataDir != "" {
		cfg.DataDirectory = dataDir
	}
	if delay := os.Getenv("FINANCAS_REPLY_DELAY"); delay != "" {
		if d, err := time.ParseDuration(delay); err == nil && d >= 0 {
			cfg.AssistantReplyDelay = d
		} else {
			log.Printf("Warning: invalid FINANCAS_REPLY_DELAY %q, using default", delay)
		}
	}

	cfg.ensureDirectories()

	return cfg
}

// ensureDirectories creates required directories if they don't exist
func (c *Config) ensureDirectories() {
	if err := os.MkdirAll(c.DataDirectory, 0755); err != nil {
		log.Printf("Warning: could not create directory %s: %v", c.DataDirectory, err)
	}
}
