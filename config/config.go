package config

import (
	"fmt"
	"os"
	"sync"
)

// Config holds all application configuration
type Config struct {
	// HTTP configuration
	HTTPAddr string

	// Database configuration
	DatabaseURL string

	// Account provisioning
	AccountEmailDomain string // domain used for emails derived from entry labels
	DefaultAccessCode  string // access code assigned to provisioned accounts

	// Seed admin
	AdminName       string
	AdminEmail      string
	AdminAccessCode string

	// Environment
	Environment string // "development", "production" or "test"
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from environment variables
func load() (*Config, error) {
	config := &Config{
		HTTPAddr:    os.Getenv("HTTP_ADDR"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		AccountEmailDomain: os.Getenv("ACCOUNT_EMAIL_DOMAIN"),
		DefaultAccessCode:  os.Getenv("DEFAULT_USER_CODE"),

		AdminName:       os.Getenv("DEFAULT_ADMIN_NAME"),
		AdminEmail:      os.Getenv("DEFAULT_ADMIN_EMAIL"),
		AdminAccessCode: os.Getenv("DEFAULT_ADMIN_CODE"),

		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Defaults
	if config.HTTPAddr == "" {
		config.HTTPAddr = ":4000"
	}
	if config.AccountEmailDomain == "" {
		config.AccountEmailDomain = "ibtikar-tech.com"
	}
	if config.DefaultAccessCode == "" {
		config.DefaultAccessCode = "pinkbellezza"
	}
	if config.AdminName == "" {
		config.AdminName = "djiby"
	}
	if config.AdminEmail == "" {
		config.AdminEmail = "djiby@ibtikar-tech.com"
	}
	if config.AdminAccessCode == "" {
		config.AdminAccessCode = "admin123"
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		// Validate required configuration
		if config.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required")
		}
	}

	return config, nil
}
