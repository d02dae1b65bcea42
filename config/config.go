package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

// Storage backend selection values
const (
	BackendSheets   = "sheets"
	BackendPostgres = "postgres"
)

// Config holds all application configuration
type Config struct {
	// Discord configuration
	DiscordToken   string
	OwnerID        string   // Privileged owner user ID
	AdminUserIDs   []string // Additional users allowed to run privileged commands
	AdminChannelID string   // Optional channel for slip approval notifications

	// Storage configuration
	StorageBackend string // "sheets" or "postgres"

	// Google Sheets configuration
	SheetID             string
	ServiceAccountEmail string
	ServiceAccountKey   string // PEM private key; "\n" escapes are tolerated

	// Database configuration (postgres backend)
	DatabaseURL  string
	DatabaseName string

	// Bot configuration
	SpinLimit       int
	PendingTopUpTTL time.Duration // How long a top-up press waits for its slip

	// Web configuration
	HealthAddr string

	// Environment
	Environment string // "development" or "production"
}

var (
	instance *Config
	once     sync.Once
	mu       sync.Mutex // Protects instance for test setup
)

// Get returns the global configuration instance
func Get() *Config {
	mu.Lock()
	defer mu.Unlock()

	// If instance is already set (e.g., by tests), return it
	if instance != nil {
		return instance
	}

	once.Do(func() {
		var err error
		instance, err = load()
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// load loads configuration from the environment, reading a local .env
// file first when present
func load() (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		// Discord
		DiscordToken:   os.Getenv("DISCORD_TOKEN"),
		OwnerID:        os.Getenv("OWNER_ID"),
		AdminChannelID: os.Getenv("ADMIN_CHANNEL_ID"),

		// Storage
		StorageBackend: getEnvWithDefault("STORAGE_BACKEND", BackendSheets),

		// Google Sheets
		SheetID:             os.Getenv("GOOGLE_SHEET_ID"),
		ServiceAccountEmail: os.Getenv("GOOGLE_SERVICE_ACCOUNT_EMAIL"),
		ServiceAccountKey:   os.Getenv("GOOGLE_SERVICE_ACCOUNT_KEY"),

		// Database
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		DatabaseName: os.Getenv("DATABASE_NAME"),

		// Bot settings with defaults
		SpinLimit:       5,
		PendingTopUpTTL: 30 * time.Minute,

		// Web
		HealthAddr: getEnvWithDefault("HEALTH_ADDR", ":3000"),

		// Environment
		Environment: os.Getenv("ENVIRONMENT"),
	}

	// Override defaults if environment variables are set
	if limit := os.Getenv("SPIN_LIMIT"); limit != "" {
		if parsedLimit, err := strconv.Atoi(limit); err == nil && parsedLimit > 0 {
			config.SpinLimit = parsedLimit
		}
	}
	if ttl := os.Getenv("PENDING_TOPUP_TTL"); ttl != "" {
		if parsedTTL, err := time.ParseDuration(ttl); err == nil && parsedTTL > 0 {
			config.PendingTopUpTTL = parsedTTL
		}
	}

	// Parse additional admin user IDs
	if adminIDs := os.Getenv("ADMIN_USER_IDS"); adminIDs != "" {
		for _, id := range strings.Split(adminIDs, ",") {
			id = strings.TrimSpace(id)
			if id != "" {
				config.AdminUserIDs = append(config.AdminUserIDs, id)
			}
		}
	}

	// Set default environment if not specified
	if config.Environment == "" {
		config.Environment = "development"
	}

	if config.Environment != "test" {
		if config.DiscordToken == "" {
			return nil, fmt.Errorf("DISCORD_TOKEN is required")
		}
		if config.OwnerID == "" {
			return nil, fmt.Errorf("OWNER_ID is required")
		}
		switch config.StorageBackend {
		case BackendSheets:
			if config.SheetID == "" {
				return nil, fmt.Errorf("GOOGLE_SHEET_ID is required for the sheets backend")
			}
			if config.ServiceAccountEmail == "" || config.ServiceAccountKey == "" {
				return nil, fmt.Errorf("GOOGLE_SERVICE_ACCOUNT_EMAIL and GOOGLE_SERVICE_ACCOUNT_KEY are required for the sheets backend")
			}
		case BackendPostgres:
			if config.DatabaseURL == "" {
				return nil, fmt.Errorf("DATABASE_URL is required for the postgres backend")
			}
		default:
			return nil, fmt.Errorf("unknown storage backend %q", config.StorageBackend)
		}
	}

	return config, nil
}

// IsPrivilegedUser reports whether a user may run owner-level commands
func (c *Config) IsPrivilegedUser(userID string) bool {
	if userID == c.OwnerID {
		return true
	}
	for _, id := range c.AdminUserIDs {
		if userID == id {
			return true
		}
	}
	return false
}

// getEnvWithDefault returns the environment variable value or a default if not set
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// Test helpers - only use in tests

// SetTestConfig overrides the global config instance for testing
func SetTestConfig(testConfig *Config) {
	mu.Lock()
	defer mu.Unlock()
	instance = testConfig
}

// ResetConfig resets the global config instance and sync.Once for testing
func ResetConfig() {
	mu.Lock()
	defer mu.Unlock()
	instance = nil
	once = sync.Once{}
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		Environment:     "test",
		OwnerID:         "999999",
		AdminUserIDs:    []string{"999991"},
		SpinLimit:       5,
		PendingTopUpTTL: 30 * time.Minute,
	}
}
