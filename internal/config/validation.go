package config

import (
	"fmt"

	urlutil "github.com/law-makers/activities/internal/utils/url"
)

var sslModes = map[string]bool{
	"disable":     true,
	"allow":       true,
	"prefer":      true,
	"require":     true,
	"verify-ca":   true,
	"verify-full": true,
}

func validate(c *Config) error {
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be > 0")
	}
	if err := urlutil.ValidateURL(c.URL); err != nil {
		return err
	}
	if c.Database.Host == "" {
		return fmt.Errorf("database host is required")
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		return fmt.Errorf("database port must be between 1 and 65535")
	}
	if c.Database.Name == "" {
		return fmt.Errorf("database name is required")
	}
	if c.Database.User == "" {
		return fmt.Errorf("database user is required")
	}
	if !sslModes[c.Database.SSLMode] {
		return fmt.Errorf("unsupported database sslmode %q", c.Database.SSLMode)
	}
	return nil
}
