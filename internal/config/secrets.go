package config

import (
	"fmt"
	"os"
	"strings"
)

// LoadSecrets fills in credential fields that are deliberately absent from
// the YAML/env surface in Load. The Redis password comes from REDIS_PASSWORD
// when it is set, otherwise from the file named by REDIS_PASSWORD_FILE (for
// orchestrators that mount secrets as files); the Weaviate API key is read
// only from the file named by WEAVIATE_API_KEY_FILE.
func LoadSecrets(cfg *Config) error {
	if password := os.Getenv("REDIS_PASSWORD"); password != "" {
		cfg.Cache.Password = password
	} else if passwordFile := os.Getenv("REDIS_PASSWORD_FILE"); passwordFile != "" {
		password, err := os.ReadFile(passwordFile)
		if err != nil {
			return fmt.Errorf("failed to read redis password file: %w", err)
		}
		cfg.Cache.Password = strings.TrimSpace(string(password))
	}

	if apiKey := os.Getenv("WEAVIATE_API_KEY_FILE"); apiKey != "" {
		key, err := os.ReadFile(apiKey)
		if err != nil {
			return fmt.Errorf("failed to read weaviate api key file: %w", err)
		}
		cfg.Weaviate.APIKey = strings.TrimSpace(string(key))
	}

	return nil
}
