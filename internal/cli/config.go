package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL       string
	GameID          string
	TeamID          string
	TeamKey         string
	CredentialsFile string
	Output          string
}

// Credentials are the secrets returned when creating or joining a game
type Credentials struct {
	GameID  string `json:"game_id"`
	TeamID  string `json:"team_id"`
	TeamKey string `json:"team_key"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:       getEnvOrDefault("CONQUER_SERVER", "http://localhost:8080"),
		TeamID:          os.Getenv("CONQUER_TEAM_ID"),
		TeamKey:         os.Getenv("CONQUER_TEAM_KEY"),
		CredentialsFile: getEnvOrDefault("CONQUER_CREDENTIALS_FILE", defaultCredentialsFile()),
		Output:          "text",
	}
}

// LoadCredentials loads saved credentials from file for any field not
// already set via flags or environment
func (c *Config) LoadCredentials() error {
	if c.TeamID != "" && c.TeamKey != "" && c.GameID != "" {
		return nil
	}

	data, err := os.ReadFile(c.CredentialsFile)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // No credentials file is fine
		}
		return err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return err
	}

	if c.GameID == "" {
		c.GameID = creds.GameID
	}
	if c.TeamID == "" {
		c.TeamID = creds.TeamID
	}
	if c.TeamKey == "" {
		c.TeamKey = creds.TeamKey
	}
	return nil
}

// SaveCredentials writes credentials to the credentials file
func (c *Config) SaveCredentials(creds Credentials) error {
	c.GameID = creds.GameID
	c.TeamID = creds.TeamID
	c.TeamKey = creds.TeamKey

	dir := filepath.Dir(c.CredentialsFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.Marshal(creds)
	if err != nil {
		return err
	}

	return os.WriteFile(c.CredentialsFile, data, 0600)
}

func defaultCredentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".conquer/credentials.json"
	}
	return filepath.Join(home, ".conquer", "credentials.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
