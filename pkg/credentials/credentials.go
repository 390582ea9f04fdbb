package credentials

import (
	"os"
	"time"

	json "github.com/json-iterator/go"
	"github.com/zfogg/swipefeed/pkg/config"
)

// Credentials holds the API token used for feed and interaction requests
type Credentials struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
	Username    string    `json:"username,omitempty"`
}

// Load loads credentials from disk
func Load() (*Credentials, error) {
	path := config.GetCredentialsPath()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil // Credentials don't exist yet
		}
		return nil, err
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, err
	}

	return &creds, nil
}

// Save saves credentials to disk
func Save(creds *Credentials) error {
	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}

	// Write with restricted permissions (owner read/write only)
	return os.WriteFile(config.GetCredentialsPath(), data, 0600)
}

// Delete deletes credentials from disk
func Delete() error {
	err := os.Remove(config.GetCredentialsPath())
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// IsExpired checks if the access token is expired.
// A zero expiry means the token does not expire.
func (c *Credentials) IsExpired() bool {
	if c.ExpiresAt.IsZero() {
		return false
	}
	return time.Now().After(c.ExpiresAt)
}

// IsValid checks if credentials are valid
func (c *Credentials) IsValid() bool {
	return c.AccessToken != "" && !c.IsExpired()
}

// Token resolves the token to send: the api.token key wins over the stored file
func Token() string {
	if token := config.GetString("api.token"); token != "" {
		return token
	}
	creds, err := Load()
	if err != nil || creds == nil || !creds.IsValid() {
		return ""
	}
	return creds.AccessToken
}
