package service

import (
	"fmt"
	"time"

	"github.com/zfogg/swipefeed/pkg/client"
	"github.com/zfogg/swipefeed/pkg/config"
	"github.com/zfogg/swipefeed/pkg/credentials"
	"github.com/zfogg/swipefeed/pkg/logger"
	"github.com/zfogg/swipefeed/pkg/output"
	"github.com/zfogg/swipefeed/pkg/prompter"
)

// TokenService manages the stored API token
type TokenService struct{}

// NewTokenService creates a new token service
func NewTokenService() *TokenService {
	return &TokenService{}
}

// Set stores token for later runs. An empty token is prompted for
// without echo. ttl of zero stores a token that never expires.
func (s *TokenService) Set(token, username string, ttl time.Duration) error {
	if token == "" {
		var err error
		token, err = prompter.PromptPassword("API token: ")
		if err != nil {
			return err
		}
	}
	if token == "" {
		return fmt.Errorf("token cannot be empty")
	}

	creds := &credentials.Credentials{AccessToken: token, Username: username}
	if ttl > 0 {
		creds.ExpiresAt = time.Now().Add(ttl)
	}

	if err := credentials.Save(creds); err != nil {
		logger.Error("Failed to save credentials", "error", err)
		return err
	}
	client.SetAuthToken(token)

	output.PrintSuccess("Token saved to %s", config.GetCredentialsPath())
	return nil
}

// Clear removes the stored token. Without force the user confirms first.
func (s *TokenService) Clear(force bool) error {
	creds, err := credentials.Load()
	if err != nil {
		logger.Error("Failed to load credentials", "error", err)
		return err
	}

	if creds == nil {
		output.PrintWarning("No token stored")
		return nil
	}

	if !force {
		confirm, err := prompter.PromptConfirm("Remove the stored token?")
		if err != nil {
			return err
		}
		if !confirm {
			return nil
		}
	}

	if err := credentials.Delete(); err != nil {
		output.PrintError("Failed to delete credentials: %v", err)
		return err
	}
	client.ClearAuthToken()

	output.PrintSuccess("Token removed")
	return nil
}

// Status prints where the active token comes from
func (s *TokenService) Status() error {
	if config.GetString("api.token") != "" {
		output.PrintInfo("Using token from api.token (%s or SWIPEFEED_API_TOKEN)", config.GetConfigFilePath())
		return nil
	}

	creds, err := credentials.Load()
	if err != nil {
		return err
	}

	switch {
	case creds == nil:
		output.PrintWarning("No token stored; requests are anonymous")
	case creds.IsExpired():
		output.PrintWarning("Stored token expired at %s", creds.ExpiresAt.Format(time.RFC3339))
	default:
		record := map[string]interface{}{
			"path":   config.GetCredentialsPath(),
			"config": config.GetConfigFilePath(),
		}
		if creds.Username != "" {
			record["username"] = creds.Username
		}
		if !creds.ExpiresAt.IsZero() {
			record["expires_at"] = creds.ExpiresAt.Format(time.RFC3339)
		}
		return output.PrintRecord("Stored token", record)
	}
	return nil
}
