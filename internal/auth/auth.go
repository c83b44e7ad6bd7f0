// Package auth provides Google OAuth2 authentication for the Gmail ingester.
//
// Credentials live in credentials.json (downloaded from the Google Cloud
// console) and the granted token is cached next to it in token.json.
package auth

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// DefaultScopes requests read-only mailbox access. Ingestion never writes to
// the mailbox.
var DefaultScopes = []string{
	gmail.GmailReadonlyScope,
}

// LoadGmailService returns an authenticated Gmail API service.
// credentialsPath should point to the credentials.json file; the cached
// token.json is looked up in the same directory.
func LoadGmailService(ctx context.Context, credentialsPath string) (*gmail.Service, error) {
	client, err := getClient(ctx, credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("get oauth client: %w", err)
	}
	return gmail.NewService(ctx, option.WithHTTPClient(client))
}

// getClient returns an authenticated HTTP client by loading the OAuth config
// from credentials.json and the token from token.json. When no cached token
// exists it runs the interactive consent flow once and caches the result.
func getClient(ctx context.Context, credentialsPath string) (*http.Client, error) {
	config, err := loadOAuthConfig(credentialsPath)
	if err != nil {
		return nil, err
	}

	tokenPath := filepath.Join(filepath.Dir(credentialsPath), "token.json")
	token, err := loadToken(tokenPath)
	if err != nil {
		token, err = tokenFromWeb(ctx, config)
		if err != nil {
			return nil, fmt.Errorf("authorize: %w", err)
		}
		if saveErr := saveToken(tokenPath, token); saveErr != nil {
			fmt.Fprintf(os.Stderr, "warning: could not cache token: %v\n", saveErr)
		}
	}

	// Auto-refresh, and save the refreshed token back.
	ts := config.TokenSource(ctx, token)
	newToken, err := ts.Token()
	if err != nil {
		return nil, fmt.Errorf("refresh token: %w", err)
	}
	if newToken.AccessToken != token.AccessToken {
		if saveErr := saveToken(tokenPath, newToken); saveErr != nil {
			fmt.Fprintf(os.Stderr, "warning: could not save refreshed token: %v\n", saveErr)
		}
	}

	return oauth2.NewClient(ctx, ts), nil
}

// loadOAuthConfig reads credentials.json and returns an OAuth2 config.
func loadOAuthConfig(credentialsPath string) (*oauth2.Config, error) {
	data, err := os.ReadFile(credentialsPath)
	if err != nil {
		return nil, fmt.Errorf("read credentials from %s: %w", credentialsPath, err)
	}

	config, err := google.ConfigFromJSON(data, DefaultScopes...)
	if err != nil {
		return nil, fmt.Errorf("parse credentials: %w", err)
	}

	return config, nil
}

// tokenFromWeb walks the user through the out-of-band consent flow on the
// terminal.
func tokenFromWeb(ctx context.Context, config *oauth2.Config) (*oauth2.Token, error) {
	authURL := config.AuthCodeURL("state-token", oauth2.AccessTypeOffline)
	fmt.Printf("Open the following link in your browser, then paste the authorization code:\n%s\n\ncode: ", authURL)

	reader := bufio.NewReader(os.Stdin)
	code, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("read authorization code: %w", err)
	}

	token, err := config.Exchange(ctx, strings.TrimSpace(code))
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}
	return token, nil
}

func loadToken(tokenPath string) (*oauth2.Token, error) {
	data, err := os.ReadFile(tokenPath)
	if err != nil {
		return nil, fmt.Errorf("read token: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(data, &token); err != nil {
		return nil, fmt.Errorf("parse token: %w", err)
	}
	return &token, nil
}

func saveToken(tokenPath string, token *oauth2.Token) error {
	data, err := json.MarshalIndent(token, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(tokenPath, data, 0o600)
}
