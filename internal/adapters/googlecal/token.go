package googlecal

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/studysync/core/internal/infrastructure/config"
	"github.com/studysync/core/internal/infrastructure/logger"
	"github.com/studysync/core/internal/ports"
)

// TokenExchanger trades a stored Google refresh token for a short-lived
// access token against the OAuth token endpoint.
type TokenExchanger struct {
	conf   *oauth2.Config
	logger *logger.Logger
}

// NewTokenExchanger creates a new token exchanger
func NewTokenExchanger(cfg config.GoogleConfig, appLogger *logger.Logger) ports.TokenExchanger {
	endpoint := google.Endpoint
	if cfg.TokenURL != "" {
		endpoint = oauth2.Endpoint{TokenURL: cfg.TokenURL}
	}

	return &TokenExchanger{
		conf: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			Endpoint:     endpoint,
		},
		logger: appLogger,
	}
}

// Exchange performs the refresh-token grant and returns the access token.
// A failed exchange (transport error or non-2xx from the provider) returns
// an error; callers treat it as "synchronization unavailable" rather than
// an import failure.
func (t *TokenExchanger) Exchange(ctx context.Context, refreshToken string) (string, error) {
	if refreshToken == "" {
		return "", fmt.Errorf("empty refresh token")
	}

	src := t.conf.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	tok, err := src.Token()
	if err != nil {
		t.logger.Warn("Google token exchange failed", "error", err)
		return "", fmt.Errorf("token exchange: %w", err)
	}

	if tok.AccessToken == "" {
		return "", fmt.Errorf("token exchange: provider returned empty access token")
	}

	return tok.AccessToken, nil
}
