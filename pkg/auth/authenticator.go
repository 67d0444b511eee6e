package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/oauth2"

	"github.com/fintrackr/fintrackr/internal/config"
)

var ErrNotConfigured = errors.New("identity provider is not configured")

// Token is the subset of the provider token exposed to clients.
type Token struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

type Authenticator interface {
	// Login exchanges user credentials for a token at the identity provider.
	Login(ctx context.Context, username string, password string) (Token, error)
	// Refresh trades a refresh token for a fresh access token.
	Refresh(ctx context.Context, refreshToken string) (Token, error)
}

// OAuthAuthenticator delegates credential checks to an external OAuth2
// identity provider. Fintrackr never sees password hashes; it only relays
// credentials and stores nothing.
type OAuthAuthenticator struct {
	oauthConfig *oauth2.Config
	configured  bool
}

func NewOAuthAuthenticator(cfg config.Identity) *OAuthAuthenticator {
	oauthConfig := &oauth2.Config{
		ClientID:     cfg.ClientId,
		ClientSecret: cfg.ClientSecret,
		Endpoint: oauth2.Endpoint{
			AuthURL:  cfg.Url + "/oauth2/authorize",
			TokenURL: cfg.Url + "/oauth2/token",
		},
	}
	return &OAuthAuthenticator{
		oauthConfig: oauthConfig,
		configured:  cfg.Url != "" && cfg.ClientId != "",
	}
}

func (a *OAuthAuthenticator) Login(ctx context.Context, username string, password string) (Token, error) {
	if !a.configured {
		return Token{}, ErrNotConfigured
	}
	token, err := a.oauthConfig.PasswordCredentialsToken(ctx, username, password)
	if err != nil {
		return Token{}, fmt.Errorf("unable to exchange credentials for token: %w", err)
	}
	return fromOAuthToken(token), nil
}

func (a *OAuthAuthenticator) Refresh(ctx context.Context, refreshToken string) (Token, error) {
	if !a.configured {
		return Token{}, ErrNotConfigured
	}
	source := a.oauthConfig.TokenSource(ctx, &oauth2.Token{RefreshToken: refreshToken})
	token, err := source.Token()
	if err != nil {
		return Token{}, fmt.Errorf("unable to refresh token: %w", err)
	}
	return fromOAuthToken(token), nil
}

func fromOAuthToken(token *oauth2.Token) Token {
	return Token{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}
}
