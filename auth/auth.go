// Package auth handles the OAuth2 client-credentials flow used against
// the utility provider's API.
package auth

import (
	"context"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// ClientCred caches an access token obtained with the client-credentials
// grant and refreshes it once it expires.
type ClientCred struct {
	conf  clientcredentials.Config
	token *oauth2.Token
}

// NewClientCred returns a client for the given credentials.
func NewClientCred(conf Conf) *ClientCred {
	return &ClientCred{conf: conf.toOauth2Config()}
}

// GetToken returns a valid access token, requesting a new one when the
// cached token is missing or expired.
func (c *ClientCred) GetToken(ctx context.Context) (string, error) {
	if c.token != nil && c.token.Valid() {
		return c.token.AccessToken, nil
	}
	if err := c.refresh(ctx); err != nil {
		return "", err
	}
	return c.token.AccessToken, nil
}

// SetAuthHeader sets the Authorization header on the request, refreshing
// the token first if needed.
func (c *ClientCred) SetAuthHeader(ctx context.Context, r *http.Request) error {
	if c.token == nil || !c.token.Valid() {
		if err := c.refresh(ctx); err != nil {
			return err
		}
	}
	c.token.SetAuthHeader(r)
	return nil
}

func (c *ClientCred) refresh(ctx context.Context) error {
	token, err := c.conf.Token(ctx)
	if err != nil {
		return fmt.Errorf("token request: %w", err)
	}
	c.token = token
	return nil
}
