package auth

import (
	"context"
	"net/http"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"github.com/Jahanvi0310/google-calendar-apis/internal/logger"
)

// authState is sent with every authorization request. The callback does not
// check it back: the server authorizes a single local user.
const authState = "state-token"

// Gateway builds authorization URLs and exchanges authorization codes for
// tokens against the identity provider described by an oauth2.Config.
type Gateway struct {
	config     *oauth2.Config
	store      TokenStore
	httpClient *http.Client
}

// GatewayOption configures a Gateway.
type GatewayOption func(*Gateway)

// WithHTTPClient sets the client used to reach the token endpoint and as the
// base transport of the clients returned by Client.
func WithHTTPClient(client *http.Client) GatewayOption {
	return func(g *Gateway) {
		g.httpClient = client
	}
}

// NewGateway returns a gateway. store may be nil, in which case exchanged
// tokens are not persisted.
func NewGateway(config *oauth2.Config, store TokenStore, opts ...GatewayOption) *Gateway {
	g := &Gateway{
		config: config,
		store:  store,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AuthCodeURL returns the consent page URL. Offline access is requested so
// the provider issues a refresh token.
func (g *Gateway) AuthCodeURL() string {
	return g.config.AuthCodeURL(authState, oauth2.AccessTypeOffline)
}

// Exchange trades a one-time authorization code for a token pair. The token
// is persisted before it is returned. No retry is attempted.
func (g *Gateway) Exchange(ctx context.Context, code string) (*oauth2.Token, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, ErrMissingCode
	}

	startTime := time.Now()
	token, err := g.config.Exchange(g.withHTTPClient(ctx), code)
	if err != nil {
		logger.Warn("token exchange failed", "error", err, "duration", time.Since(startTime).String())
		return nil, &ExchangeError{Err: err}
	}

	logger.Info("token exchange succeeded",
		"duration", time.Since(startTime).String(),
		"has_refresh_token", token.RefreshToken != "",
		"expiry", token.Expiry.Format(time.RFC3339),
	)

	if g.store != nil {
		if err := g.store.Save(token); err != nil {
			return nil, err
		}
	}

	return token, nil
}

// Client returns an HTTP client that authorizes requests with token.
// The configured client's timeout carries over; oauth2 only reuses its transport.
func (g *Gateway) Client(ctx context.Context, token *oauth2.Token) *http.Client {
	client := g.config.Client(g.withHTTPClient(ctx), token)
	if g.httpClient != nil {
		client.Timeout = g.httpClient.Timeout
	}
	return client
}

func (g *Gateway) withHTTPClient(ctx context.Context) context.Context {
	if g.httpClient == nil {
		return ctx
	}
	return context.WithValue(ctx, oauth2.HTTPClient, g.httpClient)
}

// StoredClient returns a client built from the persisted token.
func (g *Gateway) StoredClient(ctx context.Context) (*http.Client, error) {
	if g.store == nil {
		return nil, ErrNoToken
	}

	token, err := g.store.Load()
	if err != nil {
		return nil, err
	}

	return g.Client(ctx, token), nil
}
