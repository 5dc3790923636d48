package igdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

// DefaultTokenURL is the upstream OAuth2 client-credentials endpoint.
const DefaultTokenURL = "https://id.twitch.tv/oauth2/token"

// tokenExpiryMargin is how long before the reported expiry a cached
// token stops being handed out and a fresh grant is performed.
const tokenExpiryMargin = 60 * time.Second

// tokenManager obtains and caches an app access token via the OAuth2
// client-credentials grant. The token is replaced wholesale on expiry.
type tokenManager struct {
	clientID     string
	clientSecret string
	tokenURL     string
	http         *http.Client

	mu          sync.Mutex
	accessToken string
	expiresAt   time.Time

	now func() time.Time
}

func newTokenManager(clientID, clientSecret, tokenURL string, hc *http.Client) *tokenManager {
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	return &tokenManager{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		http:         hc,
		now:          time.Now,
	}
}

// Token returns a bearer token with more than tokenExpiryMargin of
// lifetime left, performing the grant when needed.
func (tm *tokenManager) Token(ctx context.Context) (string, error) {
	if tm.clientID == "" {
		return "", &AuthConfigError{Missing: "client id"}
	}
	if tm.clientSecret == "" {
		return "", &AuthConfigError{Missing: "client secret"}
	}

	tm.mu.Lock()
	defer tm.mu.Unlock()

	if tm.accessToken != "" && tm.now().Add(tokenExpiryMargin).Before(tm.expiresAt) {
		return tm.accessToken, nil
	}

	token, expiresIn, err := tm.grant(ctx)
	if err != nil {
		return "", err
	}

	tm.accessToken = token
	tm.expiresAt = tm.now().Add(time.Duration(expiresIn) * time.Second)
	return tm.accessToken, nil
}

// ExpiresAt reports when the cached token expires, zero when no token
// has been obtained yet.
func (tm *tokenManager) ExpiresAt() time.Time {
	tm.mu.Lock()
	defer tm.mu.Unlock()
	return tm.expiresAt
}

func (tm *tokenManager) grant(ctx context.Context) (string, int64, error) {
	form := url.Values{
		"client_id":     {tm.clientID},
		"client_secret": {tm.clientSecret},
		"grant_type":    {"client_credentials"},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tm.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, &AuthRequestError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := tm.http.Do(req)
	if err != nil {
		return "", 0, &AuthRequestError{Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", 0, &AuthRequestError{Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return "", 0, &AuthRequestError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("grant rejected: %s", strings.TrimSpace(string(body))),
		}
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return "", 0, &AuthRequestError{Err: fmt.Errorf("decode token response: %w", err)}
	}
	if result.AccessToken == "" {
		return "", 0, &AuthRequestError{Err: fmt.Errorf("token response missing access_token")}
	}

	return result.AccessToken, result.ExpiresIn, nil
}
