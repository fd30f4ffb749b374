package paypal

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/DanielPopoola/course-checkout/internal/application"
)

// tokenRefreshMargin is how long before expiry a cached token is replaced.
const tokenRefreshMargin = 5 * time.Minute

// tokenSource fetches client-credentials tokens and caches them until
// shortly before they expire. Failures are never cached.
type tokenSource struct {
	settings   Settings
	httpClient *http.Client
	now        func() time.Time

	mu        sync.RWMutex
	token     string
	expiresAt time.Time
}

func newTokenSource(settings Settings, httpClient *http.Client) *tokenSource {
	return &tokenSource{
		settings:   settings,
		httpClient: httpClient,
		now:        time.Now,
	}
}

// Token returns a bearer token or an AuthFailed service error.
func (s *tokenSource) Token(ctx context.Context) (string, error) {
	s.mu.RLock()
	token, expiresAt := s.token, s.expiresAt
	s.mu.RUnlock()

	if token != "" && s.now().Before(expiresAt) {
		return token, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// another caller may have refreshed while we waited
	if s.token != "" && s.now().Before(s.expiresAt) {
		return s.token, nil
	}

	fresh, err := s.fetch(ctx)
	if err != nil {
		s.token = ""
		return "", application.NewAuthFailedError(err)
	}
	if fresh.AccessToken == "" {
		s.token = ""
		return "", application.NewAuthFailedError(errors.New("paypal returned an empty access token"))
	}

	s.token = fresh.AccessToken
	s.expiresAt = s.now().Add(time.Duration(fresh.ExpiresIn)*time.Second - tokenRefreshMargin)
	return s.token, nil
}

func (s *tokenSource) fetch(ctx context.Context) (*tokenResponse, error) {
	form := url.Values{"grant_type": {"client_credentials"}}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.settings.APIBase()+"/v1/oauth2/token", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("error creating token request: %w", err)
	}
	req.SetBasicAuth(s.settings.ClientID, s.settings.ClientSecret)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error requesting token: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error reading token response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, decodeAPIError(resp, body)
	}

	var out tokenResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("error decoding token response: %w", err)
	}
	return &out, nil
}
