// Package directory resolves operator group memberships against the tenant
// directory's graph API using a service principal.
package directory

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	dErrors "citizengw/pkg/domain-errors"
)

const apiVersion = "1.6"

// GraphClient calls the directory graph API. Access tokens are acquired via
// the client-credentials grant and cached until shortly before expiry.
type GraphClient struct {
	cfg        Config
	httpClient *http.Client

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// Config carries the service-principal credentials and endpoints.
type Config struct {
	ClientID     string
	ClientSecret string
	TenantID     string
	// BaseURL is the graph endpoint, without a trailing slash.
	BaseURL string
	// TokenURL overrides the token endpoint; tests point it at a stub.
	TokenURL string
	Timeout  time.Duration
}

// NewGraphClient constructs a directory client. The per-call timeout comes
// from cfg; zero falls back to five seconds.
func NewGraphClient(cfg Config) *GraphClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if cfg.TokenURL == "" {
		cfg.TokenURL = fmt.Sprintf("https://login.microsoftonline.com/%s/oauth2/token", cfg.TenantID)
	}
	cfg.BaseURL = strings.TrimSuffix(cfg.BaseURL, "/")
	return &GraphClient{
		cfg:        cfg,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// MemberGroupIDs returns the IDs of all security-enabled groups the operator
// belongs to, including transitive memberships.
func (c *GraphClient) MemberGroupIDs(ctx context.Context, oid string) ([]string, error) {
	endpoint := fmt.Sprintf("%s/%s/users/%s/getMemberGroups?api-version=%s",
		c.cfg.BaseURL, c.cfg.TenantID, url.PathEscape(oid), apiVersion)

	body, err := json.Marshal(map[string]bool{"securityEnabledOnly": true})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "encode group membership request")
	}

	var out struct {
		Value []string `json:"value"`
	}
	if err := c.do(ctx, http.MethodPost, endpoint, body, &out); err != nil {
		return nil, err
	}
	return out.Value, nil
}

// GroupDisplayName resolves a group ID to its display name.
func (c *GraphClient) GroupDisplayName(ctx context.Context, groupID string) (string, error) {
	endpoint := fmt.Sprintf("%s/%s/groups/%s?api-version=%s",
		c.cfg.BaseURL, c.cfg.TenantID, url.PathEscape(groupID), apiVersion)

	var out struct {
		DisplayName string `json:"displayName"`
	}
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return "", err
	}
	if out.DisplayName == "" {
		return "", dErrors.New(dErrors.CodeNotFound, "directory group has no display name")
	}
	return out.DisplayName, nil
}

func (c *GraphClient) do(ctx context.Context, method, endpoint string, body []byte, out any) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "build directory request")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "directory request failed")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return dErrors.New(dErrors.CodeNotFound, "directory object not found")
	case resp.StatusCode >= 300:
		return dErrors.New(dErrors.CodeInternal,
			fmt.Sprintf("directory returned status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "decode directory response")
	}
	return nil
}

// token returns a cached access token, refreshing it when less than a minute
// of validity remains.
func (c *GraphClient) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Until(c.tokenExpiry) > time.Minute {
		return c.accessToken, nil
	}

	form := url.Values{
		"grant_type":    {"client_credentials"},
		"client_id":     {c.cfg.ClientID},
		"client_secret": {c.cfg.ClientSecret},
		"resource":      {c.cfg.BaseURL},
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.TokenURL,
		strings.NewReader(form.Encode()))
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "build token request")
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "directory token request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", dErrors.New(dErrors.CodeInternal,
			fmt.Sprintf("directory token endpoint returned status %d", resp.StatusCode))
	}

	var tokenResp struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in,string"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "decode directory token response")
	}
	if tokenResp.AccessToken == "" {
		return "", dErrors.New(dErrors.CodeInternal, "directory token response missing access token")
	}

	c.accessToken = tokenResp.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tokenResp.ExpiresIn) * time.Second)
	return c.accessToken, nil
}
