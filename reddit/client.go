package reddit

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

	"github.com/tidwall/gjson"
	"golang.org/x/oauth2"
)

const (
	tokenURL   = "https://www.reddit.com/api/v1/access_token"
	apiBaseURL = "https://oauth.reddit.com"

	// Reddit asks clients to keep at least one second between requests
	minRequestInterval = time.Second
)

// Client is a Reddit API client for script-type apps using the OAuth2
// password grant
type Client struct {
	userAgent string
	baseURL   string
	http      *http.Client

	mu              sync.Mutex
	lastRequestTime time.Time
}

// passwordTokenSource re-fetches a token via the password grant whenever
// the cached one expires (script-app tokens carry no refresh token)
type passwordTokenSource struct {
	ctx                context.Context
	cfg                *oauth2.Config
	username, password string
}

func (s *passwordTokenSource) Token() (*oauth2.Token, error) {
	return s.cfg.PasswordCredentialsToken(s.ctx, s.username, s.password)
}

// userAgentTransport stamps the required User-Agent on every request
type userAgentTransport struct {
	userAgent string
	base      http.RoundTripper
}

func (t *userAgentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", t.userAgent)
	return t.base.RoundTrip(req)
}

// NewClient creates an authenticated Reddit client
func NewClient(clientID, clientSecret, username, password, userAgent string) (*Client, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("reddit client id and secret are required")
	}
	if userAgent == "" {
		userAgent = "redditor/0.1.0"
	}

	cfg := &oauth2.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		Endpoint: oauth2.Endpoint{
			TokenURL:  tokenURL,
			AuthStyle: oauth2.AuthStyleInHeader,
		},
	}

	// Token requests must also carry the User-Agent
	baseCtx := context.WithValue(context.Background(), oauth2.HTTPClient, &http.Client{
		Transport: &userAgentTransport{userAgent: userAgent, base: http.DefaultTransport},
		Timeout:   30 * time.Second,
	})

	src := oauth2.ReuseTokenSource(nil, &passwordTokenSource{
		ctx:      baseCtx,
		cfg:      cfg,
		username: username,
		password: password,
	})

	httpClient := oauth2.NewClient(baseCtx, src)
	httpClient.Transport = &userAgentTransport{userAgent: userAgent, base: httpClient.Transport}
	httpClient.Timeout = 30 * time.Second

	return &Client{
		userAgent: userAgent,
		baseURL:   apiBaseURL,
		http:      httpClient,
	}, nil
}

// SetBaseURL overrides the API endpoint, used in tests
func (c *Client) SetBaseURL(url string) {
	c.baseURL = url
}

// respectRateLimit enforces the minimum interval between requests
func (c *Client) respectRateLimit() {
	c.mu.Lock()
	defer c.mu.Unlock()

	elapsed := time.Since(c.lastRequestTime)
	if elapsed < minRequestInterval {
		time.Sleep(minRequestInterval - elapsed)
	}
	c.lastRequestTime = time.Now()
}

// Me returns the username of the authenticated account
func (c *Client) Me(ctx context.Context) (string, error) {
	c.respectRateLimit()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/api/v1/me", nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("me request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("me request failed: %s", resp.Status)
	}

	var me struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		return "", fmt.Errorf("decode me response: %w", err)
	}

	return me.Name, nil
}

// SubmitComment posts a comment reply to a thing (post or comment).
// thingID is a fullname like t3_abc123 or t1_def456.
func (c *Client) SubmitComment(ctx context.Context, thingID, text string) error {
	c.respectRateLimit()

	form := url.Values{}
	form.Set("api_type", "json")
	form.Set("thing_id", thingID)
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/comment", strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("comment request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("comment request failed: %s", resp.Status)
	}

	// API-level errors come back inside a 200 response
	if errs := gjson.GetBytes(body, "json.errors"); errs.IsArray() && len(errs.Array()) > 0 {
		return fmt.Errorf("comment rejected: %s", errs.Raw)
	}

	return nil
}
