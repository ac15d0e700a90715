package opensky

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"github.com/flightcard/enrichment-service/internal/core/domain"
	"github.com/flightcard/enrichment-service/internal/pkg/metrics"
)

const (
	DefaultBaseURL = "https://opensky-network.org/api"

	// OpenSky OAuth2 token endpoint
	DefaultTokenURL = "https://auth.opensky-network.org/auth/realms/opensky-network/protocol/openid-connect/token"

	defaultTimeout = 10 * time.Second

	// Pacing: one request per interval, with a small burst.
	defaultRateInterval = 200 * time.Millisecond
	defaultRateBurst    = 4

	// Connection pool settings
	maxIdleConns        = 10
	maxConnsPerHost     = 5
	idleConnTimeout     = 90 * time.Second
	tlsHandshakeTimeout = 10 * time.Second
)

// ErrNotFound is returned when OpenSky has no data for the request.
var ErrNotFound = errors.New("opensky: not found")

// ClientOption configures the Client.
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) { c.httpClient = hc }
}

// WithBaseURL sets the API base URL.
func WithBaseURL(u string) ClientOption {
	return func(c *Client) { c.baseURL = u }
}

// WithBasicAuth sets HTTP Basic credentials (legacy OpenSky accounts).
func WithBasicAuth(username, password string) ClientOption {
	return func(c *Client) {
		c.username = username
		c.password = password
	}
}

// WithClientCredentials enables the OAuth2 client-credentials flow.
// An empty tokenURL selects DefaultTokenURL.
func WithClientCredentials(clientID, clientSecret, tokenURL string) ClientOption {
	return func(c *Client) {
		if tokenURL == "" {
			tokenURL = DefaultTokenURL
		}
		c.oauth = &clientcredentials.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			TokenURL:     tokenURL,
		}
	}
}

// WithTimeout bounds every request, including time spent waiting on the
// rate limiter.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRateLimit paces requests to one per interval with the given burst.
// A non-positive interval disables pacing.
func WithRateLimit(interval time.Duration, burst int) ClientOption {
	return func(c *Client) {
		if interval <= 0 {
			c.limiter = nil
			return
		}
		if burst <= 0 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Every(interval), burst)
	}
}

// Client talks to the OpenSky Network REST API.
type Client struct {
	baseURL    string
	httpClient *http.Client
	// plain is httpClient without the OAuth2 transport; per-request Basic
	// credentials use it.
	plain    *http.Client
	username string
	password string
	oauth    *clientcredentials.Config
	timeout  time.Duration
	limiter  *rate.Limiter
}

// NewClient creates an OpenSky API client with connection pooling.
func NewClient(opts ...ClientOption) *Client {
	transport := &http.Transport{
		MaxIdleConns:        maxIdleConns,
		MaxConnsPerHost:     maxConnsPerHost,
		IdleConnTimeout:     idleConnTimeout,
		TLSHandshakeTimeout: tlsHandshakeTimeout,
	}

	c := &Client{
		baseURL:    DefaultBaseURL,
		httpClient: &http.Client{Transport: transport},
		timeout:    defaultTimeout,
		limiter:    rate.NewLimiter(rate.Every(defaultRateInterval), defaultRateBurst),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.plain = c.httpClient
	if c.oauth != nil {
		tokenCtx := context.WithValue(context.Background(), oauth2.HTTPClient, c.plain)
		c.httpClient = &http.Client{
			Transport: &oauth2.Transport{
				Source: c.oauth.TokenSource(tokenCtx),
				Base:   c.plain.Transport,
			},
			Timeout: c.plain.Timeout,
		}
	}

	return c
}

// WithCredentials returns a copy of c that authenticates with HTTP Basic
// instead of its configured method. The copy shares the connection pool
// and the rate limiter.
func (c *Client) WithCredentials(username, password string) *Client {
	cp := *c
	cp.httpClient = c.plain
	cp.username = username
	cp.password = password
	return &cp
}

// StatesQuery selects state vectors. Zero fields are not sent.
type StatesQuery struct {
	ICAO24 []string
	Box    *domain.BoundingBox
}

func (q StatesQuery) values() url.Values {
	v := url.Values{}
	for _, id := range q.ICAO24 {
		v.Add("icao24", id)
	}
	if q.Box != nil {
		v.Set("lamin", formatFloat(q.Box.LatMin))
		v.Set("lomin", formatFloat(q.Box.LonMin))
		v.Set("lamax", formatFloat(q.Box.LatMax))
		v.Set("lomax", formatFloat(q.Box.LonMax))
	}
	// extended=1 adds the aircraft category column.
	v.Set("extended", "1")
	return v
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// statesResponse mirrors the JSON shape returned by /states/all.
type statesResponse struct {
	Time   int64   `json:"time"`
	States [][]any `json:"states"`
}

// trackResponse mirrors the JSON shape returned by /tracks/all.
type trackResponse struct {
	ICAO24    string  `json:"icao24"`
	Callsign  string  `json:"callsign"`
	StartTime float64 `json:"startTime"`
	EndTime   float64 `json:"endTime"`
	Path      [][]any `json:"path"`
}

// GetStates retrieves state vectors matching q.
func (c *Client) GetStates(ctx context.Context, q StatesQuery) ([]domain.StateVector, error) {
	var raw statesResponse
	if err := c.get(ctx, "states", "/states/all", q.values(), &raw); err != nil {
		return nil, err
	}
	return parseStates(raw.States), nil
}

// GetTrack retrieves the live track of an aircraft (time=0).
func (c *Client) GetTrack(ctx context.Context, icao24 string) ([]domain.Waypoint, error) {
	v := url.Values{}
	v.Set("icao24", icao24)
	v.Set("time", "0")

	var raw trackResponse
	if err := c.get(ctx, "tracks", "/tracks/all", v, &raw); err != nil {
		return nil, err
	}
	return parsePath(raw.Path), nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values, out any) (err error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
		result := "ok"
		switch {
		case errors.Is(err, ErrNotFound):
			result = "not_found"
		case err != nil:
			result = "error"
		}
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, result).Inc()
	}()

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("waiting for rate limiter: %w", err)
		}
	}

	u := c.baseURL + path + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	if c.username != "" && c.password != "" {
		req.SetBasicAuth(c.username, c.password)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

func parseStates(rows [][]any) []domain.StateVector {
	states := make([]domain.StateVector, 0, len(rows))
	for _, s := range rows {
		if len(s) < 17 {
			continue
		}
		st := domain.StateVector{
			ICAO24:         stringVal(s[0]),
			Callsign:       stringVal(s[1]),
			OriginCountry:  stringVal(s[2]),
			TimePosition:   intPtr(s[3]),
			Longitude:      floatPtr(s[5]),
			Latitude:       floatPtr(s[6]),
			BaroAltitude:   floatPtr(s[7]),
			OnGround:       boolVal(s[8]),
			Velocity:       floatPtr(s[9]),
			TrueTrack:      floatPtr(s[10]),
			VerticalRate:   floatPtr(s[11]),
			Sensors:        intSlice(s[12]),
			GeoAltitude:    floatPtr(s[13]),
			Squawk:         stringVal(s[14]),
			SPI:            boolVal(s[15]),
			PositionSource: intVal(s[16]),
		}
		if v, ok := s[4].(float64); ok {
			st.LastContact = int64(v)
		}
		if len(s) > 17 {
			st.Category = intVal(s[17])
		}
		states = append(states, st)
	}
	return states
}

func parsePath(rows [][]any) []domain.Waypoint {
	path := make([]domain.Waypoint, 0, len(rows))
	for _, p := range rows {
		if len(p) < 6 {
			continue
		}
		wp := domain.Waypoint{
			Latitude:     floatPtr(p[1]),
			Longitude:    floatPtr(p[2]),
			BaroAltitude: floatPtr(p[3]),
			TrueTrack:    floatPtr(p[4]),
			OnGround:     boolVal(p[5]),
		}
		if v, ok := p[0].(float64); ok {
			wp.Time = int64(v)
		}
		path = append(path, wp)
	}
	return path
}

func stringVal(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func boolVal(v any) bool {
	if b, ok := v.(bool); ok {
		return b
	}
	return false
}

func intVal(v any) int {
	if f, ok := v.(float64); ok {
		return int(f)
	}
	return 0
}

func floatPtr(v any) *float64 {
	if f, ok := v.(float64); ok {
		return &f
	}
	return nil
}

func intPtr(v any) *int64 {
	if f, ok := v.(float64); ok {
		i := int64(f)
		return &i
	}
	return nil
}

func intSlice(v any) []int {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]int, 0, len(arr))
	for _, e := range arr {
		if f, ok := e.(float64); ok {
			out = append(out, int(f))
		}
	}
	return out
}
