package withings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"withings-health-sync/internal/domain/devices"
	"withings-health-sync/internal/domain/goals"
	"withings-health-sync/internal/domain/measurements"
	"withings-health-sync/internal/platform/httpclient"
	"withings-health-sync/internal/platform/logger"
	"withings-health-sync/internal/platform/metrics"
	"withings-health-sync/internal/version"

	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

const (
	DefaultAPIHost = "wbsapi.withings.net"
	DefaultTimeout = httpclient.DefaultTimeout
)

// Config del cliente Withings.
type Config struct {
	// APIHost se usa con https://host:443 si BaseURL está vacío.
	APIHost string
	// BaseURL reemplaza scheme+host (p.ej. httptest en tests).
	BaseURL string

	// Timeout por request; se aplica como deadline del contexto.
	Timeout time.Duration

	// HTTPClient opcional. Si es nil el cliente crea uno propio y Close lo libera;
	// si viene de afuera, Close no lo cierra.
	HTTPClient *http.Client

	// Transport opcional para el *http.Client propio; se ignora si viene HTTPClient.
	Transport http.RoundTripper

	// MaxResponseBytes limita el body leído; 0 = httpclient.DefaultMaxBodyBytes.
	// Un getmeas sin lastupdate trae todo el historial de la cuenta.
	MaxResponseBytes int64

	// RateLimit en requests/segundo; 0 = sin límite.
	RateLimit float64

	// Version va en el User-Agent; por defecto version.Version.
	Version string

	Logger logger.Logger
}

type Client struct {
	http      *httpclient.Client
	timeout   time.Duration
	userAgent string
	limiter   *rate.Limiter
	log       logger.Logger

	mu    sync.RWMutex
	token string
}

func NewClient(cfg Config) (*Client, error) {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	var hc *httpclient.Client
	switch {
	case cfg.HTTPClient != nil:
		hc = httpclient.Wrap(cfg.HTTPClient)
	case cfg.Transport != nil:
		hc = httpclient.NewWithTransport(timeout, cfg.Transport)
	default:
		hc = httpclient.New(timeout)
	}
	hc.MaxBodyBytes = cfg.MaxResponseBytes

	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		host := strings.TrimSpace(cfg.APIHost)
		if host == "" {
			host = DefaultAPIHost
		}
		baseURL = (&url.URL{Scheme: "https", Host: net.JoinHostPort(host, "443")}).String()
	}
	if err := hc.SetBaseURL(baseURL); err != nil {
		hc.Close()
		return nil, err
	}

	ver := strings.TrimSpace(cfg.Version)
	if ver == "" {
		ver = version.Version
	}

	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	c := &Client{
		http:      hc,
		timeout:   timeout,
		userAgent: "WithingsHealthSync/" + ver,
		log:       log.With(map[string]any{"component": "withings"}),
	}
	if cfg.RateLimit > 0 {
		burst := int(cfg.RateLimit)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), burst)
	}
	return c, nil
}

// Authenticate fija el access token OAuth2 que se manda como Bearer.
func (c *Client) Authenticate(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = strings.TrimSpace(token)
}

func (c *Client) IsAuthenticated() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token != ""
}

// Close libera el *http.Client solo si lo creó este cliente. Idempotente.
func (c *Client) Close() error {
	c.http.Close()
	return nil
}

type envelope struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body"`
	Error  string          `json:"error"`
}

func (c *Client) request(ctx context.Context, path string, form url.Values) (json.RawMessage, error) {
	c.mu.RLock()
	token := c.token
	c.mu.RUnlock()
	if token == "" {
		return nil, ErrNotAuthenticated
	}

	action := form.Get("action")
	log := c.log.With(map[string]any{"request_id": uuid.NewString(), "path": path, "action": action})

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrConnection, err)
		}
	}

	started := time.Now()
	body, err := c.do(ctx, path, token, form)
	metrics.ObserveUpstream(action, metrics.Result(err), time.Since(started))
	if err != nil {
		log.Warn("withings request failed", map[string]any{"err": err, "elapsed": time.Since(started).String()})
		return nil, err
	}
	log.Debug("withings request done", map[string]any{"elapsed": time.Since(started).String()})
	return body, nil
}

func (c *Client) do(ctx context.Context, path, token string, form url.Values) (json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.http.PostForm(ctx, path, map[string]string{
		"User-Agent":    c.userAgent,
		"Accept":        "application/json, text/plain, */*",
		"Authorization": "Bearer " + token,
	}, form)
	if err != nil {
		var he *httpclient.HTTPError
		switch {
		case errors.As(err, &he), errors.Is(err, httpclient.ErrResponseTooLarge):
			return nil, fmt.Errorf("%w: %w", ErrUnexpectedResponse, err)
		case errors.Is(err, context.DeadlineExceeded) || isTimeout(err):
			return nil, fmt.Errorf("%w: timeout occurred while connecting to Withings: %w", ErrConnection, err)
		default:
			return nil, fmt.Errorf("%w: %w", ErrConnection, err)
		}
	}

	if !strings.Contains(resp.ContentType, "application/json") {
		return nil, &ResponseError{ContentType: resp.ContentType, Body: string(resp.Body)}
	}

	var env envelope
	if err := json.Unmarshal(resp.Body, &env); err != nil {
		return nil, fmt.Errorf("%w: invalid json: %v", ErrUnexpectedResponse, err)
	}
	if err := classifyStatus(env.Status, env.Error); err != nil {
		return nil, err
	}
	return env.Body, nil
}

func isTimeout(err error) bool {
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

func (c *Client) GetDevices(ctx context.Context) ([]devices.Device, error) {
	body, err := c.request(ctx, "v2/user", url.Values{"action": {"getdevice"}})
	if err != nil {
		return nil, err
	}

	var payload struct {
		Devices []devices.APIDevice `json:"devices"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: devices: %v", ErrUnexpectedResponse, err)
	}

	out := make([]devices.Device, 0, len(payload.Devices))
	for i, raw := range payload.Devices {
		d, err := devices.FromAPI(raw)
		if err != nil {
			return nil, fmt.Errorf("devices[%d]: %w", i, err)
		}
		out = append(out, d)
	}
	return out, nil
}

func (c *Client) GetGoals(ctx context.Context) (goals.Goals, error) {
	body, err := c.request(ctx, "v2/user", url.Values{"action": {"getgoals"}})
	if err != nil {
		return goals.Goals{}, err
	}

	var payload struct {
		Goals goals.APIGoals `json:"goals"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return goals.Goals{}, fmt.Errorf("%w: goals: %v", ErrUnexpectedResponse, err)
	}
	return goals.FromAPI(payload.Goals), nil
}

// GetMeasurementSince trae los grupos creados o modificados desde since.
// types == nil pide todos los tipos.
func (c *Client) GetMeasurementSince(ctx context.Context, since time.Time, types []measurements.MeasurementType) ([]measurements.MeasurementGroup, error) {
	return c.getMeasurements(ctx, types, url.Values{
		"lastupdate": {unixString(since)},
	})
}

// GetMeasurementInPeriod trae los grupos medidos entre start y end.
func (c *Client) GetMeasurementInPeriod(ctx context.Context, start, end time.Time, types []measurements.MeasurementType) ([]measurements.MeasurementGroup, error) {
	return c.getMeasurements(ctx, types, url.Values{
		"startdate": {unixString(start)},
		"enddate":   {unixString(end)},
	})
}

func (c *Client) getMeasurements(ctx context.Context, types []measurements.MeasurementType, form url.Values) ([]measurements.MeasurementGroup, error) {
	form.Set("action", "getmeas")
	if types != nil {
		codes := make([]string, 0, len(types))
		for _, t := range types {
			codes = append(codes, strconv.Itoa(t.Code()))
		}
		form.Set("meastypes", strings.Join(codes, ","))
	}

	body, err := c.request(ctx, "measure", form)
	if err != nil {
		return nil, err
	}

	var payload struct {
		MeasureGroups []measurements.APIMeasurementGroup `json:"measuregrps"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: measuregrps: %v", ErrUnexpectedResponse, err)
	}
	return measurements.GroupsFromAPI(payload.MeasureGroups)
}

func unixString(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
