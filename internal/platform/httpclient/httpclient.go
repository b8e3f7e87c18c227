package httpclient

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBodyBytes acota el body leído; un getmeas completo puede pesar decenas de MB.
	DefaultMaxBodyBytes int64 = 64 << 20
)

// ErrResponseTooLarge indica que el body superó MaxBodyBytes.
var ErrResponseTooLarge = errors.New("httpclient: response too large")

// Client envuelve *http.Client con helpers comunes para adapters.
// Si el *http.Client lo creó este paquete, Close libera sus conexiones;
// si lo pasó quien llama, Close no lo toca.
type Client struct {
	HTTP    *http.Client
	BaseURL string // opcional; si se define, Do puede recibir paths relativos

	// MaxBodyBytes limita el body de la respuesta; <= 0 usa DefaultMaxBodyBytes.
	MaxBodyBytes int64

	owned     bool
	closeOnce sync.Once
}

// New crea un Client propio con timeout razonable.
func New(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: http.DefaultTransport.(*http.Transport).Clone(),
		},
		owned: true,
	}
}

// NewWithBaseURL crea un Client propio con BaseURL + timeout.
func NewWithBaseURL(baseURL string, timeout time.Duration) (*Client, error) {
	c := New(timeout)
	if err := c.SetBaseURL(baseURL); err != nil {
		return nil, err
	}
	return c, nil
}

// NewWithTransport permite inyectar un Transport (p.ej. para tests).
func NewWithTransport(timeout time.Duration, tr http.RoundTripper) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if tr == nil {
		tr = http.DefaultTransport.(*http.Transport).Clone()
	}
	return &Client{
		HTTP: &http.Client{
			Timeout:   timeout,
			Transport: tr,
		},
		owned: true,
	}
}

// Wrap usa un *http.Client ajeno; Close nunca lo cierra.
func Wrap(hc *http.Client) *Client {
	if hc == nil {
		return New(DefaultTimeout)
	}
	return &Client{HTTP: hc}
}

func (c *Client) SetBaseURL(baseURL string) error {
	if strings.TrimSpace(baseURL) == "" {
		c.BaseURL = ""
		return nil
	}
	if _, err := url.ParseRequestURI(baseURL); err != nil {
		return fmt.Errorf("invalid base url: %w", err)
	}
	c.BaseURL = strings.TrimRight(baseURL, "/")
	return nil
}

// Owned indica si Close libera el *http.Client.
func (c *Client) Owned() bool { return c != nil && c.owned }

// Close cierra las conexiones ociosas si el *http.Client es propio. Idempotente.
func (c *Client) Close() {
	if c == nil || !c.owned || c.HTTP == nil {
		return
	}
	c.closeOnce.Do(func() {
		c.HTTP.CloseIdleConnections()
	})
}

// HTTPError representa una respuesta no-2xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http error: status=%d", e.StatusCode)
	}
	return fmt.Sprintf("http error: status=%d body=%s", e.StatusCode, e.Body)
}

// Response es la respuesta ya leída (body limitado a MaxBodyBytes).
type Response struct {
	StatusCode  int
	ContentType string
	Body        []byte
}

// PostForm hace un POST application/x-www-form-urlencoded.
// - pathOrURL: puede ser URL absoluta o path relativo si BaseURL está seteado
// - headers: headers extra (opcional)
// Retorna la respuesta y *HTTPError si status no es 2xx.
func (c *Client) PostForm(
	ctx context.Context,
	pathOrURL string,
	headers map[string]string,
	form url.Values,
) (*Response, error) {
	if c == nil || c.HTTP == nil {
		return nil, errors.New("httpclient: nil client")
	}

	fullURL, err := c.resolveURL(pathOrURL)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, fullURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("httpclient: new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	// Extra headers
	for k, v := range headers {
		if strings.TrimSpace(k) == "" {
			continue
		}
		req.Header.Set(k, v)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: do request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := readAtMost(resp.Body, c.MaxBodyBytes)
	if err != nil {
		if errors.Is(err, ErrResponseTooLarge) {
			return nil, err
		}
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	out := &Response{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        raw,
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return out, &HTTPError{
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(raw)),
		}
	}
	return out, nil
}

func (c *Client) resolveURL(pathOrURL string) (string, error) {
	pathOrURL = strings.TrimSpace(pathOrURL)
	if pathOrURL == "" {
		return "", errors.New("httpclient: empty url")
	}

	// Si ya es URL absoluta, úsala tal cual.
	if strings.HasPrefix(pathOrURL, "http://") || strings.HasPrefix(pathOrURL, "https://") {
		return pathOrURL, nil
	}

	// Si no es absoluta, requiere BaseURL.
	if strings.TrimSpace(c.BaseURL) == "" {
		return "", errors.New("httpclient: relative path requires BaseURL")
	}

	if !strings.HasPrefix(pathOrURL, "/") {
		pathOrURL = "/" + pathOrURL
	}
	return c.BaseURL + pathOrURL, nil
}

// readAtMost lee hasta max bytes; si hay más, devuelve ErrResponseTooLarge
// en vez de un body cortado.
func readAtMost(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		max = DefaultMaxBodyBytes
	}
	raw, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(raw)) > max {
		return nil, fmt.Errorf("%w: more than %d bytes", ErrResponseTooLarge, max)
	}
	return raw, nil
}
