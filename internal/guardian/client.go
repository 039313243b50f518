package guardian

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/matheuskafuri/headlines/internal/logging"
	"github.com/sirupsen/logrus"
)

const (
	ConnectTimeout = 15 * time.Second
	ReadTimeout    = 10 * time.Second
)

// Client performs the single GET of a pipeline run. Failures are logged and
// reported as an empty body, never as an error.
type Client struct {
	http *http.Client
	log  logrus.FieldLogger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the default transport, mostly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func NewClient(log logrus.FieldLogger, opts ...ClientOption) *Client {
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := &Client{
		http: newHTTPClient(ConnectTimeout, ReadTimeout),
		log:  log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func newHTTPClient(connect, read time.Duration) *http.Client {
	dialer := &net.Dialer{Timeout: connect}
	transport := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			return &readTimeoutConn{Conn: conn, timeout: read}, nil
		},
		TLSHandshakeTimeout:   connect,
		ResponseHeaderTimeout: read,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          1,
		IdleConnTimeout:       read,
	}
	return &http.Client{Transport: transport}
}

// readTimeoutConn arms a fresh deadline before every Read, so a stalled
// server trips the timeout while a slow but steady one does not. The same
// deadline closes idle pooled conns, hence IdleConnTimeout matches it.
type readTimeoutConn struct {
	net.Conn
	timeout time.Duration
}

func (c *readTimeoutConn) Read(p []byte) (int, error) {
	if err := c.Conn.SetReadDeadline(time.Now().Add(c.timeout)); err != nil {
		return 0, err
	}
	return c.Conn.Read(p)
}

// Fetch returns the response body of rawURL when the server answers 200,
// and "" for everything else.
func (c *Client) Fetch(ctx context.Context, rawURL string) string {
	log := logging.From(ctx, c.log).WithField("url", redactKey(rawURL))

	u, err := url.Parse(rawURL)
	if err != nil {
		log.WithError(err).Warn("invalid request url")
		return ""
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		log.WithField("scheme", u.Scheme).Warn("invalid request url")
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		log.WithError(err).Warn("building request")
		return ""
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		log.WithError(err).Warn("request failed")
		return ""
	}
	// A 200 body is read to EOF, which returns the conn to the pool. Other
	// bodies are closed unread.
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.WithField("status", resp.StatusCode).Warn("unexpected response status")
		return ""
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		log.WithError(err).Warn("reading response body")
		return ""
	}

	log.WithField("bytes", len(body)).Debug("response received")
	return string(body)
}

// CloseIdle releases pooled connections.
func (c *Client) CloseIdle() {
	c.http.CloseIdleConnections()
}

// redactKey hides the api-key value so it never reaches the log file.
func redactKey(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	q := u.Query()
	if q.Get(paramAPIKey) == "" {
		return rawURL
	}
	q.Set(paramAPIKey, "REDACTED")
	u.RawQuery = q.Encode()
	return u.String()
}
