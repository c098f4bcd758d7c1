package fetch

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net"
	"net/http"
	"time"

	"github.com/PuerkitoBio/goquery"
	tls "github.com/refraction-networking/utls"

	"github.com/bhaveshd9/carspec/config"
	"github.com/bhaveshd9/carspec/models"
)

const chromeUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36"

// chromeH1Spec is a Chrome-like TLS ClientHello with ALPN forced to http/1.1
// only. Computed once at init time and reused for every connection.
var chromeH1Spec tls.ClientHelloSpec

func init() {
	spec, err := tls.UTLSIdToSpec(tls.HelloChrome_Auto)
	if err != nil {
		return
	}
	// Replace h2 with http/1.1 only in the ALPN extension so the server
	// never negotiates HTTP/2 (which Go's http.Transport cannot handle
	// over a utls connection).
	for i, ext := range spec.Extensions {
		if alpn, ok := ext.(*tls.ALPNExtension); ok {
			alpn.AlpnProtocols = []string{"http/1.1"}
			spec.Extensions[i] = alpn
			break
		}
	}
	chromeH1Spec = spec
}

// Client fetches pages over plain HTTP with a Chrome TLS fingerprint,
// retrying transient failures with exponential backoff. An optional
// Renderer substitutes JavaScript-rendered text when configured.
// It is safe for concurrent use.
type Client struct {
	cfg      config.FetchConfig
	client   *http.Client
	renderer Renderer
}

// NewClient creates a Client. renderer may be nil, in which case fetched
// pages carry only statically parsed text.
func NewClient(cfg config.FetchConfig, renderer Renderer) *Client {
	transport := &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			dialer := &net.Dialer{Timeout: 10 * time.Second}
			conn, err := dialer.DialContext(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			host, _, _ := net.SplitHostPort(addr)
			tlsConn := tls.UClient(conn, &tls.Config{ServerName: host}, tls.HelloCustom)
			if err := tlsConn.ApplyPreset(&chromeH1Spec); err != nil {
				conn.Close()
				return nil, fmt.Errorf("fetch: apply tls spec: %w", err)
			}
			if err := tlsConn.HandshakeContext(ctx); err != nil {
				conn.Close()
				return nil, err
			}
			return tlsConn, nil
		},
		ForceAttemptHTTP2: false,
	}

	maxRedirects := cfg.MaxRedirects
	return &Client{
		cfg: cfg,
		client: &http.Client{
			Transport: transport,
			Timeout:   cfg.Timeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return fmt.Errorf("stopped after %d redirects", maxRedirects)
				}
				return nil
			},
		},
		renderer: renderer,
	}
}

// RendererAvailable reports whether the JavaScript rendering capability
// is configured.
func (c *Client) RendererAvailable() bool {
	return c.renderer != nil
}

// Fetch retrieves the URL and returns the page text plus parsed document.
// All failures (transport errors, non-2xx after retries, parse failures)
// surface as a single FETCH_FAILED condition.
func (c *Client) Fetch(ctx context.Context, url string) (*Page, error) {
	if err := c.jitter(ctx); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeFetchFailed, "fetch cancelled", err)
	}

	body, finalURL, err := c.get(ctx, url)
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeFetchFailed, "failed to fetch page", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeFetchFailed, "failed to parse page HTML", err)
	}

	title, text := visibleText(body)
	page := &Page{
		Text:     text,
		Title:    title,
		Doc:      doc,
		FinalURL: finalURL,
	}

	// Substitute rendered text when the capability is present. Rendering
	// failures degrade to the static text, never to a fetch failure.
	if c.renderer != nil {
		rendered, renderErr := c.renderer.Render(ctx, url)
		if renderErr != nil {
			slog.Warn("rendering failed, using static text", "url", url, "error", renderErr)
		} else if rendered != "" {
			page.Text = rendered
			page.Rendered = true
		}
	}

	return page, nil
}

// get performs the GET with retries. Transient statuses (429, 5xx gateway
// family) and transport errors are retried up to MaxRetries attempts with
// exponential backoff.
func (c *Client) get(ctx context.Context, url string) (body []byte, finalURL string, err error) {
	attempts := c.cfg.MaxRetries
	if attempts < 1 {
		attempts = 1
	}
	backoff := c.cfg.RetryBackoff

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return nil, "", ctx.Err()
			case <-time.After(backoff):
			}
			backoff *= 2
		}

		body, finalURL, lastErr = c.doOnce(ctx, url)
		if lastErr == nil {
			return body, finalURL, nil
		}
		if !retryable(lastErr) {
			return nil, "", lastErr
		}
		slog.Debug("transient fetch failure, retrying",
			"url", url, "attempt", attempt, "error", lastErr)
	}
	return nil, "", fmt.Errorf("all %d attempts failed: %w", attempts, lastErr)
}

func (c *Client) doOnce(ctx context.Context, url string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("build request: %w", err)
	}
	applyBrowserHeaders(req)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", &transientError{fmt.Errorf("request failed: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		err := fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
		switch resp.StatusCode {
		case http.StatusTooManyRequests,
			http.StatusInternalServerError,
			http.StatusBadGateway,
			http.StatusServiceUnavailable,
			http.StatusGatewayTimeout:
			return nil, "", &transientError{err}
		}
		return nil, "", err
	}

	const maxBody = 10 << 20 // 10 MB cap
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBody))
	if err != nil {
		return nil, "", &transientError{fmt.Errorf("read body: %w", err)}
	}

	return body, resp.Request.URL.String(), nil
}

// applyBrowserHeaders sets the realistic Chrome header set that reduces
// blocking by manufacturer sites.
func applyBrowserHeaders(req *http.Request) {
	req.Header.Set("User-Agent", chromeUA)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/avif,image/webp,image/apng,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "max-age=0")
	req.Header.Set("Upgrade-Insecure-Requests", "1")
	req.Header.Set("Sec-Fetch-Dest", "document")
	req.Header.Set("Sec-Fetch-Mode", "navigate")
	req.Header.Set("Sec-Fetch-Site", "none")
	req.Header.Set("Sec-Fetch-User", "?1")
	req.Header.Set("sec-ch-ua", `"Not_A Brand";v="8", "Chromium";v="131", "Google Chrome";v="131"`)
	req.Header.Set("sec-ch-ua-mobile", "?0")
	req.Header.Set("sec-ch-ua-platform", `"Windows"`)
}

// jitter sleeps a random duration inside the configured window before the
// request goes out. Both bounds zero means no delay.
func (c *Client) jitter(ctx context.Context) error {
	lo, hi := c.cfg.JitterMin, c.cfg.JitterMax
	if hi <= 0 || hi < lo {
		return nil
	}
	d := lo
	if hi > lo {
		d += time.Duration(rand.Int63n(int64(hi - lo)))
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// transientError marks failures worth retrying.
type transientError struct{ err error }

func (e *transientError) Error() string { return e.err.Error() }
func (e *transientError) Unwrap() error { return e.err }

func retryable(err error) bool {
	var te *transientError
	return errors.As(err, &te)
}
