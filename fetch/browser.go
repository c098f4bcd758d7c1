package fetch

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/launcher/flags"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"

	"github.com/bhaveshd9/carspec/config"
	"github.com/bhaveshd9/carspec/models"
)

// Browser is the Rod-backed rendering engine. It manages the headless
// browser lifecycle and a reusable page pool, and is safe for concurrent
// use. It implements Renderer.
type Browser struct {
	browser  *rod.Browser
	pagePool rod.Pool[rod.Page]
}

// NewBrowser launches a headless browser and initialises the page pool.
func NewBrowser(cfg config.BrowserConfig) (*Browser, error) {
	l := launcher.New().
		Headless(cfg.Headless).
		NoSandbox(cfg.NoSandbox)

	if cfg.BrowserBin != "" {
		l = l.Bin(cfg.BrowserBin)
	}

	l.Set(flags.Flag("disable-blink-features"), "AutomationControlled")
	l.Delete(flags.Flag("enable-automation"))
	l.Set(flags.Flag("disable-dev-shm-usage"))
	l.Set(flags.Flag("disable-extensions"))
	l.Set(flags.Flag("disable-default-apps"))
	l.Set(flags.Flag("no-first-run"))

	controlURL, err := l.Launch()
	if err != nil {
		return nil, models.NewScrapeError(models.ErrCodeInternal, "failed to launch browser", err)
	}
	slog.Info("browser launched", "controlURL", controlURL)

	browser := rod.New().ControlURL(controlURL)
	if err := browser.Connect(); err != nil {
		return nil, models.NewScrapeError(models.ErrCodeInternal, "failed to connect to browser", err)
	}

	pool := rod.NewPagePool(cfg.MaxPages)
	slog.Info("page pool created", "maxPages", cfg.MaxPages)

	return &Browser{browser: browser, pagePool: pool}, nil
}

// Render navigates to the URL, waits for the DOM to settle, and returns the
// rendered visible body text.
//
// The deferred about:blank uses the original page reference (without the
// request context), so cleanup succeeds even if the context has expired.
func (b *Browser) Render(ctx context.Context, url string) (string, error) {
	page, err := b.pagePool.Get(func() (*rod.Page, error) {
		return b.browser.Page(proto.TargetCreateTarget{})
	})
	if err != nil {
		return "", models.NewScrapeError(models.ErrCodeFetchFailed, "failed to acquire page from pool", err)
	}
	defer func() {
		if navErr := page.Navigate("about:blank"); navErr != nil {
			slog.Warn("cleanup: failed to navigate to about:blank", "error", navErr)
		}
		b.pagePool.Put(page)
	}()

	// Stealth must be injected before navigation to take effect.
	if _, evalErr := page.EvalOnNewDocument(stealth.JS); evalErr != nil {
		slog.Warn("stealth injection failed, proceeding without stealth", "error", evalErr)
	}

	p := page.Context(ctx)

	if err := p.Navigate(url); err != nil {
		return "", models.NewScrapeError(models.ErrCodeFetchFailed, "navigation to target URL failed", err)
	}

	if stableErr := p.WaitDOMStable(300*time.Millisecond, 0.1); stableErr != nil {
		slog.Debug("WaitDOMStable did not converge, proceeding with current DOM", "error", stableErr)
	}

	body, err := p.Element("body")
	if err != nil {
		return "", models.NewScrapeError(models.ErrCodeFetchFailed, "rendered page has no body", err)
	}
	text, err := body.Text()
	if err != nil {
		return "", models.NewScrapeError(models.ErrCodeFetchFailed, "failed to read rendered text", err)
	}
	return text, nil
}

// Close drains the page pool and kills the browser process.
// Call this on graceful shutdown to prevent zombie Chrome processes.
func (b *Browser) Close() {
	slog.Info("renderer shutting down: draining page pool")
	b.pagePool.Cleanup(func(p *rod.Page) {
		_ = p.Close()
	})
	b.browser.MustClose()
	slog.Info("renderer shutdown complete")
}
