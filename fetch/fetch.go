// Package fetch retrieves manufacturer pages and turns them into the raw
// text plus parsed document tree the extraction pipeline consumes. It owns
// everything network-shaped: browser-like headers, retry with backoff,
// redirect caps, and the optional JavaScript rendering engine. The
// extraction core never touches the network.
package fetch

import (
	"context"

	"github.com/PuerkitoBio/goquery"
)

// Fetcher retrieves one page. Implementations must be safe for concurrent use.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*Page, error)
}

// Page is a fetched page ready for extraction.
type Page struct {
	// Text is the visible page text. When a rendering engine is available
	// it is the JavaScript-rendered body text, otherwise the statically
	// parsed one. Extraction behaves identically either way, differing
	// only in the richness of this input.
	Text string

	// Title is the <title> content, trimmed.
	Title string

	// Doc is the parsed document tree from the static HTML.
	Doc *goquery.Document

	// FinalURL is the URL after redirects.
	FinalURL string

	// Rendered reports whether Text came from the rendering engine.
	Rendered bool
}

// Renderer is the optional JavaScript rendering capability. A nil Renderer
// on the client means the capability is absent.
type Renderer interface {
	// Render navigates to the URL in a real browser and returns the
	// rendered visible body text.
	Render(ctx context.Context, url string) (string, error)
}
