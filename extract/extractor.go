package extract

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/bhaveshd9/carspec/fetch"
	"github.com/bhaveshd9/carspec/models"
)

// Extractor runs the full attribute-extraction pipeline over one fetched
// page. The pattern tables it reads are immutable after package init, so
// a single Extractor is safe for concurrent scrapes.
type Extractor struct {
	fetcher fetch.Fetcher
}

// New creates an Extractor backed by the given fetch layer.
func New(fetcher fetch.Fetcher) *Extractor {
	return &Extractor{fetcher: fetcher}
}

// Stats reports how a scrape went for the response surface: which fetch
// path produced the text and how long each phase took.
type Stats struct {
	FetchMs      int64
	ExtractionMs int64
	Rendered     bool
}

// Scrape fetches the URL and assembles a VehicleRecord from it.
//
// Pipeline order: blocked-page check → brand detect → model extract →
// trim/price extract (with per-trim features) → engine/dimension/fuel/
// transmission/body-type extract → image extract → assembly. The
// independent spec extractors only read shared immutable inputs, so they
// run concurrently. Retry policy belongs to the fetch layer; Scrape never
// retries.
func (e *Extractor) Scrape(ctx context.Context, url string) (*models.VehicleRecord, Stats, error) {
	slog.Info("starting vehicle scrape", "url", url)
	var stats Stats

	fetchStart := time.Now()
	page, err := e.fetcher.Fetch(ctx, url)
	stats.FetchMs = time.Since(fetchStart).Milliseconds()
	if err != nil {
		return nil, stats, err
	}
	stats.Rendered = page.Rendered

	// Block pages surface the marker in the body text, the title, or both.
	marker := strings.ToLower(errorPageMarker)
	if strings.Contains(strings.ToLower(page.Text), marker) ||
		strings.Contains(strings.ToLower(page.Title), marker) {
		return nil, stats, models.NewScrapeError(models.ErrCodeBlockedPage,
			"website blocked access or returned an error page", nil)
	}

	extractStart := time.Now()

	brand := DetectBrand(url)
	model := ModelName(page.Doc, url)
	slog.Info("detected vehicle identity", "brand", brand, "model", model)

	variants := Variants(brand, page.Text)

	imageBase := page.FinalURL
	if imageBase == "" {
		imageBase = url
	}

	record := &models.VehicleRecord{
		Brand:    brand,
		Model:    model,
		URL:      url,
		Variants: variants,
	}

	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		record.Engine = EngineSpecs(page.Text)
		record.Dimensions = DimensionSpecs(page.Text)
		record.FuelType = FuelType(page.Text)
		record.Transmission = Transmission(page.Text)
		record.BodyType = BodyType(page.Text, url)
	}()
	go func() {
		defer wg.Done()
		record.Images = Images(page.Doc, imageBase)
	}()
	wg.Wait()
	stats.ExtractionMs = time.Since(extractStart).Milliseconds()

	slog.Info("vehicle scrape complete",
		"brand", brand,
		"model", model,
		"variants", len(record.Variants),
		"images", len(record.Images),
		"rendered", page.Rendered,
	)
	return record, stats, nil
}
