package extract

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"

	"github.com/bhaveshd9/carspec/fetch"
	"github.com/bhaveshd9/carspec/models"
)

// stubFetcher serves a fixed page, standing in for the network layer.
type stubFetcher struct {
	page *fetch.Page
	err  error
}

func (s *stubFetcher) Fetch(_ context.Context, _ string) (*fetch.Page, error) {
	return s.page, s.err
}

func stubPage(t *testing.T, html, text string) *fetch.Page {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse stub HTML: %v", err)
	}
	return &fetch.Page{Text: text, Doc: doc}
}

const silveradoText = `The 2024 Silverado 1500 pickup truck. ` +
	`WT starting at $36,800. LT from $44,400. Trail Boss $53,100 as shown. ` +
	`The 5.3L V8 engine delivers 355 horsepower and 383 lb-ft of torque with an automatic transmission. ` +
	`Runs on gasoline with 23 mpg combined.`

const silveradoHTML = `<html><body>
	<h1>Silverado 1500</h1>
	<div class="gallery">
		<img src="https://media.chevrolet.com/silverado-front.jpg">
		<img src="/media/silverado-rear.jpg">
	</div>
</body></html>`

func TestScrape_AssemblesFullRecord(t *testing.T) {
	ex := New(&stubFetcher{page: stubPage(t, silveradoHTML, silveradoText)})

	record, _, err := ex.Scrape(context.Background(), "https://www.chevrolet.com/trucks/silverado")
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}

	if record.Brand != "Chevrolet" {
		t.Errorf("Brand = %q, want Chevrolet", record.Brand)
	}
	if record.Model != "Silverado 1500" {
		t.Errorf("Model = %q, want Silverado 1500", record.Model)
	}
	if record.URL != "https://www.chevrolet.com/trucks/silverado" {
		t.Errorf("URL = %q", record.URL)
	}
	if record.Engine.Horsepower != "355 HP" {
		t.Errorf("Horsepower = %q, want 355 HP", record.Engine.Horsepower)
	}
	if record.Engine.Torque != "383 lb-ft" {
		t.Errorf("Torque = %q, want 383 lb-ft", record.Engine.Torque)
	}
	if record.FuelType != "Gasoline" {
		t.Errorf("FuelType = %q, want Gasoline", record.FuelType)
	}
	if record.Transmission != "Automatic" {
		t.Errorf("Transmission = %q, want Automatic", record.Transmission)
	}
	if record.BodyType != "Truck" {
		t.Errorf("BodyType = %q, want Truck", record.BodyType)
	}
	if len(record.Variants) == 0 {
		t.Error("no variants extracted")
	}
	if len(record.Images) == 0 {
		t.Error("no images extracted")
	}
}

func TestScrape_BlockedPage(t *testing.T) {
	page := stubPage(t, "<html><body></body></html>",
		"OOPS! SOMETHING WENT WRONG while loading this page")
	ex := New(&stubFetcher{page: page})

	_, _, err := ex.Scrape(context.Background(), "https://www.chevrolet.com/trucks/silverado")
	if err == nil {
		t.Fatal("Scrape on blocked page succeeded, want BLOCKED_PAGE error")
	}

	var scrapeErr *models.ScrapeError
	if !errors.As(err, &scrapeErr) || scrapeErr.Code != models.ErrCodeBlockedPage {
		t.Errorf("error = %v, want code %s", err, models.ErrCodeBlockedPage)
	}
}

func TestScrape_FetchFailurePropagates(t *testing.T) {
	fetchErr := models.NewScrapeError(models.ErrCodeFetchFailed, "failed to fetch page", nil)
	ex := New(&stubFetcher{err: fetchErr})

	_, _, err := ex.Scrape(context.Background(), "https://www.ford.com/f150")
	var scrapeErr *models.ScrapeError
	if !errors.As(err, &scrapeErr) || scrapeErr.Code != models.ErrCodeFetchFailed {
		t.Errorf("error = %v, want code %s unchanged", err, models.ErrCodeFetchFailed)
	}
}

func TestScrape_AllFieldsPresent(t *testing.T) {
	// A page with no extractable evidence still yields a record whose
	// slices are empty, never nil, and whose brand/model carry the
	// sentinels.
	page := stubPage(t, "<html><body><p>hello</p></body></html>", "hello")
	ex := New(&stubFetcher{page: page})

	record, _, err := ex.Scrape(context.Background(), "https://example.com/zz")
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}

	if record.Brand != UnknownBrand {
		t.Errorf("Brand = %q, want %q", record.Brand, UnknownBrand)
	}
	if record.Model == "" {
		t.Error("Model is empty, want sentinel")
	}
	if record.Variants == nil {
		t.Error("Variants is nil, want empty slice")
	}
	if record.Images == nil {
		t.Error("Images is nil, want empty slice")
	}
}

func TestScrape_Idempotent(t *testing.T) {
	ex := New(&stubFetcher{page: stubPage(t, silveradoHTML, silveradoText)})

	first, _, err := ex.Scrape(context.Background(), "https://www.chevrolet.com/trucks/silverado")
	if err != nil {
		t.Fatalf("first Scrape failed: %v", err)
	}
	second, _, err := ex.Scrape(context.Background(), "https://www.chevrolet.com/trucks/silverado")
	if err != nil {
		t.Fatalf("second Scrape failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Errorf("Scrape not idempotent:\nfirst:  %+v\nsecond: %+v", first, second)
	}
}

func TestScrape_ImageLimitAndUniqueness(t *testing.T) {
	var b strings.Builder
	b.WriteString(`<html><body><h1>Model X</h1><div class="photos">`)
	for i := 0; i < 30; i++ {
		b.WriteString(`<img src="https://cdn.example.com/img`)
		b.WriteByte(byte('a' + i%26))
		b.WriteString(`.jpg">`)
	}
	b.WriteString(`</div></body></html>`)

	ex := New(&stubFetcher{page: stubPage(t, b.String(), "some text")})
	record, _, err := ex.Scrape(context.Background(), "https://www.tesla.com/models")
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	if len(record.Images) > 10 {
		t.Errorf("Images length = %d, want <= 10", len(record.Images))
	}
	seen := map[string]bool{}
	for _, u := range record.Images {
		if seen[u] {
			t.Errorf("duplicate image URL %q", u)
		}
		seen[u] = true
	}
}

func TestScrape_StatsReportFetchPath(t *testing.T) {
	page := stubPage(t, silveradoHTML, silveradoText)
	page.Rendered = true
	ex := New(&stubFetcher{page: page})

	_, stats, err := ex.Scrape(context.Background(), "https://www.chevrolet.com/trucks/silverado")
	if err != nil {
		t.Fatalf("Scrape failed: %v", err)
	}
	if !stats.Rendered {
		t.Error("stats.Rendered = false for a rendered page")
	}
	if stats.FetchMs < 0 || stats.ExtractionMs < 0 {
		t.Errorf("negative phase timing: fetch=%d extraction=%d", stats.FetchMs, stats.ExtractionMs)
	}
}

func TestScrape_BlockedPageTitle(t *testing.T) {
	// The marker can sit in the page title while the body carries
	// unrelated interstitial text.
	page := stubPage(t, `<html><head><title>Oops! Something went wrong</title></head>
		<body><p>please try again later</p></body></html>`,
		"please try again later")
	page.Title = "Oops! Something went wrong"
	ex := New(&stubFetcher{page: page})

	_, _, err := ex.Scrape(context.Background(), "https://www.chevrolet.com/trucks/silverado")
	var scrapeErr *models.ScrapeError
	if !errors.As(err, &scrapeErr) || scrapeErr.Code != models.ErrCodeBlockedPage {
		t.Errorf("error = %v, want code %s", err, models.ErrCodeBlockedPage)
	}
}
