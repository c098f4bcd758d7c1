package extract

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
)

// errorPageMarker is the literal string manufacturer sites serve on
// block/error pages instead of content. Matched case-insensitively.
const errorPageMarker = "Oops! Something went wrong"

// modelSelectors are probed in priority order; the first element whose
// trimmed text survives cleaning wins. Compiled once.
var modelSelectors = []cascadia.Selector{
	cascadia.MustCompile("h1"),
	cascadia.MustCompile(".model-name"),
	cascadia.MustCompile(".car-title"),
	cascadia.MustCompile(".vehicle-name"),
	cascadia.MustCompile("[data-model]"),
	cascadia.MustCompile(".product-title"),
	cascadia.MustCompile(".hero-title"),
	cascadia.MustCompile(".page-title"),
	cascadia.MustCompile("title"),
}

// urlModelPatterns pull a model candidate out of the URL path when the
// document gives nothing: last segment, second-to-last segment, then the
// hyphen-joined last two segments.
var urlModelPatterns = []*regexp.Regexp{
	regexp.MustCompile(`/([^/]+)/?$`),
	regexp.MustCompile(`/([^/]+)/[^/]+/?$`),
	regexp.MustCompile(`/([^/]+)-([^/]+)/?$`),
}

// urlModelKeywords is the last-resort map of literal model names tested
// against the lower-cased URL, in listed order.
var urlModelKeywords = []struct {
	keywords []string
	model    string
}{
	{[]string{"silverado"}, "Silverado"},
	{[]string{"camaro"}, "Camaro"},
	{[]string{"corvette"}, "Corvette"},
	{[]string{"camry"}, "Camry"},
	{[]string{"tacoma"}, "Tacoma"},
	{[]string{"f150", "f-150"}, "F-150"},
	{[]string{"kicks"}, "Kicks"},
}

var (
	nonModelChars  = regexp.MustCompile(`[^\w\s\-]`)
	nonWordOrSpace = regexp.MustCompile(`[^\w\s]`)
)

// ModelName derives a human-readable model name from the document or the
// URL. It never returns an empty string: absence of evidence degrades to
// UnknownModel. Deterministic for identical inputs.
func ModelName(doc *goquery.Document, url string) string {
	// 1. Document probe, first acceptable selector wins.
	if doc != nil {
		for _, sel := range modelSelectors {
			text := strings.TrimSpace(doc.FindMatcher(sel).First().Text())
			if text == "" || text == errorPageMarker {
				continue
			}
			cleaned := strings.TrimSpace(nonModelChars.ReplaceAllString(text, ""))
			if len(cleaned) > 2 {
				return cleaned
			}
		}
	}

	// 2. URL path segments.
	lowerURL := strings.ToLower(url)
	for _, pattern := range urlModelPatterns {
		m := pattern.FindStringSubmatch(lowerURL)
		if m == nil {
			continue
		}
		candidate := m[1]
		if len(m) > 2 {
			candidate = m[1] + " " + m[2]
		}
		candidate = strings.TrimSpace(nonWordOrSpace.ReplaceAllString(candidate, ""))
		if len(candidate) > 2 {
			return titleCase(candidate)
		}
	}

	// 3. Literal model keywords in the URL.
	for _, entry := range urlModelKeywords {
		for _, kw := range entry.keywords {
			if strings.Contains(lowerURL, kw) {
				return entry.model
			}
		}
	}

	return UnknownModel
}

// titleCase upper-cases the first letter of every alphabetic run, so
// "plug-in hybrid" becomes "Plug-In Hybrid" and "trail boss" becomes
// "Trail Boss".
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
		} else {
			b.WriteRune(r)
			prevLetter = false
		}
	}
	return b.String()
}
