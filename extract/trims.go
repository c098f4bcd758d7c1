package extract

import (
	"strings"

	"github.com/bhaveshd9/carspec/models"
)

// Trims collects candidate trim names for the brand from the page text.
// Every pattern in the brand's list runs over the full text; matches are
// deduplicated preserving first-seen order so downstream positional
// pairing is deterministic. When no pattern matches, the manual per-brand
// checklist is the last resort.
func Trims(brand, text string) []string {
	var found []string
	for _, pattern := range trimPatternsForBrand(brand) {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if trimmed := strings.TrimSpace(m[1]); trimmed != "" {
				found = append(found, trimmed)
			}
		}
	}
	found = dedupe(found)

	if len(found) == 0 {
		found = manualTrims(brand, text)
	}
	return found
}

// manualTrims is a hand-maintained keyword checklist used when every
// pattern came up empty. Currently populated for Chevrolet only; other
// brands return nothing.
func manualTrims(brand, text string) []string {
	if !strings.EqualFold(brand, "chevrolet") {
		return nil
	}
	lowerText := strings.ToLower(text)

	var trims []string
	for _, t := range []string{"WT", "LT", "Trail Boss", "Z71", "ZR2"} {
		if strings.Contains(lowerText, strings.ToLower(t)) {
			trims = append(trims, t)
		}
	}
	return trims
}

// Prices collects all $-normalized price amounts from the page text, in
// pattern order, deduplicated preserving first-seen order.
func Prices(text string) []string {
	var found []string
	for _, pattern := range pricePatterns {
		for _, m := range pattern.FindAllStringSubmatch(text, -1) {
			if m[1] != "" {
				found = append(found, "$"+m[1])
			}
		}
	}
	return dedupe(found)
}

// Variants extracts trims and prices from the page text and pairs them.
//
// Pairing is strictly positional: trim i gets price i, with no semantic
// association between a specific trim and a specific price. When there
// are fewer prices than trims, trailing variants get an empty price.
// Each variant also carries up to five feature sentences found near its
// trim name.
func Variants(brand, text string) []models.Variant {
	trims := Trims(brand, text)
	prices := Prices(text)

	variants := make([]models.Variant, 0, len(trims))
	for i, trim := range trims {
		price := ""
		if i < len(prices) {
			price = prices[i]
		}
		variants = append(variants, models.Variant{
			Name:     trim,
			Price:    price,
			Features: FeatureContext(text, trim),
		})
	}
	return variants
}

// dedupe removes duplicates preserving first-seen order.
func dedupe(items []string) []string {
	seen := make(map[string]struct{}, len(items))
	out := items[:0:0]
	for _, item := range items {
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		out = append(out, item)
	}
	return out
}
