package extract

import (
	"regexp"
	"strings"

	"github.com/bhaveshd9/carspec/models"
)

// firstMatch runs an ordered list of candidate-producing patterns against
// the text and returns the formatted submatches of the first one that
// matches. Remaining patterns are not attempted. Returns "" when nothing
// matches. This is the uniform shape of every spec extractor cascade.
func firstMatch(text string, patterns []*regexp.Regexp, format func(groups []string) string) string {
	for _, pattern := range patterns {
		if m := pattern.FindStringSubmatch(text); m != nil {
			return format(m[1:])
		}
	}
	return ""
}

// EngineSpecs extracts engine attributes from the page text. Type and
// Capacity are populated from the same displacement match.
func EngineSpecs(text string) models.EngineSpec {
	spec := models.EngineSpec{}

	capacity := firstMatch(text, engineCapacityPatterns, func(g []string) string {
		return g[0]
	})
	spec.Type = capacity
	spec.Capacity = capacity

	spec.Horsepower = firstMatch(text, horsepowerPatterns, func(g []string) string {
		return g[0] + " HP"
	})
	spec.Torque = firstMatch(text, torquePatterns, func(g []string) string {
		return g[0] + " lb-ft"
	})
	spec.Mileage = firstMatch(text, mileagePatterns, func(g []string) string {
		if len(g) > 1 && g[1] != "" {
			return g[0] + " city / " + g[1] + " highway MPG"
		}
		return g[0] + " MPG"
	})

	return spec
}

// DimensionSpecs extracts exterior measurements. Each field has a single
// pattern requiring the number, an inches unit, and the field keyword to
// co-occur.
func DimensionSpecs(text string) models.Dimensions {
	inches := func(g []string) string { return g[0] + " inches" }
	single := func(p *regexp.Regexp) string {
		return firstMatch(text, []*regexp.Regexp{p}, inches)
	}
	return models.Dimensions{
		Length:          single(lengthPattern),
		Width:           single(widthPattern),
		Height:          single(heightPattern),
		Wheelbase:       single(wheelbasePattern),
		GroundClearance: single(clearancePattern),
	}
}

// FuelType returns the first fuel keyword found in the page text,
// title-cased, or "" when none occurs.
func FuelType(text string) string {
	return keywordScan(text, fuelKeywords)
}

// Transmission returns the first transmission keyword found in the page
// text, title-cased, or "" when none occurs.
func Transmission(text string) string {
	return keywordScan(text, transmissionKeywords)
}

// BodyType returns the first body-style keyword found in the page text,
// title-cased. When the text gives nothing it falls back to URL substring
// checks, and finally to "".
func BodyType(text, url string) string {
	if body := keywordScan(text, bodyKeywords); body != "" {
		return body
	}

	lowerURL := strings.ToLower(url)
	switch {
	case strings.Contains(lowerURL, "truck") || strings.Contains(lowerURL, "pickup"):
		return "Truck"
	case strings.Contains(lowerURL, "suv"):
		return "SUV"
	case strings.Contains(lowerURL, "sedan"):
		return "Sedan"
	}
	return ""
}

// keywordScan tests a fixed vocabulary in listed order against the
// lower-cased text and returns the matched keyword title-cased.
func keywordScan(text string, keywords []string) string {
	lowerText := strings.ToLower(text)
	for _, kw := range keywords {
		if strings.Contains(lowerText, kw) {
			return titleCase(kw)
		}
	}
	return ""
}
