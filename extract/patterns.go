package extract

import (
	"regexp"
	"strings"
)

// The pattern library. Everything here is compiled once at init and
// read-only afterwards, so concurrent scrapes can share it freely.

// brandTrimPatterns maps a lower-cased brand name to the ordered list of
// regular expressions describing that brand's trim-naming conventions.
// Brands absent from the map fall back to genericTrimPatterns. Coverage
// is intentionally partial: only these brands have curated lists, all
// others rely on the generic cross-brand trims.
var brandTrimPatterns = map[string][]*regexp.Regexp{
	"chevrolet": {
		regexp.MustCompile(`(?i)\b(WT|LT|Trail Boss|Z71|ZR2|Premier|High Country|LS|LTZ|SS|RS)\b`),
	},
	"ford": {
		regexp.MustCompile(`(?i)\b(XL|XLT|Lariat|King Ranch|Platinum|Limited|ST|RS|GT|SVT)\b`),
	},
	"toyota": {
		regexp.MustCompile(`(?i)\b(SR5|TRD Sport|TRD Off-Road|TRD Pro|Limited|Platinum|XSE|XLE|SE|LE|SR)\b`),
	},
	"honda": {
		regexp.MustCompile(`(?i)\b(LX|Sport|EX-L|EX|Touring|Elite|Type R|Si)\b`),
	},
	"nissan": {
		regexp.MustCompile(`(?i)\b(SV|SL|SR|Platinum|Midnight|Rock Creek|S)\b`),
	},
	"bmw": {
		regexp.MustCompile(`(?i)\b(320i|330i|340i|M340i|M3|X3|X5|X7|iX|i4|i7)\b`),
	},
	"mercedes-benz": {
		regexp.MustCompile(`(?i)\b(A-Class|C-Class|E-Class|S-Class|GLA|GLC|GLE|GLS|AMG)\b`),
	},
	"audi": {
		regexp.MustCompile(`(?i)\b(A3|A4|A6|A8|Q3|Q5|Q7|Q8|RS|e-tron|S)\b`),
	},
}

// genericTrimPatterns covers trim names shared across many brands.
var genericTrimPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)\b(SE|LE|XLE|XSE|Limited|Platinum|Premium|Sport|GT|RS|ST)\b`),
}

// pricePatterns recognise price tokens in page text, in listed order.
// Each pattern captures the digits-with-commas amount.
var pricePatterns = []*regexp.Regexp{
	regexp.MustCompile(`\$(\d{1,3}(?:,\d{3})*)`),
	regexp.MustCompile(`(?i)starting at \$(\d{1,3}(?:,\d{3})*)`),
	regexp.MustCompile(`(?i)msrp \$(\d{1,3}(?:,\d{3})*)`),
	regexp.MustCompile(`(?i)price \$(\d{1,3}(?:,\d{3})*)`),
	regexp.MustCompile(`(?i)from \$(\d{1,3}(?:,\d{3})*)`),
	regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*)\s*as shown`),
	regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*)\s*starting`),
}

// Engine spec cascades. First match wins within each list.
var (
	engineCapacityPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+\.?\d*L(?:\s+\w+)?(?:\s+engine)?)`),
		regexp.MustCompile(`(?i)(\d+\.?\d*L(?:\s+\w+)?(?:\s+TurboMax)?)`),
		regexp.MustCompile(`(?i)(\d+\.?\d*L(?:\s+\w+)?(?:\s+EcoBoost)?)`),
		regexp.MustCompile(`(?i)(\d+\.?\d*L(?:\s+\w+)?(?:\s+V\d+)?)`),
	}
	horsepowerPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*horsepower`),
		regexp.MustCompile(`(?i)(\d+)\s*hp`),
	}
	torquePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*lb-ft`),
		regexp.MustCompile(`(?i)(\d+)\s*lb\.-ft`),
		regexp.MustCompile(`(?i)(\d+)\s*pound-feet`),
	}
	mileagePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(\d+)\s*mpg`),
		regexp.MustCompile(`(?i)(\d+)\s*miles per gallon`),
		regexp.MustCompile(`(?i)(\d+)\s*city.*?(\d+)\s*highway\s*mpg`),
	}
)

// Dimension patterns. Each field requires its own unit/keyword
// co-occurrence: a number, then inches/in, then the field keyword.
var (
	lengthPattern    = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:inches|in)\s*(?:length|long)`)
	widthPattern     = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:inches|in)\s*(?:width|wide)`)
	heightPattern    = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:inches|in)\s*(?:height|tall)`)
	wheelbasePattern = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:inches|in)\s*(?:wheelbase)`)
	clearancePattern = regexp.MustCompile(`(?i)(\d+\.?\d*)\s*(?:inches|in)\s*(?:ground clearance)`)
)

// Single-keyword vocabularies, tested in listed order against lower-cased
// page text. The matched keyword is returned title-cased.
var (
	fuelKeywords = []string{
		"gasoline", "petrol", "diesel", "hybrid", "electric", "plug-in hybrid", "hydrogen",
	}
	transmissionKeywords = []string{
		"automatic", "manual", "cvt", "dual-clutch", "continuously variable",
	}
	bodyKeywords = []string{
		"sedan", "suv", "truck", "pickup", "hatchback", "wagon", "coupe",
		"convertible", "minivan", "van",
	}
)

// featureKeywords qualify a sentence near a trim name as a feature.
var featureKeywords = []string{
	"engine", "horsepower", "torque", "transmission", "drivetrain",
	"safety", "technology", "entertainment", "comfort", "convenience",
	"performance", "efficiency", "capacity", "towing", "payload",
}

// sentenceSplit breaks a text window into sentence fragments.
var sentenceSplit = regexp.MustCompile(`[.!?]`)

// trimPatternsForBrand returns the trim pattern list for a brand,
// falling back to the generic cross-brand list.
func trimPatternsForBrand(brand string) []*regexp.Regexp {
	if patterns, ok := brandTrimPatterns[strings.ToLower(brand)]; ok {
		return patterns
	}
	return genericTrimPatterns
}
