// Package extract turns raw page text and a parsed document tree into a
// structured vehicle record. Every attribute is inferred from noisy,
// brand-specific markup through ordered cascades of pattern-matching
// strategies; "not found" is always an empty value, never an error.
package extract

import "strings"

// Sentinels for brand and model when no evidence was found. All other
// fields degrade to empty strings instead.
const (
	UnknownBrand = "Unknown"
	UnknownModel = "Unknown Model"
)

// brandAliases maps a canonical brand name to the URL substrings that
// identify it. The table order is a fixed priority: the first alias that
// appears in the URL wins, which matters when a URL could match several
// entries (e.g. "ram" inside an unrelated token).
var brandAliases = []struct {
	name    string
	aliases []string
}{
	{"Chevrolet", []string{"chevrolet", "chevy"}},
	{"Ford", []string{"ford"}},
	{"Toyota", []string{"toyota"}},
	{"Honda", []string{"honda"}},
	{"Nissan", []string{"nissan"}},
	{"BMW", []string{"bmw"}},
	{"Mercedes-Benz", []string{"mercedes", "mercedes-benz"}},
	{"Audi", []string{"audi"}},
	{"Volkswagen", []string{"volkswagen", "vw"}},
	{"Hyundai", []string{"hyundai"}},
	{"Kia", []string{"kia"}},
	{"Mazda", []string{"mazda"}},
	{"Subaru", []string{"subaru"}},
	{"Lexus", []string{"lexus"}},
	{"Acura", []string{"acura"}},
	{"Infiniti", []string{"infiniti"}},
	{"Volvo", []string{"volvo"}},
	{"Cadillac", []string{"cadillac"}},
	{"Buick", []string{"buick"}},
	{"GMC", []string{"gmc"}},
	{"Dodge", []string{"dodge"}},
	{"Chrysler", []string{"chrysler"}},
	{"Jeep", []string{"jeep"}},
	{"RAM", []string{"ram"}},
	{"Tesla", []string{"tesla"}},
}

// DetectBrand classifies a URL into the known brand vocabulary. The check
// is a case-insensitive substring test in fixed priority order; URLs with
// no recognized alias yield UnknownBrand. Always total.
func DetectBrand(url string) string {
	lower := strings.ToLower(url)
	for _, b := range brandAliases {
		for _, alias := range b.aliases {
			if strings.Contains(lower, alias) {
				return b.name
			}
		}
	}
	return UnknownBrand
}
