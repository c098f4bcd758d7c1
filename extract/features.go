package extract

import (
	"slices"
	"strings"
)

// featureWindow is how many characters around the trim name's first
// occurrence are scanned for feature sentences.
const featureWindow = 500

// maxFeatures caps the feature list per variant.
const maxFeatures = 5

// FeatureContext pulls short descriptive sentences found near the first
// case-insensitive occurrence of the trim name in the page text. A
// sentence qualifies when its trimmed length exceeds 10 and it mentions
// at least one feature keyword. At most maxFeatures are returned; if the
// trim never occurs, the result is empty.
func FeatureContext(text, trim string) []string {
	features := []string{}

	pos := strings.Index(strings.ToLower(text), strings.ToLower(trim))
	if pos < 0 {
		return features
	}

	start := pos - featureWindow
	if start < 0 {
		start = 0
	}
	end := pos + featureWindow
	if end > len(text) {
		end = len(text)
	}

	for _, sentence := range sentenceSplit.Split(text[start:end], -1) {
		sentence = strings.TrimSpace(sentence)
		if len(sentence) <= 10 {
			continue
		}
		lowerSentence := strings.ToLower(sentence)
		for _, keyword := range featureKeywords {
			if !strings.Contains(lowerSentence, keyword) {
				continue
			}
			if !slices.Contains(features, sentence) {
				features = append(features, sentence)
			}
			break
		}
		if len(features) == maxFeatures {
			break
		}
	}
	return features
}
