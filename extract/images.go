package extract

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
)

// maxImages caps the image list per record.
const maxImages = 10

var (
	imageAltKeywords = []string{
		"car", "vehicle", "truck", "suv", "sedan", "hatchback", "wagon",
		"coupe", "convertible",
	}
	imageSectionKeywords = []string{
		"gallery", "images", "photos", "exterior", "interior", "hero",
	}
	imageClassKeywords = []string{
		"image", "photo", "gallery", "hero", "banner", "vehicle",
	}
	imageDataKeywords = []string{
		"car", "vehicle", "truck", "suv", "image", "photo",
	}
)

// imageStrategy produces candidate image URLs from the document tree.
type imageStrategy struct {
	name string
	run  func(doc *goquery.Document, base *url.URL) []string
}

var imageStrategies = []imageStrategy{
	{"alt-text", imagesByAltText},
	{"sections", imagesFromSections},
	{"class", imagesByClass},
	{"data-attrs", imagesByDataAttrs},
}

// Images runs four independent strategies over the document tree and
// merges their results: concatenated in strategy order, deduplicated by
// exact URL preserving first-seen order, truncated to maxImages. The
// strategies share no state and run concurrently into private slots. A
// strategy that panics is logged and contributes nothing; one failing
// strategy never aborts the others.
func Images(doc *goquery.Document, pageURL string) []string {
	base, err := url.Parse(pageURL)
	if err != nil {
		base = nil
	}

	results := make([][]string, len(imageStrategies))
	var wg sync.WaitGroup
	for i, strategy := range imageStrategies {
		i, strategy := i, strategy
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = runImageStrategy(strategy, doc, base)
		}()
	}
	wg.Wait()

	merged := []string{}
	seen := make(map[string]struct{})
	for _, urls := range results {
		for _, u := range urls {
			if _, ok := seen[u]; ok {
				continue
			}
			seen[u] = struct{}{}
			merged = append(merged, u)
			if len(merged) == maxImages {
				return merged
			}
		}
	}
	return merged
}

func runImageStrategy(s imageStrategy, doc *goquery.Document, base *url.URL) (urls []string) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("image extraction strategy failed",
				"strategy", s.name, "error", fmt.Sprint(r))
			urls = nil
		}
	}()
	if doc == nil {
		return nil
	}
	return s.run(doc, base)
}

// imagesByAltText keeps images whose alt text mentions a vehicle type.
func imagesByAltText(doc *goquery.Document, base *url.URL) []string {
	var urls []string
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		alt := strings.ToLower(img.AttrOr("alt", ""))
		if containsAny(alt, imageAltKeywords) {
			urls = appendImageURL(urls, img.AttrOr("src", ""), base)
		}
	})
	return urls
}

// imagesFromSections keeps images nested under containers whose class
// list or id names a gallery/photo section.
func imagesFromSections(doc *goquery.Document, base *url.URL) []string {
	var urls []string
	doc.Find("div, section").Each(func(_ int, section *goquery.Selection) {
		haystack := strings.ToLower(section.AttrOr("class", "") + " " + section.AttrOr("id", ""))
		if !containsAny(haystack, imageSectionKeywords) {
			return
		}
		section.Find("img").Each(func(_ int, img *goquery.Selection) {
			urls = appendImageURL(urls, img.AttrOr("src", ""), base)
		})
	})
	return urls
}

// imagesByClass keeps images whose own class list names an image role.
func imagesByClass(doc *goquery.Document, base *url.URL) []string {
	var urls []string
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		class := strings.ToLower(img.AttrOr("class", ""))
		if containsAny(class, imageClassKeywords) {
			urls = appendImageURL(urls, img.AttrOr("src", ""), base)
		}
	})
	return urls
}

// imagesByDataAttrs keeps images whose data-* attributes, joined into one
// string, mention a vehicle or image keyword.
func imagesByDataAttrs(doc *goquery.Document, base *url.URL) []string {
	var urls []string
	doc.Find("img").Each(func(_ int, img *goquery.Selection) {
		var joined strings.Builder
		for _, node := range img.Nodes {
			for _, attr := range node.Attr {
				if strings.HasPrefix(attr.Key, "data-") {
					joined.WriteString(attr.Key)
					joined.WriteByte(' ')
					joined.WriteString(attr.Val)
					joined.WriteByte(' ')
				}
			}
		}
		if containsAny(strings.ToLower(joined.String()), imageDataKeywords) {
			urls = appendImageURL(urls, img.AttrOr("src", ""), base)
		}
	})
	return urls
}

// appendImageURL appends src when it is absolute, or resolves it against
// the page's scheme and host when root-relative. Other forms (fragment
// relatives, data URIs, empty) are skipped.
func appendImageURL(urls []string, src string, base *url.URL) []string {
	switch {
	case strings.HasPrefix(src, "http"):
		return append(urls, src)
	case strings.HasPrefix(src, "/") && base != nil && base.Host != "":
		return append(urls, base.Scheme+"://"+base.Host+src)
	}
	return urls
}

func containsAny(s string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(s, kw) {
			return true
		}
	}
	return false
}
