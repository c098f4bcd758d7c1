package fetch

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
)

// visibleText walks the raw HTML once and returns the trimmed <title>
// content and the visible text inside <body>, with <script>, <style> and
// <noscript> content stripped. Text nodes are joined with single spaces.
func visibleText(body []byte) (title, text string) {
	tokenizer := html.NewTokenizer(bytes.NewReader(body))
	var buf strings.Builder

	inBody := false
	inTitle := false
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return title, buf.String()

		case html.StartTagToken:
			tn, _ := tokenizer.TagName()
			switch string(tn) {
			case "body":
				inBody = true
			case "title":
				inTitle = true
			case "script", "style", "noscript":
				skipDepth++
			}

		case html.EndTagToken:
			tn, _ := tokenizer.TagName()
			switch string(tn) {
			case "title":
				inTitle = false
			case "script", "style", "noscript":
				if skipDepth > 0 {
					skipDepth--
				}
			}

		case html.TextToken:
			t := strings.TrimSpace(string(tokenizer.Text()))
			if t == "" {
				continue
			}
			if inTitle && title == "" {
				title = t
				continue
			}
			if inBody && skipDepth == 0 {
				buf.WriteString(t)
				buf.WriteByte(' ')
			}
		}
	}
}
