package fetch

import (
	"strings"
	"testing"
)

func TestVisibleText_TitleAndBody(t *testing.T) {
	title, text := visibleText([]byte(`<html>
		<head><title>2024 Silverado 1500</title></head>
		<body><h1>Silverado</h1><p>355 horsepower and 383 lb-ft</p></body>
		</html>`))

	if title != "2024 Silverado 1500" {
		t.Errorf("title = %q, want 2024 Silverado 1500", title)
	}
	if !strings.Contains(text, "Silverado") || !strings.Contains(text, "355 horsepower") {
		t.Errorf("text missing body content: %q", text)
	}
}

func TestVisibleText_StripsScriptAndStyle(t *testing.T) {
	_, text := visibleText([]byte(`<html><body>
		<script>var secret = "tracker";</script>
		<style>.hidden { display: none; }</style>
		<noscript>enable javascript</noscript>
		<p>visible paragraph</p>
		</body></html>`))

	for _, banned := range []string{"tracker", "display: none", "enable javascript"} {
		if strings.Contains(text, banned) {
			t.Errorf("text contains %q, want it stripped", banned)
		}
	}
	if !strings.Contains(text, "visible paragraph") {
		t.Errorf("text lost visible content: %q", text)
	}
}

func TestVisibleText_JoinsWithSpaces(t *testing.T) {
	_, text := visibleText([]byte(`<html><body><span>WT</span><span>LT</span></body></html>`))
	if !strings.Contains(text, "WT LT") {
		t.Errorf("text = %q, want space-joined node text", text)
	}
}

func TestVisibleText_HeadTextExcluded(t *testing.T) {
	_, text := visibleText([]byte(`<html><head><meta name="x"><title>T</title></head>
		<body>body only</body></html>`))
	if strings.TrimSpace(text) != "body only" {
		t.Errorf("text = %q, want only body content", text)
	}
}

func TestVisibleText_Empty(t *testing.T) {
	title, text := visibleText(nil)
	if title != "" || strings.TrimSpace(text) != "" {
		t.Errorf("empty input produced title=%q text=%q", title, text)
	}
}
