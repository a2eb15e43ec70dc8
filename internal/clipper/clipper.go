// Package clipper turns a recipe web page into a catalog entry: title,
// protein grams when the page states them, and a requires-prep flag when
// the instructions mention day-before work.
package clipper

import (
	"context"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"mealboard/internal/recipe"

	"github.com/PuerkitoBio/goquery"
)

// Clipper fetches and extracts recipes from URLs.
type Clipper struct {
	httpClient *http.Client
}

// New creates a new Clipper instance.
func New() *Clipper {
	return &Clipper{
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// ClipURL fetches the URL and extracts a recipe from its markup.
func (c *Clipper) ClipURL(ctx context.Context, url string) (*recipe.Recipe, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch content: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page: %w", err)
	}

	rec := Extract(doc, url)
	if rec.Name == "" {
		return nil, fmt.Errorf("no recipe title found at %s", url)
	}
	return rec, nil
}

var (
	proteinRe = regexp.MustCompile(`(?i)(?:protein[:\s]+(\d+(?:\.\d+)?)\s*g)|(?:(\d+(?:\.\d+)?)\s*g(?:rams)?\s+(?:of\s+)?protein)`)
	prepRe    = regexp.MustCompile(`(?i)[^.!?]*\b(overnight|marinat\w*|soak\w*|brine\w*|the day before|a day ahead)\b[^.!?]*[.!?]?`)
)

// Extract pulls a recipe out of a parsed page. Title comes from og:title,
// the first h1, or the document title, in that order. Protein is read from
// any "NN g protein" style nutrition text. A sentence mentioning
// overnight/marinating/soaking work flags the recipe as requiring prep and
// becomes its prep instructions.
func Extract(doc *goquery.Document, sourceURL string) *recipe.Recipe {
	// Strip noise before reading page text
	doc.Find("script, style, nav, footer, iframe").Each(func(i int, s *goquery.Selection) {
		s.Remove()
	})

	rec := &recipe.Recipe{
		Name:      extractTitle(doc),
		SourceURL: sourceURL,
	}

	text := doc.Find("body").Text()

	if m := proteinRe.FindStringSubmatch(text); m != nil {
		raw := m[1]
		if raw == "" {
			raw = m[2]
		}
		if grams, err := strconv.ParseFloat(raw, 64); err == nil && grams >= 0 {
			rec.Protein = &grams
		}
	}

	if sentence := prepRe.FindString(text); sentence != "" {
		rec.RequiresPrep = true
		rec.PrepInstructions = strings.Join(strings.Fields(sentence), " ")
	}

	return rec
}

func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if t := strings.TrimSpace(og); t != "" {
			return t
		}
	}
	if h1 := strings.TrimSpace(doc.Find("h1").First().Text()); h1 != "" {
		return h1
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
