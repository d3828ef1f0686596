package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	nurl "net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"
)

// Client downloads article pages and pulls the readable body text out of
// them. It implements the pipeline's ArticleFetcher and TextExtractor
// contracts.
type Client struct {
	httpClient *http.Client
}

func New(timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
	}
}

// FetchHTML gets the raw markup of a page. Browser-like headers keep
// sites that reject unknown agents from answering 406.
func (c *Client) FetchHTML(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (lrt-digest)")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("error loading page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading body: %w", err)
	}
	return string(body), nil
}

// ExtractText returns the main readable text of an article page, using
// go-readability first and a plain paragraph walk as fallback. An empty
// result is not an error; the pipeline treats too-short text as
// unreliable on its own.
func (c *Client) ExtractText(html, pageURL string) (string, error) {
	u, err := nurl.Parse(pageURL)
	if err != nil {
		return "", fmt.Errorf("invalid article URL %q: %w", pageURL, err)
	}

	article, err := readability.FromReader(strings.NewReader(html), u)
	if err == nil {
		if text := strings.TrimSpace(article.TextContent); text != "" {
			return text, nil
		}
	}

	return extractParagraphs(html)
}

// extractParagraphs is the generic goquery fallback: walk the usual
// article container selectors and join whatever paragraphs look like
// body text.
func extractParagraphs(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("error parsing HTML: %w", err)
	}

	selectors := []string{
		"article p",
		".article p",
		".content p",
		".post-content p",
		".entry-content p",
		"main p",
		"p",
	}

	var paragraphs []string
	for _, selector := range selectors {
		doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 {
			break
		}
		paragraphs = paragraphs[:0]
	}

	if len(paragraphs) == 0 {
		// One last pass without the minimum-paragraph requirement.
		doc.Find("p").Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			if len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
	}

	return strings.Join(paragraphs, "\n\n"), nil
}
