package discovery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"
)

// PageFetcher is the page-fetch collaborator boundary: a URL in, readable
// page text out.
type PageFetcher interface {
	FetchText(ctx context.Context, pageURL string) (string, error)
}

var _ PageFetcher = (*HTTPPageFetcher)(nil)

// HTTPPageFetcher downloads a page and reduces it to visible text: script,
// style and chrome sections are removed, remaining tags stripped, whitespace
// collapsed.
type HTTPPageFetcher struct {
	logger *slog.Logger
	client *http.Client
}

func NewHTTPPageFetcher(timeout time.Duration, logger *slog.Logger) *HTTPPageFetcher {
	return &HTTPPageFetcher{
		logger: logger,
		client: &http.Client{Timeout: timeout},
	}
}

var (
	chromeSectionPattern = regexp.MustCompile(`(?is)<(script|style|nav|header|footer|noscript)[^>]*>.*?</\s*(?:script|style|nav|header|footer|noscript)\s*>`)
	tagPattern           = regexp.MustCompile(`(?s)<[^>]*>`)
	whitespacePattern    = regexp.MustCompile(`\s+`)
)

func (f *HTTPPageFetcher) FetchText(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build page request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; hangout-planner)")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("page fetch failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("page fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read page body: %w", err)
	}

	text := StripMarkup(string(body))
	f.logger.DebugContext(ctx, "Fetched page text",
		slog.String("url", pageURL), slog.Int("text_len", len(text)))
	return text, nil
}

// StripMarkup converts raw HTML to collapsed plain text.
func StripMarkup(html string) string {
	text := chromeSectionPattern.ReplaceAllString(html, " ")
	text = tagPattern.ReplaceAllString(text, " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}
