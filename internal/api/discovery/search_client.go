package discovery

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"regexp"
	"time"
)

// SearchClient is the search collaborator boundary: a query in, an ordered
// list of result URLs out. Callers only ever consume the top few.
type SearchClient interface {
	Search(ctx context.Context, query string) ([]string, error)
}

var _ SearchClient = (*HTMLSearchClient)(nil)

// HTMLSearchClient scrapes result links out of an HTML search endpoint.
type HTMLSearchClient struct {
	logger  *slog.Logger
	client  *http.Client
	baseURL string
}

func NewHTMLSearchClient(baseURL string, timeout time.Duration, logger *slog.Logger) *HTMLSearchClient {
	return &HTMLSearchClient{
		logger:  logger,
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// resultLinkPattern matches anchor hrefs in the result markup. Relative and
// tracking links are filtered out after matching.
var resultLinkPattern = regexp.MustCompile(`<a[^>]+class="result__a"[^>]+href="([^"]+)"`)

func (c *HTMLSearchClient) Search(ctx context.Context, query string) ([]string, error) {
	form := url.Values{}
	form.Set("q", query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/?"+form.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; hangout-planner)")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("search collaborator returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read search response: %w", err)
	}

	matches := resultLinkPattern.FindAllStringSubmatch(string(body), -1)
	links := make([]string, 0, len(matches))
	for _, m := range matches {
		link := decodeResultLink(m[1])
		if link == "" {
			continue
		}
		links = append(links, link)
	}

	c.logger.DebugContext(ctx, "Search returned result links",
		slog.String("query", query), slog.Int("count", len(links)))
	return links, nil
}

// decodeResultLink unwraps redirect-style result hrefs (uddg=<encoded url>)
// and rejects anything that is not an absolute http(s) URL.
func decodeResultLink(href string) string {
	if u, err := url.Parse(href); err == nil {
		if wrapped := u.Query().Get("uddg"); wrapped != "" {
			href = wrapped
		}
	}
	unescaped, err := url.QueryUnescape(href)
	if err == nil {
		href = unescaped
	}
	u, err := url.Parse(href)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") {
		return ""
	}
	return href
}
