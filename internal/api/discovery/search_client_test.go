package discovery

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearch(t *testing.T) {
	ctx := context.Background()

	t.Run("extracts result links from markup", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "cafe near Bandra West", r.URL.Query().Get("q"))
			w.Write([]byte(`
				<div class="result">
					<a rel="nofollow" class="result__a" href="https://example.com/cafes">Best cafes</a>
				</div>
				<div class="result">
					<a rel="nofollow" class="result__a" href="https://example.org/top-10">Top 10</a>
				</div>
			`))
		}))
		defer server.Close()

		client := NewHTMLSearchClient(server.URL, 2*time.Second, setupTestLogger())
		links, err := client.Search(ctx, "cafe near Bandra West")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/cafes", "https://example.org/top-10"}, links)
	})

	t.Run("unwraps redirect-style hrefs", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fcafes&rut=abc">Best cafes</a>`))
		}))
		defer server.Close()

		client := NewHTMLSearchClient(server.URL, 2*time.Second, setupTestLogger())
		links, err := client.Search(ctx, "cafe")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://example.com/cafes"}, links)
	})

	t.Run("drops non-http results", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`<a class="result__a" href="javascript:void(0)">bad</a><a class="result__a" href="https://good.example/page">good</a>`))
		}))
		defer server.Close()

		client := NewHTMLSearchClient(server.URL, 2*time.Second, setupTestLogger())
		links, err := client.Search(ctx, "cafe")

		require.NoError(t, err)
		assert.Equal(t, []string{"https://good.example/page"}, links)
	})

	t.Run("non-200 status is an error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		client := NewHTMLSearchClient(server.URL, 2*time.Second, setupTestLogger())
		_, err := client.Search(ctx, "cafe")

		assert.Error(t, err)
	})
}

func TestDecodeResultLink(t *testing.T) {
	tests := []struct {
		name     string
		href     string
		expected string
	}{
		{"plain absolute url", "https://example.com/page", "https://example.com/page"},
		{"wrapped redirect url", "//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fpage", "https://example.com/page"},
		{"relative url rejected", "/settings", ""},
		{"javascript scheme rejected", "javascript:void(0)", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, decodeResultLink(tt.href))
		})
	}
}
