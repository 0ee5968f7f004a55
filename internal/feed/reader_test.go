package feed_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/blog-indexer/internal/feed"
)

func newTestReader() *feed.Reader {
	return feed.NewReader(feed.NewHTTPFetcher(&http.Client{Timeout: 5 * time.Second}))
}

func TestReader_Read(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssFixture))
	}))
	defer server.Close()

	items, err := newTestReader().Read(context.Background(), server.URL)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "https://example.com/2024/01/first.html", items[0].URL)
}

func TestReader_Read_ServerError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := newTestReader().Read(context.Background(), server.URL)
	require.ErrorIs(t, err, feed.ErrFeedUnavailable)
}

func TestReader_Read_UnparseableBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>not a feed</html>"))
	}))
	defer server.Close()

	_, err := newTestReader().Read(context.Background(), server.URL)
	require.ErrorIs(t, err, feed.ErrFeedUnavailable)
}

func TestReader_Read_ConnectionRefused(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close()

	_, err := newTestReader().Read(context.Background(), server.URL)
	require.ErrorIs(t, err, feed.ErrFeedUnavailable)
}
