package extract_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonesrussell/blog-indexer/internal/domain"
	"github.com/jonesrussell/blog-indexer/internal/extract"
)

const blogURL = "https://example.blogspot.com"

const markupFixture = `<html><body>
<a href="https://example.blogspot.com/2024/01/first-post.html">First</a>
<a href="/2024/01/second-post.html">Second</a>
<a href="https://example.blogspot.com/p/about.html">About</a>
<a href="https://example.blogspot.com/2024/01/first-post.html">First again</a>
<a href="https://example.blogspot.com/search/2024/01/results.html">Search results</a>
<a href="ftp://example.blogspot.com/2024/01/nope.html">Bad scheme</a>
<a href="https://example.blogspot.com/2024/01/not-a-page.txt">Wrong suffix</a>
</body></html>`

func TestExtract_DedupAndValidation(t *testing.T) {
	t.Parallel()

	items, err := extract.Extract(markupFixture, blogURL)
	require.NoError(t, err)

	// 7 raw matches: 1 duplicate, 3 failing validation (search path, bad
	// scheme, wrong suffix) leave 3 distinct candidates.
	require.Len(t, items, 3)

	urls := make([]string, 0, len(items))
	for _, item := range items {
		urls = append(urls, item.URL)
		assert.Equal(t, domain.SourceScraped, item.Source)
	}

	assert.Equal(t, []string{
		"https://example.blogspot.com/2024/01/first-post.html",
		"https://example.blogspot.com/2024/01/second-post.html",
		"https://example.blogspot.com/p/about.html",
	}, urls)
}

func TestExtract_ResolvesRelativeURLs(t *testing.T) {
	t.Parallel()

	markup := `<a href="/2024/03/relative.html">Post</a>`

	items, err := extract.Extract(markup, blogURL)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "https://example.blogspot.com/2024/03/relative.html", items[0].URL)
}

func TestExtract_ExcludesSearchPaths(t *testing.T) {
	t.Parallel()

	markup := `<a href="https://example.blogspot.com/search/2024/01/results.html">Search</a>
<a href="/search/p/archive.html">Archive search</a>`

	items, err := extract.Extract(markup, blogURL)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestExtract_EmptyMarkup(t *testing.T) {
	t.Parallel()

	items, err := extract.Extract("", blogURL)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestExtract_InvalidBaseURL(t *testing.T) {
	t.Parallel()

	_, err := extract.Extract(markupFixture, "not-a-url")
	require.Error(t, err)
}

func TestExtract_CapsCandidateCount(t *testing.T) {
	t.Parallel()

	var sb strings.Builder
	for i := 0; i < 30; i++ {
		fmt.Fprintf(&sb, `<a href="/2024/01/post-%d.html">x</a>`, i)
	}

	items, err := extract.Extract(sb.String(), blogURL)
	require.NoError(t, err)
	assert.Len(t, items, 20)
}

func TestExtract_AnchorTitleCaptured(t *testing.T) {
	t.Parallel()

	markup := `<a href="/2024/05/titled.html">A Titled Post</a>`

	items, err := extract.Extract(markup, blogURL)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "A Titled Post", items[0].Title)
}
