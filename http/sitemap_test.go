package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"testing"

	"github.com/fwojciec/readtrack"
	rthttp "github.com/fwojciec/readtrack/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const bookSitemap = `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
  <url><loc>{{BASE}}/book/chapter-1</loc></url>
  <url><loc>{{BASE}}/book/chapter-2/</loc></url>
  <url><loc>{{BASE}}/bookshelf</loc></url>
  <url><loc>{{BASE}}/blog/post</loc></url>
  <url><loc>{{BASE}}/book/chapter-1#intro</loc></url>
</urlset>`

func TestSitemapService_DiscoverURLs(t *testing.T) {
	t.Parallel()

	t.Run("reads sitemaps declared in robots.txt", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/robots.txt":  "User-agent: *\nDisallow: /private/\nSITEMAP: {{BASE}}/book.xml\n",
			"/book.xml":    bookSitemap,
			"/sitemap.xml": `<urlset><url><loc>{{BASE}}/book/unused</loc></url></urlset>`,
		})

		urls, err := rthttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL+"/book", nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/book/chapter-1", srv.URL + "/book/chapter-2"}, urls)
	})

	t.Run("falls back to sitemap.xml", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{"/sitemap.xml": bookSitemap})

		urls, err := rthttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL+"/book/", nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/book/chapter-1", srv.URL + "/book/chapter-2"}, urls)
	})

	t.Run("returns every page for a root base URL", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{"/sitemap.xml": bookSitemap})

		urls, err := rthttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.Len(t, urls, 4)
	})

	t.Run("follows sitemap indexes once", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{
			"/sitemap.xml": `<sitemapindex>
				<sitemap><loc>{{BASE}}/part-1.xml</loc></sitemap>
				<sitemap><loc>{{BASE}}/part-2.xml</loc></sitemap>
				<sitemap><loc>{{BASE}}/sitemap.xml</loc></sitemap>
			</sitemapindex>`,
			"/part-1.xml": `<urlset><url><loc>{{BASE}}/book/1</loc></url></urlset>`,
			"/part-2.xml": `<urlset><url><loc>{{BASE}}/book/2</loc></url><url><loc>{{BASE}}/book/1</loc></url></urlset>`,
		})

		urls, err := rthttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL+"/book", nil)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/book/1", srv.URL + "/book/2"}, urls)
	})

	t.Run("applies the URL filter", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{"/sitemap.xml": bookSitemap})
		filter := &readtrack.URLFilter{Exclude: []*regexp.Regexp{regexp.MustCompile(`chapter-2`)}}

		urls, err := rthttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL+"/book", filter)

		require.NoError(t, err)
		assert.Equal(t, []string{srv.URL + "/book/chapter-1"}, urls)
	})

	t.Run("returns an empty slice without a sitemap", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{})

		urls, err := rthttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

		require.NoError(t, err)
		assert.NotNil(t, urls)
		assert.Empty(t, urls)
	})

	t.Run("returns parse errors", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{"/sitemap.xml": "<urlset><url>"})

		_, err := rthttp.NewSitemapService(srv.Client()).DiscoverURLs(context.Background(), srv.URL, nil)

		assert.Error(t, err)
	})

	t.Run("rejects a relative base URL", func(t *testing.T) {
		t.Parallel()

		_, err := rthttp.NewSitemapService(nil).DiscoverURLs(context.Background(), "/book", nil)

		assert.Equal(t, readtrack.EINVALID, readtrack.ErrorCode(err))
	})

	t.Run("honors context cancellation", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t, map[string]string{"/sitemap.xml": bookSitemap})
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := rthttp.NewSitemapService(srv.Client()).DiscoverURLs(ctx, srv.URL, nil)

		require.ErrorIs(t, err, context.Canceled)
	})
}

// newTestServer serves the given path to content mapping. Content may
// contain {{BASE}}, which is replaced with the server URL.
func newTestServer(t *testing.T, content map[string]string) *httptest.Server {
	t.Helper()

	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := content[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		if r.URL.Path == "/robots.txt" {
			w.Header().Set("Content-Type", "text/plain")
		} else {
			w.Header().Set("Content-Type", "application/xml")
		}
		_, _ = w.Write([]byte(strings.ReplaceAll(body, "{{BASE}}", srv.URL)))
	}))
	t.Cleanup(srv.Close)

	return srv
}
