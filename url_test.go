package readtrack_test

import (
	"testing"

	"github.com/fwojciec/readtrack"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespace", "   ", ""},
		{"relative", "/docs/intro", ""},
		{"lowercases scheme and host", "HTTPS://Example.COM/Docs", "https://example.com/Docs"},
		{"drops fragment", "https://example.com/book/ch1#section-2", "https://example.com/book/ch1"},
		{"drops default https port", "https://example.com:443/a", "https://example.com/a"},
		{"drops default http port", "http://example.com:80/a", "http://example.com/a"},
		{"keeps custom port", "http://localhost:8080/a", "http://localhost:8080/a"},
		{"trims trailing slash", "https://example.com/book/", "https://example.com/book"},
		{"root path", "https://example.com/", "https://example.com"},
		{"keeps query", "https://example.com/read?page=2#top", "https://example.com/read?page=2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, readtrack.NormalizeURL(tt.raw))
		})
	}
}
