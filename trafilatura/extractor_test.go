package trafilatura_test

import (
	"testing"

	"github.com/fwojciec/readtrack"
	"github.com/fwojciec/readtrack/trafilatura"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chapterPage is a book chapter surrounded by site chrome.
const chapterPage = `<!DOCTYPE html>
<html>
<head>
<title>Chapter 1. Loomings - Moby-Dick</title>
<meta property="og:title" content="Chapter 1. Loomings">
</head>
<body>
<nav class="site-nav"><ul><li><a href="/">Home</a></li><li><a href="/books">Books</a></li><li><a href="/about">About</a></li></ul></nav>
<article>
<h1>Chapter 1. Loomings</h1>
<p>Call me Ishmael. Some years ago, never mind how long precisely, having little or no money in my purse, and nothing particular to interest me on shore, I thought I would sail about a little and see the watery part of the world.</p>
<p>It is a way I have of driving off the spleen and regulating the circulation. Whenever I find myself growing grim about the mouth; whenever it is a damp, drizzly November in my soul, then, I account it high time to get to sea as soon as I can.</p>
<p>This is my substitute for pistol and ball. With a philosophical flourish Cato throws himself upon his sword; I quietly take to the ship. There is nothing surprising in this.</p>
</article>
<footer class="site-footer"><p>Copyright Example Books. All rights reserved.</p></footer>
</body>
</html>`

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("keeps the chapter text", func(t *testing.T) {
		t.Parallel()

		article, err := trafilatura.NewExtractor().Extract(chapterPage)

		require.NoError(t, err)
		assert.Contains(t, article.ContentHTML, "Call me Ishmael.")
		assert.Contains(t, article.ContentHTML, "drizzly November in my soul")
	})

	t.Run("drops site chrome", func(t *testing.T) {
		t.Parallel()

		article, err := trafilatura.NewExtractor().Extract(chapterPage)

		require.NoError(t, err)
		assert.NotContains(t, article.ContentHTML, "All rights reserved")
		assert.NotContains(t, article.ContentHTML, `href="/about"`)
	})

	t.Run("extracts the title from metadata", func(t *testing.T) {
		t.Parallel()

		article, err := trafilatura.NewExtractor().Extract(chapterPage)

		require.NoError(t, err)
		assert.Contains(t, article.Title, "Loomings")
	})

	t.Run("rejects empty input", func(t *testing.T) {
		t.Parallel()

		_, err := trafilatura.NewExtractor().Extract("  ")

		require.Error(t, err)
		assert.Equal(t, readtrack.EINVALID, readtrack.ErrorCode(err))
	})
}
