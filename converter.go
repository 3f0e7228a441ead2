package readtrack

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms HTML content into Markdown.
	// Highlight markers are preserved as emphasized text.
	Convert(html string) (string, error)
}
