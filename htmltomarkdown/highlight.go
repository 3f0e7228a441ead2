package htmltomarkdown

import (
	"bytes"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"golang.org/x/net/html"
)

// highlightPlugin renders <mark> elements as delimited text.
type highlightPlugin struct {
	delimiter string
}

func (p *highlightPlugin) Name() string {
	return "highlight"
}

func (p *highlightPlugin) Init(conv *converter.Converter) error {
	conv.Register.RendererFor("mark", converter.TagTypeInline, p.render, converter.PriorityStandard)
	return nil
}

func (p *highlightPlugin) render(ctx converter.Context, w converter.Writer, n *html.Node) converter.RenderStatus {
	var buf bytes.Buffer
	ctx.RenderChildNodes(ctx, &buf, n)

	text := buf.String()
	content := strings.TrimSpace(text)
	if content == "" {
		w.WriteString(text)
		return converter.RenderSuccess
	}
	// Surrounding whitespace stays outside the delimiters.
	start := strings.Index(text, content)
	lead, trail := text[:start], text[start+len(content):]

	w.WriteString(lead)
	w.WriteString(p.delimiter)
	w.WriteString(content)
	w.WriteString(p.delimiter)
	w.WriteString(trail)
	return converter.RenderSuccess
}
