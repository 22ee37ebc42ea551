package report

import (
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// HTML converts the markdown report into a complete standalone HTML page.
func HTML(title string, md []byte) []byte {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	doc := p.Parse(md)

	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{
		Title: title,
		Flags: mdhtml.CommonFlags | mdhtml.CompletePage,
	})
	return markdown.Render(doc, renderer)
}
