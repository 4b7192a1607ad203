package htmlout

import (
	"bytes"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/folio/render"
	"github.com/tsawler/folio/validation"
)

// stylesheet styles the ash-* classes in full documents.
const stylesheet = `
.ash-grid, .ash-stack { box-sizing: border-box; }
.ash-cell { box-sizing: border-box; min-width: 0; }
.ash-table { width: 100%; }
.ash-table th { font-weight: 700; text-align: start; }
.ash-empty { border: none; }
.ash-field[data-missing] { color: #999; }
`

// document wraps rendered layouts in a complete HTML document.
func document(doc *render.Document, body []*html.Node) (string, error) {
	root := &html.Node{Type: html.DocumentNode}
	root.AppendChild(&html.Node{Type: html.DoctypeNode, Data: "html"})

	htmlEl := element(atom.Html, "")
	setAttr(htmlEl, "lang", doc.Locale.Language())
	if doc.RTL() {
		setAttr(htmlEl, "dir", "rtl")
	}
	root.AppendChild(htmlEl)

	head := element(atom.Head, "")
	meta := element(atom.Meta, "")
	setAttr(meta, "charset", "utf-8")
	head.AppendChild(meta)
	title := element(atom.Title, "")
	title.AppendChild(text(doc.Options.Title))
	head.AppendChild(title)
	style := element(atom.Style, "")
	style.AppendChild(&html.Node{Type: html.TextNode, Data: stylesheet})
	head.AppendChild(style)
	htmlEl.AppendChild(head)

	bodyEl := element(atom.Body, "")
	for _, n := range body {
		bodyEl.AppendChild(n)
	}
	htmlEl.AppendChild(bodyEl)

	var buf bytes.Buffer
	if err := html.Render(&buf, root); err != nil {
		return "", &validation.Error{Code: validation.CodeStructuralEncodeFailure, Message: "rendering HTML document", Err: err}
	}
	return buf.String(), nil
}
