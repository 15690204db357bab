package htmlutil

import (
	"bytes"
	"context"
	"strings"
	"unicode"

	"github.com/PuerkitoBio/goquery"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/net/html"
)

var tracer = otel.Tracer("addressfinder.lib.htmlutil")

// GetText concatenates every text node under `node`.
func GetText(node *html.Node) string {
	var buffer bytes.Buffer
	walkText(node, func(s string) {
		buffer.WriteString(s)
	})
	return buffer.String()
}

// StrippedText trims each text node under `node` and concatenates the
// non-empty results with no separator. "<td> 12 <b> Main </b></td>" yields "12Main".
func StrippedText(node *html.Node) string {
	var buffer bytes.Buffer
	walkText(node, func(s string) {
		buffer.WriteString(strings.TrimFunc(s, unicode.IsSpace))
	})
	return buffer.String()
}

func walkText(node *html.Node, visit func(string)) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		visit(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		walkText(child, visit)
		child = child.NextSibling
	}
}

// SelectionText returns the stripped text of the first node in the selection,
// or "" if the selection is empty.
func SelectionText(sel *goquery.Selection) string {
	if sel.Length() == 0 {
		return ""
	}
	return StrippedText(sel.Nodes[0])
}

// ColumnTexts returns the stripped text of every element matching `selector`
// in document order.
func ColumnTexts(ctx context.Context, doc *goquery.Document, selector string) []string {
	_, span := tracer.Start(ctx, "ColumnTexts")
	defer span.End()

	sel := doc.Find(selector)
	texts := make([]string, len(sel.Nodes))
	for i, n := range sel.Nodes {
		texts[i] = StrippedText(n)
	}

	span.SetAttributes(
		attribute.String("selector", selector),
		attribute.Int("matches", len(texts)),
	)
	return texts
}
