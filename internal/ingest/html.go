package ingest

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// skipElements never contribute visible prose
var skipElements = map[string]bool{
	"script": true, "style": true, "noscript": true, "iframe": true,
	"svg": true, "template": true, "head": true, "nav": true, "form": true,
}

// blockElements end the paragraph in progress
var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true, "main": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"li": true, "ul": true, "ol": true, "blockquote": true, "pre": true,
	"table": true, "tr": true, "td": true, "th": true, "br": true, "hr": true,
	"header": true, "footer": true, "aside": true, "figure": true, "figcaption": true,
	"dd": true, "dt": true,
}

// HTMLDocument is the readable content of a page
type HTMLDocument struct {
	Title string
	Text  string // Paragraphs separated by blank lines
}

// ExtractHTML converts markup into paragraph text. Block elements become
// paragraph boundaries so the context scorer sees the page's structure.
func ExtractHTML(markup string) (*HTMLDocument, error) {
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var (
		paragraphs []string
		current    strings.Builder
	)

	flush := func() {
		text := strings.Join(strings.Fields(current.String()), " ")
		if text != "" {
			paragraphs = append(paragraphs, text)
		}
		current.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skipElements[n.Data] {
			return
		}

		if n.Type == html.TextNode {
			current.WriteString(n.Data)
		}

		block := n.Type == html.ElementNode && blockElements[n.Data]
		if block {
			flush()
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if block {
			flush()
		}
	}

	walk(doc)
	flush()

	var title string
	if n := findFirst(doc, "title"); n != nil {
		title = strings.Join(strings.Fields(textContent(n)), " ")
	}

	return &HTMLDocument{
		Title: title,
		Text:  strings.Join(paragraphs, "\n\n"),
	}, nil
}

func textContent(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return buf.String()
}

func findFirst(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}
