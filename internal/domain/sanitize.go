package domain

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Notes are user-supplied rich text that is persisted and later
// re-rendered as markup in another surface, so everything written
// through the store goes through Sanitize first.
//
// Sanitize is idempotent: sanitize(sanitize(x)) == sanitize(x).

var allowedTags = map[string]bool{
	"b": true, "i": true, "u": true,
	"strong": true, "em": true,
	"ul": true, "ol": true, "li": true,
	"p": true, "span": true, "div": true, "br": true,
}

var allowedAttrs = map[string]bool{
	"href": true, "target": true, "rel": true,
}

// Sanitize parses raw as a detached HTML fragment and rebuilds it
// keeping only allow-listed elements and attributes. Disallowed
// elements are replaced by their text content, not dropped. An href
// starting with "javascript:" is rewritten to "#".
func Sanitize(raw string) string {
	if raw == "" {
		return ""
	}
	nodes, err := html.ParseFragment(strings.NewReader(raw), fragmentContext())
	if err != nil {
		return ""
	}

	var sb strings.Builder
	for _, n := range nodes {
		for _, clean := range cleanNode(n) {
			if err := html.Render(&sb, clean); err != nil {
				return ""
			}
		}
	}
	return sb.String()
}

// SanitizeToText strips all markup from raw, returning only the
// concatenated text content.
func SanitizeToText(raw string) string {
	if raw == "" {
		return ""
	}
	nodes, err := html.ParseFragment(strings.NewReader(raw), fragmentContext())
	if err != nil {
		return ""
	}

	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(textContent(n))
	}
	return sb.String()
}

// fragmentContext gives ParseFragment a detached body to parse into, so
// the input never touches a live document.
func fragmentContext() *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
}

// cleanNode rebuilds one parsed node. Text passes through, allow-listed
// elements are recreated with filtered attributes and cleaned children,
// anything else collapses to its text content. Comments and doctypes
// vanish.
func cleanNode(n *html.Node) []*html.Node {
	switch n.Type {
	case html.TextNode:
		return []*html.Node{{Type: html.TextNode, Data: n.Data}}

	case html.ElementNode:
		name := strings.ToLower(n.Data)
		if !allowedTags[name] {
			if txt := textContent(n); txt != "" {
				return []*html.Node{{Type: html.TextNode, Data: txt}}
			}
			return nil
		}

		clean := &html.Node{
			Type:     html.ElementNode,
			Data:     name,
			DataAtom: n.DataAtom,
		}
		for _, attr := range n.Attr {
			key := strings.ToLower(attr.Key)
			if !allowedAttrs[key] {
				continue
			}
			val := attr.Val
			if key == "href" && strings.HasPrefix(strings.ToLower(val), "javascript:") {
				val = "#"
			}
			clean.Attr = append(clean.Attr, html.Attribute{Key: key, Val: val})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			for _, child := range cleanNode(c) {
				clean.AppendChild(child)
			}
		}
		return []*html.Node{clean}

	default:
		return nil
	}
}

// textContent concatenates every text node under n.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
