package sfc

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseTemplate parses template markup into a node tree. The fragment is
// parsed in a div context so no document scaffolding (html/head/body) is
// injected around it. Tag names come back normalized to lowercase, HTML5
// tokenization rules.
func ParseTemplate(content string) ([]*html.Node, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(content), ctx)
	if err != nil {
		return nil, fmt.Errorf("parse template markup: %w", err)
	}
	return nodes, nil
}

// CollectTags walks the template tree and returns every distinct tag name in
// first-encounter order. An empty template yields an empty slice, never nil.
func CollectTags(nodes []*html.Node) []string {
	tags := make([]string, 0)
	seen := make(map[string]bool)

	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if n == nil {
			return
		}
		if n.Type == html.ElementNode && n.Data != "" && !seen[n.Data] {
			seen[n.Data] = true
			tags = append(tags, n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	for _, n := range nodes {
		visit(n)
	}
	return tags
}
