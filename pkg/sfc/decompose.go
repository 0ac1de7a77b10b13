// Package sfc splits single-file components into their template, script,
// and style sections, and parses template markup into a node tree.
package sfc

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// Block is one raw section of a component file.
type Block struct {
	// Content is the verbatim text between the section's open and close tags.
	Content string
	// Lang is the section's lang attribute, empty when absent.
	Lang string
}

// File is the decomposed form of a component file. Any section may be
// missing; Styles holds zero or more style blocks in source order.
type File struct {
	Script      *Block
	ScriptSetup *Block
	Template    *Block
	Styles      []Block
}

// sectionTags are the top-level block elements of a component file.
var sectionTags = map[string]bool{
	"template": true,
	"script":   true,
	"style":    true,
}

// Decompose splits a component file into its top-level sections.
//
// Only top-level template/script/style elements start a section; nested
// occurrences (a <template> inside the template) stay part of the enclosing
// section's content. Script and style contents are raw text, so markup-like
// text inside them does not confuse the tokenizer.
func Decompose(source []byte) (*File, error) {
	z := html.NewTokenizer(bytes.NewReader(source))
	file := &File{}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return file, nil
			}
			return nil, fmt.Errorf("tokenize component file: %w", z.Err())
		}
		if tt != html.StartTagToken && tt != html.SelfClosingTagToken {
			continue
		}

		tok := z.Token()
		if !sectionTags[tok.Data] {
			continue
		}

		block := Block{Lang: attrValue(tok, "lang")}
		if tt == html.StartTagToken {
			content, err := captureSection(z, tok.Data)
			if err != nil {
				return nil, err
			}
			block.Content = content
		}

		switch tok.Data {
		case "template":
			if file.Template == nil {
				file.Template = &block
			}
		case "script":
			if hasAttr(tok, "setup") {
				if file.ScriptSetup == nil {
					file.ScriptSetup = &block
				}
			} else if file.Script == nil {
				file.Script = &block
			}
		case "style":
			file.Styles = append(file.Styles, block)
		}
	}
}

// captureSection accumulates raw token bytes until the matching close tag.
// Nested same-name tags are depth-counted so <template> blocks may contain
// inner templates.
func captureSection(z *html.Tokenizer, tag string) (string, error) {
	var buf bytes.Buffer
	depth := 1

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if errors.Is(z.Err(), io.EOF) {
				return "", fmt.Errorf("unterminated <%s> section", tag)
			}
			return "", fmt.Errorf("tokenize <%s> section: %w", tag, z.Err())
		}

		// TagName would case-fold the tokenizer's buffer in place, and Raw
		// returns a view into that same buffer, so the name is read from a
		// copy of the raw bytes to keep the captured content verbatim.
		switch tt {
		case html.StartTagToken:
			if rawTagIs(z.Raw(), tag) {
				depth++
			}
		case html.EndTagToken:
			if rawTagIs(z.Raw(), tag) {
				depth--
				if depth == 0 {
					return buf.String(), nil
				}
			}
		}
		buf.Write(z.Raw())
	}
}

// rawTagIs reports whether raw is an open or close tag for name, matching
// the tag name case-insensitively without mutating raw.
func rawTagIs(raw []byte, name string) bool {
	i := 1 // skip '<'
	if i < len(raw) && raw[i] == '/' {
		i++
	}
	j := i
	for j < len(raw) {
		c := raw[j]
		if c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '/' || c == '>' {
			break
		}
		j++
	}
	return bytes.EqualFold(raw[i:j], []byte(name))
}

func attrValue(tok html.Token, name string) string {
	for _, a := range tok.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

func hasAttr(tok html.Token, name string) bool {
	for _, a := range tok.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}
