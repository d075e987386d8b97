// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package xmlconverter

import (
	"fmt"
	"io"
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var whitespaceRE = regexp.MustCompile(`\s+`)

// ParseHTML parses a complete HTML document from r.
// The returned nodes are the children of the document,
// typically a document type declaration followed by the <html> element.
//
// Runs of whitespace in text are collapsed to a single space,
// except inside <pre>, <textarea>, and <listing> elements.
// Whitespace next to a block-level element or a <br>
// (or at the edge of a block-level parent) is dropped from text,
// and whitespace-only text in such a position is returned as [WhitespaceKind].
// Whitespace-only text between inline siblings becomes a single space.
func ParseHTML(r io.Reader) ([]*Node, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return fromHTMLSiblings(htmlChildren(doc), nil, false), nil
}

// ParseHTMLFragment parses an HTML fragment from r
// as if it were the content of a <body> element.
// Whitespace is handled as in [ParseHTML].
func ParseHTMLFragment(r io.Reader) ([]*Node, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Body,
		Data:     atom.Body.String(),
	}
	fragment, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return fromHTMLSiblings(fragment, body, false), nil
}

// blockAtoms are the elements that start and end a line of output.
var blockAtoms = map[atom.Atom]bool{
	atom.Address:    true,
	atom.Article:    true,
	atom.Aside:      true,
	atom.Base:       true,
	atom.Blockquote: true,
	atom.Body:       true,
	atom.Caption:    true,
	atom.Center:     true,
	atom.Dd:         true,
	atom.Details:    true,
	atom.Dialog:     true,
	atom.Dir:        true,
	atom.Div:        true,
	atom.Dl:         true,
	atom.Dt:         true,
	atom.Fieldset:   true,
	atom.Figcaption: true,
	atom.Figure:     true,
	atom.Footer:     true,
	atom.Form:       true,
	atom.H1:         true,
	atom.H2:         true,
	atom.H3:         true,
	atom.H4:         true,
	atom.H5:         true,
	atom.H6:         true,
	atom.Head:       true,
	atom.Header:     true,
	atom.Hgroup:     true,
	atom.Hr:         true,
	atom.Html:       true,
	atom.Legend:     true,
	atom.Li:         true,
	atom.Link:       true,
	atom.Listing:    true,
	atom.Main:       true,
	atom.Menu:       true,
	atom.Meta:       true,
	atom.Nav:        true,
	atom.Ol:         true,
	atom.P:          true,
	atom.Pre:        true,
	atom.Script:     true,
	atom.Section:    true,
	atom.Style:      true,
	atom.Summary:    true,
	atom.Table:      true,
	atom.Tbody:      true,
	atom.Td:         true,
	atom.Template:   true,
	atom.Tfoot:      true,
	atom.Th:         true,
	atom.Thead:      true,
	atom.Title:      true,
	atom.Tr:         true,
	atom.Ul:         true,
}

func htmlChildren(hn *html.Node) []*html.Node {
	var children []*html.Node
	for c := hn.FirstChild; c != nil; c = c.NextSibling {
		children = append(children, c)
	}
	return children
}

// fromHTMLSiblings converts the children of parent.
// parent is nil for the children of a document.
func fromHTMLSiblings(hns []*html.Node, parent *html.Node, inPre bool) []*Node {
	var nodes []*Node
	for i, hn := range hns {
		var n *Node
		if hn.Type == html.TextNode && !inPre {
			n = fromHTMLText(hn.Data,
				lineBoundary(hns, i, -1, parent),
				lineBoundary(hns, i, 1, parent))
		} else {
			n = fromHTML(hn, inPre)
		}
		if n != nil {
			nodes = append(nodes, n)
		}
	}
	return nodes
}

// lineBoundary reports whether the nearest sibling of hns[i]
// in direction dir (ignoring comments) is a block-level element or a <br>.
// Past the first or last sibling, the parent decides.
func lineBoundary(hns []*html.Node, i, dir int, parent *html.Node) bool {
	for j := i + dir; 0 <= j && j < len(hns); j += dir {
		switch sib := hns[j]; sib.Type {
		case html.CommentNode:
			continue
		case html.ElementNode:
			return blockAtoms[sib.DataAtom] || sib.DataAtom == atom.Br
		default:
			return false
		}
	}
	return parent == nil || blockAtoms[parent.DataAtom]
}

// fromHTMLText converts text outside preformatted content.
// before and after report whether the text starts or ends at a line boundary.
func fromHTMLText(data string, before, after bool) *Node {
	text := whitespaceRE.ReplaceAllString(data, " ")
	if strings.Trim(text, " ") == "" {
		if before || after || text == "" {
			return NewWhitespace(data)
		}
		return NewText(" ")
	}
	if before {
		text = strings.TrimLeft(text, " ")
	}
	if after {
		text = strings.TrimRight(text, " ")
	}
	return NewText(text)
}

func fromHTML(hn *html.Node, inPre bool) *Node {
	switch hn.Type {
	case html.ElementNode:
		var attrs []Attribute
		for _, a := range hn.Attr {
			key := a.Key
			if a.Namespace != "" {
				key = a.Namespace + ":" + key
			}
			attrs = append(attrs, Attribute{Key: key, Val: a.Val})
		}
		switch hn.DataAtom {
		case atom.Pre, atom.Textarea, atom.Listing:
			inPre = true
		}
		return NewElement(hn.Data, attrs, fromHTMLSiblings(htmlChildren(hn), hn, inPre)...)
	case html.TextNode:
		return NewText(hn.Data)
	case html.CommentNode:
		return NewComment(hn.Data)
	case html.DoctypeNode:
		var ids []string
		for _, a := range hn.Attr {
			ids = append(ids, fmt.Sprintf("%s %q", strings.ToUpper(a.Key), a.Val))
		}
		return NewDocumentType(hn.Data, strings.Join(ids, " "))
	default:
		return nil
	}
}
