// Copyright 2024 Ross Light
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
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"
)

// ParseXML parses an XML document from r.
// The returned nodes are the top-level nodes of the document.
//
// Character data consisting only of whitespace is returned as [WhitespaceKind],
// or as [SignificantWhitespaceKind] inside an element with xml:space="preserve".
// The XML declaration is returned as [XMLDeclarationKind].
// The parser is not strict about undefined entities,
// so common HTML entities like &nbsp; are accepted.
// Documents that declare an encoding other than UTF-8 are decoded
// with the WHATWG encoding labels.
func ParseXML(r io.Reader) ([]*Node, error) {
	type openElement struct {
		name     string
		attrs    []Attribute
		children []*Node
		preserve bool
	}

	d := xml.NewDecoder(r)
	d.Strict = false
	d.AutoClose = xml.HTMLAutoClose
	d.Entity = xml.HTMLEntity
	d.CharsetReader = charset.NewReaderLabel

	root := &openElement{}
	stack := []*openElement{root}
	for {
		tok, err := d.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("parse xml: %w", err)
		}
		top := stack[len(stack)-1]
		switch tok := tok.(type) {
		case xml.StartElement:
			el := &openElement{
				name:     tok.Name.Local,
				preserve: top.preserve,
			}
			for _, a := range tok.Attr {
				el.attrs = append(el.attrs, Attribute{Key: attrName(a.Name), Val: a.Value})
				if (a.Name.Space == "xml" || a.Name.Space == xmlNamespace) && a.Name.Local == "space" {
					el.preserve = a.Value == "preserve"
				}
			}
			stack = append(stack, el)
		case xml.EndElement:
			if len(stack) == 1 {
				return nil, fmt.Errorf("parse xml: unexpected end element %s", tok.Name.Local)
			}
			stack = stack[:len(stack)-1]
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, NewElement(top.name, top.attrs, top.children...))
		case xml.CharData:
			s := string(tok)
			var n *Node
			switch {
			case strings.TrimSpace(s) != "":
				n = NewText(s)
			case top.preserve:
				n = NewSignificantWhitespace(s)
			default:
				n = NewWhitespace(s)
			}
			top.children = append(top.children, n)
		case xml.Comment:
			top.children = append(top.children, NewComment(string(tok)))
		case xml.ProcInst:
			if tok.Target == "xml" {
				top.children = append(top.children, NewXMLDeclaration(string(tok.Inst)))
			} else {
				top.children = append(top.children, NewProcessingInstruction(tok.Target, string(tok.Inst)))
			}
		case xml.Directive:
			if name, value, ok := parseDoctype(string(tok)); ok {
				top.children = append(top.children, NewDocumentType(name, value))
			}
		}
	}
	if len(stack) > 1 {
		return nil, fmt.Errorf("parse xml: unclosed element %s", stack[len(stack)-1].name)
	}
	return root.children, nil
}

const xmlNamespace = "http://www.w3.org/XML/1998/namespace"

// attrName returns the attribute's name as written,
// for the prefixes the decoder does not translate to a namespace URL.
func attrName(name xml.Name) string {
	switch name.Space {
	case "":
		return name.Local
	case "xmlns", "xml":
		return name.Space + ":" + name.Local
	case xmlNamespace:
		return "xml:" + name.Local
	default:
		return name.Local
	}
}

func parseDoctype(directive string) (name, value string, ok bool) {
	rest, ok := cutPrefixFold(directive, "DOCTYPE")
	if !ok {
		return "", "", false
	}
	rest = strings.TrimSpace(rest)
	name, value, _ = strings.Cut(rest, " ")
	return name, strings.TrimSpace(value), true
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) < len(prefix) || !strings.EqualFold(s[:len(prefix)], prefix) {
		return s, false
	}
	return s[len(prefix):], true
}
