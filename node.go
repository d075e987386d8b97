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

//go:generate stringer -type=NodeKind -output=node_string.go

package xmlconverter

import "strings"

// NodeKind is an enumeration of the types of nodes in a document tree.
type NodeKind uint8

const (
	ElementKind NodeKind = 1 + iota
	TextKind
	CDATAKind
	CommentKind
	DocumentTypeKind
	ProcessingInstructionKind
	XMLDeclarationKind
	SignificantWhitespaceKind
	WhitespaceKind
)

// An Attribute is a single name/value pair on an element.
type Attribute struct {
	Key string
	Val string
}

// A Node is a single node in a parsed document tree.
// The set of node kinds is closed:
// nodes can only be created with the New* functions in this package.
// A converter never modifies the tree it reads,
// so a tree may be shared by concurrent conversions.
type Node struct {
	kind     NodeKind
	name     string
	value    string
	attrs    []Attribute
	children []*Node
}

// NewElement returns a new element node.
// Nil children are ignored.
func NewElement(name string, attrs []Attribute, children ...*Node) *Node {
	n := &Node{
		kind:  ElementKind,
		name:  name,
		attrs: attrs,
	}
	for _, c := range children {
		if c != nil {
			n.children = append(n.children, c)
		}
	}
	return n
}

// NewText returns a new text node.
func NewText(text string) *Node {
	return &Node{kind: TextKind, value: text}
}

// NewCDATA returns a new CDATA section node.
func NewCDATA(text string) *Node {
	return &Node{kind: CDATAKind, value: text}
}

// NewComment returns a new comment node.
func NewComment(text string) *Node {
	return &Node{kind: CommentKind, value: text}
}

// NewDocumentType returns a new document type declaration node.
// value is the remainder of the declaration after the name.
func NewDocumentType(name, value string) *Node {
	return &Node{kind: DocumentTypeKind, name: name, value: value}
}

// NewProcessingInstruction returns a new processing instruction node.
func NewProcessingInstruction(target, inst string) *Node {
	return &Node{kind: ProcessingInstructionKind, name: target, value: inst}
}

// NewXMLDeclaration returns a new XML declaration node.
func NewXMLDeclaration(inst string) *Node {
	return &Node{kind: XMLDeclarationKind, name: "xml", value: inst}
}

// NewSignificantWhitespace returns a new node holding whitespace
// that is significant to the document.
func NewSignificantWhitespace(space string) *Node {
	return &Node{kind: SignificantWhitespaceKind, value: space}
}

// NewWhitespace returns a new node holding insignificant whitespace,
// such as the indentation between elements.
func NewWhitespace(space string) *Node {
	return &Node{kind: WhitespaceKind, value: space}
}

// Kind returns the type of node
// or zero if the node is nil.
func (n *Node) Kind() NodeKind {
	if n == nil {
		return 0
	}
	return n.kind
}

// Name returns the tag name of an element,
// the target of a processing instruction,
// or the name of a document type declaration.
// It returns the empty string for all other nodes.
func (n *Node) Name() string {
	if n == nil {
		return ""
	}
	return n.name
}

// Value returns the content of a non-element node.
func (n *Node) Value() string {
	if n == nil {
		return ""
	}
	return n.value
}

// Attrs returns the element's attributes in document order.
func (n *Node) Attrs() []Attribute {
	if n == nil {
		return nil
	}
	return n.attrs
}

// Attr returns the value of the first attribute with the given key.
// Keys are compared case-insensitively.
func (n *Node) Attr(key string) (val string, ok bool) {
	for _, a := range n.Attrs() {
		if strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// ChildCount returns the number of children the node has.
// Calling ChildCount on nil returns 0.
func (n *Node) ChildCount() int {
	if n == nil {
		return 0
	}
	return len(n.children)
}

// Child returns the i'th child of the node.
func (n *Node) Child(i int) *Node {
	return n.children[i]
}

// Children returns the node's children.
// The caller must not modify the returned slice.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}
	return n.children
}

// IsElement reports whether n is an element with the given tag name,
// compared case-insensitively.
func (n *Node) IsElement(name string) bool {
	return n.Kind() == ElementKind && strings.EqualFold(n.name, name)
}

// TextContent returns the concatenation of the values
// of all text, CDATA, and whitespace descendants of n.
func (n *Node) TextContent() string {
	sb := new(strings.Builder)
	Walk(n, &WalkOptions{
		Pre: func(c *Cursor) bool {
			switch c.Node().Kind() {
			case TextKind, CDATAKind, SignificantWhitespaceKind, WhitespaceKind:
				sb.WriteString(c.Node().Value())
			}
			return true
		},
	})
	return sb.String()
}
