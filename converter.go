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

// Package xmlconverter converts parsed XML and HTML document trees to text.
//
// A [Converter] walks a tree of [Node] values and hands each node
// to the converter configured for its kind.
// Elements are matched against an ordered list of [ElementConverter] values,
// where the first match wins.
// [MarkdownOptions] assembles a configuration that produces Markdown.
package xmlconverter

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// A NodeConverter writes the output for one node.
type NodeConverter interface {
	// ConvertBefore is called before the node's children are converted.
	// If it returns false, the children are skipped.
	ConvertBefore(ctx *Context, n *Node) (descend bool)
	// ConvertAfter is called after the node's children are converted,
	// regardless of whether ConvertBefore descended.
	ConvertAfter(ctx *Context, n *Node)
}

// An ElementConverter is a [NodeConverter] for elements it matches.
type ElementConverter interface {
	NodeConverter
	// Match reports whether the converter handles the element.
	// The context describes the element's ancestors.
	Match(ctx *Context, el *Node) bool
}

// Options is the set of converters used by a [Converter].
// Every field must be set.
// Options must not be modified after being passed to [New].
type Options struct {
	Text                  NodeConverter
	CDATA                 NodeConverter
	Comment               NodeConverter
	DocumentType          NodeConverter
	ProcessingInstruction NodeConverter
	XMLDeclaration        NodeConverter
	SignificantWhitespace NodeConverter
	Whitespace            NodeConverter

	// Elements is searched in order for the first converter
	// that matches an element.
	Elements []ElementConverter
	// DefaultElement converts elements that no converter in Elements matches.
	DefaultElement ElementConverter

	// NewLine is the line terminator to write.
	// If empty, [DefaultNewLine] is used.
	NewLine string
}

// ErrInvalidOption is returned when a configuration cannot be used.
var ErrInvalidOption = errors.New("invalid converter option")

func (opts *Options) validate() error {
	var missing []string
	check := func(name string, c NodeConverter) {
		if c == nil {
			missing = append(missing, name)
		}
	}
	check("Text", opts.Text)
	check("CDATA", opts.CDATA)
	check("Comment", opts.Comment)
	check("DocumentType", opts.DocumentType)
	check("ProcessingInstruction", opts.ProcessingInstruction)
	check("XMLDeclaration", opts.XMLDeclaration)
	check("SignificantWhitespace", opts.SignificantWhitespace)
	check("Whitespace", opts.Whitespace)
	if opts.DefaultElement == nil {
		missing = append(missing, "DefaultElement")
	}
	for i, c := range opts.Elements {
		if c == nil {
			missing = append(missing, fmt.Sprintf("Elements[%d]", i))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrInvalidOption, strings.Join(missing, ", "))
	}
	return nil
}

// A Converter converts document trees to text.
// A Converter is safe to use from multiple goroutines
// as long as its converters are.
type Converter struct {
	opts Options
}

// New returns a new [Converter] with the given options.
// It returns an error if any converter is missing.
func New(opts *Options) (*Converter, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	c := &Converter{opts: *opts}
	c.opts.Elements = append([]ElementConverter(nil), opts.Elements...)
	return c, nil
}

// Convert writes the conversion of the given nodes to w.
// It returns the first error returned by w, if any.
func (c *Converter) Convert(w io.Writer, nodes ...*Node) error {
	ctx := newContext(NewTracker(w, c.opts.NewLine))

	type frame struct {
		node *Node
		conv NodeConverter
	}
	var open []frame
	walkOpts := &WalkOptions{
		Pre: func(cur *Cursor) bool {
			if ctx.Err() != nil {
				return false
			}
			n := cur.Node()
			conv := c.converterFor(ctx, n)
			if !conv.ConvertBefore(ctx, n) {
				conv.ConvertAfter(ctx, n)
				return false
			}
			open = append(open, frame{n, conv})
			ctx.push(n)
			return true
		},
		Post: func(cur *Cursor) bool {
			f := open[len(open)-1]
			open = open[:len(open)-1]
			ctx.pop()
			f.conv.ConvertAfter(ctx, f.node)
			return ctx.Err() == nil
		},
	}
	for _, n := range nodes {
		if n == nil {
			continue
		}
		if !Walk(n, walkOpts) || ctx.Err() != nil {
			break
		}
	}
	return ctx.Err()
}

// ConvertString returns the conversion of the given nodes as a string.
func (c *Converter) ConvertString(nodes ...*Node) (string, error) {
	sb := new(strings.Builder)
	if err := c.Convert(sb, nodes...); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (c *Converter) converterFor(ctx *Context, n *Node) NodeConverter {
	switch k := n.Kind(); k {
	case ElementKind:
		for _, ec := range c.opts.Elements {
			if ec.Match(ctx, n) {
				return ec
			}
		}
		return c.opts.DefaultElement
	case TextKind:
		return c.opts.Text
	case CDATAKind:
		return c.opts.CDATA
	case CommentKind:
		return c.opts.Comment
	case DocumentTypeKind:
		return c.opts.DocumentType
	case ProcessingInstructionKind:
		return c.opts.ProcessingInstruction
	case XMLDeclarationKind:
		return c.opts.XMLDeclaration
	case SignificantWhitespaceKind:
		return c.opts.SignificantWhitespace
	case WhitespaceKind:
		return c.opts.Whitespace
	default:
		// Nodes can only be built with this package's constructors.
		panic(fmt.Sprintf("xmlconverter: unknown node kind %v", k))
	}
}
