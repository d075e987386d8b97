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

//go:generate stringer -type=EscapeMode,PreMode,UnknownElementMode,Target -output=markdown_string.go

package xmlconverter

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/atom"
)

// EscapeMode selects the characters escaped in text.
type EscapeMode int

const (
	// HTMLAndCustom escapes the HTML special characters '<', '>', and '&'
	// along with the custom escapes, which take precedence.
	HTMLAndCustom EscapeMode = iota
	// CustomOnly escapes only the custom escapes.
	CustomOnly
)

// PreMode selects how <pre> elements are written.
type PreMode int

const (
	// Fenced writes code blocks between ``` fences.
	Fenced PreMode = iota
	// Indented writes code blocks indented by four spaces.
	Indented
)

// UnknownElementMode selects how elements without a matching converter are handled.
type UnknownElementMode int

const (
	// PassThrough converts the element's content and adds nothing.
	PassThrough UnknownElementMode = iota
	// StripTags converts the element's content without the element's tags.
	StripTags
	// RemoveElements drops the element and its content.
	RemoveElements
)

// A Target is a family of element converters
// that can be left out of a Markdown configuration.
type Target uint32

const (
	Headings Target = 1 << iota
	Paragraphs
	Linebreaks
	Lists
	HorizontalRules
	Blockquotes
	Pre
	Hyperlinks
	Images
	Bold
	Italic
	InlineCode
	Strikethrough
	Highlight
	Subscript
	Superscript
	TagRemoval
	ElementRemoval

	// AllTargets is the set of every Target.
	AllTargets = ElementRemoval<<1 - 1
)

// A TargetSet is a set of [Target] values.
type TargetSet = Target

// Has reports whether every target in t2 is in the set t.
func (t Target) Has(t2 Target) bool {
	return t&t2 == t2
}

// MarkdownOptions is the set of parameters
// used to assemble a Markdown configuration.
// The zero value converts with every element converter enabled,
// HTML escaping, fenced code blocks,
// and unknown elements passed through.
type MarkdownOptions struct {
	EscapeMode EscapeMode
	// CustomEscapes are added to (or replace) the escaped characters.
	CustomEscapes EscapeTable
	PreMode       PreMode
	// UnknownElementMode determines how elements without a converter are handled.
	UnknownElementMode UnknownElementMode
	// Exclude is the set of element converter families to leave out.
	Exclude TargetSet
	// If NormalizeUnicode is true, text is converted to
	// Unicode Normalization Form C.
	NormalizeUnicode bool
	// NewLine is the line terminator to write.
	// If empty, [DefaultNewLine] is used.
	NewLine string
}

var (
	tagRemovalNames = []string{
		atom.Html.String(),
		atom.Body.String(),
		atom.Ul.String(),
		atom.Ol.String(),
		atom.Menu.String(),
		atom.Div.String(),
		atom.Span.String(),
	}
	elementRemovalNames = []string{
		atom.Script.String(),
		atom.Style.String(),
		atom.Head.String(),
		atom.Frame.String(),
		atom.Meta.String(),
		atom.Iframe.String(),
		atom.Frameset.String(),
	}
)

// Build assembles the converters for Markdown output.
// It returns an error wrapping [ErrInvalidOption]
// if any mode is not one of the defined constants.
//
// Element converters are registered in a fixed order, since the first match wins:
// the pre content converter comes first so that nothing inside <pre> is converted,
// and the catch-all removal converters come last.
func (mo *MarkdownOptions) Build() (*Options, error) {
	if mo == nil {
		mo = new(MarkdownOptions)
	}
	var escapes EscapeTable
	switch mo.EscapeMode {
	case HTMLAndCustom:
		escapes = MergeEscapes(HTMLEscapes(), mo.CustomEscapes)
	case CustomOnly:
		escapes = MergeEscapes(nil, mo.CustomEscapes)
	default:
		return nil, fmt.Errorf("%w: escape mode %v", ErrInvalidOption, mo.EscapeMode)
	}
	var preConverter ElementConverter
	switch mo.PreMode {
	case Fenced:
		preConverter = FencedPreConverter{}
	case Indented:
		preConverter = IndentedPreConverter{}
	default:
		return nil, fmt.Errorf("%w: pre mode %v", ErrInvalidOption, mo.PreMode)
	}
	var defaultElement ElementConverter
	switch mo.UnknownElementMode {
	case PassThrough:
		defaultElement = NoOpElementConverter{}
	case StripTags:
		defaultElement = NewUnknownElementConverter(true)
	case RemoveElements:
		defaultElement = NewUnknownElementConverter(false)
	default:
		return nil, fmt.Errorf("%w: unknown element mode %v", ErrInvalidOption, mo.UnknownElementMode)
	}
	if mo.Exclude&^AllTargets != 0 {
		return nil, fmt.Errorf("%w: exclude %v", ErrInvalidOption, mo.Exclude)
	}

	remove := NodeRemovingConverter{}
	opts := &Options{
		Text:                  NewTextConverter(escapes, mo.NormalizeUnicode),
		CDATA:                 remove,
		Comment:               remove,
		DocumentType:          remove,
		ProcessingInstruction: remove,
		XMLDeclaration:        remove,
		SignificantWhitespace: remove,
		Whitespace:            remove,
		DefaultElement:        defaultElement,
		NewLine:               mo.NewLine,
	}
	add := func(t Target, converters ...ElementConverter) {
		if !mo.Exclude.Has(t) {
			opts.Elements = append(opts.Elements, converters...)
		}
	}
	add(Pre, PreContentConverter{})
	add(Headings,
		NewBlockElementConverter("# ", atom.H1.String()),
		NewBlockElementConverter("## ", atom.H2.String()),
		NewBlockElementConverter("### ", atom.H3.String()),
		NewBlockElementConverter("#### ", atom.H4.String()),
		NewBlockElementConverter("##### ", atom.H5.String()),
		NewBlockElementConverter("###### ", atom.H6.String()),
	)
	add(Paragraphs, ParagraphConverter{})
	add(Linebreaks, LinebreakConverter{})
	add(Lists, OrderedListItemConverter{}, new(UnorderedListItemConverter))
	add(HorizontalRules, NewBlockElementConverter("---", atom.Hr.String()))
	add(Blockquotes, BlockquoteConverter{})
	add(Pre, preConverter)
	add(Hyperlinks, HyperlinkConverter{})
	add(Images, ImageConverter{})
	add(Bold, NewInlineElementConverter("**", "**", atom.Strong.String(), atom.B.String()))
	add(Italic, NewInlineElementConverter("*", "*", atom.Em.String(), atom.I.String()))
	add(InlineCode, NewInlineElementConverter("`", "`",
		atom.Code.String(), atom.Kbd.String(), atom.Samp.String(), atom.Var.String()))
	add(Strikethrough, NewInlineElementConverter("~~", "~~", atom.Del.String()))
	add(Highlight, NewInlineElementConverter("==", "==", atom.Mark.String()))
	add(Subscript, NewInlineElementConverter("~", "~", atom.Sub.String()))
	add(Superscript, NewInlineElementConverter("^", "^", atom.Sup.String()))
	add(TagRemoval, NewTagRemovingElementConverter(tagRemovalNames...))
	add(ElementRemoval, NewElementRemovingConverter(elementRemovalNames...))
	return opts, nil
}

// NewMarkdown returns a [Converter] that writes Markdown.
// A nil opts is treated the same as the zero value.
func NewMarkdown(opts *MarkdownOptions) (*Converter, error) {
	o, err := opts.Build()
	if err != nil {
		return nil, err
	}
	return New(o)
}

// ConvertHTML parses the HTML fragment read from r
// and writes its Markdown conversion to w.
func ConvertHTML(w io.Writer, r io.Reader, opts *MarkdownOptions) error {
	c, err := NewMarkdown(opts)
	if err != nil {
		return err
	}
	nodes, err := ParseHTMLFragment(r)
	if err != nil {
		return err
	}
	return c.Convert(w, nodes...)
}

// ParseEscapeMode returns the [EscapeMode] with the given name.
// Names are matched case-insensitively
// and may omit the word separators ("html-and-custom").
func ParseEscapeMode(s string) (EscapeMode, error) {
	for m := HTMLAndCustom; m <= CustomOnly; m++ {
		if matchModeName(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: escape mode %q", ErrInvalidOption, s)
}

// ParsePreMode returns the [PreMode] with the given name.
func ParsePreMode(s string) (PreMode, error) {
	for m := Fenced; m <= Indented; m++ {
		if matchModeName(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: pre mode %q", ErrInvalidOption, s)
}

// ParseUnknownElementMode returns the [UnknownElementMode] with the given name.
func ParseUnknownElementMode(s string) (UnknownElementMode, error) {
	for m := PassThrough; m <= RemoveElements; m++ {
		if matchModeName(s, m.String()) {
			return m, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown element mode %q", ErrInvalidOption, s)
}

// ParseTargets returns the set of targets named in the list.
func ParseTargets(names []string) (TargetSet, error) {
	var set TargetSet
	for _, name := range names {
		found := false
		for t := Headings; t <= ElementRemoval; t <<= 1 {
			if matchModeName(name, t.String()) {
				set |= t
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("%w: target %q", ErrInvalidOption, name)
		}
	}
	return set, nil
}

// matchModeName compares s to a Go identifier,
// ignoring case, hyphens, and underscores.
func matchModeName(s, ident string) bool {
	s = strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
	return strings.EqualFold(s, ident)
}

func (m *EscapeMode) UnmarshalText(text []byte) error {
	var err error
	*m, err = ParseEscapeMode(string(text))
	return err
}

func (m *PreMode) UnmarshalText(text []byte) error {
	var err error
	*m, err = ParsePreMode(string(text))
	return err
}

func (m *UnknownElementMode) UnmarshalText(text []byte) error {
	var err error
	*m, err = ParseUnknownElementMode(string(text))
	return err
}
