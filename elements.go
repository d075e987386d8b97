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
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// TextConverter writes the content of text nodes.
// Outside of preformatted content, characters are replaced
// according to the converter's escape table.
type TextConverter struct {
	escaper   *Escaper
	normalize bool
}

// NewTextConverter returns a new [TextConverter] that escapes with the given table.
// If normalizeUnicode is true, text is converted to Unicode Normalization Form C
// before escaping.
func NewTextConverter(escapes EscapeTable, normalizeUnicode bool) *TextConverter {
	return &TextConverter{
		escaper:   NewEscaper(escapes),
		normalize: normalizeUnicode,
	}
}

// ConvertBefore writes the node's text.
func (tc *TextConverter) ConvertBefore(ctx *Context, n *Node) bool {
	s := n.Value()
	if tc.normalize {
		s = norm.NFC.String(s)
	}
	if !ctx.InPre() {
		s = tc.escaper.Escape(s)
	}
	ctx.WriteString(s)
	return false
}

func (tc *TextConverter) ConvertAfter(ctx *Context, n *Node) {}

// NodeRemovingConverter writes nothing for a node or its children.
type NodeRemovingConverter struct{}

func (NodeRemovingConverter) ConvertBefore(ctx *Context, n *Node) bool { return false }
func (NodeRemovingConverter) ConvertAfter(ctx *Context, n *Node)       {}

// RawNodeConverter writes a node's value verbatim.
// It can be used to keep the content of CDATA sections,
// for example.
type RawNodeConverter struct{}

func (RawNodeConverter) ConvertBefore(ctx *Context, n *Node) bool {
	ctx.WriteString(n.Value())
	return false
}

func (RawNodeConverter) ConvertAfter(ctx *Context, n *Node) {}

type nameSet map[string]struct{}

func newNameSet(names []string) nameSet {
	set := make(nameSet, len(names))
	for _, name := range names {
		set[strings.ToLower(name)] = struct{}{}
	}
	return set
}

func (set nameSet) match(el *Node) bool {
	if el.Kind() != ElementKind {
		return false
	}
	_, ok := set[strings.ToLower(el.Name())]
	return ok
}

// BlockElementConverter converts elements to a block
// separated from the surrounding content by blank lines
// and started with a fixed prefix, like "# " for a heading.
type BlockElementConverter struct {
	prefix string
	names  nameSet
}

// NewBlockElementConverter returns a new [BlockElementConverter]
// for elements with the given tag names.
func NewBlockElementConverter(prefix string, names ...string) *BlockElementConverter {
	return &BlockElementConverter{prefix: prefix, names: newNameSet(names)}
}

func (bc *BlockElementConverter) Match(ctx *Context, el *Node) bool {
	return bc.names.match(el)
}

func (bc *BlockElementConverter) ConvertBefore(ctx *Context, el *Node) bool {
	ctx.WriteBlockSeparator()
	ctx.WriteString(bc.prefix)
	return true
}

func (bc *BlockElementConverter) ConvertAfter(ctx *Context, el *Node) {
	ctx.EndLine()
}

// ParagraphConverter converts <p> elements.
type ParagraphConverter struct{}

func (ParagraphConverter) Match(ctx *Context, el *Node) bool {
	return el.IsElement("p")
}

func (ParagraphConverter) ConvertBefore(ctx *Context, el *Node) bool {
	ctx.WriteBlockSeparator()
	return true
}

func (ParagraphConverter) ConvertAfter(ctx *Context, el *Node) {
	ctx.EndLine()
}

// LinebreakConverter converts <br> elements to a line terminator.
type LinebreakConverter struct{}

func (LinebreakConverter) Match(ctx *Context, el *Node) bool {
	return el.IsElement("br")
}

func (LinebreakConverter) ConvertBefore(ctx *Context, el *Node) bool {
	ctx.WriteLn()
	return false
}

func (LinebreakConverter) ConvertAfter(ctx *Context, el *Node) {}

// OrderedListItemConverter converts <li> elements inside an <ol>
// to numbered items.
// Numbering starts at the list's start attribute, or 1.
type OrderedListItemConverter struct{}

func (OrderedListItemConverter) Match(ctx *Context, el *Node) bool {
	return el.IsElement("li") && ctx.Parent().IsElement("ol")
}

func (OrderedListItemConverter) ConvertBefore(ctx *Context, el *Node) bool {
	list := ctx.Parent()
	start := 1
	if s, ok := list.Attr("start"); ok {
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			start = n
		}
	}
	n := ctx.NextOrdinal(listDepth(ctx), list, start)
	startListItem(ctx, n == start, strconv.Itoa(n)+". ")
	return true
}

func (OrderedListItemConverter) ConvertAfter(ctx *Context, el *Node) {
	endListItem(ctx)
}

// UnorderedListItemConverter converts <li> elements
// that are not inside an <ol> to bulleted items.
type UnorderedListItemConverter struct {
	// Bullet is the item marker. If empty, "-" is used.
	Bullet string
}

func (uc *UnorderedListItemConverter) Match(ctx *Context, el *Node) bool {
	return el.IsElement("li") && !ctx.Parent().IsElement("ol")
}

func (uc *UnorderedListItemConverter) ConvertBefore(ctx *Context, el *Node) bool {
	bullet := uc.Bullet
	if bullet == "" {
		bullet = "-"
	}
	list := ctx.Parent()
	if !isList(list) {
		// Items outside a list are numbered on their own.
		list = el
	}
	n := ctx.NextOrdinal(listDepth(ctx), list, 1)
	startListItem(ctx, n == 1, bullet+" ")
	return true
}

func (uc *UnorderedListItemConverter) ConvertAfter(ctx *Context, el *Node) {
	endListItem(ctx)
}

// listDepth returns the number of lists enclosing the current item.
func listDepth(ctx *Context) int {
	depth := 0
	for _, a := range ctx.Ancestors() {
		if isList(a) {
			depth++
		}
	}
	return depth
}

func isList(n *Node) bool {
	return n.IsElement("ol") || n.IsElement("ul") || n.IsElement("menu")
}

func startListItem(ctx *Context, first bool, marker string) {
	if first && !ctx.HasAncestor("li") {
		ctx.WriteBlockSeparator()
	} else {
		ctx.EndLine()
	}
	ctx.WriteString(marker)
	ctx.PushPrefix(strings.Repeat(" ", utf8.RuneCountInString(marker)))
	ctx.MarkContainerStart()
}

func endListItem(ctx *Context) {
	ctx.EndLine()
	ctx.PopPrefix()
}

// BlockquoteConverter converts <blockquote> elements.
// Every line of the content is prefixed with "> ".
type BlockquoteConverter struct{}

func (BlockquoteConverter) Match(ctx *Context, el *Node) bool {
	return el.IsElement("blockquote")
}

func (BlockquoteConverter) ConvertBefore(ctx *Context, el *Node) bool {
	ctx.WriteBlockSeparator()
	ctx.PushPrefix("> ")
	ctx.MarkContainerStart()
	return true
}

func (BlockquoteConverter) ConvertAfter(ctx *Context, el *Node) {
	ctx.EndLine()
	ctx.PopPrefix()
}

// PreContentConverter matches every element inside a <pre> element
// and writes only its content.
// It must come before all other element converters
// so that markup inside preformatted content is not converted.
type PreContentConverter struct{}

func (PreContentConverter) Match(ctx *Context, el *Node) bool {
	return ctx.HasAncestor("pre")
}

func (PreContentConverter) ConvertBefore(ctx *Context, el *Node) bool { return true }
func (PreContentConverter) ConvertAfter(ctx *Context, el *Node)       {}

// IndentedPreConverter converts <pre> elements to indented code blocks.
type IndentedPreConverter struct{}

func (IndentedPreConverter) Match(ctx *Context, el *Node) bool {
	return el.IsElement("pre")
}

func (IndentedPreConverter) ConvertBefore(ctx *Context, el *Node) bool {
	ctx.WriteBlockSeparator()
	ctx.PushPrefix("    ")
	ctx.EnterPre()
	return true
}

func (IndentedPreConverter) ConvertAfter(ctx *Context, el *Node) {
	ctx.EndLine()
	ctx.ExitPre()
	ctx.PopPrefix()
}

// FencedPreConverter converts <pre> elements to fenced code blocks.
// A language given as a "language-" or "lang-" class
// on the <pre> element or its <code> child is written after the opening fence.
type FencedPreConverter struct{}

func (FencedPreConverter) Match(ctx *Context, el *Node) bool {
	return el.IsElement("pre")
}

func (FencedPreConverter) ConvertBefore(ctx *Context, el *Node) bool {
	ctx.WriteBlockSeparator()
	ctx.WriteLine(codeFence(el) + codeLanguage(el))
	ctx.EnterPre()
	return true
}

func (FencedPreConverter) ConvertAfter(ctx *Context, el *Node) {
	ctx.EndLine()
	ctx.WriteLine(codeFence(el))
	ctx.ExitPre()
}

// codeFence returns a backtick fence
// longer than any run of backticks in the element's text.
func codeFence(el *Node) string {
	longest, run := 0, 0
	for _, c := range el.TextContent() {
		if c == '`' {
			run++
			longest = max(longest, run)
		} else {
			run = 0
		}
	}
	return strings.Repeat("`", max(3, longest+1))
}

func codeLanguage(pre *Node) string {
	if lang := classLanguage(pre); lang != "" {
		return lang
	}
	for _, c := range pre.Children() {
		if c.IsElement("code") {
			return classLanguage(c)
		}
	}
	return ""
}

func classLanguage(el *Node) string {
	class, _ := el.Attr("class")
	for _, word := range strings.Fields(class) {
		if lang, ok := strings.CutPrefix(word, "language-"); ok {
			return lang
		}
		if lang, ok := strings.CutPrefix(word, "lang-"); ok {
			return lang
		}
	}
	return ""
}

// HyperlinkConverter converts <a> elements with an href attribute
// to inline links.
// Anchors without an href are written as plain content.
type HyperlinkConverter struct{}

func (HyperlinkConverter) Match(ctx *Context, el *Node) bool {
	return el.IsElement("a")
}

func (HyperlinkConverter) ConvertBefore(ctx *Context, el *Node) bool {
	if _, ok := el.Attr("href"); ok {
		ctx.WriteString("[")
	}
	return true
}

func (HyperlinkConverter) ConvertAfter(ctx *Context, el *Node) {
	href, ok := el.Attr("href")
	if !ok {
		return
	}
	ctx.WriteString("](" + href + linkTitle(el) + ")")
}

// ImageConverter converts <img> elements to inline images.
type ImageConverter struct{}

func (ImageConverter) Match(ctx *Context, el *Node) bool {
	return el.IsElement("img")
}

func (ImageConverter) ConvertBefore(ctx *Context, el *Node) bool {
	alt, _ := el.Attr("alt")
	src, _ := el.Attr("src")
	ctx.WriteString("![" + alt + "](" + src + linkTitle(el) + ")")
	return false
}

func (ImageConverter) ConvertAfter(ctx *Context, el *Node) {}

func linkTitle(el *Node) string {
	title, ok := el.Attr("title")
	if !ok || title == "" {
		return ""
	}
	return ` "` + strings.ReplaceAll(title, `"`, `\"`) + `"`
}

// InlineElementConverter wraps the content of elements
// in fixed delimiters, like "**" for bold text.
type InlineElementConverter struct {
	before string
	after  string
	names  nameSet
}

// NewInlineElementConverter returns a new [InlineElementConverter]
// for elements with the given tag names.
func NewInlineElementConverter(before, after string, names ...string) *InlineElementConverter {
	return &InlineElementConverter{
		before: before,
		after:  after,
		names:  newNameSet(names),
	}
}

func (ic *InlineElementConverter) Match(ctx *Context, el *Node) bool {
	return ic.names.match(el)
}

func (ic *InlineElementConverter) ConvertBefore(ctx *Context, el *Node) bool {
	ctx.WriteString(ic.before)
	return true
}

func (ic *InlineElementConverter) ConvertAfter(ctx *Context, el *Node) {
	ctx.WriteString(ic.after)
}

// TagRemovingElementConverter writes the content of matching elements
// without any markup of its own.
type TagRemovingElementConverter struct {
	names nameSet
}

// NewTagRemovingElementConverter returns a new [TagRemovingElementConverter]
// for elements with the given tag names.
func NewTagRemovingElementConverter(names ...string) *TagRemovingElementConverter {
	return &TagRemovingElementConverter{names: newNameSet(names)}
}

func (tc *TagRemovingElementConverter) Match(ctx *Context, el *Node) bool {
	return tc.names.match(el)
}

func (tc *TagRemovingElementConverter) ConvertBefore(ctx *Context, el *Node) bool { return true }
func (tc *TagRemovingElementConverter) ConvertAfter(ctx *Context, el *Node)       {}

// ElementRemovingConverter writes nothing for matching elements
// or their content.
type ElementRemovingConverter struct {
	names nameSet
}

// NewElementRemovingConverter returns a new [ElementRemovingConverter]
// for elements with the given tag names.
func NewElementRemovingConverter(names ...string) *ElementRemovingConverter {
	return &ElementRemovingConverter{names: newNameSet(names)}
}

func (rc *ElementRemovingConverter) Match(ctx *Context, el *Node) bool {
	return rc.names.match(el)
}

func (rc *ElementRemovingConverter) ConvertBefore(ctx *Context, el *Node) bool { return false }
func (rc *ElementRemovingConverter) ConvertAfter(ctx *Context, el *Node)       {}

// NoOpElementConverter matches every element
// and converts its content without adding anything.
type NoOpElementConverter struct{}

func (NoOpElementConverter) Match(ctx *Context, el *Node) bool         { return true }
func (NoOpElementConverter) ConvertBefore(ctx *Context, el *Node) bool { return true }
func (NoOpElementConverter) ConvertAfter(ctx *Context, el *Node)       {}

// UnknownElementConverter matches every element.
// It either keeps the element's converted content
// or drops the element entirely.
type UnknownElementConverter struct {
	keepContent bool
}

// NewUnknownElementConverter returns a new [UnknownElementConverter].
func NewUnknownElementConverter(keepContent bool) *UnknownElementConverter {
	return &UnknownElementConverter{keepContent: keepContent}
}

func (uc *UnknownElementConverter) Match(ctx *Context, el *Node) bool { return true }

func (uc *UnknownElementConverter) ConvertBefore(ctx *Context, el *Node) bool {
	return uc.keepContent
}

func (uc *UnknownElementConverter) ConvertAfter(ctx *Context, el *Node) {}
