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
	"errors"
	"strings"
	"testing"
)

func TestBuildInvalidOptions(t *testing.T) {
	tests := []struct {
		name string
		opts *MarkdownOptions
	}{
		{"EscapeMode", &MarkdownOptions{EscapeMode: 2}},
		{"NegativeEscapeMode", &MarkdownOptions{EscapeMode: -1}},
		{"PreMode", &MarkdownOptions{PreMode: 7}},
		{"UnknownElementMode", &MarkdownOptions{UnknownElementMode: 3}},
		{"Exclude", &MarkdownOptions{Exclude: AllTargets + 1}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts, err := test.opts.Build()
			if !errors.Is(err, ErrInvalidOption) {
				t.Errorf("Build() = %v, %v; want error wrapping %v", opts, err, ErrInvalidOption)
			}
			if _, err := NewMarkdown(test.opts); !errors.Is(err, ErrInvalidOption) {
				t.Errorf("NewMarkdown(...) error = %v; want %v", err, ErrInvalidOption)
			}
		})
	}
}

func TestBuildRegistrationOrder(t *testing.T) {
	opts, err := (*MarkdownOptions)(nil).Build()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(opts.Elements), 25; got != want {
		t.Fatalf("len(Elements) = %d; want %d", got, want)
	}
	if _, ok := opts.Elements[0].(PreContentConverter); !ok {
		t.Errorf("Elements[0] = %T; want PreContentConverter", opts.Elements[0])
	}
	n := len(opts.Elements)
	if _, ok := opts.Elements[n-2].(*TagRemovingElementConverter); !ok {
		t.Errorf("Elements[%d] = %T; want *TagRemovingElementConverter", n-2, opts.Elements[n-2])
	}
	if _, ok := opts.Elements[n-1].(*ElementRemovingConverter); !ok {
		t.Errorf("Elements[%d] = %T; want *ElementRemovingConverter", n-1, opts.Elements[n-1])
	}
	if _, ok := opts.DefaultElement.(NoOpElementConverter); !ok {
		t.Errorf("DefaultElement = %T; want NoOpElementConverter", opts.DefaultElement)
	}
	for name, c := range map[string]NodeConverter{
		"CDATA":                 opts.CDATA,
		"Comment":               opts.Comment,
		"DocumentType":          opts.DocumentType,
		"ProcessingInstruction": opts.ProcessingInstruction,
		"XMLDeclaration":        opts.XMLDeclaration,
		"SignificantWhitespace": opts.SignificantWhitespace,
		"Whitespace":            opts.Whitespace,
	} {
		if _, ok := c.(NodeRemovingConverter); !ok {
			t.Errorf("%s = %T; want NodeRemovingConverter", name, c)
		}
	}
}

func TestBuildPreMode(t *testing.T) {
	for _, test := range []struct {
		mode PreMode
		want string
	}{
		{Fenced, "```\nx <b>\n```\n"},
		{Indented, "    x <b>\n"},
	} {
		c, err := NewMarkdown(&MarkdownOptions{PreMode: test.mode})
		if err != nil {
			t.Fatal(err)
		}
		got, err := c.ConvertString(NewElement("pre", nil,
			NewText("x "),
			NewElement("b", nil, NewText("<b>")),
		))
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("%v: output = %q; want %q", test.mode, got, test.want)
		}
	}
}

func TestBuildExclude(t *testing.T) {
	doc := []*Node{
		NewElement("h1", nil, NewText("T")),
		NewElement("p", nil,
			NewElement("b", nil, NewText("bold")),
			NewText(" "),
			NewElement("a", []Attribute{{Key: "href", Val: "/x"}}, NewText("link")),
		),
	}
	tests := []struct {
		exclude TargetSet
		want    string
	}{
		{0, "# T\n\n**bold** [link](/x)\n"},
		{Bold, "# T\n\nbold [link](/x)\n"},
		{Bold | Hyperlinks, "# T\n\nbold link\n"},
		{Headings, "T\n\n**bold** [link](/x)\n"},
	}
	for _, test := range tests {
		c, err := NewMarkdown(&MarkdownOptions{Exclude: test.exclude})
		if err != nil {
			t.Fatal(err)
		}
		got, err := c.ConvertString(doc...)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("Exclude %v: output = %q; want %q", test.exclude, got, test.want)
		}
	}
}

func TestBuildEscapes(t *testing.T) {
	p := NewElement("p", nil, NewText("a*b <"))
	tests := []struct {
		name string
		opts *MarkdownOptions
		want string
	}{
		{
			name: "Default",
			opts: &MarkdownOptions{},
			want: "a*b &lt;\n",
		},
		{
			name: "HTMLAndCustom",
			opts: &MarkdownOptions{CustomEscapes: EscapeTable{'*': `\*`}},
			want: "a\\*b &lt;\n",
		},
		{
			name: "CustomOnly",
			opts: &MarkdownOptions{EscapeMode: CustomOnly, CustomEscapes: EscapeTable{'*': `\*`}},
			want: "a\\*b <\n",
		},
		{
			name: "Override",
			opts: &MarkdownOptions{CustomEscapes: EscapeTable{'<': `\<`}},
			want: "a*b \\<\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			c, err := NewMarkdown(test.opts)
			if err != nil {
				t.Fatal(err)
			}
			got, err := c.ConvertString(p)
			if err != nil {
				t.Fatal(err)
			}
			if got != test.want {
				t.Errorf("output = %q; want %q", got, test.want)
			}
		})
	}
}

func TestBuildNormalizeUnicode(t *testing.T) {
	text := NewText("e\u0301")
	for _, test := range []struct {
		normalize bool
		want      string
	}{
		{false, "e\u0301"},
		{true, "\u00e9"},
	} {
		c, err := NewMarkdown(&MarkdownOptions{NormalizeUnicode: test.normalize})
		if err != nil {
			t.Fatal(err)
		}
		got, err := c.ConvertString(text)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("NormalizeUnicode=%t: output = %q; want %q", test.normalize, got, test.want)
		}
	}
}

func TestConvertHTML(t *testing.T) {
	sb := new(strings.Builder)
	err := ConvertHTML(sb, strings.NewReader("<h2>Hi</h2><script>x()</script><p>there</p>"), nil)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := sb.String(), "## Hi\n\nthere\n"; got != want {
		t.Errorf("output = %q; want %q", got, want)
	}

	err = ConvertHTML(new(strings.Builder), strings.NewReader("<p>x</p>"), &MarkdownOptions{PreMode: 5})
	if !errors.Is(err, ErrInvalidOption) {
		t.Errorf("ConvertHTML(invalid options) = %v; want %v", err, ErrInvalidOption)
	}
}

func TestParseModes(t *testing.T) {
	escapeTests := []struct {
		s    string
		want EscapeMode
	}{
		{"HTMLAndCustom", HTMLAndCustom},
		{"html-and-custom", HTMLAndCustom},
		{"custom_only", CustomOnly},
	}
	for _, test := range escapeTests {
		if got, err := ParseEscapeMode(test.s); got != test.want || err != nil {
			t.Errorf("ParseEscapeMode(%q) = %v, %v; want %v, <nil>", test.s, got, err, test.want)
		}
	}
	preTests := []struct {
		s    string
		want PreMode
	}{
		{"fenced", Fenced},
		{"INDENTED", Indented},
	}
	for _, test := range preTests {
		if got, err := ParsePreMode(test.s); got != test.want || err != nil {
			t.Errorf("ParsePreMode(%q) = %v, %v; want %v, <nil>", test.s, got, err, test.want)
		}
	}
	unknownTests := []struct {
		s    string
		want UnknownElementMode
	}{
		{"pass-through", PassThrough},
		{"strip-tags", StripTags},
		{"remove elements", RemoveElements},
	}
	for _, test := range unknownTests {
		if got, err := ParseUnknownElementMode(test.s); got != test.want || err != nil {
			t.Errorf("ParseUnknownElementMode(%q) = %v, %v; want %v, <nil>", test.s, got, err, test.want)
		}
	}

	if _, err := ParseEscapeMode("markdown"); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("ParseEscapeMode(\"markdown\") error = %v; want %v", err, ErrInvalidOption)
	}
	if _, err := ParsePreMode(""); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("ParsePreMode(\"\") error = %v; want %v", err, ErrInvalidOption)
	}
	if _, err := ParseUnknownElementMode("keep"); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("ParseUnknownElementMode(\"keep\") error = %v; want %v", err, ErrInvalidOption)
	}
}

func TestParseTargets(t *testing.T) {
	got, err := ParseTargets([]string{"headings", "inline-code", "Element_Removal"})
	if want := Headings | InlineCode | ElementRemoval; got != want || err != nil {
		t.Errorf("ParseTargets(...) = %v, %v; want %v, <nil>", got, err, want)
	}
	if got, err := ParseTargets(nil); got != 0 || err != nil {
		t.Errorf("ParseTargets(nil) = %v, %v; want 0, <nil>", got, err)
	}
	if _, err := ParseTargets([]string{"tables"}); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("ParseTargets([tables]) error = %v; want %v", err, ErrInvalidOption)
	}
}

func TestUnmarshalText(t *testing.T) {
	var pm PreMode
	if err := pm.UnmarshalText([]byte("indented")); err != nil || pm != Indented {
		t.Errorf("UnmarshalText(\"indented\") = %v, mode %v; want <nil>, %v", err, pm, Indented)
	}
	var um UnknownElementMode
	if err := um.UnmarshalText([]byte("bogus")); !errors.Is(err, ErrInvalidOption) {
		t.Errorf("UnmarshalText(\"bogus\") = %v; want %v", err, ErrInvalidOption)
	}
}

func TestTargetString(t *testing.T) {
	tests := []struct {
		t    Target
		want string
	}{
		{Headings, "Headings"},
		{InlineCode, "InlineCode"},
		{AllTargets, "AllTargets"},
	}
	for _, test := range tests {
		if got := test.t.String(); got != test.want {
			t.Errorf("Target(%d).String() = %q; want %q", uint32(test.t), got, test.want)
		}
	}
}
