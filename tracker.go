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
	"io"
	"strings"
	"unicode"
)

// DefaultNewLine is the line terminator used when none is configured.
const DefaultNewLine = "\n"

// A Tracker writes converted text to an [io.Writer]
// and keeps count of the line terminators at the end of everything written so far.
// Block-level converters use the count to write exactly as many terminators
// as needed to separate themselves from previous output.
//
// A Tracker also maintains a stack of line prefixes (like "> " for block quotes).
// The prefixes are written before the first content of every line
// and are never included in the newline count.
//
// The first error returned by the underlying writer is retained:
// subsequent writes are no-ops and the error is reported by [*Tracker.Err].
type Tracker struct {
	w       io.Writer
	newLine string
	err     error

	newLineCount   int
	hasWritten     bool
	atLineStart    bool
	containerStart bool
	prefixes       []string
}

// NewTracker returns a new [Tracker] that writes to w
// using the given line terminator.
// If newLine is empty, [DefaultNewLine] is used.
func NewTracker(w io.Writer, newLine string) *Tracker {
	if newLine == "" {
		newLine = DefaultNewLine
	}
	return &Tracker{
		w:           w,
		newLine:     newLine,
		atLineStart: true,
	}
}

// NewLine returns the tracker's line terminator.
func (t *Tracker) NewLine() string {
	return t.newLine
}

// NewlineCount returns the number of consecutive line terminators
// at the end of the output.
func (t *Tracker) NewlineCount() int {
	return t.newLineCount
}

// HasWritten reports whether any content has been written.
func (t *Tracker) HasWritten() bool {
	return t.hasWritten
}

// Err returns the first error encountered while writing, if any.
func (t *Tracker) Err() error {
	return t.err
}

// WriteString writes s verbatim.
func (t *Tracker) WriteString(s string) {
	t.write(s)
	t.updateNewlineCount(s, 0)
}

// WriteLine writes s followed by a line terminator.
func (t *Tracker) WriteLine(s string) {
	t.write(s)
	t.write(t.newLine)
	t.updateNewlineCount(s, 1)
}

// WriteLn writes a single line terminator.
func (t *Tracker) WriteLn() {
	t.write(t.newLine)
	t.newLineCount++
}

// updateNewlineCount re-derives the trailing terminator count from s.
// A string made only of terminators extends the current run;
// anything else starts a new one.
func (t *Tracker) updateNewlineCount(s string, extra int) {
	parts := strings.Split(s, t.newLine)
	n := 0
	for i := len(parts) - 1; i >= 0 && parts[i] == ""; i-- {
		n++
	}
	if n == len(parts) {
		t.newLineCount += n - 1 + extra
	} else {
		t.newLineCount = n + extra
	}
}

// PushPrefix adds a prefix to write at the start of every following line
// until the matching call to [*Tracker.PopPrefix].
func (t *Tracker) PushPrefix(prefix string) {
	t.prefixes = append(t.prefixes, prefix)
}

// PopPrefix removes the most recently pushed prefix.
func (t *Tracker) PopPrefix() {
	if len(t.prefixes) > 0 {
		t.prefixes = t.prefixes[:len(t.prefixes)-1]
	}
}

// MarkContainerStart records that a container (like a list item)
// has just started, so that the first block inside it
// is not separated from the container's marker.
// The mark is cleared by the next non-empty write.
func (t *Tracker) MarkContainerStart() {
	t.containerStart = true
}

// AtContainerStart reports whether nothing has been written
// since the last call to [*Tracker.MarkContainerStart].
func (t *Tracker) AtContainerStart() bool {
	return t.containerStart
}

// AtLineStart reports whether the next write begins a new line.
func (t *Tracker) AtLineStart() bool {
	return t.atLineStart
}

func (t *Tracker) write(s string) {
	for len(s) > 0 {
		line := s
		i := strings.Index(s, t.newLine)
		if i >= 0 {
			line = s[:i]
		}
		if line != "" {
			if t.atLineStart {
				t.writePrefixes(false)
			}
			t.writeRaw(line)
			t.atLineStart = false
		}
		if i < 0 {
			break
		}
		if t.atLineStart {
			t.writePrefixes(true)
		}
		t.writeRaw(t.newLine)
		t.atLineStart = true
		s = s[i+len(t.newLine):]
	}
}

func (t *Tracker) writePrefixes(blankLine bool) {
	if len(t.prefixes) == 0 {
		return
	}
	if !blankLine {
		for _, p := range t.prefixes {
			t.writeRaw(p)
		}
		return
	}
	sb := new(strings.Builder)
	if err := writeTrimmedIndent(sb, t.prefixes); err == nil {
		t.writeRaw(sb.String())
	}
}

func (t *Tracker) writeRaw(s string) {
	if t.err != nil || s == "" {
		return
	}
	n, err := io.WriteString(t.w, s)
	t.hasWritten = t.hasWritten || n > 0
	t.containerStart = false
	t.err = err
}

// writeTrimmedIndent writes the concatenated indents
// without trailing whitespace.
func writeTrimmedIndent(w io.Writer, indents []string) error {
	joined := strings.Join(indents, "")
	_, err := io.WriteString(w, strings.TrimRightFunc(joined, unicode.IsSpace))
	return err
}
