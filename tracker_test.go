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

func TestTrackerNewlineCount(t *testing.T) {
	tests := []struct {
		name       string
		write      func(t *Tracker)
		wantCount  int
		wantOutput string
	}{
		{
			name:       "Empty",
			write:      func(t *Tracker) { t.WriteString("") },
			wantCount:  0,
			wantOutput: "",
		},
		{
			name:       "Text",
			write:      func(t *Tracker) { t.WriteString("a") },
			wantCount:  0,
			wantOutput: "a",
		},
		{
			name:       "TrailingTerminators",
			write:      func(t *Tracker) { t.WriteString("a\n\n") },
			wantCount:  2,
			wantOutput: "a\n\n",
		},
		{
			name: "TerminatorsExtendRun",
			write: func(t *Tracker) {
				t.WriteString("a\n")
				t.WriteString("\n\n")
			},
			wantCount:  3,
			wantOutput: "a\n\n\n",
		},
		{
			name: "ContentResetsRun",
			write: func(t *Tracker) {
				t.WriteString("a\n\n")
				t.WriteString("b")
			},
			wantCount:  0,
			wantOutput: "a\n\nb",
		},
		{
			name: "ContentThenTerminator",
			write: func(t *Tracker) {
				t.WriteString("a\n\n")
				t.WriteString("b")
				t.WriteLn()
			},
			wantCount:  1,
			wantOutput: "a\n\nb\n",
		},
		{
			name:       "WriteLine",
			write:      func(t *Tracker) { t.WriteLine("a") },
			wantCount:  1,
			wantOutput: "a\n",
		},
		{
			name: "WriteLineEmpty",
			write: func(t *Tracker) {
				t.WriteLine("a")
				t.WriteLine("")
			},
			wantCount:  2,
			wantOutput: "a\n\n",
		},
		{
			name:       "WriteLineWithTrailingTerminator",
			write:      func(t *Tracker) { t.WriteLine("a\n") },
			wantCount:  2,
			wantOutput: "a\n\n",
		},
		{
			name: "WriteLineOfTerminators",
			write: func(t *Tracker) {
				t.WriteLn()
				t.WriteLine("\n")
			},
			wantCount:  3,
			wantOutput: "\n\n\n",
		},
		{
			name: "Prefixes",
			write: func(t *Tracker) {
				t.PushPrefix("> ")
				t.WriteString("a\n\nb")
				t.PushPrefix("  ")
				t.WriteLn()
				t.WriteLn()
				t.WriteString("c")
				t.PopPrefix()
				t.PopPrefix()
				t.WriteLn()
				t.WriteString("d")
			},
			wantCount:  0,
			wantOutput: "> a\n>\n> b\n>\n>   c\nd",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			sb := new(strings.Builder)
			tr := NewTracker(sb, "")
			test.write(tr)
			if got := tr.NewlineCount(); got != test.wantCount {
				t.Errorf("NewlineCount() = %d; want %d", got, test.wantCount)
			}
			if got := sb.String(); got != test.wantOutput {
				t.Errorf("output = %q; want %q", got, test.wantOutput)
			}
		})
	}
}

func TestTrackerBareTerminators(t *testing.T) {
	for n := 0; n < 5; n++ {
		tr := NewTracker(new(strings.Builder), "")
		for i := 0; i < n; i++ {
			tr.WriteLn()
		}
		if got := tr.NewlineCount(); got != n {
			t.Errorf("after %d WriteLn calls, NewlineCount() = %d; want %d", n, got, n)
		}
	}
}

func TestTrackerCRLF(t *testing.T) {
	sb := new(strings.Builder)
	tr := NewTracker(sb, "\r\n")
	tr.WriteString("a\r\n\r\n")
	if got, want := tr.NewlineCount(), 2; got != want {
		t.Errorf("NewlineCount() = %d; want %d", got, want)
	}
	tr.WriteString("b\n")
	if got, want := tr.NewlineCount(), 0; got != want {
		t.Errorf("after bare LF, NewlineCount() = %d; want %d", got, want)
	}
	tr.WriteLine("c")
	if got, want := sb.String(), "a\r\n\r\nb\nc\r\n"; got != want {
		t.Errorf("output = %q; want %q", got, want)
	}
}

func TestTrackerContainerStart(t *testing.T) {
	tr := NewTracker(new(strings.Builder), "")
	tr.WriteString("- ")
	tr.MarkContainerStart()
	if !tr.AtContainerStart() {
		t.Fatal("AtContainerStart() = false after MarkContainerStart")
	}
	tr.WriteString("")
	if !tr.AtContainerStart() {
		t.Error("AtContainerStart() = false after empty write")
	}
	tr.WriteString("x")
	if tr.AtContainerStart() {
		t.Error("AtContainerStart() = true after write")
	}
}

func TestTrackerError(t *testing.T) {
	errFull := errors.New("disk full")
	w := &limitWriter{n: 3, err: errFull}
	tr := NewTracker(w, "")
	tr.WriteString("ab")
	if err := tr.Err(); err != nil {
		t.Fatalf("Err() = %v after short write", err)
	}
	tr.WriteLine("cd")
	tr.WriteString("ef")
	if err := tr.Err(); err != errFull {
		t.Errorf("Err() = %v; want %v", err, errFull)
	}
	if got, want := w.buf.String(), "abc"; got != want {
		t.Errorf("written = %q; want %q", got, want)
	}
}

func FuzzTrackerNewlineCount(f *testing.F) {
	f.Add("")
	f.Add("a")
	f.Add("\n\n")
	f.Add("a\n\nb\n")
	f.Fuzz(func(t *testing.T, s string) {
		sb := new(strings.Builder)
		tr := NewTracker(sb, "")
		tr.WriteString(s)
		before := tr.NewlineCount()
		tr.WriteString("")
		if after := tr.NewlineCount(); after != before {
			t.Errorf("WriteString(%q); WriteString(\"\") changed count from %d to %d", s, before, after)
		}
		out := sb.String()
		want := len(out) - len(strings.TrimRight(out, "\n"))
		if before != want {
			t.Errorf("WriteString(%q): NewlineCount() = %d; want %d", s, before, want)
		}
	})
}

func TestWriteTrimmedIndent(t *testing.T) {
	tests := []struct {
		indents []string
		want    string
	}{
		{[]string{}, ""},
		{[]string{""}, ""},
		{[]string{" \t "}, ""},
		{[]string{"> "}, ">"},
		{[]string{"> ", "> "}, "> >"},
		{[]string{"> ", "> ", "  "}, "> >"},
	}
	for _, test := range tests {
		got := new(strings.Builder)
		if err := writeTrimmedIndent(got, test.indents); got.String() != test.want || err != nil {
			t.Errorf("writeTrimmedIndent(buf, %q) = %q, %v; want %q, <nil>",
				test.indents, got, err, test.want)
		}
	}
}

// limitWriter accepts n bytes, then fails with err.
type limitWriter struct {
	buf strings.Builder
	n   int
	err error
}

func (w *limitWriter) Write(p []byte) (int, error) {
	if len(p) <= w.n {
		w.n -= len(p)
		return w.buf.Write(p)
	}
	n, _ := w.buf.Write(p[:w.n])
	w.n = 0
	return n, w.err
}
