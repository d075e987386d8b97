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

// A Context holds the mutable state of a single conversion.
// It is created by [*Converter.Convert], passed to every converter call,
// and discarded when the conversion returns.
// A Context must not be shared between conversions.
type Context struct {
	*Tracker

	// ancestors holds the open elements, outermost first.
	ancestors []*Node
	ordinals  map[listKey]int
	preDepth  int
}

type listKey struct {
	depth int
	list  *Node
}

func newContext(t *Tracker) *Context {
	return &Context{
		Tracker:  t,
		ordinals: make(map[listKey]int),
	}
}

// Parent returns the element enclosing the node being converted,
// or nil at the top level.
func (ctx *Context) Parent() *Node {
	if len(ctx.ancestors) == 0 {
		return nil
	}
	return ctx.ancestors[len(ctx.ancestors)-1]
}

// Ancestors returns the elements enclosing the node being converted,
// outermost first.
// The caller must not modify the returned slice.
func (ctx *Context) Ancestors() []*Node {
	return ctx.ancestors
}

// HasAncestor reports whether the node being converted
// is inside an element with any of the given tag names.
func (ctx *Context) HasAncestor(names ...string) bool {
	for _, a := range ctx.ancestors {
		for _, name := range names {
			if a.IsElement(name) {
				return true
			}
		}
	}
	return false
}

// InPre reports whether the node being converted
// is inside preformatted content.
func (ctx *Context) InPre() bool {
	return ctx.preDepth > 0
}

// EnterPre marks the start of preformatted content.
// Text inside preformatted content is written without escaping.
func (ctx *Context) EnterPre() {
	ctx.preDepth++
}

// ExitPre marks the end of preformatted content
// started by [*Context.EnterPre].
func (ctx *Context) ExitPre() {
	if ctx.preDepth > 0 {
		ctx.preDepth--
	}
}

// NextOrdinal returns the next number for an item of the given list element.
// depth is the nesting depth of the list.
// The first call for a list returns start; every later call returns
// one more than the previous.
func (ctx *Context) NextOrdinal(depth int, list *Node, start int) int {
	k := listKey{depth: depth, list: list}
	n, ok := ctx.ordinals[k]
	if !ok {
		n = start
	} else {
		n++
	}
	ctx.ordinals[k] = n
	return n
}

// WriteBlockSeparator writes line terminators until the output ends
// in a blank line.
// Nothing is written at the start of the document
// or directly after a container's opening marker.
func (ctx *Context) WriteBlockSeparator() {
	if !ctx.HasWritten() || ctx.AtContainerStart() {
		return
	}
	for n := ctx.NewlineCount(); n < 2; n++ {
		ctx.WriteLn()
	}
}

// EndLine writes a line terminator if the output does not already end in one.
func (ctx *Context) EndLine() {
	if ctx.HasWritten() && ctx.NewlineCount() == 0 {
		ctx.WriteLn()
	}
}

func (ctx *Context) push(n *Node) {
	ctx.ancestors = append(ctx.ancestors, n)
}

func (ctx *Context) pop() {
	ctx.ancestors = ctx.ancestors[:len(ctx.ancestors)-1]
}
