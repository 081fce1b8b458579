/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sketch

import "slices"

const (
	DefaultWidth  = 100
	DefaultHeight = 100
)

// Context is a drawing session: canvas size, style and transform stacks,
// and the primitives recorded so far.
type Context struct {
	width, height float64
	styles        []Style
	transforms    []Transform
	prims         []Primitive
}

var defaultContext = NewContext()

// Default returns the process-wide context. It has no synchronization and
// must only be driven by one caller at a time.
func Default() *Context { return defaultContext }

// orDefault resolves the implicit context of primitive constructors.
func orDefault(c *Context) *Context {
	if c == nil {
		return defaultContext
	}
	return c
}

// NewContext returns a cleared context.
func NewContext() *Context {
	c := &Context{}
	c.Clear()
	return c
}

// Clear resets the canvas to 100x100, drops all primitives and leaves one
// default frame on each stack.
func (c *Context) Clear() {
	c.width = DefaultWidth
	c.height = DefaultHeight
	c.styles = []Style{DefaultStyle()}
	c.transforms = []Transform{nil}
	c.prims = nil
}

func (c *Context) Size(w, h float64) {
	c.width = w
	c.height = h
}

func (c *Context) Width() float64      { return c.width }
func (c *Context) Height() float64     { return c.height }
func (c *Context) SetWidth(w float64)  { c.width = w }
func (c *Context) SetHeight(h float64) { c.height = h }

// PushTransform starts a new, empty transform frame.
func (c *Context) PushTransform() { c.transforms = append(c.transforms, nil) }

// PopTransform discards the top transform frame. Popping the last frame is a
// no-op.
func (c *Context) PopTransform() {
	if len(c.transforms) > 1 {
		c.transforms = c.transforms[:len(c.transforms)-1]
	}
}

func (c *Context) PushMatrix() { c.PushTransform() }
func (c *Context) PopMatrix()  { c.PopTransform() }

// Transform returns a copy of the current transform frame.
func (c *Context) Transform() Transform { return c.top().Clone() }

func (c *Context) top() Transform { return c.transforms[len(c.transforms)-1] }

func (c *Context) Translate(dx, dy float64) {
	c.transforms[len(c.transforms)-1] = append(c.top(), TransformOp{Kind: OpTranslate, X: dx, Y: dy})
}

// Rotate appends a rotation in degrees.
func (c *Context) Rotate(theta float64) {
	c.transforms[len(c.transforms)-1] = append(c.top(), TransformOp{Kind: OpRotate, X: theta})
}

// PushStyle duplicates the current style frame.
func (c *Context) PushStyle() {
	c.styles = append(c.styles, NewStyleFrom(*c.style()))
}

// PopStyle discards the top style frame. Popping the last frame is a no-op.
func (c *Context) PopStyle() {
	if len(c.styles) > 1 {
		c.styles = c.styles[:len(c.styles)-1]
	}
}

func (c *Context) style() *Style { return &c.styles[len(c.styles)-1] }

// Style returns a copy of the current style frame.
func (c *Context) Style() Style { return *c.style() }

func (c *Context) Stroke() Paint            { return c.style().Stroke }
func (c *Context) SetStroke(p Paint)        { c.style().Stroke = p }
func (c *Context) StrokeWidth() float64     { return c.style().StrokeWidth }
func (c *Context) SetStrokeWidth(w float64) { c.style().StrokeWidth = w }
func (c *Context) StrokeCap() Cap           { return c.style().StrokeCap }
func (c *Context) SetStrokeCap(cp Cap)      { c.style().StrokeCap = cp }
func (c *Context) Fill() Paint              { return c.style().Fill }
func (c *Context) SetFill(p Paint)          { c.style().Fill = p }
func (c *Context) NoFill()                  { c.style().Fill = NoPaint }
func (c *Context) NoStroke()                { c.style().Stroke = NoPaint }
func (c *Context) StyleDepth() int          { return len(c.styles) }
func (c *Context) TransformDepth() int      { return len(c.transforms) }
func (c *Context) Len() int                 { return len(c.prims) }
func (c *Context) append(p Primitive)       { c.prims = append(c.prims, p) }
func (c *Context) Primitives() []Primitive  { return slices.Clone(c.prims) }

// snapshot captures the state a new primitive freezes.
func (c *Context) snapshot() (Style, Transform) {
	return NewStyleFrom(*c.style()), c.Transform()
}

// Render serializes the scene to an SVG document.
func (c *Context) Render() (string, error) {
	return Render(c.width, c.height, c.prims)
}
