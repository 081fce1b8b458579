/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sketch

import (
	"fmt"
	"slices"
	"strings"
)

// Primitive is one recorded drawable. The set of implementations is closed:
// *Ellipse, *Line, *Polygon and *Shape.
type Primitive interface {
	// Serialize returns the SVG element for the primitive.
	Serialize() (string, error)
	// Style is the style frozen when the primitive was created.
	Style() Style
	// Transform is the transform frame frozen when the primitive was created.
	Transform() Transform

	primitive()
}

type Point struct{ X, Y float64 }

// frozen is the state every primitive captures at construction.
type frozen struct {
	style     Style
	transform Transform
}

func (f *frozen) Style() Style         { return f.style }
func (f *frozen) Transform() Transform { return f.transform.Clone() }

func (f *frozen) primitive() {}

// register appends p to c and freezes c's current state into f.
func register(c *Context, p Primitive, f *frozen) {
	c.append(p)
	f.style, f.transform = c.snapshot()
}

type Ellipse struct {
	frozen
	X, Y, RX, RY float64
}

// NewEllipse records an ellipse centred on (x, y). A nil c draws into the
// default context.
func NewEllipse(c *Context, x, y, rx, ry float64) *Ellipse {
	e := &Ellipse{X: x, Y: y, RX: rx, RY: ry}
	register(orDefault(c), e, &e.frozen)
	return e
}

func (e *Ellipse) Serialize() (string, error) {
	return fmt.Sprintf(`<ellipse cx="%d" cy="%d" rx="%d" ry="%d" style="%s" transform="%s" />`,
		int(e.X), int(e.Y), int(e.RX), int(e.RY), e.style.CSS(), e.transform), nil
}

type Line struct {
	frozen
	X1, Y1, X2, Y2 float64
}

func NewLine(c *Context, x1, y1, x2, y2 float64) *Line {
	l := &Line{X1: x1, Y1: y1, X2: x2, Y2: y2}
	register(orDefault(c), l, &l.frozen)
	return l
}

func (l *Line) Serialize() (string, error) {
	return fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" style="%s" transform="%s" />`,
		int(l.X1), int(l.Y1), int(l.X2), int(l.Y2), l.style.CSS(), l.transform), nil
}

type Polygon struct {
	frozen
	points []Point
}

// NewPolygon records a polygon through points. The slice is copied.
func NewPolygon(c *Context, points []Point) *Polygon {
	p := &Polygon{points: slices.Clone(points)}
	register(orDefault(c), p, &p.frozen)
	return p
}

func NewQuad(c *Context, x1, y1, x2, y2, x3, y3, x4, y4 float64) *Polygon {
	return NewPolygon(c, []Point{{x1, y1}, {x2, y2}, {x3, y3}, {x4, y4}})
}

// NewRect records the axis-aligned rectangle with corner (x, y) as a quad.
func NewRect(c *Context, x, y, w, h float64) *Polygon {
	x2 := x + w
	y2 := y + h
	return NewQuad(c, x, y, x2, y, x2, y2, x, y2)
}

func NewTriangle(c *Context, x1, y1, x2, y2, x3, y3 float64) *Polygon {
	return NewPolygon(c, []Point{{x1, y1}, {x2, y2}, {x3, y3}})
}

func (p *Polygon) Points() []Point { return slices.Clone(p.points) }

func (p *Polygon) Serialize() (string, error) {
	var pts strings.Builder
	for _, pt := range p.points {
		fmt.Fprintf(&pts, "%d,%d ", int(pt.X), int(pt.Y))
	}
	return fmt.Sprintf(`<polygon points="%s" style="%s" transform="%s" />`,
		pts.String(), p.style.CSS(), p.transform), nil
}
