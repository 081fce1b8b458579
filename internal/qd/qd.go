/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package qd is the Processing-style free-function surface over the default
// sketch context:
//
//	qd.Clear()
//	qd.Fill("red")
//	qd.Translate(5, 5)
//	qd.Rect(0, 0, 10, 5)
//	doc, err := qd.Render()
//
// Like the context it drives, the package is single-threaded. Code that needs
// several scenes at once should use sketch.NewContext directly.
package qd

import (
	"errors"

	"qdgraphics/internal/sketch"
)

// Close is the argument to EndShape that closes every contour.
const Close = true

// ErrNoShape is returned by shape calls made without an open BeginShape.
var ErrNoShape = errors.New("no shape is open; call BeginShape first")

// Viewer receives a rendered document, for example a desktop window.
type Viewer interface {
	Show(doc string) error
}

// current is the shape opened by BeginShape and not yet ended.
var current *sketch.Shape

// Context returns the context the package draws into.
func Context() *sketch.Context { return sketch.Default() }

// Clear resets the default context and forgets any open shape.
func Clear() {
	current = nil
	sketch.Default().Clear()
}

func Size(w, h float64)       { sketch.Default().Size(w, h) }
func PushTransform()          { sketch.Default().PushTransform() }
func PopTransform()           { sketch.Default().PopTransform() }
func PushMatrix()             { sketch.Default().PushMatrix() }
func PopMatrix()              { sketch.Default().PopMatrix() }
func Translate(x, y float64)  { sketch.Default().Translate(x, y) }
func Rotate(theta float64)    { sketch.Default().Rotate(theta) }
func Stroke(p sketch.Paint)   { sketch.Default().SetStroke(p) }
func StrokeWidth(w float64)   { sketch.Default().SetStrokeWidth(w) }
func StrokeCap(cp sketch.Cap) { sketch.Default().SetStrokeCap(cp) }
func Fill(p sketch.Paint)     { sketch.Default().SetFill(p) }
func NoFill()                 { sketch.Default().NoFill() }
func NoStroke()               { sketch.Default().NoStroke() }
func PushStyle()              { sketch.Default().PushStyle() }
func PopStyle()               { sketch.Default().PopStyle() }
func Render() (string, error) { return sketch.Default().Render() }

// Draw renders the default context and hands the document to v.
func Draw(v Viewer) error {
	doc, err := Render()
	if err != nil {
		return err
	}
	return v.Show(doc)
}

func Ellipse(x, y, rx, ry float64) *sketch.Ellipse {
	return sketch.NewEllipse(sketch.Default(), x, y, rx, ry)
}

func Line(x1, y1, x2, y2 float64) *sketch.Line {
	return sketch.NewLine(sketch.Default(), x1, y1, x2, y2)
}

func Polygon(points []sketch.Point) *sketch.Polygon {
	return sketch.NewPolygon(sketch.Default(), points)
}

func Quad(x1, y1, x2, y2, x3, y3, x4, y4 float64) *sketch.Polygon {
	return sketch.NewQuad(sketch.Default(), x1, y1, x2, y2, x3, y3, x4, y4)
}

func Rect(x, y, w, h float64) *sketch.Polygon {
	return sketch.NewRect(sketch.Default(), x, y, w, h)
}

func Triangle(x1, y1, x2, y2, x3, y3 float64) *sketch.Polygon {
	return sketch.NewTriangle(sketch.Default(), x1, y1, x2, y2, x3, y3)
}

// BeginShape records a new shape and makes it the open shape. A shape that
// was still open stays in the scene unfinished.
func BeginShape() *sketch.Shape {
	current = sketch.NewShape(sketch.Default())
	return current
}

func Vertex(x, y float64) error {
	if current == nil {
		return ErrNoShape
	}
	return current.Vertex(x, y)
}

func BeginContour() error {
	if current == nil {
		return ErrNoShape
	}
	return current.BeginContour()
}

func EndContour() error {
	if current == nil {
		return ErrNoShape
	}
	return current.EndContour()
}

// EndShape ends the open shape and clears the slot.
func EndShape(close bool) error {
	if current == nil {
		return ErrNoShape
	}
	if err := current.EndShape(close); err != nil {
		return err
	}
	current = nil
	return nil
}
