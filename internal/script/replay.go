/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package script

import (
	"errors"
	"fmt"

	applog "qdgraphics/internal/log"
	"qdgraphics/internal/sketch"
)

// ErrArity is returned when an op carries the wrong number of args.
var ErrArity = errors.New("wrong number of args")

// ErrOpenShape is returned when a script ends while a shape is still being built.
var ErrOpenShape = errors.New("shape not ended")

// arity lists the number of args each op takes; -2 means "an even number, at
// least two" (point lists).
var arity = map[string]int{
	"clear":         0,
	"size":          2,
	"pushTransform": 0,
	"popTransform":  0,
	"pushMatrix":    0,
	"popMatrix":     0,
	"translate":     2,
	"rotate":        1,
	"pushStyle":     0,
	"popStyle":      0,
	"fill":          0,
	"noFill":        0,
	"stroke":        0,
	"noStroke":      0,
	"strokeWidth":   1,
	"strokeCap":     0,
	"ellipse":       4,
	"line":          4,
	"polygon":       -2,
	"quad":          8,
	"rect":          4,
	"triangle":      6,
	"beginShape":    0,
	"vertex":        2,
	"beginContour":  0,
	"endContour":    0,
	"endShape":      0,
}

func checkOp(op Op) error {
	want, ok := arity[op.Name]
	if !ok {
		return fmt.Errorf("unknown op %q", op.Name)
	}
	switch op.Name {
	case "fill", "stroke":
		if op.Color == "" {
			return errors.New("missing color")
		}
	case "strokeCap":
		if op.Cap == "" {
			return errors.New("missing cap")
		}
	}
	n := len(op.Args)
	if want == -2 {
		if n < 2 || n%2 != 0 {
			return fmt.Errorf("%w: got %d, want an even number", ErrArity, n)
		}
		return nil
	}
	if n != want {
		return fmt.Errorf("%w: got %d, want %d", ErrArity, n, want)
	}
	return nil
}

// Replay clears c, applies the sketch size and runs every op in order.
// Errors carry the op index and name.
func (s *Sketch) Replay(c *sketch.Context) error {
	l := applog.WithOperation(applog.WithComponent("script"), "replay")
	c.Clear()
	if len(s.Size) == 2 {
		c.Size(s.Size[0], s.Size[1])
	}
	var shape *sketch.Shape
	for i, op := range s.Ops {
		if err := checkOp(op); err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op.Name, err)
		}
		var err error
		shape, err = apply(c, shape, op)
		if err != nil {
			return fmt.Errorf("op %d (%s): %w", i, op.Name, err)
		}
	}
	if shape != nil {
		return ErrOpenShape
	}
	l.Debug("sketch replayed", "ops", len(s.Ops), applog.Scene(c))
	return nil
}

// apply runs one op and returns the shape under construction afterwards.
func apply(c *sketch.Context, shape *sketch.Shape, op Op) (*sketch.Shape, error) {
	a := op.Args
	switch op.Name {
	case "clear":
		c.Clear()
		return nil, nil
	case "size":
		c.Size(a[0], a[1])
	case "pushTransform":
		c.PushTransform()
	case "popTransform":
		c.PopTransform()
	case "pushMatrix":
		c.PushMatrix()
	case "popMatrix":
		c.PopMatrix()
	case "translate":
		c.Translate(a[0], a[1])
	case "rotate":
		c.Rotate(a[0])
	case "pushStyle":
		c.PushStyle()
	case "popStyle":
		c.PopStyle()
	case "fill":
		c.SetFill(sketch.Paint(op.Color))
	case "noFill":
		c.NoFill()
	case "stroke":
		c.SetStroke(sketch.Paint(op.Color))
	case "noStroke":
		c.NoStroke()
	case "strokeWidth":
		c.SetStrokeWidth(a[0])
	case "strokeCap":
		c.SetStrokeCap(sketch.Cap(op.Cap))
	case "ellipse":
		sketch.NewEllipse(c, a[0], a[1], a[2], a[3])
	case "line":
		sketch.NewLine(c, a[0], a[1], a[2], a[3])
	case "polygon":
		pts := make([]sketch.Point, 0, len(a)/2)
		for j := 0; j < len(a); j += 2 {
			pts = append(pts, sketch.Point{X: a[j], Y: a[j+1]})
		}
		sketch.NewPolygon(c, pts)
	case "quad":
		sketch.NewQuad(c, a[0], a[1], a[2], a[3], a[4], a[5], a[6], a[7])
	case "rect":
		sketch.NewRect(c, a[0], a[1], a[2], a[3])
	case "triangle":
		sketch.NewTriangle(c, a[0], a[1], a[2], a[3], a[4], a[5])
	case "beginShape":
		// Unlike qd.BeginShape, a script may not abandon an open shape.
		if shape != nil {
			return shape, ErrOpenShape
		}
		return sketch.NewShape(c), nil
	case "vertex", "beginContour", "endContour", "endShape":
		if shape == nil {
			return nil, errors.New("no shape in progress")
		}
		switch op.Name {
		case "vertex":
			return shape, shape.Vertex(a[0], a[1])
		case "beginContour":
			return shape, shape.BeginContour()
		case "endContour":
			return shape, shape.EndContour()
		default:
			if err := shape.EndShape(op.Close); err != nil {
				return shape, err
			}
			return nil, nil
		}
	}
	return shape, nil
}
