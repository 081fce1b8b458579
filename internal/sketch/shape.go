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

// Shape is a multi-contour path built vertex by vertex.
//
// A new shape is Building with one implicit contour open. BeginContour opens
// a nested contour that receives vertices until EndContour; EndShape moves the
// shape to Ended, after which only Serialize is allowed. Style and transform
// are frozen when the shape is created, not when it ends.
type Shape struct {
	frozen
	contours [][]Point // every contour ever created, in order
	open     []int     // indexes into contours; top receives vertices
	ended    bool
	closed   bool
}

// NewShape records a new shape in c (nil means the default context).
func NewShape(c *Context) *Shape {
	s := &Shape{contours: [][]Point{nil}, open: []int{0}}
	register(orDefault(c), s, &s.frozen)
	return s
}

func (s *Shape) Ended() bool  { return s.ended }
func (s *Shape) Closed() bool { return s.closed }

// OpenContours reports how many contours opened with BeginContour are still
// open.
func (s *Shape) OpenContours() int { return len(s.open) - 1 }

// Contours returns a copy of every recorded contour.
func (s *Shape) Contours() [][]Point {
	out := make([][]Point, len(s.contours))
	for i, c := range s.contours {
		out[i] = slices.Clone(c)
	}
	return out
}

func (s *Shape) Vertex(x, y float64) error {
	if s.ended {
		return ErrInvalidState
	}
	top := s.open[len(s.open)-1]
	s.contours[top] = append(s.contours[top], Point{x, y})
	return nil
}

func (s *Shape) BeginContour() error {
	if s.ended {
		return ErrInvalidState
	}
	s.contours = append(s.contours, nil)
	s.open = append(s.open, len(s.contours)-1)
	return nil
}

// EndContour closes the innermost contour opened by BeginContour. The contour
// stays part of the path.
func (s *Shape) EndContour() error {
	if s.ended {
		return ErrInvalidState
	}
	if len(s.open) <= 1 {
		return ErrContourMismatch
	}
	s.open = s.open[:len(s.open)-1]
	return nil
}

// EndShape finishes the shape. When close is set every contour gets a
// closing segment.
func (s *Shape) EndShape(close bool) error {
	if s.ended {
		return ErrInvalidState
	}
	s.closed = close
	s.ended = true
	return nil
}

// PathData returns the d attribute of the finished shape.
func (s *Shape) PathData() (string, error) {
	if !s.ended {
		return "", &NotEndedError{OpenContours: s.OpenContours()}
	}
	var b strings.Builder
	for i, c := range s.contours {
		if len(c) == 0 {
			return "", fmt.Errorf("contour %d: %w", i, ErrEmptyContour)
		}
		fmt.Fprintf(&b, "M%d %d ", int(c[0].X), int(c[0].Y))
		for _, pt := range c[1:] {
			fmt.Fprintf(&b, "L%d %d ", int(pt.X), int(pt.Y))
		}
		// TODO: the close flag belongs to the whole shape but is applied to
		// each contour; decide whether only the outer contour should close.
		if s.closed {
			b.WriteString("Z")
		}
	}
	return b.String(), nil
}

func (s *Shape) Serialize() (string, error) {
	d, err := s.PathData()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf(`<path d="%s" style="%s" transform="%s" />`, d, s.style.CSS(), s.transform), nil
}
