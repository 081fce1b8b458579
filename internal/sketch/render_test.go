/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sketch

import (
	"errors"
	"testing"
)

func TestRenderEmpty(t *testing.T) {
	c := NewContext()
	c.Size(3, 3)
	c.Clear()
	got, err := c.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if want := `<svg width="100" height="100"></svg>`; got != want {
		t.Fatalf("Render() = %q, want %q", got, want)
	}
}

func TestRenderRect(t *testing.T) {
	c := NewContext()
	NewRect(c, 0, 0, 10, 5)
	got, err := c.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := `<svg width="100" height="100">` +
		`<polygon points="0,0 10,0 10,5 0,5 " style="fill:white;stroke:black;stroke-width:1;" transform="" />` +
		`</svg>`
	if got != want {
		t.Fatalf("Render() = %q\nwant %q", got, want)
	}

	els := elements(t, got)
	if len(els) != 2 || els[1].Name != "polygon" {
		t.Fatalf("unexpected elements: %+v", els)
	}
	if els[0].Attrs["width"] != "100" || els[0].Attrs["height"] != "100" {
		t.Fatalf("root attrs = %v", els[0].Attrs)
	}
}

func TestRectMatchesQuad(t *testing.T) {
	c := NewContext()
	x, y, w, h := 1.5, 2.0, 7.25, 3.0
	r, _ := NewRect(c, x, y, w, h).Serialize()
	q, _ := NewQuad(c, x, y, x+w, y, x+w, y+h, x, y+h).Serialize()
	if r != q {
		t.Fatalf("rect %q != quad %q", r, q)
	}
}

func TestRenderTranslatedEllipse(t *testing.T) {
	c := NewContext()
	c.Translate(5, 5)
	NewEllipse(c, 0, 0, 3, 3)
	c.Translate(50, 50)

	got, err := c.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	els := elements(t, got)
	if len(els) != 2 {
		t.Fatalf("want root + ellipse, got %+v", els)
	}
	e := els[1]
	if e.Name != "ellipse" {
		t.Fatalf("element = %q, want ellipse", e.Name)
	}
	for k, want := range map[string]string{"cx": "0", "cy": "0", "rx": "3", "ry": "3", "transform": " translate(5 5)"} {
		if e.Attrs[k] != want {
			t.Fatalf("%s = %q, want %q", k, e.Attrs[k], want)
		}
	}
}

func TestRenderOrderAndTruncation(t *testing.T) {
	c := NewContext()
	c.Size(200.9, 50.2)
	NewLine(c, -1.7, 2.7, 3.2, 4.9)
	c.NoStroke()
	NewTriangle(c, 0, 0, 1, 0, 0, 1)

	got, err := c.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := `<svg width="200" height="50">` +
		`<line x1="-1" y1="2" x2="3" y2="4" style="fill:white;stroke:black;stroke-width:1;" transform="" />` +
		`<polygon points="0,0 1,0 0,1 " style="fill:white;" transform="" />` +
		`</svg>`
	if got != want {
		t.Fatalf("Render() = %q\nwant %q", got, want)
	}
}

func TestRenderPropagatesShapeErrors(t *testing.T) {
	c := NewContext()
	s := NewShape(c)
	_ = s.Vertex(0, 0)
	if _, err := c.Render(); !errors.Is(err, ErrNotEnded) {
		t.Fatalf("Render with open shape: err = %v, want ErrNotEnded", err)
	}
	_ = s.EndShape(true)
	got, err := c.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if els := elements(t, got); len(els) != 2 || els[1].Attrs["d"] != "M0 0 Z" {
		t.Fatalf("unexpected elements: %+v", els)
	}
}
