/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sketch

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestStyleStackDiscipline(t *testing.T) {
	c := NewContext()
	c.SetFill("yellow")
	before := c.Style()

	c.PushStyle()
	c.SetFill("red")
	c.SetStroke(NoPaint)
	c.SetStrokeWidth(9)
	c.SetStrokeCap(CapSquare)
	c.PushStyle()
	c.NoFill()
	c.PopStyle()
	if got := c.Fill(); got != "red" {
		t.Fatalf("inner pop restored fill %q, want red", got)
	}
	c.PopStyle()

	if diff := cmp.Diff(before, c.Style()); diff != "" {
		t.Fatalf("style after matching pop differs (-before +after):\n%s", diff)
	}
}

func TestPopAtBottomIsNoop(t *testing.T) {
	c := NewContext()
	c.SetFill("red")
	c.Translate(3, 4)
	for i := 0; i < 3; i++ {
		c.PopStyle()
		c.PopTransform()
		c.PopMatrix()
	}
	if c.StyleDepth() != 1 || c.TransformDepth() != 1 {
		t.Fatalf("depths = %d/%d, want 1/1", c.StyleDepth(), c.TransformDepth())
	}
	if c.Fill() != "red" {
		t.Fatalf("bottom style frame was replaced: fill %q", c.Fill())
	}
	if got, want := c.Transform().String(), " translate(3 4)"; got != want {
		t.Fatalf("Transform() = %q, want %q", got, want)
	}
}

func TestTransformComposition(t *testing.T) {
	c := NewContext()
	c.Translate(10, 20)
	c.Rotate(45.7)
	if got, want := c.Transform().String(), " translate(10 20) rotate(45)"; got != want {
		t.Fatalf("Transform() = %q, want %q", got, want)
	}

	c.PushMatrix()
	if got := c.Transform().String(); got != "" {
		t.Fatalf("pushed frame should start empty, got %q", got)
	}
	c.Translate(-1.5, 2.5)
	if got, want := c.Transform().String(), " translate(-1 2)"; got != want {
		t.Fatalf("Transform() = %q, want %q", got, want)
	}
	c.PopMatrix()
	if got, want := c.Transform().String(), " translate(10 20) rotate(45)"; got != want {
		t.Fatalf("after pop Transform() = %q, want %q", got, want)
	}
}

func TestClearResetsEverything(t *testing.T) {
	c := NewContext()
	c.Size(640, 480)
	c.PushStyle()
	c.SetFill("red")
	c.PushTransform()
	c.Translate(1, 1)
	NewRect(c, 0, 0, 1, 1)

	c.Clear()
	if c.Width() != 100 || c.Height() != 100 {
		t.Fatalf("size = %vx%v, want 100x100", c.Width(), c.Height())
	}
	if c.Len() != 0 || c.StyleDepth() != 1 || c.TransformDepth() != 1 {
		t.Fatalf("len/styles/transforms = %d/%d/%d, want 0/1/1", c.Len(), c.StyleDepth(), c.TransformDepth())
	}
	if diff := cmp.Diff(DefaultStyle(), c.Style()); diff != "" {
		t.Fatalf("style not reset (-want +got):\n%s", diff)
	}
}

func TestSnapshotIgnoresLaterMutation(t *testing.T) {
	c := NewContext()
	c.SetFill("red")
	c.Translate(5, 5)
	e := NewEllipse(c, 0, 0, 3, 3)

	c.SetFill("blue")
	c.SetStrokeWidth(4)
	c.Translate(100, 100)
	c.Rotate(90)

	if e.Style().Fill != "red" || e.Style().StrokeWidth != 1 {
		t.Fatalf("ellipse style changed after construction: %+v", e.Style())
	}
	want := Transform{{Kind: OpTranslate, X: 5, Y: 5}}
	if diff := cmp.Diff(want, e.Transform()); diff != "" {
		t.Fatalf("ellipse transform changed (-want +got):\n%s", diff)
	}
}

func TestPrimitivesReturnsCopy(t *testing.T) {
	c := NewContext()
	NewLine(c, 0, 0, 1, 1)
	ps := c.Primitives()
	ps[0] = nil
	if c.Primitives()[0] == nil {
		t.Fatalf("Primitives() exposed the internal slice")
	}
}

func TestNilContextUsesDefault(t *testing.T) {
	d := Default()
	d.Clear()
	t.Cleanup(d.Clear)
	NewTriangle(nil, 0, 0, 1, 0, 0, 1)
	if d.Len() != 1 {
		t.Fatalf("default context has %d primitives, want 1", d.Len())
	}
}
