/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package export

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"qdgraphics/internal/sketch"
)

func sampleContext() *sketch.Context {
	c := sketch.NewContext()
	c.Size(120, 80)
	c.SetFill("#3366cc")
	c.Translate(10, 10)
	sketch.NewRect(c, 0, 0, 40, 20)
	c.Rotate(45)
	c.SetStrokeCap(sketch.CapRound)
	sketch.NewLine(c, 0, 0, 30, 0)
	c.NoFill()
	sketch.NewEllipse(c, 50, 40, 10, 5)
	s := sketch.NewShape(c)
	_ = s.Vertex(0, 0)
	_ = s.Vertex(20, 0)
	_ = s.Vertex(20, 20)
	_ = s.BeginContour()
	_ = s.Vertex(5, 5)
	_ = s.Vertex(10, 5)
	_ = s.EndContour()
	_ = s.EndShape(true)
	return c
}

func TestWriteSVGBare(t *testing.T) {
	c := sampleContext()
	var buf bytes.Buffer
	if err := WriteSVG(&buf, c, SVGOptions{}); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	want, err := c.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if buf.String() != want {
		t.Fatalf("bare output differs from Render:\n%s\n%s", buf.String(), want)
	}
}

func TestWriteSVGStandalone(t *testing.T) {
	c := sampleContext()
	var buf bytes.Buffer
	if err := WriteSVG(&buf, c, SVGOptions{Standalone: true}); err != nil {
		t.Fatalf("WriteSVG: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(out, "<?xml ") {
		t.Fatalf("missing prolog: %q", out[:40])
	}
	if !strings.Contains(out, `<svg xmlns="http://www.w3.org/2000/svg" width="120" height="80">`) {
		t.Fatalf("missing namespace on root: %q", out)
	}
	if strings.Count(out, "xmlns=") != 1 {
		t.Fatalf("namespace should be added once")
	}
}

func TestSaveSVG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "out.svg")
	if err := SaveSVG(path, sampleContext(), SVGOptions{Standalone: true}); err != nil {
		t.Fatalf("SaveSVG: %v", err)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.HasSuffix(b, []byte("</svg>")) {
		t.Fatalf("unexpected file content: %q", b)
	}
}

func TestSaveSVGRenderErrorWritesNothing(t *testing.T) {
	c := sketch.NewContext()
	sketch.NewShape(c)
	path := filepath.Join(t.TempDir(), "bad.svg")
	if err := SaveSVG(path, c, SVGOptions{}); !errors.Is(err, sketch.ErrNotEnded) {
		t.Fatalf("SaveSVG: err = %v, want ErrNotEnded", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("file should not exist, stat err = %v", err)
	}
}
