/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package sketchpack

import (
	"archive/zip"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"qdgraphics/internal/sketch"
	"qdgraphics/internal/sketchbook"
)

func openStore(t *testing.T) *sketchbook.Store {
	t.Helper()
	s, err := sketchbook.OpenSQLite(context.Background(), filepath.Join(t.TempDir(), "sb.sqlite"))
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func saveRect(t *testing.T, s *sketchbook.Store, name string, w float64) {
	t.Helper()
	c := sketch.NewContext()
	c.Size(w, 10)
	sketch.NewRect(c, 0, 0, 1, 1)
	if err := s.Save(context.Background(), name, c); err != nil {
		t.Fatalf("Save: %v", err)
	}
}

func TestExportAndInstallPack(t *testing.T) {
	ctx := context.Background()
	src := openStore(t)
	saveRect(t, src, "a", 10)
	saveRect(t, src, "b", 20)

	zipPath := filepath.Join(t.TempDir(), "out", "pack.zip")
	n, err := Export(ctx, src, zipPath)
	if err != nil || n != 2 {
		t.Fatalf("Export = %d, %v", n, err)
	}

	dst := openStore(t)
	saveRect(t, dst, "b", 99)
	n, err = Install(ctx, dst, zipPath)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if n != 1 {
		t.Fatalf("installed %d, want 1 (b exists)", n)
	}
	a, err := dst.Get(ctx, "a")
	if err != nil {
		t.Fatalf("Get a: %v", err)
	}
	orig, _ := src.Get(ctx, "a")
	if a.SVG != orig.SVG || a.Width != 10 || a.Primitives != 1 {
		t.Fatalf("installed entry differs: %+v", a)
	}
	b, _ := dst.Get(ctx, "b")
	if b.Width != 99 {
		t.Fatalf("existing sketch was overwritten: %+v", b)
	}
}

func TestExportEmptyHasManifest(t *testing.T) {
	if _, err := Export(context.Background(), openStore(t), ""); err == nil {
		t.Fatalf("expected error on empty path")
	}
	zipPath := filepath.Join(t.TempDir(), "empty.zip")
	n, err := Export(context.Background(), openStore(t), zipPath)
	if err != nil || n != 0 {
		t.Fatalf("Export = %d, %v", n, err)
	}
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		t.Fatalf("open zip: %v", err)
	}
	defer r.Close()
	if len(r.File) != 1 || r.File[0].Name != manifestName {
		t.Fatalf("unexpected entries: %v", r.File)
	}
}

func writeZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "pack.zip")
	f, err := os.Create(p)
	if err != nil {
		t.Fatalf("create zip: %v", err)
	}
	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create entry: %v", err)
		}
		if _, err := w.Write([]byte(body)); err != nil {
			t.Fatalf("write entry: %v", err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()
	return p
}

func TestInstallRejectsBadPacks(t *testing.T) {
	cases := map[string]map[string]string{
		"no manifest":  {"sketches/001.svg": "<svg></svg>"},
		"wrong format": {manifestName: "format: other\n"},
		"zip slip": {
			manifestName: "format: qdgraphics-sketchpack\nsketches:\n  - {name: evil, file: sketches/../../evil.svg}\n",
		},
		"outside dir": {
			manifestName: "format: qdgraphics-sketchpack\nsketches:\n  - {name: x, file: x.svg}\n",
			"x.svg":      "<svg></svg>",
		},
		"missing file": {
			manifestName: "format: qdgraphics-sketchpack\nsketches:\n  - {name: x, file: sketches/001.svg}\n",
		},
	}
	for name, entries := range cases {
		t.Run(name, func(t *testing.T) {
			s := openStore(t)
			if _, err := Install(context.Background(), s, writeZip(t, entries)); err == nil {
				t.Fatalf("expected error")
			}
			list, _ := s.List(context.Background())
			if len(list) != 0 {
				t.Fatalf("nothing should be installed: %v", list)
			}
		})
	}
}

func TestCheckEntryPath(t *testing.T) {
	for _, p := range []string{"sketches/001.svg", "sketches/sub/a.svg"} {
		if err := checkEntryPath(p); err != nil {
			t.Fatalf("%q rejected: %v", p, err)
		}
	}
	for _, p := range []string{"/sketches/a.svg", "sketches/../a.svg", "other/a.svg", "sketches/./a.svg", `sketches\a.svg`} {
		if err := checkEntryPath(p); err == nil || !strings.Contains(err.Error(), "illegal") {
			t.Fatalf("%q accepted", p)
		}
	}
}
