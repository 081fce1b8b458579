/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package sketchpack moves sketches between sketchbooks as a single .zip:
// a YAML manifest plus one SVG file per sketch.
package sketchpack

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	applog "qdgraphics/internal/log"
	"qdgraphics/internal/sketchbook"
)

const (
	manifestName = "sketchpack.yaml"
	formatName   = "qdgraphics-sketchpack"
	sketchDir    = "sketches/"
)

// Manifest is the index stored at the root of a pack.
type Manifest struct {
	Format   string    `yaml:"format"`
	Version  int       `yaml:"version"`
	Created  time.Time `yaml:"created"`
	Sketches []Item    `yaml:"sketches"`
}

// Item describes one packed sketch; File is relative to the archive root.
type Item struct {
	Name       string    `yaml:"name"`
	File       string    `yaml:"file"`
	Width      float64   `yaml:"width"`
	Height     float64   `yaml:"height"`
	Primitives int       `yaml:"primitives"`
	Updated    time.Time `yaml:"updated"`
}

// Store is the part of a sketchbook a pack reads from and writes to.
type Store interface {
	List(ctx context.Context) ([]sketchbook.Entry, error)
	Get(ctx context.Context, name string) (sketchbook.Entry, error)
	Put(ctx context.Context, e sketchbook.Entry) error
}

// Export zips every sketch of s into destZipPath and returns how many were
// packed. An empty sketchbook still produces an archive with a manifest.
func Export(ctx context.Context, s Store, destZipPath string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("sketchpack"), "export").With(slog.String("zip", destZipPath))
	if strings.TrimSpace(destZipPath) == "" {
		return 0, errors.New("destZipPath is required")
	}
	list, err := s.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("list sketches: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(destZipPath), 0o755); err != nil {
		return 0, fmt.Errorf("ensure zip dir: %w", err)
	}
	// On Windows, remove destination if present before create
	_ = os.Remove(destZipPath)

	zf, err := os.Create(destZipPath)
	if err != nil {
		return 0, fmt.Errorf("create zip: %w", err)
	}
	defer func() { _ = zf.Close() }()
	zw := zip.NewWriter(zf)

	m := Manifest{Format: formatName, Version: 1, Created: time.Now().UTC()}
	for i, meta := range list {
		e, err := s.Get(ctx, meta.Name)
		if err != nil {
			_ = zw.Close()
			return 0, err
		}
		file := fmt.Sprintf("%s%03d.svg", sketchDir, i+1)
		w, err := zw.Create(file)
		if err != nil {
			_ = zw.Close()
			return 0, fmt.Errorf("add %s: %w", file, err)
		}
		if _, err := io.WriteString(w, e.SVG); err != nil {
			_ = zw.Close()
			return 0, fmt.Errorf("write %s: %w", file, err)
		}
		m.Sketches = append(m.Sketches, Item{
			Name: e.Name, File: file, Width: e.Width, Height: e.Height,
			Primitives: e.Primitives, Updated: e.UpdatedAt.UTC(),
		})
	}

	data, err := yaml.Marshal(m)
	if err != nil {
		_ = zw.Close()
		return 0, err
	}
	w, err := zw.Create(manifestName)
	if err != nil {
		_ = zw.Close()
		return 0, fmt.Errorf("add manifest: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		_ = zw.Close()
		return 0, fmt.Errorf("write manifest: %w", err)
	}
	if err := zw.Close(); err != nil {
		return 0, fmt.Errorf("finish zip: %w", err)
	}
	l.Info("sketch pack exported", slog.Int("sketches", len(m.Sketches)))
	return len(m.Sketches), nil
}

// Install copies the sketches of the pack at packZipPath into s. Sketches
// whose name already exists are skipped, not overwritten. Returns the count
// installed.
func Install(ctx context.Context, s Store, packZipPath string) (int, error) {
	l := applog.WithOperation(applog.WithComponent("sketchpack"), "install").With(slog.String("zip", packZipPath))
	if strings.TrimSpace(packZipPath) == "" {
		return 0, errors.New("packZipPath is required")
	}
	r, err := zip.OpenReader(packZipPath)
	if err != nil {
		return 0, fmt.Errorf("open pack: %w", err)
	}
	defer func() { _ = r.Close() }()

	files := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		files[f.Name] = f
	}
	mf, ok := files[manifestName]
	if !ok {
		return 0, fmt.Errorf("pack has no %s", manifestName)
	}
	raw, err := readFile(mf)
	if err != nil {
		return 0, err
	}
	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return 0, fmt.Errorf("decode manifest: %w", err)
	}
	if m.Format != formatName {
		return 0, fmt.Errorf("not a sketch pack: format %q", m.Format)
	}

	installed := 0
	for _, it := range m.Sketches {
		if err := checkEntryPath(it.File); err != nil {
			return installed, err
		}
		if _, err := s.Get(ctx, it.Name); err == nil {
			l.Warn("skip existing sketch", slog.String("name", it.Name))
			continue
		} else if !errors.Is(err, sketchbook.ErrNotFound) {
			return installed, err
		}
		zf, ok := files[it.File]
		if !ok {
			return installed, fmt.Errorf("%s listed in manifest but missing", it.File)
		}
		svg, err := readFile(zf)
		if err != nil {
			return installed, err
		}
		e := sketchbook.Entry{
			Name: it.Name, Width: it.Width, Height: it.Height,
			Primitives: it.Primitives, SVG: string(svg), UpdatedAt: it.Updated,
		}
		if err := s.Put(ctx, e); err != nil {
			return installed, err
		}
		installed++
	}
	l.Info("sketch pack installed", slog.Int("sketches", installed))
	return installed, nil
}

// checkEntryPath rejects manifest paths that escape the sketches folder.
func checkEntryPath(p string) error {
	clean := path.Clean(p)
	if clean != p || !strings.HasPrefix(clean, sketchDir) || strings.Contains(clean, "..") || strings.Contains(clean, "\\") {
		return fmt.Errorf("illegal file path in pack: %q", p)
	}
	return nil
}

func readFile(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", f.Name, err)
	}
	defer func() { _ = rc.Close() }()
	return io.ReadAll(rc)
}
