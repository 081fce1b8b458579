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
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	applog "qdgraphics/internal/log"
	"qdgraphics/internal/sketch"
)

const (
	xmlProlog = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>` + "\n"
	svgNS     = `xmlns="http://www.w3.org/2000/svg"`
)

// SVGOptions controls SVG export behavior.
// Standalone adds the XML prolog and the SVG namespace so the file opens in
// browsers and editors; the bare form is what Render returns.
type SVGOptions struct {
	Standalone bool
}

// WriteSVG renders c and writes the document to w.
func WriteSVG(w io.Writer, c *sketch.Context, opt SVGOptions) error {
	doc, err := c.Render()
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}
	if opt.Standalone {
		doc = xmlProlog + strings.Replace(doc, "<svg ", "<svg "+svgNS+" ", 1)
	}
	_, err = io.WriteString(w, doc)
	return err
}

// SaveSVG writes the rendered context to path, creating parent directories.
// Nothing is written when rendering fails.
func SaveSVG(path string, c *sketch.Context, opt SVGOptions) error {
	var buf bytes.Buffer
	if err := WriteSVG(&buf, c, opt); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	applog.WithOperation(applog.WithComponent("export"), "svg").Info("svg written", "path", path, applog.Scene(c))
	return nil
}
