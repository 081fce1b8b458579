/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package display hands rendered SVG documents to a viewer. Window opens a
// desktop window and is only functional in builds tagged fyne with cgo;
// FileViewer writes documents to disk and works everywhere.
package display

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	applog "qdgraphics/internal/log"
)

const svgNS = `xmlns="http://www.w3.org/2000/svg"`

// withNamespace adds the SVG namespace to a bare root element; image decoders
// need it to recognise the document.
func withNamespace(doc string) string {
	if strings.Contains(doc, "xmlns=") {
		return doc
	}
	return strings.Replace(doc, "<svg ", "<svg "+svgNS+" ", 1)
}

// FileViewer writes each shown document to Dir as sketch-<n>.svg and records
// the written paths in order.
type FileViewer struct {
	Dir   string
	Paths []string
}

func (v *FileViewer) Show(doc string) error {
	if err := os.MkdirAll(v.Dir, 0o755); err != nil {
		return fmt.Errorf("ensure viewer dir: %w", err)
	}
	p := filepath.Join(v.Dir, fmt.Sprintf("sketch-%d.svg", len(v.Paths)+1))
	if err := os.WriteFile(p, []byte(withNamespace(doc)), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	v.Paths = append(v.Paths, p)
	applog.WithComponent("display").Debug("document written", "path", p)
	return nil
}
