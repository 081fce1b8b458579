/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package crash

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"qdgraphics/internal/sketch"
)

// TestRecover_PanickingScene ensures Recover handles a panic, writes a report,
// autosaves the scene, and does not terminate the test process due to injected exitFn.
func TestRecover_PanickingScene(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv("TMPDIR", tmp)

	// Capture stderr temporarily to avoid noisy test logs
	oldStderr := os.Stderr
	r, w, _ := os.Pipe()
	os.Stderr = w
	defer func() {
		_ = w.Close()
		os.Stderr = oldStderr
		_, _ = io.Copy(io.Discard, r) // drain pipe
	}()

	// Override exitFn to avoid os.Exit during test and to assert it was called
	called := 0
	oldExit := exitFn
	exitFn = func(code int) { called = code }
	defer func() { exitFn = oldExit }()

	c := sketch.NewContext()
	sketch.NewEllipse(c, 10, 10, 4, 4)

	func() {
		defer Recover(c)
		panic("boom")
	}()

	var report, scene string
	files, _ := os.ReadDir(tmp)
	for _, f := range files {
		switch {
		case strings.HasPrefix(f.Name(), "qdgraphics-crash-") && strings.HasSuffix(f.Name(), ".log"):
			report = filepath.Join(tmp, f.Name())
		case strings.HasPrefix(f.Name(), "qdgraphics-crash-") && strings.HasSuffix(f.Name(), ".svg"):
			scene = filepath.Join(tmp, f.Name())
		}
	}
	if report == "" || scene == "" {
		t.Fatalf("expected crash report and scene autosave, got %v", files)
	}
	b, err := os.ReadFile(report)
	if err != nil {
		t.Fatalf("read report: %v", err)
	}
	if !bytes.Contains(b, []byte("Panic: boom")) {
		t.Fatalf("report does not contain panic: %s", string(b))
	}
	svg, _ := os.ReadFile(scene)
	if !bytes.Contains(svg, []byte("<ellipse ")) {
		t.Fatalf("autosaved scene missing ellipse: %s", svg)
	}

	// Ensure exit was attempted with code 2 (but intercepted)
	if called != 2 {
		t.Fatalf("expected exit code 2, got %d", called)
	}
}

func TestRecover_NoPanicIsNoop(t *testing.T) {
	called := false
	oldExit := exitFn
	exitFn = func(int) { called = true }
	defer func() { exitFn = oldExit }()

	func() {
		defer Recover(nil)
	}()
	if called {
		t.Fatalf("exit should not be called without a panic")
	}
}
