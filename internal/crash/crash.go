/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package crash turns a panic in the CLI into a crash report and a best-effort
// autosave of the scene being drawn.
package crash

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"

	"qdgraphics/internal/export"
	applog "qdgraphics/internal/log"
	"qdgraphics/internal/sketch"
	"qdgraphics/internal/telemetry"
	"qdgraphics/internal/version"
)

// exitFn is used to allow testing of Recover without terminating the test process.
var exitFn = os.Exit

// Recover captures a panic, logs an error with stacktrace,
// writes an error report file, and attempts to autosave the scene
// of c (if provided) as a standalone SVG next to the report.
//
// Usage: defer func(){ crash.Recover(c) }()
func Recover(c *sketch.Context) {
	if r := recover(); r != nil {
		l := applog.WithComponent("crash")
		stack := debug.Stack()
		l.Error("panic recovered", slog.Any("panic", r), slog.String("stack", string(stack)))

		reportPath, _ := writeReport(c, r, stack)
		if c != nil {
			if path, err := autosave(c, reportPath); err != nil {
				l.Error("autosave scene failed", slog.Any("err", err))
			} else {
				l.Info("autosave scene written", slog.String("path", path))
			}
		}

		if _, err := fmt.Fprintf(os.Stderr, "A fatal error occurred. A crash report was saved to: %s\n", reportPath); err != nil {
			l.Error("failed to write crash message to stderr", slog.Any("err", err))
		}
		if _, err := fmt.Fprintf(os.Stderr, "Version: %s\nOS/Arch: %s/%s\n", version.String(), runtime.GOOS, runtime.GOARCH); err != nil {
			l.Error("failed to write version info to stderr", slog.Any("err", err))
		}
		// Exit with a non-zero code to indicate failure in CLI context.
		exitFn(2)
	}
}

func writeReport(c *sketch.Context, panicVal any, stack []byte) (string, error) {
	stamp := time.Now().Format("20060102-150405")
	path := filepath.Join(os.TempDir(), fmt.Sprintf("qdgraphics-crash-%s.log", stamp))

	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return path, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			applog.WithComponent("crash").Error("failed to close crash report file", slog.Any("err", err), slog.String("path", path))
		}
	}()

	var buf bytes.Buffer
	_, _ = fmt.Fprintf(&buf, "qdgraphics Crash Report\n")
	_, _ = fmt.Fprintf(&buf, "Timestamp: %s\n", time.Now().Format(time.RFC3339))
	_, _ = fmt.Fprintf(&buf, "Version: %s\n", version.String())
	_, _ = fmt.Fprintf(&buf, "OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	if c != nil {
		_, _ = fmt.Fprintf(&buf, "Canvas: %gx%g\n", c.Width(), c.Height())
		_, _ = fmt.Fprintf(&buf, "Primitives: %d\n", c.Len())
		_, _ = fmt.Fprintf(&buf, "StyleDepth: %d TransformDepth: %d\n", c.StyleDepth(), c.TransformDepth())
	}
	_, _ = fmt.Fprintf(&buf, "\nPanic: %v\n\n", panicVal)
	_, _ = fmt.Fprintf(&buf, "Stack:\n%s\n", string(stack))

	if _, err := f.Write(buf.Bytes()); err != nil {
		return path, err
	}
	_ = f.Sync()

	// optionally upload the crash report (opt-in via env)
	telemetry.Default().UploadCrash(buf.Bytes())
	return path, nil
}

// autosave writes the scene beside the report. Scenes that cannot be rendered
// (an unfinished shape, for instance) are reported as errors.
func autosave(c *sketch.Context, reportPath string) (string, error) {
	path := strings.TrimSuffix(reportPath, ".log") + ".svg"
	if err := export.SaveSVG(path, c, export.SVGOptions{Standalone: true}); err != nil {
		return "", err
	}
	return path, nil
}
