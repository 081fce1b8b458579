/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"qdgraphics/internal/config"
	"qdgraphics/internal/crash"
	"qdgraphics/internal/display"
	"qdgraphics/internal/export"
	applog "qdgraphics/internal/log"
	"qdgraphics/internal/qd"
	"qdgraphics/internal/script"
	"qdgraphics/internal/sketchbook"
	"qdgraphics/internal/sketchpack"
	"qdgraphics/internal/telemetry"
	"qdgraphics/internal/version"
)

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "qdsketch: quick-and-dirty SVG sketches")
	_, _ = fmt.Fprintf(w, "Version: %s\n", version.String())
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintln(w, "Usage:")
	_, _ = fmt.Fprintln(w, "  qdsketch version|-v|--version         Show version")
	_, _ = fmt.Fprintln(w, "  qdsketch render <sketch> [out.svg]    Render a sketch file to SVG (stdout when no out)")
	_, _ = fmt.Fprintln(w, "  qdsketch pdf <sketch> <out.pdf>       Render a sketch file to PDF")
	_, _ = fmt.Fprintln(w, "  qdsketch save <sketch> <name>         Render and store a sketch in the sketchbook")
	_, _ = fmt.Fprintln(w, "  qdsketch list                         List stored sketches")
	_, _ = fmt.Fprintln(w, "  qdsketch show <name> [out.svg]        Print or write a stored sketch")
	_, _ = fmt.Fprintln(w, "  qdsketch delete <name>                Remove a stored sketch")
	_, _ = fmt.Fprintln(w, "  qdsketch pack <out.zip>               Export every stored sketch to a zip pack")
	_, _ = fmt.Fprintln(w, "  qdsketch unpack <pack.zip>            Import sketches from a pack, skipping existing names")
	_, _ = fmt.Fprintln(w, "  qdsketch view <sketch> [dir]          Open a sketch in a window (build with -tags fyne), or write it to dir")
}

func main() {
	cfg, dsn, err := config.Load()
	applog.Init(cfg.LogOptions())
	l := applog.WithComponent("cli")
	if err != nil {
		l.Warn("config not loaded; using defaults", slog.Any("err", err))
	}
	sc := qd.Context()
	defer func() { crash.Recover(sc) }()

	l.Debug("start", slog.Int("args", len(os.Args)))
	code := run(os.Args[1:], cfg, dsn, os.Stdout, os.Stderr)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	telemetry.Default().Flush(ctx)
	cancel()
	os.Exit(code)
}

// usageError marks errors caused by bad arguments; they exit with code 2.
type usageError string

func (e usageError) Error() string { return string(e) }

func run(args []string, cfg config.AppConfig, dsn string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stdout)
		return 0
	}
	err := dispatch(args, cfg, dsn, stdout)
	switch err.(type) {
	case nil:
		switch args[0] {
		case "render", "pdf", "save", "view":
			telemetry.Default().Track(args[0], telemetry.SceneProps(qd.Context()))
		}
		return 0
	case usageError:
		_, _ = fmt.Fprintln(stderr, err)
		usage(stderr)
		return 2
	default:
		applog.WithComponent("cli").Error("command failed", slog.String("cmd", args[0]), slog.Any("err", err))
		_, _ = fmt.Fprintln(stderr, "Error:", err)
		return 1
	}
}

func dispatch(args []string, cfg config.AppConfig, dsn string, stdout io.Writer) error {
	ctx := context.Background()
	switch args[0] {
	case "version", "--version", "-v":
		_, _ = fmt.Fprintln(stdout, "qdsketch")
		_, _ = fmt.Fprintln(stdout, version.String())
		return nil
	case "render":
		if len(args) < 2 {
			return usageError("render requires <sketch>")
		}
		if err := replayFile(args[1]); err != nil {
			return err
		}
		opt := export.SVGOptions{Standalone: cfg.Export.Standalone}
		if len(args) >= 3 {
			if err := export.SaveSVG(args[2], qd.Context(), opt); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(stdout, "Wrote", args[2])
			return nil
		}
		if err := export.WriteSVG(stdout, qd.Context(), opt); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(stdout)
		return nil
	case "pdf":
		if len(args) < 3 {
			return usageError("pdf requires <sketch> and <out.pdf>")
		}
		if err := replayFile(args[1]); err != nil {
			return err
		}
		if err := export.SavePDF(args[2], qd.Context(), export.PDFOptions{Title: cfg.Export.PDFTitle}); err != nil {
			return err
		}
		_, _ = fmt.Fprintln(stdout, "Wrote", args[2])
		return nil
	case "save":
		if len(args) < 3 {
			return usageError("save requires <sketch> and <name>")
		}
		if err := replayFile(args[1]); err != nil {
			return err
		}
		return withStore(ctx, cfg, dsn, func(s *sketchbook.Store) error {
			if err := s.Save(ctx, args[2], qd.Context()); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "Saved %q\n", args[2])
			return nil
		})
	case "list":
		return withStore(ctx, cfg, dsn, func(s *sketchbook.Store) error {
			entries, err := s.List(ctx)
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "NAME\tSIZE\tPRIMITIVES\tUPDATED")
			for _, e := range entries {
				_, _ = fmt.Fprintf(tw, "%s\t%gx%g\t%d\t%s\n", e.Name, e.Width, e.Height, e.Primitives, e.UpdatedAt.Local().Format(time.DateTime))
			}
			return tw.Flush()
		})
	case "show":
		if len(args) < 2 {
			return usageError("show requires <name>")
		}
		return withStore(ctx, cfg, dsn, func(s *sketchbook.Store) error {
			e, err := s.Get(ctx, args[1])
			if err != nil {
				return err
			}
			if len(args) >= 3 {
				if err := os.WriteFile(args[2], []byte(e.SVG), 0o644); err != nil {
					return err
				}
				_, _ = fmt.Fprintln(stdout, "Wrote", args[2])
				return nil
			}
			_, _ = fmt.Fprintln(stdout, e.SVG)
			return nil
		})
	case "delete":
		if len(args) < 2 {
			return usageError("delete requires <name>")
		}
		return withStore(ctx, cfg, dsn, func(s *sketchbook.Store) error {
			if err := s.Delete(ctx, args[1]); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "Deleted %q\n", args[1])
			return nil
		})
	case "pack":
		if len(args) < 2 {
			return usageError("pack requires <out.zip>")
		}
		return withStore(ctx, cfg, dsn, func(s *sketchbook.Store) error {
			n, err := sketchpack.Export(ctx, s, args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "Packed %d sketches into %s\n", n, args[1])
			return nil
		})
	case "unpack":
		if len(args) < 2 {
			return usageError("unpack requires <pack.zip>")
		}
		return withStore(ctx, cfg, dsn, func(s *sketchbook.Store) error {
			n, err := sketchpack.Install(ctx, s, args[1])
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintf(stdout, "Installed %d sketches\n", n)
			return nil
		})
	case "view":
		if len(args) < 2 {
			return usageError("view requires <sketch>")
		}
		if err := replayFile(args[1]); err != nil {
			return err
		}
		if len(args) >= 3 {
			v := &display.FileViewer{Dir: args[2]}
			if err := qd.Draw(v); err != nil {
				return err
			}
			_, _ = fmt.Fprintln(stdout, "Wrote", v.Paths[0])
			return nil
		}
		return qd.Draw(&display.Window{Title: args[1]})
	default:
		return usageError(fmt.Sprintf("unknown command %q", args[0]))
	}
}

// replayFile loads a sketch file and replays it onto the shared context.
func replayFile(path string) error {
	s, err := script.Load(path)
	if err != nil {
		return err
	}
	return s.Replay(qd.Context())
}

func withStore(ctx context.Context, cfg config.AppConfig, dsn string, fn func(*sketchbook.Store) error) error {
	s, err := sketchbook.Open(ctx, cfg.Sketchbook, dsn)
	if err != nil {
		return err
	}
	defer func() { _ = s.Close() }()
	return fn(s)
}
