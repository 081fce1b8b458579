/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */
package export

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	applog "qdgraphics/internal/log"
	"qdgraphics/internal/sketch"
)

// PDFOptions controls PDF export behavior.
// Units are points (pt); one canvas unit maps to one point and the page is
// exactly the canvas size. Page origin is top-left, as in the SVG document.
type PDFOptions struct {
	Title string
}

// WritePDF draws every primitive of c, in recorded order, onto a single page.
func WritePDF(w io.Writer, c *sketch.Context, opt PDFOptions) error {
	prims := c.Primitives()
	// Shapes must be ended before anything is drawn.
	for i, p := range prims {
		if _, err := p.Serialize(); err != nil {
			return fmt.Errorf("primitive %d: %w", i, err)
		}
	}

	size := gofpdf.SizeType{Wd: float64(int(c.Width())), Ht: float64(int(c.Height()))}
	pdf := gofpdf.NewCustom(&gofpdf.InitType{UnitStr: "pt", Size: size})
	pdf.SetCreator("qdgraphics", false)
	if opt.Title != "" {
		pdf.SetTitle(opt.Title, true)
	}
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPageFormat("", size)

	l := applog.WithOperation(applog.WithComponent("export"), "pdf")
	for _, p := range prims {
		drawPrimitive(pdf, l, p)
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf: %w", err)
	}
	return nil
}

// SavePDF writes the PDF rendering of c to path.
func SavePDF(path string, c *sketch.Context, opt PDFOptions) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("ensure out dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := WritePDF(f, c, opt); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	applog.WithOperation(applog.WithComponent("export"), "pdf").Info("pdf written", "path", path, applog.Scene(c))
	return nil
}

func drawPrimitive(pdf *gofpdf.Fpdf, l *slog.Logger, p sketch.Primitive) {
	st := p.Style()
	fill := applyFill(pdf, l, st.Fill)
	stroke := applyStroke(pdf, l, st)

	pdf.TransformBegin()
	defer pdf.TransformEnd()
	for _, op := range p.Transform() {
		switch op.Kind {
		case sketch.OpTranslate:
			pdf.TransformTranslate(float64(int(op.X)), float64(int(op.Y)))
		case sketch.OpRotate:
			// SVG rotates clockwise on a y-down canvas; gofpdf rotates counter-clockwise.
			pdf.TransformRotate(-float64(int(op.X)), 0, 0)
		}
	}

	switch v := p.(type) {
	case *sketch.Ellipse:
		if s := styleStr(fill, stroke); s != "" {
			pdf.Ellipse(trunc(v.X), trunc(v.Y), trunc(v.RX), trunc(v.RY), 0, s)
		}
	case *sketch.Line:
		if stroke {
			pdf.Line(trunc(v.X1), trunc(v.Y1), trunc(v.X2), trunc(v.Y2))
		}
	case *sketch.Polygon:
		if s := styleStr(fill, stroke); s != "" {
			pdf.Polygon(pointTypes(v.Points()), s)
		}
	case *sketch.Shape:
		s := styleStr(fill, stroke)
		if s == "" {
			return
		}
		for _, contour := range v.Contours() {
			for i, pt := range contour {
				if i == 0 {
					pdf.MoveTo(trunc(pt.X), trunc(pt.Y))
					continue
				}
				pdf.LineTo(trunc(pt.X), trunc(pt.Y))
			}
			if v.Closed() {
				pdf.ClosePath()
			}
		}
		pdf.DrawPath(s)
	}
}

func applyFill(pdf *gofpdf.Fpdf, l *slog.Logger, p sketch.Paint) bool {
	c, err := ResolvePaint(p)
	if err != nil {
		if !errors.Is(err, ErrNoPaint) {
			l.Warn("fill treated as none", "err", err)
		}
		return false
	}
	pdf.SetFillColor(int(c.R), int(c.G), int(c.B))
	return true
}

func applyStroke(pdf *gofpdf.Fpdf, l *slog.Logger, st sketch.Style) bool {
	c, err := ResolvePaint(st.Stroke)
	if err != nil {
		if !errors.Is(err, ErrNoPaint) {
			l.Warn("stroke treated as none", "err", err)
		}
		return false
	}
	pdf.SetDrawColor(int(c.R), int(c.G), int(c.B))
	pdf.SetLineWidth(trunc(st.StrokeWidth))
	switch st.StrokeCap {
	case sketch.CapButt, sketch.CapRound, sketch.CapSquare:
		pdf.SetLineCapStyle(string(st.StrokeCap))
	default:
		pdf.SetLineCapStyle("butt")
	}
	return true
}

// styleStr returns the gofpdf paint operator, or "" when nothing is painted.
func styleStr(fill, stroke bool) string {
	switch {
	case fill && stroke:
		return "FD"
	case fill:
		return "F"
	case stroke:
		return "D"
	default:
		return ""
	}
}

func trunc(v float64) float64 { return float64(int(v)) }

func pointTypes(pts []sketch.Point) []gofpdf.PointType {
	out := make([]gofpdf.PointType, len(pts))
	for i, p := range pts {
		out[i] = gofpdf.PointType{X: trunc(p.X), Y: trunc(p.Y)}
	}
	return out
}
