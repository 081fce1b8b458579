//go:build fyne && cgo

/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package display

import (
	"fmt"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	applog "qdgraphics/internal/log"
)

// Window shows each document in a desktop window and blocks until it is closed.
type Window struct {
	Title string
}

// Show opens the window and returns once the user closes it.
func (w *Window) Show(doc string) error {
	l := applog.WithComponent("display")
	img := sketchImage(doc)
	fyneApp := app.NewWithID("qdgraphics")
	title := w.Title
	if strings.TrimSpace(title) == "" {
		title = "qdgraphics"
	}
	win := fyneApp.NewWindow(title)

	prefs := fyneApp.Preferences()
	winW := prefs.IntWithFallback("viewer.width", 640)
	winH := prefs.IntWithFallback("viewer.height", 480)
	if winW < 200 {
		winW = 200
	}
	if winH < 150 {
		winH = 150
	}
	win.Resize(fyne.NewSize(float32(winW), float32(winH)))
	win.SetOnClosed(func() {
		sz := win.Canvas().Size()
		prefs.SetInt("viewer.width", int(sz.Width))
		prefs.SetInt("viewer.height", int(sz.Height))
	})

	status := widget.NewLabel(fmt.Sprintf("%d bytes", len(doc)))
	win.SetContent(container.NewBorder(nil, status, nil, nil, img))
	l.Info("viewer opened", "title", title)
	win.ShowAndRun()
	return nil
}

// sketchImage wraps the document as an in-memory SVG resource.
func sketchImage(doc string) *canvas.Image {
	res := fyne.NewStaticResource("sketch.svg", []byte(withNamespace(doc)))
	img := canvas.NewImageFromResource(res)
	img.FillMode = canvas.ImageFillContain
	if w, h, ok := rootSize(doc); ok {
		img.SetMinSize(fyne.NewSize(w, h))
	}
	return img
}

// rootSize reads the width and height attributes of the root element.
func rootSize(doc string) (float32, float32, bool) {
	attr := func(name string) (float32, bool) {
		i := strings.Index(doc, name+`="`)
		if i < 0 {
			return 0, false
		}
		rest := doc[i+len(name)+2:]
		j := strings.IndexByte(rest, '"')
		if j < 0 {
			return 0, false
		}
		v, err := strconv.ParseFloat(rest[:j], 32)
		return float32(v), err == nil
	}
	w, okW := attr("width")
	h, okH := attr("height")
	return w, h, okW && okH
}
