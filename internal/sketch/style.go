/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sketch

import (
	"strconv"
	"strings"
)

// Styles and paint definitions.

// Paint is a colour value passed through to the output verbatim
// ("red", "#ff0000", ...). The zero value means no paint.
type Paint string

// NoPaint disables fill or stroke.
const NoPaint Paint = ""

// IsNone reports whether p is the no-paint sentinel.
func (p Paint) IsNone() bool { return p == NoPaint }

type Cap string

const (
	CapInherit Cap = "inherit"
	CapButt    Cap = "butt"
	CapRound   Cap = "round"
	CapSquare  Cap = "square"
)

// Style holds the paint attributes of one style frame or one primitive.
// It is a plain value: assigning it copies it.
type Style struct {
	Fill        Paint
	Stroke      Paint
	StrokeWidth float64
	StrokeCap   Cap
}

// DefaultStyle returns white fill with a 1 unit black stroke.
func DefaultStyle() Style {
	return Style{Fill: "white", Stroke: "black", StrokeWidth: 1, StrokeCap: CapInherit}
}

// NewStyleFrom copy-constructs a style from s.
func NewStyleFrom(s Style) Style {
	return Style{Fill: s.Fill, Stroke: s.Stroke, StrokeWidth: s.StrokeWidth, StrokeCap: s.StrokeCap}
}

// CSS returns the inline style declaration, fill before stroke.
// StrokeCap is tracked but not emitted.
func (s Style) CSS() string {
	var b strings.Builder
	if !s.Fill.IsNone() {
		b.WriteString("fill:")
		b.WriteString(string(s.Fill))
		b.WriteString(";")
	}
	if !s.Stroke.IsNone() {
		b.WriteString("stroke:")
		b.WriteString(string(s.Stroke))
		b.WriteString(";stroke-width:")
		b.WriteString(strconv.Itoa(int(s.StrokeWidth)))
		b.WriteString(";")
	}
	return b.String()
}
