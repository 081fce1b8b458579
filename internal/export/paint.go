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
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"qdgraphics/internal/sketch"
)

var (
	// ErrNoPaint is returned for the "no paint" sentinel and the CSS keyword none.
	ErrNoPaint = errors.New("no paint")
	// ErrUnknownPaint is returned for colours that are neither hex nor SVG colour names.
	ErrUnknownPaint = errors.New("unknown paint")
)

// ResolvePaint maps a paint string to an opaque RGB colour. It accepts #rgb,
// #rrggbb and the SVG 1.1 colour keywords, case-insensitively.
func ResolvePaint(p sketch.Paint) (color.RGBA, error) {
	s := strings.ToLower(strings.TrimSpace(string(p)))
	if s == "" || s == "none" {
		return color.RGBA{}, ErrNoPaint
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	if c, ok := colornames.Map[s]; ok {
		return c, nil
	}
	return color.RGBA{}, fmt.Errorf("%w: %q", ErrUnknownPaint, string(p))
}

func parseHex(h string) (color.RGBA, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: #%s", ErrUnknownPaint, h)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: #%s", ErrUnknownPaint, h)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
