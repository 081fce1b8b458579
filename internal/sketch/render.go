/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sketch

import (
	"fmt"
	"strings"
)

// Render wraps the serialized primitives, in order and without separators,
// in an svg root element with integer width and height.
func Render(width, height float64, prims []Primitive) (string, error) {
	var b strings.Builder
	fmt.Fprintf(&b, `<svg width="%d" height="%d">`, int(width), int(height))
	for i, p := range prims {
		s, err := p.Serialize()
		if err != nil {
			return "", fmt.Errorf("primitive %d: %w", i, err)
		}
		b.WriteString(s)
	}
	b.WriteString("</svg>")
	return b.String(), nil
}
