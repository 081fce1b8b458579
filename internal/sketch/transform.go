/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sketch

import (
	"slices"
	"strconv"
	"strings"
)

type TransformKind uint8

const (
	OpTranslate TransformKind = iota
	// OpRotate holds its angle in degrees in X.
	OpRotate
)

type TransformOp struct {
	Kind TransformKind
	X, Y float64
}

// Transform is one transform frame: the operations applied in call order.
// Its textual form is an SVG transform list, outermost first.
type Transform []TransformOp

// Clone returns an independent copy of t.
func (t Transform) Clone() Transform { return slices.Clone(t) }

// String formats the frame the way it appears in a transform attribute.
// Every fragment carries a leading space and integer-truncated arguments,
// so a single translate renders as " translate(5 5)".
func (t Transform) String() string {
	var b strings.Builder
	for _, op := range t {
		switch op.Kind {
		case OpTranslate:
			b.WriteString(" translate(")
			b.WriteString(strconv.Itoa(int(op.X)))
			b.WriteString(" ")
			b.WriteString(strconv.Itoa(int(op.Y)))
			b.WriteString(")")
		case OpRotate:
			b.WriteString(" rotate(")
			b.WriteString(strconv.Itoa(int(op.X)))
			b.WriteString(")")
		}
	}
	return b.String()
}
