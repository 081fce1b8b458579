/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package sketch records Processing-style drawing calls into a scene and
// serializes that scene to SVG.
//
// A Context owns a style stack, a transform stack and the ordered list of
// recorded primitives. Every primitive constructor appends the new primitive
// to its Context and freezes a copy of the current style and transform, so
// later Context changes never reach shapes that already exist:
//
//	c := sketch.NewContext()
//	c.Translate(5, 5)
//	sketch.NewEllipse(c, 0, 0, 3, 3)
//	c.Translate(100, 100) // does not move the ellipse
//	doc, err := c.Render()
//
// Shape builds multi-contour paths with an explicit Building -> Ended
// lifecycle; it is the only part of the package that returns errors during
// construction.
//
// A Context is not safe for concurrent use. Default returns the process-wide
// instance used by the qd convenience package.
package sketch
