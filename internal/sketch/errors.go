/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sketch

import "errors"

var (
	// ErrInvalidState is returned by any Shape mutation after EndShape.
	ErrInvalidState = errors.New("once EndShape is called on a shape the only allowed call is Serialize")
	// ErrContourMismatch is returned by EndContour without an open BeginContour.
	ErrContourMismatch = errors.New("EndContour called without having first called BeginContour")
	// ErrNotEnded matches every *NotEndedError.
	ErrNotEnded = errors.New("shape is not ended")
	// ErrEmptyContour is returned when a contour without vertices is serialized.
	ErrEmptyContour = errors.New("contour has no vertices")
)

// NotEndedError is returned by Shape.Serialize while the shape is still being
// built. OpenContours counts contours opened with BeginContour that were not
// closed yet.
type NotEndedError struct {
	OpenContours int
}

func (e *NotEndedError) Error() string {
	if e.OpenContours > 0 {
		return "contour is not ended; did you remember to call EndContour?"
	}
	return "shape is not ended; did you remember to call EndShape?"
}

func (e *NotEndedError) Is(target error) bool { return target == ErrNotEnded }
