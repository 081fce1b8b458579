/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import "strings"

// Sketch is a parsed sketch file: an optional canvas size and the list of
// drawing calls to replay.
type Sketch struct {
	Size []float64 `yaml:"size" json:"size"`
	Ops  []Op      `yaml:"ops" json:"ops"`
}

// Op is one drawing call. Only the fields meaningful for Name are read.
type Op struct {
	Name  string    `yaml:"op" json:"op"`
	Args  []float64 `yaml:"args,omitempty" json:"args,omitempty"`
	Color string    `yaml:"color,omitempty" json:"color,omitempty"`
	Cap   string    `yaml:"cap,omitempty" json:"cap,omitempty"`
	Close bool      `yaml:"close,omitempty" json:"close,omitempty"`
}

// Problem is a single schema violation, located by its JSON pointer-like field path.
type Problem struct {
	Field   string
	Message string
}

func (p Problem) String() string { return p.Field + ": " + p.Message }

// ValidationError reports every problem found while checking a sketch file.
type ValidationError struct {
	Problems []Problem
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.String()
	}
	return "invalid sketch: " + strings.Join(parts, "; ")
}
