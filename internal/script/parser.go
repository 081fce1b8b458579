/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package script

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	gojsonschema "github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"

	applog "qdgraphics/internal/log"
)

//go:embed sketch.schema.json
var schemaJSON []byte

var schemaLoader = gojsonschema.NewBytesLoader(schemaJSON)

// Parse validates data (YAML or JSON, since JSON is a YAML subset) against the
// sketch schema and decodes it. Schema violations are returned as a
// *ValidationError.
func Parse(data []byte) (*Sketch, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode sketch: %w", err)
	}
	if doc == nil {
		return nil, &ValidationError{Problems: []Problem{{Field: "(root)", Message: "empty document"}}}
	}
	res, err := gojsonschema.Validate(schemaLoader, gojsonschema.NewGoLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate sketch: %w", err)
	}
	if !res.Valid() {
		ve := &ValidationError{}
		for _, e := range res.Errors() {
			ve.Problems = append(ve.Problems, Problem{Field: e.Field(), Message: e.Description()})
		}
		return nil, ve
	}
	var s Sketch
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode sketch: %w", err)
	}
	return &s, nil
}

// Load reads and parses the sketch file at path.
func Load(path string) (*Sketch, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			applog.WithComponent("script").Warn("sketch failed validation", "path", path, "problems", len(ve.Problems))
		}
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
