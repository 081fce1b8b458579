/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package sketch

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"
)

type element struct {
	Name  string
	Attrs map[string]string
}

// elements tokenizes doc and returns every start tag with its attributes.
func elements(t *testing.T, doc string) []element {
	t.Helper()
	l := xml.NewLexer(parse.NewInputString(doc))
	var out []element
	for {
		tt, _ := l.Next()
		switch tt {
		case xml.ErrorToken:
			if err := l.Err(); err != nil && !errors.Is(err, io.EOF) {
				t.Fatalf("tokenize %q: %v", doc, err)
			}
			return out
		case xml.StartTagToken:
			out = append(out, element{Name: string(l.Text()), Attrs: map[string]string{}})
		case xml.AttributeToken:
			if len(out) == 0 {
				t.Fatalf("attribute outside of element in %q", doc)
			}
			v := strings.Trim(string(l.AttrVal()), `"`)
			out[len(out)-1].Attrs[string(l.Text())] = v
		}
	}
}
