/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package export

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/spf13/afero"
	"go.yaml.in/yaml/v3"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed schema/document.schema.json
var schemaBytes []byte

var (
	compiledSchema *jsonschema.Schema
	compileOnce    sync.Once
	compileErr     error
	printer        = message.NewPrinter(language.English)
)

// Issue is one schema violation.
type Issue struct {
	Path    string // instance location, e.g. "/types/0/id"
	Keyword string
	Message string
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return i.Path + ": " + i.Message
}

func getSchema() (*jsonschema.Schema, error) {
	compileOnce.Do(func() {
		doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(schemaBytes))
		if err != nil {
			compileErr = fmt.Errorf("unmarshal schema: %w", err)
			return
		}
		c := jsonschema.NewCompiler()
		if err := c.AddResource("document.schema.json", doc); err != nil {
			compileErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		if compiledSchema, err = c.Compile("document.schema.json"); err != nil {
			compileErr = fmt.Errorf("compile schema: %w", err)
		}
	})
	return compiledSchema, compileErr
}

// Validate checks a document against the embedded JSON Schema. The error
// wraps ErrInvalidDocument when the document is well-formed but violates the
// schema; the issues list every violation.
func Validate(doc Document) ([]Issue, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, err
	}
	return validateJSON(data)
}

// ValidateFile validates the raw contents of a document file. JSON and YAML
// documents are checked as written, so unknown members are reported; HCL
// documents are checked after decoding.
func ValidateFile(fs afero.Fs, path string) ([]Issue, error) {
	f, compressed, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := readRaw(fs, path, compressed)
	if err != nil {
		return nil, err
	}
	switch f {
	case FormatJSON:
		return validateJSON(data)
	case FormatYAML:
		var raw any
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("parse yaml: %w", err)
		}
		if data, err = json.Marshal(raw); err != nil {
			return nil, fmt.Errorf("convert yaml: %w", err)
		}
		return validateJSON(data)
	default:
		doc, err := Decode(data, f)
		if err != nil {
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		return Validate(doc)
	}
}

func validateJSON(data []byte) ([]Issue, error) {
	schema, err := getSchema()
	if err != nil {
		return nil, err
	}
	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse json: %w", err)
	}
	err = schema.Validate(inst)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, err
	}
	var issues []Issue
	collect(ve, &issues)
	if len(issues) == 0 {
		issues = []Issue{{Message: ve.Error()}}
	}
	return issues, fmt.Errorf("%w: %d issue(s)", ErrInvalidDocument, len(issues))
}

// collect gathers the leaf errors of a validation tree.
func collect(ve *jsonschema.ValidationError, issues *[]Issue) {
	if len(ve.Causes) > 0 {
		for _, c := range ve.Causes {
			collect(c, issues)
		}
		return
	}
	var keyword, msg string
	if ve.ErrorKind != nil {
		if kp := ve.ErrorKind.KeywordPath(); len(kp) > 0 {
			keyword = kp[len(kp)-1]
		}
		msg = ve.ErrorKind.LocalizedString(printer)
	}
	if keyword == "" || keyword == "$ref" {
		return
	}
	path := ""
	if len(ve.InstanceLocation) > 0 {
		path = "/" + strings.Join(ve.InstanceLocation, "/")
	}
	*issues = append(*issues, Issue{Path: path, Keyword: keyword, Message: msg})
}
