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

package config

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"dirpx.dev/rtti/apis"
)

const (
	// DefaultMaxUnwrap represents the default for MaxUnwrap.
	// A value of 8 should be sufficient for all practical purposes.
	DefaultMaxUnwrap = 8
	// DefaultMapPreferElem represents the default for MapPreferElem.
	// When true, the value side of a map is its descriptor element.
	DefaultMapPreferElem = true
	// DefaultReadOnly represents the default for ReadOnly.
	// Registries start writable so startup registration can run.
	DefaultReadOnly = false
	// DefaultDetectCollisions represents the default for DetectCollisions.
	DefaultDetectCollisions = false
	// DefaultExportFields represents the default for ExportFields.
	DefaultExportFields = true
	// DefaultExportFunctions represents the default for ExportFunctions.
	DefaultExportFunctions = false
	// DefaultLogLevel represents the default for LogLevel.
	DefaultLogLevel = "info"
	// DefaultLogFormat represents the default for LogFormat.
	DefaultLogFormat = "text"
)

// NewConfig constructs an apis.Config from the given options.
func NewConfig(opts ...Option) apis.Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	// Ensure MaxUnwrap is valid.
	if cfg.MaxUnwrap < 0 {
		cfg.MaxUnwrap = DefaultMaxUnwrap
	}
	return cfg
}

// DefaultConfig is the default configuration used when none is provided.
func DefaultConfig() apis.Config {
	return apis.Config{
		MaxUnwrap:        DefaultMaxUnwrap,
		MapPreferElem:    DefaultMapPreferElem,
		ReadOnly:         DefaultReadOnly,
		DetectCollisions: DefaultDetectCollisions,
		ExportFields:     DefaultExportFields,
		ExportFunctions:  DefaultExportFunctions,
		LogLevel:         DefaultLogLevel,
		LogFormat:        DefaultLogFormat,
	}
}

// Option is a functional option that mutates an apis.Config during construction.
type Option func(*apis.Config)

// WithMaxUnwrap sets the MaxUnwrap option.
// A negative value resets to the default.
func WithMaxUnwrap(max int) Option {
	return func(c *apis.Config) {
		if max < 0 {
			c.MaxUnwrap = DefaultMaxUnwrap
			return
		}
		c.MaxUnwrap = max
	}
}

// WithMapPreferElem sets the MapPreferElem option.
func WithMapPreferElem(prefer bool) Option {
	return func(c *apis.Config) {
		c.MapPreferElem = prefer
	}
}

// WithReadOnly sets the initial state of the registration gate.
func WithReadOnly(ro bool) Option {
	return func(c *apis.Config) {
		c.ReadOnly = ro
	}
}

// WithDetectCollisions enables the identity collision assertion.
func WithDetectCollisions(detect bool) Option {
	return func(c *apis.Config) {
		c.DetectCollisions = detect
	}
}

// WithExport selects which optional sections an export contains.
func WithExport(fields, functions bool) Option {
	return func(c *apis.Config) {
		c.ExportFields = fields
		c.ExportFunctions = functions
	}
}

// WithLogging sets the log level and format. Empty values keep the current setting.
func WithLogging(level, format string) Option {
	return func(c *apis.Config) {
		if level != "" {
			c.LogLevel = level
		}
		if format != "" {
			c.LogFormat = format
		}
	}
}

// file mirrors the TOML layout accepted by Load.
type file struct {
	Registry struct {
		ReadOnly         *bool `toml:"read_only"`
		DetectCollisions *bool `toml:"detect_collisions"`
		MaxUnwrap        *int  `toml:"max_unwrap"`
		MapPreferElem    *bool `toml:"map_prefer_elem"`
	} `toml:"registry"`
	Export struct {
		Fields    *bool `toml:"fields"`
		Functions *bool `toml:"functions"`
	} `toml:"export"`
	Log struct {
		Level  string `toml:"level"`
		Format string `toml:"format"`
	} `toml:"log"`
}

// Load reads a TOML file and applies it on top of DefaultConfig, followed by opts.
// Keys missing from the file keep their defaults.
func Load(path string, opts ...Option) (apis.Config, error) {
	var f file
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return apis.Config{}, fmt.Errorf("rtti(config): decode %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return apis.Config{}, fmt.Errorf("rtti(config): unknown key %q in %s", undecoded[0].String(), path)
	}

	var fromFile []Option
	if v := f.Registry.ReadOnly; v != nil {
		fromFile = append(fromFile, WithReadOnly(*v))
	}
	if v := f.Registry.DetectCollisions; v != nil {
		fromFile = append(fromFile, WithDetectCollisions(*v))
	}
	if v := f.Registry.MaxUnwrap; v != nil {
		fromFile = append(fromFile, WithMaxUnwrap(*v))
	}
	if v := f.Registry.MapPreferElem; v != nil {
		fromFile = append(fromFile, WithMapPreferElem(*v))
	}
	if f.Export.Fields != nil || f.Export.Functions != nil {
		def := DefaultConfig()
		fields, functions := def.ExportFields, def.ExportFunctions
		if f.Export.Fields != nil {
			fields = *f.Export.Fields
		}
		if f.Export.Functions != nil {
			functions = *f.Export.Functions
		}
		fromFile = append(fromFile, WithExport(fields, functions))
	}
	fromFile = append(fromFile, WithLogging(f.Log.Level, f.Log.Format))

	return NewConfig(append(fromFile, opts...)...), nil
}
