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

package export_test

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dirpx.dev/rtti/builder"
	"dirpx.dev/rtti/config"
	"dirpx.dev/rtti/export"
	"dirpx.dev/rtti/identity"
	"dirpx.dev/rtti/registry"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
)

type Entry struct {
	Message string
	Level   Level
	Tags    []string
	Cache   map[string]int
}

func (e *Entry) Prefix(s string) { e.Message = s + e.Message }

type Stable struct{}

func newRegistry(t *testing.T, opts ...config.Option) *registry.Registry {
	t.Helper()
	reg := registry.New(config.NewConfig(opts...), nil)

	l := builder.Register[Level](reg)
	builder.Value(l, "Debug", Debug)
	builder.Value(l, "Info", Info)
	builder.Value(l, "Warn", Warn)

	reg.PushGroup("app")
	e := builder.Register[Entry](reg)
	builder.Field(e, "Message", func(e *Entry) *string { return &e.Message })
	builder.Field(e, "Level", func(e *Entry) *Level { return &e.Level })
	builder.Field(e, "Tags", func(e *Entry) *[]string { return &e.Tags })
	builder.Field(e, "Cache", func(e *Entry) *map[string]int { return &e.Cache }).Transient()
	e.AddFunction("Prefix").Method((*Entry).Prefix)
	builder.Attr[Stable](e, Stable{})
	reg.PopGroup()
	return reg
}

func TestBuild(t *testing.T) {
	reg := newRegistry(t)
	doc := export.Build(reg)

	assert.Equal(t, export.DocumentVersion, doc.Version)
	require.Len(t, doc.Types, 2)

	level := doc.Types[0]
	assert.Equal(t, "dirpx.dev/rtti/export_test.Level", level.Name)
	assert.Len(t, level.ID, 16)
	assert.Equal(t, 1, level.Version)
	assert.Empty(t, level.Scope)
	assert.Equal(t, []export.ValueDoc{{Name: "Debug", Code: 0}, {Name: "Info", Code: 1}, {Name: "Warn", Code: 2}}, level.Values)

	entry := doc.Types[1]
	assert.Equal(t, "app", entry.Scope)
	require.Len(t, entry.Fields, 4)
	assert.Equal(t, "Message", entry.Fields[0].Name)
	assert.Equal(t, "string", entry.Fields[0].Type)
	assert.Equal(t, "string", entry.Fields[0].Schema)
	assert.Equal(t, "list of string", entry.Fields[2].Schema)
	assert.True(t, entry.Fields[2].Reference)
	assert.True(t, entry.Fields[3].Transient)
	assert.False(t, entry.Fields[1].Transient)
	assert.Equal(t, []string{fmtID(identity.Of[Stable]())}, entry.Attributes)

	// functions are off by default
	assert.Empty(t, entry.Functions)
}

func fmtID(id uint64) string {
	const digits = "0123456789abcdef"
	b := make([]byte, 16)
	for i := 15; i >= 0; i-- {
		b[i] = digits[id&0xf]
		id >>= 4
	}
	return string(b)
}

func TestBuildOptions(t *testing.T) {
	reg := newRegistry(t, config.WithExport(false, true))

	doc := export.Build(reg)
	entry := doc.Types[1]
	assert.Empty(t, entry.Fields)
	require.Len(t, entry.Functions, 1)
	assert.Equal(t, "Prefix", entry.Functions[0].Name)
	assert.Equal(t, "void", entry.Functions[0].Return)
	assert.Equal(t, []export.ParamDoc{{Name: "p0", Type: "string"}}, entry.Functions[0].Params)

	doc = export.Build(reg, export.WithFields(true), export.WithFunctions(false))
	assert.Len(t, doc.Types[1].Fields, 4)
	assert.Empty(t, doc.Types[1].Functions)
}

func TestBuildLatestVersion(t *testing.T) {
	reg := newRegistry(t)
	builder.Register[Entry](reg)

	doc := export.Build(reg)
	require.Len(t, doc.Types, 2)
	assert.Equal(t, 2, doc.Types[1].Version)
	assert.Empty(t, doc.Types[1].Fields)
}

func TestExportRoundTrip(t *testing.T) {
	reg := newRegistry(t, config.WithExport(true, true))
	want := export.Build(reg)

	for _, path := range []string{
		"out/types.json",
		"out/types.yaml",
		"out/types.yml",
		"out/types.hcl",
		"out/types.json.zst",
		"out/types.hcl.zst",
	} {
		t.Run(path, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			require.NoError(t, export.Export(fs, path, reg))

			got, err := export.Read(fs, path)
			require.NoError(t, err)
			if diff := cmp.Diff(want, got, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("document mismatch (-want +got):\n%s", diff)
			}

			entries, err := afero.ReadDir(fs, filepath.Dir(path))
			require.NoError(t, err)
			require.Len(t, entries, 1, "temporary files left behind")
			assert.Equal(t, filepath.Base(path), entries[0].Name())
		})
	}
}

func TestExportOverwrite(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "types.json", []byte("stale"), 0o644))

	reg := newRegistry(t)
	require.NoError(t, export.Export(fs, "types.json", reg))

	doc, err := export.Read(fs, "types.json")
	require.NoError(t, err)
	assert.Len(t, doc.Types, 2)
}

func TestExportFormatOverride(t *testing.T) {
	fs := afero.NewMemMapFs()
	reg := newRegistry(t)

	err := export.Export(fs, "types.txt", reg)
	require.ErrorIs(t, err, export.ErrUnsupportedFormat)

	require.NoError(t, export.Export(fs, "types.txt", reg, export.WithFormat(export.FormatYAML)))
	data, err := afero.ReadFile(fs, "types.txt")
	require.NoError(t, err)
	doc, err := export.Decode(data, export.FormatYAML)
	require.NoError(t, err)
	assert.Len(t, doc.Types, 2)
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path       string
		format     export.Format
		compressed bool
		wantErr    bool
	}{
		{"a.json", export.FormatJSON, false, false},
		{"a.JSON", export.FormatJSON, false, false},
		{"a.yml", export.FormatYAML, false, false},
		{"dir/a.yaml.zst", export.FormatYAML, true, false},
		{"a.hcl", export.FormatHCL, false, false},
		{"a.zst", "", true, true},
		{"a", "", false, true},
	}
	for _, tc := range tests {
		f, compressed, err := export.FormatFromPath(tc.path)
		if tc.wantErr {
			assert.ErrorIs(t, err, export.ErrUnsupportedFormat, tc.path)
			continue
		}
		require.NoError(t, err, tc.path)
		assert.Equal(t, tc.format, f, tc.path)
		assert.Equal(t, tc.compressed, compressed, tc.path)
	}
}

func TestReadVersion(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "new.json", []byte(`{"version":"2.0.0","types":[]}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "minor.json", []byte(`{"version":"1.4.0","types":[]}`), 0o644))
	require.NoError(t, afero.WriteFile(fs, "junk.json", []byte(`{"version":"latest","types":[]}`), 0o644))

	_, err := export.Read(fs, "new.json")
	assert.ErrorIs(t, err, export.ErrIncompatibleVersion)
	_, err = export.Read(fs, "junk.json")
	assert.ErrorIs(t, err, export.ErrIncompatibleVersion)

	doc, err := export.Read(fs, "minor.json")
	require.NoError(t, err)
	assert.Equal(t, "1.4.0", doc.Version)

	_, err = export.Read(fs, "missing.json")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	reg := newRegistry(t, config.WithExport(true, true))

	issues, err := export.Validate(export.Build(reg))
	require.NoError(t, err)
	assert.Empty(t, issues)

	issues, err = export.Validate(export.Document{
		Version: "1.0.0",
		Types:   []export.TypeDoc{{Name: "x", ID: "not-hex", Version: 1}},
	})
	require.ErrorIs(t, err, export.ErrInvalidDocument)
	require.NotEmpty(t, issues)
	assert.Equal(t, "/types/0/id", issues[0].Path)
}

func TestValidateFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	reg := newRegistry(t)
	for _, path := range []string{"ok.json", "ok.yaml", "ok.hcl.zst"} {
		require.NoError(t, export.Export(fs, path, reg))
		issues, err := export.ValidateFile(fs, path)
		require.NoError(t, err, path)
		assert.Empty(t, issues, path)
	}

	require.NoError(t, afero.WriteFile(fs, "extra.json",
		[]byte(`{"version":"1.0.0","types":[],"owner":"me"}`), 0o644))
	issues, err := export.ValidateFile(fs, "extra.json")
	require.ErrorIs(t, err, export.ErrInvalidDocument)
	require.Len(t, issues, 1)
	assert.Equal(t, "additionalProperties", issues[0].Keyword)

	require.NoError(t, afero.WriteFile(fs, "bad.yaml",
		[]byte("version: 1.0.0\ntypes:\n  - name: x\n    id: 00000000000000ff\n    version: 0\n    size: 0\n    align: 0\n"), 0o644))
	issues, err = export.ValidateFile(fs, "bad.yaml")
	require.ErrorIs(t, err, export.ErrInvalidDocument)
	require.Len(t, issues, 1)
	assert.Equal(t, "/types/0/version", issues[0].Path)
	assert.Equal(t, "minimum", issues[0].Keyword)
}

type Account struct {
	Owner string
}

func (Account) TypeName() string        { return "bank.account" }
func (Account) TypeDescription() string { return "A ledger account." }

func TestBuildDescription(t *testing.T) {
	reg := registry.New(config.DefaultConfig(), nil)
	builder.Reflect[Account](reg)

	doc := export.Build(reg)
	require.Len(t, doc.Types, 1)
	assert.Equal(t, "A ledger account.", doc.Types[0].Description)

	issues, err := export.Validate(doc)
	require.NoError(t, err)
	assert.Empty(t, issues)
}
