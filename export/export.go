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
	"fmt"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/spf13/afero"

	"dirpx.dev/rtti/registry"
)

// compatible is the range of document versions this package reads.
var compatible = mustConstraint("^1")

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Export writes a snapshot of reg to path on fs. The format follows the
// file extension unless WithFormat is given; a ".zst" suffix compresses the
// document. The file is replaced atomically.
func Export(fs afero.Fs, path string, reg *registry.Registry, opts ...Option) error {
	o := newOptions(reg, opts)
	f, compressed, err := FormatFromPath(path)
	if o.format != "" {
		f, err = o.format, nil
	}
	if err != nil {
		return err
	}

	data, err := Encode(Build(reg, opts...), f)
	if err != nil {
		return fmt.Errorf("encode %s: %w", f, err)
	}
	if compressed {
		if data, err = compress(data); err != nil {
			return fmt.Errorf("compress: %w", err)
		}
	}

	if err := writeAtomic(fs, path, data); err != nil {
		return err
	}
	reg.Logger().Debug("rtti: exported type universe",
		"path", path, "format", string(f), "types", reg.Len())
	return nil
}

func writeAtomic(fs afero.Fs, path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := afero.TempFile(fs, dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	name := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		fs.Remove(name)
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		fs.Remove(name)
		return fmt.Errorf("close %s: %w", name, err)
	}
	if err := fs.Rename(name, path); err != nil {
		fs.Remove(name)
		return fmt.Errorf("rename %s: %w", path, err)
	}
	return nil
}

// Read loads a document from path on fs and checks that its version is
// compatible with DocumentVersion.
func Read(fs afero.Fs, path string) (Document, error) {
	f, compressed, err := FormatFromPath(path)
	if err != nil {
		return Document{}, err
	}
	data, err := readRaw(fs, path, compressed)
	if err != nil {
		return Document{}, err
	}
	doc, err := Decode(data, f)
	if err != nil {
		return Document{}, fmt.Errorf("decode %s: %w", path, err)
	}
	if err := CheckVersion(doc.Version); err != nil {
		return Document{}, err
	}
	return doc, nil
}

// CheckVersion reports whether a document version can be read.
func CheckVersion(version string) error {
	v, err := semver.NewVersion(version)
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrIncompatibleVersion, version, err)
	}
	if !compatible.Check(v) {
		return fmt.Errorf("%w: %s", ErrIncompatibleVersion, v)
	}
	return nil
}

func readRaw(fs afero.Fs, path string, compressed bool) ([]byte, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	if compressed {
		if data, err = decompress(data); err != nil {
			return nil, fmt.Errorf("decompress %s: %w", path, err)
		}
	}
	return data, nil
}
