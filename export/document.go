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

	"dirpx.dev/rtti/identity"
	"dirpx.dev/rtti/meta"
	"dirpx.dev/rtti/registry"
)

// DocumentVersion is the schema version written into every document.
const DocumentVersion = "1.0.0"

// Document is a snapshot of the active type universe.
type Document struct {
	Version string    `json:"version" yaml:"version" hcl:"version"`
	Types   []TypeDoc `json:"types" yaml:"types" hcl:"type,block"`
}

// TypeDoc describes the active version of one registered type.
type TypeDoc struct {
	Name        string        `json:"name" yaml:"name" hcl:"name,label"`
	ID          string        `json:"id" yaml:"id" hcl:"id"`
	Scope       string        `json:"scope,omitempty" yaml:"scope,omitempty" hcl:"scope,optional"`
	Description string        `json:"description,omitempty" yaml:"description,omitempty" hcl:"description,optional"`
	Version     int           `json:"version" yaml:"version" hcl:"version"`
	Size        uint64        `json:"size" yaml:"size" hcl:"size"`
	Align       uint64        `json:"align" yaml:"align" hcl:"align"`
	Bases       []string      `json:"bases,omitempty" yaml:"bases,omitempty" hcl:"bases,optional"`
	Attributes  []string      `json:"attributes,omitempty" yaml:"attributes,omitempty" hcl:"attributes,optional"`
	Fields      []FieldDoc    `json:"fields,omitempty" yaml:"fields,omitempty" hcl:"field,block"`
	Functions   []FunctionDoc `json:"functions,omitempty" yaml:"functions,omitempty" hcl:"function,block"`
	Values      []ValueDoc    `json:"values,omitempty" yaml:"values,omitempty" hcl:"value,block"`
}

// FieldDoc describes one field.
type FieldDoc struct {
	Name      string `json:"name" yaml:"name" hcl:"name,label"`
	Type      string `json:"type" yaml:"type" hcl:"type"`
	Spelling  string `json:"spelling,omitempty" yaml:"spelling,omitempty" hcl:"spelling,optional"`
	Const     bool   `json:"const,omitempty" yaml:"const,omitempty" hcl:"const,optional"`
	Pointer   bool   `json:"pointer,omitempty" yaml:"pointer,omitempty" hcl:"pointer,optional"`
	Reference bool   `json:"reference,omitempty" yaml:"reference,omitempty" hcl:"reference,optional"`
	Transient bool   `json:"transient,omitempty" yaml:"transient,omitempty" hcl:"transient,optional"`
	Schema    string `json:"schema,omitempty" yaml:"schema,omitempty" hcl:"schema,optional"`
}

// FunctionDoc describes one function.
type FunctionDoc struct {
	Name   string     `json:"name" yaml:"name" hcl:"name,label"`
	Return string     `json:"return" yaml:"return" hcl:"return"`
	Params []ParamDoc `json:"params,omitempty" yaml:"params,omitempty" hcl:"param,block"`
}

// ParamDoc describes one function parameter.
type ParamDoc struct {
	Name string `json:"name" yaml:"name" hcl:"name,label"`
	Type string `json:"type" yaml:"type" hcl:"type"`
}

// ValueDoc describes one enum value.
type ValueDoc struct {
	Name string `json:"name" yaml:"name" hcl:"name,label"`
	Code int64  `json:"code" yaml:"code" hcl:"code"`
}

// Build snapshots the active version of every type in reg, in registration
// order.
func Build(reg *registry.Registry, opts ...Option) Document {
	o := newOptions(reg, opts)
	doc := Document{Version: DocumentVersion}
	for _, t := range reg.Types() {
		doc.Types = append(doc.Types, typeDoc(t, o))
	}
	return doc
}

func hexID(id uint64) string { return fmt.Sprintf("%016x", id) }

func typeDoc(t *meta.Type, o options) TypeDoc {
	td := TypeDoc{
		Name:    t.Name,
		ID:      hexID(t.ID()),
		Scope:   t.Scope,
		Version: t.Version,
		Size:    uint64(t.Props.Size),
		Align:   uint64(t.Props.Align),
	}
	if a := t.Attribute(description); a != nil {
		if d, ok := a.Value.(meta.Description); ok {
			td.Description = string(d)
		}
	}
	for _, b := range t.Bases {
		td.Bases = append(td.Bases, hexID(b))
	}
	for _, a := range t.Attributes {
		td.Attributes = append(td.Attributes, hexID(a.Props.ID))
	}
	if o.fields {
		for _, f := range t.Fields {
			td.Fields = append(td.Fields, fieldDoc(f))
		}
	}
	if o.functions {
		for _, fn := range t.Functions {
			fd := FunctionDoc{Name: fn.Name, Return: fn.Return.String()}
			for _, p := range fn.Params {
				fd.Params = append(fd.Params, ParamDoc{Name: p.Name, Type: p.Desc.String()})
			}
			td.Functions = append(td.Functions, fd)
		}
	}
	for _, v := range t.Values {
		td.Values = append(td.Values, ValueDoc{Name: v.Name, Code: v.Code})
	}
	return td
}

var (
	notPersisted = identity.Of[meta.NotPersisted]()
	description  = identity.Of[meta.Description]()
)

func fieldDoc(f *meta.Field) FieldDoc {
	fd := FieldDoc{
		Name:      f.Name,
		Type:      f.Desc.Name,
		Spelling:  f.Desc.Spelling,
		Const:     f.Desc.Const,
		Pointer:   f.Desc.Pointer,
		Reference: f.Desc.Reference,
		Transient: f.Attribute(notPersisted) != nil,
	}
	if ty, ok := f.SchemaType(); ok {
		fd.Schema = ty.FriendlyName()
	}
	return fd
}
