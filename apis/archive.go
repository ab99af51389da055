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

package apis

// Node is an opaque value handle owned by an archive codec.
// The registry never inspects a Node; it only passes it back to the codec.
type Node any

// NodeKind classifies a Node read back from an archive.
type NodeKind int

const (
	// KindNull is an absent or null value.
	KindNull NodeKind = iota
	// KindBool is a boolean value.
	KindBool
	// KindNumber is an integer or floating point value.
	KindNumber
	// KindString is a string value.
	KindString
	// KindObject is a keyed collection of values.
	KindObject
	// KindArray is an ordered collection of values.
	KindArray
)

// String returns the lowercase name of k.
func (k NodeKind) String() string {
	switch k {
	case KindBool:
		return "bool"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindArray:
		return "array"
	default:
		return "null"
	}
}

// ArchiveWriter builds archive values. It is implemented by codecs
// (binary, text, in-memory); the registry only calls it.
type ArchiveWriter interface {
	// Object creates an empty object node.
	Object() Node
	// Array creates an empty array node.
	Array() Node
	// Null creates a null node.
	Null() Node

	Bool(v bool) Node
	Int(v int64) Node
	Uint(v uint64) Node
	Float(v float64) Node
	String(v string) Node

	// Insert sets obj[key] = v. obj must come from Object.
	Insert(obj Node, key string, v Node)
	// Append adds v to the end of arr. arr must come from Array.
	Append(arr Node, v Node)
}

// ArchiveReader extracts values from archive nodes produced by a codec.
type ArchiveReader interface {
	// Kind reports what n holds.
	Kind(n Node) NodeKind
	// Member returns obj[key] if present.
	Member(obj Node, key string) (Node, bool)
	// Keys returns the member names of obj in a stable order.
	Keys(obj Node) []string
	// Elements returns the elements of arr in order.
	Elements(arr Node) []Node

	Bool(n Node) (bool, error)
	Int(n Node) (int64, error)
	Uint(n Node) (uint64, error)
	Float(n Node) (float64, error)
	String(n Node) (string, error)
}
