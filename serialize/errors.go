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

package serialize

import "errors"

var (
	// ErrUnknownType is returned when an identity has no registered type.
	ErrUnknownType = errors.New("rtti(serialize): unknown type")
	// ErrEnumMismatch is returned when an enum instance or archived value
	// matches none of the type's values.
	ErrEnumMismatch = errors.New("rtti(serialize): no matching enum value")
	// ErrNilInstance is returned when the instance is not a non-nil pointer.
	ErrNilInstance = errors.New("rtti(serialize): instance must be a non-nil pointer")
	// ErrUnsupportedKind is returned for Go kinds the generic codec cannot
	// encode (chan, func, non-string map keys, untyped interfaces on decode).
	ErrUnsupportedKind = errors.New("rtti(serialize): unsupported kind")
	// ErrNodeKind is returned when an archived node has the wrong kind.
	ErrNodeKind = errors.New("rtti(serialize): unexpected node kind")
	// ErrOverflow is returned when an archived number does not fit the
	// destination type.
	ErrOverflow = errors.New("rtti(serialize): value out of range")
	// ErrCycle is returned when encoding reaches a value that is already
	// being encoded further up the same path.
	ErrCycle = errors.New("rtti(serialize): reference cycle")
)
