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

import "errors"

var (
	// ErrUnsupportedFormat is returned for unknown document formats or
	// file extensions.
	ErrUnsupportedFormat = errors.New("rtti(export): unsupported format")
	// ErrIncompatibleVersion is returned when a document was written by an
	// incompatible schema version.
	ErrIncompatibleVersion = errors.New("rtti(export): incompatible document version")
	// ErrInvalidDocument is returned when a document fails schema validation.
	ErrInvalidDocument = errors.New("rtti(export): invalid document")
)
