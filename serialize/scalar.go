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

import (
	"fmt"
	"reflect"

	"dirpx.dev/rtti/apis"
	"dirpx.dev/rtti/identity"
)

// scalar is the archive codec of a fieldless primitive type.
type scalar struct {
	encode func(w apis.ArchiveWriter, inst any) (apis.Node, bool)
	decode func(r apis.ArchiveReader, n apis.Node, inst any) (bool, error)
}

type signedInt interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

type unsignedInt interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

func signed[T signedInt]() scalar {
	return scalar{
		encode: func(w apis.ArchiveWriter, inst any) (apis.Node, bool) {
			p, ok := inst.(*T)
			if !ok {
				return nil, false
			}
			return w.Int(int64(*p)), true
		},
		decode: func(r apis.ArchiveReader, n apis.Node, inst any) (bool, error) {
			p, ok := inst.(*T)
			if !ok {
				return false, nil
			}
			v, err := r.Int(n)
			if err != nil {
				return true, err
			}
			if int64(T(v)) != v {
				return true, overflow(v, *p)
			}
			*p = T(v)
			return true, nil
		},
	}
}

func unsigned[T unsignedInt]() scalar {
	return scalar{
		encode: func(w apis.ArchiveWriter, inst any) (apis.Node, bool) {
			p, ok := inst.(*T)
			if !ok {
				return nil, false
			}
			return w.Uint(uint64(*p)), true
		},
		decode: func(r apis.ArchiveReader, n apis.Node, inst any) (bool, error) {
			p, ok := inst.(*T)
			if !ok {
				return false, nil
			}
			v, err := r.Uint(n)
			if err != nil {
				return true, err
			}
			if uint64(T(v)) != v {
				return true, overflow(v, *p)
			}
			*p = T(v)
			return true, nil
		},
	}
}

func float[T ~float32 | ~float64]() scalar {
	return scalar{
		encode: func(w apis.ArchiveWriter, inst any) (apis.Node, bool) {
			p, ok := inst.(*T)
			if !ok {
				return nil, false
			}
			return w.Float(float64(*p)), true
		},
		decode: func(r apis.ArchiveReader, n apis.Node, inst any) (bool, error) {
			p, ok := inst.(*T)
			if !ok {
				return false, nil
			}
			v, err := r.Float(n)
			if err != nil {
				return true, err
			}
			if reflect.ValueOf(p).Elem().OverflowFloat(v) {
				return true, overflow(v, *p)
			}
			*p = T(v)
			return true, nil
		},
	}
}

var scalars = map[uint64]scalar{
	identity.Of[bool](): {
		encode: func(w apis.ArchiveWriter, inst any) (apis.Node, bool) {
			p, ok := inst.(*bool)
			if !ok {
				return nil, false
			}
			return w.Bool(*p), true
		},
		decode: func(r apis.ArchiveReader, n apis.Node, inst any) (bool, error) {
			p, ok := inst.(*bool)
			if !ok {
				return false, nil
			}
			v, err := r.Bool(n)
			if err != nil {
				return true, err
			}
			*p = v
			return true, nil
		},
	},
	identity.Of[string](): {
		encode: func(w apis.ArchiveWriter, inst any) (apis.Node, bool) {
			p, ok := inst.(*string)
			if !ok {
				return nil, false
			}
			return w.String(*p), true
		},
		decode: func(r apis.ArchiveReader, n apis.Node, inst any) (bool, error) {
			p, ok := inst.(*string)
			if !ok {
				return false, nil
			}
			v, err := r.String(n)
			if err != nil {
				return true, err
			}
			*p = v
			return true, nil
		},
	},
	identity.Of[int]():     signed[int](),
	identity.Of[int8]():    signed[int8](),
	identity.Of[int16]():   signed[int16](),
	identity.Of[int32]():   signed[int32](),
	identity.Of[int64]():   signed[int64](),
	identity.Of[uint]():    unsigned[uint](),
	identity.Of[uint8]():   unsigned[uint8](),
	identity.Of[uint16]():  unsigned[uint16](),
	identity.Of[uint32]():  unsigned[uint32](),
	identity.Of[uint64]():  unsigned[uint64](),
	identity.Of[uintptr](): unsigned[uintptr](),
	identity.Of[float32](): float[float32](),
	identity.Of[float64](): float[float64](),
}

func overflow(v, dst any) error {
	return fmt.Errorf("%w: %v does not fit %T", ErrOverflow, v, dst)
}

// IsScalar reports whether id names a primitive with a built-in archive codec.
func IsScalar(id uint64) bool {
	_, ok := scalars[id]
	return ok
}

// encodeKind encodes a scalar by reflect kind. It covers named types whose
// underlying type is primitive (type Meters float64).
func encodeKind(w apis.ArchiveWriter, rv reflect.Value) (apis.Node, error) {
	switch rv.Kind() {
	case reflect.Bool:
		return w.Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return w.Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return w.Uint(rv.Uint()), nil
	case reflect.Float32, reflect.Float64:
		return w.Float(rv.Float()), nil
	case reflect.String:
		return w.String(rv.String()), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, rv.Type())
	}
}

func decodeKind(r apis.ArchiveReader, n apis.Node, rv reflect.Value) error {
	switch rv.Kind() {
	case reflect.Bool:
		v, err := r.Bool(n)
		if err != nil {
			return err
		}
		rv.SetBool(v)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := r.Int(n)
		if err != nil {
			return err
		}
		if rv.OverflowInt(v) {
			return overflow(v, rv.Interface())
		}
		rv.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		v, err := r.Uint(n)
		if err != nil {
			return err
		}
		if rv.OverflowUint(v) {
			return overflow(v, rv.Interface())
		}
		rv.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := r.Float(n)
		if err != nil {
			return err
		}
		if rv.OverflowFloat(v) {
			return overflow(v, rv.Interface())
		}
		rv.SetFloat(v)
	case reflect.String:
		v, err := r.String(n)
		if err != nil {
			return err
		}
		rv.SetString(v)
	default:
		return fmt.Errorf("%w: %s", ErrUnknownType, rv.Type())
	}
	return nil
}
