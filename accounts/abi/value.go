// Copyright 2024 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

package abi

import (
	"bytes"
	"fmt"
	"math/big"
	"strings"

	"github.com/solbind/solbind/common"
	"github.com/solbind/solbind/common/hexutil"
)

// Value is a single ABI value tagged with its type. Integers always carry the
// width and signedness of their type, so range violations are caught when the
// value is built rather than when it reaches the wire.
//
// The payload held for each kind is:
//
//	IntTy, UintTy          *big.Int
//	BoolTy                 bool
//	AddressTy              common.Address
//	FixedBytesTy, BytesTy  []byte
//	StringTy               string
//	SliceTy, ArrayTy       []Value
//	TupleTy                []Value
type Value struct {
	typ  Type
	data interface{}
}

// NewInt returns a signed integer value of the given bit width.
func NewInt(bits int, v *big.Int) (Value, error) {
	typ, err := NewType(fmt.Sprintf("int%d", bits), "", nil)
	if err != nil {
		return Value{}, err
	}
	return NewValue(typ, v)
}

// NewUint returns an unsigned integer value of the given bit width.
func NewUint(bits int, v *big.Int) (Value, error) {
	typ, err := NewType(fmt.Sprintf("uint%d", bits), "", nil)
	if err != nil {
		return Value{}, err
	}
	return NewValue(typ, v)
}

// NewBool returns a boolean value.
func NewBool(b bool) Value {
	return Value{typ: Type{T: BoolTy}, data: b}
}

// NewAddress returns an address value.
func NewAddress(addr common.Address) Value {
	return Value{typ: Type{T: AddressTy, Size: common.AddressLength}, data: addr}
}

// NewFixedBytes returns a bytesN value, N being the length of b.
func NewFixedBytes(b []byte) (Value, error) {
	if len(b) < 1 || len(b) > 32 {
		return Value{}, fmt.Errorf("%w: fixed bytes of length %d", ErrValueOutOfRange, len(b))
	}
	return Value{typ: Type{T: FixedBytesTy, Size: len(b)}, data: common.CopyBytes(b)}, nil
}

// NewBytes returns a dynamic bytes value.
func NewBytes(b []byte) Value {
	if b == nil {
		b = []byte{}
	}
	return Value{typ: Type{T: BytesTy}, data: common.CopyBytes(b)}
}

// NewString returns a string value.
func NewString(s string) Value {
	return Value{typ: Type{T: StringTy}, data: s}
}

// NewSlice returns a dynamic array of elem typed values.
func NewSlice(elem Type, vals []Value) (Value, error) {
	return NewValue(Type{T: SliceTy, Elem: &elem}, vals)
}

// NewArray returns a fixed array of elem typed values, its length being the
// number of values.
func NewArray(elem Type, vals []Value) (Value, error) {
	if len(vals) == 0 {
		return Value{}, fmt.Errorf("%w: empty fixed array", ErrTypeMismatch)
	}
	return NewValue(Type{T: ArrayTy, Size: len(vals), Elem: &elem}, vals)
}

// NewTuple returns a tuple of the given values. The components stay unnamed.
func NewTuple(vals ...Value) (Value, error) {
	if len(vals) == 0 {
		return Value{}, fmt.Errorf("%w: empty tuple", ErrTypeMismatch)
	}
	typ := Type{T: TupleTy}
	for i := range vals {
		elem := vals[i].typ
		typ.TupleElems = append(typ.TupleElems, &elem)
		typ.TupleRawNames = append(typ.TupleRawNames, "")
	}
	return NewValue(typ, vals)
}

// NewValue checks that data is a valid payload for typ and wraps it. The
// accepted payloads are listed on Value.
func NewValue(typ Type, data interface{}) (Value, error) {
	if err := checkPayload(typ, data); err != nil {
		return Value{}, err
	}
	switch d := data.(type) {
	case *big.Int:
		data = new(big.Int).Set(d)
	case []byte:
		data = common.CopyBytes(d)
	case []Value:
		data = append([]Value{}, d...)
	}
	return Value{typ: typ, data: data}, nil
}

// MustValue is like NewValue but panics on error.
func MustValue(typ Type, data interface{}) Value {
	v, err := NewValue(typ, data)
	if err != nil {
		panic(err)
	}
	return v
}

func checkPayload(typ Type, data interface{}) error {
	switch typ.T {
	case IntTy, UintTy:
		n, ok := data.(*big.Int)
		if !ok || n == nil {
			return typeErr(typ, fmt.Sprintf("%T", data))
		}
		return checkIntRange(typ, n)
	case BoolTy:
		if _, ok := data.(bool); !ok {
			return typeErr(typ, fmt.Sprintf("%T", data))
		}
	case AddressTy:
		if _, ok := data.(common.Address); !ok {
			return typeErr(typ, fmt.Sprintf("%T", data))
		}
	case FixedBytesTy, BytesTy:
		b, ok := data.([]byte)
		if !ok {
			return typeErr(typ, fmt.Sprintf("%T", data))
		}
		if typ.T == FixedBytesTy && len(b) != typ.Size {
			return fmt.Errorf("%w: %d bytes for %v", ErrTypeMismatch, len(b), typ)
		}
	case StringTy:
		if _, ok := data.(string); !ok {
			return typeErr(typ, fmt.Sprintf("%T", data))
		}
	case SliceTy, ArrayTy:
		elems, ok := data.([]Value)
		if !ok {
			return typeErr(typ, fmt.Sprintf("%T", data))
		}
		if typ.T == ArrayTy && len(elems) != typ.Size {
			return fmt.Errorf("%w: %d elements for %v", ErrTypeMismatch, len(elems), typ)
		}
		for i, elem := range elems {
			if !elem.typ.Equal(*typ.Elem) {
				return fmt.Errorf("%w: element %d is %v, want %v", ErrTypeMismatch, i, elem.typ, typ.Elem)
			}
		}
	case TupleTy:
		elems, ok := data.([]Value)
		if !ok {
			return typeErr(typ, fmt.Sprintf("%T", data))
		}
		if len(elems) != len(typ.TupleElems) {
			return fmt.Errorf("%w: %d components for %v", ErrTypeMismatch, len(elems), typ)
		}
		for i, elem := range elems {
			if !elem.typ.Equal(*typ.TupleElems[i]) {
				return fmt.Errorf("%w: component %d is %v, want %v", ErrTypeMismatch, i, elem.typ, typ.TupleElems[i])
			}
		}
	default:
		return fmt.Errorf("%w: unknown kind %v", ErrTypeMismatch, typ.T)
	}
	return nil
}

// checkIntRange verifies that n is representable by the integer type t.
func checkIntRange(t Type, n *big.Int) error {
	if t.T == UintTy {
		if n.Sign() < 0 || n.BitLen() > t.Size {
			return rangeErr(t, n)
		}
		return nil
	}
	// signed: -2^(size-1) <= n <= 2^(size-1)-1
	limit := new(big.Int).Lsh(common.Big1, uint(t.Size-1))
	if n.Cmp(limit) >= 0 || n.Cmp(new(big.Int).Neg(limit)) < 0 {
		return rangeErr(t, n)
	}
	return nil
}

// Type returns the type of the value.
func (v Value) Type() Type { return v.typ }

// IsZero reports whether v is the zero Value, carrying no type at all.
func (v Value) IsZero() bool { return v.data == nil }

// Int returns a copy of the integer payload, or nil for other kinds.
func (v Value) Int() *big.Int {
	if n, ok := v.data.(*big.Int); ok {
		return new(big.Int).Set(n)
	}
	return nil
}

// Bool returns the boolean payload.
func (v Value) Bool() bool {
	b, _ := v.data.(bool)
	return b
}

// Address returns the address payload.
func (v Value) Address() common.Address {
	a, _ := v.data.(common.Address)
	return a
}

// Bytes returns a copy of the payload of bytes and bytesN values.
func (v Value) Bytes() []byte {
	b, _ := v.data.([]byte)
	return common.CopyBytes(b)
}

// Str returns the string payload.
func (v Value) Str() string {
	s, _ := v.data.(string)
	return s
}

// Elems returns the elements of arrays and the components of tuples.
func (v Value) Elems() []Value {
	elems, _ := v.data.([]Value)
	return append([]Value{}, elems...)
}

// Interface returns the payload in its natural Go form: *big.Int, bool,
// common.Address, []byte, string, or []interface{} for composites. Fixed bytes
// come back as a slice of length N.
func (v Value) Interface() interface{} {
	switch d := v.data.(type) {
	case *big.Int:
		return new(big.Int).Set(d)
	case []byte:
		return common.CopyBytes(d)
	case []Value:
		out := make([]interface{}, len(d))
		for i, elem := range d {
			out[i] = elem.Interface()
		}
		return out
	default:
		return d
	}
}

// Equal reports whether two values have the same type and payload.
func (v Value) Equal(other Value) bool {
	if !v.typ.Equal(other.typ) {
		return false
	}
	switch d := v.data.(type) {
	case *big.Int:
		return d.Cmp(other.data.(*big.Int)) == 0
	case []byte:
		return bytes.Equal(d, other.data.([]byte))
	case []Value:
		o := other.data.([]Value)
		if len(d) != len(o) {
			return false
		}
		for i := range d {
			if !d[i].Equal(o[i]) {
				return false
			}
		}
		return true
	default:
		return v.data == other.data
	}
}

// String renders the value for humans, e.g. (1,true,"hi",0x01ff).
func (v Value) String() string {
	switch d := v.data.(type) {
	case nil:
		return "<nil>"
	case *big.Int:
		return d.String()
	case []byte:
		return hexutil.Encode(d)
	case string:
		return fmt.Sprintf("%q", d)
	case common.Address:
		return d.Hex()
	case []Value:
		parts := make([]string, len(d))
		for i, elem := range d {
			parts[i] = elem.String()
		}
		if v.typ.T == TupleTy {
			return "(" + strings.Join(parts, ",") + ")"
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return fmt.Sprint(d)
	}
}
