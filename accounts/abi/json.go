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
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/solbind/solbind/common"
	"github.com/solbind/solbind/common/hexutil"
)

// ParseJSONArguments decodes a JSON array holding one element per argument
// into typed values. Integers may be given as JSON numbers or as decimal or
// 0x-prefixed strings, byte sequences as 0x-prefixed hex and tuples as
// objects keyed by component name or as arrays.
func ParseJSONArguments(args Arguments, input []byte) ([]Value, error) {
	dec := json.NewDecoder(bytes.NewReader(input))
	dec.UseNumber()

	var raw []interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("%w: arguments must be a JSON array: %v", ErrTypeMismatch, err)
	}
	if len(raw) != len(args) {
		return nil, fmt.Errorf("%w: argument count mismatch: got %d for %d", ErrTypeMismatch, len(raw), len(args))
	}
	values := make([]Value, len(args))
	for i, arg := range args {
		v, err := ParseJSONValue(arg.Type, raw[i])
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, arg.Name, err)
		}
		values[i] = v
	}
	return values, nil
}

// ParseJSONValue converts a generic JSON value, as produced by encoding/json
// with UseNumber, into a Value of type typ.
func ParseJSONValue(typ Type, value interface{}) (Value, error) {
	switch typ.T {
	case IntTy, UintTy:
		var s string
		switch v := value.(type) {
		case json.Number:
			s = v.String()
		case string:
			s = v
		case float64:
			s = big.NewFloat(v).Text('f', 0)
		default:
			return Value{}, fmt.Errorf("%w: integer value should be a number or a string", ErrTypeMismatch)
		}
		n, ok := new(big.Int).SetString(s, 0)
		if !ok {
			return Value{}, fmt.Errorf("%w: invalid integer value %q", ErrTypeMismatch, s)
		}
		return NewValue(typ, n)
	case BoolTy:
		b, ok := value.(bool)
		if !ok {
			return Value{}, fmt.Errorf("%w: invalid bool value", ErrTypeMismatch)
		}
		return NewBool(b), nil
	case StringTy:
		s, ok := value.(string)
		if !ok {
			return Value{}, fmt.Errorf("%w: invalid string value", ErrTypeMismatch)
		}
		return NewString(s), nil
	case AddressTy:
		s, ok := value.(string)
		if !ok || !common.IsHexAddress(s) {
			return Value{}, fmt.Errorf("%w: invalid address value %v", ErrTypeMismatch, value)
		}
		return NewAddress(common.HexToAddress(s)), nil
	case BytesTy, FixedBytesTy:
		s, ok := value.(string)
		if !ok {
			return Value{}, fmt.Errorf("%w: %v value should be a hex string", ErrTypeMismatch, typ)
		}
		b, err := hexutil.Decode(s)
		if err != nil {
			return Value{}, fmt.Errorf("%w: %v", ErrTypeMismatch, err)
		}
		return NewValue(typ, b)
	case SliceTy, ArrayTy:
		arr, ok := value.([]interface{})
		if !ok {
			return Value{}, fmt.Errorf("%w: invalid JSON value, array expected", ErrTypeMismatch)
		}
		elems := make([]Value, len(arr))
		for i, e := range arr {
			elem, err := ParseJSONValue(*typ.Elem, e)
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = elem
		}
		return NewValue(typ, elems)
	case TupleTy:
		elems := make([]Value, len(typ.TupleElems))
		switch obj := value.(type) {
		case map[string]interface{}:
			for i, elemType := range typ.TupleElems {
				name := argumentKey(typ.TupleRawNames[i], i)
				field, ok := obj[name]
				if !ok {
					return Value{}, fmt.Errorf("%w: value for struct field %s not provided", ErrTypeMismatch, name)
				}
				elem, err := ParseJSONValue(*elemType, field)
				if err != nil {
					return Value{}, fmt.Errorf("field %s: %w", name, err)
				}
				elems[i] = elem
			}
		case []interface{}:
			if len(obj) != len(elems) {
				return Value{}, fmt.Errorf("%w: %d components for %v", ErrTypeMismatch, len(obj), typ)
			}
			for i, elemType := range typ.TupleElems {
				elem, err := ParseJSONValue(*elemType, obj[i])
				if err != nil {
					return Value{}, fmt.Errorf("component %d: %w", i, err)
				}
				elems[i] = elem
			}
		default:
			return Value{}, fmt.Errorf("%w: invalid JSON value, object expected", ErrTypeMismatch)
		}
		return NewValue(typ, elems)
	}
	return Value{}, fmt.Errorf("%w: argument type is not supported: %v", ErrTypeMismatch, typ)
}

// JSONValue converts v into generic JSON compatible data: integers become
// decimal strings, byte sequences and addresses 0x-prefixed hex, arrays JSON
// arrays and tuples objects keyed by component name.
func JSONValue(v Value) interface{} {
	switch d := v.data.(type) {
	case *big.Int:
		return d.String()
	case []byte:
		return hexutil.Encode(d)
	case common.Address:
		return d.Hex()
	case []Value:
		if v.typ.T == TupleTy {
			obj := make(map[string]interface{}, len(d))
			for i, elem := range d {
				obj[argumentKey(v.typ.TupleRawNames[i], i)] = JSONValue(elem)
			}
			return obj
		}
		arr := make([]interface{}, len(d))
		for i, elem := range d {
			arr[i] = JSONValue(elem)
		}
		return arr
	default:
		return d
	}
}

// MarshalJSON implements json.Marshaler using the JSONValue form.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(JSONValue(v))
}
