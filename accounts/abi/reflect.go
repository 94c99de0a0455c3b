// Copyright 2016 The go-ethereum Authors
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
	"errors"
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/holiman/uint256"
	"github.com/solbind/solbind/common"
)

var (
	bigT     = reflect.TypeOf(&big.Int{})
	u256T    = reflect.TypeOf(&uint256.Int{})
	valueT   = reflect.TypeOf(Value{})
	addressT = reflect.TypeOf(common.Address{})
)

// indirect recursively dereferences the value until it either gets the value
// or finds a big.Int
func indirect(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Ptr && v.Type() != bigT && v.Type() != u256T && !v.IsNil() {
		v = v.Elem()
	}
	return v
}

// ToValue converts a native Go value into a Value of type typ. Accepted inputs
// are Go integers, *big.Int and *uint256.Int for integers, bool,
// common.Address, byte arrays and slices, string, slices and arrays of the
// above, and structs or []interface{} for tuples. A Value is passed through
// after its type is checked.
func ToValue(typ Type, in interface{}) (Value, error) {
	if v, ok := in.(Value); ok {
		if !v.typ.Equal(typ) {
			return Value{}, typeErr(typ, v.typ)
		}
		return v, nil
	}
	rv := indirect(reflect.ValueOf(in))
	if !rv.IsValid() || (rv.Kind() == reflect.Ptr && rv.IsNil()) {
		return Value{}, typeErr(typ, "nil")
	}
	switch typ.T {
	case IntTy, UintTy:
		n, err := toBig(rv)
		if err != nil {
			return Value{}, fmt.Errorf("%w (%v)", err, typ)
		}
		return NewValue(typ, n)
	case BoolTy:
		if rv.Kind() != reflect.Bool {
			return Value{}, typeErr(typ, rv.Type())
		}
		return NewValue(typ, rv.Bool())
	case AddressTy:
		if rv.Type() == addressT {
			return NewValue(typ, rv.Interface().(common.Address))
		}
		b, ok := byteSequence(rv)
		if !ok || len(b) != common.AddressLength {
			return Value{}, typeErr(typ, rv.Type())
		}
		return NewValue(typ, common.BytesToAddress(b))
	case FixedBytesTy, BytesTy:
		b, ok := byteSequence(rv)
		if !ok {
			return Value{}, typeErr(typ, rv.Type())
		}
		return NewValue(typ, b)
	case StringTy:
		if rv.Kind() != reflect.String {
			return Value{}, typeErr(typ, rv.Type())
		}
		return NewValue(typ, rv.String())
	case SliceTy, ArrayTy:
		if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
			return Value{}, typeErr(typ, rv.Type())
		}
		elems := make([]Value, rv.Len())
		for i := range elems {
			elem, err := ToValue(*typ.Elem, rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("element %d: %w", i, err)
			}
			elems[i] = elem
		}
		return NewValue(typ, elems)
	case TupleTy:
		return tupleToValue(typ, rv)
	}
	return Value{}, typeErr(typ, rv.Type())
}

// tupleToValue converts a struct, matched by field name, or a positional
// slice into a tuple value.
func tupleToValue(typ Type, rv reflect.Value) (Value, error) {
	elems := make([]Value, len(typ.TupleElems))
	switch rv.Kind() {
	case reflect.Struct:
		names := TupleFieldNames(typ)
		for i, elemType := range typ.TupleElems {
			field := rv.FieldByName(names[i])
			if !field.IsValid() {
				if rv.NumField() != len(elems) {
					return Value{}, fmt.Errorf("%w: field %s can't be found in %v", ErrTypeMismatch, names[i], rv.Type())
				}
				field = rv.Field(i)
			}
			elem, err := ToValue(*elemType, field.Interface())
			if err != nil {
				return Value{}, fmt.Errorf("field %s: %w", names[i], err)
			}
			elems[i] = elem
		}
	case reflect.Slice, reflect.Array:
		if rv.Len() != len(elems) {
			return Value{}, fmt.Errorf("%w: %d components for %v", ErrTypeMismatch, rv.Len(), typ)
		}
		for i, elemType := range typ.TupleElems {
			elem, err := ToValue(*elemType, rv.Index(i).Interface())
			if err != nil {
				return Value{}, fmt.Errorf("component %d: %w", i, err)
			}
			elems[i] = elem
		}
	default:
		return Value{}, typeErr(typ, rv.Type())
	}
	return NewValue(typ, elems)
}

// toBig converts any Go integer representation into a big.Int.
func toBig(rv reflect.Value) (*big.Int, error) {
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return big.NewInt(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return new(big.Int).SetUint64(rv.Uint()), nil
	}
	switch rv.Type() {
	case bigT:
		return new(big.Int).Set(rv.Interface().(*big.Int)), nil
	case u256T:
		return rv.Interface().(*uint256.Int).ToBig(), nil
	case bigT.Elem():
		n := rv.Interface().(big.Int)
		return new(big.Int).Set(&n), nil
	case u256T.Elem():
		n := rv.Interface().(uint256.Int)
		return n.ToBig(), nil
	}
	return nil, fmt.Errorf("%w: cannot use %v as integer", ErrTypeMismatch, rv.Type())
}

// byteSequence extracts the content of a byte slice or byte array.
func byteSequence(rv reflect.Value) ([]byte, bool) {
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	if rv.Type().Elem().Kind() != reflect.Uint8 {
		return nil, false
	}
	if rv.Kind() == reflect.Slice {
		return common.CopyBytes(rv.Bytes()), true
	}
	return mustArrayToByteSlice(rv).Bytes(), true
}

func mustArrayToByteSlice(value reflect.Value) reflect.Value {
	slice := reflect.MakeSlice(reflect.TypeOf([]byte{}), value.Len(), value.Len())
	reflect.Copy(slice, value)
	return slice
}

// Copy stores a decoded value into the native Go variable dst points to. It
// is the inverse of ToValue and is what generated bindings use to hand out
// typed results.
func Copy(dst interface{}, v Value) error {
	rv := reflect.ValueOf(dst)
	if rv.Kind() != reflect.Ptr || rv.IsNil() {
		return fmt.Errorf("%w: Copy(non-pointer %T)", ErrTypeMismatch, dst)
	}
	return setValue(rv.Elem(), v)
}

// setValue assigns v to dst, converting to the destination type when the
// conversion is lossless.
func setValue(dst reflect.Value, v Value) error {
	if !dst.CanSet() {
		return errors.New("abi: cannot set destination, value not settable")
	}
	dstType := dst.Type()
	switch {
	case dstType == valueT:
		dst.Set(reflect.ValueOf(v))
		return nil
	case dstType.Kind() == reflect.Interface:
		src := reflect.ValueOf(v.Interface())
		if !src.Type().AssignableTo(dstType) {
			return fmt.Errorf("%w: cannot unmarshal %v in to %v", ErrTypeMismatch, v.typ, dstType)
		}
		dst.Set(src)
		return nil
	case dstType.Kind() == reflect.Ptr && dstType != bigT && dstType != u256T:
		if dst.IsNil() {
			dst.Set(reflect.New(dstType.Elem()))
		}
		return setValue(dst.Elem(), v)
	}
	switch v.typ.T {
	case IntTy, UintTy:
		return setInt(dst, v)
	case BoolTy:
		if dst.Kind() != reflect.Bool {
			break
		}
		dst.SetBool(v.data.(bool))
		return nil
	case AddressTy:
		addr := v.data.(common.Address)
		if dstType == addressT {
			dst.Set(reflect.ValueOf(addr))
			return nil
		}
		return setBytes(dst, addr.Bytes(), v.typ)
	case FixedBytesTy, BytesTy:
		return setBytes(dst, v.data.([]byte), v.typ)
	case StringTy:
		if dst.Kind() != reflect.String {
			break
		}
		dst.SetString(v.data.(string))
		return nil
	case SliceTy, ArrayTy:
		return setSequence(dst, v)
	case TupleTy:
		return setTuple(dst, v)
	}
	return fmt.Errorf("%w: cannot unmarshal %v in to %v", ErrTypeMismatch, v.typ, dstType)
}

func setInt(dst reflect.Value, v Value) error {
	n := v.data.(*big.Int)
	switch dst.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !n.IsInt64() || dst.OverflowInt(n.Int64()) {
			return fmt.Errorf("%w: %v does not fit %v", ErrValueOutOfRange, n, dst.Type())
		}
		dst.SetInt(n.Int64())
		return nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if !n.IsUint64() || dst.OverflowUint(n.Uint64()) {
			return fmt.Errorf("%w: %v does not fit %v", ErrValueOutOfRange, n, dst.Type())
		}
		dst.SetUint(n.Uint64())
		return nil
	}
	switch dst.Type() {
	case bigT:
		dst.Set(reflect.ValueOf(new(big.Int).Set(n)))
		return nil
	case bigT.Elem():
		dst.Set(reflect.ValueOf(*new(big.Int).Set(n)))
		return nil
	case u256T:
		u, overflow := uint256.FromBig(n)
		if overflow || n.Sign() < 0 {
			return fmt.Errorf("%w: %v does not fit %v", ErrValueOutOfRange, n, dst.Type())
		}
		dst.Set(reflect.ValueOf(u))
		return nil
	}
	return fmt.Errorf("%w: cannot unmarshal %v in to %v", ErrTypeMismatch, v.typ, dst.Type())
}

func setBytes(dst reflect.Value, b []byte, typ Type) error {
	if (dst.Kind() != reflect.Slice && dst.Kind() != reflect.Array) || dst.Type().Elem().Kind() != reflect.Uint8 {
		return fmt.Errorf("%w: cannot unmarshal %v in to %v", ErrTypeMismatch, typ, dst.Type())
	}
	switch dst.Kind() {
	case reflect.Slice:
		dst.SetBytes(common.CopyBytes(b))
		return nil
	case reflect.Array:
		if dst.Len() != len(b) {
			return fmt.Errorf("%w: cannot unmarshal %v in to %v", ErrTypeMismatch, typ, dst.Type())
		}
		reflect.Copy(dst, reflect.ValueOf(b))
		return nil
	}
	return fmt.Errorf("%w: cannot unmarshal %v in to %v", ErrTypeMismatch, typ, dst.Type())
}

func setSequence(dst reflect.Value, v Value) error {
	elems := v.data.([]Value)
	switch dst.Kind() {
	case reflect.Slice:
		slice := reflect.MakeSlice(dst.Type(), len(elems), len(elems))
		for i, elem := range elems {
			if err := setValue(slice.Index(i), elem); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		dst.Set(slice)
		return nil
	case reflect.Array:
		if dst.Len() != len(elems) {
			return fmt.Errorf("%w: cannot unmarshal %v in to %v", ErrTypeMismatch, v.typ, dst.Type())
		}
		array := reflect.New(dst.Type()).Elem()
		for i, elem := range elems {
			if err := setValue(array.Index(i), elem); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		dst.Set(array)
		return nil
	}
	return fmt.Errorf("%w: cannot unmarshal %v in to %v", ErrTypeMismatch, v.typ, dst.Type())
}

func setTuple(dst reflect.Value, v Value) error {
	if dst.Kind() != reflect.Struct {
		return fmt.Errorf("%w: cannot unmarshal tuple in to %v", ErrTypeMismatch, dst.Type())
	}
	elems := v.data.([]Value)
	if fields, ok := tupleFields(dst, v.typ); ok {
		for i, elem := range elems {
			if err := setValue(fields[i], elem); err != nil {
				return fmt.Errorf("component %d: %w", i, err)
			}
		}
		return nil
	}
	argNames := make([]string, len(elems))
	for i, raw := range v.typ.TupleRawNames {
		argNames[i] = argumentKey(raw, i)
	}
	abi2struct, err := mapArgNamesToStructFields(argNames, dst)
	if err != nil {
		return err
	}
	for i, elem := range elems {
		field := dst.FieldByName(abi2struct[argNames[i]])
		if !field.IsValid() {
			if dst.NumField() != len(elems) {
				return fmt.Errorf("%w: field %s can't be found in %v", ErrTypeMismatch, argNames[i], dst.Type())
			}
			field = dst.Field(i)
		}
		if err := setValue(field, elem); err != nil {
			return fmt.Errorf("field %s: %w", argNames[i], err)
		}
	}
	return nil
}

// tupleFields returns the fields of dst named like the generated struct of
// tuple type t would name them, if dst has all of them.
func tupleFields(dst reflect.Value, t Type) ([]reflect.Value, bool) {
	names := TupleFieldNames(t)
	fields := make([]reflect.Value, len(names))
	for i, name := range names {
		fields[i] = dst.FieldByName(name)
		if !fields[i].IsValid() || !fields[i].CanSet() {
			return nil, false
		}
	}
	return fields, true
}

// mapArgNamesToStructFields maps a slice of argument names to struct fields.
//
// first round: for each Exportable field that contains a `abi:""` tag and this
// field name exists in the given argument name list, pair them together.
//
// second round: for each argument name that has not been already linked, find
// what variable is expected to be mapped into, if it exists and has not been
// used, pair them.
//
// Note this function assumes the given value is a struct value.
func mapArgNamesToStructFields(argNames []string, value reflect.Value) (map[string]string, error) {
	typ := value.Type()

	abi2struct := make(map[string]string)
	struct2abi := make(map[string]string)

	// first round ~~~
	for i := 0; i < typ.NumField(); i++ {
		structFieldName := typ.Field(i).Name

		// skip private struct fields.
		if structFieldName[:1] != strings.ToUpper(structFieldName[:1]) {
			continue
		}
		// skip fields that have no abi:"" tag.
		tagName, ok := typ.Field(i).Tag.Lookup("abi")
		if !ok {
			continue
		}
		// check if tag is empty.
		if tagName == "" {
			return nil, fmt.Errorf("%w: abi tag in '%s' is empty", ErrTypeMismatch, structFieldName)
		}
		// check which argument field matches with the abi tag.
		found := false
		for _, arg := range argNames {
			if arg == tagName {
				if abi2struct[arg] != "" {
					return nil, fmt.Errorf("%w: abi tag in '%s' already mapped", ErrDuplicateName, structFieldName)
				}
				abi2struct[arg] = structFieldName
				struct2abi[structFieldName] = arg
				found = true
			}
		}
		if !found {
			return nil, fmt.Errorf("%w: abi tag '%s' defined but not found in abi", ErrTypeMismatch, tagName)
		}
	}

	// second round ~~~
	for _, argName := range argNames {
		structFieldName := ToCamelCase(argName)

		if structFieldName == "" {
			return nil, fmt.Errorf("%w: purely underscored output cannot unpack to struct", ErrTypeMismatch)
		}

		// this abi has already been paired, skip it... unless there exists another, yet unassigned
		// struct field with the same field name. If so, raise an error:
		//    abi: [ { "name": "value" } ]
		//    struct { Value  *big.Int , Value1 *big.Int `abi:"value"`}
		if abi2struct[argName] != "" {
			if abi2struct[argName] != structFieldName &&
				struct2abi[structFieldName] == "" &&
				value.FieldByName(structFieldName).IsValid() {
				return nil, fmt.Errorf("%w: multiple variables maps to the same abi field '%s'", ErrDuplicateName, argName)
			}
			continue
		}

		// return an error if this struct field has already been paired.
		if struct2abi[structFieldName] != "" {
			return nil, fmt.Errorf("%w: multiple outputs mapping to the same struct field '%s'", ErrDuplicateName, structFieldName)
		}

		if value.FieldByName(structFieldName).IsValid() {
			// pair them
			abi2struct[argName] = structFieldName
			struct2abi[structFieldName] = argName
		} else {
			// not paired, but annotate as used, to detect cases like
			//   abi : [ { "name": "value" }, { "name": "_value" } ]
			//   struct { Value *big.Int }
			struct2abi[structFieldName] = argName
		}
	}
	return abi2struct, nil
}
