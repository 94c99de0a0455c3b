// Copyright 2015 The go-ethereum Authors
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
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"
)

// Argument holds the name of the argument and the corresponding type.
// Types are used when packing and testing arguments.
type Argument struct {
	Name    string
	Type    Type
	Indexed bool // indexed is only used by events
}

// Arguments is an ordered parameter list.
type Arguments []Argument

// ArgumentMarshaling is the serialized form of an Argument, as found in JSON
// and YAML interface descriptions.
type ArgumentMarshaling struct {
	Name         string               `json:"name" yaml:"name"`
	Type         string               `json:"type" yaml:"type"`
	InternalType string               `json:"internalType,omitempty" yaml:"internalType,omitempty"`
	Components   []ArgumentMarshaling `json:"components,omitempty" yaml:"components,omitempty"`
	Indexed      bool                 `json:"indexed,omitempty" yaml:"indexed,omitempty"`
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (argument *Argument) UnmarshalJSON(data []byte) error {
	var arg ArgumentMarshaling
	err := json.Unmarshal(data, &arg)
	if err != nil {
		return fmt.Errorf("argument json err: %v", err)
	}
	return argument.fromMarshaling(arg)
}

func (argument *Argument) fromMarshaling(arg ArgumentMarshaling) (err error) {
	argument.Type, err = NewType(arg.Type, arg.InternalType, arg.Components)
	if err != nil {
		return err
	}
	argument.Name = arg.Name
	argument.Indexed = arg.Indexed
	return nil
}

// NewArguments parses a list of serialized arguments.
func NewArguments(args []ArgumentMarshaling) (Arguments, error) {
	out := make(Arguments, len(args))
	for i, arg := range args {
		if err := out[i].fromMarshaling(arg); err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, arg.Name, err)
		}
	}
	return out, nil
}

// NonIndexed returns the arguments with indexed arguments filtered out.
func (arguments Arguments) NonIndexed() Arguments {
	var ret []Argument
	for _, arg := range arguments {
		if !arg.Indexed {
			ret = append(ret, arg)
		}
	}
	return ret
}

// Indexed returns the indexed arguments only.
func (arguments Arguments) Indexed() Arguments {
	var ret []Argument
	for _, arg := range arguments {
		if arg.Indexed {
			ret = append(ret, arg)
		}
	}
	return ret
}

// Types returns the types of all arguments in order.
func (arguments Arguments) Types() []Type {
	types := make([]Type, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.Type
	}
	return types
}

// typeList renders the comma separated canonical types, as used in signatures.
func (arguments Arguments) typeList() string {
	types := make([]string, len(arguments))
	for i, arg := range arguments {
		types[i] = arg.Type.String()
	}
	return strings.Join(types, ",")
}

// Unpack performs the operation hexdata -> Go format.
func (arguments Arguments) Unpack(data []byte) ([]Value, error) {
	nonIndexed := arguments.NonIndexed()
	if len(data) == 0 {
		if len(nonIndexed) != 0 {
			return nil, fmt.Errorf("%w: attempting to unmarshal an empty string while arguments are expected", ErrTruncatedData)
		}
		return make([]Value, 0), nil
	}
	return Decode(data, nonIndexed.Types()...)
}

// UnpackIntoMap performs the operation hexdata -> mapping of argument name to
// argument value.
func (arguments Arguments) UnpackIntoMap(v map[string]Value, data []byte) error {
	if v == nil {
		return errors.New("abi: cannot unpack into a nil map")
	}
	values, err := arguments.Unpack(data)
	if err != nil {
		return err
	}
	for i, arg := range arguments.NonIndexed() {
		v[argumentKey(arg.Name, i)] = values[i]
	}
	return nil
}

// Copy performs the operation go format -> provided struct. A single value is
// copied into v directly; several values are copied into the fields of the
// struct, or the elements of the slice, v points to.
func (arguments Arguments) Copy(v interface{}, values []Value) error {
	if reflect.Ptr != reflect.ValueOf(v).Kind() {
		return fmt.Errorf("%w: Unpack(non-pointer %T)", ErrTypeMismatch, v)
	}
	nonIndexed := arguments.NonIndexed()
	if len(values) != len(nonIndexed) {
		return fmt.Errorf("%w: have %d values for %d arguments", ErrTypeMismatch, len(values), len(nonIndexed))
	}
	if len(values) == 0 {
		return nil
	}
	if len(values) == 1 {
		return arguments.copyAtomic(v, values[0])
	}
	return arguments.copyTuple(v, values)
}

// copyAtomic copies ( hexdata -> go ) a single value into v.
func (arguments Arguments) copyAtomic(v interface{}, value Value) error {
	dst := reflect.ValueOf(v).Elem()
	if dst.Kind() == reflect.Struct && value.typ.T != TupleTy {
		return setValue(dst.Field(0), value)
	}
	return setValue(dst, value)
}

// copyTuple copies a batch of values from marshalledValues to v.
func (arguments Arguments) copyTuple(v interface{}, values []Value) error {
	value := reflect.ValueOf(v).Elem()
	nonIndexed := arguments.NonIndexed()

	switch value.Kind() {
	case reflect.Struct:
		argNames := make([]string, len(nonIndexed))
		for i, arg := range nonIndexed {
			argNames[i] = argumentKey(arg.Name, i)
		}
		abi2struct, err := mapArgNamesToStructFields(argNames, value)
		if err != nil {
			return err
		}
		for i, name := range argNames {
			field := value.FieldByName(abi2struct[name])
			if !field.IsValid() {
				return fmt.Errorf("%w: field %s can't be found in the given value", ErrTypeMismatch, name)
			}
			if err := setValue(field, values[i]); err != nil {
				return fmt.Errorf("field %s: %w", name, err)
			}
		}
	case reflect.Slice, reflect.Array:
		if value.Kind() == reflect.Slice && value.Len() < len(values) {
			value.Set(reflect.MakeSlice(value.Type(), len(values), len(values)))
		}
		if value.Len() < len(values) {
			return fmt.Errorf("%w: insufficient number of arguments for unpack, want %d, got %d", ErrTypeMismatch, len(values), value.Len())
		}
		for i := range values {
			if err := setValue(value.Index(i), values[i]); err != nil {
				return err
			}
		}
	default:
		return fmt.Errorf("%w: cannot unmarshal tuple in to %v", ErrTypeMismatch, value.Type())
	}
	return nil
}

// Pack performs the operation Go format -> Hexdata. Every argument is
// converted with ToValue against the declared type first.
func (arguments Arguments) Pack(args ...interface{}) ([]byte, error) {
	if len(args) != len(arguments) {
		return nil, fmt.Errorf("%w: argument count mismatch: got %d for %d", ErrTypeMismatch, len(args), len(arguments))
	}
	values := make([]Value, len(args))
	for i, a := range args {
		v, err := ToValue(arguments[i].Type, a)
		if err != nil {
			return nil, fmt.Errorf("argument %d (%s): %w", i, arguments[i].Name, err)
		}
		values[i] = v
	}
	return Encode(values...)
}

// PackValues encodes already typed values, checking them against the
// declared argument types.
func (arguments Arguments) PackValues(values ...Value) ([]byte, error) {
	if len(values) != len(arguments) {
		return nil, fmt.Errorf("%w: argument count mismatch: got %d for %d", ErrTypeMismatch, len(values), len(arguments))
	}
	for i, v := range values {
		if !v.typ.Equal(arguments[i].Type) {
			return nil, fmt.Errorf("argument %d (%s): %w", i, arguments[i].Name, typeErr(arguments[i].Type, v.typ))
		}
	}
	return Encode(values...)
}

// argumentKey names unnamed arguments by position.
func argumentKey(name string, i int) string {
	if name == "" {
		return fmt.Sprintf("arg%d", i)
	}
	return name
}

// ToCamelCase converts an under-score string to a camel-case string
func ToCamelCase(input string) string {
	parts := strings.Split(input, "_")
	for i, s := range parts {
		if len(s) > 0 {
			parts[i] = strings.ToUpper(s[:1]) + s[1:]
		}
	}
	return strings.Join(parts, "")
}
