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
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/solbind/solbind/common"
)

// Kind is the closed set of ABI type categories.
type Kind byte

// Type enumerator
const (
	IntTy Kind = iota
	UintTy
	BoolTy
	StringTy
	SliceTy
	ArrayTy
	TupleTy
	AddressTy
	FixedBytesTy
	BytesTy
)

var kindNames = [...]string{
	IntTy:        "int",
	UintTy:       "uint",
	BoolTy:       "bool",
	StringTy:     "string",
	SliceTy:      "slice",
	ArrayTy:      "array",
	TupleTy:      "tuple",
	AddressTy:    "address",
	FixedBytesTy: "fixedbytes",
	BytesTy:      "bytes",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Type is the reflection of the supported argument type. A Type is built once
// by NewType and never modified afterwards; nested types are shared by pointer.
type Type struct {
	Elem *Type // element type of slices and fixed arrays
	Size int   // bit width of integers, byte length of bytesN, length of fixed arrays
	T    Kind

	// Tuple relative fields
	TupleRawName  string   // struct name taken from the solidity internalType, if any
	TupleElems    []*Type  // component types in declaration order
	TupleRawNames []string // component names as declared, possibly empty
}

// NewType creates a new reflection type of abi type given in t. The internal
// type and components are only consulted for JSON-style "tuple" types; the
// inline form "(t1,t2)" is accepted as well.
func NewType(t string, internalType string, components []ArgumentMarshaling) (typ Type, err error) {
	if t == "" {
		return Type{}, fmt.Errorf("%w: empty type", ErrInvalidTypeSyntax)
	}
	if strings.Count(t, "[") != strings.Count(t, "]") || strings.Count(t, "(") != strings.Count(t, ")") {
		return Type{}, fmt.Errorf("%w: unbalanced brackets in %q", ErrInvalidTypeSyntax, t)
	}
	// The outermost array dimension is the last bracket pair, so recurse on
	// everything in front of it.
	if strings.HasSuffix(t, "]") {
		i := strings.LastIndex(t, "[")
		if i <= 0 {
			return Type{}, fmt.Errorf("%w: missing element type in %q", ErrInvalidTypeSyntax, t)
		}
		// Note internalType can be empty here.
		subInternal := internalType
		if j := strings.LastIndex(internalType, "["); j != -1 {
			subInternal = subInternal[:j]
		}
		embeddedType, err := NewType(t[:i], subInternal, components)
		if err != nil {
			return Type{}, err
		}
		typ.Elem = &embeddedType

		size := t[i+1 : len(t)-1]
		if size == "" {
			typ.T = SliceTy
			return typ, nil
		}
		n, err := parseDecimal(size)
		if err != nil || n <= 0 {
			return Type{}, fmt.Errorf("%w: invalid array length %q in %q", ErrInvalidTypeSyntax, size, t)
		}
		typ.T = ArrayTy
		typ.Size = n
		if getTypeSize(typ) == math.MaxInt {
			return Type{}, fmt.Errorf("%w: array %q is too large to encode", ErrInvalidTypeSyntax, t)
		}
		return typ, nil
	}
	if strings.HasPrefix(t, "(") {
		if !strings.HasSuffix(t, ")") {
			return Type{}, fmt.Errorf("%w: trailing characters after tuple in %q", ErrInvalidTypeSyntax, t)
		}
		parts, err := splitTopLevel(t[1 : len(t)-1])
		if err != nil {
			return Type{}, fmt.Errorf("%w: %v in %q", ErrInvalidTypeSyntax, err, t)
		}
		components := make([]ArgumentMarshaling, len(parts))
		for i, part := range parts {
			components[i] = ArgumentMarshaling{Type: part}
		}
		return newTupleType(components, internalType)
	}
	if t == "tuple" {
		return newTupleType(components, internalType)
	}
	return newElementaryType(t)
}

// MustNewType is like NewType but panics on error. It simplifies the
// initialization of package level type variables.
func MustNewType(t string) Type {
	typ, err := NewType(t, "", nil)
	if err != nil {
		panic(err)
	}
	return typ
}

// newElementaryType parses everything that is neither an array nor a tuple.
func newElementaryType(t string) (typ Type, err error) {
	i := 0
	for i < len(t) && isAlpha(t[i]) {
		i++
	}
	base, suffix := t[:i], t[i:]

	var size int
	if suffix != "" {
		if size, err = parseDecimal(suffix); err != nil {
			return Type{}, fmt.Errorf("%w: unknown type %q", ErrInvalidTypeSyntax, t)
		}
	}
	switch base {
	case "int", "uint":
		if suffix == "" {
			size = 256
		}
		if size < 8 || size > 256 || size%8 != 0 {
			return Type{}, fmt.Errorf("%w: invalid integer width %d in %q", ErrInvalidTypeSyntax, size, t)
		}
		typ.Size = size
		typ.T = IntTy
		if base == "uint" {
			typ.T = UintTy
		}
	case "bool", "address", "string":
		if suffix != "" {
			return Type{}, fmt.Errorf("%w: unknown type %q", ErrInvalidTypeSyntax, t)
		}
		switch base {
		case "bool":
			typ.T = BoolTy
		case "address":
			typ.T = AddressTy
			typ.Size = common.AddressLength
		default:
			typ.T = StringTy
		}
	case "bytes":
		if suffix == "" {
			typ.T = BytesTy
			break
		}
		if size < 1 || size > 32 {
			return Type{}, fmt.Errorf("%w: invalid fixed bytes length %d in %q", ErrInvalidTypeSyntax, size, t)
		}
		typ.T = FixedBytesTy
		typ.Size = size
	default:
		return Type{}, fmt.Errorf("%w: unsupported arg type %q", ErrInvalidTypeSyntax, t)
	}
	return typ, nil
}

// newTupleType assembles a tuple from its components.
func newTupleType(components []ArgumentMarshaling, internalType string) (Type, error) {
	if len(components) == 0 {
		return Type{}, fmt.Errorf("%w: tuple without components", ErrInvalidTypeSyntax)
	}
	typ := Type{T: TupleTy}
	for _, c := range components {
		cType, err := NewType(c.Type, c.InternalType, c.Components)
		if err != nil {
			return Type{}, err
		}
		typ.TupleElems = append(typ.TupleElems, &cType)
		typ.TupleRawNames = append(typ.TupleRawNames, c.Name)
	}
	const structPrefix = "struct "
	// After solidity 0.5.10, a new field of abi "internalType"
	// is introduced. From that we can obtain the struct name
	// user defined in the source code.
	if strings.HasPrefix(internalType, structPrefix) {
		// Foo.Bar type definition is not allowed in golang,
		// convert the format to FooBar
		typ.TupleRawName = strings.ReplaceAll(internalType[len(structPrefix):], ".", "")
	}
	return typ, nil
}

// parseDecimal parses a canonical positive decimal: digits only, no sign and
// no leading zero.
func parseDecimal(s string) (int, error) {
	if s == "" || (len(s) > 1 && s[0] == '0') {
		return 0, fmt.Errorf("invalid number %q", s)
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return 0, fmt.Errorf("invalid number %q", s)
		}
	}
	return strconv.Atoi(s)
}

// splitTopLevel splits a comma separated list, ignoring commas nested in
// parentheses.
func splitTopLevel(s string) ([]string, error) {
	var (
		parts []string
		depth int
		start int
	)
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unexpected ')'")
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unbalanced parentheses")
	}
	parts = append(parts, s[start:])
	for _, part := range parts {
		if part == "" {
			return nil, fmt.Errorf("empty component")
		}
	}
	return parts, nil
}

// String returns the canonical type name, the form that takes part in
// selector and topic hashing. Tuple component names never appear in it.
func (t Type) String() string {
	switch t.T {
	case IntTy:
		return "int" + strconv.Itoa(t.Size)
	case UintTy:
		return "uint" + strconv.Itoa(t.Size)
	case BoolTy:
		return "bool"
	case StringTy:
		return "string"
	case AddressTy:
		return "address"
	case BytesTy:
		return "bytes"
	case FixedBytesTy:
		return "bytes" + strconv.Itoa(t.Size)
	case SliceTy:
		return t.Elem.String() + "[]"
	case ArrayTy:
		return t.Elem.String() + "[" + strconv.Itoa(t.Size) + "]"
	case TupleTy:
		elems := make([]string, len(t.TupleElems))
		for i, elem := range t.TupleElems {
			elems[i] = elem.String()
		}
		return "(" + strings.Join(elems, ",") + ")"
	default:
		return t.T.String()
	}
}

// Equal reports whether two types have the same canonical form.
func (t Type) Equal(other Type) bool {
	return t.String() == other.String()
}

// IsDynamic reports whether the encoded size of values of this type depends
// on the value.
func (t Type) IsDynamic() bool {
	return isDynamicType(t)
}

// GetType returns the reflection type of the ABI type.
func (t Type) GetType() reflect.Type {
	switch t.T {
	case IntTy:
		return reflectIntType(false, t.Size)
	case UintTy:
		return reflectIntType(true, t.Size)
	case BoolTy:
		return reflect.TypeOf(false)
	case StringTy:
		return reflect.TypeOf("")
	case SliceTy:
		return reflect.SliceOf(t.Elem.GetType())
	case ArrayTy:
		return reflect.ArrayOf(t.Size, t.Elem.GetType())
	case TupleTy:
		names := TupleFieldNames(t)
		fields := make([]reflect.StructField, len(t.TupleElems))
		for i, elem := range t.TupleElems {
			fields[i] = reflect.StructField{
				Name: names[i],
				Type: elem.GetType(),
				Tag:  reflect.StructTag(`json:"` + t.TupleRawNames[i] + `"`),
			}
		}
		return reflect.StructOf(fields)
	case AddressTy:
		return reflect.TypeOf(common.Address{})
	case FixedBytesTy:
		return reflect.ArrayOf(t.Size, reflect.TypeOf(byte(0)))
	case BytesTy:
		return reflect.SliceOf(reflect.TypeOf(byte(0)))
	default:
		panic("Invalid type")
	}
}

// reflectIntType returns the reflect using the given size and
// unsignedness.
func reflectIntType(unsigned bool, size int) reflect.Type {
	if unsigned {
		switch size {
		case 8:
			return reflect.TypeOf(uint8(0))
		case 16:
			return reflect.TypeOf(uint16(0))
		case 32:
			return reflect.TypeOf(uint32(0))
		case 64:
			return reflect.TypeOf(uint64(0))
		}
	}
	switch size {
	case 8:
		return reflect.TypeOf(int8(0))
	case 16:
		return reflect.TypeOf(int16(0))
	case 32:
		return reflect.TypeOf(int32(0))
	case 64:
		return reflect.TypeOf(int64(0))
	}
	return reflect.TypeOf(&big.Int{})
}

// isDynamicType returns true if the type is dynamic.
// The following types are called “dynamic”:
// * bytes
// * string
// * T[] for any T
// * T[k] for any dynamic T and any k >= 0
// * (T1,...,Tk) if Ti is dynamic for some 1 <= i <= k
func isDynamicType(t Type) bool {
	if t.T == TupleTy {
		for _, elem := range t.TupleElems {
			if isDynamicType(*elem) {
				return true
			}
		}
		return false
	}
	return t.T == StringTy || t.T == BytesTy || t.T == SliceTy || (t.T == ArrayTy && isDynamicType(*t.Elem))
}

// getTypeSize returns the size that this type needs to occupy.
// We distinguish static and dynamic types. Static types are encoded in-place
// and dynamic types are encoded at a separately allocated location after the
// current block.
// So for a static variable, the size returned represents the size that the
// variable actually occupies.
// For a dynamic variable, the returned size is fixed 32 bytes, which is used
// to store the location reference for actual value storage.
// Sizes that do not fit an int saturate at math.MaxInt.
func getTypeSize(t Type) int {
	if t.T == ArrayTy && !isDynamicType(*t.Elem) {
		elem := 32
		// Recursively calculate type size if it is a nested array
		if t.Elem.T == ArrayTy || t.Elem.T == TupleTy {
			elem = getTypeSize(*t.Elem)
		}
		if elem > 0 && t.Size > math.MaxInt/elem {
			return math.MaxInt
		}
		return t.Size * elem
	} else if t.T == TupleTy && !isDynamicType(t) {
		total := 0
		for _, elem := range t.TupleElems {
			size := getTypeSize(*elem)
			if size > math.MaxInt-total {
				return math.MaxInt
			}
			total += size
		}
		return total
	}
	return 32
}
