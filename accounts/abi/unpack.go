// Copyright 2017 The go-ethereum Authors
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
	"math/big"

	"github.com/holiman/uint256"
	"github.com/solbind/solbind/common"
)

// Decode parses data as an ABI tuple of the given types. Offsets are followed
// relative to the start of the region they were read from; bytes after the
// last value are ignored.
func Decode(data []byte, types ...Type) ([]Value, error) {
	return decodeSequence(types, data)
}

// decodeSequence reads one value per type, the heads being laid out back to
// back from the start of region.
func decodeSequence(types []Type, region []byte) ([]Value, error) {
	var (
		values = make([]Value, 0, len(types))
		pos    int
	)
	for i, t := range types {
		v, err := decodeAt(t, region, pos)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		values = append(values, v)
		pos += getTypeSize(t)
	}
	return values, nil
}

// decodeAt reads the value of type t whose head starts at pos.
func decodeAt(t Type, region []byte, pos int) (Value, error) {
	if pos > len(region)-32 {
		return Value{}, fmt.Errorf("%w: need %d bytes for %v head, have %d", ErrTruncatedData, pos+32, t, len(region))
	}
	if isDynamicType(t) {
		offset, err := readOffset(region[pos : pos+32])
		if err != nil {
			return Value{}, err
		}
		if offset > uint64(len(region)) {
			return Value{}, fmt.Errorf("%w: offset %d would go over slice boundary (len=%d)", ErrMalformedOffset, offset, len(region))
		}
		return decodeTail(t, region[offset:])
	}
	if size := getTypeSize(t); size > len(region)-pos {
		return Value{}, fmt.Errorf("%w: %v needs %d bytes, have %d", ErrTruncatedData, t, size, len(region)-pos)
	}
	switch t.T {
	case ArrayTy:
		elems, err := decodeSequence(repeatType(*t.Elem, t.Size), region[pos:])
		if err != nil {
			return Value{}, err
		}
		return Value{typ: t, data: elems}, nil
	case TupleTy:
		elems, err := decodeSequence(tupleTypes(t), region[pos:])
		if err != nil {
			return Value{}, err
		}
		return Value{typ: t, data: elems}, nil
	default:
		return readElement(t, region[pos:pos+32])
	}
}

// decodeTail reads a dynamic value whose encoding starts at the beginning of
// content.
func decodeTail(t Type, content []byte) (Value, error) {
	switch t.T {
	case StringTy, BytesTy:
		b, err := readLengthPrefixed(content)
		if err != nil {
			return Value{}, err
		}
		if t.T == StringTy {
			return Value{typ: t, data: string(b)}, nil
		}
		return Value{typ: t, data: common.CopyBytes(b)}, nil
	case SliceTy:
		n, err := readLength(content)
		if err != nil {
			return Value{}, err
		}
		body := content[32:]
		// Every element needs at least one head slot.
		if n > uint64(len(body))/uint64(getTypeSize(*t.Elem)) {
			return Value{}, fmt.Errorf("%w: %d elements of %v do not fit %d bytes", ErrTruncatedData, n, t.Elem, len(body))
		}
		elems, err := decodeSequence(repeatType(*t.Elem, int(n)), body)
		if err != nil {
			return Value{}, err
		}
		return Value{typ: t, data: elems}, nil
	case ArrayTy:
		// Elements are dynamic, each takes one offset slot.
		if t.Size > len(content)/32 {
			return Value{}, fmt.Errorf("%w: %d elements of %v do not fit %d bytes", ErrTruncatedData, t.Size, t.Elem, len(content))
		}
		elems, err := decodeSequence(repeatType(*t.Elem, t.Size), content)
		if err != nil {
			return Value{}, err
		}
		return Value{typ: t, data: elems}, nil
	case TupleTy:
		elems, err := decodeSequence(tupleTypes(t), content)
		if err != nil {
			return Value{}, err
		}
		return Value{typ: t, data: elems}, nil
	default:
		return Value{}, fmt.Errorf("%w: %v is not dynamic", ErrTypeMismatch, t)
	}
}

// readElement decodes a single static word.
func readElement(t Type, word []byte) (Value, error) {
	switch t.T {
	case IntTy, UintTy:
		n, err := ReadInteger(t, word)
		if err != nil {
			return Value{}, err
		}
		return Value{typ: t, data: n}, nil
	case BoolTy:
		b, err := readBool(word)
		if err != nil {
			return Value{}, err
		}
		return Value{typ: t, data: b}, nil
	case AddressTy:
		return Value{typ: t, data: common.BytesToAddress(word[12:32])}, nil
	case FixedBytesTy:
		return Value{typ: t, data: common.CopyBytes(word[:t.Size])}, nil
	default:
		return Value{}, fmt.Errorf("%w: unknown type %v", ErrTypeMismatch, t.T)
	}
}

// ReadInteger reads the integer of type typ from a 32 byte word. Words that do
// not hold a value representable by typ are rejected.
func ReadInteger(typ Type, word []byte) (*big.Int, error) {
	u := new(uint256.Int).SetBytes32(word)
	var ret *big.Int
	if typ.T == IntTy && u.Sign() < 0 {
		ret = new(uint256.Int).Neg(u).ToBig()
		ret.Neg(ret)
	} else {
		ret = u.ToBig()
	}
	if err := checkIntRange(typ, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

// readBool reads a bool.
func readBool(word []byte) (bool, error) {
	for _, b := range word[:31] {
		if b != 0 {
			return false, errBadBool
		}
	}
	switch word[31] {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, errBadBool
	}
}

// readOffset interprets a head word as a byte offset.
func readOffset(word []byte) (uint64, error) {
	u := new(uint256.Int).SetBytes32(word)
	if u.BitLen() > 63 {
		return 0, fmt.Errorf("%w: offset larger than int64: %v", ErrMalformedOffset, u.Dec())
	}
	return u.Uint64(), nil
}

// readLength reads the length word at the start of content.
func readLength(content []byte) (uint64, error) {
	if len(content) < 32 {
		return 0, fmt.Errorf("%w: need 32 bytes for length, have %d", ErrTruncatedData, len(content))
	}
	u := new(uint256.Int).SetBytes32(content[:32])
	if u.BitLen() > 63 {
		return 0, fmt.Errorf("%w: length larger than int64: %v", ErrMalformedOffset, u.Dec())
	}
	return u.Uint64(), nil
}

// readLengthPrefixed returns the payload of an [L, V] encoded bytes or
// string. Only the payload itself must be present, not its padding.
func readLengthPrefixed(content []byte) ([]byte, error) {
	n, err := readLength(content)
	if err != nil {
		return nil, err
	}
	body := content[32:]
	if n > uint64(len(body)) {
		return nil, fmt.Errorf("%w: length insufficient %d require %d", ErrTruncatedData, len(body), n)
	}
	return body[:n], nil
}

func repeatType(t Type, n int) []Type {
	types := make([]Type, n)
	for i := range types {
		types[i] = t
	}
	return types
}

func tupleTypes(t Type) []Type {
	types := make([]Type, len(t.TupleElems))
	for i, elem := range t.TupleElems {
		types[i] = *elem
	}
	return types
}
