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

// Encode serializes the values as one ABI tuple: a head region of fixed size
// followed by the tails of all dynamic values. The result length is always a
// multiple of 32.
func Encode(values ...Value) ([]byte, error) {
	return encodeSequence(values)
}

// encodeSequence lays out a sequence of values. Static values are written
// in place; dynamic values leave an offset in the head, counted from the start
// of the head, and append their encoding to the tail.
func encodeSequence(values []Value) ([]byte, error) {
	headSize := 0
	for i, v := range values {
		if v.IsZero() {
			return nil, fmt.Errorf("%w: value %d is unset", ErrTypeMismatch, i)
		}
		headSize += getTypeSize(v.typ)
	}
	var (
		head = make([]byte, 0, headSize)
		tail []byte
	)
	for i, v := range values {
		enc, err := encodeValue(v)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		if isDynamicType(v.typ) {
			head = append(head, packNum(uint64(headSize+len(tail)))...)
			tail = append(tail, enc...)
		} else {
			head = append(head, enc...)
		}
	}
	return append(head, tail...), nil
}

// encodeValue returns the encoding of a single value. For dynamic values this
// is the content that goes to the tail.
func encodeValue(v Value) ([]byte, error) {
	switch v.typ.T {
	case SliceTy:
		elems := v.data.([]Value)
		enc, err := encodeSequence(elems)
		if err != nil {
			return nil, err
		}
		return append(packNum(uint64(len(elems))), enc...), nil
	case ArrayTy, TupleTy:
		return encodeSequence(v.data.([]Value))
	default:
		return packElement(v)
	}
}

// packElement packs an elementary value into its word, or its [L, V] form
// for bytes and string.
func packElement(v Value) ([]byte, error) {
	switch v.typ.T {
	case IntTy, UintTy:
		n := v.data.(*big.Int)
		if err := checkIntRange(v.typ, n); err != nil {
			return nil, err
		}
		return packBig(n), nil
	case BoolTy:
		if v.data.(bool) {
			return packNum(1), nil
		}
		return packNum(0), nil
	case AddressTy:
		addr := v.data.(common.Address)
		return common.LeftPadBytes(addr.Bytes(), 32), nil
	case FixedBytesTy:
		return common.RightPadBytes(v.data.([]byte), 32), nil
	case BytesTy:
		return packBytesSlice(v.data.([]byte)), nil
	case StringTy:
		return packBytesSlice([]byte(v.data.(string))), nil
	default:
		return nil, fmt.Errorf("%w: could not pack element, unknown type: %v", ErrTypeMismatch, v.typ.T)
	}
}

// packBytesSlice packs the given bytes as [L, V] as the canonical representation
// bytes slice.
func packBytesSlice(bytes []byte) []byte {
	l := len(bytes)
	return append(packNum(uint64(l)), common.RightPadBytes(bytes, (l+31)/32*32)...)
}

// packNum packs an unsigned machine integer into a word.
func packNum(n uint64) []byte {
	word := uint256.NewInt(n).Bytes32()
	return word[:]
}

// packBig packs n as a two's complement word. Callers guarantee that n fits
// 256 bits.
func packBig(n *big.Int) []byte {
	u, _ := uint256.FromBig(n)
	word := u.Bytes32()
	return word[:]
}
