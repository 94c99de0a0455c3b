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
	"math/big"
	"testing"

	"github.com/solbind/solbind/common"
	"github.com/stretchr/testify/require"
)

func roundTripValues(t *testing.T) []Value {
	t.Helper()
	minInt256 := new(big.Int).Neg(new(big.Int).Lsh(common.Big1, 255))
	i256, err := NewInt(256, minInt256)
	require.NoError(t, err)
	u256, err := NewUint(256, common.MaxUint256.ToBig())
	require.NoError(t, err)
	fixed, err := NewFixedBytes([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	b4, err := NewFixedBytes([]byte{1, 2, 3, 4})
	require.NoError(t, err)

	strs, err := NewSlice(MustNewType("string"), []Value{NewString(""), NewString("a longer string spanning more than thirty two bytes")})
	require.NoError(t, err)
	empty, err := NewSlice(MustNewType("uint8"), nil)
	require.NoError(t, err)
	inner, err := NewTuple(mustInt(t, 16, -300), NewBytes([]byte{0xde, 0xad}))
	require.NoError(t, err)
	tuples, err := NewArray(inner.Type(), []Value{inner, inner})
	require.NoError(t, err)
	staticTuple, err := NewTuple(NewBool(true), b4)
	require.NoError(t, err)
	nested, err := NewSlice(strs.Type(), []Value{strs, strs})
	require.NoError(t, err)

	return []Value{
		mustUint(t, 8, 255),
		mustInt(t, 8, -128),
		mustInt(t, 64, -1),
		i256,
		u256,
		NewBool(false),
		NewAddress(common.HexToAddress("0xdeadbeefdeadbeefdeadbeefdeadbeefdeadbeef")),
		fixed,
		b4,
		NewBytes(make([]byte, 65)),
		NewString("hello, world"),
		strs,
		empty,
		tuples,
		staticTuple,
		nested,
	}
}

func TestRoundTrip(t *testing.T) {
	values := roundTripValues(t)
	// each value on its own
	for _, v := range values {
		enc, err := Encode(v)
		require.NoError(t, err, v.Type().String())
		require.Zero(t, len(enc)%32)
		dec, err := Decode(enc, v.Type())
		require.NoError(t, err, v.Type().String())
		require.Len(t, dec, 1)
		require.True(t, v.Equal(dec[0]), "%v: have %v want %v", v.Type(), dec[0], v)
	}
	// and all of them in one tuple
	types := make([]Type, len(values))
	for i, v := range values {
		types[i] = v.Type()
	}
	enc, err := Encode(values...)
	require.NoError(t, err)
	dec, err := Decode(enc, types...)
	require.NoError(t, err)
	for i := range values {
		require.True(t, values[i].Equal(dec[i]), "value %d", i)
	}
}

func TestDecodeDynamicPair(t *testing.T) {
	data := words(
		"0000000000000000000000000000000000000000000000000000000000000005",
		"0000000000000000000000000000000000000000000000000000000000000040",
		"0000000000000000000000000000000000000000000000000000000000000002",
		"6869000000000000000000000000000000000000000000000000000000000000",
	)
	dec, err := Decode(data, MustNewType("uint256"), MustNewType("string"))
	require.NoError(t, err)
	require.Equal(t, int64(5), dec[0].Int().Int64())
	require.Equal(t, "hi", dec[1].Str())
}

func TestDecodeTrailingBytes(t *testing.T) {
	data := append(words("0000000000000000000000000000000000000000000000000000000000000001"), 0xff, 0xff)
	dec, err := Decode(data, MustNewType("bool"))
	require.NoError(t, err)
	require.True(t, dec[0].Bool())
}

func TestDecodeErrors(t *testing.T) {
	bytesT := MustNewType("bytes")

	// Not constructible through NewType, which rejects the element type.
	word := MustNewType("uint256")
	hugeArray := Type{T: ArrayTy, Size: 1 << 62, Elem: &word}
	hugeSlice := Type{T: SliceTy, Elem: &hugeArray}
	tests := []struct {
		name string
		data []byte
		typ  Type
		want error
	}{
		{"empty", nil, MustNewType("uint256"), ErrTruncatedData},
		{"short head", make([]byte, 31), MustNewType("bool"), ErrTruncatedData},
		{"truncated bytes content", words(
			"0000000000000000000000000000000000000000000000000000000000000020",
			"0000000000000000000000000000000000000000000000000000000000000005",
		)[:67], bytesT, ErrTruncatedData},
		{"truncated length word", words(
			"0000000000000000000000000000000000000000000000000000000000000020",
		)[:32+8], bytesT, ErrTruncatedData},
		{"offset past end", words(
			"0000000000000000000000000000000000000000000000000000000000001000",
			"0000000000000000000000000000000000000000000000000000000000000000",
		), bytesT, ErrMalformedOffset},
		{"offset overflow", words(
			"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		), bytesT, ErrMalformedOffset},
		{"length overflow", words(
			"0000000000000000000000000000000000000000000000000000000000000020",
			"ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff",
		), bytesT, ErrMalformedOffset},
		{"slice longer than data", words(
			"0000000000000000000000000000000000000000000000000000000000000020",
			"000000000000000000000000000000000000000000000000000000000000000a",
			"0000000000000000000000000000000000000000000000000000000000000001",
		), MustNewType("uint256[]"), ErrTruncatedData},
		{"bad bool", words(
			"0000000000000000000000000000000000000000000000000000000000000002",
		), MustNewType("bool"), ErrValueOutOfRange},
		{"uint8 overflow", words(
			"0000000000000000000000000000000000000000000000000000000000000100",
		), MustNewType("uint8"), ErrValueOutOfRange},
		{"int8 overflow", words(
			"0000000000000000000000000000000000000000000000000000000000000080",
		), MustNewType("int8"), ErrValueOutOfRange},
		{"static array short", words(
			"0000000000000000000000000000000000000000000000000000000000000001",
		), MustNewType("uint256[2]"), ErrTruncatedData},
		{"huge static array", make([]byte, 64), MustNewType("uint8[1099511627776]"), ErrTruncatedData},
		{"huge static array in tuple", make([]byte, 64), MustNewType("(bool,uint8[1099511627776])"), ErrTruncatedData},
		{"huge dynamic array", words(
			"0000000000000000000000000000000000000000000000000000000000000020",
			"0000000000000000000000000000000000000000000000000000000000000000",
		), MustNewType("string[1099511627776]"), ErrTruncatedData},
		{"slice of oversized arrays", words(
			"0000000000000000000000000000000000000000000000000000000000000020",
			"0000000000000000000000000000000000000000000000000000000000000001",
			"0000000000000000000000000000000000000000000000000000000000000000",
		), hugeSlice, ErrTruncatedData},
	}
	for _, tt := range tests {
		_, err := Decode(tt.data, tt.typ)
		require.ErrorIs(t, err, tt.want, tt.name)
	}
}

func TestReadInteger(t *testing.T) {
	n, err := ReadInteger(MustNewType("int8"), words("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff80"))
	require.NoError(t, err)
	require.Equal(t, int64(-128), n.Int64())

	n, err = ReadInteger(MustNewType("int256"), words("8000000000000000000000000000000000000000000000000000000000000000"))
	require.NoError(t, err)
	require.Equal(t, new(big.Int).Neg(new(big.Int).Lsh(common.Big1, 255)), n)

	_, err = ReadInteger(MustNewType("int8"), words("ffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff7f"))
	require.ErrorIs(t, err, ErrValueOutOfRange)
}
