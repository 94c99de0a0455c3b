// Copyright 2019 The go-ethereum Authors
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
	"reflect"
	"testing"

	"github.com/holiman/uint256"
	"github.com/solbind/solbind/common"
	"github.com/stretchr/testify/require"
)

type reflectTest struct {
	name  string
	args  []string
	struc interface{}
	want  map[string]string
	err   string
}

var reflectTests = []reflectTest{
	{
		name: "OneToOneCorrespondence",
		args: []string{"fieldA"},
		struc: struct {
			FieldA int `abi:"fieldA"`
		}{},
		want: map[string]string{
			"fieldA": "FieldA",
		},
	},
	{
		name: "MissingFieldsInStruct",
		args: []string{"fieldA", "fieldB"},
		struc: struct {
			FieldA int `abi:"fieldA"`
		}{},
		want: map[string]string{
			"fieldA": "FieldA",
		},
	},
	{
		name: "NoTagsInStruct",
		args: []string{"fieldA"},
		struc: struct {
			FieldA int
		}{},
		want: map[string]string{
			"fieldA": "FieldA",
		},
	},
	{
		name: "DifferentName",
		args: []string{"fieldB"},
		struc: struct {
			FieldA int `abi:"fieldB"`
		}{},
		want: map[string]string{
			"fieldB": "FieldA",
		},
	},
	{
		name: "MultipleVariablesToSameField",
		args: []string{"value", "_value"},
		struc: struct {
			Value int
		}{},
		err: "abi: duplicate name: multiple outputs mapping to the same struct field 'Value'",
	},
	{
		name: "EmptyTag",
		args: []string{"fieldA"},
		struc: struct {
			FieldA int `abi:""`
		}{},
		err: "abi: type mismatch: abi tag in 'FieldA' is empty",
	},
}

func TestReflectNameToStruct(t *testing.T) {
	for _, test := range reflectTests {
		t.Run(test.name, func(t *testing.T) {
			m, err := mapArgNamesToStructFields(test.args, reflect.ValueOf(test.struc))
			if test.err != "" {
				require.EqualError(t, err, test.err)
				return
			}
			require.NoError(t, err)
			for fname := range test.want {
				require.Equal(t, test.want[fname], m[fname])
			}
		})
	}
}

type pair struct {
	Owner  common.Address
	Amount *big.Int
	Tags   []string
}

func TestToValueCopy(t *testing.T) {
	typ, err := NewType("tuple", "struct Pair", []ArgumentMarshaling{
		{Name: "owner", Type: "address"},
		{Name: "amount", Type: "uint128"},
		{Name: "tags", Type: "string[]"},
	})
	require.NoError(t, err)

	in := pair{
		Owner:  common.HexToAddress("0x3333333333333333333333333333333333333333"),
		Amount: big.NewInt(42),
		Tags:   []string{"a", "b"},
	}
	v, err := ToValue(typ, in)
	require.NoError(t, err)
	require.Equal(t, "(address,uint128,string[])", v.Type().String())

	enc, err := Encode(v)
	require.NoError(t, err)
	dec, err := Decode(enc, typ)
	require.NoError(t, err)

	var out pair
	require.NoError(t, Copy(&out, dec[0]))
	require.Equal(t, in, out)

	// pointers to structs convert as well
	v2, err := ToValue(typ, &in)
	require.NoError(t, err)
	require.True(t, v.Equal(v2))
}

func TestToValueIntegers(t *testing.T) {
	u8 := MustNewType("uint8")
	_, err := ToValue(u8, 300)
	require.ErrorIs(t, err, ErrValueOutOfRange)
	_, err = ToValue(u8, -1)
	require.ErrorIs(t, err, ErrValueOutOfRange)

	v, err := ToValue(MustNewType("uint256"), uint256.NewInt(7))
	require.NoError(t, err)
	require.Equal(t, int64(7), v.Int().Int64())

	_, err = ToValue(u8, (*big.Int)(nil))
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestCopyConversions(t *testing.T) {
	v := mustUint(t, 64, 1<<40)

	var u64 uint64
	require.NoError(t, Copy(&u64, v))
	require.Equal(t, uint64(1<<40), u64)

	var u8 uint8
	require.ErrorIs(t, Copy(&u8, v), ErrValueOutOfRange)

	var s string
	require.ErrorIs(t, Copy(&s, v), ErrTypeMismatch)

	var u *uint256.Int
	require.NoError(t, Copy(&u, v))
	require.Equal(t, uint64(1<<40), u.Uint64())

	fixed, err := NewFixedBytes([]byte{1, 2, 3, 4})
	require.NoError(t, err)
	var b4 [4]byte
	require.NoError(t, Copy(&b4, fixed))
	require.Equal(t, [4]byte{1, 2, 3, 4}, b4)
	var b5 [5]byte
	require.ErrorIs(t, Copy(&b5, fixed), ErrTypeMismatch)

	var iface interface{}
	require.NoError(t, Copy(&iface, NewString("x")))
	require.Equal(t, "x", iface)

	require.ErrorIs(t, Copy(u64, v), ErrTypeMismatch)
}
