// Copyright 2020 The go-ethereum Authors
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
	"github.com/solbind/solbind/crypto"
	"github.com/stretchr/testify/require"
)

func TestMakeTopics(t *testing.T) {
	addr := common.HexToAddress("0x00000000000000000000000000000000000000ff")
	tests := []struct {
		name string
		rule interface{}
		want common.Hash
	}{
		{"address", addr, common.HexToHash("0xff")},
		{"big", big.NewInt(1), common.HexToHash("0x01")},
		{"negative big", big.NewInt(-1), common.HexToHash("0xffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffff")},
		{"int8", int8(-2), common.HexToHash("0xfffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffffe")},
		{"uint16", uint16(0x0102), common.HexToHash("0x0102")},
		{"bool", true, common.HexToHash("0x01")},
		{"string", "hello", crypto.Keccak256Hash([]byte("hello"))},
		{"bytes", []byte{1, 2}, crypto.Keccak256Hash([]byte{1, 2})},
		{"bytes4", [4]byte{1, 2, 3, 4}, common.BytesToHash(common.RightPadBytes([]byte{1, 2, 3, 4}, 32))},
		{"value", NewString("hello"), crypto.Keccak256Hash([]byte("hello"))},
	}
	for _, tt := range tests {
		got, err := MakeTopics([]interface{}{tt.rule})
		require.NoError(t, err, tt.name)
		require.Equal(t, [][]common.Hash{{tt.want}}, got, tt.name)
	}
	_, err := MakeTopics([]interface{}{struct{}{}})
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestEncodeTopicComposite(t *testing.T) {
	arr, err := NewSlice(MustNewType("uint8"), []Value{mustUint(t, 8, 1), mustUint(t, 8, 2)})
	require.NoError(t, err)
	topic, err := EncodeTopic(arr)
	require.NoError(t, err)
	// no length prefix, every element padded to a word
	require.Equal(t, crypto.Keccak256Hash(words(
		"0000000000000000000000000000000000000000000000000000000000000001",
		"0000000000000000000000000000000000000000000000000000000000000002",
	)), topic)
}

func transferEvent(t *testing.T) Event {
	t.Helper()
	ev, err := ParseEvent("Transfer(address indexed from, address indexed to, uint256 value)")
	require.NoError(t, err)
	return ev
}

func TestDecodeLog(t *testing.T) {
	ev := transferEvent(t)
	from := common.HexToAddress("0x1000000000000000000000000000000000000001")
	to := common.HexToAddress("0x2000000000000000000000000000000000000002")
	data, err := Encode(mustUint(t, 256, 500))
	require.NoError(t, err)

	topics := []common.Hash{ev.ID(), from.Hash(), to.Hash()}
	out, err := DecodeLog(topics, data, ev)
	require.NoError(t, err)
	require.Equal(t, from, out["from"].Address())
	require.Equal(t, to, out["to"].Address())
	require.Equal(t, int64(500), out["value"].Int().Int64())

	// wrong first topic
	bad := []common.Hash{crypto.Keccak256Hash([]byte("Approval(address,address,uint256)")), from.Hash(), to.Hash()}
	_, err = DecodeLog(bad, data, ev)
	require.ErrorIs(t, err, ErrTopicMismatch)

	// missing indexed topic
	_, err = DecodeLog(topics[:2], data, ev)
	require.ErrorIs(t, err, ErrTopicMismatch)

	// no topics at all
	_, err = DecodeLog(nil, data, ev)
	require.ErrorIs(t, err, ErrTopicMismatch)

	// truncated data
	_, err = DecodeLog(topics, data[:16], ev)
	require.ErrorIs(t, err, ErrTruncatedData)
}

func TestDecodeLogHashedIndexed(t *testing.T) {
	ev, err := ParseEvent("Named(string indexed name, bytes data)")
	require.NoError(t, err)
	payload, err := Encode(NewBytes([]byte{0xaa}))
	require.NoError(t, err)

	nameHash := crypto.Keccak256Hash([]byte("alice"))
	out, err := DecodeLog([]common.Hash{ev.ID(), nameHash}, payload, ev)
	require.NoError(t, err)
	require.Equal(t, "bytes32", out["name"].Type().String())
	require.Equal(t, nameHash.Bytes(), out["name"].Bytes())
	require.Equal(t, []byte{0xaa}, out["data"].Bytes())
}

func TestDecodeLogAnonymous(t *testing.T) {
	ev, err := ParseEvent("Ping(uint64 indexed seq) anonymous")
	require.NoError(t, err)
	require.True(t, ev.Anonymous)

	out, err := DecodeLog([]common.Hash{common.BigToHash(big.NewInt(9))}, nil, ev)
	require.NoError(t, err)
	require.Equal(t, int64(9), out["seq"].Int().Int64())
}

func TestFilterTopics(t *testing.T) {
	ev := transferEvent(t)
	from := common.HexToAddress("0x1000000000000000000000000000000000000001")
	topics, err := ev.FilterTopics([]interface{}{from}, nil)
	require.NoError(t, err)
	require.Equal(t, [][]common.Hash{{ev.ID()}, {from.Hash()}, nil}, topics)

	_, err = ev.FilterTopics(nil, nil, nil)
	require.ErrorIs(t, err, ErrTopicMismatch)
	_, err = ev.FilterTopics([]interface{}{"not an address"})
	require.ErrorIs(t, err, ErrTypeMismatch)
}
