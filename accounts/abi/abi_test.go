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
	"math/big"
	"strings"
	"testing"

	"github.com/solbind/solbind/common"
	"github.com/solbind/solbind/common/hexutil"
	"github.com/stretchr/testify/require"
)

const tokenABI = `[
	{"type":"constructor","inputs":[{"name":"supply","type":"uint256"}],"stateMutability":"nonpayable"},
	{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"},
	{"type":"function","name":"balanceOf","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"name","inputs":[],"outputs":[{"name":"","type":"string"}],"stateMutability":"view"},
	{"type":"function","name":"send","inputs":[{"name":"amount","type":"uint256"}],"outputs":[],"stateMutability":"payable"},
	{"type":"function","name":"send","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"info","inputs":[],"outputs":[{"name":"total_supply","type":"uint256"},{"name":"symbol","type":"string"}],"stateMutability":"view"},
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]},
	{"type":"error","name":"InsufficientBalance","inputs":[{"name":"available","type":"uint256"},{"name":"required","type":"uint256"}]},
	{"type":"receive","stateMutability":"payable"}
]`

func mustTokenABI(t *testing.T) ABI {
	t.Helper()
	parsed, err := JSON(strings.NewReader(tokenABI))
	require.NoError(t, err)
	return parsed
}

func TestReader(t *testing.T) {
	parsed := mustTokenABI(t)

	require.Len(t, parsed.Methods, 6)
	require.Contains(t, parsed.Methods, "send")
	require.Contains(t, parsed.Methods, "send0")
	require.Equal(t, "send", parsed.Methods["send0"].RawName)
	require.Equal(t, "send(address,uint256)", parsed.Methods["send0"].Sig())
	require.True(t, parsed.HasReceive())
	require.False(t, parsed.HasFallback())
	require.Len(t, parsed.Constructor.Inputs, 1)

	names := []string{}
	for _, m := range parsed.OrderedMethods() {
		names = append(names, m.Name)
	}
	require.Equal(t, []string{"transfer", "balanceOf", "name", "send", "send0", "info"}, names)

	require.True(t, parsed.Methods["balanceOf"].IsConstant())
	require.False(t, parsed.Methods["transfer"].IsConstant())
	require.True(t, parsed.Methods["send"].IsPayable())
}

func TestMethodSelector(t *testing.T) {
	parsed := mustTokenABI(t)
	require.Equal(t, "transfer(address,uint256)", parsed.Methods["transfer"].Sig())
	require.Equal(t, "0xa9059cbb", hexutil.Encode(parsed.Methods["transfer"].ID()))
	require.Equal(t, common.HexToHash("0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef"), parsed.Events["Transfer"].ID())

	m, err := parsed.MethodById(common.FromHex("0xa9059cbb0000"))
	require.NoError(t, err)
	require.Equal(t, "transfer", m.Name)
	_, err = parsed.MethodById([]byte{1})
	require.ErrorIs(t, err, ErrTruncatedData)

	ev, err := parsed.EventByID(parsed.Events["Transfer"].ID())
	require.NoError(t, err)
	require.Equal(t, "Transfer", ev.Name)
}

func TestPackUnpack(t *testing.T) {
	parsed := mustTokenABI(t)
	to := common.HexToAddress("0x2222222222222222222222222222222222222222")

	data, err := parsed.Pack("transfer", to, big.NewInt(7))
	require.NoError(t, err)
	require.Len(t, data, 4+64)
	require.Equal(t, "0xa9059cbb", hexutil.Encode(data[:4]))

	_, err = parsed.Pack("missing")
	require.Error(t, err)
	_, err = parsed.Pack("transfer", to)
	require.ErrorIs(t, err, ErrTypeMismatch)

	supply, err := parsed.Pack("", big.NewInt(1000))
	require.NoError(t, err)
	require.Len(t, supply, 32)

	out, err := Encode(mustUint(t, 256, 21), NewString("TKN"))
	require.NoError(t, err)
	values, err := parsed.Unpack("info", out)
	require.NoError(t, err)
	require.Equal(t, int64(21), values[0].Int().Int64())
	require.Equal(t, "TKN", values[1].Str())

	var info struct {
		TotalSupply *big.Int
		Symbol      string
	}
	require.NoError(t, parsed.UnpackIntoInterface(&info, "info", out))
	require.Equal(t, int64(21), info.TotalSupply.Int64())
	require.Equal(t, "TKN", info.Symbol)

	m := map[string]Value{}
	require.NoError(t, parsed.UnpackIntoMap(m, "info", out))
	require.Equal(t, "TKN", m["symbol"].Str())

	_, err = parsed.Unpack("info", nil)
	require.ErrorIs(t, err, ErrTruncatedData)
}

func TestUnpackRevert(t *testing.T) {
	reason, err := Encode(NewString("not enough"))
	require.NoError(t, err)
	msg, err := UnpackRevert(append(common.FromHex("0x08c379a0"), reason...))
	require.NoError(t, err)
	require.Equal(t, "not enough", msg)

	code, err := Encode(mustUint(t, 256, 0x11))
	require.NoError(t, err)
	msg, err = UnpackRevert(append(common.FromHex("0x4e487b71"), code...))
	require.NoError(t, err)
	require.Equal(t, "arithmetic underflow or overflow", msg)

	_, err = UnpackRevert([]byte{1, 2})
	require.ErrorIs(t, err, ErrTruncatedData)
	_, err = UnpackRevert([]byte{1, 2, 3, 4})
	require.ErrorIs(t, err, ErrTypeMismatch)
}

func TestCustomError(t *testing.T) {
	parsed := mustTokenABI(t)
	custom := parsed.Errors["InsufficientBalance"]
	require.Equal(t, "InsufficientBalance(uint256,uint256)", custom.Sig())

	args, err := custom.Inputs.Pack(big.NewInt(1), big.NewInt(2))
	require.NoError(t, err)
	e, values, err := parsed.UnpackCustomRevert(append(custom.ID(), args...))
	require.NoError(t, err)
	require.Equal(t, "InsufficientBalance", e.Name)
	require.Equal(t, int64(2), values[1].Int().Int64())
}

func TestYAML(t *testing.T) {
	const doc = `
- type: function
  name: transfer
  stateMutability: nonpayable
  inputs:
    - {name: to, type: address}
    - {name: amount, type: uint256}
  outputs:
    - {name: "", type: bool}
- type: event
  name: Approval
  inputs:
    - {name: owner, type: address, indexed: true}
    - {name: spender, type: address, indexed: true}
    - {name: value, type: uint256}
`
	parsed, err := YAML(strings.NewReader(doc))
	require.NoError(t, err)
	require.Equal(t, "0xa9059cbb", hexutil.Encode(parsed.Methods["transfer"].ID()))
	require.Equal(t, "Approval(address,address,uint256)", parsed.Events["Approval"].Sig())
	require.True(t, parsed.Events["Approval"].Inputs[0].Indexed)
}

func TestInvalidABI(t *testing.T) {
	for _, doc := range []string{
		`[{"type":"function","name":"f","inputs":[{"name":"a","type":"uint7"}]}]`,
		`[{"type":"receive","stateMutability":"nonpayable"}]`,
		`[{"type":"fallback"},{"type":"fallback"}]`,
		`[{"type":"modifier","name":"m"}]`,
	} {
		_, err := JSON(strings.NewReader(doc))
		require.Error(t, err, doc)
	}
	_, err := JSON(strings.NewReader(`[{"type":"function","name":"f","inputs":[{"name":"a","type":"uint7"}]}]`))
	require.ErrorIs(t, err, ErrInvalidTypeSyntax)
}
