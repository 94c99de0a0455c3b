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

package bind

import (
	"go/parser"
	"go/token"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/solbind/solbind/accounts/abi"
	"github.com/solbind/solbind/common"
	"github.com/stretchr/testify/require"
)

const tokenABI = `[
	{"type":"constructor","inputs":[{"name":"supply","type":"uint256"}],"stateMutability":"nonpayable"},
	{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}],"stateMutability":"nonpayable"},
	{"type":"function","name":"balanceOf","inputs":[{"name":"owner","type":"address"}],"outputs":[{"name":"","type":"uint256"}],"stateMutability":"view"},
	{"type":"function","name":"send","inputs":[{"name":"amount","type":"uint256"}],"outputs":[],"stateMutability":"payable"},
	{"type":"function","name":"send","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"info","inputs":[],"outputs":[{"name":"total_supply","type":"uint256"},{"name":"symbol","type":"string"}],"stateMutability":"view"},
	{"type":"function","name":"ping","inputs":[],"outputs":[],"stateMutability":"view"},
	{"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]},
	{"type":"event","name":"Paused","anonymous":false,"inputs":[]},
	{"type":"event","name":"Memo","anonymous":true,"inputs":[{"name":"note","type":"string","indexed":true},{"name":"data","type":"bytes","indexed":false}]},
	{"type":"error","name":"InsufficientBalance","inputs":[{"name":"available","type":"uint256"},{"name":"required","type":"uint256"}]},
	{"type":"error","name":"Halted","inputs":[]},
	{"type":"receive","stateMutability":"payable"},
	{"type":"fallback","stateMutability":"nonpayable"}
]`

const queueABI = `[
	{"type":"function","name":"submit","inputs":[{"name":"item","type":"tuple","internalType":"struct Item","components":[{"name":"id","type":"uint64"},{"name":"payload","type":"bytes"}]}],"outputs":[],"stateMutability":"nonpayable"},
	{"type":"function","name":"peek","inputs":[],"outputs":[{"name":"","type":"tuple","components":[{"name":"id","type":"uint64"},{"name":"","type":"bytes"}]}],"stateMutability":"view"},
	{"type":"event","name":"Submitted","inputs":[{"name":"sender","type":"address","indexed":true},{"name":"item","type":"tuple","internalType":"struct Item","indexed":true,"components":[{"name":"id","type":"uint64"},{"name":"payload","type":"bytes"}]}]}
]`

// checkSource makes sure the generated code is syntactically valid Go.
func checkSource(t *testing.T, code string) {
	t.Helper()
	_, err := parser.ParseFile(token.NewFileSet(), "binding.go", code, parser.AllErrors)
	require.NoError(t, err, code)
}

func TestBindToken(t *testing.T) {
	code, err := Bind(tokenABI, "token", Options{})
	require.NoError(t, err)
	checkSource(t, code)

	for _, want := range []string{
		"// Code generated by solbind. DO NOT EDIT.",
		"package token",
		"var TokenMetaData = &bind.MetaData{",
		"func NewToken(address common.Address, transport bind.ContractTransport) (*Token, error)",
		"func PackTokenConstructor(supply *big.Int) ([]byte, error)",
		"func (_Token *Token) PackTransfer(to common.Address, amount *big.Int) ([]byte, error)",
		"func (_Token *Token) Transfer(ctx context.Context, to common.Address, amount *big.Int) (common.Hash, error)",
		"func (_Token *Token) EstimateTransfer(ctx context.Context, to common.Address, amount *big.Int) (uint64, error)",
		"selector 0xa9059cbb",
		"func (_Token *Token) BalanceOf(ctx context.Context, owner common.Address) (*big.Int, error)",
		"selector 0x70a08231",
		"func (_Token *Token) Send(ctx context.Context, amount *big.Int) (common.Hash, error)",
		"func (_Token *Token) Send0(ctx context.Context, to common.Address, amount *big.Int) (common.Hash, error)",
		"type TokenInfoOutput struct {",
		"func (_Token *Token) Info(ctx context.Context) (*TokenInfoOutput, error)",
		"func (_Token *Token) Ping(ctx context.Context) error",
		"var TokenTransferTopic = common.HexToHash(\"0xddf252ad1be2c89b69c2b068fc378daa952ba7f163c4a11628f55a4df523b3ef\")",
		"func (_Token *Token) ParseTransfer(log bind.Log) (*TokenTransfer, error)",
		"func (_Token *Token) TransferTopics(fromRule []common.Address, toRule []common.Address) ([][]common.Hash, error)",
		"func (_Token *Token) ParsePaused(log bind.Log) (*TokenPaused, error)",
		"func (_Token *Token) ParseMemo(log bind.Log) (*TokenMemo, error)",
		"type TokenInsufficientBalanceError struct {",
		"func (_Token *Token) UnpackInsufficientBalanceError(data []byte) (*TokenInsufficientBalanceError, error)",
		"selector 0xcf479181",
		"func (_Token *Token) UnpackHaltedError(data []byte) (*TokenHaltedError, error)",
		"func (_Token *Token) Fallback(ctx context.Context, calldata []byte) (common.Hash, error)",
		"func (_Token *Token) Receive(ctx context.Context) (common.Hash, error)",
	} {
		require.Contains(t, code, want)
	}
	// Anonymous events have no topic to match on, non-constant functions get
	// no read accessor and nothing deployment related was asked for.
	require.NotContains(t, code, "TokenMemoTopic")
	require.NotContains(t, code, "TokenAddresses")
	require.NotContains(t, code, "TokenBytecodeHash")

	// Members are emitted in declaration order.
	require.Less(t, strings.Index(code, "PackTransfer("), strings.Index(code, "PackBalanceOf("))
	require.Less(t, strings.Index(code, "PackBalanceOf("), strings.Index(code, "PackSend("))
	require.Less(t, strings.Index(code, "ParseTransfer("), strings.Index(code, "ParsePaused("))
}

func TestBindIndexedHashedField(t *testing.T) {
	code, err := Bind(tokenABI, "Token", Options{Package: "bindings"})
	require.NoError(t, err)
	require.Contains(t, code, "package bindings")

	// The indexed string of Memo only survives as its hash.
	start := strings.Index(code, "type TokenMemo struct {")
	require.GreaterOrEqual(t, start, 0)
	end := start + strings.Index(code[start:], "}")
	memo := strings.Fields(code[start:end])
	require.Equal(t, []string{"type", "TokenMemo", "struct", "{", "Note", "common.Hash", "Data", "[]byte", "Raw", "bind.Log", "//", "Blockchain", "specific", "contextual", "infos"}, memo)
}

func TestBindReproducible(t *testing.T) {
	opts := Options{
		Addresses: map[string]common.Address{
			"sepolia": common.HexToAddress("0x0000000000000000000000000000000000000002"),
			"mainnet": common.HexToAddress("0x0000000000000000000000000000000000000001"),
			"holesky": common.HexToAddress("0x0000000000000000000000000000000000000003"),
		},
		BytecodeHash: "0x" + strings.Repeat("ab", 32),
	}
	first, err := Bind(tokenABI, "Token", opts)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		again, err := Bind(tokenABI, "Token", opts)
		require.NoError(t, err)
		require.Equal(t, first, again)
	}
	checkSource(t, first)

	require.Contains(t, first, "var TokenAddresses = map[string]common.Address{")
	require.Contains(t, first, "func LoadToken(network string, transport bind.ContractTransport) (*Token, error)")
	require.Contains(t, first, "const TokenBytecodeHash = \"0x"+strings.Repeat("ab", 32)+"\"")

	holesky := strings.Index(first, `"holesky"`)
	mainnet := strings.Index(first, `"mainnet"`)
	sepolia := strings.Index(first, `"sepolia"`)
	require.True(t, holesky > 0 && holesky < mainnet && mainnet < sepolia, "networks not sorted")
}

func TestBindStructs(t *testing.T) {
	code, err := Bind(queueABI, "Queue", Options{})
	require.NoError(t, err)
	checkSource(t, code)

	require.Contains(t, code, "type Item struct {")
	require.Contains(t, code, "type Struct1 struct {")
	require.Contains(t, code, "func (_Queue *Queue) Submit(ctx context.Context, item Item) (common.Hash, error)")
	require.Contains(t, code, "func (_Queue *Queue) Peek(ctx context.Context) (Struct1, error)")
	// An indexed struct is filtered and decoded by hash.
	require.Contains(t, code, "func (_Queue *Queue) SubmittedTopics(senderRule []common.Address, itemRule []Item) ([][]common.Hash, error)")
	require.Equal(t, 1, strings.Count(code, "type Item struct {"))

	// Struct names step aside for identifiers already taken.
	clash := strings.Replace(queueABI, `"struct Item"`, `"struct QueueSubmitted"`, 2)
	code, err = Bind(clash, "Queue", Options{})
	require.NoError(t, err)
	require.Contains(t, code, "type QueueSubmitted0 struct {")
	require.Contains(t, code, "type QueueSubmitted struct {")
}

func TestBindSelectorCollision(t *testing.T) {
	// burn(uint256) and collate_propagate_storage(bytes16) share 0x42966c68.
	colliding := `[
		{"type":"function","name":"burn","inputs":[{"name":"amount","type":"uint256"}],"outputs":[],"stateMutability":"nonpayable"},
		{"type":"function","name":"collate_propagate_storage","inputs":[{"name":"key","type":"bytes16"}],"outputs":[],"stateMutability":"nonpayable"}
	]`
	_, err := Bind(colliding, "Proxy", Options{})
	require.ErrorIs(t, err, abi.ErrSelectorCollision)
	require.ErrorContains(t, err, "0x42966c68")

	twice := `[
		{"type":"event","name":"Transfer","inputs":[{"name":"value","type":"uint256","indexed":false}]},
		{"type":"event","name":"Transfer","inputs":[{"name":"value","type":"uint256","indexed":false}]}
	]`
	_, err = Bind(twice, "Token", Options{})
	require.ErrorIs(t, err, abi.ErrSelectorCollision)
}

func TestBindDuplicateName(t *testing.T) {
	clash := `[
		{"type":"function","name":"foo_bar","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
		{"type":"function","name":"fooBar","inputs":[{"name":"x","type":"uint8"}],"outputs":[],"stateMutability":"nonpayable"}
	]`
	_, err := Bind(clash, "Thing", Options{})
	require.ErrorIs(t, err, abi.ErrDuplicateName)

	code, err := Bind(clash, "Thing", Options{Aliases: map[string]string{"fooBar": "fooBarWithArg"}})
	require.NoError(t, err)
	require.Contains(t, code, "func (_Thing *Thing) FooBar(ctx context.Context) (common.Hash, error)")
	require.Contains(t, code, "func (_Thing *Thing) FooBarWithArg(ctx context.Context, x uint8) (common.Hash, error)")

	// A function shadowing a generated helper is caught as well.
	helper := `[
		{"type":"function","name":"transfer","inputs":[],"outputs":[],"stateMutability":"nonpayable"},
		{"type":"function","name":"packTransfer","inputs":[],"outputs":[],"stateMutability":"nonpayable"}
	]`
	_, err = Bind(helper, "Thing", Options{})
	require.ErrorIs(t, err, abi.ErrDuplicateName)
}

func TestBindArgumentNames(t *testing.T) {
	odd := `[
		{"type":"function","name":"set","inputs":[{"name":"type","type":"uint8"},{"name":"","type":"bool"},{"name":"ctx","type":"address"},{"name":"_value","type":"uint16"},{"name":"value","type":"uint16"}],"outputs":[],"stateMutability":"nonpayable"},
		{"type":"function","name":"2fast","inputs":[],"outputs":[],"stateMutability":"nonpayable"}
	]`
	code, err := Bind(odd, "Odd", Options{})
	require.NoError(t, err)
	checkSource(t, code)
	require.Contains(t, code, "func (_Odd *Odd) Set(ctx context.Context, arg0 uint8, arg1 bool, arg2 common.Address, value uint16, value0 uint16) (common.Hash, error)")
	require.Contains(t, code, "func (_Odd *Odd) M2fast(ctx context.Context) (common.Hash, error)")
}

func TestBindInvalidInput(t *testing.T) {
	_, err := Bind(`[{"type":"function","name":"f","inputs":[{"name":"a","type":"uint7"}]}]`, "Bad", Options{})
	require.ErrorIs(t, err, abi.ErrInvalidTypeSyntax)

	_, err = Bind(tokenABI, "9lives", Options{})
	require.Error(t, err)

	_, err = Bind(tokenABI, "Token", Options{Package: "not-a-package"})
	require.Error(t, err)

	_, err = Bind(tokenABI, "Token", Options{BytecodeHash: "0x1234"})
	require.Error(t, err)
}

func TestParseAliases(t *testing.T) {
	aliases, err := ParseAliases([]string{"foo=bar", "baz=qux"})
	require.NoError(t, err)
	require.Equal(t, map[string]string{"foo": "bar", "baz": "qux"}, aliases)

	_, err = ParseAliases([]string{"foo"})
	require.Error(t, err)
	_, err = ParseAliases([]string{"foo=bar", "foo=baz"})
	require.ErrorIs(t, err, abi.ErrDuplicateName)
}

func TestParseAddresses(t *testing.T) {
	addrs, err := ParseAddresses([]string{"mainnet=0x00000000000000000000000000000000000000aa"})
	require.NoError(t, err)
	require.Equal(t, common.HexToAddress("0xaa"), addrs["mainnet"])

	_, err = ParseAddresses([]string{"mainnet=0x12"})
	require.ErrorIs(t, err, errInvalidAddress)
	_, err = ParseAddresses([]string{"=0x00000000000000000000000000000000000000aa"})
	require.ErrorIs(t, err, errInvalidAddress)
	_, err = ParseAddresses([]string{
		"mainnet=0x00000000000000000000000000000000000000aa",
		"mainnet=0x00000000000000000000000000000000000000bb",
	})
	require.ErrorIs(t, err, abi.ErrDuplicateName)
}

// bindingTests drives the generated token and queue bindings against a
// canned transport.
const bindingTests = `package bindtest

import (
	"context"
	"math/big"
	"testing"

	"github.com/solbind/solbind/accounts/abi/bind"
	"github.com/solbind/solbind/common"
	"github.com/solbind/solbind/crypto"
	"github.com/stretchr/testify/require"
)

type transport struct {
	output []byte
	sent   []byte
}

func (t *transport) CallContract(ctx context.Context, contract common.Address, data []byte) ([]byte, error) {
	return t.output, nil
}

func (t *transport) SendTransaction(ctx context.Context, contract common.Address, data []byte) (common.Hash, error) {
	t.sent = data
	return common.HexToHash("0x01"), nil
}

func (t *transport) EstimateGas(ctx context.Context, contract common.Address, data []byte) (uint64, error) {
	return 21000, nil
}

func word(n uint64) []byte {
	return common.LeftPadBytes(new(big.Int).SetUint64(n).Bytes(), 32)
}

func concat(words ...[]byte) []byte {
	var out []byte
	for _, w := range words {
		out = append(out, w...)
	}
	return out
}

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000000aa")
	bob   = common.HexToAddress("0x00000000000000000000000000000000000000bb")
)

func TestToken(t *testing.T) {
	var (
		ctx = context.Background()
		tr  = new(transport)
	)
	token, err := NewToken(alice, tr)
	require.NoError(t, err)
	require.Equal(t, alice, token.Address())

	tr.output = word(1000)
	balance, err := token.BalanceOf(ctx, bob)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1000), balance)

	tr.output = concat(word(7), word(64), word(3), common.RightPadBytes([]byte("TKN"), 32))
	info, err := token.Info(ctx)
	require.NoError(t, err)
	require.Equal(t, big.NewInt(7), info.TotalSupply)
	require.Equal(t, "TKN", info.Symbol)

	hash, err := token.Transfer(ctx, bob, big.NewInt(5))
	require.NoError(t, err)
	require.Equal(t, common.HexToHash("0x01"), hash)
	require.Equal(t, concat([]byte{0xa9, 0x05, 0x9c, 0xbb}, common.LeftPadBytes(bob.Bytes(), 32), word(5)), tr.sent)

	ctor, err := PackTokenConstructor(big.NewInt(1))
	require.NoError(t, err)
	require.Equal(t, word(1), ctor)

	event, err := token.ParseTransfer(bind.Log{
		Address: alice,
		Topics:  []common.Hash{TokenTransferTopic, common.BytesToHash(alice.Bytes()), common.BytesToHash(bob.Bytes())},
		Data:    word(9),
	})
	require.NoError(t, err)
	require.Equal(t, alice, event.From)
	require.Equal(t, bob, event.To)
	require.Equal(t, big.NewInt(9), event.Value)

	topics, err := token.TransferTopics(nil, []common.Address{bob})
	require.NoError(t, err)
	require.Equal(t, []common.Hash{TokenTransferTopic}, topics[0])
	require.Equal(t, []common.Hash{common.BytesToHash(bob.Bytes())}, topics[2])

	revert, err := token.UnpackInsufficientBalanceError(concat([]byte{0xcf, 0x47, 0x91, 0x81}, word(1), word(2)))
	require.NoError(t, err)
	require.Equal(t, big.NewInt(1), revert.Available)
	require.Equal(t, big.NewInt(2), revert.Required)
}

func TestQueue(t *testing.T) {
	var (
		ctx  = context.Background()
		tr   = new(transport)
		item = Item{Id: 1, Payload: []byte("hi")}
	)
	queue, err := NewQueue(alice, tr)
	require.NoError(t, err)

	_, err = queue.Submit(ctx, item)
	require.NoError(t, err)
	calldata, err := queue.PackSubmit(item)
	require.NoError(t, err)
	require.Equal(t, calldata, tr.sent)
	require.Equal(t, concat(word(32), word(1), word(64), word(2), common.RightPadBytes([]byte("hi"), 32)), tr.sent[4:])

	tr.output = concat(word(32), word(5), word(64), word(2), common.RightPadBytes([]byte("ok"), 32))
	peeked, err := queue.Peek(ctx)
	require.NoError(t, err)
	require.Equal(t, Struct1{Id: 5, Arg1: []byte("ok")}, peeked)

	itemHash := crypto.Keccak256Hash(word(1), common.RightPadBytes([]byte("hi"), 32))
	event, err := queue.ParseSubmitted(bind.Log{
		Address: alice,
		Topics:  []common.Hash{QueueSubmittedTopic, common.BytesToHash(bob.Bytes()), itemHash},
	})
	require.NoError(t, err)
	require.Equal(t, bob, event.Sender)
	require.Equal(t, itemHash, event.Item)

	topics, err := queue.SubmittedTopics(nil, []Item{item})
	require.NoError(t, err)
	require.Equal(t, []common.Hash{itemHash}, topics[2])
}
`

// TestBindingsCompile builds the generated bindings as a real package and
// runs calls, transactions and log parsing through them.
func TestBindingsCompile(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping binding compilation in short mode")
	}
	gocmd := filepath.Join(runtime.GOROOT(), "bin", "go")
	if _, err := os.Stat(gocmd); err != nil {
		if gocmd, err = exec.LookPath("go"); err != nil {
			t.Skip("go toolchain not available")
		}
	}
	// The package has to live inside the module to resolve its imports.
	pkg, err := os.MkdirTemp(".", "bindtest")
	require.NoError(t, err)
	t.Cleanup(func() { os.RemoveAll(pkg) })

	for name, abiJSON := range map[string]string{"Token": tokenABI, "Queue": queueABI} {
		code, err := Bind(abiJSON, name, Options{Package: "bindtest"})
		require.NoError(t, err)
		file := filepath.Join(pkg, strings.ToLower(name)+".go")
		require.NoError(t, os.WriteFile(file, []byte(code), 0644))
	}
	require.NoError(t, os.WriteFile(filepath.Join(pkg, "bindings_test.go"), []byte(bindingTests), 0644))

	cmd := exec.Command(gocmd, "test", "-count=1", ".")
	cmd.Dir = pkg
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, "generated bindings failed:\n%s", out)
}
