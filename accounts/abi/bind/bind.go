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

// Package bind generates Ethereum contract Go bindings and contains the
// runtime support the generated code is built on.
package bind

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"go/format"
	"go/token"
	"sort"
	"strconv"
	"strings"
	"text/template"

	"github.com/solbind/solbind/accounts/abi"
	"github.com/solbind/solbind/common"
	"github.com/solbind/solbind/common/hexutil"
	"github.com/solbind/solbind/log"
)

// Options tunes the generated binding.
type Options struct {
	// Package is the name of the package to place the generated file in.
	Package string

	// Aliases renames functions, events and errors, keyed by their name in
	// the ABI. Needed when two members map to the same Go identifier.
	Aliases map[string]string

	// Addresses lists known deployments of the contract keyed by network
	// name. They are emitted as a map together with a loader.
	Addresses map[string]common.Address

	// BytecodeHash is the optional hash of the deployed bytecode, emitted as a
	// constant.
	BytecodeHash string
}

func isKeyWord(arg string) bool {
	switch arg {
	case "break":
	case "case":
	case "chan":
	case "const":
	case "continue":
	case "default":
	case "defer":
	case "else":
	case "fallthrough":
	case "for":
	case "func":
	case "go":
	case "goto":
	case "if":
	case "import":
	case "interface":
	case "iota":
	case "map":
	case "make":
	case "new":
	case "package":
	case "range":
	case "return":
	case "select":
	case "struct":
	case "switch":
	case "type":
	case "var":
	default:
		return false
	}
	return true
}

// Bind generates a Go wrapper around a contract ABI. This wrapper isn't meant
// to be used as is in client code, but rather as an intermediate struct which
// enforces compile time type safety and naming convention as opposed to having to
// manually maintain hard coded strings that break on runtime.
//
// Binding is all or nothing: a selector or topic collision, or two members
// mapping to the same Go identifier, fail the whole run. The output only
// depends on the inputs, repeated runs are byte for byte identical.
func Bind(abiJSON string, typeName string, opts Options) (string, error) {
	pkg := opts.Package
	if pkg == "" {
		pkg = strings.ToLower(typeName)
	}
	if !token.IsIdentifier(pkg) {
		return "", fmt.Errorf("bind: invalid package name %q", pkg)
	}
	typ := abi.ToCamelCase(typeName)
	if !token.IsIdentifier(typ) || !token.IsExported(typ) {
		return "", fmt.Errorf("bind: invalid type name %q", typeName)
	}
	// Parse the actual ABI to generate the binding for
	parsed, err := abi.JSON(strings.NewReader(abiJSON))
	if err != nil {
		return "", err
	}
	var compact bytes.Buffer
	if err := json.Compact(&compact, []byte(abiJSON)); err != nil {
		return "", err
	}
	b := newBinder(typ, opts.Aliases)
	contract, err := b.bindContract(&parsed, strconv.Quote(compact.String()))
	if err != nil {
		return "", err
	}
	if opts.BytecodeHash != "" {
		if !isHexHash(opts.BytecodeHash) {
			return "", fmt.Errorf("bind: invalid bytecode hash %q", opts.BytecodeHash)
		}
		if err := claim(b.decls, typ+"BytecodeHash", "bytecode hash"); err != nil {
			return "", err
		}
		contract.BytecodeHash = strings.ToLower(opts.BytecodeHash)
	}
	if len(opts.Addresses) > 0 {
		for _, ident := range []string{typ + "Addresses", "Load" + typ} {
			if err := claim(b.decls, ident, "deployments"); err != nil {
				return "", err
			}
		}
		contract.Addresses = sortedAddresses(opts.Addresses)
	}
	log.Debug("Binding contract", "type", typ, "package", pkg, "methods", len(contract.Methods), "events", len(contract.Events), "errors", len(contract.Errors), "structs", len(b.structOrder))

	data := &tmplData{
		Package:  pkg,
		Contract: contract,
		Structs:  b.structOrder,
	}
	return render(data)
}

// render executes the binding template and passes the result through gofmt.
func render(data *tmplData) (string, error) {
	buffer := new(bytes.Buffer)
	tmpl := template.Must(template.New("").Parse(tmplSource))
	if err := tmpl.Execute(buffer, data); err != nil {
		return "", err
	}
	// Pass the code through gofmt to clean it up
	code, err := format.Source(buffer.Bytes())
	if err != nil {
		return "", fmt.Errorf("%v\n%s", err, buffer)
	}
	return string(code), nil
}

func sortedAddresses(addrs map[string]common.Address) []*tmplAddress {
	networks := make([]string, 0, len(addrs))
	for network := range addrs {
		networks = append(networks, network)
	}
	sort.Strings(networks)

	out := make([]*tmplAddress, len(networks))
	for i, network := range networks {
		out[i] = &tmplAddress{Network: network, Address: addrs[network].Hex()}
	}
	return out
}

func isHexHash(s string) bool {
	b, err := hexutil.Decode(s)
	return err == nil && len(b) == common.HashLength
}

// alias returns an alias of the given string based on the aliasing rules
// or returns itself if no rule is matched.
func alias(aliases map[string]string, n string) string {
	if alias, exist := aliases[n]; exist {
		return alias
	}
	return n
}

// decapitalise makes a camel-case string which starts with a lower case character.
func decapitalise(input string) string {
	if len(input) == 0 {
		return input
	}
	goForm := abi.ToCamelCase(input)
	return strings.ToLower(goForm[:1]) + goForm[1:]
}

// ParseAliases parses "original=alias" pairs as given on the command line.
func ParseAliases(pairs []string) (map[string]string, error) {
	aliases := make(map[string]string, len(pairs))
	for _, pair := range pairs {
		original, renamed, ok := strings.Cut(pair, "=")
		if !ok || original == "" || renamed == "" {
			return nil, fmt.Errorf("bind: invalid alias %q, want original=alias", pair)
		}
		if _, dup := aliases[original]; dup {
			return nil, fmt.Errorf("%w: alias for %q given twice", abi.ErrDuplicateName, original)
		}
		aliases[original] = renamed
	}
	return aliases, nil
}

// errInvalidAddress is returned by ParseAddresses for malformed addresses.
var errInvalidAddress = errors.New("bind: invalid deployment address")

// ParseAddresses parses "network=0x..." pairs as given on the command line.
func ParseAddresses(pairs []string) (map[string]common.Address, error) {
	addrs := make(map[string]common.Address, len(pairs))
	for _, pair := range pairs {
		network, hex, ok := strings.Cut(pair, "=")
		if !ok || network == "" {
			return nil, fmt.Errorf("%w: %q, want network=0x...", errInvalidAddress, pair)
		}
		if !common.IsHexAddress(hex) {
			return nil, fmt.Errorf("%w: %q", errInvalidAddress, hex)
		}
		if _, dup := addrs[network]; dup {
			return nil, fmt.Errorf("%w: network %q given twice", abi.ErrDuplicateName, network)
		}
		addrs[network] = common.HexToAddress(hex)
	}
	return addrs, nil
}
