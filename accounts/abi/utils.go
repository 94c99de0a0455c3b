// Copyright 2022 The go-ethereum Authors
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
	"strings"
)

// ResolveNameConflict returns the next available name for a given thing.
// This helper can be used for lots of purposes:
//
//   - In solidity function overloading is supported, this function can fix
//     the name conflicts of overloaded functions.
//   - In golang binding generation, the parameter(in function, event, error,
//     and struct definition) name will be converted to camelcase style which
//     may eventually lead to name conflicts.
//
// Name conflicts are mostly resolved by adding number suffix. e.g. if the abi contains
// Methods "send" and "send1", ResolveNameConflict would return "send2" for input "send".
func ResolveNameConflict(rawName string, used func(string) bool) string {
	name := rawName
	ok := used(name)
	for idx := 0; ok; idx++ {
		name = fmt.Sprintf("%s%d", rawName, idx)
		ok = used(name)
	}
	return name
}

// Identifier turns a solidity name into an exported Go identifier. Characters
// Go does not allow in identifiers are dropped and unnamed things are called
// after their position.
func Identifier(rawName string, position int) string {
	clean := strings.Map(func(r rune) rune {
		if r == '_' || (r < 128 && (isAlpha(byte(r)) || isDigit(byte(r)))) {
			return r
		}
		return -1
	}, rawName)
	name := ToCamelCase(argumentKey(clean, position))
	if name == "" || isDigit(name[0]) {
		name = ToCamelCase(argumentKey("", position))
	}
	return name
}

// TupleFieldNames returns the Go struct field names of a tuple's components,
// in order. Names colliding after camel-casing get a numeric suffix.
func TupleFieldNames(t Type) []string {
	var (
		names = make([]string, len(t.TupleElems))
		used  = make(map[string]bool)
	)
	for i := range t.TupleElems {
		raw := ""
		if i < len(t.TupleRawNames) {
			raw = t.TupleRawNames[i]
		}
		name := ResolveNameConflict(Identifier(raw, i), func(s string) bool { return used[s] })
		used[name] = true
		names[i] = name
	}
	return names
}
