// Copyright 2021 The go-ethereum Authors
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
	"bytes"
	"fmt"
	"strings"

	"github.com/solbind/solbind/crypto"
)

// Error is a custom solidity error, raised with revert and identified like a
// function by a 4 byte selector.
type Error struct {
	Name   string
	Inputs Arguments
}

// NewError creates a new Error. Unnamed inputs are named after their position.
func NewError(name string, inputs Arguments) Error {
	return Error{
		Name:   name,
		Inputs: nameArguments(inputs),
	}
}

// Sig returns the error signature, e.g. InsufficientBalance(uint256,uint256).
func (e Error) Sig() string {
	return fmt.Sprintf("%v(%v)", e.Name, e.Inputs.typeList())
}

// ID returns the 4 byte selector of the error.
func (e Error) ID() []byte {
	return crypto.Keccak256([]byte(e.Sig()))[:4]
}

func (e Error) String() string {
	names := make([]string, len(e.Inputs))
	for i, input := range e.Inputs {
		names[i] = fmt.Sprintf("%v %v", input.Type, input.Name)
	}
	return fmt.Sprintf("error %v(%v)", e.Name, strings.Join(names, ", "))
}

// Unpack decodes a revert payload raised with this error.
func (e Error) Unpack(data []byte) ([]Value, error) {
	if len(data) < 4 {
		return nil, fmt.Errorf("%w: insufficient data for unpacking: have %d, want at least 4", ErrTruncatedData, len(data))
	}
	if id := e.ID(); !bytes.Equal(data[:4], id) {
		return nil, fmt.Errorf("%w: invalid identifier, have %#x want %#x", ErrTypeMismatch, data[:4], id)
	}
	return e.Inputs.Unpack(data[4:])
}
