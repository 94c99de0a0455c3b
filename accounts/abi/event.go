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

package abi

import (
	"fmt"
	"strings"

	"github.com/solbind/solbind/common"
	"github.com/solbind/solbind/crypto"
)

// Event is an event potentially triggered by the EVM's LOG mechanism. The Event
// holds type information (inputs) about the yielded output. Anonymous events
// don't get the signature canonical representation as the first LOG topic.
type Event struct {
	// Name is the event name used for internal representation. It's derived from
	// the raw name and a suffix will be added in the case of event overloading.
	//
	// e.g.
	// These are two events that have the same name:
	// * foo(int,int)
	// * foo(uint,uint)
	// The event name of the first one will be resolved as foo while the second one
	// will be resolved as foo0.
	Name string

	// RawName is the raw event name parsed from ABI.
	RawName   string
	Anonymous bool
	Inputs    Arguments
}

// NewEvent creates a new Event. Unnamed inputs are named after their position.
func NewEvent(name, rawName string, anonymous bool, inputs Arguments) Event {
	return Event{
		Name:      name,
		RawName:   rawName,
		Anonymous: anonymous,
		Inputs:    nameArguments(inputs),
	}
}

// nameArguments returns a copy of inputs where every argument has a name.
func nameArguments(inputs Arguments) Arguments {
	named := make(Arguments, len(inputs))
	for i, input := range inputs {
		named[i] = input
		named[i].Name = argumentKey(input.Name, i)
	}
	return named
}

// Sig returns the event string signature in canonical form.
// Example
//
//	event Transfer(address indexed from, address indexed to, uint256 value)
//	Transfer(address,address,uint256)
func (e Event) Sig() string {
	return fmt.Sprintf("%v(%v)", e.RawName, e.Inputs.typeList())
}

// ID returns the canonical representation of the event's signature used by the
// abi definition to identify event names and types.
func (e Event) ID() common.Hash {
	return crypto.Keccak256Hash([]byte(e.Sig()))
}

func (e Event) String() string {
	names := make([]string, len(e.Inputs))
	for i, input := range e.Inputs {
		names[i] = fmt.Sprintf("%v %v", input.Type, input.Name)
		if input.Indexed {
			names[i] = fmt.Sprintf("%v indexed %v", input.Type, input.Name)
		}
	}
	str := fmt.Sprintf("event %v(%v)", e.RawName, strings.Join(names, ", "))
	if e.Anonymous {
		str += " anonymous"
	}
	return str
}
