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

// Package abi implements the Ethereum ABI (Application Binary
// Interface).
//
// Types are parsed from their textual form with NewType into a closed tagged
// Type tree. Values are built with the typed constructors (NewUint, NewString,
// NewTuple, ...) or converted from native Go values with ToValue, and carry
// their Type with them. Encode and Decode implement the head/tail wire format;
// Method and Event derive selectors and topics from canonical signatures, and
// DecodeLog turns an event log back into named values.
//
// Decoding is strict: integers that do not fit their declared width and
// booleans other than 0 and 1 are rejected. Bytes after the last value are
// ignored.
package abi
