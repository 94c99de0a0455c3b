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
	"errors"
	"fmt"
)

// Error kinds. Every error returned by this package and by the binding
// generator wraps exactly one of these, so callers can branch with errors.Is.
var (
	// ErrInvalidTypeSyntax is returned when a type string cannot be parsed.
	ErrInvalidTypeSyntax = errors.New("abi: invalid type syntax")

	// ErrValueOutOfRange is returned when an integer does not fit its declared
	// width and signedness, or a word holds a non-canonical boolean.
	ErrValueOutOfRange = errors.New("abi: value out of range")

	// ErrTypeMismatch is returned when a value does not match the type it is
	// encoded, decoded or copied as.
	ErrTypeMismatch = errors.New("abi: type mismatch")

	// ErrTruncatedData is returned when the input is shorter than a slot or a
	// declared length requires.
	ErrTruncatedData = errors.New("abi: truncated data")

	// ErrMalformedOffset is returned when an offset or length points beyond the
	// input or cannot be represented as a non-negative integer.
	ErrMalformedOffset = errors.New("abi: malformed offset")

	// ErrSelectorCollision is returned when two functions share a selector or
	// two events share a topic.
	ErrSelectorCollision = errors.New("abi: selector collision")

	// ErrDuplicateName is returned when two members map to the same identifier.
	ErrDuplicateName = errors.New("abi: duplicate name")

	// ErrTopicMismatch is returned when a log does not belong to the event it
	// is decoded as.
	ErrTopicMismatch = errors.New("abi: topic mismatch")
)

var (
	errBadBool = fmt.Errorf("%w: improperly encoded boolean value", ErrValueOutOfRange)
)

// typeErr returns a formatted type casting error.
func typeErr(expected, got interface{}) error {
	return fmt.Errorf("%w: cannot use %v as type %v", ErrTypeMismatch, got, expected)
}

// rangeErr returns a formatted range error for integer t.
func rangeErr(t Type, got interface{}) error {
	return fmt.Errorf("%w: %v does not fit %v", ErrValueOutOfRange, got, t)
}
