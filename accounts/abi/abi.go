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
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/solbind/solbind/common"
	"github.com/solbind/solbind/crypto"
	"gopkg.in/yaml.v3"
)

// The ABI holds information about a contract's context and available
// invocable methods. It will allow you to type check function calls and
// packs data accordingly.
type ABI struct {
	Constructor Method
	Methods     map[string]Method
	Events      map[string]Event
	Errors      map[string]Error

	// Additional "special" functions introduced in solidity v0.6.0.
	// It's separated from the original default fallback. Each contract
	// can only define one fallback and receive function.
	Fallback Method // Note it's also used to represent legacy fallback before v0.6.0
	Receive  Method

	// declaration order of the map keys above
	methodOrder []string
	eventOrder  []string
	errorOrder  []string
}

// FieldMarshaling is one entry of a JSON or YAML interface description.
type FieldMarshaling struct {
	Type    string               `json:"type" yaml:"type"`
	Name    string               `json:"name" yaml:"name"`
	Inputs  []ArgumentMarshaling `json:"inputs" yaml:"inputs"`
	Outputs []ArgumentMarshaling `json:"outputs" yaml:"outputs"`

	// StateMutability is one of pure, view, nonpayable or payable.
	StateMutability string `json:"stateMutability" yaml:"stateMutability"`

	// Deprecated fields, only kept for compatibility with old compilers.
	Constant bool `json:"constant" yaml:"constant"` // True if function is either pure or view
	Payable  bool `json:"payable" yaml:"payable"`   // True if function is payable

	Anonymous bool `json:"anonymous" yaml:"anonymous"`
}

// JSON returns a parsed ABI interface and error if it failed.
func JSON(reader io.Reader) (ABI, error) {
	dec := json.NewDecoder(reader)

	var abi ABI
	if err := dec.Decode(&abi); err != nil {
		return ABI{}, err
	}
	return abi, nil
}

// YAML parses an interface description written as a YAML list with the same
// fields as the JSON form.
func YAML(reader io.Reader) (ABI, error) {
	var fields []FieldMarshaling
	if err := yaml.NewDecoder(reader).Decode(&fields); err != nil && !errors.Is(err, io.EOF) {
		return ABI{}, fmt.Errorf("abi: yaml: %w", err)
	}
	return NewABI(fields)
}

// UnmarshalJSON implements json.Unmarshaler interface.
func (abi *ABI) UnmarshalJSON(data []byte) error {
	var fields []FieldMarshaling
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	parsed, err := NewABI(fields)
	if err != nil {
		return err
	}
	*abi = parsed
	return nil
}

// NewABI assembles an ABI from its serialized members, keeping their
// declaration order. Overloaded functions and events get a numeric suffix.
func NewABI(fields []FieldMarshaling) (ABI, error) {
	abi := ABI{
		Methods: make(map[string]Method),
		Events:  make(map[string]Event),
		Errors:  make(map[string]Error),
	}
	for _, field := range fields {
		inputs, err := NewArguments(field.Inputs)
		if err != nil {
			return ABI{}, fmt.Errorf("abi: %s %q inputs: %w", field.Type, field.Name, err)
		}
		outputs, err := NewArguments(field.Outputs)
		if err != nil {
			return ABI{}, fmt.Errorf("abi: %s %q outputs: %w", field.Type, field.Name, err)
		}
		switch field.Type {
		case "constructor":
			abi.Constructor = NewMethod("", "", Constructor, field.StateMutability, field.Constant, field.Payable, inputs, nil)
		case "function", "":
			name := ResolveNameConflict(field.Name, func(s string) bool { _, ok := abi.Methods[s]; return ok })
			abi.Methods[name] = NewMethod(name, field.Name, Function, field.StateMutability, field.Constant, field.Payable, inputs, outputs)
			abi.methodOrder = append(abi.methodOrder, name)
		case "fallback":
			// New introduced function type in v0.6.0, check more detail
			// here https://solidity.readthedocs.io/en/v0.6.0/contracts.html#fallback-function
			if abi.HasFallback() {
				return ABI{}, errors.New("only single fallback is allowed")
			}
			abi.Fallback = NewMethod("", "", Fallback, field.StateMutability, field.Constant, field.Payable, nil, nil)
		case "receive":
			// New introduced function type in v0.6.0, check more detail
			// here https://solidity.readthedocs.io/en/v0.6.0/contracts.html#fallback-function
			if abi.HasReceive() {
				return ABI{}, errors.New("only single receive is allowed")
			}
			if field.StateMutability != "payable" {
				return ABI{}, errors.New("the statemutability of receive can only be payable")
			}
			abi.Receive = NewMethod("", "", Receive, field.StateMutability, field.Constant, field.Payable, nil, nil)
		case "event":
			name := ResolveNameConflict(field.Name, func(s string) bool { _, ok := abi.Events[s]; return ok })
			abi.Events[name] = NewEvent(name, field.Name, field.Anonymous, inputs)
			abi.eventOrder = append(abi.eventOrder, name)
		case "error":
			name := ResolveNameConflict(field.Name, func(s string) bool { _, ok := abi.Errors[s]; return ok })
			abi.Errors[name] = NewError(field.Name, inputs)
			abi.errorOrder = append(abi.errorOrder, name)
		default:
			return ABI{}, fmt.Errorf("abi: could not recognize type %v of field %v", field.Type, field.Name)
		}
	}
	return abi, nil
}

// OrderedMethods returns the functions in declaration order. For an ABI
// assembled by hand the order is alphabetical.
func (abi *ABI) OrderedMethods() []Method {
	keys := orderedKeys(abi.methodOrder, abi.Methods)
	methods := make([]Method, len(keys))
	for i, key := range keys {
		methods[i] = abi.Methods[key]
	}
	return methods
}

// OrderedEvents returns the events in declaration order.
func (abi *ABI) OrderedEvents() []Event {
	keys := orderedKeys(abi.eventOrder, abi.Events)
	events := make([]Event, len(keys))
	for i, key := range keys {
		events[i] = abi.Events[key]
	}
	return events
}

// OrderedErrors returns the custom errors in declaration order.
func (abi *ABI) OrderedErrors() []Error {
	keys := orderedKeys(abi.errorOrder, abi.Errors)
	errs := make([]Error, len(keys))
	for i, key := range keys {
		errs[i] = abi.Errors[key]
	}
	return errs
}

func orderedKeys[T any](order []string, members map[string]T) []string {
	if len(order) == len(members) {
		consistent := true
		for _, key := range order {
			if _, ok := members[key]; !ok {
				consistent = false
				break
			}
		}
		if consistent {
			return order
		}
	}
	keys := make([]string, 0, len(members))
	for key := range members {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Pack the given method name to conform the ABI. Method call's data
// will consist of method_id, args0, arg1, ... argN. Method id consists
// of 4 bytes and arguments are all 32 bytes.
// Method ids are created from the first 4 bytes of the hash of the
// methods string signature. (signature = baz(uint32,string32))
func (abi ABI) Pack(name string, args ...interface{}) ([]byte, error) {
	// Fetch the ABI of the requested method
	if name == "" {
		// constructor
		return abi.Constructor.Inputs.Pack(args...)
	}
	method, exist := abi.Methods[name]
	if !exist {
		return nil, fmt.Errorf("method '%s' not found", name)
	}
	arguments, err := method.Inputs.Pack(args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", method.Sig(), err)
	}
	// Pack up the method ID too if not a constructor and return
	return append(method.ID(), arguments...), nil
}

func (abi ABI) getArguments(name string) (Arguments, error) {
	var args Arguments
	if method, ok := abi.Methods[name]; ok {
		args = method.Outputs
	}
	if event, ok := abi.Events[name]; ok {
		args = event.Inputs
	}
	if err, ok := abi.Errors[name]; ok {
		args = err.Inputs
	}
	if args == nil {
		return nil, fmt.Errorf("abi: could not locate named method, event or error: %s", name)
	}
	return args, nil
}

// Unpack unpacks the output according to the contract ABI.
func (abi ABI) Unpack(name string, data []byte) ([]Value, error) {
	args, err := abi.getArguments(name)
	if err != nil {
		return nil, err
	}
	return args.Unpack(data)
}

// UnpackIntoInterface unpacks the output in v according to the contract ABI.
// It performs an additional copy. Please only use, if you want to unpack into a
// structure that does not strictly conform to the abi structure (e.g. has additional arguments)
func (abi ABI) UnpackIntoInterface(v interface{}, name string, data []byte) error {
	args, err := abi.getArguments(name)
	if err != nil {
		return err
	}
	unpacked, err := args.Unpack(data)
	if err != nil {
		return err
	}
	return args.Copy(v, unpacked)
}

// UnpackIntoMap unpacks a log into the provided map[string]Value.
func (abi ABI) UnpackIntoMap(v map[string]Value, name string, data []byte) (err error) {
	args, err := abi.getArguments(name)
	if err != nil {
		return err
	}
	return args.UnpackIntoMap(v, data)
}

// MethodById looks up a method by the 4-byte id,
// returns nil if none found.
func (abi *ABI) MethodById(sigdata []byte) (*Method, error) {
	if len(sigdata) < 4 {
		return nil, fmt.Errorf("%w: data too short (%d bytes) for abi method lookup", ErrTruncatedData, len(sigdata))
	}
	for _, method := range abi.OrderedMethods() {
		if bytes.Equal(method.ID(), sigdata[:4]) {
			return &method, nil
		}
	}
	return nil, fmt.Errorf("no method with id: %#x", sigdata[:4])
}

// EventByID looks an event up by its topic hash in the
// ABI and returns nil if none found.
func (abi *ABI) EventByID(topic common.Hash) (*Event, error) {
	for _, event := range abi.OrderedEvents() {
		if event.ID() == topic {
			return &event, nil
		}
	}
	return nil, fmt.Errorf("no event with id: %#x", topic.Hex())
}

// ErrorByID looks up an error by the 4-byte id,
// returns nil if none found.
func (abi *ABI) ErrorByID(sigdata [4]byte) (*Error, error) {
	for _, errABI := range abi.OrderedErrors() {
		if bytes.Equal(errABI.ID(), sigdata[:]) {
			return &errABI, nil
		}
	}
	return nil, fmt.Errorf("no error with id: %#x", sigdata[:])
}

// HasFallback returns an indicator whether a fallback function is included.
func (abi *ABI) HasFallback() bool {
	return abi.Fallback.Type == Fallback
}

// HasReceive returns an indicator whether a receive function is included.
func (abi *ABI) HasReceive() bool {
	return abi.Receive.Type == Receive
}

// revertSelector is a special function selector for revert reason unpacking.
var revertSelector = crypto.Keccak256([]byte("Error(string)"))[:4]

// panicSelector is a special function selector for panic reason unpacking.
var panicSelector = crypto.Keccak256([]byte("Panic(uint256)"))[:4]

// panicReasons map is for readable panic codes
// see this linkage for the details
// https://docs.soliditylang.org/en/v0.8.21/control-structures.html#panic-via-assert-and-error-via-require
// the reason string list is copied from ether.js
// https://github.com/ethers-io/ethers.js/blob/fa3a883ff7c88611ce766f58bdd4b8ac90814470/src.ts/abi/interface.ts#L207-L218
var panicReasons = map[uint64]string{
	0x00: "generic panic",
	0x01: "assert(false)",
	0x11: "arithmetic underflow or overflow",
	0x12: "division or modulo by zero",
	0x21: "enum overflow",
	0x22: "invalid encoded storage byte array accessed",
	0x31: "out-of-bounds array access; popping on an empty array",
	0x32: "out-of-bounds access of an array or bytesN",
	0x41: "out of memory",
	0x51: "uninitialized function",
}

var (
	stringT  = MustNewType("string")
	uint256T = MustNewType("uint256")
)

// UnpackRevert resolves the abi-encoded revert reason. According to the solidity
// docs https://solidity.readthedocs.io/en/latest/control-structures.html#revert,
// the provided revert reason is abi-encoded as if it were a call to function
// `Error(string)` or `Panic(uint256)`. So it's a special tool for it.
func UnpackRevert(data []byte) (string, error) {
	if len(data) < 4 {
		return "", fmt.Errorf("%w: invalid data for unpacking", ErrTruncatedData)
	}
	switch {
	case bytes.Equal(data[:4], revertSelector):
		unpacked, err := Decode(data[4:], stringT)
		if err != nil {
			return "", err
		}
		return unpacked[0].Str(), nil
	case bytes.Equal(data[:4], panicSelector):
		unpacked, err := Decode(data[4:], uint256T)
		if err != nil {
			return "", err
		}
		pCode := unpacked[0].Int()
		// uint64 safety check for future
		// but the code is not bigger than MAX(uint64) now
		if pCode.IsUint64() {
			if reason, ok := panicReasons[pCode.Uint64()]; ok {
				return reason, nil
			}
		}
		return fmt.Sprintf("unknown panic code: %#x", pCode), nil
	default:
		return "", fmt.Errorf("%w: invalid data for unpacking", ErrTypeMismatch)
	}
}

// UnpackCustomRevert resolves a revert payload raised with one of the custom
// errors of the ABI.
func (abi *ABI) UnpackCustomRevert(data []byte) (*Error, []Value, error) {
	if len(data) < 4 {
		return nil, nil, fmt.Errorf("%w: invalid data for unpacking", ErrTruncatedData)
	}
	var id [4]byte
	copy(id[:], data[:4])
	e, err := abi.ErrorByID(id)
	if err != nil {
		return nil, nil, err
	}
	values, err := e.Unpack(data)
	if err != nil {
		return nil, nil, err
	}
	return e, values, nil
}
