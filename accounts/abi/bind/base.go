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

package bind

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/solbind/solbind/accounts/abi"
	"github.com/solbind/solbind/common"
)

// MetaData collects all metadata for a bound contract.
type MetaData struct {
	ABI          string // the raw ABI definition (JSON)
	BytecodeHash string // optional hash of the deployed bytecode

	mu        sync.Mutex
	parsedABI *abi.ABI
}

// ParseABI returns the parsed ABI definition. The result is cached.
func (m *MetaData) ParseABI() (*abi.ABI, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.parsedABI != nil {
		return m.parsedABI, nil
	}
	parsed, err := abi.JSON(strings.NewReader(m.ABI))
	if err != nil {
		return nil, err
	}
	m.parsedABI = &parsed
	return m.parsedABI, nil
}

// BoundContract is the base wrapper object that reflects a contract on the
// chain. It contains a collection of methods that are used by the
// higher level contract bindings to operate.
type BoundContract struct {
	address   common.Address
	abi       abi.ABI
	transport ContractTransport
}

// NewBoundContract creates a low level contract interface through which calls
// and transactions may be made through. The transport may be nil when only
// packing and log parsing are needed.
func NewBoundContract(address common.Address, abi abi.ABI, transport ContractTransport) *BoundContract {
	return &BoundContract{
		address:   address,
		abi:       abi,
		transport: transport,
	}
}

// Address returns the address the contract is bound to.
func (c *BoundContract) Address() common.Address {
	return c.address
}

// ABI returns the interface of the bound contract.
func (c *BoundContract) ABI() *abi.ABI {
	return &c.abi
}

// Pack returns the calldata of a call to method, the selector followed by
// the encoded params. The empty name packs constructor arguments.
func (c *BoundContract) Pack(method string, params ...interface{}) ([]byte, error) {
	return c.abi.Pack(method, params...)
}

// Call invokes the (constant) contract method with params as input values and
// returns the decoded outputs.
func (c *BoundContract) Call(ctx context.Context, method string, params ...interface{}) ([]abi.Value, error) {
	if c.transport == nil {
		return nil, ErrNoTransport
	}
	input, err := c.abi.Pack(method, params...)
	if err != nil {
		return nil, err
	}
	output, err := c.transport.CallContract(ctx, c.address, input)
	if err != nil {
		return nil, err
	}
	if len(output) == 0 && len(c.abi.Methods[method].Outputs) > 0 {
		// Make sure we have a contract to operate on, and bail out otherwise.
		if reader, ok := c.transport.(CodeReader); ok {
			code, err := reader.CodeAt(ctx, c.address)
			if err != nil {
				return nil, err
			}
			if len(code) == 0 {
				return nil, ErrNoCode
			}
		}
	}
	return c.abi.Unpack(method, output)
}

// Transact invokes the (paid) contract method with params as input values and
// returns the hash the transport reports for the submission.
func (c *BoundContract) Transact(ctx context.Context, method string, params ...interface{}) (common.Hash, error) {
	input, err := c.abi.Pack(method, params...)
	if err != nil {
		return common.Hash{}, err
	}
	return c.RawTransact(ctx, input)
}

// RawTransact submits already packed calldata to the contract. It is used for
// the fallback function.
func (c *BoundContract) RawTransact(ctx context.Context, calldata []byte) (common.Hash, error) {
	if c.transport == nil {
		return common.Hash{}, ErrNoTransport
	}
	return c.transport.SendTransaction(ctx, c.address, calldata)
}

// Estimate asks the transport for the gas a transaction invoking method
// would use.
func (c *BoundContract) Estimate(ctx context.Context, method string, params ...interface{}) (uint64, error) {
	if c.transport == nil {
		return 0, ErrNoTransport
	}
	input, err := c.abi.Pack(method, params...)
	if err != nil {
		return 0, err
	}
	return c.transport.EstimateGas(ctx, c.address, input)
}

// FilterTopics builds the topic filter matching logs of the named event with
// the given indexed parameter rules.
func (c *BoundContract) FilterTopics(event string, query ...[]interface{}) ([][]common.Hash, error) {
	ev, ok := c.abi.Events[event]
	if !ok {
		return nil, fmt.Errorf("bind: event '%s' not found", event)
	}
	return ev.FilterTopics(query...)
}

// ParseLog decodes a log emitted by the named event.
func (c *BoundContract) ParseLog(event string, log Log) (map[string]abi.Value, error) {
	ev, ok := c.abi.Events[event]
	if !ok {
		return nil, fmt.Errorf("bind: event '%s' not found", event)
	}
	return abi.DecodeLog(log.Topics, log.Data, ev)
}

// LogResult is the outcome of decoding one entry of a log batch.
type LogResult struct {
	Log    Log
	Event  *abi.Event
	Values map[string]abi.Value
	Err    error
}

// ParseLogs decodes a batch of logs, matching each against the contract's
// events by its first topic. Entries fail independently: a malformed or
// unknown log yields a result carrying its error and does not affect the
// others.
func (c *BoundContract) ParseLogs(logs []Log) []LogResult {
	results := make([]LogResult, len(logs))
	for i, log := range logs {
		results[i] = c.parseAny(log)
	}
	return results
}

func (c *BoundContract) parseAny(log Log) LogResult {
	res := LogResult{Log: log}
	if len(log.Topics) == 0 {
		res.Err = fmt.Errorf("%w: log without topics", abi.ErrTopicMismatch)
		return res
	}
	ev, err := c.abi.EventByID(log.Topics[0])
	if err != nil {
		res.Err = fmt.Errorf("%w: %v", abi.ErrTopicMismatch, err)
		return res
	}
	res.Event = ev
	res.Values, res.Err = abi.DecodeLog(log.Topics, log.Data, *ev)
	return res
}

// UnpackError decodes revert data raised by one of the contract's custom
// errors, identified by its selector.
func (c *BoundContract) UnpackError(data []byte) (*abi.Error, []abi.Value, error) {
	return c.abi.UnpackCustomRevert(data)
}
