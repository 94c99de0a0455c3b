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
	"errors"

	"github.com/solbind/solbind/common"
	"github.com/solbind/solbind/common/hexutil"
)

var (
	// ErrNoCode is returned by call operations for which the requested
	// recipient contract to operate on does not exist or does not have any code
	// associated with it (i.e. self-destructed).
	ErrNoCode = errors.New("no contract code at given address")

	// ErrNoTransport is returned when a bound contract that was created without
	// a transport is asked to talk to the chain.
	ErrNoTransport = errors.New("bind: no transport configured")

	// ErrNotFound is returned by a ReceiptBackend for transactions that are
	// not mined yet.
	ErrNotFound = errors.New("not found")
)

// ContractCaller defines the methods needed to allow operating with a contract
// on a read only basis.
type ContractCaller interface {
	// CallContract executes a contract call with the specified data as the
	// input and returns the raw return data.
	CallContract(ctx context.Context, contract common.Address, data []byte) ([]byte, error)
}

// ContractTransactor defines the methods needed to allow operating with a
// contract on a write only basis. Signing, nonces and fees are the transport's
// business; the payload it receives is the finished calldata.
type ContractTransactor interface {
	// SendTransaction submits calldata to the contract and returns the
	// transaction hash.
	SendTransaction(ctx context.Context, contract common.Address, data []byte) (common.Hash, error)

	// EstimateGas asks the transport how much gas executing calldata would
	// take.
	EstimateGas(ctx context.Context, contract common.Address, data []byte) (uint64, error)
}

// ContractTransport defines the methods needed to work with contracts on a
// read-write basis.
type ContractTransport interface {
	ContractCaller
	ContractTransactor
}

// CodeReader is optionally implemented by transports. When available it is
// used to tell an empty return value apart from a missing contract.
type CodeReader interface {
	CodeAt(ctx context.Context, contract common.Address) ([]byte, error)
}

// ReceiptBackend wraps the operations needed by WaitMined.
type ReceiptBackend interface {
	// TransactionReceipt returns the receipt of a mined transaction, or
	// ErrNotFound if it is still pending.
	TransactionReceipt(ctx context.Context, txHash common.Hash) (*Receipt, error)
}

// Log is a log entry as delivered by the transport.
type Log struct {
	Address common.Address `json:"address"`
	Topics  []common.Hash  `json:"topics"`
	Data    hexutil.Bytes  `json:"data"`
}

// Receipt is the subset of a transaction receipt the bindings care about.
type Receipt struct {
	TxHash common.Hash `json:"transactionHash"`
	Status uint64      `json:"status"`
	Logs   []Log       `json:"logs"`
}

const (
	// ReceiptStatusFailed is the status code of a transaction if execution failed.
	ReceiptStatusFailed = uint64(0)

	// ReceiptStatusSuccessful is the status code of a transaction if execution succeeded.
	ReceiptStatusSuccessful = uint64(1)
)
