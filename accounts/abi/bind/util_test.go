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
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/solbind/solbind/common"
	"github.com/stretchr/testify/require"
)

// pendingBackend reports the receipt as missing for a number of rounds.
type pendingBackend struct {
	pending int32
	calls   atomic.Int32
	failure error
}

func (b *pendingBackend) TransactionReceipt(ctx context.Context, hash common.Hash) (*Receipt, error) {
	if b.calls.Add(1) <= b.pending {
		if b.failure != nil {
			return nil, b.failure
		}
		return nil, ErrNotFound
	}
	return &Receipt{TxHash: hash, Status: ReceiptStatusSuccessful}, nil
}

func setPollInterval(t *testing.T, d time.Duration) {
	old := pollInterval
	pollInterval = d
	t.Cleanup(func() { pollInterval = old })
}

func TestWaitMined(t *testing.T) {
	setPollInterval(t, time.Millisecond)

	hash := common.HexToHash("0xfeed")
	backend := &pendingBackend{pending: 3}
	receipt, err := WaitMined(context.Background(), backend, hash)
	require.NoError(t, err)
	require.Equal(t, hash, receipt.TxHash)
	require.Equal(t, ReceiptStatusSuccessful, receipt.Status)
	require.Equal(t, int32(4), backend.calls.Load())

	// Transient transport failures are retried too.
	backend = &pendingBackend{pending: 2, failure: errors.New("connection reset")}
	receipt, err = WaitMined(context.Background(), backend, hash)
	require.NoError(t, err)
	require.Equal(t, hash, receipt.TxHash)
}

func TestWaitMinedCancel(t *testing.T) {
	setPollInterval(t, time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	backend := &pendingBackend{pending: 1 << 30}
	_, err := WaitMined(ctx, backend, common.Hash{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
	require.Greater(t, backend.calls.Load(), int32(0))
}
