// Copyright 2023 The go-ethereum Authors
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

package log

import (
	"bytes"
	"encoding/json"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/require"
)

func TestWriteTimeTermFormat(t *testing.T) {
	b := new(bytes.Buffer)
	writeTimeTermFormat(b, time.Date(2024, time.March, 7, 9, 5, 3, 42e6, time.UTC))
	require.Equal(t, "03-07|09:05:03.042", b.String())
}

func TestTerminalHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false))
	l.Info("Bound method", "name", "transfer", "selector", "0xa9059cbb")

	have := out.String()
	require.True(t, strings.HasPrefix(have, "INFO ["), have)
	require.Contains(t, have, "Bound method")
	require.Contains(t, have, "name=transfer selector=0xa9059cbb")
}

func TestTerminalHandlerLevel(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandlerWithLevel(out, LevelWarn, false))
	l.Info("dropped")
	l.Warn("kept")
	require.NotContains(t, out.String(), "dropped")
	require.Contains(t, out.String(), "kept")
}

func TestGlogVerbosity(t *testing.T) {
	out := new(bytes.Buffer)
	glog := NewGlogHandler(NewTerminalHandler(out, false))
	glog.Verbosity(LevelInfo)
	l := NewLogger(glog)

	l.Debug("hidden")
	l.Info("shown")
	require.NotContains(t, out.String(), "hidden")
	require.Contains(t, out.String(), "shown")

	require.Error(t, glog.Vmodule("abi"))
	require.NoError(t, glog.Vmodule("log=5"))
	l.Debug("now visible")
	require.Contains(t, out.String(), "now visible")
}

func TestJSONHandlerBigValues(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(JSONHandler(out))
	l.Info("word", "big", new(big.Int).Lsh(big.NewInt(1), 100), "u256", uint256.NewInt(7))

	var rec map[string]interface{}
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	require.Equal(t, "info", rec["lvl"])
	require.Equal(t, "1267650600228229401496703205376", rec["big"])
	require.Equal(t, "7", rec["u256"])
}

func TestFormatBigInt(t *testing.T) {
	n, _ := new(big.Int).SetString("-123456789012345678901234567890", 10)
	require.Equal(t, "-123,456,789,012,345,678,901,234,567,890", string(appendBigInt(nil, n)))
	require.Equal(t, "1,000,000", FormatLogfmtUint64(1000000))
}

func TestOddArguments(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false))
	l.Info("odd", "key")
	require.Contains(t, out.String(), errorKey)
}
