// Copyright 2024 The go-ethereum Authors
// This file is part of go-ethereum.
//
// go-ethereum is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// go-ethereum is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with go-ethereum. If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/solbind/solbind/accounts/abi"
	"github.com/solbind/solbind/accounts/abi/bind"
	"github.com/solbind/solbind/cmd/utils"
	"github.com/solbind/solbind/common"
	"github.com/solbind/solbind/common/hexutil"
	"github.com/solbind/solbind/internal/flags"
	"github.com/solbind/solbind/log"
	"github.com/urfave/cli/v2"
)

var (
	selectorsCommand = &cli.Command{
		Action:    printSelectors,
		Name:      "selectors",
		Usage:     "Print function selectors, event topics and error selectors",
		ArgsUsage: "[<signature>...]",
		Flags:     []cli.Flag{utils.ABIFlag},
		Description: `
Prints the identifiers of every member of the interface given with --abi, or of
the human readable signatures given as arguments. Signatures are functions by
default; prefix them with "event " or "error " for the other kinds.`,
	}
	encodeCommand = &cli.Command{
		Action:    encodeCall,
		Name:      "encode",
		Usage:     "Encode function arguments as calldata",
		ArgsUsage: "<json array of arguments>",
		Flags: []cli.Flag{
			utils.ABIFlag,
			utils.MethodFlag,
			utils.SigFlag,
			utils.NoSelectorFlag,
		},
		Description: `
Encodes the arguments, given as a JSON array, for the function selected with
--abi and --method or with --sig. Integers may be JSON numbers or decimal or hex
strings, byte sequences 0x-prefixed hex and tuples objects or arrays.`,
	}
	decodeCommand = &cli.Command{
		Action:    decodeData,
		Name:      "decode",
		Usage:     "Decode function return data or calldata",
		ArgsUsage: "<hex data>",
		Flags: []cli.Flag{
			utils.ABIFlag,
			utils.MethodFlag,
			utils.SigFlag,
			utils.InputFlag,
			utils.DumpFlag,
		},
	}
	decodeLogsCommand = &cli.Command{
		Action:    decodeLogs,
		Name:      "decode-logs",
		Usage:     "Decode a batch of event logs",
		ArgsUsage: "<logs.json, - for STDIN>",
		Flags:     []cli.Flag{utils.ABIFlag},
		Description: `
Decodes a JSON array of logs ({"address", "topics", "data"}) against the events
of the interface given with --abi. Logs are matched by their first topic and
fail independently: a malformed or unknown entry is reported with its error and
does not stop the others.`,
	}
)

func printSelectors(ctx *cli.Context) error {
	w := ctx.App.Writer
	if ctx.IsSet(utils.ABIFlag.Name) {
		if ctx.Args().Present() {
			return errors.New("signatures can't be combined with --abi")
		}
		parsed, _, err := utils.LoadABI(ctx.String(utils.ABIFlag.Name))
		if err != nil {
			return err
		}
		seen := make(collisions)
		for _, method := range parsed.OrderedMethods() {
			id := hexutil.Encode(method.ID())
			seen.check("function", id, method.Sig())
			fmt.Fprintf(w, "%s function %s\n", id, method.Sig())
		}
		for _, event := range parsed.OrderedEvents() {
			id := event.ID().Hex()
			if !event.Anonymous {
				seen.check("event", id, event.Sig())
			}
			fmt.Fprintf(w, "%s event %s\n", id, event.Sig())
		}
		for _, e := range parsed.OrderedErrors() {
			id := hexutil.Encode(e.ID())
			seen.check("error", id, e.Sig())
			fmt.Fprintf(w, "%s error %s\n", id, e.Sig())
		}
		return nil
	}
	if !ctx.Args().Present() {
		return fmt.Errorf("no signatures given and no interface specified (--%s)", utils.ABIFlag.Name)
	}
	for _, sig := range ctx.Args().Slice() {
		sig = strings.TrimSpace(sig)
		switch {
		case strings.HasPrefix(sig, "event "):
			event, err := abi.ParseEvent(strings.TrimPrefix(sig, "event "))
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s event %s\n", event.ID().Hex(), event.Sig())
		case strings.HasPrefix(sig, "error "):
			method, err := abi.ParseSelector(strings.TrimPrefix(sig, "error "))
			if err != nil {
				return err
			}
			e := abi.NewError(method.RawName, method.Inputs)
			fmt.Fprintf(w, "%s error %s\n", hexutil.Encode(e.ID()), e.Sig())
		default:
			method, err := abi.ParseSelector(strings.TrimPrefix(sig, "function "))
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "%s function %s\n", hexutil.Encode(method.ID()), method.Sig())
		}
	}
	return nil
}

// collisions tracks printed identifiers per member kind.
type collisions map[string]string

// check records sig under id and warns if another member of the same kind
// already claimed it.
func (c collisions) check(kind, id, sig string) {
	key := kind + " " + id
	if other, ok := c[key]; ok {
		log.Warn("Colliding "+kind+" identifier", "id", id, "first", other, "second", sig)
	}
	c[key] = sig
}

// resolveMethod returns the function selected by either --sig or --abi
// together with --method.
func resolveMethod(ctx *cli.Context) (abi.Method, error) {
	if err := flags.CheckExclusive(ctx, utils.ABIFlag, utils.SigFlag); err != nil {
		return abi.Method{}, err
	}
	if ctx.IsSet(utils.SigFlag.Name) {
		return abi.ParseSelector(ctx.String(utils.SigFlag.Name))
	}
	if !ctx.IsSet(utils.ABIFlag.Name) {
		return abi.Method{}, fmt.Errorf("no function specified (--%s or --%s)", utils.SigFlag.Name, utils.ABIFlag.Name)
	}
	parsed, _, err := utils.LoadABI(ctx.String(utils.ABIFlag.Name))
	if err != nil {
		return abi.Method{}, err
	}
	name := ctx.String(utils.MethodFlag.Name)
	if name == "" {
		return abi.Method{}, fmt.Errorf("no function name specified (--%s)", utils.MethodFlag.Name)
	}
	if name == "constructor" {
		return parsed.Constructor, nil
	}
	method, ok := parsed.Methods[name]
	if !ok {
		return abi.Method{}, fmt.Errorf("function '%s' not found", name)
	}
	return method, nil
}

func encodeCall(ctx *cli.Context) error {
	method, err := resolveMethod(ctx)
	if err != nil {
		return err
	}
	input := "[]"
	if ctx.NArg() > 1 {
		return errors.New("pass the arguments as a single JSON array")
	} else if ctx.NArg() == 1 {
		input = ctx.Args().First()
	}
	values, err := abi.ParseJSONArguments(method.Inputs, []byte(input))
	if err != nil {
		return err
	}
	data, err := method.Inputs.PackValues(values...)
	if err != nil {
		return err
	}
	if method.Type == abi.Function && !ctx.Bool(utils.NoSelectorFlag.Name) {
		data = append(method.ID(), data...)
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(data))
	return nil
}

// decodedArg is the JSON form of a single decoded value.
type decodedArg struct {
	Name  string    `json:"name,omitempty"`
	Type  string    `json:"type"`
	Value abi.Value `json:"value"`
}

func decodeData(ctx *cli.Context) error {
	method, err := resolveMethod(ctx)
	if err != nil {
		return err
	}
	if ctx.NArg() != 1 {
		return errors.New("expected exactly one hex string to decode")
	}
	arg := ctx.Args().First()
	if !strings.HasPrefix(arg, "0x") && !strings.HasPrefix(arg, "0X") {
		arg = "0x" + arg
	}
	data, err := hexutil.Decode(arg)
	if err != nil {
		return fmt.Errorf("invalid hex data: %w", err)
	}
	var (
		args   abi.Arguments
		values []abi.Value
	)
	if ctx.Bool(utils.InputFlag.Name) {
		args = method.Inputs
		if method.Type == abi.Function {
			if len(data) < 4 {
				return fmt.Errorf("%w: calldata shorter than a selector", abi.ErrTruncatedData)
			}
			if !bytes.Equal(data[:4], method.ID()) {
				return fmt.Errorf("%w: selector %#x does not match %s (%#x)", abi.ErrTypeMismatch, data[:4], method.Sig(), method.ID())
			}
			data = data[4:]
		}
	} else {
		if ctx.IsSet(utils.SigFlag.Name) {
			return fmt.Errorf("signatures carry no outputs, use --%s or --%s", utils.InputFlag.Name, utils.ABIFlag.Name)
		}
		args = method.Outputs
	}
	if values, err = args.Unpack(data); err != nil {
		return err
	}
	return printValues(ctx.App.Writer, args, values, ctx.Bool(utils.DumpFlag.Name))
}

func printValues(w io.Writer, args abi.Arguments, values []abi.Value, dump bool) error {
	if dump {
		native := make([]interface{}, len(values))
		for i, v := range values {
			native[i] = v.Interface()
		}
		spew.Fdump(w, native...)
		return nil
	}
	out := make([]decodedArg, len(values))
	for i, v := range values {
		out[i] = decodedArg{Name: args[i].Name, Type: v.Type().String(), Value: v}
	}
	return writeJSON(w, out)
}

// logResult is the JSON form of one decoded log entry.
type logResult struct {
	Index   int                  `json:"index"`
	Address common.Address       `json:"address"`
	Event   string               `json:"event,omitempty"`
	Values  map[string]abi.Value `json:"values,omitempty"`
	Error   string               `json:"error,omitempty"`
}

func decodeLogs(ctx *cli.Context) error {
	if ctx.NArg() != 1 {
		return errors.New("expected the path of a JSON log array")
	}
	parsed, _, err := utils.LoadABI(ctx.String(utils.ABIFlag.Name))
	if err != nil {
		return err
	}
	blob, err := utils.ReadInput(ctx.Args().First())
	if err != nil {
		return err
	}
	var logs []bind.Log
	if err := json.Unmarshal(blob, &logs); err != nil {
		return fmt.Errorf("invalid log array: %w", err)
	}
	var (
		contract = bind.NewBoundContract(common.Address{}, parsed, nil)
		results  = contract.ParseLogs(logs)
		out      = make([]logResult, len(results))
		failed   int
	)
	for i, res := range results {
		out[i] = logResult{Index: i, Address: res.Log.Address}
		if res.Event != nil {
			out[i].Event = res.Event.Sig()
		}
		if res.Err != nil {
			log.Warn("Failed to decode log", "index", i, "err", res.Err)
			out[i].Error = res.Err.Error()
			failed++
			continue
		}
		out[i].Values = res.Values
	}
	log.Info("Decoded logs", "total", len(results), "failed", failed)
	return writeJSON(ctx.App.Writer, out)
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
