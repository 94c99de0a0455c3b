// Copyright 2015 The go-ethereum Authors
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

// Package utils contains internal helper functions for solbind commands.
package utils

import (
	"github.com/solbind/solbind/internal/flags"
	"github.com/urfave/cli/v2"
)

// These are all the command line flags we support.
// If you add to this list, please remember to include the
// flag in the appropriate command definition.
//
// The flags are defined here so their names and help texts
// are the same for all commands.

var (
	// Interface input
	ABIFlag = &flags.PathFlag{
		Name:     "abi",
		Usage:    "Path to the contract interface description (JSON or YAML), - for STDIN",
		Category: flags.InputCategory,
	}
	MethodFlag = &cli.StringFlag{
		Name:     "method",
		Usage:    "Name of the function in the interface description (overloads are suffixed, e.g. send0)",
		Category: flags.InputCategory,
	}
	SigFlag = &cli.StringFlag{
		Name:     "sig",
		Usage:    "Human readable function signature, e.g. \"transfer(address to, uint256 amount)\"",
		Category: flags.InputCategory,
	}

	// Binding generator
	TypeFlag = &cli.StringFlag{
		Name:     "type",
		Usage:    "Go type name of the binding (default = package name)",
		Category: flags.GeneratorCategory,
	}
	PkgFlag = &cli.StringFlag{
		Name:     "pkg",
		Usage:    "Package name to generate the binding into",
		Category: flags.GeneratorCategory,
	}
	OutFlag = &flags.PathFlag{
		Name:     "out",
		Usage:    "Output file for the generated binding (default = stdout)",
		Category: flags.GeneratorCategory,
	}
	AliasFlag = &cli.StringSliceFlag{
		Name:     "alias",
		Usage:    "Rename a function, event or error: original=alias (repeatable)",
		Category: flags.GeneratorCategory,
	}
	AddressFlag = &cli.StringSliceFlag{
		Name:     "address",
		Usage:    "Known deployment of the contract: network=0x... (repeatable)",
		Category: flags.GeneratorCategory,
	}
	BytecodeHashFlag = &cli.StringFlag{
		Name:     "bytecode-hash",
		Usage:    "Hash of the deployed bytecode, emitted as a constant",
		Category: flags.GeneratorCategory,
	}

	// Codec
	InputFlag = &cli.BoolFlag{
		Name:     "input",
		Usage:    "Decode the data as calldata of the function instead of its return data",
		Category: flags.CodecCategory,
	}
	NoSelectorFlag = &cli.BoolFlag{
		Name:     "noselector",
		Usage:    "Leave the 4 byte selector out of the encoded arguments",
		Category: flags.CodecCategory,
	}
	DumpFlag = &cli.BoolFlag{
		Name:     "dump",
		Usage:    "Print decoded values as a Go data structure dump instead of JSON",
		Category: flags.CodecCategory,
	}
)
