// Copyright 2014 The go-ethereum Authors
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

// solbind is a command-line tool for encoding and decoding Ethereum contract
// ABI data and generating typed Go bindings.
package main

import (
	"fmt"
	"os"

	"github.com/solbind/solbind/cmd/utils"
	"github.com/solbind/solbind/internal/debug"
	"github.com/solbind/solbind/internal/flags"
	"github.com/solbind/solbind/internal/version"
	"github.com/urfave/cli/v2"
)

var app = flags.NewApp("Ethereum contract ABI codec and binding generator")

var versionCommand = &cli.Command{
	Action:    printVersion,
	Name:      "version",
	Usage:     "Print version numbers",
	ArgsUsage: " ",
	Description: `
The output of this command is supposed to be machine-readable.
`,
}

func init() {
	app.Commands = []*cli.Command{
		// See generate.go
		solidityCommand,
		// See codec.go
		selectorsCommand,
		encodeCommand,
		decodeCommand,
		decodeLogsCommand,
		// See config.go
		dumpConfigCommand,
		versionCommand,
	}
	app.Flags = debug.Flags

	app.Before = func(ctx *cli.Context) error {
		flags.MigrateGlobalFlags(ctx)
		return debug.Setup(ctx)
	}
	app.After = func(ctx *cli.Context) error {
		debug.Exit()
		return nil
	}
}

func main() {
	if err := app.Run(os.Args); err != nil {
		utils.Fatalf("%v", err)
	}
}

func printVersion(ctx *cli.Context) error {
	fmt.Fprintln(ctx.App.Writer, "solbind")
	fmt.Fprint(ctx.App.Writer, version.Info())
	return nil
}
