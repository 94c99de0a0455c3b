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

package utils

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/gofrs/flock"
	"github.com/solbind/solbind/accounts/abi"
	"github.com/solbind/solbind/log"
	"gopkg.in/yaml.v3"
)

// Fatalf formats a message to standard error and exits the program.
// The message is also printed to standard output if standard error
// is redirected to a different file.
func Fatalf(format string, args ...interface{}) {
	w := io.MultiWriter(os.Stdout, os.Stderr)
	if runtime.GOOS == "windows" {
		// The SameFile check below doesn't work on Windows.
		// stdout is unlikely to get redirected though, so just print there.
		w = os.Stdout
	} else {
		outf, _ := os.Stdout.Stat()
		errf, _ := os.Stderr.Stat()
		if outf != nil && errf != nil && os.SameFile(outf, errf) {
			w = os.Stderr
		}
	}
	fmt.Fprintf(w, "Fatal: "+format+"\n", args...)
	os.Exit(1)
}

// ReadInput reads the named file, or standard input if path is "-".
func ReadInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// Artifact is a contract interface description together with the metadata
// build tools store next to it.
type Artifact struct {
	Name     string            // contract name, empty for bare interfaces
	ABI      abi.ABI           // parsed interface
	ABIJSON  string            // interface in its JSON array form
	Networks map[string]string // network id to deployment address
}

// truffleArtifact is the layout of a Truffle build artifact.
type truffleArtifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Networks     map[string]struct {
		Address string `json:"address"`
	} `json:"networks"`
}

// LoadABI reads an interface description and returns it parsed together with
// its JSON form.
func LoadABI(path string) (abi.ABI, string, error) {
	art, err := LoadArtifact(path)
	if err != nil {
		return abi.ABI{}, "", err
	}
	return art.ABI, art.ABIJSON, nil
}

// LoadArtifact reads an interface description. A JSON array is a bare
// interface, a JSON object a Truffle build artifact and anything else is read
// as YAML.
func LoadArtifact(path string) (*Artifact, error) {
	if path == "" {
		return nil, fmt.Errorf("no contract interface specified (--%s)", ABIFlag.Name)
	}
	data, err := ReadInput(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read interface description: %w", err)
	}
	trimmed := bytes.TrimSpace(data)
	switch {
	case len(trimmed) > 0 && trimmed[0] == '[':
		parsed, err := abi.JSON(bytes.NewReader(trimmed))
		if err != nil {
			return nil, err
		}
		return &Artifact{ABI: parsed, ABIJSON: string(trimmed)}, nil

	case len(trimmed) > 0 && trimmed[0] == '{':
		return loadTruffle(path, trimmed)
	}
	var fields []abi.FieldMarshaling
	if err := yaml.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("abi: yaml: %w", err)
	}
	parsed, err := abi.NewABI(fields)
	if err != nil {
		return nil, err
	}
	blob, err := json.Marshal(fields)
	if err != nil {
		return nil, err
	}
	log.Debug("Converted YAML interface description", "path", path, "members", len(fields))
	return &Artifact{ABI: parsed, ABIJSON: string(blob)}, nil
}

func loadTruffle(path string, data []byte) (*Artifact, error) {
	var raw truffleArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid build artifact: %w", err)
	}
	abiJSON := bytes.TrimSpace(raw.ABI)
	if len(abiJSON) == 0 || abiJSON[0] != '[' {
		return nil, errors.New("build artifact holds no abi array")
	}
	parsed, err := abi.JSON(bytes.NewReader(abiJSON))
	if err != nil {
		return nil, err
	}
	art := &Artifact{
		Name:     raw.ContractName,
		ABI:      parsed,
		ABIJSON:  string(abiJSON),
		Networks: make(map[string]string),
	}
	for id, network := range raw.Networks {
		// Networks the contract was linked against but not deployed to
		// carry no address.
		if network.Address != "" {
			art.Networks[id] = network.Address
		}
	}
	log.Debug("Loaded build artifact", "path", path, "contract", art.Name, "networks", len(art.Networks))
	return art, nil
}

// WriteFileLocked writes data to path while holding an advisory lock on it,
// so concurrent writers targeting the same file do not interleave.
func WriteFileLocked(path string, data []byte) error {
	fileLock := flock.New(path, flock.SetPermissions(0644))
	if err := fileLock.Lock(); err != nil {
		return fmt.Errorf("failed to lock %s: %w", path, err)
	}
	defer fileLock.Unlock()

	return os.WriteFile(path, data, 0644)
}
