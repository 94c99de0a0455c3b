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
	_ "embed"

	"github.com/solbind/solbind/accounts/abi"
)

// tmplData is the data structure required to fill the binding template.
type tmplData struct {
	Package  string        // Name of the package to place the generated file in
	Contract *tmplContract // Contract to generate into this file
	Structs  []*tmplStruct // Contract struct type definitions, in registration order
}

// tmplContract contains the data needed to generate an individual contract binding.
type tmplContract struct {
	Type         string         // Type name of the main contract binding
	InputABI     string         // JSON ABI used as the input, as a quoted Go string literal
	BytecodeHash string         // Optional hash of the deployed bytecode
	Addresses    []*tmplAddress // Known deployments, sorted by network
	Constructor  *tmplMethod    // Contract constructor, nil if it takes no arguments
	Methods      []*tmplMethod  // Contract functions in declaration order
	Events       []*tmplEvent   // Contract events in declaration order
	Errors       []*tmplError   // Custom errors in declaration order
	Fallback     bool           // Whether the contract has a fallback function
	Receive      bool           // Whether the contract has a receive function
}

// tmplAddress is a known deployment of the contract.
type tmplAddress struct {
	Network string
	Address string
}

// tmplMethod is a wrapper around an abi.Method that contains a few preprocessed
// and cached data fields.
type tmplMethod struct {
	Original   abi.Method   // Original method as parsed by the abi package
	Name       string       // Go name of the binding method
	Selector   string       // 0x-prefixed 4 byte selector
	Inputs     []*tmplParam // Normalized inputs
	Outputs    []*tmplParam // Normalized outputs
	Constant   bool         // Whether the method only reads state
	Structured bool         // Whether the returns should be accumulated into a struct
}

// tmplEvent is a wrapper around an abi.Event that contains a few preprocessed
// and cached data fields.
type tmplEvent struct {
	Original abi.Event    // Original event as parsed by the abi package
	Name     string       // Go name of the event
	Topic    string       // 0x-prefixed topic0, empty for anonymous events
	Fields   []*tmplParam // All parameters, in declaration order
	Indexed  []*tmplParam // Indexed parameters, usable as filter rules
}

// tmplError is a wrapper around an abi.Error.
type tmplError struct {
	Original abi.Error
	Name     string
	Selector string
	Fields   []*tmplParam
}

// tmplParam is a normalized argument of a method, event or error.
type tmplParam struct {
	Name      string   // Local Go identifier
	Field     string   // Exported struct field name
	Key       string   // Key of the decoded value in event maps
	Type      string   // Go type of the value
	FieldType string   // Go type of the struct field holding the decoded value
	Indexed   bool     // Whether it is an indexed event parameter
	SolKind   abi.Type // Raw abi type information
}

// tmplField is a wrapper around a struct field with binding language
// struct type definition and relative filed name.
type tmplField struct {
	Type    string   // Field type representation depends on target binding language
	Name    string   // Field name converted from the raw user-defined field name
	SolKind abi.Type // Raw abi type information
}

// tmplStruct is a wrapper around an abi.tuple and contains an auto-generated
// struct name.
type tmplStruct struct {
	Name   string       // Auto-generated struct name(before solidity v0.5.11) or raw name.
	Fields []*tmplField // Struct fields definition depends on the binding language.
}

// tmplSource is the Go source template that the generated Go contract binding
// is based on.
//
//go:embed source.go.tpl
var tmplSource string
