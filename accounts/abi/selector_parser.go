// Copyright 2022 The go-ethereum Authors
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
	"errors"
	"fmt"
	"strings"
)

// SelectorMarshaling is a struct that represents the JSON-serializable form of a method selector.
// It includes the method name, type, and input arguments.
type SelectorMarshaling struct {
	Name   string               `json:"name"`
	Type   string               `json:"type"`
	Inputs []ArgumentMarshaling `json:"inputs"`
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentifierSymbol(c byte) bool {
	return c == '$' || c == '_'
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// words that may follow a parameter type without being its name
var modifiers = map[string]bool{
	"memory":   true,
	"calldata": true,
	"storage":  true,
	"payable":  true,
}

func skipSpace(s string) string {
	for len(s) > 0 && isSpace(s[0]) {
		s = s[1:]
	}
	return s
}

func parseToken(unescapedSelector string, isIdent bool) (string, string, error) {
	if len(unescapedSelector) == 0 {
		return "", "", errors.New("empty token")
	}
	firstChar := unescapedSelector[0]
	position := 1
	if !(isAlpha(firstChar) || (isIdent && isIdentifierSymbol(firstChar))) {
		return "", "", fmt.Errorf("invalid token start: %c", firstChar)
	}
	for position < len(unescapedSelector) {
		char := unescapedSelector[position]
		if !(isAlpha(char) || isDigit(char) || (isIdent && isIdentifierSymbol(char))) {
			break
		}
		position++
	}
	return unescapedSelector[:position], unescapedSelector[position:], nil
}

func parseIdentifier(unescapedSelector string) (string, string, error) {
	return parseToken(unescapedSelector, true)
}

// parseArraySuffix consumes any number of [] and [N] suffixes.
func parseArraySuffix(rest string) (string, string, error) {
	var suffix strings.Builder
	for len(rest) > 0 && rest[0] == '[' {
		end := strings.IndexByte(rest, ']')
		if end == -1 {
			return "", "", fmt.Errorf("failed to parse array: expected ']' in %q", rest)
		}
		for i := 1; i < end; i++ {
			if !isDigit(rest[i]) {
				return "", "", fmt.Errorf("failed to parse array: invalid length %q", rest[1:end])
			}
		}
		suffix.WriteString(rest[:end+1])
		rest = rest[end+1:]
	}
	return suffix.String(), rest, nil
}

// parseParam parses "type [indexed] [location] [name]".
func parseParam(s string) (ArgumentMarshaling, string, error) {
	var (
		arg  ArgumentMarshaling
		rest string
		err  error
	)
	s = skipSpace(s)
	if len(s) > 0 && s[0] == '(' {
		arg.Components, rest, err = parseParamList(s)
		if err != nil {
			return arg, "", err
		}
		arg.Type = "tuple"
	} else {
		arg.Type, rest, err = parseToken(s, false)
		if err != nil {
			return arg, "", fmt.Errorf("failed to parse elementary type: %v", err)
		}
	}
	suffix, rest, err := parseArraySuffix(rest)
	if err != nil {
		return arg, "", err
	}
	arg.Type += suffix
	for {
		rest = skipSpace(rest)
		if len(rest) == 0 || rest[0] == ',' || rest[0] == ')' {
			return arg, rest, nil
		}
		word, after, err := parseIdentifier(rest)
		if err != nil {
			return arg, "", err
		}
		switch {
		case word == "indexed":
			arg.Indexed = true
		case modifiers[word]:
		case arg.Name == "":
			arg.Name = word
		default:
			return arg, "", fmt.Errorf("unexpected word %q after parameter %s", word, arg.Name)
		}
		rest = after
	}
}

// parseParamList parses a parenthesized, comma separated parameter list.
func parseParamList(s string) ([]ArgumentMarshaling, string, error) {
	if len(s) == 0 || s[0] != '(' {
		return nil, "", fmt.Errorf("expected '(', got %q", s)
	}
	rest := skipSpace(s[1:])
	args := []ArgumentMarshaling{}
	if len(rest) > 0 && rest[0] == ')' {
		return args, rest[1:], nil
	}
	for {
		arg, after, err := parseParam(rest)
		if err != nil {
			return nil, "", err
		}
		args = append(args, arg)
		if len(after) == 0 {
			return nil, "", errors.New("expected ')', got end of input")
		}
		if after[0] == ')' {
			return args, after[1:], nil
		}
		rest = after[1:]
	}
}

// parseSignature splits a human readable signature into its name and
// parameters. A leading "function", "event" or "error" keyword is skipped.
func parseSignature(unescapedSelector string) (string, []ArgumentMarshaling, error) {
	s := strings.TrimSpace(unescapedSelector)
	for _, keyword := range []string{"function ", "event ", "error "} {
		s = strings.TrimSpace(strings.TrimPrefix(s, keyword))
	}
	name, rest, err := parseIdentifier(s)
	if err != nil {
		return "", nil, fmt.Errorf("%w: failed to parse selector '%s': %v", ErrInvalidTypeSyntax, unescapedSelector, err)
	}
	args, rest, err := parseParamList(skipSpace(rest))
	if err != nil {
		return "", nil, fmt.Errorf("%w: failed to parse selector '%s': %v", ErrInvalidTypeSyntax, unescapedSelector, err)
	}
	if rest = strings.TrimSpace(rest); rest != "" && rest != "anonymous" {
		// Trailing mutability and returns clauses are not interpreted.
		if !strings.HasPrefix(rest, "view") && !strings.HasPrefix(rest, "pure") &&
			!strings.HasPrefix(rest, "payable") && !strings.HasPrefix(rest, "nonpayable") &&
			!strings.HasPrefix(rest, "external") && !strings.HasPrefix(rest, "returns") {
			return "", nil, fmt.Errorf("%w: failed to parse selector '%s': unexpected string '%s'", ErrInvalidTypeSyntax, unescapedSelector, rest)
		}
	}
	return name, args, nil
}

// ParseSelectorMarshaling converts a method selector into a struct that can be JSON encoded
// and consumed by other functions in this package.
// Note, although uppercase letters are not valid in Solidity signatures, this function
// still accepts it as the general format is valid.
func ParseSelectorMarshaling(unescapedSelector string) (SelectorMarshaling, error) {
	name, args, err := parseSignature(unescapedSelector)
	if err != nil {
		return SelectorMarshaling{}, err
	}
	return SelectorMarshaling{name, "function", args}, nil
}

// ParseSelector turns a human readable signature such as
// "transfer(address to, uint256 amount)" into a Method. Parameter names,
// whitespace and data location keywords are optional.
func ParseSelector(unescapedSelector string) (Method, error) {
	name, args, err := parseSignature(unescapedSelector)
	if err != nil {
		return Method{}, err
	}
	inputs, err := NewArguments(args)
	if err != nil {
		return Method{}, err
	}
	return NewMethod(name, name, Function, "", false, false, inputs, nil), nil
}

// ParseEvent turns a human readable event signature such as
// "Transfer(address indexed from, address indexed to, uint256 value)" into an
// Event. A trailing "anonymous" marks the event anonymous.
func ParseEvent(signature string) (Event, error) {
	name, args, err := parseSignature(signature)
	if err != nil {
		return Event{}, err
	}
	inputs, err := NewArguments(args)
	if err != nil {
		return Event{}, err
	}
	anonymous := strings.HasSuffix(strings.TrimSpace(signature), "anonymous")
	return NewEvent(name, name, anonymous, inputs), nil
}
