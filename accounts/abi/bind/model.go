// Copyright 2024 The go-ethereum Authors
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
	"fmt"
	"strings"
	"unicode"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/solbind/solbind/accounts/abi"
	"github.com/solbind/solbind/common"
	"github.com/solbind/solbind/common/hexutil"
	"github.com/solbind/solbind/log"
)

// binder translates a parsed ABI into the data structures the template is
// rendered from. All naming decisions happen here so that the template only
// has to print.
//
// Binding happens in two passes. The first one names every member and claims
// the identifiers it will emit, failing on selector, topic or name
// collisions. The second one normalizes arguments and registers the structs
// tuple arguments need; struct names are picked last so that they can step
// aside for member identifiers.
type binder struct {
	typ     string
	aliases map[string]string

	decls   mapset.Set[string] // package level identifiers
	members mapset.Set[string] // methods of the binding type

	selectors map[string]string      // function selector -> signature
	errorIDs  map[string]string      // error selector -> signature
	topics    map[common.Hash]string // event topic -> signature

	structs     map[string]*tmplStruct
	structOrder []*tmplStruct
}

func newBinder(typ string, aliases map[string]string) *binder {
	return &binder{
		typ:       typ,
		aliases:   aliases,
		decls:     mapset.NewThreadUnsafeSet[string](),
		members:   mapset.NewThreadUnsafeSet[string](),
		selectors: make(map[string]string),
		errorIDs:  make(map[string]string),
		topics:    make(map[common.Hash]string),
		structs:   make(map[string]*tmplStruct),
	}
}

// claim registers an identifier in set, failing if it is already taken.
func claim(set mapset.Set[string], ident, origin string) error {
	if !set.Add(ident) {
		return fmt.Errorf("%w: identifier %q of %s is already taken, use an alias for renaming", abi.ErrDuplicateName, ident, origin)
	}
	return nil
}

// contains adapts a set to the lookup ResolveNameConflict expects.
func contains(set mapset.Set[string]) func(string) bool {
	return func(s string) bool { return set.Contains(s) }
}

// memberName applies alias renaming and converts a solidity member name into
// an exported Go identifier.
func (b *binder) memberName(original, prefix string) string {
	name := alias(b.aliases, original)
	name = strings.Map(func(r rune) rune {
		if r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			return r
		}
		return -1
	}, name)
	name = abi.ToCamelCase(name)

	// Name shouldn't start with a digit. It will make the generated code invalid.
	if name == "" || unicode.IsDigit(rune(name[0])) {
		name = prefix + name
	}
	return name
}

// bindContract builds the template model of a single contract.
func (b *binder) bindContract(parsed *abi.ABI, inputABI string) (*tmplContract, error) {
	contract := &tmplContract{
		Type:     b.typ,
		InputABI: inputABI,
		Fallback: parsed.HasFallback(),
		Receive:  parsed.HasReceive(),
	}
	for _, ident := range []string{b.typ, "New" + b.typ, b.typ + "MetaData"} {
		if err := claim(b.decls, ident, "contract "+b.typ); err != nil {
			return nil, err
		}
	}
	if err := claim(b.members, "Address", "contract "+b.typ); err != nil {
		return nil, err
	}
	if contract.Fallback {
		if err := claim(b.members, "Fallback", "fallback function"); err != nil {
			return nil, err
		}
	}
	if contract.Receive {
		if err := claim(b.members, "Receive", "receive function"); err != nil {
			return nil, err
		}
	}
	// First pass: member names, selectors and topics.
	for _, original := range parsed.OrderedMethods() {
		method, err := b.nameMethod(original)
		if err != nil {
			return nil, err
		}
		contract.Methods = append(contract.Methods, method)
	}
	for _, original := range parsed.OrderedEvents() {
		event, err := b.nameEvent(original)
		if err != nil {
			return nil, err
		}
		contract.Events = append(contract.Events, event)
	}
	for _, original := range parsed.OrderedErrors() {
		e, err := b.nameError(original)
		if err != nil {
			return nil, err
		}
		contract.Errors = append(contract.Errors, e)
	}
	if len(parsed.Constructor.Inputs) > 0 {
		if err := claim(b.decls, "Pack"+b.typ+"Constructor", "constructor"); err != nil {
			return nil, err
		}
		contract.Constructor = &tmplMethod{Original: parsed.Constructor, Name: "Constructor"}
	}
	// Second pass: arguments and the structs they need.
	if contract.Constructor != nil {
		contract.Constructor.Inputs = b.bindArgs(parsed.Constructor.Inputs)
	}
	for _, method := range contract.Methods {
		method.Inputs = b.bindArgs(method.Original.Inputs)
		method.Outputs = b.bindArgs(method.Original.Outputs)
		method.Structured = len(method.Outputs) > 1
		log.Trace("Bound contract method", "name", method.Name, "sig", method.Original.Sig(), "selector", method.Selector)
	}
	for _, event := range contract.Events {
		event.Fields = b.bindFields(event.Original.Inputs)
		for _, field := range event.Fields {
			if field.Indexed {
				event.Indexed = append(event.Indexed, field)
			}
		}
		log.Trace("Bound contract event", "name", event.Name, "sig", event.Original.Sig(), "topic", event.Topic)
	}
	for _, e := range contract.Errors {
		e.Fields = b.bindFields(e.Original.Inputs)
		log.Trace("Bound contract error", "name", e.Name, "sig", e.Original.Sig(), "selector", e.Selector)
	}
	return contract, nil
}

func (b *binder) nameMethod(original abi.Method) (*tmplMethod, error) {
	sig := original.Sig()
	selector := hexutil.Encode(original.ID())
	if other, ok := b.selectors[selector]; ok {
		return nil, fmt.Errorf("%w: %s and %s share selector %s", abi.ErrSelectorCollision, other, sig, selector)
	}
	b.selectors[selector] = sig

	method := &tmplMethod{
		Original: original,
		Name:     b.memberName(original.Name, "M"),
		Selector: selector,
		Constant: original.IsConstant(),
	}
	idents := []string{method.Name, "Pack" + method.Name}
	if !method.Constant {
		idents = append(idents, "Estimate"+method.Name)
	}
	for _, ident := range idents {
		if err := claim(b.members, ident, "function "+sig); err != nil {
			return nil, err
		}
	}
	if len(original.Outputs) > 1 {
		if err := claim(b.decls, b.typ+method.Name+"Output", "function "+sig); err != nil {
			return nil, err
		}
	}
	return method, nil
}

func (b *binder) nameEvent(original abi.Event) (*tmplEvent, error) {
	sig := original.Sig()
	event := &tmplEvent{
		Original: original,
		Name:     b.memberName(original.Name, "E"),
	}
	if !original.Anonymous {
		id := original.ID()
		if other, ok := b.topics[id]; ok {
			return nil, fmt.Errorf("%w: events %s and %s share topic %s", abi.ErrSelectorCollision, other, sig, id.Hex())
		}
		b.topics[id] = sig
		event.Topic = id.Hex()
		if err := claim(b.decls, b.typ+event.Name+"Topic", "event "+sig); err != nil {
			return nil, err
		}
	}
	if err := claim(b.decls, b.typ+event.Name, "event "+sig); err != nil {
		return nil, err
	}
	for _, ident := range []string{"Parse" + event.Name, event.Name + "Topics"} {
		if err := claim(b.members, ident, "event "+sig); err != nil {
			return nil, err
		}
	}
	return event, nil
}

func (b *binder) nameError(original abi.Error) (*tmplError, error) {
	sig := original.Sig()
	selector := hexutil.Encode(original.ID())
	if other, ok := b.errorIDs[selector]; ok {
		return nil, fmt.Errorf("%w: errors %s and %s share selector %s", abi.ErrSelectorCollision, other, sig, selector)
	}
	b.errorIDs[selector] = sig

	e := &tmplError{
		Original: original,
		Name:     b.memberName(original.Name, "E"),
		Selector: selector,
	}
	if err := claim(b.decls, b.typ+e.Name+"Error", "error "+sig); err != nil {
		return nil, err
	}
	if err := claim(b.members, "Unpack"+e.Name+"Error", "error "+sig); err != nil {
		return nil, err
	}
	return e, nil
}

// bindArgs normalizes a set of arguments by stripping underscores, giving a
// generic name in the case where the arg name collides with a reserved Go
// keyword or a local of the generated code, and finally converting to
// camel-case.
func (b *binder) bindArgs(args abi.Arguments) []*tmplParam {
	var (
		params = make([]*tmplParam, len(args))
		locals = mapset.NewThreadUnsafeSet[string]()
		fields = mapset.NewThreadUnsafeSet[string]()
	)
	for i, arg := range args {
		name := decapitalise(abi.Identifier(arg.Name, i))
		if isKeyWord(name) || isLocal(name) {
			name = fmt.Sprintf("arg%d", i)
		}
		name = abi.ResolveNameConflict(name, contains(locals))
		locals.Add(name)

		field := abi.ResolveNameConflict(abi.Identifier(arg.Name, i), contains(fields))
		fields.Add(field)

		params[i] = &tmplParam{
			Name:      name,
			Field:     field,
			Key:       arg.Name,
			Type:      b.bindType(arg.Type),
			Indexed:   arg.Indexed,
			SolKind:   arg.Type,
			FieldType: b.bindType(arg.Type),
		}
		if arg.Indexed {
			params[i].FieldType = b.bindTopicType(arg.Type)
		}
	}
	return params
}

// bindFields normalizes event and error parameters. The field name Raw is
// reserved for the log an event was decoded from.
func (b *binder) bindFields(args abi.Arguments) []*tmplParam {
	params := b.bindArgs(args)
	used := mapset.NewThreadUnsafeSet[string]("Raw")
	for _, param := range params {
		param.Field = abi.ResolveNameConflict(param.Field, contains(used))
		used.Add(param.Field)
	}
	return params
}

// bindType converts solidity types to Go ones. Since there is no clear mapping
// from all Solidity types to Go ones (e.g. uint17), those that cannot be exactly
// mapped will use an upscaled type (e.g. *big.Int).
func (b *binder) bindType(kind abi.Type) string {
	switch kind.T {
	case abi.TupleTy:
		return b.bindStructType(kind)
	case abi.ArrayTy:
		return fmt.Sprintf("[%d]", kind.Size) + b.bindType(*kind.Elem)
	case abi.SliceTy:
		return "[]" + b.bindType(*kind.Elem)
	default:
		return bindBasicType(kind)
	}
}

// bindTopicType converts a Solidity topic type to a Go one. It is almost the
// same functionality as for simple types, but types stored as a hash in the
// topic get converted to common.Hash.
func (b *binder) bindTopicType(kind abi.Type) string {
	if abi.TopicType(kind).T != kind.T {
		return "common.Hash"
	}
	return b.bindType(kind)
}

// bindStructType converts a Solidity tuple type to a Go struct and records
// it. Nested structs are resolved and recorded first.
func (b *binder) bindStructType(kind abi.Type) string {
	// We compose a raw struct name and a canonical parameter expression
	// together here. The reason is before solidity v0.5.11, kind.TupleRawName
	// is empty, so we use canonical parameter expression to distinguish
	// different struct definition.
	id := kind.TupleRawName + kind.String()
	if s, exist := b.structs[id]; exist {
		return s.Name
	}
	var (
		names  = abi.TupleFieldNames(kind)
		fields = make([]*tmplField, len(kind.TupleElems))
	)
	for i, elem := range kind.TupleElems {
		fields[i] = &tmplField{Type: b.bindType(*elem), Name: names[i], SolKind: *elem}
	}
	name := kind.TupleRawName
	if name == "" {
		name = fmt.Sprintf("Struct%d", len(b.structOrder))
	}
	name = abi.ResolveNameConflict(abi.ToCamelCase(name), contains(b.decls))
	b.decls.Add(name)

	s := &tmplStruct{Name: name, Fields: fields}
	b.structs[id] = s
	b.structOrder = append(b.structOrder, s)
	log.Trace("Registered binding struct", "name", name, "type", kind.String())
	return name
}

// bindBasicType converts basic solidity types(except array, slice and tuple) to Go ones.
func bindBasicType(kind abi.Type) string {
	switch kind.T {
	case abi.AddressTy:
		return "common.Address"
	case abi.IntTy, abi.UintTy:
		switch kind.Size {
		case 8, 16, 32, 64:
			if kind.T == abi.UintTy {
				return fmt.Sprintf("uint%d", kind.Size)
			}
			return fmt.Sprintf("int%d", kind.Size)
		}
		return "*big.Int"
	case abi.FixedBytesTy:
		return fmt.Sprintf("[%d]byte", kind.Size)
	case abi.BytesTy:
		return "[]byte"
	default:
		// string, bool types
		return kind.String()
	}
}

// isLocal reports whether name is used by the generated method bodies.
func isLocal(name string) bool {
	switch name {
	case "ctx", "values", "err", "out", "out0", "parsed", "event", "e", "log", "item", "data", "calldata":
		return true
	}
	return false
}
