// Copyright 2018 The go-ethereum Authors
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
	"encoding/binary"
	"fmt"
	"math/big"
	"reflect"

	"github.com/solbind/solbind/common"
	"github.com/solbind/solbind/crypto"
)

var bytes32T = MustNewType("bytes32")

// MakeTopics converts a filter query argument list into a filter topic set.
func MakeTopics(query ...[]interface{}) ([][]common.Hash, error) {
	topics := make([][]common.Hash, len(query))
	for i, filter := range query {
		for _, rule := range filter {
			var topic common.Hash

			// Try to generate the topic based on simple types
			switch rule := rule.(type) {
			case Value:
				var err error
				if topic, err = EncodeTopic(rule); err != nil {
					return nil, err
				}
			case common.Hash:
				copy(topic[:], rule[:])
			case common.Address:
				copy(topic[common.HashLength-common.AddressLength:], rule[:])
			case *big.Int:
				copy(topic[:], packBig(rule))
			case bool:
				if rule {
					topic[common.HashLength-1] = 1
				}
			case int8:
				copy(topic[:], genIntType(int64(rule), 1))
			case int16:
				copy(topic[:], genIntType(int64(rule), 2))
			case int32:
				copy(topic[:], genIntType(int64(rule), 4))
			case int64:
				copy(topic[:], genIntType(rule, 8))
			case uint8:
				topic[common.HashLength-1] = rule
			case uint16:
				binary.BigEndian.PutUint16(topic[common.HashLength-2:], rule)
			case uint32:
				binary.BigEndian.PutUint32(topic[common.HashLength-4:], rule)
			case uint64:
				binary.BigEndian.PutUint64(topic[common.HashLength-8:], rule)
			case string:
				topic = crypto.Keccak256Hash([]byte(rule))
			case []byte:
				topic = crypto.Keccak256Hash(rule)

			default:
				// Arrays and structs need their ABI type to be hashed, pass
				// them as Value rules.

				// Attempt to generate the topic from funky types
				val := reflect.ValueOf(rule)
				switch {
				// static byte array
				case val.Kind() == reflect.Array && reflect.TypeOf(rule).Elem().Kind() == reflect.Uint8:
					reflect.Copy(reflect.ValueOf(topic[:val.Len()]), val)
				default:
					return nil, fmt.Errorf("%w: unsupported indexed type: %T", ErrTypeMismatch, rule)
				}
			}
			topics[i] = append(topics[i], topic)
		}
	}
	return topics, nil
}

func genIntType(rule int64, size uint) []byte {
	var topic [common.HashLength]byte
	if rule < 0 {
		// if a rule is negative, we need to put it into two's complement.
		// extended to common.HashLength bytes.
		topic = [common.HashLength]byte{255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255, 255}
	}
	for i := uint(0); i < size; i++ {
		topic[common.HashLength-i-1] = byte(rule >> (i * 8))
	}
	return topic[:]
}

// EncodeTopic returns the topic an indexed parameter of value v is stored
// as. Value types are stored as their word. Strings and bytes are stored as
// the hash of their content, arrays and tuples as the hash of their in-place
// encoding with every element padded to 32 bytes and no length prefixes.
func EncodeTopic(v Value) (common.Hash, error) {
	if v.IsZero() {
		return common.Hash{}, fmt.Errorf("%w: topic value is unset", ErrTypeMismatch)
	}
	if !hashedInTopic(v.typ) {
		word, err := packElement(v)
		if err != nil {
			return common.Hash{}, err
		}
		return common.BytesToHash(word), nil
	}
	switch v.typ.T {
	case StringTy:
		return crypto.Keccak256Hash([]byte(v.data.(string))), nil
	case BytesTy:
		return crypto.Keccak256Hash(v.data.([]byte)), nil
	}
	enc, err := topicPreimage(v)
	if err != nil {
		return common.Hash{}, err
	}
	return crypto.Keccak256Hash(enc), nil
}

// topicPreimage is the in-place encoding of a value as hashed into a topic.
func topicPreimage(v Value) ([]byte, error) {
	switch v.typ.T {
	case StringTy:
		b := []byte(v.data.(string))
		return common.RightPadBytes(b, (len(b)+31)/32*32), nil
	case BytesTy:
		b := v.data.([]byte)
		return common.RightPadBytes(b, (len(b)+31)/32*32), nil
	case SliceTy, ArrayTy, TupleTy:
		var out []byte
		for _, elem := range v.data.([]Value) {
			enc, err := topicPreimage(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, enc...)
		}
		return out, nil
	default:
		return packElement(v)
	}
}

// hashedInTopic reports whether an indexed parameter of type t is stored as a
// hash rather than its value.
func hashedInTopic(t Type) bool {
	switch t.T {
	case StringTy, BytesTy, SliceTy, ArrayTy, TupleTy:
		return true
	}
	return false
}

// TopicType returns the type a topic of an indexed parameter decodes to:
// the parameter type itself for value types, bytes32 for hashed ones.
func TopicType(t Type) Type {
	if hashedInTopic(t) {
		return bytes32T
	}
	return t
}

// FilterTopics builds the filter topic set of the event: the event ID
// followed by one rule list per indexed parameter. Rules are converted to the
// parameter type with ToValue; a nil list matches anything.
func (e Event) FilterTopics(query ...[]interface{}) ([][]common.Hash, error) {
	indexed := e.Inputs.Indexed()
	if len(query) > len(indexed) {
		return nil, fmt.Errorf("%w: %d rule lists for %d indexed parameters", ErrTopicMismatch, len(query), len(indexed))
	}
	var topics [][]common.Hash
	if !e.Anonymous {
		topics = append(topics, []common.Hash{e.ID()})
	}
	for i, rules := range query {
		var set []common.Hash
		for _, rule := range rules {
			v, err := ToValue(indexed[i].Type, rule)
			if err != nil {
				return nil, fmt.Errorf("indexed %s: %w", indexed[i].Name, err)
			}
			topic, err := EncodeTopic(v)
			if err != nil {
				return nil, err
			}
			set = append(set, topic)
		}
		topics = append(topics, set)
	}
	return topics, nil
}

// DecodeLog decodes a log emitted by the event ev into a mapping from
// parameter name to value. The first topic must be the event ID unless the
// event is anonymous. Indexed strings, bytes, arrays and tuples are only
// available as the bytes32 hash the log carries; their value cannot be
// recovered.
func DecodeLog(topics []common.Hash, data []byte, ev Event) (map[string]Value, error) {
	values, err := ev.DecodeLogValues(topics, data)
	if err != nil {
		return nil, err
	}
	out := make(map[string]Value, len(values))
	for i, input := range ev.Inputs {
		out[argumentKey(input.Name, i)] = values[i]
	}
	return out, nil
}

// DecodeLogValues is like DecodeLog but returns the values in parameter
// order.
func (e Event) DecodeLogValues(topics []common.Hash, data []byte) ([]Value, error) {
	if !e.Anonymous {
		if len(topics) == 0 {
			return nil, fmt.Errorf("%w: no topics for event %s", ErrTopicMismatch, e.Sig())
		}
		if topics[0] != e.ID() {
			return nil, fmt.Errorf("%w: event signature mismatch, have %v want %v (%s)", ErrTopicMismatch, topics[0].Hex(), e.ID().Hex(), e.Sig())
		}
		topics = topics[1:]
	}
	indexed := e.Inputs.Indexed()
	if len(topics) != len(indexed) {
		return nil, fmt.Errorf("%w: have %d topics for %d indexed parameters of %s", ErrTopicMismatch, len(topics), len(indexed), e.Sig())
	}
	topicValues, err := ParseTopics(indexed, topics)
	if err != nil {
		return nil, err
	}
	dataValues, err := e.Inputs.Unpack(data)
	if err != nil {
		return nil, fmt.Errorf("event %s data: %w", e.Sig(), err)
	}
	var (
		values = make([]Value, len(e.Inputs))
		ti, di int
	)
	for i, input := range e.Inputs {
		if input.Indexed {
			values[i] = topicValues[ti]
			ti++
		} else {
			values[i] = dataValues[di]
			di++
		}
	}
	return values, nil
}

// ParseTopics decodes the topics of indexed parameters, event ID excluded.
func ParseTopics(fields Arguments, topics []common.Hash) ([]Value, error) {
	if len(fields) != len(topics) {
		return nil, fmt.Errorf("%w: topic/field count mismatch", ErrTopicMismatch)
	}
	values := make([]Value, len(fields))
	for i, arg := range fields {
		if !arg.Indexed {
			return nil, fmt.Errorf("%w: non-indexed field %s in topic reconstruction", ErrTypeMismatch, arg.Name)
		}
		v, err := readElement(TopicType(arg.Type), topics[i][:])
		if err != nil {
			return nil, fmt.Errorf("indexed %s: %w", arg.Name, err)
		}
		values[i] = v
	}
	return values, nil
}
