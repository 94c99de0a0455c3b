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

package hexutil

import (
	"bytes"
	"encoding/json"
	"testing"
)

func checkError(t *testing.T, input string, got, want error) bool {
	if got == nil {
		if want != nil {
			t.Errorf("input %s: got no error, want %q", input, want)
			return false
		}
		return true
	}
	if want == nil {
		t.Errorf("input %s: unexpected error %q", input, got)
	} else if got.Error() != want.Error() {
		t.Errorf("input %s: got error %q, want %q", input, got, want)
	}
	return false
}

var decodeBytesTests = []struct {
	input   string
	want    []byte
	wantErr error
}{
	{input: ``, wantErr: ErrEmptyString},
	{input: `0`, wantErr: ErrMissingPrefix},
	{input: `0x0`, wantErr: ErrOddLength},
	{input: `0x023`, wantErr: ErrOddLength},
	{input: `0xxx`, wantErr: ErrSyntax},
	{input: `0x01zz01`, wantErr: ErrSyntax},
	{input: `0x`, want: []byte{}},
	{input: `0X02`, want: []byte{0x02}},
	{input: `0xffffffffff`, want: []byte{0xff, 0xff, 0xff, 0xff, 0xff}},
	{input: `0xa9059cbb`, want: []byte{0xa9, 0x05, 0x9c, 0xbb}},
}

func TestDecode(t *testing.T) {
	for _, test := range decodeBytesTests {
		dec, err := Decode(test.input)
		if !checkError(t, test.input, err, test.wantErr) {
			continue
		}
		if !bytes.Equal(test.want, dec) {
			t.Errorf("input %s: value mismatch: got %x, want %x", test.input, dec, test.want)
		}
	}
}

func TestEncode(t *testing.T) {
	for _, test := range decodeBytesTests {
		if test.wantErr != nil {
			continue
		}
		enc := Encode(test.want)
		if dec := MustDecode(enc); !bytes.Equal(dec, test.want) {
			t.Errorf("input %x: re-decode mismatch: got %x", test.want, dec)
		}
	}
}

func TestBytesJSON(t *testing.T) {
	var b Bytes
	if err := json.Unmarshal([]byte(`"0x0102"`), &b); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(b, []byte{1, 2}) {
		t.Fatalf("wrong value %x", []byte(b))
	}
	out, err := json.Marshal(b)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != `"0x0102"` {
		t.Fatalf("wrong encoding %s", out)
	}
	if err := json.Unmarshal([]byte(`12`), &b); err == nil {
		t.Fatal("expected error for non-string input")
	}
}
