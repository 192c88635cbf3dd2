// Copyright 2025 The Walletsync Authors
// This file is part of Walletsync.
//
// Walletsync is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Walletsync is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with Walletsync. If not, see <http://www.gnu.org/licenses/>.

package common

import (
	"encoding/hex"
)

// HashLength is the expected length of the hash in bytes.
const HashLength = 32

// Hash represents the 32 byte SHA-256 digest of arbitrary data.
type Hash [HashLength]byte

// BytesToHash sets b to hash. If b is larger than len(h), b will be cropped
// from the left.
func BytesToHash(b []byte) Hash {
	var h Hash
	h.SetBytes(b)
	return h
}

// HexToHash sets byte representation of s to hash. If s is larger than
// len(h), s will be cropped from the left.
func HexToHash(s string) Hash {
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s)%2 == 1 {
		s = "0" + s
	}
	b, _ := hex.DecodeString(s)
	return BytesToHash(b)
}

// Bytes gets the byte representation of the underlying hash.
func (h Hash) Bytes() []byte { return h[:] }

// Hex converts a hash to a hex string.
func (h Hash) Hex() string { return "0x" + hex.EncodeToString(h[:]) }

func (h Hash) String() string { return h.Hex() }

// IsZero returns true if the hash is the zero value.
func (h Hash) IsZero() bool { return h == Hash{} }

// SetBytes sets the hash to the value of b. If b is larger than len(h), b
// will be cropped from the left.
func (h *Hash) SetBytes(b []byte) {
	if len(b) > len(h) {
		b = b[len(b)-HashLength:]
	}
	copy(h[HashLength-len(b):], b)
}
