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
	"crypto/sha256"
	"hash"
	"sync"
)

var hashersPool = sync.Pool{
	New: func() any {
		return sha256.New()
	},
}

// HashData computes the SHA-256 digest of the concatenation of data, in
// argument order. Hash states are pooled and reused across calls.
func HashData(data ...[]byte) Hash {
	h := hashersPool.Get().(hash.Hash)
	defer hashersPool.Put(h)
	h.Reset()

	for _, d := range data {
		h.Write(d) // never returns an error
	}

	var buf Hash
	h.Sum(buf[:0])
	return buf
}
