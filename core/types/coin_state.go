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

package types

import (
	"encoding/binary"

	"github.com/lightpeer/walletsync/common"
)

// HeightRef is an optional block height. The zero value is the unknown
// height.
type HeightRef struct {
	height uint32
	known  bool
}

// KnownHeight returns a HeightRef holding h.
func KnownHeight(h uint32) HeightRef {
	return HeightRef{height: h, known: true}
}

// UnknownHeight returns the unknown HeightRef.
func UnknownHeight() HeightRef {
	return HeightRef{}
}

// Get returns the held height and whether it is known.
func (r HeightRef) Get() (uint32, bool) {
	return r.height, r.known
}

func (r HeightRef) Known() bool {
	return r.known
}

// Coin is a value unit: parent coin id, puzzle hash and amount in mojos.
type Coin struct {
	ParentCoinInfo common.Hash
	PuzzleHash     common.Hash
	Amount         uint64
}

// ID returns the coin's identifier digest.
func (c *Coin) ID() common.Hash {
	var amount [8]byte
	binary.BigEndian.PutUint64(amount[:], c.Amount)
	return common.HashData(c.ParentCoinInfo.Bytes(), c.PuzzleHash.Bytes(), amount[:])
}

// CoinState describes a coin's creation and spend heights as reported by a
// peer. Either height may be nil: an unspent coin has no SpentHeight, and a
// coin rolled back by a reorg may have neither.
type CoinState struct {
	Coin          Coin
	SpentHeight   *uint32
	CreatedHeight *uint32
}

// Hash returns the digest of the coin state's fixed-order serialization.
// Optional heights are encoded with a presence byte so that "no height" and
// "height 0" hash differently.
func (cs *CoinState) Hash() common.Hash {
	buf := make([]byte, 0, 2*common.HashLength+8+2*5)
	buf = append(buf, cs.Coin.ParentCoinInfo.Bytes()...)
	buf = append(buf, cs.Coin.PuzzleHash.Bytes()...)
	buf = binary.BigEndian.AppendUint64(buf, cs.Coin.Amount)
	buf = appendOptionalHeight(buf, cs.SpentHeight)
	buf = appendOptionalHeight(buf, cs.CreatedHeight)
	return common.HashData(buf)
}

// ResolvedHeight returns the height this state pertains to: the spend height
// if the coin is spent, else the creation height, else unknown.
func (cs *CoinState) ResolvedHeight() HeightRef {
	if cs.SpentHeight != nil {
		return KnownHeight(*cs.SpentHeight)
	}
	if cs.CreatedHeight != nil {
		return KnownHeight(*cs.CreatedHeight)
	}
	return UnknownHeight()
}

func appendOptionalHeight(buf []byte, h *uint32) []byte {
	if h == nil {
		return append(buf, 0)
	}
	buf = append(buf, 1)
	return binary.BigEndian.AppendUint32(buf, *h)
}
