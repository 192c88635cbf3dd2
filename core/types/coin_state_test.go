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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lightpeer/walletsync/common"
)

func u32(v uint32) *uint32 {
	return &v
}

func testCoin() Coin {
	return Coin{
		ParentCoinInfo: common.HashData([]byte("parent")),
		PuzzleHash:     common.HashData([]byte("puzzle")),
		Amount:         1_000_000,
	}
}

func TestResolvedHeightPrefersSpent(t *testing.T) {
	state := &CoinState{Coin: testCoin(), CreatedHeight: u32(2), SpentHeight: u32(8)}
	height, known := state.ResolvedHeight().Get()
	require.True(t, known)
	assert.Equal(t, uint32(8), height)
}

func TestResolvedHeightFallsBackToCreated(t *testing.T) {
	state := &CoinState{Coin: testCoin(), CreatedHeight: u32(5)}
	height, known := state.ResolvedHeight().Get()
	require.True(t, known)
	assert.Equal(t, uint32(5), height)
}

func TestResolvedHeightUnknown(t *testing.T) {
	state := &CoinState{Coin: testCoin()}
	assert.False(t, state.ResolvedHeight().Known())
}

func TestCoinStateHashDeterministic(t *testing.T) {
	a := &CoinState{Coin: testCoin(), CreatedHeight: u32(5), SpentHeight: u32(8)}
	b := &CoinState{Coin: testCoin(), CreatedHeight: u32(5), SpentHeight: u32(8)}
	assert.Equal(t, a.Hash(), b.Hash())
}

func TestCoinStateHashDependsOnHeights(t *testing.T) {
	base := &CoinState{Coin: testCoin(), CreatedHeight: u32(5)}
	spent := &CoinState{Coin: testCoin(), CreatedHeight: u32(5), SpentHeight: u32(8)}
	assert.NotEqual(t, base.Hash(), spent.Hash())

	// "no height" and "height 0" must hash differently
	zero := &CoinState{Coin: testCoin(), CreatedHeight: u32(5), SpentHeight: u32(0)}
	assert.NotEqual(t, base.Hash(), zero.Hash())
	assert.NotEqual(t, spent.Hash(), zero.Hash())
}

func TestCoinID(t *testing.T) {
	coin := testCoin()
	other := testCoin()
	other.Amount++

	assert.Equal(t, coin.ID(), coin.ID())
	assert.NotEqual(t, coin.ID(), other.ID())
}
