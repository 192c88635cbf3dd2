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

package sync

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lightpeer/walletsync/core/types"
)

func TestCanUseCacheNeverValidated(t *testing.T) {
	cache := newTestCache()

	state := &types.CoinState{CreatedHeight: u32(10)}
	assert.False(t, CanUsePeerRequestCache(state, cache, types.UnknownHeight()))
	assert.False(t, CanUsePeerRequestCache(state, cache, types.KnownHeight(5)))
}

func TestCanUseCacheNoForkSuspected(t *testing.T) {
	cache := newTestCache()

	state := &types.CoinState{CreatedHeight: u32(10)}
	cache.AddToStatesValidated(state)

	assert.True(t, CanUsePeerRequestCache(state, cache, types.UnknownHeight()))
}

func TestCanUseCacheCreatedHeightVsFork(t *testing.T) {
	cache := newTestCache()

	state := &types.CoinState{CreatedHeight: u32(5)}
	cache.AddToStatesValidated(state)

	assert.True(t, CanUsePeerRequestCache(state, cache, types.KnownHeight(10)))
	assert.False(t, CanUsePeerRequestCache(state, cache, types.KnownHeight(3)))
}

func TestCanUseCacheAmbiguousState(t *testing.T) {
	cache := newTestCache()

	// neither created nor spent height: the state is being rolled back
	state := &types.CoinState{}
	cache.AddToStatesValidated(state)

	assert.True(t, CanUsePeerRequestCache(state, cache, types.UnknownHeight()))
	assert.False(t, CanUsePeerRequestCache(state, cache, types.KnownHeight(100)))
	assert.False(t, CanUsePeerRequestCache(state, cache, types.KnownHeight(0)))
}

func TestCanUseCacheSpentHeightVsFork(t *testing.T) {
	cache := newTestCache()

	state := &types.CoinState{CreatedHeight: u32(2), SpentHeight: u32(8)}
	cache.AddToStatesValidated(state)

	// spend above the fork invalidates even though the creation is below it
	assert.False(t, CanUsePeerRequestCache(state, cache, types.KnownHeight(5)))
	assert.True(t, CanUsePeerRequestCache(state, cache, types.KnownHeight(8)))
}

func TestCanUseCacheHasNoSideEffects(t *testing.T) {
	cache := newTestCache()

	state := &types.CoinState{SpentHeight: u32(20)}
	cache.AddToStatesValidated(state)

	assert.False(t, CanUsePeerRequestCache(state, cache, types.KnownHeight(10)))
	// a refusal does not unmark the state
	assert.True(t, cache.InStatesValidated(state.Hash()))
	assert.True(t, CanUsePeerRequestCache(state, cache, types.KnownHeight(25)))
}
