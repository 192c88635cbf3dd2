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
	"github.com/lightpeer/walletsync/core/types"
)

// CanUsePeerRequestCache decides whether a previously recorded validation
// result for coinState may be trusted without re-verification. forkHeight is
// the highest height the old and new chain views agree on, or unknown when
// no fork is suspected.
func CanUsePeerRequestCache(coinState *types.CoinState, cache *PeerRequestCache, forkHeight types.HeightRef) bool {
	if !cache.InStatesValidated(coinState.Hash()) {
		return false
	}
	fork, suspected := forkHeight.Get()
	if !suspected {
		return true
	}
	if coinState.CreatedHeight == nil && coinState.SpentHeight == nil {
		// a reorg is rolling this state back
		return false
	}
	if coinState.CreatedHeight != nil && *coinState.CreatedHeight > fork {
		return false
	}
	if coinState.SpentHeight != nil && *coinState.SpentHeight > fork {
		return false
	}
	return true
}
