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
	"github.com/lightpeer/walletsync/metrics"
)

var (
	peerCacheHits        = metrics.NewCounter(`walletsync_peer_cache_hits`)
	peerCacheMisses      = metrics.NewCounter(`walletsync_peer_cache_misses`)
	peerCacheTruncations = metrics.NewCounter(`walletsync_peer_cache_truncations`)
	peerCacheEntries     = metrics.NewGauge(`walletsync_peer_cache_entries`)
)
