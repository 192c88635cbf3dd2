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
	"errors"
	"fmt"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/ledgerwatch/log/v3"

	"github.com/lightpeer/walletsync/common"
	"github.com/lightpeer/walletsync/core/types"
)

const (
	blocksCacheLimit          = 100
	blockRequestsCacheLimit   = 100
	sesRequestsCacheLimit     = 100
	statesValidatedCacheLimit = 1000
	timestampsCacheLimit      = 1000
	blocksValidatedCacheLimit = 1000
	blockSignaturesCacheLimit = 1000
)

// ErrMalformedTransactionBlock is returned when a block claims transaction
// block content but carries no transaction foliage record.
var ErrMalformedTransactionBlock = errors.New("transaction block without transaction foliage")

// BlockRange is the inclusive [Start, End] height range of a header request.
type BlockRange struct {
	Start uint32
	End   uint32
}

// PeerRequestCache memoizes data fetched from, or validated against, a full
// node peer during wallet sync. It owns seven independently keyed LRU
// caches; their only coordination point is ClearAfterHeight, which applies
// one height cutoff to all of them when a reorg is detected.
//
// All methods are safe for concurrent use. A single lock covers the whole
// instance because ClearAfterHeight swaps every cache field and the swap
// must be observed atomically.
type PeerRequestCache struct {
	mu     sync.RWMutex
	logger log.Logger

	blocks                   *lru.Cache[uint32, *types.HeaderBlock]
	blockRequests            *lru.Cache[BlockRange, *BlockRangeRequest]
	sesRequests              *lru.Cache[uint32, *types.SubEpochData]
	statesValidated          *lru.Cache[common.Hash, types.HeightRef]
	timestamps               *lru.Cache[uint32, uint64]
	blocksValidated          *lru.Cache[common.Hash, uint32]
	blockSignaturesValidated *lru.Cache[common.Hash, uint32]
}

func NewPeerRequestCache(logger log.Logger) *PeerRequestCache {
	return &PeerRequestCache{
		logger:                   logger,
		blocks:                   mustNewCache[uint32, *types.HeaderBlock](blocksCacheLimit),
		blockRequests:            mustNewCache[BlockRange, *BlockRangeRequest](blockRequestsCacheLimit),
		sesRequests:              mustNewCache[uint32, *types.SubEpochData](sesRequestsCacheLimit),
		statesValidated:          mustNewCache[common.Hash, types.HeightRef](statesValidatedCacheLimit),
		timestamps:               mustNewCache[uint32, uint64](timestampsCacheLimit),
		blocksValidated:          mustNewCache[common.Hash, uint32](blocksValidatedCacheLimit),
		blockSignaturesValidated: mustNewCache[common.Hash, uint32](blockSignaturesCacheLimit),
	}
}

func mustNewCache[K comparable, V any](capacity int) *lru.Cache[K, V] {
	cache, err := lru.New[K, V](capacity)
	if err != nil {
		panic(fmt.Errorf("failed to create peer request LRU cache: %w", err))
	}
	return cache
}

// GetBlock returns the most recently seen header block at height, if any.
func (c *PeerRequestCache) GetBlock(height uint32) (*types.HeaderBlock, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	block, ok := c.blocks.Get(height)
	countLookup(ok)
	return block, ok
}

// AddToBlocks records a header block by height. For transaction blocks it
// also records the block timestamp, keeping the earliest observed timestamp
// for the height across duplicate deliveries.
func (c *PeerRequestCache) AddToBlocks(block *types.HeaderBlock) error {
	if block.IsTransactionBlock() && block.FoliageTransactionBlock == nil {
		return fmt.Errorf("%w: height %d", ErrMalformedTransactionBlock, block.Height())
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocks.Add(block.Height(), block)
	if block.IsTransactionBlock() {
		if _, ok := c.timestamps.Peek(block.Height()); !ok {
			c.timestamps.Add(block.Height(), block.FoliageTransactionBlock.Timestamp)
		}
	}
	return nil
}

// GetBlockRequest returns a shared handle to an in-flight or completed fetch
// of the [start, end] header range, if one is cached. Callers must await the
// handle instead of issuing a duplicate request.
func (c *PeerRequestCache) GetBlockRequest(start, end uint32) (*BlockRangeRequest, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	request, ok := c.blockRequests.Get(BlockRange{Start: start, End: end})
	countLookup(ok)
	return request, ok
}

// AddToBlockRequests publishes a fetch handle for the [start, end] range.
func (c *PeerRequestCache) AddToBlockRequests(start, end uint32, request *BlockRangeRequest) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blockRequests.Add(BlockRange{Start: start, End: end}, request)
}

// RemoveBlockRequest retires a handle, typically after its fetch failed, so
// later lookups do not await a poisoned result.
func (c *PeerRequestCache) RemoveBlockRequest(start, end uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blockRequests.Remove(BlockRange{Start: start, End: end})
}

// getOrAddBlockRequest installs request unless a handle for the range is
// already cached, in which case the cached one is returned. The second
// return value reports whether an existing handle was found.
func (c *PeerRequestCache) getOrAddBlockRequest(start, end uint32, request *BlockRangeRequest) (*BlockRangeRequest, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	key := BlockRange{Start: start, End: end}
	if existing, ok := c.blockRequests.Get(key); ok {
		countLookup(true)
		return existing, true
	}
	countLookup(false)
	c.blockRequests.Add(key, request)
	return request, false
}

// GetSESRequest returns the cached sub-epoch summary response for height.
func (c *PeerRequestCache) GetSESRequest(height uint32) (*types.SubEpochData, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ses, ok := c.sesRequests.Get(height)
	countLookup(ok)
	return ses, ok
}

func (c *PeerRequestCache) AddToSESRequests(height uint32, ses *types.SubEpochData) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sesRequests.Add(height, ses)
}

// InStatesValidated reports whether the coin state with the given hash has
// been validated before. A state recorded with an unknown height still
// counts as validated here; only ClearAfterHeight and the usability check
// treat it as suspect.
func (c *PeerRequestCache) InStatesValidated(coinStateHash common.Hash) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ok := c.statesValidated.Contains(coinStateHash)
	countLookup(ok)
	return ok
}

// AddToStatesValidated marks a coin state as validated, recording the height
// the state pertains to: spent height if present, else created height, else
// unknown.
func (c *PeerRequestCache) AddToStatesValidated(coinState *types.CoinState) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.statesValidated.Add(coinState.Hash(), coinState.ResolvedHeight())
}

// GetHeightTimestamp returns the first observed timestamp of the
// transaction block at height.
func (c *PeerRequestCache) GetHeightTimestamp(height uint32) (uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	timestamp, ok := c.timestamps.Get(height)
	countLookup(ok)
	return timestamp, ok
}

// InBlocksValidated reports whether the reward chain data with the given
// hash has been validated before.
func (c *PeerRequestCache) InBlocksValidated(rewardChainHash common.Hash) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ok := c.blocksValidated.Contains(rewardChainHash)
	countLookup(ok)
	return ok
}

func (c *PeerRequestCache) AddToBlocksValidated(rewardChainHash common.Hash, height uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blocksValidated.Add(rewardChainHash, height)
}

// InBlockSignaturesValidated reports whether a block with the same signature
// payload has been validated before. The lookup key is the signature
// fingerprint, not the block hash, so a block reassigned to a new height by
// a reorg is still recognized.
func (c *PeerRequestCache) InBlockSignaturesValidated(block *types.HeaderBlock) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	ok := c.blockSignaturesValidated.Contains(SignatureFingerprint(block))
	countLookup(ok)
	return ok
}

func (c *PeerRequestCache) AddToBlockSignaturesValidated(block *types.HeaderBlock) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.blockSignaturesValidated.Add(SignatureFingerprint(block), block.Height())
}

// Len returns the total number of entries across all cache domains.
func (c *PeerRequestCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lenLocked()
}

func (c *PeerRequestCache) lenLocked() int {
	return c.blocks.Len() +
		c.blockRequests.Len() +
		c.sesRequests.Len() +
		c.statesValidated.Len() +
		c.timestamps.Len() +
		c.blocksValidated.Len() +
		c.blockSignaturesValidated.Len()
}

// ClearAfterHeight discards every cached item which relates to an event that
// happened above the given height. Each domain cache is rebuilt into a fresh
// cache of the same capacity and swapped in; the swap is atomic with respect
// to all other methods. Entries whose height is unknown are dropped, since
// their validity is undetermined past a reorg. A range request is kept only
// if both endpoints are at or below the cutoff.
func (c *PeerRequestCache) ClearAfterHeight(height uint32) {
	c.mu.Lock()
	defer c.mu.Unlock()

	before := c.lenLocked()

	c.blocks = rebuildCache(c.blocks, blocksCacheLimit,
		func(h uint32, _ *types.HeaderBlock) bool {
			return h <= height
		})
	c.blockRequests = rebuildCache(c.blockRequests, blockRequestsCacheLimit,
		func(r BlockRange, _ *BlockRangeRequest) bool {
			return r.Start <= height && r.End <= height
		})
	c.sesRequests = rebuildCache(c.sesRequests, sesRequestsCacheLimit,
		func(h uint32, _ *types.SubEpochData) bool {
			return h <= height
		})
	c.statesValidated = rebuildCache(c.statesValidated, statesValidatedCacheLimit,
		func(_ common.Hash, ref types.HeightRef) bool {
			h, known := ref.Get()
			return known && h <= height
		})
	c.timestamps = rebuildCache(c.timestamps, timestampsCacheLimit,
		func(h uint32, _ uint64) bool {
			return h <= height
		})
	c.blocksValidated = rebuildCache(c.blocksValidated, blocksValidatedCacheLimit,
		func(_ common.Hash, h uint32) bool {
			return h <= height
		})
	c.blockSignaturesValidated = rebuildCache(c.blockSignaturesValidated, blockSignaturesCacheLimit,
		func(_ common.Hash, h uint32) bool {
			return h <= height
		})

	after := c.lenLocked()
	peerCacheTruncations.Inc()
	peerCacheEntries.SetInt(after)
	c.logger.Debug("peer request cache truncated", "height", height, "dropped", before-after, "kept", after)
}

// rebuildCache copies the entries of old that satisfy keep into a fresh
// cache with the given capacity. Iteration runs oldest to newest, so recency
// order happens to carry over; callers must not rely on that.
func rebuildCache[K comparable, V any](old *lru.Cache[K, V], capacity int, keep func(K, V) bool) *lru.Cache[K, V] {
	fresh := mustNewCache[K, V](capacity)
	for _, k := range old.Keys() {
		v, ok := old.Peek(k)
		if !ok {
			continue
		}
		if keep(k, v) {
			fresh.Add(k, v)
		}
	}
	return fresh
}

func countLookup(hit bool) {
	if hit {
		peerCacheHits.Inc()
	} else {
		peerCacheMisses.Inc()
	}
}
