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
	"context"
	"sync"

	"github.com/ledgerwatch/log/v3"
	"golang.org/x/sync/errgroup"

	"github.com/lightpeer/walletsync/core/types"
)

// BlockRangeRequest is a shared handle to a pending or completed fetch of a
// header block range. The creator of the handle drives it to completion;
// everyone else waits on it. The peer request cache stores these handles but
// never completes, cancels or inspects them.
type BlockRangeRequest struct {
	rng  BlockRange
	done chan struct{}
	once sync.Once

	blocks []*types.HeaderBlock
	err    error
}

func NewBlockRangeRequest(start, end uint32) *BlockRangeRequest {
	return &BlockRangeRequest{
		rng:  BlockRange{Start: start, End: end},
		done: make(chan struct{}),
	}
}

func (r *BlockRangeRequest) Range() BlockRange {
	return r.rng
}

// Complete finishes the request with either the fetched blocks or an error.
// Only the first call has an effect.
func (r *BlockRangeRequest) Complete(blocks []*types.HeaderBlock, err error) {
	r.once.Do(func() {
		r.blocks = blocks
		r.err = err
		close(r.done)
	})
}

// Done reports whether the request has completed, without blocking.
func (r *BlockRangeRequest) Done() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Wait blocks until the request completes or ctx is cancelled, and returns
// the fetched blocks or the completion error.
func (r *BlockRangeRequest) Wait(ctx context.Context) ([]*types.HeaderBlock, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-r.done:
		return r.blocks, r.err
	}
}

// HeaderRangeFetcher fetches the header blocks in the inclusive
// [start, end] height range from a peer.
type HeaderRangeFetcher func(ctx context.Context, start, end uint32) ([]*types.HeaderBlock, error)

// FetchHeaderRanges resolves the given ranges through the peer request
// cache: a range with a cached handle reuses it, every other range gets a
// fresh handle registered in the cache and fetched concurrently. The result
// concatenates the blocks of all ranges in argument order.
//
// A failed fetch completes its handle with the error and removes it from
// the cache so that later callers retry instead of awaiting a poisoned
// result.
func FetchHeaderRanges(
	ctx context.Context,
	logger log.Logger,
	cache *PeerRequestCache,
	ranges []BlockRange,
	fetch HeaderRangeFetcher,
) ([]*types.HeaderBlock, error) {
	requests := make([]*BlockRangeRequest, len(ranges))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, rng := range ranges {
		request, existed := cache.getOrAddBlockRequest(rng.Start, rng.End, NewBlockRangeRequest(rng.Start, rng.End))
		requests[i] = request
		if existed {
			logger.Debug("reusing cached header range request", "start", rng.Start, "end", rng.End)
			continue
		}

		rng := rng
		eg.Go(func() error {
			blocks, err := fetch(egCtx, rng.Start, rng.End)
			if err != nil {
				cache.RemoveBlockRequest(rng.Start, rng.End)
				request.Complete(nil, err)
				return err
			}
			request.Complete(blocks, nil)
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var out []*types.HeaderBlock
	for _, request := range requests {
		blocks, err := request.Wait(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, blocks...)
	}
	return out, nil
}
