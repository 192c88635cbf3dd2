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
	"github.com/lightpeer/walletsync/common"
	"github.com/lightpeer/walletsync/core/types"
)

// SignatureFingerprint derives the dedup key for a block's foliage
// signature: the digest of the plot public key, the foliage block data and
// its signature, concatenated in that order. The fingerprint does not
// depend on the block's height, so a block whose height changes after a
// reorg keeps its fingerprint as long as the signature payload is
// unchanged.
func SignatureFingerprint(block *types.HeaderBlock) common.Hash {
	return common.HashData(
		block.RewardChainBlock.ProofOfSpace.PlotPublicKey[:],
		block.Foliage.BlockData.Bytes(),
		block.Foliage.BlockDataSignature[:],
	)
}
