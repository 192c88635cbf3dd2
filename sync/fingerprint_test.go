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
	"github.com/stretchr/testify/require"

	"github.com/lightpeer/walletsync/common"
	"github.com/lightpeer/walletsync/core/types"
)

// newSignedBlock builds a block at the given height with a fixed signature
// payload, independent of the height.
func newSignedBlock(height uint32) *types.HeaderBlock {
	block := &types.HeaderBlock{
		RewardChainBlock: types.RewardChainBlock{Height: height},
		Foliage: types.Foliage{
			BlockData: types.FoliageBlockData{
				UnfinishedRewardBlockHash: common.HashData([]byte("unfinished")),
				FarmerRewardPuzzleHash:    common.HashData([]byte("farmer")),
			},
		},
	}
	copy(block.RewardChainBlock.ProofOfSpace.PlotPublicKey[:], []byte("plot public key"))
	copy(block.Foliage.BlockDataSignature[:], []byte("block data signature"))
	return block
}

func TestFingerprintDeterministicAcrossHeights(t *testing.T) {
	a := newSignedBlock(100)
	b := newSignedBlock(200)

	assert.Equal(t, SignatureFingerprint(a), SignatureFingerprint(b))
}

func TestFingerprintSensitiveToPayload(t *testing.T) {
	a := newSignedBlock(100)
	b := newSignedBlock(100)
	b.Foliage.BlockDataSignature[0] ^= 0x01

	assert.NotEqual(t, SignatureFingerprint(a), SignatureFingerprint(b))

	c := newSignedBlock(100)
	c.RewardChainBlock.ProofOfSpace.PlotPublicKey[0] ^= 0x01
	assert.NotEqual(t, SignatureFingerprint(a), SignatureFingerprint(c))
}

func TestFingerprintPoolSignaturePresence(t *testing.T) {
	a := newSignedBlock(100)
	b := newSignedBlock(100)
	b.Foliage.BlockData.PoolSignature = new([types.SignatureLength]byte)

	// an absent pool signature must not collide with an all-zero one
	assert.NotEqual(t, SignatureFingerprint(a), SignatureFingerprint(b))
}

func TestSignatureValidationSurvivesHeightReassignment(t *testing.T) {
	cache := newTestCache()

	original := newSignedBlock(100)
	require.False(t, cache.InBlockSignaturesValidated(original))
	cache.AddToBlockSignaturesValidated(original)

	// same signature payload, reassigned height after a reorg
	reassigned := newSignedBlock(99)
	assert.True(t, cache.InBlockSignaturesValidated(reassigned))
}
