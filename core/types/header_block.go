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

const (
	// PublicKeyLength is the length of a G1 public key in bytes.
	PublicKeyLength = 48
	// SignatureLength is the length of a G2 signature in bytes.
	SignatureLength = 96
)

// ProofOfSpace identifies the plot that won a block.
type ProofOfSpace struct {
	Challenge     common.Hash
	PoolPublicKey *[PublicKeyLength]byte
	PlotPublicKey [PublicKeyLength]byte
	Size          uint8
	Proof         []byte
}

// RewardChainBlock is the reward chain portion of a header block.
type RewardChainBlock struct {
	Height       uint32
	Weight       uint64
	TotalIters   uint64
	ProofOfSpace ProofOfSpace
	Signature    [SignatureLength]byte
}

// Hash returns the reward chain identifier digest for this block.
func (b *RewardChainBlock) Hash() common.Hash {
	var meta [20]byte
	binary.BigEndian.PutUint32(meta[0:4], b.Height)
	binary.BigEndian.PutUint64(meta[4:12], b.Weight)
	binary.BigEndian.PutUint64(meta[12:20], b.TotalIters)
	return common.HashData(
		meta[:],
		b.ProofOfSpace.Challenge.Bytes(),
		b.ProofOfSpace.PlotPublicKey[:],
		b.Signature[:],
	)
}

// PoolTarget is the pool payout target committed to by the farmer.
type PoolTarget struct {
	PuzzleHash common.Hash
	MaxHeight  uint32
}

// FoliageBlockData is the farmer-signed portion of the foliage.
type FoliageBlockData struct {
	UnfinishedRewardBlockHash common.Hash
	PoolTarget                PoolTarget
	PoolSignature             *[SignatureLength]byte
	FarmerRewardPuzzleHash    common.Hash
	ExtensionData             common.Hash
}

// Bytes returns the fixed-order serialization of the block data, used as a
// signature fingerprint input. Optional fields are prefixed with a presence
// byte.
func (d *FoliageBlockData) Bytes() []byte {
	buf := make([]byte, 0, 4*common.HashLength+4+1+SignatureLength+1)
	buf = append(buf, d.UnfinishedRewardBlockHash.Bytes()...)
	buf = append(buf, d.PoolTarget.PuzzleHash.Bytes()...)
	buf = binary.BigEndian.AppendUint32(buf, d.PoolTarget.MaxHeight)
	if d.PoolSignature != nil {
		buf = append(buf, 1)
		buf = append(buf, d.PoolSignature[:]...)
	} else {
		buf = append(buf, 0)
	}
	buf = append(buf, d.FarmerRewardPuzzleHash.Bytes()...)
	buf = append(buf, d.ExtensionData.Bytes()...)
	return buf
}

// Foliage links a reward chain block to its farmed metadata. A block is a
// transaction block iff FoliageTransactionBlockHash is set.
type Foliage struct {
	PrevBlockHash               common.Hash
	RewardBlockHash             common.Hash
	BlockData                   FoliageBlockData
	BlockDataSignature          [SignatureLength]byte
	FoliageTransactionBlockHash *common.Hash
}

// FoliageTransactionBlock carries the transaction-block-only fields.
type FoliageTransactionBlock struct {
	PrevTransactionBlockHash common.Hash
	Timestamp                uint64
	FilterHash               common.Hash
	AdditionsRoot            common.Hash
	RemovalsRoot             common.Hash
}

// HeaderBlock is a block header as served to light clients: full reward
// chain data plus foliage, without the transaction generator.
type HeaderBlock struct {
	RewardChainBlock        RewardChainBlock
	Foliage                 Foliage
	FoliageTransactionBlock *FoliageTransactionBlock
}

func (hb *HeaderBlock) Height() uint32 {
	return hb.RewardChainBlock.Height
}

// IsTransactionBlock reports whether the foliage claims transaction block
// content. The claim is independent of FoliageTransactionBlock being
// populated; callers validating a block must check both.
func (hb *HeaderBlock) IsTransactionBlock() bool {
	return hb.Foliage.FoliageTransactionBlockHash != nil
}

// SubEpochData is a peer's response to a sub-epoch summary request: the
// reward chain hash of the sub-epoch boundary and the heights it covers.
type SubEpochData struct {
	RewardChainHash common.Hash
	Heights         []uint32
}
