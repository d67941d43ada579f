package stategen

import (
	"context"

	"github.com/0xTylerHolmes/stategen/forkchoice"
	"github.com/0xTylerHolmes/stategen/primitives"
)

// DependantRootResolver walks fork-choice ancestors to compute the
// dependant root for a (block, epoch) pair. It is the one piece of this
// core that touches the fork-choice DAG directly.
type DependantRootResolver struct {
	fc forkchoice.ForkChoice
}

// NewDependantRootResolver returns a resolver backed by fc.
func NewDependantRootResolver(fc forkchoice.ForkChoice) *DependantRootResolver {
	return &DependantRootResolver{fc: fc}
}

// At computes dependant_root_at_epoch(fromBlock, epoch): the root of the
// last block with slot < first_slot_of_epoch(epoch) on fromBlock's
// ancestor chain. The target_root jump pointer on each block summary
// lets the walk skip an entire epoch of intervening blocks per hop,
// giving O(epochs-back) behavior instead of O(slots-back).
func (r *DependantRootResolver) At(ctx context.Context, fromBlock forkchoice.BlockSummary, epoch primitives.Epoch) (primitives.Root, error) {
	targetSlot := primitives.StartSlot(epoch)

	if epoch == 0 {
		finalized := r.fc.GetFinalizedCheckpoint(ctx)
		if finalized.Epoch == 0 {
			return finalized.Root, nil
		}
		return primitives.ZeroRoot, &BeforeFinalizedError{Epoch: epoch}
	}

	finalized := r.fc.GetFinalizedCheckpoint(ctx)
	block := fromBlock
	for {
		if ctx.Err() != nil {
			return primitives.ZeroRoot, ctx.Err()
		}

		if block.Slot == targetSlot {
			return block.ParentRoot, nil
		}
		if block.Slot < targetSlot {
			return block.BlockRoot, nil
		}

		var nextRoot primitives.Root
		if block.BlockRoot == block.TargetRoot {
			nextRoot = block.ParentRoot
		} else {
			nextRoot = block.TargetRoot
		}

		next, ok := r.fc.GetBlock(ctx, nextRoot)
		if !ok {
			if block.Epoch() < finalized.Epoch {
				return primitives.ZeroRoot, &BeforeFinalizedError{Epoch: epoch}
			}
			return primitives.ZeroRoot, &UnresolvableError{Block: fromBlock.BlockRoot, Slot: targetSlot}
		}
		block = next
	}
}
