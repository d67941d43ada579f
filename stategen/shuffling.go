package stategen

import (
	"context"

	"github.com/0xTylerHolmes/stategen/cache"
	"github.com/0xTylerHolmes/stategen/forkchoice"
	"github.com/0xTylerHolmes/stategen/primitives"
)

// GetProposerShuffling resolves the dependant root for the block's
// epoch, then checks head, then the Next tier of the Dependant-Root
// Index, then falls back to the persistent reader.
func (s *Service) GetProposerShuffling(ctx context.Context, parentBlock forkchoice.BlockSummary, blockSlot primitives.Slot) ([]primitives.ValidatorIndex, error) {
	epoch := blockSlot.DivSlot()
	dependantRoot, err := s.resolver.At(ctx, parentBlock, epoch)
	if err != nil {
		return nil, err
	}

	if head, ok := s.head.GetHeadSummary(); ok && head.epoch == epoch && head.dependantRootNext == dependantRoot {
		if hs := s.head.GetHeadState(); hs != nil {
			return hs.Proposers(), nil
		}
	}

	if st, ok := s.dependantIndex.Probe(cache.Next, epoch, dependantRoot); ok {
		return st.Proposers(), nil
	}

	st, err := s.persistent.ReadCheckpointState(ctx, epoch, dependantRoot)
	if err != nil {
		return nil, &PersistentError{Inner: err}
	}
	return st.Proposers(), nil
}

// GetAttesterShuffling checks head three ways and then the Next tier at
// three different (epoch, shuffling-field) combinations before falling
// back to the persistent reader.
func (s *Service) GetAttesterShuffling(ctx context.Context, targetBlock forkchoice.BlockSummary, target primitives.Checkpoint) ([]primitives.ValidatorIndex, error) {
	epoch := target.Epoch
	epochNext := primitives.SubEpoch(epoch, 1)
	epochPrev := epoch + 1

	dependantRoot, err := s.resolver.At(ctx, targetBlock, epochNext)
	if err != nil {
		return nil, err
	}

	if head, ok := s.head.GetHeadSummary(); ok {
		if hs := s.head.GetHeadState(); hs != nil {
			switch {
			case head.epoch == epoch && head.dependantRootCurr == dependantRoot:
				return hs.CurrentShuffling(), nil
			case head.epoch == epochNext && head.dependantRootNext == dependantRoot:
				return hs.NextShuffling(), nil
			case head.epoch == epochPrev && head.dependantRootPrev == dependantRoot:
				return hs.PreviousShuffling(), nil
			}
		}
	}

	if st, ok := s.dependantIndex.Probe(cache.Next, epoch, dependantRoot); ok {
		return st.CurrentShuffling(), nil
	}
	if st, ok := s.dependantIndex.Probe(cache.Next, epochNext, dependantRoot); ok {
		return st.NextShuffling(), nil
	}
	if st, ok := s.dependantIndex.Probe(cache.Next, epochPrev, dependantRoot); ok {
		return st.PreviousShuffling(), nil
	}

	st, err := s.persistent.ReadCheckpointState(ctx, epochNext, dependantRoot)
	if err != nil {
		return nil, &PersistentError{Inner: err}
	}
	return st.NextShuffling(), nil
}
