package stategen

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/0xTylerHolmes/stategen/forkchoice"
	"github.com/0xTylerHolmes/stategen/primitives"
)

func TestResolverAtSkipsWholeEpochsViaTargetRoot(t *testing.T) {
	fc := forkchoice.NewMockForkChoice()

	g := primitives.Root{'G'}
	a := primitives.Root{'A'}
	b := primitives.Root{'B'}
	c := primitives.Root{'C'}

	genesis := forkchoice.BlockSummary{BlockRoot: g, ParentRoot: primitives.ZeroRoot, Slot: 0, TargetRoot: g}
	blockA := forkchoice.BlockSummary{BlockRoot: a, ParentRoot: g, Slot: 5, TargetRoot: a}
	blockB := forkchoice.BlockSummary{BlockRoot: b, ParentRoot: a, Slot: 40, TargetRoot: a}
	blockC := forkchoice.BlockSummary{BlockRoot: c, ParentRoot: b, Slot: 45, TargetRoot: b}

	fc.InsertBlock(genesis)
	fc.InsertBlock(blockA)
	fc.InsertBlock(blockB)
	fc.InsertBlock(blockC)
	fc.SetFinalizedCheckpoint(primitives.Checkpoint{Epoch: 0, Root: g})

	r := NewDependantRootResolver(fc)
	got, err := r.At(context.Background(), blockC, 1)
	require.NoError(t, err)
	require.Equal(t, a, got)
}

func TestResolverAtEpochZeroReturnsFinalizedRoot(t *testing.T) {
	fc := forkchoice.NewMockForkChoice()
	g := primitives.Root{'G'}
	fc.SetFinalizedCheckpoint(primitives.Checkpoint{Epoch: 0, Root: g})

	r := NewDependantRootResolver(fc)
	got, err := r.At(context.Background(), forkchoice.BlockSummary{BlockRoot: g}, 0)
	require.NoError(t, err)
	require.Equal(t, g, got)
}

func TestResolverAtEpochZeroFailsWhenFinalizedPastZero(t *testing.T) {
	fc := forkchoice.NewMockForkChoice()
	fc.SetFinalizedCheckpoint(primitives.Checkpoint{Epoch: 3, Root: primitives.Root{'F'}})

	r := NewDependantRootResolver(fc)
	_, err := r.At(context.Background(), forkchoice.BlockSummary{}, 0)
	require.Error(t, err)
	var target *BeforeFinalizedError
	require.ErrorAs(t, err, &target)
}

func TestResolverAtUnresolvableWhenAncestryRunsOut(t *testing.T) {
	fc := forkchoice.NewMockForkChoice()
	orphan := forkchoice.BlockSummary{BlockRoot: primitives.Root{'O'}, ParentRoot: primitives.Root{'X'}, Slot: 100, TargetRoot: primitives.Root{'X'}}
	fc.InsertBlock(orphan)
	fc.SetFinalizedCheckpoint(primitives.Checkpoint{Epoch: 0, Root: primitives.Root{'G'}})

	r := NewDependantRootResolver(fc)
	_, err := r.At(context.Background(), orphan, 1)
	require.Error(t, err)
	var target *UnresolvableError
	require.ErrorAs(t, err, &target)
}
