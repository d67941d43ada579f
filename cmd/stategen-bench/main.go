// Command stategen-bench drives the state regeneration core against an
// in-memory fork-choice fixture, for manual exploration of cache
// behavior and queue backpressure outside of unit tests.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"

	"github.com/0xTylerHolmes/stategen/dbreader"
	"github.com/0xTylerHolmes/stategen/forkchoice"
	"github.com/0xTylerHolmes/stategen/primitives"
	"github.com/0xTylerHolmes/stategen/state"
	"github.com/0xTylerHolmes/stategen/stategen"
	"github.com/0xTylerHolmes/stategen/statetransition"
)

func main() {
	app := &cli.App{
		Name:  "stategen-bench",
		Usage: "exercise the state regeneration core against a synthetic chain",
		Commands: []*cli.Command{
			chainCommand(),
			headCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		logrus.WithError(err).Fatal("stategen-bench failed")
	}
}

// chainFixture builds a simple linear chain of count blocks, one per
// slot, wires a Service on top of it, and registers every block's
// post-state as an AddPostState producer so regen jobs can walk the
// chain without needing every intermediate state pre-cached. The
// transition engine's Transform keeps each advanced state's root equal
// to the block that produced it, matching the synthetic chain's
// one-root-per-slot layout.
func chainFixture(count int) (*stategen.Service, *forkchoice.MockForkChoice, []forkchoice.BlockSummary) {
	fc := forkchoice.NewMockForkChoice()
	persistent := dbreader.NewMockReader()
	transition := &statetransition.MockEngine{
		Transform: func(pre state.BeaconState, targetSlot primitives.Slot, block *statetransition.Block) state.BeaconState {
			ms, ok := pre.(*state.MockState)
			if !ok {
				return pre
			}
			cp := *ms
			cp.SlotVal = targetSlot
			if block != nil {
				cp.StateRootVal = block.BlockRoot
			}
			return &cp
		},
	}

	blocks := make([]forkchoice.BlockSummary, 0, count)
	var parentRoot primitives.Root
	for i := 0; i < count; i++ {
		root := rootForSlot(i)
		b := forkchoice.BlockSummary{
			BlockRoot:  root,
			ParentRoot: parentRoot,
			StateRoot:  root,
			Slot:       primitives.Slot(i),
			TargetRoot: root,
		}
		fc.InsertBlock(b)
		blocks = append(blocks, b)
		parentRoot = root
	}
	fc.SetFinalizedCheckpoint(primitives.Checkpoint{Epoch: 0, Root: blocks[0].BlockRoot})

	svc := stategen.New(fc, persistent, transition)
	svc.Start(context.Background())

	// Genesis has no parent fork choice knows about, so its state must
	// already be materialized in the State Cache; every later block's
	// state is only registered as a producer backpointer, simulating
	// states that have since been evicted from the hot cache.
	genesis := blocks[0]
	genesisState := &state.MockState{SlotVal: genesis.Slot, StateRootVal: genesis.StateRoot}
	svc.SaveState(context.Background(), genesisState)
	_ = svc.AddPostState(context.Background(), genesisState, genesis)
	for _, b := range blocks[1:] {
		st := &state.MockState{SlotVal: b.Slot, StateRootVal: b.StateRoot}
		_ = svc.AddPostState(context.Background(), st, b)
	}

	return svc, fc, blocks
}

func rootForSlot(slot int) primitives.Root {
	var r primitives.Root
	r[0] = byte(slot)
	r[1] = byte(slot >> 8)
	return r
}

func chainCommand() *cli.Command {
	return &cli.Command{
		Name:  "chain",
		Usage: "build a synthetic chain and fetch a sequence of states",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "blocks", Value: 16},
		},
		Action: func(c *cli.Context) error {
			n := c.Int("blocks")
			svc, _, blocks := chainFixture(n)
			defer svc.Cancel()

			for _, b := range blocks[1:] {
				start := time.Now()
				st, err := svc.GetBlockSlotState(context.Background(), b.BlockRoot, b.Slot, "bench")
				if err != nil {
					return fmt.Errorf("slot %d: %w", b.Slot, err)
				}
				fmt.Printf("slot=%d got-slot=%d took=%s\n", b.Slot, st.Slot(), time.Since(start))
			}
			return nil
		},
	}
}

func headCommand() *cli.Command {
	return &cli.Command{
		Name:  "head",
		Usage: "set the chain head and read its state back synchronously",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "blocks", Value: 8},
		},
		Action: func(c *cli.Context) error {
			n := c.Int("blocks")
			svc, _, blocks := chainFixture(n)
			defer svc.Cancel()

			head := blocks[len(blocks)-1]
			candidate := &state.MockState{SlotVal: head.Slot, StateRootVal: head.StateRoot}
			if err := svc.SetHead(context.Background(), head, candidate); err != nil {
				return fmt.Errorf("set_head: %w", err)
			}

			st := svc.GetHeadState()
			if st == nil {
				return fmt.Errorf("head state unavailable immediately after set_head")
			}
			fmt.Printf("head slot=%d\n", st.Slot())
			return nil
		},
	}
}
