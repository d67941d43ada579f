package primitives

import "github.com/0xTylerHolmes/stategen/params"

// DivSlot returns the epoch containing the given slot.
func (s Slot) DivSlot() Epoch {
	return Epoch(uint64(s) / uint64(params.BeaconConfig().SlotsPerEpoch))
}

// EpochOf is an alias for s.DivSlot, matching the helpers.SlotToEpoch idiom
// used throughout core/helpers.
func EpochOf(s Slot) Epoch {
	return s.DivSlot()
}

// StartSlot returns the first slot of the given epoch.
func StartSlot(e Epoch) Slot {
	return Slot(uint64(e) * uint64(params.BeaconConfig().SlotsPerEpoch))
}

// IsEpochStart returns true if the given slot is the first slot of its epoch.
func IsEpochStart(s Slot) bool {
	return uint64(s)%uint64(params.BeaconConfig().SlotsPerEpoch) == 0
}

// SubEpoch returns e-n clamped at zero, the clamping needed when
// walking the Curr/Prev tiers of the dependant-root index near genesis.
func SubEpoch(e Epoch, n uint64) Epoch {
	if uint64(e) < n {
		return 0
	}
	return e - Epoch(n)
}
