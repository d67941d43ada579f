// Package params defines the tunables the state regeneration core needs:
// epoch length, queue capacity, and the dependant-root index GC horizon.
package params

// BeaconChainConfig contains constants that are essential to the state
// regeneration core. Only the fields this core reads are carried here;
// a host binary wiring in the real chain config would embed this as a
// subset.
type BeaconChainConfig struct {
	// SlotsPerEpoch is the number of slots in one epoch.
	SlotsPerEpoch uint64
	// MaxQueue is the maximum number of regen jobs pending + in-flight.
	MaxQueue int
	// GCHorizon is how many epochs behind finalization the
	// dependant-root index keeps entries for before pruning them.
	GCHorizon uint64
}

var mainnetConfig = &BeaconChainConfig{
	SlotsPerEpoch: 32,
	MaxQueue:      256,
	GCHorizon:     4,
}

var beaconConfig = mainnetConfig

// BeaconConfig returns the config to be used by the state regeneration core.
func BeaconConfig() *BeaconChainConfig {
	return beaconConfig
}

// OverrideBeaconConfig sets the global config to the given config pointer
// itself; later changes to c are visible through BeaconConfig.
// Used by tests that need a non-default SlotsPerEpoch or MaxQueue.
func OverrideBeaconConfig(c *BeaconChainConfig) {
	beaconConfig = c
}

// UseMainnetConfig restores the default mainnet-shaped configuration.
func UseMainnetConfig() {
	beaconConfig = mainnetConfig
}
