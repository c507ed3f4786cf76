package sim

import (
	"hash/fnv"
	"math/rand"
)

// Subsystem names for partitioned RNG streams.
const (
	// SubsystemMobility drives mobile node and target cluster selection.
	SubsystemMobility = "mobility"
	// SubsystemRekeying drives seed generation for rekeying rounds.
	SubsystemRekeying = "rekeying"
	// SubsystemPlacement drives initial mobile node attachment.
	SubsystemPlacement = "placement"
)

// PartitionedRNG provides deterministic, isolated RNG streams per subsystem.
// Each subsystem's stream is derived as masterSeed XOR fnv1a64(name), so
// draws in one subsystem never perturb another and derivation is
// order-independent. Two simulations with the same master seed and identical
// configuration produce identical results.
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type PartitionedRNG struct {
	masterSeed int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a master seed.
func NewPartitionedRNG(masterSeed int64) *PartitionedRNG {
	return &PartitionedRNG{
		masterSeed: masterSeed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the deterministically-seeded RNG for the named
// subsystem, creating it lazily. The same name always returns the same
// *rand.Rand instance. Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(p.masterSeed ^ fnv1a64(name)))
	p.subsystems[name] = rng
	return rng
}

// MasterSeed returns the seed this PartitionedRNG was created with.
func (p *PartitionedRNG) MasterSeed() int64 {
	return p.masterSeed
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}
