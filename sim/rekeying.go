package sim

import (
	"crypto/sha256"
	"encoding/hex"
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/fogsim/fogsim/sim/trace"
)

const (
	seedLength   = 8
	keyHexLength = 8
	seedAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// GenerateSeed returns a random alphanumeric seed of the fixed length.
func GenerateSeed(rng *rand.Rand) string {
	buf := make([]byte, seedLength)
	for i := range buf {
		buf[i] = seedAlphabet[rng.Intn(len(seedAlphabet))]
	}
	return string(buf)
}

// DeriveKey derives a short key from a seed: the first 8 hex characters of
// its SHA-256 digest. A placeholder security signal, not a cryptographic
// guarantee — the key never encrypts any payload in this simulation.
func DeriveKey(seed string) string {
	sum := sha256.Sum256([]byte(seed))
	return hex.EncodeToString(sum[:])[:keyHexLength]
}

// RekeyingMonitor periodically generates fresh key material for the area.
// Each invocation draws a seed, derives a key, and appends a REKEY record;
// it never touches the topology.
type RekeyingMonitor struct {
	// seedFn produces the next seed. Replaceable in tests to pin outcomes.
	seedFn func(rng *rand.Rand) string
}

// NewRekeyingMonitor creates a rekeying monitor using random seed generation.
func NewRekeyingMonitor() *RekeyingMonitor {
	return &RekeyingMonitor{seedFn: GenerateSeed}
}

// NewRekeyingMonitorWithSeeds creates a rekeying monitor that consumes the
// given seeds in order, then falls back to random generation.
func NewRekeyingMonitorWithSeeds(seeds ...string) *RekeyingMonitor {
	queue := append([]string(nil), seeds...)
	return &RekeyingMonitor{
		seedFn: func(rng *rand.Rand) string {
			if len(queue) == 0 {
				return GenerateSeed(rng)
			}
			next := queue[0]
			queue = queue[1:]
			return next
		},
	}
}

func (m *RekeyingMonitor) Name() string { return "RekeyingMonitor" }

// Invoke performs one rekeying round.
func (m *RekeyingMonitor) Invoke(sim *Simulator, now float64) {
	seed := m.seedFn(sim.RNG.ForSubsystem(SubsystemRekeying))
	key := DeriveKey(seed)

	sim.EventLog.Append(trace.NewRekeyRecord(now, seed, key))
	sim.Metrics.Rekeyings++

	logrus.Infof("[tick %.2f] rekeying: new seed %s -> key %s", now, seed, key)
}
