package sim

import "math/rand"

// Monitor is a periodic process invoked by the event loop on a configured
// schedule. Invoke runs to completion before the clock advances, so a
// monitor may read and mutate simulation state without locking.
type Monitor interface {
	// Name identifies the monitor in logs.
	Name() string
	// Invoke performs one monitoring step at simulated time now.
	Invoke(sim *Simulator, now float64)
}

// Distribution generates the interval until a monitor's next firing.
type Distribution interface {
	// NextInterval returns a positive interval in simulated time units.
	NextInterval(rng *rand.Rand) float64
}

// DeterministicDistribution fires at a fixed period.
type DeterministicDistribution struct {
	Period float64
}

func (d DeterministicDistribution) NextInterval(_ *rand.Rand) float64 {
	return d.Period
}

// UniformDistribution fires at intervals drawn uniformly from [Min, Max].
type UniformDistribution struct {
	Min float64
	Max float64
}

func (d UniformDistribution) NextInterval(rng *rand.Rand) float64 {
	return d.Min + rng.Float64()*(d.Max-d.Min)
}
