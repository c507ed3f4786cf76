// Tracks run-wide counters for final reporting.

package sim

import "fmt"

// Metrics aggregates statistics about the simulation for final reporting.
type Metrics struct {
	MovesPerformed     int // mobility monitor moves executed
	AttackerFlags      int // moves classified as ATTACKER
	Rekeyings          int // rekeying rounds completed
	MessagesSent       int // broadcast sends initiated
	PathsComputed      int // per-instance paths resolved across all sends
	InstancesSkipped   int // unreachable destination instances omitted
	CacheInvalidations int // routing cache invalidations

	DeliveryLatency float64 // accumulated per-path delivery latency
}

// Print displays aggregated metrics at the end of the simulation.
func (m *Metrics) Print(horizon float64) {
	fmt.Println("=== Simulation Metrics ===")
	fmt.Printf("Horizon              : %.2f time units\n", horizon)
	fmt.Printf("Moves Performed      : %d\n", m.MovesPerformed)
	fmt.Printf("Attacker Flags       : %d\n", m.AttackerFlags)
	fmt.Printf("Rekeying Rounds      : %d\n", m.Rekeyings)
	fmt.Printf("Messages Sent        : %d\n", m.MessagesSent)
	fmt.Printf("Paths Computed       : %d\n", m.PathsComputed)
	fmt.Printf("Instances Skipped    : %d\n", m.InstancesSkipped)
	fmt.Printf("Cache Invalidations  : %d\n", m.CacheInvalidations)
	if m.PathsComputed > 0 {
		fmt.Printf("Avg Delivery Latency : %.2f time units\n", m.DeliveryLatency/float64(m.PathsComputed))
	}
}
