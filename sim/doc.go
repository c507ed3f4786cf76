// Package sim provides the core discrete-event simulation engine for the
// secure fog network simulator.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - topology.go: the mutable labeled fog network graph and shortest paths
//   - event.go: the event types that drive the simulation (monitor firings,
//     message sends)
//   - simulator.go: the event loop, monitor scheduling, and app deployment
//
// # Architecture
//
// The simulator owns a deterministic event heap (event_heap.go) ordered by
// timestamp, with submission order breaking ties. Periodic processes are
// Monitor implementations (monitor.go): MobilityMonitor relocates mobile
// nodes between clusters and invalidates the routing cache (mobility.go),
// RekeyingMonitor generates fresh key material (rekeying.go). Message sends
// declared by an Application (application.go) are routed by the
// BroadcastRouter (router.go), which computes one shortest path per deployed
// destination instance against the current topology.
//
// Everything observable about a run lands in a trace.EventLog
// (sim/trace/), the sole output artifact, persisted as a JSON array.
//
// # Determinism
//
// All randomness flows through a PartitionedRNG (rng.go) seeded from a
// single master seed; two runs with the same seed and scenario produce
// identical event logs. The engine is single-goroutine: monitor invocations
// and router calls are callbacks dispatched by the event loop, each running
// to completion before the clock advances, so topology mutations need no
// locking.
package sim
