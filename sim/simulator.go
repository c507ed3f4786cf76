package sim

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/fogsim/fogsim/sim/trace"
)

// Simulator owns the simulated clock, the event queue, the topology, and the
// event log. Monitors and the router receive references and run as callbacks
// dispatched strictly in time order; each callback runs to completion before
// the clock advances, so the mutable state they share needs no locking.
type Simulator struct {
	RunID   string
	Clock   float64
	Horizon float64

	Topology   *Topology
	Router     *BroadcastRouter
	Classifier *AnomalyClassifier
	EventLog   *trace.EventLog
	Metrics    *Metrics
	RNG        *PartitionedRNG

	EventQueue  *EventHeap
	nextEventID uint64
}

// NewSimulator creates a simulator over the given topology with a fixed
// horizon and master seed.
func NewSimulator(topo *Topology, horizon float64, seed int64) *Simulator {
	return &Simulator{
		RunID:      uuid.NewString(),
		Horizon:    horizon,
		Topology:   topo,
		Router:     NewBroadcastRouter(topo),
		Classifier: NewAnomalyClassifier(),
		EventLog:   trace.NewEventLog(),
		Metrics:    &Metrics{},
		RNG:        NewPartitionedRNG(seed),
		EventQueue: NewEventHeap(),
	}
}

// newBaseEvent allocates the next event sequence number, used to break
// same-timestamp ties in submission order.
func (sim *Simulator) newBaseEvent(time float64) BaseEvent {
	sim.nextEventID++
	return BaseEvent{time: time, eventID: sim.nextEventID}
}

// Schedule adds an event to the event queue.
func (sim *Simulator) Schedule(ev Event) {
	sim.EventQueue.Schedule(ev)
}

// PlaceMobile attaches a mobile node to its starting cluster and records the
// INITIAL position for the replay consumer. Called during setup, before Run.
func (sim *Simulator) PlaceMobile(nodeID, clusterID string) error {
	node := sim.Topology.Node(nodeID)
	if node == nil {
		return fmt.Errorf("place mobile %s: %w", nodeID, ErrNodeNotFound)
	}
	if node.Kind != KindMobile {
		return fmt.Errorf("place mobile %s: node is %s, not MOBILE", nodeID, node.Kind)
	}
	if err := sim.Topology.AddEdge(nodeID, clusterID, attachmentLink); err != nil {
		return err
	}
	sim.EventLog.Append(trace.NewInitialRecord(sim.Clock, nodeID, clusterID))
	return nil
}

// DeployMonitor registers a periodic monitor, scheduling its first firing
// one interval after the current clock.
func (sim *Simulator) DeployMonitor(m Monitor, d Distribution) {
	first := sim.Clock + d.NextInterval(sim.RNG.ForSubsystem(m.Name()))
	sim.Schedule(&MonitorEvent{
		BaseEvent:    sim.newBaseEvent(first),
		Monitor:      m,
		Distribution: d,
	})
	logrus.Infof("deployed monitor %s, first firing at %.2f", m.Name(), first)
}

// DeployApp validates an application's placement against the topology and
// schedules the first send for every declared source, one per source module
// instance. Placement onto a missing node is a setup invariant breach.
func (sim *Simulator) DeployApp(app *Application, placement *Placement) error {
	for module, nodes := range placement.Allocations {
		for _, nodeID := range nodes {
			if !sim.Topology.HasNode(nodeID) {
				return fmt.Errorf("deploy app %s: module %s placed on %s: %w",
					app.Name, module, nodeID, ErrNodeNotFound)
			}
		}
	}

	for _, src := range app.Sources {
		for _, nodeID := range placement.InstancesOf(src.Message.Src) {
			first := sim.Clock + src.Distribution.NextInterval(sim.RNG.ForSubsystem(src.Message.Name))
			sim.Schedule(&MessageSendEvent{
				BaseEvent:    sim.newBaseEvent(first),
				App:          app,
				Placement:    placement,
				Source:       src,
				SourceNodeID: nodeID,
			})
		}
	}
	logrus.Infof("deployed app %s with modules %v", app.Name, app.Modules)
	return nil
}

// Run executes events in timestamp order until the queue drains or an event
// past the horizon comes up. The clock never moves backwards; a regression
// means the event heap's ordering contract broke.
func (sim *Simulator) Run() {
	logrus.Infof("run %s: starting simulation, horizon=%.2f, seed=%d", sim.RunID, sim.Horizon, sim.RNG.MasterSeed())
	for sim.EventQueue.Len() > 0 {
		ev := sim.EventQueue.PopNext()
		if ev.Timestamp() > sim.Horizon {
			break
		}
		if ev.Timestamp() < sim.Clock {
			logrus.Panicf("clock went backwards: %.4f < %.4f", ev.Timestamp(), sim.Clock)
		}
		sim.Clock = ev.Timestamp()
		ev.Execute(sim)
	}
	logrus.Infof("run %s: simulation ended at %.2f with %d log records", sim.RunID, sim.Clock, sim.EventLog.Len())
}
