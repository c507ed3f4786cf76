package sim

import "github.com/sirupsen/logrus"

// Event defines the interface for all simulation events. Each event carries
// a timestamp in simulated time units and a per-simulator sequence number
// that breaks same-timestamp ties in submission order.
type Event interface {
	Timestamp() float64
	EventID() uint64
	Execute(*Simulator)
}

// BaseEvent provides the common event fields.
type BaseEvent struct {
	time    float64
	eventID uint64
}

func (e *BaseEvent) Timestamp() float64 { return e.time }
func (e *BaseEvent) EventID() uint64    { return e.eventID }

// MonitorEvent fires a periodic monitor and reschedules it according to its
// distribution until the horizon.
type MonitorEvent struct {
	BaseEvent
	Monitor      Monitor
	Distribution Distribution
}

// Execute invokes the monitor, then schedules its next firing.
func (e *MonitorEvent) Execute(sim *Simulator) {
	logrus.Debugf("[tick %.2f] firing %s", e.time, e.Monitor.Name())
	e.Monitor.Invoke(sim, e.time)

	next := e.time + e.Distribution.NextInterval(sim.RNG.ForSubsystem(e.Monitor.Name()))
	if next <= sim.Horizon {
		sim.Schedule(&MonitorEvent{
			BaseEvent:    sim.newBaseEvent(next),
			Monitor:      e.Monitor,
			Distribution: e.Distribution,
		})
	}
}

// MessageSendEvent broadcasts a message from its source module to every
// deployed instance of the destination module, then reschedules itself per
// the source's distribution.
type MessageSendEvent struct {
	BaseEvent
	App          *Application
	Placement    *Placement
	Source       Source
	SourceNodeID string
}

// Execute routes the message against the current topology and accounts for
// each delivered copy.
func (e *MessageSendEvent) Execute(sim *Simulator) {
	instances := e.Placement.InstancesOf(e.Source.Message.Dst)
	paths, resolved := sim.Router.Route(e.SourceNodeID, instances)

	sim.Metrics.MessagesSent++
	sim.Metrics.PathsComputed += len(paths)
	sim.Metrics.InstancesSkipped += len(instances) - len(resolved)
	for _, path := range paths {
		sim.Metrics.DeliveryLatency += sim.Topology.PathLatency(path, e.Source.Message.Bytes)
	}

	logrus.Debugf("[tick %.2f] message %s broadcast from %s to %d/%d instances",
		e.time, e.Source.Message.Name, e.SourceNodeID, len(resolved), len(instances))

	next := e.time + e.Source.Distribution.NextInterval(sim.RNG.ForSubsystem(e.Source.Message.Name))
	if next <= sim.Horizon {
		sim.Schedule(&MessageSendEvent{
			BaseEvent:    sim.newBaseEvent(next),
			App:          e.App,
			Placement:    e.Placement,
			Source:       e.Source,
			SourceNodeID: e.SourceNodeID,
		})
	}
}
