package sim

import (
	"github.com/sirupsen/logrus"

	"github.com/fogsim/fogsim/sim/trace"
)

// Attributes of the attachment edge created when a mobile node re-attaches
// to a cluster. Taken over unchanged from the static scenario defaults.
var attachmentLink = LinkAttrs{Bandwidth: 5, PropDelay: 2}

// MobilityMonitor relocates mobile nodes between clusters. On its first
// invocation it discovers the mobile and cluster node sets from the topology
// and seeds its location map from the existing attachment edges; after that,
// each invocation performs one atomic move: pick a mobile node and a new
// cluster at random, ask the classifier for a verdict, record a MOVE event,
// swap the attachment edge, and invalidate the routing cache.
type MobilityMonitor struct {
	classifier *AnomalyClassifier
	router     *BroadcastRouter

	initialized  bool
	mobileNodes  []string
	clusterNodes []string
	locations    map[string]string // mobile node ID → current cluster ID
}

// NewMobilityMonitor creates a mobility monitor wired to the classifier that
// judges its moves and the router whose cache it must invalidate.
func NewMobilityMonitor(classifier *AnomalyClassifier, router *BroadcastRouter) *MobilityMonitor {
	return &MobilityMonitor{
		classifier: classifier,
		router:     router,
		locations:  make(map[string]string),
	}
}

func (m *MobilityMonitor) Name() string { return "MobilityMonitor" }

// initialize discovers mobile and cluster nodes and reconstructs each mobile
// node's current cluster from its attachment edge. One-shot; runs on the
// first invocation so deployment order does not matter.
func (m *MobilityMonitor) initialize(topo *Topology) {
	m.mobileNodes = topo.NodesOfKind(KindMobile)
	m.clusterNodes = topo.NodesOfKind(KindCluster)
	for _, id := range m.mobileNodes {
		for _, neighbor := range topo.Neighbors(id) {
			if n := topo.Node(neighbor); n != nil && n.Kind == KindCluster {
				m.locations[id] = neighbor
				break
			}
		}
	}
	logrus.Infof("mobility monitor initialized with mobile nodes: %v", m.mobileNodes)
	m.initialized = true
}

// Invoke performs one move. No mobile nodes or fewer than two clusters makes
// the tick a no-op, not an error.
func (m *MobilityMonitor) Invoke(sim *Simulator, now float64) {
	if !m.initialized {
		m.initialize(sim.Topology)
	}

	if len(m.mobileNodes) == 0 {
		return
	}

	rng := sim.RNG.ForSubsystem(SubsystemMobility)
	node := m.mobileNodes[rng.Intn(len(m.mobileNodes))]
	current := m.locations[node]

	candidates := make([]string, 0, len(m.clusterNodes))
	for _, c := range m.clusterNodes {
		if c != current {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return
	}
	target := candidates[rng.Intn(len(candidates))]

	status := m.classifier.Classify(node, now)

	sim.EventLog.Append(trace.NewMoveRecord(now, node, current, target, string(status)))
	sim.Metrics.MovesPerformed++
	if status == StatusAttacker {
		sim.Metrics.AttackerFlags++
	}

	// The attachment edge must exist post-init, but a missing one only means
	// there is nothing to remove.
	if current != "" && sim.Topology.HasEdge(node, current) {
		sim.Topology.RemoveEdge(node, current)
	}
	if err := sim.Topology.AddEdge(node, target, attachmentLink); err != nil {
		// Duplicate attachment means the single-attachment invariant broke
		// earlier in the run.
		logrus.Panicf("mobility monitor: re-attach %s to %s: %v", node, target, err)
	}
	m.locations[node] = target

	m.router.Invalidate()
	sim.Metrics.CacheInvalidations++

	logrus.Infof("[tick %.2f] node %s moved from %s to %s (%s)", now, node, current, target, status)
}

// Location returns the cluster a mobile node is currently attached to,
// according to the monitor's location map.
func (m *MobilityMonitor) Location(nodeID string) (string, bool) {
	loc, ok := m.locations[nodeID]
	return loc, ok
}
