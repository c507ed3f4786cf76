package cmd

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	sim "github.com/fogsim/fogsim/sim"
)

// Scenario is the YAML description of one simulation run: the fog topology,
// the application and its placement, and the monitor schedules.
type Scenario struct {
	Name     string         `yaml:"name"`
	Duration float64        `yaml:"duration"`
	Topology TopologyConfig `yaml:"topology"`
	App      AppConfig      `yaml:"application"`
	Monitors MonitorsConfig `yaml:"monitors"`
}

type TopologyConfig struct {
	Nodes []NodeConfig `yaml:"nodes"`
	Edges []EdgeConfig `yaml:"edges"`
}

type NodeConfig struct {
	ID   string `yaml:"id"`
	Kind string `yaml:"kind"`
	IPT  int    `yaml:"ipt"`
	RAM  int    `yaml:"ram"`
	// Start is the initial cluster attachment for MOBILE nodes. Empty means
	// a uniformly random cluster.
	Start string `yaml:"start,omitempty"`
}

type EdgeConfig struct {
	From      string  `yaml:"from"`
	To        string  `yaml:"to"`
	Bandwidth float64 `yaml:"bandwidth"`
	PropDelay float64 `yaml:"prop_delay"`
}

type AppConfig struct {
	Name      string              `yaml:"name"`
	Modules   []string            `yaml:"modules"`
	Messages  []MessageConfig     `yaml:"messages"`
	Placement map[string][]string `yaml:"placement"`
}

type MessageConfig struct {
	Name         string             `yaml:"name"`
	Src          string             `yaml:"src"`
	Dst          string             `yaml:"dst"`
	Instructions int                `yaml:"instructions"`
	Bytes        float64            `yaml:"bytes"`
	Schedule     DistributionConfig `yaml:"schedule"`
}

type MonitorsConfig struct {
	Mobility DistributionConfig `yaml:"mobility"`
	Rekeying DistributionConfig `yaml:"rekeying"`
}

// DistributionConfig selects a firing schedule: a fixed period, or a
// uniform-random interval in [min, max].
type DistributionConfig struct {
	Period float64 `yaml:"period,omitempty"`
	Min    float64 `yaml:"min,omitempty"`
	Max    float64 `yaml:"max,omitempty"`
}

// Distribution converts the config into a sim.Distribution.
func (d DistributionConfig) Distribution() (sim.Distribution, error) {
	switch {
	case d.Period > 0 && (d.Min != 0 || d.Max != 0):
		return nil, fmt.Errorf("schedule must set either period or min/max, not both")
	case d.Period > 0:
		return sim.DeterministicDistribution{Period: d.Period}, nil
	case d.Min > 0 && d.Max >= d.Min:
		return sim.UniformDistribution{Min: d.Min, Max: d.Max}, nil
	default:
		return nil, fmt.Errorf("schedule needs period > 0 or 0 < min <= max")
	}
}

// LoadScenario reads and parses a scenario YAML file.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var sc Scenario
	if err := yaml.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	return &sc, nil
}

// DefaultScenario is the built-in secure fog network: one area leader, three
// clusters on static links, five mobile nodes starting at random clusters,
// and a SecureApp whose AreaLeader broadcasts a rekeying message to every
// ClusterLeader instance every 120 time units.
func DefaultScenario() *Scenario {
	sc := &Scenario{
		Name:     "secure-fog",
		Duration: 1000,
		Topology: TopologyConfig{
			Nodes: []NodeConfig{
				{ID: "area_leader", Kind: "LEADER", IPT: 5000, RAM: 4000},
			},
		},
		App: AppConfig{
			Name:    "SecureApp",
			Modules: []string{"AreaLeader", "ClusterLeader"},
			Messages: []MessageConfig{
				{
					Name: "RekeyingMessage", Src: "AreaLeader", Dst: "ClusterLeader",
					Instructions: 50, Bytes: 64,
					Schedule: DistributionConfig{Period: 120},
				},
			},
			Placement: map[string][]string{
				"AreaLeader":    {"area_leader"},
				"ClusterLeader": {"cluster_1", "cluster_2", "cluster_3"},
			},
		},
		Monitors: MonitorsConfig{
			Mobility: DistributionConfig{Min: 30, Max: 60},
			Rekeying: DistributionConfig{Period: 120},
		},
	}
	for i := 1; i <= 3; i++ {
		id := fmt.Sprintf("cluster_%d", i)
		sc.Topology.Nodes = append(sc.Topology.Nodes, NodeConfig{ID: id, Kind: "CLUSTER", IPT: 2000, RAM: 10000})
		sc.Topology.Edges = append(sc.Topology.Edges, EdgeConfig{From: "area_leader", To: id, Bandwidth: 10, PropDelay: 1})
	}
	for i := 0; i < 5; i++ {
		sc.Topology.Nodes = append(sc.Topology.Nodes, NodeConfig{
			ID: fmt.Sprintf("iot_%d", i), Kind: "MOBILE", IPT: 1000, RAM: 1000,
		})
	}
	return sc
}

// BuildSimulator assembles a ready-to-run simulator from a scenario. The
// horizon comes from the scenario's duration unless overridden by a positive
// horizon argument.
func BuildSimulator(sc *Scenario, seed int64, horizon float64) (*sim.Simulator, error) {
	topo := sim.NewTopology()

	// Mobile nodes are added up front but attached after the simulator
	// exists, so placement randomness draws from its partitioned RNG and
	// INITIAL records land in its event log.
	var mobiles []NodeConfig
	for _, n := range sc.Topology.Nodes {
		kind := sim.NodeKind(n.Kind)
		switch kind {
		case sim.KindLeader, sim.KindCluster, sim.KindMobile:
		default:
			return nil, fmt.Errorf("node %s: unknown kind %q", n.ID, n.Kind)
		}
		if err := topo.AddNode(n.ID, kind, sim.Resources{IPT: n.IPT, RAM: n.RAM}); err != nil {
			return nil, err
		}
		if kind == sim.KindMobile {
			mobiles = append(mobiles, n)
		}
	}
	for _, e := range sc.Topology.Edges {
		if err := topo.AddEdge(e.From, e.To, sim.LinkAttrs{Bandwidth: e.Bandwidth, PropDelay: e.PropDelay}); err != nil {
			return nil, err
		}
	}

	if horizon <= 0 {
		horizon = sc.Duration
	}
	s := sim.NewSimulator(topo, horizon, seed)

	clusters := topo.NodesOfKind(sim.KindCluster)
	placementRNG := s.RNG.ForSubsystem(sim.SubsystemPlacement)
	for _, m := range mobiles {
		start := m.Start
		if start == "" {
			if len(clusters) == 0 {
				return nil, fmt.Errorf("mobile node %s: no clusters to attach to", m.ID)
			}
			start = clusters[placementRNG.Intn(len(clusters))]
		}
		if err := s.PlaceMobile(m.ID, start); err != nil {
			return nil, err
		}
	}

	mobilityDist, err := sc.Monitors.Mobility.Distribution()
	if err != nil {
		return nil, fmt.Errorf("mobility monitor: %w", err)
	}
	rekeyDist, err := sc.Monitors.Rekeying.Distribution()
	if err != nil {
		return nil, fmt.Errorf("rekeying monitor: %w", err)
	}
	s.DeployMonitor(sim.NewMobilityMonitor(s.Classifier, s.Router), mobilityDist)
	s.DeployMonitor(sim.NewRekeyingMonitor(), rekeyDist)

	app := &sim.Application{Name: sc.App.Name, Modules: sc.App.Modules}
	for _, msg := range sc.App.Messages {
		dist, err := msg.Schedule.Distribution()
		if err != nil {
			return nil, fmt.Errorf("message %s: %w", msg.Name, err)
		}
		app.Sources = append(app.Sources, sim.Source{
			Message: sim.Message{
				Name: msg.Name, Src: msg.Src, Dst: msg.Dst,
				Instructions: msg.Instructions, Bytes: msg.Bytes,
			},
			Distribution: dist,
		})
	}
	placement := &sim.Placement{Name: "Placement", Allocations: sc.App.Placement}
	if err := s.DeployApp(app, placement); err != nil {
		return nil, err
	}

	return s, nil
}
