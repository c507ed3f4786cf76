package sim

import (
	"errors"
	"fmt"
	"sort"
)

// NodeKind classifies a fog node's role in the network.
type NodeKind string

const (
	KindLeader  NodeKind = "LEADER"
	KindCluster NodeKind = "CLUSTER"
	KindMobile  NodeKind = "MOBILE"
)

// Sentinel errors for topology invariant breaches and recoverable
// routing failures.
var (
	ErrDuplicateNode = errors.New("node already exists")
	ErrDuplicateEdge = errors.New("edge already exists")
	ErrNodeNotFound  = errors.New("node not found")
	ErrNoPath        = errors.New("no path between nodes")
)

// Resources are a node's static compute attributes, immutable after creation.
type Resources struct {
	IPT int // instruction throughput
	RAM int // memory capacity
}

// Node is a fog network participant.
type Node struct {
	ID        string
	Kind      NodeKind
	Resources Resources
}

// LinkAttrs are a link's transmission attributes.
type LinkAttrs struct {
	Bandwidth float64 // bytes per time unit
	PropDelay float64 // propagation delay in time units
}

// Topology is the mutable labeled fog network graph at simulated time t.
// At most one edge exists between any two nodes. Mutation during a run is
// restricted to re-attaching mobile nodes; leader-cluster links are static.
// Not safe for concurrent use: the event loop is the single owner.
type Topology struct {
	nodes map[string]*Node
	adj   map[string]map[string]LinkAttrs
}

// NewTopology creates an empty topology.
func NewTopology() *Topology {
	return &Topology{
		nodes: make(map[string]*Node),
		adj:   make(map[string]map[string]LinkAttrs),
	}
}

// AddNode inserts a node. Duplicate IDs are an invariant breach.
func (t *Topology) AddNode(id string, kind NodeKind, res Resources) error {
	if _, exists := t.nodes[id]; exists {
		return fmt.Errorf("add node %s: %w", id, ErrDuplicateNode)
	}
	t.nodes[id] = &Node{ID: id, Kind: kind, Resources: res}
	t.adj[id] = make(map[string]LinkAttrs)
	return nil
}

// Node returns the node with the given ID, or nil if absent.
func (t *Topology) Node(id string) *Node {
	return t.nodes[id]
}

// HasNode reports whether a node with the given ID exists.
func (t *Topology) HasNode(id string) bool {
	_, ok := t.nodes[id]
	return ok
}

// Nodes returns all node IDs in ascending order.
func (t *Topology) Nodes() []string {
	ids := make([]string, 0, len(t.nodes))
	for id := range t.nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// NodesOfKind returns the IDs of all nodes of the given kind, in ascending
// order for deterministic iteration.
func (t *Topology) NodesOfKind(kind NodeKind) []string {
	ids := make([]string, 0)
	for id, n := range t.nodes {
		if n.Kind == kind {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// AddEdge inserts an undirected edge between a and b. Both endpoints must
// exist and at most one edge may connect them.
func (t *Topology) AddEdge(a, b string, attrs LinkAttrs) error {
	if !t.HasNode(a) {
		return fmt.Errorf("add edge %s-%s: %s: %w", a, b, a, ErrNodeNotFound)
	}
	if !t.HasNode(b) {
		return fmt.Errorf("add edge %s-%s: %s: %w", a, b, b, ErrNodeNotFound)
	}
	if _, exists := t.adj[a][b]; exists {
		return fmt.Errorf("add edge %s-%s: %w", a, b, ErrDuplicateEdge)
	}
	t.adj[a][b] = attrs
	t.adj[b][a] = attrs
	return nil
}

// RemoveEdge deletes the edge between a and b. Removing an absent edge is a
// no-op.
func (t *Topology) RemoveEdge(a, b string) {
	delete(t.adj[a], b)
	delete(t.adj[b], a)
}

// HasEdge reports whether an edge connects a and b.
func (t *Topology) HasEdge(a, b string) bool {
	_, ok := t.adj[a][b]
	return ok
}

// EdgeAttrs returns the attributes of the edge between a and b.
func (t *Topology) EdgeAttrs(a, b string) (LinkAttrs, bool) {
	attrs, ok := t.adj[a][b]
	return attrs, ok
}

// Neighbors returns the IDs adjacent to a node, in ascending order.
func (t *Topology) Neighbors(id string) []string {
	ids := make([]string, 0, len(t.adj[id]))
	for n := range t.adj[id] {
		ids = append(ids, n)
	}
	sort.Strings(ids)
	return ids
}

// ShortestPath computes the hop-count shortest path from src to dst as an
// ordered node ID sequence including both endpoints. BFS expands neighbors
// in ascending ID order, so ties between equal-length paths resolve to the
// lowest node ID at each step; this keeps routing reproducible across runs
// with the same seed. Returns ErrNoPath when dst is unreachable and
// ErrNodeNotFound when either endpoint is missing.
func (t *Topology) ShortestPath(src, dst string) ([]string, error) {
	if !t.HasNode(src) {
		return nil, fmt.Errorf("shortest path: %s: %w", src, ErrNodeNotFound)
	}
	if !t.HasNode(dst) {
		return nil, fmt.Errorf("shortest path: %s: %w", dst, ErrNodeNotFound)
	}
	if src == dst {
		return []string{src}, nil
	}

	prev := map[string]string{src: ""}
	frontier := []string{src}
	for len(frontier) > 0 {
		next := frontier[0]
		frontier = frontier[1:]
		for _, n := range t.Neighbors(next) {
			if _, visited := prev[n]; visited {
				continue
			}
			prev[n] = next
			if n == dst {
				return rebuildPath(prev, src, dst), nil
			}
			frontier = append(frontier, n)
		}
	}
	return nil, fmt.Errorf("shortest path %s-%s: %w", src, dst, ErrNoPath)
}

// rebuildPath walks the BFS predecessor map back from dst to src.
func rebuildPath(prev map[string]string, src, dst string) []string {
	path := []string{dst}
	for at := dst; at != src; {
		at = prev[at]
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// PathLatency sums per-link transmission cost along a path for a message of
// the given size: propagation delay plus size over bandwidth per hop.
func (t *Topology) PathLatency(path []string, bytes float64) float64 {
	total := 0.0
	for i := 0; i+1 < len(path); i++ {
		attrs, ok := t.adj[path[i]][path[i+1]]
		if !ok {
			continue
		}
		total += attrs.PropDelay
		if attrs.Bandwidth > 0 {
			total += bytes / attrs.Bandwidth
		}
	}
	return total
}
