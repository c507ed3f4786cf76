package sim

import "github.com/sirupsen/logrus"

// BroadcastRouter computes one shortest path per deployed destination
// instance for a single logical send. Computed paths are memoized and stay
// valid only while the topology's edge set is unchanged; whoever mutates the
// topology must call Invalidate before the next Route call. A stale path is
// a correctness bug, not a performance issue: it may traverse a removed
// attachment edge.
type BroadcastRouter struct {
	topo  *Topology
	cache map[string][]string // "src|dst" → path
	valid bool
}

// NewBroadcastRouter creates a router over the given topology with an empty,
// valid cache.
func NewBroadcastRouter(topo *Topology) *BroadcastRouter {
	return &BroadcastRouter{
		topo:  topo,
		cache: make(map[string][]string),
		valid: true,
	}
}

// Invalidate discards all memoized paths. Called by the mobility monitor
// after every attachment change.
func (r *BroadcastRouter) Invalidate() {
	r.valid = false
}

// CacheValid reports whether memoized paths still reflect the topology.
func (r *BroadcastRouter) CacheValid() bool {
	return r.valid
}

// Route computes the shortest path from src to each destination instance, in
// input order, against the current topology. Unreachable instances are
// logged and skipped rather than failing the send; the returned slices keep
// index correspondence, paths[i] ending at resolved[i].
func (r *BroadcastRouter) Route(src string, instances []string) (paths [][]string, resolved []string) {
	if !r.valid {
		r.cache = make(map[string][]string)
		r.valid = true
	}
	for _, dst := range instances {
		path, err := r.lookup(src, dst)
		if err != nil {
			logrus.Warnf("router: no path from %s to %s, skipping instance", src, dst)
			continue
		}
		paths = append(paths, path)
		resolved = append(resolved, dst)
	}
	return paths, resolved
}

// lookup returns the memoized path for (src, dst), computing and caching it
// on a miss.
func (r *BroadcastRouter) lookup(src, dst string) ([]string, error) {
	key := src + "|" + dst
	if path, ok := r.cache[key]; ok {
		return path, nil
	}
	path, err := r.topo.ShortestPath(src, dst)
	if err != nil {
		return nil, err
	}
	r.cache[key] = path
	return path, nil
}
