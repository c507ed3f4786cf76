package sim

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildFogTopology creates the standard test fixture: one leader, three
// clusters on static links, one mobile attached to cluster_1.
func buildFogTopology(t *testing.T) *Topology {
	t.Helper()
	topo := NewTopology()
	require.NoError(t, topo.AddNode("area_leader", KindLeader, Resources{IPT: 5000, RAM: 4000}))
	for _, c := range []string{"cluster_1", "cluster_2", "cluster_3"} {
		require.NoError(t, topo.AddNode(c, KindCluster, Resources{IPT: 2000, RAM: 10000}))
		require.NoError(t, topo.AddEdge("area_leader", c, LinkAttrs{Bandwidth: 10, PropDelay: 1}))
	}
	require.NoError(t, topo.AddNode("iot_0", KindMobile, Resources{IPT: 1000, RAM: 1000}))
	require.NoError(t, topo.AddEdge("iot_0", "cluster_1", LinkAttrs{Bandwidth: 5, PropDelay: 2}))
	return topo
}

func TestTopology_AddNode_Duplicate(t *testing.T) {
	topo := NewTopology()
	require.NoError(t, topo.AddNode("a", KindCluster, Resources{}))
	err := topo.AddNode("a", KindMobile, Resources{})
	assert.ErrorIs(t, err, ErrDuplicateNode)
}

func TestTopology_AddEdge_Errors(t *testing.T) {
	topo := NewTopology()
	require.NoError(t, topo.AddNode("a", KindCluster, Resources{}))
	require.NoError(t, topo.AddNode("b", KindCluster, Resources{}))
	require.NoError(t, topo.AddEdge("a", "b", LinkAttrs{Bandwidth: 10, PropDelay: 1}))

	// Duplicate in either direction is an invariant breach
	assert.ErrorIs(t, topo.AddEdge("a", "b", LinkAttrs{}), ErrDuplicateEdge)
	assert.ErrorIs(t, topo.AddEdge("b", "a", LinkAttrs{}), ErrDuplicateEdge)

	// Missing endpoints are an invariant breach
	assert.ErrorIs(t, topo.AddEdge("a", "ghost", LinkAttrs{}), ErrNodeNotFound)
	assert.ErrorIs(t, topo.AddEdge("ghost", "b", LinkAttrs{}), ErrNodeNotFound)
}

func TestTopology_RemoveEdge_AbsentIsNoOp(t *testing.T) {
	topo := buildFogTopology(t)
	topo.RemoveEdge("iot_0", "cluster_3") // never existed
	topo.RemoveEdge("iot_0", "cluster_1")
	topo.RemoveEdge("iot_0", "cluster_1") // already gone
	assert.False(t, topo.HasEdge("iot_0", "cluster_1"))
	assert.False(t, topo.HasEdge("cluster_1", "iot_0"))
}

func TestTopology_Neighbors_SortedBothDirections(t *testing.T) {
	topo := buildFogTopology(t)
	assert.Equal(t, []string{"cluster_1", "cluster_2", "cluster_3"}, topo.Neighbors("area_leader"))
	assert.Equal(t, []string{"area_leader", "iot_0"}, topo.Neighbors("cluster_1"))
}

func TestTopology_NodesOfKind(t *testing.T) {
	topo := buildFogTopology(t)
	assert.Equal(t, []string{"cluster_1", "cluster_2", "cluster_3"}, topo.NodesOfKind(KindCluster))
	assert.Equal(t, []string{"iot_0"}, topo.NodesOfKind(KindMobile))
	assert.Equal(t, []string{"area_leader"}, topo.NodesOfKind(KindLeader))
}

func TestTopology_ShortestPath_HopCount(t *testing.T) {
	topo := buildFogTopology(t)

	path, err := topo.ShortestPath("iot_0", "cluster_3")
	require.NoError(t, err)
	assert.Equal(t, []string{"iot_0", "cluster_1", "area_leader", "cluster_3"}, path)

	path, err = topo.ShortestPath("iot_0", "iot_0")
	require.NoError(t, err)
	assert.Equal(t, []string{"iot_0"}, path)
}

func TestTopology_ShortestPath_DeterministicTieBreak(t *testing.T) {
	// GIVEN two equal-length routes from src to dst via b1 and b2
	topo := NewTopology()
	for _, id := range []string{"src", "dst", "b2", "b1"} {
		require.NoError(t, topo.AddNode(id, KindCluster, Resources{}))
	}
	link := LinkAttrs{Bandwidth: 10, PropDelay: 1}
	require.NoError(t, topo.AddEdge("src", "b2", link))
	require.NoError(t, topo.AddEdge("src", "b1", link))
	require.NoError(t, topo.AddEdge("b2", "dst", link))
	require.NoError(t, topo.AddEdge("b1", "dst", link))

	// THEN every computation resolves the tie to the lowest node ID
	for i := 0; i < 5; i++ {
		path, err := topo.ShortestPath("src", "dst")
		require.NoError(t, err)
		assert.Equal(t, []string{"src", "b1", "dst"}, path)
	}
}

func TestTopology_ShortestPath_NoPath(t *testing.T) {
	topo := buildFogTopology(t)
	require.NoError(t, topo.AddNode("island", KindCluster, Resources{}))

	_, err := topo.ShortestPath("iot_0", "island")
	assert.ErrorIs(t, err, ErrNoPath)

	_, err = topo.ShortestPath("iot_0", "ghost")
	assert.ErrorIs(t, err, ErrNodeNotFound)
	_, err = topo.ShortestPath("ghost", "iot_0")
	assert.True(t, errors.Is(err, ErrNodeNotFound))
}

func TestTopology_PathLatency(t *testing.T) {
	topo := buildFogTopology(t)
	path, err := topo.ShortestPath("iot_0", "area_leader")
	require.NoError(t, err)

	// iot_0-cluster_1: 2 + 64/5; cluster_1-area_leader: 1 + 64/10
	assert.InDelta(t, 2+64.0/5+1+64.0/10, topo.PathLatency(path, 64), 1e-9)
	assert.Equal(t, 0.0, topo.PathLatency([]string{"iot_0"}, 64))
}
