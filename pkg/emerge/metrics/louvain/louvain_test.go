package louvain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func twoDisjointTriangles() *Graph {
	g := NewGraph(nil)
	g.AddEdge("a", "b", 1)
	g.AddEdge("b", "c", 1)
	g.AddEdge("a", "c", 1)
	g.AddEdge("x", "y", 1)
	g.AddEdge("y", "z", 1)
	g.AddEdge("x", "z", 1)
	return g
}

func TestBestPartitionKeepsDisconnectedComponentsApart(t *testing.T) {
	g := twoDisjointTriangles()
	partition := BestPartition(g, 1.5)

	require.Len(t, partition, 6)
	require.Equal(t, partition["a"], partition["b"])
	require.Equal(t, partition["a"], partition["c"])
	require.Equal(t, partition["x"], partition["y"])
	require.Equal(t, partition["x"], partition["z"])
	require.NotEqual(t, partition["a"], partition["x"])
}

func TestModularityOfTrivialSingleCommunityIsNonPositive(t *testing.T) {
	g := NewGraph(nil)
	g.AddEdge("a", "b", 1)
	partition := map[string]int{"a": 0, "b": 0}
	mod := Modularity(partition, g, 1.0)
	require.InDelta(t, 0.0, mod, 1e-9)
}

func TestModularityOfSeparatedTrianglesIsPositive(t *testing.T) {
	g := twoDisjointTriangles()
	partition := map[string]int{"a": 0, "b": 0, "c": 0, "x": 1, "y": 1, "z": 1}
	mod := Modularity(partition, g, 1.0)
	require.Greater(t, mod, 0.0)
}

func TestEmptyGraphReturnsEmptyPartition(t *testing.T) {
	g := NewGraph(nil)
	require.Empty(t, BestPartition(g, 1.5))
}
