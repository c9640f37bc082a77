// Package graphs implements the five GraphRepresentation types (spec.md
// §3, §4.4, component E): FILESYSTEM, FILE_DEPENDENCY, ENTITY_DEPENDENCY,
// ENTITY_INHERITANCE, and ENTITY_COMPLETE.
//
// Grounded on original_source/emerge/graph.go, the Python sibling
// emerge/graph.py (GraphRepresentation, GraphType,
// calculate_dependency_graph_from_results, calculate_inheritance_graph_from_results,
// calculate_complete_graph via nx.compose). Backed by
// github.com/dominikbraun/graph instead of networkx (see DESIGN.md).
package graphs

import (
	"github.com/dominikbraun/graph"

	"github.com/glato/emerge/pkg/emerge/result"
	"github.com/glato/emerge/pkg/emerge/scan"
)

// Type tags a GraphRepresentation, mirroring emerge.graph.GraphType.
type Type int

const (
	Filesystem Type = iota
	FileDependency
	EntityDependency
	EntityInheritance
	EntityComplete
)

func (t Type) String() string {
	switch t {
	case Filesystem:
		return "filesystem"
	case FileDependency:
		return "file-dependency"
	case EntityDependency:
		return "entity-dependency"
	case EntityInheritance:
		return "entity-inheritance"
	case EntityComplete:
		return "entity-complete"
	default:
		return "unknown"
	}
}

// Representation is a tagged directed graph: { graph_type, digraph,
// filesystem_nodes } per spec.md §3. Digraph vertices are unique-name
// strings (or filesystem relative names for the Filesystem type).
// FilesystemNodes is populated only for the Filesystem type.
type Representation struct {
	Type            Type
	Digraph         graph.Graph[string, string]
	FilesystemNodes map[string]*scan.FilesystemNode

	// NodeMetrics is the §4.4-filtered per-node metric annotation,
	// populated by the analyzer after all metrics have run. Nil until
	// annotated.
	NodeMetrics map[string]map[string]any
}

func newDigraph() graph.Graph[string, string] {
	return graph.New(graph.StringHash, graph.Directed())
}

func addVertexIfAbsent(g graph.Graph[string, string], key string) {
	_ = g.AddVertex(key)
}

// BuildFilesystem turns a scan.FilesystemGraph into the FILESYSTEM
// GraphRepresentation: one node per directory/file, one edge per
// directory→child relationship (spec.md §4.3, §4.4).
func BuildFilesystem(fs *scan.FilesystemGraph) *Representation {
	g := newDigraph()
	for key := range fs.Nodes {
		addVertexIfAbsent(g, key)
	}
	for _, e := range fs.Edges {
		addVertexIfAbsent(g, e.From)
		addVertexIfAbsent(g, e.To)
		_ = g.AddEdge(e.From, e.To)
	}
	return &Representation{Type: Filesystem, Digraph: g, FilesystemNodes: fs.Nodes}
}

// BuildFileDependency builds the file dependency graph: one node per
// FileResult, one edge per scanned_import_dependencies entry. Missing
// targets are added as bare nodes, preserving graph closure (spec.md
// §8 property 2) even when the dependency doesn't resolve to a known
// result (spec.md §3 invariant 1, invariant 6).
func BuildFileDependency(files []*result.FileResult) *Representation {
	g := newDigraph()
	for _, f := range files {
		addVertexIfAbsent(g, f.UniqueNameValue)
	}
	for _, f := range files {
		for _, dep := range f.ScannedImportDependencies {
			addVertexIfAbsent(g, dep)
			_ = g.AddEdge(f.UniqueNameValue, dep)
		}
	}
	return &Representation{Type: FileDependency, Digraph: g}
}

// BuildEntityDependency is the entity-scope analogue of BuildFileDependency.
func BuildEntityDependency(entities []*result.EntityResult) *Representation {
	g := newDigraph()
	for _, e := range entities {
		addVertexIfAbsent(g, e.UniqueNameValue)
	}
	for _, e := range entities {
		for _, dep := range e.ScannedImportDependencies {
			addVertexIfAbsent(g, dep)
			_ = g.AddEdge(e.UniqueNameValue, dep)
		}
	}
	return &Representation{Type: EntityDependency, Digraph: g}
}

// BuildEntityInheritance builds one edge per
// scanned_inheritance_dependencies entry.
func BuildEntityInheritance(entities []*result.EntityResult) *Representation {
	g := newDigraph()
	for _, e := range entities {
		addVertexIfAbsent(g, e.UniqueNameValue)
	}
	for _, e := range entities {
		for _, dep := range e.ScannedInheritanceDependencies {
			addVertexIfAbsent(g, dep)
			_ = g.AddEdge(e.UniqueNameValue, dep)
		}
	}
	return &Representation{Type: EntityInheritance, Digraph: g}
}

// BuildEntityComplete composes dependency and inheritance into the
// union graph, mirroring emerge.graph.py's use of nx.compose. Must be
// built after both inputs exist (spec.md §4.4).
func BuildEntityComplete(dependency, inheritance *Representation) *Representation {
	g := newDigraph()
	copyInto(g, dependency.Digraph)
	copyInto(g, inheritance.Digraph)
	return &Representation{Type: EntityComplete, Digraph: g}
}

func copyInto(dst, src graph.Graph[string, string]) {
	adj, err := src.AdjacencyMap()
	if err != nil {
		return
	}
	for v := range adj {
		addVertexIfAbsent(dst, v)
	}
	for from, edges := range adj {
		for to := range edges {
			addVertexIfAbsent(dst, from)
			addVertexIfAbsent(dst, to)
			_ = dst.AddEdge(from, to)
		}
	}
}

// Vertices returns every vertex key currently in g.
func Vertices(g graph.Graph[string, string]) []string {
	adj, err := g.AdjacencyMap()
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(adj))
	for v := range adj {
		out = append(out, v)
	}
	return out
}

// Undirected returns an undirected copy of g, used by graph metrics
// (Louvain) that operate on the undirected projection (spec.md §4.5:
// "on each graph's undirected projection").
func Undirected(g graph.Graph[string, string]) graph.Graph[string, string] {
	u := graph.New(graph.StringHash)
	adj, err := g.AdjacencyMap()
	if err != nil {
		return u
	}
	for v := range adj {
		addVertexIfAbsent(u, v)
	}
	for from, edges := range adj {
		for to := range edges {
			addVertexIfAbsent(u, from)
			addVertexIfAbsent(u, to)
			if _, err := u.Edge(from, to); err != nil {
				_ = u.AddEdge(from, to)
			}
		}
	}
	return u
}
