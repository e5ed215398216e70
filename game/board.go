package game

import (
	"fmt"
	"sort"
	"sync"

	"dablo/utils"
)

// NodeKind distinguishes the two structural classes of board positions.
// Primary nodes sit on the integer lattice and connect orthogonally and
// diagonally; secondary nodes sit at cell centers and connect diagonally only.
type NodeKind uint8

const (
	Primary NodeKind = iota
	Secondary
)

// NodeID is an opaque handle into a board's node table.
type NodeID int

// NoNode marks the absence of a node (e.g. a non-capturing move).
const NoNode NodeID = -1

// Node is a single board position. Coordinates are stored in half-steps
// (twice the traditional row/column values) so all topology math stays
// integral: primary nodes have even Row2/Col2, secondary nodes odd.
type Node struct {
	ID   NodeID
	Row2 int
	Col2 int
	Kind NodeKind
}

// Row returns the traditional fractional row coordinate.
func (n Node) Row() float64 { return float64(n.Row2) / 2 }

// Col returns the traditional fractional column coordinate.
func (n Node) Col() float64 { return float64(n.Col2) / 2 }

// Board is the static game graph: nodes, adjacency, and the capture-landing
// node behind each (from, over) pair. It is built once per topology and
// never mutated afterwards, so a single instance is shared read-only across
// any number of concurrent games.
type Board struct {
	Topology string
	Nodes    []Node

	adjacent [][]NodeID      // neighbor lists, symmetric by construction
	landing  [][]NodeID      // landing[i][k] pairs with adjacent[i][k]; NoNode if off-board
	index    map[[2]int]NodeID
}

var primaryOffsets = [][2]int{
	{-2, 0}, {2, 0}, {0, -2}, {0, 2},
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

var secondaryOffsets = [][2]int{
	{-1, -1}, {-1, 1}, {1, -1}, {1, 1},
}

// newBoard builds the graph for a rows x cols primary lattice with secondary
// nodes at every interior cell center.
func newBoard(topology string, rows, cols int) (*Board, error) {
	if rows < 3 || cols < 3 {
		return nil, &TopologyError{Topology: topology, Reason: fmt.Sprintf("board must be at least 3x3, got %dx%d", rows, cols)}
	}

	var nodes []Node
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			nodes = append(nodes, Node{Row2: 2 * r, Col2: 2 * c, Kind: Primary})
			if r < rows-1 && c < cols-1 {
				nodes = append(nodes, Node{Row2: 2*r + 1, Col2: 2*c + 1, Kind: Secondary})
			}
		}
	}

	// Sort by position so node IDs are stable regardless of build order.
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Row2 != nodes[j].Row2 {
			return nodes[i].Row2 < nodes[j].Row2
		}
		return nodes[i].Col2 < nodes[j].Col2
	})

	b := &Board{
		Topology: topology,
		Nodes:    nodes,
		adjacent: make([][]NodeID, len(nodes)),
		landing:  make([][]NodeID, len(nodes)),
		index:    make(map[[2]int]NodeID, len(nodes)),
	}
	for i := range b.Nodes {
		b.Nodes[i].ID = NodeID(i)
		b.index[[2]int{b.Nodes[i].Row2, b.Nodes[i].Col2}] = NodeID(i)
	}

	for i, node := range b.Nodes {
		offsets := primaryOffsets
		if node.Kind == Secondary {
			offsets = secondaryOffsets
		}
		for _, off := range offsets {
			over, ok := b.at(node.Row2+off[0], node.Col2+off[1])
			if !ok {
				continue
			}
			b.adjacent[i] = append(b.adjacent[i], over)
			// The landing node sits one more step along the same direction.
			land, ok := b.at(node.Row2+2*off[0], node.Col2+2*off[1])
			if !ok {
				land = NoNode
			}
			b.landing[i] = append(b.landing[i], land)
		}
	}

	if err := b.validate(); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Board) at(row2, col2 int) (NodeID, bool) {
	id, ok := b.index[[2]int{row2, col2}]
	return id, ok
}

// NodeAt resolves a traditional fractional coordinate to a node handle.
func (b *Board) NodeAt(row, col float64) (NodeID, bool) {
	return b.at(int(row*2), int(col*2))
}

// Neighbors returns the nodes adjacent to id. Callers must not mutate the
// returned slice.
func (b *Board) Neighbors(id NodeID) []NodeID {
	return b.adjacent[id]
}

// CaptureLanding returns the node reached by jumping from one node over an
// adjacent one, or false when the jump leaves the board or the nodes are not
// adjacent.
func (b *Board) CaptureLanding(from, over NodeID) (NodeID, bool) {
	for k, adj := range b.adjacent[from] {
		if adj == over {
			land := b.landing[from][k]
			return land, land != NoNode
		}
	}
	return NoNode, false
}

// validate checks the invariants every playable topology must hold. It runs
// once at construction; any violation is fatal per the TopologyError contract.
func (b *Board) validate() error {
	if len(b.Nodes) == 0 {
		return &TopologyError{Topology: b.Topology, Reason: "no nodes defined"}
	}
	for i, neighbors := range b.adjacent {
		for k, adj := range neighbors {
			if adj < 0 || int(adj) >= len(b.Nodes) {
				return &TopologyError{Topology: b.Topology, Reason: fmt.Sprintf("node %d references undefined node %d", i, adj)}
			}
			if !utils.Contains(b.adjacent[adj], NodeID(i)) {
				return &TopologyError{Topology: b.Topology, Reason: fmt.Sprintf("adjacency between %d and %d is not symmetric", i, adj)}
			}
			if land := b.landing[i][k]; land != NoNode && (land < 0 || int(land) >= len(b.Nodes)) {
				return &TopologyError{Topology: b.Topology, Reason: fmt.Sprintf("jump from %d over %d lands on undefined node %d", i, adj, land)}
			}
		}
	}

	// Every node must be reachable for the setup and movement rules to make
	// sense; an island would silently strand pieces.
	visited := make([]bool, len(b.Nodes))
	queue := []NodeID{0}
	visited[0] = true
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, adj := range b.adjacent[current] {
			if !visited[adj] {
				visited[adj] = true
				queue = append(queue, adj)
			}
		}
	}
	for i, ok := range visited {
		if !ok {
			return &TopologyError{Topology: b.Topology, Reason: fmt.Sprintf("node %d is unreachable", i)}
		}
	}
	return nil
}

// StandardTopology is the traditional 6x5 Dablo board (50 nodes).
const StandardTopology = "standard"

type topologySpec struct {
	rows, cols int
}

var topologySpecs = map[string]topologySpec{
	StandardTopology: {rows: 6, cols: 5},
}

var (
	boardsMu sync.Mutex
	boards   = map[string]*Board{}
)

// BoardFor returns the shared immutable board for a topology identifier,
// constructing it on first use.
func BoardFor(topology string) (*Board, error) {
	boardsMu.Lock()
	defer boardsMu.Unlock()

	if b, ok := boards[topology]; ok {
		return b, nil
	}
	spec, ok := topologySpecs[topology]
	if !ok {
		return nil, &TopologyError{Topology: topology, Reason: "unknown topology"}
	}
	b, err := newBoard(topology, spec.rows, spec.cols)
	if err != nil {
		return nil, err
	}
	boards[topology] = b
	return b, nil
}
