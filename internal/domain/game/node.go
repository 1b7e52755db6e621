package game

import (
	"strconv"

	"github.com/google/uuid"

	"baduk_lab/internal/domain"
)

// GameNode is one node of the move tree. The tree is the authoritative game
// history: board state is always re-derived from it by replay. A parent owns
// its children; the Parent pointer is a navigation-only back-reference.
// Nodes are append-only, existing nodes and children are never removed.
type GameNode struct {
	ID         string
	Move       *Move // nil for the root node
	Parent     *GameNode
	Children   []*GameNode
	Properties map[string][]string

	// Analysis arrives asynchronously from the engine, possibly after the
	// session has navigated away from this node.
	Analysis *domain.AnalysisResponse
}

// NewRoot builds a root node carrying the given record properties.
func NewRoot(properties map[string][]string) *GameNode {
	if properties == nil {
		properties = make(map[string][]string)
	}
	return &GameNode{
		ID:         uuid.New().String(),
		Properties: properties,
	}
}

// Play appends a child node for the move and returns it.
func (n *GameNode) Play(m Move) *GameNode {
	child := &GameNode{
		ID:         uuid.New().String(),
		Move:       &m,
		Parent:     n,
		Properties: make(map[string][]string),
	}
	n.Children = append(n.Children, child)
	return child
}

func (n *GameNode) IsRoot() bool {
	return n.Parent == nil
}

func (n *GameNode) IsPass() bool {
	return n.Move != nil && n.Move.Pass
}

// Root walks up to the root of the tree.
func (n *GameNode) Root() *GameNode {
	cur := n
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// AddProperty appends values under key in the node's property bag.
func (n *GameNode) AddProperty(key string, values ...string) {
	if n.Properties == nil {
		n.Properties = make(map[string][]string)
	}
	n.Properties[key] = append(n.Properties[key], values...)
}

// GetFirst returns the first value stored under key, or "" if absent.
func (n *GameNode) GetFirst(key string) string {
	if vs := n.Properties[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// BoardSize reads the SZ property of the node's root, defaulting to 19.
func (n *GameNode) BoardSize() int {
	if v := n.Root().GetFirst("SZ"); v != "" {
		if sz, err := strconv.Atoi(v); err == nil && sz > 0 {
			return sz
		}
	}
	return 19
}

// Komi reads the KM property of the node's root, defaulting to 6.5.
func (n *GameNode) Komi() float64 {
	if v := n.Root().GetFirst("KM"); v != "" {
		if km, err := strconv.ParseFloat(v, 64); err == nil {
			return km
		}
	}
	return 6.5
}

// Handicap reads the HA property of the node's root, 0 if absent.
func (n *GameNode) Handicap() int {
	if v := n.Root().GetFirst("HA"); v != "" {
		if ha, err := strconv.Atoi(v); err == nil {
			return ha
		}
	}
	return 0
}

// Placements decodes the node's setup stones (AB/AW properties). For a fresh
// game these are the handicap stones on the root.
func (n *GameNode) Placements() []Move {
	size := n.BoardSize()
	var placements []Move
	for _, setup := range []struct {
		key    string
		player Color
	}{{"AB", Black}, {"AW", White}} {
		for _, v := range n.Properties[setup.key] {
			m, err := FromSGF(v, size, setup.player)
			if err != nil || m.Pass {
				continue
			}
			placements = append(placements, m)
		}
	}
	return placements
}

// MoveWithPlacements is the sequence of stones this node contributes to a
// replay: setup stones first, then the node's own move.
func (n *GameNode) MoveWithPlacements() []Move {
	moves := n.Placements()
	if n.Move != nil {
		moves = append(moves, *n.Move)
	}
	return moves
}

// NodesFromRoot lists the path root..n inclusive, in play order.
func (n *GameNode) NodesFromRoot() []*GameNode {
	var path []*GameNode
	for cur := n; cur != nil; cur = cur.Parent {
		path = append(path, cur)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// NodesInTree lists every node of the subtree rooted at n, depth first.
func (n *GameNode) NodesInTree() []*GameNode {
	nodes := []*GameNode{n}
	for _, c := range n.Children {
		nodes = append(nodes, c.NodesInTree()...)
	}
	return nodes
}

// NextPlayer is the color to move after this node. Black opens unless the
// root carries handicap placements, in which case white does.
func (n *GameNode) NextPlayer() Color {
	if n.Move != nil {
		return n.Move.Player.Opponent()
	}
	if len(n.Properties["AB"]) > 0 {
		return White
	}
	return Black
}

// SiblingIndex is the index of n among its parent's children, -1 for root.
func (n *GameNode) SiblingIndex() int {
	if n.Parent == nil {
		return -1
	}
	for i, c := range n.Parent.Children {
		if c == n {
			return i
		}
	}
	return -1
}

// MovesFromRoot is the played move sequence root..n, setup stones excluded.
func (n *GameNode) MovesFromRoot() []Move {
	var moves []Move
	for _, node := range n.NodesFromRoot() {
		if node.Move != nil {
			moves = append(moves, *node.Move)
		}
	}
	return moves
}
