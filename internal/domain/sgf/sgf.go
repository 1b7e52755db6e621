package sgf

// GameTree is one tree in an SGF file: a node sequence plus variations.
type GameTree struct {
	Nodes    []Node      // main sequence of the tree
	Children []*GameTree // variation subtrees
}

// Node is a single SGF node, a set of properties such as B[pd] or AB[aa][bb].
type Node struct {
	Properties map[string][]string
}

// SGF is the root element of a parsed record.
type SGF struct {
	Root *GameTree
}
