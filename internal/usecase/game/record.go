package game

import (
	"fmt"

	"baduk_lab/internal/domain/game"
	"baduk_lab/internal/domain/sgf"
)

// LoadTree converts a parsed SGF record into a GameNode tree: the first node
// of the record becomes the root (its property bag drives board size, komi
// and handicap), each following B/W node becomes a move child, and variation
// subtrees become siblings.
func LoadTree(text string) (*game.GameNode, error) {
	parsed, err := sgf.Parse(text)
	if err != nil {
		return nil, err
	}
	if len(parsed.Root.Nodes) == 0 {
		return nil, fmt.Errorf("sgf record has no root node")
	}

	root := game.NewRoot(copyProperties(parsed.Root.Nodes[0].Properties))
	size := root.BoardSize()
	cur, err := attachNodes(root, parsed.Root.Nodes[1:], size)
	if err != nil {
		return nil, err
	}
	if err := attachChildren(cur, parsed.Root.Children, size); err != nil {
		return nil, err
	}
	return root, nil
}

// attachNodes hangs a linear node sequence under cur, returning the deepest
// node created.
func attachNodes(cur *game.GameNode, nodes []sgf.Node, size int) (*game.GameNode, error) {
	for _, node := range nodes {
		move, hasMove, err := nodeMove(node, size)
		if err != nil {
			return nil, err
		}
		if !hasMove {
			// Setup-only node: fold its properties into the current node.
			for key, values := range node.Properties {
				cur.AddProperty(key, values...)
			}
			continue
		}
		child := cur.Play(move)
		for key, values := range node.Properties {
			if key == "B" || key == "W" {
				continue
			}
			child.AddProperty(key, values...)
		}
		cur = child
	}
	return cur, nil
}

func attachChildren(cur *game.GameNode, children []*sgf.GameTree, size int) error {
	for _, child := range children {
		tail, err := attachNodes(cur, child.Nodes, size)
		if err != nil {
			return err
		}
		if err := attachChildren(tail, child.Children, size); err != nil {
			return err
		}
	}
	return nil
}

func nodeMove(node sgf.Node, size int) (game.Move, bool, error) {
	for _, mk := range []struct {
		key    string
		player game.Color
	}{{"B", game.Black}, {"W", game.White}} {
		if values, ok := node.Properties[mk.key]; ok && len(values) > 0 {
			m, err := game.FromSGF(values[0], size, mk.player)
			if err != nil {
				return game.Move{}, false, err
			}
			return m, true, nil
		}
	}
	return game.Move{}, false, nil
}

func copyProperties(props map[string][]string) map[string][]string {
	out := make(map[string][]string, len(props))
	for key, values := range props {
		out[key] = append([]string(nil), values...)
	}
	return out
}
