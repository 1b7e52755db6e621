package game

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlayAppendsChildren(t *testing.T) {
	root := NewRoot(map[string][]string{"SZ": {"9"}})
	first := root.Play(NewMove(Black, 2, 2))
	second := root.Play(NewMove(Black, 6, 6))

	require.Len(t, root.Children, 2)
	require.Same(t, root, first.Parent)
	require.Equal(t, 0, first.SiblingIndex())
	require.Equal(t, 1, second.SiblingIndex())
	require.Equal(t, -1, root.SiblingIndex())
	require.NotEqual(t, first.ID, second.ID)
}

func TestNodesFromRootOrder(t *testing.T) {
	root := NewRoot(nil)
	a := root.Play(NewMove(Black, 0, 0))
	b := a.Play(NewMove(White, 1, 1))

	require.Equal(t, []*GameNode{root, a, b}, b.NodesFromRoot())
	require.Equal(t, []Move{*a.Move, *b.Move}, b.MovesFromRoot())
	require.Same(t, root, b.Root())
}

func TestNextPlayer(t *testing.T) {
	root := NewRoot(nil)
	require.Equal(t, Black, root.NextPlayer())

	move := root.Play(NewMove(Black, 3, 3))
	require.Equal(t, White, move.NextPlayer())

	handicapRoot := NewRoot(map[string][]string{"SZ": {"19"}, "AB": {"dd", "pp"}})
	require.Equal(t, White, handicapRoot.NextPlayer())
}

func TestRootProperties(t *testing.T) {
	root := NewRoot(map[string][]string{
		"SZ": {"13"},
		"KM": {"7.5"},
		"HA": {"3"},
	})
	require.Equal(t, 13, root.BoardSize())
	require.Equal(t, 7.5, root.Komi())
	require.Equal(t, 3, root.Handicap())

	bare := NewRoot(nil)
	require.Equal(t, 19, bare.BoardSize())
	require.Equal(t, 6.5, bare.Komi())
	require.Equal(t, 0, bare.Handicap())
}

func TestPlacementsAndMoveWithPlacements(t *testing.T) {
	root := NewRoot(map[string][]string{"SZ": {"9"}, "AB": {"aa", "ii"}})
	placements := root.Placements()
	require.ElementsMatch(t, []Move{
		NewMove(Black, 0, 8),
		NewMove(Black, 8, 0),
	}, placements)
	require.Equal(t, placements, root.MoveWithPlacements())

	child := root.Play(NewMove(White, 4, 4))
	require.Equal(t, []Move{*child.Move}, child.MoveWithPlacements())
}

func TestIsPass(t *testing.T) {
	root := NewRoot(nil)
	require.False(t, root.IsPass())
	require.True(t, root.Play(NewPass(Black)).IsPass())
}
