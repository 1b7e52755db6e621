package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"baduk_lab/internal/domain"
	"baduk_lab/internal/domain/game"
)

func TestSerializeTreeLinearGame(t *testing.T) {
	s := newTestSession(t, Options{BoardSize: 9, Komi: 7.5})
	_, _, err := s.Play(game.NewMove(game.Black, 2, 2), false)
	require.NoError(t, err)
	_, _, err = s.Play(game.NewMove(game.White, 6, 6), false)
	require.NoError(t, err)

	text := s.SGF()
	require.True(t, strings.HasPrefix(text, "(;GM[1]FF[4]SZ[9]"), text)
	require.Contains(t, text, "KM[7.5]")
	require.Contains(t, text, "RU[JP]")
	require.Contains(t, text, ";B[cg]")
	require.Contains(t, text, ";W[gc]")
	require.True(t, strings.HasSuffix(text, ")"), text)
	// No variations, so no inner parentheses.
	require.Equal(t, 1, strings.Count(text, "("))
}

func TestSerializeTreeVariations(t *testing.T) {
	s := newTestSession(t, Options{BoardSize: 9})
	_, _, err := s.Play(game.NewMove(game.Black, 2, 2), false)
	require.NoError(t, err)
	require.NoError(t, s.Undo())
	_, _, err = s.Play(game.NewMove(game.Black, 6, 6), false)
	require.NoError(t, err)

	text := s.SGF()
	require.Contains(t, text, "(;B[cg])")
	require.Contains(t, text, "(;B[gc])")
}

func TestSerializeTreePassAndHandicap(t *testing.T) {
	s := newTestSession(t, Options{BoardSize: 9, Handicap: 2})
	_, _, err := s.Play(game.NewPass(game.White), false)
	require.NoError(t, err)

	text := s.SGF()
	require.Contains(t, text, "HA[2]")
	require.Contains(t, text, "AB[gc][cg]")
	require.Contains(t, text, ";W[]")
}

func TestSerializeTreeFoldsAnalysisIntoComment(t *testing.T) {
	s := newTestSession(t, Options{BoardSize: 9})
	played, _, err := s.Play(game.NewMove(game.Black, 2, 2), false)
	require.NoError(t, err)
	played.AddProperty("C", "hane instead?")
	played.Analysis = &domain.AnalysisResponse{
		MoveInfos: []domain.MoveInfo{{Move: "G7", Visits: 120, ScoreLead: 1.5}},
	}

	text := s.SGF()
	require.Contains(t, text, "C[hane instead?\nengine: best G7, 120 visits, score +1.5]")
}

func TestSerializeTreeEscapesValues(t *testing.T) {
	s := newTestSession(t, Options{BoardSize: 9})
	s.Root().AddProperty("C", `tricky ] and \ here`)

	text := s.SGF()
	require.Contains(t, text, `C[tricky \] and \\ here]`)

	// The escaped record must parse back to the same comment.
	root, err := LoadTree(text)
	require.NoError(t, err)
	require.Equal(t, []string{`tricky ] and \ here`}, root.Properties["C"])
}

func TestLoadTreeRoundTrip(t *testing.T) {
	original := newTestSession(t, Options{BoardSize: 9, Komi: 7.5})
	moves := []game.Move{
		game.NewMove(game.Black, 2, 2),
		game.NewMove(game.White, 6, 6),
		game.NewMove(game.Black, 4, 4),
	}
	for _, m := range moves {
		_, _, err := original.Play(m, false)
		require.NoError(t, err)
	}

	root, err := LoadTree(original.SGF())
	require.NoError(t, err)
	require.Equal(t, 9, root.BoardSize())
	require.Equal(t, 7.5, root.Komi())

	tip := root
	for range moves {
		require.Len(t, tip.Children, 1)
		tip = tip.Children[0]
	}
	require.Equal(t, moves, tip.MovesFromRoot())
}

func TestLoadTreeVariations(t *testing.T) {
	root, err := LoadTree("(;SZ[9];B[cg](;W[gc];B[ee])(;W[cc]))")
	require.NoError(t, err)
	require.Len(t, root.Children, 1)

	first := root.Children[0]
	require.Equal(t, game.NewMove(game.Black, 2, 2), *first.Move)
	require.Len(t, first.Children, 2)
	require.Equal(t, game.NewMove(game.White, 6, 6), *first.Children[0].Move)
	require.Equal(t, game.NewMove(game.White, 2, 6), *first.Children[1].Move)
	require.Len(t, first.Children[0].Children, 1)
}

func TestLoadTreeRejectsBrokenRecords(t *testing.T) {
	for _, text := range []string{
		"",
		"(;SZ[9];B[zz])",
		"(;SZ[9];B[cg",
	} {
		_, err := LoadTree(text)
		require.Error(t, err, "input %q", text)
	}
}

func TestWriteSGFCreatesFile(t *testing.T) {
	s := newTestSession(t, Options{BoardSize: 9})
	_, _, err := s.Play(game.NewMove(game.Black, 2, 2), false)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "exports", "record.sgf")
	written, err := s.WriteSGF(path)
	require.NoError(t, err)
	require.Equal(t, path, written)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, s.SGF(), string(data))
}
