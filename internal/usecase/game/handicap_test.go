package game

import (
	"testing"

	"github.com/stretchr/testify/require"

	errs "baduk_lab/internal/errors"
)

func TestHandicapPointsCanonicalTable19(t *testing.T) {
	// near=3, far=15, middle=9 on 19x19
	expected := map[int][][2]int{
		2: {{15, 15}, {3, 3}},
		3: {{15, 15}, {3, 3}, {15, 3}},
		4: {{15, 15}, {3, 3}, {15, 3}, {3, 15}},
		5: {{15, 15}, {3, 3}, {15, 3}, {3, 15}, {9, 9}},
		6: {{15, 15}, {3, 3}, {15, 3}, {3, 15}, {3, 9}, {15, 9}},
		7: {{15, 15}, {3, 3}, {15, 3}, {3, 15}, {9, 9}, {3, 9}, {15, 9}},
		8: {{15, 15}, {3, 3}, {15, 3}, {3, 15}, {3, 9}, {15, 9}, {9, 3}, {9, 15}},
		9: {{15, 15}, {3, 3}, {15, 3}, {3, 15}, {9, 9}, {3, 9}, {15, 9}, {9, 3}, {9, 15}},
	}
	for n, want := range expected {
		got, err := HandicapPoints(19, n)
		require.NoError(t, err)
		require.Equal(t, want, got, "handicap %d", n)
	}
}

func TestHandicapPointsSmallBoardUsesNearTwo(t *testing.T) {
	got, err := HandicapPoints(9, 2)
	require.NoError(t, err)
	require.Equal(t, [][2]int{{6, 6}, {2, 2}}, got)

	// 13 is the first size using the 3-line points.
	got, err = HandicapPoints(13, 2)
	require.NoError(t, err)
	require.Equal(t, [][2]int{{9, 9}, {3, 3}}, got)
}

func TestHandicapPointsEdgeCounts(t *testing.T) {
	for _, n := range []int{0, 1} {
		got, err := HandicapPoints(19, n)
		require.NoError(t, err)
		require.Nil(t, got, "a %d-stone handicap places nothing", n)
	}

	_, err := HandicapPoints(19, 10)
	require.ErrorIs(t, err, errs.ErrBadHandicap)
}
