package game

import (
	"strconv"

	"baduk_lab/internal/domain/game"
	errs "baduk_lab/internal/errors"
)

// HandicapPoints returns the canonical star-point placements for n handicap
// stones, in priority order: the four corner points, the center for odd
// counts, then the edge midpoints. n of 0 or 1 yields no placement (a
// one-stone handicap is just black moving first); n above 9 has no defined
// placement and is rejected.
func HandicapPoints(boardSize, n int) ([][2]int, error) {
	if n <= 1 {
		return nil, nil
	}
	if n > 9 {
		return nil, errs.ErrBadHandicap
	}
	near := 2
	if boardSize >= 13 {
		near = 3
	}
	far := boardSize - 1 - near
	middle := boardSize / 2

	points := [][2]int{{far, far}, {near, near}, {far, near}, {near, far}}
	if n%2 == 1 {
		points = append(points, [2]int{middle, middle})
	}
	points = append(points,
		[2]int{near, middle}, [2]int{far, middle},
		[2]int{middle, near}, [2]int{middle, far})
	return points[:n], nil
}

// placeHandicapStones seeds the root with HA and the AB setup stones.
func (s *Session) placeHandicapStones(n int) error {
	points, err := HandicapPoints(s.boardSize, n)
	if err != nil {
		return err
	}
	if len(points) == 0 {
		return nil
	}
	coords := make([]string, 0, len(points))
	for _, p := range points {
		coords = append(coords, game.NewMove(game.Black, p[0], p[1]).SGF(s.boardSize))
	}
	s.root.Properties["HA"] = []string{strconv.Itoa(n)}
	s.root.AddProperty("AB", coords...)
	return nil
}
