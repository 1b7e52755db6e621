package engine

import (
	"sort"

	"baduk_lab/internal/domain/game"
)

// emptyCell marks an unoccupied board point.
const emptyCell = -1

// ChainTracker owns the derived board state: a grid mapping points to chain
// ids and the list of chains (connected same-colored stone groups). Chains
// are mutated in place; a fully captured or absorbed chain is tombstoned by
// setting its slot to nil, its id is never reused or referenced again.
//
// The tracker is a single-owner structure: callers serialize all calls.
type ChainTracker struct {
	size        int
	board       [][]int // board[y][x] -> chain id or emptyCell
	chains      [][]game.Move
	prisoners   map[game.Color]int // captures credited to the capturing color
	lastCapture []game.Move        // stones removed by the previous move only
}

func NewChainTracker(size int) *ChainTracker {
	t := &ChainTracker{}
	t.Reset(size)
	return t
}

// Reset clears the board and every chain, keeping nothing from the previous
// position. Used before a full replay of a move history.
func (t *ChainTracker) Reset(size int) {
	t.size = size
	t.board = make([][]int, size)
	for y := range t.board {
		t.board[y] = make([]int, size)
		for x := range t.board[y] {
			t.board[y][x] = emptyCell
		}
	}
	t.chains = nil
	t.prisoners = map[game.Color]int{game.Black: 0, game.White: 0}
	t.lastCapture = nil
}

func (t *ChainTracker) Size() int {
	return t.size
}

// ChainAt returns the chain id occupying (x, y), or -1 for an empty point.
func (t *ChainTracker) ChainAt(x, y int) int {
	return t.board[y][x]
}

// Stones flattens all live chains into the set of stones on the board.
func (t *ChainTracker) Stones() []game.Move {
	var stones []game.Move
	for _, chain := range t.chains {
		stones = append(stones, chain...)
	}
	return stones
}

// Prisoners returns a copy of the capture tally per capturing color.
func (t *ChainTracker) Prisoners() map[game.Color]int {
	return map[game.Color]int{
		game.Black: t.prisoners[game.Black],
		game.White: t.prisoners[game.White],
	}
}

// LastCapture returns the stones removed by the previous move.
func (t *ChainTracker) LastCapture() []game.Move {
	return append([]game.Move(nil), t.lastCapture...)
}

// Apply validates the move against the current position and, when legal,
// commits it: merging friendly neighbour chains, removing captured opposing
// chains and updating the prisoner tally. The returned slice holds the
// captured stones. All work happens on a scratch copy of the board and chain
// list; on any rejection the committed state is byte-for-byte unchanged,
// which matters because the same tracker replays whole histories during
// navigation.
func (t *ChainTracker) Apply(m game.Move, ignoreKo bool) ([]game.Move, error) {
	// The previous move took exactly this stone back? Decided against the
	// committed lastCapture before anything else mutates.
	koOrSnapback := len(t.lastCapture) == 1 && t.lastCapture[0] == m

	if m.Pass {
		t.lastCapture = nil
		return nil, nil
	}

	if t.board[m.Y][m.X] != emptyCell {
		return nil, &IllegalMoveError{Move: m, Reason: ErrOccupied}
	}

	board := copyBoard(t.board)
	chains := copyChains(t.chains)

	// Friendly neighbour chains merge into the lowest id among them.
	friendly := neighbourChains(board, t.size, []game.Move{m}, func(id int) bool {
		return chains[id][0].Player == m.Player
	})

	var thisChain int
	if len(friendly) > 0 {
		thisChain = friendly[0]
		for _, id := range friendly[1:] {
			for _, s := range chains[id] {
				board[s.Y][s.X] = thisChain
			}
			chains[thisChain] = append(chains[thisChain], chains[id]...)
			chains[id] = nil
		}
		chains[thisChain] = append(chains[thisChain], m)
	} else {
		thisChain = len(chains)
		chains = append(chains, []game.Move{m})
	}
	board[m.Y][m.X] = thisChain

	opposing := neighbourChains(board, t.size, []game.Move{m}, func(id int) bool {
		return chains[id][0].Player != m.Player
	})

	var captured []game.Move
	for _, id := range opposing {
		if hasLiberty(board, t.size, chains[id]) {
			continue
		}
		captured = append(captured, chains[id]...)
		for _, s := range chains[id] {
			board[s.Y][s.X] = emptyCell
		}
		chains[id] = nil
	}

	if koOrSnapback && len(captured) == 1 && !ignoreKo {
		return nil, &IllegalMoveError{Move: m, Reason: ErrKo}
	}

	if !hasLiberty(board, t.size, chains[thisChain]) {
		return nil, &IllegalMoveError{Move: m, Reason: ErrSuicide}
	}

	t.board = board
	t.chains = chains
	t.prisoners[m.Player] += len(captured)
	t.lastCapture = captured
	return captured, nil
}

// neighbourChains collects the distinct chain ids orthogonally adjacent to
// the given stones for which keep returns true, sorted ascending so merge
// targets and capture order are deterministic.
func neighbourChains(board [][]int, size int, stones []game.Move, keep func(id int) bool) []int {
	seen := make(map[int]bool)
	for _, s := range stones {
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nx, ny := s.X+d[0], s.Y+d[1]
			if nx < 0 || nx >= size || ny < 0 || ny >= size {
				continue
			}
			id := board[ny][nx]
			if id != emptyCell && !seen[id] && keep(id) {
				seen[id] = true
			}
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// hasLiberty reports whether any stone of the chain touches an empty point.
func hasLiberty(board [][]int, size int, chain []game.Move) bool {
	for _, s := range chain {
		for _, d := range [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}} {
			nx, ny := s.X+d[0], s.Y+d[1]
			if nx < 0 || nx >= size || ny < 0 || ny >= size {
				continue
			}
			if board[ny][nx] == emptyCell {
				return true
			}
		}
	}
	return false
}

func copyBoard(board [][]int) [][]int {
	out := make([][]int, len(board))
	for y := range board {
		out[y] = append([]int(nil), board[y]...)
	}
	return out
}

func copyChains(chains [][]game.Move) [][]game.Move {
	out := make([][]game.Move, len(chains))
	for i, chain := range chains {
		if chain != nil {
			out[i] = append([]game.Move(nil), chain...)
		}
	}
	return out
}
