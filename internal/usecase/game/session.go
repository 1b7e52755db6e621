package game

import (
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"baduk_lab/internal/domain"
	"baduk_lab/internal/domain/game"
	"baduk_lab/internal/engine"
	errs "baduk_lab/internal/errors"
)

const appIdentifier = "baduk_lab:0.3"

// analyzeAllPriority queues a whole loaded tree far behind interactive
// requests, so the engine serves fresh moves first.
const analyzeAllPriority = -1_000_000

// Analyzer is the asynchronous evaluation engine collaborator. Analyze must
// not block on the engine answering: attach is invoked later, from the
// engine's reader, once the ranked candidate moves are available.
type Analyzer interface {
	Analyze(req domain.AnalysisRequest, attach func(domain.AnalysisResponse)) error
}

// Options configures a new session. Root, when set, is a loaded record tree
// and wins over BoardSize/Komi/Handicap.
type Options struct {
	ID               string
	BoardSize        int
	Komi             float64
	Handicap         int
	Root             *game.GameNode
	MaxVisits        int
	IncludeOwnership bool
}

// Session is one game of go: the authoritative move tree, a current-node
// pointer into it, and the board/chain state derived for that node. All
// mutation (Play, Undo, Redo, SwitchBranch) is serialized on an internal
// mutex; the session is a single-owner structure.
type Session struct {
	id               string
	boardSize        int
	komi             float64
	createdAt        time.Time
	maxVisits        int
	includeOwnership bool

	mu        sync.Mutex
	root      *game.GameNode
	current   *game.GameNode
	tracker   *engine.ChainTracker
	validator *engine.Validator

	analyzer Analyzer
	log      *zap.SugaredLogger
}

// NewSession starts a session from scratch or from a loaded tree, seeds the
// root record properties (including handicap placements when requested) and
// derives the initial board state. The whole tree is queued for background
// analysis when an analyzer is attached.
func NewSession(opts Options, analyzer Analyzer, log *zap.SugaredLogger) (*Session, error) {
	s := &Session{
		id:               opts.ID,
		createdAt:        time.Now(),
		maxVisits:        opts.MaxVisits,
		includeOwnership: opts.IncludeOwnership,
		analyzer:         analyzer,
		log:              log,
	}
	if s.id == "" {
		s.id = uuid.New().String()
	}

	if opts.Root != nil {
		s.root = opts.Root
		s.boardSize = s.root.BoardSize()
		s.komi = s.root.Komi()
		if ha := s.root.Handicap(); ha > 0 && len(s.root.Properties["AB"]) == 0 {
			if err := s.placeHandicapStones(ha); err != nil {
				return nil, err
			}
		}
	} else {
		s.boardSize = opts.BoardSize
		if s.boardSize == 0 {
			s.boardSize = 19
		}
		s.komi = opts.Komi
		if s.komi == 0 {
			s.komi = 6.5
		}
		s.root = game.NewRoot(map[string][]string{
			"GM": {"1"},
			"FF": {"4"},
			"RU": {"JP"},
			"SZ": {strconv.Itoa(s.boardSize)},
			"KM": {strconv.FormatFloat(s.komi, 'f', 1, 64)},
			"AP": {appIdentifier},
			"DT": {s.createdAt.Format("2006-01-02")},
		})
		if opts.Handicap > 1 {
			if err := s.placeHandicapStones(opts.Handicap); err != nil {
				return nil, err
			}
		}
	}

	s.current = s.root
	s.tracker = engine.NewChainTracker(s.boardSize)
	s.validator = engine.NewValidator(s.tracker)
	if err := s.initChains(); err != nil {
		return nil, err
	}

	if s.analyzer != nil {
		nodes := s.root.NodesInTree()
		go func() {
			for _, node := range nodes {
				s.requestAnalysis(node, analyzeAllPriority)
			}
		}()
	}
	return s, nil
}

// initChains rebuilds board and chain state by replaying every move from the
// root to the current node: setup placements first, then each node's move.
// Chain ids are not reversible once merges and captures happened, so replay
// is the only correct way to honour navigation. A rejection here means the
// stored history itself is broken and escalates to ErrHistoryCorrupt.
// Caller holds s.mu (or is still constructing the session).
func (s *Session) initChains() error {
	s.tracker.Reset(s.boardSize)
	for _, node := range s.current.NodesFromRoot() {
		for _, m := range node.MoveWithPlacements() {
			// ignoreKo: a recorded move may have been a forced ko we cannot
			// re-judge without the surrounding record context.
			if _, err := s.validator.Play(m, true); err != nil {
				return fmt.Errorf("%w: replaying %s: %v", errs.ErrHistoryCorrupt, m, err)
			}
		}
	}
	return nil
}

func (s *Session) ID() string {
	return s.id
}

func (s *Session) BoardSize() int {
	return s.boardSize
}

func (s *Session) Komi() float64 {
	return s.komi
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

// Root returns the root of the authoritative move tree.
func (s *Session) Root() *game.GameNode {
	return s.root
}

// Current returns the node the session is positioned on.
func (s *Session) Current() *game.GameNode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// NextPlayer is the color to move at the current node.
func (s *Session) NextPlayer() game.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.NextPlayer()
}

// Stones lists every stone on the derived board.
func (s *Session) Stones() []game.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Stones()
}

// PrisonerCount tallies captured stones per capturing color along the
// current path.
func (s *Session) PrisonerCount() map[game.Color]int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.tracker.Prisoners()
}

// GameEnded reports two consecutive passes ending at the current node.
func (s *Session) GameEnded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current.Parent != nil && s.current.IsPass() && s.current.Parent.IsPass()
}

// Record assembles the archive document for the session as it stands.
func (s *Session) Record() game.Record {
	s.mu.Lock()
	prisoners := s.tracker.Prisoners()
	handicap := s.root.Handicap()
	s.mu.Unlock()
	return game.Record{
		GameID:         s.id,
		BoardSize:      s.boardSize,
		Komi:           s.komi,
		Handicap:       handicap,
		CreatedAt:      s.createdAt,
		FinishedAt:     time.Now(),
		PrisonersBlack: prisoners[game.Black],
		PrisonersWhite: prisoners[game.White],
		SGF:            s.SGF(),
	}
}

// requestAnalysis queues an engine query for the position at node. Results
// attach to that node whenever they arrive, even if the session has moved
// elsewhere by then. Never blocks on the engine.
func (s *Session) requestAnalysis(node *game.GameNode, priority int) {
	if s.analyzer == nil {
		return
	}
	moves := make([][2]string, 0)
	for _, m := range node.MovesFromRoot() {
		moves = append(moves, [2]string{string(m.Player), m.GTP()})
	}
	var initial [][2]string
	for _, m := range s.root.Placements() {
		initial = append(initial, [2]string{string(m.Player), m.GTP()})
	}
	req := domain.AnalysisRequest{
		ID:               node.ID,
		Moves:            moves,
		InitialStones:    initial,
		Rules:            "japanese",
		Komi:             s.komi,
		BoardXSize:       s.boardSize,
		BoardYSize:       s.boardSize,
		MaxVisits:        s.maxVisits,
		Priority:         priority,
		IncludeOwnership: s.includeOwnership,
	}
	err := s.analyzer.Analyze(req, func(resp domain.AnalysisResponse) {
		s.mu.Lock()
		node.Analysis = &resp
		s.mu.Unlock()
	})
	if err != nil {
		s.log.Errorw("failed to queue analysis", "node", node.ID, "error", err)
	}
}
