package game

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"baduk_lab/internal/domain/game"
	errs "baduk_lab/internal/errors"
)

// GameStore persists game records: the live SGF snapshot keyed by game id,
// and the archive of finished games.
type GameStore interface {
	SaveSGF(ctx context.Context, gameID, sgfText string) error
	LoadSGF(ctx context.Context, gameID string) (string, error)
	ArchiveGame(ctx context.Context, rec game.Record) error
	GetArchivedGame(ctx context.Context, gameID string) (game.Record, error)
}

// AnalysisSettings shapes every engine query a session issues.
type AnalysisSettings struct {
	MaxVisits        int
	IncludeOwnership bool
}

// GameUseCase owns the live sessions and ties them to the store and the
// analysis engine.
type GameUseCase struct {
	store    GameStore
	analyzer Analyzer
	log      *zap.SugaredLogger

	mu       sync.RWMutex
	sessions map[string]*Session
}

func NewGameUseCase(store GameStore, analyzer Analyzer, log *zap.SugaredLogger) *GameUseCase {
	return &GameUseCase{
		store:    store,
		analyzer: analyzer,
		log:      log,
		sessions: make(map[string]*Session),
	}
}

// CreateGame starts a fresh session and stores its initial record snapshot.
func (g *GameUseCase) CreateGame(ctx context.Context, req game.CreateGameRequest, analysis AnalysisSettings) (*Session, error) {
	s, err := NewSession(Options{
		BoardSize:        req.BoardSize,
		Komi:             req.Komi,
		Handicap:         req.Handicap,
		MaxVisits:        analysis.MaxVisits,
		IncludeOwnership: analysis.IncludeOwnership,
	}, g.analyzer, g.log)
	if err != nil {
		return nil, err
	}
	return g.register(ctx, s)
}

// LoadGame resurrects a session from an SGF record.
func (g *GameUseCase) LoadGame(ctx context.Context, sgfText string, analysis AnalysisSettings) (*Session, error) {
	root, err := LoadTree(sgfText)
	if err != nil {
		return nil, err
	}
	s, err := NewSession(Options{
		Root:             root,
		MaxVisits:        analysis.MaxVisits,
		IncludeOwnership: analysis.IncludeOwnership,
	}, g.analyzer, g.log)
	if err != nil {
		return nil, err
	}
	return g.register(ctx, s)
}

func (g *GameUseCase) register(ctx context.Context, s *Session) (*Session, error) {
	if err := g.store.SaveSGF(ctx, s.ID(), s.SGF()); err != nil {
		g.log.Errorw("failed to store initial sgf", "game", s.ID(), "error", err)
		return nil, errs.ErrCreateGameFailed
	}
	g.mu.Lock()
	g.sessions[s.ID()] = s
	g.mu.Unlock()
	return s, nil
}

// Session looks up a live session by id.
func (g *GameUseCase) Session(gameID string) (*Session, error) {
	g.mu.RLock()
	s, ok := g.sessions[gameID]
	g.mu.RUnlock()
	if !ok {
		return nil, errs.ErrGameNotFound
	}
	return s, nil
}

// PlayMove plays one wire move on the session, snapshots the record and
// archives the game once two consecutive passes end it.
func (g *GameUseCase) PlayMove(ctx context.Context, gameID string, req game.MoveRequest) (game.StateResponse, error) {
	s, err := g.Session(gameID)
	if err != nil {
		return game.StateResponse{}, err
	}
	color := game.Color(req.Color)
	if !color.Valid() {
		return game.StateResponse{}, fmt.Errorf("unknown player color %q", req.Color)
	}
	move, err := game.FromGTP(req.Coordinates, color)
	if err != nil {
		return game.StateResponse{}, err
	}

	_, captures, err := s.Play(move, false)
	if err != nil {
		return game.StateResponse{}, err
	}

	state := g.state(s)
	state.Captured = make([]string, 0, len(captures))
	for _, c := range captures {
		state.Captured = append(state.Captured, c.GTP())
	}

	if err := g.store.SaveSGF(ctx, s.ID(), state.SGF); err != nil {
		g.log.Errorw("failed to snapshot sgf", "game", s.ID(), "error", err)
	}
	if state.GameEnded {
		if err := g.store.ArchiveGame(ctx, s.Record()); err != nil {
			g.log.Errorw("failed to archive finished game", "game", s.ID(), "error", err)
		}
	}
	return state, nil
}

// Undo steps the session back one node.
func (g *GameUseCase) Undo(ctx context.Context, gameID string) (game.StateResponse, error) {
	return g.navigate(gameID, func(s *Session) error { return s.Undo() })
}

// Redo steps the session into the most recent child.
func (g *GameUseCase) Redo(ctx context.Context, gameID string) (game.StateResponse, error) {
	return g.navigate(gameID, func(s *Session) error { return s.Redo() })
}

// SwitchBranch cycles the session between sibling variations.
func (g *GameUseCase) SwitchBranch(ctx context.Context, gameID string, direction int) (game.StateResponse, error) {
	return g.navigate(gameID, func(s *Session) error { return s.SwitchBranch(direction) })
}

func (g *GameUseCase) navigate(gameID string, op func(*Session) error) (game.StateResponse, error) {
	s, err := g.Session(gameID)
	if err != nil {
		return game.StateResponse{}, err
	}
	if err := op(s); err != nil {
		return game.StateResponse{}, err
	}
	return g.state(s), nil
}

// AIMove asks the session to play the engine-selected move.
func (g *GameUseCase) AIMove(ctx context.Context, gameID string, cfg AIConfig) (game.StateResponse, error) {
	s, err := g.Session(gameID)
	if err != nil {
		return game.StateResponse{}, err
	}
	if _, err := s.AIMove(cfg); err != nil {
		return game.StateResponse{}, err
	}
	state := g.state(s)
	if err := g.store.SaveSGF(ctx, s.ID(), state.SGF); err != nil {
		g.log.Errorw("failed to snapshot sgf", "game", s.ID(), "error", err)
	}
	return state, nil
}

// ExportSGF writes the full record, analysis included, to path.
func (g *GameUseCase) ExportSGF(ctx context.Context, gameID, path string) (string, error) {
	s, err := g.Session(gameID)
	if err != nil {
		return "", err
	}
	return s.WriteSGF(path)
}

// LoadSGFSnapshot returns the stored record snapshot for a game id, also
// for games no longer live in memory.
func (g *GameUseCase) LoadSGFSnapshot(ctx context.Context, gameID string) (string, error) {
	return g.store.LoadSGF(ctx, gameID)
}

// ArchivedGame fetches a finished game's archive record by id.
func (g *GameUseCase) ArchivedGame(ctx context.Context, gameID string) (game.Record, error) {
	return g.store.GetArchivedGame(ctx, gameID)
}

func (g *GameUseCase) state(s *Session) game.StateResponse {
	state := game.StateResponse{
		GameID:     s.ID(),
		NextPlayer: s.NextPlayer(),
		Prisoners:  s.PrisonerCount(),
		GameEnded:  s.GameEnded(),
		SGF:        s.SGF(),
	}
	if cur := s.Current(); cur.Move != nil {
		state.LastMove = cur.Move.String()
	}
	return state
}
