package game

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"baduk_lab/internal/domain/game"
	"baduk_lab/internal/engine"
	errs "baduk_lab/internal/errors"
)

// fakeStore keeps snapshots and archived records in memory.
type fakeStore struct {
	mu       sync.Mutex
	sgf      map[string]string
	archived []game.Record
	failSave bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{sgf: make(map[string]string)}
}

func (f *fakeStore) SaveSGF(_ context.Context, gameID, sgfText string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failSave {
		return errors.New("store down")
	}
	f.sgf[gameID] = sgfText
	return nil
}

func (f *fakeStore) LoadSGF(_ context.Context, gameID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	text, ok := f.sgf[gameID]
	if !ok {
		return "", errs.ErrGameNotFound
	}
	return text, nil
}

func (f *fakeStore) ArchiveGame(_ context.Context, rec game.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.archived = append(f.archived, rec)
	return nil
}

func (f *fakeStore) GetArchivedGame(_ context.Context, gameID string) (game.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.archived {
		if rec.GameID == gameID {
			return rec, nil
		}
	}
	return game.Record{}, errs.ErrGameNotFound
}

func (f *fakeStore) snapshot(gameID string) string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.sgf[gameID]
}

func newTestUseCase(t *testing.T) (*GameUseCase, *fakeStore) {
	t.Helper()
	store := newFakeStore()
	return NewGameUseCase(store, nil, testLogger()), store
}

func TestCreateGameStoresInitialSnapshot(t *testing.T) {
	uc, store := newTestUseCase(t)

	s, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 9}, AnalysisSettings{})
	require.NoError(t, err)
	require.Contains(t, store.snapshot(s.ID()), "SZ[9]")

	found, err := uc.Session(s.ID())
	require.NoError(t, err)
	require.Same(t, s, found)
}

func TestCreateGameFailsWhenStoreFails(t *testing.T) {
	uc, store := newTestUseCase(t)
	store.failSave = true

	_, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 9}, AnalysisSettings{})
	require.ErrorIs(t, err, errs.ErrCreateGameFailed)
}

func TestSessionLookupUnknownID(t *testing.T) {
	uc, _ := newTestUseCase(t)
	_, err := uc.Session("nope")
	require.ErrorIs(t, err, errs.ErrGameNotFound)

	_, err = uc.PlayMove(context.Background(), "nope", game.MoveRequest{Color: "b", Coordinates: "C3"})
	require.ErrorIs(t, err, errs.ErrGameNotFound)
}

func TestPlayMoveUpdatesStateAndSnapshot(t *testing.T) {
	uc, store := newTestUseCase(t)
	s, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 9}, AnalysisSettings{})
	require.NoError(t, err)

	state, err := uc.PlayMove(context.Background(), s.ID(), game.MoveRequest{Color: "b", Coordinates: "C3"})
	require.NoError(t, err)
	require.Equal(t, "B C3", state.LastMove)
	require.Equal(t, game.White, state.NextPlayer)
	require.Empty(t, state.Captured)
	require.False(t, state.GameEnded)
	require.Contains(t, store.snapshot(s.ID()), "B[cg]")
}

func TestPlayMoveReportsCapturesOnTheWire(t *testing.T) {
	uc, _ := newTestUseCase(t)
	s, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 5}, AnalysisSettings{})
	require.NoError(t, err)

	ctx := context.Background()
	for _, req := range []game.MoveRequest{
		{Color: "w", Coordinates: "A1"},
		{Color: "b", Coordinates: "B1"},
	} {
		_, err := uc.PlayMove(ctx, s.ID(), req)
		require.NoError(t, err)
	}

	state, err := uc.PlayMove(ctx, s.ID(), game.MoveRequest{Color: "b", Coordinates: "A2"})
	require.NoError(t, err)
	require.Equal(t, []string{"A1"}, state.Captured)
	require.Equal(t, 1, state.Prisoners[game.Black])
}

func TestPlayMoveRejectsBadInput(t *testing.T) {
	uc, _ := newTestUseCase(t)
	s, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 9}, AnalysisSettings{})
	require.NoError(t, err)

	_, err = uc.PlayMove(context.Background(), s.ID(), game.MoveRequest{Color: "purple", Coordinates: "C3"})
	require.Error(t, err)

	_, err = uc.PlayMove(context.Background(), s.ID(), game.MoveRequest{Color: "b", Coordinates: "Z99"})
	require.Error(t, err)
}

func TestPlayMoveIllegalPassesThrough(t *testing.T) {
	uc, _ := newTestUseCase(t)
	s, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 9}, AnalysisSettings{})
	require.NoError(t, err)

	ctx := context.Background()
	_, err = uc.PlayMove(ctx, s.ID(), game.MoveRequest{Color: "b", Coordinates: "C3"})
	require.NoError(t, err)

	_, err = uc.PlayMove(ctx, s.ID(), game.MoveRequest{Color: "w", Coordinates: "C3"})
	require.ErrorIs(t, err, engine.ErrOccupied)
	require.True(t, engine.IsIllegalMove(err))
}

func TestGameArchivedAfterTwoPasses(t *testing.T) {
	uc, store := newTestUseCase(t)
	s, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 9}, AnalysisSettings{})
	require.NoError(t, err)

	ctx := context.Background()
	state, err := uc.PlayMove(ctx, s.ID(), game.MoveRequest{Color: "b", Coordinates: "pass"})
	require.NoError(t, err)
	require.False(t, state.GameEnded)
	require.Empty(t, store.archived)

	state, err = uc.PlayMove(ctx, s.ID(), game.MoveRequest{Color: "w", Coordinates: "pass"})
	require.NoError(t, err)
	require.True(t, state.GameEnded)
	require.Len(t, store.archived, 1)
	require.Equal(t, s.ID(), store.archived[0].GameID)
	require.Equal(t, 9, store.archived[0].BoardSize)

	rec, err := uc.ArchivedGame(ctx, s.ID())
	require.NoError(t, err)
	require.Equal(t, s.ID(), rec.GameID)
	require.Equal(t, state.SGF, rec.SGF)

	_, err = uc.ArchivedGame(ctx, "gone")
	require.ErrorIs(t, err, errs.ErrGameNotFound)
}

func TestNavigationViaUseCase(t *testing.T) {
	uc, _ := newTestUseCase(t)
	s, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 9}, AnalysisSettings{})
	require.NoError(t, err)

	ctx := context.Background()
	for _, req := range []game.MoveRequest{
		{Color: "b", Coordinates: "C3"},
		{Color: "w", Coordinates: "G7"},
	} {
		_, err := uc.PlayMove(ctx, s.ID(), req)
		require.NoError(t, err)
	}

	state, err := uc.Undo(ctx, s.ID())
	require.NoError(t, err)
	require.Equal(t, "B C3", state.LastMove)

	state, err = uc.Redo(ctx, s.ID())
	require.NoError(t, err)
	require.Equal(t, "W G7", state.LastMove)

	// Build a sibling for G7 and cycle to it.
	_, err = uc.Undo(ctx, s.ID())
	require.NoError(t, err)
	_, err = uc.PlayMove(ctx, s.ID(), game.MoveRequest{Color: "w", Coordinates: "E5"})
	require.NoError(t, err)
	state, err = uc.SwitchBranch(ctx, s.ID(), 1)
	require.NoError(t, err)
	require.Equal(t, "W G7", state.LastMove)
}

func TestLoadGameResumesFromRecord(t *testing.T) {
	uc, _ := newTestUseCase(t)

	s, err := uc.LoadGame(context.Background(), "(;SZ[9]KM[7.5];B[cg];W[gc])", AnalysisSettings{})
	require.NoError(t, err)
	require.Equal(t, 9, s.BoardSize())

	// Loading positions the session at the root; the record is replayed by
	// stepping forward.
	require.Same(t, s.Root(), s.Current())
	require.Empty(t, s.Stones())

	require.NoError(t, s.Redo())
	require.NoError(t, s.Redo())
	require.Len(t, s.Stones(), 2)
	require.Equal(t, game.Black, s.NextPlayer())

	_, err = uc.LoadGame(context.Background(), "not an sgf record", AnalysisSettings{})
	require.Error(t, err)
}

func TestLoadSGFSnapshot(t *testing.T) {
	uc, store := newTestUseCase(t)
	s, err := uc.CreateGame(context.Background(), game.CreateGameRequest{BoardSize: 9}, AnalysisSettings{})
	require.NoError(t, err)

	text, err := uc.LoadSGFSnapshot(context.Background(), s.ID())
	require.NoError(t, err)
	require.Equal(t, store.snapshot(s.ID()), text)

	_, err = uc.LoadSGFSnapshot(context.Background(), "gone")
	require.ErrorIs(t, err, errs.ErrGameNotFound)
}
