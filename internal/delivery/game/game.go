package game

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"baduk_lab/internal/bootstrap"
	"baduk_lab/internal/domain/game"
	"baduk_lab/internal/engine"
	errs "baduk_lab/internal/errors"
	"baduk_lab/internal/httpresponse"
	gameuc "baduk_lab/internal/usecase/game"
	"baduk_lab/internal/utils"
)

// GameHandler exposes sessions over HTTP and a live play websocket.
type GameHandler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, gameUC *gameuc.GameUseCase) *GameHandler {
	return &GameHandler{
		cfg:    cfg,
		log:    log,
		gameUC: gameUC,
	}
}

func (g *GameHandler) analysisSettings() gameuc.AnalysisSettings {
	return gameuc.AnalysisSettings{
		MaxVisits:        g.cfg.MaxVisits,
		IncludeOwnership: g.cfg.IncludeOwnership,
	}
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Error("JSON decode error: ", err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.BoardSize == 0 {
		req.BoardSize = g.cfg.DefaultBoardSize
	}
	if req.Komi == 0 {
		req.Komi = g.cfg.DefaultKomi
	}

	s, err := g.gameUC.CreateGame(r.Context(), req, g.analysisSettings())
	if err != nil {
		g.respondError(w, err)
		return
	}

	g.log.Infof("new game created: %s (%dx%d, komi %.1f)", s.ID(), s.BoardSize(), s.BoardSize(), s.Komi())
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.CreateGameResponse{
		GameID:    s.ID(),
		BoardSize: s.BoardSize(),
		Komi:      s.Komi(),
		SGF:       s.SGF(),
	})
}

func (g *GameHandler) HandleLoadGame(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SGF string `json:"sgf"`
	}
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := g.gameUC.LoadGame(r.Context(), req.SGF, g.analysisSettings())
	if err != nil {
		g.respondError(w, err)
		return
	}

	g.log.Infof("game loaded from record: %s", s.ID())
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, game.CreateGameResponse{
		GameID:    s.ID(),
		BoardSize: s.BoardSize(),
		Komi:      s.Komi(),
		SGF:       s.SGF(),
	})
}

func (g *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	var req game.MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	state, err := g.gameUC.PlayMove(r.Context(), chi.URLParam(r, "gameID"), req)
	if err != nil {
		g.respondError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleUndo(w http.ResponseWriter, r *http.Request) {
	state, err := g.gameUC.Undo(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		g.respondError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleRedo(w http.ResponseWriter, r *http.Request) {
	state, err := g.gameUC.Redo(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		g.respondError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleSwitchBranch(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Direction int `json:"direction"`
	}
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Direction == 0 {
		req.Direction = 1
	}

	state, err := g.gameUC.SwitchBranch(r.Context(), chi.URLParam(r, "gameID"), req.Direction)
	if err != nil {
		g.respondError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleAIMove(w http.ResponseWriter, r *http.Request) {
	cfg := gameuc.AIConfig{
		Balanced:      g.cfg.BalancePlay,
		MinVisits:     g.cfg.BalanceMinVisits,
		RandomizeEval: g.cfg.BalanceRandomizeEval,
		MinEval:       g.cfg.BalanceMinEval,
		TargetScore:   g.cfg.BalanceTargetScore,
	}
	state, err := g.gameUC.AIMove(r.Context(), chi.URLParam(r, "gameID"), cfg)
	if err != nil {
		g.respondError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleExport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Path string `json:"path"`
	}
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
		return
	}

	path, err := g.gameUC.ExportSGF(r.Context(), chi.URLParam(r, "gameID"), req.Path)
	if err != nil {
		g.respondError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, map[string]string{"path": path})
}

func (g *GameHandler) HandleGetArchive(w http.ResponseWriter, r *http.Request) {
	rec, err := g.gameUC.ArchivedGame(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		g.respondError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, rec)
}

func (g *GameHandler) HandleGetSGF(w http.ResponseWriter, r *http.Request) {
	sgfText, err := g.gameUC.LoadSGFSnapshot(r.Context(), chi.URLParam(r, "gameID"))
	if err != nil {
		g.respondError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, map[string]string{"sgf": sgfText})
}

// HandlePlaySocket runs a live play loop: each incoming move is validated,
// committed and answered with the updated state. An illegal move only
// produces an error frame, the connection stays up.
func (g *GameHandler) HandlePlaySocket(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")
	if _, err := g.gameUC.Session(gameID); err != nil {
		g.respondError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Error("websocket upgrade error: ", err)
		return
	}
	defer conn.Close()

	for {
		var req game.MoveRequest
		if err := conn.ReadJSON(&req); err != nil {
			g.log.Info("websocket closed: ", err)
			return
		}

		state, err := g.gameUC.PlayMove(r.Context(), gameID, req)
		if err != nil {
			if writeErr := conn.WriteJSON(map[string]string{"error": err.Error()}); writeErr != nil {
				g.log.Error("websocket write error: ", writeErr)
				return
			}
			continue
		}

		if err := conn.WriteJSON(state); err != nil {
			g.log.Error("websocket write error: ", err)
			return
		}
	}
}

func (g *GameHandler) respondError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errs.ErrGameNotFound):
		httpresponse.WriteResponseWithStatus(w, http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrHistoryCorrupt):
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusInternalServerError, err.Error())
	case engine.IsIllegalMove(err), errors.Is(err, errs.ErrBadHandicap),
		errors.Is(err, errs.ErrNoAnalysis):
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
	default:
		g.log.Error(err)
		httpresponse.WriteResponseWithStatus(w, http.StatusBadRequest, err.Error())
	}
}
