package game

import (
	"math/rand"

	"baduk_lab/internal/domain/game"
	errs "baduk_lab/internal/errors"
)

// AIConfig holds the policy thresholds for engine-backed move selection.
// These tune playing strength only; legality always goes through the normal
// validation path.
type AIConfig struct {
	Balanced      bool    // pick a weaker move when far ahead
	MinVisits     int     // candidates below this visit count are ignored
	RandomizeEval float64 // points a balanced pick may give away freely
	MinEval       float64 // hard ceiling on points lost by a balanced pick
	TargetScore   float64 // keep the lead above this when balancing
}

type candidate struct {
	move       string
	scoreLead  float64
	pointsLost float64
}

// AIMove selects a move from the current node's analysis and plays it. The
// top candidate is always eligible; with Balanced set, well-visited moves
// that stay within the configured score budget are eligible too, and one is
// chosen at random. Fails with ErrNoAnalysis until the engine has answered
// for the current position.
func (s *Session) AIMove(cfg AIConfig) (*game.GameNode, error) {
	s.mu.Lock()
	node := s.current
	analysis := node.Analysis
	player := node.NextPlayer()
	s.mu.Unlock()

	if analysis == nil || len(analysis.MoveInfos) == 0 {
		return nil, errs.ErrNoAnalysis
	}

	sign := player.Sign()
	best := analysis.MoveInfos[0]
	var pool []candidate
	for i, mi := range analysis.MoveInfos {
		if i > 0 && mi.Visits < cfg.MinVisits {
			continue
		}
		pool = append(pool, candidate{
			move:       mi.Move,
			scoreLead:  mi.ScoreLead,
			pointsLost: sign * (best.ScoreLead - mi.ScoreLead),
		})
	}

	selected := pool[:1]
	if cfg.Balanced && best.Move != "pass" {
		var balanced []candidate
		for _, c := range pool {
			if c.pointsLost < cfg.RandomizeEval ||
				(c.pointsLost < cfg.MinEval && sign*c.scoreLead > cfg.TargetScore) {
				balanced = append(balanced, c)
			}
		}
		if len(balanced) > 0 {
			selected = balanced
		}
	}

	pick := selected[rand.Intn(len(selected))]
	move, err := game.FromGTP(pick.move, player)
	if err != nil {
		return nil, err
	}
	played, _, err := s.Play(move, false)
	return played, err
}
