package game

import (
	"baduk_lab/internal/domain/game"
)

// Play validates the move against the current derived state and, when legal,
// appends a child node and advances the current pointer to it. The returned
// slice holds the stones the move captured. With ignoreKo set the ko
// prohibition is skipped (a deliberate override, never the default).
func (s *Session) Play(m game.Move, ignoreKo bool) (*game.GameNode, []game.Move, error) {
	s.mu.Lock()
	captures, err := s.validator.Play(m, ignoreKo)
	if err != nil {
		s.mu.Unlock()
		return nil, nil, err
	}
	played := s.current.Play(m)
	s.current = played
	s.mu.Unlock()

	s.requestAnalysis(played, 0)
	return played, captures, nil
}

// Undo steps to the parent node and re-derives the board by full replay.
// At the root it is a no-op.
func (s *Session) Undo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == s.root {
		return nil
	}
	s.current = s.current.Parent
	return s.initChains()
}

// Redo steps into the most recently created child, if any, and re-derives
// the board.
func (s *Session) Redo() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cn := s.current
	if len(cn.Children) == 0 {
		return nil
	}
	s.current = cn.Children[len(cn.Children)-1]
	return s.initChains()
}

// SwitchBranch moves to the sibling variation offset by direction, wrapping
// around in creation order, and re-derives the board.
func (s *Session) SwitchBranch(direction int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cn := s.current
	if cn.Parent == nil || len(cn.Parent.Children) < 2 {
		return nil
	}
	siblings := cn.Parent.Children
	n := len(siblings)
	ix := cn.SiblingIndex()
	s.current = siblings[((ix+direction)%n+n)%n]
	return s.initChains()
}
