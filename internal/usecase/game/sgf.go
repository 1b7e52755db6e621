package game

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"baduk_lab/internal/domain/game"
	"baduk_lab/internal/domain/sgf"
)

// Fixed ordering for the well-known record properties; everything else is
// emitted afterwards in sorted order so output is reproducible.
var orderedKeys = []string{"GM", "FF", "SZ", "PB", "PW", "DT", "AP", "RE", "KM", "RU", "HA", "AB", "AW"}

// SerializeTree renders the whole move tree, variations included, as an SGF
// record. Attached analysis is folded into node comments so an exported
// record keeps the engine's verdicts.
func SerializeTree(root *game.GameNode) string {
	var b strings.Builder
	b.WriteString("(")
	writeSequence(&b, root)
	b.WriteString(")")
	return b.String()
}

func writeSequence(b *strings.Builder, n *game.GameNode) {
	for {
		writeNode(b, n)
		if len(n.Children) == 1 {
			n = n.Children[0]
			continue
		}
		for _, child := range n.Children {
			b.WriteString("(")
			writeSequence(b, child)
			b.WriteString(")")
		}
		return
	}
}

func writeNode(b *strings.Builder, n *game.GameNode) {
	b.WriteString(";")
	used := map[string]bool{"C": true, "B": true, "W": true}
	for _, key := range orderedKeys {
		used[key] = true
		writeProperty(b, key, n.Properties[key])
	}

	if n.Move != nil {
		key := "B"
		if n.Move.Player == game.White {
			key = "W"
		}
		writeProperty(b, key, []string{n.Move.SGF(n.BoardSize())})
	}

	rest := make([]string, 0, len(n.Properties))
	for key := range n.Properties {
		if !used[key] {
			rest = append(rest, key)
		}
	}
	sort.Strings(rest)
	for _, key := range rest {
		writeProperty(b, key, n.Properties[key])
	}

	if comment := nodeComment(n); comment != "" {
		writeProperty(b, "C", []string{comment})
	}
}

func writeProperty(b *strings.Builder, key string, values []string) {
	if len(values) == 0 {
		return
	}
	b.WriteString(key)
	for _, v := range values {
		fmt.Fprintf(b, "[%s]", sgf.Escape(v))
	}
}

// nodeComment merges any stored comment with a one-line analysis summary.
func nodeComment(n *game.GameNode) string {
	parts := append([]string(nil), n.Properties["C"]...)
	if n.Analysis != nil && len(n.Analysis.MoveInfos) > 0 {
		best := n.Analysis.MoveInfos[0]
		parts = append(parts, fmt.Sprintf("engine: best %s, %d visits, score %+.1f",
			best.Move, best.Visits, best.ScoreLead))
	}
	return strings.Join(parts, "\n")
}

// SGF serializes the session's full tree.
func (s *Session) SGF() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return SerializeTree(s.root)
}

// WriteSGF exports the record to path, creating parent directories as
// needed. An empty path picks sgfout/baduk_lab_<id>.sgf. Returns the path
// written; an I/O failure leaves the in-memory session untouched.
func (s *Session) WriteSGF(path string) (string, error) {
	if path == "" {
		path = filepath.Join("sgfout", fmt.Sprintf("baduk_lab_%s.sgf", s.id))
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("failed to create export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, []byte(s.SGF()), 0o644); err != nil {
		return "", fmt.Errorf("failed to write sgf: %w", err)
	}
	return path, nil
}
